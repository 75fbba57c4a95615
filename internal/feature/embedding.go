package feature

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// embedSize is the square edge length for compact face embeddings used by
// the nearest-neighbour classifier and the template store.
const embedSize = 32

// EmbedDim is the length of a compact face embedding.
const EmbedDim = embedSize * embedSize

// FaceEmbedding reduces an image to a compact grayscale vector suitable for
// storage and nearest-neighbour comparison. Unlike FaceVector, which is the
// wire format of the trained models, this embedding stays small enough to
// index and persist per enrolled identity.
func FaceEmbedding(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, embedSize, embedSize))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	vec := make([]float32, 0, EmbedDim)
	for y := 0; y < embedSize; y++ {
		for x := 0; x < embedSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			// Luminance weights, same as JPEG/ITU-R BT.601.
			gray := 0.299*float32(r>>8) + 0.587*float32(g>>8) + 0.114*float32(b>>8)
			vec = append(vec, gray/255.0)
		}
	}
	return vec, nil
}
