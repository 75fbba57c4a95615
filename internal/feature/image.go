// Package feature reduces raw biometric samples to the fixed-size numeric
// vectors the classifiers consume. The encodings are deterministic and
// lossy; they must match what the models were trained on.
package feature

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// faceSize is the square edge length face images are resized to before
// flattening. The face models are trained on 224x224 inputs.
const faceSize = 224

// FaceDim is the length of a face feature vector.
const FaceDim = faceSize * faceSize * 3

// FaceVector decodes an image and reduces it to a flattened RGB vector with
// channel values scaled to [0,1].
func FaceVector(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := image.NewRGBA(image.Rect(0, 0, faceSize, faceSize))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	vec := make([]float32, 0, FaceDim)
	for y := 0; y < faceSize; y++ {
		for x := 0; x < faceSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			vec = append(vec,
				float32(r>>8)/255.0,
				float32(g>>8)/255.0,
				float32(b>>8)/255.0,
			)
		}
	}
	return vec, nil
}
