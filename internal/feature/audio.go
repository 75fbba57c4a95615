package feature

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-audio/wav"
)

// VoiceDim is the length of a voice feature vector: mean amplitude,
// standard deviation, sample count, sample rate.
const VoiceDim = 4

// VoiceVector decodes a WAV file and summarizes the waveform as the
// four-element vector the voice models are trained on.
func VoiceVector(data []byte) ([]float32, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("WAV file contains no samples")
	}

	// Scale integer PCM samples to [-1,1] so the summary is independent of
	// bit depth.
	scale := float64(int64(1) << (dec.BitDepth - 1))
	samples := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float64(s) / scale
	}

	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))

	var sqDiff float64
	for _, s := range samples {
		d := s - mean
		sqDiff += d * d
	}
	std := math.Sqrt(sqDiff / float64(len(samples)))

	return []float32{
		float32(mean),
		float32(std),
		float32(len(samples)),
		float32(buf.Format.SampleRate),
	}, nil
}
