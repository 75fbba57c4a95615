// Package classifier wraps the external identity classifiers and normalizes
// their raw predictions into the closed identity set.
package classifier

import "context"

// Classifier is the boundary to an externally trained model. Predict takes
// a fixed-size feature vector and returns the model's raw label.
type Classifier interface {
	Name() string
	Predict(ctx context.Context, features []float32) (string, error)
}
