package classifier

import (
	"context"
	"log"

	"github.com/kamdem/biogate/internal/identity"
)

// Adapter normalizes a classifier's raw prediction into the closed identity
// set. Any failure at the classifier boundary resolves to Unknown; faults
// never propagate to the caller.
type Adapter struct {
	classifier Classifier
	registry   *identity.Registry
}

func NewAdapter(c Classifier, reg *identity.Registry) *Adapter {
	return &Adapter{classifier: c, registry: reg}
}

// Classify invokes the external classifier and resolves its raw label.
// Classifier errors and unresolvable labels both produce Unknown.
func (a *Adapter) Classify(ctx context.Context, features []float32) identity.Identity {
	if a.classifier == nil {
		return identity.Unknown
	}

	raw, err := a.classifier.Predict(ctx, features)
	if err != nil {
		log.Printf("classifier %s failed: %v", a.classifier.Name(), err)
		return identity.Unknown
	}

	id := a.registry.Resolve(raw)
	if !id.IsKnown() {
		log.Printf("classifier %s returned unresolvable label %q", a.classifier.Name(), raw)
	}
	return id
}
