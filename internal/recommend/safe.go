package recommend

import (
	"context"
	"log"

	"github.com/kamdem/biogate/internal/identity"
)

// Safe wraps any Recommender so that it cannot fail. Errors and panics are
// absorbed into the placeholder recommendation; the caller never sees a
// fault from the recommendation path.
type Safe struct {
	inner Recommender
}

func NewSafe(inner Recommender) *Safe {
	return &Safe{inner: inner}
}

func (s *Safe) Recommend(ctx context.Context, id identity.Identity) (rec Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recommendation panicked: %v", r)
			rec = Recommendation{Category: PlaceholderCategory}
			err = nil
		}
	}()

	if s.inner == nil {
		return Recommendation{Category: PlaceholderCategory}, nil
	}

	rec, innerErr := s.inner.Recommend(ctx, id)
	if innerErr != nil {
		log.Printf("recommendation failed: %v", innerErr)
		return Recommendation{Category: PlaceholderCategory}, nil
	}
	if rec.Category == "" {
		return Recommendation{Category: PlaceholderCategory}, nil
	}
	return rec, nil
}
