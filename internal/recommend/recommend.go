// Package recommend selects a product category for an authenticated
// identity. Recommendation is best-effort by contract: no failure in this
// package may alter an authentication outcome.
package recommend

import (
	"context"
	"errors"

	"github.com/kamdem/biogate/internal/identity"
)

// Recommendation is a suggested product category.
type Recommendation struct {
	Category string `json:"category"`
}

// PlaceholderCategory is returned when every recommendation path fails.
const PlaceholderCategory = "General"

// Recommender produces a recommendation for an authenticated identity.
type Recommender interface {
	Recommend(ctx context.Context, id identity.Identity) (Recommendation, error)
}

// CategorySource provides the ordered, non-empty category set used when no
// recommendation model is consulted or its output is discarded.
type CategorySource interface {
	Categories(ctx context.Context) ([]string, error)
}

// HistorySource provides a customer's past purchase categories. Optional;
// model-backed recommenders use it as context when available.
type HistorySource interface {
	History(ctx context.Context, id identity.Identity) ([]string, error)
}

// StaticCategories is a CategorySource over a fixed slice.
type StaticCategories []string

func (s StaticCategories) Categories(ctx context.Context) ([]string, error) {
	if len(s) == 0 {
		return nil, errors.New("category set is empty")
	}
	return s, nil
}
