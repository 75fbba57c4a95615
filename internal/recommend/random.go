package recommend

import (
	"context"
	"math/rand"

	"github.com/kamdem/biogate/internal/identity"
)

// Random draws a category uniformly from the category set, independent of
// the identity. This mirrors the behavior of the shipped recommendation
// step, which never used the customer's history.
type Random struct {
	source CategorySource
}

func NewRandom(source CategorySource) *Random {
	return &Random{source: source}
}

func (r *Random) Recommend(ctx context.Context, id identity.Identity) (Recommendation, error) {
	categories, err := r.source.Categories(ctx)
	if err != nil {
		return Recommendation{}, err
	}
	return Recommendation{Category: categories[rand.Intn(len(categories))]}, nil
}
