package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamdem/biogate/internal/identity"
)

type failingRecommender struct{ err error }

func (f failingRecommender) Recommend(ctx context.Context, id identity.Identity) (Recommendation, error) {
	return Recommendation{}, f.err
}

type panickingRecommender struct{}

func (panickingRecommender) Recommend(ctx context.Context, id identity.Identity) (Recommendation, error) {
	panic("recommendation model blew up")
}

func TestRandom_DrawsFromCategorySet(t *testing.T) {
	source := StaticCategories{"Electronics", "Clothing", "Books"}
	r := NewRandom(source)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		rec, err := r.Recommend(context.Background(), identity.Identity("loic"))
		require.NoError(t, err)
		assert.Contains(t, []string{"Electronics", "Clothing", "Books"}, rec.Category)
		seen[rec.Category] = true
	}
	assert.NotEmpty(t, seen)
}

func TestRandom_EmptySourceFails(t *testing.T) {
	r := NewRandom(StaticCategories{})

	_, err := r.Recommend(context.Background(), identity.Identity("loic"))
	assert.Error(t, err)
}

func TestSafe_ErrorBecomesPlaceholder(t *testing.T) {
	s := NewSafe(failingRecommender{err: errors.New("model unavailable")})

	rec, err := s.Recommend(context.Background(), identity.Identity("loic"))
	require.NoError(t, err)
	assert.Equal(t, PlaceholderCategory, rec.Category)
}

func TestSafe_PanicBecomesPlaceholder(t *testing.T) {
	s := NewSafe(panickingRecommender{})

	rec, err := s.Recommend(context.Background(), identity.Identity("irene"))
	require.NoError(t, err)
	assert.Equal(t, PlaceholderCategory, rec.Category)
}

func TestSafe_NilInner(t *testing.T) {
	s := NewSafe(nil)

	rec, err := s.Recommend(context.Background(), identity.Identity("irene"))
	require.NoError(t, err)
	assert.Equal(t, PlaceholderCategory, rec.Category)
}

func TestSafe_PassesThroughSuccess(t *testing.T) {
	s := NewSafe(NewRandom(StaticCategories{"Books"}))

	rec, err := s.Recommend(context.Background(), identity.Identity("loic"))
	require.NoError(t, err)
	assert.Equal(t, "Books", rec.Category)
}

func TestParseCategoryPick(t *testing.T) {
	categories := []string{"Electronics", "Clothing"}

	rec, err := parseCategoryPick(`{"category":"electronics"}`, categories)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", rec.Category)

	_, err = parseCategoryPick(`{"category":"Yachts"}`, categories)
	assert.Error(t, err)

	_, err = parseCategoryPick(`not json`, categories)
	assert.Error(t, err)
}
