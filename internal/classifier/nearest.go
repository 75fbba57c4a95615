package classifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/coder/hnsw"
)

// DefaultMaxDistance is the cosine distance beyond which the nearest
// enrolled template is not considered a match.
const DefaultMaxDistance = 0.35

// Template is one enrolled reference vector for the embedded classifier.
type Template struct {
	Identity string
	Vector   []float32
}

// Nearest is a Classifier that predicts by nearest-neighbour search over
// enrolled template vectors. The index is built once from the template
// store and read-only afterwards.
type Nearest struct {
	name        string
	graph       *hnsw.Graph[int64]
	labels      map[int64]string
	maxDistance float32
	mu          sync.RWMutex
}

// NewNearest builds an index over the given templates. Returns an error
// when no templates are enrolled, so the caller can fall back to the
// identity tables instead.
func NewNearest(name string, templates []Template, maxDistance float32) (*Nearest, error) {
	if len(templates) == 0 {
		return nil, errors.New("no templates enrolled")
	}
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}

	g := hnsw.NewGraph[int64]()
	g.Distance = hnsw.CosineDistance

	labels := make(map[int64]string, len(templates))
	for i, tpl := range templates {
		id := int64(i)
		g.Add(hnsw.MakeNode(id, tpl.Vector))
		labels[id] = tpl.Identity
	}

	return &Nearest{
		name:        name,
		graph:       g,
		labels:      labels,
		maxDistance: maxDistance,
	}, nil
}

func (n *Nearest) Name() string {
	return n.name
}

// Count returns the number of indexed templates.
func (n *Nearest) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.labels)
}

func (n *Nearest) Predict(ctx context.Context, features []float32) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	neighbors := n.graph.Search(features, 1)
	if len(neighbors) == 0 {
		return "", errors.New("index returned no neighbors")
	}

	nearest := neighbors[0]
	if dist := hnsw.CosineDistance(features, nearest.Value); dist > n.maxDistance {
		return "", fmt.Errorf("nearest template too far (distance %.3f)", dist)
	}

	return n.labels[nearest.Key], nil
}
