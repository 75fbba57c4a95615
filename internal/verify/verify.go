// Package verify implements per-modality identity verification. A verifier
// is bound at construction to either a classifier adapter or a fallback
// table; the two strategies are never mixed within one process lifetime.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kamdem/biogate/internal/classifier"
	"github.com/kamdem/biogate/internal/fallback"
	"github.com/kamdem/biogate/internal/identity"
)

// Modality is one biometric channel.
type Modality string

const (
	Face  Modality = "face"
	Voice Modality = "voice"
)

// Sample is an opaque reference to one biometric input. The key derived
// from the filename is the stable key for fallback lookup.
type Sample struct {
	Path string
}

// Key returns the sample's stable lookup key.
func (s Sample) Key() string {
	return filepath.Base(s.Path)
}

// Result is a single modality's verification outcome. Invariant: a
// rejected result always carries the Unknown identity.
type Result struct {
	Accepted bool
	Identity identity.Identity
}

func rejected() Result {
	return Result{Accepted: false, Identity: identity.Unknown}
}

// ErrResourceNotFound reports that a sample's underlying resource was not
// readable. The verification result is already fail-closed when this is
// returned; the error exists so callers can log the distinct condition.
var ErrResourceNotFound = errors.New("sample resource not found")

// Resources is the collaborator that resolves sample references to bytes.
type Resources interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
}

// OSResources resolves samples against the local filesystem.
type OSResources struct{}

func (OSResources) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (OSResources) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Extractor reduces raw sample bytes to the classifier's feature vector.
type Extractor func(data []byte) ([]float32, error)

// Verifier verifies one modality. Construct with NewClassifierVerifier or
// NewFallbackVerifier depending on whether a trained classifier was loaded
// at process start.
type Verifier struct {
	modality  Modality
	adapter   *classifier.Adapter
	table     *fallback.Table
	extract   Extractor
	resources Resources
}

// NewClassifierVerifier builds a verifier that dispatches to the classifier
// adapter for every sample.
func NewClassifierVerifier(m Modality, a *classifier.Adapter, extract Extractor, res Resources) *Verifier {
	return &Verifier{modality: m, adapter: a, extract: extract, resources: res}
}

// NewFallbackVerifier builds a verifier that dispatches to the static
// identity table for every sample.
func NewFallbackVerifier(m Modality, t *fallback.Table, res Resources) *Verifier {
	return &Verifier{modality: m, table: t, resources: res}
}

// Modality returns the channel this verifier is bound to.
func (v *Verifier) Modality() Modality {
	return v.modality
}

// UsesClassifier reports the dispatch strategy decided at construction.
func (v *Verifier) UsesClassifier() bool {
	return v.adapter != nil
}

// Verify produces the modality's verification result. A missing resource
// returns a rejected result and ErrResourceNotFound without consulting the
// classifier or the table. Every other failure is absorbed into a rejected
// result: uncertainty resolves toward rejection, never acceptance.
func (v *Verifier) Verify(ctx context.Context, sample Sample) (Result, error) {
	if !v.resources.Exists(sample.Path) {
		return rejected(), fmt.Errorf("%w: %s", ErrResourceNotFound, sample.Path)
	}

	if v.adapter == nil {
		id := v.table.Lookup(sample.Key())
		return Result{Accepted: id.IsKnown(), Identity: id}, nil
	}

	data, err := v.resources.Read(sample.Path)
	if err != nil {
		return rejected(), fmt.Errorf("%w: %s", ErrResourceNotFound, sample.Path)
	}

	features, err := v.extract(data)
	if err != nil {
		log.Printf("[%s] feature extraction failed for %s: %v", v.modality, sample.Key(), err)
		return rejected(), nil
	}

	id := v.adapter.Classify(ctx, features)
	return Result{Accepted: id.IsKnown(), Identity: id}, nil
}
