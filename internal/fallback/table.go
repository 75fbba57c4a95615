// Package fallback provides the static sample-key to identity tables used
// when no trained classifier is available for a modality.
package fallback

import "github.com/kamdem/biogate/internal/identity"

// Table maps a sample's stable key to an enrolled identity. It is built
// once at startup and read-only afterwards. Face and voice use disjoint
// tables.
type Table struct {
	entries map[string]identity.Identity
}

// NewTable builds a table from key -> enrolled name pairs, dropping entries
// whose identity is not enrolled in the registry.
func NewTable(entries map[string]string, reg *identity.Registry) *Table {
	t := &Table{entries: make(map[string]identity.Identity, len(entries))}
	for key, name := range entries {
		id := identity.Identity(identity.Normalize(name))
		if reg.Contains(id) {
			t.entries[key] = id
		}
	}
	return t
}

// Lookup returns the identity enrolled for the exact key, or Unknown when
// the key is absent. No partial or fuzzy matching.
func (t *Table) Lookup(key string) identity.Identity {
	if id, ok := t.entries[key]; ok {
		return id
	}
	return identity.Unknown
}

// Len returns the number of enrolled keys.
func (t *Table) Len() int {
	return len(t.entries)
}
