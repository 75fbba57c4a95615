// Package identity defines the closed set of enrolled identities and the
// resolution of raw classifier labels into that set.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identity is the name of an enrolled user, or Unknown.
type Identity string

// Unknown is the distinguished value for an unresolved or unenrolled identity.
const Unknown Identity = "unknown"

// IsKnown reports whether the identity resolved to an enrolled user.
func (id Identity) IsKnown() bool {
	return id != Unknown && id != ""
}

var lower = cases.Lower(language.Und)

// Normalize lowercases and trims a raw label so that lookups are
// case-insensitive regardless of what the classifier emitted.
func Normalize(raw string) string {
	return strings.TrimSpace(lower.String(raw))
}

// Registry holds the fixed, ordered set of enrolled identities plus an alias
// table mapping alternate spellings to enrolled names. It is built once at
// startup and read-only afterwards.
type Registry struct {
	enrolled []Identity
	byName   map[string]Identity
	aliases  map[string]Identity
}

// NewRegistry builds a registry from the enrolled names and an optional
// alias table (alias -> enrolled name). Aliases pointing at names that are
// not enrolled are dropped.
func NewRegistry(enrolled []string, aliases map[string]string) *Registry {
	r := &Registry{
		byName:  make(map[string]Identity, len(enrolled)),
		aliases: make(map[string]Identity, len(aliases)),
	}
	for _, name := range enrolled {
		n := Normalize(name)
		if n == "" || n == string(Unknown) {
			continue
		}
		id := Identity(n)
		if _, dup := r.byName[n]; dup {
			continue
		}
		r.enrolled = append(r.enrolled, id)
		r.byName[n] = id
	}
	for alias, name := range aliases {
		a := Normalize(alias)
		if id, ok := r.byName[Normalize(name)]; ok && a != "" {
			r.aliases[a] = id
		}
	}
	return r
}

// Enrolled returns the enrolled identities in enumeration order.
func (r *Registry) Enrolled() []Identity {
	out := make([]Identity, len(r.enrolled))
	copy(out, r.enrolled)
	return out
}

// Contains reports whether id is an enrolled identity.
func (r *Registry) Contains(id Identity) bool {
	_, ok := r.byName[string(id)]
	return ok
}

// Resolve maps a raw classifier label to an enrolled identity. Resolution is
// decided once here, at the classifier boundary: exact match on the
// normalized label, then the alias table, then substring containment. A
// label containing more than one distinct enrolled name is ambiguous and
// resolves to Unknown rather than depending on enumeration order.
func (r *Registry) Resolve(raw string) Identity {
	label := Normalize(raw)
	if label == "" {
		return Unknown
	}
	if id, ok := r.byName[label]; ok {
		return id
	}
	if id, ok := r.aliases[label]; ok {
		return id
	}

	found := Unknown
	for _, id := range r.enrolled {
		if !strings.Contains(label, string(id)) {
			continue
		}
		if found.IsKnown() && found != id {
			return Unknown // ambiguous
		}
		found = id
	}
	return found
}
