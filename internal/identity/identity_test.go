package identity

import "testing"

func testRegistry() *Registry {
	return NewRegistry(
		[]string{"loic", "christine", "irene"},
		map[string]string{"ireneeo": "irene"},
	)
}

func TestResolve_ExactMatch(t *testing.T) {
	r := testRegistry()

	if got := r.Resolve("loic"); got != Identity("loic") {
		t.Errorf("expected loic, got %q", got)
	}

	if got := r.Resolve("  Christine "); got != Identity("christine") {
		t.Errorf("expected christine, got %q", got)
	}
}

func TestResolve_Alias(t *testing.T) {
	r := testRegistry()

	if got := r.Resolve("ireneeo"); got != Identity("irene") {
		t.Errorf("expected irene via alias, got %q", got)
	}
}

func TestResolve_SubstringContainment(t *testing.T) {
	r := testRegistry()

	// Raw model output wrapping an enrolled name still resolves.
	if got := r.Resolve("class_loic_v2"); got != Identity("loic") {
		t.Errorf("expected loic, got %q", got)
	}

	if got := r.Resolve("IRENE normal"); got != Identity("irene") {
		t.Errorf("expected irene, got %q", got)
	}
}

func TestResolve_AmbiguousIsUnknown(t *testing.T) {
	r := testRegistry()

	// Two enrolled names in one label must not resolve by enumeration order.
	if got := r.Resolve("loic-or-christine"); got != Unknown {
		t.Errorf("expected unknown for ambiguous label, got %q", got)
	}
}

func TestResolve_Unenrolled(t *testing.T) {
	r := testRegistry()

	for _, raw := range []string{"", "roxane", "unknown", "   "} {
		if got := r.Resolve(raw); got != Unknown {
			t.Errorf("Resolve(%q): expected unknown, got %q", raw, got)
		}
	}
}

func TestNewRegistry_SkipsUnknownAndDuplicates(t *testing.T) {
	r := NewRegistry([]string{"loic", "Loic", "unknown", ""}, nil)

	enrolled := r.Enrolled()
	if len(enrolled) != 1 || enrolled[0] != Identity("loic") {
		t.Errorf("expected [loic], got %v", enrolled)
	}
}

func TestIsKnown(t *testing.T) {
	if Unknown.IsKnown() {
		t.Error("unknown must not be known")
	}
	if !Identity("loic").IsKnown() {
		t.Error("loic should be known")
	}
}
