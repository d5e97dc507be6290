package auditory

import "testing"

func TestNewEarFilterFieldTypes(t *testing.T) {
	for _, ft := range []FieldType{FreeFrontal, Diffuse} {
		e, err := NewEarFilter(ft)
		if err != nil {
			t.Fatalf("NewEarFilter(%q): %v", ft, err)
		}
		if e.FieldType() != ft {
			t.Errorf("FieldType = %q, want %q", e.FieldType(), ft)
		}
	}

	if _, err := NewEarFilter("reverberant"); err == nil {
		t.Error("expected error for unknown field type")
	}
}

func TestFieldTypeValid(t *testing.T) {
	if !FreeFrontal.Valid() || !Diffuse.Valid() {
		t.Error("built-in field types must be valid")
	}
	if FieldType("").Valid() || FieldType("free").Valid() {
		t.Error("unknown field types must be invalid")
	}
}

func TestEarFilterProcess(t *testing.T) {
	free, err := NewEarFilter(FreeFrontal)
	if err != nil {
		t.Fatalf("NewEarFilter: %v", err)
	}
	diffuse, err := NewEarFilter(Diffuse)
	if err != nil {
		t.Fatalf("NewEarFilter: %v", err)
	}

	signal := bandSine(1000, 4800)

	out := free.Process(signal)
	if len(out) != len(signal) {
		t.Fatalf("output length = %d, want %d", len(out), len(signal))
	}

	// Process resets internal state, so repeated calls agree exactly.
	again := free.Process(signal)
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("repeated Process differs at sample %d", i)
		}
	}

	// The two sound fields use different outer-ear sections.
	other := diffuse.Process(signal)
	same := true
	for i := range out {
		if out[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("free-frontal and diffuse responses are identical")
	}
}
