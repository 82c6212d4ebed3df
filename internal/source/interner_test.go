package source

import "testing"

func TestInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("next")
	b := in.Intern("next")
	if a != b {
		t.Fatalf("same string interned twice: %d vs %d", a, b)
	}
	if a == NoStringID {
		t.Fatalf("non-empty string landed on the empty slot")
	}
	if got := in.MustLookup(a); got != "next" {
		t.Fatalf("lookup = %q, want next", got)
	}
}

func TestInternEmptyIsZero(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string interned as %d, want 0", id)
	}
	if in.Len() != 1 {
		t.Fatalf("fresh interner has %d slots, want the empty slot only", in.Len())
	}
}

func TestInternIdentNormalizes(t *testing.T) {
	const composedForm = "caf\u00e9"
	const decomposedForm = "cafe\u0301"

	in := NewInterner()
	composed := in.InternIdent(composedForm)
	decomposed := in.InternIdent(decomposedForm)
	if composed != decomposed {
		t.Fatalf("NFC spellings differ: %d vs %d", composed, decomposed)
	}
	if got := in.MustLookup(composed); got != composedForm {
		t.Fatalf("stored form = %q, want the composed spelling", got)
	}

	// Plain Intern stays byte-exact.
	if in.Intern(decomposedForm) == composed {
		t.Fatalf("raw intern must not normalize")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	in := NewInterner()
	in.Intern("one")
	snap := in.Snapshot()
	snap[1] = "mutated"
	if got := in.MustLookup(1); got != "one" {
		t.Fatalf("snapshot mutation leaked into the interner: %q", got)
	}
}
