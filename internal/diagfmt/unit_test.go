package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"sable/internal/corpus"
	"sable/internal/diag"
	"sable/internal/lower"
)

func TestBuildUnitOutput(t *testing.T) {
	prog := corpus.Machinery()
	bag := diag.NewBag(16)
	u, err := lower.Lower(lower.Config{
		Unit:     prog.Unit,
		IDs:      prog.IDs,
		Strings:  prog.Strings,
		Resolver: prog.Resolutions,
		Defs:     prog.Defs,
		Reporter: diag.BagReporter{Bag: bag},
		Features: prog.Features,
	})
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}

	out := BuildUnitOutput(u, prog.Strings)
	if out.Name != "machinery" {
		t.Fatalf("unit name = %q", out.Name)
	}
	if len(out.Items) != len(u.ItemNodes) {
		t.Fatalf("output lists %d items, unit has %d", len(out.Items), len(u.ItemNodes))
	}
	if out.Bodies != len(u.BodyIDs) {
		t.Fatalf("output counts %d bodies, unit has %d", out.Bodies, len(u.BodyIDs))
	}
	names := make(map[string]bool)
	for _, it := range out.Items {
		names[it.Name] = true
	}
	for _, want := range []string{"LIMIT", "Level", "Greet", "relaxed"} {
		if !names[want] {
			t.Fatalf("item %q missing from the unit dump", want)
		}
	}

	var buf bytes.Buffer
	if err := WriteUnitJSON(&buf, u, prog.Strings); err != nil {
		t.Fatalf("WriteUnitJSON failed: %v", err)
	}
	var round UnitJSON
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("unit dump is not valid JSON: %v", err)
	}
}
