package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"sable/internal/diag"
	"sable/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	fs, file := testFileSet(t)
	bag := diag.NewBag(4)
	d := breakDiag(file)
	d.Fixes[0].Edits = []diag.FixEdit{{Span: d.Primary, NewText: ""}}
	bag.Add(d)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("output lists %d/%d diagnostics, want 1/1", len(out.Diagnostics), out.Count)
	}

	dj := out.Diagnostics[0]
	if dj.Severity != "ERROR" || dj.Code != "LOW4005" {
		t.Fatalf("diagnostic encoded as %s %s", dj.Severity, dj.Code)
	}
	loc := dj.Location
	if loc.File != "main.sb" || loc.StartByte != 16 || loc.EndByte != 21 {
		t.Fatalf("location = %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 5 {
		t.Fatalf("positions = %d:%d, want 2:5", loc.StartLine, loc.StartCol)
	}
	if len(dj.Notes) != 1 || dj.Notes[0].Message != "the enclosing function starts here" {
		t.Fatalf("notes = %+v", dj.Notes)
	}
	if len(dj.Fixes) != 1 || len(dj.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", dj.Fixes)
	}
}

func TestJSONOptsTrimOutput(t *testing.T) {
	fs, file := testFileSet(t)
	bag := diag.NewBag(8)
	bag.Add(breakDiag(file))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LowParenArgsCompat,
		Message:  "deprecated form",
		Primary:  source.Span{File: file, Start: 0, End: 2},
	})

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if len(out.Diagnostics) != 1 {
		t.Fatalf("truncated output lists %d diagnostics, want 1", len(out.Diagnostics))
	}
	// Count still reflects the whole bag.
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Fatalf("notes included without IncludeNotes")
	}
}

func TestWriteJSONIsValid(t *testing.T) {
	fs, file := testFileSet(t)
	bag := diag.NewBag(4)
	bag.Add(breakDiag(file))

	var buf bytes.Buffer
	if err := WriteJSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var round DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if round.Count != 1 {
		t.Fatalf("round-tripped count = %d, want 1", round.Count)
	}
}
