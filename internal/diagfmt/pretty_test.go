package diagfmt

import (
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/source"
)

func testFileSet(t *testing.T) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.sb", []byte("fn main() {\n    break;\n}\n"))
	return fs, id
}

func breakDiag(file source.FileID) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LowBreakOutsideLoop,
		Message:  "'break' outside of a loop",
		Primary:  source.Span{File: file, Start: 16, End: 21},
		Notes: []diag.Note{
			{Span: source.Span{File: file, Start: 0, End: 2}, Msg: "the enclosing function starts here"},
		},
		Fixes: []diag.Fix{{Title: "remove the break"}},
	}
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	fs, file := testFileSet(t)
	bag := diag.NewBag(4)
	bag.Add(breakDiag(file))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "main.sb:2:5: ERROR LOW4005: 'break' outside of a loop") {
		t.Fatalf("header missing or malformed:\n%s", out)
	}
	if !strings.Contains(out, "    break;") {
		t.Fatalf("source excerpt missing:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~") {
		t.Fatalf("underline missing or has the wrong width:\n%s", out)
	}
	if strings.Contains(out, "note") {
		t.Fatalf("notes printed without ShowNotes:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("color escapes present without Color:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, file := testFileSet(t)
	bag := diag.NewBag(4)
	bag.Add(breakDiag(file))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := sb.String()

	if !strings.Contains(out, "main.sb:1:1: note: the enclosing function starts here") {
		t.Fatalf("note missing:\n%s", out)
	}
	if !strings.Contains(out, "fix: remove the break") {
		t.Fatalf("fix missing:\n%s", out)
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	fs, file := testFileSet(t)
	bag := diag.NewBag(4)
	bag.Add(breakDiag(file))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(sb.String(), "\x1b[") {
		t.Fatalf("no escapes in colored output:\n%s", sb.String())
	}
}

func TestPrettySkipsBlankExcerpts(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("blank.sb", []byte("        \n"))
	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LowParenArgsCompat,
		Message:  "deprecated form",
		Primary:  source.Span{File: file, Start: 2, End: 6},
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	if strings.Contains(sb.String(), "|") {
		t.Fatalf("excerpt printed for an all-blank line:\n%s", sb.String())
	}
}
