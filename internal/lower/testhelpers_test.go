package lower

import (
	"testing"

	"sable/internal/corpus"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/source"
)

func lowerFixture(t *testing.T, prog *corpus.Program) (*hir.Unit, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	u, err := Lower(Config{
		Unit:     prog.Unit,
		IDs:      prog.IDs,
		Strings:  prog.Strings,
		Resolver: prog.Resolutions,
		Defs:     prog.Defs,
		Reporter: diag.BagReporter{Bag: bag},
		Features: prog.Features,
	})
	if err != nil {
		t.Fatalf("Lower(%s) failed: %v", prog.Name, err)
	}
	return u, bag
}

func findItem(t *testing.T, prog *corpus.Program, u *hir.Unit, name string) *hir.Item {
	t.Helper()
	id := prog.Strings.Intern(name)
	for _, it := range u.Items {
		if it.Name == id {
			return it
		}
	}
	t.Fatalf("item %q not found in unit %s", name, prog.Name)
	return nil
}

func fnBody(t *testing.T, u *hir.Unit, it *hir.Item) *hir.Body {
	t.Helper()
	data, ok := it.Data.(*hir.FnData)
	if !ok {
		t.Fatalf("item %v is %s, want Fn", it.Node, it.Kind)
	}
	body, ok := u.Bodies[data.Body]
	if !ok {
		t.Fatalf("body %s of item %v missing from body table", data.Body, it.Node)
	}
	return body
}

func blockOf(t *testing.T, e *hir.Expr) *hir.Block {
	t.Helper()
	if e.Kind != hir.ExprBlock {
		t.Fatalf("expression is %s, want Block", e.Kind)
	}
	return e.Data.(*hir.BlockData).Block
}

func matchOf(t *testing.T, e *hir.Expr) *hir.MatchData {
	t.Helper()
	if e.Kind != hir.ExprMatch {
		t.Fatalf("expression is %s, want Match", e.Kind)
	}
	return e.Data.(*hir.MatchData)
}

func stmtExprOf(t *testing.T, s *hir.Stmt) *hir.Expr {
	t.Helper()
	data, ok := s.Data.(*hir.ExprStmtData)
	if !ok {
		t.Fatalf("statement is %s, want Expr", s.Kind)
	}
	return data.Expr
}

func letOf(t *testing.T, s *hir.Stmt) *hir.LetData {
	t.Helper()
	data, ok := s.Data.(*hir.LetData)
	if !ok {
		t.Fatalf("statement is %s, want Let", s.Kind)
	}
	return data
}

func pathLastName(t *testing.T, e *hir.Expr) source.StringID {
	t.Helper()
	if e.Kind != hir.ExprPath {
		t.Fatalf("expression is %s, want Path", e.Kind)
	}
	q := e.Data.(*hir.PathData).QPath
	if q.Path == nil || len(q.Path.Segments) == 0 {
		t.Fatalf("path expression has no resolved segments")
	}
	return q.Path.Segments[len(q.Path.Segments)-1].Name
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func diagCodes(bag *diag.Bag) []diag.Code {
	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}
