package lower

import (
	"testing"

	"sable/internal/ast"
	"sable/internal/corpus"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/project"
	"sable/internal/resolve"
	"sable/internal/source"
)

func TestNodeMappingInstalled(t *testing.T) {
	prog := corpus.Iterate()
	u, _ := lowerFixture(t, prog)

	if prog.Defs.Mapping() == nil {
		t.Fatalf("lowering did not install the node mapping")
	}
	root := prog.Defs.NodeToID(prog.Unit.ID)
	if root != (hir.ID{Owner: prog.Defs.Root(), Local: 0}) {
		t.Fatalf("unit root maps to %s, want local 0 of the root owner", root)
	}
	for _, it := range u.Items {
		id := prog.Defs.NodeToID(it.Node)
		if id.Local != 0 {
			t.Fatalf("item %v maps to local %d, want 0", it.Node, id.Local)
		}
		if id != it.ID {
			t.Fatalf("item %v mapping %s disagrees with the lowered item %s", it.Node, id, it.ID)
		}
	}
}

func TestCanonicalIDsUnique(t *testing.T) {
	for _, prog := range []*corpus.Program{
		corpus.Iterate(), corpus.Fallible(), corpus.Regions(), corpus.Opaque(),
		corpus.Machinery(), corpus.Imports(), corpus.Ranges(), corpus.Placement(),
	} {
		lowerFixture(t, prog)
		seen := make(map[hir.ID]ast.NodeID)
		for n, id := range prog.Defs.Mapping() {
			if !id.IsValid() {
				continue
			}
			if prev, dup := seen[id]; dup {
				t.Fatalf("%s: nodes %d and %d share identity %s", prog.Name, prev, n, id)
			}
			seen[id] = ast.NodeID(n)
		}
	}
}

func TestLocalsAreDense(t *testing.T) {
	prog := corpus.Machinery()
	lowerFixture(t, prog)

	perOwner := make(map[hir.OwnerID][]bool)
	for _, id := range prog.Defs.Mapping() {
		if !id.IsValid() {
			continue
		}
		locals := perOwner[id.Owner]
		for int(id.Local) >= len(locals) {
			locals = append(locals, false)
		}
		locals[id.Local] = true
		perOwner[id.Owner] = locals
	}
	for owner, locals := range perOwner {
		for local, used := range locals {
			if !used {
				t.Fatalf("owner %v skipped local %d", owner, local)
			}
		}
	}
}

// minimal hand-built unit for control-flow error cases.
type errUnit struct {
	strings  *source.Interner
	ids      *ast.IDSource
	defs     *hir.Registry
	unit     *ast.Unit
	resolver *resolve.Table
}

func newErrUnit(t *testing.T) *errUnit {
	t.Helper()
	strings := source.NewInterner()
	ids := ast.NewIDSource(1)
	unitID := ids.Next()
	e := &errUnit{
		strings:  strings,
		ids:      ids,
		defs:     hir.NewRegistry(unitID, strings.Intern("t"), source.Span{}),
		unit:     &ast.Unit{ID: unitID, Name: "t"},
		resolver: resolve.NewTable(strings),
	}
	return e
}

func (e *errUnit) fn(t *testing.T, body *ast.Block) {
	t.Helper()
	id := e.ids.Next()
	e.defs.Create(e.defs.Root(), id, hir.DefFn, e.strings.Intern("f"), source.Span{})
	e.unit.Items = []*ast.Item{{
		ID:   id,
		Kind: ast.ItemFn,
		Name: e.strings.Intern("f"),
		Data: &ast.FnData{Body: body},
	}}
}

func (e *errUnit) lower(t *testing.T) (*hir.Unit, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(8)
	u, err := Lower(Config{
		Unit:     e.unit,
		IDs:      e.ids,
		Strings:  e.strings,
		Resolver: e.resolver,
		Defs:     e.defs,
		Reporter: diag.BagReporter{Bag: bag},
		Features: project.Features{},
	})
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	return u, bag
}

func (e *errUnit) expr(kind ast.ExprKind, data ast.ExprData) *ast.Expr {
	return &ast.Expr{ID: e.ids.Next(), Kind: kind, Data: data}
}

func TestBreakOutsideLoop(t *testing.T) {
	e := newErrUnit(t)
	brk := e.expr(ast.ExprBreak, &ast.BreakData{})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: brk})

	u, bag := e.lower(t)
	if !hasCode(bag, diag.LowBreakOutsideLoop) {
		t.Fatalf("expected %v, got %v", diag.LowBreakOutsideLoop, diagCodes(bag))
	}

	var item *hir.Item
	for _, it := range u.Items {
		item = it
	}
	body := u.Bodies[item.Data.(*hir.FnData).Body]
	tail := blockOf(t, body.Value).Expr
	dest := tail.Data.(*hir.BreakData).Dest
	if dest.Kind != hir.DestError || dest.Err != hir.DestErrOutsideLoop {
		t.Fatalf("destination = %v/%v, want Error/OutsideLoop", dest.Kind, dest.Err)
	}
}

func TestBreakInLoopCondition(t *testing.T) {
	e := newErrUnit(t)
	brk := e.expr(ast.ExprBreak, &ast.BreakData{})
	loop := e.expr(ast.ExprWhile, &ast.WhileData{
		Cond: brk,
		Body: &ast.Block{ID: e.ids.Next()},
	})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Stmts: []*ast.Stmt{{
		ID:   e.ids.Next(),
		Kind: ast.StmtExpr,
		Data: &ast.ExprStmtData{Expr: loop, Semi: true},
	}}})

	_, bag := e.lower(t)
	if !hasCode(bag, diag.LowBreakInCondition) {
		t.Fatalf("expected %v, got %v", diag.LowBreakInCondition, diagCodes(bag))
	}
}

func TestContinueOutsideLoop(t *testing.T) {
	e := newErrUnit(t)
	cont := e.expr(ast.ExprContinue, &ast.ContinueData{})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: cont})

	_, bag := e.lower(t)
	if !hasCode(bag, diag.LowContinueOutside) {
		t.Fatalf("expected %v, got %v", diag.LowContinueOutside, diagCodes(bag))
	}
}

func TestUnresolvedLabel(t *testing.T) {
	e := newErrUnit(t)
	lbl := &ast.Label{ID: e.ids.Next(), Name: e.strings.Intern("missing")}
	brk := e.expr(ast.ExprBreak, &ast.BreakData{Label: lbl})
	loop := e.expr(ast.ExprLoop, &ast.LoopData{
		Body: &ast.Block{ID: e.ids.Next(), Stmts: []*ast.Stmt{{
			ID:   e.ids.Next(),
			Kind: ast.StmtExpr,
			Data: &ast.ExprStmtData{Expr: brk, Semi: true},
		}}},
	})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: loop})

	_, bag := e.lower(t)
	if !hasCode(bag, diag.LowUnresolvedLabel) {
		t.Fatalf("expected %v, got %v", diag.LowUnresolvedLabel, diagCodes(bag))
	}
}

func TestParenExprKeepsOuterIdentity(t *testing.T) {
	e := newErrUnit(t)
	inner := e.expr(ast.ExprLit, &ast.LitData{Kind: ast.LitInt, IntValue: 3})
	paren := e.expr(ast.ExprParen, &ast.ParenData{Inner: inner})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: paren})

	u, bag := e.lower(t)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}
	var item *hir.Item
	for _, it := range u.Items {
		item = it
	}
	body := u.Bodies[item.Data.(*hir.FnData).Body]
	tail := blockOf(t, body.Value).Expr
	if tail.Kind != hir.ExprLit {
		t.Fatalf("paren tail is %s, want the inner literal", tail.Kind)
	}
	if got := e.defs.NodeToID(paren.ID); got != tail.ID {
		t.Fatalf("paren node maps to %s, expression carries %s", got, tail.ID)
	}
}
