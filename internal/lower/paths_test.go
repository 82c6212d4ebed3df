package lower

import (
	"testing"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/resolve"
	"sable/internal/source"
)

func (e *errUnit) path(names ...string) *ast.Path {
	segs := make([]ast.PathSeg, len(names))
	for i, n := range names {
		segs[i] = ast.PathSeg{Name: e.strings.Intern(n)}
	}
	return &ast.Path{Segments: segs}
}

func (e *errUnit) pathExpr(p *ast.Path) *ast.Expr {
	return e.expr(ast.ExprPath, &ast.PathExprData{Path: p})
}

func tailPath(t *testing.T, u *hir.Unit) hir.QPath {
	t.Helper()
	var item *hir.Item
	for _, it := range u.Items {
		item = it
	}
	body := u.Bodies[item.Data.(*hir.FnData).Body]
	tail := blockOf(t, body.Value).Expr
	if tail.Kind != hir.ExprPath {
		t.Fatalf("tail expression is %s, want Path", tail.Kind)
	}
	return tail.Data.(*hir.PathData).QPath
}

// A path whose head resolves but whose tail does not becomes a chain of
// type-relative steps, each hanging off a synthesized type node with an
// identity of its own.
func TestTypeRelativeChainFreshIDs(t *testing.T) {
	e := newErrUnit(t)
	pe := e.pathExpr(e.path("Vec", "Item", "Assoc"))
	e.resolver.Set(pe.ID, resolve.Resolution{
		Res:        hir.Res{Kind: hir.ResStruct},
		Unresolved: 2,
	})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: pe})

	u, bag := e.lower(t)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	q := tailPath(t, u)
	if q.Kind != hir.QPathTypeRelative {
		t.Fatalf("outer qpath kind = %v, want TypeRelative", q.Kind)
	}
	if q.Seg.Name != e.strings.Intern("Assoc") {
		t.Fatalf("outer segment is not Assoc")
	}

	mid := q.Ty
	if mid == nil || mid.Kind != hir.TyPath {
		t.Fatalf("outer base is not a path type")
	}
	midQ := mid.Data.(*hir.TyPathData).QPath
	if midQ.Kind != hir.QPathTypeRelative || midQ.Seg.Name != e.strings.Intern("Item") {
		t.Fatalf("middle link is %v/%v, want TypeRelative Item", midQ.Kind, midQ.Seg)
	}

	base := midQ.Ty
	if base == nil || base.Kind != hir.TyPath {
		t.Fatalf("chain base is not a path type")
	}
	baseQ := base.Data.(*hir.TyPathData).QPath
	if baseQ.Kind != hir.QPathResolved {
		t.Fatalf("chain base kind = %v, want Resolved", baseQ.Kind)
	}
	if baseQ.Path.Res.Kind != hir.ResStruct || len(baseQ.Path.Segments) != 1 {
		t.Fatalf("resolved head = %v with %d segments, want the Vec struct",
			baseQ.Path.Res.Kind, len(baseQ.Path.Segments))
	}

	if !mid.ID.IsValid() || !base.ID.IsValid() {
		t.Fatalf("synthesized links carry invalid ids: %s, %s", mid.ID, base.ID)
	}
	if mid.ID == base.ID {
		t.Fatalf("links share identity %s", mid.ID)
	}
}

func TestParenArgsRejectedOnStructPath(t *testing.T) {
	e := newErrUnit(t)
	p := e.path("Point")
	p.Segments[0].Args = &ast.PathArgs{Parenthesized: true}
	pe := e.pathExpr(p)
	e.resolver.Set(pe.ID, resolve.Resolution{Res: hir.Res{Kind: hir.ResStruct}})
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: pe})

	u, bag := e.lower(t)
	if !hasCode(bag, diag.LowParenArgsNonTrait) {
		t.Fatalf("expected %v, got %v", diag.LowParenArgsNonTrait, diagCodes(bag))
	}
	if !bag.HasErrors() {
		t.Fatalf("rejection must be an error")
	}

	// Rejected argument lists vanish from the lowered segment.
	q := tailPath(t, u)
	if q.Kind != hir.QPathResolved {
		t.Fatalf("qpath kind = %v, want Resolved", q.Kind)
	}
	if args := q.Path.Segments[0].Args; args.Parenthesized || len(args.Inputs) != 0 {
		t.Fatalf("rejected arguments survived lowering: %+v", args)
	}
}

func TestParenArgsCompatWarning(t *testing.T) {
	e := newErrUnit(t)
	p := e.path("callback")
	p.Segments[0].Args = &ast.PathArgs{Parenthesized: true}
	e.fn(t, &ast.Block{ID: e.ids.Next(), Expr: e.pathExpr(p)})

	_, bag := e.lower(t)
	if !hasCode(bag, diag.LowParenArgsCompat) {
		t.Fatalf("expected %v, got %v", diag.LowParenArgsCompat, diagCodes(bag))
	}
	if bag.HasErrors() {
		t.Fatalf("compatibility path must stay a warning: %v", diagCodes(bag))
	}
}

// An optional bound whose subject is not a bare type parameter has
// nowhere to relocate to; it is reported and dropped.
func TestOptionalBoundOutsideTypeParam(t *testing.T) {
	e := newErrUnit(t)
	predTy := &ast.Ty{
		ID:   e.ids.Next(),
		Kind: ast.TyPath,
		Data: &ast.TyPathData{Path: e.path("Vec", "Item")},
	}
	where := []ast.WherePred{{
		Kind: ast.WhereBound,
		Ty:   predTy,
		Bounds: []ast.Bound{{
			Kind:     ast.BoundTrait,
			Modifier: ast.BoundOptional,
			Trait: &ast.PolyTraitRef{
				Trait: ast.TraitRef{RefID: e.ids.Next(), Path: e.path("Greet")},
			},
		}},
	}}

	id := e.ids.Next()
	e.defs.Create(e.defs.Root(), id, hir.DefFn, e.strings.Intern("f"), source.Span{})
	e.unit.Items = []*ast.Item{{
		ID:   id,
		Kind: ast.ItemFn,
		Name: e.strings.Intern("f"),
		Data: &ast.FnData{
			Generics: ast.Generics{Where: where},
			Body:     &ast.Block{ID: e.ids.Next()},
		},
	}}

	u, bag := e.lower(t)
	if !hasCode(bag, diag.LowOptionalBoundPos) {
		t.Fatalf("expected %v, got %v", diag.LowOptionalBoundPos, diagCodes(bag))
	}

	var item *hir.Item
	for _, it := range u.Items {
		item = it
	}
	preds := item.Data.(*hir.FnData).Generics.Where.Preds
	if len(preds) != 1 {
		t.Fatalf("lowered %d predicates, want 1", len(preds))
	}
	if len(preds[0].Bounds) != 0 {
		t.Fatalf("dropped bound survived: %+v", preds[0].Bounds)
	}
}
