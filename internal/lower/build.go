package lower

import (
	"sable/internal/ast"
	"sable/internal/hir"
	"sable/internal/resolve"
	"sable/internal/source"
)

// Constructors for nodes with no surface counterpart. Every one mints a
// fresh surface node first so the canonical identity has a node to hang
// off, same as user-written code.

func (lo *Lowerer) mkExpr(span source.Span, kind hir.ExprKind, data hir.ExprData) *hir.Expr {
	return &hir.Expr{ID: lo.next().id, Kind: kind, Span: span, Data: data}
}

func (lo *Lowerer) exprBlock(b *hir.Block) *hir.Expr {
	return lo.mkExpr(b.Span, hir.ExprBlock, &hir.BlockData{Block: b})
}

func (lo *Lowerer) exprUnit(span source.Span) *hir.Expr {
	return lo.mkExpr(span, hir.ExprTuple, &hir.TupleData{})
}

func (lo *Lowerer) exprCall(span source.Span, callee *hir.Expr, args ...*hir.Expr) *hir.Expr {
	return lo.mkExpr(span, hir.ExprCall, &hir.CallData{Callee: callee, Args: args})
}

// exprIdent references a binding introduced by a fabricated pattern.
func (lo *Lowerer) exprIdent(span source.Span, name source.StringID, binding ast.NodeID) *hir.Expr {
	path := &hir.Path{
		Span:     span,
		Res:      hir.Res{Kind: hir.ResLocal, Node: binding},
		Segments: []hir.PathSeg{{Name: name, Args: hir.PathArgs{InferTypes: true}}},
	}
	return lo.mkExpr(span, hir.ExprPath, &hir.PathData{QPath: hir.QPath{Kind: hir.QPathResolved, Path: path}})
}

// stdPath builds a `std::...` path and resolves it against the builtin
// table.
func (lo *Lowerer) stdPath(span source.Span, ns resolve.Namespace, components ...string) *hir.Path {
	segs := make([]hir.PathSeg, 0, len(components)+1)
	segs = append(segs, hir.PathSeg{Name: lo.names.std})
	for _, c := range components {
		segs = append(segs, hir.PathSeg{Name: lo.strings.Intern(c)})
	}
	p := &hir.Path{Span: span, Segments: segs}
	lo.resolver.ResolvePath(p, ns)
	return p
}

func (lo *Lowerer) exprStd(span source.Span, components ...string) *hir.Expr {
	p := lo.stdPath(span, resolve.NSValue, components...)
	return lo.mkExpr(span, hir.ExprPath, &hir.PathData{QPath: hir.QPath{Kind: hir.QPathResolved, Path: p}})
}

func (lo *Lowerer) exprStdCall(span source.Span, components []string, args ...*hir.Expr) *hir.Expr {
	return lo.exprCall(span, lo.exprStd(span, components...), args...)
}

// breakTo is an unlabeled break out of the loop being fabricated.
func (lo *Lowerer) breakTo(span source.Span, target ast.NodeID) *hir.Expr {
	return lo.mkExpr(span, hir.ExprBreak, &hir.BreakData{
		Dest: hir.Destination{Kind: hir.DestLoop, Target: target},
	})
}

func (lo *Lowerer) patWild(span source.Span) *hir.Pat {
	return &hir.Pat{ID: lo.next().id, Kind: hir.PatWild, Span: span}
}

// patIdent introduces a by-value binding; the returned node id is what
// references to the binding resolve to.
func (lo *Lowerer) patIdent(span source.Span, name source.StringID) (*hir.Pat, ast.NodeID) {
	return lo.patBind(span, name, hir.BindByValue)
}

func (lo *Lowerer) patIdentMut(span source.Span, name source.StringID) (*hir.Pat, ast.NodeID) {
	return lo.patBind(span, name, hir.BindByValueMut)
}

func (lo *Lowerer) patBind(span source.Span, name source.StringID, mode hir.BindMode) (*hir.Pat, ast.NodeID) {
	l := lo.next()
	pat := &hir.Pat{
		ID:   l.id,
		Kind: hir.PatBind,
		Span: span,
		Data: &hir.PatBindData{Mode: mode, Name: name},
	}
	return pat, l.node
}

// patStd is a tuple-variant pattern over a builtin path, e.g.
// `std::option::Option::Some(sub)`.
func (lo *Lowerer) patStd(span source.Span, components []string, elems ...*hir.Pat) *hir.Pat {
	p := lo.stdPath(span, resolve.NSValue, components...)
	return &hir.Pat{
		ID:   lo.next().id,
		Kind: hir.PatEnum,
		Span: span,
		Data: &hir.PatEnumData{
			QPath: hir.QPath{Kind: hir.QPathResolved, Path: p},
			Elems: elems,
		},
	}
}

func (lo *Lowerer) stmtLet(span source.Span, pat *hir.Pat, init *hir.Expr, src hir.LetSource) *hir.Stmt {
	return &hir.Stmt{
		ID:   lo.next().id,
		Kind: hir.StmtLet,
		Span: span,
		Data: &hir.LetData{Pat: pat, Init: init, Source: src},
	}
}

func (lo *Lowerer) stmtExpr(e *hir.Expr) *hir.Stmt {
	return &hir.Stmt{
		ID:   lo.next().id,
		Kind: hir.StmtExpr,
		Span: e.Span,
		Data: &hir.ExprStmtData{Expr: e, Semi: true},
	}
}

func (lo *Lowerer) mkBlock(span source.Span, stmts []*hir.Stmt, tail *hir.Expr) *hir.Block {
	return &hir.Block{ID: lo.next().id, Span: span, Stmts: stmts, Expr: tail}
}

func mkArm(body *hir.Expr, pats ...*hir.Pat) hir.Arm {
	return hir.Arm{Pats: pats, Body: body}
}
