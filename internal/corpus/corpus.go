// Package corpus provides small in-memory surface programs with their
// name resolutions and definition tables filled in, the way the parser
// and resolver would leave them. The lowering tests and the fixtures
// command both run off these programs.
package corpus

import (
	"bytes"

	"sable/internal/ast"
	"sable/internal/hir"
	"sable/internal/project"
	"sable/internal/resolve"
	"sable/internal/source"
)

// Program is one ready-to-lower surface unit.
type Program struct {
	Name        string
	Unit        *ast.Unit
	IDs         *ast.IDSource
	Strings     *source.Interner
	Files       *source.FileSet
	Resolutions *resolve.Table
	Defs        *hir.Registry
	Features    project.Features
}

// All returns every fixture program, freshly built.
func All() []*Program {
	return []*Program{
		Iterate(),
		Fallible(),
		Regions(),
		Opaque(),
		Machinery(),
		Imports(),
		Ranges(),
		Placement(),
	}
}

const fixtureSize = 1 << 13

type build struct {
	prog *Program
	file source.FileID
	pos  uint32
}

func newBuild(name string, feats project.Features) *build {
	strings := source.NewInterner()
	files := source.NewFileSet()
	ids := ast.NewIDSource(1)

	b := &build{prog: &Program{
		Name:        name,
		IDs:         ids,
		Strings:     strings,
		Files:       files,
		Resolutions: resolve.NewTable(strings),
		Features:    feats,
	}}
	b.file = files.AddVirtual(name+".sb", bytes.Repeat([]byte{' '}, fixtureSize))

	unitID := ids.Next()
	unitSpan := source.Span{File: b.file, Start: 0, End: fixtureSize}
	b.prog.Unit = &ast.Unit{ID: unitID, Name: name, Span: unitSpan}
	b.prog.Defs = hir.NewRegistry(unitID, strings.Intern(name), unitSpan)
	registerBuiltins(b.prog.Resolutions)
	return b
}

func (b *build) finish(items ...*ast.Item) *Program {
	b.prog.Unit.Items = items
	return b.prog
}

// sp hands out short non-overlapping spans in file order, so span-sorted
// outputs follow construction order.
func (b *build) sp() source.Span {
	b.pos += 4
	return source.Span{File: b.file, Start: b.pos - 4, End: b.pos - 1}
}

func (b *build) id() ast.NodeID { return b.prog.IDs.Next() }

func (b *build) str(s string) source.StringID { return b.prog.Strings.InternIdent(s) }

func (b *build) resolve(n ast.NodeID, res hir.Res) {
	b.prog.Resolutions.Set(n, resolve.Resolution{Res: res})
}

func (b *build) def(parent hir.OwnerID, node ast.NodeID, kind hir.DefKind, name string, span source.Span) hir.OwnerID {
	return b.prog.Defs.Create(parent, node, kind, b.str(name), span)
}

func (b *build) root() hir.OwnerID { return b.prog.Defs.Root() }

// --- expressions ---

func (b *build) expr(kind ast.ExprKind, data ast.ExprData) *ast.Expr {
	return &ast.Expr{ID: b.id(), Kind: kind, Span: b.sp(), Data: data}
}

func (b *build) intLit(v int64) *ast.Expr {
	return b.expr(ast.ExprLit, &ast.LitData{Kind: ast.LitInt, IntValue: v})
}

func (b *build) path(names ...string) *ast.Path {
	segs := make([]ast.PathSeg, 0, len(names))
	for _, n := range names {
		segs = append(segs, ast.PathSeg{Name: b.str(n)})
	}
	return &ast.Path{Span: b.sp(), Segments: segs}
}

// pathExpr references a named definition; res is what the resolver
// recorded for it.
func (b *build) pathExpr(res hir.Res, names ...string) *ast.Expr {
	e := b.expr(ast.ExprPath, &ast.PathExprData{Path: b.path(names...)})
	b.resolve(e.ID, res)
	return e
}

// localRef references a binding introduced by a pattern.
func (b *build) localRef(name string, binding ast.NodeID) *ast.Expr {
	return b.pathExpr(hir.Res{Kind: hir.ResLocal, Node: binding}, name)
}

func (b *build) binary(op ast.BinOp, l, r *ast.Expr) *ast.Expr {
	return b.expr(ast.ExprBinary, &ast.BinaryData{Op: op, Left: l, Right: r})
}

func (b *build) assign(target, value *ast.Expr) *ast.Expr {
	return b.expr(ast.ExprAssign, &ast.AssignData{Target: target, Value: value})
}

func (b *build) deref(e *ast.Expr) *ast.Expr {
	return b.expr(ast.ExprUnary, &ast.UnaryData{Op: ast.UnaryDeref, Operand: e})
}

// --- statements and blocks ---

func (b *build) block(stmts []*ast.Stmt, tail *ast.Expr) *ast.Block {
	return &ast.Block{ID: b.id(), Span: b.sp(), Stmts: stmts, Expr: tail}
}

func (b *build) let(pat *ast.Pat, init *ast.Expr) *ast.Stmt {
	return &ast.Stmt{ID: b.id(), Kind: ast.StmtLet, Span: b.sp(), Data: &ast.LetData{Pat: pat, Init: init}}
}

func (b *build) semi(e *ast.Expr) *ast.Stmt {
	return &ast.Stmt{ID: b.id(), Kind: ast.StmtExpr, Span: e.Span, Data: &ast.ExprStmtData{Expr: e, Semi: true}}
}

// --- patterns ---

func (b *build) bind(name string, mut bool) *ast.Pat {
	return &ast.Pat{
		ID:   b.id(),
		Kind: ast.PatBind,
		Span: b.sp(),
		Data: &ast.PatBindData{Name: b.str(name), Mut: mut},
	}
}

// enumPat is a tuple-variant pattern; res is the variant resolution.
func (b *build) enumPat(res hir.Res, elems []*ast.Pat, names ...string) *ast.Pat {
	p := &ast.Pat{
		ID:   b.id(),
		Kind: ast.PatEnum,
		Span: b.sp(),
		Data: &ast.PatEnumData{Path: b.path(names...), Elems: elems},
	}
	b.resolve(p.ID, res)
	return p
}

// --- types ---

func (b *build) ty(kind ast.TyKind, data ast.TyData) *ast.Ty {
	return &ast.Ty{ID: b.id(), Kind: kind, Span: b.sp(), Data: data}
}

// tyName is a bare named type left for later phases to interpret.
func (b *build) tyName(name string) *ast.Ty {
	return b.ty(ast.TyPath, &ast.TyPathData{Path: b.path(name)})
}

// tyRef is `&'r T`; region may be empty for elision.
func (b *build) tyRef(region string, elem *ast.Ty) *ast.Ty {
	data := &ast.TyRefData{Elem: elem}
	if region != "" {
		r := b.region(region)
		data.Region = &r
	}
	return b.ty(ast.TyRef, data)
}

func (b *build) region(name string) ast.Region {
	return ast.Region{ID: b.id(), Name: b.str(name), Span: b.sp()}
}

func (b *build) regionParam(name string) ast.RegionParam {
	return ast.RegionParam{Region: b.region(name)}
}

// --- items ---

func (b *build) param(pat *ast.Pat, ty *ast.Ty) ast.Param {
	return ast.Param{ID: b.id(), Pat: pat, Ty: ty, Span: b.sp()}
}

// fn builds a free function item and its definition.
func (b *build) fn(name string, generics ast.Generics, params []ast.Param, ret *ast.Ty, body *ast.Block) *ast.Item {
	id := b.id()
	span := b.sp()
	b.def(b.root(), id, hir.DefFn, name, span)
	return &ast.Item{
		ID:   id,
		Kind: ast.ItemFn,
		Name: b.str(name),
		Span: span,
		Data: &ast.FnData{Generics: generics, Params: params, Ret: ret, Body: body},
	}
}

func registerBuiltins(t *resolve.Table) {
	method := hir.Res{Kind: hir.ResMethod}
	variant := hir.Res{Kind: hir.ResVariant}
	strct := hir.Res{Kind: hir.ResStruct}
	free := hir.Res{Kind: hir.ResFn}
	for path, res := range map[string]hir.Res{
		"std::iter::IntoIterator::into_iter": method,
		"std::iter::Iterator::next":          method,
		"std::option::Option::Some":          variant,
		"std::option::Option::None":          variant,
		"std::result::Result::Ok":            variant,
		"std::result::Result::Err":           variant,
		"std::ops::Try::into_result":         method,
		"std::ops::Try::from_error":          method,
		"std::convert::From::from":           method,
		"std::ops::Placer::make_place":       method,
		"std::ops::Place::pointer":           method,
		"std::ops::InPlace::finalize":        method,
		"std::mem::move_init":                free,
		"std::ops::RangeFull":                strct,
		"std::ops::RangeFrom":                strct,
		"std::ops::RangeTo":                  strct,
		"std::ops::Range":                    strct,
		"std::ops::RangeToInclusive":         strct,
		"std::ops::RangeInclusive":           strct,
	} {
		t.SetBuiltin(path, res)
	}
}
