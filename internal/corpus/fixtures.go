package corpus

import (
	"sable/internal/ast"
	"sable/internal/hir"
	"sable/internal/project"
)

// Iterate covers the conditional and loop rewrites: a labeled for-in
// with a labeled break, a plain while, a while-let and an if-let.
//
//	fn total(xs: &[u32]) -> u32 {
//	    let mut acc = 0;
//	    'outer: for x in xs {
//	        if *x > 9 { break 'outer; }
//	        acc = acc + *x;
//	    }
//	    while acc > 9000 { acc = acc - 1; }
//	    while let Some(v) = acc { acc = v; }
//	    if let Some(w) = acc { acc = w; }
//	    acc
//	}
func Iterate() *Program {
	b := newBuild("iterate", project.Features{})

	xsPat := b.bind("xs", false)
	accPat := b.bind("acc", true)
	xPat := b.bind("x", false)

	declLbl := &ast.Label{ID: b.id(), Name: b.str("outer"), Span: b.sp()}
	useLbl := &ast.Label{ID: b.id(), Name: b.str("outer"), Span: b.sp()}
	brk := b.expr(ast.ExprBreak, &ast.BreakData{Label: useLbl})
	guard := b.expr(ast.ExprIf, &ast.IfData{
		Cond: b.binary(ast.BinGt, b.deref(b.localRef("x", xPat.ID)), b.intLit(9)),
		Then: b.block([]*ast.Stmt{b.semi(brk)}, nil),
	})
	accum := b.assign(
		b.localRef("acc", accPat.ID),
		b.binary(ast.BinAdd, b.localRef("acc", accPat.ID), b.deref(b.localRef("x", xPat.ID))),
	)
	forExpr := b.expr(ast.ExprForIn, &ast.ForInData{
		Label: declLbl,
		Pat:   xPat,
		Head:  b.localRef("xs", xsPat.ID),
		Body:  b.block([]*ast.Stmt{b.semi(guard), b.semi(accum)}, nil),
	})
	b.resolve(useLbl.ID, hir.Res{Kind: hir.ResLabel, Node: forExpr.ID})

	whileExpr := b.expr(ast.ExprWhile, &ast.WhileData{
		Cond: b.binary(ast.BinGt, b.localRef("acc", accPat.ID), b.intLit(9000)),
		Body: b.block([]*ast.Stmt{b.semi(b.assign(
			b.localRef("acc", accPat.ID),
			b.binary(ast.BinSub, b.localRef("acc", accPat.ID), b.intLit(1)),
		))}, nil),
	})

	vPat := b.bind("v", false)
	somePat := b.enumPat(hir.Res{Kind: hir.ResVariant}, []*ast.Pat{vPat}, "std", "option", "Option", "Some")
	whileLet := b.expr(ast.ExprWhileLet, &ast.WhileLetData{
		Pat:  somePat,
		Init: b.localRef("acc", accPat.ID),
		Body: b.block([]*ast.Stmt{b.semi(b.assign(b.localRef("acc", accPat.ID), b.localRef("v", vPat.ID)))}, nil),
	})

	wPat := b.bind("w", false)
	someW := b.enumPat(hir.Res{Kind: hir.ResVariant}, []*ast.Pat{wPat}, "std", "option", "Option", "Some")
	ifLet := b.expr(ast.ExprIfLet, &ast.IfLetData{
		Pat:  someW,
		Init: b.localRef("acc", accPat.ID),
		Then: b.block([]*ast.Stmt{b.semi(b.assign(b.localRef("acc", accPat.ID), b.localRef("w", wPat.ID)))}, nil),
	})

	body := b.block([]*ast.Stmt{
		b.let(accPat, b.intLit(0)),
		b.semi(forExpr),
		b.semi(whileExpr),
		b.semi(whileLet),
		b.semi(ifLet),
	}, b.localRef("acc", accPat.ID))

	params := []ast.Param{b.param(xsPat, b.tyRef("", b.ty(ast.TySlice, &ast.TySliceData{Elem: b.tyName("u32")})))}
	return b.finish(b.fn("total", ast.Generics{}, params, b.tyName("u32"), body))
}

// Fallible covers the try operator in both of its exits: inside a catch
// block it breaks to the block, outside one it returns from the body.
//
//	fn load() -> u32 { 7 }
//	fn check() -> u32 { 1 }
//	fn fetch() -> u32 {
//	    let r = catch { let v = load()?; v };
//	    check()?;
//	    r
//	}
func Fallible() *Program {
	b := newBuild("fallible", project.Features{})

	load := b.fn("load", ast.Generics{}, nil, b.tyName("u32"), b.block(nil, b.intLit(7)))
	check := b.fn("check", ast.Generics{}, nil, b.tyName("u32"), b.block(nil, b.intLit(1)))
	loadDef, _ := b.prog.Defs.Opt(load.ID)
	checkDef, _ := b.prog.Defs.Opt(check.ID)

	vPat := b.bind("v", false)
	rPat := b.bind("r", false)

	loadCall := b.expr(ast.ExprCall, &ast.CallData{
		Callee: b.pathExpr(hir.Res{Kind: hir.ResFn, Owner: loadDef, Node: load.ID}, "load"),
	})
	loadTry := b.expr(ast.ExprTry, &ast.TryData{Operand: loadCall})
	catchBlock := b.block([]*ast.Stmt{b.let(vPat, loadTry)}, b.localRef("v", vPat.ID))
	catchExpr := b.expr(ast.ExprCatch, &ast.CatchData{Block: catchBlock})

	checkCall := b.expr(ast.ExprCall, &ast.CallData{
		Callee: b.pathExpr(hir.Res{Kind: hir.ResFn, Owner: checkDef, Node: check.ID}, "check"),
	})
	checkTry := b.expr(ast.ExprTry, &ast.TryData{Operand: checkCall})

	body := b.block([]*ast.Stmt{
		b.let(rPat, catchExpr),
		b.semi(checkTry),
	}, b.localRef("r", rPat.ID))

	return b.finish(load, check, b.fn("fetch", ast.Generics{}, nil, b.tyName("u32"), body))
}

// Regions covers region handling: a struct with a declared region
// parameter, path-argument elision against it, a signature whose free
// region name binds implicitly, one mixing a declared and a free name,
// and a reference with no region at all.
//
//	struct Holder<'h> { item: &'h u32 }
//	fn pick(a: &'x u32, c: &'x u32) -> &'x u32 { a }
//	fn peek(h: Holder) -> u32 { h.item }
//	fn swap<'d>(a: &'d u32, c: &'x u32) -> &'d u32 { a }
//	fn grab(v: &u32) -> u32 { *v }
func Regions() *Program {
	b := newBuild("regions", project.Features{ImplicitRegions: true})

	holderID := b.id()
	holderSpan := b.sp()
	holderDef := b.def(b.root(), holderID, hir.DefStruct, "Holder", holderSpan)
	itemField := ast.Field{
		ID:   b.id(),
		Name: b.str("item"),
		Ty:   b.tyRef("h", b.tyName("u32")),
		Span: b.sp(),
	}
	holder := &ast.Item{
		ID:   holderID,
		Kind: ast.ItemStruct,
		Name: b.str("Holder"),
		Span: holderSpan,
		Data: &ast.StructData{
			Generics: ast.Generics{Regions: []ast.RegionParam{b.regionParam("h")}},
			Variant:  ast.VariantData{Kind: ast.VariantStruct, Fields: []ast.Field{itemField}},
		},
	}

	aPat := b.bind("a", false)
	cPat := b.bind("c", false)
	pick := b.fn("pick", ast.Generics{},
		[]ast.Param{
			b.param(aPat, b.tyRef("x", b.tyName("u32"))),
			b.param(cPat, b.tyRef("x", b.tyName("u32"))),
		},
		b.tyRef("x", b.tyName("u32")),
		b.block(nil, b.localRef("a", aPat.ID)))

	hPat := b.bind("h", false)
	holderTy := b.ty(ast.TyPath, &ast.TyPathData{Path: b.path("Holder")})
	b.resolve(holderTy.ID, hir.Res{Kind: hir.ResStruct, Owner: holderDef, Node: holderID})
	peekBody := b.block(nil, b.expr(ast.ExprField, &ast.FieldData{
		Object: b.localRef("h", hPat.ID),
		Name:   b.str("item"),
	}))
	peek := b.fn("peek", ast.Generics{}, []ast.Param{b.param(hPat, holderTy)}, b.tyName("u32"), peekBody)

	saPat := b.bind("a", false)
	scPat := b.bind("c", false)
	swap := b.fn("swap",
		ast.Generics{Regions: []ast.RegionParam{b.regionParam("d")}},
		[]ast.Param{
			b.param(saPat, b.tyRef("d", b.tyName("u32"))),
			b.param(scPat, b.tyRef("x", b.tyName("u32"))),
		},
		b.tyRef("d", b.tyName("u32")),
		b.block(nil, b.localRef("a", saPat.ID)))

	vPat := b.bind("v", false)
	grab := b.fn("grab", ast.Generics{},
		[]ast.Param{b.param(vPat, b.tyRef("", b.tyName("u32")))},
		b.tyName("u32"),
		b.block(nil, b.deref(b.localRef("v", vPat.ID))))

	return b.finish(holder, pick, peek, swap, grab)
}

// Opaque covers opaque-type sugar on both sides of a signature: the
// argument becomes a synthetic type parameter, the return an
// existential with its own pre-registered definition.
//
//	trait Render {}
//	fn draw(shape: opaque Render) -> opaque Render { shape }
func Opaque() *Program {
	b := newBuild("opaque", project.Features{})

	renderID := b.id()
	renderSpan := b.sp()
	renderDef := b.def(b.root(), renderID, hir.DefTrait, "Render", renderSpan)
	render := &ast.Item{
		ID:   renderID,
		Kind: ast.ItemTrait,
		Name: b.str("Render"),
		Span: renderSpan,
		Data: &ast.TraitData{},
	}

	renderBound := func() ast.Bound {
		ref := ast.TraitRef{RefID: b.id(), Path: b.path("Render")}
		b.resolve(ref.RefID, hir.Res{Kind: hir.ResTrait, Owner: renderDef, Node: renderID})
		return ast.Bound{Kind: ast.BoundTrait, Trait: &ast.PolyTraitRef{Trait: ref, Span: b.sp()}}
	}

	drawID := b.id()
	drawSpan := b.sp()
	drawDef := b.def(b.root(), drawID, hir.DefFn, "draw", drawSpan)

	shapePat := b.bind("shape", false)
	argTy := b.ty(ast.TyOpaque, &ast.TyOpaqueData{Bounds: []ast.Bound{renderBound()}})
	retTy := b.ty(ast.TyOpaque, &ast.TyOpaqueData{Bounds: []ast.Bound{renderBound()}})
	b.def(drawDef, retTy.ID, hir.DefOpaque, "", retTy.Span)

	draw := &ast.Item{
		ID:   drawID,
		Kind: ast.ItemFn,
		Name: b.str("draw"),
		Span: drawSpan,
		Data: &ast.FnData{
			Params: []ast.Param{b.param(shapePat, argTy)},
			Ret:    retTy,
			Body:   b.block(nil, b.localRef("shape", shapePat.ID)),
		},
	}

	return b.finish(render, draw)
}

// Machinery covers the item-level plumbing: enum discriminants as
// nested bodies, trait items with and without defaults, a trait impl, a
// constant, a generator closure, and an optional bound relocated from
// the where clause.
//
//	const LIMIT: u32 = 8;
//	enum Level { Low = 1, High }
//	trait Greet { fn hi(n: u32) -> u32 { n } fn nod(n: u32) -> u32; }
//	impl Greet for Level { fn hi(n: u32) -> u32 { n } }
//	fn relaxed<T>(x: T) -> T where T: ?Greet { let g = || { yield 1; }; x }
func Machinery() *Program {
	b := newBuild("machinery", project.Features{})

	limitID := b.id()
	limitSpan := b.sp()
	b.def(b.root(), limitID, hir.DefConst, "LIMIT", limitSpan)
	limit := &ast.Item{
		ID:   limitID,
		Kind: ast.ItemConst,
		Name: b.str("LIMIT"),
		Span: limitSpan,
		Data: &ast.ConstData{Ty: b.tyName("u32"), Value: b.intLit(8)},
	}

	levelID := b.id()
	levelSpan := b.sp()
	levelDef := b.def(b.root(), levelID, hir.DefEnum, "Level", levelSpan)
	lowID := b.id()
	lowSpan := b.sp()
	b.def(levelDef, lowID, hir.DefVariant, "Low", lowSpan)
	highID := b.id()
	highSpan := b.sp()
	b.def(levelDef, highID, hir.DefVariant, "High", highSpan)
	level := &ast.Item{
		ID:   levelID,
		Kind: ast.ItemEnum,
		Name: b.str("Level"),
		Span: levelSpan,
		Data: &ast.EnumData{Variants: []ast.Variant{
			{ID: lowID, Name: b.str("Low"), Data: ast.VariantData{ID: b.id(), Kind: ast.VariantUnit}, Disr: b.intLit(1), Span: lowSpan},
			{ID: highID, Name: b.str("High"), Data: ast.VariantData{ID: b.id(), Kind: ast.VariantUnit}, Span: highSpan},
		}},
	}

	greetID := b.id()
	greetSpan := b.sp()
	greetDef := b.def(b.root(), greetID, hir.DefTrait, "Greet", greetSpan)

	method := func(parent hir.OwnerID, name string, withBody bool) *ast.TraitItem {
		id := b.id()
		span := b.sp()
		b.def(parent, id, hir.DefMethod, name, span)
		nPat := b.bind("n", false)
		data := &ast.TraitMethodData{
			Params: []ast.Param{b.param(nPat, b.tyName("u32"))},
			Ret:    b.tyName("u32"),
		}
		if withBody {
			data.Body = b.block(nil, b.localRef("n", nPat.ID))
		}
		return &ast.TraitItem{ID: id, Kind: ast.TraitItemMethod, Name: b.str(name), Span: span, Data: data}
	}
	greet := &ast.Item{
		ID:   greetID,
		Kind: ast.ItemTrait,
		Name: b.str("Greet"),
		Span: greetSpan,
		Data: &ast.TraitData{Items: []*ast.TraitItem{
			method(greetDef, "hi", true),
			method(greetDef, "nod", false),
		}},
	}

	implID := b.id()
	implSpan := b.sp()
	implDef := b.def(b.root(), implID, hir.DefImpl, "", implSpan)
	hiID := b.id()
	hiSpan := b.sp()
	b.def(implDef, hiID, hir.DefMethod, "hi", hiSpan)
	nPat := b.bind("n", false)
	hiImpl := &ast.ImplItem{
		ID:   hiID,
		Kind: ast.ImplItemMethod,
		Name: b.str("hi"),
		Span: hiSpan,
		Data: &ast.ImplMethodData{
			Params: []ast.Param{b.param(nPat, b.tyName("u32"))},
			Ret:    b.tyName("u32"),
			Body:   b.block(nil, b.localRef("n", nPat.ID)),
		},
	}
	greetRef := ast.TraitRef{RefID: b.id(), Path: b.path("Greet")}
	b.resolve(greetRef.RefID, hir.Res{Kind: hir.ResTrait, Owner: greetDef, Node: greetID})
	levelTy := b.ty(ast.TyPath, &ast.TyPathData{Path: b.path("Level")})
	b.resolve(levelTy.ID, hir.Res{Kind: hir.ResEnum, Owner: levelDef, Node: levelID})
	impl := &ast.Item{
		ID:   implID,
		Kind: ast.ItemImpl,
		Span: implSpan,
		Data: &ast.ImplData{
			Trait:  &greetRef,
			SelfTy: levelTy,
			Items:  []*ast.ImplItem{hiImpl},
		},
	}

	tParam := ast.TypeParam{ID: b.id(), Name: b.str("T"), Span: b.sp()}
	tRef := func() *ast.Ty {
		ty := b.ty(ast.TyPath, &ast.TyPathData{Path: b.path("T")})
		b.resolve(ty.ID, hir.Res{Kind: hir.ResTypeParam, Node: tParam.ID})
		return ty
	}
	optGreet := ast.TraitRef{RefID: b.id(), Path: b.path("Greet")}
	b.resolve(optGreet.RefID, hir.Res{Kind: hir.ResTrait, Owner: greetDef, Node: greetID})
	where := []ast.WherePred{{
		Kind: ast.WhereBound,
		Span: b.sp(),
		Ty:   tRef(),
		Bounds: []ast.Bound{{
			Kind:     ast.BoundTrait,
			Modifier: ast.BoundOptional,
			Trait:    &ast.PolyTraitRef{Trait: optGreet, Span: b.sp()},
		}},
	}}

	xPat := b.bind("x", false)
	gPat := b.bind("g", false)
	genBody := b.expr(ast.ExprBlock, &ast.BlockData{Block: b.block(
		[]*ast.Stmt{b.semi(b.expr(ast.ExprYield, &ast.YieldData{Value: b.intLit(1)}))}, nil)})
	closure := b.expr(ast.ExprClosure, &ast.ClosureData{Body: genBody})
	relaxed := b.fn("relaxed",
		ast.Generics{Types: []ast.TypeParam{tParam}, Where: where},
		[]ast.Param{b.param(xPat, tRef())},
		tRef(),
		b.block([]*ast.Stmt{b.let(gPat, closure)}, b.localRef("x", xPat.ID)))

	return b.finish(limit, level, greet, impl, relaxed)
}

// Imports covers import-tree flattening: a simple import, and a nested
// tree with an aliased leaf and a glob.
//
//	import std::mem::move_init;
//	import std::{iter::Iterator as It, ops::*};
func Imports() *Program {
	b := newBuild("imports", project.Features{})

	simpleID := b.id()
	simpleSpan := b.sp()
	b.def(b.root(), simpleID, hir.DefImport, "move_init", simpleSpan)
	simple := &ast.Item{
		ID:   simpleID,
		Kind: ast.ItemImport,
		Name: b.str("move_init"),
		Span: simpleSpan,
		Data: &ast.ImportData{Tree: &ast.ImportTree{
			ID:     b.id(),
			Kind:   ast.ImportSimple,
			Prefix: *b.path("std", "mem", "move_init"),
			Span:   simpleSpan,
		}},
	}

	nestedID := b.id()
	nestedSpan := b.sp()
	b.def(b.root(), nestedID, hir.DefImport, "", nestedSpan)
	iterID := b.id()
	iterSpan := b.sp()
	b.def(b.root(), iterID, hir.DefImport, "It", iterSpan)
	globID := b.id()
	globSpan := b.sp()
	b.def(b.root(), globID, hir.DefImport, "", globSpan)
	nested := &ast.Item{
		ID:   nestedID,
		Kind: ast.ItemImport,
		Span: nestedSpan,
		Data: &ast.ImportData{Tree: &ast.ImportTree{
			ID:     b.id(),
			Kind:   ast.ImportNested,
			Prefix: *b.path("std"),
			Span:   nestedSpan,
			Children: []*ast.ImportTree{
				{
					ID:     iterID,
					Kind:   ast.ImportSimple,
					Prefix: *b.path("iter", "Iterator"),
					Alias:  b.str("It"),
					Span:   iterSpan,
				},
				{
					ID:     globID,
					Kind:   ast.ImportGlob,
					Prefix: *b.path("ops"),
					Span:   globSpan,
				},
			},
		}},
	}

	return b.finish(simple, nested)
}

// Ranges covers every range form that has a value to build.
//
//	fn spans(lo: u32, hi: u32) {
//	    let a = lo..hi; let b = lo..; let c = ..hi;
//	    let d = ..; let e = lo..=hi; let f = ..=hi;
//	}
func Ranges() *Program {
	b := newBuild("ranges", project.Features{})

	loPat := b.bind("lo", false)
	hiPat := b.bind("hi", false)
	lo := func() *ast.Expr { return b.localRef("lo", loPat.ID) }
	hi := func() *ast.Expr { return b.localRef("hi", hiPat.ID) }

	rng := func(start, end *ast.Expr, limits ast.RangeLimits) *ast.Stmt {
		e := b.expr(ast.ExprRange, &ast.RangeData{Start: start, End: end, Limits: limits})
		return b.let(b.bind("r", false), e)
	}
	body := b.block([]*ast.Stmt{
		rng(lo(), hi(), ast.RangeHalfOpen),
		rng(lo(), nil, ast.RangeHalfOpen),
		rng(nil, hi(), ast.RangeHalfOpen),
		rng(nil, nil, ast.RangeHalfOpen),
		rng(lo(), hi(), ast.RangeClosed),
		rng(nil, hi(), ast.RangeClosed),
	}, nil)

	params := []ast.Param{b.param(loPat, b.tyName("u32")), b.param(hiPat, b.tyName("u32"))}
	return b.finish(b.fn("spans", ast.Generics{}, params, nil, body))
}

// Placement covers the feature-gated placement form.
//
//	fn put(slot: u32, v: u32) -> u32 { slot <- v }
func Placement() *Program {
	b := newBuild("placement", project.Features{Placement: true})

	slotPat := b.bind("slot", false)
	vPat := b.bind("v", false)
	place := b.expr(ast.ExprPlace, &ast.PlaceData{
		Placer: b.localRef("slot", slotPat.ID),
		Value:  b.localRef("v", vPat.ID),
	})
	body := b.block(nil, place)
	params := []ast.Param{b.param(slotPat, b.tyName("u32")), b.param(vPat, b.tyName("u32"))}
	return b.finish(b.fn("put", ast.Generics{}, params, b.tyName("u32"), body))
}
