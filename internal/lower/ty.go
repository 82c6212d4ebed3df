package lower

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/source"
)

// OpaqueKind says what happens to `opaque Bound` sugar in the current
// type position.
type OpaqueKind uint8

const (
	// OpaqueDisallowed rejects the sugar with a diagnostic.
	OpaqueDisallowed OpaqueKind = iota
	// OpaqueUniversal turns the sugar into a synthetic type parameter of
	// the enclosing signature. Argument positions use this.
	OpaqueUniversal
	// OpaqueExistential turns the sugar into an existential type that
	// captures its free regions. Return positions use this.
	OpaqueExistential
)

// OpaqueContext is the opaque-sugar policy threaded through type
// lowering. Parent is the definition synthetic parameters attach to in
// the universal case.
type OpaqueContext struct {
	Kind   OpaqueKind
	Parent hir.OwnerID
}

func opaqueDisallowed() OpaqueContext {
	return OpaqueContext{Kind: OpaqueDisallowed}
}

func opaqueUniversal(parent hir.OwnerID) OpaqueContext {
	return OpaqueContext{Kind: OpaqueUniversal, Parent: parent}
}

func opaqueExistential() OpaqueContext {
	return OpaqueContext{Kind: OpaqueExistential}
}

func (lo *Lowerer) lowerTy(t *ast.Ty, octx OpaqueContext) *hir.Ty {
	switch t.Kind {
	case ast.TyInfer:
		return lo.tyFor(t, hir.TyInfer, nil)
	case ast.TyNever:
		return lo.tyFor(t, hir.TyNever, nil)
	case ast.TyParen:
		// Parentheses vanish; the inner node is the canonical one.
		return lo.lowerTy(t.Data.(*ast.TyParenData).Inner, octx)
	case ast.TyRef:
		data := t.Data.(*ast.TyRefData)
		var region hir.Region
		if data.Region != nil {
			region = lo.lowerRegion(*data.Region)
		} else {
			region = lo.elidedRegion(t.Span)
		}
		return lo.tyFor(t, hir.TyRef, &hir.TyRefData{
			Region: region,
			Mut:    data.Mut,
			Elem:   lo.lowerTy(data.Elem, octx),
		})
	case ast.TySlice:
		data := t.Data.(*ast.TySliceData)
		return lo.tyFor(t, hir.TySlice, &hir.TySliceData{Elem: lo.lowerTy(data.Elem, octx)})
	case ast.TyArray:
		data := t.Data.(*ast.TyArrayData)
		elem := lo.lowerTy(data.Elem, octx)
		length := lo.lowerBody(nil, func() *hir.Expr { return lo.lowerExpr(data.Len) })
		return lo.tyFor(t, hir.TyArray, &hir.TyArrayData{Elem: elem, Len: length})
	case ast.TyTuple:
		data := t.Data.(*ast.TyTupleData)
		elems := make([]*hir.Ty, 0, len(data.Elems))
		for _, e := range data.Elems {
			elems = append(elems, lo.lowerTy(e, octx))
		}
		return lo.tyFor(t, hir.TyTuple, &hir.TyTupleData{Elems: elems})
	case ast.TyFnPtr:
		data := t.Data.(*ast.TyFnPtrData)
		return withVisibleRegions(lo, data.Binders, func() *hir.Ty {
			params := make([]*hir.Ty, 0, len(data.Params))
			for _, p := range data.Params {
				params = append(params, lo.lowerTy(p, opaqueDisallowed()))
			}
			var ret *hir.Ty
			if data.Ret != nil {
				ret = lo.lowerTy(data.Ret, opaqueDisallowed())
			}
			return lo.tyFor(t, hir.TyFnPtr, &hir.TyFnPtrData{
				Binders: lo.lowerRegionParams(data.Binders),
				Decl:    &hir.FnDecl{Params: params, Ret: ret},
			})
		})
	case ast.TyPath:
		data := t.Data.(*ast.TyPathData)
		qpath := lo.lowerQPath(t.ID, data.QSelf, data.Path, paramExplicit, octx)
		return lo.tyFor(t, hir.TyPath, &hir.TyPathData{QPath: qpath})
	case ast.TyOpaque:
		return lo.lowerOpaqueTy(t, t.Data.(*ast.TyOpaqueData), octx)
	default:
		bug("unknown surface type kind %s", t.Kind)
		return nil
	}
}

func (lo *Lowerer) tyFor(t *ast.Ty, kind hir.TyKind, data hir.TyData) *hir.Ty {
	return &hir.Ty{ID: lo.ensure(t.ID), Kind: kind, Span: t.Span, Data: data}
}

func (lo *Lowerer) lowerOpaqueTy(t *ast.Ty, data *ast.TyOpaqueData, octx OpaqueContext) *hir.Ty {
	switch octx.Kind {
	case OpaqueExistential:
		def, ok := lo.defs.Opt(t.ID)
		if !ok {
			bug("existential type %s has no definition", t.ID)
		}
		bounds := lo.lowerBounds(data.Bounds, octx)
		regions, regionDefs := lo.captureOpaqueRegions(def, bounds)
		return lo.tyFor(t, hir.TyOpaque, &hir.TyOpaqueData{
			Def:      def,
			Generics: hir.Generics{Regions: regionDefs, Span: t.Span},
			Bounds:   bounds,
			Regions:  regions,
		})

	case OpaqueUniversal:
		bounds := lo.lowerBounds(data.Bounds, octx)
		param := lo.next()
		name := lo.gensym("opaque")
		def := lo.defs.Create(octx.Parent, param.node, hir.DefTypeParam, name, t.Span)
		lo.pendingTypeParams = append(lo.pendingTypeParams, hir.TypeParam{
			ID:        param.id,
			Name:      name,
			Bounds:    bounds,
			Synthetic: true,
			Span:      t.Span,
		})
		path := &hir.Path{
			Span:     t.Span,
			Res:      hir.Res{Kind: hir.ResTypeParam, Owner: def, Node: param.node},
			Segments: []hir.PathSeg{{Name: name}},
		}
		return lo.tyFor(t, hir.TyPath, &hir.TyPathData{
			QPath: hir.QPath{Kind: hir.QPathResolved, Path: path},
		})

	default:
		lo.errorf(diag.LowOpaqueDisallowed, t.Span,
			"opaque type sugar is only allowed in function and method signatures")
		return lo.tyFor(t, hir.TyErr, nil)
	}
}

// lowerFnDecl lowers a signature. fnDef decides the argument-position
// opaque policy: with a definition the sugar becomes a synthetic param,
// without one (function pointers, closures) it is rejected. retOpaque
// additionally permits existential sugar in the return type.
func (lo *Lowerer) lowerFnDecl(params []ast.Param, ret *ast.Ty, fnDef hir.OwnerID, retOpaque bool) *hir.FnDecl {
	argCtx := opaqueDisallowed()
	if fnDef != hir.NoOwner {
		argCtx = opaqueUniversal(fnDef)
	}
	inputs := make([]*hir.Ty, 0, len(params))
	for i := range params {
		p := &params[i]
		if p.Ty == nil {
			inputs = append(inputs, lo.inferTy(p.Span))
			continue
		}
		inputs = append(inputs, lo.lowerTy(p.Ty, argCtx))
	}
	var output *hir.Ty
	if ret != nil {
		retCtx := opaqueDisallowed()
		if fnDef != hir.NoOwner && retOpaque {
			retCtx = opaqueExistential()
		}
		output = lo.lowerTy(ret, retCtx)
	}
	return &hir.FnDecl{Params: inputs, Ret: output}
}

// inferTy makes an inference placeholder for a position with no written
// type, like an unannotated closure parameter.
func (lo *Lowerer) inferTy(span source.Span) *hir.Ty {
	return &hir.Ty{ID: lo.next().id, Kind: hir.TyInfer, Span: span}
}
