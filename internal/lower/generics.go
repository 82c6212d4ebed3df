package lower

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
)

// addImplicitRegionDefs lowers an item's generics together with its
// signature f, then folds everything lowering produced on the side back
// into the parameter lists: implicit region parameters after the
// explicit ones, synthetic type parameters after the explicit ones.
func addImplicitRegionDefs[T any](lo *Lowerer, g *ast.Generics, parent hir.OwnerID, f func() T) (hir.Generics, T) {
	var generics hir.Generics
	var v T
	implicit := withVisibleRegions(lo, g.Regions, func() []hir.RegionParam {
		params, _ := collectImplicitRegions(lo, parent, func() struct{} {
			generics = lo.lowerGenerics(g)
			v = f()
			return struct{}{}
		})
		return params
	})
	generics.Regions = append(generics.Regions, implicit...)
	generics.Types = append(generics.Types, lo.drainSyntheticParams()...)
	return generics, v
}

func (lo *Lowerer) drainSyntheticParams() []hir.TypeParam {
	params := lo.pendingTypeParams
	lo.pendingTypeParams = nil
	return params
}

// lowerGenerics lowers parameter lists and the where clause. Optional
// bounds (`?Trait`) written in the where clause are only legal on a
// plain type parameter; legal ones move onto the parameter declaration
// and the rest are rejected.
func (lo *Lowerer) lowerGenerics(g *ast.Generics) hir.Generics {
	addBounds := make(map[ast.NodeID][]ast.Bound)
	for pi := range g.Where {
		pred := &g.Where[pi]
		if pred.Kind != ast.WhereBound {
			continue
		}
		for _, bound := range pred.Bounds {
			if bound.Kind != ast.BoundTrait || bound.Modifier != ast.BoundOptional {
				continue
			}
			if tp := lo.plainTypeParamOf(pred); tp != ast.NoNode {
				addBounds[tp] = append(addBounds[tp], bound)
				continue
			}
			lo.errorf(diag.LowOptionalBoundPos, pred.Span,
				"optional bounds are only permitted where a type parameter is declared")
		}
	}
	return hir.Generics{
		Regions: lo.lowerRegionParams(g.Regions),
		Types:   lo.lowerTypeParams(g.Types, addBounds),
		Where:   lo.lowerWhereClause(g.Where),
		Span:    g.Span,
	}
}

// plainTypeParamOf reports the declared type parameter a where
// predicate constrains directly, or NoNode when the bounded type is
// anything more complicated than a bare parameter name.
func (lo *Lowerer) plainTypeParamOf(pred *ast.WherePred) ast.NodeID {
	if len(pred.Binders) != 0 || pred.Ty == nil || pred.Ty.Kind != ast.TyPath {
		return ast.NoNode
	}
	data := pred.Ty.Data.(*ast.TyPathData)
	if data.QSelf != nil || len(data.Path.Segments) != 1 {
		return ast.NoNode
	}
	res, ok := lo.resolver.Get(pred.Ty.ID)
	if !ok || res.Res.Kind != hir.ResTypeParam {
		return ast.NoNode
	}
	return res.Res.Node
}

func (lo *Lowerer) lowerRegionParams(params []ast.RegionParam) []hir.RegionParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]hir.RegionParam, 0, len(params))
	for _, p := range params {
		out = append(out, lo.lowerRegionParam(p))
	}
	return out
}

// lowerRegionParam lowers one declared region parameter. Its own name
// and bounds never count as free occurrences.
func (lo *Lowerer) lowerRegionParam(p ast.RegionParam) hir.RegionParam {
	wasCollecting := lo.collectingImplicit
	lo.collectingImplicit = false
	out := hir.RegionParam{
		Region: lo.lowerRegion(p.Region),
		Bounds: lo.lowerRegionList(p.Bounds),
	}
	lo.collectingImplicit = wasCollecting
	return out
}

func (lo *Lowerer) lowerRegionList(regions []ast.Region) []hir.Region {
	if len(regions) == 0 {
		return nil
	}
	out := make([]hir.Region, 0, len(regions))
	for _, r := range regions {
		out = append(out, lo.lowerRegion(r))
	}
	return out
}

func (lo *Lowerer) lowerTypeParams(params []ast.TypeParam, add map[ast.NodeID][]ast.Bound) []hir.TypeParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]hir.TypeParam, 0, len(params))
	for _, p := range params {
		bounds := lo.lowerBounds(p.Bounds, opaqueDisallowed())
		for _, extra := range add[p.ID] {
			bounds = append(bounds, lo.lowerBound(extra, opaqueDisallowed()))
		}
		var def *hir.Ty
		if p.Default != nil {
			def = lo.lowerTy(p.Default, opaqueDisallowed())
		}
		out = append(out, hir.TypeParam{
			ID:      lo.ensure(p.ID),
			Name:    p.Name,
			Bounds:  bounds,
			Default: def,
			Span:    p.Span,
		})
	}
	return out
}

func (lo *Lowerer) lowerWhereClause(preds []ast.WherePred) hir.WhereClause {
	wc := hir.WhereClause{ID: lo.next().id}
	for pi := range preds {
		pred := &preds[pi]
		switch pred.Kind {
		case ast.WhereBound:
			wc.Preds = append(wc.Preds, withVisibleRegions(lo, pred.Binders, func() hir.WherePred {
				var bounds []hir.Bound
				for _, b := range pred.Bounds {
					// Optional bounds were relocated or rejected above.
					if b.Kind == ast.BoundTrait && b.Modifier == ast.BoundOptional {
						continue
					}
					bounds = append(bounds, lo.lowerBound(b, opaqueDisallowed()))
				}
				return hir.WherePred{
					Kind:    hir.WhereBound,
					Span:    pred.Span,
					Binders: lo.lowerRegionParams(pred.Binders),
					Ty:      lo.lowerTy(pred.Ty, opaqueDisallowed()),
					Bounds:  bounds,
				}
			}))
		case ast.WhereRegion:
			wc.Preds = append(wc.Preds, hir.WherePred{
				Kind:         hir.WhereRegion,
				Span:         pred.Span,
				Region:       lo.lowerRegion(pred.Region),
				RegionBounds: lo.lowerRegionList(pred.RegionBounds),
			})
		case ast.WhereEq:
			wc.Preds = append(wc.Preds, hir.WherePred{
				Kind: hir.WhereEq,
				Span: pred.Span,
				EqID: lo.ensure(pred.EqID),
				LHS:  lo.lowerTy(pred.LHS, opaqueDisallowed()),
				RHS:  lo.lowerTy(pred.RHS, opaqueDisallowed()),
			})
		}
	}
	return wc
}

func (lo *Lowerer) lowerBounds(bounds []ast.Bound, octx OpaqueContext) []hir.Bound {
	if len(bounds) == 0 {
		return nil
	}
	out := make([]hir.Bound, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, lo.lowerBound(b, octx))
	}
	return out
}

func (lo *Lowerer) lowerBound(b ast.Bound, octx OpaqueContext) hir.Bound {
	switch b.Kind {
	case ast.BoundTrait:
		pt := lo.lowerPolyTraitRef(b.Trait, octx)
		return hir.Bound{
			Kind:     hir.BoundTrait,
			Modifier: hir.BoundModifier(b.Modifier),
			Trait:    pt,
		}
	case ast.BoundRegion:
		return hir.Bound{Kind: hir.BoundRegion, Region: lo.lowerRegion(b.Region)}
	default:
		bug("unknown bound kind %d", b.Kind)
		return hir.Bound{}
	}
}

func (lo *Lowerer) lowerPolyTraitRef(p *ast.PolyTraitRef, octx OpaqueContext) *hir.PolyTraitRef {
	return withVisibleRegions(lo, p.Binders, func() *hir.PolyTraitRef {
		return &hir.PolyTraitRef{
			Binders: lo.lowerRegionParams(p.Binders),
			Trait:   lo.lowerTraitRef(p.Trait, octx),
			Span:    p.Span,
		}
	})
}

// lowerTraitRef lowers a trait reference. The path of a trait reference
// always resolves up front.
func (lo *Lowerer) lowerTraitRef(tr ast.TraitRef, octx OpaqueContext) hir.TraitRef {
	q := lo.lowerQPath(tr.RefID, nil, tr.Path, paramExplicit, octx)
	if q.Kind != hir.QPathResolved || q.SelfTy != nil {
		bug("trait reference %s lowered to a relative path", tr.RefID)
	}
	return hir.TraitRef{RefID: lo.ensure(tr.RefID), Path: q.Path}
}
