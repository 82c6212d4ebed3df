package lower

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/resolve"
	"sable/internal/source"
)

// paramMode says whether omitted type arguments mean "infer them".
// Value positions may infer; type and import positions may not.
type paramMode uint8

const (
	paramExplicit paramMode = iota
	paramOptional
)

// parenPolicy is the per-segment verdict on parenthesized arguments.
type parenPolicy uint8

const (
	// parenReject drops the arguments with an error.
	parenReject parenPolicy = iota
	// parenCompat drops the arguments with a compatibility warning.
	parenCompat
	// parenAccept keeps them; only trait paths and their immediate
	// associated items get this.
	parenAccept
)

// lowerQPath lowers a possibly qualified path. The resolver's verdict
// for id splits the segments into a resolved base and a trailing run of
// type-relative extensions; each extension wraps the base in a fresh
// type node so every step has an identity of its own.
func (lo *Lowerer) lowerQPath(id ast.NodeID, qself *ast.QSelf, p *ast.Path, pm paramMode, octx OpaqueContext) hir.QPath {
	var res resolve.Resolution
	if r, ok := lo.resolver.Get(id); ok {
		res = r
	}
	if res.Unresolved > len(p.Segments) {
		bug("path %s: %d unresolved segments out of %d", id, res.Unresolved, len(p.Segments))
	}
	proj := len(p.Segments) - res.Unresolved

	var selfTy *hir.Ty
	if qself != nil {
		selfTy = lo.lowerTy(qself.Ty, octx)
	}

	segs := make([]hir.PathSeg, 0, proj)
	for i := 0; i < proj; i++ {
		segs = append(segs, lo.lowerPathSegment(
			p.Span,
			&p.Segments[i],
			pm,
			lo.segmentRegionCount(res.Res, i, proj),
			lo.segmentParenPolicy(res.Res, i, proj),
			octx,
		))
	}
	path := &hir.Path{Span: p.Span, Res: res.Res, Segments: segs}

	if res.Unresolved == 0 {
		return hir.QPath{Kind: hir.QPathResolved, SelfTy: selfTy, Path: path}
	}

	// Base type the first extension hangs off: the explicit qualifier
	// when nothing resolved, the resolved path otherwise.
	var base *hir.Ty
	if proj == 0 {
		if selfTy == nil {
			bug("path %s has unresolved segments and no base", id)
		}
		base = selfTy
	} else {
		base = &hir.Ty{
			ID:   lo.next().id,
			Kind: hir.TyPath,
			Span: p.Span,
			Data: &hir.TyPathData{QPath: hir.QPath{Kind: hir.QPathResolved, SelfTy: selfTy, Path: path}},
		}
	}

	for i := proj; i < len(p.Segments); i++ {
		seg := lo.lowerPathSegment(p.Span, &p.Segments[i], pm, 0, parenCompat, octx)
		q := hir.QPath{Kind: hir.QPathTypeRelative, Ty: base, Seg: &seg}
		if i == len(p.Segments)-1 {
			return q
		}
		base = &hir.Ty{
			ID:   lo.next().id,
			Kind: hir.TyPath,
			Span: p.Span,
			Data: &hir.TyPathData{QPath: q},
		}
	}
	bug("path %s ended while extending", id)
	return hir.QPath{}
}

// lowerPath lowers a plain path that must resolve fully, like an import
// prefix. Parenthesized arguments are never legal here.
func (lo *Lowerer) lowerPath(id ast.NodeID, p *ast.Path, pm paramMode) *hir.Path {
	var res resolve.Resolution
	if r, ok := lo.resolver.Get(id); ok {
		res = r
	}
	segs := make([]hir.PathSeg, 0, len(p.Segments))
	for i := range p.Segments {
		segs = append(segs, lo.lowerPathSegment(p.Span, &p.Segments[i], pm, 0, parenReject, opaqueDisallowed()))
	}
	return &hir.Path{Span: p.Span, Res: res.Res, Segments: segs}
}

// segmentRegionCount is how many elided region arguments segment i gets
// filled in, driven by the declared parameter count of the type
// definition the segment names.
func (lo *Lowerer) segmentRegionCount(res hir.Res, i, proj int) int {
	var def hir.OwnerID
	switch res.Kind {
	case hir.ResAssocType:
		// One segment back from the associated type is the trait.
		if i+2 == proj && res.Owner != hir.NoOwner {
			def = lo.defs.Def(res.Owner).Parent
		}
	case hir.ResVariant:
		if i+1 == proj && res.Owner != hir.NoOwner {
			def = lo.defs.Def(res.Owner).Parent
		}
	case hir.ResStruct, hir.ResUnion, hir.ResEnum, hir.ResTypeAlias, hir.ResTrait:
		if i+1 == proj {
			def = res.Owner
		}
	}
	if def == hir.NoOwner {
		return 0
	}
	return lo.typeDefRegionCount[def]
}

func (lo *Lowerer) segmentParenPolicy(res hir.Res, i, proj int) parenPolicy {
	switch res.Kind {
	case hir.ResStruct, hir.ResUnion, hir.ResEnum, hir.ResTypeAlias, hir.ResVariant:
		return parenReject
	case hir.ResTrait:
		if i+1 == proj {
			return parenAccept
		}
	case hir.ResMethod, hir.ResAssocConst, hir.ResAssocType:
		if i+2 == proj {
			return parenAccept
		}
	}
	return parenCompat
}

func (lo *Lowerer) lowerPathSegment(span source.Span, seg *ast.PathSeg, pm paramMode, numRegions int, policy parenPolicy, octx OpaqueContext) hir.PathSeg {
	if seg.Args != nil && seg.Args.Parenthesized {
		switch policy {
		case parenAccept:
			return hir.PathSeg{Name: seg.Name, Args: lo.lowerParenArgs(seg.Args)}
		case parenCompat:
			lo.warnf(diag.LowParenArgsCompat, seg.Args.Span,
				"parenthesized arguments outside a trait path are deprecated")
		default:
			lo.errorf(diag.LowParenArgsNonTrait, seg.Args.Span,
				"parenthesized arguments may only be used with a trait")
		}
		// Rejected argument lists vanish; elision fills the segment as
		// if nothing was written.
		return hir.PathSeg{Name: seg.Name, Args: lo.emptyAngleArgs(span, pm, numRegions)}
	}
	if seg.Args == nil {
		return hir.PathSeg{Name: seg.Name, Args: lo.emptyAngleArgs(span, pm, numRegions)}
	}
	return hir.PathSeg{Name: seg.Name, Args: lo.lowerAngleArgs(seg.Args, pm, numRegions, span, octx)}
}

func (lo *Lowerer) emptyAngleArgs(span source.Span, pm paramMode, numRegions int) hir.PathArgs {
	args := hir.PathArgs{InferTypes: pm == paramOptional}
	for i := 0; i < numRegions; i++ {
		args.Regions = append(args.Regions, lo.elidedRegion(span))
	}
	return args
}

func (lo *Lowerer) lowerAngleArgs(a *ast.PathArgs, pm paramMode, numRegions int, span source.Span, octx OpaqueContext) hir.PathArgs {
	args := hir.PathArgs{
		InferTypes: len(a.Types) == 0 && pm == paramOptional,
	}
	if len(a.Regions) == 0 {
		for i := 0; i < numRegions; i++ {
			args.Regions = append(args.Regions, lo.elidedRegion(span))
		}
	} else {
		args.Regions = lo.lowerRegionList(a.Regions)
	}
	for _, t := range a.Types {
		args.Types = append(args.Types, lo.lowerTy(t, octx))
	}
	for _, b := range a.Bindings {
		args.Bindings = append(args.Bindings, hir.TyBinding{
			ID:   lo.ensure(b.ID),
			Name: b.Name,
			Ty:   lo.lowerTy(b.Ty, octx),
			Span: b.Span,
		})
	}
	return args
}

// lowerParenArgs lowers `Trait(A, B) -> C` sugar. The inputs and output
// are plain types; nested opaque sugar is never allowed in them.
func (lo *Lowerer) lowerParenArgs(a *ast.PathArgs) hir.PathArgs {
	args := hir.PathArgs{Parenthesized: true}
	for _, t := range a.Inputs {
		args.Inputs = append(args.Inputs, lo.lowerTy(t, opaqueDisallowed()))
	}
	if a.Output != nil {
		args.Output = lo.lowerTy(a.Output, opaqueDisallowed())
	}
	return args
}
