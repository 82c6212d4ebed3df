package lower

import (
	"slices"

	"sable/internal/ast"
	"sable/internal/hir"
	"sable/internal/source"
)

// pendingRegion is a free region occurrence waiting to be promoted to
// an implicit parameter of the enclosing signature.
type pendingRegion struct {
	name source.StringID
	span source.Span
}

// lowerRegion lowers one written region occurrence. Free names are
// collected for implicit promotion when the feature is on.
func (lo *Lowerer) lowerRegion(r ast.Region) hir.Region {
	out := hir.Region{ID: lo.ensure(r.ID), Name: r.Name, Span: r.Span}
	switch r.Name {
	case lo.names.static_:
		out.Kind = hir.RegionStatic
	case lo.names.underscore:
		out.Kind = hir.RegionElided
	default:
		out.Kind = hir.RegionNamed
		lo.maybeCollectRegion(r.Name, r.Span)
	}
	return out
}

// elidedRegion makes the region a position omitted entirely, minting a
// node of its own.
func (lo *Lowerer) elidedRegion(span source.Span) hir.Region {
	return hir.Region{
		ID:   lo.next().id,
		Name: lo.names.underscore,
		Kind: hir.RegionElided,
		Span: span,
	}
}

func (lo *Lowerer) maybeCollectRegion(name source.StringID, span source.Span) {
	if !lo.collectingImplicit {
		return
	}
	if slices.Contains(lo.visibleRegions, name) {
		return
	}
	for _, p := range lo.pendingRegions {
		if p.name == name {
			return
		}
	}
	lo.pendingRegions = append(lo.pendingRegions, pendingRegion{name: name, span: span})
}

// collectImplicitRegions gathers the free region names f encounters and
// binds each as an implicit parameter under parent. With no parent the
// collected names are discarded. Collection does not nest.
func collectImplicitRegions[T any](lo *Lowerer, parent hir.OwnerID, f func() T) ([]hir.RegionParam, T) {
	if lo.collectingImplicit {
		bug("implicit region collection is not reentrant")
	}
	lo.collectingImplicit = lo.features.ImplicitRegions
	v := f()
	lo.collectingImplicit = false

	pending := lo.pendingRegions
	lo.pendingRegions = nil
	if parent == hir.NoOwner {
		return nil, v
	}
	params := make([]hir.RegionParam, 0, len(pending))
	for _, p := range pending {
		l := lo.next()
		lo.defs.Create(parent, l.node, hir.DefRegionParam, p.name, p.span)
		params = append(params, hir.RegionParam{
			Region:   hir.Region{ID: l.id, Name: p.name, Kind: hir.RegionNamed, Span: p.span},
			Implicit: true,
		})
	}
	return params, v
}

// withVisibleRegions marks the given parameter names as declared while
// lowering f, so occurrences of them are not collected as implicit.
func withVisibleRegions[T any](lo *Lowerer, params []ast.RegionParam, f func() T) T {
	names := make([]source.StringID, len(params))
	for i, p := range params {
		names[i] = p.Region.Name
	}
	return withVisibleRegionNames(lo, names, f)
}

func withVisibleRegionNames[T any](lo *Lowerer, names []source.StringID, f func() T) T {
	depth := len(lo.visibleRegions)
	lo.visibleRegions = append(lo.visibleRegions, names...)
	v := f()
	lo.visibleRegions = lo.visibleRegions[:depth]
	return v
}

// captureOpaqueRegions walks the lowered bounds of an existential type
// and lifts every captured free region into the opaque definition:
// refs is the argument list, defs the matching implicit parameters
// created under parent. Each free name is captured once; the elided
// region counts as one name of its own and `'static` is never captured.
func (lo *Lowerer) captureOpaqueRegions(parent hir.OwnerID, bounds []hir.Bound) (refs []hir.Region, defs []hir.RegionParam) {
	c := &regionCapture{
		lo:            lo,
		parent:        parent,
		collectElided: true,
		captured:      make(map[source.StringID]bool),
	}
	for i := range bounds {
		c.scanBound(&bounds[i])
	}
	return c.refs, c.defs
}

type regionCapture struct {
	lo     *Lowerer
	parent hir.OwnerID

	// Elided regions inside bare function types and parenthesized
	// path arguments stay local and are not captured.
	collectElided bool

	bound    []source.StringID
	captured map[source.StringID]bool
	refs     []hir.Region
	defs     []hir.RegionParam
}

func (c *regionCapture) scanBound(b *hir.Bound) {
	switch b.Kind {
	case hir.BoundTrait:
		if b.Trait != nil {
			c.scanPolyTrait(b.Trait)
		}
	case hir.BoundRegion:
		c.scanRegion(b.Region)
	}
}

func (c *regionCapture) scanPolyTrait(p *hir.PolyTraitRef) {
	depth := len(c.bound)
	for _, binder := range p.Binders {
		c.bound = append(c.bound, binder.Region.Name)
		for _, r := range binder.Bounds {
			c.scanRegion(r)
		}
	}
	if p.Trait.Path != nil {
		c.scanPath(p.Trait.Path)
	}
	c.bound = c.bound[:depth]
}

func (c *regionCapture) scanPath(p *hir.Path) {
	for i := range p.Segments {
		c.scanArgs(&p.Segments[i].Args)
	}
}

func (c *regionCapture) scanArgs(a *hir.PathArgs) {
	if a.Parenthesized {
		saved := c.collectElided
		c.collectElided = false
		for _, t := range a.Inputs {
			c.scanTy(t)
		}
		if a.Output != nil {
			c.scanTy(a.Output)
		}
		c.collectElided = saved
		return
	}
	for _, r := range a.Regions {
		c.scanRegion(r)
	}
	for _, t := range a.Types {
		c.scanTy(t)
	}
	for _, b := range a.Bindings {
		c.scanTy(b.Ty)
	}
}

func (c *regionCapture) scanTy(t *hir.Ty) {
	switch data := t.Data.(type) {
	case *hir.TyRefData:
		c.scanRegion(data.Region)
		c.scanTy(data.Elem)
	case *hir.TySliceData:
		c.scanTy(data.Elem)
	case *hir.TyArrayData:
		c.scanTy(data.Elem)
	case *hir.TyTupleData:
		for _, e := range data.Elems {
			c.scanTy(e)
		}
	case *hir.TyFnPtrData:
		saved := c.collectElided
		c.collectElided = false
		depth := len(c.bound)
		for _, binder := range data.Binders {
			c.bound = append(c.bound, binder.Region.Name)
			for _, r := range binder.Bounds {
				c.scanRegion(r)
			}
		}
		for _, p := range data.Decl.Params {
			c.scanTy(p)
		}
		if data.Decl.Ret != nil {
			c.scanTy(data.Decl.Ret)
		}
		c.bound = c.bound[:depth]
		c.collectElided = saved
	case *hir.TyPathData:
		c.scanQPath(&data.QPath)
	case *hir.TyOpaqueData:
		for i := range data.Bounds {
			c.scanBound(&data.Bounds[i])
		}
		for _, r := range data.Regions {
			c.scanRegion(r)
		}
	}
}

func (c *regionCapture) scanQPath(q *hir.QPath) {
	if q.SelfTy != nil {
		c.scanTy(q.SelfTy)
	}
	if q.Path != nil {
		c.scanPath(q.Path)
	}
	if q.Ty != nil {
		c.scanTy(q.Ty)
	}
	if q.Seg != nil {
		c.scanArgs(&q.Seg.Args)
	}
}

func (c *regionCapture) scanRegion(r hir.Region) {
	switch r.Kind {
	case hir.RegionStatic:
		return
	case hir.RegionElided:
		if !c.collectElided {
			return
		}
	case hir.RegionNamed:
		if slices.Contains(c.bound, r.Name) {
			return
		}
	}
	if c.captured[r.Name] {
		return
	}
	c.captured[r.Name] = true

	use := c.lo.next()
	c.refs = append(c.refs, hir.Region{ID: use.id, Name: r.Name, Kind: r.Kind, Span: r.Span})

	def := c.lo.next()
	c.lo.defs.Create(c.parent, def.node, hir.DefRegionParam, r.Name, r.Span)
	c.defs = append(c.defs, hir.RegionParam{
		Region:   hir.Region{ID: def.id, Name: r.Name, Kind: r.Kind, Span: r.Span},
		Implicit: true,
	})
}
