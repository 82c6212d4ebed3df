// Package lower rewrites a surface tree into the core tree: it assigns
// composite canonical identities, resolves break/continue destinations,
// collects implicit region parameters, and expands the sugared
// expression forms into the smaller core vocabulary.
package lower

import (
	"slices"
	"strconv"

	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/project"
	"sable/internal/resolve"
	"sable/internal/source"
)

// Config carries everything one lowering run needs. All fields except
// Reporter are required.
type Config struct {
	Unit     *ast.Unit
	IDs      *ast.IDSource
	Strings  *source.Interner
	Resolver resolve.Resolver
	Defs     *hir.Registry
	Reporter diag.Reporter
	Features project.Features
}

// Lowerer is the lowering pass state. One Lowerer handles one unit and
// is not safe for concurrent use.
type Lowerer struct {
	unit     *ast.Unit
	ids      *ast.IDSource
	strings  *source.Interner
	resolver resolve.Resolver
	defs     *hir.Registry
	reporter diag.Reporter
	features project.Features

	// Output tables.
	items          map[ast.NodeID]*hir.Item
	traitItems     map[hir.ID]*hir.TraitItem
	implItems      map[hir.ID]*hir.ImplItem
	bodies         map[hir.BodyID]*hir.Body
	traitImpls     map[hir.OwnerID][]ast.NodeID
	traitAutoImpls map[hir.OwnerID]ast.NodeID

	// Identity allocation.
	ownerStack    []activeOwner
	localCounters map[ast.NodeID]ownerCounter
	nodeToID      []hir.ID

	// Scope context.
	isGenerator     bool
	inLoopCondition bool
	inTraitImpl     bool
	catchScopes     []ast.NodeID
	loopScopes      []ast.NodeID

	// Region bookkeeping.
	collectingImplicit bool
	pendingRegions     []pendingRegion
	visibleRegions     []source.StringID

	// Synthetic type params from argument-position opaque sugar,
	// drained into the enclosing signature's generics.
	pendingTypeParams []hir.TypeParam

	// Declared region-parameter counts per type definition, recorded
	// during registration and consumed by path-argument elision.
	typeDefRegionCount map[hir.OwnerID]int

	gensymCount int
	names       wellKnown
}

type wellKnown struct {
	underscore source.StringID
	static_    source.StringID
	std        source.StringID
}

// Lower runs the pass. Recoverable problems surface as diagnostics on
// the reporter; invariant violations and unlowerable inputs surface as
// an error and a nil unit.
func Lower(cfg Config) (u *hir.Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			ice, ok := r.(*iceError)
			if !ok {
				panic(r)
			}
			u = nil
			err = ice
		}
	}()
	lo := newLowerer(cfg)
	return lo.lowerUnit(), nil
}

func newLowerer(cfg Config) *Lowerer {
	lo := &Lowerer{
		unit:     cfg.Unit,
		ids:      cfg.IDs,
		strings:  cfg.Strings,
		resolver: cfg.Resolver,
		defs:     cfg.Defs,
		reporter: cfg.Reporter,
		features: cfg.Features,

		items:          make(map[ast.NodeID]*hir.Item),
		traitItems:     make(map[hir.ID]*hir.TraitItem),
		implItems:      make(map[hir.ID]*hir.ImplItem),
		bodies:         make(map[hir.BodyID]*hir.Body),
		traitImpls:     make(map[hir.OwnerID][]ast.NodeID),
		traitAutoImpls: make(map[hir.OwnerID]ast.NodeID),

		localCounters:      make(map[ast.NodeID]ownerCounter),
		typeDefRegionCount: make(map[hir.OwnerID]int),
	}
	lo.names = wellKnown{
		underscore: lo.strings.Intern("_"),
		static_:    lo.strings.Intern("static"),
		std:        lo.strings.Intern("std"),
	}
	// The unit root is the ambient owner for everything lowered outside
	// an explicit owner activation.
	lo.ownerStack = append(lo.ownerStack, activeOwner{
		def:  lo.defs.Root(),
		node: lo.unit.ID,
	})
	return lo
}

func (lo *Lowerer) lowerUnit() *hir.Unit {
	// The root node claims local 0 of the root owner before anything
	// else allocates.
	lo.ensure(lo.unit.ID)

	lo.registerItems(lo.unit.Items)
	lo.lowerItems(lo.unit.Items)

	if len(lo.ownerStack) != 1 {
		bug("owner stack not drained: depth %d", len(lo.ownerStack))
	}
	if len(lo.pendingRegions) != 0 {
		bug("%d implicit regions were collected but never bound", len(lo.pendingRegions))
	}
	if len(lo.pendingTypeParams) != 0 {
		bug("%d synthetic type params were created but never bound", len(lo.pendingTypeParams))
	}

	u := &hir.Unit{
		Name: lo.unit.Name,
		Span: lo.unit.Span,
		Module: hir.Mod{
			Inner:     lo.unit.Span,
			ItemNodes: lo.moduleItemNodes(lo.unit.Items),
		},
		Items:          lo.items,
		TraitItems:     lo.traitItems,
		ImplItems:      lo.implItems,
		Bodies:         lo.bodies,
		TraitImpls:     lo.traitImpls,
		TraitAutoImpls: lo.traitAutoImpls,
	}

	u.ItemNodes = make([]ast.NodeID, 0, len(lo.items))
	for node := range lo.items {
		u.ItemNodes = append(u.ItemNodes, node)
	}
	slices.Sort(u.ItemNodes)

	u.BodyIDs = make([]hir.BodyID, 0, len(lo.bodies))
	for id := range lo.bodies {
		u.BodyIDs = append(u.BodyIDs, id)
	}
	slices.SortFunc(u.BodyIDs, func(a, b hir.BodyID) int {
		sa, sb := lo.bodies[a].Value.Span, lo.bodies[b].Value.Span
		if sa.File != sb.File {
			return int(sa.File) - int(sb.File)
		}
		if sa.Start != sb.Start {
			return int(sa.Start) - int(sb.Start)
		}
		if sa.End != sb.End {
			return int(sa.End) - int(sb.End)
		}
		return compareIDs(hir.ID(a), hir.ID(b))
	})

	lo.defs.InstallNodeMapping(lo.nodeToID)
	return u
}

func compareIDs(a, b hir.ID) int {
	if a.Owner != b.Owner {
		return int(a.Owner) - int(b.Owner)
	}
	return int(a.Local) - int(b.Local)
}

// moduleItemNodes expands import trees so every nested leaf shows up as
// a module-level item id, in source order.
func (lo *Lowerer) moduleItemNodes(items []*ast.Item) []ast.NodeID {
	var out []ast.NodeID
	for _, it := range items {
		out = lo.appendItemNodes(out, it)
	}
	return out
}

func (lo *Lowerer) appendItemNodes(out []ast.NodeID, it *ast.Item) []ast.NodeID {
	if data, ok := it.Data.(*ast.ImportData); ok {
		out = appendImportNodes(out, data.Tree, it.ID)
		return out
	}
	return append(out, it.ID)
}

func appendImportNodes(out []ast.NodeID, tree *ast.ImportTree, id ast.NodeID) []ast.NodeID {
	if tree.Kind == ast.ImportNested {
		for _, child := range tree.Children {
			out = appendImportNodes(out, child, child.ID)
		}
	}
	return append(out, id)
}

// errorf emits an error diagnostic and keeps lowering.
func (lo *Lowerer) errorf(code diag.Code, span source.Span, msg string) {
	diag.ReportError(lo.reporter, code, span, msg).Emit()
}

// warnf emits a warning diagnostic.
func (lo *Lowerer) warnf(code diag.Code, span source.Span, msg string) {
	diag.ReportWarning(lo.reporter, code, span, msg).Emit()
}

// gensym mints a fresh identifier that cannot collide with user names;
// '#' never appears in a parsed identifier.
func (lo *Lowerer) gensym(base string) source.StringID {
	lo.gensymCount++
	return lo.strings.Intern(base + "#" + strconv.Itoa(lo.gensymCount))
}
