package hir

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/ast"
	"sable/internal/source"
)

// DefKind classifies definitions in the registry.
type DefKind uint8

const (
	// DefUnit is the root definition of a compilation unit.
	DefUnit DefKind = iota
	DefFn
	DefConst
	DefStatic
	DefTypeAlias
	DefStruct
	DefEnum
	DefVariant
	DefUnion
	DefTrait
	DefImpl
	DefMod
	DefImport
	DefAssocConst
	DefMethod
	DefAssocType
	DefTypeParam
	DefRegionParam
	DefOpaque
	DefClosure
)

func (k DefKind) String() string {
	switch k {
	case DefUnit:
		return "Unit"
	case DefFn:
		return "Fn"
	case DefConst:
		return "Const"
	case DefStatic:
		return "Static"
	case DefTypeAlias:
		return "TypeAlias"
	case DefStruct:
		return "Struct"
	case DefEnum:
		return "Enum"
	case DefVariant:
		return "Variant"
	case DefUnion:
		return "Union"
	case DefTrait:
		return "Trait"
	case DefImpl:
		return "Impl"
	case DefMod:
		return "Mod"
	case DefImport:
		return "Import"
	case DefAssocConst:
		return "AssocConst"
	case DefMethod:
		return "Method"
	case DefAssocType:
		return "AssocType"
	case DefTypeParam:
		return "TypeParam"
	case DefRegionParam:
		return "RegionParam"
	case DefOpaque:
		return "Opaque"
	case DefClosure:
		return "Closure"
	default:
		return "Unknown"
	}
}

// Def is one definition record.
type Def struct {
	Parent OwnerID // NoOwner only for the unit root
	Node   ast.NodeID
	Kind   DefKind
	Name   source.StringID
	Span   source.Span
}

// Registry is the definition table of one unit. The resolver populates
// it for every item-like surface node before lowering starts; the
// lowering pass adds entries only for nodes it synthesizes (implicit
// region parameters, synthetic type parameters), always with an explicit
// parent. Index 0 is reserved so OwnerID zero stays invalid.
type Registry struct {
	defs   []Def
	byNode map[ast.NodeID]OwnerID
	byID   []ID
}

// NewRegistry creates a registry seeded with the unit root definition.
func NewRegistry(rootNode ast.NodeID, name source.StringID, span source.Span) *Registry {
	r := &Registry{
		defs:   make([]Def, 1, 16),
		byNode: make(map[ast.NodeID]OwnerID, 16),
	}
	r.Create(NoOwner, rootNode, DefUnit, name, span)
	return r
}

// Root returns the unit root owner.
func (r *Registry) Root() OwnerID {
	return OwnerID(1)
}

// Len returns the number of definitions, excluding the reserved slot.
func (r *Registry) Len() int {
	return len(r.defs) - 1
}

// Opt returns the definition owner for a surface node, if one exists.
func (r *Registry) Opt(node ast.NodeID) (OwnerID, bool) {
	o, ok := r.byNode[node]
	return o, ok
}

// Def returns the record behind an owner.
func (r *Registry) Def(o OwnerID) Def {
	return r.defs[o]
}

// Create registers a definition for node under parent and returns its
// owner id. Registering the same node twice panics: one node is one
// definition.
func (r *Registry) Create(parent OwnerID, node ast.NodeID, kind DefKind, name source.StringID, span source.Span) OwnerID {
	if prev, ok := r.byNode[node]; ok {
		panic(fmt.Sprintf("hir: definition for %s created twice (have %s)", node, prev))
	}
	idx, err := safecast.Conv[uint32](len(r.defs))
	if err != nil {
		panic(fmt.Errorf("definition table overflow: %w", err))
	}
	o := OwnerID(idx)
	r.defs = append(r.defs, Def{Parent: parent, Node: node, Kind: kind, Name: name, Span: span})
	r.byNode[node] = o
	return o
}

// InstallNodeMapping hands the finished surface-to-canonical id table to
// the registry, where later phases look it up. Installing twice panics.
func (r *Registry) InstallNodeMapping(mapping []ID) {
	if r.byID != nil {
		panic("hir: node mapping installed twice")
	}
	r.byID = mapping
}

// NodeToID returns the canonical id of a surface node. The invalid ID is
// returned for nodes the lowering pass never touched.
func (r *Registry) NodeToID(node ast.NodeID) ID {
	if r.byID == nil || int(node) >= len(r.byID) {
		return ID{}
	}
	return r.byID[node]
}

// Mapping returns the installed surface-to-canonical table, or nil.
func (r *Registry) Mapping() []ID {
	return r.byID
}
