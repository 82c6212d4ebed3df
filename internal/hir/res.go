package hir

import (
	"sable/internal/ast"
	"sable/internal/source"
)

// ResKind enumerates what a path can resolve to.
type ResKind uint8

const (
	// ResErr marks an unresolved or erroneous path.
	ResErr ResKind = iota
	// ResLocal is a local binding; Node points at the binding pattern.
	ResLocal
	// ResLabel is a loop label; Node points at the labeled loop.
	ResLabel
	// ResFn is a free function.
	ResFn
	// ResMethod is an associated function.
	ResMethod
	// ResConst is a free constant.
	ResConst
	// ResAssocConst is an associated constant.
	ResAssocConst
	// ResStatic is a static item.
	ResStatic
	// ResStruct is a struct type.
	ResStruct
	// ResEnum is an enum type.
	ResEnum
	// ResVariant is an enum variant.
	ResVariant
	// ResUnion is a union type.
	ResUnion
	// ResTypeAlias is a type alias.
	ResTypeAlias
	// ResAssocType is an associated type.
	ResAssocType
	// ResTrait is a trait.
	ResTrait
	// ResTypeParam is a type parameter.
	ResTypeParam
	// ResRegionParam is a region parameter.
	ResRegionParam
	// ResMod is a module.
	ResMod
)

func (k ResKind) String() string {
	switch k {
	case ResErr:
		return "Err"
	case ResLocal:
		return "Local"
	case ResLabel:
		return "Label"
	case ResFn:
		return "Fn"
	case ResMethod:
		return "Method"
	case ResConst:
		return "Const"
	case ResAssocConst:
		return "AssocConst"
	case ResStatic:
		return "Static"
	case ResStruct:
		return "Struct"
	case ResEnum:
		return "Enum"
	case ResVariant:
		return "Variant"
	case ResUnion:
		return "Union"
	case ResTypeAlias:
		return "TypeAlias"
	case ResAssocType:
		return "AssocType"
	case ResTrait:
		return "Trait"
	case ResTypeParam:
		return "TypeParam"
	case ResRegionParam:
		return "RegionParam"
	case ResMod:
		return "Mod"
	default:
		return "Unknown"
	}
}

// Res is the resolution attached to a lowered path. Definition-like
// targets carry an Owner; locals and labels carry the target Node.
type Res struct {
	Kind  ResKind
	Owner OwnerID
	Node  ast.NodeID
}

// IsErr reports whether the path failed to resolve.
func (r Res) IsErr() bool {
	return r.Kind == ResErr
}

// IsTypeDef reports whether the target is a nominal type definition
// whose declared region parameters drive path-argument elision.
func (r Res) IsTypeDef() bool {
	switch r.Kind {
	case ResStruct, ResEnum, ResUnion, ResTypeAlias, ResTrait:
		return true
	default:
		return false
	}
}

// Path is a lowered path with its resolution.
type Path struct {
	Span     source.Span
	Res      Res
	Segments []PathSeg
}

// PathSeg is one lowered path segment.
type PathSeg struct {
	Name source.StringID
	Args PathArgs
}

// PathArgs carries lowered generic arguments of one segment. For the
// parenthesized form the arguments live in Inputs and Output instead of
// Types. InferTypes is set when the segment wrote no type arguments in a
// position where they may be inferred.
type PathArgs struct {
	Regions       []Region
	Types         []*Ty
	Bindings      []TyBinding
	InferTypes    bool
	Parenthesized bool
	Inputs        []*Ty
	Output        *Ty
}

// TyBinding is a lowered associated-type equality constraint.
type TyBinding struct {
	ID   ID
	Name source.StringID
	Ty   *Ty
	Span source.Span
}

// QPathKind discriminates resolved and type-relative qualified paths.
type QPathKind uint8

const (
	// QPathResolved is a path resolved up front, with an optional
	// explicit self type.
	QPathResolved QPathKind = iota
	// QPathTypeRelative is `<Ty>::segment`, resolved later against Ty.
	QPathTypeRelative
)

// QPath is a qualified path in resolved or type-relative form.
type QPath struct {
	Kind   QPathKind
	SelfTy *Ty      // QPathResolved: optional qualifier
	Path   *Path    // QPathResolved
	Ty     *Ty      // QPathTypeRelative: base type
	Seg    *PathSeg // QPathTypeRelative: trailing segment
}
