package hir

import "sable/internal/source"

// TyKind enumerates core type forms.
type TyKind uint8

const (
	// TyInfer is the inference placeholder.
	TyInfer TyKind = iota
	// TyErr replaces a type that failed to lower.
	TyErr
	// TyNever is the diverging type.
	TyNever
	// TyRef is a reference type.
	TyRef
	// TySlice is a slice type.
	TySlice
	// TyArray is a fixed-length array; the length is a nested body.
	TyArray
	// TyTuple is a tuple type.
	TyTuple
	// TyFnPtr is a function pointer type.
	TyFnPtr
	// TyPath is a named type behind a qualified path.
	TyPath
	// TyOpaque is return-position opaque sugar lowered to an existential
	// type with its captured regions.
	TyOpaque
)

func (k TyKind) String() string {
	switch k {
	case TyInfer:
		return "Infer"
	case TyErr:
		return "Err"
	case TyNever:
		return "Never"
	case TyRef:
		return "Ref"
	case TySlice:
		return "Slice"
	case TyArray:
		return "Array"
	case TyTuple:
		return "Tuple"
	case TyFnPtr:
		return "FnPtr"
	case TyPath:
		return "Path"
	case TyOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// Ty is a core type node.
type Ty struct {
	ID   ID
	Kind TyKind
	Span source.Span
	Data TyData // nil for Infer, Err, Never
}

// TyData is the interface for type-specific payloads.
type TyData interface {
	tyData()
}

// TyRefData holds data for TyRef. The region is always present; elision
// is made explicit during lowering.
type TyRefData struct {
	Region Region
	Mut    bool
	Elem   *Ty
}

func (TyRefData) tyData() {}

// TySliceData holds data for TySlice.
type TySliceData struct {
	Elem *Ty
}

func (TySliceData) tyData() {}

// TyArrayData holds data for TyArray.
type TyArrayData struct {
	Elem *Ty
	Len  BodyID
}

func (TyArrayData) tyData() {}

// TyTupleData holds data for TyTuple.
type TyTupleData struct {
	Elems []*Ty
}

func (TyTupleData) tyData() {}

// FnDecl is a lowered function signature. Ret nil means unit.
type FnDecl struct {
	Params []*Ty
	Ret    *Ty
}

// TyFnPtrData holds data for TyFnPtr.
type TyFnPtrData struct {
	Binders []RegionParam
	Decl    *FnDecl
}

func (TyFnPtrData) tyData() {}

// TyPathData holds data for TyPath.
type TyPathData struct {
	QPath QPath
}

func (TyPathData) tyData() {}

// TyOpaqueData holds data for TyOpaque. Def is the definition of the
// opaque type itself; Generics carries the captured free regions as
// implicit parameters, and Regions the matching argument list.
type TyOpaqueData struct {
	Def      OwnerID
	Generics Generics
	Bounds   []Bound
	Regions  []Region
}

func (TyOpaqueData) tyData() {}
