package ast

import "sable/internal/source"

// TyKind enumerates surface type forms.
type TyKind uint8

const (
	// TyInfer is the inference placeholder `_`.
	TyInfer TyKind = iota
	// TyNever is the diverging type `!`.
	TyNever
	// TyRef is a reference type `&'r mut T`.
	TyRef
	// TySlice is `[T]`.
	TySlice
	// TyArray is `[T; N]`.
	TyArray
	// TyTuple is `(T, U, ...)`; the empty tuple is the unit type.
	TyTuple
	// TyFnPtr is a function pointer `for<'a> fn(&'a u8) -> u8`.
	TyFnPtr
	// TyPath is a (possibly qualified) named type.
	TyPath
	// TyOpaque is the opaque-type sugar `opaque Bound + ...`.
	TyOpaque
	// TyParen is a parenthesized type.
	TyParen
)

func (k TyKind) String() string {
	switch k {
	case TyInfer:
		return "Infer"
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
	case TyParen:
		return "Paren"
	default:
		return "Unknown"
	}
}

// Ty is a surface type node.
type Ty struct {
	ID   NodeID
	Kind TyKind
	Span source.Span
	Data TyData // nil for kinds without a payload (Infer, Never)
}

// TyData is the interface for type-specific payloads.
type TyData interface {
	tyData()
}

// TyRefData holds data for TyRef. Region is nil when the region is elided.
type TyRefData struct {
	Region *Region
	Mut    bool
	Elem   *Ty
}

func (TyRefData) tyData() {}

// TySliceData holds data for TySlice.
type TySliceData struct {
	Elem *Ty
}

func (TySliceData) tyData() {}

// TyArrayData holds data for TyArray. Len is lowered as a nested body.
type TyArrayData struct {
	Elem *Ty
	Len  *Expr
}

func (TyArrayData) tyData() {}

// TyTupleData holds data for TyTuple.
type TyTupleData struct {
	Elems []*Ty
}

func (TyTupleData) tyData() {}

// TyFnPtrData holds data for TyFnPtr.
type TyFnPtrData struct {
	Binders []RegionParam
	Params  []*Ty
	Ret     *Ty // nil means unit
}

func (TyFnPtrData) tyData() {}

// TyPathData holds data for TyPath.
type TyPathData struct {
	QSelf *QSelf
	Path  *Path
}

func (TyPathData) tyData() {}

// TyOpaqueData holds data for TyOpaque.
type TyOpaqueData struct {
	Bounds []Bound
}

func (TyOpaqueData) tyData() {}

// TyParenData holds data for TyParen.
type TyParenData struct {
	Inner *Ty
}

func (TyParenData) tyData() {}
