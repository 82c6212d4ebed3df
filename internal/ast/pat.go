package ast

import "sable/internal/source"

// PatKind enumerates surface pattern forms.
type PatKind uint8

const (
	// PatWild is `_`.
	PatWild PatKind = iota
	// PatBind is a binding `mut name @ sub`.
	PatBind
	// PatLit is a literal pattern.
	PatLit
	// PatTuple is `(a, b, ...)`.
	PatTuple
	// PatEnum is a tuple-variant pattern `Some(x)`.
	PatEnum
	// PatRef is `&pat`.
	PatRef
	// PatPath is a unit-variant or const pattern.
	PatPath
)

func (k PatKind) String() string {
	switch k {
	case PatWild:
		return "Wild"
	case PatBind:
		return "Bind"
	case PatLit:
		return "Lit"
	case PatTuple:
		return "Tuple"
	case PatEnum:
		return "Enum"
	case PatRef:
		return "Ref"
	case PatPath:
		return "Path"
	default:
		return "Unknown"
	}
}

// Pat is a surface pattern node.
type Pat struct {
	ID   NodeID
	Kind PatKind
	Span source.Span
	Data PatData // nil for PatWild
}

// PatData is the interface for pattern-specific payloads.
type PatData interface {
	patData()
}

// PatBindData holds data for PatBind. The binding's identity is the
// pattern node itself; references to the binding resolve to Pat.ID.
type PatBindData struct {
	Name  source.StringID
	Mut   bool
	ByRef bool
	Sub   *Pat
}

func (PatBindData) patData() {}

// PatLitData holds data for PatLit.
type PatLitData struct {
	Value *Expr
}

func (PatLitData) patData() {}

// PatTupleData holds data for PatTuple.
type PatTupleData struct {
	Elems []*Pat
}

func (PatTupleData) patData() {}

// PatEnumData holds data for PatEnum.
type PatEnumData struct {
	Path  *Path
	Elems []*Pat
}

func (PatEnumData) patData() {}

// PatRefData holds data for PatRef.
type PatRefData struct {
	Mut   bool
	Inner *Pat
}

func (PatRefData) patData() {}

// PatPathData holds data for PatPath.
type PatPathData struct {
	QSelf *QSelf
	Path  *Path
}

func (PatPathData) patData() {}
