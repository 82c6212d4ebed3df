package hir

import "sable/internal/source"

// PatKind enumerates core pattern forms.
type PatKind uint8

const (
	PatWild PatKind = iota
	PatBind
	PatLit
	PatTuple
	PatEnum
	PatRef
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

// Pat is a core pattern node.
type Pat struct {
	ID   ID
	Kind PatKind
	Span source.Span
	Data PatData // nil for PatWild
}

// PatData is the interface for pattern-specific payloads.
type PatData interface {
	patData()
}

// BindMode describes how a binding captures the matched value.
type BindMode uint8

const (
	BindByValue BindMode = iota
	BindByValueMut
	BindByRef
	BindByRefMut
)

// PatBindData holds data for PatBind. The binding's identity is the
// pattern node; path expressions referencing it resolve to its surface
// node id.
type PatBindData struct {
	Mode BindMode
	Name source.StringID
	Sub  *Pat
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
	QPath QPath
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
	QPath QPath
}

func (PatPathData) patData() {}
