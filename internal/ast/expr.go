package ast

import "sable/internal/source"

// ExprKind enumerates surface expression forms. The sugared forms
// (ExprForIn, ExprWhileLet, ExprIfLet, ExprTry, ExprCatch, ExprPlace,
// ExprRange) have no core-tree counterpart; the lowering pass rewrites
// them into the core vocabulary.
type ExprKind uint8

const (
	// ExprLit represents literals (int, float, bool, string, unit).
	ExprLit ExprKind = iota
	// ExprPath represents a (possibly qualified) name reference.
	ExprPath
	// ExprUnary represents unary operators (-, !, *).
	ExprUnary
	// ExprBinary represents binary operators (+, -, ==, &&, ...).
	ExprBinary
	// ExprAssign represents `lhs = rhs`.
	ExprAssign
	// ExprAssignOp represents compound assignment `lhs += rhs`.
	ExprAssignOp
	// ExprCall represents a call `f(a, b)`.
	ExprCall
	// ExprField represents field access `expr.field`.
	ExprField
	// ExprIndex represents indexing `expr[index]`.
	ExprIndex
	// ExprAddrOf represents borrowing `&expr` / `&mut expr`.
	ExprAddrOf
	// ExprCast represents `expr as Type`.
	ExprCast
	// ExprParen represents a parenthesized expression.
	ExprParen
	// ExprTuple represents `(a, b, c)`.
	ExprTuple
	// ExprArray represents `[a, b, c]`.
	ExprArray
	// ExprStructLit represents `Type { field: value, ... }`.
	ExprStructLit
	// ExprRange represents `a..b`, `a..=b`, `..` and friends.
	ExprRange
	// ExprIf represents `if cond { } else { }`.
	ExprIf
	// ExprIfLet represents `if let pat = init { } else { }`.
	ExprIfLet
	// ExprWhile represents `'label: while cond { }`.
	ExprWhile
	// ExprWhileLet represents `'label: while let pat = init { }`.
	ExprWhileLet
	// ExprLoop represents `'label: loop { }`.
	ExprLoop
	// ExprForIn represents `'label: for pat in head { }`.
	ExprForIn
	// ExprMatch represents `match scrut { arms }`.
	ExprMatch
	// ExprBlock represents a block expression `{ ... }`.
	ExprBlock
	// ExprCatch represents the catch-block sugar `do catch { ... }`.
	ExprCatch
	// ExprClosure represents `|params| -> Ret body`.
	ExprClosure
	// ExprBreak represents `break 'label value`.
	ExprBreak
	// ExprContinue represents `continue 'label`.
	ExprContinue
	// ExprReturn represents `return value`.
	ExprReturn
	// ExprYield represents `yield value`; its presence makes the
	// enclosing body a generator.
	ExprYield
	// ExprTry represents the error-propagation postfix `expr?`.
	ExprTry
	// ExprPlace represents the placement form `place <- value`.
	ExprPlace
	// ExprBox represents `box value`.
	ExprBox
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Lit"
	case ExprPath:
		return "Path"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprAssign:
		return "Assign"
	case ExprAssignOp:
		return "AssignOp"
	case ExprCall:
		return "Call"
	case ExprField:
		return "Field"
	case ExprIndex:
		return "Index"
	case ExprAddrOf:
		return "AddrOf"
	case ExprCast:
		return "Cast"
	case ExprParen:
		return "Paren"
	case ExprTuple:
		return "Tuple"
	case ExprArray:
		return "Array"
	case ExprStructLit:
		return "StructLit"
	case ExprRange:
		return "Range"
	case ExprIf:
		return "If"
	case ExprIfLet:
		return "IfLet"
	case ExprWhile:
		return "While"
	case ExprWhileLet:
		return "WhileLet"
	case ExprLoop:
		return "Loop"
	case ExprForIn:
		return "ForIn"
	case ExprMatch:
		return "Match"
	case ExprBlock:
		return "Block"
	case ExprCatch:
		return "Catch"
	case ExprClosure:
		return "Closure"
	case ExprBreak:
		return "Break"
	case ExprContinue:
		return "Continue"
	case ExprReturn:
		return "Return"
	case ExprYield:
		return "Yield"
	case ExprTry:
		return "Try"
	case ExprPlace:
		return "Place"
	case ExprBox:
		return "Box"
	default:
		return "Unknown"
	}
}

// Expr is a surface expression node.
type Expr struct {
	ID   NodeID
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LitKind enumerates literal value kinds.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitString
	LitUnit
)

// LitData holds data for ExprLit.
type LitData struct {
	Kind        LitKind
	Text        string // raw literal text for numeric literals
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (LitData) exprData() {}

// PathExprData holds data for ExprPath.
type PathExprData struct {
	QSelf *QSelf
	Path  *Path
}

func (PathExprData) exprData() {}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryDeref
)

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd
	BinOr
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    BinOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// AssignData holds data for ExprAssign.
type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) exprData() {}

// AssignOpData holds data for ExprAssignOp.
type AssignOpData struct {
	Op     BinOp
	Target *Expr
	Value  *Expr
}

func (AssignOpData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Callee *Expr
	Args   []*Expr
}

func (CallData) exprData() {}

// FieldData holds data for ExprField.
type FieldData struct {
	Object *Expr
	Name   source.StringID
}

func (FieldData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Object *Expr
	Index  *Expr
}

func (IndexData) exprData() {}

// AddrOfData holds data for ExprAddrOf.
type AddrOfData struct {
	Mut     bool
	Operand *Expr
}

func (AddrOfData) exprData() {}

// CastData holds data for ExprCast.
type CastData struct {
	Operand *Expr
	Ty      *Ty
}

func (CastData) exprData() {}

// ParenData holds data for ExprParen.
type ParenData struct {
	Inner *Expr
}

func (ParenData) exprData() {}

// TupleData holds data for ExprTuple.
type TupleData struct {
	Elems []*Expr
}

func (TupleData) exprData() {}

// ArrayData holds data for ExprArray.
type ArrayData struct {
	Elems []*Expr
}

func (ArrayData) exprData() {}

// FieldInit is a field initializer in a struct literal.
type FieldInit struct {
	ID    NodeID
	Name  source.StringID
	Value *Expr
	Span  source.Span
}

// StructLitData holds data for ExprStructLit.
type StructLitData struct {
	Path   *Path
	Fields []FieldInit
	Base   *Expr // functional-update base, nil when absent
}

func (StructLitData) exprData() {}

// RangeLimits distinguishes half-open and closed ranges.
type RangeLimits uint8

const (
	RangeHalfOpen RangeLimits = iota
	RangeClosed
)

// RangeData holds data for ExprRange. Start and End may each be nil.
type RangeData struct {
	Start  *Expr
	End    *Expr
	Limits RangeLimits
}

func (RangeData) exprData() {}

// IfData holds data for ExprIf. Else is nil, a block expression, or a
// chained ExprIf / ExprIfLet.
type IfData struct {
	Cond *Expr
	Then *Block
	Else *Expr
}

func (IfData) exprData() {}

// IfLetData holds data for ExprIfLet.
type IfLetData struct {
	Pat  *Pat
	Init *Expr
	Then *Block
	Else *Expr
}

func (IfLetData) exprData() {}

// Label names a loop, e.g. `'outer`. Uses of the label resolve against
// the label's NodeID.
type Label struct {
	ID   NodeID
	Name source.StringID
	Span source.Span
}

// WhileData holds data for ExprWhile.
type WhileData struct {
	Label *Label
	Cond  *Expr
	Body  *Block
}

func (WhileData) exprData() {}

// WhileLetData holds data for ExprWhileLet.
type WhileLetData struct {
	Label *Label
	Pat   *Pat
	Init  *Expr
	Body  *Block
}

func (WhileLetData) exprData() {}

// LoopData holds data for ExprLoop.
type LoopData struct {
	Label *Label
	Body  *Block
}

func (LoopData) exprData() {}

// ForInData holds data for ExprForIn.
type ForInData struct {
	Label *Label
	Pat   *Pat
	Head  *Expr
	Body  *Block
}

func (ForInData) exprData() {}

// Arm is one arm of a match expression.
type Arm struct {
	Pats  []*Pat
	Guard *Expr // nil when absent
	Body  *Expr
	Span  source.Span
}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Scrut *Expr
	Arms  []Arm
}

func (MatchData) exprData() {}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Block *Block
}

func (BlockData) exprData() {}

// CatchData holds data for ExprCatch.
type CatchData struct {
	Block *Block
}

func (CatchData) exprData() {}

// ClosureData holds data for ExprClosure.
type ClosureData struct {
	ByValue bool // move-capture
	Params  []Param
	Ret     *Ty // nil means inferred
	Body    *Expr
}

func (ClosureData) exprData() {}

// BreakData holds data for ExprBreak.
type BreakData struct {
	Label *Label // use site; nil when unlabeled
	Value *Expr  // nil when absent
}

func (BreakData) exprData() {}

// ContinueData holds data for ExprContinue.
type ContinueData struct {
	Label *Label
}

func (ContinueData) exprData() {}

// ReturnData holds data for ExprReturn.
type ReturnData struct {
	Value *Expr
}

func (ReturnData) exprData() {}

// YieldData holds data for ExprYield.
type YieldData struct {
	Value *Expr
}

func (YieldData) exprData() {}

// TryData holds data for ExprTry.
type TryData struct {
	Operand *Expr
}

func (TryData) exprData() {}

// PlaceData holds data for ExprPlace.
type PlaceData struct {
	Placer *Expr
	Value  *Expr
}

func (PlaceData) exprData() {}

// BoxData holds data for ExprBox.
type BoxData struct {
	Value *Expr
}

func (BoxData) exprData() {}
