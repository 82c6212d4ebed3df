package hir

import (
	"sable/internal/ast"
	"sable/internal/source"
)

// ExprKind enumerates core expression kinds. Surface sugar (for-in,
// while-let, if-let, try, catch, placement, ranges) never appears here;
// it arrives rewritten into this vocabulary, with the rewrite origin
// recorded in MatchSource / LoopSource tags.
type ExprKind uint8

const (
	// ExprLit represents literals.
	ExprLit ExprKind = iota
	// ExprPath represents a qualified path reference.
	ExprPath
	// ExprUnary represents unary operators.
	ExprUnary
	// ExprBinary represents binary operators.
	ExprBinary
	// ExprAssign represents assignment.
	ExprAssign
	// ExprAssignOp represents compound assignment.
	ExprAssignOp
	// ExprCall represents calls.
	ExprCall
	// ExprField represents field access.
	ExprField
	// ExprIndex represents indexing.
	ExprIndex
	// ExprAddrOf represents borrows.
	ExprAddrOf
	// ExprCast represents casts.
	ExprCast
	// ExprIf represents conditionals.
	ExprIf
	// ExprMatch represents match expressions, including desugared ones.
	ExprMatch
	// ExprWhile represents while loops.
	ExprWhile
	// ExprLoop represents unconditional loops, including desugared ones.
	ExprLoop
	// ExprBlock represents block expressions.
	ExprBlock
	// ExprBreak represents loop exits with a resolved destination.
	ExprBreak
	// ExprContinue represents loop restarts with a resolved destination.
	ExprContinue
	// ExprReturn represents early returns.
	ExprReturn
	// ExprYield represents generator yields.
	ExprYield
	// ExprClosure represents closures and generators; the body lives in
	// the unit's body table.
	ExprClosure
	// ExprStructLit represents struct literals.
	ExprStructLit
	// ExprTuple represents tuple literals.
	ExprTuple
	// ExprArray represents array literals.
	ExprArray
	// ExprBox represents heap allocation.
	ExprBox
	// ExprErr replaces an expression that failed to lower.
	ExprErr
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
	case ExprIf:
		return "If"
	case ExprMatch:
		return "Match"
	case ExprWhile:
		return "While"
	case ExprLoop:
		return "Loop"
	case ExprBlock:
		return "Block"
	case ExprBreak:
		return "Break"
	case ExprContinue:
		return "Continue"
	case ExprReturn:
		return "Return"
	case ExprYield:
		return "Yield"
	case ExprClosure:
		return "Closure"
	case ExprStructLit:
		return "StructLit"
	case ExprTuple:
		return "Tuple"
	case ExprArray:
		return "Array"
	case ExprBox:
		return "Box"
	case ExprErr:
		return "Err"
	default:
		return "Unknown"
	}
}

// ExprFlags carries per-node marks set by the lowering pass.
type ExprFlags uint8

const (
	// FlagSuppressUnreachable silences unreachable-code analysis for
	// nodes fabricated by desugaring, where "unreachable" is expected.
	FlagSuppressUnreachable ExprFlags = 1 << iota
)

// Expr is a core expression node.
type Expr struct {
	ID    ID
	Kind  ExprKind
	Span  source.Span
	Flags ExprFlags
	Data  ExprData // nil for ExprErr
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LitData holds data for ExprLit; it reuses the surface literal payload
// verbatim since lowering does not reinterpret literal values.
type LitData struct {
	Lit ast.LitData
}

func (LitData) exprData() {}

// PathData holds data for ExprPath.
type PathData struct {
	QPath QPath
}

func (PathData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      ast.UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    ast.BinOp
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
	Op     ast.BinOp
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

// IfData holds data for ExprIf. Else is nil or an expression (block or
// chained if).
type IfData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

func (IfData) exprData() {}

// MatchSource records which surface form produced a match expression.
type MatchSource uint8

const (
	// MatchNormal is a user-written match.
	MatchNormal MatchSource = iota
	// MatchIfLet came from `if let` without an else clause.
	MatchIfLet
	// MatchIfLetElse came from `if let ... else`.
	MatchIfLetElse
	// MatchWhileLet came from `while let`.
	MatchWhileLet
	// MatchForLoop came from `for ... in`.
	MatchForLoop
	// MatchTry came from the `?` operator.
	MatchTry
)

func (s MatchSource) String() string {
	switch s {
	case MatchNormal:
		return "Normal"
	case MatchIfLet:
		return "IfLet"
	case MatchIfLetElse:
		return "IfLetElse"
	case MatchWhileLet:
		return "WhileLet"
	case MatchForLoop:
		return "ForLoop"
	case MatchTry:
		return "Try"
	default:
		return "Unknown"
	}
}

// Arm is one arm of a core match expression.
type Arm struct {
	Pats  []*Pat
	Guard *Expr
	Body  *Expr
}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Scrut  *Expr
	Arms   []Arm
	Source MatchSource
}

func (MatchData) exprData() {}

// LoopSource records which surface form produced a loop expression.
type LoopSource uint8

const (
	// LoopPlain is a user-written `loop`.
	LoopPlain LoopSource = iota
	// LoopWhileLet came from `while let`.
	LoopWhileLet
	// LoopForLoop came from `for ... in`.
	LoopForLoop
)

func (s LoopSource) String() string {
	switch s {
	case LoopPlain:
		return "Plain"
	case LoopWhileLet:
		return "WhileLet"
	case LoopForLoop:
		return "ForLoop"
	default:
		return "Unknown"
	}
}

// Label is a lowered loop label declaration.
type Label struct {
	Name source.StringID
	Span source.Span
}

// WhileData holds data for ExprWhile.
type WhileData struct {
	Cond  *Expr
	Body  *Block
	Label *Label
}

func (WhileData) exprData() {}

// LoopData holds data for ExprLoop.
type LoopData struct {
	Body   *Block
	Label  *Label
	Source LoopSource
}

func (LoopData) exprData() {}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Block *Block
}

func (BlockData) exprData() {}

// DestKind tags what a break/continue exits to.
type DestKind uint8

const (
	// DestLoop targets a loop.
	DestLoop DestKind = iota
	// DestBlock targets a break-targetable block (catch sugar).
	DestBlock
	// DestError records an unresolvable destination; the reason is in
	// Destination.Err and a diagnostic was already reported.
	DestError
)

func (k DestKind) String() string {
	switch k {
	case DestLoop:
		return "Loop"
	case DestBlock:
		return "Block"
	case DestError:
		return "Error"
	default:
		return "Unknown"
	}
}

// DestErr enumerates why a destination could not be resolved.
type DestErr uint8

const (
	DestErrNone DestErr = iota
	// DestErrOutsideLoop: break/continue with no enclosing loop.
	DestErrOutsideLoop
	// DestErrInCondition: unlabeled control flow inside a loop condition.
	DestErrInCondition
	// DestErrUnresolvedLabel: the written label resolved to nothing.
	DestErrUnresolvedLabel
)

// Destination is the resolved exit target of a break or continue.
// Target is the surface node id of the loop or block being exited.
type Destination struct {
	Label  source.StringID // 0 when unlabeled
	Kind   DestKind
	Target ast.NodeID
	Err    DestErr
}

// BreakData holds data for ExprBreak.
type BreakData struct {
	Dest  Destination
	Value *Expr
}

func (BreakData) exprData() {}

// ContinueData holds data for ExprContinue.
type ContinueData struct {
	Dest Destination
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

// ClosureData holds data for ExprClosure.
type ClosureData struct {
	ByValue   bool
	Decl      *FnDecl
	Body      BodyID
	Generator bool
}

func (ClosureData) exprData() {}

// FieldInit is a lowered struct-literal field initializer.
type FieldInit struct {
	ID    ID
	Name  source.StringID
	Value *Expr
	Span  source.Span
}

// StructLitData holds data for ExprStructLit.
type StructLitData struct {
	QPath  QPath
	Fields []FieldInit
	Base   *Expr
}

func (StructLitData) exprData() {}

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

// BoxData holds data for ExprBox.
type BoxData struct {
	Value *Expr
}

func (BoxData) exprData() {}
