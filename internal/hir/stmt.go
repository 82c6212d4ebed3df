package hir

import "sable/internal/source"

// Block is a lowered block. TargetedByBreak marks blocks that serve as
// break destinations (catch sugar).
type Block struct {
	ID              ID
	Span            source.Span
	Stmts           []*Stmt
	Expr            *Expr
	TargetedByBreak bool
}

// StmtKind enumerates core statement forms.
type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	default:
		return "Unknown"
	}
}

// Stmt is a core statement node.
type Stmt struct {
	ID   ID
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement-specific payloads.
type StmtData interface {
	stmtData()
}

// LetSource records which surface form produced a let statement.
type LetSource uint8

const (
	// LetPlain is a user-written let.
	LetPlain LetSource = iota
	// LetForLoop is the binding statement fabricated by for-in rewriting.
	LetForLoop
)

// LetData holds data for StmtLet.
type LetData struct {
	Pat    *Pat
	Ty     *Ty
	Init   *Expr
	Source LetSource
}

func (LetData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
	Semi bool
}

func (ExprStmtData) stmtData() {}
