package ast

import "sable/internal/source"

// Block is a brace-delimited statement list with an optional tail
// expression.
type Block struct {
	ID    NodeID
	Span  source.Span
	Stmts []*Stmt
	Expr  *Expr // trailing expression, nil when absent
}

// StmtKind enumerates statement forms.
type StmtKind uint8

const (
	// StmtLet is `let pat: Ty = init;`.
	StmtLet StmtKind = iota
	// StmtExpr is an expression statement, with or without semicolon.
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

// Stmt is a surface statement node.
type Stmt struct {
	ID   NodeID
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement-specific payloads.
type StmtData interface {
	stmtData()
}

// LetData holds data for StmtLet.
type LetData struct {
	Pat  *Pat
	Ty   *Ty   // nil when omitted
	Init *Expr // nil when omitted
}

func (LetData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
	Semi bool
}

func (ExprStmtData) stmtData() {}
