package hir

import "sable/internal/source"

// Param is one lowered formal parameter. The declared type lives in the
// owning item's FnDecl, not here.
type Param struct {
	ID   ID
	Pat  *Pat
	Span source.Span
}

// Body is an executable chunk: a function body, closure body, constant
// initializer, array length or enum discriminant. Generator is true when
// the body contains a yield.
type Body struct {
	Params    []Param
	Value     *Expr
	Generator bool
}

// ID returns the body's identity, derived from its value expression.
func (b *Body) ID() BodyID {
	return NewBodyID(b.Value)
}
