package lower

import (
	"sable/internal/ast"
	"sable/internal/hir"
)

// lowerBody lowers one executable chunk. The generator flag is scoped
// to the chunk: a yield inside marks this body, never an enclosing one.
func (lo *Lowerer) lowerBody(params []ast.Param, f func() *hir.Expr) hir.BodyID {
	wasGenerator := lo.isGenerator
	lo.isGenerator = false

	value := f()

	var hparams []hir.Param
	if len(params) > 0 {
		hparams = make([]hir.Param, 0, len(params))
		for i := range params {
			p := &params[i]
			hparams = append(hparams, hir.Param{
				ID:   lo.ensure(p.ID),
				Pat:  lo.lowerPat(p.Pat),
				Span: p.Span,
			})
		}
	}
	id := lo.recordBody(hparams, value)

	lo.isGenerator = wasGenerator
	return id
}

func (lo *Lowerer) recordBody(params []hir.Param, value *hir.Expr) hir.BodyID {
	body := &hir.Body{Params: params, Value: value, Generator: lo.isGenerator}
	id := body.ID()
	if !id.IsValid() {
		bug("body value has no identity")
	}
	if _, dup := lo.bodies[id]; dup {
		bug("body %s recorded twice", id)
	}
	lo.bodies[id] = body
	return id
}
