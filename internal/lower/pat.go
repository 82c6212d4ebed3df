package lower

import (
	"sable/internal/ast"
	"sable/internal/hir"
)

func (lo *Lowerer) lowerPat(p *ast.Pat) *hir.Pat {
	switch p.Kind {
	case ast.PatWild:
		return lo.patFor(p, hir.PatWild, nil)
	case ast.PatBind:
		data := p.Data.(*ast.PatBindData)
		var sub *hir.Pat
		if data.Sub != nil {
			sub = lo.lowerPat(data.Sub)
		}
		return lo.patFor(p, hir.PatBind, &hir.PatBindData{
			Mode: bindMode(data.ByRef, data.Mut),
			Name: data.Name,
			Sub:  sub,
		})
	case ast.PatLit:
		data := p.Data.(*ast.PatLitData)
		return lo.patFor(p, hir.PatLit, &hir.PatLitData{Value: lo.lowerExpr(data.Value)})
	case ast.PatTuple:
		data := p.Data.(*ast.PatTupleData)
		return lo.patFor(p, hir.PatTuple, &hir.PatTupleData{Elems: lo.lowerPats(data.Elems)})
	case ast.PatEnum:
		data := p.Data.(*ast.PatEnumData)
		qpath := lo.lowerQPath(p.ID, nil, data.Path, paramOptional, opaqueDisallowed())
		return lo.patFor(p, hir.PatEnum, &hir.PatEnumData{QPath: qpath, Elems: lo.lowerPats(data.Elems)})
	case ast.PatRef:
		data := p.Data.(*ast.PatRefData)
		return lo.patFor(p, hir.PatRef, &hir.PatRefData{Mut: data.Mut, Inner: lo.lowerPat(data.Inner)})
	case ast.PatPath:
		data := p.Data.(*ast.PatPathData)
		qpath := lo.lowerQPath(p.ID, data.QSelf, data.Path, paramOptional, opaqueDisallowed())
		return lo.patFor(p, hir.PatPath, &hir.PatPathData{QPath: qpath})
	default:
		bug("unknown surface pattern kind %s", p.Kind)
		return nil
	}
}

func (lo *Lowerer) lowerPats(pats []*ast.Pat) []*hir.Pat {
	if len(pats) == 0 {
		return nil
	}
	out := make([]*hir.Pat, 0, len(pats))
	for _, p := range pats {
		out = append(out, lo.lowerPat(p))
	}
	return out
}

func (lo *Lowerer) patFor(p *ast.Pat, kind hir.PatKind, data hir.PatData) *hir.Pat {
	return &hir.Pat{ID: lo.ensure(p.ID), Kind: kind, Span: p.Span, Data: data}
}

func bindMode(byRef, mut bool) hir.BindMode {
	switch {
	case byRef && mut:
		return hir.BindByRefMut
	case byRef:
		return hir.BindByRef
	case mut:
		return hir.BindByValueMut
	default:
		return hir.BindByValue
	}
}
