package lower

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
)

func (lo *Lowerer) lowerExpr(e *ast.Expr) *hir.Expr {
	switch e.Kind {
	case ast.ExprLit:
		data := e.Data.(*ast.LitData)
		return lo.exprFor(e, hir.ExprLit, &hir.LitData{Lit: *data})

	case ast.ExprPath:
		data := e.Data.(*ast.PathExprData)
		qpath := lo.lowerQPath(e.ID, data.QSelf, data.Path, paramOptional, opaqueDisallowed())
		return lo.exprFor(e, hir.ExprPath, &hir.PathData{QPath: qpath})

	case ast.ExprUnary:
		data := e.Data.(*ast.UnaryData)
		return lo.exprFor(e, hir.ExprUnary, &hir.UnaryData{Op: data.Op, Operand: lo.lowerExpr(data.Operand)})

	case ast.ExprBinary:
		data := e.Data.(*ast.BinaryData)
		return lo.exprFor(e, hir.ExprBinary, &hir.BinaryData{
			Op:    data.Op,
			Left:  lo.lowerExpr(data.Left),
			Right: lo.lowerExpr(data.Right),
		})

	case ast.ExprAssign:
		data := e.Data.(*ast.AssignData)
		return lo.exprFor(e, hir.ExprAssign, &hir.AssignData{
			Target: lo.lowerExpr(data.Target),
			Value:  lo.lowerExpr(data.Value),
		})

	case ast.ExprAssignOp:
		data := e.Data.(*ast.AssignOpData)
		return lo.exprFor(e, hir.ExprAssignOp, &hir.AssignOpData{
			Op:     data.Op,
			Target: lo.lowerExpr(data.Target),
			Value:  lo.lowerExpr(data.Value),
		})

	case ast.ExprCall:
		data := e.Data.(*ast.CallData)
		return lo.exprFor(e, hir.ExprCall, &hir.CallData{
			Callee: lo.lowerExpr(data.Callee),
			Args:   lo.lowerExprs(data.Args),
		})

	case ast.ExprField:
		data := e.Data.(*ast.FieldData)
		return lo.exprFor(e, hir.ExprField, &hir.FieldData{Object: lo.lowerExpr(data.Object), Name: data.Name})

	case ast.ExprIndex:
		data := e.Data.(*ast.IndexData)
		return lo.exprFor(e, hir.ExprIndex, &hir.IndexData{Object: lo.lowerExpr(data.Object), Index: lo.lowerExpr(data.Index)})

	case ast.ExprAddrOf:
		data := e.Data.(*ast.AddrOfData)
		return lo.exprFor(e, hir.ExprAddrOf, &hir.AddrOfData{Mut: data.Mut, Operand: lo.lowerExpr(data.Operand)})

	case ast.ExprCast:
		data := e.Data.(*ast.CastData)
		return lo.exprFor(e, hir.ExprCast, &hir.CastData{
			Operand: lo.lowerExpr(data.Operand),
			Ty:      lo.lowerTy(data.Ty, opaqueDisallowed()),
		})

	case ast.ExprParen:
		// Parentheses vanish, but the paren node's identity replaces the
		// inner one on the resulting expression so spans stay honest.
		inner := lo.lowerExpr(e.Data.(*ast.ParenData).Inner)
		inner.ID = lo.ensure(e.ID)
		inner.Span = e.Span
		return inner

	case ast.ExprTuple:
		data := e.Data.(*ast.TupleData)
		return lo.exprFor(e, hir.ExprTuple, &hir.TupleData{Elems: lo.lowerExprs(data.Elems)})

	case ast.ExprArray:
		data := e.Data.(*ast.ArrayData)
		return lo.exprFor(e, hir.ExprArray, &hir.ArrayData{Elems: lo.lowerExprs(data.Elems)})

	case ast.ExprStructLit:
		data := e.Data.(*ast.StructLitData)
		qpath := lo.lowerQPath(e.ID, nil, data.Path, paramOptional, opaqueDisallowed())
		fields := make([]hir.FieldInit, 0, len(data.Fields))
		for i := range data.Fields {
			f := &data.Fields[i]
			fields = append(fields, hir.FieldInit{
				ID:    lo.ensure(f.ID),
				Name:  f.Name,
				Value: lo.lowerExpr(f.Value),
				Span:  f.Span,
			})
		}
		var base *hir.Expr
		if data.Base != nil {
			base = lo.lowerExpr(data.Base)
		}
		return lo.exprFor(e, hir.ExprStructLit, &hir.StructLitData{QPath: qpath, Fields: fields, Base: base})

	case ast.ExprRange:
		return lo.lowerRange(e, e.Data.(*ast.RangeData))

	case ast.ExprIf:
		data := e.Data.(*ast.IfData)
		cond := lo.lowerExpr(data.Cond)
		then := lo.exprBlock(lo.lowerBlock(data.Then, false))
		var els *hir.Expr
		if data.Else != nil {
			els = lo.lowerExpr(data.Else)
		}
		return lo.exprFor(e, hir.ExprIf, &hir.IfData{Cond: cond, Then: then, Else: els})

	case ast.ExprIfLet:
		return lo.lowerIfLet(e, e.Data.(*ast.IfLetData))

	case ast.ExprWhile:
		data := e.Data.(*ast.WhileData)
		return withLoopScope(lo, e.ID, func() *hir.Expr {
			cond := withLoopCondition(lo, func() *hir.Expr { return lo.lowerExpr(data.Cond) })
			return lo.exprFor(e, hir.ExprWhile, &hir.WhileData{
				Cond:  cond,
				Body:  lo.lowerBlock(data.Body, false),
				Label: lowerLabel(data.Label),
			})
		})

	case ast.ExprWhileLet:
		return lo.lowerWhileLet(e, e.Data.(*ast.WhileLetData))

	case ast.ExprLoop:
		data := e.Data.(*ast.LoopData)
		return withLoopScope(lo, e.ID, func() *hir.Expr {
			return lo.exprFor(e, hir.ExprLoop, &hir.LoopData{
				Body:   lo.lowerBlock(data.Body, false),
				Label:  lowerLabel(data.Label),
				Source: hir.LoopPlain,
			})
		})

	case ast.ExprForIn:
		return lo.lowerForIn(e, e.Data.(*ast.ForInData))

	case ast.ExprMatch:
		data := e.Data.(*ast.MatchData)
		scrut := lo.lowerExpr(data.Scrut)
		arms := make([]hir.Arm, 0, len(data.Arms))
		for i := range data.Arms {
			arms = append(arms, lo.lowerArm(&data.Arms[i]))
		}
		return lo.exprFor(e, hir.ExprMatch, &hir.MatchData{Scrut: scrut, Arms: arms, Source: hir.MatchNormal})

	case ast.ExprBlock:
		data := e.Data.(*ast.BlockData)
		return lo.exprFor(e, hir.ExprBlock, &hir.BlockData{Block: lo.lowerBlock(data.Block, false)})

	case ast.ExprCatch:
		data := e.Data.(*ast.CatchData)
		block := withCatchScope(lo, data.Block.ID, func() *hir.Block {
			return lo.lowerBlock(data.Block, true)
		})
		return lo.exprFor(e, hir.ExprBlock, &hir.BlockData{Block: block})

	case ast.ExprClosure:
		return lo.lowerClosure(e, e.Data.(*ast.ClosureData))

	case ast.ExprBreak:
		data := e.Data.(*ast.BreakData)
		dest := lo.lowerDestination(e, data.Label, true)
		var value *hir.Expr
		if data.Value != nil {
			value = lo.lowerExpr(data.Value)
		}
		return lo.exprFor(e, hir.ExprBreak, &hir.BreakData{Dest: dest, Value: value})

	case ast.ExprContinue:
		data := e.Data.(*ast.ContinueData)
		return lo.exprFor(e, hir.ExprContinue, &hir.ContinueData{
			Dest: lo.lowerDestination(e, data.Label, false),
		})

	case ast.ExprReturn:
		data := e.Data.(*ast.ReturnData)
		var value *hir.Expr
		if data.Value != nil {
			value = lo.lowerExpr(data.Value)
		}
		return lo.exprFor(e, hir.ExprReturn, &hir.ReturnData{Value: value})

	case ast.ExprYield:
		data := e.Data.(*ast.YieldData)
		lo.isGenerator = true
		var value *hir.Expr
		if data.Value != nil {
			value = lo.lowerExpr(data.Value)
		} else {
			value = lo.exprUnit(e.Span)
		}
		return lo.exprFor(e, hir.ExprYield, &hir.YieldData{Value: value})

	case ast.ExprTry:
		return lo.lowerTry(e, e.Data.(*ast.TryData))

	case ast.ExprPlace:
		return lo.lowerPlace(e, e.Data.(*ast.PlaceData))

	case ast.ExprBox:
		data := e.Data.(*ast.BoxData)
		return lo.exprFor(e, hir.ExprBox, &hir.BoxData{Value: lo.lowerExpr(data.Value)})

	default:
		bug("unknown surface expression kind %s", e.Kind)
		return nil
	}
}

func (lo *Lowerer) lowerExprs(exprs []*ast.Expr) []*hir.Expr {
	if len(exprs) == 0 {
		return nil
	}
	out := make([]*hir.Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, lo.lowerExpr(e))
	}
	return out
}

// exprFor wraps a payload with the surface node's canonical identity.
func (lo *Lowerer) exprFor(e *ast.Expr, kind hir.ExprKind, data hir.ExprData) *hir.Expr {
	return &hir.Expr{ID: lo.ensure(e.ID), Kind: kind, Span: e.Span, Data: data}
}

func (lo *Lowerer) lowerArm(a *ast.Arm) hir.Arm {
	var guard *hir.Expr
	if a.Guard != nil {
		guard = lo.lowerExpr(a.Guard)
	}
	return hir.Arm{
		Pats:  lo.lowerPats(a.Pats),
		Guard: guard,
		Body:  lo.lowerExpr(a.Body),
	}
}

func (lo *Lowerer) lowerBlock(b *ast.Block, targeted bool) *hir.Block {
	stmts := make([]*hir.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		stmts = append(stmts, lo.lowerStmt(s))
	}
	var tail *hir.Expr
	if b.Expr != nil {
		tail = lo.lowerExpr(b.Expr)
	}
	return &hir.Block{
		ID:              lo.ensure(b.ID),
		Span:            b.Span,
		Stmts:           stmts,
		Expr:            tail,
		TargetedByBreak: targeted,
	}
}

func (lo *Lowerer) lowerStmt(s *ast.Stmt) *hir.Stmt {
	switch data := s.Data.(type) {
	case *ast.LetData:
		var ty *hir.Ty
		if data.Ty != nil {
			ty = lo.lowerTy(data.Ty, opaqueDisallowed())
		}
		var init *hir.Expr
		if data.Init != nil {
			init = lo.lowerExpr(data.Init)
		}
		return &hir.Stmt{
			ID:   lo.ensure(s.ID),
			Kind: hir.StmtLet,
			Span: s.Span,
			Data: &hir.LetData{Pat: lo.lowerPat(data.Pat), Ty: ty, Init: init, Source: hir.LetPlain},
		}
	case *ast.ExprStmtData:
		return &hir.Stmt{
			ID:   lo.ensure(s.ID),
			Kind: hir.StmtExpr,
			Span: s.Span,
			Data: &hir.ExprStmtData{Expr: lo.lowerExpr(data.Expr), Semi: data.Semi},
		}
	default:
		bug("unknown surface statement kind %s", s.Kind)
		return nil
	}
}

func lowerLabel(l *ast.Label) *hir.Label {
	if l == nil {
		return nil
	}
	return &hir.Label{Name: l.Name, Span: l.Span}
}

// lowerDestination resolves what a break or continue exits. An
// unresolvable destination still lowers, carrying the reason, so one
// bad jump never aborts the pass.
func (lo *Lowerer) lowerDestination(e *ast.Expr, label *ast.Label, isBreak bool) hir.Destination {
	verb := "continue"
	if isBreak {
		verb = "break"
	}
	if label == nil && lo.inLoopCondition {
		lo.errorf(diag.LowBreakInCondition, e.Span,
			"unlabeled `"+verb+"` inside a loop condition is ambiguous")
		return hir.Destination{Kind: hir.DestError, Err: hir.DestErrInCondition}
	}
	if label != nil {
		if res, ok := lo.resolver.Get(label.ID); ok && res.Res.Kind == hir.ResLabel {
			return hir.Destination{Label: label.Name, Kind: hir.DestLoop, Target: res.Res.Node}
		}
		lo.errorf(diag.LowUnresolvedLabel, label.Span, "use of undeclared loop label")
		return hir.Destination{Label: label.Name, Kind: hir.DestError, Err: hir.DestErrUnresolvedLabel}
	}
	if n := len(lo.loopScopes); n > 0 {
		return hir.Destination{Kind: hir.DestLoop, Target: lo.loopScopes[n-1]}
	}
	code := diag.LowContinueOutside
	if isBreak {
		code = diag.LowBreakOutsideLoop
	}
	lo.errorf(code, e.Span, "`"+verb+"` outside of a loop")
	return hir.Destination{Kind: hir.DestError, Err: hir.DestErrOutsideLoop}
}

func (lo *Lowerer) lowerClosure(e *ast.Expr, data *ast.ClosureData) *hir.Expr {
	return withNewScopes(lo, func() *hir.Expr {
		generator := false
		bodyID := lo.lowerBody(data.Params, func() *hir.Expr {
			value := lo.lowerExpr(data.Body)
			generator = lo.isGenerator
			return value
		})
		if generator && len(data.Params) > 0 {
			lo.errorf(diag.LowGeneratorArgs, e.Span, "generators cannot have explicit parameters")
		}
		decl := lo.lowerFnDecl(data.Params, data.Ret, hir.NoOwner, false)
		return lo.exprFor(e, hir.ExprClosure, &hir.ClosureData{
			ByValue:   data.ByValue,
			Decl:      decl,
			Body:      bodyID,
			Generator: generator,
		})
	})
}
