package lower

import (
	"sable/internal/ast"
	"sable/internal/diag"
	"sable/internal/hir"
	"sable/internal/resolve"
)

// lowerForIn rewrites `'label: for <pat> in <head> { <body> }` into
//
//	{
//	    let _result = match std::iter::IntoIterator::into_iter(<head>) {
//	        mut iter => 'label: loop {
//	            let mut __next;
//	            match std::iter::Iterator::next(&mut iter) {
//	                Some(val) => __next = val,
//	                None => break,
//	            };
//	            let <pat> = __next;
//	            <body>
//	        },
//	    };
//	    _result
//	}
//
// The loop keeps the surface node's identity so labels and breaks
// target it.
func (lo *Lowerer) lowerForIn(e *ast.Expr, data *ast.ForInData) *hir.Expr {
	span := e.Span

	head := lo.lowerExpr(data.Head)

	iterName := lo.gensym("iter")
	nextName := lo.gensym("__next")
	valName := lo.gensym("val")

	// `let mut __next;`
	nextPat, nextBinding := lo.patIdentMut(span, nextName)
	letNext := lo.stmtLet(span, nextPat, nil, hir.LetPlain)

	// `Some(val) => __next = val`
	valPat, valBinding := lo.patIdent(span, valName)
	somePat := lo.patStd(span, []string{"option", "Option", "Some"}, valPat)
	assignNext := lo.mkExpr(span, hir.ExprAssign, &hir.AssignData{
		Target: lo.exprIdent(span, nextName, nextBinding),
		Value:  lo.exprIdent(span, valName, valBinding),
	})
	someArm := mkArm(assignNext, somePat)

	// `None => break`
	nonePat := &hir.Pat{
		ID:   lo.next().id,
		Kind: hir.PatPath,
		Span: span,
		Data: &hir.PatPathData{QPath: hir.QPath{
			Kind: hir.QPathResolved,
			Path: lo.stdPath(span, resolve.NSValue, "option", "Option", "None"),
		}},
	}
	noneArm := mkArm(lo.breakTo(span, e.ID), nonePat)

	// `match std::iter::Iterator::next(&mut iter) { ... }`
	iterPat, iterBinding := lo.patIdentMut(span, iterName)
	nextCall := lo.exprStdCall(span, []string{"iter", "Iterator", "next"},
		lo.mkExpr(span, hir.ExprAddrOf, &hir.AddrOfData{
			Mut:     true,
			Operand: lo.exprIdent(span, iterName, iterBinding),
		}))
	matchNext := lo.mkExpr(span, hir.ExprMatch, &hir.MatchData{
		Scrut:  nextCall,
		Arms:   []hir.Arm{someArm, noneArm},
		Source: hir.MatchForLoop,
	})

	// `let <pat> = __next;`
	pat := lo.lowerPat(data.Pat)
	letPat := lo.stmtLet(span, pat, lo.exprIdent(span, nextName, nextBinding), hir.LetForLoop)

	body := withLoopScope(lo, e.ID, func() *hir.Block {
		return lo.lowerBlock(data.Body, false)
	})

	loopBlock := lo.mkBlock(span, []*hir.Stmt{
		letNext,
		lo.stmtExpr(matchNext),
		letPat,
		lo.stmtExpr(lo.exprBlock(body)),
	}, nil)
	loopExpr := lo.exprFor(e, hir.ExprLoop, &hir.LoopData{
		Body:   loopBlock,
		Label:  lowerLabel(data.Label),
		Source: hir.LoopForLoop,
	})

	// `match std::iter::IntoIterator::into_iter(<head>) { mut iter => loop ... }`
	intoIter := lo.exprStdCall(span, []string{"iter", "IntoIterator", "into_iter"}, head)
	matchExpr := lo.mkExpr(span, hir.ExprMatch, &hir.MatchData{
		Scrut:  intoIter,
		Arms:   []hir.Arm{mkArm(loopExpr, iterPat)},
		Source: hir.MatchForLoop,
	})

	// `{ let _result = ...; _result }`; the binding shields the loop's
	// value from unused-variable analysis when the head diverges.
	resultName := lo.gensym("_result")
	resultPat, resultBinding := lo.patIdent(span, resultName)
	letResult := lo.stmtLet(span, resultPat, matchExpr, hir.LetPlain)
	return lo.exprBlock(lo.mkBlock(span, []*hir.Stmt{letResult},
		lo.exprIdent(span, resultName, resultBinding)))
}

// lowerWhileLet rewrites `'label: while let <pat> = <init> { <body> }`
// into `'label: loop { match <init> { <pat> => <body>, _ => break } }`.
// Both the body and the scrutinee sit inside the loop scope; the
// scrutinee additionally counts as a loop condition.
func (lo *Lowerer) lowerWhileLet(e *ast.Expr, data *ast.WhileLetData) *hir.Expr {
	span := e.Span
	return withLoopScope(lo, e.ID, func() *hir.Expr {
		patArm := mkArm(lo.exprBlock(lo.lowerBlock(data.Body, false)), lo.lowerPat(data.Pat))
		breakArm := mkArm(lo.breakTo(span, e.ID), lo.patWild(span))

		scrut := withLoopCondition(lo, func() *hir.Expr { return lo.lowerExpr(data.Init) })
		match := lo.mkExpr(span, hir.ExprMatch, &hir.MatchData{
			Scrut:  scrut,
			Arms:   []hir.Arm{patArm, breakArm},
			Source: hir.MatchWhileLet,
		})

		return lo.exprFor(e, hir.ExprLoop, &hir.LoopData{
			Body:   lo.mkBlock(span, nil, match),
			Label:  lowerLabel(data.Label),
			Source: hir.LoopWhileLet,
		})
	})
}

// lowerIfLet rewrites `if let <pat> = <init> { <then> } else { <else> }`
// into `match <init> { <pat> => <then>, _ => <else> | () }`.
func (lo *Lowerer) lowerIfLet(e *ast.Expr, data *ast.IfLetData) *hir.Expr {
	span := e.Span

	thenArm := mkArm(lo.exprBlock(lo.lowerBlock(data.Then, false)), lo.lowerPat(data.Pat))

	var elseBody *hir.Expr
	source := hir.MatchIfLet
	if data.Else != nil {
		elseBody = lo.lowerExpr(data.Else)
		source = hir.MatchIfLetElse
	} else {
		elseBody = lo.exprUnit(span)
	}
	elseArm := mkArm(elseBody, lo.patWild(span))

	return lo.exprFor(e, hir.ExprMatch, &hir.MatchData{
		Scrut:  lo.lowerExpr(data.Init),
		Arms:   []hir.Arm{thenArm, elseArm},
		Source: source,
	})
}

// lowerTry rewrites `<operand>?` into
//
//	match std::ops::Try::into_result(<operand>) {
//	    Err(err) => break/return std::ops::Try::from_error(std::convert::From::from(err)),
//	    Ok(val) => val,
//	}
//
// Inside a catch block the error arm breaks to the block; otherwise it
// returns from the body. Both fabricated exits and the success value
// suppress unreachable-code analysis.
func (lo *Lowerer) lowerTry(e *ast.Expr, data *ast.TryData) *hir.Expr {
	span := e.Span

	discr := lo.exprStdCall(span, []string{"ops", "Try", "into_result"}, lo.lowerExpr(data.Operand))

	errName := lo.gensym("err")
	errPat, errBinding := lo.patIdent(span, errName)
	fromErr := lo.exprStdCall(span, []string{"ops", "Try", "from_error"},
		lo.exprStdCall(span, []string{"convert", "From", "from"},
			lo.exprIdent(span, errName, errBinding)))

	var exit *hir.Expr
	if n := len(lo.catchScopes); n > 0 {
		exit = lo.mkExpr(span, hir.ExprBreak, &hir.BreakData{
			Dest:  hir.Destination{Kind: hir.DestBlock, Target: lo.catchScopes[n-1]},
			Value: fromErr,
		})
	} else {
		exit = lo.mkExpr(span, hir.ExprReturn, &hir.ReturnData{Value: fromErr})
	}
	exit.Flags |= hir.FlagSuppressUnreachable
	errArm := mkArm(exit, lo.patStd(span, []string{"result", "Result", "Err"}, errPat))

	valName := lo.gensym("val")
	valPat, valBinding := lo.patIdent(span, valName)
	okBody := lo.exprIdent(span, valName, valBinding)
	okBody.Flags |= hir.FlagSuppressUnreachable
	okArm := mkArm(okBody, lo.patStd(span, []string{"result", "Result", "Ok"}, valPat))

	return lo.exprFor(e, hir.ExprMatch, &hir.MatchData{
		Scrut:  discr,
		Arms:   []hir.Arm{errArm, okArm},
		Source: hir.MatchTry,
	})
}

// lowerPlace rewrites `<placer> <- <value>` into
//
//	{
//	    let placer = <placer>;
//	    let mut place = std::ops::Placer::make_place(placer);
//	    let p_ptr = std::ops::Place::pointer(&mut place);
//	    std::mem::move_init(p_ptr, <value>);
//	    std::ops::InPlace::finalize(place)
//	}
//
// behind the placement feature gate.
func (lo *Lowerer) lowerPlace(e *ast.Expr, data *ast.PlaceData) *hir.Expr {
	span := e.Span
	if !lo.features.Placement {
		lo.errorf(diag.LowPlacementDisabled, span,
			"placement expressions require the `placement` feature")
		return &hir.Expr{ID: lo.ensure(e.ID), Kind: hir.ExprErr, Span: span}
	}

	placerName := lo.gensym("placer")
	placeName := lo.gensym("place")
	ptrName := lo.gensym("p_ptr")

	placerPat, placerBinding := lo.patIdent(span, placerName)
	letPlacer := lo.stmtLet(span, placerPat, lo.lowerExpr(data.Placer), hir.LetPlain)

	placePat, placeBinding := lo.patIdentMut(span, placeName)
	makePlace := lo.exprStdCall(span, []string{"ops", "Placer", "make_place"},
		lo.exprIdent(span, placerName, placerBinding))
	letPlace := lo.stmtLet(span, placePat, makePlace, hir.LetPlain)

	ptrPat, ptrBinding := lo.patIdent(span, ptrName)
	pointer := lo.exprStdCall(span, []string{"ops", "Place", "pointer"},
		lo.mkExpr(span, hir.ExprAddrOf, &hir.AddrOfData{
			Mut:     true,
			Operand: lo.exprIdent(span, placeName, placeBinding),
		}))
	letPtr := lo.stmtLet(span, ptrPat, pointer, hir.LetPlain)

	moveInit := lo.exprStdCall(span, []string{"mem", "move_init"},
		lo.exprIdent(span, ptrName, ptrBinding),
		lo.lowerExpr(data.Value))

	finalize := lo.exprStdCall(span, []string{"ops", "InPlace", "finalize"},
		lo.exprIdent(span, placeName, placeBinding))

	block := lo.mkBlock(span, []*hir.Stmt{
		letPlacer,
		letPlace,
		letPtr,
		lo.stmtExpr(moveInit),
	}, finalize)
	return lo.exprFor(e, hir.ExprBlock, &hir.BlockData{Block: block})
}

// lowerRange picks the std range type from the written endpoints. The
// endpointless form lowers to a plain path; everything else is a struct
// literal with start/end fields. A closed range with no end has no
// value to name and aborts.
func (lo *Lowerer) lowerRange(e *ast.Expr, data *ast.RangeData) *hir.Expr {
	span := e.Span

	var name string
	switch {
	case data.Start == nil && data.End == nil && data.Limits == ast.RangeHalfOpen:
		name = "RangeFull"
	case data.Start != nil && data.End == nil && data.Limits == ast.RangeHalfOpen:
		name = "RangeFrom"
	case data.Start == nil && data.End != nil && data.Limits == ast.RangeHalfOpen:
		name = "RangeTo"
	case data.Start != nil && data.End != nil && data.Limits == ast.RangeHalfOpen:
		name = "Range"
	case data.Start == nil && data.End != nil && data.Limits == ast.RangeClosed:
		name = "RangeToInclusive"
	case data.Start != nil && data.End != nil && data.Limits == ast.RangeClosed:
		name = "RangeInclusive"
	default:
		fatalf("inclusive range with no end at %v", span)
	}

	var fields []hir.FieldInit
	if data.Start != nil {
		fields = append(fields, hir.FieldInit{
			ID:    lo.next().id,
			Name:  lo.strings.Intern("start"),
			Value: lo.lowerExpr(data.Start),
			Span:  span,
		})
	}
	if data.End != nil {
		fields = append(fields, hir.FieldInit{
			ID:    lo.next().id,
			Name:  lo.strings.Intern("end"),
			Value: lo.lowerExpr(data.End),
			Span:  span,
		})
	}

	if len(fields) == 0 {
		path := lo.stdPath(span, resolve.NSValue, "ops", name)
		return lo.exprFor(e, hir.ExprPath, &hir.PathData{
			QPath: hir.QPath{Kind: hir.QPathResolved, Path: path},
		})
	}
	path := lo.stdPath(span, resolve.NSType, "ops", name)
	return lo.exprFor(e, hir.ExprStructLit, &hir.StructLitData{
		QPath:  hir.QPath{Kind: hir.QPathResolved, Path: path},
		Fields: fields,
	})
}
