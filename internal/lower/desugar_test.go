package lower

import (
	"strconv"
	"strings"
	"testing"

	"sable/internal/ast"
	"sable/internal/corpus"
	"sable/internal/diag"
	"sable/internal/hir"
)

func TestForInRewrite(t *testing.T) {
	prog := corpus.Iterate()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	body := fnBody(t, u, findItem(t, prog, u, "total"))
	outer := blockOf(t, body.Value)
	if len(outer.Stmts) != 5 {
		t.Fatalf("fn body has %d statements, want 5", len(outer.Stmts))
	}

	// The whole for loop becomes `{ let _result = match ...; _result }`.
	wrapper := blockOf(t, stmtExprOf(t, outer.Stmts[1]))
	if len(wrapper.Stmts) != 1 || wrapper.Expr == nil {
		t.Fatalf("for wrapper block has %d statements and tail %v", len(wrapper.Stmts), wrapper.Expr)
	}
	letResult := letOf(t, wrapper.Stmts[0])
	m := matchOf(t, letResult.Init)
	if m.Source != hir.MatchForLoop {
		t.Fatalf("into_iter match source = %s, want ForLoop", m.Source)
	}
	if len(m.Arms) != 1 {
		t.Fatalf("into_iter match has %d arms, want 1", len(m.Arms))
	}
	if m.Scrut.Kind != hir.ExprCall {
		t.Fatalf("into_iter scrutinee is %s, want Call", m.Scrut.Kind)
	}

	loop := m.Arms[0].Body
	if loop.Kind != hir.ExprLoop {
		t.Fatalf("iterator arm body is %s, want Loop", loop.Kind)
	}
	loopData := loop.Data.(*hir.LoopData)
	if loopData.Source != hir.LoopForLoop {
		t.Fatalf("loop source = %s, want ForLoop", loopData.Source)
	}
	if loopData.Label == nil || loopData.Label.Name != prog.Strings.Intern("outer") {
		t.Fatalf("loop label missing or renamed: %v", loopData.Label)
	}
	if len(loopData.Body.Stmts) != 4 {
		t.Fatalf("loop body has %d statements, want 4", len(loopData.Body.Stmts))
	}

	// `let mut __next;` has no initializer and a hygienic fresh name.
	letNext := letOf(t, loopData.Body.Stmts[0])
	if letNext.Init != nil {
		t.Fatalf("__next let has an initializer")
	}
	name := prog.Strings.MustLookup(letNext.Pat.Data.(*hir.PatBindData).Name)
	base, suffix, ok := strings.Cut(name, "#")
	if !ok || base != "__next" {
		t.Fatalf("synthesized binding named %q, want a __next gensym", name)
	}
	if _, err := strconv.Atoi(suffix); err != nil {
		t.Fatalf("gensym suffix %q is not numeric", suffix)
	}
	next := matchOf(t, stmtExprOf(t, loopData.Body.Stmts[1]))
	if next.Source != hir.MatchForLoop {
		t.Fatalf("next() match source = %s, want ForLoop", next.Source)
	}
	if len(next.Arms) != 2 {
		t.Fatalf("next() match has %d arms, want 2", len(next.Arms))
	}
	if next.Arms[0].Body.Kind != hir.ExprAssign {
		t.Fatalf("Some arm body is %s, want Assign", next.Arms[0].Body.Kind)
	}
	brk := next.Arms[1].Body
	if brk.Kind != hir.ExprBreak {
		t.Fatalf("None arm body is %s, want Break", brk.Kind)
	}
	if dest := brk.Data.(*hir.BreakData).Dest; dest.Kind != hir.DestLoop {
		t.Fatalf("None arm break destination = %s, want Loop", dest.Kind)
	}
	if letPat := letOf(t, loopData.Body.Stmts[2]); letPat.Source != hir.LetForLoop {
		t.Fatalf("pattern let source = %v, want LetForLoop", letPat.Source)
	}
}

func TestLabeledBreakTargetsForLoop(t *testing.T) {
	prog := corpus.Iterate()
	u, _ := lowerFixture(t, prog)

	body := fnBody(t, u, findItem(t, prog, u, "total"))
	wrapper := blockOf(t, stmtExprOf(t, blockOf(t, body.Value).Stmts[1]))
	m := matchOf(t, letOf(t, wrapper.Stmts[0]).Init)
	loop := m.Arms[0].Body
	loopData := loop.Data.(*hir.LoopData)

	// The surface body sits as the last loop statement; the labeled
	// break is inside the if's then block.
	surface := blockOf(t, stmtExprOf(t, loopData.Body.Stmts[3]))
	guard := stmtExprOf(t, surface.Stmts[0])
	if guard.Kind != hir.ExprIf {
		t.Fatalf("first surface statement is %s, want If", guard.Kind)
	}
	then := blockOf(t, guard.Data.(*hir.IfData).Then)
	brk := stmtExprOf(t, then.Stmts[0])
	if brk.Kind != hir.ExprBreak {
		t.Fatalf("then body is %s, want Break", brk.Kind)
	}
	dest := brk.Data.(*hir.BreakData).Dest
	if dest.Kind != hir.DestLoop {
		t.Fatalf("labeled break destination = %s, want Loop", dest.Kind)
	}
	if dest.Label != prog.Strings.Intern("outer") {
		t.Fatalf("labeled break lost its label")
	}
	// The destination is the surface for node, whose canonical identity
	// the loop expression carries.
	if got := prog.Defs.NodeToID(dest.Target); got != loop.ID {
		t.Fatalf("break target lowers to %s, loop is %s", got, loop.ID)
	}
}

func TestWhileLetRewrite(t *testing.T) {
	prog := corpus.Iterate()
	u, _ := lowerFixture(t, prog)

	body := fnBody(t, u, findItem(t, prog, u, "total"))
	loop := stmtExprOf(t, blockOf(t, body.Value).Stmts[3])
	if loop.Kind != hir.ExprLoop {
		t.Fatalf("while-let lowers to %s, want Loop", loop.Kind)
	}
	data := loop.Data.(*hir.LoopData)
	if data.Source != hir.LoopWhileLet {
		t.Fatalf("loop source = %s, want WhileLet", data.Source)
	}
	m := matchOf(t, data.Body.Expr)
	if m.Source != hir.MatchWhileLet {
		t.Fatalf("match source = %s, want WhileLet", m.Source)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("match has %d arms, want 2", len(m.Arms))
	}
	if m.Arms[0].Pats[0].Kind != hir.PatEnum {
		t.Fatalf("first arm pattern is %s, want Enum", m.Arms[0].Pats[0].Kind)
	}
	if m.Arms[1].Pats[0].Kind != hir.PatWild {
		t.Fatalf("second arm pattern is %s, want Wild", m.Arms[1].Pats[0].Kind)
	}
	brk := m.Arms[1].Body
	if brk.Kind != hir.ExprBreak {
		t.Fatalf("wildcard arm body is %s, want Break", brk.Kind)
	}
	if got := prog.Defs.NodeToID(brk.Data.(*hir.BreakData).Dest.Target); got != loop.ID {
		t.Fatalf("break target lowers to %s, loop is %s", got, loop.ID)
	}
}

func TestIfLetRewrite(t *testing.T) {
	prog := corpus.Iterate()
	u, _ := lowerFixture(t, prog)

	body := fnBody(t, u, findItem(t, prog, u, "total"))
	m := matchOf(t, stmtExprOf(t, blockOf(t, body.Value).Stmts[4]))
	if m.Source != hir.MatchIfLet {
		t.Fatalf("match source = %s, want IfLet", m.Source)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("match has %d arms, want 2", len(m.Arms))
	}
	// No written else means the wildcard arm yields unit.
	els := m.Arms[1].Body
	if els.Kind != hir.ExprTuple || len(els.Data.(*hir.TupleData).Elems) != 0 {
		t.Fatalf("wildcard arm body is %s, want the unit tuple", els.Kind)
	}
}

func TestTryInsideCatchBreaksToBlock(t *testing.T) {
	prog := corpus.Fallible()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	body := fnBody(t, u, findItem(t, prog, u, "fetch"))
	stmts := blockOf(t, body.Value).Stmts

	catch := blockOf(t, letOf(t, stmts[0]).Init)
	if !catch.TargetedByBreak {
		t.Fatalf("catch block is not marked as a break target")
	}
	m := matchOf(t, letOf(t, catch.Stmts[0]).Init)
	if m.Source != hir.MatchTry {
		t.Fatalf("match source = %s, want Try", m.Source)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("try match has %d arms, want 2", len(m.Arms))
	}

	// Error arm first, and inside a catch block it breaks to it.
	exit := m.Arms[0].Body
	if exit.Kind != hir.ExprBreak {
		t.Fatalf("error arm exits via %s, want Break", exit.Kind)
	}
	if exit.Flags&hir.FlagSuppressUnreachable == 0 {
		t.Fatalf("error exit is not marked unreachable-suppressed")
	}
	dest := exit.Data.(*hir.BreakData).Dest
	if dest.Kind != hir.DestBlock {
		t.Fatalf("error exit destination = %s, want Block", dest.Kind)
	}
	if got := prog.Defs.NodeToID(dest.Target); got != catch.ID {
		t.Fatalf("error exit targets %s, catch block is %s", got, catch.ID)
	}
	if ok := m.Arms[1].Body; ok.Flags&hir.FlagSuppressUnreachable == 0 {
		t.Fatalf("success value is not marked unreachable-suppressed")
	}
}

func TestTryOutsideCatchReturns(t *testing.T) {
	prog := corpus.Fallible()
	u, _ := lowerFixture(t, prog)

	body := fnBody(t, u, findItem(t, prog, u, "fetch"))
	stmts := blockOf(t, body.Value).Stmts

	m := matchOf(t, stmtExprOf(t, stmts[1]))
	if m.Source != hir.MatchTry {
		t.Fatalf("match source = %s, want Try", m.Source)
	}
	exit := m.Arms[0].Body
	if exit.Kind != hir.ExprReturn {
		t.Fatalf("error arm outside catch exits via %s, want Return", exit.Kind)
	}
	wrapped := exit.Data.(*hir.ReturnData).Value
	if wrapped == nil || wrapped.Kind != hir.ExprCall {
		t.Fatalf("return value is not the from_error call")
	}
}

func TestRangeForms(t *testing.T) {
	prog := corpus.Ranges()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	body := fnBody(t, u, findItem(t, prog, u, "spans"))
	stmts := blockOf(t, body.Value).Stmts
	if len(stmts) != 6 {
		t.Fatalf("fn body has %d statements, want 6", len(stmts))
	}

	wantStruct := []struct {
		idx    int
		name   string
		fields int
	}{
		{0, "Range", 2},
		{1, "RangeFrom", 1},
		{2, "RangeTo", 1},
		{4, "RangeInclusive", 2},
		{5, "RangeToInclusive", 1},
	}
	for _, w := range wantStruct {
		init := letOf(t, stmts[w.idx]).Init
		if init.Kind != hir.ExprStructLit {
			t.Fatalf("statement %d lowers to %s, want StructLit", w.idx, init.Kind)
		}
		data := init.Data.(*hir.StructLitData)
		segs := data.QPath.Path.Segments
		if got := segs[len(segs)-1].Name; got != prog.Strings.Intern(w.name) {
			t.Fatalf("statement %d names the wrong range type, want %s", w.idx, w.name)
		}
		if len(data.Fields) != w.fields {
			t.Fatalf("statement %d has %d field inits, want %d", w.idx, len(data.Fields), w.fields)
		}
	}

	full := letOf(t, stmts[3]).Init
	if got := pathLastName(t, full); got != prog.Strings.Intern("RangeFull") {
		t.Fatalf("endpointless range lowers to the wrong path")
	}
}

func TestRangeClosedWithoutEndAborts(t *testing.T) {
	prog := corpus.Ranges()

	// Rewrite `lo..=hi` into the unwritable `lo..=` before lowering.
	data := prog.Unit.Items[0].Data.(*ast.FnData)
	init := data.Body.Stmts[4].Data.(*ast.LetData).Init
	rng := init.Data.(*ast.RangeData)
	if rng.Limits != ast.RangeClosed || rng.End == nil {
		t.Fatalf("fixture statement 4 is not the closed range")
	}
	rng.End = nil

	bag := diag.NewBag(8)
	u, err := Lower(Config{
		Unit:     prog.Unit,
		IDs:      prog.IDs,
		Strings:  prog.Strings,
		Resolver: prog.Resolutions,
		Defs:     prog.Defs,
		Reporter: diag.BagReporter{Bag: bag},
		Features: prog.Features,
	})
	if err == nil {
		t.Fatalf("closed range without an end lowered to %v", u)
	}
}

func TestPlacementRewrite(t *testing.T) {
	prog := corpus.Placement()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	body := fnBody(t, u, findItem(t, prog, u, "put"))
	block := blockOf(t, body.Value).Expr
	inner := blockOf(t, block)
	if len(inner.Stmts) != 4 {
		t.Fatalf("placement block has %d statements, want 4", len(inner.Stmts))
	}
	for i := 0; i < 3; i++ {
		if inner.Stmts[i].Kind != hir.StmtLet {
			t.Fatalf("placement statement %d is %s, want Let", i, inner.Stmts[i].Kind)
		}
	}
	if moveInit := stmtExprOf(t, inner.Stmts[3]); moveInit.Kind != hir.ExprCall {
		t.Fatalf("move_init statement is %s, want Call", moveInit.Kind)
	}
	if inner.Expr == nil || inner.Expr.Kind != hir.ExprCall {
		t.Fatalf("placement block tail is not the finalize call")
	}
}

func TestPlacementRequiresFeature(t *testing.T) {
	prog := corpus.Placement()
	prog.Features.Placement = false

	u, bag := lowerFixture(t, prog)
	if !hasCode(bag, diag.LowPlacementDisabled) {
		t.Fatalf("expected %v diagnostic, got %v", diag.LowPlacementDisabled, diagCodes(bag))
	}
	body := fnBody(t, u, findItem(t, prog, u, "put"))
	if tail := blockOf(t, body.Value).Expr; tail.Kind != hir.ExprErr {
		t.Fatalf("gated placement lowers to %s, want Err", tail.Kind)
	}
}
