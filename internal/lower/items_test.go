package lower

import (
	"testing"

	"sable/internal/ast"
	"sable/internal/corpus"
	"sable/internal/hir"
)

func TestImportTreeFlattening(t *testing.T) {
	prog := corpus.Imports()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	// One simple import plus a nested tree with two leaves and its stem.
	if len(u.Items) != 4 {
		t.Fatalf("unit has %d items, want 4", len(u.Items))
	}

	var single, aliased, glob, stem *hir.Item
	for _, it := range u.Items {
		data, ok := it.Data.(*hir.ImportData)
		if !ok {
			t.Fatalf("item %v is %s, want Import", it.Node, it.Kind)
		}
		switch {
		case data.Kind == hir.ImportGlob:
			glob = it
		case data.Kind == hir.ImportListStem:
			stem = it
		case data.Alias == prog.Strings.Intern("It"):
			aliased = it
		default:
			single = it
		}
	}
	if single == nil || aliased == nil || glob == nil || stem == nil {
		t.Fatalf("flattened import forms missing: %v %v %v %v", single, aliased, glob, stem)
	}

	// A simple import with no alias is named after its last segment.
	if single.Name != prog.Strings.Intern("move_init") {
		t.Fatalf("simple import kept the wrong name")
	}
	if n := len(single.Data.(*hir.ImportData).Path.Segments); n != 3 {
		t.Fatalf("simple import path has %d segments, want 3", n)
	}

	// Nested children splice the stem prefix onto their own.
	aliasPath := aliased.Data.(*hir.ImportData).Path
	if n := len(aliasPath.Segments); n != 3 {
		t.Fatalf("aliased leaf path has %d segments, want 3", n)
	}
	if aliasPath.Segments[0].Name != prog.Strings.Intern("std") {
		t.Fatalf("aliased leaf lost the stem prefix")
	}
	if n := len(glob.Data.(*hir.ImportData).Path.Segments); n != 2 {
		t.Fatalf("glob path has %d segments, want 2", n)
	}

	// The stem never re-exports.
	if stem.Vis != ast.VisInherited {
		t.Fatalf("list stem kept an explicit visibility")
	}

	// Each flattened leaf owns its identity namespace: local 0 is the
	// leaf node itself.
	for _, it := range []*hir.Item{single, aliased, glob, stem} {
		if it.ID.Local != 0 {
			t.Fatalf("import item %v has local %d, want 0", it.Node, it.ID.Local)
		}
	}
	if aliased.ID.Owner == glob.ID.Owner {
		t.Fatalf("sibling leaves share an identity owner")
	}
}

func TestModuleItemOrderExpandsImports(t *testing.T) {
	prog := corpus.Imports()
	u, _ := lowerFixture(t, prog)

	nodes := u.Module.ItemNodes
	if len(nodes) != 4 {
		t.Fatalf("module lists %d item nodes, want 4", len(nodes))
	}
	// Children precede their stem, everything in source order.
	for i, n := range nodes {
		it, ok := u.Items[n]
		if !ok {
			t.Fatalf("module node %v has no item", n)
		}
		data := it.Data.(*hir.ImportData)
		if i == 3 && data.Kind != hir.ImportListStem {
			t.Fatalf("last module node is %s, want the list stem", data.Kind)
		}
		if i < 3 && data.Kind == hir.ImportListStem {
			t.Fatalf("list stem listed before its children")
		}
	}
}

func TestEnumDiscriminantBodies(t *testing.T) {
	prog := corpus.Machinery()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	level := findItem(t, prog, u, "Level")
	data := level.Data.(*hir.EnumData)
	if len(data.Variants) != 2 {
		t.Fatalf("enum has %d variants, want 2", len(data.Variants))
	}

	low, high := data.Variants[0], data.Variants[1]
	if !low.Disr.IsValid() {
		t.Fatalf("explicit discriminant lost its body")
	}
	body, ok := u.Bodies[low.Disr]
	if !ok {
		t.Fatalf("discriminant body %s missing from body table", low.Disr)
	}
	if body.Value.Kind != hir.ExprLit {
		t.Fatalf("discriminant body is %s, want Lit", body.Value.Kind)
	}
	if len(body.Params) != 0 {
		t.Fatalf("discriminant body has %d params, want 0", len(body.Params))
	}
	if high.Disr.IsValid() {
		t.Fatalf("implicit discriminant grew a body")
	}
}

func TestTraitItemRefsAndDefaults(t *testing.T) {
	prog := corpus.Machinery()
	u, _ := lowerFixture(t, prog)

	greet := findItem(t, prog, u, "Greet")
	data := greet.Data.(*hir.TraitData)
	if len(data.Refs) != 2 {
		t.Fatalf("trait lists %d item refs, want 2", len(data.Refs))
	}

	hi, nod := data.Refs[0], data.Refs[1]
	if !hi.HasDefault || nod.HasDefault {
		t.Fatalf("default flags = %v/%v, want true/false", hi.HasDefault, nod.HasDefault)
	}

	hiItem, ok := u.TraitItems[hi.ID]
	if !ok {
		t.Fatalf("trait item %s missing from the trait-item table", hi.ID)
	}
	if !hiItem.Data.(*hir.TraitMethodData).Body.IsValid() {
		t.Fatalf("defaulted method lost its body")
	}
	nodItem := u.TraitItems[nod.ID]
	if nodItem.Data.(*hir.TraitMethodData).Body.IsValid() {
		t.Fatalf("required method grew a body")
	}
	if nodItem.Data.(*hir.TraitMethodData).Decl == nil {
		t.Fatalf("required method lost its signature")
	}
}

func TestTraitImplTable(t *testing.T) {
	prog := corpus.Machinery()
	u, _ := lowerFixture(t, prog)

	greet := findItem(t, prog, u, "Greet")
	owner, ok := prog.Defs.Opt(greet.Node)
	if !ok {
		t.Fatalf("trait has no definition")
	}
	impls := u.TraitImpls[owner]
	if len(impls) != 1 {
		t.Fatalf("trait has %d impls, want 1", len(impls))
	}
	impl, ok := u.Items[impls[0]]
	if !ok || impl.Kind != hir.ItemImpl {
		t.Fatalf("trait impl entry does not name an impl item")
	}

	data := impl.Data.(*hir.ImplData)
	if data.Trait == nil {
		t.Fatalf("impl lost its trait reference")
	}
	if len(data.Refs) != 1 {
		t.Fatalf("impl lists %d item refs, want 1", len(data.Refs))
	}
	method, ok := u.ImplItems[data.Refs[0].ID]
	if !ok {
		t.Fatalf("impl item %s missing from the impl-item table", data.Refs[0].ID)
	}
	if !method.Data.(*hir.ImplMethodData).Body.IsValid() {
		t.Fatalf("impl method lost its body")
	}
}

func TestOptionalBoundMovesOntoTypeParam(t *testing.T) {
	prog := corpus.Machinery()
	u, bag := lowerFixture(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diagCodes(bag))
	}

	relaxed := findItem(t, prog, u, "relaxed")
	g := relaxed.Data.(*hir.FnData).Generics
	if len(g.Types) != 1 {
		t.Fatalf("fn has %d type params, want 1", len(g.Types))
	}
	bounds := g.Types[0].Bounds
	if len(bounds) != 1 || bounds[0].Modifier != hir.BoundOptional {
		t.Fatalf("optional bound did not move onto the type parameter: %v", bounds)
	}

	// The where clause keeps the predicate but drops the relocated bound.
	if len(g.Where.Preds) != 1 {
		t.Fatalf("where clause has %d predicates, want 1", len(g.Where.Preds))
	}
	if n := len(g.Where.Preds[0].Bounds); n != 0 {
		t.Fatalf("where predicate kept %d bounds, want 0", n)
	}
}

func TestGeneratorClosure(t *testing.T) {
	prog := corpus.Machinery()
	u, _ := lowerFixture(t, prog)

	relaxed := findItem(t, prog, u, "relaxed")
	body := fnBody(t, u, relaxed)
	closure := letOf(t, blockOf(t, body.Value).Stmts[0]).Init
	if closure.Kind != hir.ExprClosure {
		t.Fatalf("let initializer is %s, want Closure", closure.Kind)
	}
	data := closure.Data.(*hir.ClosureData)
	if !data.Generator {
		t.Fatalf("yielding closure is not marked as a generator")
	}
	inner, ok := u.Bodies[data.Body]
	if !ok {
		t.Fatalf("closure body %s missing from body table", data.Body)
	}
	if !inner.Generator {
		t.Fatalf("closure body is not marked as a generator")
	}
	// The yield stays inside the closure body; the enclosing fn body is
	// not a generator.
	if body.Generator {
		t.Fatalf("generator flag leaked into the enclosing body")
	}
}

func TestConstLowersToBody(t *testing.T) {
	prog := corpus.Machinery()
	u, _ := lowerFixture(t, prog)

	limit := findItem(t, prog, u, "LIMIT")
	data := limit.Data.(*hir.ConstData)
	body, ok := u.Bodies[data.Body]
	if !ok {
		t.Fatalf("const body missing from body table")
	}
	if body.Value.Kind != hir.ExprLit {
		t.Fatalf("const body is %s, want Lit", body.Value.Kind)
	}
}

func TestBodyIDsSortedBySpan(t *testing.T) {
	for _, prog := range []*corpus.Program{corpus.Iterate(), corpus.Fallible(), corpus.Machinery()} {
		u, _ := lowerFixture(t, prog)
		for i := 1; i < len(u.BodyIDs); i++ {
			prev := u.Bodies[u.BodyIDs[i-1]].Value.Span
			cur := u.Bodies[u.BodyIDs[i]].Value.Span
			if prev.Start > cur.Start {
				t.Fatalf("%s: body %d starts at %d after body %d at %d",
					prog.Name, i-1, prev.Start, i, cur.Start)
			}
		}
	}
}
