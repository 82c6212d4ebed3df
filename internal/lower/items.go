package lower

import (
	"sable/internal/ast"
	"sable/internal/hir"
)

// registerItems walks the item tree and parks an identity counter for
// every node that owns one, before any lowering allocates. Without this
// pre-pass a path could reach into an item whose counter does not exist
// yet. Declared region counts of type definitions are recorded here too;
// path-argument elision reads them out of order.
func (lo *Lowerer) registerItems(items []*ast.Item) {
	for _, it := range items {
		lo.registerItem(it)
	}
}

func (lo *Lowerer) registerItem(it *ast.Item) {
	lo.beginOwner(it.ID)
	switch data := it.Data.(type) {
	case *ast.AliasData:
		lo.recordRegionCount(it.ID, len(data.Generics.Regions))
	case *ast.StructData:
		lo.recordRegionCount(it.ID, len(data.Generics.Regions))
	case *ast.EnumData:
		lo.recordRegionCount(it.ID, len(data.Generics.Regions))
	case *ast.UnionData:
		lo.recordRegionCount(it.ID, len(data.Generics.Regions))
	case *ast.TraitData:
		lo.recordRegionCount(it.ID, len(data.Generics.Regions))
		for _, ti := range data.Items {
			lo.beginOwner(ti.ID)
		}
	case *ast.ImplData:
		for _, ii := range data.Items {
			lo.beginOwner(ii.ID)
		}
	case *ast.ModData:
		lo.registerItems(data.Items)
	case *ast.ImportData:
		lo.registerImportTree(data.Tree)
	}
}

// registerImportTree parks counters for nested import children; every
// leaf of the tree becomes a module-level item with its own namespace.
func (lo *Lowerer) registerImportTree(tree *ast.ImportTree) {
	if tree.Kind != ast.ImportNested {
		return
	}
	for _, child := range tree.Children {
		lo.beginOwner(child.ID)
		lo.registerImportTree(child)
	}
}

func (lo *Lowerer) recordRegionCount(n ast.NodeID, count int) {
	def, ok := lo.defs.Opt(n)
	if !ok {
		bug("type item %s has no definition", n)
	}
	lo.typeDefRegionCount[def] = count
}

func (lo *Lowerer) lowerItems(items []*ast.Item) {
	for _, it := range items {
		lo.lowerTopItem(it)
	}
}

// lowerTopItem lowers one item and its associated items. Trait and impl
// children are separate identity owners lowered under the header's
// declared regions, so a region from the header never reads as implicit
// on a method.
func (lo *Lowerer) lowerTopItem(it *ast.Item) {
	lo.items[it.ID] = withOwner(lo, it.ID, func() *hir.Item { return lo.lowerItem(it) })

	switch data := it.Data.(type) {
	case *ast.TraitData:
		withVisibleRegions(lo, data.Generics.Regions, func() struct{} {
			for _, ti := range data.Items {
				h := withOwner(lo, ti.ID, func() *hir.TraitItem { return lo.lowerTraitItem(ti) })
				lo.traitItems[h.ID] = h
			}
			return struct{}{}
		})
	case *ast.ImplData:
		wasTraitImpl := lo.inTraitImpl
		lo.inTraitImpl = data.Trait != nil
		withVisibleRegions(lo, data.Generics.Regions, func() struct{} {
			for _, ii := range data.Items {
				h := withOwner(lo, ii.ID, func() *hir.ImplItem { return lo.lowerImplItem(ii) })
				lo.implItems[h.ID] = h
			}
			return struct{}{}
		})
		lo.inTraitImpl = wasTraitImpl
	case *ast.ModData:
		lo.lowerItems(data.Items)
	}
}

func (lo *Lowerer) lowerItem(it *ast.Item) *hir.Item {
	out := &hir.Item{
		ID:   lo.ensure(it.ID),
		Node: it.ID,
		Kind: hir.ItemKind(it.Kind),
		Name: it.Name,
		Vis:  it.Vis,
		Span: it.Span,
	}

	switch data := it.Data.(type) {
	case *ast.FnData:
		out.Data = withNewScopes(lo, func() hir.ItemData {
			fnDef := lo.defOf(it.ID)
			body := lo.lowerBody(data.Params, func() *hir.Expr {
				return lo.exprBlock(lo.lowerBlock(data.Body, false))
			})
			generics, decl := addImplicitRegionDefs(lo, &data.Generics, fnDef, func() *hir.FnDecl {
				return lo.lowerFnDecl(data.Params, data.Ret, fnDef, true)
			})
			return &hir.FnData{Generics: generics, Decl: decl, Body: body}
		})

	case *ast.ConstData:
		out.Data = &hir.ConstData{
			Ty:   lo.lowerTy(data.Ty, opaqueDisallowed()),
			Body: lo.lowerBody(nil, func() *hir.Expr { return lo.lowerExpr(data.Value) }),
		}

	case *ast.StaticData:
		out.Data = &hir.StaticData{
			Ty:   lo.lowerTy(data.Ty, opaqueDisallowed()),
			Mut:  data.Mut,
			Body: lo.lowerBody(nil, func() *hir.Expr { return lo.lowerExpr(data.Value) }),
		}

	case *ast.AliasData:
		out.Data = &hir.AliasData{
			Generics: lo.lowerGenerics(&data.Generics),
			Ty:       lo.lowerTy(data.Ty, opaqueDisallowed()),
		}

	case *ast.StructData:
		out.Data = &hir.StructData{
			Generics: lo.lowerGenerics(&data.Generics),
			Variant:  lo.lowerVariantData(&data.Variant),
		}

	case *ast.UnionData:
		out.Data = &hir.UnionData{
			Generics: lo.lowerGenerics(&data.Generics),
			Variant:  lo.lowerVariantData(&data.Variant),
		}

	case *ast.EnumData:
		variants := make([]hir.Variant, 0, len(data.Variants))
		for vi := range data.Variants {
			variants = append(variants, lo.lowerVariant(&data.Variants[vi]))
		}
		out.Data = &hir.EnumData{
			Generics: lo.lowerGenerics(&data.Generics),
			Variants: variants,
		}

	case *ast.TraitData:
		refs := make([]hir.TraitItemRef, 0, len(data.Items))
		for _, ti := range data.Items {
			refs = append(refs, hir.TraitItemRef{
				ID:         lo.ensure(ti.ID),
				Node:       ti.ID,
				Kind:       ti.Kind,
				Name:       ti.Name,
				HasDefault: traitItemHasDefault(ti),
				Span:       ti.Span,
			})
		}
		out.Data = &hir.TraitData{
			IsAuto:   data.IsAuto,
			Generics: lo.lowerGenerics(&data.Generics),
			Bounds:   lo.lowerBounds(data.Bounds, opaqueDisallowed()),
			Refs:     refs,
		}

	case *ast.ImplData:
		implDef := lo.defOf(it.ID)
		type header struct {
			trait  *hir.TraitRef
			selfTy *hir.Ty
		}
		generics, hd := addImplicitRegionDefs(lo, &data.Generics, implDef, func() header {
			var h header
			if data.Trait != nil {
				tr := lo.lowerTraitRef(*data.Trait, opaqueDisallowed())
				h.trait = &tr
				if tr.Path.Res.Kind == hir.ResTrait {
					owner := tr.Path.Res.Owner
					lo.traitImpls[owner] = append(lo.traitImpls[owner], it.ID)
				}
			}
			h.selfTy = lo.lowerTy(data.SelfTy, opaqueDisallowed())
			return h
		})
		refs := make([]hir.ImplItemRef, 0, len(data.Items))
		for _, ii := range data.Items {
			refs = append(refs, hir.ImplItemRef{
				ID:   lo.ensure(ii.ID),
				Node: ii.ID,
				Kind: ii.Kind,
				Name: ii.Name,
				Span: ii.Span,
			})
		}
		out.Data = &hir.ImplData{
			Generics: generics,
			Trait:    hd.trait,
			SelfTy:   hd.selfTy,
			Refs:     refs,
		}

	case *ast.AutoImplData:
		tr := lo.lowerTraitRef(data.Trait, opaqueDisallowed())
		if tr.Path.Res.Kind == hir.ResTrait {
			lo.traitAutoImpls[tr.Path.Res.Owner] = it.ID
		}
		out.Data = &hir.AutoImplData{Trait: tr}

	case *ast.ModData:
		out.Data = &hir.ModData{Mod: hir.Mod{
			Inner:     data.Inner,
			ItemNodes: lo.moduleItemNodes(data.Items),
		}}

	case *ast.ImportData:
		return lo.lowerUseTree(data.Tree, nil, it.ID, it.Vis)

	default:
		bug("unknown surface item kind %s", it.Kind)
	}
	return out
}

func (lo *Lowerer) defOf(n ast.NodeID) hir.OwnerID {
	def, ok := lo.defs.Opt(n)
	if !ok {
		bug("item %s has no definition", n)
	}
	return def
}

func (lo *Lowerer) lowerVariantData(v *ast.VariantData) hir.VariantData {
	fields := make([]hir.Field, 0, len(v.Fields))
	for fi := range v.Fields {
		f := &v.Fields[fi]
		fields = append(fields, hir.Field{
			ID:   lo.ensure(f.ID),
			Name: f.Name,
			Ty:   lo.lowerTy(f.Ty, opaqueDisallowed()),
			Span: f.Span,
		})
	}
	return hir.VariantData{ID: lo.ensure(v.ID), Kind: v.Kind, Fields: fields}
}

func (lo *Lowerer) lowerVariant(v *ast.Variant) hir.Variant {
	lo.ensure(v.ID)
	var disr hir.BodyID
	if v.Disr != nil {
		disr = lo.lowerBody(nil, func() *hir.Expr { return lo.lowerExpr(v.Disr) })
	}
	return hir.Variant{
		Name: v.Name,
		Data: lo.lowerVariantData(&v.Data),
		Disr: disr,
		Span: v.Span,
	}
}

func traitItemHasDefault(ti *ast.TraitItem) bool {
	switch data := ti.Data.(type) {
	case *ast.TraitConstData:
		return data.Default != nil
	case *ast.TraitMethodData:
		return data.Body != nil
	case *ast.TraitTypeData:
		return data.Default != nil
	default:
		return false
	}
}

func (lo *Lowerer) lowerTraitItem(ti *ast.TraitItem) *hir.TraitItem {
	out := &hir.TraitItem{
		ID:   lo.ensure(ti.ID),
		Node: ti.ID,
		Kind: ti.Kind,
		Name: ti.Name,
		Span: ti.Span,
	}

	switch data := ti.Data.(type) {
	case *ast.TraitConstData:
		out.Generics = lo.lowerGenerics(&ti.Generics)
		var def hir.BodyID
		if data.Default != nil {
			def = lo.lowerBody(nil, func() *hir.Expr { return lo.lowerExpr(data.Default) })
		}
		out.Data = &hir.TraitConstData{
			Ty:      lo.lowerTy(data.Ty, opaqueDisallowed()),
			Default: def,
		}

	case *ast.TraitMethodData:
		def := lo.defOf(ti.ID)
		var body hir.BodyID
		if data.Body != nil {
			body = withNewScopes(lo, func() hir.BodyID {
				return lo.lowerBody(data.Params, func() *hir.Expr {
					return lo.exprBlock(lo.lowerBlock(data.Body, false))
				})
			})
		}
		// Existential sugar stays out of trait method returns: the trait
		// has no place to hang the hidden type.
		generics, decl := addImplicitRegionDefs(lo, &ti.Generics, def, func() *hir.FnDecl {
			return lo.lowerFnDecl(data.Params, data.Ret, def, false)
		})
		out.Generics = generics
		out.Data = &hir.TraitMethodData{Decl: decl, Body: body}

	case *ast.TraitTypeData:
		out.Generics = lo.lowerGenerics(&ti.Generics)
		var def *hir.Ty
		if data.Default != nil {
			def = lo.lowerTy(data.Default, opaqueDisallowed())
		}
		out.Data = &hir.TraitTypeData{
			Bounds:  lo.lowerBounds(data.Bounds, opaqueDisallowed()),
			Default: def,
		}

	default:
		bug("unknown trait item kind %d", ti.Kind)
	}
	return out
}

func (lo *Lowerer) lowerImplItem(ii *ast.ImplItem) *hir.ImplItem {
	out := &hir.ImplItem{
		ID:   lo.ensure(ii.ID),
		Node: ii.ID,
		Kind: ii.Kind,
		Name: ii.Name,
		Vis:  ii.Vis,
		Span: ii.Span,
	}

	switch data := ii.Data.(type) {
	case *ast.ImplConstData:
		out.Generics = lo.lowerGenerics(&ii.Generics)
		out.Data = &hir.ImplConstData{
			Ty:   lo.lowerTy(data.Ty, opaqueDisallowed()),
			Body: lo.lowerBody(nil, func() *hir.Expr { return lo.lowerExpr(data.Value) }),
		}

	case *ast.ImplMethodData:
		def := lo.defOf(ii.ID)
		body := withNewScopes(lo, func() hir.BodyID {
			return lo.lowerBody(data.Params, func() *hir.Expr {
				return lo.exprBlock(lo.lowerBlock(data.Body, false))
			})
		})
		retOpaque := !lo.inTraitImpl
		generics, decl := addImplicitRegionDefs(lo, &ii.Generics, def, func() *hir.FnDecl {
			return lo.lowerFnDecl(data.Params, data.Ret, def, retOpaque)
		})
		out.Generics = generics
		out.Data = &hir.ImplMethodData{Decl: decl, Body: body}

	case *ast.ImplTypeData:
		out.Generics = lo.lowerGenerics(&ii.Generics)
		out.Data = &hir.ImplTypeData{Ty: lo.lowerTy(data.Ty, opaqueDisallowed())}

	default:
		bug("unknown impl item kind %d", ii.Kind)
	}
	return out
}

// lowerUseTree flattens an import declaration. Every nested leaf becomes
// its own item under its own identity owner; the written stem survives
// as an ImportListStem item so the whole declaration stays addressable.
func (lo *Lowerer) lowerUseTree(tree *ast.ImportTree, prefix *ast.Path, id ast.NodeID, vis ast.Vis) *hir.Item {
	joined := joinImportPrefix(prefix, &tree.Prefix)

	out := &hir.Item{
		ID:   lo.ensure(id),
		Node: id,
		Kind: hir.ItemImport,
		Vis:  vis,
		Span: tree.Span,
	}

	switch tree.Kind {
	case ast.ImportSimple:
		alias := tree.Alias
		if alias == 0 && len(joined.Segments) > 0 {
			alias = joined.Segments[len(joined.Segments)-1].Name
		}
		out.Name = alias
		out.Data = &hir.ImportData{
			Kind:  hir.ImportSingle,
			Path:  lo.lowerPath(id, joined, paramExplicit),
			Alias: alias,
		}

	case ast.ImportGlob:
		out.Data = &hir.ImportData{
			Kind: hir.ImportGlob,
			Path: lo.lowerPath(id, joined, paramExplicit),
		}

	case ast.ImportNested:
		for _, child := range tree.Children {
			item := withOwner(lo, child.ID, func() *hir.Item {
				return lo.lowerUseTree(child, joined, child.ID, vis)
			})
			lo.items[child.ID] = item
		}
		out.Vis = ast.VisInherited
		out.Data = &hir.ImportData{
			Kind: hir.ImportListStem,
			Path: lo.lowerPath(id, joined, paramExplicit),
		}

	default:
		bug("unknown import tree kind %d", tree.Kind)
	}
	return out
}

func joinImportPrefix(prefix, rest *ast.Path) *ast.Path {
	if prefix == nil || len(prefix.Segments) == 0 {
		return rest
	}
	if len(rest.Segments) == 0 {
		return prefix
	}
	segs := make([]ast.PathSeg, 0, len(prefix.Segments)+len(rest.Segments))
	segs = append(segs, prefix.Segments...)
	segs = append(segs, rest.Segments...)
	span := prefix.Span
	if rest.Span.File == span.File && rest.Span.End > span.End {
		span.End = rest.Span.End
	}
	return &ast.Path{Span: span, Segments: segs}
}
