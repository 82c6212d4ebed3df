package hir

import (
	"sable/internal/ast"
	"sable/internal/source"
)

// ItemKind enumerates core item forms.
type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemConst
	ItemStatic
	ItemTypeAlias
	ItemStruct
	ItemEnum
	ItemUnion
	ItemTrait
	ItemImpl
	ItemAutoImpl
	ItemMod
	ItemImport
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	case ItemConst:
		return "Const"
	case ItemStatic:
		return "Static"
	case ItemTypeAlias:
		return "TypeAlias"
	case ItemStruct:
		return "Struct"
	case ItemEnum:
		return "Enum"
	case ItemUnion:
		return "Union"
	case ItemTrait:
		return "Trait"
	case ItemImpl:
		return "Impl"
	case ItemAutoImpl:
		return "AutoImpl"
	case ItemMod:
		return "Mod"
	case ItemImport:
		return "Import"
	default:
		return "Unknown"
	}
}

// Item is a lowered item. Node is the surface id it came from; the
// unit's item table is keyed by it.
type Item struct {
	ID   ID
	Node ast.NodeID
	Kind ItemKind
	Name source.StringID
	Vis  ast.Vis
	Span source.Span
	Data ItemData
}

// ItemData is the interface for item-specific payloads.
type ItemData interface {
	itemData()
}

// FnData holds data for ItemFn.
type FnData struct {
	Generics Generics
	Decl     *FnDecl
	Body     BodyID
}

func (FnData) itemData() {}

// ConstData holds data for ItemConst.
type ConstData struct {
	Ty   *Ty
	Body BodyID
}

func (ConstData) itemData() {}

// StaticData holds data for ItemStatic.
type StaticData struct {
	Ty   *Ty
	Mut  bool
	Body BodyID
}

func (StaticData) itemData() {}

// AliasData holds data for ItemTypeAlias.
type AliasData struct {
	Generics Generics
	Ty       *Ty
}

func (AliasData) itemData() {}

// Field is one lowered field.
type Field struct {
	ID   ID
	Name source.StringID
	Ty   *Ty
	Span source.Span
}

// VariantData is a lowered field list. ID is the constructor identity
// for tuple and unit forms.
type VariantData struct {
	ID     ID
	Kind   ast.VariantKind
	Fields []Field
}

// Variant is one lowered enum alternative. Disr is invalid when the
// variant has no explicit discriminant; an explicit one is a nested
// body of its own.
type Variant struct {
	Name source.StringID
	Data VariantData
	Disr BodyID
	Span source.Span
}

// StructData holds data for ItemStruct.
type StructData struct {
	Generics Generics
	Variant  VariantData
}

func (StructData) itemData() {}

// EnumData holds data for ItemEnum.
type EnumData struct {
	Generics Generics
	Variants []Variant
}

func (EnumData) itemData() {}

// UnionData holds data for ItemUnion.
type UnionData struct {
	Generics Generics
	Variant  VariantData
}

func (UnionData) itemData() {}

// TraitData holds data for ItemTrait. Associated items live in the
// unit's trait-item table; Refs lists them in declaration order.
type TraitData struct {
	IsAuto   bool
	Generics Generics
	Bounds   []Bound
	Refs     []TraitItemRef
}

func (TraitData) itemData() {}

// ImplData holds data for ItemImpl.
type ImplData struct {
	Generics Generics
	Trait    *TraitRef
	SelfTy   *Ty
	Refs     []ImplItemRef
}

func (ImplData) itemData() {}

// AutoImplData holds data for ItemAutoImpl.
type AutoImplData struct {
	Trait TraitRef
}

func (AutoImplData) itemData() {}

// Mod is a lowered module: spans plus the surface ids of its items.
type Mod struct {
	Inner     source.Span
	ItemNodes []ast.NodeID
}

// ModData holds data for ItemMod.
type ModData struct {
	Mod Mod
}

func (ModData) itemData() {}

// ImportKind enumerates lowered import forms. Nested surface trees are
// flattened before this point: every leaf is its own item, and the stem
// becomes ImportListStem.
type ImportKind uint8

const (
	ImportSingle ImportKind = iota
	ImportGlob
	ImportListStem
)

func (k ImportKind) String() string {
	switch k {
	case ImportSingle:
		return "Single"
	case ImportGlob:
		return "Glob"
	case ImportListStem:
		return "ListStem"
	default:
		return "Unknown"
	}
}

// ImportData holds data for ItemImport.
type ImportData struct {
	Kind  ImportKind
	Path  *Path
	Alias source.StringID
}

func (ImportData) itemData() {}

// TraitItem is a lowered associated item of a trait.
type TraitItem struct {
	ID       ID
	Node     ast.NodeID
	Kind     ast.TraitItemKind
	Name     source.StringID
	Generics Generics
	Span     source.Span
	Data     TraitItemData
}

// TraitItemData is the interface for trait-item payloads.
type TraitItemData interface {
	traitItemData()
}

// TraitConstData holds data for trait constants. Default is invalid when
// the trait provides no default value.
type TraitConstData struct {
	Ty      *Ty
	Default BodyID
}

func (TraitConstData) traitItemData() {}

// TraitMethodData holds data for trait methods. Body is invalid for
// required methods.
type TraitMethodData struct {
	Decl *FnDecl
	Body BodyID
}

func (TraitMethodData) traitItemData() {}

// TraitTypeData holds data for trait associated types.
type TraitTypeData struct {
	Bounds  []Bound
	Default *Ty
}

func (TraitTypeData) traitItemData() {}

// TraitItemRef points from a trait item to its associated items.
type TraitItemRef struct {
	ID         ID
	Node       ast.NodeID
	Kind       ast.TraitItemKind
	Name       source.StringID
	HasDefault bool
	Span       source.Span
}

// ImplItem is a lowered associated item of an impl block.
type ImplItem struct {
	ID       ID
	Node     ast.NodeID
	Kind     ast.ImplItemKind
	Name     source.StringID
	Vis      ast.Vis
	Generics Generics
	Span     source.Span
	Data     ImplItemData
}

// ImplItemData is the interface for impl-item payloads.
type ImplItemData interface {
	implItemData()
}

// ImplConstData holds data for impl constants.
type ImplConstData struct {
	Ty   *Ty
	Body BodyID
}

func (ImplConstData) implItemData() {}

// ImplMethodData holds data for impl methods.
type ImplMethodData struct {
	Decl *FnDecl
	Body BodyID
}

func (ImplMethodData) implItemData() {}

// ImplTypeData holds data for impl associated types.
type ImplTypeData struct {
	Ty *Ty
}

func (ImplTypeData) implItemData() {}

// ImplItemRef points from an impl item to its associated items.
type ImplItemRef struct {
	ID   ID
	Node ast.NodeID
	Kind ast.ImplItemKind
	Name source.StringID
	Span source.Span
}
