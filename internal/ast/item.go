package ast

import "sable/internal/source"

// Vis is item visibility.
type Vis uint8

const (
	// VisInherited keeps the visibility of the enclosing scope.
	VisInherited Vis = iota
	// VisPublic is `pub`.
	VisPublic
)

// ItemKind enumerates top-level item forms.
type ItemKind uint8

const (
	// ItemFn is a free function.
	ItemFn ItemKind = iota
	// ItemConst is a `const` item.
	ItemConst
	// ItemStatic is a `static` item.
	ItemStatic
	// ItemTypeAlias is `type Name = Ty`.
	ItemTypeAlias
	// ItemStruct is a struct declaration.
	ItemStruct
	// ItemEnum is an enum declaration.
	ItemEnum
	// ItemUnion is an untagged union declaration.
	ItemUnion
	// ItemTrait is a trait declaration.
	ItemTrait
	// ItemImpl is an inherent or trait implementation block.
	ItemImpl
	// ItemAutoImpl is a blanket auto-trait implementation `impl Trait for ..`.
	ItemAutoImpl
	// ItemMod is a nested module.
	ItemMod
	// ItemImport is an import declaration, possibly a nested tree.
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

// Item is a surface item node. Items own identity namespaces: every node
// below an item gets its canonical id from that item's counter.
type Item struct {
	ID   NodeID
	Kind ItemKind
	Name source.StringID
	Vis  Vis
	Span source.Span
	Data ItemData
}

// ItemData is the interface for item-specific payloads.
type ItemData interface {
	itemData()
}

// Param is one formal parameter of a function or closure.
type Param struct {
	ID   NodeID
	Pat  *Pat
	Ty   *Ty
	Span source.Span
}

// FnData holds data for ItemFn.
type FnData struct {
	Generics Generics
	Params   []Param
	Ret      *Ty // nil means unit
	Body     *Block
}

func (FnData) itemData() {}

// ConstData holds data for ItemConst.
type ConstData struct {
	Ty    *Ty
	Value *Expr
}

func (ConstData) itemData() {}

// StaticData holds data for ItemStatic.
type StaticData struct {
	Ty    *Ty
	Mut   bool
	Value *Expr
}

func (StaticData) itemData() {}

// AliasData holds data for ItemTypeAlias.
type AliasData struct {
	Generics Generics
	Ty       *Ty
}

func (AliasData) itemData() {}

// VariantKind distinguishes struct-like, tuple-like and unit variants.
type VariantKind uint8

const (
	VariantStruct VariantKind = iota
	VariantTuple
	VariantUnit
)

// Field is one field of a struct, union or variant.
type Field struct {
	ID   NodeID
	Name source.StringID // 0 for positional fields
	Ty   *Ty
	Span source.Span
}

// VariantData is the field list of a struct, union or enum variant.
// The data itself carries a NodeID: the constructor identity for tuple
// and unit forms.
type VariantData struct {
	ID     NodeID
	Kind   VariantKind
	Fields []Field
}

// Variant is one alternative of an enum.
type Variant struct {
	ID   NodeID
	Name source.StringID
	Data VariantData
	Disr *Expr // explicit discriminant, nil when absent
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

// TraitData holds data for ItemTrait.
type TraitData struct {
	IsAuto   bool
	Generics Generics
	Bounds   []Bound
	Items    []*TraitItem
}

func (TraitData) itemData() {}

// ImplData holds data for ItemImpl. Trait is nil for inherent impls.
type ImplData struct {
	Generics Generics
	Trait    *TraitRef
	SelfTy   *Ty
	Items    []*ImplItem
}

func (ImplData) itemData() {}

// AutoImplData holds data for ItemAutoImpl.
type AutoImplData struct {
	Trait TraitRef
}

func (AutoImplData) itemData() {}

// ModData holds data for ItemMod.
type ModData struct {
	Inner source.Span
	Items []*Item
}

func (ModData) itemData() {}

// ImportData holds data for ItemImport.
type ImportData struct {
	Tree *ImportTree
}

func (ImportData) itemData() {}

// ImportKind enumerates import-tree node forms.
type ImportKind uint8

const (
	// ImportSimple is `import a::b as c`.
	ImportSimple ImportKind = iota
	// ImportGlob is `import a::b::*`.
	ImportGlob
	// ImportNested is `import a::{b, c::d}`.
	ImportNested
)

// ImportTree is one node of an import declaration. Nested children carry
// their own NodeIDs: each leaf becomes a separate item with its own
// identity namespace.
type ImportTree struct {
	ID       NodeID
	Kind     ImportKind
	Prefix   Path
	Alias    source.StringID // 0 means the last prefix segment
	Children []*ImportTree   // ImportNested only
	Span     source.Span
}

// TraitItemKind enumerates associated-item forms inside a trait.
type TraitItemKind uint8

const (
	TraitItemConst TraitItemKind = iota
	TraitItemMethod
	TraitItemType
)

// TraitItem is one associated item of a trait declaration.
type TraitItem struct {
	ID       NodeID
	Kind     TraitItemKind
	Name     source.StringID
	Generics Generics
	Span     source.Span
	Data     TraitItemData
}

// TraitItemData is the interface for trait-item payloads.
type TraitItemData interface {
	traitItemData()
}

// TraitConstData holds data for TraitItemConst.
type TraitConstData struct {
	Ty      *Ty
	Default *Expr
}

func (TraitConstData) traitItemData() {}

// TraitMethodData holds data for TraitItemMethod. Body is nil for
// required methods.
type TraitMethodData struct {
	Params []Param
	Ret    *Ty
	Body   *Block
}

func (TraitMethodData) traitItemData() {}

// TraitTypeData holds data for TraitItemType.
type TraitTypeData struct {
	Bounds  []Bound
	Default *Ty
}

func (TraitTypeData) traitItemData() {}

// ImplItemKind enumerates associated-item forms inside an impl block.
type ImplItemKind uint8

const (
	ImplItemConst ImplItemKind = iota
	ImplItemMethod
	ImplItemType
)

// ImplItem is one associated item of an impl block.
type ImplItem struct {
	ID       NodeID
	Kind     ImplItemKind
	Name     source.StringID
	Vis      Vis
	Generics Generics
	Span     source.Span
	Data     ImplItemData
}

// ImplItemData is the interface for impl-item payloads.
type ImplItemData interface {
	implItemData()
}

// ImplConstData holds data for ImplItemConst.
type ImplConstData struct {
	Ty    *Ty
	Value *Expr
}

func (ImplConstData) implItemData() {}

// ImplMethodData holds data for ImplItemMethod.
type ImplMethodData struct {
	Params []Param
	Ret    *Ty
	Body   *Block
}

func (ImplMethodData) implItemData() {}

// ImplTypeData holds data for ImplItemType.
type ImplTypeData struct {
	Ty *Ty
}

func (ImplTypeData) implItemData() {}
