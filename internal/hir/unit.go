package hir

import (
	"sable/internal/ast"
	"sable/internal/source"
)

// Unit is the lowered form of one compilation unit: flat tables keyed by
// stable ids, with deterministic iteration orders materialized up front.
type Unit struct {
	Name string
	Span source.Span

	// Module is the root module; nested modules appear as items.
	Module Mod

	// Items maps surface item ids to lowered items. ItemNodes lists the
	// keys in ascending surface-id order.
	Items     map[ast.NodeID]*Item
	ItemNodes []ast.NodeID

	// TraitItems and ImplItems hold associated items keyed by their
	// canonical ids.
	TraitItems map[ID]*TraitItem
	ImplItems  map[ID]*ImplItem

	// Bodies holds every executable chunk. BodyIDs lists the keys
	// ordered by the span of the body's value expression, so iteration
	// follows source order.
	Bodies  map[BodyID]*Body
	BodyIDs []BodyID

	// TraitImpls maps a trait definition to the impl items implementing
	// it, in lowering order. TraitAutoImpls maps a trait definition to
	// its blanket auto-impl item.
	TraitImpls     map[OwnerID][]ast.NodeID
	TraitAutoImpls map[OwnerID]ast.NodeID
}

// Body returns a lowered body by id, or nil.
func (u *Unit) Body(id BodyID) *Body {
	return u.Bodies[id]
}

// Item returns a lowered item by its surface id, or nil.
func (u *Unit) Item(node ast.NodeID) *Item {
	return u.Items[node]
}
