package hir

import "fmt"

// OwnerID is the dense index of an identity owner (an item-like
// definition) inside the unit's definition registry.
type OwnerID uint32

// NoOwner is the absent-owner sentinel; real owners start at 1, so the
// zero ID value is never a valid canonical identity.
const NoOwner OwnerID = 0

func (o OwnerID) IsValid() bool {
	return o != NoOwner
}

func (o OwnerID) String() string {
	if o == NoOwner {
		return "owner(-)"
	}
	return fmt.Sprintf("owner(%d)", uint32(o))
}

// LocalID numbers a node inside its owner's namespace. The owner node
// itself always occupies local 0.
type LocalID uint32

// ID is a canonical node identity: an owner plus a local index. Two
// distinct nodes never share an ID, and the pair survives incremental
// reordering of sibling owners, which a flat global counter would not.
type ID struct {
	Owner OwnerID
	Local LocalID
}

func (id ID) IsValid() bool {
	return id.Owner.IsValid()
}

func (id ID) String() string {
	if !id.IsValid() {
		return "hir(-)"
	}
	return fmt.Sprintf("hir(%d:%d)", uint32(id.Owner), uint32(id.Local))
}

// BodyID identifies a lowered body. It is derived from the canonical id
// of the body's value expression, so bodies need no separate counter.
type BodyID ID

// NewBodyID derives the body id from the body's value expression.
func NewBodyID(value *Expr) BodyID {
	return BodyID(value.ID)
}

func (b BodyID) IsValid() bool {
	return ID(b).IsValid()
}

func (b BodyID) String() string {
	return "body-" + ID(b).String()
}
