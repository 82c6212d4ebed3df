package ast

import "sable/internal/source"

// Unit is one compilation unit: the root of a surface tree. The unit node
// owns the root identity namespace; its NodeID is allocated like any
// other node.
type Unit struct {
	ID    NodeID
	Name  string
	Span  source.Span
	Items []*Item
}
