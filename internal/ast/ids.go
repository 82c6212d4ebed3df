package ast

import "fmt"

// NodeID identifies a node of the surface tree. Every node the parser
// produces carries exactly one NodeID; the lowering pass keys all of its
// bookkeeping (identity allocation, resolutions, definitions) on it.
type NodeID uint32

// NoNode is the absent-node sentinel. Real ids start at 1.
const NoNode NodeID = 0

func (id NodeID) IsValid() bool {
	return id != NoNode
}

func (id NodeID) String() string {
	if id == NoNode {
		return "node(-)"
	}
	return fmt.Sprintf("node(%d)", uint32(id))
}

// IDSource hands out surface-tree node ids. The parser owns one per unit;
// the lowering pass borrows it to mint ids for synthesized nodes, so
// synthesized and parsed ids never collide.
type IDSource struct {
	next NodeID
}

// NewIDSource returns a source that starts issuing ids at first.
// A zero first is bumped to 1 so NoNode is never handed out.
func NewIDSource(first NodeID) *IDSource {
	if first == NoNode {
		first = 1
	}
	return &IDSource{next: first}
}

// Next mints a fresh id. Builder code that attaches the id to a node
// immediately can use this directly.
func (s *IDSource) Next() NodeID {
	id := s.next
	s.next++
	return id
}

// Peek returns the id Next would mint, without minting it.
func (s *IDSource) Peek() NodeID {
	return s.next
}

// Reserve mints a fresh id wrapped in a single-use token. Callers that
// carry a fresh id across several steps should reserve instead of calling
// Next, so an accidental double spend fails loudly.
func (s *IDSource) Reserve() ReservedID {
	return ReservedID{id: s.Next()}
}

// ReservedID is a fresh NodeID that may be claimed exactly once.
type ReservedID struct {
	id   NodeID
	used bool
}

// Use claims the reserved id. Claiming twice panics: a reserved id stands
// for one node, and handing it to two nodes would alias their identities.
func (r *ReservedID) Use() NodeID {
	if r.used {
		panic(fmt.Sprintf("ast: reserved id %s used twice", r.id))
	}
	r.used = true
	return r.id
}
