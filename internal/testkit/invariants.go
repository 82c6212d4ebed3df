// Package testkit holds structural checks shared by tests: whole-unit
// invariants that individual assertions would repeat.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/ast"
	"sable/internal/hir"
)

// CheckUnitInvariants runs a minimal set of checks on a lowered unit:
// 1) unit span is non-empty and every item span sits inside it
// 2) ItemNodes lists exactly the item-table keys, in ascending order,
// and every item is local 0 of its own identity owner
// 3) BodyIDs lists exactly the body-table keys, ordered by value span
func CheckUnitInvariants(u *hir.Unit) error {
	if u == nil {
		return fmt.Errorf("nil unit")
	}
	if u.Span.End <= u.Span.Start {
		return fmt.Errorf("unit span is empty: %v", u.Span)
	}

	// 1) + 2) items
	if len(u.ItemNodes) != len(u.Items) {
		return fmt.Errorf("item table has %d entries, node list has %d", len(u.Items), len(u.ItemNodes))
	}
	var prev ast.NodeID
	for i, node := range u.ItemNodes {
		if i > 0 && node <= prev {
			return fmt.Errorf("item nodes out of order: %s after %s", node, prev)
		}
		prev = node
		it := u.Items[node]
		if it == nil {
			return fmt.Errorf("no item for node %s", node)
		}
		if it.Node != node {
			return fmt.Errorf("item keyed by %s names node %s", node, it.Node)
		}
		if it.ID.Local != 0 {
			return fmt.Errorf("item %s has local %d, want 0", node, it.ID.Local)
		}
		sp := it.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != u.Span.File || sp.Start < u.Span.Start || sp.End > u.Span.End {
			return fmt.Errorf("item span %v is outside unit span %v", sp, u.Span)
		}
	}

	// 3) bodies
	if len(u.BodyIDs) != len(u.Bodies) {
		return fmt.Errorf("body table has %d entries, id list has %d", len(u.Bodies), len(u.BodyIDs))
	}
	var prevStart uint32
	for i, id := range u.BodyIDs {
		body := u.Bodies[id]
		if body == nil {
			return fmt.Errorf("no body for id %s", id)
		}
		if body.Value == nil {
			return fmt.Errorf("body %s has no value", id)
		}
		if i > 0 && body.Value.Span.Start < prevStart {
			return fmt.Errorf("body %s listed out of span order", id)
		}
		prevStart = body.Value.Span.Start
	}
	return nil
}

// CheckIdentityInvariants checks the node mapping a lowering pass leaves
// behind: every valid id is unique, and each owner's locals are dense
// starting at zero.
func CheckIdentityInvariants(defs *hir.Registry) error {
	mapping := defs.Mapping()
	if mapping == nil {
		return fmt.Errorf("node mapping not installed")
	}

	seen := make(map[hir.ID]ast.NodeID, len(mapping))
	perOwner := make(map[hir.OwnerID][]bool)
	for n, id := range mapping {
		if !id.IsValid() {
			continue
		}
		node, err := safecast.Conv[uint32](n)
		if err != nil {
			return fmt.Errorf("node index overflow: %w", err)
		}
		if prevNode, dup := seen[id]; dup {
			return fmt.Errorf("nodes %s and %s share identity %s", prevNode, ast.NodeID(node), id)
		}
		seen[id] = ast.NodeID(node)

		locals := perOwner[id.Owner]
		for int(id.Local) >= len(locals) {
			locals = append(locals, false)
		}
		locals[id.Local] = true
		perOwner[id.Owner] = locals
	}

	for owner, locals := range perOwner {
		for local, used := range locals {
			if !used {
				return fmt.Errorf("owner %s skipped local %d", owner, local)
			}
		}
	}
	return nil
}
