package lower

import (
	"fortio.org/safecast"

	"sable/internal/ast"
	"sable/internal/hir"
)

// activeOwner is one entry of the owner stack: while it is on top,
// ensure allocates locals for its definition.
type activeOwner struct {
	def  hir.OwnerID
	node ast.NodeID
	next hir.LocalID
}

// ownerCounter is the parked allocation state of an owner that is not
// currently on top of the stack. inUse guards against an owner being
// activated twice at once.
type ownerCounter struct {
	next  hir.LocalID
	inUse bool
}

// lowered pairs a surface node with its canonical identity.
type lowered struct {
	node ast.NodeID
	id   hir.ID
}

// ensure returns the canonical identity for n, allocating the next
// local of the innermost active owner on first sight. Lowering the same
// node twice yields the same identity. The missing node maps to the
// invalid identity.
func (lo *Lowerer) ensure(n ast.NodeID) hir.ID {
	if !n.IsValid() {
		return hir.ID{}
	}
	lo.growTo(n)
	if id := lo.nodeToID[n]; id.IsValid() {
		return id
	}
	top := &lo.ownerStack[len(lo.ownerStack)-1]
	id := hir.ID{Owner: top.def, Local: top.next}
	top.next++
	lo.nodeToID[n] = id
	return id
}

// ensureFor allocates n's identity from owner's parked counter instead
// of the active owner. Used when a node must belong to an owner that is
// registered but not yet activated, like nested import children.
func (lo *Lowerer) ensureFor(owner, n ast.NodeID) hir.ID {
	if !n.IsValid() {
		return hir.ID{}
	}
	lo.growTo(n)
	if id := lo.nodeToID[n]; id.IsValid() {
		return id
	}
	counter, ok := lo.localCounters[owner]
	if !ok {
		bug("owner %s was never registered", owner)
	}
	if counter.inUse {
		bug("owner %s is active; allocate through ensure", owner)
	}
	def, ok := lo.defs.Opt(owner)
	if !ok {
		bug("owner %s has no definition", owner)
	}
	id := hir.ID{Owner: def, Local: counter.next}
	counter.next++
	lo.localCounters[owner] = counter
	lo.nodeToID[n] = id
	return id
}

// beginOwner registers n as an identity owner and claims local 0 for
// the owner node itself. Registering the same node twice is a bug.
func (lo *Lowerer) beginOwner(n ast.NodeID) {
	if _, dup := lo.localCounters[n]; dup {
		bug("node %s registered as an owner twice", n)
	}
	lo.localCounters[n] = ownerCounter{}
	lo.ensureFor(n, n)
}

// withOwner activates n's counter for the duration of f. Everything
// ensure sees inside f belongs to n. Activations nest; on exit the
// counter is parked again and must not have moved backwards.
func withOwner[T any](lo *Lowerer, n ast.NodeID, f func() T) T {
	counter, ok := lo.localCounters[n]
	if !ok {
		bug("owner %s was never registered", n)
	}
	if counter.inUse {
		bug("owner %s activated while already active", n)
	}
	def, ok := lo.defs.Opt(n)
	if !ok {
		bug("owner %s has no definition", n)
	}
	lo.localCounters[n] = ownerCounter{next: counter.next, inUse: true}
	depth := len(lo.ownerStack)
	lo.ownerStack = append(lo.ownerStack, activeOwner{def: def, node: n, next: counter.next})

	v := f()

	if len(lo.ownerStack) != depth+1 {
		bug("owner stack unbalanced under %s", n)
	}
	top := lo.ownerStack[depth]
	if top.def != def || top.node != n {
		bug("owner stack corrupted under %s", n)
	}
	if top.next < counter.next {
		bug("owner %s counter moved backwards", n)
	}
	lo.ownerStack = lo.ownerStack[:depth]
	lo.localCounters[n] = ownerCounter{next: top.next}
	return v
}

// next mints a node that has no surface counterpart and lowers it
// immediately. Desugared constructs are built from these.
func (lo *Lowerer) next() lowered {
	n := lo.ids.Next()
	return lowered{node: n, id: lo.ensure(n)}
}

// lowerNode is ensure packaged with its input for call sites that need
// both halves.
func (lo *Lowerer) lowerNode(n ast.NodeID) lowered {
	return lowered{node: n, id: lo.ensure(n)}
}

func (lo *Lowerer) growTo(n ast.NodeID) {
	idx, err := safecast.Conv[int](uint32(n))
	if err != nil {
		bug("node id %s does not fit the mapping table: %v", n, err)
	}
	if idx < len(lo.nodeToID) {
		return
	}
	lo.nodeToID = append(lo.nodeToID, make([]hir.ID, idx+1-len(lo.nodeToID))...)
}
