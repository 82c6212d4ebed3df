// Package resolve defines the name-resolution surface the lowering pass
// depends on. The real resolver runs before lowering and fills a Table;
// lowering consults it and never invents resolutions of its own.
package resolve

import (
	"strings"

	"sable/internal/ast"
	"sable/internal/hir"
	"sable/internal/source"
)

// Namespace separates the type and value namespaces for path lookup.
type Namespace uint8

const (
	NSType Namespace = iota
	NSValue
)

// Resolution is what the resolver recorded for one surface node.
// Unresolved counts trailing path segments the resolver could not
// process up front; they lower into type-relative projections.
type Resolution struct {
	Res        hir.Res
	Unresolved int
}

// Resolver is the lowering pass's window into name resolution.
type Resolver interface {
	// Get returns the resolution recorded for a surface node.
	Get(node ast.NodeID) (Resolution, bool)
	// ResolvePath resolves a path the lowering pass synthesized (the
	// protocol paths desugaring emits), writing the result into p.Res.
	ResolvePath(p *hir.Path, ns Namespace)
}

// Table is the map-backed Resolver used by the driver and tests.
type Table struct {
	strings *source.Interner
	nodes   map[ast.NodeID]Resolution
	builtin map[string]hir.Res
}

// NewTable creates an empty table rendering names through interner.
func NewTable(interner *source.Interner) *Table {
	return &Table{
		strings: interner,
		nodes:   make(map[ast.NodeID]Resolution),
		builtin: make(map[string]hir.Res),
	}
}

// Set records the resolution of a surface node.
func (t *Table) Set(node ast.NodeID, res Resolution) {
	t.nodes[node] = res
}

// SetBuiltin records the resolution of a well-known absolute path such
// as "std::iter::Iterator::next".
func (t *Table) SetBuiltin(path string, res hir.Res) {
	t.builtin[path] = res
}

// Get implements Resolver.
func (t *Table) Get(node ast.NodeID) (Resolution, bool) {
	r, ok := t.nodes[node]
	return r, ok
}

// ResolvePath implements Resolver. Unknown paths resolve to the error
// resolution; lowering carries on with it.
func (t *Table) ResolvePath(p *hir.Path, _ Namespace) {
	parts := make([]string, 0, len(p.Segments))
	for i := range p.Segments {
		name, ok := t.strings.Lookup(p.Segments[i].Name)
		if !ok {
			p.Res = hir.Res{}
			return
		}
		parts = append(parts, name)
	}
	if res, ok := t.builtin[strings.Join(parts, "::")]; ok {
		p.Res = res
		return
	}
	p.Res = hir.Res{}
}
