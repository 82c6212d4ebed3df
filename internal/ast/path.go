package ast

import "sable/internal/source"

// Path is a possibly-qualified name, e.g. `std::iter::Iterator`.
// The path itself has no NodeID; identity belongs to the node that
// contains it (expression, type, import, trait reference).
type Path struct {
	Span     source.Span
	Segments []PathSeg
}

// PathSeg is one `name` or `name<args>` step of a path.
type PathSeg struct {
	Name source.StringID
	Args *PathArgs // nil when the segment has no argument list
}

// PathArgs carries the generic arguments of one path segment. Either the
// angle-bracket fields (Regions/Types/Bindings) or the parenthesized
// fields (Inputs/Output) are populated, never both.
type PathArgs struct {
	Span     source.Span
	Regions  []Region
	Types    []*Ty
	Bindings []TyBinding

	Parenthesized bool
	Inputs        []*Ty
	Output        *Ty // nil means the default output type
}

// TyBinding is an associated-type equality constraint inside an argument
// list, e.g. `Item = u32`.
type TyBinding struct {
	ID   NodeID
	Name source.StringID
	Ty   *Ty
	Span source.Span
}

// QSelf qualifies a path with an explicit self type, e.g.
// `<Vec<u8> as Collection>::Item`. Position counts how many leading path
// segments belong to the trait part.
type QSelf struct {
	Ty       *Ty
	Position int
}
