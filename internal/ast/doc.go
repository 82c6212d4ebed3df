// Package ast defines the surface tree: the parser's output and the
// lowering pass's input.
//
// Nodes follow a uniform shape: a Kind tag, a Span, and a Kind-specific
// payload behind a small marker interface (ExprData, TyData, ...). Every
// node carries a NodeID minted by an IDSource; ids are dense, unique per
// unit, and are the key for resolutions and canonical-identity mapping
// downstream.
//
// The tree deliberately keeps sugared forms (for-in, while-let, if-let,
// try, catch, placement, ranges) as distinct kinds. Rewriting them into
// the smaller core vocabulary is the lowering pass's job, not the
// parser's.
package ast
