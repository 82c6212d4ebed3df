// Package hir defines the core tree: the canonical, desugared form of a
// compilation unit that later analyses consume.
//
// Identity is composite: every node carries an ID made of an owner (the
// enclosing item-like definition) plus a dense local index. The owner
// node itself always sits at local 0. Composite ids stay stable when
// sibling items are added or reordered, which keeps downstream caches
// usable across incremental edits.
//
// The package is data-only. Construction belongs to internal/lower;
// definition bookkeeping lives in Registry; Unit aggregates the flat
// output tables with deterministic iteration orders.
package hir
