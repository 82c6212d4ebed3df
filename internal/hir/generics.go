package hir

import "sable/internal/source"

// RegionKind classifies how a region occurrence was written.
type RegionKind uint8

const (
	// RegionNamed is an explicitly named region, e.g. `'a`.
	RegionNamed RegionKind = iota
	// RegionStatic is `'static`.
	RegionStatic
	// RegionElided is an omitted or `'_` region.
	RegionElided
)

func (k RegionKind) String() string {
	switch k {
	case RegionNamed:
		return "Named"
	case RegionStatic:
		return "Static"
	case RegionElided:
		return "Elided"
	default:
		return "Unknown"
	}
}

// Region is a lowered region occurrence.
type Region struct {
	ID   ID
	Name source.StringID
	Kind RegionKind
	Span source.Span
}

// RegionParam declares a region parameter. Implicit marks parameters the
// lowering pass promoted from free occurrences rather than the user
// writing them in a parameter list.
type RegionParam struct {
	Region   Region
	Bounds   []Region
	Implicit bool
}

// TypeParam declares a type parameter. Synthetic marks parameters
// fabricated from argument-position opaque-type sugar.
type TypeParam struct {
	ID        ID
	Name      source.StringID
	Bounds    []Bound
	Default   *Ty
	Synthetic bool
	Span      source.Span
}

// BoundKind discriminates bound forms.
type BoundKind uint8

const (
	BoundTrait BoundKind = iota
	BoundRegion
)

// BoundModifier marks optional bounds (`?Trait`).
type BoundModifier uint8

const (
	BoundRequired BoundModifier = iota
	BoundOptional
)

// Bound is one lowered entry of a bound list.
type Bound struct {
	Kind     BoundKind
	Modifier BoundModifier
	Trait    *PolyTraitRef
	Region   Region
}

// TraitRef is a lowered trait reference. RefID is the canonical id of
// the reference node.
type TraitRef struct {
	RefID ID
	Path  *Path
}

// PolyTraitRef is a trait reference under a region binder.
type PolyTraitRef struct {
	Binders []RegionParam
	Trait   TraitRef
	Span    source.Span
}

// WhereClause is a lowered where clause.
type WhereClause struct {
	ID    ID
	Preds []WherePred
}

// WherePredKind discriminates where-clause predicate forms.
type WherePredKind uint8

const (
	WhereBound WherePredKind = iota
	WhereRegion
	WhereEq
)

// WherePred is one lowered predicate.
type WherePred struct {
	Kind WherePredKind
	Span source.Span

	// WhereBound
	Binders []RegionParam
	Ty      *Ty
	Bounds  []Bound

	// WhereRegion
	Region       Region
	RegionBounds []Region

	// WhereEq
	EqID ID
	LHS  *Ty
	RHS  *Ty
}

// Generics collects the lowered parameter lists and where clause of an
// item. Implicit region parameters follow the explicit ones; synthetic
// type parameters follow the explicit ones.
type Generics struct {
	Regions []RegionParam
	Types   []TypeParam
	Where   WhereClause
	Span    source.Span
}
