package ast

import "sable/internal/source"

// Region is one written region occurrence, e.g. `'a`, `'static` or `'_`.
type Region struct {
	ID   NodeID
	Name source.StringID
	Span source.Span
}

// RegionParam declares a region parameter with optional outlives bounds,
// e.g. `'a: 'b`.
type RegionParam struct {
	Region Region
	Bounds []Region
}

// TypeParam declares a type parameter with optional bounds and default.
type TypeParam struct {
	ID      NodeID
	Name    source.StringID
	Bounds  []Bound
	Default *Ty
	Span    source.Span
}

// BoundKind discriminates the two bound forms.
type BoundKind uint8

const (
	// BoundTrait is a trait bound, e.g. `Clone` or `for<'a> Fn(&'a u8)`.
	BoundTrait BoundKind = iota
	// BoundRegion is an outlives bound, e.g. `'a`.
	BoundRegion
)

// BoundModifier marks optional bounds (`?Trait`).
type BoundModifier uint8

const (
	BoundRequired BoundModifier = iota
	BoundOptional
)

// Bound is one entry of a bound list.
type Bound struct {
	Kind     BoundKind
	Modifier BoundModifier  // trait bounds only
	Trait    *PolyTraitRef  // set when Kind == BoundTrait
	Region   Region         // set when Kind == BoundRegion
}

// PolyTraitRef is a trait reference under an optional region binder,
// e.g. `for<'a> Fn(&'a u8)`.
type PolyTraitRef struct {
	Binders []RegionParam
	Trait   TraitRef
	Span    source.Span
}

// TraitRef names a trait. RefID is the resolution key for the trait path.
type TraitRef struct {
	RefID NodeID
	Path  *Path
}

// Generics collects the parameter lists and where clause of an item.
type Generics struct {
	Regions []RegionParam
	Types   []TypeParam
	Where   []WherePred
	Span    source.Span
}

// WherePredKind discriminates where-clause predicate forms.
type WherePredKind uint8

const (
	// WhereBound is `for<'a> T: Bound + ...`.
	WhereBound WherePredKind = iota
	// WhereRegion is `'a: 'b + ...`.
	WhereRegion
	// WhereEq is the (reserved) `T = U` form.
	WhereEq
)

// WherePred is one predicate of a where clause.
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
	EqID NodeID
	LHS  *Ty
	RHS  *Ty
}
