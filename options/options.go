// Package options provides configurable settings for the polyline engines in
// the polyarc library.
//
// This package defines a functional options pattern, allowing users to modify
// the behavior of the offset, boolean and intersect engines without changing
// their signatures. Each engine has its own options struct with explicit
// fields; the functional option types modify those structs over a set of
// defaults.
//
// # Epsilon Values
//
// Three distinct epsilon values appear across the option structs because they
// arise at different scales:
//
//   - PosEqualEps: position equality in world units (default 1e-5).
//   - OffsetDistEps: slice validity tested against the offset distance, where
//     errors propagate through subtractions of radii (default 1e-4).
//   - SliceJoinEps: stitching end point matches, which accumulate both raw
//     offset and trimming errors (default 1e-4).
//
// Conflating them produces either missed joins or spurious pieces, so they
// are configured independently.
package options

import (
	"github.com/mikenye/polyarc/index"
	"github.com/mikenye/polyarc/numeric"
)

// DefaultSliceJoinEps is the default epsilon used when matching slice end
// points during stitching.
const DefaultSliceJoinEps = 1e-4

// DefaultOffsetDistEps is the default epsilon used when validating offset
// slice distances against the original polyline.
const DefaultOffsetDistEps = 1e-4

// OffsetOptions holds the parameters for a parallel offset operation.
type OffsetOptions struct {
	// AABBIndex is a spatial index of all the polyline segment bounding boxes
	// (or boxes no smaller; an approximate index is valid). If nil then it
	// will be computed internally.
	AABBIndex *index.Index

	// HandleSelfIntersects enables proper handling of self intersecting
	// input polylines at additional cost in memory and computation.
	HandleSelfIntersects bool

	// PosEqualEps is the fuzzy comparison epsilon used for determining if two
	// positions are equal.
	PosEqualEps float64

	// SliceJoinEps is the fuzzy comparison epsilon used for determining if
	// two positions are equal when stitching polyline slices together.
	SliceJoinEps float64

	// OffsetDistEps is the fuzzy comparison epsilon used when testing the
	// distance of slices to the original polyline for validity.
	OffsetDistEps float64
}

// OffsetOptionFunc is a functional option applied to an OffsetOptions struct.
type OffsetOptionFunc func(*OffsetOptions)

// NewOffsetOptions returns an OffsetOptions struct with the default values
// applied, modified by any option functions given.
func NewOffsetOptions(opts ...OffsetOptionFunc) OffsetOptions {
	o := OffsetOptions{
		PosEqualEps:   numeric.DefaultEpsilon,
		SliceJoinEps:  DefaultSliceJoinEps,
		OffsetDistEps: DefaultOffsetDistEps,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithOffsetAABBIndex supplies a pre-built spatial index of the source
// polyline's segments to avoid rebuilding it.
func WithOffsetAABBIndex(ix *index.Index) OffsetOptionFunc {
	return func(o *OffsetOptions) {
		o.AABBIndex = ix
	}
}

// WithHandleSelfIntersects controls whether the offset algorithm properly
// handles self intersecting input polylines.
func WithHandleSelfIntersects(handle bool) OffsetOptionFunc {
	return func(o *OffsetOptions) {
		o.HandleSelfIntersects = handle
	}
}

// WithOffsetPosEqualEps sets the position equality epsilon for the offset
// operation.
func WithOffsetPosEqualEps(eps float64) OffsetOptionFunc {
	return func(o *OffsetOptions) {
		o.PosEqualEps = eps
	}
}

// WithOffsetSliceJoinEps sets the slice join epsilon for the offset
// operation.
func WithOffsetSliceJoinEps(eps float64) OffsetOptionFunc {
	return func(o *OffsetOptions) {
		o.SliceJoinEps = eps
	}
}

// WithOffsetDistEps sets the offset distance validity epsilon for the offset
// operation.
func WithOffsetDistEps(eps float64) OffsetOptionFunc {
	return func(o *OffsetOptions) {
		o.OffsetDistEps = eps
	}
}

// BooleanOptions holds the parameters for a boolean operation between two
// polylines.
type BooleanOptions struct {
	// Pline1AABBIndex is a spatial index for the first polyline argument of
	// the boolean operation. If nil then it will be computed internally.
	Pline1AABBIndex *index.Index

	// PosEqualEps is the fuzzy comparison epsilon used for determining if two
	// positions are equal.
	PosEqualEps float64

	// SliceJoinEps is the fuzzy comparison epsilon used for determining if
	// two positions are equal when stitching polyline slices together.
	SliceJoinEps float64
}

// BooleanOptionFunc is a functional option applied to a BooleanOptions
// struct.
type BooleanOptionFunc func(*BooleanOptions)

// NewBooleanOptions returns a BooleanOptions struct with the default values
// applied, modified by any option functions given.
func NewBooleanOptions(opts ...BooleanOptionFunc) BooleanOptions {
	o := BooleanOptions{
		PosEqualEps:  numeric.DefaultEpsilon,
		SliceJoinEps: DefaultSliceJoinEps,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBooleanPline1AABBIndex supplies a pre-built spatial index of the first
// polyline's segments to avoid rebuilding it.
func WithBooleanPline1AABBIndex(ix *index.Index) BooleanOptionFunc {
	return func(o *BooleanOptions) {
		o.Pline1AABBIndex = ix
	}
}

// WithBooleanPosEqualEps sets the position equality epsilon for the boolean
// operation.
func WithBooleanPosEqualEps(eps float64) BooleanOptionFunc {
	return func(o *BooleanOptions) {
		o.PosEqualEps = eps
	}
}

// WithBooleanSliceJoinEps sets the slice join epsilon for the boolean
// operation.
func WithBooleanSliceJoinEps(eps float64) BooleanOptionFunc {
	return func(o *BooleanOptions) {
		o.SliceJoinEps = eps
	}
}

// SelfIntersectsInclude controls which self intersects to include when
// visiting them.
type SelfIntersectsInclude uint8

const (
	// SelfIntersectsAll includes all (local and global) self intersects.
	SelfIntersectsAll SelfIntersectsInclude = iota

	// SelfIntersectsLocal includes only local self intersects (between two
	// adjacent polyline segments).
	SelfIntersectsLocal

	// SelfIntersectsGlobal includes only global self intersects (between two
	// non-adjacent polyline segments).
	SelfIntersectsGlobal
)

// SelfIntersectOptions holds the parameters for visiting a polyline's self
// intersects.
type SelfIntersectOptions struct {
	// AABBIndex is a spatial index of the polyline's segments. If nil then
	// it will be computed internally.
	AABBIndex *index.Index

	// PosEqualEps is the fuzzy comparison epsilon used for determining if two
	// positions are equal.
	PosEqualEps float64

	// Include controls whether to include all, only local, or only global
	// self intersects.
	Include SelfIntersectsInclude
}

// SelfIntersectOptionFunc is a functional option applied to a
// SelfIntersectOptions struct.
type SelfIntersectOptionFunc func(*SelfIntersectOptions)

// NewSelfIntersectOptions returns a SelfIntersectOptions struct with the
// default values applied, modified by any option functions given.
func NewSelfIntersectOptions(opts ...SelfIntersectOptionFunc) SelfIntersectOptions {
	o := SelfIntersectOptions{
		PosEqualEps: numeric.DefaultEpsilon,
		Include:     SelfIntersectsAll,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSelfIntersectAABBIndex supplies a pre-built spatial index of the
// polyline's segments to avoid rebuilding it.
func WithSelfIntersectAABBIndex(ix *index.Index) SelfIntersectOptionFunc {
	return func(o *SelfIntersectOptions) {
		o.AABBIndex = ix
	}
}

// WithSelfIntersectPosEqualEps sets the position equality epsilon for the
// self intersect visit.
func WithSelfIntersectPosEqualEps(eps float64) SelfIntersectOptionFunc {
	return func(o *SelfIntersectOptions) {
		o.PosEqualEps = eps
	}
}

// WithSelfIntersectsInclude controls which self intersects are included.
func WithSelfIntersectsInclude(include SelfIntersectsInclude) SelfIntersectOptionFunc {
	return func(o *SelfIntersectOptions) {
		o.Include = include
	}
}

// FindIntersectsOptions holds the parameters for finding intersects between
// two polylines.
type FindIntersectsOptions struct {
	// Pline1AABBIndex is a spatial index for the first polyline argument. If
	// nil then it will be computed internally.
	Pline1AABBIndex *index.Index

	// PosEqualEps is the fuzzy comparison epsilon used for determining if two
	// positions are equal.
	PosEqualEps float64
}

// FindIntersectsOptionFunc is a functional option applied to a
// FindIntersectsOptions struct.
type FindIntersectsOptionFunc func(*FindIntersectsOptions)

// NewFindIntersectsOptions returns a FindIntersectsOptions struct with the
// default values applied, modified by any option functions given.
func NewFindIntersectsOptions(opts ...FindIntersectsOptionFunc) FindIntersectsOptions {
	o := FindIntersectsOptions{
		PosEqualEps: numeric.DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFindIntersectsPline1AABBIndex supplies a pre-built spatial index of the
// first polyline's segments to avoid rebuilding it.
func WithFindIntersectsPline1AABBIndex(ix *index.Index) FindIntersectsOptionFunc {
	return func(o *FindIntersectsOptions) {
		o.Pline1AABBIndex = ix
	}
}

// WithFindIntersectsPosEqualEps sets the position equality epsilon for the
// intersect search.
func WithFindIntersectsPosEqualEps(eps float64) FindIntersectsOptionFunc {
	return func(o *FindIntersectsOptions) {
		o.PosEqualEps = eps
	}
}
