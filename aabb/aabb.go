// Package aabb provides an axis-aligned bounding box type used for polyline
// extents, per-segment bounding boxes, and spatial index entries.
package aabb

import (
	"fmt"

	"github.com/mikenye/polyarc/point"
)

// AABB represents an axis-aligned bounding box defined by its minimum and
// maximum corners.
type AABB struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// New creates an AABB from the extents given. The caller is responsible for
// ensuring MinX <= MaxX and MinY <= MaxY; use FromPoints when the ordering is
// not known.
func New(minX, minY, maxX, maxY float64) AABB {
	return AABB{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// FromPoints creates the smallest AABB containing both points given.
func FromPoints(a, b point.Point) AABB {
	return AABB{
		MinX: min(a.X(), b.X()),
		MinY: min(a.Y(), b.Y()),
		MaxX: max(a.X(), b.X()),
		MaxY: max(a.Y(), b.Y()),
	}
}

// Expand returns the AABB grown outward by amount on all sides.
func (b AABB) Expand(amount float64) AABB {
	return AABB{
		MinX: b.MinX - amount,
		MinY: b.MinY - amount,
		MaxX: b.MaxX + amount,
		MaxY: b.MaxY + amount,
	}
}

// ExtendPoint returns the AABB grown to include the point given.
func (b AABB) ExtendPoint(p point.Point) AABB {
	return AABB{
		MinX: min(b.MinX, p.X()),
		MinY: min(b.MinY, p.Y()),
		MaxX: max(b.MaxX, p.X()),
		MaxY: max(b.MaxY, p.Y()),
	}
}

// Union returns the smallest AABB containing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// ContainsPoint reports whether the point lies within the box (boundary
// inclusive).
func (b AABB) ContainsPoint(p point.Point) bool {
	return p.X() >= b.MinX && p.X() <= b.MaxX && p.Y() >= b.MinY && p.Y() <= b.MaxY
}

// Overlaps reports whether b and other share any area (boundary inclusive).
func (b AABB) Overlaps(other AABB) bool {
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// Width returns the x extent of the box.
func (b AABB) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the y extent of the box.
func (b AABB) Height() float64 {
	return b.MaxY - b.MinY
}

// String returns a string representation of the AABB.
func (b AABB) String() string {
	return fmt.Sprintf("[(%f,%f),(%f,%f)]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}
