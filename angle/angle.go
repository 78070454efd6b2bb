// Package angle provides angle and bulge utilities for arc geometry.
//
// # Overview
//
// Arcs in the polyarc library are stored as a bulge value on the starting
// vertex of a segment, where bulge = tan(sweepAngle/4) and the sign of the
// bulge gives the arc direction (positive is counter-clockwise). This package
// holds the conversions between bulge values and sweep angles along with the
// angle normalization, differencing and sweep containment predicates used by
// the segment and intersection code.
//
// # Conventions
//
//   - Angles are measured in radians, counter-clockwise from the positive
//     x-axis, as returned by math.Atan2.
//   - Normalize folds any angle into [0, 2π).
//   - Delta returns the signed smallest angular difference in (-π, π].
package angle

import (
	"math"

	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

const tau = 2 * math.Pi

// FromPoints returns the angle of the direction vector from center to pt,
// measured counter-clockwise from the positive x-axis in (-π, π].
func FromPoints(center, pt point.Point) float64 {
	return math.Atan2(pt.Y()-center.Y(), pt.X()-center.X())
}

// Normalize folds radians into the range [0, 2π).
func Normalize(radians float64) float64 {
	if radians >= 0 && radians < tau {
		return radians
	}
	r := math.Mod(radians, tau)
	if r < 0 {
		r += tau
	}
	return r
}

// Delta returns the signed smallest angular difference going from angle a to
// angle b. The result is in (-π, π], positive when the shortest rotation from
// a to b is counter-clockwise.
func Delta(a, b float64) float64 {
	d := Normalize(b - a)
	if d > math.Pi {
		d -= tau
	}
	return d
}

// DeltaSigned returns the angular difference going from angle a to angle b
// with the rotation direction forced: counter-clockwise yields a result in
// [0, 2π), clockwise yields a result in (-2π, 0].
func DeltaSigned(a, b float64, clockwise bool) float64 {
	if clockwise {
		return -Normalize(a - b)
	}
	return Normalize(b - a)
}

// FromBulge returns the signed arc sweep angle for a bulge value,
// sweep = 4·atan(bulge).
func FromBulge(bulge float64) float64 {
	return 4.0 * math.Atan(bulge)
}

// Bulge returns the bulge value for a signed arc sweep angle,
// bulge = tan(sweep/4).
func Bulge(sweep float64) float64 {
	return math.Tan(sweep / 4.0)
}

// IsWithinSweep reports whether testAngle lies within the arc sweep starting
// at startAngle and rotating by the signed sweepAngle. epsilon is used for
// fuzzy comparison at the sweep ends; callers should scale it by the arc
// radius when the tolerance must be positional.
func IsWithinSweep(testAngle, startAngle, sweepAngle, epsilon float64) bool {
	endAngle := startAngle + sweepAngle
	if sweepAngle < 0 {
		return isBetween(testAngle, endAngle, startAngle, epsilon)
	}
	return isBetween(testAngle, startAngle, endAngle, epsilon)
}

// isBetween reports whether testAngle lies within the counter-clockwise sweep
// from startAngle to endAngle.
func isBetween(testAngle, startAngle, endAngle, epsilon float64) bool {
	endDiff := Normalize(endAngle - startAngle)
	midDiff := Normalize(testAngle - startAngle)
	return numeric.FloatLessThanOrEqualTo(midDiff, endDiff, epsilon)
}

// PointOnCircle returns the point on the circle with the given radius and
// center at the given angle.
func PointOnCircle(radius float64, center point.Point, radians float64) point.Point {
	return point.New(
		center.X()+radius*math.Cos(radians),
		center.Y()+radius*math.Sin(radians),
	)
}

// PointWithinArcSweep reports whether pt lies within the angular region swept
// by the arc defined by its center, start point, end point and rotation
// direction. Only the angle of pt relative to the center matters; its
// distance from the center is not tested.
func PointWithinArcSweep(center, arcStart, arcEnd point.Point, clockwise bool, pt point.Point, epsilon float64) bool {
	start, end := arcStart, arcEnd
	if clockwise {
		// treat the arc as counter-clockwise from end to start
		start, end = arcEnd, arcStart
	}

	if point.IsLeft(center, start, end) {
		// sweep angle is less than π
		return point.IsLeftOrCoincident(center, start, pt, epsilon) &&
			point.IsRightOrCoincident(center, end, pt, epsilon)
	}

	// sweep angle is greater than or equal to π
	return point.IsLeftOrCoincident(center, start, pt, epsilon) ||
		point.IsRightOrCoincident(center, end, pt, epsilon)
}
