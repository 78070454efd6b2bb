// Package intersect provides the numerically robust intersection primitives
// between lines and circles used by the polyline segment intersection code.
//
// # Overview
//
// Three pure functions cover the primitive cases:
//
//   - LineLine: two line segments, handling parallel, collinear and
//     degenerate (zero-length) inputs.
//   - LineCircle: an infinite parametric line against a circle.
//   - CircleCircle: two circles.
//
// All functions take a positional epsilon used for fuzzy comparisons so that
// touching geometry is classified consistently; results are tagged unions
// (a kind enum plus the fields meaningful for that kind) to keep inner
// numerical loops free of dynamic dispatch.
package intersect

import (
	"math"

	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

// LineLineKind describes the type of intersection found between two line
// segments.
type LineLineKind uint8

const (
	// LineLineNone indicates the segments are parallel and not collinear, or
	// collinear without overlap.
	LineLineNone LineLineKind = iota

	// LineLineTrue indicates a true intersection within both segments.
	LineLineTrue

	// LineLineOverlapping indicates the segments are collinear and overlap
	// by some amount.
	LineLineOverlapping

	// LineLineFalse indicates the infinite lines intersect but one or both
	// segments would have to be extended to reach the intersection.
	LineLineFalse
)

// LineLineIntr holds the result of intersecting two line segments.
//
// For LineLineTrue and LineLineFalse, Seg1T and Seg2T hold the parametric
// values of the intersection along the first and second segment. For
// LineLineOverlapping, Seg2T0 and Seg2T1 hold the parametric interval of
// coincidence along the second segment (Seg2T0 <= Seg2T1).
type LineLineIntr struct {
	Kind   LineLineKind
	Seg1T  float64
	Seg2T  float64
	Seg2T0 float64
	Seg2T1 float64
}

// LineLine finds the intersection between the line segments v1->v2 and
// u1->u2.
//
// The implementation processes the segments in parametric form using
// perpendicular products (see http://geomalgorithms.com/a05-_intersect-1.html).
// Handles the cases where the segments may be parallel, collinear, or single
// points. epsilon is used for all fuzzy comparisons; parametric bounds checks
// are lenient so touching end points are preferred to be intersections.
func LineLine(v1, v2, u1, u2 point.Point, epsilon float64) LineLineIntr {
	v := v2.Sub(v1)
	u := u2.Sub(u1)
	d := v.CrossProduct(u)
	w := v1.Sub(u1)

	// threshold check here to avoid almost parallel lines resulting in very
	// distant intersection points
	if !numeric.FloatEqualsZero(d, epsilon) {
		// segments not parallel or collinear
		seg1T := u.CrossProduct(w) / d
		seg2T := v.CrossProduct(w) / d
		if !numeric.FloatInRange(seg1T, 0, 1, epsilon) || !numeric.FloatInRange(seg2T, 0, 1, epsilon) {
			return LineLineIntr{Kind: LineLineFalse, Seg1T: seg1T, Seg2T: seg2T}
		}
		return LineLineIntr{Kind: LineLineTrue, Seg1T: seg1T, Seg2T: seg2T}
	}

	// segments are parallel and possibly collinear
	a := v.CrossProduct(w)
	b := u.CrossProduct(w)

	// almost parallel lines are considered parallel
	if !numeric.FloatEqualsZero(a, epsilon) || !numeric.FloatEqualsZero(b, epsilon) {
		// parallel and not collinear so no intersect
		return LineLineIntr{Kind: LineLineNone}
	}

	// either collinear or degenerate (segments are single points)
	vIsPoint := v1.EqEps(v2, epsilon)
	uIsPoint := u1.EqEps(u2, epsilon)

	if vIsPoint && uIsPoint {
		// both segments are points
		if v1.EqEps(u1, epsilon) {
			// same point
			return LineLineIntr{Kind: LineLineTrue}
		}
		// distinct points
		return LineLineIntr{Kind: LineLineNone}
	}

	if vIsPoint {
		seg2T := point.ParametricFromPoint(u1, u2, v1)
		if numeric.FloatInRange(seg2T, 0, 1, epsilon) {
			return LineLineIntr{Kind: LineLineTrue, Seg2T: seg2T}
		}
		return LineLineIntr{Kind: LineLineNone}
	}

	if uIsPoint {
		seg1T := point.ParametricFromPoint(v1, v2, u1)
		if numeric.FloatInRange(seg1T, 0, 1, epsilon) {
			return LineLineIntr{Kind: LineLineTrue, Seg1T: seg1T}
		}
		return LineLineIntr{Kind: LineLineNone}
	}

	// neither segment is a point, check if they overlap by projecting both
	// segment 1 end points onto segment 2 along its dominant axis
	w2 := v2.Sub(u1)
	var seg2T0, seg2T1 float64
	if math.Abs(u.X()) < math.Abs(u.Y()) {
		seg2T0 = w.Y() / u.Y()
		seg2T1 = w2.Y() / u.Y()
	} else {
		seg2T0 = w.X() / u.X()
		seg2T1 = w2.X() / u.X()
	}

	if seg2T0 > seg2T1 {
		seg2T0, seg2T1 = seg2T1, seg2T0
	}

	// lenient threshold checks here to make the intersect "sticky", preferring
	// to consider touching end points an intersect
	if !numeric.FloatLessThanOrEqualTo(seg2T0, 1, epsilon) || !numeric.FloatGreaterThanOrEqualTo(seg2T1, 0, epsilon) {
		return LineLineIntr{Kind: LineLineNone}
	}

	seg2T0 = math.Max(seg2T0, 0)
	seg2T1 = math.Min(seg2T1, 1)

	if numeric.FloatEqualsZero(seg2T1-seg2T0, epsilon) {
		// intersect is a single point (segments line up end to end), determine
		// if seg1T is 0.0 or 1.0 (will not match seg2T since they only touch
		// at the ends)
		var seg1T float64
		if !numeric.FloatEqualsZero(seg2T0, epsilon) {
			seg1T = 0
		} else {
			seg1T = 1
		}
		return LineLineIntr{Kind: LineLineTrue, Seg1T: seg1T, Seg2T: seg2T0}
	}

	return LineLineIntr{Kind: LineLineOverlapping, Seg2T0: seg2T0, Seg2T1: seg2T1}
}

// LineCircleKind describes the type of intersection found between a
// parametric line and a circle.
type LineCircleKind uint8

const (
	// LineCircleNone indicates the line does not touch the circle.
	LineCircleNone LineCircleKind = iota

	// LineCircleTangent indicates the line touches the circle at a single
	// tangent point.
	LineCircleTangent

	// LineCircleTwo indicates the line crosses the circle at two points.
	LineCircleTwo
)

// LineCircleIntr holds the result of intersecting the infinite line through
// p0 and p1 with a circle. T0 holds the tangent parametric value for
// LineCircleTangent; T0 and T1 hold both parametric values for LineCircleTwo
// with T0 <= T1. Parametric values may lie outside [0, 1]; it is up to the
// caller to apply segment bounds.
type LineCircleIntr struct {
	Kind LineCircleKind
	T0   float64
	T1   float64
}

// LineCircle finds the intersections between the infinite line defined
// parametrically by p0 and p1 and the circle with the given radius and
// center. epsilon is used to classify tangency.
func LineCircle(p0, p1 point.Point, radius float64, center point.Point, epsilon float64) LineCircleIntr {
	// substitute the parametric line into the circle equation and solve the
	// resulting quadratic for t
	dx := p1.X() - p0.X()
	dy := p1.Y() - p0.Y()
	px := p0.X() - center.X()
	py := p0.Y() - center.Y()

	a := dx*dx + dy*dy
	if numeric.FloatEqualsZero(a, epsilon) {
		// p0 and p1 coincide, the "line" is a point
		if numeric.FloatEquals(math.Sqrt(px*px+py*py), radius, epsilon) {
			return LineCircleIntr{Kind: LineCircleTangent}
		}
		return LineCircleIntr{Kind: LineCircleNone}
	}

	b := 2 * (dx*px + dy*py)
	c := px*px + py*py - radius*radius
	discriminant := b*b - 4*a*c

	if numeric.FloatEqualsZero(discriminant, epsilon) {
		return LineCircleIntr{Kind: LineCircleTangent, T0: -b / (2 * a)}
	}

	if discriminant < 0 {
		return LineCircleIntr{Kind: LineCircleNone}
	}

	sq := math.Sqrt(discriminant)
	t0 := (-b + sq) / (2 * a)
	t1 := (-b - sq) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return LineCircleIntr{Kind: LineCircleTwo, T0: t0, T1: t1}
}

// CircleCircleKind describes the type of intersection found between two
// circles.
type CircleCircleKind uint8

const (
	// CircleCircleNone indicates the circles do not touch.
	CircleCircleNone CircleCircleKind = iota

	// CircleCircleTangent indicates the circles touch at a single point.
	CircleCircleTangent

	// CircleCircleTwo indicates the circles cross at two points.
	CircleCircleTwo

	// CircleCircleOverlapping indicates the circles share the same center and
	// radius within epsilon.
	CircleCircleOverlapping
)

// CircleCircleIntr holds the result of intersecting two circles. Point1 holds
// the tangent point for CircleCircleTangent; Point1 and Point2 hold both
// intersection points for CircleCircleTwo (in no particular order).
type CircleCircleIntr struct {
	Kind   CircleCircleKind
	Point1 point.Point
	Point2 point.Point
}

// CircleCircle finds the intersections between two circles defined by their
// radii and centers. epsilon is used to classify tangency and coincidence.
func CircleCircle(radius1 float64, center1 point.Point, radius2 float64, center2 point.Point, epsilon float64) CircleCircleIntr {
	// https://mathworld.wolfram.com/Circle-CircleIntersection.html
	cv := center2.Sub(center1)
	d2 := cv.DotProduct(cv)
	d := math.Sqrt(d2)
	if numeric.FloatEqualsZero(d, epsilon) {
		// same center position
		if numeric.FloatEquals(radius1, radius2, epsilon) {
			return CircleCircleIntr{Kind: CircleCircleOverlapping}
		}
		return CircleCircleIntr{Kind: CircleCircleNone}
	}

	if numeric.FloatGreaterThan(d, radius1+radius2, epsilon) {
		// too far apart to touch
		return CircleCircleIntr{Kind: CircleCircleNone}
	}

	if numeric.FloatLessThan(d, math.Abs(radius1-radius2), epsilon) {
		// one circle is fully inside the other
		return CircleCircleIntr{Kind: CircleCircleNone}
	}

	// distance along the center line to the chord joining the intersection
	// points
	a := (radius1*radius1 - radius2*radius2 + d2) / (2 * d)
	mid := center1.Add(cv.Scale(a / d))
	h2 := radius1*radius1 - a*a

	if numeric.FloatEqualsZero(h2, epsilon) || h2 < 0 {
		// circles touch at a single point
		return CircleCircleIntr{Kind: CircleCircleTangent, Point1: mid}
	}

	h := math.Sqrt(h2)
	offs := point.New(-cv.Y(), cv.X()).Scale(h / d)
	return CircleCircleIntr{
		Kind:   CircleCircleTwo,
		Point1: mid.Add(offs),
		Point2: mid.Sub(offs),
	}
}
