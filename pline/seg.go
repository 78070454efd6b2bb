package pline

import (
	"math"

	"github.com/mikenye/polyarc/aabb"
	"github.com/mikenye/polyarc/angle"
	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

// SegArcRadiusAndCenter returns the arc radius and center of the arc segment
// defined by v1 to v2.
//
// Behavior is undefined if v1's bulge is zero or v1 lies on top of v2.
//
// The radius is d·(b²+1)/(4·|b|) where d is the chord length and b the bulge.
// The center lies on the perpendicular bisector of the chord, on the side
// selected by the sign of the bulge.
func SegArcRadiusAndCenter(v1, v2 Vertex) (radius float64, center point.Point) {
	b := math.Abs(v1.Bulge())
	v := v2.Pos().Sub(v1.Pos())
	d := v.Length()
	radius = d * (b*b + 1) / (4 * b)

	// signed distance from the chord midpoint to the center
	s := b * d / 2
	m := radius - s
	offsX := -m * v.Y() / d
	offsY := m * v.X() / d
	if v1.BulgeIsNeg() {
		offsX = -offsX
		offsY = -offsY
	}

	center = point.New(
		v1.X()+v.X()/2+offsX,
		v1.Y()+v.Y()/2+offsY,
	)

	return radius, center
}

// SplitResult holds the result of splitting a segment with [SegSplitAtPoint].
type SplitResult struct {
	// UpdatedStart is the first vertex of the first sub segment (the original
	// start position with its bulge trimmed).
	UpdatedStart Vertex

	// SplitVertex is the vertex at the split point, carrying the bulge of the
	// second sub segment.
	SplitVertex Vertex
}

// SegSplitAtPoint splits the segment defined by v1 to v2 at the point given.
// Assumes the point lies on the segment.
//
// For a line segment the updated start is v1 unchanged and the split vertex is
// the point with zero bulge. For an arc the sweep is divided at the point and
// the two sub-bulges are derived from the sub sweep angles. If the point
// coincides with v1 or v2 within posEqualEps a degenerate split preserving
// orientation is returned.
func SegSplitAtPoint(v1, v2 Vertex, pointOnSeg point.Point, posEqualEps float64) SplitResult {
	if v1.BulgeIsZero() {
		// v1->v2 is a line segment, just use the point as the end point
		return SplitResult{
			UpdatedStart: v1,
			SplitVertex:  VertexFromPoint(pointOnSeg, 0),
		}
	}

	if v1.Pos().EqEps(v2.Pos(), posEqualEps) || v1.Pos().EqEps(pointOnSeg, posEqualEps) {
		// v1 == v2 or v1 == point, updated start is put on top of split vertex
		return SplitResult{
			UpdatedStart: VertexFromPoint(pointOnSeg, 0),
			SplitVertex:  VertexFromPoint(pointOnSeg, v1.Bulge()),
		}
	}

	if v2.Pos().EqEps(pointOnSeg, posEqualEps) {
		// point is at the end point of the segment
		return SplitResult{
			UpdatedStart: v1,
			SplitVertex:  NewVertex(v2.X(), v2.Y(), 0),
		}
	}

	_, arcCenter := SegArcRadiusAndCenter(v1, v2)

	pointAngle := angle.FromPoints(arcCenter, pointOnSeg)

	arcStartAngle := angle.FromPoints(arcCenter, v1.Pos())
	theta1 := angle.Delta(arcStartAngle, pointAngle)
	bulge1 := angle.Bulge(theta1)

	arcEndAngle := angle.FromPoints(arcCenter, v2.Pos())
	theta2 := angle.Delta(pointAngle, arcEndAngle)
	bulge2 := angle.Bulge(theta2)

	return SplitResult{
		UpdatedStart: NewVertex(v1.X(), v1.Y(), bulge1),
		SplitVertex:  VertexFromPoint(pointOnSeg, bulge2),
	}
}

// SegTangentVector returns the tangent direction vector on the segment
// defined by v1 to v2 at the point given.
//
// Note the vector returned is just the direction vector; add the point
// position to get the actual tangent line. For a line the direction is
// v2 - v1; for an arc the center-to-point radial is rotated 90 degrees in the
// sense of the bulge sign.
func SegTangentVector(v1, v2 Vertex, pointOnSeg point.Point) point.Point {
	if v1.BulgeIsZero() {
		return v2.Pos().Sub(v1.Pos())
	}

	_, arcCenter := SegArcRadiusAndCenter(v1, v2)
	if v1.BulgeIsPos() {
		// ccw, rotate the vector from the center to the point 90 degrees
		return point.New(
			-(pointOnSeg.Y() - arcCenter.Y()),
			pointOnSeg.X()-arcCenter.X(),
		)
	}

	// cw, rotate the vector from the center to the point -90 degrees
	return point.New(
		pointOnSeg.Y()-arcCenter.Y(),
		-(pointOnSeg.X() - arcCenter.X()),
	)
}

// SegClosestPoint returns the closest point on the segment defined by v1 to
// v2 to the point given. If there are multiple closest points then one is
// chosen (which is chosen is not defined).
func SegClosestPoint(v1, v2 Vertex, pt point.Point, posEqualEps float64) point.Point {
	if v1.BulgeIsZero() {
		return point.LineSegClosestPoint(v1.Pos(), v2.Pos(), pt)
	}

	arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
	if pt.EqEps(arcCenter, posEqualEps) {
		// avoid normalizing a zero length vector (point is at the center,
		// just return the start point)
		return v1.Pos()
	}

	if angle.PointWithinArcSweep(arcCenter, v1.Pos(), v2.Pos(), v1.BulgeIsNeg(), pt, posEqualEps) {
		// closest point is the projection onto the arc
		vToPoint := pt.Sub(arcCenter).Normalize()
		return vToPoint.Scale(arcRadius).Add(arcCenter)
	}

	// closest point is one of the ends
	dist1 := v1.Pos().DistanceSquaredToPoint(pt)
	dist2 := v2.Pos().DistanceSquaredToPoint(pt)
	if dist1 < dist2 {
		return v1.Pos()
	}

	return v2.Pos()
}

// SegFastApproxBoundingBox computes a fast approximate axis aligned bounding
// box of the segment defined by v1 to v2.
//
// The bounding box may be larger than the true bounding box for the segment
// (but is never smaller). For the true axis aligned bounding box use
// [SegBoundingBox]; this function is faster for arc segments.
func SegFastApproxBoundingBox(v1, v2 Vertex) aabb.AABB {
	if v1.BulgeIsZero() {
		// line segment
		return aabb.FromPoints(v1.Pos(), v2.Pos())
	}

	// For arcs we don't compute the actual extents, instead we create an
	// approximate bounding box from the rectangle formed by extending the
	// chord by the sagitta; this approximate bounding box is always equal to
	// or bigger than the true bounding box.
	b := v1.Bulge()
	offsX := b * (v2.Y() - v1.Y()) / 2
	offsY := -b * (v2.X() - v1.X()) / 2

	ptXMin := math.Min(v1.X()+offsX, v2.X()+offsX)
	ptXMax := math.Max(v1.X()+offsX, v2.X()+offsX)
	ptYMin := math.Min(v1.Y()+offsY, v2.Y()+offsY)
	ptYMax := math.Max(v1.Y()+offsY, v2.Y()+offsY)

	endXMin := math.Min(v1.X(), v2.X())
	endXMax := math.Max(v1.X(), v2.X())
	endYMin := math.Min(v1.Y(), v2.Y())
	endYMax := math.Max(v1.Y(), v2.Y())

	return aabb.New(
		math.Min(endXMin, ptXMin),
		math.Min(endYMin, ptYMin),
		math.Max(endXMax, ptXMax),
		math.Max(endYMax, ptYMax),
	)
}

// quadrant of a point relative to an arc center. Classification is undefined
// on the axes themselves (axis aligned cases are handled before quadrants are
// taken).
type quadrant uint8

const (
	quadrantI quadrant = iota
	quadrantII
	quadrantIII
	quadrantIV
)

// arcSegBoundingBox returns the exact bounding box of the arc segment defined
// by v1 to v2. Assumes v1 to v2 is an arc.
func arcSegBoundingBox(v1, v2 Vertex) aabb.AABB {
	// initialize the arc extents with the chord extents
	arcExtents := aabb.FromPoints(v1.Pos(), v2.Pos())

	arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
	circleMaxXPt := point.New(arcCenter.X()+arcRadius, arcCenter.Y())
	circleMaxYPt := point.New(arcCenter.X(), arcCenter.Y()+arcRadius)

	quadrantOf := func(pt point.Point) quadrant {
		if point.IsLeft(arcCenter, circleMaxXPt, pt) {
			if point.IsLeft(arcCenter, circleMaxYPt, pt) {
				return quadrantII
			}
			return quadrantI
		}
		if point.IsLeft(arcCenter, circleMaxYPt, pt) {
			return quadrantIII
		}
		return quadrantIV
	}

	arcIsCCW := v1.BulgeIsPos()

	crossesMinX := func() { arcExtents.MinX = arcCenter.X() - arcRadius }
	crossesMaxX := func() { arcExtents.MaxX = arcCenter.X() + arcRadius }
	crossesMinY := func() { arcExtents.MinY = arcCenter.Y() - arcRadius }
	crossesMaxY := func() { arcExtents.MaxY = arcCenter.Y() + arcRadius }

	// must check if the arc is an axis aligned half circle because the
	// is-left checks in the quadrant classification will not work on the axes
	switch {
	case numeric.FloatEquals(v1.X(), arcCenter.X(), numeric.DefaultEpsilon):
		// y axis aligned half circle
		if (v1.Y() > v2.Y()) == arcIsCCW {
			// half circle bulges out in the negative x direction
			crossesMinX()
		} else {
			// half circle bulges out in the positive x direction
			crossesMaxX()
		}
	case numeric.FloatEquals(v1.Y(), arcCenter.Y(), numeric.DefaultEpsilon):
		// x axis aligned half circle
		if (v1.X() > v2.X()) == arcIsCCW {
			// half circle bulges out in the positive y direction
			crossesMaxY()
		} else {
			// half circle bulges out in the negative y direction
			crossesMinY()
		}
	default:
		// determine crossings from the quadrant pair, note in some quadrant
		// pair cases there is only one possible crossing since the arc sweep
		// is never greater than π, in other cases the arc direction decides
		startQuad := quadrantOf(v1.Pos())
		endQuad := quadrantOf(v2.Pos())
		switch {
		case startQuad == quadrantI && endQuad == quadrantII:
			crossesMaxY()
		case startQuad == quadrantI && endQuad == quadrantIII:
			if arcIsCCW {
				crossesMaxY()
				crossesMinX()
			} else {
				crossesMaxX()
				crossesMinY()
			}
		case startQuad == quadrantI && endQuad == quadrantIV:
			crossesMaxX()
		case startQuad == quadrantII && endQuad == quadrantI:
			crossesMaxY()
		case startQuad == quadrantII && endQuad == quadrantIII:
			crossesMinX()
		case startQuad == quadrantII && endQuad == quadrantIV:
			if arcIsCCW {
				crossesMinX()
				crossesMinY()
			} else {
				crossesMaxY()
				crossesMaxX()
			}
		case startQuad == quadrantIII && endQuad == quadrantI:
			if arcIsCCW {
				crossesMinY()
				crossesMaxX()
			} else {
				crossesMinX()
				crossesMaxY()
			}
		case startQuad == quadrantIII && endQuad == quadrantII:
			crossesMinX()
		case startQuad == quadrantIII && endQuad == quadrantIV:
			crossesMinY()
		case startQuad == quadrantIV && endQuad == quadrantI:
			crossesMaxX()
		case startQuad == quadrantIV && endQuad == quadrantII:
			if arcIsCCW {
				crossesMaxX()
				crossesMaxY()
			} else {
				crossesMinY()
				crossesMinX()
			}
		case startQuad == quadrantIV && endQuad == quadrantIII:
			crossesMinY()
		}
		// remaining cases (same quadrant) add no crossings
	}

	return arcExtents
}

// SegBoundingBox computes the exact axis aligned bounding box of the segment
// defined by v1 to v2.
//
// This function is quite a bit slower than [SegFastApproxBoundingBox] when
// given an arc.
func SegBoundingBox(v1, v2 Vertex) aabb.AABB {
	if v1.BulgeIsZero() {
		return aabb.FromPoints(v1.Pos(), v2.Pos())
	}
	return arcSegBoundingBox(v1, v2)
}

// SegLength returns the path length of the segment defined by v1 to v2:
// the chord length for a line, radius times the absolute sweep for an arc.
func SegLength(v1, v2 Vertex) float64 {
	if v1.Pos().EqEps(v2.Pos(), numeric.DefaultEpsilon) {
		return 0
	}

	if v1.BulgeIsZero() {
		return v1.Pos().DistanceToPoint(v2.Pos())
	}

	arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
	startAngle := angle.FromPoints(arcCenter, v1.Pos())
	endAngle := angle.FromPoints(arcCenter, v2.Pos())
	return arcRadius * math.Abs(angle.Delta(startAngle, endAngle))
}

// SegMidpoint returns the midpoint of the segment defined by v1 to v2: the
// chord midpoint for a line, the point halfway along the sweep for an arc.
func SegMidpoint(v1, v2 Vertex) point.Point {
	if v1.BulgeIsZero() {
		return point.Midpoint(v1.Pos(), v2.Pos())
	}

	arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
	angle1 := angle.FromPoints(arcCenter, v1.Pos())
	angle2 := angle.FromPoints(arcCenter, v2.Pos())
	angleOffset := math.Abs(angle.Delta(angle1, angle2) / 2)
	var midAngle float64
	if v1.BulgeIsPos() {
		midAngle = angle1 + angleOffset
	} else {
		midAngle = angle1 - angleOffset
	}
	return angle.PointOnCircle(arcRadius, arcCenter, midAngle)
}
