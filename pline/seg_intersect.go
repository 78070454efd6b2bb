package pline

import (
	"github.com/mikenye/polyarc/angle"
	"github.com/mikenye/polyarc/intersect"
	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

// SegIntrKind describes the type of intersection found between two polyline
// segments.
type SegIntrKind uint8

const (
	// SegIntrNone indicates no intersects were found.
	SegIntrNone SegIntrKind = iota

	// SegIntrTangent indicates one tangent intersect point was found.
	SegIntrTangent

	// SegIntrOne indicates one non-tangent intersect point was found.
	SegIntrOne

	// SegIntrTwo indicates two intersect points were found.
	SegIntrTwo

	// SegIntrOverlappingLines indicates both segments are lines and they
	// overlap.
	SegIntrOverlappingLines

	// SegIntrOverlappingArcs indicates both segments are arcs and they
	// overlap.
	SegIntrOverlappingArcs
)

// SegIntr holds the result of finding the intersects between two polyline
// segments.
//
// Point1 holds the single intersect point for SegIntrTangent and SegIntrOne.
// For SegIntrTwo and both overlapping kinds, Point1 and Point2 are ordered
// according to the second segment's direction (Point1 nearest the second
// segment's start).
type SegIntr struct {
	Kind   SegIntrKind
	Point1 point.Point
	Point2 point.Point
}

// IntersectSegs finds the intersects between the two polyline segments
// v1->v2 and u1->u2. posEqualEps is used for fuzzy position comparisons.
//
// End points are "sticky": when an intersect candidate lies within
// posEqualEps of a segment end point that also satisfies the other segment's
// constraints, that exact end point is substituted for the computed
// candidate. This keeps independent primitives (line-circle versus two
// arc-circles) agreeing on whether a point lies exactly on a shared end
// point, which overlap joining and slice stitching depend on.
func IntersectSegs(v1, v2, u1, u2 Vertex, posEqualEps float64) SegIntr {
	vIsLine := v1.BulgeIsZero()
	uIsLine := u1.BulgeIsZero()

	if vIsLine && uIsLine {
		r := intersect.LineLine(v1.Pos(), v2.Pos(), u1.Pos(), u2.Pos(), posEqualEps)
		switch r.Kind {
		case intersect.LineLineNone, intersect.LineLineFalse:
			return SegIntr{Kind: SegIntrNone}
		case intersect.LineLineTrue:
			return SegIntr{
				Kind:   SegIntrOne,
				Point1: point.FromParametric(v1.Pos(), v2.Pos(), r.Seg1T),
			}
		default:
			return SegIntr{
				Kind:   SegIntrOverlappingLines,
				Point1: point.FromParametric(u1.Pos(), u2.Pos(), r.Seg2T0),
				Point2: point.FromParametric(u1.Pos(), u2.Pos(), r.Seg2T1),
			}
		}
	}

	if vIsLine {
		// v is line, u is arc
		return lineArcIntr(v1.Pos(), v2.Pos(), u1, u2, uIsLine, posEqualEps)
	}

	if uIsLine {
		// u is line, v is arc
		return lineArcIntr(u1.Pos(), u2.Pos(), v1, v2, uIsLine, posEqualEps)
	}

	return arcArcIntr(v1, v2, u1, u2, posEqualEps)
}

// lineArcIntr intersects the line p0->p1 with the arc segment a1->a2.
// uIsLine is true when the second input segment of the overall dispatch was
// the line (used to order two-intersect results along the second segment's
// direction).
func lineArcIntr(p0, p1 point.Point, a1, a2 Vertex, uIsLine bool, posEqualEps float64) SegIntr {
	arcRadius, arcCenter := SegArcRadiusAndCenter(a1, a2)

	pointLiesOnArc := func(pt point.Point) bool {
		return angle.PointWithinArcSweep(arcCenter, a1.Pos(), a2.Pos(), a1.BulgeIsNeg(), pt, posEqualEps) &&
			numeric.FloatEquals(pt.DistanceToPoint(arcCenter), arcRadius, posEqualEps)
	}

	// line segment length used to scale the parametric value for fuzzy
	// comparison so the epsilon stays positional
	lineLength := p1.Sub(p0).Length()

	pointInSweep := func(t float64) (point.Point, bool) {
		if !numeric.FloatInRange(t*lineLength, 0, lineLength, posEqualEps) {
			return point.Point{}, false
		}
		p := point.FromParametric(p0, p1, t)
		withinSweep := angle.PointWithinArcSweep(arcCenter, a1.Pos(), a2.Pos(), a1.BulgeIsNeg(), p, posEqualEps)
		return p, withinSweep
	}

	// Note if an intersect is detected we check if the line segment starts or
	// ends on the arc segment and if so use that end point as the intersect
	// point. This avoids inconsistencies between segment intersects where a
	// line may "overlap" an arc according to the fuzzy epsilon values (e.g.
	// the arc has a large radius and the line is almost tangent to it): the
	// line-circle intersect returns two solutions on either side of the end
	// point, but the end point is an equally valid solution according to the
	// fuzzy epsilon and keeps this function consistent with overlap intersect
	// end points found elsewhere (end points are "sticky").
	r := intersect.LineCircle(p0, p1, arcRadius, arcCenter, posEqualEps)
	switch r.Kind {
	case intersect.LineCircleNone:
		return SegIntr{Kind: SegIntrNone}

	case intersect.LineCircleTangent:
		if pointLiesOnArc(p0) {
			return SegIntr{Kind: SegIntrTangent, Point1: p0}
		}
		if pointLiesOnArc(p1) {
			return SegIntr{Kind: SegIntrTangent, Point1: p1}
		}
		if p, ok := pointInSweep(r.T0); ok {
			return SegIntr{Kind: SegIntrTangent, Point1: p}
		}
		return SegIntr{Kind: SegIntrNone}

	default:
		point1, ok1 := pointInSweep(r.T0)
		point2, ok2 := pointInSweep(r.T1)

		switch {
		case !ok1 && !ok2:
			return SegIntr{Kind: SegIntrNone}

		case ok1 != ok2:
			p := point1
			if ok2 {
				p = point2
			}
			// substitute an end point lying on the arc if there is one
			if pointLiesOnArc(p0) {
				return SegIntr{Kind: SegIntrOne, Point1: p0}
			}
			if pointLiesOnArc(p1) {
				return SegIntr{Kind: SegIntrOne, Point1: p1}
			}
			return SegIntr{Kind: SegIntrOne, Point1: p}

		default:
			// substitute end points lying on the arc (using distance checks
			// to determine which candidate each replaces)
			p0OnArc := pointLiesOnArc(p0)
			p1OnArc := pointLiesOnArc(p1)
			switch {
			case p0OnArc && p1OnArc:
				if p0.DistanceSquaredToPoint(point1) < p0.DistanceSquaredToPoint(point2) {
					point1, point2 = p0, p1
				} else {
					point1, point2 = p1, p0
				}
			case p0OnArc:
				if p0.DistanceSquaredToPoint(point1) < p0.DistanceSquaredToPoint(point2) {
					point1 = p0
				} else {
					point2 = p0
				}
			case p1OnArc:
				if p1.DistanceSquaredToPoint(point1) < p1.DistanceSquaredToPoint(point2) {
					point1 = p1
				} else {
					point2 = p1
				}
			}

			// return points ordered according to the second segment direction
			if uIsLine || point1.DistanceSquaredToPoint(a1.Pos()) < point2.DistanceSquaredToPoint(a1.Pos()) {
				return SegIntr{Kind: SegIntrTwo, Point1: point1, Point2: point2}
			}
			return SegIntr{Kind: SegIntrTwo, Point1: point2, Point2: point1}
		}
	}
}

// arcArcIntr intersects the arc segments v1->v2 and u1->u2.
func arcArcIntr(v1, v2, u1, u2 Vertex, posEqualEps float64) SegIntr {
	arc1Radius, arc1Center := SegArcRadiusAndCenter(v1, v2)
	arc2Radius, arc2Center := SegArcRadiusAndCenter(u1, u2)

	startAndSweepAngle := func(sp point.Point, center point.Point, bulge float64) (start, sweep float64) {
		start = angle.Normalize(angle.FromPoints(center, sp))
		sweep = angle.FromBulge(bulge)
		return start, sweep
	}

	bothArcsSweepPoint := func(pt point.Point) bool {
		return angle.PointWithinArcSweep(arc1Center, v1.Pos(), v2.Pos(), v1.BulgeIsNeg(), pt, posEqualEps) &&
			angle.PointWithinArcSweep(arc2Center, u1.Pos(), u2.Pos(), u1.BulgeIsNeg(), pt, posEqualEps)
	}

	pointLiesOnArc1 := func(pt point.Point) bool {
		return angle.PointWithinArcSweep(arc1Center, v1.Pos(), v2.Pos(), v1.BulgeIsNeg(), pt, posEqualEps) &&
			numeric.FloatEquals(pt.DistanceToPoint(arc1Center), arc1Radius, posEqualEps)
	}

	pointLiesOnArc2 := func(pt point.Point) bool {
		return angle.PointWithinArcSweep(arc2Center, u1.Pos(), u2.Pos(), u1.BulgeIsNeg(), pt, posEqualEps) &&
			numeric.FloatEquals(pt.DistanceToPoint(arc2Center), arc2Radius, posEqualEps)
	}

	r := intersect.CircleCircle(arc1Radius, arc1Center, arc2Radius, arc2Center, posEqualEps)
	switch r.Kind {
	case intersect.CircleCircleNone:
		return SegIntr{Kind: SegIntrNone}

	case intersect.CircleCircleTangent:
		// check end points first to remain consistent with stickiness to end
		// points done in the other dispatch cases
		switch {
		case pointLiesOnArc1(u1.Pos()):
			return SegIntr{Kind: SegIntrTangent, Point1: u1.Pos()}
		case pointLiesOnArc1(u2.Pos()):
			return SegIntr{Kind: SegIntrTangent, Point1: u2.Pos()}
		case pointLiesOnArc2(v1.Pos()):
			return SegIntr{Kind: SegIntrTangent, Point1: v1.Pos()}
		case pointLiesOnArc2(v2.Pos()):
			return SegIntr{Kind: SegIntrTangent, Point1: v2.Pos()}
		case bothArcsSweepPoint(r.Point1):
			return SegIntr{Kind: SegIntrTangent, Point1: r.Point1}
		default:
			return SegIntr{Kind: SegIntrNone}
		}

	case intersect.CircleCircleTwo:
		return arcArcTwoIntr(r.Point1, r.Point2, v1, v2, u1, u2,
			pointLiesOnArc1, pointLiesOnArc2, bothArcsSweepPoint, posEqualEps)

	default:
		// overlapping circles, determine how the arcs overlap along the sweep
		sameDirectionArcs := v1.BulgeIsNeg() == u1.BulgeIsNeg()
		arc1Start, arc1Sweep := startAndSweepAngle(v1.Pos(), arc1Center, v1.Bulge())
		var arc2Start, arc2Sweep float64
		if sameDirectionArcs {
			arc2Start, arc2Sweep = startAndSweepAngle(u1.Pos(), arc2Center, u1.Bulge())
		} else {
			// normalize both sweeps to the same rotational direction to
			// simplify the checks
			arc2Start, arc2Sweep = startAndSweepAngle(u2.Pos(), arc2Center, -u1.Bulge())
		}

		arc1End := arc1Start + arc1Sweep
		arc2End := arc2Start + arc2Sweep
		// using the average radius for fuzzy comparison (the radii are fuzzy
		// equal, averaging gives the best overlap approximation); comparing
		// arc lengths (radius times angle) keeps the epsilon positional
		avgRadius := (arc1Radius + arc2Radius) / 2

		touchAtArc1Start := numeric.FloatEqualsZero(avgRadius*angle.Delta(arc1Start, arc2End), posEqualEps)
		touchAtArc2Start := numeric.FloatEqualsZero(avgRadius*angle.Delta(arc2Start, arc1End), posEqualEps)

		switch {
		case touchAtArc1Start && touchAtArc2Start:
			// two half circle arcs with end points touching; points returned
			// ordered according to the second segment (u1->u2) direction
			return SegIntr{Kind: SegIntrTwo, Point1: u1.Pos(), Point2: u2.Pos()}
		case touchAtArc1Start:
			// only touch at start of arc1
			return SegIntr{Kind: SegIntrOne, Point1: v1.Pos()}
		case touchAtArc2Start:
			// only touch at start of arc2
			return SegIntr{Kind: SegIntrOne, Point1: u1.Pos()}
		}

		// not just the end points touch, determine how the arcs overlap
		angularEps := posEqualEps
		arc2StartsInArc1 := angle.IsWithinSweep(arc2Start, arc1Start, arc1Sweep, angularEps)
		arc2EndsInArc1 := angle.IsWithinSweep(arc2End, arc1Start, arc1Sweep, angularEps)
		switch {
		case arc2StartsInArc1 && arc2EndsInArc1:
			// arc2 is fully overlapped by arc1
			return SegIntr{Kind: SegIntrOverlappingArcs, Point1: u1.Pos(), Point2: u2.Pos()}
		case arc2StartsInArc1:
			// check if the direction was reversed to ensure the points are
			// returned in order according to the second segment direction
			if sameDirectionArcs {
				return SegIntr{Kind: SegIntrOverlappingArcs, Point1: u1.Pos(), Point2: v2.Pos()}
			}
			return SegIntr{Kind: SegIntrOverlappingArcs, Point1: v2.Pos(), Point2: u2.Pos()}
		case arc2EndsInArc1:
			if sameDirectionArcs {
				return SegIntr{Kind: SegIntrOverlappingArcs, Point1: v1.Pos(), Point2: u2.Pos()}
			}
			return SegIntr{Kind: SegIntrOverlappingArcs, Point1: u1.Pos(), Point2: v1.Pos()}
		}

		arc1StartsInArc2 := angle.IsWithinSweep(arc1Start, arc2Start, arc2Sweep, angularEps)
		if arc1StartsInArc2 {
			// arc1 is fully overlapped by arc2
			if sameDirectionArcs {
				return SegIntr{Kind: SegIntrOverlappingArcs, Point1: v1.Pos(), Point2: v2.Pos()}
			}
			return SegIntr{Kind: SegIntrOverlappingArcs, Point1: v2.Pos(), Point2: v1.Pos()}
		}

		return SegIntr{Kind: SegIntrNone}
	}
}

// arcArcTwoIntr resolves the two-candidate case of an arc-arc intersection,
// applying end point stickiness and sweep filtering.
func arcArcTwoIntr(
	point1, point2 point.Point,
	v1, v2, u1, u2 Vertex,
	pointLiesOnArc1, pointLiesOnArc2 func(point.Point) bool,
	bothArcsSweepPoint func(point.Point) bool,
	posEqualEps float64,
) SegIntr {
	// collect end points lying on the other arc, skipping duplicates (end
	// points from both arcs touching)
	var endPointIntrs []point.Point
	tryAddEndPointIntr := func(intr point.Point) {
		for _, existing := range endPointIntrs {
			if existing.EqEps(intr, posEqualEps) {
				return
			}
		}
		if len(endPointIntrs) < 2 {
			endPointIntrs = append(endPointIntrs, intr)
		}
	}

	if pointLiesOnArc1(u1.Pos()) {
		tryAddEndPointIntr(u1.Pos())
	}
	if pointLiesOnArc1(u2.Pos()) {
		tryAddEndPointIntr(u2.Pos())
	}
	if pointLiesOnArc2(v1.Pos()) {
		tryAddEndPointIntr(v1.Pos())
	}
	if pointLiesOnArc2(v2.Pos()) {
		tryAddEndPointIntr(v2.Pos())
	}

	pt1InSweep := bothArcsSweepPoint(point1)
	pt2InSweep := bothArcsSweepPoint(point2)

	switch {
	case pt1InSweep && pt2InSweep:
		switch len(endPointIntrs) {
		case 0:
			// order according to the second segment direction (nearer to the
			// second arc's start vertex first)
			if point1.DistanceSquaredToPoint(u1.Pos()) <= point2.DistanceSquaredToPoint(u1.Pos()) {
				return SegIntr{Kind: SegIntrTwo, Point1: point1, Point2: point2}
			}
			return SegIntr{Kind: SegIntrTwo, Point1: point2, Point2: point1}
		case 1:
			endPt := endPointIntrs[0]
			if endPt.DistanceSquaredToPoint(point1) < endPt.DistanceSquaredToPoint(point2) {
				return SegIntr{Kind: SegIntrTwo, Point1: endPt, Point2: point2}
			}
			return SegIntr{Kind: SegIntrTwo, Point1: point1, Point2: endPt}
		default:
			endPt1, endPt2 := endPointIntrs[0], endPointIntrs[1]
			if endPt1.DistanceSquaredToPoint(point1) < endPt2.DistanceSquaredToPoint(point1) {
				return SegIntr{Kind: SegIntrTwo, Point1: endPt1, Point2: endPt2}
			}
			return SegIntr{Kind: SegIntrTwo, Point1: endPt2, Point2: endPt1}
		}

	case pt1InSweep || pt2InSweep:
		p := point1
		if pt2InSweep {
			p = point2
		}
		switch len(endPointIntrs) {
		case 0:
			return SegIntr{Kind: SegIntrOne, Point1: p}
		case 1:
			return SegIntr{Kind: SegIntrOne, Point1: endPointIntrs[0]}
		default:
			return SegIntr{Kind: SegIntrTwo, Point1: endPointIntrs[0], Point2: endPointIntrs[1]}
		}

	default:
		switch len(endPointIntrs) {
		case 0:
			return SegIntr{Kind: SegIntrNone}
		case 1:
			return SegIntr{Kind: SegIntrOne, Point1: endPointIntrs[0]}
		default:
			return SegIntr{Kind: SegIntrTwo, Point1: endPointIntrs[0], Point2: endPointIntrs[1]}
		}
	}
}
