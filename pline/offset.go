package pline

import (
	"math"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/mikenye/polyarc/aabb"
	"github.com/mikenye/polyarc/angle"
	"github.com/mikenye/polyarc/index"
	"github.com/mikenye/polyarc/intersect"
	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/options"
	"github.com/mikenye/polyarc/point"
)

// RawOffsetSeg is a single line or arc segment after parallel offsetting,
// before adjacent segments are joined back together.
type RawOffsetSeg struct {
	// V1 and V2 are the parallel offset end points of the segment.
	V1 Vertex
	V2 Vertex
	// OrigV2Pos is the source segment's end vertex position, used as the
	// pivot when joining adjacent raw segments with a connecting arc.
	OrigV2Pos point.Point
	// CollapsedArc is true when an arc's radius reached zero after
	// offsetting (the segment becomes a degenerate line pinned at the arc
	// center).
	CollapsedArc bool
}

// createUntrimmedRawOffsetSegs creates all the raw parallel offset segments
// of the polyline using the offset value given. Positive offsets translate
// line segments to the left of their tangent; arcs grow or shrink in radius
// so the same side is maintained.
func createUntrimmedRawOffsetSegs(p *Polyline, offset float64) []RawOffsetSeg {
	var result []RawOffsetSeg
	if p.VertexCount() < 2 {
		return result
	}

	result = make([]RawOffsetSeg, 0, p.SegmentCount())

	processLineSeg := func(v1, v2 Vertex) RawOffsetSeg {
		lineV := v2.Pos().Sub(v1.Pos())
		offsetV := lineV.UnitPerp().Scale(offset)
		return RawOffsetSeg{
			V1:        VertexFromPoint(v1.Pos().Add(offsetV), 0),
			V2:        VertexFromPoint(v2.Pos().Add(offsetV), 0),
			OrigV2Pos: v2.Pos(),
		}
	}

	processArcSeg := func(v1, v2 Vertex) RawOffsetSeg {
		arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
		offs := -offset
		if v1.BulgeIsNeg() {
			offs = offset
		}
		radiusAfterOffset := arcRadius + offs
		v1ToCenter := v1.Pos().Sub(arcCenter).Normalize()
		v2ToCenter := v2.Pos().Sub(arcCenter).Normalize()

		newV1Bulge := v1.Bulge()
		collapsedArc := false
		if numeric.FloatLessThanOrEqualTo(radiusAfterOffset, 0, numeric.DefaultEpsilon) {
			// collapsed arc, offset the end points toward the arc center and
			// turn the segment into a line, which simplifies the path for the
			// clipping performed later
			newV1Bulge = 0
			collapsedArc = true
		}

		return RawOffsetSeg{
			V1:           VertexFromPoint(v1ToCenter.Scale(offs).Add(v1.Pos()), newV1Bulge),
			V2:           VertexFromPoint(v2ToCenter.Scale(offs).Add(v2.Pos()), v2.Bulge()),
			OrigV2Pos:    v2.Pos(),
			CollapsedArc: collapsedArc,
		}
	}

	for v1, v2 := range p.IterSegments() {
		if v1.BulgeIsZero() {
			result = append(result, processLineSeg(v1, v2))
		} else {
			result = append(result, processArcSeg(v1, v2))
		}
	}

	return result
}

// isFalseIntersect reports whether the parametric value t requires the
// segment to be extended to actually reach the intersect.
func isFalseIntersect(t float64) bool {
	return t < 0 || t > 1
}

// bulgeForConnection computes the bulge of the arc connecting two raw offset
// segments around the pivot arcCenter.
func bulgeForConnection(arcCenter, startPoint, endPoint point.Point, isCCW bool) float64 {
	a1 := angle.FromPoints(arcCenter, startPoint)
	a2 := angle.FromPoints(arcCenter, endPoint)
	return angle.Bulge(angle.DeltaSigned(a1, a2, !isCCW))
}

// connectUsingArc joins two raw offset segments with an arc centered at the
// first segment's original end vertex position, appending the connection to
// result.
func connectUsingArc(s1, s2 *RawOffsetSeg, connectionArcsCCW bool, result *Polyline, posEqualEps float64) {
	arcCenter := s1.OrigV2Pos
	sp := s1.V2.Pos()
	ep := s2.V1.Pos()
	bulge := bulgeForConnection(arcCenter, sp, ep, connectionArcsCCW)
	result.AddOrReplace(sp.X(), sp.Y(), bulge, posEqualEps)
	result.AddOrReplace(ep.X(), ep.Y(), s2.V1.Bulge(), posEqualEps)
}

// joinParams carries the parameters shared by the raw offset segment join
// functions.
type joinParams struct {
	// connectionArcsCCW is true when connecting arcs should go counter
	// clockwise (negative offsets).
	connectionArcsCCW bool
	posEqualEps       float64
}

// lineLineJoin joins two adjacent raw offset segments where both are lines.
func lineLineJoin(s1, s2 *RawOffsetSeg, params joinParams, result *Polyline) {
	v1 := s1.V1
	v2 := s1.V2
	u1 := s2.V1
	u2 := s2.V2

	if s1.CollapsedArc || s2.CollapsedArc {
		// connecting to/from a collapsed arc, always connect using an arc
		connectUsingArc(s1, s2, params.connectionArcsCCW, result, params.posEqualEps)
		return
	}

	switch r := intersect.LineLine(v1.Pos(), v2.Pos(), u1.Pos(), u2.Pos(), params.posEqualEps); r.Kind {
	case intersect.LineLineNone:
		// just join with a straight line
		result.AddOrReplace(v2.X(), v2.Y(), 0, params.posEqualEps)
		result.AddOrReplaceVertex(u1, params.posEqualEps)
	case intersect.LineLineTrue:
		intrPoint := point.FromParametric(v1.Pos(), v2.Pos(), r.Seg1T)
		result.AddOrReplace(intrPoint.X(), intrPoint.Y(), 0, params.posEqualEps)
	case intersect.LineLineOverlapping:
		result.AddOrReplace(v2.X(), v2.Y(), 0, params.posEqualEps)
	default:
		if r.Seg1T > 1 && isFalseIntersect(r.Seg2T) {
			// outside corner, join the lines together using an arc
			connectUsingArc(s1, s2, params.connectionArcsCCW, result, params.posEqualEps)
		} else {
			result.AddOrReplace(v2.X(), v2.Y(), 0, params.posEqualEps)
			result.AddOrReplaceVertex(u1, params.posEqualEps)
		}
	}
}

// lineArcJoin joins two adjacent raw offset segments where the first is a
// line and the second an arc.
func lineArcJoin(s1, s2 *RawOffsetSeg, params joinParams, result *Polyline) {
	v1 := s1.V1
	v2 := s1.V2
	u1 := s2.V1
	u2 := s2.V2
	posEqualEps := params.posEqualEps

	arcRadius, arcCenter := SegArcRadiusAndCenter(u1, u2)

	processIntersect := func(t float64, intr point.Point) {
		trueLineIntr := !isFalseIntersect(t)
		trueArcIntr := angle.PointWithinArcSweep(arcCenter, u1.Pos(), u2.Pos(), u1.BulgeIsNeg(), intr, posEqualEps)

		if trueLineIntr && trueArcIntr {
			// trim the arc at the intersect
			a := angle.FromPoints(arcCenter, intr)
			arcEndAngle := angle.FromPoints(arcCenter, u2.Pos())
			theta := angle.Delta(a, arcEndAngle)
			// ensure the sign matches (it may flip when the intersect is at
			// the very end of the arc, in which case the bulge is kept)
			if (theta > 0) == u1.BulgeIsPos() {
				result.AddOrReplace(intr.X(), intr.Y(), angle.Bulge(theta), posEqualEps)
			} else {
				result.AddOrReplace(intr.X(), intr.Y(), u1.Bulge(), posEqualEps)
			}
			return
		}

		if t > 1 && !trueArcIntr {
			connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
			return
		}

		if s1.CollapsedArc {
			connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
			return
		}

		// connect using a line
		result.AddOrReplace(v2.X(), v2.Y(), 0, posEqualEps)
		result.AddOrReplaceVertex(u1, posEqualEps)
	}

	switch r := intersect.LineCircle(v1.Pos(), v2.Pos(), arcRadius, arcCenter, posEqualEps); r.Kind {
	case intersect.LineCircleNone:
		connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
	case intersect.LineCircleTangent:
		processIntersect(r.T0, point.FromParametric(v1.Pos(), v2.Pos(), r.T0))
	default:
		// always use the intersect closest to the original point
		intr1 := point.FromParametric(v1.Pos(), v2.Pos(), r.T0)
		dist1 := intr1.DistanceSquaredToPoint(s1.OrigV2Pos)
		intr2 := point.FromParametric(v1.Pos(), v2.Pos(), r.T1)
		dist2 := intr2.DistanceSquaredToPoint(s1.OrigV2Pos)
		if dist1 < dist2 {
			processIntersect(r.T0, intr1)
		} else {
			processIntersect(r.T1, intr2)
		}
	}
}

// arcLineJoin joins two adjacent raw offset segments where the first is an
// arc and the second a line.
func arcLineJoin(s1, s2 *RawOffsetSeg, params joinParams, result *Polyline) {
	v1 := s1.V1
	v2 := s1.V2
	u1 := s2.V1
	u2 := s2.V2
	posEqualEps := params.posEqualEps

	arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)

	processIntersect := func(t float64, intr point.Point) {
		trueLineIntr := !isFalseIntersect(t)
		trueArcIntr := angle.PointWithinArcSweep(arcCenter, v1.Pos(), v2.Pos(), v1.BulgeIsNeg(), intr, posEqualEps)

		if !trueLineIntr || !trueArcIntr {
			connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
			return
		}

		prevVertex, _ := result.Last()
		if !prevVertex.BulgeIsZero() && !prevVertex.Pos().EqEps(v2.Pos(), posEqualEps) {
			// modify the previous bulge and trim the arc at the intersect
			a := angle.FromPoints(arcCenter, intr)
			_, prevArcCenter := SegArcRadiusAndCenter(prevVertex, v2)
			prevArcStartAngle := angle.FromPoints(prevArcCenter, prevVertex.Pos())
			updatedPrevTheta := angle.Delta(prevArcStartAngle, a)
			// ensure the sign matches (it may flip when the intersect is at
			// the very end of the arc, in which case the bulge is kept)
			if (updatedPrevTheta > 0) == prevVertex.BulgeIsPos() {
				result.SetLast(prevVertex.WithBulge(angle.Bulge(updatedPrevTheta)))
			}
		}

		result.AddOrReplace(intr.X(), intr.Y(), 0, posEqualEps)
	}

	switch r := intersect.LineCircle(u1.Pos(), u2.Pos(), arcRadius, arcCenter, posEqualEps); r.Kind {
	case intersect.LineCircleNone:
		connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
	case intersect.LineCircleTangent:
		processIntersect(r.T0, point.FromParametric(u1.Pos(), u2.Pos(), r.T0))
	default:
		// always use the intersect closest to the original point
		origPoint := s1.OrigV2Pos
		if s2.CollapsedArc {
			origPoint = u1.Pos()
		}
		intr1 := point.FromParametric(u1.Pos(), u2.Pos(), r.T0)
		dist1 := intr1.DistanceSquaredToPoint(origPoint)
		intr2 := point.FromParametric(u1.Pos(), u2.Pos(), r.T1)
		dist2 := intr2.DistanceSquaredToPoint(origPoint)
		if dist1 < dist2 {
			processIntersect(r.T0, intr1)
		} else {
			processIntersect(r.T1, intr2)
		}
	}
}

// arcArcJoin joins two adjacent raw offset segments where both are arcs.
func arcArcJoin(s1, s2 *RawOffsetSeg, params joinParams, result *Polyline) {
	v1 := s1.V1
	v2 := s1.V2
	u1 := s2.V1
	u2 := s2.V2
	posEqualEps := params.posEqualEps

	arc1Radius, arc1Center := SegArcRadiusAndCenter(v1, v2)
	arc2Radius, arc2Center := SegArcRadiusAndCenter(u1, u2)

	bothArcsSweepPoint := func(pt point.Point) bool {
		return angle.PointWithinArcSweep(arc1Center, v1.Pos(), v2.Pos(), v1.BulgeIsNeg(), pt, posEqualEps) &&
			angle.PointWithinArcSweep(arc2Center, u1.Pos(), u2.Pos(), u1.BulgeIsNeg(), pt, posEqualEps)
	}

	processIntersect := func(intr point.Point, trueIntersect bool) {
		if !trueIntersect {
			connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
			return
		}

		prevVertex, _ := result.Last()
		if !prevVertex.BulgeIsZero() && !prevVertex.Pos().EqEps(v2.Pos(), posEqualEps) {
			// modify the previous bulge and trim the first arc at the
			// intersect
			a1 := angle.FromPoints(arc1Center, intr)
			_, prevArcCenter := SegArcRadiusAndCenter(prevVertex, v2)
			prevArcStartAngle := angle.FromPoints(prevArcCenter, prevVertex.Pos())
			updatedPrevTheta := angle.Delta(prevArcStartAngle, a1)
			// ensure the sign matches (it may flip when the intersect is at
			// the very end of the arc, in which case the bulge is kept)
			if (updatedPrevTheta > 0) == prevVertex.BulgeIsPos() {
				result.SetLast(prevVertex.WithBulge(angle.Bulge(updatedPrevTheta)))
			}
		}

		// add the vertex at the trim/join point with the second arc's sweep
		// reduced to end at its original end point
		a2 := angle.FromPoints(arc2Center, intr)
		endAngle := angle.FromPoints(arc2Center, u2.Pos())
		theta := angle.Delta(a2, endAngle)
		if (theta > 0) == u1.BulgeIsPos() {
			result.AddOrReplace(intr.X(), intr.Y(), angle.Bulge(theta), posEqualEps)
		} else {
			result.AddOrReplace(intr.X(), intr.Y(), u1.Bulge(), posEqualEps)
		}
	}

	switch r := intersect.CircleCircle(arc1Radius, arc1Center, arc2Radius, arc2Center, posEqualEps); r.Kind {
	case intersect.CircleCircleNone:
		connectUsingArc(s1, s2, params.connectionArcsCCW, result, posEqualEps)
	case intersect.CircleCircleTangent:
		processIntersect(r.Point1, bothArcsSweepPoint(r.Point1))
	case intersect.CircleCircleTwo:
		// always use the intersect closest to the original point
		dist1 := r.Point1.DistanceSquaredToPoint(s1.OrigV2Pos)
		dist2 := r.Point2.DistanceSquaredToPoint(s1.OrigV2Pos)
		switch {
		case numeric.FloatEquals(dist1, dist2, numeric.DefaultEpsilon):
			// both points equal distance (occurs when the input arcs connect
			// at a tangent point), prioritize a true intersect to eliminate
			// an intersect in the raw offset polyline that would otherwise
			// have to be processed later
			if bothArcsSweepPoint(r.Point1) {
				processIntersect(r.Point1, true)
			} else {
				processIntersect(r.Point2, bothArcsSweepPoint(r.Point2))
			}
		case dist1 < dist2:
			processIntersect(r.Point1, bothArcsSweepPoint(r.Point1))
		default:
			processIntersect(r.Point2, bothArcsSweepPoint(r.Point2))
		}
	default:
		// same arc radius and center, just add the vertex (nothing to
		// trim/extend)
		result.AddOrReplaceVertex(u1, posEqualEps)
	}
}

// createRawOffsetPolyline creates the raw offset polyline: every segment
// parallel offset and adjacent raw segments joined back together.
func createRawOffsetPolyline(p *Polyline, offset, posEqualEps float64) *Polyline {
	if p.VertexCount() < 2 {
		return New()
	}

	rawOffsetSegs := createUntrimmedRawOffsetSegs(p, offset)
	if len(rawOffsetSegs) == 0 {
		return New()
	}

	// detect a single collapsed arc segment
	if len(rawOffsetSegs) == 1 && rawOffsetSegs[0].CollapsedArc {
		return New()
	}

	params := joinParams{
		connectionArcsCCW: offset < 0,
		posEqualEps:       posEqualEps,
	}

	joinSegPair := func(s1, s2 *RawOffsetSeg, result *Polyline) {
		s1IsLine := s1.V1.BulgeIsZero()
		s2IsLine := s2.V1.BulgeIsZero()
		switch {
		case s1IsLine && s2IsLine:
			lineLineJoin(s1, s2, params, result)
		case s1IsLine:
			lineArcJoin(s1, s2, params, result)
		case s2IsLine:
			arcLineJoin(s1, s2, params, result)
		default:
			arcArcJoin(s1, s2, params, result)
		}
	}

	result := WithCapacity(p.VertexCount(), p.IsClosed())

	// add the very first vertex
	result.AddVertex(rawOffsetSegs[0].V1)

	// join the first two segments and determine if the first vertex was
	// replaced (needed to handle the closing joins of a closed polyline)
	if len(rawOffsetSegs) > 1 {
		joinSegPair(&rawOffsetSegs[0], &rawOffsetSegs[1], result)
	}
	firstVertexReplaced := result.VertexCount() == 1

	for i := 1; i+1 < len(rawOffsetSegs); i++ {
		joinSegPair(&rawOffsetSegs[i], &rawOffsetSegs[i+1], result)
	}

	if p.IsClosed() && result.VertexCount() > 1 {
		// join the closing segments at vertex indexes (n, 0) and (0, 1)
		s1 := &rawOffsetSegs[len(rawOffsetSegs)-1]
		s2 := &rawOffsetSegs[0]

		// scratch polyline to capture the closing join (to avoid mutating
		// the result mid-join)
		closingPart := New()
		lastV, _ := result.Last()
		closingPart.AddVertex(lastV)
		joinSegPair(s1, s2, closingPart)

		// splice the scratch polyline back into the result
		result.SetLast(closingPart.At(0))
		for i := 1; i < closingPart.VertexCount(); i++ {
			result.AddVertex(closingPart.At(i))
		}

		// update the first vertex (unless it was already replaced)
		if !firstVertexReplaced {
			updatedFirstPos, _ := closingPart.Last()
			if result.At(0).BulgeIsZero() {
				// just update the position
				result.SetVertex(0, VertexFromPoint(updatedFirstPos.Pos(), 0))
			} else if result.VertexCount() > 1 {
				// update the position and bulge
				_, arcCenter := SegArcRadiusAndCenter(result.At(0), result.At(1))
				a1 := angle.FromPoints(arcCenter, updatedFirstPos.Pos())
				a2 := angle.FromPoints(arcCenter, result.At(1).Pos())
				updatedTheta := angle.Delta(a1, a2)
				if (updatedTheta < 0 && result.At(0).BulgeIsPos()) ||
					(updatedTheta > 0 && result.At(0).BulgeIsNeg()) {
					// the first vertex is no longer valid, just update its
					// position (it will be pruned)
					result.SetVertex(0, VertexFromPoint(updatedFirstPos.Pos(), result.At(0).Bulge()))
				} else {
					result.SetVertex(0, VertexFromPoint(updatedFirstPos.Pos(), angle.Bulge(updatedTheta)))
				}
			}
		}

		// final singularity prune between the last, first and second vertex
		// (they may coincide after the wrap join)
		if result.VertexCount() > 1 {
			lastV, _ := result.Last()
			if result.At(0).Pos().EqEps(lastV.Pos(), posEqualEps) {
				result.RemoveLast()
			}
			if result.VertexCount() > 1 && result.At(0).Pos().EqEps(result.At(1).Pos(), posEqualEps) {
				result.Remove(0)
			}
		}
	} else {
		// open polyline, add the final raw offset vertex
		result.AddOrReplaceVertex(rawOffsetSegs[len(rawOffsetSegs)-1].V2, posEqualEps)
	}

	// if joining collapsed everything into a single vertex return an empty
	// polyline
	if result.VertexCount() == 1 {
		result.Clear()
	}

	return result
}

// pointValidForOffset reports whether the point given keeps a distance of at
// least |offset| - offsetTol from the original polyline.
func pointValidForOffset(p *Polyline, offset float64, ix *index.Index, pt point.Point, offsetTol float64) bool {
	absOffset := math.Abs(offset) - offsetTol
	minDist := absOffset * absOffset
	pointValid := true

	queryBox := aabbAroundPoint(pt, absOffset)
	ix.VisitQuery(queryBox, func(i int) bool {
		j := p.NextWrappingIndex(i)
		closestPoint := SegClosestPoint(p.At(i), p.At(j), pt, numeric.DefaultEpsilon)
		dist := closestPoint.DistanceSquaredToPoint(pt)
		pointValid = dist > minDist
		return pointValid
	})
	return pointValid
}

// intersectsOriginalPline reports whether the segment v1->v2 intersects the
// original polyline anywhere (queried through its spatial index).
func intersectsOriginalPline(p *Polyline, ix *index.Index, v1, v2 Vertex, posEqualEps float64) bool {
	approxBB := SegFastApproxBoundingBox(v1, v2).Expand(numeric.DefaultEpsilon)
	hasIntersect := false
	ix.VisitQuery(approxBB, func(i int) bool {
		j := p.NextWrappingIndex(i)
		hasIntersect = IntersectSegs(v1, v2, p.At(i), p.At(j), posEqualEps).Kind != SegIntrNone
		return !hasIntersect
	})
	return hasIntersect
}

// intersectsLookup is an ordered map from raw offset segment index to the
// intersect points found on that segment, kept in segment index order so
// slices are constructed in vertex order.
type intersectsLookup struct {
	tree *rbt.Tree
}

func newIntersectsLookup() *intersectsLookup {
	return &intersectsLookup{tree: rbt.NewWithIntComparator()}
}

func (l *intersectsLookup) add(startIndex int, intr point.Point) {
	var list []point.Point
	if v, found := l.tree.Get(startIndex); found {
		list = v.([]point.Point)
	}
	l.tree.Put(startIndex, append(list, intr))
}

func (l *intersectsLookup) get(startIndex int) ([]point.Point, bool) {
	v, found := l.tree.Get(startIndex)
	if !found {
		return nil, false
	}
	return v.([]point.Point), true
}

func (l *intersectsLookup) isEmpty() bool {
	return l.tree.Empty()
}

// sortByDistFromSegStart sorts each segment's intersect list by distance
// from the segment's start vertex.
func (l *intersectsLookup) sortByDistFromSegStart(p *Polyline) {
	it := l.tree.Iterator()
	for it.Next() {
		i := it.Key().(int)
		list := it.Value().([]point.Point)
		startPos := p.At(i).Pos()
		sortPointsByDist(list, startPos)
	}
}

// visitInOrder visits each (segment index, intersect list) pair in segment
// index order.
func (l *intersectsLookup) visitInOrder(visit func(startIndex int, intrList []point.Point)) {
	it := l.tree.Iterator()
	for it.Next() {
		visit(it.Key().(int), it.Value().([]point.Point))
	}
}

func sortPointsByDist(points []point.Point, from point.Point) {
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && from.DistanceSquaredToPoint(points[j]) < from.DistanceSquaredToPoint(points[j-1]); j-- {
			points[j], points[j-1] = points[j-1], points[j]
		}
	}
}

// slicesFromRawOffset slices the closed raw offset polyline at its self
// intersects and validates each candidate slice against the original
// polyline (distance and crossing checks). Only supports closed source
// polylines; open polylines go through slicesFromDualRawOffsets.
func slicesFromRawOffset(
	original *Polyline,
	rawOffset *Polyline,
	origIndex *index.Index,
	offset float64,
	o options.OffsetOptions,
) []ViewData {
	var result []ViewData
	if rawOffset.VertexCount() < 2 {
		return result
	}

	posEqualEps := o.PosEqualEps
	offsetDistEps := o.OffsetDistEps

	rawOffsetIndex := rawOffset.CreateApproxAABBIndex()
	selfIntrs := allSelfIntersectsAsBasic(rawOffset, rawOffsetIndex, posEqualEps)

	pointValidDist := func(pt point.Point) bool {
		return pointValidForOffset(original, offset, origIndex, pt, offsetDistEps)
	}

	if len(selfIntrs) == 0 {
		// no self intersects, test a point on the raw offset polyline
		if !pointValidDist(rawOffset.At(0).Pos()) {
			return result
		}
		return append(result, ViewDataFromEntirePline(rawOffset))
	}

	lookup := newIntersectsLookup()
	for _, si := range selfIntrs {
		lookup.add(si.StartIndex1, si.Point)
		lookup.add(si.StartIndex2, si.Point)
	}
	lookup.sortByDistFromSegStart(rawOffset)

	lookup.visitInOrder(func(startIndex int, intrList []point.Point) {
		nextIndex := rawOffset.NextWrappingIndex(startIndex)
		startVertex := rawOffset.At(startIndex)
		endVertex := rawOffset.At(nextIndex)

		if len(intrList) != 1 {
			// build all the slices between the N intersects in the list
			// (skipping the slice starting at the last intersect, processed
			// below)
			firstSplit := SegSplitAtPoint(startVertex, endVertex, intrList[0], posEqualEps)
			prevVertex := firstSplit.SplitVertex
			for _, intr := range intrList[1:] {
				split := SegSplitAtPoint(prevVertex, endVertex, intr, posEqualEps)
				prevVertex = split.SplitVertex

				if split.UpdatedStart.Pos().EqEps(split.SplitVertex.Pos(), posEqualEps) {
					continue
				}
				if !pointValidDist(split.UpdatedStart.Pos()) {
					continue
				}
				if !pointValidDist(split.SplitVertex.Pos()) {
					continue
				}
				midpoint := SegMidpoint(split.UpdatedStart, split.SplitVertex)
				if !pointValidDist(midpoint) {
					continue
				}
				if intersectsOriginalPline(original, origIndex, split.UpdatedStart, split.SplitVertex, posEqualEps) {
					continue
				}

				if vd, ok := ViewDataOnSingleSegment(rawOffset, startIndex, split.UpdatedStart,
					split.SplitVertex.Pos(), posEqualEps); ok {
					result = append(result, vd)
				}
			}
		}

		// build the slice from the last intersect in the list to the next
		// intersect found while walking forward
		sliceStartPoint := intrList[len(intrList)-1]
		if !pointValidDist(sliceStartPoint) {
			return
		}

		split := SegSplitAtPoint(startVertex, endVertex, sliceStartPoint, posEqualEps)
		sliceStartVertex := split.SplitVertex
		lastVertex := split.SplitVertex
		if lastVertex.Pos().EqEps(endVertex.Pos(), posEqualEps) {
			// collapsed slice, skip it
			return
		}

		idx := nextIndex
		loopCount := 0
		maxLoopCount := rawOffset.VertexCount()
		for {
			if loopCount > maxLoopCount {
				panic("loop count exceeded maximum while creating slices from raw offset")
			}
			loopCount++

			currentVertex := rawOffset.At(idx)
			if !pointValidDist(currentVertex.Pos()) {
				break
			}
			if intersectsOriginalPline(original, origIndex, lastVertex, currentVertex, posEqualEps) {
				break
			}

			lastVertex = currentVertex

			if nextIntrList, ok := lookup.get(idx); ok {
				// there is an intersect, the slice is done, check the final
				// segment is valid
				intersectPoint := nextIntrList[0]
				if !pointValidDist(intersectPoint) {
					break
				}

				nextIdx := rawOffset.NextWrappingIndex(idx)
				endSplit := SegSplitAtPoint(currentVertex, rawOffset.At(nextIdx), intersectPoint, posEqualEps)
				sliceEndVertex := VertexFromPoint(intersectPoint, 0)
				midpoint := SegMidpoint(endSplit.UpdatedStart, sliceEndVertex)
				if !pointValidDist(midpoint) {
					break
				}

				result = append(result, CreateViewData(
					rawOffset, startIndex, intersectPoint, idx, sliceStartVertex, loopCount, posEqualEps))
				break
			}

			idx = rawOffset.NextWrappingIndex(idx)
		}
	})

	return result
}

// visitCircleIntersects visits the intersects between the circle given and
// the polyline's segments (used to shape the ends of open polyline offsets).
func visitCircleIntersects(
	p *Polyline,
	circleCenter point.Point,
	circleRadius float64,
	ix *index.Index,
	visit func(startIndex int, intr point.Point),
	posEqualEps float64,
) {
	isValidLineIntr := func(t float64) bool {
		// skip false intersects and intersects at the start of a segment
		return !isFalseIntersect(t) && math.Abs(t) > posEqualEps
	}

	isValidArcIntr := func(arcCenter, arcStart, arcEnd point.Point, bulge float64, intr point.Point) bool {
		// skip intersects at the start of a segment
		return !arcStart.EqEps(intr, posEqualEps) &&
			angle.PointWithinArcSweep(arcCenter, arcStart, arcEnd, bulge < 0, intr, posEqualEps)
	}

	queryBox := aabbAroundPoint(circleCenter, circleRadius)
	ix.VisitQuery(queryBox, func(startIndex int) bool {
		v1 := p.At(startIndex)
		v2 := p.At(p.NextWrappingIndex(startIndex))
		if v1.BulgeIsZero() {
			switch r := intersect.LineCircle(v1.Pos(), v2.Pos(), circleRadius, circleCenter, posEqualEps); r.Kind {
			case intersect.LineCircleNone:
			case intersect.LineCircleTangent:
				if isValidLineIntr(r.T0) {
					visit(startIndex, point.FromParametric(v1.Pos(), v2.Pos(), r.T0))
				}
			default:
				if isValidLineIntr(r.T0) {
					visit(startIndex, point.FromParametric(v1.Pos(), v2.Pos(), r.T0))
				}
				if isValidLineIntr(r.T1) {
					visit(startIndex, point.FromParametric(v1.Pos(), v2.Pos(), r.T1))
				}
			}
		} else {
			arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
			switch r := intersect.CircleCircle(arcRadius, arcCenter, circleRadius, circleCenter, posEqualEps); r.Kind {
			case intersect.CircleCircleNone, intersect.CircleCircleOverlapping:
			case intersect.CircleCircleTangent:
				if isValidArcIntr(arcCenter, v1.Pos(), v2.Pos(), v1.Bulge(), r.Point1) {
					visit(startIndex, r.Point1)
				}
			default:
				if isValidArcIntr(arcCenter, v1.Pos(), v2.Pos(), v1.Bulge(), r.Point1) {
					visit(startIndex, r.Point1)
				}
				if isValidArcIntr(arcCenter, v1.Pos(), v2.Pos(), v1.Bulge(), r.Point2) {
					visit(startIndex, r.Point2)
				}
			}
		}
		return true
	})
}

// slicesFromDualRawOffsets slices the raw offset polyline using its self
// intersects, its intersects with the dual raw offset (generated with the
// negated offset), and, for open source polylines, intersects with circles
// centered at the original end points. Used for open polylines and for
// closed polylines when self intersect handling is requested.
func slicesFromDualRawOffsets(
	original *Polyline,
	rawOffset *Polyline,
	dualRawOffset *Polyline,
	origIndex *index.Index,
	offset float64,
	o options.OffsetOptions,
) []ViewData {
	var result []ViewData
	if rawOffset.VertexCount() < 2 {
		return result
	}

	posEqualEps := o.PosEqualEps
	offsetDistEps := o.OffsetDistEps

	rawOffsetIndex := rawOffset.CreateApproxAABBIndex()
	selfIntrs := allSelfIntersectsAsBasic(rawOffset, rawOffsetIndex, posEqualEps)
	dualIntrs := rawOffset.FindIntersects(dualRawOffset,
		options.WithFindIntersectsPline1AABBIndex(rawOffsetIndex),
		options.WithFindIntersectsPosEqualEps(posEqualEps))

	lookup := newIntersectsLookup()

	if !original.IsClosed() {
		// add intersects between the raw offset polyline and circles at the
		// original open polyline end points
		circleRadius := math.Abs(offset)
		lastV, _ := original.Last()
		visitCircleIntersects(rawOffset, original.At(0).Pos(), circleRadius, rawOffsetIndex, lookup.add, posEqualEps)
		visitCircleIntersects(rawOffset, lastV.Pos(), circleRadius, rawOffsetIndex, lookup.add, posEqualEps)
	}

	// add all the self intersects
	for _, si := range selfIntrs {
		lookup.add(si.StartIndex1, si.Point)
		lookup.add(si.StartIndex2, si.Point)
	}

	// only add intersects keyed by StartIndex1 from the dual intersects
	// (index 1 corresponds to the raw offset polyline); overlapping
	// intersects are never added since they only arise from collapsed
	// regions which the raw offset segments already handle
	for _, intr := range dualIntrs.BasicIntersects {
		lookup.add(intr.StartIndex1, intr.Point)
	}

	pointValidDist := func(pt point.Point) bool {
		return pointValidForOffset(original, offset, origIndex, pt, offsetDistEps)
	}

	if lookup.isEmpty() {
		// test a point on the raw offset polyline
		if !pointValidDist(rawOffset.At(0).Pos()) {
			return result
		}
		return append(result, ViewDataFromEntirePline(rawOffset))
	}

	lookup.sortByDistFromSegStart(rawOffset)

	if !original.IsClosed() {
		// build the first slice ending at the first intersect since walking
		// will not wrap back around to capture it as with closed polylines
		const (
			clipValid = iota
			clipInvalid
			clipNone
		)

		clipToIntersect := func(idx, loopCount int) (ViewData, int) {
			intrList, ok := lookup.get(idx)
			if !ok {
				return ViewData{}, clipNone
			}

			intrPos := intrList[0]
			if !pointValidDist(intrPos) {
				return ViewData{}, clipInvalid
			}

			split := SegSplitAtPoint(rawOffset.At(idx), rawOffset.At(idx+1), intrPos, posEqualEps)
			sliceEndVertex := VertexFromPoint(intrPos, 0)
			midpoint := SegMidpoint(split.UpdatedStart, sliceEndVertex)
			if !pointValidDist(midpoint) {
				return ViewData{}, clipInvalid
			}
			if intersectsOriginalPline(original, origIndex, split.UpdatedStart, sliceEndVertex, posEqualEps) {
				return ViewData{}, clipInvalid
			}

			if loopCount == 0 {
				vd, ok := ViewDataOnSingleSegment(rawOffset, 0, split.UpdatedStart, intrPos, posEqualEps)
				if !ok {
					return ViewData{}, clipInvalid
				}
				return vd, clipValid
			}
			return CreateViewData(rawOffset, 0, intrPos, idx, rawOffset.At(0), loopCount, posEqualEps), clipValid
		}

		if vd, state := clipToIntersect(0, 0); state == clipValid {
			result = append(result, vd)
		} else if state == clipNone {
			// no intersect on the very first segment, walk until one is
			// found to clip to
			idx := 1
			loopCount := 0
			maxLoopCount := rawOffset.VertexCount()
			for {
				if loopCount > maxLoopCount {
					panic("loop count exceeded maximum while creating slices from raw offset")
				}
				loopCount++
				vd, state := clipToIntersect(idx, loopCount)
				if state == clipValid {
					result = append(result, vd)
					break
				}
				if state == clipInvalid {
					break
				}
				if !pointValidDist(rawOffset.At(idx).Pos()) {
					break
				}
				if intersectsOriginalPline(original, origIndex, rawOffset.At(idx-1), rawOffset.At(idx), posEqualEps) {
					break
				}
				idx++
			}
		}
	}

	lookup.visitInOrder(func(startIndex int, intrList []point.Point) {
		nextIndex := rawOffset.NextWrappingIndex(startIndex)
		startVertex := rawOffset.At(startIndex)
		endVertex := rawOffset.At(nextIndex)

		if len(intrList) != 1 {
			firstSplit := SegSplitAtPoint(startVertex, endVertex, intrList[0], posEqualEps)
			prevVertex := firstSplit.SplitVertex
			for _, intr := range intrList[1:] {
				split := SegSplitAtPoint(prevVertex, endVertex, intr, posEqualEps)
				prevVertex = split.SplitVertex

				if split.UpdatedStart.Pos().EqEps(split.SplitVertex.Pos(), posEqualEps) {
					continue
				}
				if !pointValidDist(split.UpdatedStart.Pos()) {
					continue
				}
				if !pointValidDist(split.SplitVertex.Pos()) {
					continue
				}
				midpoint := SegMidpoint(split.UpdatedStart, split.SplitVertex)
				if !pointValidDist(midpoint) {
					continue
				}
				if intersectsOriginalPline(original, origIndex, split.UpdatedStart, split.SplitVertex, posEqualEps) {
					continue
				}

				if vd, ok := ViewDataOnSingleSegment(rawOffset, startIndex, split.UpdatedStart,
					split.SplitVertex.Pos(), posEqualEps); ok {
					result = append(result, vd)
				}
			}
		}

		sliceStartPoint := intrList[len(intrList)-1]
		if !pointValidDist(sliceStartPoint) {
			return
		}

		split := SegSplitAtPoint(startVertex, endVertex, sliceStartPoint, posEqualEps)
		sliceStartVertex := split.SplitVertex
		lastVertex := split.SplitVertex
		if lastVertex.Pos().EqEps(endVertex.Pos(), posEqualEps) {
			// collapsed slice, skip it
			return
		}

		idx := nextIndex
		loopCount := 0
		maxLoopCount := rawOffset.VertexCount()
		for {
			if loopCount > maxLoopCount {
				panic("loop count exceeded maximum while creating slices from raw offset")
			}
			loopCount++

			currentVertex := rawOffset.At(idx)
			if !pointValidDist(currentVertex.Pos()) {
				break
			}
			if intersectsOriginalPline(original, origIndex, lastVertex, currentVertex, posEqualEps) {
				break
			}

			lastVertex = currentVertex

			if nextIntrList, ok := lookup.get(idx); ok {
				intersectPoint := nextIntrList[0]
				if !pointValidDist(intersectPoint) {
					break
				}

				nextIdx := rawOffset.NextWrappingIndex(idx)
				endSplit := SegSplitAtPoint(currentVertex, rawOffset.At(nextIdx), intersectPoint, posEqualEps)
				sliceEndVertex := VertexFromPoint(intersectPoint, 0)
				midpoint := SegMidpoint(endSplit.UpdatedStart, sliceEndVertex)
				if !pointValidDist(midpoint) {
					break
				}

				result = append(result, CreateViewData(
					rawOffset, startIndex, intersectPoint, idx, sliceStartVertex, loopCount, posEqualEps))
				break
			}

			if idx == rawOffset.VertexCount()-1 {
				if original.IsClosed() {
					idx = 0
				} else {
					// open polyline, the walk is done
					result = append(result, CreateViewData(
						rawOffset, startIndex, rawOffset.At(idx).Pos(), idx, sliceStartVertex, loopCount, posEqualEps))
					break
				}
			} else {
				idx++
			}
		}
	})

	return result
}

// stitchOffsetSlicesTogether stitches the validated offset slices end to end
// into the final offset polylines. origMaxIndex bounds the forward wrapping
// distance used to prefer slices from the same source segment cluster.
func stitchOffsetSlicesTogether(
	rawOffset *Polyline,
	slices []ViewData,
	isClosed bool,
	origMaxIndex int,
	o options.OffsetOptions,
) []*Polyline {
	var result []*Polyline
	if len(slices) == 0 {
		return result
	}

	joinEps := o.SliceJoinEps
	posEqualEps := o.PosEqualEps

	if len(slices) == 1 {
		pline := slices[0].View(rawOffset).ToPolyline(posEqualEps)
		firstV := pline.At(0)
		lastV, _ := pline.Last()
		if isClosed && firstV.Pos().EqEps(lastV.Pos(), joinEps) {
			pline.SetIsClosed(true)
			pline.RemoveLast()
		}
		result = append(result, pline)
		return result
	}

	// load all the slice start points into a spatial index, each box grown
	// by the join epsilon
	sliceStartIndex := index.New()
	for i, slice := range slices {
		sliceStartIndex.Insert(aabbAroundPoint(slice.UpdatedStart.Pos(), joinEps), i)
	}

	visitedIndexes := make([]bool, len(slices))
	var queryResults []int

	for i := range slices {
		if visitedIndexes[i] {
			continue
		}
		visitedIndexes[i] = true

		currentPline := New()
		currentIndex := i
		initialStartPoint := slices[i].UpdatedStart.Pos()
		loopCount := 0
		maxLoopCount := len(slices)
		for {
			if loopCount > maxLoopCount {
				panic("loop count exceeded maximum while stitching offset slices together")
			}
			loopCount++

			// append the current slice to the current polyline
			currentSlice := slices[currentIndex]
			currentSlice.View(rawOffset).StitchOnto(currentPline, posEqualEps)

			currentLoopStartIndex := currentSlice.StartIndex
			currentEndPoint := currentSlice.EndPoint

			queryResults = queryResults[:0]
			sliceStartIndex.VisitQuery(aabbAroundPoint(currentEndPoint, joinEps), func(idx int) bool {
				if !visitedIndexes[idx] {
					queryResults = append(queryResults, idx)
				}
				return true
			})

			getIndexDist := func(idx int) int {
				slice := slices[idx]
				if currentLoopStartIndex <= slice.StartIndex {
					return slice.StartIndex - currentLoopStartIndex
				}
				// forward wrapping distance (distance to end plus distance
				// from start)
				return origMaxIndex - currentLoopStartIndex + slice.StartIndex
			}

			endConnectsToStart := func(idx int) bool {
				return slices[idx].EndPoint.EqEps(initialStartPoint, posEqualEps)
			}

			// sort by segment index distance then by whether the slice's end
			// connects back to the initial start; this ordering ensures
			// overlapping slices are retained while stitching
			sortSliceCandidates(queryResults, getIndexDist, endConnectsToStart)

			if len(queryResults) == 0 {
				// done stitching the current polyline
				if currentPline.VertexCount() > 1 {
					sp := currentPline.At(0).Pos()
					lastV, _ := currentPline.Last()
					if isClosed && sp.EqEps(lastV.Pos(), posEqualEps) {
						currentPline.RemoveLast()
						currentPline.SetIsClosed(true)
					}
					result = append(result, currentPline)
				}
				break
			}

			// continue stitching
			visitedIndexes[queryResults[0]] = true
			currentPline.RemoveLast()
			currentIndex = queryResults[0]
		}
	}

	return result
}

// sortSliceCandidates orders stitch candidates by index distance then by
// whether their end connects back to the stitch start point.
func sortSliceCandidates(candidates []int, indexDist func(int) int, endConnectsToStart func(int) bool) {
	lessThan := func(a, b int) bool {
		da, db := indexDist(a), indexDist(b)
		if da != db {
			return da < db
		}
		ea, eb := endConnectsToStart(a), endConnectsToStart(b)
		return !ea && eb
	}
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && lessThan(candidates[j], candidates[j-1]); j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
}

// aabbAroundPoint returns the axis aligned box centered at pt grown by
// halfExtent on all sides.
func aabbAroundPoint(pt point.Point, halfExtent float64) aabb.AABB {
	return aabb.New(
		pt.X()-halfExtent,
		pt.Y()-halfExtent,
		pt.X()+halfExtent,
		pt.Y()+halfExtent,
	)
}

// ParallelOffset computes the parallel offset polylines of the polyline.
//
// A positive offset is to the left of the segment tangent vectors, negative
// to the right. For a closed counter-clockwise polyline a positive offset
// shrinks the enclosed area and a negative offset grows it.
//
// The input polyline is assumed to have no repeat position vertexes (use
// [Polyline.RemoveRepeatPos] first if it may).
func (p *Polyline) ParallelOffset(offset float64, opts ...options.OffsetOptionFunc) []*Polyline {
	o := options.NewOffsetOptions(opts...)

	if p.VertexCount() < 2 {
		return nil
	}

	ix := o.AABBIndex
	if ix == nil {
		ix = p.CreateApproxAABBIndex()
	}

	rawOffset := createRawOffsetPolyline(p, offset, o.PosEqualEps)

	var result []*Polyline
	switch {
	case rawOffset.IsEmpty():
		return nil
	case p.IsClosed() && !o.HandleSelfIntersects:
		slices := slicesFromRawOffset(p, rawOffset, ix, offset, o)
		result = stitchOffsetSlicesTogether(rawOffset, slices, true, rawOffset.VertexCount()-1, o)
	default:
		dualRawOffset := createRawOffsetPolyline(p, -offset, o.PosEqualEps)
		slices := slicesFromDualRawOffsets(p, rawOffset, dualRawOffset, ix, offset, o)
		result = stitchOffsetSlicesTogether(rawOffset, slices, p.IsClosed(), rawOffset.VertexCount(), o)
	}

	// offset results inherit the source polyline's user data
	for _, pl := range result {
		pl.AddUserDataValues(p.UserDataValues())
	}

	return result
}
