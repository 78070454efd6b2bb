package pline

import (
	"math"

	"github.com/mikenye/polyarc/angle"
	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

// RemoveRepeatPos returns a copy of the polyline with all repeat position
// vertexes removed. When a vertex is dropped its bulge replaces the previous
// vertex's bulge so the geometric curve is preserved; for closed polylines
// the wrap pair is also checked.
//
// Returns nil when no vertexes were removed (avoiding the allocation and
// copy).
func (p *Polyline) RemoveRepeatPos(posEqualEps float64) *Polyline {
	vc := len(p.vertexes)
	if vc < 2 {
		return nil
	}

	var result *Polyline
	copyUpTo := func(i int) *Polyline {
		r := WithCapacity(vc, p.isClosed)
		r.vertexes = append(r.vertexes, p.vertexes[:i]...)
		return r
	}

	prevPos := p.vertexes[0].Pos()
	for i := 1; i < vc; i++ {
		v := p.vertexes[i]
		if v.Pos().EqEps(prevPos, posEqualEps) {
			// repeat position, just update the bulge (the vertex is removed
			// by not adding it to the result)
			if result == nil {
				result = copyUpTo(i)
			}
			last, _ := result.Last()
			result.SetLast(last.WithBulge(v.Bulge()))
		} else {
			if result != nil {
				result.AddVertex(v)
			}
			prevPos = v.Pos()
		}
	}

	// check if closed and the last vertex repeats the position of the first
	if p.isClosed && p.vertexes[vc-1].Pos().EqEps(p.vertexes[0].Pos(), posEqualEps) {
		if result == nil {
			result = copyUpTo(vc)
		}
		result.RemoveLast()
	}

	return result
}

// RemoveRedundant returns a copy of the polyline with all redundant vertexes
// removed.
//
// Redundant vertexes arise from repeat positions, from vertexes along a
// straight line in the same direction, and from adjacent arcs sharing the
// same center and radius whose combined sweep stays below π (preventing a
// spurious full circle). Positions are compared with posEqualEps directly;
// angular comparisons are scaled by the arc radius to stay dimensionally
// consistent.
//
// Returns nil when no vertexes were removed (avoiding the allocation and
// copy).
func (p *Polyline) RemoveRedundant(posEqualEps float64) *Polyline {
	vc := len(p.vertexes)
	if vc < 2 {
		return nil
	}

	if vc == 2 {
		if p.vertexes[0].Pos().EqEps(p.vertexes[1].Pos(), posEqualEps) {
			result := WithCapacity(1, p.isClosed)
			// take the bulge from the last vertex
			result.AddVertex(p.vertexes[1])
			return result
		}
		return nil
	}

	// test if v1->v2->v3 are collinear and all going in the same direction
	isCollinearSameDir := func(v1, v2, v3 Vertex) bool {
		// v2 on top of v3 is considered collinear for the purposes of
		// discarding v2
		if v2.Pos().EqEps(v3.Pos(), posEqualEps) {
			return true
		}

		collinear := numeric.FloatEqualsZero(
			v1.X()*(v2.Y()-v3.Y())+v2.X()*(v3.Y()-v1.Y())+v3.X()*(v1.Y()-v2.Y()),
			posEqualEps,
		)
		sameDirection := v3.Pos().Sub(v2.Pos()).DotProduct(v2.Pos().Sub(v1.Pos())) > -posEqualEps
		return collinear && sameDirection
	}

	v1 := p.vertexes[0]
	v2 := p.vertexes[1]

	// remove all repeat positions at the start
	i := 2
	for v1.Pos().EqEps(v2.Pos(), posEqualEps) {
		v1 = v1.WithBulge(v2.Bulge())
		if i >= vc {
			break
		}
		v2 = p.vertexes[i]
		i++
	}

	var result *Polyline
	if i != 2 {
		result = WithCapacity(1, p.isClosed)
		result.AddVertex(v1)
	}
	if i >= vc {
		// end reached, return a polyline with the only remaining vertex
		return result
	}

	copyUpTo := func(count int) *Polyline {
		if count > vc {
			count = vc
		}
		r := WithCapacity(vc, p.isClosed)
		r.vertexes = append(r.vertexes, p.vertexes[:count]...)
		return r
	}
	copyAll := func() *Polyline {
		return copyUpTo(vc)
	}

	// cached radius and center of the v1->v2 arc
	haveV1V2Arc := false
	var arcRadius1 float64
	var arcCenter1 point.Point
	v1V2Arc := func() (float64, point.Point) {
		if !haveV1V2Arc {
			arcRadius1, arcCenter1 = SegArcRadiusAndCenter(v1, v2)
			haveV1V2Arc = true
		}
		return arcRadius1, arcCenter1
	}

	v1BulgeIsZero := v1.BulgeIsZero()
	v2BulgeIsZero := v2.BulgeIsZero()
	v1BulgeIsPos := v1.BulgeIsPos()
	v2BulgeIsPos := v2.BulgeIsPos()

	// combined bulge for two concentric arc segments whose total sweep stays
	// below π, or false if they cannot be merged
	arcMergeBulge := func(va, vb, vc3 Vertex) (float64, bool) {
		r1, c1 := v1V2Arc()
		r2, c2 := SegArcRadiusAndCenter(vb, vc3)

		if !numeric.FloatEquals(r1, r2, posEqualEps) || !c1.EqEps(c2, posEqualEps) {
			return 0, false
		}

		angle1 := angle.FromPoints(c1, va.Pos())
		angle2 := angle.FromPoints(c1, vb.Pos())
		angle3 := angle.FromPoints(c1, vc3.Pos())
		totalSweep := math.Abs(angle.Delta(angle1, angle2)) + math.Abs(angle.Delta(angle2, angle3))

		avgRadius := (r1 + r2) / 2

		// can only combine vertexes if the total sweep stays less than π;
		// multiplying by the average radius keeps the comparison in the
		// scale of the position epsilon
		if !numeric.FloatLessThanOrEqualTo(avgRadius*totalSweep, avgRadius*math.Pi, posEqualEps) {
			return 0, false
		}

		if v1BulgeIsPos {
			return angle.Bulge(totalSweep), true
		}
		return -angle.Bulge(totalSweep), true
	}

	iterCount := vc - 2
	if p.isClosed {
		iterCount = vc - 1
	}

	// loop through, considering discarding the middle vertex v2 of each
	// triplet
	for k := i; k < i+iterCount; k++ {
		v3 := p.vertexes[k%vc]

		const (
			includeVertex = iota
			discardVertex
			updateV1BulgeForArc
		)
		state := includeVertex
		mergedBulge := 0.0

		switch {
		case v2.Pos().EqEps(v3.Pos(), posEqualEps):
			state = discardVertex
		case v1BulgeIsZero && v2BulgeIsZero:
			// two line segments in a row, check if collinear
			isFinalVertexForOpen := !p.isClosed && k == vc
			if !isFinalVertexForOpen && isCollinearSameDir(v1, v2, v3) {
				state = discardVertex
			}
		case !v1BulgeIsZero && !v2BulgeIsZero && v1BulgeIsPos == v2BulgeIsPos:
			// two arc segments in a row with the same orientation, check if
			// v2 can be removed by updating v1's bulge
			if b, ok := arcMergeBulge(v1, v2, v3); ok {
				state = updateV1BulgeForArc
				mergedBulge = b
			}
		}

		switch state {
		case includeVertex:
			if result != nil {
				result.AddVertex(v2)
			}
			v1 = v2
			v2 = v3
			haveV1V2Arc = false
			v1BulgeIsZero = v2BulgeIsZero
			v2BulgeIsZero = v3.BulgeIsZero()
			v1BulgeIsPos = v2BulgeIsPos
			v2BulgeIsPos = v3.BulgeIsPos()
		case discardVertex:
			if result == nil {
				result = copyUpTo(k - 1)
			}
			v2 = v3
			haveV1V2Arc = false
			v2BulgeIsZero = v3.BulgeIsZero()
			v2BulgeIsPos = v3.BulgeIsPos()
		case updateV1BulgeForArc:
			if result == nil {
				result = copyUpTo(k - 1)
			}
			last, _ := result.Last()
			result.SetLast(last.WithBulge(mergedBulge))
			v1 = v1.WithBulge(mergedBulge)
			v2 = v3
			haveV1V2Arc = false
			v1BulgeIsZero = v2BulgeIsZero
			v2BulgeIsZero = v3.BulgeIsZero()
			v1BulgeIsPos = v2BulgeIsPos
			v2BulgeIsPos = v3.BulgeIsPos()
		}
	}

	if p.isClosed {
		// handle the wrap around middle vertex at the start
		// at this point: v1 => last, v2 => first, v3 => second
		if result != nil {
			last, _ := result.Last()
			if last.Pos().EqEps(result.At(0).Pos(), posEqualEps) {
				result.RemoveLast()
			}
		} else if lastV, _ := p.Last(); lastV.Pos().EqEps(p.vertexes[0].Pos(), posEqualEps) {
			result = copyAll()
			result.RemoveLast()
		}

		var v3 Vertex
		if result != nil {
			v3 = result.At(1)
		} else {
			v3 = p.vertexes[1]
		}

		if v1BulgeIsZero && v2BulgeIsZero && isCollinearSameDir(v1, v2, v3) {
			// first vertex lies in the middle of a line
			if result == nil {
				result = copyAll()
			}
			last := result.RemoveLast()
			result.SetVertex(0, last)
		} else if !v1BulgeIsZero && !v2BulgeIsZero && v1BulgeIsPos == v2BulgeIsPos &&
			!v2.Pos().EqEps(v3.Pos(), posEqualEps) {
			// check if the arc can be simplified by removing the first vertex
			if b, ok := arcMergeBulge(v1, v2, v3); ok {
				if result == nil {
					result = copyAll()
				}
				last := result.RemoveLast()
				result.SetVertex(0, last.WithBulge(b))
			}
		}
	} else {
		// handle adding the last vertex
		if result != nil {
			lastV, _ := p.Last()
			result.AddOrReplaceVertex(lastV, posEqualEps)
		} else if p.vertexes[vc-2].EqEps(p.vertexes[vc-1], posEqualEps) {
			result = copyAll()
			result.RemoveLast()
		}
	}

	return result
}

// RotateStart produces a new closed polyline whose first vertex is the point
// given on the segment at startIndex, splitting the segment if necessary.
// The shape of the polyline curve does not change.
//
// Returns nil if the polyline is not closed, has fewer than 2 vertexes, or
// startIndex is out of range.
func (p *Polyline) RotateStart(startIndex int, pt point.Point, posEqualEps float64) *Polyline {
	vc := len(p.vertexes)
	if !p.isClosed || vc < 2 || startIndex < 0 || startIndex > vc-1 {
		return nil
	}

	extendWrappingFrom := func(r *Polyline, start int) {
		for k := 0; k < vc; k++ {
			r.AddVertex(p.vertexes[(start+k)%vc])
		}
	}

	startV := p.vertexes[startIndex]
	if startV.Pos().EqEps(pt, posEqualEps) {
		// point lies on top of the start index vertex
		r := WithCapacity(vc, true)
		extendWrappingFrom(r, startIndex)
		return r
	}

	// check if the point is at the end of the segment, if it is then rotate
	// to that next index
	nextIndex := p.NextWrappingIndex(startIndex)
	if pt.EqEps(p.vertexes[nextIndex].Pos(), posEqualEps) {
		r := WithCapacity(vc, true)
		extendWrappingFrom(r, nextIndex)
		return r
	}

	// must split at the point
	r := WithCapacity(vc+1, true)
	split := SegSplitAtPoint(p.vertexes[startIndex], p.vertexes[nextIndex], pt, posEqualEps)
	r.AddVertex(split.SplitVertex)
	extendWrappingFrom(r, nextIndex)
	r.SetLast(split.UpdatedStart)
	return r
}

// ArcsToApproxLines returns a new polyline with every arc segment converted
// to line segments approximating it.
//
// errorDistance is the maximum distance from any line segment to the arc it
// approximates. The line segments are circumscribed by the arc (all end
// points lie on the arc path).
func (p *Polyline) ArcsToApproxLines(errorDistance float64) *Polyline {
	result := WithCapacity(0, p.isClosed)

	if p.IsEmpty() {
		return result
	}

	absError := math.Abs(errorDistance)

	for v1, v2 := range p.IterSegments() {
		if v1.BulgeIsZero() {
			result.AddVertex(v1)
			continue
		}

		arcRadius, arcCenter := SegArcRadiusAndCenter(v1, v2)
		if numeric.FloatLessThanOrEqualTo(arcRadius, errorDistance, numeric.DefaultEpsilon) {
			result.Add(v1.X(), v1.Y(), 0)
			continue
		}

		startAngle := angle.FromPoints(arcCenter, v1.Pos())
		endAngle := angle.FromPoints(arcCenter, v2.Pos())
		angleDiff := math.Abs(angle.Delta(startAngle, endAngle))

		// uniform sub-angle such that every chord stays within the error
		// distance of the arc
		segSubAngle := 2 * math.Abs(math.Acos(1-absError/arcRadius))
		segCount := math.Ceil(angleDiff / segSubAngle)
		segAngleOffset := angleDiff / segCount
		if v1.BulgeIsNeg() {
			segAngleOffset = -segAngleOffset
		}

		// add the start vertex and then all the points along the arc
		result.Add(v1.X(), v1.Y(), 0)
		for i := 1; i < int(segCount); i++ {
			a := float64(i)*segAngleOffset + startAngle
			pos := angle.PointOnCircle(arcRadius, arcCenter, a)
			result.Add(pos.X(), pos.Y(), 0)
		}
	}

	if !p.isClosed {
		// add the final vertex in the case that the polyline is not closed
		lastV, _ := p.Last()
		result.AddVertex(lastV)
	}

	return result
}
