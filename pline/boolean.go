package pline

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/mikenye/polyarc/index"
	"github.com/mikenye/polyarc/options"
	"github.com/mikenye/polyarc/point"
	"github.com/mikenye/polyarc/types"
)

// BooleanOp is the boolean operation to apply between two closed polylines.
type BooleanOp uint8

const (
	// BooleanOr returns the union of the polylines.
	BooleanOr BooleanOp = iota
	// BooleanAnd returns the intersection of the polylines.
	BooleanAnd
	// BooleanNot returns the exclusion of the second polyline from the
	// first.
	BooleanNot
	// BooleanXor returns the symmetric difference of the polylines.
	BooleanXor
)

// String returns the name of the boolean operation.
func (op BooleanOp) String() string {
	switch op {
	case BooleanOr:
		return "Or"
	case BooleanAnd:
		return "And"
	case BooleanNot:
		return "Not"
	default:
		return "Xor"
	}
}

// BooleanResultPline is one of the polylines resulting from a boolean
// operation along with the slices it was stitched from (provenance; empty
// when the result is a whole input polyline).
type BooleanResultPline struct {
	// Pline is the resultant polyline.
	Pline *Polyline
	// SliceIndexes identifies the pruned slices stitched together to form
	// Pline, in stitch order. Indexes refer to the intermediate pruned slice
	// list (pline1 slices, then pline2 slices, then the overlapping slices).
	SliceIndexes []int
}

// BooleanResult holds the polylines resulting from a boolean operation
// between two polylines: positive polylines enclose area, negative polylines
// represent hole area.
type BooleanResult struct {
	PosPlines []BooleanResultPline
	NegPlines []BooleanResultPline
}

// booleanInfo holds the intersect information shared by the boolean
// operations.
type booleanInfo struct {
	overlappingSlices []OverlappingSlice
	intersects        []BasicIntersect
	pline1Orientation types.Orientation
	pline2Orientation types.Orientation
}

func (b *booleanInfo) completelyOverlapping() bool {
	return len(b.overlappingSlices) == 1 && b.overlappingSlices[0].IsLoop
}

func (b *booleanInfo) opposingDirections() bool {
	return b.pline1Orientation != b.pline2Orientation
}

func (b *booleanInfo) anyIntersects() bool {
	return len(b.intersects) != 0 || len(b.overlappingSlices) != 0
}

// processForBoolean finds the intersects between the two polylines and joins
// the overlapping intersects into slices.
func processForBoolean(pline1, pline2 *Polyline, pline1Index *index.Index, posEqualEps float64) booleanInfo {
	intrs := pline1.FindIntersects(pline2,
		options.WithFindIntersectsPline1AABBIndex(pline1Index),
		options.WithFindIntersectsPosEqualEps(posEqualEps))

	overlappingSlices := SortAndJoinOverlappingIntersects(
		intrs.OverlappingIntersects, pline1, pline2, posEqualEps)

	return booleanInfo{
		overlappingSlices: overlappingSlices,
		intersects:        intrs.BasicIntersects,
		pline1Orientation: pline1.Orientation(),
		pline2Orientation: pline2.Orientation(),
	}
}

// slicePoint is a dissection point on a polyline segment; points starting an
// overlapping slice are marked so the dissection skips over the overlap (the
// overlapping slices are included as candidate pieces exactly once,
// separately).
type slicePoint struct {
	pos            point.Point
	isOverlapStart bool
}

// sliceAtIntersects dissects the polyline at all of its intersect points and
// overlap boundaries for a boolean operation.
//
// If useSecondIndex is true the second index of the intersect records
// corresponds to pline, otherwise the first. pointOnSlicePred is evaluated
// on at least one point of each candidate slice; slices failing it are
// discarded. Kept slices are appended to outputSlices as open polylines.
func sliceAtIntersects(
	pline *Polyline,
	info *booleanInfo,
	useSecondIndex bool,
	pointOnSlicePred func(point.Point) bool,
	outputSlices *[]*Polyline,
	posEqualEps float64,
) {
	lookup := rbt.NewWithIntComparator()
	addPoint := func(i int, sp slicePoint) {
		var list []slicePoint
		if v, found := lookup.Get(i); found {
			list = v.([]slicePoint)
		}
		lookup.Put(i, append(list, sp))
	}

	if useSecondIndex {
		for _, intr := range info.intersects {
			addPoint(intr.StartIndex2, slicePoint{pos: intr.Point})
		}
		for _, os := range info.overlappingSlices {
			sp := os.ViewData.UpdatedStart.Pos()
			ep := os.ViewData.EndPoint
			addPoint(os.StartIndexes[1], slicePoint{pos: sp, isOverlapStart: true})
			addPoint(os.EndIndexes[1], slicePoint{pos: ep})
		}
	} else {
		for _, intr := range info.intersects {
			addPoint(intr.StartIndex1, slicePoint{pos: intr.Point})
		}
		for _, os := range info.overlappingSlices {
			sp := os.ViewData.UpdatedStart.Pos()
			ep := os.ViewData.EndPoint
			// overlapping slices are always constructed following pline2's
			// direction, so when pline1 opposes it the slice start becomes
			// the slice end from pline1's perspective
			spIsSliceStart := !os.OpposingDirections
			addPoint(os.StartIndexes[0], slicePoint{pos: sp, isOverlapStart: spIsSliceStart})
			addPoint(os.EndIndexes[0], slicePoint{pos: ep, isOverlapStart: !spIsSliceStart})
		}
	}

	// sort the intersect points on each segment by distance from the segment
	// start vertex
	it := lookup.Iterator()
	for it.Next() {
		i := it.Key().(int)
		list := it.Value().([]slicePoint)
		startPos := pline.At(i).Pos()
		for a := 1; a < len(list); a++ {
			for b := a; b > 0 && startPos.DistanceSquaredToPoint(list[b].pos) < startPos.DistanceSquaredToPoint(list[b-1].pos); b-- {
				list[b], list[b-1] = list[b-1], list[b]
			}
		}
		lookup.Put(i, list)
	}

	getList := func(i int) ([]slicePoint, bool) {
		v, found := lookup.Get(i)
		if !found {
			return nil, false
		}
		return v.([]slicePoint), true
	}

	it = lookup.Iterator()
	for it.Next() {
		startIndex := it.Key().(int)
		intrsList := it.Value().([]slicePoint)

		nextIndex := pline.NextWrappingIndex(startIndex)
		startVertex := pline.At(startIndex)
		endVertex := pline.At(nextIndex)

		if len(intrsList) != 1 {
			// build all the slices between the N intersects on this segment,
			// skipping the slice that starts at the last intersect (walked
			// forward below)
			firstSplit := SegSplitAtPoint(startVertex, endVertex, intrsList[0].pos, posEqualEps)
			prevVertex := firstSplit.SplitVertex
			for i := 1; i < len(intrsList); i++ {
				split := SegSplitAtPoint(prevVertex, endVertex, intrsList[i].pos, posEqualEps)
				prevVertex = split.SplitVertex

				if intrsList[i-1].isOverlapStart {
					// skip over overlapping slices
					continue
				}

				if split.UpdatedStart.Pos().EqEps(split.SplitVertex.Pos(), posEqualEps) {
					// slice end points on top of each other, skip
					continue
				}

				midpoint := SegMidpoint(split.UpdatedStart, split.SplitVertex)
				if !pointOnSlicePred(midpoint) {
					continue
				}

				slice := New()
				slice.AddVertex(split.UpdatedStart)
				slice.AddVertex(split.SplitVertex)
				*outputSlices = append(*outputSlices, slice)
			}
		}

		lastIntr := intrsList[len(intrsList)-1]
		if lastIntr.isOverlapStart {
			// skip over overlapping slices
			continue
		}

		// build the slice from the last intersect on this segment to the
		// next intersect found walking forward
		split := SegSplitAtPoint(startVertex, endVertex, lastIntr.pos, posEqualEps)

		slice := New()
		slice.AddVertex(split.SplitVertex)

		idx := nextIndex
		loopCount := 0
		maxLoopCount := pline.VertexCount()
		for {
			if loopCount > maxLoopCount {
				panic("loop count exceeded maximum while creating slices from intersects")
			}
			loopCount++

			slice.AddOrReplaceVertex(pline.At(idx), posEqualEps)

			// check if the segment starting at the vertex just added has an
			// intersect
			if nextIntrList, ok := getList(idx); ok {
				// slice is done, trim the last added vertex and add the
				// final intersect position
				intersectPoint := nextIntrList[0].pos
				nextIdx := pline.NextWrappingIndex(idx)
				lastV, _ := slice.Last()
				endSplit := SegSplitAtPoint(lastV, pline.At(nextIdx), intersectPoint, posEqualEps)
				slice.SetLast(endSplit.UpdatedStart)
				slice.AddOrReplaceVertex(VertexFromPoint(intersectPoint, 0), posEqualEps)
				break
			}
			idx = pline.NextWrappingIndex(idx)
		}

		// keep the slice if it has real length and its first segment's
		// midpoint passes the predicate
		if slice.VertexCount() > 1 && !slice.At(0).Pos().EqEps(slice.At(1).Pos(), posEqualEps) {
			midpoint := SegMidpoint(slice.At(0), slice.At(1))
			if pointOnSlicePred(midpoint) {
				*outputSlices = append(*outputSlices, slice)
			}
		}
	}
}

// prunedSlices holds the retained slices for a boolean operation, grouped by
// source: pline1 non-overlapping slices first, then pline2 non-overlapping
// slices, then pline1 overlapping slices, then pline2 overlapping slices.
type prunedSlices struct {
	slicesRemaining []*Polyline

	startOfPline2Slices            int
	startOfPline1OverlappingSlices int
	startOfPline2OverlappingSlices int
}

// pruneSlices dissects both polylines at their intersects and retains the
// slices passing the per-op predicates, including the overlapping slices as
// candidate pieces exactly once.
func pruneSlices(
	pline1, pline2 *Polyline,
	info *booleanInfo,
	pline1PointOnSlicePred func(point.Point) bool,
	pline2PointOnSlicePred func(point.Point) bool,
	setOpposingDirection bool,
	posEqualEps float64,
) prunedSlices {
	var result prunedSlices

	sliceAtIntersects(pline1, info, false, pline1PointOnSlicePred, &result.slicesRemaining, posEqualEps)
	result.startOfPline2Slices = len(result.slicesRemaining)

	sliceAtIntersects(pline2, info, true, pline2PointOnSlicePred, &result.slicesRemaining, posEqualEps)
	result.startOfPline1OverlappingSlices = len(result.slicesRemaining)

	// add the pline1-sourced overlapping slices (inverted to match pline1's
	// original orientation when the inputs opposed)
	for _, os := range info.overlappingSlices {
		s := os.ViewData.View(pline2).ToPolyline(posEqualEps)
		if os.OpposingDirections {
			s.InvertDirectionMut()
		}
		result.slicesRemaining = append(result.slicesRemaining, s)
	}
	result.startOfPline2OverlappingSlices = len(result.slicesRemaining)

	// add the pline2-sourced overlapping slices (already oriented as pline2)
	for _, os := range info.overlappingSlices {
		result.slicesRemaining = append(result.slicesRemaining, os.ViewData.View(pline2).ToPolyline(posEqualEps))
	}

	if setOpposingDirection != info.opposingDirections() {
		// invert the pline1 directions to satisfy the requested orientation
		// relationship between the two slice sources
		for _, s := range result.slicesRemaining[:result.startOfPline2Slices] {
			s.InvertDirectionMut()
		}
	}

	return result
}

// stitchSelector decides which slice to stitch onto next when multiple
// candidates share an end point.
type stitchSelector interface {
	// selectSlice returns the index to stitch onto from availableIdx (never
	// empty), or false to discard the current polyline.
	selectSlice(currentSliceIdx int, availableIdx []int) (int, bool)
}

// orAndStitchSelector prefers stitching onto non-overlapping slices from the
// other polyline, then the same polyline, then anything.
type orAndStitchSelector struct {
	startOfPline2Slices            int
	startOfPline1OverlappingSlices int
	startOfPline2OverlappingSlices int
}

func newOrAndStitchSelector(p prunedSlices) orAndStitchSelector {
	return orAndStitchSelector{
		startOfPline2Slices:            p.startOfPline2Slices,
		startOfPline1OverlappingSlices: p.startOfPline1OverlappingSlices,
		startOfPline2OverlappingSlices: p.startOfPline2OverlappingSlices,
	}
}

func (s orAndStitchSelector) isPline2NonOverlapping(i int) bool {
	return i >= s.startOfPline2Slices && i < s.startOfPline1OverlappingSlices
}

func (s orAndStitchSelector) selectSlice(currentSliceIdx int, availableIdx []int) (int, bool) {
	isPline1Idx := currentSliceIdx < s.startOfPline2Slices ||
		(currentSliceIdx >= s.startOfPline1OverlappingSlices && currentSliceIdx < s.startOfPline2OverlappingSlices)

	find := func(pred func(int) bool) (int, bool) {
		for _, i := range availableIdx {
			if pred(i) {
				return i, true
			}
		}
		return 0, false
	}

	if isPline1Idx {
		if i, ok := find(s.isPline2NonOverlapping); ok {
			return i, true
		}
		if i, ok := find(func(i int) bool { return i < s.startOfPline2Slices }); ok {
			return i, true
		}
		return availableIdx[0], true
	}

	if i, ok := find(func(i int) bool { return i < s.startOfPline2Slices }); ok {
		return i, true
	}
	if i, ok := find(s.isPline2NonOverlapping); ok {
		return i, true
	}
	return availableIdx[0], true
}

// notXorStitchSelector crosses between the polylines at each intersection;
// overlapping slices may only connect to non-overlapping slices.
type notXorStitchSelector struct {
	startOfPline2Slices            int
	startOfPline1OverlappingSlices int
	startOfPline2OverlappingSlices int
}

func newNotXorStitchSelector(p prunedSlices) notXorStitchSelector {
	return notXorStitchSelector{
		startOfPline2Slices:            p.startOfPline2Slices,
		startOfPline1OverlappingSlices: p.startOfPline1OverlappingSlices,
		startOfPline2OverlappingSlices: p.startOfPline2OverlappingSlices,
	}
}

func (s notXorStitchSelector) idxForPline1Slice(availableIdx []int) (int, bool) {
	for _, i := range availableIdx {
		if i < s.startOfPline2Slices {
			return i, true
		}
	}
	return 0, false
}

func (s notXorStitchSelector) idxForPline2Slice(availableIdx []int) (int, bool) {
	for _, i := range availableIdx {
		if i >= s.startOfPline2Slices && i < s.startOfPline1OverlappingSlices {
			return i, true
		}
	}
	return 0, false
}

func (s notXorStitchSelector) selectSlice(currentSliceIdx int, availableIdx []int) (int, bool) {
	if currentSliceIdx >= s.startOfPline1OverlappingSlices {
		// current slice is overlapping; stitching overlapping onto
		// overlapping is never valid
		if currentSliceIdx < s.startOfPline2OverlappingSlices {
			// overlapping slice from pline1
			if i, ok := s.idxForPline2Slice(availableIdx); ok {
				return i, true
			}
			return s.idxForPline1Slice(availableIdx)
		}
		// overlapping slice from pline2
		if i, ok := s.idxForPline1Slice(availableIdx); ok {
			return i, true
		}
		return s.idxForPline2Slice(availableIdx)
	}

	if currentSliceIdx < s.startOfPline2Slices {
		// current slice from pline1, cross to pline2 when possible
		if i, ok := s.idxForPline2Slice(availableIdx); ok {
			return i, true
		}
		return availableIdx[0], true
	}

	// current slice from pline2, cross to pline1 when possible
	if i, ok := s.idxForPline1Slice(availableIdx); ok {
		return i, true
	}
	return availableIdx[0], true
}

// stitchedPline pairs a stitched closed polyline with the slice indexes that
// formed it.
type stitchedPline struct {
	pline        *Polyline
	sliceIndexes []int
}

// stitchSlicesIntoClosedPlines stitches the open slices together end to end
// into closed polylines. The slices must agree on direction (every start
// point connects with an end point); selector decides priority when multiple
// stitch candidates exist.
func stitchSlicesIntoClosedPlines(slices []*Polyline, selector stitchSelector, sliceJoinEps float64) []stitchedPline {
	var result []stitchedPline
	if len(slices) == 0 {
		return result
	}

	// load all the slice start points into a spatial index, each box grown
	// by the join epsilon
	startIndex := index.New()
	for i, slice := range slices {
		startIndex.Insert(aabbAroundPoint(slice.At(0).Pos(), sliceJoinEps), i)
	}

	visited := make([]bool, len(slices))
	var queryResults []int

	for i := range slices {
		if visited[i] {
			continue
		}
		visited[i] = true

		currentPline := CreateFrom(slices[i])
		sliceIndexes := []int{i}

		beginningSliceIdx := i
		currentSliceIdx := i
		loopCount := 0
		maxLoopCount := len(slices)
		for {
			if loopCount > maxLoopCount {
				panic("loop count exceeded maximum while creating closed polylines from slices")
			}
			loopCount++

			queryResults = queryResults[:0]
			lastV, _ := currentPline.Last()
			startIndex.VisitQuery(aabbAroundPoint(lastV.Pos(), sliceJoinEps), func(idx int) bool {
				if idx == beginningSliceIdx || !visited[idx] {
					queryResults = append(queryResults, idx)
				}
				return true
			})

			if len(queryResults) == 0 {
				// may arrive here due to epsilon thresholds around
				// overlapping segments, discard the polyline
				break
			}

			connectedIdx, ok := selector.selectSlice(currentSliceIdx, queryResults)
			if !ok {
				// discard the current polyline
				break
			}

			if connectedIdx == beginningSliceIdx {
				// connected back to the beginning, close and emit
				if currentPline.VertexCount() >= 3 {
					currentPline.RemoveLast()
					currentPline.SetIsClosed(true)
					result = append(result, stitchedPline{pline: currentPline, sliceIndexes: sliceIndexes})
				}
				break
			}

			currentPline.RemoveLast()
			currentPline.Extend(slices[connectedIdx])
			visited[connectedIdx] = true
			sliceIndexes = append(sliceIndexes, connectedIdx)
			currentSliceIdx = connectedIdx
		}
	}

	return result
}

// Contains determines the containment relationship between this closed
// polyline and another closed polyline.
//
// Returns [types.RelationshipIntersection] when the polylines intersect,
// [types.RelationshipEqual] when they completely overlap,
// [types.RelationshipContains] when the other polyline is fully inside this
// one, [types.RelationshipContainedBy] when this polyline is fully inside
// the other, and [types.RelationshipDisjoint] otherwise.
//
// Self intersecting polylines may generate unexpected results; use
// [Polyline.ScanForSelfIntersect] to detect and reject them when that is a
// possibility for the input data.
func (p *Polyline) Contains(other *Polyline, opts ...options.BooleanOptionFunc) types.Relationship {
	o := options.NewBooleanOptions(opts...)

	if p.VertexCount() < 2 || other.VertexCount() < 2 {
		return types.RelationshipDisjoint
	}

	pline1Index := o.Pline1AABBIndex
	if pline1Index == nil {
		pline1Index = p.CreateApproxAABBIndex()
	}

	info := processForBoolean(p, other, pline1Index, o.PosEqualEps)
	if info.completelyOverlapping() {
		return types.RelationshipEqual
	}
	if info.anyIntersects() {
		return types.RelationshipIntersection
	}

	if other.WindingNumber(p.At(0).Pos()) != 0 {
		return types.RelationshipContainedBy
	}
	if p.WindingNumber(other.At(0).Pos()) != 0 {
		return types.RelationshipContains
	}
	return types.RelationshipDisjoint
}

// Boolean performs the boolean operation between this polyline (pline1) and
// another (pline2). Both polylines are assumed to be closed and free of self
// intersections.
//
// The result's positive polylines enclose area and the negative polylines
// represent hole area; each result polyline carries the indexes of the
// slices it was stitched from.
func (p *Polyline) Boolean(other *Polyline, op BooleanOp, opts ...options.BooleanOptionFunc) BooleanResult {
	o := options.NewBooleanOptions(opts...)

	var result BooleanResult
	if p.VertexCount() < 2 {
		return result
	}

	pline1Index := o.Pline1AABBIndex
	if pline1Index == nil {
		pline1Index = p.CreateApproxAABBIndex()
	}

	info := processForBoolean(p, other, pline1Index, o.PosEqualEps)

	pointInPline1 := func(pt point.Point) bool { return p.WindingNumber(pt) != 0 }
	pointInPline2 := func(pt point.Point) bool { return other.WindingNumber(pt) != 0 }
	notInPline1 := func(pt point.Point) bool { return !pointInPline1(pt) }
	notInPline2 := func(pt point.Point) bool { return !pointInPline2(pt) }

	// containment checks used when there are no intersects at all
	isPline1InPline2 := func() bool { return pointInPline2(p.At(0).Pos()) }
	isPline2InPline1 := func() bool { return pointInPline1(other.At(0).Pos()) }

	// whole-polyline results start without user data; the user data of both
	// inputs is assigned to every result below
	wholePline := func(src *Polyline) BooleanResultPline {
		pl := CreateFrom(src)
		pl.SetUserDataValues(nil)
		return BooleanResultPline{Pline: pl}
	}

	// invertedHole returns a copy of src direction-inverted so the hole
	// boundary orientation opposes the enclosing area boundary
	invertedHole := func(src *Polyline, outer *Polyline) BooleanResultPline {
		pl := CreateFrom(src)
		pl.SetUserDataValues(nil)
		if pl.Orientation() == outer.Orientation() {
			pl.InvertDirectionMut()
		}
		return BooleanResultPline{Pline: pl}
	}

	stitchAndCollect := func(pruned prunedSlices, selector stitchSelector) []stitchedPline {
		return stitchSlicesIntoClosedPlines(pruned.slicesRemaining, selector, o.SliceJoinEps)
	}

	switch op {
	case BooleanOr:
		switch {
		case info.completelyOverlapping():
			result.PosPlines = append(result.PosPlines, wholePline(other))
		case !info.anyIntersects():
			if isPline1InPline2() {
				result.PosPlines = append(result.PosPlines, wholePline(other))
			} else if isPline2InPline1() {
				result.PosPlines = append(result.PosPlines, wholePline(p))
			} else {
				result.PosPlines = append(result.PosPlines, wholePline(p), wholePline(other))
			}
		default:
			// keep the pieces of each polyline that are outside the other
			pruned := pruneSlices(p, other, &info, notInPline2, notInPline1, false, o.PosEqualEps)
			remaining := stitchAndCollect(pruned, newOrAndStitchSelector(pruned))
			for _, sp := range remaining {
				if sp.pline.Orientation() != info.pline2Orientation {
					// orientation inverted from the original, the pline
					// represents hole area
					result.NegPlines = append(result.NegPlines,
						BooleanResultPline{Pline: sp.pline, SliceIndexes: sp.sliceIndexes})
				} else {
					result.PosPlines = append(result.PosPlines,
						BooleanResultPline{Pline: sp.pline, SliceIndexes: sp.sliceIndexes})
				}
			}
		}

	case BooleanAnd:
		switch {
		case info.completelyOverlapping():
			result.PosPlines = append(result.PosPlines, wholePline(other))
		case !info.anyIntersects():
			if isPline1InPline2() {
				result.PosPlines = append(result.PosPlines, wholePline(p))
			} else if isPline2InPline1() {
				result.PosPlines = append(result.PosPlines, wholePline(other))
			}
			// else disjoint, nothing remains
		default:
			// keep the pieces of each polyline that are inside the other
			pruned := pruneSlices(p, other, &info, pointInPline2, pointInPline1, false, o.PosEqualEps)
			remaining := stitchAndCollect(pruned, newOrAndStitchSelector(pruned))
			for _, sp := range remaining {
				result.PosPlines = append(result.PosPlines,
					BooleanResultPline{Pline: sp.pline, SliceIndexes: sp.sliceIndexes})
			}
		}

	case BooleanNot:
		switch {
		case info.completelyOverlapping():
			// completely overlapping, nothing is left
		case !info.anyIntersects():
			if isPline1InPline2() {
				// everything is subtracted, nothing left
			} else if isPline2InPline1() {
				// hole island created inside pline1
				result.PosPlines = append(result.PosPlines, wholePline(p))
				result.NegPlines = append(result.NegPlines, invertedHole(other, p))
			} else {
				// disjoint
				result.PosPlines = append(result.PosPlines, wholePline(p))
			}
		default:
			// keep the pieces of pline1 outside pline2 and the pieces of
			// pline2 inside pline1 (the latter forming the subtracted
			// boundary)
			pruned := pruneSlices(p, other, &info, notInPline2, pointInPline1, true, o.PosEqualEps)
			remaining := stitchAndCollect(pruned, newNotXorStitchSelector(pruned))
			for _, sp := range remaining {
				result.PosPlines = append(result.PosPlines,
					BooleanResultPline{Pline: sp.pline, SliceIndexes: sp.sliceIndexes})
			}
		}

	default: // BooleanXor
		switch {
		case info.completelyOverlapping():
			// completely overlapping, nothing is left
		case !info.anyIntersects():
			if isPline1InPline2() {
				result.PosPlines = append(result.PosPlines, wholePline(other))
				result.NegPlines = append(result.NegPlines, invertedHole(p, other))
			} else if isPline2InPline1() {
				result.PosPlines = append(result.PosPlines, wholePline(p))
				result.NegPlines = append(result.NegPlines, invertedHole(other, p))
			} else {
				// disjoint
				result.PosPlines = append(result.PosPlines, wholePline(p), wholePline(other))
			}
		default:
			// XOR is the two NOT directions combined
			{
				pruned := pruneSlices(p, other, &info, notInPline2, pointInPline1, true, o.PosEqualEps)
				remaining := stitchAndCollect(pruned, newNotXorStitchSelector(pruned))
				for _, sp := range remaining {
					result.PosPlines = append(result.PosPlines,
						BooleanResultPline{Pline: sp.pline, SliceIndexes: sp.sliceIndexes})
				}
			}
			{
				pruned := pruneSlices(p, other, &info, pointInPline2, notInPline1, true, o.PosEqualEps)
				remaining := stitchAndCollect(pruned, newNotXorStitchSelector(pruned))
				for _, sp := range remaining {
					result.PosPlines = append(result.PosPlines,
						BooleanResultPline{Pline: sp.pline, SliceIndexes: sp.sliceIndexes})
				}
			}
		}
	}

	// boolean results inherit the user data of both inputs
	for _, rp := range result.PosPlines {
		rp.Pline.AddUserDataValues(p.UserDataValues())
		rp.Pline.AddUserDataValues(other.UserDataValues())
	}
	for _, rp := range result.NegPlines {
		rp.Pline.AddUserDataValues(p.UserDataValues())
		rp.Pline.AddUserDataValues(other.UserDataValues())
	}

	return result
}
