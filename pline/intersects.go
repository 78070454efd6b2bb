package pline

import (
	"sort"

	"github.com/google/btree"
	"github.com/mikenye/polyarc/index"
	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/options"
	"github.com/mikenye/polyarc/point"
)

// BasicIntersect represents a polyline intersect at a single point.
type BasicIntersect struct {
	// StartIndex1 is the starting vertex index of the first polyline segment
	// involved in the intersect.
	StartIndex1 int
	// StartIndex2 is the starting vertex index of the second polyline
	// segment involved in the intersect.
	StartIndex2 int
	// Point at which the intersect occurs.
	Point point.Point
}

// OverlappingIntersect represents an overlapping polyline intersect spanning
// between two points.
type OverlappingIntersect struct {
	// StartIndex1 is the starting vertex index of the first polyline segment
	// involved in the intersect.
	StartIndex1 int
	// StartIndex2 is the starting vertex index of the second polyline
	// segment involved in the intersect.
	StartIndex2 int
	// Point1 is the overlap end point closest to the second segment's start.
	Point1 point.Point
	// Point2 is the overlap end point furthest from the second segment's
	// start.
	Point2 point.Point
}

// IntersectKind tags an [Intersect] as basic or overlapping.
type IntersectKind uint8

const (
	// IntersectBasic is an intersect at a single point.
	IntersectBasic IntersectKind = iota
	// IntersectOverlapping is an intersect overlapping between two points.
	IntersectOverlapping
)

// Intersect is a tagged union of a basic or overlapping polyline intersect
// delivered to visitor callbacks.
type Intersect struct {
	Kind        IntersectKind
	StartIndex1 int
	StartIndex2 int
	// Point1 holds the intersect point for basic intersects and the overlap
	// start (closest to the second segment's start) for overlapping
	// intersects.
	Point1 point.Point
	// Point2 holds the overlap end for overlapping intersects.
	Point2 point.Point
}

// IntersectsCollection accumulates the basic and overlapping intersects
// found between polylines.
type IntersectsCollection struct {
	BasicIntersects       []BasicIntersect
	OverlappingIntersects []OverlappingIntersect
}

// visitLocalSelfIntersects visits intersects between adjacent polyline
// segments. The visitor returns false to stop visiting.
func visitLocalSelfIntersects(p *Polyline, visit func(Intersect) bool, posEqualEps float64) bool {
	vc := p.VertexCount()
	if vc < 2 {
		return true
	}

	if vc == 2 {
		if p.IsClosed() && numeric.FloatEquals(p.At(0).Bulge(), -p.At(1).Bulge(), numeric.DefaultEpsilon) {
			// closed two vertex polyline that overlaps itself
			return visit(Intersect{
				Kind:        IntersectOverlapping,
				StartIndex1: 0,
				StartIndex2: 1,
				Point1:      p.At(0).Pos(),
				Point2:      p.At(1).Pos(),
			})
		}
		return true
	}

	visitIndexes := func(i, j, k int) bool {
		v1 := p.At(i)
		v2 := p.At(j)
		v3 := p.At(k)

		// testing for intersects between the v1->v2 and v2->v3 segments
		if v1.Pos().EqEps(v2.Pos(), posEqualEps) {
			// singularity
			return visit(Intersect{
				Kind:        IntersectOverlapping,
				StartIndex1: i,
				StartIndex2: j,
				Point1:      v1.Pos(),
				Point2:      v2.Pos(),
			})
		}

		switch r := IntersectSegs(v1, v2, v2, v3, posEqualEps); r.Kind {
		case SegIntrNone:
			return true
		case SegIntrTangent, SegIntrOne:
			if !r.Point1.EqEps(v2.Pos(), posEqualEps) {
				return visit(Intersect{Kind: IntersectBasic, StartIndex1: i, StartIndex2: j, Point1: r.Point1})
			}
			return true
		case SegIntrTwo:
			if !r.Point1.EqEps(v2.Pos(), posEqualEps) {
				if !visit(Intersect{Kind: IntersectBasic, StartIndex1: i, StartIndex2: j, Point1: r.Point1}) {
					return false
				}
			}
			if !r.Point2.EqEps(v2.Pos(), posEqualEps) {
				return visit(Intersect{Kind: IntersectBasic, StartIndex1: i, StartIndex2: j, Point1: r.Point2})
			}
			return true
		default:
			return visit(Intersect{
				Kind:        IntersectOverlapping,
				StartIndex1: i,
				StartIndex2: j,
				Point1:      r.Point1,
				Point2:      r.Point2,
			})
		}
	}

	for i := 2; i < vc; i++ {
		if !visitIndexes(i-2, i-1, i) {
			return false
		}
	}

	if p.IsClosed() {
		// intersects between segments at indexes 0->1 up to
		// (vc-2)->(vc-1) have been tested, finish with the wrap pairs
		// [(vc-2)->(vc-1), (vc-1)->0] and [(vc-1)->0, 0->1]
		if !visitIndexes(vc-2, vc-1, 0) {
			return false
		}
		if !visitIndexes(vc-1, 0, 1) {
			return false
		}
	}
	return true
}

// segIndexPair is an ordered pair of segment indexes used to deduplicate
// visits in the global self intersect scan.
type segIndexPair struct {
	first  int
	second int
}

func segIndexPairLess(a, b segIndexPair) bool {
	if a.first != b.first {
		return a.first < b.first
	}
	return a.second < b.second
}

// visitGlobalSelfIntersects visits intersects between non-adjacent polyline
// segments using the spatial index for the broad phase. The visitor returns
// false to stop visiting.
func visitGlobalSelfIntersects(p *Polyline, ix *index.Index, visit func(Intersect) bool, posEqualEps float64) bool {
	vc := p.VertexCount()
	if vc < 3 {
		return true
	}

	visitedPairs := btree.NewG(8, segIndexPairLess)
	fuzz := numeric.DefaultEpsilon

	keepGoing := true
	for i, j := range p.IterSegmentIndexes() {
		v1 := p.At(i)
		v2 := p.At(j)

		queryBox := SegFastApproxBoundingBox(v1, v2).Expand(fuzz)
		ix.VisitQuery(queryBox, func(hitI int) bool {
			hitJ := p.NextWrappingIndex(hitI)
			// skip local (adjacent or identical) segments
			if i == hitI || i == hitJ || j == hitI || j == hitJ {
				return true
			}

			// skip already visited pairs (reversed pair order for lookup so
			// each unordered pair is visited once)
			if visitedPairs.Has(segIndexPair{first: hitI, second: i}) {
				return true
			}
			visitedPairs.ReplaceOrInsert(segIndexPair{first: i, second: hitI})

			u1 := p.At(hitI)
			u2 := p.At(hitJ)
			skipIntrAtEnd := func(intr point.Point) bool {
				// skip an intersect at the end point of both segments since
				// it will be found again by another segment with the
				// intersect at its start point
				return v2.Pos().EqEps(intr, posEqualEps) && u2.Pos().EqEps(intr, posEqualEps)
			}

			switch r := IntersectSegs(v1, v2, u1, u2, posEqualEps); r.Kind {
			case SegIntrNone:
			case SegIntrTangent, SegIntrOne:
				if !skipIntrAtEnd(r.Point1) {
					keepGoing = visit(Intersect{Kind: IntersectBasic, StartIndex1: i, StartIndex2: hitI, Point1: r.Point1})
				}
			case SegIntrTwo:
				if !skipIntrAtEnd(r.Point1) {
					keepGoing = visit(Intersect{Kind: IntersectBasic, StartIndex1: i, StartIndex2: hitI, Point1: r.Point1})
				}
				if keepGoing && !skipIntrAtEnd(r.Point2) {
					keepGoing = visit(Intersect{Kind: IntersectBasic, StartIndex1: i, StartIndex2: hitI, Point1: r.Point2})
				}
			default:
				if !skipIntrAtEnd(r.Point1) {
					keepGoing = visit(Intersect{
						Kind:        IntersectOverlapping,
						StartIndex1: i,
						StartIndex2: hitI,
						Point1:      r.Point1,
						Point2:      r.Point2,
					})
				}
			}

			return keepGoing
		})

		if !keepGoing {
			return false
		}
	}

	return true
}

// VisitSelfIntersects visits the self intersects of the polyline, local
// (adjacent segments) and/or global (non-adjacent segments) according to the
// options. The visitor returns false to stop visiting.
func (p *Polyline) VisitSelfIntersects(visit func(Intersect) bool, opts ...options.SelfIntersectOptionFunc) {
	o := options.NewSelfIntersectOptions(opts...)

	if o.Include != options.SelfIntersectsGlobal {
		if !visitLocalSelfIntersects(p, visit, o.PosEqualEps) {
			return
		}
	}

	if o.Include != options.SelfIntersectsLocal {
		ix := o.AABBIndex
		if ix == nil {
			ix = p.CreateApproxAABBIndex()
		}
		visitGlobalSelfIntersects(p, ix, visit, o.PosEqualEps)
	}
}

// ScanForSelfIntersect reports whether the polyline has any self intersect,
// stopping at the first one found.
func (p *Polyline) ScanForSelfIntersect(opts ...options.SelfIntersectOptionFunc) bool {
	found := false
	p.VisitSelfIntersects(func(Intersect) bool {
		found = true
		return false
	}, opts...)
	return found
}

// allSelfIntersectsAsBasic finds all self intersects of the polyline,
// reporting overlapping intersects as basic intersects at each overlap end
// point.
func allSelfIntersectsAsBasic(p *Polyline, ix *index.Index, posEqualEps float64) []BasicIntersect {
	var intrs []BasicIntersect
	collect := func(intr Intersect) bool {
		if intr.Kind == IntersectBasic {
			intrs = append(intrs, BasicIntersect{
				StartIndex1: intr.StartIndex1,
				StartIndex2: intr.StartIndex2,
				Point:       intr.Point1,
			})
			return true
		}
		intrs = append(intrs,
			BasicIntersect{StartIndex1: intr.StartIndex1, StartIndex2: intr.StartIndex2, Point: intr.Point1},
			BasicIntersect{StartIndex1: intr.StartIndex1, StartIndex2: intr.StartIndex2, Point: intr.Point2},
		)
		return true
	}

	visitLocalSelfIntersects(p, collect, posEqualEps)
	visitGlobalSelfIntersects(p, ix, collect, posEqualEps)
	return intrs
}

// FindIntersects finds all intersects between this polyline and another.
//
// For overlapping intersects Point1 is always closest to the start of the
// second polyline's segment. When two intersects occur on one segment they
// are reported in order of distance from the second segment's start. An
// intersect at the very start of a segment is recorded with that segment's
// start vertex index, unless the polyline is open and the intersect is at
// the very end of the polyline.
func (p *Polyline) FindIntersects(other *Polyline, opts ...options.FindIntersectsOptionFunc) IntersectsCollection {
	o := options.NewFindIntersectsOptions(opts...)

	var result IntersectsCollection
	if p.VertexCount() < 2 || other.VertexCount() < 2 {
		return result
	}

	posEqualEps := o.PosEqualEps
	pline1Index := o.Pline1AABBIndex
	if pline1Index == nil {
		pline1Index = p.CreateApproxAABBIndex()
	}

	// sets used to track possible duplicate intersects recorded due to
	// overlapping segments
	possibleDuplicates1 := make(map[int]struct{})
	possibleDuplicates2 := make(map[int]struct{})

	// last segment starting indexes for open polylines (used when skipping
	// intersects at segment end points)
	open1LastIdx := p.VertexCount() - 2
	open2LastIdx := other.VertexCount() - 2

	fuzz := numeric.DefaultEpsilon
	for i2, j2 := range other.IterSegmentIndexes() {
		p2v1 := other.At(i2)
		p2v2 := other.At(j2)

		queryBox := SegFastApproxBoundingBox(p2v1, p2v2).Expand(fuzz)
		pline1Index.VisitQuery(queryBox, func(i1 int) bool {
			j1 := p.NextWrappingIndex(i1)
			p1v1 := p.At(i1)
			p1v2 := p.At(j1)

			skipIntrAtEnd := func(intr point.Point) bool {
				// skip an intersect at a segment end point since it will be
				// found again by the segment starting there (unless the
				// polyline is open and this is the very end of the polyline)
				return (p1v2.Pos().EqEps(intr, posEqualEps) && (p.IsClosed() || i1 != open1LastIdx)) ||
					(p2v2.Pos().EqEps(intr, posEqualEps) && (other.IsClosed() || i2 != open2LastIdx))
			}

			switch r := IntersectSegs(p1v1, p1v2, p2v1, p2v2, posEqualEps); r.Kind {
			case SegIntrNone:
			case SegIntrTangent, SegIntrOne:
				if !skipIntrAtEnd(r.Point1) {
					result.BasicIntersects = append(result.BasicIntersects,
						BasicIntersect{StartIndex1: i1, StartIndex2: i2, Point: r.Point1})
				}
			case SegIntrTwo:
				if !skipIntrAtEnd(r.Point1) {
					result.BasicIntersects = append(result.BasicIntersects,
						BasicIntersect{StartIndex1: i1, StartIndex2: i2, Point: r.Point1})
				}
				if !skipIntrAtEnd(r.Point2) {
					result.BasicIntersects = append(result.BasicIntersects,
						BasicIntersect{StartIndex1: i1, StartIndex2: i2, Point: r.Point2})
				}
			default:
				result.OverlappingIntersects = append(result.OverlappingIntersects,
					OverlappingIntersect{StartIndex1: i1, StartIndex2: i2, Point1: r.Point1, Point2: r.Point2})

				// record segment start vertexes hit by the overlap end points
				// so basic intersects coinciding with them can be removed
				if p1v2.Pos().EqEps(r.Point1, posEqualEps) || p1v2.Pos().EqEps(r.Point2, posEqualEps) {
					possibleDuplicates1[p.NextWrappingIndex(i1)] = struct{}{}
				}
				if p2v2.Pos().EqEps(r.Point1, posEqualEps) || p2v2.Pos().EqEps(r.Point2, posEqualEps) {
					possibleDuplicates2[other.NextWrappingIndex(i2)] = struct{}{}
				}
			}
			return true
		})
	}

	if len(possibleDuplicates1) == 0 && len(possibleDuplicates2) == 0 {
		return result
	}

	// remove basic intersects duplicated by overlap end points
	finalBasic := result.BasicIntersects[:0]
	for _, intr := range result.BasicIntersects {
		if _, ok := possibleDuplicates1[intr.StartIndex1]; ok {
			if intr.Point.EqEps(p.At(intr.StartIndex1).Pos(), posEqualEps) {
				continue
			}
		}
		if _, ok := possibleDuplicates2[intr.StartIndex2]; ok {
			if intr.Point.EqEps(other.At(intr.StartIndex2).Pos(), posEqualEps) {
				continue
			}
		}
		finalBasic = append(finalBasic, intr)
	}
	result.BasicIntersects = finalBasic
	return result
}

// OverlappingSlice represents an open polyline slice along which two
// polylines overlapped across one or more segments. The slice's view data is
// defined over the second polyline.
type OverlappingSlice struct {
	// StartIndexes holds the slice's starting segment indexes according to
	// the original polylines that overlapped (first, second).
	StartIndexes [2]int
	// EndIndexes holds the slice's ending segment indexes according to the
	// original polylines that overlapped (first, second).
	EndIndexes [2]int
	// ViewData selects the slice over the second polyline.
	ViewData ViewData
	// IsLoop is true when the overlapping slice forms a closed loop on
	// itself.
	IsLoop bool
	// OpposingDirections is true when the overlapping slice was formed by
	// segments with opposing directions.
	OpposingDirections bool
}

// newOverlappingSlice builds an overlapping slice from a run of joined
// overlapping intersects. endIntr is nil when the slice is built from a
// single overlapping intersect.
func newOverlappingSlice(pline1, pline2 *Polyline, startIntr OverlappingIntersect, endIntr *OverlappingIntersect, posEqualEps float64) OverlappingSlice {
	startV1 := pline1.At(startIntr.StartIndex1)
	startV2 := pline1.At(pline1.NextWrappingIndex(startIntr.StartIndex1))
	startU1 := pline2.At(startIntr.StartIndex2)
	startU2 := pline2.At(pline2.NextWrappingIndex(startIntr.StartIndex2))

	// the tangent vectors are either going the same or the opposite
	// direction, the dot product sign decides which
	t1 := SegTangentVector(startV1, startV2, startIntr.Point1)
	t2 := SegTangentVector(startU1, startU2, startIntr.Point1)
	opposingDirections := t1.DotProduct(t2) < 0

	startIndexes := [2]int{startIntr.StartIndex1, startIntr.StartIndex2}

	createUpdatedStart := func(endPoint point.Point) Vertex {
		// updated start positioned at point1 with the bulge required to
		// form the subsegment ending at endPoint
		split1 := SegSplitAtPoint(startU1, startU2, startIntr.Point1, posEqualEps)
		split2 := SegSplitAtPoint(split1.SplitVertex, startU2, endPoint, posEqualEps)
		return split2.UpdatedStart
	}

	if endIntr == nil {
		// slice created from a single overlapping intersect
		updatedStart := createUpdatedStart(startIntr.Point2)
		return OverlappingSlice{
			StartIndexes: startIndexes,
			EndIndexes:   startIndexes,
			ViewData: ViewData{
				StartIndex:      startIntr.StartIndex2,
				EndIndexOffset:  0,
				UpdatedStart:    updatedStart,
				UpdatedEndBulge: updatedStart.Bulge(),
				EndPoint:        startIntr.Point2,
			},
			OpposingDirections: opposingDirections,
		}
	}

	if endIntr.Point2.EqEps(startIntr.Point1, posEqualEps) {
		// slice forms a closed loop
		last, _ := pline2.Last()
		return OverlappingSlice{
			StartIndexes: startIndexes,
			EndIndexes:   startIndexes,
			ViewData: ViewData{
				StartIndex:      startIntr.StartIndex2,
				EndIndexOffset:  pline2.VertexCount() - 1,
				UpdatedStart:    startU1,
				UpdatedEndBulge: last.Bulge(),
				EndPoint:        endIntr.Point2,
			},
			IsLoop:             true,
			OpposingDirections: opposingDirections,
		}
	}

	endPoint := endIntr.Point2
	endIndexes := [2]int{endIntr.StartIndex1, endIntr.StartIndex2}
	endIndexOffset := pline2.FwdWrappingDist(startIndexes[1], endIntr.StartIndex2)

	if startIntr.StartIndex2 == endIntr.StartIndex2 {
		// slice is all on one pline2 segment
		updatedStart := createUpdatedStart(endIntr.Point2)
		return OverlappingSlice{
			StartIndexes: startIndexes,
			EndIndexes:   endIndexes,
			ViewData: ViewData{
				StartIndex:      startIntr.StartIndex2,
				EndIndexOffset:  endIndexOffset,
				UpdatedStart:    updatedStart,
				UpdatedEndBulge: updatedStart.Bulge(),
				EndPoint:        endPoint,
			},
			OpposingDirections: opposingDirections,
		}
	}

	// slice spans multiple pline2 segments: updated start positioned at
	// startIntr.Point1 connecting toward startU2, updated end trimmed at
	// endIntr.Point1 connecting to endIntr.Point2
	split1 := SegSplitAtPoint(startU1, startU2, startIntr.Point1, posEqualEps)
	updatedStart := split1.SplitVertex

	endU1 := pline2.At(endIntr.StartIndex2)
	endU2 := pline2.At(pline2.NextWrappingIndex(endIntr.StartIndex2))
	endSplit1 := SegSplitAtPoint(endU1, endU2, endIntr.Point1, posEqualEps)
	endSplit2 := SegSplitAtPoint(endSplit1.SplitVertex, endU2, endIntr.Point2, posEqualEps)
	updatedEnd := endSplit2.UpdatedStart

	return OverlappingSlice{
		StartIndexes: startIndexes,
		EndIndexes:   endIndexes,
		ViewData: ViewData{
			StartIndex:      startIntr.StartIndex2,
			EndIndexOffset:  endIndexOffset,
			UpdatedStart:    updatedStart,
			UpdatedEndBulge: updatedEnd.Bulge(),
			EndPoint:        endPoint,
		},
		OpposingDirections: opposingDirections,
	}
}

// SortAndJoinOverlappingIntersects sorts the overlapping intersects given
// according to pline2's direction and vertex indexes and joins runs of
// connected overlapping intersects into slices.
//
// Assumes the intersects follow the convention that Point1 is closest to
// pline2's segment start and Point2 furthest from it.
func SortAndJoinOverlappingIntersects(intersects []OverlappingIntersect, pline1, pline2 *Polyline, posEqualEps float64) []OverlappingSlice {
	var result []OverlappingSlice
	if len(intersects) == 0 {
		return result
	}

	// sort the intersects according to pline2's direction (the points within
	// each intersect are already sorted with Point1 closer to the segment
	// start than Point2)
	sort.SliceStable(intersects, func(a, b int) bool {
		ia, ib := intersects[a], intersects[b]
		if ia.StartIndex2 != ib.StartIndex2 {
			return ia.StartIndex2 < ib.StartIndex2
		}
		start := pline2.At(ia.StartIndex2).Pos()
		return start.DistanceSquaredToPoint(ia.Point1) < start.DistanceSquaredToPoint(ib.Point1)
	})

	startIntr := intersects[0]
	var endIntr *OverlappingIntersect
	currentEndPoint := startIntr.Point2

	for idx := 1; idx < len(intersects); idx++ {
		intr := intersects[idx]
		if !intr.Point1.EqEps(currentEndPoint, posEqualEps) {
			// intr does not join with the previous intr, cap off the slice
			result = append(result, newOverlappingSlice(pline1, pline2, startIntr, endIntr, posEqualEps))
			startIntr = intr
			endIntr = nil
		} else {
			intrCopy := intr
			endIntr = &intrCopy
		}
		currentEndPoint = intr.Point2
	}

	// cap off the final slice
	result = append(result, newOverlappingSlice(pline1, pline2, startIntr, endIntr, posEqualEps))

	if len(result) > 1 {
		// check if the last overlapping slice connects with the first
		lastSlice := result[len(result)-1]
		firstSliceBegin := result[0].ViewData.UpdatedStart.Pos()
		if lastSlice.ViewData.EndPoint.EqEps(firstSliceBegin, posEqualEps) {
			// join them by updating the first slice and removing the last
			result = result[:len(result)-1]
			first := &result[0]
			first.StartIndexes = lastSlice.StartIndexes
			first.ViewData.StartIndex = lastSlice.ViewData.StartIndex
			first.ViewData.UpdatedStart = lastSlice.ViewData.UpdatedStart
			first.ViewData.EndIndexOffset += lastSlice.ViewData.EndIndexOffset

			if lastSlice.ViewData.EndPoint.EqEps(pline2.At(0).Pos(), posEqualEps) {
				// add one to the offset to capture pline2's first vertex (it
				// sits at the point of connection)
				first.ViewData.EndIndexOffset++
			}
		}
	}

	return result
}
