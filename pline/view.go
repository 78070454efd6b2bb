package pline

import (
	"fmt"
	"iter"

	"github.com/mikenye/polyarc/numeric"
	"github.com/mikenye/polyarc/point"
)

// ViewData holds the minimum data required to describe a contiguous subpart
// (slice) of a source polyline without copying it.
//
// A ViewData is detached from any polyline; calling [ViewData.View] with the
// source forms an active [View] to iterate over or operate on. A view always
// represents an open polyline even when sourced from a closed one.
type ViewData struct {
	// StartIndex is the source polyline segment index the view starts on.
	StartIndex int

	// EndIndexOffset is the forward wrapping offset from StartIndex to reach
	// the last source segment index included in the view.
	EndIndexOffset int

	// UpdatedStart is the first vertex of the view (positioned somewhere
	// along the StartIndex segment with position and bulge updated).
	UpdatedStart Vertex

	// UpdatedEndBulge is the bulge to be used in place of the final included
	// source vertex's bulge (possibly trimmed).
	UpdatedEndBulge float64

	// EndPoint is the final point of the view.
	EndPoint point.Point

	// InvertedDirection indicates the view walks the source polyline
	// backward with every returned bulge negated. All the other fields stay
	// defined in terms of the forward direction.
	InvertedDirection bool
}

// View pairs view data with its source polyline, exposing the read-only
// polyline interface over the selected subrange without copying.
type View struct {
	Source *Polyline
	Data   ViewData
}

// View forms an active view over the source polyline given.
func (d ViewData) View(source *Polyline) View {
	return View{Source: source, Data: d}
}

// Invert returns the view data with its direction flag flipped.
func (d ViewData) Invert() ViewData {
	d.InvertedDirection = !d.InvertedDirection
	return d
}

// VertexCount returns the number of vertexes the view projects.
func (d ViewData) VertexCount() int {
	return d.EndIndexOffset + 2
}

// vertex synthesizes the vertex at the view index given, reading source
// vertexes on demand. Returns false when the index is out of range.
func (d ViewData) vertex(source *Polyline, i int) (Vertex, bool) {
	if i < 0 || i >= d.VertexCount() {
		return Vertex{}, false
	}

	if d.InvertedDirection {
		// walk the selected range backward negating bulges: index 0 is the
		// end point carrying the negated updated end bulge, the final index
		// is the updated start position with zero bulge
		switch {
		case i == 0:
			return VertexFromPoint(d.EndPoint, -d.UpdatedEndBulge), true
		case i < d.EndIndexOffset:
			bulgeI := source.FwdWrappingIndex(d.StartIndex, d.EndIndexOffset-i)
			posI := source.NextWrappingIndex(bulgeI)
			return source.At(posI).WithBulge(-source.At(bulgeI).Bulge()), true
		case i == d.EndIndexOffset:
			posI := source.FwdWrappingIndex(d.StartIndex, d.EndIndexOffset-i+1)
			return source.At(posI).WithBulge(-d.UpdatedStart.Bulge()), true
		default:
			return d.UpdatedStart.WithBulge(0), true
		}
	}

	switch {
	case i == 0:
		return d.UpdatedStart, true
	case i < d.EndIndexOffset:
		return source.At(source.FwdWrappingIndex(d.StartIndex, i)), true
	case i == d.EndIndexOffset:
		v := source.At(source.FwdWrappingIndex(d.StartIndex, d.EndIndexOffset))
		return v.WithBulge(d.UpdatedEndBulge), true
	default:
		return VertexFromPoint(d.EndPoint, 0), true
	}
}

// VertexCount returns the number of vertexes the view projects.
func (v View) VertexCount() int {
	return v.Data.VertexCount()
}

// IsClosed always reports false: a view is an open polyline even when its
// source is closed.
func (v View) IsClosed() bool {
	return false
}

// At returns the vertex at the view index given, panicking if out of range.
func (v View) At(i int) Vertex {
	vert, ok := v.Data.vertex(v.Source, i)
	if !ok {
		panic(fmt.Sprintf("view index %d out of range", i))
	}
	return vert
}

// Get returns the vertex at the view index given and true, or the zero
// vertex and false if the index is out of range.
func (v View) Get(i int) (Vertex, bool) {
	return v.Data.vertex(v.Source, i)
}

// IterVertexes returns an iterator over the view's synthesized vertexes.
func (v View) IterVertexes() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for i := 0; i < v.VertexCount(); i++ {
			if !yield(v.At(i)) {
				return
			}
		}
	}
}

// IterSegments returns an iterator over the view's (v1, v2) segment vertex
// pairs.
func (v View) IterSegments() iter.Seq2[Vertex, Vertex] {
	return func(yield func(Vertex, Vertex) bool) {
		for i := 0; i+1 < v.VertexCount(); i++ {
			if !yield(v.At(i), v.At(i+1)) {
				return
			}
		}
	}
}

// PathLength returns the total path length of the view.
func (v View) PathLength() float64 {
	total := 0.0
	for v1, v2 := range v.IterSegments() {
		total += SegLength(v1, v2)
	}
	return total
}

// ToPolyline materializes the view into an owned open polyline, collapsing
// any repeat positions at the trim points within posEqualEps.
func (v View) ToPolyline(posEqualEps float64) *Polyline {
	result := WithCapacity(v.VertexCount(), false)
	for vert := range v.IterVertexes() {
		result.AddOrReplaceVertex(vert, posEqualEps)
	}
	return result
}

// StitchOnto appends the view's vertexes onto dest, collapsing the joining
// vertex within posEqualEps.
func (v View) StitchOnto(dest *Polyline, posEqualEps float64) {
	dest.Reserve(v.VertexCount())
	for vert := range v.IterVertexes() {
		dest.AddOrReplaceVertex(vert, posEqualEps)
	}
}

// ViewDataFromEntirePline constructs view data representing an entire
// polyline. The view is always considered an open polyline even if the
// source given is closed (the view still follows the same closed path).
//
// Panics if the source has fewer than 2 vertexes.
func ViewDataFromEntirePline(source *Polyline) ViewData {
	vc := source.VertexCount()
	if vc < 2 {
		panic("source must have at least 2 vertexes to form view data")
	}

	if source.IsClosed() {
		last, _ := source.Last()
		return ViewData{
			StartIndex:      0,
			EndIndexOffset:  vc - 1,
			UpdatedStart:    source.At(0),
			UpdatedEndBulge: last.Bulge(),
			EndPoint:        source.At(0).Pos(),
		}
	}

	return ViewData{
		StartIndex:      0,
		EndIndexOffset:  vc - 2,
		UpdatedStart:    source.At(0),
		UpdatedEndBulge: source.At(vc - 2).Bulge(),
		EndPoint:        source.At(vc - 1).Pos(),
	}
}

// ViewDataOnSingleSegment constructs view data selecting over a single
// source segment from updatedStart to endIntersect.
//
// Returns false if updatedStart lies on top of endIntersect (collapsed
// selection).
func ViewDataOnSingleSegment(
	source *Polyline,
	startIndex int,
	updatedStart Vertex,
	endIntersect point.Point,
	posEqualEps float64,
) (ViewData, bool) {
	if updatedStart.Pos().EqEps(endIntersect, posEqualEps) {
		return ViewData{}, false
	}
	return ViewData{
		StartIndex:      startIndex,
		EndIndexOffset:  0,
		UpdatedStart:    updatedStart,
		UpdatedEndBulge: updatedStart.Bulge(),
		EndPoint:        endIntersect,
	}, true
}

// CreateViewData constructs view data spanning multiple source segments:
// from updatedStart on the startIndex segment, traversing traverseCount
// segments forward, ending at endIntersect on the intersectIndex segment.
//
// Panics if traverseCount is zero (use [ViewDataOnSingleSegment] when the
// selection lies on one segment).
func CreateViewData(
	source *Polyline,
	startIndex int,
	endIntersect point.Point,
	intersectIndex int,
	updatedStart Vertex,
	traverseCount int,
	posEqualEps float64,
) ViewData {
	if traverseCount == 0 {
		panic("traverseCount must be greater than 0, use ViewDataOnSingleSegment if the view is all on one segment")
	}

	currentVertex := source.At(intersectIndex)
	var endIndexOffset int
	var updatedEndBulge float64
	if endIntersect.EqEps(currentVertex.Pos(), posEqualEps) {
		// the intersect lies on top of the vertex at the start of the end
		// segment, the final trim never produces a zero length tail so step
		// back a segment
		endIndexOffset = traverseCount - 1
		if endIndexOffset != 0 {
			updatedEndBulge = source.At(source.PrevWrappingIndex(intersectIndex)).Bulge()
		} else {
			updatedEndBulge = updatedStart.Bulge()
		}
	} else {
		// trim the end segment bulge to the intersect position
		nextIndex := source.NextWrappingIndex(intersectIndex)
		split := SegSplitAtPoint(currentVertex, source.At(nextIndex), endIntersect, posEqualEps)
		endIndexOffset = traverseCount
		updatedEndBulge = split.UpdatedStart.Bulge()
	}

	return ViewData{
		StartIndex:      startIndex,
		EndIndexOffset:  endIndexOffset,
		UpdatedStart:    updatedStart,
		UpdatedEndBulge: updatedEndBulge,
		EndPoint:        endIntersect,
	}
}

// ViewDataFromNewStart constructs view data which changes the start point of
// a polyline. If the polyline is open the polyline is trimmed up to the
// start point; if it is closed the entire path is retained with just the
// start point changed.
//
// Returns false if the polyline is open and the start point equals the final
// vertex position.
func ViewDataFromNewStart(source *Polyline, startPoint point.Point, startIndex int, posEqualEps float64) (ViewData, bool) {
	if !source.IsClosed() {
		last, ok := source.Last()
		if !ok {
			return ViewData{}, false
		}
		return ViewDataFromSlicePoints(
			source, startPoint, startIndex, last.Pos(), source.VertexCount()-1, posEqualEps)
	}

	vc := source.VertexCount()
	if vc < 2 {
		panic("source must have at least 2 vertexes to form view data")
	}

	// catch where the start point is at the very end of the start segment
	// (and adjust forward)
	nextIndex := source.NextWrappingIndex(startIndex)
	if source.At(nextIndex).Pos().EqEps(startPoint, posEqualEps) {
		startIndex = nextIndex
	}

	startV1 := source.At(startIndex)
	startV2 := source.At(source.NextWrappingIndex(startIndex))
	split := SegSplitAtPoint(startV1, startV2, startPoint, posEqualEps)

	endIndexOffset := vc
	if startV1.Pos().EqEps(startPoint, posEqualEps) {
		endIndexOffset = vc - 1
	}

	return ViewData{
		StartIndex:      startIndex,
		EndIndexOffset:  endIndexOffset,
		UpdatedStart:    split.SplitVertex,
		UpdatedEndBulge: split.UpdatedStart.Bulge(),
		EndPoint:        startPoint,
	}, true
}

// ViewDataFromSlicePoints constructs view data contiguous between two points
// on a source polyline (the source's own start and end are trimmed away).
//
// Returns false if the resulting selection collapses to a point.
func ViewDataFromSlicePoints(
	source *Polyline,
	startPoint point.Point,
	startIndex int,
	endPoint point.Point,
	endIndex int,
	posEqualEps float64,
) (ViewData, bool) {
	// catch if the start point is at the end of the first segment
	startPointAtSegEnd := false
	if source.IsClosed() || startIndex < endIndex {
		nextIndex := source.NextWrappingIndex(startIndex)
		if source.At(nextIndex).Pos().EqEps(startPoint, posEqualEps) {
			startIndex = nextIndex
			startPointAtSegEnd = true
		}
	}

	traverseCount := source.FwdWrappingDist(startIndex, endIndex)

	// compute the updated start vertex
	startV1 := source.At(startIndex)
	startV2 := source.At(source.NextWrappingIndex(startIndex))
	var updatedStart Vertex
	if startPointAtSegEnd {
		// start point on top of a vertex, no need to split at the start
		if traverseCount == 0 {
			// start and end point on the same segment, split at the end point
			split := SegSplitAtPoint(startV1, startV2, endPoint, posEqualEps)
			updatedStart = split.UpdatedStart
		} else {
			updatedStart = startV1
		}
	} else {
		// split at the start point
		startSplit := SegSplitAtPoint(startV1, startV2, startPoint, posEqualEps)
		updatedForStart := startSplit.SplitVertex
		if traverseCount == 0 {
			// start and end point on the same segment, split at the end point
			split := SegSplitAtPoint(updatedForStart, startV2, endPoint, posEqualEps)
			updatedStart = split.UpdatedStart
		} else {
			updatedStart = updatedForStart
		}
	}

	if traverseCount == 0 {
		return ViewDataOnSingleSegment(source, startIndex, updatedStart, endPoint, posEqualEps)
	}

	return CreateViewData(source, startIndex, endPoint, endIndex, updatedStart, traverseCount, posEqualEps), true
}

// ValidateForSource checks the view data's invariants against the source
// polyline given: the updated start and end point must lie on their declared
// source segments and the end point must not coincide with the final source
// vertex. Used by tests and debugging.
func (d ViewData) ValidateForSource(source *Polyline) error {
	const onSegEps = 1e-3
	const validationEps = 1e-5

	if source.VertexCount() < 2 {
		return fmt.Errorf("source has no segments")
	}

	if d.EndIndexOffset > source.VertexCount() {
		return fmt.Errorf("end index offset %d out of range for source with %d vertexes",
			d.EndIndexOffset, source.VertexCount())
	}

	pointIsOnSegment := func(segIndex int, pt point.Point) bool {
		v1 := source.At(segIndex)
		v2 := source.At(source.NextWrappingIndex(segIndex))
		if pt.EqEps(v1.Pos(), onSegEps) || pt.EqEps(v2.Pos(), onSegEps) {
			return true
		}
		return SegClosestPoint(v1, v2, pt, validationEps).EqEps(pt, onSegEps)
	}

	if !pointIsOnSegment(d.StartIndex, d.UpdatedStart.Pos()) {
		return fmt.Errorf("updated start %v does not lie on source segment %d", d.UpdatedStart.Pos(), d.StartIndex)
	}

	endIndex := source.FwdWrappingIndex(d.StartIndex, d.EndIndexOffset)
	if !pointIsOnSegment(endIndex, d.EndPoint) {
		return fmt.Errorf("end point %v does not lie on source segment %d", d.EndPoint, endIndex)
	}

	// the final trim never produces a zero length tail
	if d.EndPoint.EqEps(source.At(endIndex).Pos(), validationEps) {
		return fmt.Errorf("end point %v lies on top of final source vertex %v", d.EndPoint, source.At(endIndex))
	}

	if d.EndIndexOffset == 0 {
		if !numeric.FloatEquals(d.UpdatedEndBulge, d.UpdatedStart.Bulge(), validationEps) {
			return fmt.Errorf("updated end bulge %g does not match updated start bulge %g",
				d.UpdatedEndBulge, d.UpdatedStart.Bulge())
		}
	}

	return nil
}
