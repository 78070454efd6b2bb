package pline

import (
	"math"
	"testing"

	"github.com/mikenye/polyarc/options"
	"github.com/mikenye/polyarc/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSelfIntersects(p *Polyline, opts ...options.SelfIntersectOptionFunc) IntersectsCollection {
	var result IntersectsCollection
	p.VisitSelfIntersects(func(intr Intersect) bool {
		if intr.Kind == IntersectBasic {
			result.BasicIntersects = append(result.BasicIntersects, BasicIntersect{
				StartIndex1: intr.StartIndex1,
				StartIndex2: intr.StartIndex2,
				Point:       intr.Point1,
			})
		} else {
			result.OverlappingIntersects = append(result.OverlappingIntersects, OverlappingIntersect{
				StartIndex1: intr.StartIndex1,
				StartIndex2: intr.StartIndex2,
				Point1:      intr.Point1,
				Point2:      intr.Point2,
			})
		}
		return true
	}, opts...)
	return result
}

func TestVisitSelfIntersects_Local(t *testing.T) {
	localOnly := options.WithSelfIntersectsInclude(options.SelfIntersectsLocal)

	t.Run("empty polyline", func(t *testing.T) {
		intrs := collectSelfIntersects(New(), localOnly)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Empty(t, intrs.OverlappingIntersects)
	})

	t.Run("single vertex", func(t *testing.T) {
		p := New()
		p.Add(0, 0, 1)
		intrs := collectSelfIntersects(p, localOnly)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Empty(t, intrs.OverlappingIntersects)
	})

	t.Run("circle no intersects", func(t *testing.T) {
		p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		intrs := collectSelfIntersects(p, localOnly)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Empty(t, intrs.OverlappingIntersects)
	})

	t.Run("half circle overlapping self", func(t *testing.T) {
		// closed two vertex polyline with exact negative bulges overlaps
		// itself
		p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, -1})
		intrs := collectSelfIntersects(p, localOnly)
		assert.Empty(t, intrs.BasicIntersects)
		require.Len(t, intrs.OverlappingIntersects, 1)
		assert.Equal(t, 0, intrs.OverlappingIntersects[0].StartIndex1)
		assert.Equal(t, 1, intrs.OverlappingIntersects[0].StartIndex2)
		assert.True(t, intrs.OverlappingIntersects[0].Point1.EqEps(point.New(0, 0), 1e-9))
		assert.True(t, intrs.OverlappingIntersects[0].Point2.EqEps(point.New(2, 0), 1e-9))
	})

	t.Run("short open polyline circle", func(t *testing.T) {
		// adjacent arc segments meeting at the polyline end point
		p := plineFromVertexes(false,
			[3]float64{0, 0, 1}, [3]float64{2, 0, 1}, [3]float64{0, 0, 0})
		intrs := collectSelfIntersects(p, localOnly)
		require.Len(t, intrs.BasicIntersects, 1)
		assert.Empty(t, intrs.OverlappingIntersects)
		assert.Equal(t, 0, intrs.BasicIntersects[0].StartIndex1)
		assert.Equal(t, 1, intrs.BasicIntersects[0].StartIndex2)
		assert.True(t, intrs.BasicIntersects[0].Point.EqEps(point.New(0, 0), 1e-9))
	})

	t.Run("long open polyline circle", func(t *testing.T) {
		quarter := math.Tan(math.Pi / 8)
		p := plineFromVertexes(false,
			[3]float64{0, 0, quarter}, [3]float64{1, -1, quarter}, [3]float64{2, 0, quarter},
			[3]float64{1, 1, quarter}, [3]float64{0, 0, 0})
		intrs := collectSelfIntersects(p, localOnly)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Empty(t, intrs.OverlappingIntersects)
	})
}

func TestVisitSelfIntersects_Global(t *testing.T) {
	globalOnly := options.WithSelfIntersectsInclude(options.SelfIntersectsGlobal)

	t.Run("circle no intersects", func(t *testing.T) {
		p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		intrs := collectSelfIntersects(p, globalOnly)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Empty(t, intrs.OverlappingIntersects)
	})

	t.Run("long open polyline circle", func(t *testing.T) {
		// the last segment ends exactly on the polyline start point, which
		// is a global self intersect between the first and last segments
		quarter := math.Tan(math.Pi / 8)
		p := plineFromVertexes(false,
			[3]float64{0, 0, quarter}, [3]float64{1, -1, quarter}, [3]float64{2, 0, quarter},
			[3]float64{1, 1, quarter}, [3]float64{0, 0, 0})
		intrs := collectSelfIntersects(p, globalOnly)
		require.Len(t, intrs.BasicIntersects, 1)
		assert.Equal(t, 0, intrs.BasicIntersects[0].StartIndex1)
		assert.Equal(t, 3, intrs.BasicIntersects[0].StartIndex2)
		assert.True(t, intrs.BasicIntersects[0].Point.EqEps(point.New(0, 0), 1e-5))
	})
}

func TestVisitSelfIntersects_FigureEight(t *testing.T) {
	// figure-8: exactly one basic self intersect at (5, 5)
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 10, 0}, [3]float64{10, 0, 0}, [3]float64{0, 10, 0})

	assert.True(t, p.ScanForSelfIntersect())

	intrs := collectSelfIntersects(p)
	require.Len(t, intrs.BasicIntersects, 1)
	assert.Empty(t, intrs.OverlappingIntersects)
	assert.True(t, intrs.BasicIntersects[0].Point.EqEps(point.New(5, 5), 1e-9))
}

func TestScanForSelfIntersect(t *testing.T) {
	square := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
	assert.False(t, square.ScanForSelfIntersect())

	// supplying a pre-built index gives the same result
	ix := square.CreateApproxAABBIndex()
	assert.False(t, square.ScanForSelfIntersect(options.WithSelfIntersectAABBIndex(ix)))
}

func TestFindIntersects(t *testing.T) {
	t.Run("crossing rectangles", func(t *testing.T) {
		a := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
		b := plineFromVertexes(true,
			[3]float64{5, -5, 0}, [3]float64{8, -5, 0}, [3]float64{8, 15, 0}, [3]float64{5, 15, 0})

		intrs := a.FindIntersects(b)
		assert.Empty(t, intrs.OverlappingIntersects)
		require.Len(t, intrs.BasicIntersects, 4)

		expectedPoints := []point.Point{
			point.New(5, 0), point.New(8, 0), point.New(8, 10), point.New(5, 10),
		}
		for _, expected := range expectedPoints {
			found := false
			for _, intr := range intrs.BasicIntersects {
				if intr.Point.EqEps(expected, 1e-9) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected intersect at %v", expected)
		}
	})

	t.Run("disjoint polylines", func(t *testing.T) {
		a := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		b := plineFromVertexes(true, [3]float64{10, 10, 1}, [3]float64{12, 10, 1})
		intrs := a.FindIntersects(b)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Empty(t, intrs.OverlappingIntersects)
	})

	t.Run("identical squares produce only overlapping intersects", func(t *testing.T) {
		a := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
		b := CreateFrom(a)

		intrs := a.FindIntersects(b)
		assert.Empty(t, intrs.BasicIntersects)
		assert.Len(t, intrs.OverlappingIntersects, 4)
	})

	t.Run("open polylines end touch start", func(t *testing.T) {
		a := plineFromVertexes(false, [3]float64{0, 0, 0}, [3]float64{1, 1, 0})
		b := plineFromVertexes(false, [3]float64{1, 1, 0}, [3]float64{2, 2, 0})
		intrs := a.FindIntersects(b)
		require.Len(t, intrs.BasicIntersects, 1)
		assert.True(t, intrs.BasicIntersects[0].Point.EqEps(point.New(1, 1), 1e-9))
	})
}

func TestSortAndJoinOverlappingIntersects(t *testing.T) {
	a := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
	b := CreateFrom(a)

	intrs := a.FindIntersects(b)
	require.Len(t, intrs.OverlappingIntersects, 4)

	slices := SortAndJoinOverlappingIntersects(intrs.OverlappingIntersects, a, b, testEps)
	require.Len(t, slices, 1)
	assert.True(t, slices[0].IsLoop, "fully overlapping polylines join into a single loop slice")
	assert.False(t, slices[0].OpposingDirections)
}

func TestSortAndJoinOverlappingIntersects_OpposingDirections(t *testing.T) {
	a := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
	b := CreateFrom(a)
	b.InvertDirectionMut()

	intrs := a.FindIntersects(b)
	require.NotEmpty(t, intrs.OverlappingIntersects)

	slices := SortAndJoinOverlappingIntersects(intrs.OverlappingIntersects, a, b, testEps)
	require.Len(t, slices, 1)
	assert.True(t, slices[0].OpposingDirections)
}

func TestFindIntersects_PartialOverlapEndpointDedup(t *testing.T) {
	// two rectangles sharing a full edge: the overlap must be reported once
	// without duplicate basic intersects at the overlap end points
	a := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
	b := plineFromVertexes(true,
		[3]float64{10, 0, 0}, [3]float64{20, 0, 0}, [3]float64{20, 10, 0}, [3]float64{10, 10, 0})

	intrs := a.FindIntersects(b)
	require.Len(t, intrs.OverlappingIntersects, 1)
	ov := intrs.OverlappingIntersects[0]
	// the shared edge spans (10, 0) to (10, 10)
	assert.InDelta(t, 10.0, ov.Point1.X(), 1e-9)
	assert.InDelta(t, 10.0, ov.Point2.X(), 1e-9)

	// any remaining basic intersects must not duplicate the overlap ends
	for _, intr := range intrs.BasicIntersects {
		assert.False(t, intr.Point.EqEps(ov.Point1, 1e-9))
		assert.False(t, intr.Point.EqEps(ov.Point2, 1e-9))
	}
}
