package pline

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/mikenye/polyarc/point"
	"github.com/mikenye/polyarc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plineFromVertexes builds a polyline from (x, y, bulge) triples.
func plineFromVertexes(isClosed bool, data ...[3]float64) *Polyline {
	p := WithCapacity(len(data), isClosed)
	for _, d := range data {
		p.Add(d[0], d[1], d[2])
	}
	return p
}

func TestPolyline_BasicMutation(t *testing.T) {
	p := New()
	assert.True(t, p.IsEmpty())
	assert.Equal(t, 0, p.SegmentCount())

	p.Add(0, 0, 0)
	p.Add(1, 0, 0.5)
	p.AddVertex(NewVertex(1, 1, 0))
	assert.Equal(t, 3, p.VertexCount())
	assert.Equal(t, 2, p.SegmentCount())

	p.SetIsClosed(true)
	assert.Equal(t, 3, p.SegmentCount())

	p.Insert(1, NewVertex(0.5, 0, 0))
	assert.Equal(t, 4, p.VertexCount())
	assert.True(t, p.At(1).EqEps(NewVertex(0.5, 0, 0), 1e-12))

	removed := p.Remove(1)
	assert.True(t, removed.EqEps(NewVertex(0.5, 0, 0), 1e-12))

	p.Set(0, -1, -1, 0.25)
	assert.True(t, p.At(0).EqEps(NewVertex(-1, -1, 0.25), 1e-12))

	v, ok := p.Get(10)
	assert.False(t, ok)
	assert.Equal(t, Vertex{}, v)

	p.Clear()
	assert.True(t, p.IsEmpty())
}

func TestPolyline_AddOrReplaceVertex(t *testing.T) {
	p := New()
	p.AddOrReplace(0, 0, 0.5, testEps)
	p.AddOrReplace(1, 0, 0, testEps)
	// same position replaces the bulge rather than duplicating
	p.AddOrReplace(1, 0, 0.25, testEps)
	assert.Equal(t, 2, p.VertexCount())
	assert.InDelta(t, 0.25, p.At(1).Bulge(), 1e-12)
}

func TestPolyline_WrappingIndexes(t *testing.T) {
	p := plineFromVertexes(true, [3]float64{0, 0, 0}, [3]float64{0, 0, 0}, [3]float64{0, 0, 0}, [3]float64{0, 0, 0})

	assert.Equal(t, 1, p.NextWrappingIndex(0))
	assert.Equal(t, 0, p.NextWrappingIndex(3))
	assert.Equal(t, 3, p.PrevWrappingIndex(0))
	assert.Equal(t, 2, p.PrevWrappingIndex(3))
	assert.Equal(t, 2, p.FwdWrappingDist(0, 2))
	assert.Equal(t, 2, p.FwdWrappingDist(3, 1))
	assert.Equal(t, 2, p.FwdWrappingIndex(0, 2))
	assert.Equal(t, 3, p.FwdWrappingIndex(1, 2))
	assert.Equal(t, 0, p.FwdWrappingIndex(1, 3))
	assert.Equal(t, 1, p.FwdWrappingIndex(2, 3))
}

func TestPolyline_IterSegmentIndexes(t *testing.T) {
	p := plineFromVertexes(false, [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{2, 0, 0})

	var pairs [][2]int
	for i, j := range p.IterSegmentIndexes() {
		pairs = append(pairs, [2]int{i, j})
	}
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, pairs)

	p.SetIsClosed(true)
	pairs = pairs[:0]
	for i, j := range p.IterSegmentIndexes() {
		pairs = append(pairs, [2]int{i, j})
	}
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 0}}, pairs)
}

func TestPolyline_PathLength(t *testing.T) {
	// open polyline half circle
	p := plineFromVertexes(false, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
	assert.InDelta(t, math.Pi, p.PathLength(), 1e-9)
	// close into a full circle
	p.SetIsClosed(true)
	assert.InDelta(t, 2*math.Pi, p.PathLength(), 1e-9)
}

func TestPolyline_Area(t *testing.T) {
	p := New()
	assert.InDelta(t, 0.0, p.Area(), 1e-12)

	p.Add(1, 1, 1)
	assert.InDelta(t, 0.0, p.Area(), 1e-12)

	p.Add(3, 1, 1)
	// still open so the area is 0
	assert.InDelta(t, 0.0, p.Area(), 1e-12)

	p.SetIsClosed(true)
	assert.InDelta(t, math.Pi, p.Area(), 1e-9)

	p.InvertDirectionMut()
	assert.InDelta(t, -math.Pi, p.Area(), 1e-9)
}

func TestPolyline_AreaInvertSum(t *testing.T) {
	// area(P) + area(invert(P)) == 0 and path length is unchanged
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{4, 0, 0.5}, [3]float64{4, 4, 0}, [3]float64{0, 4, -0.2})

	inverted := CreateFrom(p)
	inverted.InvertDirectionMut()
	assert.InDelta(t, 0.0, p.Area()+inverted.Area(), 1e-9)
	assert.InDelta(t, p.PathLength(), inverted.PathLength(), 1e-9)
}

func TestPolyline_Orientation(t *testing.T) {
	p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{1, 0, 1})
	assert.Equal(t, types.OrientationCounterClockwise, p.Orientation())
	p.InvertDirectionMut()
	assert.Equal(t, types.OrientationClockwise, p.Orientation())
	p.SetIsClosed(false)
	assert.Equal(t, types.OrientationOpen, p.Orientation())
}

func TestPolyline_InvertDirectionMut(t *testing.T) {
	p := plineFromVertexes(false, [3]float64{0, 0, 0.5}, [3]float64{1, 1, 0})
	p.InvertDirectionMut()
	expected := plineFromVertexes(false, [3]float64{1, 1, -0.5}, [3]float64{0, 0, 0.5})
	assert.True(t, p.FuzzyEq(expected))
}

func TestPolyline_ScaleMut(t *testing.T) {
	p := plineFromVertexes(false, [3]float64{2, 2, 0.5}, [3]float64{4, 4, 1})
	lengthBefore := p.PathLength()
	p.ScaleMut(2)
	expected := plineFromVertexes(false, [3]float64{4, 4, 0.5}, [3]float64{8, 8, 1})
	assert.True(t, p.FuzzyEq(expected))
	// bulge values are scale invariant so path length scales linearly
	assert.InDelta(t, 2*lengthBefore, p.PathLength(), 1e-9)
}

func TestPolyline_TranslateMut(t *testing.T) {
	p := plineFromVertexes(false, [3]float64{2, 2, 0.5}, [3]float64{4, 4, 1})
	p.TranslateMut(-3, 1)
	expected := plineFromVertexes(false, [3]float64{-1, 3, 0.5}, [3]float64{1, 5, 1})
	assert.True(t, p.FuzzyEq(expected))
}

func TestPolyline_Extents(t *testing.T) {
	p := New()
	_, ok := p.Extents()
	assert.False(t, ok)

	p.Add(1, 1, 1)
	_, ok = p.Extents()
	assert.False(t, ok)

	p.Add(3, 1, 1)
	extents, ok := p.Extents()
	require.True(t, ok)
	assert.InDelta(t, 1.0, extents.MinX, 1e-9)
	assert.InDelta(t, 0.0, extents.MinY, 1e-9)
	assert.InDelta(t, 3.0, extents.MaxX, 1e-9)
	assert.InDelta(t, 1.0, extents.MaxY, 1e-9)

	p.SetIsClosed(true)
	extents, ok = p.Extents()
	require.True(t, ok)
	assert.InDelta(t, 1.0, extents.MinX, 1e-9)
	assert.InDelta(t, 0.0, extents.MinY, 1e-9)
	assert.InDelta(t, 3.0, extents.MaxX, 1e-9)
	assert.InDelta(t, 2.0, extents.MaxY, 1e-9)
}

func TestPolyline_WindingNumber(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		assert.Equal(t, 1, p.WindingNumber(point.New(1, 0)))
		assert.Equal(t, 0, p.WindingNumber(point.New(0, 2)))
		p.InvertDirectionMut()
		assert.Equal(t, -1, p.WindingNumber(point.New(1, 0)))
	})

	t.Run("multiple windings self intersecting", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 1}, [3]float64{2, 0, 1}, [3]float64{0, 0, 1}, [3]float64{4, 0, 1})
		assert.Equal(t, 2, p.WindingNumber(point.New(1, 0)))
		assert.Equal(t, 0, p.WindingNumber(point.New(-1, 0)))
		p.InvertDirectionMut()
		assert.Equal(t, -2, p.WindingNumber(point.New(1, 0)))
	})

	t.Run("open polyline always zero", func(t *testing.T) {
		p := plineFromVertexes(false, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		assert.Equal(t, 0, p.WindingNumber(point.New(1, 0)))
	})

	t.Run("polygon with line segments", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
		assert.Equal(t, 1, p.WindingNumber(point.New(5, 5)))
		assert.Equal(t, 0, p.WindingNumber(point.New(15, 5)))
		assert.Equal(t, 0, p.WindingNumber(point.New(-5, 5)))
	})
}

func TestPolyline_ClosestPoint(t *testing.T) {
	p := New()
	_, ok := p.ClosestPoint(point.New(0, 0), testEps)
	assert.False(t, ok)

	p.Add(1, 1, 1)
	result, ok := p.ClosestPoint(point.New(1, 0), testEps)
	require.True(t, ok)
	assert.Equal(t, 0, result.SegStartIndex)
	assert.True(t, result.SegPoint.EqEps(point.New(1, 1), 1e-9))
	assert.InDelta(t, 1.0, result.Distance, 1e-9)

	// square, closest point projects onto the right edge
	sq := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
	result, ok = sq.ClosestPoint(point.New(12, 5), testEps)
	require.True(t, ok)
	assert.Equal(t, 1, result.SegStartIndex)
	assert.True(t, result.SegPoint.EqEps(point.New(10, 5), 1e-9))
	assert.InDelta(t, 2.0, result.Distance, 1e-9)
}

func TestPolyline_FindPointAtPathLength(t *testing.T) {
	p := plineFromVertexes(false, [3]float64{0, 0, 0}, [3]float64{10, 0, 0})

	segIndex, pt, err := p.FindPointAtPathLength(5)
	require.NoError(t, err)
	assert.Equal(t, 0, segIndex)
	assert.True(t, pt.EqEps(point.New(5, 0), 1e-9))

	// negative target returns the start point
	_, pt, err = p.FindPointAtPathLength(-2)
	require.NoError(t, err)
	assert.True(t, pt.EqEps(point.New(0, 0), 1e-9))

	// overshoot returns an error carrying the total length
	_, _, err = p.FindPointAtPathLength(100)
	var lengthErr *PathLengthExceededError
	require.True(t, errors.As(err, &lengthErr))
	assert.InDelta(t, 10.0, lengthErr.TotalLength, 1e-9)

	// arc segment interpolation: half circle of radius 1, halfway along is
	// the bottom of the arc
	arc := plineFromVertexes(false, [3]float64{0, 0, 1}, [3]float64{2, 0, 0})
	segIndex, pt, err = arc.FindPointAtPathLength(math.Pi / 2)
	require.NoError(t, err)
	assert.Equal(t, 0, segIndex)
	assert.True(t, pt.EqEps(point.New(1, -1), 1e-9))
}

func TestPolyline_FuzzyEq(t *testing.T) {
	a := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
	b := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2 + 1e-7, 0, 1})
	c := plineFromVertexes(false, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})

	assert.True(t, a.FuzzyEq(b))
	assert.False(t, a.FuzzyEq(c), "closed flag must match")
	assert.False(t, a.FuzzyEqEps(b, 1e-9))
}

func TestPolyline_Extend(t *testing.T) {
	a := plineFromVertexes(false, [3]float64{0, 0, 0}, [3]float64{1, 0, 0})
	b := plineFromVertexes(false, [3]float64{1, 0, 0}, [3]float64{2, 0, 0})

	c := CreateFrom(a)
	c.Extend(b)
	assert.Equal(t, 4, c.VertexCount())

	d := CreateFrom(a)
	d.ExtendRemoveRepeat(b, testEps)
	assert.Equal(t, 3, d.VertexCount(), "repeat joint position collapses")
}

func TestPolyline_UserData(t *testing.T) {
	p := New()
	p.SetUserDataValues([]uint64{1, 2})
	p.AddUserDataValues([]uint64{3})
	assert.Equal(t, []uint64{1, 2, 3}, p.UserDataValues())

	c := CreateFrom(p)
	assert.Equal(t, []uint64{1, 2, 3}, c.UserDataValues())
}

func TestPolyline_JSONRoundTrip(t *testing.T) {
	p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
	p.SetUserDataValues([]uint64{42})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out Polyline
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, p.FuzzyEq(&out))
	assert.Equal(t, []uint64{42}, out.UserDataValues())
}

func TestPolyline_CreateIndexes(t *testing.T) {
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
	approx := p.CreateApproxAABBIndex()
	exact := p.CreateAABBIndex()
	assert.Equal(t, 4, approx.Count())
	assert.Equal(t, 4, exact.Count())
}
