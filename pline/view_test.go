package pline

import (
	"testing"

	"github.com/mikenye/polyarc/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewDataFromSlicePoints(t *testing.T) {
	// closed 5 x 5 square
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{5, 0, 0}, [3]float64{5, 5, 0}, [3]float64{0, 5, 0})

	// slice starting at (2.5, 0) on segment 0 and ending at (2.5, 5) on
	// segment 2
	vd, ok := ViewDataFromSlicePoints(p, point.New(2.5, 0), 0, point.New(2.5, 5), 2, testEps)
	require.True(t, ok)
	require.NoError(t, vd.ValidateForSource(p))

	view := vd.View(p)
	assert.False(t, view.IsClosed())
	assert.Equal(t, 4, view.VertexCount())
	assert.InDelta(t, 10.0, view.PathLength(), 1e-9)

	assert.True(t, view.At(0).EqEps(NewVertex(2.5, 0, 0), 1e-9))
	assert.True(t, view.At(1).EqEps(NewVertex(5, 0, 0), 1e-9))
	assert.True(t, view.At(2).EqEps(NewVertex(5, 5, 0), 1e-9))
	assert.True(t, view.At(3).EqEps(NewVertex(2.5, 5, 0), 1e-9))

	_, outOfRange := view.Get(4)
	assert.False(t, outOfRange)
}

func TestViewDataFromSlicePoints_CollapsedSelection(t *testing.T) {
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{5, 0, 0}, [3]float64{5, 5, 0}, [3]float64{0, 5, 0})

	_, ok := ViewDataFromSlicePoints(p, point.New(2.5, 0), 0, point.New(2.5, 0), 0, testEps)
	assert.False(t, ok)
}

func TestViewDataFromEntirePline(t *testing.T) {
	t.Run("closed source", func(t *testing.T) {
		p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		vd := ViewDataFromEntirePline(p)
		view := vd.View(p)

		// view is open but follows the same closed path
		assert.False(t, view.IsClosed())
		assert.InDelta(t, p.PathLength(), view.PathLength(), 1e-9)
		assert.True(t, view.At(0).EqEps(p.At(0), 1e-9))
		last, _ := view.Get(view.VertexCount() - 1)
		assert.True(t, last.Pos().EqEps(p.At(0).Pos(), 1e-9))
	})

	t.Run("open source", func(t *testing.T) {
		p := plineFromVertexes(false,
			[3]float64{0, 0, 0}, [3]float64{5, 0, 0.5}, [3]float64{5, 5, 0})
		vd := ViewDataFromEntirePline(p)
		view := vd.View(p)
		assert.Equal(t, 3, view.VertexCount())
		assert.InDelta(t, p.PathLength(), view.PathLength(), 1e-9)
	})
}

func TestViewData_InvertedDirection(t *testing.T) {
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{5, 0, 0.5}, [3]float64{5, 5, 0}, [3]float64{0, 5, 0})

	vd, ok := ViewDataFromSlicePoints(p, point.New(2.5, 0), 0, point.New(2.5, 5), 2, testEps)
	require.True(t, ok)

	forward := vd.View(p)
	inverted := vd.Invert().View(p)

	assert.Equal(t, forward.VertexCount(), inverted.VertexCount())
	assert.InDelta(t, forward.PathLength(), inverted.PathLength(), 1e-9)

	// inverted view walks backward with bulges negated
	n := forward.VertexCount()
	for i := 0; i < n; i++ {
		fwdV := forward.At(i)
		invV := inverted.At(n - 1 - i)
		assert.True(t, fwdV.Pos().EqEps(invV.Pos(), 1e-9),
			"position mismatch at index %d", i)
	}
	// the bulge of each forward segment appears negated on the matching
	// inverted segment
	for i := 0; i+1 < n; i++ {
		assert.InDelta(t, forward.At(i).Bulge(), -inverted.At(n-2-i).Bulge(), 1e-9)
	}
}

func TestViewDataFromNewStart(t *testing.T) {
	t.Run("closed polyline keeps the whole path", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{5, 0, 0}, [3]float64{5, 5, 0}, [3]float64{0, 5, 0})
		vd, ok := ViewDataFromNewStart(p, point.New(2.5, 0), 0, testEps)
		require.True(t, ok)
		require.NoError(t, vd.ValidateForSource(p))

		view := vd.View(p)
		assert.True(t, view.At(0).Pos().EqEps(point.New(2.5, 0), 1e-9))
		assert.InDelta(t, p.PathLength(), view.PathLength(), 1e-9)
	})

	t.Run("open polyline trims to the start point", func(t *testing.T) {
		p := plineFromVertexes(false, [3]float64{0, 0, 0}, [3]float64{10, 0, 0})
		vd, ok := ViewDataFromNewStart(p, point.New(4, 0), 0, testEps)
		require.True(t, ok)

		view := vd.View(p)
		assert.InDelta(t, 6.0, view.PathLength(), 1e-9)
		assert.True(t, view.At(0).Pos().EqEps(point.New(4, 0), 1e-9))
	})
}

func TestView_ToPolylineAndStitchOnto(t *testing.T) {
	p := plineFromVertexes(true,
		[3]float64{0, 0, 0}, [3]float64{5, 0, 0}, [3]float64{5, 5, 0}, [3]float64{0, 5, 0})

	vd, ok := ViewDataFromSlicePoints(p, point.New(2.5, 0), 0, point.New(2.5, 5), 2, testEps)
	require.True(t, ok)

	materialized := vd.View(p).ToPolyline(testEps)
	assert.Equal(t, 4, materialized.VertexCount())
	assert.False(t, materialized.IsClosed())
	assert.InDelta(t, 10.0, materialized.PathLength(), 1e-9)

	dest := New()
	dest.Add(0, -5, 0)
	dest.Add(2.5, 0, 0)
	vd.View(p).StitchOnto(dest, testEps)
	// the joining vertex collapses
	assert.Equal(t, 5, dest.VertexCount())
}
