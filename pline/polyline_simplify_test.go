package pline

import (
	"math"
	"testing"

	"github.com/mikenye/polyarc/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyline_RemoveRepeatPos(t *testing.T) {
	t.Run("repeats removed with bulge carried", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{2, 2, 0.5}, [3]float64{2, 2, 1}, [3]float64{3, 3, 1}, [3]float64{3, 3, 0.5})
		result := p.RemoveRepeatPos(testEps)
		require.NotNil(t, result)
		assert.Equal(t, 2, result.VertexCount())
		assert.True(t, result.At(0).EqEps(NewVertex(2, 2, 1), 1e-9))
		assert.True(t, result.At(1).EqEps(NewVertex(3, 3, 0.5), 1e-9))
	})

	t.Run("no repeats returns nil", func(t *testing.T) {
		p := plineFromVertexes(true, [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0})
		assert.Nil(t, p.RemoveRepeatPos(testEps))
	})

	t.Run("closed wrap pair checked", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0}, [3]float64{0, 0, 0})
		result := p.RemoveRepeatPos(testEps)
		require.NotNil(t, result)
		assert.Equal(t, 3, result.VertexCount())
	})

	t.Run("idempotent and curve preserving", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 1}, [3]float64{2, 0, 0}, [3]float64{2, 0, 0}, [3]float64{2, 2, 0})
		result := p.RemoveRepeatPos(testEps)
		require.NotNil(t, result)
		assert.InDelta(t, p.PathLength(), result.PathLength(), 1e-9)
		assert.InDelta(t, p.Area(), result.Area(), 1e-9)
		assert.Nil(t, result.RemoveRepeatPos(testEps))
	})
}

func TestPolyline_RemoveRedundant(t *testing.T) {
	t.Run("collinear vertexes removed", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{2, 2, 0}, [3]float64{3, 3, 0}, [3]float64{3, 3, 0},
			[3]float64{4, 4, 0}, [3]float64{2, 4, 0})
		result := p.RemoveRedundant(testEps)
		require.NotNil(t, result)
		assert.Equal(t, 3, result.VertexCount())
		assert.True(t, result.IsClosed())
		assert.True(t, result.At(0).EqEps(NewVertex(2, 2, 0), 1e-9))
		assert.True(t, result.At(1).EqEps(NewVertex(4, 4, 0), 1e-9))
		assert.True(t, result.At(2).EqEps(NewVertex(2, 4, 0), 1e-9))
	})

	t.Run("concentric arcs merged below half circle", func(t *testing.T) {
		bulge := math.Tan(math.Pi / 8)
		p := plineFromVertexes(true,
			[3]float64{-0.5, 0, bulge}, [3]float64{0, -0.5, bulge}, [3]float64{0, -0.5, bulge},
			[3]float64{0.5, 0, bulge}, [3]float64{0, 0.5, bulge})
		result := p.RemoveRedundant(testEps)
		require.NotNil(t, result)
		assert.Equal(t, 2, result.VertexCount())
		assert.True(t, result.IsClosed())
		assert.True(t, result.At(0).EqEps(NewVertex(-0.5, 0, 1), 1e-9))
		assert.True(t, result.At(1).EqEps(NewVertex(0.5, 0, 1), 1e-9))
	})

	t.Run("nothing redundant returns nil", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0}, [3]float64{0, 10, 0})
		assert.Nil(t, p.RemoveRedundant(testEps))
	})

	t.Run("preserves path geometry", func(t *testing.T) {
		p := plineFromVertexes(false,
			[3]float64{0, 0, 0}, [3]float64{5, 0, 0}, [3]float64{10, 0, 0}, [3]float64{10, 10, 0})
		result := p.RemoveRedundant(testEps)
		require.NotNil(t, result)
		assert.Equal(t, 3, result.VertexCount())
		assert.InDelta(t, p.PathLength(), result.PathLength(), 1e-9)
	})
}

func TestPolyline_RotateStart(t *testing.T) {
	t.Run("invalid inputs", func(t *testing.T) {
		p := NewClosed()
		assert.Nil(t, p.RotateStart(0, point.New(0, 0), testEps))
		p.Add(0, 0, 0)
		assert.Nil(t, p.RotateStart(0, point.New(0, 0), testEps))

		open := plineFromVertexes(false, [3]float64{0, 0, 0}, [3]float64{1, 0, 0})
		assert.Nil(t, open.RotateStart(0, point.New(0.5, 0), testEps))
	})

	t.Run("splits the start segment", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0}, [3]float64{0, 1, 0})
		rot := p.RotateStart(0, point.New(0.5, 0), testEps)
		require.NotNil(t, rot)

		expected := plineFromVertexes(true,
			[3]float64{0.5, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0},
			[3]float64{0, 1, 0}, [3]float64{0, 0, 0})
		assert.True(t, rot.FuzzyEq(expected))
		assert.InDelta(t, p.PathLength(), rot.PathLength(), 1e-9)
		assert.InDelta(t, p.Area(), rot.Area(), 1e-9)
	})

	t.Run("rotating onto an existing vertex", func(t *testing.T) {
		p := plineFromVertexes(true,
			[3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0}, [3]float64{0, 1, 0})
		rot := p.RotateStart(0, point.New(1, 0), testEps)
		require.NotNil(t, rot)
		assert.Equal(t, 4, rot.VertexCount())
		assert.True(t, rot.At(0).EqEps(NewVertex(1, 0, 0), 1e-9))
	})
}

func TestPolyline_ArcsToApproxLines(t *testing.T) {
	t.Run("half circle approximation", func(t *testing.T) {
		p := plineFromVertexes(false, [3]float64{0, 0, 1}, [3]float64{2, 0, 0})
		lines := p.ArcsToApproxLines(0.1)
		require.NotNil(t, lines)
		assert.Greater(t, lines.VertexCount(), 2)
		for v := range lines.IterVertexes() {
			assert.True(t, v.BulgeIsZero())
		}

		// every generated vertex lies on the arc
		_, center := SegArcRadiusAndCenter(p.At(0), p.At(1))
		for v := range lines.IterVertexes() {
			assert.InDelta(t, 1.0, v.Pos().DistanceToPoint(center), 1e-9)
		}
	})

	t.Run("path length approaches the arc length as tolerance shrinks", func(t *testing.T) {
		p := plineFromVertexes(true, [3]float64{0, 0, 1}, [3]float64{2, 0, 1})
		prevErr := math.Inf(1)
		for _, tol := range []float64{0.1, 0.01, 0.001} {
			lines := p.ArcsToApproxLines(tol)
			require.NotNil(t, lines)
			err := math.Abs(lines.PathLength() - p.PathLength())
			assert.Less(t, err, prevErr)
			prevErr = err
		}
		assert.Less(t, prevErr, 1e-2)
	})

	t.Run("chords stay within tolerance of the arc", func(t *testing.T) {
		tol := 0.05
		p := plineFromVertexes(false, [3]float64{0, 0, 1}, [3]float64{2, 0, 0})
		lines := p.ArcsToApproxLines(tol)
		require.NotNil(t, lines)

		_, center := SegArcRadiusAndCenter(p.At(0), p.At(1))
		for v1, v2 := range lines.IterSegments() {
			mid := SegMidpoint(v1, v2)
			// chord midpoint distance from the circle is the sagitta error
			sagitta := 1.0 - mid.DistanceToPoint(center)
			assert.LessOrEqual(t, sagitta, tol+1e-9)
		}
	})
}
