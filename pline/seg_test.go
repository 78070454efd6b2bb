package pline

import (
	"math"
	"testing"

	"github.com/mikenye/polyarc/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEps = 1e-5

func TestSegArcRadiusAndCenter(t *testing.T) {
	tests := map[string]struct {
		v1, v2         Vertex
		expectedRadius float64
		expectedCenter point.Point
	}{
		"ccw half circle": {
			v1:             NewVertex(0, 0, 1),
			v2:             NewVertex(1, 0, 0),
			expectedRadius: 0.5,
			expectedCenter: point.New(0.5, 0),
		},
		"cw half circle": {
			v1:             NewVertex(0, 0, -1),
			v2:             NewVertex(1, 0, 0),
			expectedRadius: 0.5,
			expectedCenter: point.New(0.5, 0),
		},
		"ccw quarter circle": {
			v1:             NewVertex(1, 0, math.Tan(math.Pi/8)),
			v2:             NewVertex(0, 1, 0),
			expectedRadius: 1,
			expectedCenter: point.New(0, 0),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			radius, center := SegArcRadiusAndCenter(tc.v1, tc.v2)
			assert.InDelta(t, tc.expectedRadius, radius, 1e-9)
			assert.True(t, center.EqEps(tc.expectedCenter, 1e-9),
				"expected center %v, got %v", tc.expectedCenter, center)
		})
	}
}

func TestSegSplitAtPoint(t *testing.T) {
	t.Run("arc half circle split at quarter", func(t *testing.T) {
		// ccw half circle arc going from (0, 0) to (1, 0)
		v1 := NewVertex(0, 0, 1)
		v2 := NewVertex(1, 0, 0)
		split := SegSplitAtPoint(v1, v2, point.New(0.5, -0.5), testEps)
		quarterCircleBulge := math.Tan(math.Pi / 8)
		assert.True(t, split.UpdatedStart.EqEps(NewVertex(0, 0, quarterCircleBulge), 1e-9))
		assert.True(t, split.SplitVertex.EqEps(NewVertex(0.5, -0.5, quarterCircleBulge), 1e-9))
	})

	t.Run("line split", func(t *testing.T) {
		v1 := NewVertex(0, 0, 0)
		v2 := NewVertex(10, 0, 0)
		split := SegSplitAtPoint(v1, v2, point.New(4, 0), testEps)
		assert.True(t, split.UpdatedStart.EqEps(v1, 1e-9))
		assert.True(t, split.SplitVertex.EqEps(NewVertex(4, 0, 0), 1e-9))
	})

	t.Run("split at segment start", func(t *testing.T) {
		v1 := NewVertex(0, 0, 1)
		v2 := NewVertex(1, 0, 0)
		split := SegSplitAtPoint(v1, v2, v1.Pos(), testEps)
		assert.True(t, split.UpdatedStart.EqEps(NewVertex(0, 0, 0), 1e-9))
		assert.True(t, split.SplitVertex.EqEps(NewVertex(0, 0, 1), 1e-9))
	})

	t.Run("split at segment end", func(t *testing.T) {
		v1 := NewVertex(0, 0, 1)
		v2 := NewVertex(1, 0, 0)
		split := SegSplitAtPoint(v1, v2, v2.Pos(), testEps)
		assert.True(t, split.UpdatedStart.EqEps(v1, 1e-9))
		assert.True(t, split.SplitVertex.EqEps(NewVertex(1, 0, 0), 1e-9))
	})

	t.Run("round trip preserves curve", func(t *testing.T) {
		// splitting then measuring both halves sums to the original length
		v1 := NewVertex(0, 0, 1)
		v2 := NewVertex(2, 0, 0)
		splitPoint := SegMidpoint(v1, v2)
		split := SegSplitAtPoint(v1, v2, splitPoint, testEps)
		total := SegLength(split.UpdatedStart, split.SplitVertex) + SegLength(split.SplitVertex, v2)
		assert.InDelta(t, SegLength(v1, v2), total, 1e-9)
	})
}

func TestSegTangentVector(t *testing.T) {
	// counter clockwise half circle arc going from (2, 2) to (4, 2)
	v1 := NewVertex(2, 2, 1)
	v2 := NewVertex(4, 2, 0)
	midpoint := point.New(3, 1)

	assert.True(t, SegTangentVector(v1, v2, midpoint).Normalize().EqEps(point.New(1, 0), 1e-9))
	assert.True(t, SegTangentVector(v1, v2, v1.Pos()).Normalize().EqEps(point.New(0, -1), 1e-9))
	assert.True(t, SegTangentVector(v1, v2, v2.Pos()).Normalize().EqEps(point.New(0, 1), 1e-9))

	// line segment tangent
	lv1 := NewVertex(0, 0, 0)
	lv2 := NewVertex(3, 4, 0)
	assert.True(t, SegTangentVector(lv1, lv2, point.New(1.5, 2)).EqEps(point.New(3, 4), 1e-9))
}

func TestSegClosestPoint(t *testing.T) {
	// counter clockwise half circle arc going from (2, 2) to (4, 2)
	v1 := NewVertex(2, 2, 1)
	v2 := NewVertex(4, 2, 0)

	assert.True(t, SegClosestPoint(v1, v2, point.New(3, 0), testEps).EqEps(point.New(3, 1), 1e-9))
	assert.True(t, SegClosestPoint(v1, v2, point.New(3, 1.2), testEps).EqEps(point.New(3, 1), 1e-9))
	assert.True(t, SegClosestPoint(v1, v2, v1.Pos(), testEps).EqEps(v1.Pos(), 1e-9))
	assert.True(t, SegClosestPoint(v1, v2, v2.Pos(), testEps).EqEps(v2.Pos(), 1e-9))

	// point at the arc center returns the start point
	assert.True(t, SegClosestPoint(v1, v2, point.New(3, 2), testEps).EqEps(v1.Pos(), 1e-9))

	// point above the chord (outside the sweep) snaps to the nearer end
	assert.True(t, SegClosestPoint(v1, v2, point.New(2.1, 3), testEps).EqEps(v1.Pos(), 1e-9))

	// line segment projection with clamping
	lv1 := NewVertex(0, 0, 0)
	lv2 := NewVertex(10, 0, 0)
	assert.True(t, SegClosestPoint(lv1, lv2, point.New(5, 5), testEps).EqEps(point.New(5, 0), 1e-9))
	assert.True(t, SegClosestPoint(lv1, lv2, point.New(-5, 5), testEps).EqEps(point.New(0, 0), 1e-9))
}

func TestSegFastApproxBoundingBox(t *testing.T) {
	t.Run("line", func(t *testing.T) {
		bb := SegFastApproxBoundingBox(NewVertex(3, -1, 0), NewVertex(1, 2, 0))
		assert.InDelta(t, 1.0, bb.MinX, 1e-12)
		assert.InDelta(t, -1.0, bb.MinY, 1e-12)
		assert.InDelta(t, 3.0, bb.MaxX, 1e-12)
		assert.InDelta(t, 2.0, bb.MaxY, 1e-12)
	})

	t.Run("arc always contains exact box", func(t *testing.T) {
		v1 := NewVertex(0, 0, 1)
		v2 := NewVertex(2, 0, 0)
		approx := SegFastApproxBoundingBox(v1, v2)
		exact := SegBoundingBox(v1, v2)
		assert.LessOrEqual(t, approx.MinX, exact.MinX)
		assert.LessOrEqual(t, approx.MinY, exact.MinY)
		assert.GreaterOrEqual(t, approx.MaxX, exact.MaxX)
		assert.GreaterOrEqual(t, approx.MaxY, exact.MaxY)
	})
}

func TestSegBoundingBox(t *testing.T) {
	tests := map[string]struct {
		v1, v2   Vertex
		expected [4]float64 // minX, minY, maxX, maxY
	}{
		"ccw half circle below chord": {
			// bows down through (1, -1)
			v1:       NewVertex(0, 0, 1),
			v2:       NewVertex(2, 0, 0),
			expected: [4]float64{0, -1, 2, 0},
		},
		"cw half circle above chord": {
			v1:       NewVertex(0, 0, -1),
			v2:       NewVertex(2, 0, 0),
			expected: [4]float64{0, 0, 2, 1},
		},
		"y axis aligned half circle": {
			// ccw from (0, 0) to (0, 2) bows out positive x through (1, 1)
			v1:       NewVertex(0, 0, 1),
			v2:       NewVertex(0, 2, 0),
			expected: [4]float64{0, 0, 1, 2},
		},
		"quarter circle crossing max x": {
			// ccw quarter from (1, -1)ish... from angle -π/4 to π/4 crossing the
			// positive x axis of the unit circle at origin
			v1:       NewVertex(math.Cos(-math.Pi/4), math.Sin(-math.Pi/4), math.Tan(math.Pi/8)),
			v2:       NewVertex(math.Cos(math.Pi/4), math.Sin(math.Pi/4), 0),
			expected: [4]float64{math.Cos(math.Pi / 4), math.Sin(-math.Pi / 4), 1, math.Sin(math.Pi / 4)},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			bb := SegBoundingBox(tc.v1, tc.v2)
			assert.InDelta(t, tc.expected[0], bb.MinX, 1e-9)
			assert.InDelta(t, tc.expected[1], bb.MinY, 1e-9)
			assert.InDelta(t, tc.expected[2], bb.MaxX, 1e-9)
			assert.InDelta(t, tc.expected[3], bb.MaxY, 1e-9)
		})
	}
}

func TestSegLength(t *testing.T) {
	// counter clockwise half circle arc with radius 1 has length π
	assert.InDelta(t, math.Pi, SegLength(NewVertex(2, 2, 1), NewVertex(4, 2, 0)), 1e-9)
	// line segment
	assert.InDelta(t, 2*math.Sqrt2, SegLength(NewVertex(2, 2, 0), NewVertex(4, 4, 0)), 1e-9)
	// coincident vertexes
	assert.InDelta(t, 0.0, SegLength(NewVertex(1, 1, 0), NewVertex(1, 1, 0)), 1e-12)
}

func TestSegMidpoint(t *testing.T) {
	// counter clockwise half circle arc going from (2, 2) to (4, 2)
	assert.True(t, SegMidpoint(NewVertex(2, 2, 1), NewVertex(4, 2, 0)).EqEps(point.New(3, 1), 1e-9))
	// clockwise half circle bows the other way
	assert.True(t, SegMidpoint(NewVertex(2, 2, -1), NewVertex(4, 2, 0)).EqEps(point.New(3, 3), 1e-9))
	// line segment
	assert.True(t, SegMidpoint(NewVertex(2, 2, 0), NewVertex(4, 4, 0)).EqEps(point.New(3, 3), 1e-9))
}

func TestVertexJSONRoundTrip(t *testing.T) {
	v := NewVertex(1.25, -3.5, 0.5)
	data, err := v.MarshalJSON()
	require.NoError(t, err)
	var out Vertex
	require.NoError(t, out.UnmarshalJSON(data))
	assert.True(t, v.EqEps(out, 1e-12))
}
