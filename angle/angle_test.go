package angle

import (
	"math"
	"testing"

	"github.com/mikenye/polyarc/point"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]struct {
		input    float64
		expected float64
	}{
		"zero":              {0, 0},
		"within range":      {1.5, 1.5},
		"exactly two pi":    {2 * math.Pi, 0},
		"negative quarter":  {-math.Pi / 2, 3 * math.Pi / 2},
		"over two pi":       {5 * math.Pi / 2, math.Pi / 2},
		"large negative":    {-9 * math.Pi / 2, 3 * math.Pi / 2},
		"multiple wraps":    {6 * math.Pi, 0},
		"negative full rev": {-2 * math.Pi, 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Normalize(tc.input), 1e-12)
		})
	}
}

func TestDelta(t *testing.T) {
	tests := map[string]struct {
		a, b     float64
		expected float64
	}{
		"same angle":        {1.0, 1.0, 0},
		"quarter ccw":       {0, math.Pi / 2, math.Pi / 2},
		"quarter cw":        {math.Pi / 2, 0, -math.Pi / 2},
		"wrap through zero": {7 * math.Pi / 4, math.Pi / 4, math.Pi / 2},
		"half circle":       {0, math.Pi, math.Pi},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Delta(tc.a, tc.b), 1e-12)
		})
	}
}

func TestDeltaSigned(t *testing.T) {
	// ccw from 0 to -π/2 goes the long way around
	assert.InDelta(t, 3*math.Pi/2, DeltaSigned(0, -math.Pi/2, false), 1e-12)
	// cw from 0 to -π/2 is a quarter turn
	assert.InDelta(t, -math.Pi/2, DeltaSigned(0, -math.Pi/2, true), 1e-12)
	// cw from π/4 to 3π/4 goes the long way around
	assert.InDelta(t, -3*math.Pi/2, DeltaSigned(math.Pi/4, 3*math.Pi/4, true), 1e-12)
}

func TestBulgeConversions(t *testing.T) {
	// bulge of 1 is a half circle (sweep π)
	assert.InDelta(t, math.Pi, FromBulge(1), 1e-12)
	assert.InDelta(t, -math.Pi, FromBulge(-1), 1e-12)
	assert.InDelta(t, 1.0, Bulge(math.Pi), 1e-12)
	// quarter circle
	assert.InDelta(t, math.Tan(math.Pi/8), Bulge(math.Pi/2), 1e-12)
	// round trip
	for _, b := range []float64{-1.5, -1, -0.25, 0, 0.25, 1, 1.5} {
		assert.InDelta(t, b, Bulge(FromBulge(b)), 1e-12)
	}
}

func TestIsWithinSweep(t *testing.T) {
	eps := 1e-5
	// ccw sweep from 0 to π/2
	assert.True(t, IsWithinSweep(math.Pi/4, 0, math.Pi/2, eps))
	assert.True(t, IsWithinSweep(0, 0, math.Pi/2, eps))
	assert.True(t, IsWithinSweep(math.Pi/2, 0, math.Pi/2, eps))
	assert.False(t, IsWithinSweep(math.Pi, 0, math.Pi/2, eps))
	assert.False(t, IsWithinSweep(-math.Pi/4, 0, math.Pi/2, eps))

	// cw sweep from π/2 to 0
	assert.True(t, IsWithinSweep(math.Pi/4, math.Pi/2, -math.Pi/2, eps))
	assert.False(t, IsWithinSweep(3*math.Pi/4, math.Pi/2, -math.Pi/2, eps))
}

func TestPointOnCircle(t *testing.T) {
	c := point.New(1, 1)
	assert.True(t, PointOnCircle(2, c, 0).EqEps(point.New(3, 1), 1e-12))
	assert.True(t, PointOnCircle(2, c, math.Pi/2).EqEps(point.New(1, 3), 1e-12))
}

func TestPointWithinArcSweep(t *testing.T) {
	eps := 1e-5
	center := point.New(0, 0)
	// ccw quarter arc from (1,0) to (0,1)
	start := point.New(1, 0)
	end := point.New(0, 1)

	within := point.New(math.Cos(math.Pi/4), math.Sin(math.Pi/4))
	outside := point.New(math.Cos(-math.Pi/4), math.Sin(-math.Pi/4))

	assert.True(t, PointWithinArcSweep(center, start, end, false, within, eps))
	assert.False(t, PointWithinArcSweep(center, start, end, false, outside, eps))

	// same arc clockwise from (0,1) to (1,0)
	assert.True(t, PointWithinArcSweep(center, end, start, true, within, eps))
	assert.False(t, PointWithinArcSweep(center, end, start, true, outside, eps))

	// three-quarter ccw arc from (1,0) to (0,-1) includes (-1,0)
	threeQuarterEnd := point.New(0, -1)
	assert.True(t, PointWithinArcSweep(center, start, threeQuarterEnd, false, point.New(-1, 0), eps))
	assert.False(t, PointWithinArcSweep(center, start, threeQuarterEnd, false,
		point.New(math.Cos(-math.Pi/4), math.Sin(-math.Pi/4)), eps))
}

func TestFromPoints(t *testing.T) {
	c := point.New(1, 1)
	assert.InDelta(t, 0.0, FromPoints(c, point.New(2, 1)), 1e-12)
	assert.InDelta(t, math.Pi/2, FromPoints(c, point.New(1, 2)), 1e-12)
	assert.InDelta(t, math.Pi, FromPoints(c, point.New(0, 1)), 1e-12)
}
