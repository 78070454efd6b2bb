package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatEquals(t *testing.T) {
	tests := map[string]struct {
		a, b, epsilon float64
		expected      bool
	}{
		"exactly equal":          {1.0, 1.0, 1e-9, true},
		"within epsilon":         {1.0, 1.0 + 1e-10, 1e-9, true},
		"outside epsilon":        {1.0, 1.1, 1e-9, false},
		"negative within":        {-2.5, -2.5 + 1e-10, 1e-9, true},
		"zero epsilon unequal":   {1.0, 1.0000001, 0.0, false},
		"boundary equals within": {0.0, 1e-9, 1e-9, true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FloatEquals(tc.a, tc.b, tc.epsilon))
		})
	}
}

func TestFloatComparisons(t *testing.T) {
	eps := 1e-5

	assert.True(t, FloatLessThan(1.0, 2.0, eps))
	assert.False(t, FloatLessThan(1.0, 1.0+1e-7, eps), "values within epsilon are not less than")
	assert.True(t, FloatLessThanOrEqualTo(1.0+1e-7, 1.0, eps))
	assert.True(t, FloatGreaterThan(2.0, 1.0, eps))
	assert.False(t, FloatGreaterThan(1.0+1e-7, 1.0, eps))
	assert.True(t, FloatGreaterThanOrEqualTo(1.0, 1.0+1e-7, eps))
	assert.True(t, FloatEqualsZero(1e-7, eps))
	assert.False(t, FloatEqualsZero(1e-3, eps))
}

func TestFloatInRange(t *testing.T) {
	eps := 1e-5
	assert.True(t, FloatInRange(0.5, 0.0, 1.0, eps))
	assert.True(t, FloatInRange(0.0, 0.0, 1.0, eps))
	assert.True(t, FloatInRange(-1e-7, 0.0, 1.0, eps), "just below range but within epsilon")
	assert.True(t, FloatInRange(1.0+1e-7, 0.0, 1.0, eps), "just above range but within epsilon")
	assert.False(t, FloatInRange(1.1, 0.0, 1.0, eps))
	assert.False(t, FloatInRange(-0.1, 0.0, 1.0, eps))
}

func TestSnapToEpsilon(t *testing.T) {
	assert.Equal(t, 1.0, SnapToEpsilon(1.0000000001, 1e-8))
	assert.Equal(t, 0.5, SnapToEpsilon(0.5, 1e-8))
	assert.Equal(t, -3.0, SnapToEpsilon(-2.9999999999, 1e-8))
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 42, Abs(-42))
	assert.Equal(t, 42, Abs(42))
	assert.Equal(t, 3.14, Abs(-3.14))
	assert.Equal(t, 0, Abs(0))
}
