package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	cases := []struct {
		op   Operation
		a, b float64
		want float64
	}{
		{OpAdd, 2, 3, 5},
		{OpSubtract, 5, 3, 2},
		{OpMultiply, 4, 5, 20},
		{OpDivide, 9, 2, 4.5},
		{OpPercentage, 30, 120, 25},
		{OpAdd, 0.1, 0.2, 0.3}, // decimal backing keeps this exact
	}
	for _, tc := range cases {
		got, err := Apply(tc.op, tc.a, tc.b)
		require.NoError(t, err, "op %s", tc.op)
		assert.Equal(t, tc.want, got, "op %s", tc.op)
	}
}

func TestApplyDivisionByZero(t *testing.T) {
	for _, op := range []Operation{OpDivide, OpPercentage} {
		_, err := Apply(op, 1, 0)
		require.Error(t, err)
		assert.True(t, IsDivisionByZero(err), "op %s", op)
		assert.False(t, IsInvalidOperation(err))
	}
}

func TestParse(t *testing.T) {
	t.Run("normalizes case and spacing", func(t *testing.T) {
		op, err := Parse("  Add ")
		require.NoError(t, err)
		assert.Equal(t, OpAdd, op)
	})

	t.Run("unknown selector fails", func(t *testing.T) {
		_, err := Parse("modulo")
		require.Error(t, err)
		assert.True(t, IsInvalidOperation(err))
		assert.False(t, IsDivisionByZero(err))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, Round2(2.345))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.Equal(t, 1.0, Round2(1.0001))
	assert.Equal(t, 0.0, Round2(0))
}
