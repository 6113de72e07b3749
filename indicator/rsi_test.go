package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closes(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 100 + 5*math.Sin(float64(i)/3) + float64(i%4)
	}
	return values
}

func TestRSI(t *testing.T) {
	t.Run("warm-up head is NaN", func(t *testing.T) {
		rsi, err := RSI(closes(50), 14)
		require.NoError(t, err)
		require.Len(t, rsi, 50)
		for i := 0; i < 14; i++ {
			assert.True(t, math.IsNaN(rsi[i]), "index %d", i)
		}
		for i := 14; i < 50; i++ {
			assert.False(t, math.IsNaN(rsi[i]), "index %d", i)
			assert.GreaterOrEqual(t, rsi[i], 0.0)
			assert.LessOrEqual(t, rsi[i], 100.0)
		}
	})

	t.Run("monotonic rise saturates", func(t *testing.T) {
		source := make([]float64, 30)
		for i := range source {
			source[i] = float64(i + 1)
		}
		rsi, err := RSI(source, 5)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, rsi[29], 1e-9)
	})

	t.Run("short source", func(t *testing.T) {
		rsi, err := RSI(closes(5), 14)
		require.NoError(t, err)
		require.Len(t, rsi, 5)
		for _, v := range rsi {
			assert.True(t, math.IsNaN(v))
		}
	})

	t.Run("invalid length", func(t *testing.T) {
		_, err := RSI(closes(50), 1)
		require.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestRoundSeries(t *testing.T) {
	in := []float64{33.333, 0.25, 0.75, 70.96, math.NaN(), -12.34}
	out := RoundSeries(in, 1)
	assert.Equal(t, 33.3, out[0])
	assert.Equal(t, 0.2, out[1])
	assert.Equal(t, 0.8, out[2])
	assert.Equal(t, 71.0, out[3])
	assert.True(t, math.IsNaN(out[4]))
	assert.Equal(t, -12.3, out[5])

	for _, v := range RoundSeries(closes(40), 1) {
		assert.InDelta(t, math.Round(v*10), v*10, 1e-9)
	}
}

func TestLookbackOne(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	cols := LookbackOne(values, 2, false, math.NaN())
	require.Len(t, cols, 2)
	assert.True(t, math.IsNaN(cols[0][0]))
	assert.Equal(t, []float64{1, 2, 3}, cols[0][1:])
	assert.True(t, math.IsNaN(cols[1][0]))
	assert.True(t, math.IsNaN(cols[1][1]))
	assert.Equal(t, []float64{1, 2}, cols[1][2:])

	cols = LookbackOne(values, 2, true, -1)
	assert.Equal(t, []float64{1, 2, 3, 4}, cols[0])
	assert.Equal(t, []float64{-1, 1, 2, 3}, cols[1])
}
