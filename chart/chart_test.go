package chart

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rsistrat/model"
)

func testSignals() model.Signals {
	nan := math.NaN()
	return model.Signals{
		RSI:          []float64{nan, nan, 35.2, 28.1, 31.4, 45},
		Entries:      []bool{false, false, false, false, true, false},
		EntrySignals: []float64{nan, nan, nan, nan, 31.4, nan},
		ExitPrices:   []float64{nan, nan, nan, nan, nan, nan},
	}
}

func testDataframe(n int) *model.Dataframe {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	df := &model.Dataframe{Pair: "BTCUSDT"}
	for i := 0; i < n; i++ {
		df.Time = append(df.Time, start.Add(time.Duration(i)*time.Hour))
		df.Close = append(df.Close, 100+float64(i))
	}
	return df
}

func TestRender(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, testDataframe(6), testSignals(), 40, "Long Signal")
		require.NoError(t, err)

		out := buf.String()
		require.Contains(t, out, "Long Signal")
		require.Contains(t, out, "RSI")
		require.Contains(t, out, "Entries")
		require.Contains(t, out, "2024-01-01 04:00")
		require.NotContains(t, out, "NaN")
	})

	t.Run("without times", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, nil, testSignals(), 40, "Short Signal")
		require.NoError(t, err)
		require.Contains(t, buf.String(), "Short Signal")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, nil, model.Signals{}, 40, "Long Signal")
		require.ErrorIs(t, err, ErrNoSignals)
		require.Zero(t, buf.Len())
	})
}

func TestEntryHistogram(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EntryHistogram(&buf, testSignals()))
		require.NotZero(t, buf.Len())
	})

	t.Run("no entries", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EntryHistogram(&buf, model.Signals{Entries: []bool{false}, EntrySignals: []float64{math.NaN()}}))
		require.Zero(t, buf.Len())
	})
}
