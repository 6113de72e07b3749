package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rsistrat/constants"
	"rsistrat/model"
	"rsistrat/strategies"
	"rsistrat/types"
)

func TestWriteSettingsTable(t *testing.T) {
	rows := strategies.FilterGrid(strategies.CartesianProduct(model.DynamicOrderSettings{MaxTrades: []int{4}},
		strategies.DefaultIndicatorSettings(constants.SideLong)), nil)

	var buf bytes.Buffer
	require.NoError(t, writeSettingsTable(&buf, constants.SideLong, rows, 5))

	out := buf.String()
	require.Contains(t, out, "RSI LENGTH")
	require.Contains(t, out, "TOTAL")
	require.Contains(t, out, "42")
	require.Contains(t, out, "30.0")
	require.Contains(t, out, "Timestamp")

	require.Error(t, writeSettingsTable(&buf, "sideways", rows, 5))
}

func TestWriteEntriesTable(t *testing.T) {
	positions := []types.EntryPosition{
		{Side: constants.SideLong, Pair: "BTCUSDT", BarIndex: 120, Time: time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC), Close: 42000, RSI: 28},
		{Side: constants.SideLong, Pair: "BTCUSDT", BarIndex: 160, Time: time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC), Close: 41000, RSI: 32},
	}

	var buf bytes.Buffer
	writeEntriesTable(&buf, positions)

	out := buf.String()
	require.Contains(t, out, "2024-01-01 05:00:00")
	require.Contains(t, out, "ENTRIES")
	// mean of 28 and 32
	require.Contains(t, out, "30.0")

	buf.Reset()
	writeEntriesTable(&buf, nil)
	require.Contains(t, buf.String(), "ENTRIES")
}

func TestTrailingWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	df := &model.Dataframe{Pair: "BTCUSDT"}
	for i, c := range []float64{50, 45, 35, 25, 32} {
		df.Close = append(df.Close, c)
		df.Open = append(df.Open, c)
		df.High = append(df.High, c)
		df.Low = append(df.Low, c)
		df.Volume = append(df.Volume, 1)
		df.Time = append(df.Time, start.Add(time.Duration(i)*time.Hour))
	}

	require.Same(t, df, trailingWindow(df, 0))

	window := trailingWindow(df, 3)
	require.Equal(t, 3, window.Len())
	require.Equal(t, model.Series[float64]{35, 25, 32}, window.Close)
	require.Equal(t, df.Time[2], window.Time[0])
	require.Equal(t, 5, df.Len())
}
