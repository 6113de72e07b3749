package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

const day = int64(24 * 60 * 60)

func formatLine(timestamp int64, price float64) string {
	return fmt.Sprintf("%d,%g,%g,%g,%g,1\n", timestamp, price, price, price, price)
}

func TestNewCSVFeed(t *testing.T) {
	t.Run("default columns", func(t *testing.T) {
		file := writeCSV(t, "1704067200,10,11,9,12,100\n1704153600,11,12,10,13,200\n")
		feed, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
		require.NoError(t, err)

		df, err := feed.Dataframe("BTCUSDT", "1d")
		require.NoError(t, err)
		require.Equal(t, "BTCUSDT", df.Pair)
		require.Equal(t, []float64{11, 12}, []float64(df.Close))
		require.Equal(t, []float64{10, 11}, []float64(df.Open))
		require.Equal(t, []float64{9, 10}, []float64(df.Low))
		require.Equal(t, []float64{12, 13}, []float64(df.High))
		require.Equal(t, []float64{100, 200}, []float64(df.Volume))
		require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), df.Time[1])
	})

	t.Run("custom headers", func(t *testing.T) {
		file := writeCSV(t, "time,open,high,low,close,volume,trades\n1704067200000,10,12,9,11,100,7\n")
		feed, err := NewCSVFeed(PairFeed{Pair: "ETHUSDT", File: file, Timeframe: "1h"})
		require.NoError(t, err)

		df, err := feed.Dataframe("ETHUSDT", "1h")
		require.NoError(t, err)
		require.Equal(t, []float64{11}, []float64(df.Close))
		require.Equal(t, []float64{12}, []float64(df.High))
		require.Equal(t, []float64{7}, []float64(df.Metadata["trades"]))
		require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), df.Time[0])
	})

	t.Run("bad value", func(t *testing.T) {
		file := writeCSV(t, "1704067200,10,abc,9,12,100\n")
		_, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "close")
	})

	t.Run("short rows", func(t *testing.T) {
		file := writeCSV(t, "1704067200,10,11,9\n1704153600,11,12,10\n")
		_, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
		require.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("header without volume", func(t *testing.T) {
		file := writeCSV(t, "time,open,high,low,close\n1704067200,10,12,9,11\n")
		_, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
		require.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("empty file", func(t *testing.T) {
		file := writeCSV(t, "")
		_, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
		require.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: filepath.Join(t.TempDir(), "nope.csv"), Timeframe: "1d"})
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown feed", func(t *testing.T) {
		file := writeCSV(t, "1704067200,10,11,9,12,100\n")
		feed, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
		require.NoError(t, err)
		_, err = feed.Dataframe("BTCUSDT", "1h")
		require.ErrorIs(t, err, ErrUnknownFeed)
	})
}

func TestCSVFeed_Limit(t *testing.T) {
	lines := ""
	for i := int64(0); i < 10; i++ {
		lines += formatLine(1704067200+i*day, float64(i))
	}
	file := writeCSV(t, lines)

	feed, err := NewCSVFeed(PairFeed{Pair: "BTCUSDT", File: file, Timeframe: "1d"})
	require.NoError(t, err)

	_, err = feed.LimitString("3d")
	require.NoError(t, err)
	df, err := feed.Dataframe("BTCUSDT", "1d")
	require.NoError(t, err)
	require.Equal(t, []float64{7, 8, 9}, []float64(df.Close))

	_, err = feed.LimitString("three days")
	require.Error(t, err)
}
