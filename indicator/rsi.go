package indicator

import (
	"errors"
	"fmt"
	"math"

	"github.com/markcheno/go-talib"
)

var ErrInvalidLength = errors.New("invalid indicator length")

// RSIFunc computes an RSI series over source. The result has the same length
// as source and the warm-up head is NaN.
type RSIFunc func(source []float64, length int) ([]float64, error)

// RSI is the Wilder RSI backed by talib. talib leaves zeros in the first
// length values, those are replaced by NaN so callers can tell warm-up bars
// from a real reading of 0.
func RSI(source []float64, length int) ([]float64, error) {
	if length < 2 {
		return nil, fmt.Errorf("%w: rsi length %d", ErrInvalidLength, length)
	}
	out := make([]float64, len(source))
	if len(source) <= length {
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}
	copy(out, talib.Rsi(source, length))
	for i := 0; i < length; i++ {
		out[i] = math.NaN()
	}
	return out, nil
}

// RoundSeries rounds every value to the given number of decimals, ties to
// even, by scaling, rounding and unscaling. NaN stays NaN.
func RoundSeries(values []float64, decimals int) []float64 {
	scale := math.Pow(10, float64(decimals))
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = v
			continue
		}
		out[i] = math.RoundToEven(v*scale) / scale
	}
	return out
}

// LookbackOne returns lookback columns aligned with values. Column j holds
// the value j+1 bars back (j bars back when includeCurrent is set); positions
// without enough history hold fill.
func LookbackOne(values []float64, lookback int, includeCurrent bool, fill float64) [][]float64 {
	offset := 1
	if includeCurrent {
		offset = 0
	}
	columns := make([][]float64, lookback)
	for j := range columns {
		shift := j + offset
		column := make([]float64, len(values))
		for i := range column {
			if i-shift < 0 {
				column[i] = fill
				continue
			}
			column[i] = values[i-shift]
		}
		columns[j] = column
	}
	return columns
}
