package chart

import (
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"

	"rsistrat/model"
)

const (
	histogramBins  = 15
	histogramWidth = 10
)

// EntryHistogram prints the distribution of the RSI values at the entries.
// Nothing is printed when there are no entries.
func EntryHistogram(w io.Writer, signals model.Signals) error {
	values := make([]float64, 0, signals.EntryCount())
	for i, entry := range signals.Entries {
		if entry && i < len(signals.EntrySignals) && !math.IsNaN(signals.EntrySignals[i]) {
			values = append(values, signals.EntrySignals[i])
		}
	}
	return Histogram(w, values)
}

// Histogram prints the distribution of values. Nothing is printed for no values.
func Histogram(w io.Writer, values []float64) error {
	if len(values) == 0 {
		return nil
	}

	hist := histogram.Hist(histogramBins, values)
	return histogram.Fprint(w, hist, histogram.Linear(histogramWidth))
}
