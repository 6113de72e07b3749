package model

// Signals are the arrays handed to the engine, all aligned with the candle series.
// EntrySignals holds the RSI value at each entry and NaN elsewhere. ExitPrices
// is always NaN because the strategy does not produce exits.
type Signals struct {
	RSI          []float64
	Entries      []bool
	EntrySignals []float64
	ExitPrices   []float64
}

func (s Signals) Len() int {
	return len(s.Entries)
}

// EntryCount returns the number of bars flagged as entries.
func (s Signals) EntryCount() int {
	count := 0
	for _, entry := range s.Entries {
		if entry {
			count++
		}
	}
	return count
}

// EntryIndexes returns the bar indexes flagged as entries in ascending order.
func (s Signals) EntryIndexes() []int {
	indexes := make([]int, 0)
	for i, entry := range s.Entries {
		if entry {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
