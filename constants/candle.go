package constants

// CandleBodyType names the part of a candle a price is taken from.
type CandleBodyType int

const (
	CandleBodyTimestamp CandleBodyType = iota
	CandleBodyOpen
	CandleBodyHigh
	CandleBodyLow
	CandleBodyClose
	CandleBodyVolume
	CandleBodyNothing
)

var candleBodyNames = map[CandleBodyType]string{
	CandleBodyTimestamp: "Timestamp",
	CandleBodyOpen:      "Open",
	CandleBodyHigh:      "High",
	CandleBodyLow:       "Low",
	CandleBodyClose:     "Close",
	CandleBodyVolume:    "Volume",
	CandleBodyNothing:   "Nothing",
}

func (c CandleBodyType) String() string {
	if name, ok := candleBodyNames[c]; ok {
		return name
	}
	return "Unknown"
}
