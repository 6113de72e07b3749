package types

import (
	"fmt"
	"time"

	"rsistrat/constants"
	"rsistrat/model"
)

// EntryPosition is one entry found by an evaluator.
type EntryPosition struct {
	Side          constants.Side
	Pair          string
	SettingsIndex int
	BarIndex      int
	Time          time.Time
	Close         float64
	RSI           float64
}

func (ep EntryPosition) String() string {
	return fmt.Sprintf("%s %s | Settings: %d, Bar: %d, Time: %s, Close: %.4f, RSI: %.1f",
		ep.Side, ep.Pair, ep.SettingsIndex, ep.BarIndex, ep.Time.Format(time.DateTime), ep.Close, ep.RSI)
}

// Strategy is what a backtest engine drives: pick a settings index, then
// either compute the signals in one pass or feed the bars one by one.
type Strategy interface {
	// TotalFilteredSettings is the number of settings indexes SetCurIndSet accepts.
	TotalFilteredSettings() int
	SetCurIndSet(setIdx int) error
	// EntryMessage logs an entry found at barIndex.
	EntryMessage(barIndex int)
	// SetEntriesExitsArray computes the signals of the whole candle series.
	SetEntriesExitsArray(df *model.Dataframe) error
	// LiveBTSetEntriesExitsArray prepares empty signals for LiveBT.
	LiveBTSetEntriesExitsArray(df *model.Dataframe) error
	// LiveBT evaluates the last bar of df[beg:end] and records an entry at barIndex.
	LiveBT(barIndex, beg, end int, df *model.Dataframe) (bool, error)
	// LiveEvaluate evaluates the last bar of df.
	LiveEvaluate(df *model.Dataframe) (bool, error)
	Signals() model.Signals

	IndicatorSettings() model.IndicatorSettings
	DynamicOrderSettings() model.DynamicOrderSettings
	StaticOrderSettings() model.StaticOrderSettings
	ExchangeSettings() model.ExchangeSettings
	BacktestSettings() model.BacktestSettings
}

// EntryPositions lists the entries of signals for the candles of df.
func EntryPositions(side constants.Side, settingsIndex int, df *model.Dataframe, signals model.Signals) []EntryPosition {
	positions := make([]EntryPosition, 0, signals.EntryCount())
	for _, bar := range signals.EntryIndexes() {
		position := EntryPosition{
			Side:          side,
			Pair:          df.Pair,
			SettingsIndex: settingsIndex,
			BarIndex:      bar,
			RSI:           signals.EntrySignals[bar],
		}
		if bar < len(df.Time) {
			position.Time = df.Time[bar]
		}
		if bar < len(df.Close) {
			position.Close = df.Close[bar]
		}
		positions = append(positions, position)
	}
	return positions
}
