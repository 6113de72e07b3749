package storage

import (
	"time"

	"rsistrat/model"
)

type SignalFilter func(model.SignalRecord) bool

// Storage is the journal of entry signals found by the evaluators.
type Storage interface {
	CreateSignals(signals []*model.SignalRecord) error
	Signals(filters ...SignalFilter) ([]*model.SignalRecord, error)
	ResetTables() error
}

func WithPair(pair string) SignalFilter {
	return func(signal model.SignalRecord) bool {
		return signal.Pair == pair
	}
}

func WithSide(side string) SignalFilter {
	return func(signal model.SignalRecord) bool {
		return signal.Side == side
	}
}

func WithSettingsIndex(settingsIndex int) SignalFilter {
	return func(signal model.SignalRecord) bool {
		return signal.SettingsIndex == settingsIndex
	}
}

func WithSettingsIndexIn(settingsIndexes ...int) SignalFilter {
	return func(signal model.SignalRecord) bool {
		for _, idx := range settingsIndexes {
			if idx == signal.SettingsIndex {
				return true
			}
		}
		return false
	}
}

func WithBarTimeAfterOrEqual(time time.Time) SignalFilter {
	return func(signal model.SignalRecord) bool {
		return !signal.BarTime.Before(time)
	}
}

var _ Storage = (*SQL)(nil)
