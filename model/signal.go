package model

import (
	"time"
)

// SignalRecord is an entry signal kept in the journal.
type SignalRecord struct {
	ID            int64     `db:"id" json:"id" gorm:"primaryKey,autoIncrement"`
	Pair          string    `db:"pair" json:"pair" gorm:"index"`
	Timeframe     string    `db:"timeframe" json:"timeframe"`
	Side          string    `db:"side" json:"side"`
	SettingsIndex int       `db:"settings_index" json:"settings_index"`
	RsiLength     int       `db:"rsi_length" json:"rsi_length"`
	ThresholdCur  float64   `db:"threshold_cur" json:"threshold_cur"`
	ThresholdP    float64   `db:"threshold_p" json:"threshold_p"`
	ThresholdPP   float64   `db:"threshold_pp" json:"threshold_pp"`
	BarIndex      int       `db:"bar_index" json:"bar_index"`
	BarTime       time.Time `db:"bar_time" json:"bar_time"`
	Close         float64   `db:"close" json:"close"`
	Rsi           float64   `db:"rsi" json:"rsi"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
