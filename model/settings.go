package model

import "rsistrat/constants"

// ExchangeSettings describes the constraints of the venue the engine simulates against.
type ExchangeSettings struct {
	AssetTickStep    int
	LeverageMode     constants.LeverageMode
	LeverageTickStep int
	LimitFeePct      float64
	MarketFeePct     float64
	MaxAssetSize     float64
	MaxLeverage      float64
	MinAssetSize     float64
	MinLeverage      float64
	MMRPct           float64
	PositionMode     constants.PositionMode
	PriceTickStep    int
}

// BacktestSettings are the filters the engine applies when scoring a settings index.
type BacktestSettings struct {
	GainsPctFilter float64
	QFFilter       float64
}

// StaticOrderSettings hold the order management values shared by every grid row.
type StaticOrderSettings struct {
	IncreasePositionType constants.IncreasePositionType
	LeverageStrategyType constants.LeverageStrategyType
	PGMinMaxSLBcb        constants.PGMinMax
	SLStrategyType       constants.StopLossStrategyType
	SLToBeBool           bool
	// StartingBar is the warm-up window; entries before it are always cleared.
	StartingBar    int
	StartingEquity float64
	// StaticLeverage is only read when LeverageStrategyType is static, 0 means unset.
	StaticLeverage float64
	TPFeeType      constants.TPFeeType
	TPStrategyType constants.TakeProfitStrategyType
	TrailSLBool    bool
	ZOrEType       string
}

// DynamicOrderSettings is the column view of the order half of the grid.
// Before filtering every slice holds candidate values; after filtering all
// slices share the grid length and SettingsIndex holds 0..N-1.
type DynamicOrderSettings struct {
	AccountPctRiskPerTrade []float64
	MaxTrades              []int
	RiskReward             []float64
	SLBasedOnAddPct        []float64
	SLBasedOnLookback      []int
	SLBcbType              []constants.CandleBodyType
	SLToBeCbType           []constants.CandleBodyType
	SLToBeWhenPct          []float64
	TrailSLBcbType         []constants.CandleBodyType
	TrailSLByPct           []float64
	TrailSLWhenPct         []float64
	SettingsIndex          []int
}

// Len is the number of rows once the settings came out of the grid filter.
func (d DynamicOrderSettings) Len() int {
	return len(d.SettingsIndex)
}

// DynamicOrderSetting is a single order row of the grid.
type DynamicOrderSetting struct {
	AccountPctRiskPerTrade float64
	MaxTrades              int
	RiskReward             float64
	SLBasedOnAddPct        float64
	SLBasedOnLookback      int
	SLBcbType              constants.CandleBodyType
	SLToBeCbType           constants.CandleBodyType
	SLToBeWhenPct          float64
	TrailSLBcbType         constants.CandleBodyType
	TrailSLByPct           float64
	TrailSLWhenPct         float64
}

// IndicatorSettings is the column view of the indicator half of the grid.
type IndicatorSettings struct {
	RSILength   []int
	AboveRSICur []float64
	AboveRSIP   []float64
	AboveRSIPP  []float64
	BelowRSICur []float64
	BelowRSIP   []float64
	BelowRSIPP  []float64
}

func (s IndicatorSettings) Len() int {
	return len(s.RSILength)
}

// At returns row i of the column view.
func (s IndicatorSettings) At(i int) IndicatorSetting {
	return IndicatorSetting{
		RSILength:   s.RSILength[i],
		AboveRSICur: s.AboveRSICur[i],
		AboveRSIP:   s.AboveRSIP[i],
		AboveRSIPP:  s.AboveRSIPP[i],
		BelowRSICur: s.BelowRSICur[i],
		BelowRSIP:   s.BelowRSIP[i],
		BelowRSIPP:  s.BelowRSIPP[i],
	}
}

// IndicatorSetting is one selected combination of RSI length and thresholds.
// Cur, P and PP refer to the current, previous and previous-previous bar.
type IndicatorSetting struct {
	RSILength   int
	AboveRSICur float64
	AboveRSIP   float64
	AboveRSIPP  float64
	BelowRSICur float64
	BelowRSIP   float64
	BelowRSIPP  float64
}

// Consistent reports whether the previous-bar threshold is the local extreme
// of both threshold triples.
func (s IndicatorSetting) Consistent() bool {
	aboveCurLeP := s.AboveRSICur <= s.AboveRSIP
	abovePPLeP := s.AboveRSIPP <= s.AboveRSIP
	belowCurGeP := s.BelowRSICur >= s.BelowRSIP
	belowPPGeP := s.BelowRSIPP >= s.BelowRSIP
	return belowCurGeP && belowPPGeP && aboveCurLeP && abovePPLeP
}
