package strategies

import (
	"rsistrat/constants"
	"rsistrat/model"
)

func DefaultBacktestSettings() model.BacktestSettings {
	return model.BacktestSettings{
		GainsPctFilter: 0,
		QFFilter:       0,
	}
}

func DefaultExchangeSettings() model.ExchangeSettings {
	return model.ExchangeSettings{
		AssetTickStep:    3,
		LeverageMode:     constants.LeverageModeIsolated,
		LeverageTickStep: 2,
		LimitFeePct:      0.0003,
		MarketFeePct:     0.0006,
		MaxAssetSize:     100.0,
		MaxLeverage:      150.0,
		MinAssetSize:     0.001,
		MinLeverage:      1.0,
		MMRPct:           0.004,
		PositionMode:     constants.PositionModeHedge,
		PriceTickStep:    1,
	}
}

// DefaultStaticOrderSettings are the same for both sides except the stop loss
// candle body preference.
func DefaultStaticOrderSettings(side constants.Side) model.StaticOrderSettings {
	pg := constants.PGMin
	if side == constants.SideShort {
		pg = constants.PGMax
	}
	return model.StaticOrderSettings{
		IncreasePositionType: constants.IncreasePositionRiskPctAccountEntrySize,
		LeverageStrategyType: constants.LeverageStrategyDynamic,
		PGMinMaxSLBcb:        pg,
		SLStrategyType:       constants.StopLossStrategySLBasedOnCandleBody,
		SLToBeBool:           false,
		StartingBar:          100,
		StartingEquity:       1000.0,
		TPFeeType:            constants.TPFeeLimit,
		TPStrategyType:       constants.TakeProfitStrategyRiskReward,
		TrailSLBool:          true,
	}
}

func DefaultDynamicOrderSettings(side constants.Side) model.DynamicOrderSettings {
	body := constants.CandleBodyLow
	if side == constants.SideShort {
		body = constants.CandleBodyHigh
	}
	return model.DynamicOrderSettings{
		AccountPctRiskPerTrade: []float64{10},
		MaxTrades:              []int{4, 6, 8},
		RiskReward:             []float64{5, 8, 10, 12},
		SLBasedOnAddPct:        []float64{0.3, 0.5, 0.7},
		SLBasedOnLookback:      []int{50},
		SLBcbType:              []constants.CandleBodyType{body},
		SLToBeCbType:           []constants.CandleBodyType{constants.CandleBodyNothing},
		SLToBeWhenPct:          []float64{0},
		TrailSLBcbType:         []constants.CandleBodyType{body},
		TrailSLByPct:           []float64{2, 3, 4},
		TrailSLWhenPct:         []float64{2, 3, 4},
	}
}

func DefaultIndicatorSettings(side constants.Side) model.IndicatorSettings {
	if side == constants.SideShort {
		return model.IndicatorSettings{
			RSILength:   []int{15, 25, 35},
			AboveRSICur: []float64{70, 60, 40},
			AboveRSIP:   []float64{70, 60, 50},
			AboveRSIPP:  []float64{70, 60, 50},
			BelowRSICur: []float64{0},
			BelowRSIP:   []float64{0},
			BelowRSIPP:  []float64{0},
		}
	}
	return model.IndicatorSettings{
		RSILength:   []int{15, 25, 35},
		AboveRSICur: []float64{0},
		AboveRSIP:   []float64{0},
		AboveRSIPP:  []float64{0},
		BelowRSICur: []float64{30, 40, 60},
		BelowRSIP:   []float64{30, 40, 50},
		BelowRSIPP:  []float64{30, 40, 50},
	}
}
