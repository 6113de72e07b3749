package constants

// Side selects which half of the strategy is active.
type Side string

var (
	SideLong  Side = "long"
	SideShort Side = "short"
)

func (s Side) Valid() bool {
	return s == SideLong || s == SideShort
}

type IncreasePositionType int

const (
	IncreasePositionAmountEntrySize IncreasePositionType = iota
	IncreasePositionPctAccountEntrySize
	IncreasePositionRiskAmountEntrySize
	IncreasePositionRiskPctAccountEntrySize
	IncreasePositionSmallestEntrySizeAsset
)

type LeverageStrategyType int

const (
	LeverageStrategyDynamic LeverageStrategyType = iota
	LeverageStrategyStatic
)

type StopLossStrategyType int

const (
	StopLossStrategyNothing StopLossStrategyType = iota
	StopLossStrategySLBasedOnCandleBody
)

type TakeProfitStrategyType int

const (
	TakeProfitStrategyRiskReward TakeProfitStrategyType = iota
	TakeProfitStrategyProvided
	TakeProfitStrategyNothing
)

// TPFeeType picks which exchange fee is charged when a take profit fills.
type TPFeeType string

var (
	TPFeeLimit  TPFeeType = "limit"
	TPFeeMarket TPFeeType = "market"
)

// PGMinMax chooses min or max of the candle body lookback for the stop loss.
type PGMinMax string

var (
	PGMin PGMinMax = "min"
	PGMax PGMinMax = "max"
)
