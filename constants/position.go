package constants

type PositionMode int

const (
	PositionModeOneWay PositionMode = iota
	PositionModeBuySide
	PositionModeSellSide
	PositionModeHedge
)

type LeverageMode int

const (
	LeverageModeCross LeverageMode = iota
	LeverageModeIsolated
)
