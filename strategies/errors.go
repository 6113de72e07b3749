package strategies

import "errors"

var (
	ErrInsufficientHistory     = errors.New("insufficient history")
	ErrSettingsIndexOutOfRange = errors.New("settings index out of range")
	ErrBarIndexOutOfRange      = errors.New("bar index out of range")
	ErrInvalidWindow           = errors.New("invalid candle window")
	ErrNoSettingsSelected      = errors.New("no indicator settings selected")
	ErrRSILength               = errors.New("rsi series length does not match source")
	ErrNoCandles               = errors.New("no candles")
	ErrUnknownSide             = errors.New("unknown side")
)
