package strategies

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"rsistrat/constants"
	"rsistrat/model"
)

// Side is the long or short half of the strategy. Every evaluator goes
// through the same Side so the three-bar comparison lives in one place.
type Side interface {
	Name() constants.Side
	ChartTitle() string
	Thresholds(setting model.IndicatorSetting) Thresholds
	// HLine is the threshold drawn on the chart.
	HLine(setting model.IndicatorSetting) float64
	Evaluate(rsi RSITriple, th Thresholds) bool
	EntryMessage(logger *log.Logger, barIndex int)
}

func SideFor(side constants.Side) (Side, error) {
	switch side {
	case constants.SideLong:
		return Long{}, nil
	case constants.SideShort:
		return Short{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSide, side)
}

type Long struct{}

func (Long) Name() constants.Side {
	return constants.SideLong
}

func (Long) ChartTitle() string {
	return "Long Signal"
}

func (Long) Thresholds(setting model.IndicatorSetting) Thresholds {
	return Thresholds{Cur: setting.BelowRSICur, P: setting.BelowRSIP, PP: setting.BelowRSIPP}
}

func (Long) HLine(setting model.IndicatorSetting) float64 {
	return setting.BelowRSICur
}

func (Long) Evaluate(rsi RSITriple, th Thresholds) bool {
	return EvaluateRSIEntry(rsi, th)
}

func (Long) EntryMessage(logger *log.Logger, barIndex int) {
	logger.Info("\n\n")
	logger.WithField("bar_index", barIndex).Info("Entry time!!!")
}

type Short struct{}

func (Short) Name() constants.Side {
	return constants.SideShort
}

func (Short) ChartTitle() string {
	return "Short Signal"
}

func (Short) Thresholds(setting model.IndicatorSetting) Thresholds {
	return Thresholds{Cur: setting.AboveRSICur, P: setting.AboveRSIP, PP: setting.AboveRSIPP}
}

func (Short) HLine(setting model.IndicatorSetting) float64 {
	return setting.AboveRSICur
}

func (Short) Evaluate(rsi RSITriple, th Thresholds) bool {
	return EvaluateRSIShortEntry(rsi, th)
}

func (Short) EntryMessage(logger *log.Logger, barIndex int) {
	logger.Info("\n\n")
	logger.WithField("bar_index", barIndex).Info("Short entry time!!!")
}
