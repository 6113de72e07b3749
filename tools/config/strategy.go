package config

import (
	"fmt"

	"github.com/spf13/viper"

	"rsistrat/constants"
	"rsistrat/model"
	"rsistrat/strategies"
	"rsistrat/utils/validate"
)

// StrategyConfig is the strategy section of the configuration. Unset
// thresholds fall back to the preset of the configured side.
type StrategyConfig struct {
	Side        string    `mapstructure:"side" validate:"required,oneof=long short"`
	Shuffle     bool      `mapstructure:"shuffle"`
	Seed        uint64    `mapstructure:"seed"`
	StartingBar int       `mapstructure:"starting_bar" validate:"gte=0"`
	RSILength   []int     `mapstructure:"rsi_length" validate:"required,dive,gte=2"`
	AboveRSICur []float64 `mapstructure:"above_rsi_cur" validate:"dive,gte=0,lte=100"`
	AboveRSIP   []float64 `mapstructure:"above_rsi_p" validate:"dive,gte=0,lte=100"`
	AboveRSIPP  []float64 `mapstructure:"above_rsi_pp" validate:"dive,gte=0,lte=100"`
	BelowRSICur []float64 `mapstructure:"below_rsi_cur" validate:"dive,gte=0,lte=100"`
	BelowRSIP   []float64 `mapstructure:"below_rsi_p" validate:"dive,gte=0,lte=100"`
	BelowRSIPP  []float64 `mapstructure:"below_rsi_pp" validate:"dive,gte=0,lte=100"`
}

func setStrategyDefaults(side constants.Side) {
	ind := strategies.DefaultIndicatorSettings(side)
	viper.SetDefault("strategy.shuffle", false)
	viper.SetDefault("strategy.seed", 0)
	viper.SetDefault("strategy.starting_bar", strategies.DefaultStaticOrderSettings(side).StartingBar)
	viper.SetDefault("strategy.rsi_length", ind.RSILength)
	viper.SetDefault("strategy.above_rsi_cur", ind.AboveRSICur)
	viper.SetDefault("strategy.above_rsi_p", ind.AboveRSIP)
	viper.SetDefault("strategy.above_rsi_pp", ind.AboveRSIPP)
	viper.SetDefault("strategy.below_rsi_cur", ind.BelowRSICur)
	viper.SetDefault("strategy.below_rsi_p", ind.BelowRSIP)
	viper.SetDefault("strategy.below_rsi_pp", ind.BelowRSIPP)
}

// LoadStrategyConfig reads and validates the strategy section.
func LoadStrategyConfig() (StrategyConfig, error) {
	side := constants.Side(viper.GetString("strategy.side"))
	if side.Valid() {
		setStrategyDefaults(side)
	}

	var root struct {
		Strategy StrategyConfig `mapstructure:"strategy"`
	}
	if err := viper.Unmarshal(&root); err != nil {
		return StrategyConfig{}, fmt.Errorf("strategy config: %w", err)
	}
	if err := validate.Run(root.Strategy, nil); err != nil {
		return StrategyConfig{}, fmt.Errorf("strategy config: %w", err)
	}
	return root.Strategy, nil
}

func (c StrategyConfig) StrategySide() constants.Side {
	return constants.Side(c.Side)
}

func (c StrategyConfig) IndicatorSettings() model.IndicatorSettings {
	return model.IndicatorSettings{
		RSILength:   c.RSILength,
		AboveRSICur: c.AboveRSICur,
		AboveRSIP:   c.AboveRSIP,
		AboveRSIPP:  c.AboveRSIPP,
		BelowRSICur: c.BelowRSICur,
		BelowRSIP:   c.BelowRSIP,
		BelowRSIPP:  c.BelowRSIPP,
	}
}

func (c StrategyConfig) StaticOrderSettings() model.StaticOrderSettings {
	sos := strategies.DefaultStaticOrderSettings(c.StrategySide())
	sos.StartingBar = c.StartingBar
	return sos
}

// Options turns the config into strategy options.
func (c StrategyConfig) Options() []strategies.Option {
	options := []strategies.Option{
		strategies.WithStaticOrderSettings(c.StaticOrderSettings()),
	}
	if c.Shuffle {
		options = append(options, strategies.WithShuffle(c.Seed))
	}
	return options
}
