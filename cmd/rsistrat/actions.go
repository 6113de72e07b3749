package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/stat"
	"gorm.io/gorm"

	"rsistrat/chart"
	"rsistrat/constants"
	"rsistrat/feed"
	"rsistrat/model"
	"rsistrat/storage"
	"rsistrat/strategies"
	"rsistrat/tools/config"
	"rsistrat/types"
	logutil "rsistrat/utils/log"
)

var ErrWindowTooSmall = errors.New("window must hold at least 3 candles")

func newStrategy() (*strategies.RSIRisingFalling, error) {
	cfg, err := config.LoadStrategyConfig()
	if err != nil {
		return nil, err
	}

	options := append(cfg.Options(), strategies.WithLogger(logger))
	strategy, err := strategies.NewRSIRisingFalling(cfg.StrategySide(), cfg.IndicatorSettings(), options...)
	if err != nil {
		return nil, err
	}
	if strategy.Seed() != 0 {
		logger.Infof("settings shuffled with seed %d", strategy.Seed())
	}
	return strategy, nil
}

func loadDataframe(c *cli.Context) (*model.Dataframe, error) {
	pair, timeframe := c.String("pair"), c.String("timeframe")
	csvFeed, err := feed.NewCSVFeed(feed.PairFeed{
		Pair:       pair,
		File:       c.String("file"),
		Timeframe:  timeframe,
		HeikinAshi: c.Bool("heikin-ashi"),
	})
	if err != nil {
		return nil, err
	}

	if last := c.String("last"); last != "" {
		if csvFeed, err = csvFeed.LimitString(last); err != nil {
			return nil, err
		}
	}
	return csvFeed.Dataframe(pair, timeframe)
}

func openStorage() (*storage.SQL, error) {
	return storage.FromSQL(sqlite.Open(viper.GetString("storage.path")), &gorm.Config{
		Logger: logutil.NewGormLogger(logger),
	})
}

func settingsAction(c *cli.Context) error {
	strategy, err := newStrategy()
	if err != nil {
		return err
	}

	logger.Infof("%d settings after filtering", strategy.TotalFilteredSettings())
	return writeSettingsTable(os.Stdout, strategy.Side(), strategy.Grid(), c.Int("limit"))
}

func signalsAction(c *cli.Context) error {
	strategy, err := newStrategy()
	if err != nil {
		return err
	}
	df, err := loadDataframe(c)
	if err != nil {
		return err
	}

	indexes := []int{c.Int("index")}
	if c.Bool("all") {
		indexes = lo.Range(strategy.TotalFilteredSettings())
	}

	var bar *progressbar.ProgressBar
	if len(indexes) > 1 {
		bar = progressbar.Default(int64(len(indexes)))
	}

	positions := make([]types.EntryPosition, 0)
	records := make([]*model.SignalRecord, 0)
	for _, idx := range indexes {
		if err := strategy.SetCurIndSet(idx); err != nil {
			return err
		}
		if err := strategy.SetEntriesExitsArray(df); err != nil {
			return err
		}

		found := types.EntryPositions(strategy.Side(), idx, df, strategy.Signals())
		positions = append(positions, found...)
		records = append(records, signalRecords(strategy, c.String("timeframe"), found)...)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				logger.Warnf("update progressbar fail: %v", err)
			}
		}
	}

	writeEntriesTable(os.Stdout, positions)
	if err := chart.Histogram(os.Stdout, lo.Map(positions, func(p types.EntryPosition, _ int) float64 {
		return p.RSI
	})); err != nil {
		return err
	}

	if path := c.String("chart"); path != "" {
		if err := writeChart(strategy, df, c.Int("index"), path); err != nil {
			return err
		}
	}

	if c.Bool("store") {
		db, err := openStorage()
		if err != nil {
			return err
		}
		if err := db.CreateSignals(records); err != nil {
			return err
		}
		logger.Infof("stored %d signals in %s", len(records), viper.GetString("storage.path"))
	}
	return nil
}

func writeChart(strategy *strategies.RSIRisingFalling, df *model.Dataframe, idx int, path string) error {
	if err := strategy.SetCurIndSet(idx); err != nil {
		return err
	}
	if err := strategy.SetEntriesExitsArray(df); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := strategy.PlotSignals(file, df); err != nil {
		return err
	}
	logger.Infof("chart written to %s", path)
	return nil
}

func replayAction(c *cli.Context) error {
	window := c.Int("window")
	if window != 0 && window < 3 {
		return fmt.Errorf("%w: %d", ErrWindowTooSmall, window)
	}

	strategy, err := newStrategy()
	if err != nil {
		return err
	}
	df, err := loadDataframe(c)
	if err != nil {
		return err
	}

	idx := c.Int("index")
	if err := strategy.SetCurIndSet(idx); err != nil {
		return err
	}
	if err := strategy.LiveBTSetEntriesExitsArray(df); err != nil {
		return err
	}

	start := max(strategy.StaticOrderSettings().StartingBar, 2)
	if start >= df.Len() {
		logger.Warnf("%d candles do not reach the starting bar %d", df.Len(), start)
		return nil
	}

	bar := progressbar.Default(int64(df.Len() - start))
	for barIndex := start; barIndex < df.Len(); barIndex++ {
		beg := 0
		if window > 0 {
			beg = max(0, barIndex+1-window)
		}

		entry, err := strategy.LiveBT(barIndex, beg, barIndex+1, df)
		if err != nil {
			return err
		}
		if entry {
			strategy.EntryMessage(barIndex)
		}
		if err := bar.Add(1); err != nil {
			logger.Warnf("update progressbar fail: %v", err)
		}
	}

	writeEntriesTable(os.Stdout, types.EntryPositions(strategy.Side(), idx, df, strategy.Signals()))
	return nil
}

func evaluateAction(c *cli.Context) error {
	window := c.Int("window")
	if window != 0 && window < 3 {
		return fmt.Errorf("%w: %d", ErrWindowTooSmall, window)
	}

	run := func() error {
		strategy, err := newStrategy()
		if err != nil {
			return err
		}
		df, err := loadDataframe(c)
		if err != nil {
			return err
		}
		if err := strategy.SetCurIndSet(c.Int("index")); err != nil {
			return err
		}

		entry, err := strategy.LiveEvaluate(trailingWindow(df, window))
		if err != nil {
			return err
		}
		if entry {
			strategy.EntryMessage(df.Len() - 1)
			return nil
		}
		logger.Infof("no entry at %s", df.Time[df.Len()-1].Format(time.DateTime))
		return nil
	}

	if err := run(); err != nil {
		return err
	}
	if !c.Bool("watch") {
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return config.WatchConfig(ctx, logger, c.String("config"), c.String("env"), func() {
		if err := run(); err != nil {
			logger.Error(err)
		}
	})
}

// trailingWindow keeps the last window candles, all of them for 0.
func trailingWindow(df *model.Dataframe, window int) *model.Dataframe {
	if window <= 0 {
		return df
	}
	sample := df.Sample(window)
	return &sample
}

func journalAction(c *cli.Context) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	if c.Bool("reset") {
		return db.ResetTables()
	}

	filters := make([]storage.SignalFilter, 0)
	if pair := c.String("pair"); pair != "" {
		filters = append(filters, storage.WithPair(pair))
	}
	if side := c.String("side"); side != "" {
		filters = append(filters, storage.WithSide(side))
	}

	signals, err := db.Signals(filters...)
	if err != nil {
		return err
	}
	writeJournalTable(os.Stdout, signals)
	return nil
}

func signalRecords(strategy *strategies.RSIRisingFalling, timeframe string, positions []types.EntryPosition) []*model.SignalRecord {
	setting, _, err := strategy.CurIndSet()
	if err != nil {
		return nil
	}
	side, err := strategies.SideFor(strategy.Side())
	if err != nil {
		return nil
	}
	th := side.Thresholds(setting)

	return lo.Map(positions, func(p types.EntryPosition, _ int) *model.SignalRecord {
		return &model.SignalRecord{
			Pair:          p.Pair,
			Timeframe:     timeframe,
			Side:          string(p.Side),
			SettingsIndex: p.SettingsIndex,
			RsiLength:     setting.RSILength,
			ThresholdCur:  th.Cur,
			ThresholdP:    th.P,
			ThresholdPP:   th.PP,
			BarIndex:      p.BarIndex,
			BarTime:       p.Time,
			Close:         p.Close,
			Rsi:           p.RSI,
		}
	})
}

func writeSettingsTable(w io.Writer, side constants.Side, rows []model.GridRow, limit int) error {
	sideImpl, err := strategies.SideFor(side)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "RSI Length", "Cur", "P", "PP", "Max Trades", "Risk Reward", "SL Body", "SL Add %", "Trail SL %"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	shown := rows
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
	}
	for _, row := range shown {
		th := sideImpl.Thresholds(row.Indicator)
		table.Append([]string{
			strconv.Itoa(row.Index),
			strconv.Itoa(row.Indicator.RSILength),
			fmt.Sprintf("%.1f", th.Cur),
			fmt.Sprintf("%.1f", th.P),
			fmt.Sprintf("%.1f", th.PP),
			strconv.Itoa(row.Order.MaxTrades),
			fmt.Sprintf("%.1f", row.Order.RiskReward),
			row.Order.SLBcbType.String(),
			fmt.Sprintf("%.1f", row.Order.SLBasedOnAddPct),
			fmt.Sprintf("%.1f", row.Order.TrailSLByPct),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "TOTAL", strconv.Itoa(len(rows))})
	table.Render()
	return nil
}

func writeEntriesTable(w io.Writer, positions []types.EntryPosition) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Side", "Pair", "Settings", "Bar", "Time", "Close", "RSI"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	for _, p := range positions {
		table.Append([]string{
			string(p.Side),
			p.Pair,
			strconv.Itoa(p.SettingsIndex),
			strconv.Itoa(p.BarIndex),
			p.Time.Format(time.DateTime),
			fmt.Sprintf("%.4f", p.Close),
			fmt.Sprintf("%.1f", p.RSI),
		})
	}

	avgRSI := "-"
	if len(positions) > 0 {
		avgRSI = fmt.Sprintf("%.1f", stat.Mean(lo.Map(positions, func(p types.EntryPosition, _ int) float64 {
			return p.RSI
		}), nil))
	}
	table.SetFooter([]string{"", "", "", "", "ENTRIES", strconv.Itoa(len(positions)), avgRSI})
	table.Render()
}

func writeJournalTable(w io.Writer, signals []*model.SignalRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pair", "Timeframe", "Side", "Settings", "RSI Length", "Bar", "Time", "Close", "RSI"})
	for _, s := range signals {
		table.Append([]string{
			s.Pair,
			s.Timeframe,
			s.Side,
			strconv.Itoa(s.SettingsIndex),
			strconv.Itoa(s.RsiLength),
			strconv.Itoa(s.BarIndex),
			s.BarTime.Format(time.DateTime),
			fmt.Sprintf("%.4f", s.Close),
			fmt.Sprintf("%.1f", s.Rsi),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "TOTAL", strconv.Itoa(len(signals))})
	table.Render()
}
