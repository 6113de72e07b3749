package strategies

import (
	"fmt"
	"io"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"rsistrat/chart"
	"rsistrat/constants"
	"rsistrat/indicator"
	"rsistrat/model"
	"rsistrat/types"
)

// RSIRisingFalling enters when the RSI dips through a threshold band and
// turns back (long), or the mirror image above the band (short).
//
// An instance is not safe for concurrent use: the evaluators overwrite the
// signal arrays in place.
type RSIRisingFalling struct {
	side    Side
	log     *log.Logger
	rsiFunc indicator.RSIFunc

	exchangeSettings model.ExchangeSettings
	backtestSettings model.BacktestSettings
	staticOS         model.StaticOrderSettings
	candidateDOS     model.DynamicOrderSettings
	candidateInd     model.IndicatorSettings

	shuffle bool
	seed    uint64

	grid                  []model.GridRow
	ogDOS                 model.DynamicOrderSettings
	ogIndSet              model.IndicatorSettings
	totalFilteredSettings int

	selected   bool
	curSetIdx  int
	curIndSet  model.IndicatorSetting
	hLine      float64
	signals    model.Signals
	chartTitle string
}

type Option func(*RSIRisingFalling)

// WithShuffle permutes the filtered grid once. A zero seed draws one from the
// clock; Seed reports the seed actually used.
func WithShuffle(seed uint64) Option {
	return func(s *RSIRisingFalling) {
		s.shuffle = true
		s.seed = seed
	}
}

func WithDynamicOrderSettings(dos model.DynamicOrderSettings) Option {
	return func(s *RSIRisingFalling) {
		s.candidateDOS = dos
	}
}

func WithStaticOrderSettings(sos model.StaticOrderSettings) Option {
	return func(s *RSIRisingFalling) {
		s.staticOS = sos
	}
}

func WithExchangeSettings(es model.ExchangeSettings) Option {
	return func(s *RSIRisingFalling) {
		s.exchangeSettings = es
	}
}

func WithBacktestSettings(bs model.BacktestSettings) Option {
	return func(s *RSIRisingFalling) {
		s.backtestSettings = bs
	}
}

// WithRSIFunc replaces the talib RSI, mostly useful in tests.
func WithRSIFunc(fn indicator.RSIFunc) Option {
	return func(s *RSIRisingFalling) {
		s.rsiFunc = fn
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *RSIRisingFalling) {
		s.log = logger
	}
}

// NewRSIRisingFalling builds the settings grid for side from the indicator
// candidates and the order candidates, then filters (and optionally shuffles) it.
func NewRSIRisingFalling(side constants.Side, ind model.IndicatorSettings, options ...Option) (*RSIRisingFalling, error) {
	sideImpl, err := SideFor(side)
	if err != nil {
		return nil, err
	}

	s := &RSIRisingFalling{
		side:             sideImpl,
		log:              log.StandardLogger(),
		rsiFunc:          indicator.RSI,
		exchangeSettings: DefaultExchangeSettings(),
		backtestSettings: DefaultBacktestSettings(),
		staticOS:         DefaultStaticOrderSettings(side),
		candidateDOS:     DefaultDynamicOrderSettings(side),
		candidateInd:     ind,
		curSetIdx:        -1,
		chartTitle:       sideImpl.ChartTitle(),
	}
	for _, option := range options {
		option(s)
	}

	s.setOgIndAndDOS()
	return s, nil
}

func (s *RSIRisingFalling) setOgIndAndDOS() {
	cartProd := CartesianProduct(s.candidateDOS, s.candidateInd)
	filtered := FilterGrid(cartProd, s.log)

	if s.shuffle {
		if s.seed == 0 {
			s.seed = uint64(time.Now().UnixNano())
		}
		s.grid = ShuffleGrid(filtered, rand.New(rand.NewSource(s.seed)))
		s.log.Debugf("shuffled settings with seed %d", s.seed)
	} else {
		s.grid = filtered
	}

	s.ogDOS, s.ogIndSet = SplitGrid(s.grid)
	s.totalFilteredSettings = s.ogIndSet.Len()
	s.log.Debug("set_og_ind_and_dos_tuples")
}

func (s *RSIRisingFalling) Side() constants.Side {
	return s.side.Name()
}

// Seed is the seed used to shuffle the grid, 0 when no shuffle was requested.
func (s *RSIRisingFalling) Seed() uint64 {
	return s.seed
}

func (s *RSIRisingFalling) TotalFilteredSettings() int {
	return s.totalFilteredSettings
}

// Grid returns a copy of the filtered grid.
func (s *RSIRisingFalling) Grid() []model.GridRow {
	return append([]model.GridRow(nil), s.grid...)
}

func (s *RSIRisingFalling) IndicatorSettings() model.IndicatorSettings {
	return s.ogIndSet
}

func (s *RSIRisingFalling) DynamicOrderSettings() model.DynamicOrderSettings {
	return s.ogDOS
}

func (s *RSIRisingFalling) StaticOrderSettings() model.StaticOrderSettings {
	return s.staticOS
}

func (s *RSIRisingFalling) ExchangeSettings() model.ExchangeSettings {
	return s.exchangeSettings
}

func (s *RSIRisingFalling) BacktestSettings() model.BacktestSettings {
	return s.backtestSettings
}

func (s *RSIRisingFalling) ChartTitle() string {
	return s.chartTitle
}

func (s *RSIRisingFalling) HLine() float64 {
	return s.hLine
}

func (s *RSIRisingFalling) Signals() model.Signals {
	return s.signals
}

// CurIndSet returns the selected indicator setting and its grid index.
func (s *RSIRisingFalling) CurIndSet() (model.IndicatorSetting, int, error) {
	if !s.selected {
		return model.IndicatorSetting{}, -1, ErrNoSettingsSelected
	}
	return s.curIndSet, s.curSetIdx, nil
}

// CurDynamicOrderSetting returns the order row matching the selected index.
func (s *RSIRisingFalling) CurDynamicOrderSetting() (model.DynamicOrderSetting, error) {
	if !s.selected {
		return model.DynamicOrderSetting{}, ErrNoSettingsSelected
	}
	return s.grid[s.curSetIdx].Order, nil
}

// SetCurIndSet selects row setIdx of the filtered grid for the evaluators.
func (s *RSIRisingFalling) SetCurIndSet(setIdx int) error {
	if setIdx < 0 || setIdx >= s.totalFilteredSettings {
		return fmt.Errorf("%w: %d of %d", ErrSettingsIndexOutOfRange, setIdx, s.totalFilteredSettings)
	}

	s.curIndSet = s.ogIndSet.At(setIdx)
	s.curSetIdx = setIdx
	s.selected = true
	s.hLine = s.side.HLine(s.curIndSet)

	th := s.side.Thresholds(s.curIndSet)
	s.log.Infof(`
Indicator Settings
Indicator Settings Index= %d
rsi_length= %d
%s_rsi_cur= %v
%s_rsi_p= %v
%s_rsi_pp= %v
`, setIdx, s.curIndSet.RSILength,
		s.thresholdPrefix(), th.Cur,
		s.thresholdPrefix(), th.P,
		s.thresholdPrefix(), th.PP)
	return nil
}

func (s *RSIRisingFalling) thresholdPrefix() string {
	if s.side.Name() == constants.SideShort {
		return "above"
	}
	return "below"
}

func (s *RSIRisingFalling) EntryMessage(barIndex int) {
	s.side.EntryMessage(s.log, barIndex)
}

// exception logs err under fn and returns it wrapped with the same breadcrumb.
func (s *RSIRisingFalling) exception(fn string, err error) error {
	s.log.Errorf("Exception %s -> %v", fn, err)
	return fmt.Errorf("exception %s -> %w", fn, err)
}

func (s *RSIRisingFalling) funcName(name string) string {
	return fmt.Sprintf("%s_%s", s.side.Name(), name)
}

// computeRSI runs the RSI function for the selected length, turning a panic
// into an error.
func (s *RSIRisingFalling) computeRSI(source []float64) (rsi []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			rsi, err = nil, fmt.Errorf("rsi: %v", r)
		}
	}()

	rsi, err = s.rsiFunc(source, s.curIndSet.RSILength)
	if err != nil {
		return nil, err
	}
	if len(rsi) != len(source) {
		return nil, fmt.Errorf("%w: got %d want %d", ErrRSILength, len(rsi), len(source))
	}
	return rsi, nil
}

// lastTriple computes the rounded RSI over closes and returns its last three values.
func (s *RSIRisingFalling) lastTriple(closes []float64) (RSITriple, error) {
	raw, err := s.computeRSI(closes)
	if err != nil {
		return RSITriple{}, err
	}
	rsi := model.Series[float64](indicator.RoundSeries(raw, 1))
	s.log.Debug("Created RSI")

	return RSITriple{
		PP:  rsi.Last(2),
		P:   rsi.Last(1),
		Cur: rsi.Last(0),
	}, nil
}

// SetEntriesExitsArray computes the signal arrays over the whole series.
func (s *RSIRisingFalling) SetEntriesExitsArray(df *model.Dataframe) error {
	fn := s.funcName("set_entries_exits_array")
	if !s.selected {
		return s.exception(fn, ErrNoSettingsSelected)
	}
	if df == nil {
		return s.exception(fn, ErrNoCandles)
	}

	raw, err := s.computeRSI(df.Close)
	if err != nil {
		return s.exception(fn, err)
	}
	rsi := indicator.RoundSeries(raw, 1)
	s.log.Debug("Created RSI")

	rsiLB := indicator.LookbackOne(rsi, 2, false, math.NaN())
	pRSI := rsiLB[0]
	ppRSI := rsiLB[1]

	th := s.side.Thresholds(s.curIndSet)
	entries := make([]bool, len(rsi))
	entrySignals := make([]float64, len(rsi))
	exitPrices := make([]float64, len(rsi))
	for i := range rsi {
		entries[i] = s.side.Evaluate(RSITriple{PP: ppRSI[i], P: pRSI[i], Cur: rsi[i]}, th)
		entrySignals[i] = math.NaN()
		exitPrices[i] = math.NaN()
		if entries[i] {
			entrySignals[i] = rsi[i]
		}
	}

	warmup := min(s.staticOS.StartingBar, len(rsi))
	for i := 0; i < warmup; i++ {
		entries[i] = false
		entrySignals[i] = math.NaN()
		exitPrices[i] = math.NaN()
	}

	s.signals = model.Signals{
		RSI:          rsi,
		Entries:      entries,
		EntrySignals: entrySignals,
		ExitPrices:   exitPrices,
	}
	s.log.Debug("Created entries exits")
	return nil
}

// LiveBTSetEntriesExitsArray allocates empty full length signal arrays that
// LiveBT fills bar by bar.
func (s *RSIRisingFalling) LiveBTSetEntriesExitsArray(df *model.Dataframe) error {
	fn := s.funcName("live_bt_set_entries_exits_array")
	if !s.selected {
		return s.exception(fn, ErrNoSettingsSelected)
	}
	if df == nil {
		return s.exception(fn, ErrNoCandles)
	}

	rsi, err := s.computeRSI(df.Close)
	if err != nil {
		return s.exception(fn, err)
	}

	candleLen := len(df.Close)
	s.signals = model.Signals{
		RSI:          rsi,
		Entries:      make([]bool, candleLen),
		EntrySignals: make([]float64, candleLen),
		ExitPrices:   make([]float64, candleLen),
	}
	for i := 0; i < candleLen; i++ {
		s.signals.EntrySignals[i] = math.NaN()
		s.signals.ExitPrices[i] = math.NaN()
	}
	return nil
}

// LiveBT evaluates the entry on the last bar of the window [beg, end) and, on
// an entry, records it at barIndex of the arrays prepared by
// LiveBTSetEntriesExitsArray.
func (s *RSIRisingFalling) LiveBT(barIndex, beg, end int, df *model.Dataframe) (bool, error) {
	fn := s.funcName("live_bt")
	if !s.selected {
		return false, s.exception(fn, ErrNoSettingsSelected)
	}
	if df == nil {
		return false, s.exception(fn, ErrNoCandles)
	}
	if beg < 0 || end > len(df.Close) || beg > end {
		return false, s.exception(fn, fmt.Errorf("%w: [%d, %d) of %d", ErrInvalidWindow, beg, end, len(df.Close)))
	}
	if end-beg < 3 {
		return false, s.exception(fn, fmt.Errorf("%w: window of %d bars", ErrInsufficientHistory, end-beg))
	}
	if barIndex < 0 || barIndex >= len(s.signals.EntrySignals) {
		return false, s.exception(fn, fmt.Errorf("%w: %d of %d", ErrBarIndexOutOfRange, barIndex, len(s.signals.EntrySignals)))
	}

	closes := df.Close.Window(beg, end)
	triple, err := s.lastTriple(closes)
	if err != nil {
		return false, s.exception(fn, err)
	}

	if s.side.Evaluate(triple, s.side.Thresholds(s.curIndSet)) {
		s.signals.Entries[barIndex] = true
		s.signals.EntrySignals[barIndex] = triple.Cur
		return true, nil
	}
	return false, nil
}

// LiveEvaluate reports whether the last bar of df is an entry.
func (s *RSIRisingFalling) LiveEvaluate(df *model.Dataframe) (bool, error) {
	fn := s.funcName("live_evaluate")
	if !s.selected {
		return false, s.exception(fn, ErrNoSettingsSelected)
	}
	if df == nil {
		return false, s.exception(fn, ErrNoCandles)
	}
	if len(df.Close) < 3 {
		return false, s.exception(fn, fmt.Errorf("%w: %d bars", ErrInsufficientHistory, len(df.Close)))
	}

	triple, err := s.lastTriple(df.Close)
	if err != nil {
		return false, s.exception(fn, err)
	}
	return s.side.Evaluate(triple, s.side.Thresholds(s.curIndSet)), nil
}

// PlotSignals renders the last computed signals as an HTML chart.
func (s *RSIRisingFalling) PlotSignals(w io.Writer, df *model.Dataframe) error {
	return chart.Render(w, df, s.signals, s.hLine, s.chartTitle)
}

var _ types.Strategy = (*RSIRisingFalling)(nil)
