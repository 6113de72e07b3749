package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"

	"rsistrat/model"
)

var (
	ErrUnknownFeed    = errors.New("unknown feed")
	ErrEmptyFile      = errors.New("empty csv file")
	ErrMissingColumns = errors.New("missing csv columns")
)

// timestamps above this are taken as milliseconds
const millisThreshold = 1e12

type PairFeed struct {
	Pair       string
	File       string
	Timeframe  string
	HeikinAshi bool
}

type CSVFeed struct {
	Feeds               map[string]PairFeed
	CandlePairTimeFrame map[string][]model.Candle
}

func parseHeaders(headers []string) (index map[string]int, additional []string, ok bool) {
	headerMap := map[string]int{
		"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
	}

	_, err := strconv.ParseFloat(headers[0], 64)
	if err == nil {
		return headerMap, additional, false
	}

	for index, h := range headers {
		if _, ok := headerMap[h]; !ok {
			additional = append(additional, h)
		}
		headerMap[h] = index
	}

	return headerMap, additional, true
}

func parseTime(value string) (time.Time, error) {
	timestamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	if timestamp > millisThreshold {
		return time.UnixMilli(timestamp).UTC(), nil
	}
	return time.Unix(timestamp, 0).UTC(), nil
}

// requiredColumns is the row length needed to read every mapped column.
func requiredColumns(headerMap map[string]int, additionalHeaders []string) int {
	need := 0
	for _, name := range append([]string{"time", "open", "close", "low", "high", "volume"}, additionalHeaders...) {
		need = max(need, headerMap[name]+1)
	}
	return need
}

func parseLine(line []string, headerMap map[string]int, additionalHeaders []string, pair string) (model.Candle, error) {
	var err error
	candle := model.Candle{Pair: pair, Complete: true}

	if need := requiredColumns(headerMap, additionalHeaders); len(line) < need {
		return candle, fmt.Errorf("%w: %d of %d", ErrMissingColumns, len(line), need)
	}

	candle.Time, err = parseTime(line[headerMap["time"]])
	if err != nil {
		return candle, err
	}
	candle.UpdatedAt = candle.Time

	fields := []struct {
		name  string
		value *float64
	}{
		{"open", &candle.Open},
		{"close", &candle.Close},
		{"low", &candle.Low},
		{"high", &candle.High},
		{"volume", &candle.Volume},
	}
	for _, field := range fields {
		*field.value, err = strconv.ParseFloat(line[headerMap[field.name]], 64)
		if err != nil {
			return candle, fmt.Errorf("%s: %w", field.name, err)
		}
	}

	if len(additionalHeaders) > 0 {
		candle.Metadata = make(map[string]float64)
		for _, header := range additionalHeaders {
			candle.Metadata[header], err = strconv.ParseFloat(line[headerMap[header]], 64)
			if err != nil {
				return candle, fmt.Errorf("%s: %w", header, err)
			}
		}
	}
	return candle, nil
}

func readFeed(feed PairFeed) ([]model.Candle, error) {
	csvFile, err := os.Open(feed.File)
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()

	csvLines, err := csv.NewReader(csvFile).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(csvLines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, feed.File)
	}

	// map each header label with its index
	headerMap, additionalHeaders, hasCustomHeaders := parseHeaders(csvLines[0])
	if hasCustomHeaders {
		csvLines = csvLines[1:]
	}

	candles := make([]model.Candle, 0, len(csvLines))
	ha := model.NewHeikinAshi()
	for i, line := range csvLines {
		candle, err := parseLine(line, headerMap, additionalHeaders, feed.Pair)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", feed.File, i+1, err)
		}
		if feed.HeikinAshi {
			candle = candle.ToHeikinAshi(ha)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// NewCSVFeed loads the candles of every feed. Without a header row the
// columns are time, open, close, low, high, volume; with one, extra columns
// end up in the candle metadata.
func NewCSVFeed(feeds ...PairFeed) (*CSVFeed, error) {
	csvFeed := &CSVFeed{
		Feeds:               make(map[string]PairFeed),
		CandlePairTimeFrame: make(map[string][]model.Candle),
	}

	for _, feed := range feeds {
		candles, err := readFeed(feed)
		if err != nil {
			return nil, err
		}
		csvFeed.Feeds[feed.Pair] = feed
		csvFeed.CandlePairTimeFrame[csvFeed.feedTimeframeKey(feed.Pair, feed.Timeframe)] = candles
	}

	return csvFeed, nil
}

func (c CSVFeed) feedTimeframeKey(pair, timeframe string) string {
	return fmt.Sprintf("%s--%s", pair, timeframe)
}

// Limit keeps only the trailing duration of every feed.
func (c *CSVFeed) Limit(duration time.Duration) *CSVFeed {
	for pair, candles := range c.CandlePairTimeFrame {
		if len(candles) == 0 {
			continue
		}
		start := candles[len(candles)-1].Time.Add(-duration)
		c.CandlePairTimeFrame[pair] = lo.Filter(candles, func(candle model.Candle, _ int) bool {
			return candle.Time.After(start)
		})
	}
	return c
}

// LimitString is Limit with a duration such as "30d" or "1w2d".
func (c *CSVFeed) LimitString(window string) (*CSVFeed, error) {
	duration, err := str2duration.ParseDuration(window)
	if err != nil {
		return nil, err
	}
	return c.Limit(duration), nil
}

// Dataframe returns the candles of a feed in the column layout the strategy reads.
func (c CSVFeed) Dataframe(pair, timeframe string) (*model.Dataframe, error) {
	candles, ok := c.CandlePairTimeFrame[c.feedTimeframeKey(pair, timeframe)]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownFeed, pair, timeframe)
	}
	return NewDataframe(pair, candles), nil
}

func NewDataframe(pair string, candles []model.Candle) *model.Dataframe {
	df := &model.Dataframe{
		Pair:     pair,
		Close:    make(model.Series[float64], 0, len(candles)),
		Open:     make(model.Series[float64], 0, len(candles)),
		High:     make(model.Series[float64], 0, len(candles)),
		Low:      make(model.Series[float64], 0, len(candles)),
		Volume:   make(model.Series[float64], 0, len(candles)),
		Time:     make([]time.Time, 0, len(candles)),
		Metadata: make(map[string]model.Series[float64]),
	}
	for _, candle := range candles {
		df.Close = append(df.Close, candle.Close)
		df.Open = append(df.Open, candle.Open)
		df.High = append(df.High, candle.High)
		df.Low = append(df.Low, candle.Low)
		df.Volume = append(df.Volume, candle.Volume)
		df.Time = append(df.Time, candle.Time)
		df.LastUpdate = candle.UpdatedAt
		for key, value := range candle.Metadata {
			df.Metadata[key] = append(df.Metadata[key], value)
		}
	}
	return df
}
