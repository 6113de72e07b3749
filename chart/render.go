package chart

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"rsistrat/model"
)

const (
	rsiColor   = "yellow"
	entryColor = "#00F6FF"
	entrySize  = 12
	height     = "500px"
	timeLayout = "2006-01-02 15:04"
)

var ErrNoSignals = errors.New("no signals to plot")

// Render writes an HTML page with the RSI line, the entries as markers on top
// of it and a horizontal line at hLine.
func Render(w io.Writer, df *model.Dataframe, signals model.Signals, hLine float64, title string) error {
	if len(signals.RSI) == 0 {
		return ErrNoSignals
	}

	rsiLine := charts.NewLine()
	rsiLine.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    height,
			Width:     "100%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "RSI"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", Start: 0, End: 100}),
	)

	rsiLine.SetXAxis(xAxis(df, len(signals.RSI))).
		AddSeries("RSI", lineData(signals.RSI),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: rsiColor}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: rsiColor}),
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name:  "threshold",
				YAxis: hLine,
			}),
		)

	entries := charts.NewScatter()
	entries.AddSeries("Entries", scatterData(signals.EntrySignals),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: entryColor}),
	)
	rsiLine.Overlap(entries)

	return rsiLine.Render(w)
}

func xAxis(df *model.Dataframe, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		if df != nil && i < len(df.Time) {
			labels[i] = df.Time[i].Format(timeLayout)
			continue
		}
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

// lineData maps NaN to a missing point so the line shows a gap.
func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			items[i] = opts.LineData{Value: "-"}
			continue
		}
		items[i] = opts.LineData{Value: v}
	}
	return items
}

func scatterData(values []float64) []opts.ScatterData {
	items := make([]opts.ScatterData, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			items[i] = opts.ScatterData{Value: "-"}
			continue
		}
		items[i] = opts.ScatterData{Value: v, Symbol: "circle", SymbolSize: entrySize}
	}
	return items
}
