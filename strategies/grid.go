package strategies

import (
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"rsistrat/constants"
	"rsistrat/model"
)

// axis is one column of the Cartesian product.
type axis struct {
	size int
	set  func(row *model.GridRow, i int)
}

// column treats an empty candidate list as the single zero value so an unset
// setting never collapses the product to nothing.
func column[T any](values []T) []T {
	if len(values) == 0 {
		var zero T
		return []T{zero}
	}
	return values
}

func newAxis[T any](values []T, set func(row *model.GridRow, v T)) axis {
	values = column(values)
	return axis{
		size: len(values),
		set: func(row *model.GridRow, i int) {
			set(row, values[i])
		},
	}
}

func orderAxes(dos model.DynamicOrderSettings) []axis {
	return []axis{
		newAxis(dos.AccountPctRiskPerTrade, func(r *model.GridRow, v float64) { r.Order.AccountPctRiskPerTrade = v }),
		newAxis(dos.MaxTrades, func(r *model.GridRow, v int) { r.Order.MaxTrades = v }),
		newAxis(dos.RiskReward, func(r *model.GridRow, v float64) { r.Order.RiskReward = v }),
		newAxis(dos.SLBasedOnAddPct, func(r *model.GridRow, v float64) { r.Order.SLBasedOnAddPct = v }),
		newAxis(dos.SLBasedOnLookback, func(r *model.GridRow, v int) { r.Order.SLBasedOnLookback = v }),
		newAxis(dos.SLBcbType, func(r *model.GridRow, v constants.CandleBodyType) { r.Order.SLBcbType = v }),
		newAxis(dos.SLToBeCbType, func(r *model.GridRow, v constants.CandleBodyType) { r.Order.SLToBeCbType = v }),
		newAxis(dos.SLToBeWhenPct, func(r *model.GridRow, v float64) { r.Order.SLToBeWhenPct = v }),
		newAxis(dos.TrailSLBcbType, func(r *model.GridRow, v constants.CandleBodyType) { r.Order.TrailSLBcbType = v }),
		newAxis(dos.TrailSLByPct, func(r *model.GridRow, v float64) { r.Order.TrailSLByPct = v }),
		newAxis(dos.TrailSLWhenPct, func(r *model.GridRow, v float64) { r.Order.TrailSLWhenPct = v }),
	}
}

func indicatorAxes(ind model.IndicatorSettings) []axis {
	return []axis{
		newAxis(ind.RSILength, func(r *model.GridRow, v int) { r.Indicator.RSILength = v }),
		newAxis(ind.AboveRSICur, func(r *model.GridRow, v float64) { r.Indicator.AboveRSICur = v }),
		newAxis(ind.AboveRSIP, func(r *model.GridRow, v float64) { r.Indicator.AboveRSIP = v }),
		newAxis(ind.AboveRSIPP, func(r *model.GridRow, v float64) { r.Indicator.AboveRSIPP = v }),
		newAxis(ind.BelowRSICur, func(r *model.GridRow, v float64) { r.Indicator.BelowRSICur = v }),
		newAxis(ind.BelowRSIP, func(r *model.GridRow, v float64) { r.Indicator.BelowRSIP = v }),
		newAxis(ind.BelowRSIPP, func(r *model.GridRow, v float64) { r.Indicator.BelowRSIPP = v }),
	}
}

// CartesianProduct builds every combination of the order and indicator
// candidates. The first order field varies slowest and the last indicator
// field fastest. Index holds the position in the full product.
func CartesianProduct(dos model.DynamicOrderSettings, ind model.IndicatorSettings) []model.GridRow {
	axes := append(orderAxes(dos), indicatorAxes(ind)...)
	total := 1
	for _, a := range axes {
		total *= a.size
	}

	return lo.Map(lo.Range(total), func(n int, _ int) model.GridRow {
		row := model.GridRow{Index: n}
		rem := n
		for a := len(axes) - 1; a >= 0; a-- {
			axes[a].set(&row, rem%axes[a].size)
			rem /= axes[a].size
		}
		return row
	})
}

// FilterGrid drops the rows whose thresholds are not consistent and
// renumbers the survivors 0..N-1 keeping their order. An empty result is valid.
func FilterGrid(rows []model.GridRow, logger *log.Logger) []model.GridRow {
	filtered := lo.Filter(rows, func(row model.GridRow, _ int) bool {
		return row.Indicator.Consistent()
	})
	for i := range filtered {
		filtered[i].Index = i
	}

	if logger != nil {
		logger.Debugf("cart prod size %d", len(rows))
		logger.Debugf("filtered cart prod size %d", len(filtered))
		logger.Debugf("Removed %d", len(rows)-len(filtered))
	}
	return filtered
}

// ShuffleGrid permutes the rows once using rng and renumbers them 0..N-1.
// The input is left untouched.
func ShuffleGrid(rows []model.GridRow, rng *rand.Rand) []model.GridRow {
	perm := rng.Perm(len(rows))
	shuffled := make([]model.GridRow, len(rows))
	for i, p := range perm {
		shuffled[i] = rows[p]
		shuffled[i].Index = i
	}
	return shuffled
}

// SplitGrid returns the column views of rows.
func SplitGrid(rows []model.GridRow) (model.DynamicOrderSettings, model.IndicatorSettings) {
	dos := model.DynamicOrderSettings{
		AccountPctRiskPerTrade: lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Order.AccountPctRiskPerTrade }),
		MaxTrades:              lo.Map(rows, func(r model.GridRow, _ int) int { return r.Order.MaxTrades }),
		RiskReward:             lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Order.RiskReward }),
		SLBasedOnAddPct:        lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Order.SLBasedOnAddPct }),
		SLBasedOnLookback:      lo.Map(rows, func(r model.GridRow, _ int) int { return r.Order.SLBasedOnLookback }),
		SLBcbType:              lo.Map(rows, func(r model.GridRow, _ int) constants.CandleBodyType { return r.Order.SLBcbType }),
		SLToBeCbType:           lo.Map(rows, func(r model.GridRow, _ int) constants.CandleBodyType { return r.Order.SLToBeCbType }),
		SLToBeWhenPct:          lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Order.SLToBeWhenPct }),
		TrailSLBcbType:         lo.Map(rows, func(r model.GridRow, _ int) constants.CandleBodyType { return r.Order.TrailSLBcbType }),
		TrailSLByPct:           lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Order.TrailSLByPct }),
		TrailSLWhenPct:         lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Order.TrailSLWhenPct }),
		SettingsIndex:          lo.Map(rows, func(r model.GridRow, _ int) int { return r.Index }),
	}
	ind := model.IndicatorSettings{
		RSILength:   lo.Map(rows, func(r model.GridRow, _ int) int { return r.Indicator.RSILength }),
		AboveRSICur: lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Indicator.AboveRSICur }),
		AboveRSIP:   lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Indicator.AboveRSIP }),
		AboveRSIPP:  lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Indicator.AboveRSIPP }),
		BelowRSICur: lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Indicator.BelowRSICur }),
		BelowRSIP:   lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Indicator.BelowRSIP }),
		BelowRSIPP:  lo.Map(rows, func(r model.GridRow, _ int) float64 { return r.Indicator.BelowRSIPP }),
	}
	return dos, ind
}
