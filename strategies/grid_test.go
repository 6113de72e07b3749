package strategies

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"rsistrat/constants"
	"rsistrat/model"
)

func TestCartesianProduct(t *testing.T) {
	dos := model.DynamicOrderSettings{
		MaxTrades:  []int{4, 6},
		RiskReward: []float64{5, 8},
	}
	ind := model.IndicatorSettings{
		RSILength:   []int{14},
		BelowRSICur: []float64{30, 40, 50},
	}

	rows := CartesianProduct(dos, ind)
	require.Len(t, rows, 12)

	for i, row := range rows {
		require.Equal(t, i, row.Index)
	}

	// last field varies fastest
	require.Equal(t, 30.0, rows[0].Indicator.BelowRSICur)
	require.Equal(t, 40.0, rows[1].Indicator.BelowRSICur)
	require.Equal(t, 5.0, rows[2].Order.RiskReward)
	require.Equal(t, 8.0, rows[3].Order.RiskReward)
	require.Equal(t, 4, rows[5].Order.MaxTrades)
	require.Equal(t, 6, rows[6].Order.MaxTrades)
	require.Equal(t, 14, rows[11].Indicator.RSILength)
	require.Zero(t, rows[11].Order.SLBasedOnLookback)
}

func TestFilterGrid(t *testing.T) {
	t.Run("long preset", func(t *testing.T) {
		rows := CartesianProduct(model.DynamicOrderSettings{}, DefaultIndicatorSettings(constants.SideLong))
		require.Len(t, rows, 81)

		filtered := FilterGrid(rows, nil)
		// below_p must be the minimum of the three: cur in {30,40,60} x pp in {30,40,50}
		// counted per below_p: 30 -> 9, 40 -> 2*2, 50 -> 1*1 per rsi length
		require.Len(t, filtered, 3*(9+4+1))
		for i, row := range filtered {
			require.Equal(t, i, row.Index)
			require.True(t, row.Indicator.Consistent())
		}
	})

	t.Run("random grids", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		values := func() []float64 {
			return lo.Times(rng.Intn(4), func(int) float64 { return float64(rng.Intn(100)) })
		}
		for n := 0; n < 50; n++ {
			ind := model.IndicatorSettings{
				RSILength:   []int{14},
				AboveRSICur: values(),
				AboveRSIP:   values(),
				AboveRSIPP:  values(),
				BelowRSICur: values(),
				BelowRSIP:   values(),
				BelowRSIPP:  values(),
			}
			rows := CartesianProduct(model.DynamicOrderSettings{}, ind)
			filtered := FilterGrid(rows, nil)

			want := lo.CountBy(rows, func(row model.GridRow) bool { return row.Indicator.Consistent() })
			require.Len(t, filtered, want)
			for i, row := range filtered {
				require.Equal(t, i, row.Index)
				require.LessOrEqual(t, row.Indicator.AboveRSICur, row.Indicator.AboveRSIP)
				require.LessOrEqual(t, row.Indicator.AboveRSIPP, row.Indicator.AboveRSIP)
				require.GreaterOrEqual(t, row.Indicator.BelowRSICur, row.Indicator.BelowRSIP)
				require.GreaterOrEqual(t, row.Indicator.BelowRSIPP, row.Indicator.BelowRSIP)
			}
		}
	})

	t.Run("nothing survives", func(t *testing.T) {
		rows := CartesianProduct(model.DynamicOrderSettings{}, model.IndicatorSettings{
			BelowRSICur: []float64{10},
			BelowRSIP:   []float64{20},
		})
		filtered := FilterGrid(rows, nil)
		require.Empty(t, filtered)

		dos, ind := SplitGrid(filtered)
		require.Zero(t, dos.Len())
		require.Zero(t, ind.Len())
	})
}

func TestShuffleGrid(t *testing.T) {
	rows := FilterGrid(CartesianProduct(model.DynamicOrderSettings{}, DefaultIndicatorSettings(constants.SideLong)), nil)

	first := ShuffleGrid(rows, xrand.New(xrand.NewSource(7)))
	second := ShuffleGrid(rows, xrand.New(xrand.NewSource(7)))
	require.Equal(t, first, second)
	require.Len(t, first, len(rows))

	for i, row := range first {
		require.Equal(t, i, row.Index)
	}

	key := func(row model.GridRow) model.IndicatorSetting { return row.Indicator }
	require.ElementsMatch(t, lo.Map(rows, func(r model.GridRow, _ int) model.IndicatorSetting { return key(r) }),
		lo.Map(first, func(r model.GridRow, _ int) model.IndicatorSetting { return key(r) }))

	// input untouched
	for i, row := range rows {
		require.Equal(t, i, row.Index)
	}
}

func TestSplitGrid(t *testing.T) {
	rows := FilterGrid(CartesianProduct(DefaultDynamicOrderSettings(constants.SideLong), DefaultIndicatorSettings(constants.SideLong)), nil)
	dos, ind := SplitGrid(rows)

	require.Equal(t, len(rows), dos.Len())
	require.Equal(t, len(rows), ind.Len())
	require.Len(t, dos.MaxTrades, len(rows))
	for i, row := range rows {
		require.Equal(t, row.Indicator, ind.At(i))
		require.Equal(t, i, dos.SettingsIndex[i])
		require.Equal(t, row.Order.RiskReward, dos.RiskReward[i])
		require.Equal(t, constants.CandleBodyLow, dos.SLBcbType[i])
	}
}
