package model

// GridRow is one combination of the order and indicator Cartesian product.
type GridRow struct {
	Index     int
	Order     DynamicOrderSetting
	Indicator IndicatorSetting
}
