package models

// HeatmapCell holds independently computed call and put Greeks for one
// (strike, expiration) coordinate. Expiry is in years.
type HeatmapCell struct {
	Strike float64
	Expiry float64
	Call   GreeksResult
	Put    GreeksResult
}

// GreeksHeatmap is a strike×expiration grid of cells in the caller's
// requested coordinate order.
type GreeksHeatmap struct {
	Symbol          string
	UnderlyingPrice float64
	Model           PricingModel
	Cells           []HeatmapCell
}
