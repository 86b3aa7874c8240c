package dto

import "time"

// GetChartParam identifies one chart request against the quote provider.
type GetChartParam struct {
	Symbol   string
	From     time.Time
	To       time.Time
	Interval string // "1d" or "1wk"
}

// ChartQuote is one bar of the returned series. Pointer fields are nil when
// the provider omitted the value for that bar.
type ChartQuote struct {
	Date     time.Time
	Open     *float64
	High     *float64
	Low      *float64
	Close    *float64
	AdjClose *float64
	Volume   *float64
}

// ChartResult is the parsed chart response.
type ChartResult struct {
	Symbol             string
	RegularMarketPrice *float64
	Quotes             []ChartQuote
}
