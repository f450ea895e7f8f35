package collector

import "Hindsight/internal/model"

// Fetcher obtains the full daily price history for a symbol.
type Fetcher interface {
	FetchDailySeries(symbol string) (*model.PriceSeries, error)
	Name() string
}
