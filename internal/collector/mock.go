package collector

import (
	"time"

	"Hindsight/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series *model.PriceSeries
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(symbol string) (*model.PriceSeries, error) {
	if m.Series != nil {
		return m.Series, nil
	}
	return &model.PriceSeries{Symbol: symbol, Bars: GenerateMockBars(m.Price, 500)}, nil
}

// GenerateMockBars synthesizes count weekday bars drifting gently around
// basePrice, ending yesterday.
func GenerateMockBars(basePrice float64, count int) []model.DailyBar {
	bars := make([]model.DailyBar, 0, count)
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for i := count; i > 0; i-- {
		day = day.AddDate(0, 0, -1)
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars = append(bars, model.DailyBar{
			Date:   day,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	// Built newest-first; reverse into ascending date order.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars
}
