package labeler

import (
	"testing"
	"time"

	"Hindsight/internal/model"
)

func resultWith(profit float64, maxLots, breachDays int) *model.SimulationResult {
	return &model.SimulationResult{
		Profits: []float64{profit},
		Stats: model.SimulationStats{
			MaxLotsObserved: maxLots,
			DepthBreachDays: map[int]int{5: breachDays + 3, 10: breachDays},
		},
	}
}

func TestShouldTrade(t *testing.T) {
	p := DefaultPolicy()

	if !ShouldTrade(resultWith(500, 8, 4), p) {
		t.Error("healthy window should be labeled tradeable")
	}
	if ShouldTrade(resultWith(200, 8, 4), p) {
		t.Error("profit below minimum should fail")
	}
	if ShouldTrade(resultWith(500, 16, 4), p) {
		t.Error("ladder deeper than the cap should fail")
	}
	if ShouldTrade(resultWith(500, 8, 21), p) {
		t.Error("too many breach days should fail")
	}

	// Boundary values are acceptable: the caps are exclusive.
	if !ShouldTrade(resultWith(300, 15, 20), p) {
		t.Error("exact thresholds should still be tradeable")
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy should validate: %v", err)
	}
	p := DefaultPolicy()
	p.DepthThreshold = 0
	if err := p.Validate(); err == nil {
		t.Error("expected error for zero depth threshold")
	}
}

func TestTrailingFeatures(t *testing.T) {
	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	bars := []model.DailyBar{
		{Date: start, Open: 10, High: 12, Low: 9, Close: 11},
		{Date: start.AddDate(0, 0, 1), Open: 11, High: 15, Low: 10, Close: 14},
		{Date: start.AddDate(0, 0, 2), Open: 14, High: 14, Low: 8, Close: 13},
		{Date: start.AddDate(0, 0, 3), Open: 13, High: 13, Low: 12, Close: 12},
	}

	// Window covering the last three bars only.
	f := trailingFeatures(bars, 3, bars[1].Date)
	if f.HighestHigh != 15 {
		t.Errorf("highest high = %v, want 15", f.HighestHigh)
	}
	if f.LowestLow != 8 {
		t.Errorf("lowest low = %v, want 8", f.LowestLow)
	}
	if f.OffsetClose != 14 {
		t.Errorf("offset close = %v, want 14 (close at window start)", f.OffsetClose)
	}

	// Window wider than the series clamps to the first bar.
	f = trailingFeatures(bars, 3, start.AddDate(0, 0, -30))
	if f.OffsetClose != 11 {
		t.Errorf("offset close = %v, want 11", f.OffsetClose)
	}
}
