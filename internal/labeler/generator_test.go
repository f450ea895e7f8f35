package labeler

import (
	"testing"
	"time"

	"Hindsight/internal/model"
	"Hindsight/internal/simulate"
)

// flatSeries builds count consecutive zero-volatility days at price p.
// Simulations over it open one lot and never trade again.
func flatSeries(t *testing.T, p float64, count int) *model.PriceSeries {
	t.Helper()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.DailyBar, count)
	for i := range bars {
		bars[i] = model.DailyBar{
			Date: start.AddDate(0, 0, i),
			Open: p, High: p, Low: p, Close: p,
		}
	}
	return &model.PriceSeries{Symbol: "FLAT", Bars: bars}
}

func newTestGenerator(t *testing.T, windowDays int) *Generator {
	t.Helper()
	engine, err := simulate.New(simulate.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	gen, err := NewGenerator(engine, DefaultPolicy(), windowDays)
	if err != nil {
		t.Fatal(err)
	}
	return gen
}

func TestGeneratorBuild(t *testing.T) {
	gen := newTestGenerator(t, 90)
	s := flatSeries(t, 100, 300)

	rows, err := gen.Build(s)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Rows exist only for days with a full trailing window and a full
	// forward window: 300 days minus 90 on each side.
	want := 300 - 2*90
	if len(rows) != want {
		t.Fatalf("rows = %d, want %d", len(rows), want)
	}

	first := rows[0]
	if got := s.First().Date.AddDate(0, 0, 90); !first.Date.Equal(got) {
		t.Errorf("first row date = %s, want %s",
			first.Date.Format("2006-01-02"), got.Format("2006-01-02"))
	}
	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Date.Before(rows[i].Date) {
			t.Fatalf("rows not ascending at %d", i)
		}
	}

	// A flat market earns nothing, so no window clears the profit floor.
	for _, row := range rows {
		if row.ShouldTrade {
			t.Fatalf("flat market labeled tradeable on %s", row.Date.Format("2006-01-02"))
		}
		if row.TotalProfit != 0 {
			t.Fatalf("flat market produced profit %v", row.TotalProfit)
		}
		if row.HighestHigh != 100 || row.LowestLow != 100 || row.OffsetClose != 100 || row.Close != 100 {
			t.Fatalf("unexpected features: %+v", row)
		}
	}
}

func TestGeneratorBuild_SeriesTooShort(t *testing.T) {
	gen := newTestGenerator(t, 90)
	if _, err := gen.Build(flatSeries(t, 100, 100)); err == nil {
		t.Fatal("expected error for a series shorter than two windows")
	}
}

func TestNewGenerator_Invalid(t *testing.T) {
	engine, err := simulate.New(simulate.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewGenerator(engine, DefaultPolicy(), 0); err == nil {
		t.Error("expected error for zero window")
	}
	bad := DefaultPolicy()
	bad.MaxLotsObserved = 0
	if _, err := NewGenerator(engine, bad, 90); err == nil {
		t.Error("expected error for invalid policy")
	}
}
