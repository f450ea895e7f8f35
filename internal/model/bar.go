package model

import "time"

// DailyBar is one trading day's aggregate prices.
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds daily bars for one symbol, strictly ascending by date
// with no duplicates. Non-trading days are simply absent.
type PriceSeries struct {
	Symbol string
	Bars   []DailyBar
}

// First returns the earliest bar. Only valid when the series is non-empty.
func (s *PriceSeries) First() DailyBar { return s.Bars[0] }

// Last returns the most recent bar. Only valid when the series is non-empty.
func (s *PriceSeries) Last() DailyBar { return s.Bars[len(s.Bars)-1] }

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }
