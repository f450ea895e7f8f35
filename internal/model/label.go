package model

import "time"

// LabeledRow is one training example: the trailing-window features known on
// Date plus the should-trade label derived from simulating the forward window.
type LabeledRow struct {
	Date        time.Time
	Close       float64
	HighestHigh float64
	LowestLow   float64
	OffsetClose float64
	ShouldTrade bool

	// Raw simulation outcomes the label was thresholded from, kept for
	// auditing label policy changes.
	TotalProfit float64
	MaxLots     int
	BreachDays  int
}
