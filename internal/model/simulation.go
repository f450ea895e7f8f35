package model

import "time"

// SimulationStats aggregates ladder-depth observations across one run.
type SimulationStats struct {
	// MaxLotsObserved is the deepest the ladder ever got.
	MaxLotsObserved int
	// DepthBreachDays counts, per configured depth threshold, the number of
	// days on which the ladder reached that many simultaneous lots. A day is
	// counted at most once per threshold.
	DepthBreachDays map[int]int
}

// SimulationResult is the output of one simulation run over a date window.
// Ownership transfers to the caller; the engine keeps no reference.
type SimulationResult struct {
	Symbol        string
	Begin         time.Time
	End           time.Time
	RemainingLots []Lot
	Profits       []float64
	Stats         SimulationStats
}

// TotalProfit sums the realized profit log.
func (r *SimulationResult) TotalProfit() float64 {
	total := 0.0
	for _, p := range r.Profits {
		total += p
	}
	return total
}
