package recorder

import (
	"time"

	"Hindsight/internal/model"
)

// RunRecord captures one completed simulation run.
type RunRecord struct {
	ID            string // uuid; filled by the recorder when empty
	Symbol        string
	Begin         time.Time
	End           time.Time
	TotalProfit   float64
	SellCount     int
	RemainingLots int
	MaxLots       int
	BreachDays    map[int]int
}

// NewRunRecord flattens a simulation result into a persistable record.
func NewRunRecord(res *model.SimulationResult) *RunRecord {
	return &RunRecord{
		Symbol:        res.Symbol,
		Begin:         res.Begin,
		End:           res.End,
		TotalProfit:   res.TotalProfit(),
		SellCount:     len(res.Profits),
		RemainingLots: len(res.RemainingLots),
		MaxLots:       res.Stats.MaxLotsObserved,
		BreachDays:    res.Stats.DepthBreachDays,
	}
}

// Recorder persists simulation runs and training rows for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordLabels(symbol string, rows []model.LabeledRow) error
	Close() error
}
