package labeler

import (
	"fmt"
	"log"

	"Hindsight/internal/model"
	"Hindsight/internal/simulate"
)

// Generator builds one labeled training row per trading day by simulating the
// forward window that starts on that day. Rows are only emitted for days with
// a full trailing feature window and a full forward simulation window.
type Generator struct {
	engine     *simulate.Engine
	policy     Policy
	windowDays int
}

// NewGenerator wires a generator. windowDays is both the trailing feature
// span and the forward simulation span, in calendar days.
func NewGenerator(engine *simulate.Engine, policy Policy, windowDays int) (*Generator, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days must be positive, got %d", windowDays)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("label policy: %w", err)
	}
	return &Generator{engine: engine, policy: policy, windowDays: windowDays}, nil
}

// Build walks the series one trading day at a time and returns the labeled
// rows. Series too short for a single full window produce an error.
func (g *Generator) Build(s *model.PriceSeries) ([]model.LabeledRow, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("no bars for %s", s.Symbol)
	}

	earliest := s.First().Date.AddDate(0, 0, g.windowDays)
	lastDate := s.Last().Date

	rows := make([]model.LabeledRow, 0, s.Len())
	for i, bar := range s.Bars {
		if bar.Date.Before(earliest) {
			continue
		}
		simEnd := bar.Date.AddDate(0, 0, g.windowDays)
		if simEnd.After(lastDate) {
			break
		}

		res, err := g.engine.Run(s, bar.Date, simEnd)
		if err != nil {
			return nil, fmt.Errorf("simulate %s from %s: %w",
				s.Symbol, bar.Date.Format("2006-01-02"), err)
		}

		feat := trailingFeatures(s.Bars, i, bar.Date.AddDate(0, 0, -g.windowDays))
		rows = append(rows, model.LabeledRow{
			Date:        bar.Date,
			Close:       bar.Close,
			HighestHigh: feat.HighestHigh,
			LowestLow:   feat.LowestLow,
			OffsetClose: feat.OffsetClose,
			ShouldTrade: ShouldTrade(res, g.policy),
			TotalProfit: res.TotalProfit(),
			MaxLots:     res.Stats.MaxLotsObserved,
			BreachDays:  res.Stats.DepthBreachDays[g.policy.DepthThreshold],
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: series spans less than %d days, no full window to label",
			s.Symbol, 2*g.windowDays)
	}

	log.Printf("[INFO] labeled %d trading days for %s", len(rows), s.Symbol)
	return rows, nil
}
