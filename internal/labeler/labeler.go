// Package labeler turns simulation outcomes into supervised-learning labels.
// A period "should trade" when it was profitable enough without the ladder
// ever getting dangerously deep.
package labeler

import (
	"errors"

	"Hindsight/internal/model"
)

// Policy holds the caller-supplied thresholds for the should-trade label.
type Policy struct {
	// MinProfit is the least total realized profit a window must produce.
	MinProfit float64
	// MaxLotsObserved caps the deepest acceptable ladder.
	MaxLotsObserved int
	// DepthThreshold selects which depth counter the breach-day cap reads.
	DepthThreshold int
	// MaxBreachDays caps how many days may reach DepthThreshold lots.
	MaxBreachDays int
}

// DefaultPolicy returns the thresholds the training sets were built with:
// at least 300 profit per quarter, never more than 15 open lots, and at most
// 20 days holding 10 or more lots.
func DefaultPolicy() Policy {
	return Policy{
		MinProfit:       300,
		MaxLotsObserved: 15,
		DepthThreshold:  10,
		MaxBreachDays:   20,
	}
}

// Validate checks the policy is internally usable.
func (p Policy) Validate() error {
	if p.MaxLotsObserved <= 0 {
		return errors.New("max lots observed must be positive")
	}
	if p.DepthThreshold <= 0 {
		return errors.New("depth threshold must be positive")
	}
	if p.MaxBreachDays < 0 {
		return errors.New("max breach days must not be negative")
	}
	return nil
}

// ShouldTrade applies the policy to one simulation result.
func ShouldTrade(res *model.SimulationResult, p Policy) bool {
	if res.TotalProfit() < p.MinProfit {
		return false
	}
	if res.Stats.MaxLotsObserved > p.MaxLotsObserved {
		return false
	}
	if res.Stats.DepthBreachDays[p.DepthThreshold] > p.MaxBreachDays {
		return false
	}
	return true
}
