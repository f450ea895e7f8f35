package simulate

import (
	"fmt"
	"time"

	"Hindsight/internal/model"
	"Hindsight/internal/series"
)

// Engine replays the lot-ladder strategy against daily bars. Intraday order
// flow is approximated from open/high/low/close only: a run is a pure function
// of the series and the date bounds, so identical inputs always produce
// identical output. Each call to Run owns its own state; independent runs are
// safe to execute concurrently.
type Engine struct {
	params Params
}

// New creates an engine for the given strategy parameters.
func New(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("strategy params: %w", err)
	}
	// Own the threshold slice so a caller mutating theirs can't skew counters.
	thresholds := make([]int, len(params.DepthThresholds))
	copy(thresholds, params.DepthThresholds)
	params.DepthThresholds = thresholds
	return &Engine{params: params}, nil
}

// Params returns a copy of the engine's strategy configuration.
func (e *Engine) Params() Params {
	p := e.params
	p.DepthThresholds = make([]int, len(e.params.DepthThresholds))
	copy(p.DepthThresholds, e.params.DepthThresholds)
	return p
}

// Run simulates the window [begin, end] of the series and returns the
// remaining ladder, the realized profit log, and the depth statistics.
// Invalid bounds surface as a *series.RangeError.
func (e *Engine) Run(s *model.PriceSeries, begin, end time.Time) (*model.SimulationResult, error) {
	window, err := series.Slice(s, begin, end)
	if err != nil {
		return nil, err
	}

	st := newRunState(e.params.DepthThresholds)
	for _, bar := range window.Bars {
		e.evaluateDay(st, bar)
	}

	return &model.SimulationResult{
		Symbol:        window.Symbol,
		Begin:         begin,
		End:           end,
		RemainingLots: st.ladder,
		Profits:       st.profits,
		Stats: model.SimulationStats{
			MaxLotsObserved: st.maxLots,
			DepthBreachDays: st.breachDays,
		},
	}, nil
}

// evaluateDay runs the ladder state machine over a single bar. The loop keeps
// re-evaluating the top lot until a pass neither sells nor buys.
func (e *Engine) evaluateDay(st *runState, bar model.DailyBar) {
	// Prices already bought today. Discarded at day end; see buyNewLot.
	buys := make(map[float64]bool)

	if st.depth() == 0 {
		// No lots survived to today; for simplicity, buy one as the market
		// opens.
		st.push(model.Lot{
			PurchasePrice: bar.Open,
			Shares:        QuantityFromPrice(bar.Open, e.params),
			Phase:         model.PhasePendingOpenEval,
		})
	} else {
		// Every carried-over lot is present at session start and gets the
		// full open/high/low evaluation.
		for i := range st.ladder {
			st.ladder[i].Phase = model.PhasePendingOpenEval
		}
	}

	breached := make(map[int]bool, len(e.params.DepthThresholds))
	for st.depth() > 0 {
		depth := st.depth()
		if depth > st.maxLots {
			st.maxLots = depth
		}
		for _, t := range e.params.DepthThresholds {
			if depth >= t {
				breached[t] = true
			}
		}

		lot := st.pop()
		buyAt := e.buyThreshold(lot.PurchasePrice)
		sellAt := e.sellThreshold(lot.PurchasePrice)

		var again bool
		if lot.Phase == model.PhasePendingOpenEval {
			again = e.evalAgainstSession(st, lot, bar, buyAt, sellAt, buys)
		} else {
			again = e.evalAgainstClose(st, lot, bar, buyAt, sellAt, buys)
		}
		if !again {
			break
		}
	}

	// A threshold counts at most once per day, regardless of how many
	// evaluation passes reached it.
	for t := range breached {
		st.breachDays[t]++
	}
}

// evalAgainstSession handles a lot that was held at session start, so a
// standing sell order is assumed to exist. A gap up through the threshold
// fills at the open; otherwise a touch of the threshold fills at the
// threshold itself. Reports whether the ladder changed.
func (e *Engine) evalAgainstSession(st *runState, lot model.Lot, bar model.DailyBar, buyAt, sellAt float64, buys map[float64]bool) bool {
	if sellAt < bar.Open {
		e.sellAndReplace(st, lot, bar.Open)
		return true
	}
	if sellAt < bar.High {
		e.sellAndReplace(st, lot, sellAt)
		return true
	}

	st.push(lot) // not sold

	if buyAt > bar.Low {
		return e.buyNewLot(st, buyAt, buys)
	}
	return false
}

// evalAgainstClose handles a lot created earlier today. Without intraday
// granularity the close is the only price we can trust it against.
func (e *Engine) evalAgainstClose(st *runState, lot model.Lot, bar model.DailyBar, buyAt, sellAt float64, buys map[float64]bool) bool {
	if sellAt < bar.Close {
		e.sellAndReplace(st, lot, sellAt)
		return true
	}

	st.push(lot) // not sold

	if buyAt > bar.Close {
		return e.buyNewLot(st, buyAt, buys)
	}
	return false
}

// sellAndReplace books the realized profit for a filled sell and, when the
// ladder emptied or the transaction price sits below the next lot's buy
// threshold, immediately opens a replacement lot at that price. The live
// strategy creates buy orders at the market rate; this mirrors it.
func (e *Engine) sellAndReplace(st *runState, lot model.Lot, txPrice float64) {
	st.profits = append(st.profits, (txPrice-lot.PurchasePrice)*float64(lot.Shares))
	if st.depth() == 0 || txPrice < e.buyThreshold(st.top().PurchasePrice) {
		st.push(model.Lot{
			PurchasePrice: txPrice,
			Shares:        QuantityFromPrice(txPrice, e.params),
			Phase:         model.PhasePendingCloseEval,
		})
	}
}

// buyNewLot opens a lot at the given price unless that exact price was
// already bought today. When a bar spans more than twice the order threshold
// we could otherwise buy and sell at one price forever; the first repeat
// stops the day's evaluation instead.
func (e *Engine) buyNewLot(st *runState, price float64, buys map[float64]bool) bool {
	if buys[price] {
		return false
	}
	buys[price] = true
	st.push(model.Lot{
		PurchasePrice: price,
		Shares:        QuantityFromPrice(price, e.params),
		Phase:         model.PhasePendingCloseEval,
	})
	return true
}

func (e *Engine) buyThreshold(price float64) float64 {
	return (1 - e.params.OrderCreationThreshold) * price
}

func (e *Engine) sellThreshold(price float64) float64 {
	return (1 + e.params.OrderCreationThreshold) * price
}
