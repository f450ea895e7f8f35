package simulate

import "errors"

// Params is the immutable strategy configuration for one engine. Passing it
// explicitly keeps backtests parameterizable without code edits.
type Params struct {
	// IdealLotSize is the notional each lot aims for, in currency units.
	IdealLotSize float64
	// MinLotSize is the lowest acceptable lot notional.
	MinLotSize float64
	// OrderCreationThreshold is the fractional band around a lot's purchase
	// price at which hypothetical buy/sell orders fill (0.03 = 3%).
	OrderCreationThreshold float64
	// DepthThresholds are the ladder depths tracked by the day counters.
	DepthThresholds []int
}

// DefaultParams returns the strategy constants the ladder was tuned with.
func DefaultParams() Params {
	return Params{
		IdealLotSize:           1000,
		MinLotSize:             900,
		OrderCreationThreshold: 0.03,
		DepthThresholds:        []int{5, 10, 15, 25, 40},
	}
}

// Validate checks that the parameters describe a runnable strategy.
func (p Params) Validate() error {
	if p.MinLotSize <= 0 {
		return errors.New("min lot size must be positive")
	}
	if p.IdealLotSize < p.MinLotSize {
		return errors.New("ideal lot size must be >= min lot size")
	}
	if p.OrderCreationThreshold <= 0 || p.OrderCreationThreshold >= 1 {
		return errors.New("order creation threshold must be in (0, 1)")
	}
	for _, t := range p.DepthThresholds {
		if t <= 0 {
			return errors.New("depth thresholds must be positive")
		}
	}
	return nil
}

// QuantityFromPrice sizes a lot so its notional lands near the ideal lot size
// without dropping below the minimum. Prices at or above the ideal size buy a
// single share.
func QuantityFromPrice(price float64, p Params) int {
	if price >= p.IdealLotSize {
		return 1
	}
	q := int(p.IdealLotSize / price)
	if float64(q)*price < p.MinLotSize {
		q++
	}
	return q
}
