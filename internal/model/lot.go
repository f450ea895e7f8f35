package model

// EvalPhase tracks how far a lot has been evaluated within the current
// simulated day. A lot held at session start still needs the open/high/low
// checks; a lot created intraday can only be judged against the close, since
// daily bars say nothing about the order of moves after its purchase.
type EvalPhase int

const (
	PhasePendingOpenEval EvalPhase = iota
	PhasePendingCloseEval
)

func (p EvalPhase) String() string {
	if p == PhasePendingCloseEval {
		return "PENDING_CLOSE_EVAL"
	}
	return "PENDING_OPEN_EVAL"
}

// Lot is a discrete purchased block of shares tracked with its own buy price,
// independent of other lots. A lot is never partially sold.
type Lot struct {
	PurchasePrice float64
	Shares        int
	Phase         EvalPhase
}
