package simulate

import "Hindsight/internal/model"

// runState is the mutable state of one simulation run. It is created by Run,
// owned exclusively by that run, and handed to the caller inside the result.
type runState struct {
	// ladder holds the open lots. By construction every appended lot has a
	// strictly lower purchase price than the one before it, so the top of the
	// ladder is always the current lowest price.
	ladder     []model.Lot
	profits    []float64
	maxLots    int
	breachDays map[int]int
}

func newRunState(thresholds []int) *runState {
	st := &runState{breachDays: make(map[int]int, len(thresholds))}
	for _, t := range thresholds {
		st.breachDays[t] = 0
	}
	return st
}

func (st *runState) push(lot model.Lot) {
	st.ladder = append(st.ladder, lot)
}

func (st *runState) pop() model.Lot {
	lot := st.ladder[len(st.ladder)-1]
	st.ladder = st.ladder[:len(st.ladder)-1]
	return lot
}

func (st *runState) top() model.Lot {
	return st.ladder[len(st.ladder)-1]
}

func (st *runState) depth() int { return len(st.ladder) }
