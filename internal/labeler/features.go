package labeler

import (
	"math"
	"time"

	"Hindsight/internal/model"
)

// WindowFeatures are the trailing aggregates a model sees for one trading day.
type WindowFeatures struct {
	HighestHigh float64
	LowestLow   float64
	// OffsetClose is the close at the far (oldest) edge of the window.
	OffsetClose float64
}

// trailingFeatures scans the bars in [since, bars[endIdx].Date] and returns
// the window aggregates. The caller guarantees at least bars[endIdx] lies in
// the window.
func trailingFeatures(bars []model.DailyBar, endIdx int, since time.Time) WindowFeatures {
	start := endIdx
	for start > 0 && !bars[start-1].Date.Before(since) {
		start--
	}

	f := WindowFeatures{
		HighestHigh: math.Inf(-1),
		LowestLow:   math.Inf(1),
		OffsetClose: bars[start].Close,
	}
	for i := start; i <= endIdx; i++ {
		if bars[i].High > f.HighestHigh {
			f.HighestHigh = bars[i].High
		}
		if bars[i].Low < f.LowestLow {
			f.LowestLow = bars[i].Low
		}
	}
	return f
}
