package series

import (
	"time"

	"Hindsight/internal/model"
)

// Slice returns the bars of s with dates in [begin, end] inclusive, ascending.
// It does not synthesize missing days; holidays and weekends are simply absent.
//
// A RangeError is returned when begin falls outside the series, when end does
// not follow begin, or when end exceeds the last available date.
func Slice(s *model.PriceSeries, begin, end time.Time) (*model.PriceSeries, error) {
	if s.Len() == 0 {
		return nil, &RangeError{Begin: begin, End: end, Reason: "series is empty"}
	}
	first := s.First().Date
	last := s.Last().Date
	if begin.Before(first) || begin.After(last) {
		return nil, &RangeError{Begin: begin, End: end,
			Reason: "begin outside series [" + first.Format(DateLayout) + ", " + last.Format(DateLayout) + "]"}
	}
	if !end.After(begin) {
		return nil, &RangeError{Begin: begin, End: end, Reason: "end must be after begin"}
	}
	if end.After(last) {
		return nil, &RangeError{Begin: begin, End: end,
			Reason: "end exceeds last available date " + last.Format(DateLayout)}
	}

	bars := make([]model.DailyBar, 0, s.Len())
	for _, bar := range s.Bars {
		if bar.Date.Before(begin) {
			continue
		}
		if bar.Date.After(end) {
			break
		}
		bars = append(bars, bar)
	}
	return &model.PriceSeries{Symbol: s.Symbol, Bars: bars}, nil
}
