package series

import (
	"fmt"
	"time"
)

// MalformedInputError reports a missing or non-numeric field for a date
// present in the source payload. Surfaced immediately, never recovered.
type MalformedInputError struct {
	Date   string
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed price data at %s: field %q: %s", e.Date, e.Field, e.Reason)
}

// RangeError reports a requested simulation window that falls outside the
// loaded series, or an end date that does not follow the begin date.
type RangeError struct {
	Begin  time.Time
	End    time.Time
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid date range [%s, %s]: %s",
		e.Begin.Format(DateLayout), e.End.Format(DateLayout), e.Reason)
}
