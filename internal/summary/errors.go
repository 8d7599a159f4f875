package summary

import (
	"fmt"
	"time"
)

// RangeError reports an invalid date range or frequency supplied to
// Summarize.
type RangeError struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *RangeError) Error() string {
	if e.Start.IsZero() && e.End.IsZero() {
		return fmt.Sprintf("range: %s", e.Reason)
	}
	return fmt.Sprintf("range %s..%s: %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.Reason)
}
