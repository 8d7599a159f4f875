package model

import (
	"fmt"
	"strings"
	"time"
)

// Frequency selects the calendar period used to bucket transactions.
// The zero value means no bucketing (one whole-range period).
type Frequency string

const (
	FreqNone      Frequency = ""
	FreqWeekly    Frequency = "W"
	FreqMonthly   Frequency = "MS"
	FreqQuarterly Frequency = "QS"
	FreqYearly    Frequency = "YS"
)

// ParseFrequency converts a frequency token to a Frequency. It accepts
// both words ("monthly") and the pandas-style tokens the original ledger
// tooling used ("MS"). An empty token means FreqNone.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return FreqNone, nil
	case "W", "WEEKLY":
		return FreqWeekly, nil
	case "M", "MS", "MONTHLY":
		return FreqMonthly, nil
	case "Q", "QS", "QUARTERLY":
		return FreqQuarterly, nil
	case "Y", "YS", "AS", "YEARLY", "ANNUAL":
		return FreqYearly, nil
	}
	return FreqNone, fmt.Errorf("unrecognized frequency %q", s)
}

// PeriodStart returns the calendar-aligned start of the period containing
// date: Monday for weeks, the first of the month, the first month of the
// quarter, or January 1.
func (f Frequency) PeriodStart(date time.Time) time.Time {
	y, m, d := date.Date()
	switch f {
	case FreqWeekly:
		// time.Weekday counts Sunday as 0; weeks here start on Monday.
		offset := (int(date.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
	case FreqMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case FreqQuarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
	case FreqYearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Next returns the start of the period following the one starting at start.
func (f Frequency) Next(start time.Time) time.Time {
	switch f {
	case FreqWeekly:
		return start.AddDate(0, 0, 7)
	case FreqMonthly:
		return start.AddDate(0, 1, 0)
	case FreqQuarterly:
		return start.AddDate(0, 3, 0)
	case FreqYearly:
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 0, 1)
}

// Days returns the number of days in the period starting at start.
func (f Frequency) Days(start time.Time) int {
	return int(f.Next(start).Sub(start).Hours() / 24)
}

// DateRange is an inclusive [Start, End] date filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether date falls within the range, inclusive.
func (r DateRange) Contains(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}
