package emissions

import (
	"fmt"
	"strings"
	"time"
)

// Period is the length of a summary window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod parses "day", "week" or "month" (case-insensitive).
// Empty input means PeriodDay.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// PeriodStart returns the start of the period containing t, in t's location.
// Weeks start on Monday.
func PeriodStart(p Period, t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch p {
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

// PeriodEnd returns the exclusive end of the period starting at start.
func PeriodEnd(p Period, start time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// WindowFor returns the window of period p that contains anchor, with the
// end capped at now. Both instants are interpreted in loc.
//
// For the current period this is [start of period, now). For a past period
// it is the whole period. Callers must not pass an anchor after now.
func WindowFor(p Period, anchor, now time.Time, loc *time.Location) Window {
	anchor, now = anchor.In(loc), now.In(loc)
	start := PeriodStart(p, anchor)
	end := PeriodEnd(p, start)
	if now.Before(end) {
		end = now
	}
	return Window{Start: start, End: end}
}
