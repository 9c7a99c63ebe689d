// Package calendar holds the civil-date helpers shared by the projection and
// timeline engines. Every date is represented as UTC midnight of its calendar
// day so that day arithmetic never crosses a DST transition.
package calendar

import (
	"math"
	"time"
)

// Layout is the ISO calendar-date format used in task files and output.
const Layout = "2006-01-02"

const day = 24 * time.Hour

// ParseDate parses a YYYY-MM-DD string into UTC midnight of that day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// StartOfDay returns midnight at the start of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayDiff returns the number of whole calendar days from a to b.
// The result is negative when b is before a.
func DayDiff(a, b time.Time) int {
	return int(math.Round(float64(StartOfDay(b).Sub(StartOfDay(a))) / float64(day)))
}

// DayRange enumerates every calendar day from `from` to `to`, inclusive.
// It returns nil when to is before from.
func DayRange(from, to time.Time) []time.Time {
	from, to = StartOfDay(from), StartOfDay(to)
	n := DayDiff(from, to)
	if n < 0 {
		return nil
	}
	days := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		days = append(days, from.AddDate(0, 0, i))
	}
	return days
}

// Civil re-expresses now's wall clock in loc as an instant on the UTC civil
// axis, so it compares directly against task dates.
func Civil(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	w := now.In(loc)
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), time.UTC)
}

// Today returns the civil date of now in loc as UTC midnight.
func Today(now time.Time, loc *time.Location) time.Time {
	return StartOfDay(Civil(now, loc))
}

// Before reports whether a's calendar day is strictly before b's.
func Before(a, b time.Time) bool {
	return DayDiff(a, b) > 0
}

// Min returns the earlier of a and b.
func Min(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of a and b.
func Max(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
