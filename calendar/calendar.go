/*
Package calendar provides day-granularity time utilities.

PURPOSE:
  Every engine in this system reasons about calendar days and months, not
  raw instants: a shift belongs to the month its start falls in, a monthly
  recurrence repeats on a day-of-month, an overdue transfer is measured in
  whole days. This package centralizes that arithmetic so the engines never
  touch time.Time internals directly.

KEY CONCEPTS:
  - Day-granularity comparison: SameDay, DayStart
  - Month enumeration: DaysOfMonth (28-31 entries, ascending)
  - Calendar-aware arithmetic: AddDays/AddWeeks/AddMonths, month-length
    clamping via ClampedDayOfMonth

MONTH-LENGTH SAFETY:
  time.Time.AddDate normalizes Jan 31 + 1 month to March 2/3. That is never
  what a "same day every month" rule means, so AddMonths here lands on the
  first of the target month and callers clamp the day explicitly with
  ClampedDayOfMonth.

All functions are pure; no state, no error conditions.

SEE ALSO:
  - shift/recurrence.go: the expansion engine built on these primitives
  - finance/aggregate.go: month-window filtering
*/
package calendar

import "time"

// =============================================================================
// DAY GRANULARITY
// =============================================================================

// DayStart truncates t to midnight of its calendar day, preserving location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable moment of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysBetween returns the number of whole days from a to b at day
// granularity. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DayStart(b).Sub(DayStart(a)).Hours() / 24)
}

// =============================================================================
// MONTH ENUMERATION
// =============================================================================

// DaysInMonth returns the number of calendar days in t's month (28-31).
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// DaysOfMonth returns one day-start instant per calendar day of the month
// containing t, ascending. Always finite: 28 to 31 entries.
func DaysOfMonth(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	n := DaysInMonth(t)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns midnight on the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

// AddWeeks returns t shifted by n*7 calendar days.
func AddWeeks(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }

// AddMonths returns the instant n calendar months after t, landed on the
// FIRST day of the target month with t's time-of-day. Callers that need a
// specific day-of-month apply ClampedDayOfMonth to the result; going through
// the first avoids AddDate's rollover (Jan 31 + 1 month = Mar 2/3).
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	return first.AddDate(0, n, 0)
}

// ClampedDayOfMonth returns the instant in t's month whose day is
// min(day, length of t's month), keeping t's time-of-day. This is the
// month-length-safe interpretation of "the 31st of every month".
func ClampedDayOfMonth(t time.Time, day int) time.Time {
	max := DaysInMonth(t)
	if day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return time.Date(t.Year(), t.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AtTimeOfDay places src's clock time onto day's calendar date.
func AtTimeOfDay(day, src time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		src.Hour(), src.Minute(), src.Second(), src.Nanosecond(), day.Location())
}

// =============================================================================
// PERIOD - Inclusive date window
// =============================================================================

// Period is an inclusive time window [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the period covering the full month containing t,
// from midnight on the 1st through the end of the last day.
func MonthPeriod(t time.Time) Period {
	return Period{Start: MonthStart(t), End: DayEnd(MonthEnd(t))}
}

// Contains reports whether instant t lies within the period, inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Days returns every day-start within the period, ascending.
func (p Period) Days() []time.Time {
	var days []time.Time
	for cur := DayStart(p.Start); !cur.After(p.End); cur = AddDays(cur, 1) {
		days = append(days, cur)
	}
	return days
}

// String renders the period as "[YYYY-MM-DD, YYYY-MM-DD]".
func (p Period) String() string {
	return "[" + p.Start.Format("2006-01-02") + ", " + p.End.Format("2006-01-02") + "]"
}
