/*
recurrence.go - Recurrence expansion engine

PURPOSE:
  Turns one shift draft plus a recurrence rule into a deterministic,
  ordered set of concrete Shift records sharing a freshly generated
  recurrence ID. The expansion is the single writer of series membership;
  series.go later consumes the shared ID for partial deletion.

CADENCES:
  none      exactly one instance, end date ignored, no recurrence ID
  daily     every day from start through the inclusive end date
  weekly    every 7 days
  biweekly  every 14 days
  monthly   same day-of-month, clamped to the last valid day of short
            months - re-evaluated per month, so "the 31st" lands on
            Feb 28/29 and back on Mar 31
  weekdays  every day whose weekday is in a non-empty selected set

TIME-OF-DAY:
  Every instance carries the draft's clock time on the iteration's
  calendar date. The inclusive end date is treated as end-of-day, so an
  instance on the end date itself is still emitted.

VALIDATION:
  Malformed rules (end before start, empty weekday set) are rejected
  before the loop ever starts; the engine never silently no-ops.

ESTIMATION:
  EstimateCount mirrors the cruder arithmetic shown to the user before
  committing (days/7, days/30, ...). It is an approximation for volume
  warnings only and intentionally does NOT match the exact expansion
  count in all cases.
*/
package shift

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/calendar"
)

// RecurrenceKind selects the expansion cadence.
type RecurrenceKind string

const (
	RecurNone     RecurrenceKind = "none"
	RecurDaily    RecurrenceKind = "daily"
	RecurWeekly   RecurrenceKind = "weekly"
	RecurBiweekly RecurrenceKind = "biweekly"
	RecurMonthly  RecurrenceKind = "monthly"
	RecurWeekdays RecurrenceKind = "weekdays"
)

// Recurrence is the user-selected repetition rule for a draft.
type Recurrence struct {
	Kind RecurrenceKind

	// Until is the inclusive end date (treated as end-of-day).
	// Ignored when Kind is RecurNone.
	Until time.Time

	// Weekdays is the selected set for RecurWeekdays.
	Weekdays map[time.Weekday]bool
}

// Draft is the shift template a recurrence expands from.
type Draft struct {
	Start         time.Time
	DurationHours int
	AllDay        bool
	Location      string
	Latitude      *float64
	Longitude     *float64
	Amount        decimal.Decimal
	IsCommitment  bool
	Notes         string
}

// Validate checks the rule against the draft's start date. All checks are
// pre-expansion: a rule that passes Validate cannot make Expand loop
// forever or emit nothing.
func (r Recurrence) Validate(start time.Time) error {
	if r.Kind == RecurNone {
		return nil
	}
	if !r.Until.After(start) {
		return ErrInvalidDateRange
	}
	if r.Kind == RecurWeekdays && len(r.Weekdays) == 0 {
		return ErrEmptyWeekdaySelection
	}
	return nil
}

// EstimateCount approximates how many instances the rule would create,
// using the same arithmetic shown in the creation form (days/7, days/30).
// Floored at 1. This is a user-facing estimate, not the exact count.
func (r Recurrence) EstimateCount(start time.Time) int {
	if r.Kind == RecurNone {
		return 1
	}
	days := calendar.DaysBetween(start, r.Until)

	var n int
	switch r.Kind {
	case RecurDaily:
		n = days
	case RecurWeekly:
		n = days / 7
	case RecurBiweekly:
		n = days / 14
	case RecurMonthly:
		n = days / 30
	case RecurWeekdays:
		n = (days / 7) * len(r.Weekdays)
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Expand materializes the rule into concrete shifts, ordered by start.
// RecurNone yields exactly one shift with no recurrence ID; every other
// kind yields one or more shifts sharing a newly generated recurrence ID.
func Expand(d Draft, r Recurrence) ([]Shift, error) {
	if err := r.Validate(d.Start); err != nil {
		return nil, err
	}

	if r.Kind == RecurNone {
		return []Shift{newInstance(d, d.Start, "")}, nil
	}

	recurrenceID := uuid.NewString()
	final := calendar.DayEnd(r.Until)

	var out []Shift
	switch r.Kind {
	case RecurDaily:
		for cur := d.Start; !cur.After(final); cur = calendar.AddDays(cur, 1) {
			out = append(out, newInstance(d, cur, recurrenceID))
		}

	case RecurWeekly:
		for cur := d.Start; !cur.After(final); cur = calendar.AddWeeks(cur, 1) {
			out = append(out, newInstance(d, cur, recurrenceID))
		}

	case RecurBiweekly:
		for cur := d.Start; !cur.After(final); cur = calendar.AddWeeks(cur, 2) {
			out = append(out, newInstance(d, cur, recurrenceID))
		}

	case RecurMonthly:
		// The clamp target changes per month: "the 31st" means the 28th,
		// 29th or 30th in shorter months, then the 31st again.
		day := d.Start.Day()
		for k := 0; ; k++ {
			month := d.Start
			if k > 0 {
				month = calendar.AddMonths(d.Start, k)
			}
			occ := calendar.AtTimeOfDay(calendar.ClampedDayOfMonth(month, day), d.Start)
			if occ.After(final) {
				break
			}
			if occ.Before(d.Start) {
				continue
			}
			out = append(out, newInstance(d, occ, recurrenceID))
		}

	case RecurWeekdays:
		for cur := d.Start; !cur.After(final); cur = calendar.AddDays(cur, 1) {
			if r.Weekdays[cur.Weekday()] {
				out = append(out, newInstance(d, cur, recurrenceID))
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// newInstance stamps the draft onto a concrete date, carrying the draft's
// time-of-day. Commitments are created financially zeroed and without
// coordinates regardless of what the draft holds.
func newInstance(d Draft, at time.Time, recurrenceID string) Shift {
	s := Shift{
		ID:            uuid.New(),
		Start:         calendar.AtTimeOfDay(at, d.Start),
		DurationHours: d.DurationHours,
		AllDay:        d.AllDay,
		Location:      d.Location,
		RecurrenceID:  recurrenceID,
		Status:        StatusScheduled,
		Notes:         d.Notes,
		IsCommitment:  d.IsCommitment,
		Amount:        d.Amount,
		SwapValue:     decimal.Zero,
	}
	if d.IsCommitment {
		s.Amount = decimal.Zero
		if d.AllDay {
			s.DurationHours = 24
		}
	} else {
		s.Latitude = d.Latitude
		s.Longitude = d.Longitude
	}
	return s
}
