package shift

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workDraft(start time.Time) Draft {
	lat, lng := -23.55, -46.63
	return Draft{
		Start:         start,
		DurationHours: 12,
		Location:      "Hospital Central",
		Latitude:      &lat,
		Longitude:     &lng,
		Amount:        decimal.NewFromInt(1000),
	}
}

func starts(shifts []Shift) []time.Time {
	out := make([]time.Time, len(shifts))
	for i, s := range shifts {
		out[i] = s.Start
	}
	return out
}

func TestExpandNoneYieldsSingleInstance(t *testing.T) {
	d := workDraft(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))

	out, err := Expand(d, Recurrence{Kind: RecurNone})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Empty(t, out[0].RecurrenceID)
	assert.Equal(t, StatusScheduled, out[0].Status)
	assert.True(t, d.Start.Equal(out[0].Start))
}

func TestExpandDailyInclusiveBounds(t *testing.T) {
	// GIVEN a daily rule over five calendar days
	d := workDraft(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	r := Recurrence{Kind: RecurDaily, Until: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)}

	out, err := Expand(d, r)
	require.NoError(t, err)

	// THEN both endpoints produce an instance, all sharing one series ID
	require.Len(t, out, 5)
	assert.True(t, out[0].Start.Equal(d.Start))
	assert.Equal(t, 14, out[4].Start.Day())
	for _, s := range out {
		assert.Equal(t, out[0].RecurrenceID, s.RecurrenceID)
		assert.Equal(t, 8, s.Start.Hour())
	}
}

func TestExpandWeeklyAndBiweekly(t *testing.T) {
	d := workDraft(time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)) // a Monday
	until := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)

	weekly, err := Expand(d, Recurrence{Kind: RecurWeekly, Until: until})
	require.NoError(t, err)
	assert.Len(t, weekly, 5) // Mar 2, 9, 16, 23, 30

	biweekly, err := Expand(d, Recurrence{Kind: RecurBiweekly, Until: until})
	require.NoError(t, err)
	assert.Len(t, biweekly, 3) // Mar 2, 16, 30
}

func TestExpandMonthlyClampsShortMonths(t *testing.T) {
	// GIVEN a monthly rule starting Jan 31 in a leap year
	d := workDraft(time.Date(2028, 1, 31, 8, 0, 0, 0, time.UTC))
	r := Recurrence{Kind: RecurMonthly, Until: time.Date(2028, 3, 31, 0, 0, 0, 0, time.UTC)}

	out, err := Expand(d, r)
	require.NoError(t, err)

	// THEN February clamps to the 29th and March returns to the 31st
	require.Len(t, out, 3)
	got := starts(out)
	assert.Equal(t, time.Date(2028, 1, 31, 8, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2028, 2, 29, 8, 0, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2028, 3, 31, 8, 0, 0, 0, time.UTC), got[2])
}

func TestExpandMonthlyNonLeapFebruary(t *testing.T) {
	d := workDraft(time.Date(2026, 1, 30, 8, 0, 0, 0, time.UTC))
	r := Recurrence{Kind: RecurMonthly, Until: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)}

	out, err := Expand(d, r)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2026, 2, 28, 8, 0, 0, 0, time.UTC), out[1].Start)
}

func TestExpandWeekdaySet(t *testing.T) {
	// GIVEN Mon+Wed over two full weeks
	d := workDraft(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)) // a Monday
	r := Recurrence{
		Kind:     RecurWeekdays,
		Until:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Weekdays: map[time.Weekday]bool{time.Monday: true, time.Wednesday: true},
	}

	out, err := Expand(d, r)
	require.NoError(t, err)

	// THEN exactly four instances: Mar 2, 4, 9, 11
	require.Len(t, out, 4)
	days := make([]int, len(out))
	for i, s := range out {
		days[i] = s.Start.Day()
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, s.Start.Weekday())
	}
	assert.Equal(t, []int{2, 4, 9, 11}, days)
}

func TestExpandOrderedByStart(t *testing.T) {
	d := workDraft(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	r := Recurrence{
		Kind:     RecurWeekdays,
		Until:    time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Weekdays: map[time.Weekday]bool{time.Friday: true, time.Tuesday: true},
	}

	out, err := Expand(d, r)
	require.NoError(t, err)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].Start.Before(out[i].Start))
	}
}

func TestExpandCommitmentIsFinanciallyInert(t *testing.T) {
	lat := -23.55
	d := Draft{
		Start:        time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		AllDay:       true,
		Location:     "Congress",
		Latitude:     &lat,
		Amount:       decimal.NewFromInt(500),
		IsCommitment: true,
	}

	out, err := Expand(d, Recurrence{Kind: RecurNone})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.True(t, out[0].Amount.IsZero())
	assert.Nil(t, out[0].Latitude)
	assert.Equal(t, 24, out[0].DurationHours)
}

func TestValidateRules(t *testing.T) {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	// Until on or before start
	err := Recurrence{Kind: RecurDaily, Until: start}.Validate(start)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Empty weekday set
	err = Recurrence{
		Kind:  RecurWeekdays,
		Until: start.AddDate(0, 1, 0),
	}.Validate(start)
	assert.ErrorIs(t, err, ErrEmptyWeekdaySelection)

	// RecurNone ignores the range entirely
	assert.NoError(t, Recurrence{Kind: RecurNone}.Validate(start))
}

func TestEstimateCount(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	until := start.AddDate(0, 0, 28)

	assert.Equal(t, 28, Recurrence{Kind: RecurDaily, Until: until}.EstimateCount(start))
	assert.Equal(t, 4, Recurrence{Kind: RecurWeekly, Until: until}.EstimateCount(start))
	assert.Equal(t, 2, Recurrence{Kind: RecurBiweekly, Until: until}.EstimateCount(start))
	assert.Equal(t, 8, Recurrence{
		Kind:     RecurWeekdays,
		Until:    until,
		Weekdays: map[time.Weekday]bool{time.Monday: true, time.Wednesday: true},
	}.EstimateCount(start))

	// Floors at 1
	short := start.AddDate(0, 0, 3)
	assert.Equal(t, 1, Recurrence{Kind: RecurMonthly, Until: short}.EstimateCount(start))
	assert.Equal(t, 1, Recurrence{Kind: RecurNone}.EstimateCount(start))
}
