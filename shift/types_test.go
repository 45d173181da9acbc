package shift

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"scheduled", "completed", "swapped_out", "swapped_in"} {
		st, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), st)
	}

	_, err := ParseStatus("cancelled")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	// Storage boundary fallback
	assert.Equal(t, StatusScheduled, StatusOrScheduled("cancelled"))
	assert.Equal(t, StatusCompleted, StatusOrScheduled("completed"))
}

func TestNetIncomePerStatus(t *testing.T) {
	base := Shift{
		Amount:    decimal.NewFromInt(1000),
		SwapValue: decimal.NewFromInt(300),
	}

	s := base
	s.Status = StatusScheduled
	assert.True(t, s.NetIncome().Equal(decimal.NewFromInt(1000)))

	s.Status = StatusSwappedOut
	assert.True(t, s.NetIncome().Equal(decimal.NewFromInt(700)))

	s.Status = StatusSwappedIn
	assert.True(t, s.NetIncome().Equal(decimal.NewFromInt(300)))

	s.IsCommitment = true
	assert.True(t, s.NetIncome().IsZero())
	assert.True(t, s.EffectiveAmount().IsZero())
	assert.True(t, s.EffectiveSwapValue().IsZero())
}

func TestShiftEndAndHours(t *testing.T) {
	start := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

	timed := Shift{Start: start, DurationHours: 12}
	assert.Equal(t, start.Add(12*time.Hour), timed.End())
	assert.Equal(t, 12, timed.Hours())

	allDay := Shift{Start: start, AllDay: true, DurationHours: 3}
	assert.Equal(t, start.Add(24*time.Hour), allDay.End())
	assert.Equal(t, 24, allDay.Hours())
}

func TestAgreementOverdue(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	a := SwapAgreement{AgreedPaymentDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)}
	assert.True(t, a.IsOverdue(now))
	assert.Equal(t, 8, a.DaysOverdue(now))

	// Settled agreements are never overdue
	a.IsSettled = true
	assert.False(t, a.IsOverdue(now))

	// Due today is not overdue; due in two days reports the window
	b := SwapAgreement{AgreedPaymentDate: time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)}
	assert.False(t, b.IsOverdue(now))
	assert.Equal(t, 0, b.DaysUntilDue(now))

	c := SwapAgreement{AgreedPaymentDate: time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 2, c.DaysUntilDue(now))
}

func TestHospitalNextPaymentMonthly(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// GIVEN a monthly hospital paying on the 5th, last paid in February
	lastPaid := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	h := Hospital{Frequency: PayMonthly, PaymentDay: 5, LastPaidAt: &lastPaid}

	due, ok := h.NextPaymentDate(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), due)

	// WHEN the March payment lands, the due date rolls to April
	marchPaid := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	h.LastPaidAt = &marchPaid
	due, ok = h.NextPaymentDate(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), due)
}

func TestHospitalNextPaymentMonthlyClamps(t *testing.T) {
	// Payment day 31 in February resolves to the last day of the month
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	h := Hospital{Frequency: PayMonthly, PaymentDay: 31}

	due, ok := h.NextPaymentDate(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), due)

	// Explicit last-day flag behaves the same
	h = Hospital{Frequency: PayMonthly, PaymentDay: 10, LastDayOfMonth: true}
	due, ok = h.NextPaymentDate(now)
	require.True(t, ok)
	assert.Equal(t, 28, due.Day())
}

func TestHospitalNextPaymentCyclic(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Unanchored cyclic hospitals have no predictable date
	h := Hospital{Frequency: PayBiweekly}
	_, ok := h.NextPaymentDate(now)
	assert.False(t, ok)

	lastPaid := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h.LastPaidAt = &lastPaid
	due, ok := h.NextPaymentDate(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), due)

	custom := Hospital{Frequency: PayCustom, CustomIntervalDays: 10, LastPaidAt: &lastPaid}
	due, ok = custom.NextPaymentDate(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), due)

	// Custom without an interval is undefined
	_, ok = Hospital{Frequency: PayCustom, LastPaidAt: &lastPaid}.NextPaymentDate(now)
	assert.False(t, ok)
}

func TestHospitalPaymentOverdueDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	lastPaid := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	h := Hospital{
		Frequency:            PayMonthly,
		PaymentDay:           5,
		LatencyToleranceDays: 3,
		LastPaidAt:           &lastPaid,
	}

	// Due Mar 5, now Mar 10: five days late, past the 3-day tolerance
	assert.Equal(t, 5, h.PaymentOverdueDays(now))

	// Within tolerance reports zero
	h.LatencyToleranceDays = 7
	assert.Equal(t, 0, h.PaymentOverdueDays(now))
}

func TestNewFiscalNoteConsolidation(t *testing.T) {
	one := NewFiscalNote("", "Santa Casa", decimal.NewFromInt(1000), []uuid.UUID{uuid.New()})
	assert.False(t, one.IsConsolidated)

	two := NewFiscalNote("NF-1", "Santa Casa", decimal.NewFromInt(2000),
		[]uuid.UUID{uuid.New(), uuid.New()})
	assert.True(t, two.IsConsolidated)
	assert.NotEqual(t, "", two.ID.String())
}
