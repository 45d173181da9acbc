package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-engine/shift"
)

func TestForecastPerHospital(t *testing.T) {
	now := march(10, 0)

	lastPaid := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	santaCasa := shift.Hospital{ID: uuid.New(), Name: "Santa Casa",
		Frequency: shift.PayMonthly, PaymentDay: 5, LastPaidAt: &lastPaid}
	unanchored := shift.Hospital{ID: uuid.New(), Name: "Hospital Sul",
		Frequency: shift.PayBiweekly}

	shifts := []shift.Shift{
		// Attributed by explicit hospital name
		{ID: uuid.New(), Start: march(3, 8), Amount: money(1000),
			HospitalName: "Santa Casa"},
		// Attributed by location fallback
		{ID: uuid.New(), Start: march(7, 8), Amount: money(800),
			Location: "Santa Casa"},
		// Paid shifts are no longer expected money
		{ID: uuid.New(), Start: march(1, 8), Amount: money(900),
			HospitalName: "Santa Casa", IsPaid: true},
		// Commitments never carry money
		{ID: uuid.New(), Start: march(2, 8), Amount: money(500),
			HospitalName: "Santa Casa", IsCommitment: true},
		{ID: uuid.New(), Start: march(4, 8), Amount: money(700),
			HospitalName: "Hospital Sul"},
	}

	out := Forecast(shifts, []shift.Hospital{santaCasa, unanchored}, now)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "Santa Casa", first.Hospital.Name)
	assert.True(t, first.ExpectedAmount.Equal(money(1800)))
	assert.Equal(t, 2, first.PendingShifts)
	require.True(t, first.HasDate)
	// Paid Mar 1, before the Mar 5 due date: the current cycle is still due
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), first.NextPayment)

	second := out[1]
	assert.False(t, second.HasDate) // biweekly with no payment anchor
	assert.True(t, second.ExpectedAmount.Equal(money(700)))
}

func TestAverageShiftValue(t *testing.T) {
	shifts := []shift.Shift{
		{ID: uuid.New(), Amount: money(1000), HospitalName: "Santa Casa"},
		{ID: uuid.New(), Amount: money(800), Location: "Santa Casa"},
		{ID: uuid.New(), Amount: money(999), HospitalName: "Hospital Sul"},
		{ID: uuid.New(), Amount: money(500), HospitalName: "Santa Casa", IsCommitment: true},
	}

	avg := AverageShiftValue(shifts, "Santa Casa")
	assert.True(t, avg.Equal(money(900)))

	assert.True(t, AverageShiftValue(shifts, "Nowhere").IsZero())
}
