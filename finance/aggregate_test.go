package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-engine/shift"
)

func march(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func money(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func eq(t *testing.T, want int64, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, got.Equal(money(want)), "%s: want %d, got %s", label, want, got)
}

func TestMonthlyStatsTwoViewVector(t *testing.T) {
	// GIVEN an unpaid scheduled shift and a swapped-out shift whose
	// hospital leg was paid but whose colleague leg is still open
	ref := march(1, 0)
	now := march(20, 0)
	shifts := []shift.Shift{
		{
			ID:            uuid.New(),
			Start:         march(10, 8),
			DurationHours: 12,
			Status:        shift.StatusScheduled,
			Amount:        money(1000),
		},
		{
			ID:            uuid.New(),
			Start:         march(15, 8),
			DurationHours: 12,
			Status:        shift.StatusSwappedOut,
			Amount:        money(800),
			SwapValue:     money(300),
			IsPaid:        true,
		},
	}

	st := ComputeMonthlyStats(shifts, ref, now)

	// THEN the accrual and realized views diverge exactly where expected
	eq(t, 1800, st.Gross, "gross")
	eq(t, 300, st.Expenses, "expenses")
	eq(t, 1500, st.Net, "net")
	eq(t, 800, st.Received, "received")
	eq(t, 0, st.PaidOut, "paid out")
	eq(t, 800, st.CashOnHand, "cash on hand")
	eq(t, 700, st.StillOwed, "still owed")

	// Swapped-out hours never count as the user's work
	assert.Equal(t, 12, st.PlannedHours)
	assert.Equal(t, 12, st.WorkedHours)
}

func TestMonthlyStatsIsIdempotent(t *testing.T) {
	shifts := []shift.Shift{
		{ID: uuid.New(), Start: march(10, 8), DurationHours: 12,
			Status: shift.StatusScheduled, Amount: money(1000)},
	}

	first := ComputeMonthlyStats(shifts, march(1, 0), march(20, 0))
	second := ComputeMonthlyStats(shifts, march(1, 0), march(20, 0))
	assert.Equal(t, first, second)
	// The input amount is untouched
	assert.True(t, shifts[0].Amount.Equal(money(1000)))
}

func TestMonthlyStatsExcludesCommitmentsAndOtherMonths(t *testing.T) {
	shifts := []shift.Shift{
		{ID: uuid.New(), Start: march(10, 8), DurationHours: 12,
			Status: shift.StatusScheduled, Amount: money(1000)},
		// Commitment with a stale stored amount stays inert
		{ID: uuid.New(), Start: march(12, 8), DurationHours: 4,
			Status: shift.StatusScheduled, Amount: money(500), IsCommitment: true},
		// April shift is out of window
		{ID: uuid.New(), Start: time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
			DurationHours: 12, Status: shift.StatusScheduled, Amount: money(900)},
	}

	st := ComputeMonthlyStats(shifts, march(1, 0), march(20, 0))
	eq(t, 1000, st.Gross, "gross")
	assert.Equal(t, 12, st.PlannedHours)
}

func TestMonthlyStatsSwappedInLeg(t *testing.T) {
	shifts := []shift.Shift{
		{ID: uuid.New(), Start: march(10, 8), DurationHours: 6,
			Status: shift.StatusSwappedIn, Amount: money(999), SwapValue: money(400)},
	}

	open := ComputeMonthlyStats(shifts, march(1, 0), march(20, 0))
	eq(t, 400, open.Gross, "gross uses the transfer value, not the stored amount")
	eq(t, 0, open.Received, "unsettled transfer is not cash")

	shifts[0].SwapIsSettled = true
	settled := ComputeMonthlyStats(shifts, march(1, 0), march(20, 0))
	eq(t, 400, settled.Received, "settled transfer is cash")
}

func TestProgressSplitsAtNow(t *testing.T) {
	shifts := []shift.Shift{
		{ID: uuid.New(), Start: march(5, 8), DurationHours: 12, Status: shift.StatusScheduled},
		{ID: uuid.New(), Start: march(25, 8), DurationHours: 12, Status: shift.StatusScheduled},
		// Future but user-asserted done
		{ID: uuid.New(), Start: march(28, 8), DurationHours: 6,
			Status: shift.StatusScheduled, IsWorkDone: true},
	}

	st := ComputeMonthlyStats(shifts, march(1, 0), march(20, 0))
	assert.Equal(t, 30, st.PlannedHours)
	assert.Equal(t, 18, st.WorkedHours)
	assert.InDelta(t, 0.6, st.Progress, 1e-9)
}

func TestOpenItemsSwappedOutHasTwoLegs(t *testing.T) {
	now := march(20, 0)

	// GIVEN a past swapped-out shift with both legs open
	s := shift.Shift{
		ID:        uuid.New(),
		Start:     march(10, 8),
		Status:    shift.StatusSwappedOut,
		Amount:    money(800),
		SwapValue: money(300),
	}

	receivables, payables := OpenItems([]shift.Shift{s}, now)
	require.Len(t, receivables, 1)
	require.Len(t, payables, 1)
	assert.Equal(t, s.ID, receivables[0].ID)
	assert.Equal(t, s.ID, payables[0].ID)

	// Closing each leg retires it independently
	s.IsPaid = true
	receivables, payables = OpenItems([]shift.Shift{s}, now)
	assert.Empty(t, receivables)
	assert.Len(t, payables, 1)

	s.SwapIsSettled = true
	_, payables = OpenItems([]shift.Shift{s}, now)
	assert.Empty(t, payables)
}

func TestOpenItemsActivity(t *testing.T) {
	now := march(20, 0)

	// Future unpaid shift is not yet receivable
	future := shift.Shift{ID: uuid.New(), Start: march(25, 8), Status: shift.StatusScheduled}
	r, _ := OpenItems([]shift.Shift{future}, now)
	assert.Empty(t, r)

	// Unless the user marked it done
	future.IsWorkDone = true
	r, _ = OpenItems([]shift.Shift{future}, now)
	assert.Len(t, r, 1)

	// A future swapped-out shift owes money regardless of its date
	futureSwap := shift.Shift{
		ID: uuid.New(), Start: march(25, 8),
		Status: shift.StatusSwappedOut, SwapValue: money(200),
	}
	r, p := OpenItems([]shift.Shift{futureSwap}, now)
	assert.Len(t, r, 1)
	assert.Len(t, p, 1)

	// Commitments never appear
	commitment := shift.Shift{ID: uuid.New(), Start: march(5, 8), IsCommitment: true}
	r, p = OpenItems([]shift.Shift{commitment}, now)
	assert.Empty(t, r)
	assert.Empty(t, p)
}

func TestSwappedInReceivable(t *testing.T) {
	now := march(20, 0)
	s := shift.Shift{
		ID: uuid.New(), Start: march(10, 8),
		Status: shift.StatusSwappedIn, SwapValue: money(400),
	}

	assert.True(t, IsReceivable(s, now))
	assert.False(t, IsPayable(s, now))

	s.SwapIsSettled = true
	assert.False(t, IsReceivable(s, now))
}
