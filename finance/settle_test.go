package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-engine/shift"
	"github.com/warp/shift-engine/shift/store"
)

func testSettler(now time.Time) (*Settler, *store.Memory) {
	mem := store.NewMemory()
	st := NewSettler(mem)
	st.Now = func() time.Time { return now }
	return st, mem
}

func TestBulkSettleClosesBothLegs(t *testing.T) {
	// GIVEN a past swapped-out shift with both legs open
	now := march(20, 0)
	st, mem := testSettler(now)
	ctx := context.Background()

	s := shift.Shift{
		ID:        uuid.New(),
		Start:     march(10, 8),
		Status:    shift.StatusSwappedOut,
		Amount:    money(800),
		SwapValue: money(300),
	}
	require.NoError(t, mem.InsertShift(ctx, s))

	// WHEN bulk-settling it
	updated, err := st.BulkSettle(ctx, []uuid.UUID{s.ID})
	require.NoError(t, err)

	// THEN both legs are closed in one pass
	require.Len(t, updated, 1)
	assert.True(t, updated[0].IsPaid)
	assert.True(t, updated[0].SwapIsSettled)

	got, err := mem.GetShift(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.True(t, got.SwapIsSettled)
}

func TestBulkSettleSkipsUnknownAndClosedItems(t *testing.T) {
	now := march(20, 0)
	st, mem := testSettler(now)
	ctx := context.Background()

	open := shift.Shift{ID: uuid.New(), Start: march(10, 8),
		Status: shift.StatusScheduled, Amount: money(1000)}
	alreadyPaid := shift.Shift{ID: uuid.New(), Start: march(11, 8),
		Status: shift.StatusScheduled, Amount: money(900), IsPaid: true}
	require.NoError(t, mem.InsertShift(ctx, open))
	require.NoError(t, mem.InsertShift(ctx, alreadyPaid))

	updated, err := st.BulkSettle(ctx, []uuid.UUID{open.ID, alreadyPaid.ID, uuid.New()})
	require.NoError(t, err)

	// Only the genuinely open item is touched
	require.Len(t, updated, 1)
	assert.Equal(t, open.ID, updated[0].ID)
	assert.True(t, updated[0].IsPaid)
}

func TestBulkSettleSwappedIn(t *testing.T) {
	now := march(20, 0)
	st, mem := testSettler(now)
	ctx := context.Background()

	s := shift.Shift{ID: uuid.New(), Start: march(10, 8),
		Status: shift.StatusSwappedIn, SwapValue: money(400)}
	require.NoError(t, mem.InsertShift(ctx, s))

	updated, err := st.BulkSettle(ctx, []uuid.UUID{s.ID})
	require.NoError(t, err)

	require.Len(t, updated, 1)
	assert.True(t, updated[0].SwapIsSettled)
	assert.False(t, updated[0].IsPaid) // no hospital leg on a taken-over shift
}

func TestRegisterAgreementFlipsShift(t *testing.T) {
	now := march(1, 10)
	st, mem := testSettler(now)
	ctx := context.Background()

	s := shift.Shift{
		ID: uuid.New(), Start: march(15, 8),
		Status: shift.StatusScheduled, Amount: money(800),
		SwapValue: money(250), IsWorkDone: true,
	}
	require.NoError(t, mem.InsertShift(ctx, s))

	paymentDate := march(18, 0)

	// Zero amount falls back to the shift's stored swap value
	a, err := st.RegisterAgreement(ctx, s.ID, shift.SwapOut, "Dr. Souza",
		money(0), paymentDate)
	require.NoError(t, err)

	assert.True(t, a.AgreedAmount.Equal(money(250)))
	assert.True(t, a.OriginalShiftValue.Equal(money(800)))

	got, err := mem.GetShift(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.StatusSwappedOut, got.Status)
	assert.Equal(t, a.ID, got.SwapAgreementID)
	assert.False(t, got.IsWorkDone) // given away, no longer the user's work
	require.NotNil(t, got.SwapPaymentDate)
	assert.True(t, paymentDate.Equal(*got.SwapPaymentDate))

	stored, err := mem.GetAgreement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Souza", stored.ColleagueName)
}

func TestSettleAgreementStampsMethodAndShift(t *testing.T) {
	now := march(19, 15)
	st, mem := testSettler(now)
	ctx := context.Background()

	s := shift.Shift{ID: uuid.New(), Start: march(15, 8),
		Status: shift.StatusScheduled, Amount: money(800)}
	require.NoError(t, mem.InsertShift(ctx, s))

	a, err := st.RegisterAgreement(ctx, s.ID, shift.SwapIn, "Dr. Lima",
		money(400), march(18, 0))
	require.NoError(t, err)

	// Settling with no method defaults to pix
	settled, err := st.SettleAgreement(ctx, a.ID, "")
	require.NoError(t, err)

	assert.True(t, settled.IsSettled)
	assert.Equal(t, shift.PayPix, settled.Method)
	require.NotNil(t, settled.EffectivePaymentDate)
	assert.True(t, now.Equal(*settled.EffectivePaymentDate))

	got, err := mem.GetShift(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.SwapIsSettled)
}

func TestSettleAgreementToleratesDeletedShift(t *testing.T) {
	now := march(19, 15)
	st, mem := testSettler(now)
	ctx := context.Background()

	s := shift.Shift{ID: uuid.New(), Start: march(15, 8),
		Status: shift.StatusScheduled, Amount: money(800)}
	require.NoError(t, mem.InsertShift(ctx, s))

	a, err := st.RegisterAgreement(ctx, s.ID, shift.SwapOut, "Dr. Souza",
		money(300), march(18, 0))
	require.NoError(t, err)

	// The shift is deleted but the agreement survives as history
	require.NoError(t, mem.DeleteShift(ctx, s.ID))

	settled, err := st.SettleAgreement(ctx, a.ID, shift.PayCash)
	require.NoError(t, err)
	assert.True(t, settled.IsSettled)
	assert.Equal(t, shift.PayCash, settled.Method)
}
