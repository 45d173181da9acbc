package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-engine/shift"
	"github.com/warp/shift-engine/shift/store"
)

func TestCreateNoteLinksShifts(t *testing.T) {
	// GIVEN two stored work shifts
	mem := store.NewMemory()
	inv := NewInvoicer(mem)
	ctx := context.Background()

	a := shift.Shift{ID: uuid.New(), Start: march(5, 8),
		Status: shift.StatusScheduled, Amount: money(1000), Location: "Santa Casa"}
	b := shift.Shift{ID: uuid.New(), Start: march(12, 8),
		Status: shift.StatusScheduled, Amount: money(900), Location: "Santa Casa"}
	require.NoError(t, mem.InsertShift(ctx, a))
	require.NoError(t, mem.InsertShift(ctx, b))

	// WHEN issuing a consolidated note over both
	note, err := inv.CreateNote(ctx, "NF-1042", "Santa Casa", money(1900),
		[]uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)

	// THEN the note is consolidated and back-linked into each shift
	assert.True(t, note.IsConsolidated)
	assert.Len(t, note.ShiftIDs, 2)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := mem.GetShift(ctx, id)
		require.NoError(t, err)
		assert.Contains(t, got.FiscalNoteIDs, note.ID)
		assert.Equal(t, "Santa Casa", got.HospitalName)
		assert.True(t, got.Invoiced())
	}
}

func TestCreateNoteSkipsCommitments(t *testing.T) {
	mem := store.NewMemory()
	inv := NewInvoicer(mem)
	ctx := context.Background()

	work := shift.Shift{ID: uuid.New(), Start: march(5, 8),
		Status: shift.StatusScheduled, Amount: money(1000)}
	commitment := shift.Shift{ID: uuid.New(), Start: march(6, 8), IsCommitment: true}
	require.NoError(t, mem.InsertShift(ctx, work))
	require.NoError(t, mem.InsertShift(ctx, commitment))

	note, err := inv.CreateNote(ctx, "", "Santa Casa", money(1000),
		[]uuid.UUID{work.ID, commitment.ID})
	require.NoError(t, err)

	// Only the work shift is covered; one shift means not consolidated
	assert.Equal(t, []uuid.UUID{work.ID}, note.ShiftIDs)
	assert.False(t, note.IsConsolidated)

	got, err := mem.GetShift(ctx, commitment.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FiscalNoteIDs)
}

func TestCreateNoteValidation(t *testing.T) {
	mem := store.NewMemory()
	inv := NewInvoicer(mem)
	ctx := context.Background()

	_, err := inv.CreateNote(ctx, "NF-1", "", money(100), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, shift.ErrMissingRequiredField)

	_, err = inv.CreateNote(ctx, "NF-1", "Santa Casa", money(100), nil)
	assert.ErrorIs(t, err, shift.ErrMissingRequiredField)

	// A selection of only commitments covers nothing
	c := shift.Shift{ID: uuid.New(), Start: march(5, 8), IsCommitment: true}
	require.NoError(t, mem.InsertShift(ctx, c))
	_, err = inv.CreateNote(ctx, "NF-1", "Santa Casa", money(100), []uuid.UUID{c.ID})
	assert.ErrorIs(t, err, shift.ErrMissingRequiredField)
}

func TestUninvoicedFilter(t *testing.T) {
	eligible := shift.Shift{ID: uuid.New(), Status: shift.StatusScheduled, Amount: money(100)}
	paid := shift.Shift{ID: uuid.New(), IsPaid: true}
	noted := shift.Shift{ID: uuid.New(), FiscalNoteIDs: []uuid.UUID{uuid.New()}}
	commitment := shift.Shift{ID: uuid.New(), IsCommitment: true}

	out := Uninvoiced([]shift.Shift{eligible, paid, noted, commitment})
	require.Len(t, out, 1)
	assert.Equal(t, eligible.ID, out[0].ID)
}
