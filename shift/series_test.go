package shift

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesStore answers ListSeries from a slice and records deletions.
type seriesStore struct {
	Store
	shifts  []Shift
	deleted []uuid.UUID
}

func (f *seriesStore) ListSeries(_ context.Context, recurrenceID string) ([]Shift, error) {
	var out []Shift
	for _, s := range f.shifts {
		if s.RecurrenceID == recurrenceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *seriesStore) DeleteShifts(_ context.Context, ids []uuid.UUID) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

func weeklySeries(n int) []Shift {
	recurrenceID := uuid.NewString()
	out := make([]Shift, n)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = Shift{
			ID:           uuid.New(),
			Start:        start.AddDate(0, 0, 7*i),
			RecurrenceID: recurrenceID,
			Status:       StatusScheduled,
		}
	}
	return out
}

func TestDeletionSetScopes(t *testing.T) {
	all := weeklySeries(5)
	trigger := all[2]

	one := DeletionSet(all, trigger, DeleteOne)
	require.Len(t, one, 1)
	assert.Equal(t, trigger.ID, one[0].ID)

	// Future from the third occurrence keeps W3, W4, W5
	future := DeletionSet(all, trigger, DeleteFuture)
	require.Len(t, future, 3)
	for _, s := range future {
		assert.False(t, s.Start.Before(trigger.Start))
	}

	series := DeletionSet(all, trigger, DeleteSeries)
	assert.Len(t, series, 5)
}

func TestDeletionSetOneOffTrigger(t *testing.T) {
	// A shift without a recurrence ID resolves to itself for every scope
	solo := Shift{ID: uuid.New(), Start: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	others := weeklySeries(3)

	for _, scope := range []DeleteScope{DeleteOne, DeleteFuture, DeleteSeries} {
		set := DeletionSet(append(others, solo), solo, scope)
		require.Len(t, set, 1, "scope %s", scope)
		assert.Equal(t, solo.ID, set[0].ID)
	}
}

func TestSeriesDeleteCancelsRemindersBeforeRemoval(t *testing.T) {
	// GIVEN a five-occurrence series and a trigger on the third
	all := weeklySeries(5)
	store := &seriesStore{shifts: all}
	reminders := &fakeReminders{}
	engine := NewSeriesEngine(store, reminders)

	// WHEN deleting future occurrences from the third
	deleted, err := engine.Delete(context.Background(), all[2], DeleteFuture)
	require.NoError(t, err)

	// THEN W3..W5 are gone and each had its reminder cancelled first
	want := []uuid.UUID{all[2].ID, all[3].ID, all[4].ID}
	assert.Equal(t, want, deleted)
	assert.Equal(t, want, store.deleted)
	assert.Equal(t, want, reminders.cancelled)
}

func TestSeriesDeleteOneSkipsSiblingLookup(t *testing.T) {
	all := weeklySeries(3)
	store := &seriesStore{shifts: all}
	engine := NewSeriesEngine(store, &fakeReminders{})

	deleted, err := engine.Delete(context.Background(), all[0], DeleteOne)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{all[0].ID}, deleted)
}
