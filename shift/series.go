/*
series.go - Series mutation engine

PURPOSE:
  Computes and applies the deletion set for a recurrence series. The set
  computation is a pure function over the shift collection; the engine
  then releases each shift's reminders and removes the records in one
  atomic batch.

SCOPES:
  only this one     {trigger}
  this and future   same recurrence ID, start >= trigger start (inclusive)
  whole series      every shift with the recurrence ID, any date

ORDERING:
  Reminder cancellation happens BEFORE the store delete. A reminder firing
  for a removed shift is worse than a deleted shift briefly keeping its
  reminder, and the batch delete remains atomic either way.
*/
package shift

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/warp/shift-engine/reminder"
)

// DeleteScope selects how much of a series a deletion request covers.
type DeleteScope string

const (
	DeleteOne    DeleteScope = "one"
	DeleteFuture DeleteScope = "future"
	DeleteSeries DeleteScope = "series"
)

// =============================================================================
// PURE SET COMPUTATION
// =============================================================================

// FutureSet returns the shifts sharing the trigger's recurrence ID whose
// start is at or after the trigger's start, the trigger included. For a
// one-off trigger (no recurrence ID) the set is just the trigger.
func FutureSet(all []Shift, trigger Shift) []Shift {
	if trigger.RecurrenceID == "" {
		return []Shift{trigger}
	}
	var set []Shift
	for _, s := range all {
		if s.RecurrenceID == trigger.RecurrenceID && !s.Start.Before(trigger.Start) {
			set = append(set, s)
		}
	}
	return set
}

// SeriesSet returns every shift sharing the trigger's recurrence ID,
// regardless of date.
func SeriesSet(all []Shift, trigger Shift) []Shift {
	if trigger.RecurrenceID == "" {
		return []Shift{trigger}
	}
	var set []Shift
	for _, s := range all {
		if s.RecurrenceID == trigger.RecurrenceID {
			set = append(set, s)
		}
	}
	return set
}

// DeletionSet resolves the scope against the collection.
func DeletionSet(all []Shift, trigger Shift, scope DeleteScope) []Shift {
	switch scope {
	case DeleteFuture:
		return FutureSet(all, trigger)
	case DeleteSeries:
		return SeriesSet(all, trigger)
	default:
		return []Shift{trigger}
	}
}

// =============================================================================
// SERIES ENGINE - Applies the deletion against the store
// =============================================================================

// SeriesEngine applies series deletions: reminders released first, records
// removed in one atomic batch.
type SeriesEngine struct {
	Store     Store
	Reminders reminder.Scheduler
}

// NewSeriesEngine wires the engine over its collaborators.
func NewSeriesEngine(store Store, reminders reminder.Scheduler) *SeriesEngine {
	return &SeriesEngine{Store: store, Reminders: reminders}
}

// Delete removes the trigger shift and, per scope, its series siblings.
// Returns the IDs actually deleted.
func (e *SeriesEngine) Delete(ctx context.Context, trigger Shift, scope DeleteScope) ([]uuid.UUID, error) {
	set := []Shift{trigger}
	if scope != DeleteOne && trigger.RecurrenceID != "" {
		siblings, err := e.Store.ListSeries(ctx, trigger.RecurrenceID)
		if err != nil {
			return nil, fmt.Errorf("load series %s: %w", trigger.RecurrenceID, err)
		}
		set = DeletionSet(siblings, trigger, scope)
	}

	ids := make([]uuid.UUID, 0, len(set))
	for _, s := range set {
		if err := e.Reminders.Cancel(ctx, s.ID); err != nil {
			return nil, fmt.Errorf("cancel reminders for %s: %w", s.ID, err)
		}
		ids = append(ids, s.ID)
	}

	if err := e.Store.DeleteShifts(ctx, ids); err != nil {
		return nil, fmt.Errorf("delete shifts: %w", err)
	}
	return ids, nil
}
