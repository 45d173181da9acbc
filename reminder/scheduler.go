// Package reminder defines the reminder-scheduler collaborator contract.
//
// The core never implements notification delivery; it only calls these
// hooks at the documented mutation points: after a shift is created or
// updated, and before a shift record is deleted. Hosts plug in a real
// scheduler (OS notifications, cron, whatever); tests plug in a recorder.
package reminder

import (
	"context"

	"github.com/google/uuid"
)

// Scheduler schedules and cancels per-shift reminders.
type Scheduler interface {
	// Schedule (re)registers reminders for the given shift occurrence.
	// Implementations are expected to ignore past-dated occurrences.
	Schedule(ctx context.Context, shiftID uuid.UUID) error

	// Cancel releases every pending reminder tied to the shift ID. Called
	// before the shift record is removed; a deletion is not complete until
	// its reminders are released.
	Cancel(ctx context.Context, shiftID uuid.UUID) error
}

// Nop is a Scheduler that does nothing. Used when notifications are
// disabled and as the default collaborator in tests that don't assert on
// scheduling.
type Nop struct{}

func (Nop) Schedule(context.Context, uuid.UUID) error { return nil }
func (Nop) Cancel(context.Context, uuid.UUID) error   { return nil }

var _ Scheduler = Nop{}
