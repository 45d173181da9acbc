/*
planner.go - Shift creation flow

PURPOSE:
  The write path for new shifts: validate the draft, expand the recurrence,
  persist the whole series atomically, then register reminders for every
  future occurrence. Validation failures block before any mutation; the
  volume warning blocks until the caller confirms.

VALIDATION ORDER (all pre-mutation):
  1. Location/title present              -> ErrMissingRequiredField
  2. Work shift has coordinates          -> ErrMissingGeolocation
  3. Positive duration unless all-day    -> ErrInvalidDuration
  4. Recurrence well-formed              -> ErrInvalidDateRange /
                                            ErrEmptyWeekdaySelection
  5. Estimated volume under threshold    -> *VolumeWarning (confirmable)

SEE ALSO:
  - recurrence.go: the expansion itself
  - reminder: the scheduler hook called after persistence
*/
package shift

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/warp/shift-engine/reminder"
)

// VolumeThreshold is the estimated instance count above which creation
// requires explicit confirmation.
const VolumeThreshold = 100

// Planner validates, expands and persists new shifts.
type Planner struct {
	Store     Store
	Reminders reminder.Scheduler

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewPlanner wires a planner over the given collaborators.
func NewPlanner(store Store, reminders reminder.Scheduler) *Planner {
	return &Planner{Store: store, Reminders: reminders, Now: time.Now}
}

// CreateOptions tweaks a creation request.
type CreateOptions struct {
	// ConfirmVolume acknowledges a previously returned VolumeWarning and
	// lets a large expansion proceed.
	ConfirmVolume bool
}

// Create validates the draft and rule, expands the series, persists it
// atomically and schedules reminders for future occurrences. Returns the
// created shifts ordered by start.
func (p *Planner) Create(ctx context.Context, d Draft, r Recurrence, opts CreateOptions) ([]Shift, error) {
	if err := p.validateDraft(d); err != nil {
		return nil, err
	}
	if err := r.Validate(d.Start); err != nil {
		return nil, err
	}

	if est := r.EstimateCount(d.Start); est > VolumeThreshold && !opts.ConfirmVolume {
		return nil, &VolumeWarning{EstimatedCount: est, Threshold: VolumeThreshold}
	}

	shifts, err := Expand(d, r)
	if err != nil {
		return nil, err
	}

	if err := p.Store.InsertShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("persist series: %w", err)
	}

	now := p.now()
	for _, s := range shifts {
		if !s.Start.After(now) {
			continue // never remind about the past
		}
		if err := p.Reminders.Schedule(ctx, s.ID); err != nil {
			return shifts, fmt.Errorf("schedule reminders for %s: %w", s.ID, err)
		}
	}
	return shifts, nil
}

// Update persists a field mutation on an existing shift and refreshes its
// reminders (settlement and swap changes alter what the reminder shows).
func (p *Planner) Update(ctx context.Context, s Shift) error {
	if err := p.Store.UpdateShift(ctx, s); err != nil {
		return err
	}
	if s.Start.After(p.now()) {
		return p.Reminders.Schedule(ctx, s.ID)
	}
	return nil
}

func (p *Planner) validateDraft(d Draft) error {
	if strings.TrimSpace(d.Location) == "" {
		return ErrMissingRequiredField
	}
	if !d.IsCommitment && (d.Latitude == nil || d.Longitude == nil) {
		return ErrMissingGeolocation
	}
	if !d.AllDay && d.DurationHours <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
