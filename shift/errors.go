/*
errors.go - Centralized error types for the shift domain

PURPOSE:
  All validation and lookup errors in one place. Every check is a local,
  pre-mutation validation surfaced synchronously; nothing here is retried.

ERROR CATEGORIES:
  1. Input validation - blocks submission unconditionally
  2. Volume warning - blocks until the caller explicitly confirms
  3. Lookup/store errors - missing records, decode failures

USAGE:
  Callers branch with errors.Is / errors.As:

    if errors.Is(err, shift.ErrEmptyWeekdaySelection) { ... }

    var warn *shift.VolumeWarning
    if errors.As(err, &warn) {
        // ask the user to confirm warn.EstimatedCount instances
    }

SEE ALSO:
  - recurrence.go: raises the validation errors before expansion
  - planner.go: raises MissingGeolocation / VolumeWarning on creation
*/
package shift

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingRequiredField is returned when the location/title is empty.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMissingGeolocation is returned when a work shift (not a commitment)
	// lacks resolved coordinates.
	ErrMissingGeolocation = errors.New("work shift requires resolved coordinates")

	// ErrInvalidDuration is returned for a non-positive duration on a
	// non-all-day entry.
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrInvalidDateRange is returned when a recurrence end date is not
	// strictly after the start date.
	ErrInvalidDateRange = errors.New("recurrence end date must be after start date")

	// ErrEmptyWeekdaySelection is returned for a specific-weekdays
	// recurrence with no day selected.
	ErrEmptyWeekdaySelection = errors.New("weekday recurrence requires at least one weekday")

	// ErrNotFound is returned by stores for a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownStatus is returned when decoding an unrecognized stored
	// status value.
	ErrUnknownStatus = errors.New("unknown shift status")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// VolumeWarning is raised when a recurrence would create more instances
// than the confirmation threshold. It is not a hard validation failure:
// the caller may proceed by confirming explicitly.
type VolumeWarning struct {
	EstimatedCount int
	Threshold      int
}

func (w *VolumeWarning) Error() string {
	return fmt.Sprintf("recurrence would create ~%d shifts (threshold %d); confirmation required",
		w.EstimatedCount, w.Threshold)
}

// UnknownStatusError reports the raw value that failed to decode.
type UnknownStatusError struct {
	Raw string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown shift status %q", e.Raw)
}

func (e *UnknownStatusError) Unwrap() error { return ErrUnknownStatus }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether the error is a pre-mutation input check that
// blocks submission unconditionally.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrMissingGeolocation) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrEmptyWeekdaySelection)
}

// IsConfirmable reports whether the error merely requires explicit user
// confirmation rather than a fixed input.
func IsConfirmable(err error) bool {
	var w *VolumeWarning
	return errors.As(err, &w)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
