/*
store.go - Persistence interface for the shift domain

PURPOSE:
  Defines the interface between the domain engines and the database.
  Different implementations can use SQLite or in-memory storage.

CONTRACT:
  - Retrieval is ordered: shift listings come back ascending by start.
  - Batch operations (InsertShifts, DeleteShifts) are atomic: a series is
    created or deleted as a whole, never partially. Aggregation reads that
    follow a batch mutation observe the updated state.
  - Missing records surface ErrNotFound; store-level failures are returned
    to the caller, never swallowed or retried here.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - shift/store:  in-memory store for tests/dev

SEE ALSO:
  - planner.go, series.go: the two mutation engines writing through this
  - finance: reads collections loaded from this interface
*/
package shift

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store handles persistence of shifts and their satellite records.
type Store interface {
	// Shifts
	InsertShift(ctx context.Context, s Shift) error
	// InsertShifts persists a whole expansion atomically.
	InsertShifts(ctx context.Context, shifts []Shift) error
	UpdateShift(ctx context.Context, s Shift) error
	DeleteShift(ctx context.Context, id uuid.UUID) error
	// DeleteShifts removes a deletion set atomically.
	DeleteShifts(ctx context.Context, ids []uuid.UUID) error
	GetShift(ctx context.Context, id uuid.UUID) (Shift, error)
	// ListShifts returns all shifts ascending by start instant.
	ListShifts(ctx context.Context) ([]Shift, error)
	// ListSeries returns all shifts sharing a recurrence ID, ascending.
	ListSeries(ctx context.Context, recurrenceID string) ([]Shift, error)
	// ListShiftsInRange returns shifts with Start in [from, to], ascending.
	ListShiftsInRange(ctx context.Context, from, to time.Time) ([]Shift, error)

	// Swap agreements
	InsertAgreement(ctx context.Context, a SwapAgreement) error
	UpdateAgreement(ctx context.Context, a SwapAgreement) error
	GetAgreement(ctx context.Context, id uuid.UUID) (SwapAgreement, error)
	ListAgreements(ctx context.Context) ([]SwapAgreement, error)

	// Hospitals
	InsertHospital(ctx context.Context, h Hospital) error
	UpdateHospital(ctx context.Context, h Hospital) error
	DeleteHospital(ctx context.Context, id uuid.UUID) error
	GetHospital(ctx context.Context, id uuid.UUID) (Hospital, error)
	ListHospitals(ctx context.Context) ([]Hospital, error)

	// Fiscal notes
	InsertFiscalNote(ctx context.Context, n FiscalNote) error
	GetFiscalNote(ctx context.Context, id uuid.UUID) (FiscalNote, error)
	ListFiscalNotes(ctx context.Context) ([]FiscalNote, error)
}
