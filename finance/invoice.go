/*
invoice.go - Fiscal note (invoice) creation

A fiscal note aggregates selected work shifts into one invoice against a
hospital. Creating it back-links the note ID into each covered shift and
stamps the hospital name, so the alert engine can tell invoiced shifts
from uninvoiced ones.
*/
package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/shift"
)

// Invoicer creates fiscal notes over selected shifts.
type Invoicer struct {
	Store shift.Store
}

func NewInvoicer(store shift.Store) *Invoicer {
	return &Invoicer{Store: store}
}

// CreateNote records a fiscal note covering the given shifts, links the
// note back into each one and stamps the hospital name. The consolidated
// flag derives from the shift count. Commitments cannot be invoiced.
func (inv *Invoicer) CreateNote(ctx context.Context, noteNumber, hospitalName string, total decimal.Decimal, shiftIDs []uuid.UUID) (shift.FiscalNote, error) {
	if hospitalName == "" || len(shiftIDs) == 0 {
		return shift.FiscalNote{}, shift.ErrMissingRequiredField
	}

	covered := make([]shift.Shift, 0, len(shiftIDs))
	for _, id := range shiftIDs {
		s, err := inv.Store.GetShift(ctx, id)
		if err != nil {
			return shift.FiscalNote{}, fmt.Errorf("load shift %s: %w", id, err)
		}
		if s.IsCommitment {
			continue
		}
		covered = append(covered, s)
	}
	if len(covered) == 0 {
		return shift.FiscalNote{}, shift.ErrMissingRequiredField
	}

	ids := make([]uuid.UUID, len(covered))
	for i, s := range covered {
		ids[i] = s.ID
	}
	note := shift.NewFiscalNote(noteNumber, hospitalName, total, ids)
	if err := inv.Store.InsertFiscalNote(ctx, note); err != nil {
		return shift.FiscalNote{}, fmt.Errorf("insert fiscal note: %w", err)
	}

	for _, s := range covered {
		if !containsID(s.FiscalNoteIDs, note.ID) {
			s.FiscalNoteIDs = append(s.FiscalNoteIDs, note.ID)
		}
		s.HospitalName = hospitalName
		if err := inv.Store.UpdateShift(ctx, s); err != nil {
			return note, fmt.Errorf("link note to shift %s: %w", s.ID, err)
		}
	}
	return note, nil
}

// Uninvoiced returns the work shifts eligible for a new note: not a
// commitment, hospital leg unpaid, no fiscal note linked yet.
func Uninvoiced(shifts []shift.Shift) []shift.Shift {
	var out []shift.Shift
	for _, s := range shifts {
		if !s.IsCommitment && !s.IsPaid && !s.Invoiced() {
			out = append(out, s)
		}
	}
	return out
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
