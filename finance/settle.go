/*
settle.go - Settlement mutations

PURPOSE:
  The two write paths of the finance side:

  1. Bulk settlement: given shift IDs from the pending view, close every
     open leg each shift has. A swapped-out shift can need both its
     receivable leg (hospital paid me) and its payable leg (I paid the
     colleague) closed in the same call.
  2. Swap agreements: registering an agreement flips the shift's status
     and swap fields; settling it stamps the effective payment and marks
     the shift's swap leg settled.

  Both paths write through shift.Store so a following aggregation read
  observes the updated values.
*/
package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/shift"
)

// Settler applies settlement mutations to the shift/agreement store.
type Settler struct {
	Store shift.Store

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewSettler(store shift.Store) *Settler {
	return &Settler{Store: store, Now: time.Now}
}

// =============================================================================
// BULK SETTLEMENT
// =============================================================================

// BulkSettle closes every open leg of each identified shift:
//   - in the receivable set: mark the hospital leg paid, and for a
//     swapped-out shift simultaneously payable, also settle the colleague leg
//   - otherwise, a swapped-in shift gets its transfer marked settled
//
// Unknown IDs are skipped rather than failing the batch: the pending view
// the IDs came from may be stale. Returns the shifts actually updated.
func (st *Settler) BulkSettle(ctx context.Context, ids []uuid.UUID) ([]shift.Shift, error) {
	now := st.now()
	var updated []shift.Shift

	for _, id := range ids {
		s, err := st.Store.GetShift(ctx, id)
		if err != nil {
			if shift.IsNotFound(err) {
				continue
			}
			return updated, fmt.Errorf("load shift %s: %w", id, err)
		}

		changed := false
		if IsReceivable(s, now) {
			switch s.Status {
			case shift.StatusSwappedIn:
				s.SwapIsSettled = true
			default:
				s.IsPaid = true
			}
			changed = true
		}
		if IsPayable(s, now) {
			s.SwapIsSettled = true
			changed = true
		}
		if !changed {
			continue
		}

		if err := st.Store.UpdateShift(ctx, s); err != nil {
			return updated, fmt.Errorf("settle shift %s: %w", id, err)
		}
		updated = append(updated, s)
	}
	return updated, nil
}

// =============================================================================
// SWAP AGREEMENTS
// =============================================================================

// RegisterAgreement records a swap agreement against a shift and applies
// the swap to the shift itself: status flips to the matching direction,
// the swap value and payment date are stamped, and a swapped-out shift is
// no longer "work done".
func (st *Settler) RegisterAgreement(ctx context.Context, shiftID uuid.UUID, dir shift.SwapDirection, colleague string, amount decimal.Decimal, paymentDate time.Time) (shift.SwapAgreement, error) {
	s, err := st.Store.GetShift(ctx, shiftID)
	if err != nil {
		return shift.SwapAgreement{}, fmt.Errorf("load shift %s: %w", shiftID, err)
	}

	if amount.IsZero() {
		amount = s.SwapValue
	}
	a := shift.SwapAgreement{
		ID:                 uuid.New(),
		ShiftID:            s.ID,
		Direction:          dir,
		ColleagueName:      colleague,
		AgreedAmount:       amount,
		OriginalShiftValue: s.Amount,
		AgreedPaymentDate:  paymentDate,
		CreatedAt:          st.now(),
	}
	if err := st.Store.InsertAgreement(ctx, a); err != nil {
		return shift.SwapAgreement{}, fmt.Errorf("insert agreement: %w", err)
	}

	s.SwapAgreementID = a.ID
	s.SwapValue = amount
	s.SwapPaymentDate = &paymentDate
	s.SwapIsSettled = false
	if dir == shift.SwapOut {
		s.Status = shift.StatusSwappedOut
		s.IsWorkDone = false
	} else {
		s.Status = shift.StatusSwappedIn
	}
	if err := st.Store.UpdateShift(ctx, s); err != nil {
		return a, fmt.Errorf("apply swap to shift %s: %w", s.ID, err)
	}
	return a, nil
}

// SettleAgreement marks an agreement fulfilled, stamps the effective
// payment date and method, and settles the linked shift's swap leg.
func (st *Settler) SettleAgreement(ctx context.Context, agreementID uuid.UUID, method shift.PaymentMethod) (shift.SwapAgreement, error) {
	a, err := st.Store.GetAgreement(ctx, agreementID)
	if err != nil {
		return shift.SwapAgreement{}, fmt.Errorf("load agreement %s: %w", agreementID, err)
	}

	now := st.now()
	a.IsSettled = true
	a.EffectivePaymentDate = &now
	if method == "" {
		method = shift.PayPix
	}
	a.Method = method
	if err := st.Store.UpdateAgreement(ctx, a); err != nil {
		return a, fmt.Errorf("update agreement %s: %w", a.ID, err)
	}

	s, err := st.Store.GetShift(ctx, a.ShiftID)
	if err != nil {
		if shift.IsNotFound(err) {
			// Weak reference: the shift may have been deleted while the
			// agreement was kept as financial history.
			return a, nil
		}
		return a, fmt.Errorf("load shift %s: %w", a.ShiftID, err)
	}
	s.SwapIsSettled = true
	if err := st.Store.UpdateShift(ctx, s); err != nil {
		return a, fmt.Errorf("settle shift %s: %w", s.ID, err)
	}
	return a, nil
}

func (st *Settler) now() time.Time {
	if st.Now != nil {
		return st.Now()
	}
	return time.Now()
}
