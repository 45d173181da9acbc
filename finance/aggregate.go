/*
Package finance derives money facts from the shift collection: monthly
statistics, open receivables/payables, bulk settlement, hospital payment
forecasts and financial alerts.

PURPOSE:
  Two distinct views of the same shifts, never to be conflated:

    Net income   accrual view - what the month is WORTH once everything
                 is paid, regardless of whether it has been
    Cash on hand realized view - money actually received minus money
                 actually paid out

  Historically the most error-prone computation in this system, which is
  why every formula lives in this one file as a pure function.

KEY CONCEPTS IN THIS FILE (aggregate.go):
  - MonthlyStats: all derived numbers for one calendar month
  - Receivable/Payable predicates: membership tests for the pending view
  - A swapped-out shift has TWO independent legs: the hospital still owes
    its amount (receivable until IsPaid) and the colleague is owed the
    swap value (payable until SwapIsSettled)

PURITY:
  Everything here is a total function over in-memory collections. Calling
  twice on unchanged input returns identical results; no hidden state.

SEE ALSO:
  - settle.go: the mutation closing receivable/payable legs
  - alerts.go: the alert derivation engine
*/
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/shift"
)

// =============================================================================
// MONTHLY STATS
// =============================================================================

// MonthlyStats is the derived financial record for one calendar month.
type MonthlyStats struct {
	Year  int
	Month time.Month

	// Hours: worked counts shifts already started or marked done; planned
	// is worked plus what is still ahead. Swapped-out shifts and
	// commitments never count.
	WorkedHours  int
	PlannedHours int
	Progress     float64 // worked/planned in [0,1]

	// Accrual view.
	Gross    decimal.Decimal // what the month is nominally worth
	Expenses decimal.Decimal // swap values owed to colleagues
	Net      decimal.Decimal // Gross - Expenses

	// Realized view.
	Received   decimal.Decimal // cash actually received
	PaidOut    decimal.Decimal // cash actually paid to colleagues
	CashOnHand decimal.Decimal // Received - PaidOut

	// Net minus realized cash: what is still outstanding for the month.
	StillOwed decimal.Decimal
}

// ComputeMonthlyStats aggregates every non-commitment shift whose start
// falls in the calendar month containing ref. now anchors the worked-hours
// split. Pure function: no input is mutated.
func ComputeMonthlyStats(shifts []shift.Shift, ref, now time.Time) MonthlyStats {
	st := MonthlyStats{
		Year:       ref.Year(),
		Month:      ref.Month(),
		Gross:      decimal.Zero,
		Expenses:   decimal.Zero,
		Net:        decimal.Zero,
		Received:   decimal.Zero,
		PaidOut:    decimal.Zero,
		CashOnHand: decimal.Zero,
		StillOwed:  decimal.Zero,
	}

	for _, s := range shifts {
		if s.IsCommitment || !s.InMonth(ref) {
			continue
		}

		// Hours. A given-away shift is no longer worked by the user.
		if s.Status != shift.StatusSwappedOut {
			st.PlannedHours += s.Hours()
			if s.Start.Before(now) || s.IsWorkDone {
				st.WorkedHours += s.Hours()
			}
		}

		switch s.Status {
		case shift.StatusSwappedOut:
			// Hospital leg stays mine; colleague leg is an expense.
			st.Gross = st.Gross.Add(s.Amount)
			st.Expenses = st.Expenses.Add(s.SwapValue)
			if s.IsPaid {
				st.Received = st.Received.Add(s.Amount)
			}
			if s.SwapIsSettled {
				st.PaidOut = st.PaidOut.Add(s.SwapValue)
			}
		case shift.StatusSwappedIn:
			// Only the colleague transfer exists for a taken-over shift.
			st.Gross = st.Gross.Add(s.SwapValue)
			if s.SwapIsSettled {
				st.Received = st.Received.Add(s.SwapValue)
			}
		default:
			st.Gross = st.Gross.Add(s.Amount)
			if s.IsPaid {
				st.Received = st.Received.Add(s.Amount)
			}
		}
	}

	st.Net = st.Gross.Sub(st.Expenses)
	st.CashOnHand = st.Received.Sub(st.PaidOut)
	st.StillOwed = st.Net.Sub(st.CashOnHand)
	if st.PlannedHours > 0 {
		st.Progress = float64(st.WorkedHours) / float64(st.PlannedHours)
	}
	return st
}

// =============================================================================
// PENDING MEMBERSHIP PREDICATES (not month-scoped)
// =============================================================================

// IsReceivable reports whether the shift still has money coming IN:
// an active work shift whose hospital leg is unpaid, or a taken-over
// shift whose colleague transfer is unsettled.
func IsReceivable(s shift.Shift, now time.Time) bool {
	if s.IsCommitment || !s.Active(now) {
		return false
	}
	switch s.Status {
	case shift.StatusSwappedIn:
		return !s.SwapIsSettled
	case shift.StatusSwappedOut:
		return !s.IsPaid
	default:
		return !s.IsPaid
	}
}

// IsPayable reports whether the shift still has money going OUT: only a
// swapped-out shift with the colleague leg unsettled.
func IsPayable(s shift.Shift, now time.Time) bool {
	return !s.IsCommitment && s.Active(now) &&
		s.Status == shift.StatusSwappedOut && !s.SwapIsSettled
}

// OpenItems partitions the full collection into open receivables and
// payables. A swapped-out shift can appear in both: its hospital leg and
// its colleague leg close independently.
func OpenItems(shifts []shift.Shift, now time.Time) (receivables, payables []shift.Shift) {
	for _, s := range shifts {
		if IsReceivable(s, now) {
			receivables = append(receivables, s)
		}
		if IsPayable(s, now) {
			payables = append(payables, s)
		}
	}
	return receivables, payables
}
