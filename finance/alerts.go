/*
alerts.go - Alert derivation engine

PURPOSE:
  Scans agreements, shifts and hospitals and produces the prioritized
  alert list for the alerts view. Alerts are ephemeral derived state:
  recomputed in full on every request, never persisted, never
  incrementally maintained.

RULES (thresholds match long-standing app behavior):
  - unsettled agreement overdue by more than 7 days   -> critical
  - unsettled agreement due within the next 0-2 days  -> warning
  - 3+ past-dated unpaid shifts without a fiscal note -> one warning
  - hospital (alerts enabled) past its latency tolerance -> critical
  - nothing at all                                    -> one info "all clear"

  The returned list is never empty and is sorted by severity descending,
  stable within a severity.
*/
package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/warp/shift-engine/shift"
)

// Severity orders alerts; higher is more urgent.
type Severity int

const (
	SeverityInfo Severity = iota + 1
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// AlertType tags what a given alert is about.
type AlertType string

const (
	AlertLateTransfer    AlertType = "late_transfer"
	AlertTransferDueSoon AlertType = "transfer_due_soon"
	AlertPendingInvoices AlertType = "pending_invoices"
	AlertLatePayment     AlertType = "late_hospital_payment"
	AlertAllClear        AlertType = "all_clear"
)

// Alert is one derived financial alert.
type Alert struct {
	Severity Severity
	Type     AlertType
	Title    string
	Message  string

	// Optional references for the UI to link to.
	ShiftID uuid.UUID
	DueDate *time.Time
}

const (
	overdueCriticalDays = 7
	dueSoonWindowDays   = 2
	pendingInvoiceFloor = 3
)

// Derive produces the full alert list from current state. Pure function of
// its inputs; the result is never empty.
func Derive(shifts []shift.Shift, agreements []shift.SwapAgreement, hospitals []shift.Hospital, now time.Time) []Alert {
	var alerts []Alert

	// Colleague transfers.
	for _, a := range agreements {
		if a.IsSettled {
			continue
		}
		if a.IsOverdue(now) && a.DaysOverdue(now) > overdueCriticalDays {
			due := a.AgreedPaymentDate
			alerts = append(alerts, Alert{
				Severity: SeverityCritical,
				Type:     AlertLateTransfer,
				Title:    "Late transfer",
				Message:  fmt.Sprintf("%s is owed for %d days", a.ColleagueName, a.DaysOverdue(now)),
				ShiftID:  a.ShiftID,
				DueDate:  &due,
			})
			continue
		}
		if d := a.DaysUntilDue(now); d >= 0 && d <= dueSoonWindowDays {
			due := a.AgreedPaymentDate
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Type:     AlertTransferDueSoon,
				Title:    "Transfer due soon",
				Message:  fmt.Sprintf("%s is due in %d day(s)", a.ColleagueName, d),
				ShiftID:  a.ShiftID,
				DueDate:  &due,
			})
		}
	}

	// Missing invoices: one aggregate warning once enough pile up.
	uninvoiced := 0
	for _, s := range shifts {
		if !s.IsCommitment && !s.IsPaid && !s.Invoiced() && s.Start.Before(now) {
			uninvoiced++
		}
	}
	if uninvoiced >= pendingInvoiceFloor {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Type:     AlertPendingInvoices,
			Title:    "Pending invoices",
			Message:  fmt.Sprintf("%d past shifts have no fiscal note", uninvoiced),
		})
	}

	// Hospital payments.
	for _, h := range hospitals {
		if !h.AlertsEnabled {
			continue
		}
		if late := h.PaymentOverdueDays(now); late > 0 {
			due, _ := h.NextPaymentDate(now)
			alerts = append(alerts, Alert{
				Severity: SeverityCritical,
				Type:     AlertLatePayment,
				Title:    "Late hospital payment",
				Message:  fmt.Sprintf("%s is %d days late", h.Name, late),
				DueDate:  &due,
			})
		}
	}

	if len(alerts) == 0 {
		alerts = append(alerts, Alert{
			Severity: SeverityInfo,
			Type:     AlertAllClear,
			Title:    "All clear",
			Message:  "No outstanding financial issues.",
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity > alerts[j].Severity
	})
	return alerts
}
