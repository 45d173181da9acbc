/*
Package shift holds the scheduling domain: the Shift entity and its
satellites (SwapAgreement, Hospital, FiscalNote), the recurrence expansion
engine, the series mutation engine, and the persistence interface.

PURPOSE:
  A Shift is the root entity of the whole system. It is either a paid work
  shift at a hospital or a personal commitment that merely blocks the
  calendar. Everything financial - what the hospital owes, what a swap
  costs, what has actually been settled - hangs off shift fields and is
  consumed downstream by the finance package.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shift: time interval + classification + financial state
  - Status: closed enum {scheduled, completed, swapped_out, swapped_in}
  - SwapAgreement: the colleague-payment side of a swap
  - Hospital: payer profile with a predictable payment cadence
  - FiscalNote: an invoice covering one or more shifts

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every monetary amount
  2. Commitments are financially inert: every derived computation treats a
     commitment's amounts and flags as zero/false regardless of stored values
  3. Weak references: satellites point at shifts by ID; deleting a shift
     does not cascade (financial history is preserved)
  4. Closed enums at the boundary: decoding an unknown status is an error,
     with an explicit legacy fallback helper for old stored data

SEE ALSO:
  - recurrence.go: expansion of a draft into a series
  - series.go: "this one" vs "this and future" deletion
  - finance/aggregate.go: the formulas consuming these fields
*/
package shift

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/calendar"
)

// =============================================================================
// STATUS
// =============================================================================

// Status classifies a shift's operational state.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusCompleted  Status = "completed"
	StatusSwappedOut Status = "swapped_out" // gave the shift to a colleague
	StatusSwappedIn  Status = "swapped_in"  // took a colleague's shift
)

// ParseStatus decodes a stored status string. Unknown values are a defined
// error, not a silent default.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusSwappedOut, StatusSwappedIn:
		return Status(s), nil
	}
	return "", &UnknownStatusError{Raw: s}
}

// StatusOrScheduled decodes a stored status string, falling back to
// scheduled for unknown values. Kept for compatibility with records written
// before the enum was closed; new code paths should use ParseStatus.
func StatusOrScheduled(s string) Status {
	st, err := ParseStatus(s)
	if err != nil {
		return StatusScheduled
	}
	return st
}

// IsSwap reports whether the status is either swap direction.
func (s Status) IsSwap() bool {
	return s == StatusSwappedOut || s == StatusSwappedIn
}

// =============================================================================
// SHIFT - Root entity
// =============================================================================

// Shift is a work shift or a personal commitment occupying a time interval.
type Shift struct {
	ID    uuid.UUID
	Start time.Time

	// Duration in whole hours, or AllDay (mutually exclusive: when AllDay
	// is set the end time is Start+24h and DurationHours is ignored).
	DurationHours int
	AllDay        bool

	// Location: free text for commitments, geocoded for work shifts.
	Location  string
	Latitude  *float64
	Longitude *float64

	// Recurrence series membership. Empty for one-off entries.
	RecurrenceID string

	Status Status
	Notes  string

	// Commitment: personal, blocks the calendar, financially inert.
	IsCommitment bool

	// Hospital leg: what the payer owes for this shift.
	Amount       decimal.Decimal
	IsPaid       bool
	HospitalID   uuid.UUID
	HospitalName string

	// Swap leg: what is owed between colleagues.
	SwapValue       decimal.Decimal
	SwapPaymentDate *time.Time
	SwapIsSettled   bool
	SwapAgreementID uuid.UUID

	FiscalNoteIDs []uuid.UUID

	// User-asserted completion, independent of calendar time having passed.
	IsWorkDone bool
}

// End returns the derived end instant: Start + 24h for all-day entries,
// otherwise Start + DurationHours.
func (s Shift) End() time.Time {
	hours := s.DurationHours
	if s.AllDay {
		hours = 24
	}
	return s.Start.Add(time.Duration(hours) * time.Hour)
}

// Hours returns the interval length in whole hours.
func (s Shift) Hours() int {
	if s.AllDay {
		return 24
	}
	return s.DurationHours
}

// NetIncome is the accrual-basis projected earning for this shift:
// zero for commitments, amount minus the swap expense when swapped out,
// the swap value when swapped in, the plain amount otherwise.
func (s Shift) NetIncome() decimal.Decimal {
	if s.IsCommitment {
		return decimal.Zero
	}
	switch s.Status {
	case StatusSwappedOut:
		return s.Amount.Sub(s.SwapValue)
	case StatusSwappedIn:
		return s.SwapValue
	default:
		return s.Amount
	}
}

// EffectiveAmount is the hospital-owed amount with the commitment invariant
// applied: commitments contribute zero no matter what is stored.
func (s Shift) EffectiveAmount() decimal.Decimal {
	if s.IsCommitment {
		return decimal.Zero
	}
	return s.Amount
}

// EffectiveSwapValue is the colleague-owed amount with the commitment
// invariant applied.
func (s Shift) EffectiveSwapValue() decimal.Decimal {
	if s.IsCommitment {
		return decimal.Zero
	}
	return s.SwapValue
}

// Active reports whether the shift is temporally "live" for pending-item
// purposes: its start has passed, the user marked it done, or it was given
// away (a swapped-out shift owes money regardless of when it happens).
func (s Shift) Active(now time.Time) bool {
	return s.Start.Before(now) || s.IsWorkDone || s.Status == StatusSwappedOut
}

// Invoiced reports whether at least one fiscal note covers this shift.
func (s Shift) Invoiced() bool { return len(s.FiscalNoteIDs) > 0 }

// InMonth reports whether the shift's start falls in the same calendar
// month and year as ref.
func (s Shift) InMonth(ref time.Time) bool {
	return calendar.SameMonth(s.Start, ref)
}

// =============================================================================
// SWAP AGREEMENT
// =============================================================================

// SwapDirection records which way a shift changed hands.
type SwapDirection string

const (
	SwapOut SwapDirection = "out" // I gave my shift away and owe the colleague
	SwapIn  SwapDirection = "in"  // I took a colleague's shift and am owed
)

// PaymentMethod is how a colleague transfer was settled.
type PaymentMethod string

const (
	PayPix      PaymentMethod = "pix"
	PayTransfer PaymentMethod = "transfer"
	PayCash     PaymentMethod = "cash"
)

// SwapAgreement is the optional richer record behind a shift swap. It
// references the shift by ID (weak reference, no cascade).
type SwapAgreement struct {
	ID        uuid.UUID
	ShiftID   uuid.UUID
	Direction SwapDirection

	ColleagueName      string
	AgreedAmount       decimal.Decimal
	OriginalShiftValue decimal.Decimal
	AgreedPaymentDate  time.Time

	IsSettled            bool
	EffectivePaymentDate *time.Time
	Method               PaymentMethod

	CreatedAt time.Time
}

// IsOverdue reports whether the agreed payment date has passed without
// settlement, at day granularity.
func (a SwapAgreement) IsOverdue(now time.Time) bool {
	return !a.IsSettled && calendar.DayStart(a.AgreedPaymentDate).Before(calendar.DayStart(now))
}

// DaysOverdue returns whole days elapsed since the agreed date, floored at 0.
func (a SwapAgreement) DaysOverdue(now time.Time) int {
	d := calendar.DaysBetween(a.AgreedPaymentDate, now)
	if d < 0 {
		return 0
	}
	return d
}

// DaysUntilDue returns whole days from now until the agreed date; negative
// once the date has passed.
func (a SwapAgreement) DaysUntilDue(now time.Time) int {
	return calendar.DaysBetween(now, a.AgreedPaymentDate)
}

// =============================================================================
// HOSPITAL - Payer profile
// =============================================================================

// PaymentFrequency is how often a hospital pays out.
type PaymentFrequency string

const (
	PayWeekly   PaymentFrequency = "weekly"
	PayBiweekly PaymentFrequency = "biweekly"
	PayMonthly  PaymentFrequency = "monthly"
	PayCustom   PaymentFrequency = "custom"
)

// Hospital is a payer profile used for payment prediction and alerting.
// It relates to shifts only by matching name, never by ownership.
type Hospital struct {
	ID   uuid.UUID
	Name string

	Frequency PaymentFrequency

	// Day rule for monthly payers: a fixed day-of-month clamped to short
	// months, or the last day of the month.
	PaymentDay     int
	LastDayOfMonth bool

	// Cycle length in days for PayCustom.
	CustomIntervalDays int

	// How many days past the due date before a payment counts as late.
	LatencyToleranceDays int

	AverageShiftValue decimal.Decimal
	AlertsEnabled     bool

	// Most recent payment acknowledged by the user. Anchors cyclic
	// frequencies; when nil those frequencies have no due date yet.
	LastPaidAt *time.Time

	CreatedAt time.Time
}

// NextPaymentDate predicts the due date of the hospital's current payment
// cycle relative to now. For monthly payers this is the configured day of
// the current month (clamped, or the last day) - which may already be in
// the past if the payment has not been acknowledged - rolling to the next
// month once LastPaidAt covers it. Weekly, biweekly and custom cycles
// anchor on LastPaidAt; unanchored they return ok=false.
func (h Hospital) NextPaymentDate(now time.Time) (time.Time, bool) {
	switch h.Frequency {
	case PayMonthly:
		due := h.monthlyDue(now)
		if h.LastPaidAt != nil && !calendar.DayStart(*h.LastPaidAt).Before(due) {
			due = h.monthlyDue(calendar.AddMonths(now, 1))
		}
		return due, true
	case PayWeekly:
		return h.cyclicDue(7)
	case PayBiweekly:
		return h.cyclicDue(14)
	case PayCustom:
		if h.CustomIntervalDays <= 0 {
			return time.Time{}, false
		}
		return h.cyclicDue(h.CustomIntervalDays)
	}
	return time.Time{}, false
}

func (h Hospital) monthlyDue(ref time.Time) time.Time {
	day := h.PaymentDay
	if h.LastDayOfMonth {
		day = calendar.DaysInMonth(ref)
	}
	return calendar.DayStart(calendar.ClampedDayOfMonth(ref, day))
}

func (h Hospital) cyclicDue(intervalDays int) (time.Time, bool) {
	if h.LastPaidAt == nil {
		return time.Time{}, false
	}
	return calendar.AddDays(calendar.DayStart(*h.LastPaidAt), intervalDays), true
}

// PaymentOverdueDays returns how many days past its latency tolerance the
// hospital's current due date is. Zero when on time or unpredictable.
func (h Hospital) PaymentOverdueDays(now time.Time) int {
	due, ok := h.NextPaymentDate(now)
	if !ok {
		return 0
	}
	late := calendar.DaysBetween(due, now)
	if late <= h.LatencyToleranceDays {
		return 0
	}
	return late
}

// =============================================================================
// FISCAL NOTE - Invoice against a hospital
// =============================================================================

// FiscalNote is an invoice aggregating one or more work shifts.
type FiscalNote struct {
	ID           uuid.UUID
	NoteNumber   string // optional
	TotalAmount  decimal.Decimal
	HospitalName string
	ShiftIDs     []uuid.UUID

	// True when the note covers more than one shift.
	IsConsolidated bool

	CreatedAt time.Time
}

// NewFiscalNote builds a note over the given shifts, deriving the
// consolidated flag from the shift count.
func NewFiscalNote(noteNumber, hospitalName string, total decimal.Decimal, shiftIDs []uuid.UUID) FiscalNote {
	ids := make([]uuid.UUID, len(shiftIDs))
	copy(ids, shiftIDs)
	return FiscalNote{
		ID:             uuid.New(),
		NoteNumber:     noteNumber,
		TotalAmount:    total,
		HospitalName:   hospitalName,
		ShiftIDs:       ids,
		IsConsolidated: len(ids) > 1,
		CreatedAt:      time.Now().UTC(),
	}
}
