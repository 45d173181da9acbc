/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY:
  Every monetary field travels as a decimal string ("1234.50"), never a
  float. Instants are RFC3339; bare dates use YYYY-MM-DD.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - shift/types.go: The domain model these map to
*/
package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/warp/shift-engine/finance"
	"github.com/warp/shift-engine/shift"
)

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO represents a shift in API responses.
type ShiftDTO struct {
	ID            string   `json:"id"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
	DurationHours int      `json:"duration_hours"`
	AllDay        bool     `json:"all_day"`
	Location      string   `json:"location"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	RecurrenceID  string   `json:"recurrence_id,omitempty"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes,omitempty"`
	IsCommitment  bool     `json:"is_commitment"`

	Amount          string   `json:"amount"`
	NetIncome       string   `json:"net_income"`
	IsPaid          bool     `json:"is_paid"`
	HospitalID      string   `json:"hospital_id,omitempty"`
	HospitalName    string   `json:"hospital_name,omitempty"`
	SwapValue       string   `json:"swap_value"`
	SwapPaymentDate *string  `json:"swap_payment_date,omitempty"`
	SwapIsSettled   bool     `json:"swap_is_settled"`
	SwapAgreementID string   `json:"swap_agreement_id,omitempty"`
	FiscalNoteIDs   []string `json:"fiscal_note_ids,omitempty"`
	IsWorkDone      bool     `json:"is_work_done"`
}

// RecurrenceRequest is the repetition rule attached to a create request.
type RecurrenceRequest struct {
	Kind     string   `json:"kind"`               // none|daily|weekly|biweekly|monthly|weekdays
	Until    string   `json:"until,omitempty"`    // YYYY-MM-DD, inclusive
	Weekdays []string `json:"weekdays,omitempty"` // monday..sunday, for kind=weekdays
}

// CreateShiftRequest is the request to create a shift or series.
type CreateShiftRequest struct {
	Start         string   `json:"start"` // RFC3339
	DurationHours int      `json:"duration_hours"`
	AllDay        bool     `json:"all_day"`
	Location      string   `json:"location"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Amount        string   `json:"amount,omitempty"`
	IsCommitment  bool     `json:"is_commitment"`
	Notes         string   `json:"notes,omitempty"`

	Recurrence *RecurrenceRequest `json:"recurrence,omitempty"`

	// ConfirmVolume acknowledges a previously returned volume warning.
	ConfirmVolume bool `json:"confirm_volume"`
}

// UpdateShiftRequest is the request to update a stored shift. Absent
// fields keep their stored value.
type UpdateShiftRequest struct {
	Start           *string  `json:"start,omitempty"`
	DurationHours   *int     `json:"duration_hours,omitempty"`
	AllDay          *bool    `json:"all_day,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Status          *string  `json:"status,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	Amount          *string  `json:"amount,omitempty"`
	IsPaid          *bool    `json:"is_paid,omitempty"`
	HospitalID      *string  `json:"hospital_id,omitempty"`
	HospitalName    *string  `json:"hospital_name,omitempty"`
	SwapValue       *string  `json:"swap_value,omitempty"`
	SwapPaymentDate *string  `json:"swap_payment_date,omitempty"`
	SwapIsSettled   *bool    `json:"swap_is_settled,omitempty"`
	IsWorkDone      *bool    `json:"is_work_done,omitempty"`
}

// VolumeWarningResponse is returned when a recurrence would expand past
// the confirmation threshold and confirm_volume was not set.
type VolumeWarningResponse struct {
	Error          string `json:"error"`
	EstimatedCount int    `json:"estimated_count"`
	Threshold      int    `json:"threshold"`
	ConfirmHint    string `json:"confirm_hint"`
}

// DeleteShiftsResponse lists the IDs removed by a scoped delete.
type DeleteShiftsResponse struct {
	DeletedIDs []string `json:"deleted_ids"`
}

// =============================================================================
// FINANCE
// =============================================================================

// MonthlyStatsDTO is the derived financial record for one month.
type MonthlyStatsDTO struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	WorkedHours  int     `json:"worked_hours"`
	PlannedHours int     `json:"planned_hours"`
	Progress     float64 `json:"progress"`
	Gross        string  `json:"gross"`
	Expenses     string  `json:"expenses"`
	Net          string  `json:"net"`
	Received     string  `json:"received"`
	PaidOut      string  `json:"paid_out"`
	CashOnHand   string  `json:"cash_on_hand"`
	StillOwed    string  `json:"still_owed"`
}

// PendingResponse groups open receivables and payables.
type PendingResponse struct {
	Receivables []ShiftDTO `json:"receivables"`
	Payables    []ShiftDTO `json:"payables"`
}

// BulkSettleRequest is the request to close open items wholesale.
type BulkSettleRequest struct {
	ShiftIDs []string `json:"shift_ids"`
}

// BulkSettleResponse lists the shifts updated by a bulk settlement.
type BulkSettleResponse struct {
	Settled []ShiftDTO `json:"settled"`
}

// AlertDTO is one derived financial alert.
type AlertDTO struct {
	Severity string  `json:"severity"`
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	ShiftID  string  `json:"shift_id,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

// ForecastDTO is the predicted payment for one hospital.
type ForecastDTO struct {
	HospitalID     string  `json:"hospital_id"`
	HospitalName   string  `json:"hospital_name"`
	NextPayment    *string `json:"next_payment,omitempty"`
	ExpectedAmount string  `json:"expected_amount"`
	PendingShifts  int     `json:"pending_shifts"`
}

// =============================================================================
// HOSPITALS
// =============================================================================

// HospitalDTO represents a hospital payer profile.
type HospitalDTO struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Frequency            string  `json:"frequency"`
	PaymentDay           int     `json:"payment_day"`
	LastDayOfMonth       bool    `json:"last_day_of_month"`
	CustomIntervalDays   int     `json:"custom_interval_days,omitempty"`
	LatencyToleranceDays int     `json:"latency_tolerance_days"`
	AverageShiftValue    string  `json:"average_shift_value"`
	AlertsEnabled        bool    `json:"alerts_enabled"`
	LastPaidAt           *string `json:"last_paid_at,omitempty"`
	NextPaymentDate      *string `json:"next_payment_date,omitempty"`
}

// SaveHospitalRequest creates or updates a hospital profile.
type SaveHospitalRequest struct {
	Name                 string  `json:"name"`
	Frequency            string  `json:"frequency"`
	PaymentDay           int     `json:"payment_day"`
	LastDayOfMonth       bool    `json:"last_day_of_month"`
	CustomIntervalDays   int     `json:"custom_interval_days"`
	LatencyToleranceDays int     `json:"latency_tolerance_days"`
	AverageShiftValue    string  `json:"average_shift_value,omitempty"`
	AlertsEnabled        bool    `json:"alerts_enabled"`
	LastPaidAt           *string `json:"last_paid_at,omitempty"` // YYYY-MM-DD
}

// =============================================================================
// FISCAL NOTES AND AGREEMENTS
// =============================================================================

// FiscalNoteDTO represents an issued invoice.
type FiscalNoteDTO struct {
	ID             string   `json:"id"`
	NoteNumber     string   `json:"note_number,omitempty"`
	TotalAmount    string   `json:"total_amount"`
	HospitalName   string   `json:"hospital_name"`
	ShiftIDs       []string `json:"shift_ids"`
	IsConsolidated bool     `json:"is_consolidated"`
	CreatedAt      string   `json:"created_at"`
}

// CreateFiscalNoteRequest creates a note covering the given shifts.
type CreateFiscalNoteRequest struct {
	NoteNumber   string   `json:"note_number,omitempty"`
	HospitalName string   `json:"hospital_name"`
	TotalAmount  string   `json:"total_amount"`
	ShiftIDs     []string `json:"shift_ids"`
}

// AgreementDTO represents a swap agreement.
type AgreementDTO struct {
	ID                   string  `json:"id"`
	ShiftID              string  `json:"shift_id"`
	Direction            string  `json:"direction"`
	ColleagueName        string  `json:"colleague_name"`
	AgreedAmount         string  `json:"agreed_amount"`
	OriginalShiftValue   string  `json:"original_shift_value"`
	AgreedPaymentDate    string  `json:"agreed_payment_date"`
	IsSettled            bool    `json:"is_settled"`
	EffectivePaymentDate *string `json:"effective_payment_date,omitempty"`
	Method               string  `json:"method,omitempty"`
	DaysOverdue          int     `json:"days_overdue"`
	CreatedAt            string  `json:"created_at"`
}

// RegisterAgreementRequest links a colleague transfer to a shift.
type RegisterAgreementRequest struct {
	ShiftID       string `json:"shift_id"`
	Direction     string `json:"direction"` // out|in
	ColleagueName string `json:"colleague_name"`
	Amount        string `json:"amount,omitempty"` // defaults to the shift's swap value
	PaymentDate   string `json:"payment_date"`     // YYYY-MM-DD
}

// SettleAgreementRequest closes an agreement.
type SettleAgreementRequest struct {
	Method string `json:"method,omitempty"` // pix|transfer|cash, default pix
}

// ErrorResponse is the JSON shape of every error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toShiftDTO(s shift.Shift) ShiftDTO {
	dto := ShiftDTO{
		ID:            s.ID.String(),
		Start:         s.Start.Format(time.RFC3339),
		End:           s.End().Format(time.RFC3339),
		DurationHours: s.DurationHours,
		AllDay:        s.AllDay,
		Location:      s.Location,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		RecurrenceID:  s.RecurrenceID,
		Status:        string(s.Status),
		Notes:         s.Notes,
		IsCommitment:  s.IsCommitment,
		Amount:        s.Amount.String(),
		NetIncome:     s.NetIncome().String(),
		IsPaid:        s.IsPaid,
		HospitalName:  s.HospitalName,
		SwapValue:     s.SwapValue.String(),
		SwapIsSettled: s.SwapIsSettled,
		IsWorkDone:    s.IsWorkDone,
	}
	if s.HospitalID != uuid.Nil {
		dto.HospitalID = s.HospitalID.String()
	}
	if s.SwapAgreementID != uuid.Nil {
		dto.SwapAgreementID = s.SwapAgreementID.String()
	}
	if s.SwapPaymentDate != nil {
		dto.SwapPaymentDate = strPtr(s.SwapPaymentDate.Format("2006-01-02"))
	}
	for _, id := range s.FiscalNoteIDs {
		dto.FiscalNoteIDs = append(dto.FiscalNoteIDs, id.String())
	}
	return dto
}

func toShiftDTOs(shifts []shift.Shift) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	return dtos
}

func toStatsDTO(st finance.MonthlyStats) MonthlyStatsDTO {
	return MonthlyStatsDTO{
		Year:         st.Year,
		Month:        int(st.Month),
		WorkedHours:  st.WorkedHours,
		PlannedHours: st.PlannedHours,
		Progress:     st.Progress,
		Gross:        st.Gross.String(),
		Expenses:     st.Expenses.String(),
		Net:          st.Net.String(),
		Received:     st.Received.String(),
		PaidOut:      st.PaidOut.String(),
		CashOnHand:   st.CashOnHand.String(),
		StillOwed:    st.StillOwed.String(),
	}
}

func toAlertDTO(a finance.Alert) AlertDTO {
	dto := AlertDTO{
		Severity: a.Severity.String(),
		Type:     string(a.Type),
		Title:    a.Title,
		Message:  a.Message,
	}
	if a.ShiftID != uuid.Nil {
		dto.ShiftID = a.ShiftID.String()
	}
	if a.DueDate != nil {
		dto.DueDate = strPtr(a.DueDate.Format("2006-01-02"))
	}
	return dto
}

func toForecastDTO(f finance.HospitalForecast) ForecastDTO {
	dto := ForecastDTO{
		HospitalID:     f.Hospital.ID.String(),
		HospitalName:   f.Hospital.Name,
		ExpectedAmount: f.ExpectedAmount.String(),
		PendingShifts:  f.PendingShifts,
	}
	if f.HasDate {
		dto.NextPayment = strPtr(f.NextPayment.Format("2006-01-02"))
	}
	return dto
}

func toHospitalDTO(h shift.Hospital, now time.Time) HospitalDTO {
	dto := HospitalDTO{
		ID:                   h.ID.String(),
		Name:                 h.Name,
		Frequency:            string(h.Frequency),
		PaymentDay:           h.PaymentDay,
		LastDayOfMonth:       h.LastDayOfMonth,
		CustomIntervalDays:   h.CustomIntervalDays,
		LatencyToleranceDays: h.LatencyToleranceDays,
		AverageShiftValue:    h.AverageShiftValue.String(),
		AlertsEnabled:        h.AlertsEnabled,
	}
	if h.LastPaidAt != nil {
		dto.LastPaidAt = strPtr(h.LastPaidAt.Format("2006-01-02"))
	}
	if due, ok := h.NextPaymentDate(now); ok {
		dto.NextPaymentDate = strPtr(due.Format("2006-01-02"))
	}
	return dto
}

func toFiscalNoteDTO(n shift.FiscalNote) FiscalNoteDTO {
	dto := FiscalNoteDTO{
		ID:             n.ID.String(),
		NoteNumber:     n.NoteNumber,
		TotalAmount:    n.TotalAmount.String(),
		HospitalName:   n.HospitalName,
		IsConsolidated: n.IsConsolidated,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
	}
	dto.ShiftIDs = make([]string, len(n.ShiftIDs))
	for i, id := range n.ShiftIDs {
		dto.ShiftIDs[i] = id.String()
	}
	return dto
}

func toAgreementDTO(a shift.SwapAgreement, now time.Time) AgreementDTO {
	dto := AgreementDTO{
		ID:                 a.ID.String(),
		ShiftID:            a.ShiftID.String(),
		Direction:          string(a.Direction),
		ColleagueName:      a.ColleagueName,
		AgreedAmount:       a.AgreedAmount.String(),
		OriginalShiftValue: a.OriginalShiftValue.String(),
		AgreedPaymentDate:  a.AgreedPaymentDate.Format("2006-01-02"),
		IsSettled:          a.IsSettled,
		Method:             string(a.Method),
		DaysOverdue:        a.DaysOverdue(now),
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
	}
	if a.EffectivePaymentDate != nil {
		dto.EffectivePaymentDate = strPtr(a.EffectivePaymentDate.Format("2006-01-02"))
	}
	return dto
}

func strPtr(s string) *string {
	return &s
}
