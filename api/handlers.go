/*
handlers.go - HTTP API handlers for the shift engine

PURPOSE:
  Exposes the scheduling and reconciliation engines via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Shifts:
    GET    /api/shifts                 List shifts (filter=agenda|history|upcoming)
    POST   /api/shifts                 Create a shift or recurrence series
    GET    /api/shifts/{id}            Get one shift
    PUT    /api/shifts/{id}            Update a shift
    DELETE /api/shifts/{id}            Delete (scope=one|future|series)

  Finance:
    GET    /api/stats/monthly          Monthly financial record
    GET    /api/pending                Open receivables and payables
    POST   /api/settlements            Bulk settle open items
    GET    /api/alerts                 Derived financial alerts
    GET    /api/forecast               Payment forecast per hospital

  Hospitals / notes / agreements:
    GET|POST        /api/hospitals
    PUT|DELETE      /api/hospitals/{id}
    GET|POST        /api/fiscal-notes
    GET|POST        /api/agreements
    POST            /api/agreements/{id}/settle

  Misc:
    GET    /api/locations/search?q=    Location lookup
    GET    /healthz                    Liveness probe

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (planner, series engine, settler, ...)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Volume warning awaiting confirmation
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/finance"
	"github.com/warp/shift-engine/geo"
	"github.com/warp/shift-engine/reminder"
	"github.com/warp/shift-engine/shift"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    shift.Store
	Planner  *shift.Planner
	Series   *shift.SeriesEngine
	Settler  *finance.Settler
	Invoicer *finance.Invoicer
	Geo      geo.Searcher

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler wires a handler over the given collaborators.
func NewHandler(store shift.Store, reminders reminder.Scheduler, searcher geo.Searcher) *Handler {
	return &Handler{
		Store:    store,
		Planner:  shift.NewPlanner(store, reminders),
		Series:   shift.NewSeriesEngine(store, reminders),
		Settler:  finance.NewSettler(store),
		Invoicer: finance.NewInvoicer(store),
		Geo:      searcher,
		Now:      time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns shifts, optionally filtered into a calendar view.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Store.ListShifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	now := h.now()
	switch r.URL.Query().Get("filter") {
	case "agenda":
		shifts = shift.Agenda(shifts, now)
	case "history":
		shifts = shift.History(shifts, now)
	case "upcoming":
		var queue []shift.Shift
		if next, ok := shift.Next(shifts, now); ok {
			queue = append(queue, next)
			queue = append(queue, shift.Upcoming(shifts, now, 2)...)
		}
		shifts = queue
	case "", "all":
	default:
		writeError(w, http.StatusBadRequest, "Unknown filter (use agenda, history or upcoming)", nil)
		return
	}

	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// CreateShift creates a single shift or expands a recurrence series.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start (use RFC3339)", err)
		return
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid amount", err)
			return
		}
	}

	rule, err := parseRecurrence(req.Recurrence)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recurrence", err)
		return
	}

	draft := shift.Draft{
		Start:         start,
		DurationHours: req.DurationHours,
		AllDay:        req.AllDay,
		Location:      req.Location,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Amount:        amount,
		IsCommitment:  req.IsCommitment,
		Notes:         req.Notes,
	}

	created, err := h.Planner.Create(r.Context(), draft, rule,
		shift.CreateOptions{ConfirmVolume: req.ConfirmVolume})
	if err != nil {
		var vw *shift.VolumeWarning
		if errors.As(err, &vw) {
			writeJSON(w, http.StatusConflict, VolumeWarningResponse{
				Error:          "Recurrence would create a large number of shifts",
				EstimatedCount: vw.EstimatedCount,
				Threshold:      vw.Threshold,
				ConfirmHint:    "Retry with confirm_volume=true to proceed",
			})
			return
		}
		if shift.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "Invalid shift", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create shift", err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftDTOs(created))
}

// GetShift returns a single shift.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}

	s, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(s))
}

// UpdateShift applies a partial update to a stored shift.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}

	var req UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get shift", err)
		return
	}

	if err := applyShiftUpdate(&s, req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid update", err)
		return
	}

	if err := h.Planner.Update(r.Context(), s); err != nil {
		if shift.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "Invalid shift", err)
			return
		}
		writeStoreError(w, "Failed to update shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(s))
}

// DeleteShift removes a shift, optionally with series scope.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift id", err)
		return
	}

	scope := shift.DeleteScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = shift.DeleteOne
	}
	switch scope {
	case shift.DeleteOne, shift.DeleteFuture, shift.DeleteSeries:
	default:
		writeError(w, http.StatusBadRequest, "Unknown scope (use one, future or series)", nil)
		return
	}

	trigger, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get shift", err)
		return
	}

	deleted, err := h.Series.Delete(r.Context(), trigger, scope)
	if err != nil {
		writeStoreError(w, "Failed to delete shifts", err)
		return
	}

	resp := DeleteShiftsResponse{DeletedIDs: make([]string, len(deleted))}
	for i, d := range deleted {
		resp.DeletedIDs[i] = d.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// FINANCE HANDLERS
// =============================================================================

// GetMonthlyStats returns the financial record for a calendar month.
// Defaults to the current month.
func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	ref := now

	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		month := int(now.Month())
		if m := r.URL.Query().Get("month"); m != "" {
			month, err = strconv.Atoi(m)
			if err != nil || month < 1 || month > 12 {
				writeError(w, http.StatusBadRequest, "Invalid month", err)
				return
			}
		}
		ref = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	}

	shifts, err := h.Store.ListShifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsDTO(finance.ComputeMonthlyStats(shifts, ref, now)))
}

// GetPending returns the open receivables and payables.
func (h *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Store.ListShifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	receivables, payables := finance.OpenItems(shifts, h.now())
	writeJSON(w, http.StatusOK, PendingResponse{
		Receivables: toShiftDTOs(receivables),
		Payables:    toShiftDTOs(payables),
	})
}

// BulkSettle closes the open legs of the given shifts.
func (h *Handler) BulkSettle(w http.ResponseWriter, r *http.Request) {
	var req BulkSettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ShiftIDs))
	for _, raw := range req.ShiftIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid shift id %q", raw), err)
			return
		}
		ids = append(ids, id)
	}

	settled, err := h.Settler.BulkSettle(r.Context(), ids)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to settle", err)
		return
	}
	writeJSON(w, http.StatusOK, BulkSettleResponse{Settled: toShiftDTOs(settled)})
}

// GetAlerts returns the derived financial alert list.
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shifts, err := h.Store.ListShifts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	agreements, err := h.Store.ListAgreements(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list agreements", err)
		return
	}
	hospitals, err := h.Store.ListHospitals(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list hospitals", err)
		return
	}

	alerts := finance.Derive(shifts, agreements, hospitals, h.now())
	dtos := make([]AlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = toAlertDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetForecast returns the payment prediction per hospital.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shifts, err := h.Store.ListShifts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	hospitals, err := h.Store.ListHospitals(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list hospitals", err)
		return
	}

	forecasts := finance.Forecast(shifts, hospitals, h.now())
	dtos := make([]ForecastDTO, len(forecasts))
	for i, f := range forecasts {
		dtos[i] = toForecastDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HOSPITAL HANDLERS
// =============================================================================

// ListHospitals returns all hospital profiles.
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.Store.ListHospitals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list hospitals", err)
		return
	}

	now := h.now()
	dtos := make([]HospitalDTO, len(hospitals))
	for i, hosp := range hospitals {
		dtos[i] = toHospitalDTO(hosp, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHospital creates a hospital profile.
func (h *Handler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	hosp, ok := h.decodeHospital(w, r)
	if !ok {
		return
	}
	hosp.ID = uuid.New()
	hosp.CreatedAt = h.now()

	if err := h.Store.InsertHospital(r.Context(), hosp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create hospital", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHospitalDTO(hosp, h.now()))
}

// UpdateHospital replaces a hospital profile.
func (h *Handler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hospital id", err)
		return
	}

	existing, err := h.Store.GetHospital(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get hospital", err)
		return
	}

	hosp, ok := h.decodeHospital(w, r)
	if !ok {
		return
	}
	hosp.ID = existing.ID
	hosp.CreatedAt = existing.CreatedAt

	if err := h.Store.UpdateHospital(r.Context(), hosp); err != nil {
		writeStoreError(w, "Failed to update hospital", err)
		return
	}
	writeJSON(w, http.StatusOK, toHospitalDTO(hosp, h.now()))
}

// DeleteHospital removes a hospital profile. Shifts referencing it keep
// their denormalized hospital name.
func (h *Handler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hospital id", err)
		return
	}

	if err := h.Store.DeleteHospital(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete hospital", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeHospital(w http.ResponseWriter, r *http.Request) (shift.Hospital, bool) {
	var req SaveHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return shift.Hospital{}, false
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Hospital name is required", nil)
		return shift.Hospital{}, false
	}

	freq := shift.PaymentFrequency(req.Frequency)
	switch freq {
	case shift.PayWeekly, shift.PayBiweekly, shift.PayMonthly, shift.PayCustom:
	default:
		writeError(w, http.StatusBadRequest, "Unknown payment frequency", nil)
		return shift.Hospital{}, false
	}

	avg := decimal.Zero
	if req.AverageShiftValue != "" {
		var err error
		avg, err = decimal.NewFromString(req.AverageShiftValue)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid average_shift_value", err)
			return shift.Hospital{}, false
		}
	}

	hosp := shift.Hospital{
		Name:                 strings.TrimSpace(req.Name),
		Frequency:            freq,
		PaymentDay:           req.PaymentDay,
		LastDayOfMonth:       req.LastDayOfMonth,
		CustomIntervalDays:   req.CustomIntervalDays,
		LatencyToleranceDays: req.LatencyToleranceDays,
		AverageShiftValue:    avg,
		AlertsEnabled:        req.AlertsEnabled,
	}
	if req.LastPaidAt != nil {
		t, err := time.Parse("2006-01-02", *req.LastPaidAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid last_paid_at (use YYYY-MM-DD)", err)
			return shift.Hospital{}, false
		}
		hosp.LastPaidAt = &t
	}
	return hosp, true
}

// =============================================================================
// FISCAL NOTE HANDLERS
// =============================================================================

// ListFiscalNotes returns all notes, most recent first.
func (h *Handler) ListFiscalNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Store.ListFiscalNotes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list fiscal notes", err)
		return
	}

	dtos := make([]FiscalNoteDTO, len(notes))
	for i, n := range notes {
		dtos[i] = toFiscalNoteDTO(n)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateFiscalNote issues a note covering the given shifts.
func (h *Handler) CreateFiscalNote(w http.ResponseWriter, r *http.Request) {
	var req CreateFiscalNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid total_amount", err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ShiftIDs))
	for _, raw := range req.ShiftIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid shift id %q", raw), err)
			return
		}
		ids = append(ids, id)
	}

	note, err := h.Invoicer.CreateNote(r.Context(), req.NoteNumber, req.HospitalName, total, ids)
	if err != nil {
		if shift.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "Invalid fiscal note", err)
			return
		}
		writeStoreError(w, "Failed to create fiscal note", err)
		return
	}
	writeJSON(w, http.StatusCreated, toFiscalNoteDTO(note))
}

// =============================================================================
// AGREEMENT HANDLERS
// =============================================================================

// ListAgreements returns all swap agreements, most recent first.
func (h *Handler) ListAgreements(w http.ResponseWriter, r *http.Request) {
	agreements, err := h.Store.ListAgreements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list agreements", err)
		return
	}

	now := h.now()
	dtos := make([]AgreementDTO, len(agreements))
	for i, a := range agreements {
		dtos[i] = toAgreementDTO(a, now)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RegisterAgreement links a colleague transfer to a shift.
func (h *Handler) RegisterAgreement(w http.ResponseWriter, r *http.Request) {
	var req RegisterAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift_id", err)
		return
	}

	dir := shift.SwapDirection(req.Direction)
	if dir != shift.SwapOut && dir != shift.SwapIn {
		writeError(w, http.StatusBadRequest, "Unknown direction (use out or in)", nil)
		return
	}

	if strings.TrimSpace(req.ColleagueName) == "" {
		writeError(w, http.StatusBadRequest, "Colleague name is required", nil)
		return
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment_date (use YYYY-MM-DD)", err)
		return
	}

	amount := decimal.Zero
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid amount", err)
			return
		}
	}

	agreement, err := h.Settler.RegisterAgreement(r.Context(), shiftID, dir,
		strings.TrimSpace(req.ColleagueName), amount, paymentDate)
	if err != nil {
		writeStoreError(w, "Failed to register agreement", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAgreementDTO(agreement, h.now()))
}

// SettleAgreement closes an agreement and its shift leg.
func (h *Handler) SettleAgreement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid agreement id", err)
		return
	}

	var req SettleAgreementRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	agreement, err := h.Settler.SettleAgreement(r.Context(), id, shift.PaymentMethod(req.Method))
	if err != nil {
		writeStoreError(w, "Failed to settle agreement", err)
		return
	}
	writeJSON(w, http.StatusOK, toAgreementDTO(agreement, h.now()))
}

// =============================================================================
// MISC HANDLERS
// =============================================================================

// SearchLocations proxies the location-search collaborator.
func (h *Handler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	places, err := h.Geo.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Location search failed", err)
		return
	}
	if places == nil {
		places = []geo.Place{}
	}
	writeJSON(w, http.StatusOK, places)
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseRecurrence(req *RecurrenceRequest) (shift.Recurrence, error) {
	if req == nil || req.Kind == "" || req.Kind == string(shift.RecurNone) {
		return shift.Recurrence{Kind: shift.RecurNone}, nil
	}

	kind := shift.RecurrenceKind(req.Kind)
	switch kind {
	case shift.RecurDaily, shift.RecurWeekly, shift.RecurBiweekly,
		shift.RecurMonthly, shift.RecurWeekdays:
	default:
		return shift.Recurrence{}, fmt.Errorf("unknown kind %q", req.Kind)
	}

	until, err := time.Parse("2006-01-02", req.Until)
	if err != nil {
		return shift.Recurrence{}, fmt.Errorf("invalid until (use YYYY-MM-DD): %w", err)
	}

	rule := shift.Recurrence{Kind: kind, Until: until}
	if kind == shift.RecurWeekdays {
		rule.Weekdays = make(map[time.Weekday]bool)
		for _, name := range req.Weekdays {
			day, ok := weekdayByName[strings.ToLower(name)]
			if !ok {
				return shift.Recurrence{}, fmt.Errorf("unknown weekday %q", name)
			}
			rule.Weekdays[day] = true
		}
	}
	return rule, nil
}

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func applyShiftUpdate(s *shift.Shift, req UpdateShiftRequest) error {
	if req.Start != nil {
		t, err := time.Parse(time.RFC3339, *req.Start)
		if err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		s.Start = t
	}
	if req.DurationHours != nil {
		s.DurationHours = *req.DurationHours
	}
	if req.AllDay != nil {
		s.AllDay = *req.AllDay
	}
	if req.Location != nil {
		s.Location = *req.Location
	}
	if req.Latitude != nil {
		s.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		s.Longitude = req.Longitude
	}
	if req.Status != nil {
		status, err := shift.ParseStatus(*req.Status)
		if err != nil {
			return err
		}
		s.Status = status
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		s.Amount = amount
	}
	if req.IsPaid != nil {
		s.IsPaid = *req.IsPaid
	}
	if req.HospitalID != nil {
		if *req.HospitalID == "" {
			s.HospitalID = uuid.Nil
		} else {
			id, err := uuid.Parse(*req.HospitalID)
			if err != nil {
				return fmt.Errorf("invalid hospital_id: %w", err)
			}
			s.HospitalID = id
		}
	}
	if req.HospitalName != nil {
		s.HospitalName = *req.HospitalName
	}
	if req.SwapValue != nil {
		v, err := decimal.NewFromString(*req.SwapValue)
		if err != nil {
			return fmt.Errorf("invalid swap_value: %w", err)
		}
		s.SwapValue = v
	}
	if req.SwapPaymentDate != nil {
		if *req.SwapPaymentDate == "" {
			s.SwapPaymentDate = nil
		} else {
			t, err := time.Parse("2006-01-02", *req.SwapPaymentDate)
			if err != nil {
				return fmt.Errorf("invalid swap_payment_date: %w", err)
			}
			s.SwapPaymentDate = &t
		}
	}
	if req.SwapIsSettled != nil {
		s.SwapIsSettled = *req.SwapIsSettled
	}
	if req.IsWorkDone != nil {
		s.IsWorkDone = *req.IsWorkDone
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store errors to 404/500.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	if shift.IsNotFound(err) {
		writeError(w, http.StatusNotFound, message, err)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}
