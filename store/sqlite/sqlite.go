/*
Package sqlite provides the SQLite-backed implementation of shift.Store.

PURPOSE:
  Persists shifts, swap agreements, hospitals and fiscal notes in an
  embedded SQLite database. The store is the single durable collection
  the pure engines (aggregation, alerts, recurrence) read from.

KEY TABLES:
  shifts:       the root entity, one row per occurrence
  agreements:   colleague-transfer records, weak reference to a shift
  hospitals:    payer profiles for payment prediction and alerting
  fiscal_notes: invoices; the covered shift id set is stored as JSON

ATOMIC BATCHES:
  InsertShifts and DeleteShifts run inside one SQL transaction, so a
  recurrence series appears or disappears as a whole. A read issued
  after either call returns observes the updated collection.

DECIMALS AND TIMES:
  Monetary amounts are stored as TEXT in decimal string form - never
  REAL, no float drift in money columns. Instants are RFC3339 TEXT.

STATUS DECODING:
  Rows written before the status vocabulary was closed may carry
  free-form values; reads go through shift.StatusOrScheduled, the
  compatibility fallback. New writes only store closed enum values.

CONCURRENCY:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't
  block each other; a sync.RWMutex serializes writers.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - shift/store.go: Interface definition
  - shift/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/shift"
)

// Store implements shift.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ shift.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		start_at TEXT NOT NULL,
		duration_hours INTEGER NOT NULL,
		all_day BOOLEAN NOT NULL DEFAULT FALSE,
		location TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		recurrence_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		is_commitment BOOLEAN NOT NULL DEFAULT FALSE,
		amount TEXT NOT NULL DEFAULT '0',
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		hospital_id TEXT NOT NULL DEFAULT '',
		hospital_name TEXT NOT NULL DEFAULT '',
		swap_value TEXT NOT NULL DEFAULT '0',
		swap_payment_date TEXT,
		swap_is_settled BOOLEAN NOT NULL DEFAULT FALSE,
		swap_agreement_id TEXT NOT NULL DEFAULT '',
		fiscal_note_ids TEXT NOT NULL DEFAULT '[]',
		is_work_done BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	-- Hot paths: month-window aggregation and series deletion.
	CREATE INDEX IF NOT EXISTS idx_shifts_start ON shifts(start_at);
	CREATE INDEX IF NOT EXISTS idx_shifts_recurrence
		ON shifts(recurrence_id) WHERE recurrence_id != '';

	CREATE TABLE IF NOT EXISTS agreements (
		id TEXT PRIMARY KEY,
		shift_id TEXT NOT NULL,
		direction TEXT NOT NULL,
		colleague_name TEXT NOT NULL,
		agreed_amount TEXT NOT NULL DEFAULT '0',
		original_shift_value TEXT NOT NULL DEFAULT '0',
		agreed_payment_date TEXT NOT NULL,
		is_settled BOOLEAN NOT NULL DEFAULT FALSE,
		effective_payment_date TEXT,
		method TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_agreements_shift ON agreements(shift_id);
	CREATE INDEX IF NOT EXISTS idx_agreements_settled ON agreements(is_settled);

	CREATE TABLE IF NOT EXISTS hospitals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		frequency TEXT NOT NULL,
		payment_day INTEGER NOT NULL DEFAULT 1,
		last_day_of_month BOOLEAN NOT NULL DEFAULT FALSE,
		custom_interval_days INTEGER NOT NULL DEFAULT 0,
		latency_tolerance_days INTEGER NOT NULL DEFAULT 0,
		average_shift_value TEXT NOT NULL DEFAULT '0',
		alerts_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		last_paid_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_hospitals_name ON hospitals(name);

	CREATE TABLE IF NOT EXISTS fiscal_notes (
		id TEXT PRIMARY KEY,
		note_number TEXT NOT NULL DEFAULT '',
		total_amount TEXT NOT NULL DEFAULT '0',
		hospital_name TEXT NOT NULL,
		shift_ids TEXT NOT NULL DEFAULT '[]',
		is_consolidated BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFTS
// =============================================================================

const shiftColumns = `id, start_at, duration_hours, all_day, location, latitude,
	longitude, recurrence_id, status, notes, is_commitment, amount, is_paid,
	hospital_id, hospital_name, swap_value, swap_payment_date, swap_is_settled,
	swap_agreement_id, fiscal_note_ids, is_work_done`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertShift persists a single shift.
func (s *Store) InsertShift(ctx context.Context, sh shift.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertShift(ctx, s.db, sh)
}

// InsertShifts persists a batch of shifts atomically. Either every shift
// in the batch is stored or none is.
func (s *Store) InsertShifts(ctx context.Context, shifts []shift.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, sh := range shifts {
		if err := insertShift(ctx, tx, sh); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertShift(ctx context.Context, db execer, sh shift.Shift) error {
	noteIDs, _ := json.Marshal(sh.FiscalNoteIDs)

	query := `
		INSERT INTO shifts (` + shiftColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		sh.ID.String(),
		sh.Start.UTC().Format(time.RFC3339),
		sh.DurationHours,
		sh.AllDay,
		sh.Location,
		sh.Latitude,
		sh.Longitude,
		sh.RecurrenceID,
		string(sh.Status),
		sh.Notes,
		sh.IsCommitment,
		sh.Amount.String(),
		sh.IsPaid,
		uuidString(sh.HospitalID),
		sh.HospitalName,
		sh.SwapValue.String(),
		nullTime(sh.SwapPaymentDate),
		sh.SwapIsSettled,
		uuidString(sh.SwapAgreementID),
		string(noteIDs),
		sh.IsWorkDone,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// UpdateShift replaces the stored row for the shift's ID.
func (s *Store) UpdateShift(ctx context.Context, sh shift.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	noteIDs, _ := json.Marshal(sh.FiscalNoteIDs)

	query := `
		UPDATE shifts SET
			start_at = ?, duration_hours = ?, all_day = ?, location = ?,
			latitude = ?, longitude = ?, recurrence_id = ?, status = ?,
			notes = ?, is_commitment = ?, amount = ?, is_paid = ?,
			hospital_id = ?, hospital_name = ?, swap_value = ?,
			swap_payment_date = ?, swap_is_settled = ?, swap_agreement_id = ?,
			fiscal_note_ids = ?, is_work_done = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		sh.Start.UTC().Format(time.RFC3339),
		sh.DurationHours,
		sh.AllDay,
		sh.Location,
		sh.Latitude,
		sh.Longitude,
		sh.RecurrenceID,
		string(sh.Status),
		sh.Notes,
		sh.IsCommitment,
		sh.Amount.String(),
		sh.IsPaid,
		uuidString(sh.HospitalID),
		sh.HospitalName,
		sh.SwapValue.String(),
		nullTime(sh.SwapPaymentDate),
		sh.SwapIsSettled,
		uuidString(sh.SwapAgreementID),
		string(noteIDs),
		sh.IsWorkDone,
		sh.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	return requireRow(res)
}

// DeleteShift removes one shift.
func (s *Store) DeleteShift(ctx context.Context, id uuid.UUID) error {
	return s.DeleteShifts(ctx, []uuid.UUID{id})
}

// DeleteShifts removes a batch of shifts atomically. If any ID is missing
// the whole batch is rolled back and ErrNotFound is returned.
func (s *Store) DeleteShifts(ctx context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		res, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id.String())
		if err != nil {
			return fmt.Errorf("failed to delete shift %s: %w", id, err)
		}
		if err := requireRow(res); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetShift returns the shift with the given ID, or ErrNotFound.
func (s *Store) GetShift(ctx context.Context, id uuid.UUID) (shift.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE id = ?`, id.String())
	return scanShift(row)
}

// ListShifts returns every stored shift ordered by start time ascending.
func (s *Store) ListShifts(ctx context.Context) ([]shift.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryShifts(ctx,
		`SELECT `+shiftColumns+` FROM shifts ORDER BY start_at ASC, id ASC`)
}

// ListSeries returns the occurrences sharing a recurrence ID, start ascending.
func (s *Store) ListSeries(ctx context.Context, recurrenceID string) ([]shift.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if recurrenceID == "" {
		return nil, nil
	}
	return s.queryShifts(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE recurrence_id = ?
		 ORDER BY start_at ASC, id ASC`,
		recurrenceID)
}

// ListShiftsInRange returns shifts starting within [from, to], start ascending.
func (s *Store) ListShiftsInRange(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryShifts(ctx,
		`SELECT `+shiftColumns+` FROM shifts
		 WHERE start_at >= ? AND start_at <= ?
		 ORDER BY start_at ASC, id ASC`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]shift.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var out []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (shift.Shift, error) {
	var sh shift.Shift
	var id, startAt, status, hospitalID, agreementID string
	var amount, swapValue, noteIDs string
	var swapDate sql.NullString

	err := row.Scan(
		&id, &startAt, &sh.DurationHours, &sh.AllDay, &sh.Location,
		&sh.Latitude, &sh.Longitude, &sh.RecurrenceID, &status, &sh.Notes,
		&sh.IsCommitment, &amount, &sh.IsPaid, &hospitalID, &sh.HospitalName,
		&swapValue, &swapDate, &sh.SwapIsSettled, &agreementID, &noteIDs,
		&sh.IsWorkDone,
	)
	if err == sql.ErrNoRows {
		return shift.Shift{}, shift.ErrNotFound
	}
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to scan shift: %w", err)
	}

	sh.ID, err = uuid.Parse(id)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("corrupt shift id %q: %w", id, err)
	}
	sh.Start, err = time.Parse(time.RFC3339, startAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("corrupt shift start %q: %w", startAt, err)
	}
	// Rows predating the closed status vocabulary fall back to scheduled.
	sh.Status = shift.StatusOrScheduled(status)
	sh.Amount = parseDecimal(amount)
	sh.SwapValue = parseDecimal(swapValue)
	sh.HospitalID = parseUUID(hospitalID)
	sh.SwapAgreementID = parseUUID(agreementID)
	sh.SwapPaymentDate = parseNullTime(swapDate)
	if err := json.Unmarshal([]byte(noteIDs), &sh.FiscalNoteIDs); err != nil {
		sh.FiscalNoteIDs = nil
	}
	return sh, nil
}

// =============================================================================
// SWAP AGREEMENTS
// =============================================================================

const agreementColumns = `id, shift_id, direction, colleague_name, agreed_amount,
	original_shift_value, agreed_payment_date, is_settled,
	effective_payment_date, method, created_at`

// InsertAgreement persists a swap agreement.
func (s *Store) InsertAgreement(ctx context.Context, a shift.SwapAgreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO agreements (` + agreementColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID.String(),
		a.ShiftID.String(),
		string(a.Direction),
		a.ColleagueName,
		a.AgreedAmount.String(),
		a.OriginalShiftValue.String(),
		a.AgreedPaymentDate.UTC().Format(time.RFC3339),
		a.IsSettled,
		nullTime(a.EffectivePaymentDate),
		string(a.Method),
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert agreement: %w", err)
	}
	return nil
}

// UpdateAgreement replaces the stored row for the agreement's ID.
func (s *Store) UpdateAgreement(ctx context.Context, a shift.SwapAgreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE agreements SET
			direction = ?, colleague_name = ?, agreed_amount = ?,
			original_shift_value = ?, agreed_payment_date = ?, is_settled = ?,
			effective_payment_date = ?, method = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		string(a.Direction),
		a.ColleagueName,
		a.AgreedAmount.String(),
		a.OriginalShiftValue.String(),
		a.AgreedPaymentDate.UTC().Format(time.RFC3339),
		a.IsSettled,
		nullTime(a.EffectivePaymentDate),
		string(a.Method),
		a.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update agreement: %w", err)
	}
	return requireRow(res)
}

// GetAgreement returns the agreement with the given ID, or ErrNotFound.
func (s *Store) GetAgreement(ctx context.Context, id uuid.UUID) (shift.SwapAgreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+agreementColumns+` FROM agreements WHERE id = ?`, id.String())
	return scanAgreement(row)
}

// ListAgreements returns all agreements, most recently created first.
func (s *Store) ListAgreements(ctx context.Context) ([]shift.SwapAgreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+agreementColumns+` FROM agreements ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query agreements: %w", err)
	}
	defer rows.Close()

	var out []shift.SwapAgreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAgreement(row rowScanner) (shift.SwapAgreement, error) {
	var a shift.SwapAgreement
	var id, shiftID, direction, agreed, original, method string
	var agreedDate, createdAt string
	var effectiveDate sql.NullString

	err := row.Scan(&id, &shiftID, &direction, &a.ColleagueName, &agreed,
		&original, &agreedDate, &a.IsSettled, &effectiveDate, &method, &createdAt)
	if err == sql.ErrNoRows {
		return shift.SwapAgreement{}, shift.ErrNotFound
	}
	if err != nil {
		return shift.SwapAgreement{}, fmt.Errorf("failed to scan agreement: %w", err)
	}

	a.ID = parseUUID(id)
	a.ShiftID = parseUUID(shiftID)
	a.Direction = shift.SwapDirection(direction)
	a.AgreedAmount = parseDecimal(agreed)
	a.OriginalShiftValue = parseDecimal(original)
	a.Method = shift.PaymentMethod(method)
	a.AgreedPaymentDate = parseTime(agreedDate)
	a.CreatedAt = parseTime(createdAt)
	a.EffectivePaymentDate = parseNullTime(effectiveDate)
	return a, nil
}

// =============================================================================
// HOSPITALS
// =============================================================================

const hospitalColumns = `id, name, frequency, payment_day, last_day_of_month,
	custom_interval_days, latency_tolerance_days, average_shift_value,
	alerts_enabled, last_paid_at, created_at`

// InsertHospital persists a hospital profile.
func (s *Store) InsertHospital(ctx context.Context, h shift.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO hospitals (` + hospitalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		h.ID.String(),
		h.Name,
		string(h.Frequency),
		h.PaymentDay,
		h.LastDayOfMonth,
		h.CustomIntervalDays,
		h.LatencyToleranceDays,
		h.AverageShiftValue.String(),
		h.AlertsEnabled,
		nullTime(h.LastPaidAt),
		h.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert hospital: %w", err)
	}
	return nil
}

// UpdateHospital replaces the stored row for the hospital's ID.
func (s *Store) UpdateHospital(ctx context.Context, h shift.Hospital) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE hospitals SET
			name = ?, frequency = ?, payment_day = ?, last_day_of_month = ?,
			custom_interval_days = ?, latency_tolerance_days = ?,
			average_shift_value = ?, alerts_enabled = ?, last_paid_at = ?
		WHERE id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		h.Name,
		string(h.Frequency),
		h.PaymentDay,
		h.LastDayOfMonth,
		h.CustomIntervalDays,
		h.LatencyToleranceDays,
		h.AverageShiftValue.String(),
		h.AlertsEnabled,
		nullTime(h.LastPaidAt),
		h.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}
	return requireRow(res)
}

// DeleteHospital removes a hospital profile. Shifts that reference it keep
// their denormalized hospital name; there is no cascade.
func (s *Store) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}
	return requireRow(res)
}

// GetHospital returns the hospital with the given ID, or ErrNotFound.
func (s *Store) GetHospital(ctx context.Context, id uuid.UUID) (shift.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = ?`, id.String())
	return scanHospital(row)
}

// ListHospitals returns all hospitals ordered by name.
func (s *Store) ListHospitals(ctx context.Context) ([]shift.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals: %w", err)
	}
	defer rows.Close()

	var out []shift.Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHospital(row rowScanner) (shift.Hospital, error) {
	var h shift.Hospital
	var id, freq, avg, createdAt string
	var lastPaid sql.NullString

	err := row.Scan(&id, &h.Name, &freq, &h.PaymentDay, &h.LastDayOfMonth,
		&h.CustomIntervalDays, &h.LatencyToleranceDays, &avg,
		&h.AlertsEnabled, &lastPaid, &createdAt)
	if err == sql.ErrNoRows {
		return shift.Hospital{}, shift.ErrNotFound
	}
	if err != nil {
		return shift.Hospital{}, fmt.Errorf("failed to scan hospital: %w", err)
	}

	h.ID = parseUUID(id)
	h.Frequency = shift.PaymentFrequency(freq)
	h.AverageShiftValue = parseDecimal(avg)
	h.CreatedAt = parseTime(createdAt)
	h.LastPaidAt = parseNullTime(lastPaid)
	return h, nil
}

// =============================================================================
// FISCAL NOTES
// =============================================================================

const noteColumns = `id, note_number, total_amount, hospital_name, shift_ids,
	is_consolidated, created_at`

// InsertFiscalNote persists a fiscal note.
func (s *Store) InsertFiscalNote(ctx context.Context, n shift.FiscalNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shiftIDs, _ := json.Marshal(n.ShiftIDs)

	query := `
		INSERT INTO fiscal_notes (` + noteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		n.ID.String(),
		n.NoteNumber,
		n.TotalAmount.String(),
		n.HospitalName,
		string(shiftIDs),
		n.IsConsolidated,
		n.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fiscal note: %w", err)
	}
	return nil
}

// GetFiscalNote returns the note with the given ID, or ErrNotFound.
func (s *Store) GetFiscalNote(ctx context.Context, id uuid.UUID) (shift.FiscalNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM fiscal_notes WHERE id = ?`, id.String())
	return scanFiscalNote(row)
}

// ListFiscalNotes returns all notes, most recently created first.
func (s *Store) ListFiscalNotes(ctx context.Context) ([]shift.FiscalNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM fiscal_notes ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal notes: %w", err)
	}
	defer rows.Close()

	var out []shift.FiscalNote
	for rows.Next() {
		n, err := scanFiscalNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanFiscalNote(row rowScanner) (shift.FiscalNote, error) {
	var n shift.FiscalNote
	var id, total, shiftIDs, createdAt string

	err := row.Scan(&id, &n.NoteNumber, &total, &n.HospitalName, &shiftIDs,
		&n.IsConsolidated, &createdAt)
	if err == sql.ErrNoRows {
		return shift.FiscalNote{}, shift.ErrNotFound
	}
	if err != nil {
		return shift.FiscalNote{}, fmt.Errorf("failed to scan fiscal note: %w", err)
	}

	n.ID = parseUUID(id)
	n.TotalAmount = parseDecimal(total)
	n.CreatedAt = parseTime(createdAt)
	if err := json.Unmarshal([]byte(shiftIDs), &n.ShiftIDs); err != nil {
		n.ShiftIDs = nil
	}
	return n, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return shift.ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// uuidString stores uuid.Nil as the empty string so optional references
// stay readable in the database.
func uuidString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func parseUUID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
