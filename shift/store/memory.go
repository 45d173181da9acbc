// Package store provides an in-memory shift.Store implementation
// (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/shift-engine/shift"
)

// Memory implements shift.Store with plain maps guarded by an RWMutex.
// Batch operations are atomic under the lock, matching the contract the
// SQLite store honors with transactions.
type Memory struct {
	mu         sync.RWMutex
	shifts     map[uuid.UUID]shift.Shift
	agreements map[uuid.UUID]shift.SwapAgreement
	hospitals  map[uuid.UUID]shift.Hospital
	notes      map[uuid.UUID]shift.FiscalNote
}

func NewMemory() *Memory {
	return &Memory{
		shifts:     make(map[uuid.UUID]shift.Shift),
		agreements: make(map[uuid.UUID]shift.SwapAgreement),
		hospitals:  make(map[uuid.UUID]shift.Hospital),
		notes:      make(map[uuid.UUID]shift.FiscalNote),
	}
}

var _ shift.Store = (*Memory)(nil)

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Memory) InsertShift(_ context.Context, s shift.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) InsertShifts(_ context.Context, shifts []shift.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range shifts {
		m.shifts[s.ID] = s
	}
	return nil
}

func (m *Memory) UpdateShift(_ context.Context, s shift.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[s.ID]; !ok {
		return shift.ErrNotFound
	}
	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) DeleteShift(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[id]; !ok {
		return shift.ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *Memory) DeleteShifts(_ context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Atomic: verify the whole set exists before removing anything.
	for _, id := range ids {
		if _, ok := m.shifts[id]; !ok {
			return shift.ErrNotFound
		}
	}
	for _, id := range ids {
		delete(m.shifts, id)
	}
	return nil
}

func (m *Memory) GetShift(_ context.Context, id uuid.UUID) (shift.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrNotFound
	}
	return s, nil
}

func (m *Memory) ListShifts(_ context.Context) ([]shift.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectShifts(func(shift.Shift) bool { return true }), nil
}

func (m *Memory) ListSeries(_ context.Context, recurrenceID string) ([]shift.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectShifts(func(s shift.Shift) bool {
		return recurrenceID != "" && s.RecurrenceID == recurrenceID
	}), nil
}

func (m *Memory) ListShiftsInRange(_ context.Context, from, to time.Time) ([]shift.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collectShifts(func(s shift.Shift) bool {
		return !s.Start.Before(from) && !s.Start.After(to)
	}), nil
}

func (m *Memory) collectShifts(keep func(shift.Shift) bool) []shift.Shift {
	var out []shift.Shift
	for _, s := range m.shifts {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// =============================================================================
// SWAP AGREEMENTS
// =============================================================================

func (m *Memory) InsertAgreement(_ context.Context, a shift.SwapAgreement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agreements[a.ID] = a
	return nil
}

func (m *Memory) UpdateAgreement(_ context.Context, a shift.SwapAgreement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agreements[a.ID]; !ok {
		return shift.ErrNotFound
	}
	m.agreements[a.ID] = a
	return nil
}

func (m *Memory) GetAgreement(_ context.Context, id uuid.UUID) (shift.SwapAgreement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agreements[id]
	if !ok {
		return shift.SwapAgreement{}, shift.ErrNotFound
	}
	return a, nil
}

func (m *Memory) ListAgreements(_ context.Context) ([]shift.SwapAgreement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]shift.SwapAgreement, 0, len(m.agreements))
	for _, a := range m.agreements {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// =============================================================================
// HOSPITALS
// =============================================================================

func (m *Memory) InsertHospital(_ context.Context, h shift.Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hospitals[h.ID] = h
	return nil
}

func (m *Memory) UpdateHospital(_ context.Context, h shift.Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hospitals[h.ID]; !ok {
		return shift.ErrNotFound
	}
	m.hospitals[h.ID] = h
	return nil
}

func (m *Memory) DeleteHospital(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hospitals[id]; !ok {
		return shift.ErrNotFound
	}
	delete(m.hospitals, id)
	return nil
}

func (m *Memory) GetHospital(_ context.Context, id uuid.UUID) (shift.Hospital, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hospitals[id]
	if !ok {
		return shift.Hospital{}, shift.ErrNotFound
	}
	return h, nil
}

func (m *Memory) ListHospitals(_ context.Context) ([]shift.Hospital, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]shift.Hospital, 0, len(m.hospitals))
	for _, h := range m.hospitals {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// =============================================================================
// FISCAL NOTES
// =============================================================================

func (m *Memory) InsertFiscalNote(_ context.Context, n shift.FiscalNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[n.ID] = n
	return nil
}

func (m *Memory) GetFiscalNote(_ context.Context, id uuid.UUID) (shift.FiscalNote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notes[id]
	if !ok {
		return shift.FiscalNote{}, shift.ErrNotFound
	}
	return n, nil
}

func (m *Memory) ListFiscalNotes(_ context.Context) ([]shift.FiscalNote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]shift.FiscalNote, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
