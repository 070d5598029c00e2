package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/logger"
	"github.com/avstrong/hostelscout/internal/store"
)

type refGenerator interface {
	GetRef(ctx context.Context) (string, error)
}

type bookingStore interface {
	AddBooking(ctx context.Context, record store.BookingRecord) error
	DeleteBooking(ctx context.Context, recordID string) (bool, error)
	CancelByHostel(ctx context.Context, hostelID string) (int, error)
	IsBooked(hostelID string) bool
}

type Config struct {
	L       *logger.Logger
	Storage bookingStore
	RefGen  refGenerator
	Catalog []hostel.Hostel
	// Delay is the simulated confirmation latency.
	Delay time.Duration
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Manager drives the single in-flight booking interaction:
// Idle -> Selected -> Confirming -> Confirmed -> Idle.
type Manager struct {
	mu      sync.Mutex
	l       *logger.Logger
	storage bookingStore
	refGen  refGenerator
	catalog []hostel.Hostel
	delay   time.Duration
	now     func() time.Time

	state    State
	selected hostel.Hostel // zero unless state != StateIdle
	ref      string        // set only in StateConfirmed
}

func New(conf Config) *Manager {
	now := conf.Now
	if now == nil {
		now = time.Now
	}

	//nolint:exhaustruct
	return &Manager{
		l:       conf.L,
		storage: conf.Storage,
		refGen:  conf.RefGen,
		catalog: conf.Catalog,
		delay:   conf.Delay,
		now:     now,
		state:   StateIdle,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Selected returns the hostel the workflow is on, if any.
func (m *Manager) Selected() (hostel.Hostel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateIdle {
		return hostel.Hostel{}, false
	}

	return m.selected, true
}

// Ref returns the issued reference while the workflow is in StateConfirmed.
func (m *Manager) Ref() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConfirmed {
		return ""
	}

	return m.ref
}

// Select opens the detail view for a hostel. Legal from any state except
// Confirming; reselecting replaces the previous selection and drops a stale
// reference.
func (m *Manager) Select(id string) (hostel.Hostel, error) {
	h, ok := hostel.ByID(m.catalog, id)
	if !ok {
		return hostel.Hostel{}, fmt.Errorf("select %q: %w", id, ErrUnknownHostel)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateConfirming {
		return hostel.Hostel{}, ErrConfirmInFlight
	}

	m.state = StateSelected
	m.selected = h
	m.ref = ""

	return h, nil
}

// Dismiss closes the detail or success view and returns to Idle. Rejected
// while a confirmation is in flight: the pending write must resolve first.
func (m *Manager) Dismiss() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateConfirming {
		return ErrConfirmInFlight
	}

	m.state = StateIdle
	m.selected = hostel.Hostel{}
	m.ref = ""

	return nil
}

// Confirm runs the simulated confirmation for the selected hostel. It holds
// the workflow in StateConfirming for the configured delay, then creates
// exactly one booking record, persists it, and moves to StateConfirmed.
//
// Cancelling ctx during the delay aborts the confirmation: no record is
// written and the workflow returns to StateSelected.
func (m *Manager) Confirm(ctx context.Context) (store.BookingRecord, error) {
	m.mu.Lock()

	switch m.state {
	case StateIdle:
		m.mu.Unlock()

		return store.BookingRecord{}, ErrNoSelection
	case StateConfirming:
		m.mu.Unlock()

		return store.BookingRecord{}, ErrConfirmInFlight
	case StateConfirmed:
		m.mu.Unlock()

		return store.BookingRecord{}, fmt.Errorf("reference already issued: %w", ErrAlreadyBooked)
	case StateSelected:
	}

	if m.storage.IsBooked(m.selected.ID) {
		m.mu.Unlock()

		return store.BookingRecord{}, ErrAlreadyBooked
	}

	h := m.selected
	m.state = StateConfirming
	m.mu.Unlock()

	if err := m.wait(ctx); err != nil {
		m.rollbackToSelected()

		return store.BookingRecord{}, fmt.Errorf("confirmation aborted: %w", err)
	}

	record, err := m.issue(ctx, h)
	if err != nil {
		m.rollbackToSelected()

		return store.BookingRecord{}, err
	}

	m.mu.Lock()
	m.state = StateConfirmed
	m.ref = record.Ref
	m.mu.Unlock()

	m.l.LogInfo("Booking confirmed for hostel %v with reference %v", h.ID, record.Ref)

	return record, nil
}

func (m *Manager) wait(ctx context.Context) error {
	timer := time.NewTimer(m.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *Manager) issue(ctx context.Context, h hostel.Hostel) (store.BookingRecord, error) {
	ref, err := m.refGen.GetRef(ctx)
	if err != nil {
		return store.BookingRecord{}, fmt.Errorf("%w: %w", ErrRefGen, err)
	}

	record := store.BookingRecord{
		ID:         uuid.NewString(),
		HostelID:   h.ID,
		HostelName: h.Name,
		Date:       m.now().Format("1/2/2006, 3:04:05 PM"),
		Ref:        ref,
		Price:      h.Price,
	}

	if err := m.storage.AddBooking(ctx, record); err != nil {
		return store.BookingRecord{}, fmt.Errorf("persist booking record: %w", err)
	}

	return record, nil
}

func (m *Manager) rollbackToSelected() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateSelected
	m.ref = ""
}

// CancelExisting removes all booking records for the hostel id. The caller
// must pass confirmed=true, asserting the user approved the destructive
// action. The selection, if any, stays open so the detail view can switch
// back to offering a fresh booking.
func (m *Manager) CancelExisting(ctx context.Context, hostelID string, confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrConfirmationRequired
	}

	m.mu.Lock()

	if m.state == StateConfirming {
		m.mu.Unlock()

		return 0, ErrConfirmInFlight
	}

	if m.state == StateConfirmed && m.selected.ID == hostelID {
		// The issued reference points at a record being cancelled.
		m.state = StateSelected
		m.ref = ""
	}

	m.mu.Unlock()

	removed, err := m.storage.CancelByHostel(ctx, hostelID)
	if err != nil {
		return 0, fmt.Errorf("cancel bookings for hostel %v: %w", hostelID, err)
	}

	m.l.LogInfo("Cancelled %v booking record(s) for hostel %v", removed, hostelID)

	return removed, nil
}

// DeleteRecord removes exactly one record from history, again behind the
// caller's explicit confirmation.
func (m *Manager) DeleteRecord(ctx context.Context, recordID string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, ErrConfirmationRequired
	}

	removed, err := m.storage.DeleteBooking(ctx, recordID)
	if err != nil {
		return false, fmt.Errorf("delete booking record %v: %w", recordID, err)
	}

	return removed, nil
}
