package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/idgen/refcode"
	"github.com/avstrong/hostelscout/internal/logger"
	"github.com/avstrong/hostelscout/internal/storage/memory"
	"github.com/avstrong/hostelscout/internal/store"
)

func newManager(t *testing.T, delay time.Duration) (*Manager, *store.Store) {
	t.Helper()

	l := logger.New()

	st := store.New(store.Config{L: l, KV: memory.New(), AmbientDark: false})
	require.NoError(t, st.Load(context.Background()))

	m := New(Config{
		L:       l,
		Storage: st,
		RefGen:  refcode.New(),
		Catalog: hostel.Catalog(),
		Delay:   delay,
		Now: func() time.Time {
			return time.Date(2025, 9, 14, 15, 4, 5, 0, time.UTC)
		},
	})

	return m, st
}

func TestConfirmFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, st := newManager(t, time.Millisecond)

	require.Equal(t, StateIdle, m.State())

	h, err := m.Select("1")
	require.NoError(t, err)
	require.Equal(t, "Academic Heights", h.Name)
	require.Equal(t, StateSelected, m.State())

	record, err := m.Confirm(ctx)
	require.NoError(t, err)
	require.Equal(t, StateConfirmed, m.State())
	require.Equal(t, "1", record.HostelID)
	require.Equal(t, "Academic Heights", record.HostelName)
	require.Equal(t, 350.0, record.Price)
	require.Equal(t, "9/14/2025, 3:04:05 PM", record.Date)
	require.Regexp(t, `^HS-[A-Z0-9]{7}$`, record.Ref)
	require.NotEmpty(t, record.ID)
	require.Equal(t, record.Ref, m.Ref())

	bookings := st.Bookings()
	require.Len(t, bookings, 1, "exactly one record created")
	require.Equal(t, record, bookings[0])

	require.NoError(t, m.Dismiss())
	require.Equal(t, StateIdle, m.State())
	require.Empty(t, m.Ref())

	_, selected := m.Selected()
	require.False(t, selected)
}

func TestConfirmRequiresSelection(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, time.Millisecond)

	_, err := m.Confirm(context.Background())
	require.ErrorIs(t, err, ErrNoSelection)
}

func TestSelectUnknownHostel(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, time.Millisecond)

	_, err := m.Select("999")
	require.ErrorIs(t, err, ErrUnknownHostel)
	require.Equal(t, StateIdle, m.State())
}

func TestConfirmRejectedWhenAlreadyBooked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, st := newManager(t, time.Millisecond)

	_, err := m.Select("2")
	require.NoError(t, err)
	_, err = m.Confirm(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Dismiss())

	_, err = m.Select("2")
	require.NoError(t, err)

	_, err = m.Confirm(ctx)
	require.ErrorIs(t, err, ErrAlreadyBooked)
	require.Len(t, st.Bookings(), 1, "no second record for the same hostel")
}

func TestDismissRejectedWhileConfirming(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, 200*time.Millisecond)

	_, err := m.Select("3")
	require.NoError(t, err)

	done := make(chan error, 1)

	go func() {
		_, err := m.Confirm(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return m.State() == StateConfirming
	}, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, m.Dismiss(), ErrConfirmInFlight)

	_, err = m.Select("4")
	require.ErrorIs(t, err, ErrConfirmInFlight)

	require.NoError(t, <-done)
	require.Equal(t, StateConfirmed, m.State())
}

func TestConfirmAbortedByContext(t *testing.T) {
	t.Parallel()

	m, st := newManager(t, 5*time.Second)

	_, err := m.Select("5")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		_, err := m.Confirm(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return m.State() == StateConfirming
	}, time.Second, 5*time.Millisecond)

	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	require.Equal(t, StateSelected, m.State(), "aborted confirmation returns to the detail view")
	require.Empty(t, st.Bookings(), "no record is written for an aborted confirmation")
}

func TestCancelExisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, st := newManager(t, time.Millisecond)

	_, err := m.Select("6")
	require.NoError(t, err)
	_, err = m.Confirm(ctx)
	require.NoError(t, err)

	_, err = m.CancelExisting(ctx, "6", false)
	require.ErrorIs(t, err, ErrConfirmationRequired)
	require.Len(t, st.Bookings(), 1, "unconfirmed cancellation mutates nothing")

	removed, err := m.CancelExisting(ctx, "6", true)
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Empty(t, st.Bookings())
	require.Equal(t, StateSelected, m.State(), "detail view stays open offering a fresh booking")
	require.Empty(t, m.Ref())
}

func TestDeleteRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, st := newManager(t, time.Millisecond)

	_, err := m.Select("1")
	require.NoError(t, err)
	record, err := m.Confirm(ctx)
	require.NoError(t, err)

	_, err = m.DeleteRecord(ctx, record.ID, false)
	require.ErrorIs(t, err, ErrConfirmationRequired)

	removed, err := m.DeleteRecord(ctx, record.ID, true)
	require.NoError(t, err)
	require.True(t, removed)
	require.Empty(t, st.Bookings())

	removed, err = m.DeleteRecord(ctx, record.ID, true)
	require.NoError(t, err)
	require.False(t, removed, "ids are never reused")
}
