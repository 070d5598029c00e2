package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avstrong/hostelscout/internal/logger"
	"github.com/avstrong/hostelscout/internal/storage/memory"
)

var errKVDown = errors.New("kv down")

// brokenKV reads fine but refuses every write.
type brokenKV struct {
	*memory.DB
}

func (b brokenKV) Set(_ context.Context, _, _ string) error {
	return errKVDown
}

func newStore(t *testing.T, kv KV, ambientDark bool) *Store {
	t.Helper()

	s := New(Config{L: logger.New(), KV: kv, AmbientDark: ambientDark})
	require.NoError(t, s.Load(context.Background()))

	return s
}

func slotJSON[T any](t *testing.T, kv KV, key string) T {
	t.Helper()

	raw, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "slot %q should exist", key)

	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out))

	return out
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := memory.New()
	s := newStore(t, kv, false)

	nowFavorite, err := s.ToggleFavorite(ctx, "2")
	require.NoError(t, err)
	require.True(t, nowFavorite)
	require.Equal(t, []string{"2"}, s.Favorites())
	require.Equal(t, []string{"2"}, slotJSON[[]string](t, kv, slotFavorites), "slot reflects the set after every toggle")

	_, err = s.ToggleFavorite(ctx, "5")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "5"}, s.Favorites(), "insertion order preserved")

	nowFavorite, err = s.ToggleFavorite(ctx, "2")
	require.NoError(t, err)
	require.False(t, nowFavorite)
	require.Equal(t, []string{"5"}, s.Favorites(), "second toggle removes the id")
	require.Equal(t, []string{"5"}, slotJSON[[]string](t, kv, slotFavorites))
}

func TestToggleFavoriteWriteFailureLeavesSetUntouched(t *testing.T) {
	t.Parallel()

	s := newStore(t, brokenKV{memory.New()}, false)

	_, err := s.ToggleFavorite(context.Background(), "1")
	require.ErrorIs(t, err, errKVDown)
	require.Empty(t, s.Favorites())
}

func TestBookingMutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := memory.New()
	s := newStore(t, kv, false)

	first := BookingRecord{ID: "r1", HostelID: "1", HostelName: "Academic Heights", Date: "d1", Ref: "HS-AAAAAAA", Price: 350}
	second := BookingRecord{ID: "r2", HostelID: "1", HostelName: "Academic Heights", Date: "d2", Ref: "HS-BBBBBBB", Price: 350}
	other := BookingRecord{ID: "r3", HostelID: "4", HostelName: "Luxe Student Suites", Date: "d3", Ref: "HS-CCCCCCC", Price: 500}

	require.NoError(t, s.AddBooking(ctx, first))
	require.NoError(t, s.AddBooking(ctx, second))
	require.NoError(t, s.AddBooking(ctx, other))

	got := s.Bookings()
	require.Equal(t, []string{"r3", "r2", "r1"}, []string{got[0].ID, got[1].ID, got[2].ID}, "newest first")
	require.Len(t, slotJSON[[]BookingRecord](t, kv, slotBookings), 3)
	require.True(t, s.IsBooked("1"))
	require.Equal(t, map[string]bool{"1": true, "4": true}, s.BookedSet())

	removed, err := s.DeleteBooking(ctx, "r2")
	require.NoError(t, err)
	require.True(t, removed)
	require.Len(t, s.Bookings(), 2, "delete by record id removes exactly one")
	require.True(t, s.IsBooked("1"), "another record for the hostel remains")

	removed, err = s.DeleteBooking(ctx, "no-such-record")
	require.NoError(t, err)
	require.False(t, removed)

	count, err := s.CancelByHostel(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.False(t, s.IsBooked("1"))
	require.Len(t, slotJSON[[]BookingRecord](t, kv, slotBookings), 1, "reduced collection persisted")
}

func TestLoadIsolatesCorruptSlots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, slotFavorites, "{not json"))
	require.NoError(t, kv.Set(ctx, slotBookings, `[{"id":"r1","hostelId":"3","hostelName":"The Social Hub","date":"d","ref":"HS-XXXXXXX","price":280}]`))

	s := newStore(t, kv, false)

	require.Empty(t, s.Favorites(), "corrupt slot degrades to its zero value")
	require.Len(t, s.Bookings(), 1, "the other slots still load")
}

func TestThemeResolution(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := memory.New()

	s := newStore(t, kv, true)
	require.Equal(t, ThemeDark, s.Theme(), "no stored preference falls back to the ambient signal")

	require.NoError(t, s.SetTheme(ctx, ThemeLight))

	// The explicit choice is honored on the next load even though the
	// ambient signal still says dark.
	s2 := newStore(t, kv, true)
	require.Equal(t, ThemeLight, s2.Theme())
}

func TestLoadEmptyStorage(t *testing.T) {
	t.Parallel()

	s := newStore(t, memory.New(), false)

	require.Empty(t, s.Favorites())
	require.Empty(t, s.Bookings())
	require.Equal(t, ThemeLight, s.Theme())
}
