package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/avstrong/hostelscout/internal/logger"
)

// Slot keys in durable storage. The three slots are independent: corruption
// in one never blocks loading the others.
const (
	slotFavorites = "hostelscout_favorites"
	slotBookings  = "hostelscout_bookings"
	slotTheme     = "hostelscout_theme"
)

// KV is the durable slot transport. The file, redis and memory backends all
// satisfy it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Config struct {
	L  *logger.Logger
	KV KV
	// AmbientDark is the host environment's appearance signal, consulted
	// only when no theme preference is stored.
	AmbientDark bool
}

// Store owns the canonical in-memory copy of the three persisted slots:
// favorite ids, booking records and the theme preference. Every mutation
// writes its slot through before it is considered committed, so the durable
// copy is never more than one mutation behind.
type Store struct {
	mu          sync.Mutex
	l           *logger.Logger
	kv          KV
	ambientDark bool

	favorites []string        // insertion order preserved for the round-trip
	bookings  []BookingRecord // newest first
	theme     Theme
}

func New(conf Config) *Store {
	return &Store{
		l:           conf.L,
		kv:          conf.KV,
		ambientDark: conf.AmbientDark,
		favorites:   []string{},
		bookings:    []BookingRecord{},
		theme:       ThemeLight,
	}
}

// Load reads the three slots. Each slot is parsed on its own: a missing or
// malformed slot falls back to its zero value and the rest still load.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.kv.Get(ctx, slotFavorites); err != nil {
		return fmt.Errorf("read favorites slot: %w", err)
	} else if ok {
		var favorites []string
		if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
			s.l.LogErrorf("Malformed favorites slot, starting empty: %v", err.Error())
		} else if favorites != nil {
			s.favorites = favorites
		}
	}

	if raw, ok, err := s.kv.Get(ctx, slotBookings); err != nil {
		return fmt.Errorf("read bookings slot: %w", err)
	} else if ok {
		var bookings []BookingRecord
		if err := json.Unmarshal([]byte(raw), &bookings); err != nil {
			s.l.LogErrorf("Malformed bookings slot, starting empty: %v", err.Error())
		} else if bookings != nil {
			s.bookings = bookings
		}
	}

	raw, ok, err := s.kv.Get(ctx, slotTheme)
	if err != nil {
		return fmt.Errorf("read theme slot: %w", err)
	}

	switch {
	case ok && Theme(raw) == ThemeDark:
		s.theme = ThemeDark
	case ok && Theme(raw) == ThemeLight:
		s.theme = ThemeLight
	case s.ambientDark:
		s.theme = ThemeDark
	default:
		s.theme = ThemeLight
	}

	return nil
}

func (s *Store) saveFavorites(ctx context.Context, favorites []string) error {
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}

	if err := s.kv.Set(ctx, slotFavorites, string(data)); err != nil {
		return fmt.Errorf("save favorites slot: %w", err)
	}

	return nil
}

func (s *Store) saveBookings(ctx context.Context, bookings []BookingRecord) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("marshal bookings: %w", err)
	}

	if err := s.kv.Set(ctx, slotBookings, string(data)); err != nil {
		return fmt.Errorf("save bookings slot: %w", err)
	}

	return nil
}

// ToggleFavorite inserts an absent id and removes a present one. The slot is
// written before the in-memory set changes; on a write failure the set stays
// as it was.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]string, 0, len(s.favorites)+1)
	nowFavorite := true

	for _, fid := range s.favorites {
		if fid == id {
			nowFavorite = false

			continue
		}

		updated = append(updated, fid)
	}

	if nowFavorite {
		updated = append(updated, id)
	}

	if err := s.saveFavorites(ctx, updated); err != nil {
		return false, err
	}

	s.favorites = updated

	return nowFavorite, nil
}

// AddBooking prepends the record so history stays newest-first.
func (s *Store) AddBooking(ctx context.Context, record BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]BookingRecord, 0, len(s.bookings)+1)
	updated = append(updated, record)
	updated = append(updated, s.bookings...)

	if err := s.saveBookings(ctx, updated); err != nil {
		return err
	}

	s.bookings = updated

	return nil
}

// DeleteBooking removes exactly the record with the given id. Reports whether
// a record was removed.
func (s *Store) DeleteBooking(ctx context.Context, recordID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]BookingRecord, 0, len(s.bookings))
	removed := false

	for _, b := range s.bookings {
		if b.ID == recordID {
			removed = true

			continue
		}

		updated = append(updated, b)
	}

	if !removed {
		return false, nil
	}

	if err := s.saveBookings(ctx, updated); err != nil {
		return false, err
	}

	s.bookings = updated

	return true, nil
}

// CancelByHostel removes all records referencing the hostel id and returns
// how many went away.
func (s *Store) CancelByHostel(ctx context.Context, hostelID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]BookingRecord, 0, len(s.bookings))
	removed := 0

	for _, b := range s.bookings {
		if b.HostelID == hostelID {
			removed++

			continue
		}

		updated = append(updated, b)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.saveBookings(ctx, updated); err != nil {
		return 0, err
	}

	s.bookings = updated

	return removed, nil
}

func (s *Store) SetTheme(ctx context.Context, theme Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, slotTheme, string(theme)); err != nil {
		return fmt.Errorf("save theme slot: %w", err)
	}

	s.theme = theme

	return nil
}

func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme
}

func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.favorites))
	copy(out, s.favorites)

	return out
}

// FavoriteSet is the membership view the filter engine consumes.
func (s *Store) FavoriteSet() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]bool, len(s.favorites))
	for _, id := range s.favorites {
		set[id] = true
	}

	return set
}

func (s *Store) Bookings() []BookingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]BookingRecord, len(s.bookings))
	copy(out, s.bookings)

	return out
}

// BookedSet maps hostel ids with at least one booking record.
func (s *Store) BookedSet() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]bool, len(s.bookings))
	for _, b := range s.bookings {
		set[b.HostelID] = true
	}

	return set
}

func (s *Store) IsBooked(hostelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.HostelID == hostelID {
			return true
		}
	}

	return false
}
