// Package memstore provides an in-process implementation of the core's
// persistence boundary.  All state lives in maps guarded by a single
// mutex, which makes every check-then-insert a natural compare-and-swap:
// the uniqueness precondition is re-evaluated under the lock right
// before the write, so concurrent conflicting writers resolve to one
// winner.  It doubles as the movie catalog collaborator.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// seatKey identifies one seat of one show, the unit the booking ledger
// serializes on.
type seatKey struct {
	showID    string
	seatLabel string
}

// Store is the in-memory store.  The zero value is not usable; use New.
type Store struct {
	mu        sync.RWMutex
	movies    map[string]model.Movie
	rooms     map[string]model.Showroom
	layouts   map[string][]model.Seat
	shows     map[string]model.Show
	bookings  map[string]model.Booking
	seatIndex map[seatKey]string // (show, seat) -> booking id
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		movies:    make(map[string]model.Movie),
		rooms:     make(map[string]model.Showroom),
		layouts:   make(map[string][]model.Seat),
		shows:     make(map[string]model.Show),
		bookings:  make(map[string]model.Booking),
		seatIndex: make(map[seatKey]string),
	}
}

// Interface checks.
var (
	_ core.Catalog       = (*Store)(nil)
	_ core.ShowroomStore = (*Store)(nil)
	_ core.ShowStore     = (*Store)(nil)
	_ core.BookingStore  = (*Store)(nil)
)

// RegisterMovie adds a movie to the in-process catalog so shows can
// reference it.  core.ErrConflict when the id is already registered.
func (s *Store) RegisterMovie(_ context.Context, m model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.movies[m.ID]; exists {
		return fmt.Errorf("%w: movie %q already registered", core.ErrConflict, m.ID)
	}
	s.movies[m.ID] = m
	return nil
}

// MovieExists reports whether the movie is known to the catalog.
func (s *Store) MovieExists(_ context.Context, movieID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.movies[movieID]
	return ok, nil
}

// DeleteMovie removes a movie and cascades to its shows and their
// bookings, in dependency order: bookings, then shows, then the movie.
func (s *Store) DeleteMovie(_ context.Context, movieID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[movieID]; !ok {
		return fmt.Errorf("%w: movie %q", core.ErrNotFound, movieID)
	}
	for id, show := range s.shows {
		if show.MovieID == movieID {
			s.deleteShowLocked(id)
		}
	}
	delete(s.movies, movieID)
	return nil
}

func (s *Store) CreateShowroom(_ context.Context, room *model.Showroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[room.ID]; exists {
		return fmt.Errorf("%w: showroom %q already exists", core.ErrConflict, room.ID)
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) GetShowroom(_ context.Context, id string) (*model.Showroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: showroom %q", core.ErrNotFound, id)
	}
	return &room, nil
}

func (s *Store) CreateLayout(_ context.Context, showroomID string, seats []model.Seat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[showroomID]; !ok {
		return fmt.Errorf("%w: showroom %q", core.ErrNotFound, showroomID)
	}
	if _, exists := s.layouts[showroomID]; exists {
		return fmt.Errorf("%w: layout for showroom %q already defined", core.ErrValidation, showroomID)
	}
	copied := make([]model.Seat, len(seats))
	copy(copied, seats)
	s.layouts[showroomID] = copied
	return nil
}

func (s *Store) GetLayout(_ context.Context, showroomID string) ([]model.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seats, ok := s.layouts[showroomID]
	if !ok {
		return nil, fmt.Errorf("%w: no layout for showroom %q", core.ErrNotFound, showroomID)
	}
	copied := make([]model.Seat, len(seats))
	copy(copied, seats)
	return copied, nil
}

// DeleteShowroom cascades: bookings of the room's shows, then the
// shows, then the layout, then the room itself.
func (s *Store) DeleteShowroom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return fmt.Errorf("%w: showroom %q", core.ErrNotFound, id)
	}
	for showID, show := range s.shows {
		if show.ShowroomID == id {
			s.deleteShowLocked(showID)
		}
	}
	delete(s.layouts, id)
	delete(s.rooms, id)
	return nil
}

// CreateShow checks the room's timeline and inserts under one lock
// acquisition, so concurrent scheduling attempts for the same room
// never both pass the overlap test.
func (s *Store) CreateShow(_ context.Context, show *model.Show) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.shows[show.ID]; exists {
		return fmt.Errorf("%w: show %q already exists", core.ErrConflict, show.ID)
	}
	for _, existing := range s.shows {
		if existing.ShowroomID != show.ShowroomID {
			continue
		}
		if existing.Overlaps(show.StartsAt, show.EndsAt) {
			return fmt.Errorf("%w: showroom %q is occupied between %s and %s",
				core.ErrConflict, show.ShowroomID,
				existing.StartsAt.Format(time.RFC3339), existing.EndsAt.Format(time.RFC3339))
		}
	}
	s.shows[show.ID] = *show
	return nil
}

func (s *Store) GetShow(_ context.Context, id string) (*model.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	show, ok := s.shows[id]
	if !ok {
		return nil, fmt.Errorf("%w: show %q", core.ErrNotFound, id)
	}
	return &show, nil
}

func (s *Store) ListShowsEndingAfter(_ context.Context, asOf time.Time) ([]model.Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.Show
	for _, show := range s.shows {
		if show.EndsAt.After(asOf) {
			result = append(result, show)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartsAt.Before(result[j].StartsAt)
	})
	return result, nil
}

func (s *Store) DeleteShow(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shows[id]; !ok {
		return fmt.Errorf("%w: show %q", core.ErrNotFound, id)
	}
	s.deleteShowLocked(id)
	return nil
}

// deleteShowLocked removes a show and its bookings.  Caller holds mu.
func (s *Store) deleteShowLocked(showID string) {
	for bookingID, booking := range s.bookings {
		if booking.ShowID == showID {
			delete(s.seatIndex, seatKey{booking.ShowID, booking.SeatLabel})
			delete(s.bookings, bookingID)
		}
	}
	delete(s.shows, showID)
}

// CreateBooking re-checks the (show, seat) uniqueness precondition
// under the lock immediately before inserting.  Exactly one of any
// number of concurrent callers for the same seat wins.
func (s *Store) CreateBooking(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := seatKey{b.ShowID, b.SeatLabel}
	if _, taken := s.seatIndex[key]; taken {
		return fmt.Errorf("%w: seat %q already booked for show %q",
			core.ErrConflict, b.SeatLabel, b.ShowID)
	}
	s.bookings[b.ID] = *b
	s.seatIndex[key] = b.ID
	return nil
}

func (s *Store) GetBooking(_ context.Context, id string) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking %q", core.ErrNotFound, id)
	}
	return &booking, nil
}

func (s *Store) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return fmt.Errorf("%w: booking %q", core.ErrNotFound, id)
	}
	delete(s.seatIndex, seatKey{booking.ShowID, booking.SeatLabel})
	delete(s.bookings, id)
	return nil
}

func (s *Store) ListBookedSeats(_ context.Context, showID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var labels []string
	for _, booking := range s.bookings {
		if booking.ShowID == showID {
			labels = append(labels, booking.SeatLabel)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

func (s *Store) CountBookings(_ context.Context, showID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, booking := range s.bookings {
		if booking.ShowID == showID {
			count++
		}
	}
	return count, nil
}
