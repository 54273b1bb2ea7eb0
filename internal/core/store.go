package core

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// The interfaces below form the persistence boundary of the core.  Two
// implementations exist: the in-memory store in store/memstore and the
// MySQL-backed repositories in internal/repository.  Methods that
// create records carry compare-and-swap semantics: the write is
// accepted only if its uniqueness precondition still holds at commit
// time, otherwise the error documented on the method is returned.
// Implementations map their own failures onto the core sentinels
// (ErrValidation, ErrNotFound, ErrConflict, ErrUnavailable).

// Catalog is the external movie catalog collaborator.  The core only
// ever asks whether a movie exists; it never mutates the catalog.
type Catalog interface {
	MovieExists(ctx context.Context, movieID string) (bool, error)
}

// ShowroomStore persists showrooms and their seat layouts.
type ShowroomStore interface {
	// CreateShowroom inserts a new room.  ErrConflict if the id is taken.
	CreateShowroom(ctx context.Context, room *model.Showroom) error

	// GetShowroom returns the room or ErrNotFound.
	GetShowroom(ctx context.Context, id string) (*model.Showroom, error)

	// CreateLayout stores the ordered seat list for a room exactly once.
	// ErrValidation if a layout already exists for the room; ErrNotFound
	// if the room is unknown.
	CreateLayout(ctx context.Context, showroomID string, seats []model.Seat) error

	// GetLayout returns the ordered seat list or ErrNotFound when the
	// room has no layout yet (or does not exist).
	GetLayout(ctx context.Context, showroomID string) ([]model.Seat, error)

	// DeleteShowroom removes the room together with its layout, shows
	// and bookings, in dependency order.  ErrNotFound if absent.
	DeleteShowroom(ctx context.Context, id string) error
}

// ShowStore persists scheduled shows.
type ShowStore interface {
	// CreateShow inserts the show only if its [StartsAt, EndsAt)
	// interval overlaps no existing show in the same room.  The overlap
	// check and the insert are a single atomic unit per showroom.
	// ErrConflict when the slot is taken.
	CreateShow(ctx context.Context, show *model.Show) error

	// GetShow returns the show or ErrNotFound.
	GetShow(ctx context.Context, id string) (*model.Show, error)

	// ListShowsEndingAfter returns all shows whose end time is strictly
	// after the given instant, ordered by start time ascending.
	ListShowsEndingAfter(ctx context.Context, asOf time.Time) ([]model.Show, error)

	// DeleteShow removes the show and all of its bookings.
	// ErrNotFound if absent.
	DeleteShow(ctx context.Context, id string) error
}

// BookingStore persists seat bookings.
type BookingStore interface {
	// CreateBooking inserts the booking only if no booking exists for
	// the same (ShowID, SeatLabel) pair.  The existence check and the
	// insert are a single atomic unit; under concurrent callers exactly
	// one wins and the rest receive ErrConflict.
	CreateBooking(ctx context.Context, b *model.Booking) error

	// GetBooking returns the booking or ErrNotFound.
	GetBooking(ctx context.Context, id string) (*model.Booking, error)

	// DeleteBooking removes the booking, freeing its seat for the show.
	// ErrNotFound if absent.
	DeleteBooking(ctx context.Context, id string) error

	// ListBookedSeats returns the seat labels booked for a show.
	ListBookedSeats(ctx context.Context, showID string) ([]string, error)

	// CountBookings returns the number of bookings for a show.
	CountBookings(ctx context.Context, showID string) (int, error)
}
