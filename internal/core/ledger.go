package core

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// EventPublisher receives booking lifecycle notifications after a state
// change has committed.  Publishing is best-effort: implementations log
// their own failures and the returned error is ignored by the ledger so
// a broker outage never fails a booking.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, b model.Booking) error
	PublishBookingCancelled(ctx context.Context, b model.Booking) error
}

// BookingLedger is the transactional core: it reserves a specific seat
// for a specific show exactly once.  The at-most-one-booking-per
// (show, seat) invariant is enforced by the store's compare-and-swap
// create, so it holds under arbitrary interleaving of concurrent
// callers, not just sequential ones.
type BookingLedger struct {
	rooms    ShowroomStore
	shows    ShowStore
	bookings BookingStore
	ids      IDGenerator
	events   EventPublisher // optional, may be nil
	now      func() time.Time
}

// NewBookingLedger constructs a BookingLedger.  The publisher may be
// nil when no broker is wired; every other dependency must be non-nil.
func NewBookingLedger(rooms ShowroomStore, shows ShowStore, bookings BookingStore, ids IDGenerator, events EventPublisher) *BookingLedger {
	if rooms == nil || shows == nil || bookings == nil || ids == nil {
		panic("nil dependency passed to NewBookingLedger")
	}
	return &BookingLedger{rooms: rooms, shows: shows, bookings: bookings, ids: ids, events: events, now: time.Now}
}

// BookSeat reserves seatLabel for showID.  It fails with ErrNotFound
// when the show is unknown or the label is not part of the show's room
// layout, and with ErrConflict when a booking for (show, seat) already
// exists.  On success it captures the seat premium and the show's base
// price, computes the total via FinalPriceCents and persists the
// immutable booking.  Two concurrent calls for the same seat resolve
// to exactly one success and one ErrConflict, never both.
func (l *BookingLedger) BookSeat(ctx context.Context, showID, seatLabel string) (*model.Booking, error) {
	show, err := l.shows.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	seatType, err := l.seatTypeFor(ctx, show.ShowroomID, seatLabel)
	if err != nil {
		return nil, err
	}
	total, err := FinalPriceCents(show.BasePriceCents, seatType.PremiumPercent)
	if err != nil {
		return nil, err
	}
	booking := &model.Booking{
		ID:              l.ids.NewID(),
		ShowID:          show.ID,
		SeatLabel:       seatLabel,
		SeatType:        seatType.Name,
		PremiumPercent:  seatType.PremiumPercent,
		BasePriceCents:  show.BasePriceCents,
		TotalPriceCents: total,
		CreatedAt:       l.now().UTC(),
	}
	if err := l.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	if l.events != nil {
		_ = l.events.PublishBookingCreated(ctx, *booking)
	}
	return booking, nil
}

// CancelBooking removes a booking, making its seat available again for
// the show.  ErrNotFound when the booking does not exist.  The ticket
// refund, if any, is an external concern.
func (l *BookingLedger) CancelBooking(ctx context.Context, bookingID string) error {
	booking, err := l.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := l.bookings.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}
	if l.events != nil {
		_ = l.events.PublishBookingCancelled(ctx, *booking)
	}
	return nil
}

// seatTypeFor resolves the seat type for a label in the room's layout.
func (l *BookingLedger) seatTypeFor(ctx context.Context, showroomID, label string) (model.SeatType, error) {
	seats, err := l.rooms.GetLayout(ctx, showroomID)
	if err != nil {
		return model.SeatType{}, err
	}
	for _, seat := range seats {
		if seat.Label == label {
			return seat.Type, nil
		}
	}
	return model.SeatType{}, fmt.Errorf("%w: seat %q is not in the layout", ErrNotFound, label)
}
