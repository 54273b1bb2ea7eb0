package core

import (
	"context"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// AvailabilityView answers "which shows exist, which are not sold out,
// which seats remain".  It is a pure read-side projection over the
// scheduler's and ledger's committed state: it performs no writes,
// takes no locks, and recomputes its answers from the store on every
// call, so results are always consistent with the latest committed
// state at the instant of the query.
type AvailabilityView struct {
	rooms    ShowroomStore
	shows    ShowStore
	bookings BookingStore
}

// NewAvailabilityView constructs an AvailabilityView.  All dependencies
// must be non-nil.
func NewAvailabilityView(rooms ShowroomStore, shows ShowStore, bookings BookingStore) *AvailabilityView {
	if rooms == nil || shows == nil || bookings == nil {
		panic("nil dependency passed to NewAvailabilityView")
	}
	return &AvailabilityView{rooms: rooms, shows: shows, bookings: bookings}
}

// ListOpenShows returns the shows whose end time is after asOf and that
// still have at least one unbooked seat, ordered by start time.  Sold
// out is derived by comparing the booking count against the room's
// layout size; there is no stored flag that could drift.
func (v *AvailabilityView) ListOpenShows(ctx context.Context, asOf time.Time) ([]model.Show, error) {
	shows, err := v.shows.ListShowsEndingAfter(ctx, asOf)
	if err != nil {
		return nil, err
	}
	open := make([]model.Show, 0, len(shows))
	for _, show := range shows {
		seats, err := v.rooms.GetLayout(ctx, show.ShowroomID)
		if err != nil {
			return nil, err
		}
		booked, err := v.bookings.CountBookings(ctx, show.ID)
		if err != nil {
			return nil, err
		}
		if booked < len(seats) {
			open = append(open, show)
		}
	}
	return open, nil
}

// RemainingSeats returns the labels of the show's layout that have no
// booking yet, in layout order.  ErrNotFound when the show is unknown.
func (v *AvailabilityView) RemainingSeats(ctx context.Context, showID string) ([]string, error) {
	show, err := v.shows.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	seats, err := v.rooms.GetLayout(ctx, show.ShowroomID)
	if err != nil {
		return nil, err
	}
	bookedLabels, err := v.bookings.ListBookedSeats(ctx, show.ID)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]struct{}, len(bookedLabels))
	for _, label := range bookedLabels {
		booked[label] = struct{}{}
	}
	remaining := make([]string, 0, len(seats)-len(bookedLabels))
	for _, seat := range seats {
		if _, taken := booked[seat.Label]; !taken {
			remaining = append(remaining, seat.Label)
		}
	}
	return remaining, nil
}
