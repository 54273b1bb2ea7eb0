package core

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// ShowScheduler validates and registers shows against a showroom's
// timeline.  The no-overlap invariant is enforced by the store: the
// overlap check and the insert happen as one atomic unit per room, so
// two concurrent scheduling attempts for the same slot resolve to one
// winner and one ErrConflict.
type ShowScheduler struct {
	rooms   ShowroomStore
	shows   ShowStore
	catalog Catalog
	ids     IDGenerator
	now     func() time.Time
}

// NewShowScheduler constructs a ShowScheduler.  All dependencies must
// be non-nil.
func NewShowScheduler(rooms ShowroomStore, shows ShowStore, catalog Catalog, ids IDGenerator) *ShowScheduler {
	if rooms == nil || shows == nil || catalog == nil || ids == nil {
		panic("nil dependency passed to NewShowScheduler")
	}
	return &ShowScheduler{rooms: rooms, shows: shows, catalog: catalog, ids: ids, now: time.Now}
}

// ScheduleShow registers a screening of movieID in showroomID over
// [start, end) at the given base price.  It fails with ErrValidation
// for a bad interval or non-positive price, ErrNotFound for an unknown
// movie or room or when the room has no seat layout yet, and
// ErrConflict when the interval overlaps an existing show in the same
// room.  Back-to-back shows (start == existing end) are allowed.
func (s *ShowScheduler) ScheduleShow(ctx context.Context, movieID, showroomID string, start, end time.Time, basePriceCents int64) (*model.Show, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: show end must be after start", ErrValidation)
	}
	if basePriceCents <= 0 {
		return nil, fmt.Errorf("%w: base price must be positive", ErrValidation)
	}
	exists, err := s.catalog.MovieExists(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: movie %q", ErrNotFound, movieID)
	}
	if _, err := s.rooms.GetShowroom(ctx, showroomID); err != nil {
		return nil, err
	}
	// A show is only sellable once the room's seats are defined, and
	// the availability view derives capacity from the layout.
	if _, err := s.rooms.GetLayout(ctx, showroomID); err != nil {
		return nil, err
	}
	show := &model.Show{
		ID:             s.ids.NewID(),
		MovieID:        movieID,
		ShowroomID:     showroomID,
		StartsAt:       start.UTC(),
		EndsAt:         end.UTC(),
		BasePriceCents: basePriceCents,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.shows.CreateShow(ctx, show); err != nil {
		return nil, err
	}
	return show, nil
}

// CancelShow removes a scheduled show and frees all of its bookings.
// Refund handling is an external concern; the core only guarantees the
// seats become bookable again for other shows and the room slot opens
// up.  ErrNotFound when the show does not exist.
func (s *ShowScheduler) CancelShow(ctx context.Context, showID string) error {
	return s.shows.DeleteShow(ctx, showID)
}
