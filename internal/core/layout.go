package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// SeatLayouts manages showrooms and their immutable seat layouts.  A
// layout is defined exactly once per room and is reused by every show
// scheduled there, so the owner never configures seating per show.
type SeatLayouts struct {
	rooms ShowroomStore
	ids   IDGenerator
	now   func() time.Time
}

// NewSeatLayouts constructs a SeatLayouts service.  All dependencies
// must be non-nil.
func NewSeatLayouts(rooms ShowroomStore, ids IDGenerator) *SeatLayouts {
	if rooms == nil || ids == nil {
		panic("nil dependency passed to NewSeatLayouts")
	}
	return &SeatLayouts{rooms: rooms, ids: ids, now: time.Now}
}

// RegisterShowroom creates a new showroom with the declared seat count.
// The layout for the room is defined separately via DefineLayout and
// must match seatCount exactly.
func (s *SeatLayouts) RegisterShowroom(ctx context.Context, name string, seatCount int) (*model.Showroom, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: showroom name is required", ErrValidation)
	}
	if seatCount <= 0 {
		return nil, fmt.Errorf("%w: seat count must be positive", ErrValidation)
	}
	room := &model.Showroom{
		ID:        s.ids.NewID(),
		Name:      name,
		SeatCount: seatCount,
		CreatedAt: s.now().UTC(),
	}
	if err := s.rooms.CreateShowroom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DefineLayout stores the ordered seat list for a showroom.  The list
// must be non-empty, labels must be unique within the room, premiums
// may not go below -100 and the number of seats must equal the room's
// declared seat count.  Labels are trimmed before storing so the label
// used at booking time is the label that was validated.  A layout can
// only be defined once; a second attempt fails with ErrValidation.
func (s *SeatLayouts) DefineLayout(ctx context.Context, showroomID string, seats []model.Seat) error {
	if len(seats) == 0 {
		return fmt.Errorf("%w: layout must contain at least one seat", ErrValidation)
	}
	normalized := make([]model.Seat, len(seats))
	seen := make(map[string]struct{}, len(seats))
	for i, seat := range seats {
		label := strings.TrimSpace(seat.Label)
		if label == "" {
			return fmt.Errorf("%w: seat label is required", ErrValidation)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: duplicate seat label %q", ErrValidation, label)
		}
		seen[label] = struct{}{}
		if seat.Type.PremiumPercent < -100 {
			return fmt.Errorf("%w: premium for seat %q is below -100", ErrValidation, label)
		}
		seat.Label = label
		normalized[i] = seat
	}
	room, err := s.rooms.GetShowroom(ctx, showroomID)
	if err != nil {
		return err
	}
	if len(normalized) != room.SeatCount {
		return fmt.Errorf("%w: layout has %d seats, showroom declares %d",
			ErrValidation, len(normalized), room.SeatCount)
	}
	return s.rooms.CreateLayout(ctx, showroomID, normalized)
}

// SeatsOf returns the ordered seat list of the showroom's layout.
func (s *SeatLayouts) SeatsOf(ctx context.Context, showroomID string) ([]model.Seat, error) {
	return s.rooms.GetLayout(ctx, showroomID)
}

// SeatTypeOf returns the seat type for a label within the room's
// layout.  ErrNotFound when the label is absent from the layout.
func (s *SeatLayouts) SeatTypeOf(ctx context.Context, showroomID, label string) (model.SeatType, error) {
	seats, err := s.rooms.GetLayout(ctx, showroomID)
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

// RemoveShowroom deletes a room together with its layout, shows and
// bookings.  The store performs the cascade in dependency order.
func (s *SeatLayouts) RemoveShowroom(ctx context.Context, showroomID string) error {
	return s.rooms.DeleteShowroom(ctx, showroomID)
}
