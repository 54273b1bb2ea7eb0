package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// TestBookingFlow walks the whole happy path and its rejections in one
// sitting: a two-seat room, a scheduled show, a rejected overlapping
// show, both seats booked at their respective prices, a rejected
// double booking and the show dropping out of the open list.
func TestBookingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMovie(t, "movie-1")

	room := f.addRoom(t, "Room A", []model.Seat{
		seat("A1", "standard", 0),
		seat("A2", "vip", 50),
	})

	showX, err := f.scheduler.ScheduleShow(ctx, "movie-1", room.ID, at(14), at(16), 10000)
	require.NoError(t, err)

	// 15:00-17:00 overlaps 14:00-16:00 in the same room.
	_, err = f.scheduler.ScheduleShow(ctx, "movie-1", room.ID, at(15), at(17), 10000)
	assert.ErrorIs(t, err, core.ErrConflict)

	standard, err := f.ledger.BookSeat(ctx, showX.ID, "A1")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), standard.TotalPriceCents)

	vip, err := f.ledger.BookSeat(ctx, showX.ID, "A2")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), vip.TotalPriceCents)

	_, err = f.ledger.BookSeat(ctx, showX.ID, "A1")
	assert.ErrorIs(t, err, core.ErrConflict)

	open, err := f.view.ListOpenShows(ctx, at(10))
	require.NoError(t, err)
	assert.Empty(t, open, "fully booked show is no longer open")
}
