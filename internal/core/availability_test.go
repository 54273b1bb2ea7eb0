package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

func TestRemainingSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMovie(t, "movie-1")
	seats := []model.Seat{
		seat("A1", "standard", 0),
		seat("A2", "standard", 0),
		seat("B1", "vip", 50),
		seat("B2", "vip", 50),
	}
	room := f.addRoom(t, "Room A", seats)
	show, err := f.scheduler.ScheduleShow(ctx, "movie-1", room.ID, at(14), at(16), 10000)
	require.NoError(t, err)

	remaining, err := f.view.RemainingSeats(ctx, show.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, remaining)

	// Book 2 of 4: exactly the other 2 labels remain, layout order kept.
	_, err = f.ledger.BookSeat(ctx, show.ID, "A2")
	require.NoError(t, err)
	_, err = f.ledger.BookSeat(ctx, show.ID, "B1")
	require.NoError(t, err)

	remaining, err = f.view.RemainingSeats(ctx, show.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, remaining)

	_, err = f.view.RemainingSeats(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListOpenShowsExcludesSoldOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMovie(t, "movie-1")
	room := f.addRoom(t, "Room A", twoSeats())
	show, err := f.scheduler.ScheduleShow(ctx, "movie-1", room.ID, at(14), at(16), 10000)
	require.NoError(t, err)

	open, err := f.view.ListOpenShows(ctx, at(10))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, show.ID, open[0].ID)

	_, err = f.ledger.BookSeat(ctx, show.ID, "A1")
	require.NoError(t, err)
	open, err = f.view.ListOpenShows(ctx, at(10))
	require.NoError(t, err)
	assert.Len(t, open, 1, "partially booked shows stay open")

	last, err := f.ledger.BookSeat(ctx, show.ID, "A2")
	require.NoError(t, err)
	open, err = f.view.ListOpenShows(ctx, at(10))
	require.NoError(t, err)
	assert.Empty(t, open, "sold out show disappears")

	// Cancelling a booking reopens the show.
	require.NoError(t, f.ledger.CancelBooking(ctx, last.ID))
	open, err = f.view.ListOpenShows(ctx, at(10))
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestListOpenShowsFiltersByTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMovie(t, "movie-1")
	room := f.addRoom(t, "Room A", twoSeats())

	early, err := f.scheduler.ScheduleShow(ctx, "movie-1", room.ID, at(10), at(12), 10000)
	require.NoError(t, err)
	late, err := f.scheduler.ScheduleShow(ctx, "movie-1", room.ID, at(14), at(16), 10000)
	require.NoError(t, err)

	open, err := f.view.ListOpenShows(ctx, at(9))
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, early.ID, open[0].ID, "ordered by start time")
	assert.Equal(t, late.ID, open[1].ID)

	// asOf exactly at a show's end excludes it (end > asOf is strict).
	open, err = f.view.ListOpenShows(ctx, at(12))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, late.ID, open[0].ID)
}
