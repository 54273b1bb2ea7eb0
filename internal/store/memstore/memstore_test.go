package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

func testShow(id, movieID, roomID string, startHour, endHour int) *model.Show {
	return &model.Show{
		ID:             id,
		MovieID:        movieID,
		ShowroomID:     roomID,
		StartsAt:       time.Date(2026, time.September, 1, startHour, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2026, time.September, 1, endHour, 0, 0, 0, time.UTC),
		BasePriceCents: 10000,
	}
}

func seedRoom(t *testing.T, s *Store, roomID string, labels ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.CreateShowroom(ctx, &model.Showroom{ID: roomID, Name: roomID, SeatCount: len(labels)}))
	seats := make([]model.Seat, 0, len(labels))
	for _, label := range labels {
		seats = append(seats, model.Seat{Label: label, Type: model.SeatType{Name: "standard"}})
	}
	require.NoError(t, s.CreateLayout(ctx, roomID, seats))
}

func TestCreateBookingIsCompareAndSwap(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.RegisterMovie(ctx, model.Movie{ID: "m1"}))
	seedRoom(t, s, "r1", "A1")
	require.NoError(t, s.CreateShow(ctx, testShow("s1", "m1", "r1", 14, 16)))

	const writers = 64
	var wg sync.WaitGroup
	var winners, conflicts int32
	var mu sync.Mutex
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := &model.Booking{ID: "b" + string(rune('A'+i%26)) + string(rune('a'+i/26)), ShowID: "s1", SeatLabel: "A1"}
			err := s.CreateBooking(ctx, b)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners++
			} else if errors.Is(err, core.ErrConflict) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
	assert.Equal(t, int32(writers-1), conflicts)
}

func TestCreateShowSerializesPerRoom(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.RegisterMovie(ctx, model.Movie{ID: "m1"}))
	seedRoom(t, s, "r1", "A1")

	require.NoError(t, s.CreateShow(ctx, testShow("s1", "m1", "r1", 14, 16)))
	err := s.CreateShow(ctx, testShow("s2", "m1", "r1", 15, 17))
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.NoError(t, s.CreateShow(ctx, testShow("s3", "m1", "r1", 16, 18)), "back-to-back is allowed")
}

func TestDeleteMovieCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.RegisterMovie(ctx, model.Movie{ID: "m1"}))
	seedRoom(t, s, "r1", "A1")
	require.NoError(t, s.CreateShow(ctx, testShow("s1", "m1", "r1", 14, 16)))
	require.NoError(t, s.CreateBooking(ctx, &model.Booking{ID: "b1", ShowID: "s1", SeatLabel: "A1"}))

	require.NoError(t, s.DeleteMovie(ctx, "m1"))

	exists, err := s.MovieExists(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = s.GetShow(ctx, "s1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.GetBooking(ctx, "b1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	// The room and its layout survive a movie delete.
	_, err = s.GetShowroom(ctx, "r1")
	assert.NoError(t, err)
}

func TestDeleteShowroomCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.RegisterMovie(ctx, model.Movie{ID: "m1"}))
	seedRoom(t, s, "r1", "A1")
	require.NoError(t, s.CreateShow(ctx, testShow("s1", "m1", "r1", 14, 16)))
	require.NoError(t, s.CreateBooking(ctx, &model.Booking{ID: "b1", ShowID: "s1", SeatLabel: "A1"}))

	require.NoError(t, s.DeleteShowroom(ctx, "r1"))

	_, err := s.GetShowroom(ctx, "r1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.GetLayout(ctx, "r1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.GetShow(ctx, "s1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.GetBooking(ctx, "b1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestLayoutDefinedOnce(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedRoom(t, s, "r1", "A1")
	err := s.CreateLayout(ctx, "r1", []model.Seat{{Label: "B1"}})
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestGetLayoutReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedRoom(t, s, "r1", "A1", "A2")

	seats, err := s.GetLayout(ctx, "r1")
	require.NoError(t, err)
	seats[0].Label = "mutated"

	fresh, err := s.GetLayout(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "A1", fresh[0].Label)
}

func TestListShowsEndingAfterOrdersByStart(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.RegisterMovie(ctx, model.Movie{ID: "m1"}))
	seedRoom(t, s, "r1", "A1")
	seedRoom(t, s, "r2", "A1")
	require.NoError(t, s.CreateShow(ctx, testShow("late", "m1", "r1", 18, 20)))
	require.NoError(t, s.CreateShow(ctx, testShow("early", "m1", "r2", 10, 12)))

	asOf := time.Date(2026, time.September, 1, 11, 0, 0, 0, time.UTC)
	shows, err := s.ListShowsEndingAfter(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, "early", shows[0].ID)
	assert.Equal(t, "late", shows[1].ID)

	asOf = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	shows, err = s.ListShowsEndingAfter(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "late", shows[0].ID)
}
