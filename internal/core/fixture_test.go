package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
	"github.com/iliyamo/cinema-booking-core/internal/store/memstore"
)

// fixture wires the full core against the in-memory store.
type fixture struct {
	store     *memstore.Store
	layouts   *core.SeatLayouts
	scheduler *core.ShowScheduler
	ledger    *core.BookingLedger
	view      *core.AvailabilityView
	events    *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	ids := core.UUIDGenerator{}
	events := &recordingPublisher{}
	return &fixture{
		store:     store,
		layouts:   core.NewSeatLayouts(store, ids),
		scheduler: core.NewShowScheduler(store, store, store, ids),
		ledger:    core.NewBookingLedger(store, store, store, ids, events),
		view:      core.NewAvailabilityView(store, store, store),
		events:    events,
	}
}

// addMovie registers a movie in the in-process catalog.
func (f *fixture) addMovie(t *testing.T, id string) {
	t.Helper()
	err := f.store.RegisterMovie(context.Background(), model.Movie{ID: id, Title: id})
	require.NoError(t, err)
}

// addRoom registers a showroom sized to the given seats and defines
// its layout.
func (f *fixture) addRoom(t *testing.T, name string, seats []model.Seat) *model.Showroom {
	t.Helper()
	room, err := f.layouts.RegisterShowroom(context.Background(), name, len(seats))
	require.NoError(t, err)
	require.NoError(t, f.layouts.DefineLayout(context.Background(), room.ID, seats))
	return room
}

func seat(label, typeName string, premium float64) model.Seat {
	return model.Seat{Label: label, Type: model.SeatType{Name: typeName, PremiumPercent: premium}}
}

func at(hour int) time.Time {
	return time.Date(2026, time.September, 1, hour, 0, 0, 0, time.UTC)
}

// recordingPublisher captures booking events for assertions.
type recordingPublisher struct {
	mu        sync.Mutex
	created   []model.Booking
	cancelled []model.Booking
}

func (p *recordingPublisher) PublishBookingCreated(_ context.Context, b model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, b)
	return nil
}

func (p *recordingPublisher) PublishBookingCancelled(_ context.Context, b model.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, b)
	return nil
}

func (p *recordingPublisher) createdCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.created)
}
