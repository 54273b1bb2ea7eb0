package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/cinema-booking-core/internal/cache"
	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// BookingRepo persists seat bookings.  The (show_id, seat_label) unique
// key decides every race: the insert either lands or comes back as a
// duplicate, which is surfaced as core.ErrConflict.  An optional redis
// seat lock sheds concurrent attempts for the same seat before they
// reach the database; correctness never depends on it.
type BookingRepo struct {
	db   *sql.DB
	lock *cache.SeatLock // optional, may be nil
}

// NewBookingRepo constructs a BookingRepo.  The seat lock may be nil
// when redis is not wired.
func NewBookingRepo(db *sql.DB, lock *cache.SeatLock) *BookingRepo {
	return &BookingRepo{db: db, lock: lock}
}

var _ core.BookingStore = (*BookingRepo)(nil)

// CreateBooking inserts the booking; a duplicate (show, seat) pair is
// reported as core.ErrConflict by the unique key.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
	if r.lock != nil {
		if release, ok := r.lock.Acquire(ctx, b.ShowID, b.SeatLabel); ok {
			defer release()
		}
		// Lock busy or redis down: fall through, the unique key decides.
	}
	const q = `INSERT INTO bookings
	           (id, show_id, seat_label, seat_type, premium_percent, base_price_cents, total_price_cents, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.ShowID, b.SeatLabel, b.SeatType, b.PremiumPercent, b.BasePriceCents, b.TotalPriceCents, b.CreatedAt)
	if isDuplicate(err) {
		return fmt.Errorf("%w: seat %q already booked for show %q", core.ErrConflict, b.SeatLabel, b.ShowID)
	}
	return wrapDB(err, "booking")
}

// GetBooking retrieves a booking by id.
func (r *BookingRepo) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT id, show_id, seat_label, seat_type, premium_percent, base_price_cents, total_price_cents, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ShowID, &b.SeatLabel, &b.SeatType, &b.PremiumPercent,
		&b.BasePriceCents, &b.TotalPriceCents, &b.CreatedAt,
	)
	if err != nil {
		return nil, wrapDB(err, "booking")
	}
	return &b, nil
}

// DeleteBooking removes the booking, freeing its seat for the show.
func (r *BookingRepo) DeleteBooking(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return wrapDB(err, "booking delete")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB(err, "booking delete")
	}
	if affected == 0 {
		return fmt.Errorf("%w: booking %q", core.ErrNotFound, id)
	}
	return nil
}

// ListBookedSeats returns the seat labels booked for a show, ordered
// for deterministic output.
func (r *BookingRepo) ListBookedSeats(ctx context.Context, showID string) ([]string, error) {
	const q = `SELECT seat_label FROM bookings WHERE show_id = ? ORDER BY seat_label ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, wrapDB(err, "booked seats")
	}
	defer rows.Close()
	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, wrapDB(err, "booked seats")
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB(err, "booked seats")
	}
	return labels, nil
}

// CountBookings returns the number of bookings for a show.
func (r *BookingRepo) CountBookings(ctx context.Context, showID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE show_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, q, showID).Scan(&count); err != nil {
		return 0, wrapDB(err, "booking count")
	}
	return count, nil
}
