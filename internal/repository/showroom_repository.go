package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// ShowroomRepo persists showrooms and their seat layouts.  A layout is
// stored as one seats row per seat with an explicit position column so
// the owner-defined ordering survives round trips.
type ShowroomRepo struct {
	db *sql.DB
}

// NewShowroomRepo constructs a ShowroomRepo with the given DB handle.
func NewShowroomRepo(db *sql.DB) *ShowroomRepo { return &ShowroomRepo{db: db} }

var _ core.ShowroomStore = (*ShowroomRepo)(nil)

// CreateShowroom inserts a new showroom.
func (r *ShowroomRepo) CreateShowroom(ctx context.Context, room *model.Showroom) error {
	const q = `INSERT INTO showrooms (id, name, seat_count, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, room.ID, room.Name, room.SeatCount, room.CreatedAt)
	return wrapDB(err, "showroom")
}

// GetShowroom retrieves a showroom by id.
func (r *ShowroomRepo) GetShowroom(ctx context.Context, id string) (*model.Showroom, error) {
	const q = `SELECT id, name, seat_count, created_at FROM showrooms WHERE id = ?`
	var room model.Showroom
	err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name, &room.SeatCount, &room.CreatedAt)
	if err != nil {
		return nil, wrapDB(err, "showroom")
	}
	return &room, nil
}

// CreateLayout stores the ordered seat list for a room exactly once.
// The existence check and the bulk insert run in one transaction with
// the room row locked, so two concurrent DefineLayout calls cannot both
// pass the "no layout yet" test.
func (r *ShowroomRepo) CreateLayout(ctx context.Context, showroomID string, seats []model.Seat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "layout")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM showrooms WHERE id = ? FOR UPDATE`, showroomID).Scan(&one); err != nil {
		return wrapDB(err, "showroom")
	}
	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats WHERE showroom_id = ?`, showroomID).Scan(&existing); err != nil {
		return wrapDB(err, "layout")
	}
	if existing > 0 {
		return fmt.Errorf("%w: layout for showroom %q already defined", core.ErrValidation, showroomID)
	}
	query := `INSERT INTO seats (showroom_id, label, seat_type, premium_percent, position) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, showroomID, seat.Label, seat.Type.Name, seat.Type.PremiumPercent, i)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapDB(err, "layout")
	}
	if err := tx.Commit(); err != nil {
		return wrapDB(err, "layout")
	}
	committed = true
	return nil
}

// GetLayout returns the room's ordered seat list.  core.ErrNotFound
// when the room has no layout rows.
func (r *ShowroomRepo) GetLayout(ctx context.Context, showroomID string) ([]model.Seat, error) {
	const q = `SELECT label, seat_type, premium_percent
	           FROM seats
	           WHERE showroom_id = ?
	           ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, q, showroomID)
	if err != nil {
		return nil, wrapDB(err, "layout")
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var seat model.Seat
		if err := rows.Scan(&seat.Label, &seat.Type.Name, &seat.Type.PremiumPercent); err != nil {
			return nil, wrapDB(err, "layout")
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB(err, "layout")
	}
	if len(seats) == 0 {
		return nil, wrapDB(sql.ErrNoRows, "layout")
	}
	return seats, nil
}

// DeleteShowroom removes a room with its layout, shows and bookings in
// dependency order within a single transaction.
func (r *ShowroomRepo) DeleteShowroom(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "showroom delete")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM showrooms WHERE id = ? FOR UPDATE`, id).Scan(&one); err != nil {
		return wrapDB(err, "showroom")
	}
	const delBookings = `DELETE b FROM bookings b JOIN shows s ON s.id = b.show_id WHERE s.showroom_id = ?`
	if _, err := tx.ExecContext(ctx, delBookings, id); err != nil {
		return wrapDB(err, "showroom bookings delete")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE showroom_id = ?`, id); err != nil {
		return wrapDB(err, "showroom shows delete")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE showroom_id = ?`, id); err != nil {
		return wrapDB(err, "showroom layout delete")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM showrooms WHERE id = ?`, id); err != nil {
		return wrapDB(err, "showroom delete")
	}
	if err := tx.Commit(); err != nil {
		return wrapDB(err, "showroom delete")
	}
	committed = true
	return nil
}
