package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// ShowRepo persists scheduled shows.  The no-overlap invariant per
// showroom is enforced inside CreateShow: the room row is locked FOR
// UPDATE, the timeline is re-validated, and only then is the show
// inserted, all in one transaction.  Two concurrent scheduling attempts
// for the same room therefore serialize at the database and cannot both
// pass the overlap test against a state excluding each other.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

var _ core.ShowStore = (*ShowRepo)(nil)

// CreateShow inserts the show unless its [starts_at, ends_at) interval
// overlaps an existing show in the same room.  Back-to-back shows are
// allowed: the predicate treats intervals as half-open.
func (r *ShowRepo) CreateShow(ctx context.Context, show *model.Show) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "show")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// Serialize all scheduling for this room on its row lock.
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM showrooms WHERE id = ? FOR UPDATE`, show.ShowroomID).Scan(&one); err != nil {
		return wrapDB(err, "showroom")
	}
	// Overlap when NOT (existing ends before new starts OR existing
	// starts after new ends), with <=/>= keeping back-to-back legal.
	const overlapQ = `SELECT COUNT(*) FROM shows
	                  WHERE showroom_id = ? AND NOT (ends_at <= ? OR starts_at >= ?)`
	var overlapping int
	if err := tx.QueryRowContext(ctx, overlapQ, show.ShowroomID, show.StartsAt, show.EndsAt).Scan(&overlapping); err != nil {
		return wrapDB(err, "show overlap check")
	}
	if overlapping > 0 {
		return fmt.Errorf("%w: showroom %q already has a show in that interval",
			core.ErrConflict, show.ShowroomID)
	}
	const insertQ = `INSERT INTO shows (id, movie_id, showroom_id, starts_at, ends_at, base_price_cents, created_at)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertQ,
		show.ID, show.MovieID, show.ShowroomID, show.StartsAt, show.EndsAt, show.BasePriceCents, show.CreatedAt); err != nil {
		return wrapDB(err, "show")
	}
	if err := tx.Commit(); err != nil {
		return wrapDB(err, "show")
	}
	committed = true
	return nil
}

// GetShow retrieves a show by id.
func (r *ShowRepo) GetShow(ctx context.Context, id string) (*model.Show, error) {
	const q = `SELECT id, movie_id, showroom_id, starts_at, ends_at, base_price_cents, created_at
	           FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.ShowroomID, &s.StartsAt, &s.EndsAt, &s.BasePriceCents, &s.CreatedAt,
	)
	if err != nil {
		return nil, wrapDB(err, "show")
	}
	return &s, nil
}

// ListShowsEndingAfter returns shows whose end time is strictly after
// asOf, ordered by start time ascending.
func (r *ShowRepo) ListShowsEndingAfter(ctx context.Context, asOf time.Time) ([]model.Show, error) {
	const q = `SELECT id, movie_id, showroom_id, starts_at, ends_at, base_price_cents, created_at
	           FROM shows
	           WHERE ends_at > ?
	           ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, asOf)
	if err != nil {
		return nil, wrapDB(err, "shows list")
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.MovieID, &s.ShowroomID, &s.StartsAt, &s.EndsAt, &s.BasePriceCents, &s.CreatedAt); err != nil {
			return nil, wrapDB(err, "shows list")
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB(err, "shows list")
	}
	return result, nil
}

// DeleteShow removes the show and its bookings in one transaction,
// bookings first.
func (r *ShowRepo) DeleteShow(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "show delete")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ? FOR UPDATE`, id).Scan(&one); err != nil {
		return wrapDB(err, "show")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE show_id = ?`, id); err != nil {
		return wrapDB(err, "show bookings delete")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id); err != nil {
		return wrapDB(err, "show delete")
	}
	if err := tx.Commit(); err != nil {
		return wrapDB(err, "show delete")
	}
	committed = true
	return nil
}
