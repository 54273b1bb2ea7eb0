package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// MovieRepo is the catalog collaborator backed by the movies table.
// The booking core only reads from it (MovieExists); Create and Delete
// exist for the catalog owner's tooling.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

var _ core.Catalog = (*MovieRepo)(nil)

// Create inserts a new movie.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (id, title, description, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.Title, m.Description, m.CreatedAt)
	return wrapDB(err, "movie")
}

// MovieExists reports whether a movie row with the given id exists.
func (r *MovieRepo) MovieExists(ctx context.Context, movieID string) (bool, error) {
	const q = `SELECT 1 FROM movies WHERE id = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, movieID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: movie lookup: %v", core.ErrUnavailable, err)
	}
	return true, nil
}

// GetByID retrieves a movie by its id.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	const q = `SELECT id, title, description, created_at FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.Description, &m.CreatedAt)
	if err != nil {
		return nil, wrapDB(err, "movie")
	}
	return &m, nil
}

// Delete removes a movie and cascades to its shows and their bookings.
// The dependent rows are removed first so the delete order is explicit
// and testable rather than left to referential actions.
func (r *MovieRepo) Delete(ctx context.Context, movieID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "movie delete")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// Lock the movie row so a concurrent schedule against it waits for
	// the cascade to finish.
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? FOR UPDATE`, movieID).Scan(&one); err != nil {
		return wrapDB(err, "movie")
	}
	const delBookings = `DELETE b FROM bookings b JOIN shows s ON s.id = b.show_id WHERE s.movie_id = ?`
	if _, err := tx.ExecContext(ctx, delBookings, movieID); err != nil {
		return wrapDB(err, "movie bookings delete")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE movie_id = ?`, movieID); err != nil {
		return wrapDB(err, "movie shows delete")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, movieID); err != nil {
		return wrapDB(err, "movie delete")
	}
	if err := tx.Commit(); err != nil {
		return wrapDB(err, "movie delete")
	}
	committed = true
	return nil
}
