package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the booking core's tables when they do not exist
// yet.  The unique key on bookings(show_id, seat_label) is the storage
// half of the at-most-one-booking-per-seat invariant; the foreign keys
// document the cascade paths that DeleteMovie/DeleteShowroom/DeleteShow
// walk explicitly.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id          VARCHAR(36)  NOT NULL PRIMARY KEY,
			title       VARCHAR(255) NOT NULL,
			description TEXT         NULL,
			created_at  DATETIME     NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS showrooms (
			id         VARCHAR(36)  NOT NULL PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			seat_count INT          NOT NULL,
			created_at DATETIME     NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seats (
			showroom_id     VARCHAR(36) NOT NULL,
			label           VARCHAR(32) NOT NULL,
			seat_type       VARCHAR(64) NOT NULL,
			premium_percent DOUBLE      NOT NULL,
			position        INT         NOT NULL,
			PRIMARY KEY (showroom_id, label),
			CONSTRAINT fk_seats_showroom FOREIGN KEY (showroom_id) REFERENCES showrooms (id)
		)`,
		`CREATE TABLE IF NOT EXISTS shows (
			id               VARCHAR(36) NOT NULL PRIMARY KEY,
			movie_id         VARCHAR(36) NOT NULL,
			showroom_id      VARCHAR(36) NOT NULL,
			starts_at        DATETIME    NOT NULL,
			ends_at          DATETIME    NOT NULL,
			base_price_cents BIGINT      NOT NULL,
			created_at       DATETIME    NOT NULL,
			KEY idx_shows_room_time (showroom_id, starts_at, ends_at),
			CONSTRAINT fk_shows_movie FOREIGN KEY (movie_id) REFERENCES movies (id),
			CONSTRAINT fk_shows_showroom FOREIGN KEY (showroom_id) REFERENCES showrooms (id)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id                VARCHAR(36) NOT NULL PRIMARY KEY,
			show_id           VARCHAR(36) NOT NULL,
			seat_label        VARCHAR(32) NOT NULL,
			seat_type         VARCHAR(64) NOT NULL,
			premium_percent   DOUBLE      NOT NULL,
			base_price_cents  BIGINT      NOT NULL,
			total_price_cents BIGINT      NOT NULL,
			created_at        DATETIME    NOT NULL,
			UNIQUE KEY uq_bookings_show_seat (show_id, seat_label),
			CONSTRAINT fk_bookings_show FOREIGN KEY (show_id) REFERENCES shows (id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
