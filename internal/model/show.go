package model

import "time"

// Show represents a scheduled screening of a movie in a particular
// showroom.  For a fixed showroom no two shows may have overlapping
// [StartsAt, EndsAt) intervals.  A show has no stored sold-out flag;
// sold out is derived by comparing the number of bookings against the
// room's layout size.
//
// Fields:
//  ID             – opaque show identifier.
//  MovieID        – movie being screened (catalog reference).
//  ShowroomID     – room where the show takes place.
//  StartsAt       – when the show begins (UTC).
//  EndsAt         – when the show ends (UTC, strictly after StartsAt).
//  BasePriceCents – base seat price in cents before the seat premium.
//  CreatedAt      – creation timestamp.
type Show struct {
	ID             string    // shows.id
	MovieID        string    // shows.movie_id
	ShowroomID     string    // shows.showroom_id
	StartsAt       time.Time // shows.starts_at
	EndsAt         time.Time // shows.ends_at
	BasePriceCents int64     // shows.base_price_cents
	CreatedAt      time.Time // shows.created_at
}

// Overlaps reports whether the show's half-open interval intersects
// [start, end).  Back-to-back shows (start == other end) do not overlap.
func (s Show) Overlaps(start, end time.Time) bool {
	return s.StartsAt.Before(end) && start.Before(s.EndsAt)
}
