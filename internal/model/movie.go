package model

import "time"

// Movie is a catalog reference.  The catalog itself (titles,
// descriptions, posters) is owned by an external collaborator; the
// booking core only ever needs the identity to validate that a show
// points at a real film.
//
// Fields:
//  ID          – opaque movie identifier.
//  Title       – display title (catalog metadata, never mutated here).
//  Description – optional catalog description.
//  CreatedAt   – creation timestamp.
type Movie struct {
	ID          string    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	CreatedAt   time.Time // movies.created_at
}
