package model

import "time"

// Showroom is a physical room inside the cinema.  Each showroom is
// created once by the owner and carries a declared seat count which
// must match the seat layout defined for it.
//
// Fields:
//  ID        – opaque showroom identifier.
//  Name      – human readable label for the room.
//  SeatCount – declared number of seats; the layout must match exactly.
//  CreatedAt – creation timestamp.
type Showroom struct {
	ID        string    // showrooms.id
	Name      string    // showrooms.name
	SeatCount int       // showrooms.seat_count
	CreatedAt time.Time // showrooms.created_at
}
