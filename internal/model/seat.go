package model

// SeatType categorizes a seat (standard, vip, couple, ...) and carries
// the percentage premium applied on top of a show's base price.  A
// negative premium is a discount; it may never go below -100 since a
// price cannot become negative.
type SeatType struct {
	Name           string  // seat type label, e.g. "vip"
	PremiumPercent float64 // percentage added to the base price
}

// Seat describes one seat inside a showroom's layout.  Seats are
// identified by their label (e.g. row letter plus number), which is
// unique within the room.  Seats are a room resource: the same seat is
// reused by every show scheduled in the room.
type Seat struct {
	Label string   // unique within the showroom, e.g. "A1"
	Type  SeatType // pricing category of the seat
}
