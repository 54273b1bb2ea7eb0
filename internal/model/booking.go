package model

import "time"

// Booking is a confirmed reservation of exactly one seat for one show.
// The pair (ShowID, SeatLabel) is unique across all bookings.  Pricing
// inputs are captured at booking time so the ticket total never drifts
// if the layout or show were ever re-priced.  Bookings are immutable;
// cancellation removes the record and frees the seat.
//
// Fields:
//  ID              – opaque booking identifier.
//  ShowID          – show the seat is booked for.
//  SeatLabel       – seat label within the show's room layout.
//  SeatType        – seat type name captured at booking time.
//  PremiumPercent  – percentage premium captured at booking time.
//  BasePriceCents  – show base price captured at booking time.
//  TotalPriceCents – BasePriceCents * (1 + PremiumPercent/100), rounded
//                    half-even to the cent.
//  CreatedAt       – creation timestamp.
type Booking struct {
	ID              string    // bookings.id
	ShowID          string    // bookings.show_id
	SeatLabel       string    // bookings.seat_label
	SeatType        string    // bookings.seat_type
	PremiumPercent  float64   // bookings.premium_percent
	BasePriceCents  int64     // bookings.base_price_cents
	TotalPriceCents int64     // bookings.total_price_cents
	CreatedAt       time.Time // bookings.created_at
}
