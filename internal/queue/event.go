// Package queue defines message payloads exchanged over the message
// broker and the publisher/consumer that move them.  Events carry
// enough information for downstream consumers to log, notify or feed
// analytics without querying the primary store.
package queue

// Queue names.  One durable queue per event kind.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingEvent is published when a booking is created or cancelled.
// The prices are the values captured on the booking itself, so the
// message stays truthful even if the show is later re-priced.
type BookingEvent struct {
	BookingID       string  `json:"booking_id"`
	ShowID          string  `json:"show_id"`
	SeatLabel       string  `json:"seat_label"`
	SeatType        string  `json:"seat_type"`
	PremiumPercent  float64 `json:"premium_percent"`
	BasePriceCents  int64   `json:"base_price_cents"`
	TotalPriceCents int64   `json:"total_price_cents"`
	OccurredAt      string  `json:"occurred_at"`
}
