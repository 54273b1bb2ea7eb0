package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/model"
)

// Publisher sends booking events to RabbitMQ.  It implements
// core.EventPublisher.  Publishing is best-effort and never panics:
// every error is logged and returned so the ledger can ignore it
// without interrupting the booking flow.  Messages are persistent and
// queues durable so events survive broker restarts.
type Publisher struct {
	url string
	log zerolog.Logger
}

// NewPublisher constructs a Publisher for the given AMQP URL.
func NewPublisher(url string, log zerolog.Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

var _ core.EventPublisher = (*Publisher)(nil)

// PublishBookingCreated publishes a BookingEvent to booking.created.
func (p *Publisher) PublishBookingCreated(ctx context.Context, b model.Booking) error {
	return p.publish(ctx, BookingCreatedQueue, b)
}

// PublishBookingCancelled publishes a BookingEvent to booking.cancelled.
func (p *Publisher) PublishBookingCancelled(ctx context.Context, b model.Booking) error {
	return p.publish(ctx, BookingCancelledQueue, b)
}

func (p *Publisher) publish(ctx context.Context, queueName string, b model.Booking) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent).  Durable so messages
	// survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Error().Err(err).Str("queue", queueName).Msg("rabbitmq: queue declare failed")
		return err
	}

	event := BookingEvent{
		BookingID:       b.ID,
		ShowID:          b.ShowID,
		SeatLabel:       b.SeatLabel,
		SeatType:        b.SeatType,
		PremiumPercent:  b.PremiumPercent,
		BasePriceCents:  b.BasePriceCents,
		TotalPriceCents: b.TotalPriceCents,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Error().Err(err).Str("queue", queueName).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
