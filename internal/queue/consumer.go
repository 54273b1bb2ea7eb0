package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Consumer listens to the booking queues and writes one structured log
// line per event.  It runs a reconnect loop with capped exponential
// backoff and keeps going through processing errors, rejecting the
// offending message so the rest of the stream continues to flow.
type Consumer struct {
	url string
	log zerolog.Logger
}

// NewConsumer constructs a Consumer for the given AMQP URL.
func NewConsumer(url string, log zerolog.Logger) *Consumer {
	return &Consumer{url: url, log: log}
}

// Run connects to RabbitMQ, declares the booking queues (durable) and
// consumes them until the process exits.  It never returns under
// normal operation.
func (c *Consumer) Run() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("booking-consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := c.consumeLoop(conn); err != nil {
			c.log.Warn().Err(err).Msg("booking-consumer: consume loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("booking-consumer: set QoS failed")
	}

	for _, queueName := range []string{BookingCreatedQueue, BookingCancelledQueue} {
		if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", queueName, err)
		}
	}

	created, err := ch.Consume(BookingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", BookingCreatedQueue, err)
	}
	cancelled, err := ch.Consume(BookingCancelledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", BookingCancelledQueue, err)
	}

	for {
		select {
		case d, ok := <-created:
			if !ok {
				return fmt.Errorf("channel closed")
			}
			c.handle(d, "created")
		case d, ok := <-cancelled:
			if !ok {
				return fmt.Errorf("channel closed")
			}
			c.handle(d, "cancelled")
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery, kind string) {
	var event BookingEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.log.Error().Err(err).Str("kind", kind).Msg("booking-consumer: bad payload")
		_ = d.Reject(false) // drop, a malformed message never becomes valid
		return
	}
	c.log.Info().
		Str("event", "booking_"+kind).
		Str("booking_id", event.BookingID).
		Str("show_id", event.ShowID).
		Str("seat", event.SeatLabel).
		Str("seat_type", event.SeatType).
		Int64("total_price_cents", event.TotalPriceCents).
		Str("occurred_at", event.OccurredAt).
		Msg("booking event")
	_ = d.Ack(false)
}
