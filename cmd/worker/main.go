// The worker boots the MySQL-backed booking stack, consumes booking
// events from RabbitMQ into the structured log, and periodically logs
// how many shows are still open for booking.  The booking and
// scheduling operations themselves are a library surface
// (internal/core) consumed by whatever front end embeds this module.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/cinema-booking-core/internal/cache"
	"github.com/iliyamo/cinema-booking-core/internal/config"
	"github.com/iliyamo/cinema-booking-core/internal/core"
	"github.com/iliyamo/cinema-booking-core/internal/database"
	"github.com/iliyamo/cinema-booking-core/internal/queue"
	"github.com/iliyamo/cinema-booking-core/internal/repository"
)

func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "cinema-worker").Logger()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("ensure schema")
	}

	var seatLock *cache.SeatLock
	if client := config.NewRedisClient(cfg); client != nil {
		seatLock = cache.NewSeatLock(client, 2*time.Second)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("redis seat lock enabled")
	} else {
		logger.Info().Msg("redis not configured, seat lock disabled")
	}

	rooms := repository.NewShowroomRepo(db)
	shows := repository.NewShowRepo(db)
	bookings := repository.NewBookingRepo(db, seatLock)
	view := core.NewAvailabilityView(rooms, shows, bookings)

	if cfg.AMQPURL != "" {
		consumer := queue.NewConsumer(cfg.AMQPURL, logger)
		go consumer.Run()
		logger.Info().Msg("booking event consumer started")
	} else {
		logger.Info().Msg("rabbitmq not configured, event consumer disabled")
	}

	logger.Info().Str("env", cfg.Env).Msg("worker running")
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		open, err := view.ListOpenShows(ctx, time.Now())
		if err != nil {
			logger.Error().Err(err).Msg("list open shows")
			continue
		}
		logger.Info().Int("open_shows", len(open)).Msg("occupancy")
	}
}
