// Package cache provides an advisory redis lock over (show, seat)
// pairs.  The lock is a contention shedder, not a correctness
// mechanism: when many callers race for the same seat, losers are
// turned away before they reach the database.  If redis is down or the
// key cannot be acquired the caller proceeds anyway and the store's
// unique constraint has the final word.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when the caller still owns
// it, so a lock that expired and was re-acquired by someone else is
// never released by the previous holder.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// SeatLock acquires short-lived per-seat locks via SET NX.
type SeatLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSeatLock constructs a SeatLock.  A zero ttl defaults to two
// seconds, which comfortably covers one booking insert.
func NewSeatLock(client *redis.Client, ttl time.Duration) *SeatLock {
	if ttl <= 0 {
		ttl = 2 * time.Second
	}
	return &SeatLock{client: client, ttl: ttl}
}

// Acquire attempts to take the lock for (showID, seatLabel).  It
// returns a release function and true on success, or nil and false when
// the seat is currently locked by another caller or redis is
// unreachable.  The release function is safe to call after expiry.
func (l *SeatLock) Acquire(ctx context.Context, showID, seatLabel string) (func(), bool) {
	key := "seatlock:" + showID + ":" + seatLabel
	value := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, value, l.ttl).Result()
	if err != nil || !ok {
		return nil, false
	}
	release := func() {
		_ = l.client.Eval(context.Background(), releaseScript, []string{key}, value).Err()
	}
	return release, true
}
