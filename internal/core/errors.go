// Package core implements the booking and scheduling heart of the
// cinema: seat layouts, show scheduling, the booking ledger and the
// availability read model.  This file defines the error taxonomy shared
// by every operation.  The sentinels are wrapped with %w so callers can
// classify failures with errors.Is without depending on message text.
package core

import "errors"

// ErrValidation indicates malformed input (bad interval, non-positive
// price, empty layout, duplicate labels).  Always the caller's fault;
// retrying with the same input can never succeed.
var ErrValidation = errors.New("validation failed")

// ErrNotFound indicates a reference to a nonexistent movie, showroom,
// show, seat or booking.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates that the requested state transition lost to
// existing state: the seat is already booked for the show, the time
// slot is already taken, or the layout was already defined.  The caller
// may retry with different input (another seat, another time); the core
// never silently picks an alternative.
var ErrConflict = errors.New("conflict")

// ErrUnavailable wraps underlying storage failures (I/O, connectivity).
// It is the only retryable kind; callers should back off and retry the
// same operation.
var ErrUnavailable = errors.New("storage unavailable")
