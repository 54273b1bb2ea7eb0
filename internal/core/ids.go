package core

import "github.com/google/uuid"

// IDGenerator produces identities for newly created records.  It is
// injected into each component so the core carries no process-wide
// counter state and so tests can use deterministic ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID v4 strings.  This is the
// generator used in production wiring.
type UUIDGenerator struct{}

// NewID returns a fresh UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }
