package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID produces random (v4) UUID strings, the same shape browsers emit from
// crypto.randomUUID, so ids stay interchangeable with existing stored data.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
