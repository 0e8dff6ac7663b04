package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotFound is returned by Get when no note carries the given ID.
	// Delete on an absent ID is a no-op, not an error.
	ErrNotFound = errors.New("note not found")

	// ErrCorrupt is returned when persisted bytes do not decode into a
	// valid collection. It is surfaced explicitly so the caller decides
	// between recovery and an empty-collection fallback; the store never
	// swallows it.
	ErrCorrupt = errors.New("corrupt note store")

	// ErrUnavailable wraps backend I/O failures. The mutation that hit it
	// is aborted, prior in-memory state stays authoritative, and the
	// operation is safe to retry.
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError rejects a note at the save boundary.
// It is recovered locally and surfaced as a user-visible prompt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unavailable wraps a backend failure in ErrUnavailable.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Corrupt wraps a decode failure in ErrCorrupt.
func Corrupt(err error) error {
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}
