package store

import (
	"log/slog"
	"time"
)

const defaultEventBuffer = 100

// options holds the internal configuration for the engine.
type options struct {
	logger      *slog.Logger
	clock       func() time.Time
	eventBuffer int
}

// Option defines a functional option for configuring the engine.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		clock:       time.Now,
		eventBuffer: defaultEventBuffer,
	}
}

// WithLogger sets the logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for ID assignment and event
// timestamps. Tests use this to force ID collisions.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithEventBuffer sets the per-subscriber event buffer size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.eventBuffer = size
		}
	}
}
