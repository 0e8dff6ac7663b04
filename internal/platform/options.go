package platform

import (
	"log/slog"
	"time"

	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/store"
)

// options holds the internal configuration for the Scribe service.
type options struct {
	backend     core.Backend
	logger      *slog.Logger
	adapter     string
	mustExist   bool
	eventBuffer int
	clock       func() time.Time
}

// Option defines a functional option for configuring Scribe.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend:     nil,
		logger:      nil,
		adapter:     "kvfile",
		eventBuffer: 0,
	}
}

// WithBackend allows injecting a custom storage backend (e.g. mock, remote).
// If provided, adapter selection is skipped.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the storage adapter by name.
// Supported: "kvfile" (default), "sqlite", "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithMustExist ensures the store location must already exist.
// Only meaningful for the kvfile adapter.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithEventBuffer sets the per-subscriber event channel capacity.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		o.eventBuffer = n
	}
}

// WithClock overrides the time source used for note identifiers.
// Useful for testing.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// engineOptions translates platform options into store engine options.
func (o *options) engineOptions() []store.Option {
	var eo []store.Option
	if o.logger != nil {
		eo = append(eo, store.WithLogger(o.logger))
	}
	if o.eventBuffer > 0 {
		eo = append(eo, store.WithEventBuffer(o.eventBuffer))
	}
	if o.clock != nil {
		eo = append(eo, store.WithClock(o.clock))
	}
	return eo
}
