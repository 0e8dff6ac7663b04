package scribe

import (
	"log/slog"
	"time"

	"github.com/scribedb/scribe/internal/platform"
	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/draft"
	"github.com/scribedb/scribe/pkg/query"
	"github.com/scribedb/scribe/pkg/store"
)

// --- Types ---

// Note is a public alias for the stored note record.
type Note = core.Note

// Event is a public alias for a committed mutation event.
type Event = core.Event

// Engine is a public alias for the store engine.
type Engine = store.Engine

// Coordinator is a public alias for the mutation coordinator.
type Coordinator = draft.Coordinator

// Draft is a public alias for an in-flight note edit.
type Draft = draft.Draft

// Params is a public alias for the list filter parameters.
type Params = query.Params

// --- Configuration ---

// Option defines a functional option for configuring Scribe.
type Option = platform.Option

// WithBackend allows injecting a custom storage backend.
func WithBackend(b core.Backend) Option {
	return platform.WithBackend(b)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithMustExist ensures the store location must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithEventBuffer allows specifying the per-subscriber event channel capacity.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock overrides the time source used for note identifiers.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// --- Factory ---

// New creates a new store engine.
func New(path string, opts ...Option) (*store.Engine, error) {
	return platform.New(path, opts...)
}

// NewCoordinator creates a mutation coordinator on top of an engine.
func NewCoordinator(eng *store.Engine, logger *slog.Logger) *draft.Coordinator {
	return draft.NewCoordinator(eng, logger)
}

// --- Queries ---

// Filter applies the list filter parameters to a note list.
func Filter(notes []Note, p Params) []Note {
	return query.Filter(notes, p)
}
