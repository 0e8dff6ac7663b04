package widget

import (
	"context"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/store"
)

// Publisher pushes a fresh snapshot under the widget key whenever the
// collection changes. It writes only core.KeyWidget; the note and
// category keys remain the engine's alone.
type Publisher struct {
	engine  *store.Engine
	backend core.Backend
	logger  *slog.Logger
}

// NewPublisher creates a publisher bound to an engine and the backend
// holding the widget key.
func NewPublisher(engine *store.Engine, backend core.Backend, logger *slog.Logger) *Publisher {
	return &Publisher{engine: engine, backend: backend, logger: logger}
}

// Publish projects the current collection and writes the snapshot.
func (p *Publisher) Publish(ctx context.Context) error {
	notes, err := p.engine.List(ctx)
	if err != nil {
		return err
	}

	data, err := EncodeSnapshot(Snapshot(notes))
	if err != nil {
		return err
	}
	if err := p.backend.Store(ctx, core.KeyWidget, data); err != nil {
		return core.Unavailable(err)
	}

	if p.logger != nil {
		p.logger.Debug("widget snapshot published", "entries", len(notes))
	}
	return nil
}

// Run publishes once, then re-publishes on every committed mutation
// until ctx is cancelled. Snapshot failures are logged, never fatal: the
// surface tolerates a stale snapshot.
func (p *Publisher) Run(ctx context.Context) error {
	events, err := p.engine.Watch(ctx, "*")
	if err != nil {
		return err
	}

	if err := p.Publish(ctx); err != nil && p.logger != nil {
		p.logger.Warn("initial widget snapshot failed", "error", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-events:
				if !ok {
					return nil
				}
				if err := p.Publish(ctx); err != nil && p.logger != nil {
					p.logger.Warn("widget snapshot failed", "error", err)
				}
			}
		}
	})

	return nil
}
