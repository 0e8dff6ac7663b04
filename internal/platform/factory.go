package platform

import (
	"fmt"

	"github.com/scribedb/scribe/pkg/adapters/kvfile"
	"github.com/scribedb/scribe/pkg/adapters/kvsqlite"
	"github.com/scribedb/scribe/pkg/adapters/memory"
	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/store"
)

// New constructs a store engine bound to a backend.
//
//	eng, err := scribe.New("./notes", scribe.WithAdapter("sqlite"))
//
// The URI argument is adapter-specific: a directory for 'kvfile', a
// database file (or ":memory:") for 'sqlite', and ignored for 'memory'.
func New(uri string, opts ...Option) (*store.Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	backend, err := initBackend(uri, o)
	if err != nil {
		return nil, err
	}

	return store.NewEngine(backend, o.engineOptions()...), nil
}

// NewBackend resolves a backend without wrapping it in an engine. Used
// by callers that address keys outside the note collection, like the
// widget snapshot.
func NewBackend(uri string, opts ...Option) (core.Backend, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initBackend(uri, o)
}

// initBackend resolves the configured backend, constructing one from the
// adapter name when none was injected.
func initBackend(uri string, o *options) (core.Backend, error) {
	if o.backend != nil {
		return o.backend, nil
	}

	switch o.adapter {
	case "kvfile":
		return kvfile.New(kvfile.Config{
			Dir:       uri,
			MustExist: o.mustExist,
			Logger:    o.logger,
		})
	case "sqlite":
		return kvsqlite.New(uri)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
