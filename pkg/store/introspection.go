package store

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	Loaded      bool   `json:"loaded"`
	Notes       int    `json:"notes"`
	Categories  int    `json:"categories"`
	BackendType string `json:"backend_type"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	backendType := "backend"
	if comp, ok := e.backend.(introspection.Component); ok {
		backendType = comp.ComponentType()
	}

	return EngineState{
		Loaded:      e.cache.isLoaded(),
		Notes:       e.cache.len(),
		Categories:  len(e.cache.categories()),
		BackendType: backendType,
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "store.engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
