package ecs

import "github.com/rs/zerolog"

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger the world reports entity and archetype changes to. Defaults to a
// no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger.With().Str("module", "ecs").Logger()
	}
}
