package katachi

import "go.uber.org/zap"

// Option configures a World at construction time.
type Option func(*World)

// WithConfig replaces the default limits wholesale.
func WithConfig(cfg Config) Option {
	return func(w *World) {
		w.cfg = cfg
	}
}

// WithMaxEntities overrides only the population ceiling.
func WithMaxEntities(n int) Option {
	return func(w *World) {
		w.cfg.MaxEntities = n
	}
}

// WithLogger attaches a logger. The world traces cache operations and entity
// recycling at debug level; without a logger all tracing is dropped.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}
