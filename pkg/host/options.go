package host

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// defaultMaxPasses bounds the render/commit passes of a single Flush.
const defaultMaxPasses = 64

// Option configures a Root.
type Option func(*Root)

// WithClock sets the clock used for timers. Default: SystemClock().
func WithClock(c Clock) Option {
	return func(r *Root) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Root) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics attaches Prometheus collectors. Default: none.
func WithMetrics(m *Metrics) Option {
	return func(r *Root) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for flush spans. Default: the global
// OpenTelemetry tracer provider's "hx" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Root) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMaxPasses bounds how many render/commit passes one Flush may take
// before failing with ErrUpdateLoop.
func WithMaxPasses(n int) Option {
	return func(r *Root) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}
