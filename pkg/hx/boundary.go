package hx

import (
	"log/slog"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/vdom"
)

// BoundaryOptions configures WithErrorBoundary.
type BoundaryOptions struct {
	// Fallback renders in place of the wrapped component once it has
	// failed. Errors raised by the fallback go to the next boundary up.
	// Nil renders nothing.
	Fallback func(err error) *vdom.VNode

	// OnError is called once per caught error, after the fallback commits.
	// A panic in OnError is logged and discarded. Nil logs the error.
	OnError func(err error, info host.ErrorInfo)
}

// WithErrorBoundary returns c wrapped in an error boundary. When a render
// or effect in c's subtree fails, the boundary switches to Fallback for
// the rest of its mount; a remount starts over with c.
func WithErrorBoundary(c vdom.Component, opts BoundaryOptions) vdom.Component {
	name := "ErrorBoundary(" + vdom.ComponentName(c) + ")"
	return host.Class(name, func() host.Boundary {
		return &errorBoundary{inner: c, opts: opts}
	})
}

// errorBoundary is the per-mount state of WithErrorBoundary.
type errorBoundary struct {
	inner  vdom.Component
	opts   BoundaryOptions
	err    error
	logger *slog.Logger
}

func (b *errorBoundary) DeriveStateFromError(err error) {
	b.err = err
}

func (b *errorBoundary) ComponentDidCatch(err error, info host.ErrorInfo) {
	logger := b.logger
	if logger == nil {
		logger = CurrentConfig().logger()
	}
	if b.opts.OnError == nil {
		logger.Error("hx: component error",
			"boundary", vdom.ComponentName(b.inner),
			"phase", info.Phase,
			"error", err,
			"stack", info.String(),
		)
		return
	}
	defer func() {
		if v := recover(); v != nil {
			logger.Error("hx: OnError panicked",
				"boundary", vdom.ComponentName(b.inner),
				"panic", v,
			)
		}
	}()
	b.opts.OnError(err, info)
}

func (b *errorBoundary) Render(p vdom.Props) *vdom.VNode {
	if b.logger == nil {
		b.logger = CurrentConfig().logger()
	}
	if b.err != nil {
		if b.opts.Fallback == nil {
			return nil
		}
		return b.opts.Fallback(b.err)
	}
	return vdom.Comp(b.inner, p)
}
