package host

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name for host spans.
const tracerName = "hx"

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// flushSpan wraps one Root.Flush.
type flushSpan struct {
	span      trace.Span
	renders   int
	passes    int
	caught    int
	effectRun int
}

func (r *Root) startFlushSpan(ctx context.Context) (context.Context, *flushSpan) {
	ctx, span := r.tracer.Start(ctx, "hx.flush",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int64("hx.root.id", int64(r.id))),
	)
	return ctx, &flushSpan{span: span}
}

func (s *flushSpan) end(err error) {
	s.span.SetAttributes(
		attribute.Int("hx.flush.passes", s.passes),
		attribute.Int("hx.flush.renders", s.renders),
		attribute.Int("hx.flush.effects", s.effectRun),
		attribute.Int("hx.flush.caught_errors", s.caught),
	)
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
