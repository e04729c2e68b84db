package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const spanPrefix = "usecase."

var tracer = otel.Tracer("live-match/internal/usecase")

// childSpan starts "usecase.<op>" only beneath a sampled parent, so sweeper
// ticks and tests without a trace produce no root spans.
func childSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if op == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return tracer.Start(ctx, spanPrefix+op)
}
