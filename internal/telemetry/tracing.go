package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Uses the global OTel tracer provider.
var tracer = otel.Tracer("flowgen")

// StartGenerateSpan starts the span covering one whole generation.
func StartGenerateSpan(ctx context.Context, grammar, direction, complexity string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowgen.generate",
		trace.WithAttributes(
			attribute.String("flowchart.grammar", grammar),
			attribute.String("flowchart.direction", direction),
			attribute.String("flowchart.complexity", complexity),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartCompletionSpan starts a child span for the LLM call.
func StartCompletionSpan(ctx context.Context, provider, model string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowgen.completion",
		trace.WithAttributes(
			attribute.String("llm.provider", provider),
			attribute.String("llm.model", model),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan completes a span, recording err if non-nil.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
