package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("abacus")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span for a top-level resolution.
	StartResolveSpan(ctx context.Context, resolutionID, nodeKind string) (context.Context, trace.Span)

	// StartLookupSpan starts a span for a lookup scan. It is a child of
	// the resolve span when ctx carries one.
	StartLookupSpan(ctx context.Context, path, aggregate string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartResolveSpan starts a span for a resolution.
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, resolutionID, nodeKind string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "abacus.resolve",
		trace.WithAttributes(
			attribute.String("resolution.id", resolutionID),
			attribute.String("node.kind", nodeKind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLookupSpan starts a span for a lookup scan.
func (m *otelSpanManager) StartLookupSpan(ctx context.Context, path, aggregate string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "abacus.lookup",
		trace.WithAttributes(
			attribute.String("lookup.path", path),
			attribute.String("lookup.aggregate", aggregate),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
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

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
