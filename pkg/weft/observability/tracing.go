package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the compiler tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("weft")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCompileSpan starts a span for a workflow compilation.
	// Returns the context with span and the span itself.
	StartCompileSpan(ctx context.Context, workflow string) (context.Context, trace.Span)

	// StartLocalRunSpan starts a span for a local workflow execution.
	StartLocalRunSpan(ctx context.Context, workflow, runID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
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

// StartCompileSpan starts a span for a workflow compilation.
func (m *otelSpanManager) StartCompileSpan(ctx context.Context, workflow string) (context.Context, trace.Span) {
	return StartCompileSpan(ctx, workflow)
}

// StartLocalRunSpan starts a span for a local workflow execution.
func (m *otelSpanManager) StartLocalRunSpan(ctx context.Context, workflow, runID string) (context.Context, trace.Span) {
	return StartLocalRunSpan(ctx, workflow, runID)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartCompileSpan starts a span for a workflow compilation.
// Uses the global OTel tracer.
func StartCompileSpan(ctx context.Context, workflow string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "weft.compile",
		trace.WithAttributes(
			attribute.String("workflow.name", workflow),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLocalRunSpan starts a span for a local workflow execution.
// Uses the global OTel tracer.
func StartLocalRunSpan(ctx context.Context, workflow, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "weft.local_run",
		trace.WithAttributes(
			attribute.String("workflow.name", workflow),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
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
