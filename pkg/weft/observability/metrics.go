package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records compiler metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records a workflow compilation with its node count,
	// duration, and error status.
	RecordCompile(ctx context.Context, workflow string, nodeCount int, duration time.Duration, err error)

	// RecordLocalRun records a local workflow execution.
	RecordLocalRun(ctx context.Context, workflow string, duration time.Duration, err error)

	// RecordExport records an export of a compiled workflow to its
	// registerable form, with the serialized size in bytes.
	RecordExport(ctx context.Context, workflow string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles       metric.Int64Counter
	compileErrors  metric.Int64Counter
	compileLatency metric.Float64Histogram
	graphNodes     metric.Int64Histogram
	localRuns      metric.Int64Counter
	localErrors    metric.Int64Counter
	localLatency   metric.Float64Histogram
	exportSize     metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("weft")

	compiles, err := meter.Int64Counter("weft.compile.count",
		metric.WithDescription("Number of workflow compilations"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("weft.compile.errors",
		metric.WithDescription("Number of failed workflow compilations"),
	)
	if err != nil {
		return nil, err
	}

	compileLatency, err := meter.Float64Histogram("weft.compile.latency_ms",
		metric.WithDescription("Workflow compilation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	graphNodes, err := meter.Int64Histogram("weft.compile.nodes",
		metric.WithDescription("Nodes per compiled graph"),
	)
	if err != nil {
		return nil, err
	}

	localRuns, err := meter.Int64Counter("weft.local.runs",
		metric.WithDescription("Number of local workflow executions"),
	)
	if err != nil {
		return nil, err
	}

	localErrors, err := meter.Int64Counter("weft.local.errors",
		metric.WithDescription("Number of failed local workflow executions"),
	)
	if err != nil {
		return nil, err
	}

	localLatency, err := meter.Float64Histogram("weft.local.latency_ms",
		metric.WithDescription("Local execution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	exportSize, err := meter.Int64Histogram("weft.export.size_bytes",
		metric.WithDescription("Serialized registerable workflow size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:       compiles,
		compileErrors:  compileErrors,
		compileLatency: compileLatency,
		graphNodes:     graphNodes,
		localRuns:      localRuns,
		localErrors:    localErrors,
		localLatency:   localLatency,
		exportSize:     exportSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCompile records a workflow compilation.
func (m *otelMetrics) RecordCompile(ctx context.Context, workflow string, nodeCount int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("workflow", workflow),
	}

	m.compiles.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.compileLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		m.compileErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
		return
	}
	m.graphNodes.Record(ctx, int64(nodeCount), metric.WithAttributes(attrs...))
}

// RecordLocalRun records a local workflow execution.
func (m *otelMetrics) RecordLocalRun(ctx context.Context, workflow string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("workflow", workflow),
	}

	m.localRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.localLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		m.localErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordExport records a registerable-form export.
func (m *otelMetrics) RecordExport(ctx context.Context, workflow string, sizeBytes int64) {
	m.exportSize.Record(ctx, sizeBytes, metric.WithAttributes(
		attribute.String("workflow", workflow),
	))
}
