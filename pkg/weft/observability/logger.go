// Package observability provides production-grade observability for the
// workflow compiler: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds compiler context to a logger.
// Returns a new logger with workflow and run_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "etl.daily", "run-123")
//	enriched.Info("compiling") // includes workflow, run_id
func EnrichLogger(logger *slog.Logger, workflow, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
	)
}

// LogCompileStart logs the start of a workflow compilation.
func LogCompileStart(logger *slog.Logger, workflow string) {
	if logger == nil {
		return
	}
	logger.Info("workflow compile starting",
		slog.String("workflow", workflow),
	)
}

// LogCompileComplete logs successful compilation.
func LogCompileComplete(logger *slog.Logger, workflow string, nodeCount, bindingCount int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Info("workflow compile completed",
		slog.String("workflow", workflow),
		slog.Int("nodes", nodeCount),
		slog.Int("output_bindings", bindingCount),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogCompileError logs compilation failure.
func LogCompileError(logger *slog.Logger, workflow string, err error) {
	if logger == nil {
		return
	}
	logger.Error("workflow compile failed",
		slog.String("workflow", workflow),
		slog.String("error", err.Error()),
	)
}

// LogNodeLinked logs a node being recorded during a trace.
func LogNodeLinked(logger *slog.Logger, nodeID, entity string, upstream int) {
	if logger == nil {
		return
	}
	logger.Debug("node linked",
		slog.String("node_id", nodeID),
		slog.String("entity", entity),
		slog.Int("upstream", upstream),
	)
}

// LogLocalRunStart logs the start of a local workflow execution.
func LogLocalRunStart(logger *slog.Logger, workflow, runID string) {
	if logger == nil {
		return
	}
	logger.Info("local run starting",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
	)
}

// LogLocalRunComplete logs successful local execution.
func LogLocalRunComplete(logger *slog.Logger, workflow, runID string, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Info("local run completed",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogLocalRunError logs local execution failure.
func LogLocalRunError(logger *slog.Logger, workflow, runID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("local run failed",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
	)
}

// LogExport logs a workflow being exported to its registerable form.
func LogExport(logger *slog.Logger, workflow, id string) {
	if logger == nil {
		return
	}
	logger.Info("workflow exported",
		slog.String("workflow", workflow),
		slog.String("id", id),
	)
}
