// Package observability provides structured logging, metrics and tracing
// for abacus resolutions and lookups.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds the resolution ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "0b6f...")
//	enriched.Info("resolving") // includes resolution_id
func EnrichLogger(logger *slog.Logger, resolutionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("resolution_id", resolutionID))
}

// LogResolveStart logs the start of a top-level resolution.
func LogResolveStart(logger *slog.Logger, resolutionID, nodeKind string) {
	if logger == nil {
		return
	}
	logger.Debug("resolution starting",
		slog.String("resolution_id", resolutionID),
		slog.String("node", nodeKind),
	)
}

// LogResolveComplete logs a resolution that produced a value or Absent.
func LogResolveComplete(logger *slog.Logger, resolutionID, outcome string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("resolution completed",
		slog.String("resolution_id", resolutionID),
		slog.String("outcome", outcome),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogResolveError logs a resolution that failed.
func LogResolveError(logger *slog.Logger, resolutionID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("resolution failed",
		slog.String("resolution_id", resolutionID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLookupScan logs a finished row source scan.
func LogLookupScan(logger *slog.Logger, path, aggregate string, scanned, matched int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("lookup scanned",
		slog.String("path", path),
		slog.String("aggregate", aggregate),
		slog.Int("rows_scanned", scanned),
		slog.Int("rows_matched", matched),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLookupError logs a lookup that could not complete.
func LogLookupError(logger *slog.Logger, path string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("lookup failed",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// LogMemo logs a memoized symbol access.
func LogMemo(logger *slog.Logger, symbol string, hit bool) {
	if logger == nil {
		return
	}
	logger.Debug("symbol memo",
		slog.String("symbol", symbol),
		slog.Bool("hit", hit),
	)
}
