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

// MetricsRecorder records abacus metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolution records a top-level resolution and its outcome
	// ("present", "absent" or "error").
	RecordResolution(ctx context.Context, outcome string, duration time.Duration)

	// RecordLookup records a row source scan.
	RecordLookup(ctx context.Context, path string, scanned, matched int, duration time.Duration, err error)

	// RecordMemo records a memoized symbol access.
	RecordMemo(ctx context.Context, hit bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolutions       metric.Int64Counter
	resolutionLatency metric.Float64Histogram
	lookups           metric.Int64Counter
	lookupErrors      metric.Int64Counter
	lookupLatency     metric.Float64Histogram
	rowsScanned       metric.Int64Counter
	memoAccesses      metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("abacus")

	resolutions, err := meter.Int64Counter("abacus.resolutions",
		metric.WithDescription("Number of top-level resolutions"),
	)
	if err != nil {
		return nil, err
	}

	resolutionLatency, err := meter.Float64Histogram("abacus.resolution.latency_ms",
		metric.WithDescription("Resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("abacus.lookups",
		metric.WithDescription("Number of lookup scans"),
	)
	if err != nil {
		return nil, err
	}

	lookupErrors, err := meter.Int64Counter("abacus.lookup.errors",
		metric.WithDescription("Number of lookup scans that failed"),
	)
	if err != nil {
		return nil, err
	}

	lookupLatency, err := meter.Float64Histogram("abacus.lookup.latency_ms",
		metric.WithDescription("Lookup scan latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rowsScanned, err := meter.Int64Counter("abacus.lookup.rows_scanned",
		metric.WithDescription("Rows read from row sources"),
	)
	if err != nil {
		return nil, err
	}

	memoAccesses, err := meter.Int64Counter("abacus.memo.accesses",
		metric.WithDescription("Memoized symbol accesses"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolutions:       resolutions,
		resolutionLatency: resolutionLatency,
		lookups:           lookups,
		lookupErrors:      lookupErrors,
		lookupLatency:     lookupLatency,
		rowsScanned:       rowsScanned,
		memoAccesses:      memoAccesses,
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

// RecordResolution records a resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.resolutions.Add(ctx, 1, attrs)
	m.resolutionLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordLookup records a lookup scan.
func (m *otelMetrics) RecordLookup(ctx context.Context, path string, scanned, matched int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("path", path),
		attribute.Bool("matched", matched > 0),
	)
	m.lookups.Add(ctx, 1, attrs)
	m.lookupLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.rowsScanned.Add(ctx, int64(scanned), metric.WithAttributes(attribute.String("path", path)))

	if err != nil {
		m.lookupErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
	}
}

// RecordMemo records a memo access.
func (m *otelMetrics) RecordMemo(ctx context.Context, hit bool) {
	m.memoAccesses.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}
