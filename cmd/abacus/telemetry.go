package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/abacus/pkg/abacus/config"
)

// telemetry installs SDK tracer and meter providers for one command run.
// Finished spans are written as they end; metrics are collected once on
// shutdown. Both are reported as slog records on w.
type telemetry struct {
	logger *slog.Logger

	tracer     *sdktrace.TracerProvider
	prevTracer trace.TracerProvider

	meter     *sdkmetric.MeterProvider
	reader    *sdkmetric.ManualReader
	prevMeter metric.MeterProvider
}

func startTelemetry(w io.Writer, settings config.Settings) *telemetry {
	t := &telemetry{logger: slog.New(slog.NewTextHandler(w, nil))}
	if settings.Tracing {
		t.prevTracer = otel.GetTracerProvider()
		t.tracer = sdktrace.NewTracerProvider(sdktrace.WithSyncer(spanLogger{logger: t.logger}))
		otel.SetTracerProvider(t.tracer)
	}
	if settings.Metrics {
		t.prevMeter = otel.GetMeterProvider()
		t.reader = sdkmetric.NewManualReader()
		t.meter = sdkmetric.NewMeterProvider(sdkmetric.WithReader(t.reader))
		otel.SetMeterProvider(t.meter)
	}
	return t
}

// shutdown reports collected metrics, flushes both providers and restores
// the previous global providers.
func (t *telemetry) shutdown(ctx context.Context) error {
	var errs []error
	if t.meter != nil {
		var rm metricdata.ResourceMetrics
		if err := t.reader.Collect(ctx, &rm); err != nil {
			errs = append(errs, err)
		} else {
			logMetrics(t.logger, rm)
		}
		errs = append(errs, t.meter.Shutdown(ctx))
		otel.SetMeterProvider(t.prevMeter)
	}
	if t.tracer != nil {
		errs = append(errs, t.tracer.Shutdown(ctx))
		otel.SetTracerProvider(t.prevTracer)
	}
	return errors.Join(errs...)
}

// spanLogger is a span exporter that logs each span.
type spanLogger struct {
	logger *slog.Logger
}

func (e spanLogger) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		args := []any{
			slog.String("name", s.Name()),
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.String("span_id", s.SpanContext().SpanID().String()),
			slog.Float64("duration_ms", float64(s.EndTime().Sub(s.StartTime()).Microseconds())/1000),
			slog.String("status", s.Status().Code.String()),
		}
		if s.Parent().IsValid() {
			args = append(args, slog.String("parent_id", s.Parent().SpanID().String()))
		}
		args = append(args, attrArgs(s.Attributes())...)
		e.logger.Info("span", args...)
	}
	return nil
}

func (spanLogger) Shutdown(context.Context) error { return nil }

func logMetrics(logger *slog.Logger, rm metricdata.ResourceMetrics) {
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					args := append([]any{slog.String("name", m.Name), slog.Int64("value", dp.Value)},
						attrArgs(dp.Attributes.ToSlice())...)
					logger.Info("metric", args...)
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					args := append([]any{
						slog.String("name", m.Name),
						slog.Uint64("count", dp.Count),
						slog.Float64("sum", dp.Sum),
					}, attrArgs(dp.Attributes.ToSlice())...)
					logger.Info("metric", args...)
				}
			}
		}
	}
}

func attrArgs(attrs []attribute.KeyValue) []any {
	args := make([]any, 0, len(attrs))
	for _, kv := range attrs {
		args = append(args, slog.String(string(kv.Key), kv.Value.Emit()))
	}
	return args
}
