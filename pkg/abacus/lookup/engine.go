package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/observability"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// Engine runs lookups against row sources. It holds no per-query state and
// is safe for concurrent use when its Opener is.
type Engine struct {
	opener  rowsource.Opener
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for scan records. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records scans with m.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSpanManager traces scans with sm.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(e *Engine) {
		if sm != nil {
			e.spans = sm
		}
	}
}

// New creates an engine reading rows through opener.
func New(opener rowsource.Opener, opts ...Option) *Engine {
	e := &Engine{
		opener:  opener,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type scanStats struct {
	scanned int
	matched int
}

// Execute streams the query's source once and reduces the matching rows.
//
// Zero matches are Absent for every aggregate. A missing source, a read
// failure, an operator error inside a Compare matcher, or cancellation of
// ctx is an error. ctx is checked before each row.
func (e *Engine) Execute(ctx context.Context, q Query) value.Result {
	q.Aggregate = q.Aggregate.orDefault()
	start := time.Now()

	ctx, span := e.spans.StartLookupSpan(ctx, q.Source.Path, string(q.Aggregate))
	stats, res := e.scan(ctx, q)
	duration := time.Since(start)

	e.spans.EndSpanWithError(span, res.Err())
	e.metrics.RecordLookup(ctx, q.Source.Path, stats.scanned, stats.matched, duration, res.Err())
	if res.IsErr() {
		observability.LogLookupError(e.logger, q.Source.Path, res.Err())
	} else {
		observability.LogLookupScan(e.logger, q.Source.Path, string(q.Aggregate),
			stats.scanned, stats.matched, float64(duration.Microseconds())/1000)
	}
	return res
}

func (e *Engine) scan(ctx context.Context, q Query) (scanStats, value.Result) {
	var stats scanStats

	aggregate, err := ParseAggregate(string(q.Aggregate))
	if err != nil {
		return stats, value.Err(&abserrors.LookupError{Path: q.Source.Path, Err: err})
	}
	q.Aggregate = aggregate
	column, err := q.aggregateColumn()
	if err != nil {
		return stats, value.Err(&abserrors.LookupError{Path: q.Source.Path, Err: err})
	}
	if e.opener == nil {
		return stats, value.Err(&abserrors.CollaboratorError{Node: "lookup", Collaborator: "row source"})
	}

	it, err := e.opener.Open(ctx, q.Source)
	if err != nil {
		return stats, value.Err(err)
	}
	defer it.Close()

	agg := newAggregator(q.Aggregate, column)
	for {
		if err := ctx.Err(); err != nil {
			return stats, value.Err(&abserrors.LookupError{Path: q.Source.Path, Err: err})
		}
		row, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, value.Err(err)
		}
		stats.scanned++

		ok, err := matchAll(row, q.Matchers)
		if err != nil {
			return stats, value.Err(err)
		}
		if !ok {
			continue
		}
		stats.matched++
		if agg.add(row) {
			break
		}
	}

	return stats, agg.result(projectColumns(q.Columns))
}
