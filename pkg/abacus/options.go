package abacus

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/abacus/pkg/abacus/inspect"
	"github.com/randalmurphal/abacus/pkg/abacus/lookup"
	"github.com/randalmurphal/abacus/pkg/abacus/observability"
	"github.com/randalmurphal/abacus/pkg/abacus/operators"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithSymbols sets the registry Symbol nodes resolve against. Without one,
// resolving a Symbol is an error.
func WithSymbols(symbols *SymbolRegistry) Option {
	return func(r *Resolver) {
		r.symbols = symbols
	}
}

// WithOperators replaces the default operator chain.
//
// Example:
//
//	chain := operators.New(operators.WithOverloader(concat{}))
//	r := abacus.New(abacus.WithOperators(chain))
func WithOperators(chain *operators.Chain) Option {
	return func(r *Resolver) {
		if chain != nil {
			r.operators = chain
		}
	}
}

// WithRowSources sets the opener Lookup nodes read through.
// Default: rowsource.Default("") (CSV files relative to the working
// directory, plus sqlite:// tables).
//
// Passing nil leaves lookups without a row source; resolving one is then
// an error.
func WithRowSources(opener rowsource.Opener) Option {
	return func(r *Resolver) {
		r.opener = opener
	}
}

// WithLookupEngine sets the engine Lookup nodes run on. It takes precedence
// over WithRowSources, and the engine keeps its own logger and metrics.
func WithLookupEngine(engine *lookup.Engine) Option {
	return func(r *Resolver) {
		r.engine = engine
	}
}

// WithInspector sets the inspector every resolution annotates, unless a
// call supplies its own with UsingInspector.
func WithInspector(in inspect.Inspector) Option {
	return func(r *Resolver) {
		r.inspector = in
	}
}

// WithLogger sets the logger for resolution and scan records.
// Default: slog.Default(). Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithMemoization enables or disables the symbol memo cache.
// Default: enabled.
//
// A memoized symbol resolves once per Resolver until ResetMemo, so repeated
// references within one evaluation share the work.
func WithMemoization(enabled bool) Option {
	return func(r *Resolver) {
		r.memoize = enabled
	}
}

// WithDefaultDelimiter sets the delimiter for lookups that leave theirs
// empty. Default: ",".
func WithDefaultDelimiter(delimiter string) Option {
	return func(r *Resolver) {
		if delimiter != "" {
			r.delimiter = delimiter
		}
	}
}

// WithTimeout bounds every Resolve call. Lookups stop between rows once the
// deadline passes. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithTracing enables OpenTelemetry spans for resolutions and lookups.
// Default: disabled.
//
// Annotations made during a traced resolution are also recorded as
// attributes on its span.
func WithTracing(enabled bool) Option {
	return func(r *Resolver) {
		r.tracingEnabled = enabled
		if enabled {
			r.spans = observability.NewSpanManager()
		} else {
			r.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMetrics enables OpenTelemetry metrics for resolutions, lookups and
// memo accesses. Default: disabled.
func WithMetrics(enabled bool) Option {
	return func(r *Resolver) {
		if enabled {
			r.metrics = observability.NewMetricsRecorder()
		} else {
			r.metrics = observability.NoopMetrics{}
		}
	}
}

// WithSpanManager enables tracing through sm.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(r *Resolver) {
		if sm != nil {
			r.tracingEnabled = true
			r.spans = sm
		}
	}
}

// WithMetricsRecorder enables metrics through m.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// resolveConfig holds per-call settings.
type resolveConfig struct {
	inspector    inspect.Inspector
	resolutionID string
}

// ResolveOption configures a single Resolve call.
type ResolveOption func(*resolveConfig)

// UsingInspector annotates this call into in instead of the resolver's
// inspector.
//
// Example:
//
//	snap := inspect.NewSnapshot()
//	res := r.Resolve(ctx, node, abacus.UsingInspector(snap))
//	label, _ := snap.Get(inspect.KeyLabel)
func UsingInspector(in inspect.Inspector) ResolveOption {
	return func(c *resolveConfig) {
		c.inspector = in
	}
}

// UsingResolutionID sets the ID logged and traced for this call.
// Default: a random UUID.
func UsingResolutionID(id string) ResolveOption {
	return func(c *resolveConfig) {
		c.resolutionID = id
	}
}
