package abacus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/inspect"
	"github.com/randalmurphal/abacus/pkg/abacus/lookup"
	"github.com/randalmurphal/abacus/pkg/abacus/observability"
	"github.com/randalmurphal/abacus/pkg/abacus/operators"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// Resolver evaluates node trees against its collaborators.
//
// A Resolver is safe for concurrent use. Its registries should be fully
// defined before the first Resolve.
type Resolver struct {
	symbols   *SymbolRegistry
	operators *operators.Chain
	opener    rowsource.Opener
	engine    *lookup.Engine
	inspector inspect.Inspector
	logger    *slog.Logger
	memoize   bool
	memo      *memo
	delimiter string
	timeout   time.Duration

	tracingEnabled bool
	spans          observability.SpanManager
	metrics        observability.MetricsRecorder
}

// New creates a Resolver.
//
// Example:
//
//	symbols := abacus.NewSymbolRegistry()
//	symbols.Define("rate", abacus.Const("4.5%"))
//	r := abacus.New(abacus.WithSymbols(symbols))
//	res := r.Resolve(ctx, abacus.Typed{Type: types.Number{}, Source: abacus.Sym("rate")})
func New(opts ...Option) *Resolver {
	r := &Resolver{
		operators: operators.New(),
		opener:    rowsource.Default(""),
		logger:    slog.Default(),
		memoize:   true,
		delimiter: ",",
		spans:     observability.NoopSpanManager{},
		metrics:   observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.memoize {
		r.memo = newMemo()
	}
	if r.engine == nil {
		r.engine = lookup.New(r.opener,
			lookup.WithLogger(r.logger),
			lookup.WithMetrics(r.metrics),
			lookup.WithSpanManager(r.spans),
		)
	}
	return r
}

// Symbols returns the resolver's symbol registry, which may be nil.
func (r *Resolver) Symbols() *SymbolRegistry {
	return r.symbols
}

// Operators returns the operator chain.
func (r *Resolver) Operators() *operators.Chain {
	return r.operators
}

// ResetMemo forgets every memoized symbol result. Call it between
// evaluations whose symbols or row sources may have changed.
func (r *Resolver) ResetMemo() {
	if r.memo != nil {
		r.memo.reset()
	}
}

// Resolve evaluates n to a value, Absent or an error.
//
// Errors are returned inside the Result. Resolve panics only when n is nil
// or not one of the node types in this package.
func (r *Resolver) Resolve(ctx context.Context, n Node, opts ...ResolveOption) (res value.Result) {
	cfg := resolveConfig{inspector: r.inspector}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := cfg.resolutionID
	if id == "" {
		id = uuid.NewString()
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	kind := Kind(n)
	observability.LogResolveStart(r.logger, id, kind)

	ctx, span := r.spans.StartResolveSpan(ctx, id, kind)
	defer func() {
		r.spans.EndSpanWithError(span, res.Err())
	}()

	in := cfg.inspector
	if r.tracingEnabled {
		in = inspect.Tee(in, inspect.Span(span))
	}
	if in == nil {
		in = inspect.Nop
	}

	rs := &resolution{
		Resolver:  r,
		inspector: in,
		logger:    observability.EnrichLogger(r.logger, id),
		active:    make(map[string]bool),
	}
	res = rs.resolve(ctx, n)

	duration := time.Since(start)
	durationMs := float64(duration.Microseconds()) / 1000
	r.metrics.RecordResolution(ctx, res.Outcome(), duration)
	if res.IsErr() {
		observability.LogResolveError(r.logger, id, res.Err(), durationMs)
	} else {
		observability.LogResolveComplete(r.logger, id, res.Outcome(), durationMs)
	}
	return res
}

// ResolveSymbol resolves the symbol (namespace, name).
func (r *Resolver) ResolveSymbol(ctx context.Context, namespace, name string, opts ...ResolveOption) value.Result {
	return r.Resolve(ctx, Symbol{Name: name, Namespace: namespace}, opts...)
}

// resolution is the state of one Resolve call. It is used by a single
// goroutine.
type resolution struct {
	*Resolver
	inspector inspect.Inspector
	logger    *slog.Logger
	// active holds the symbols being resolved, to stop self-reference.
	active map[string]bool
}

func (rs *resolution) resolve(ctx context.Context, n Node) value.Result {
	switch n := n.(type) {
	case Constant:
		return rs.constant(n)
	case Symbol:
		return rs.symbol(ctx, n)
	case Infix:
		return rs.infix(ctx, n)
	case Unary:
		return rs.unary(ctx, n)
	case Typed:
		return rs.typed(ctx, n)
	case Lookup:
		return rs.lookup(ctx, n)
	case *Constant:
		return rs.constant(*n)
	case *Symbol:
		return rs.symbol(ctx, *n)
	case *Infix:
		return rs.infix(ctx, *n)
	case *Unary:
		return rs.unary(ctx, *n)
	case *Typed:
		return rs.typed(ctx, *n)
	case *Lookup:
		return rs.lookup(ctx, *n)
	}
	panic(fmt.Sprintf("abacus: no evaluator for node %T", n))
}

func (rs *resolution) constant(n Constant) value.Result {
	rs.inspector.Annotate(inspect.KeyLabel, "static("+n.Value.Kind().String()+")")
	return value.Maybe(n.Value)
}

func (rs *resolution) symbol(ctx context.Context, n Symbol) value.Result {
	if rs.symbols == nil {
		return value.Err(&abserrors.CollaboratorError{Node: "symbol", Collaborator: "symbol registry"})
	}
	key := n.Key()

	if rs.memo != nil {
		if res, ok := rs.memo.get(key); ok {
			rs.memoAccess(ctx, key, true)
			rs.annotateSymbol(key, res)
			return res
		}
		rs.memoAccess(ctx, key, false)
	}

	if rs.active[key] {
		return value.Err(fmt.Errorf("%w: %s", abserrors.ErrSymbolCycle, key))
	}

	res := value.Absent()
	if node, ok := rs.symbols.Lookup(n.Namespace, n.Name); ok {
		rs.active[key] = true
		res = rs.resolve(ctx, node)
		delete(rs.active, key)
	}

	if rs.memo != nil && !interrupted(res) {
		rs.memo.put(key, res)
	}
	rs.annotateSymbol(key, res)
	return res
}

// interrupted reports whether res failed because the caller's context ended.
// Such results say nothing about the symbol and are not memoized.
func interrupted(res value.Result) bool {
	err := res.Err()
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (rs *resolution) memoAccess(ctx context.Context, key string, hit bool) {
	if hit {
		rs.inspector.Annotate(inspect.KeyMemo, inspect.MemoHit)
	} else {
		rs.inspector.Annotate(inspect.KeyMemo, inspect.MemoMiss)
	}
	rs.metrics.RecordMemo(ctx, hit)
	rs.spans.AddSpanEvent(ctx, "abacus.memo",
		attribute.String("abacus.symbol", key),
		attribute.Bool("abacus.hit", hit),
	)
	observability.LogMemo(rs.logger, key, hit)
}

func (rs *resolution) annotateSymbol(key string, res value.Result) {
	rs.inspector.Annotate(inspect.KeyLabel, key)
	if v, ok := res.Value(); ok {
		rs.inspector.Annotate(inspect.KeyResult, v.String())
	}
}

// infix hands absent operands to the chain as null, so only the overloaders
// decide what absence means. A null result is Absent.
func (rs *resolution) infix(ctx context.Context, n Infix) value.Result {
	left := rs.resolve(ctx, n.Left)
	if left.IsErr() {
		return left
	}
	right := rs.resolve(ctx, n.Right)
	if right.IsErr() {
		return right
	}

	res := rs.operators.Evaluate(left.OrNull(), right.OrNull(), n.Operator)
	rs.inspector.Annotate(inspect.KeyLabel, n.Operator)
	return res.Then(value.Maybe)
}

func (rs *resolution) unary(ctx context.Context, n Unary) value.Result {
	operand := rs.resolve(ctx, n.Operand)
	v, ok := operand.Value()
	if !ok {
		return operand
	}

	res := rs.operators.EvaluateUnary(v, n.Operator)
	rs.inspector.Annotate(inspect.KeyLabel, n.Operator)
	return res.Then(value.Maybe)
}

func (rs *resolution) typed(ctx context.Context, n Typed) value.Result {
	if n.Type == nil {
		return value.Err(&abserrors.CollaboratorError{Node: "typed", Collaborator: "type"})
	}
	source := rs.resolve(ctx, n.Source)
	v, ok := source.Value()
	if !ok {
		return source
	}

	res := n.Type.Coerce(v)
	rs.inspector.Annotate(inspect.KeyLabel, n.Type.Name())
	if out, ok := res.Value(); ok && !value.Equal(v, out) {
		rs.inspector.Annotate(inspect.KeyCoercion, v.Kind().String()+" -> "+out.Kind().String())
	}
	return res
}

// lookup resolves every filter value before the scan starts. An absent
// filter value leaves the lookup without a determinable answer.
func (rs *resolution) lookup(ctx context.Context, n Lookup) value.Result {
	delimiter := n.Delimiter
	if delimiter == "" {
		delimiter = rs.delimiter
	}
	if utf8.RuneCountInString(delimiter) != 1 {
		return value.Err(&abserrors.LookupError{
			Path: n.Path,
			Err:  fmt.Errorf("%w: %q", abserrors.ErrInvalidDelimiter, delimiter),
		})
	}
	sep, _ := utf8.DecodeRuneInString(delimiter)

	matchers := make([]lookup.Matcher, 0, len(n.Filters))
	for _, f := range n.Filters {
		f = concreteFilter(f)
		res := rs.resolve(ctx, filterValue(f))
		v, ok := res.Value()
		if !ok {
			return res
		}

		switch f := f.(type) {
		case ExactFilter:
			matchers = append(matchers, lookup.NewExact(f.Column, v))
		case RangeFilter:
			matchers = append(matchers, lookup.Range{MinColumn: f.MinColumn, MaxColumn: f.MaxColumn, Value: v})
		case CompareFilter:
			matchers = append(matchers, lookup.Compare{
				Column:   f.Column,
				Operator: f.Operator,
				Value:    v,
				Chain:    rs.operators,
			})
		}
	}

	res := rs.engine.Execute(ctx, lookup.Query{
		Source: rowsource.Spec{
			Path:      n.Path,
			Delimiter: sep,
			HasHeader: n.HasHeader,
		},
		Matchers:        matchers,
		Columns:         n.Columns,
		Aggregate:       n.Aggregate,
		AggregateColumn: n.AggregateColumn,
	})
	rs.inspector.Annotate(inspect.KeyLabel, "lookup("+n.Path+")")
	return res
}
