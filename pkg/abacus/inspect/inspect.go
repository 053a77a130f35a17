package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common annotation keys written by the resolver.
const (
	KeyLabel    = "label"
	KeyResult   = "result"
	KeyMemo     = "memo"
	KeyCoercion = "coercion"
)

// Memo annotation values.
const (
	MemoMiss = "miss"
	MemoHit  = "hit"
)

// Inspector receives annotations from evaluators. It observes resolution and
// must not influence it.
type Inspector interface {
	Annotate(key string, value any)
}

// Func adapts a function to Inspector.
type Func func(key string, value any)

// Annotate implements Inspector.
func (f Func) Annotate(key string, value any) {
	f(key, value)
}

// Snapshot keeps the last value written for each key.
// It is safe for concurrent use.
type Snapshot struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]any
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{values: make(map[string]any)}
}

// Annotate implements Inspector. A later write to the same key replaces the
// earlier one.
func (s *Snapshot) Annotate(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value annotated under key.
func (s *Snapshot) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Keys returns annotated keys in first-write order.
func (s *Snapshot) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// All returns a copy of every annotation.
func (s *Snapshot) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Reset clears the snapshot.
func (s *Snapshot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
	s.values = make(map[string]any)
}

// Tee fans annotations out to several inspectors. Nil entries are skipped.
func Tee(inspectors ...Inspector) Inspector {
	out := make(tee, 0, len(inspectors))
	for _, in := range inspectors {
		if in != nil {
			out = append(out, in)
		}
	}
	return out
}

type tee []Inspector

func (t tee) Annotate(key string, value any) {
	for _, in := range t {
		in.Annotate(key, value)
	}
}

// Logger writes each annotation as a debug record.
func Logger(ctx context.Context, logger *slog.Logger) Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return Func(func(key string, value any) {
		logger.DebugContext(ctx, "annotate", slog.String("key", key), slog.Any("value", value))
	})
}

// Span records each annotation as an attribute on span, prefixed with
// "abacus.". Later writes to a key overwrite earlier ones, matching Snapshot.
func Span(span trace.Span) Inspector {
	return Func(func(key string, value any) {
		if span == nil || !span.IsRecording() {
			return
		}
		span.SetAttributes(attribute.String("abacus."+key, fmt.Sprint(value)))
	})
}

// Nop discards annotations.
var Nop Inspector = Func(func(string, any) {})
