package rowsource

import (
	"context"
	"fmt"
	"strings"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/registry"
)

// Spec identifies a row source and how to read it.
type Spec struct {
	// Path locates the source. A "scheme://" prefix selects the opener.
	Path string
	// Delimiter separates fields in delimited text. Zero means ','.
	Delimiter rune
	// HasHeader makes the first record the column names.
	HasHeader bool
}

// Iterator is a forward-only stream of rows. Next returns io.EOF after the
// last row. Close releases the source and may be called at any time.
type Iterator interface {
	Next() (Row, error)
	Close() error
}

// Opener opens row sources.
type Opener interface {
	Open(ctx context.Context, spec Spec) (Iterator, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, spec Spec) (Iterator, error)

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, spec Spec) (Iterator, error) {
	return f(ctx, spec)
}

// Mux routes a Spec to an opener by the scheme of its path. Paths without a
// scheme go to the default opener.
type Mux struct {
	schemes *registry.Registry[string, Opener]
	def     Opener
}

// NewMux creates a mux with def as the opener for scheme-less paths.
func NewMux(def Opener) *Mux {
	return &Mux{
		schemes: registry.New[string, Opener](),
		def:     def,
	}
}

// Default returns a mux that reads scheme-less and file:// paths as
// delimited text and sqlite:// paths as SQLite tables. Relative paths are
// resolved against baseDir.
func Default(baseDir string) *Mux {
	csv := &CSV{BaseDir: baseDir}
	m := NewMux(csv)
	m.Handle("file", csv)
	m.Handle("sqlite", &SQLite{BaseDir: baseDir})
	return m
}

// Handle registers o for paths starting with "<scheme>://".
func (m *Mux) Handle(scheme string, o Opener) {
	m.schemes.Register(scheme, o)
}

// Schemes returns the registered schemes in registration order.
func (m *Mux) Schemes() []string {
	return m.schemes.Keys()
}

// Open implements Opener.
func (m *Mux) Open(ctx context.Context, spec Spec) (Iterator, error) {
	scheme, _, ok := SplitScheme(spec.Path)
	if !ok {
		if m.def == nil {
			return nil, &abserrors.SourceError{Path: spec.Path, Op: "open", Err: abserrors.ErrUnknownScheme}
		}
		return m.def.Open(ctx, spec)
	}
	o, found := m.schemes.Get(scheme)
	if !found {
		return nil, &abserrors.SourceError{
			Path: spec.Path,
			Op:   "open",
			Err:  fmt.Errorf("%w: %q", abserrors.ErrUnknownScheme, scheme),
		}
	}
	return o.Open(ctx, spec)
}

// SplitScheme splits "scheme://rest". ok is false when path has no scheme.
func SplitScheme(path string) (scheme, rest string, ok bool) {
	scheme, rest, ok = strings.Cut(path, "://")
	if !ok || scheme == "" || strings.ContainsAny(scheme, `/\`) {
		return "", path, false
	}
	return scheme, rest, true
}
