package definition

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/abacus/pkg/abacus"
	"github.com/randalmurphal/abacus/pkg/abacus/types"
)

// ErrMalformed indicates a document that does not have the expected shape.
var ErrMalformed = errors.New("malformed definition")

// Error locates a problem in a definition document.
type Error struct {
	// Path is the location within the document, e.g. "symbols[1].expr.lookup.filters[0]".
	Path string
	Line int
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("definition %s (line %d): %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("definition %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Document is a decoded definition: the symbols it defines and the
// symbols it asks to have resolved.
type Document struct {
	Symbols *abacus.SymbolRegistry
	// Outputs lists the symbols to resolve, in document order. When the
	// document has no outputs section, every symbol is an output.
	Outputs []abacus.Symbol
}

// Option configures decoding.
type Option func(*decoder)

// WithTypes resolves typed nodes against reg instead of types.NewRegistry().
func WithTypes(reg *types.Registry) Option {
	return func(d *decoder) {
		if reg != nil {
			d.types = reg
		}
	}
}

// ParseFile reads and decodes the document at path. YAML and JSON are both
// accepted, whatever the extension.
func ParseFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Parse(data, opts...)
}

// Parse decodes a YAML or JSON definition document.
//
// Example:
//
//	doc, err := definition.Parse([]byte(`
//	symbols:
//	  - name: total
//	    expr: {infix: {left: 1, op: "+", right: {symbol: rate}}}
//	  - name: rate
//	    expr: {typed: {type: number, source: "4.5%"}}
//	`))
func Parse(data []byte, opts ...Option) (*Document, error) {
	d := &decoder{types: types.NewRegistry()}
	for _, opt := range opts {
		opt(d)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &Error{Path: "$", Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &Error{Path: "$", Err: fmt.Errorf("%w: empty document", ErrMalformed)}
	}
	return d.document(root.Content[0])
}

// ParseSymbolRef splits "namespace.name" at its last dot. A reference
// without a dot has no namespace.
func ParseSymbolRef(ref string) abacus.Symbol {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "."); i >= 0 {
		return abacus.Symbol{Namespace: ref[:i], Name: ref[i+1:]}
	}
	return abacus.Symbol{Name: ref}
}
