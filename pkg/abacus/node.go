package abacus

import (
	"github.com/randalmurphal/abacus/pkg/abacus/lookup"
	"github.com/randalmurphal/abacus/pkg/abacus/types"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// Node is one element of an expression tree.
//
// The set of nodes is closed: Constant, Symbol, Infix, Unary, Typed and
// Lookup. Trees are read-only once built and may be resolved concurrently.
type Node interface {
	nodeKind() string
}

// Constant resolves to its value. A null constant resolves to Absent.
type Constant struct {
	Value value.Value
}

// Const builds a Constant from a native Go value. It panics if v has no
// Value form; see value.FromAny.
func Const(v any) Constant {
	return Constant{Value: value.MustFrom(v)}
}

// Symbol refers to a node defined in the resolver's SymbolRegistry.
type Symbol struct {
	Name string
	// Namespace is optional. A namespaced symbol never falls back to the
	// bare name.
	Namespace string
}

// Sym builds a Symbol without a namespace.
func Sym(name string) Symbol {
	return Symbol{Name: name}
}

// Key returns the registry key for the symbol: "namespace.name", or the
// bare name when there is no namespace.
func (s Symbol) Key() string {
	return symbolKey(s.Namespace, s.Name)
}

// Infix applies a binary operator to two sub-resolutions through the
// resolver's operator chain.
type Infix struct {
	Left     Node
	Operator string
	Right    Node
}

// Unary applies "!" or "-" to a sub-resolution.
type Unary struct {
	Operator string
	Operand  Node
}

// Typed coerces the resolution of Source through Type.
type Typed struct {
	Type   types.Type
	Source Node
}

// Lookup queries a delimited table, or any other row source, and reduces
// the matching rows with Aggregate.
type Lookup struct {
	Path string
	// Delimiter is a single character. Empty uses the resolver default.
	Delimiter string
	HasHeader bool
	Filters   []Filter
	// Columns selects the output: empty for the whole row, one name for
	// the raw cell, several for a dict in the given order.
	Columns         []string
	Aggregate       lookup.Aggregate
	AggregateColumn string
}

func (Constant) nodeKind() string { return "constant" }
func (Symbol) nodeKind() string   { return "symbol" }
func (Infix) nodeKind() string    { return "infix" }
func (Unary) nodeKind() string    { return "unary" }
func (Typed) nodeKind() string    { return "typed" }
func (Lookup) nodeKind() string   { return "lookup" }

// Kind returns the node variant name, such as "infix". It returns "nil" for
// a nil node.
func Kind(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.nodeKind()
}

// Filter restricts the rows a Lookup considers. Filter values are nodes, so
// a filter key may come from a symbol or another lookup.
type Filter interface {
	filterKind() string
}

// ExactFilter keeps rows whose Column cell equals the text form of Value.
type ExactFilter struct {
	Column string
	Value  Node
}

// RangeFilter keeps rows whose half-open band [MinColumn, MaxColumn)
// contains Value.
type RangeFilter struct {
	MinColumn string
	MaxColumn string
	Value     Node
}

// CompareFilter keeps rows where "<cell> Operator Value" is true under the
// resolver's operator chain, e.g. age > 30.
type CompareFilter struct {
	Column   string
	Operator string
	Value    Node
}

func (ExactFilter) filterKind() string   { return "exact" }
func (RangeFilter) filterKind() string   { return "range" }
func (CompareFilter) filterKind() string { return "compare" }

// concreteFilter dereferences pointer filters, so &ExactFilter{...} works
// like ExactFilter{...}.
func concreteFilter(f Filter) Filter {
	switch f := f.(type) {
	case *ExactFilter:
		return *f
	case *RangeFilter:
		return *f
	case *CompareFilter:
		return *f
	}
	return f
}

func filterValue(f Filter) Node {
	switch f := f.(type) {
	case ExactFilter:
		return f.Value
	case RangeFilter:
		return f.Value
	case CompareFilter:
		return f.Value
	}
	return nil
}
