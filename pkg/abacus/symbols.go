package abacus

import (
	"github.com/randalmurphal/abacus/pkg/abacus/registry"
)

// SymbolRegistry maps symbol names to the nodes they stand for.
//
// Namespaced symbols are stored under "namespace.name". A lookup checks only
// the exact key it is given; there is no fallback from a namespace to the
// bare name. Define before resolving: the registry is safe for concurrent
// reads, but a symbol redefined mid-resolution is seen by later references
// only.
type SymbolRegistry struct {
	entries *registry.Registry[string, Node]
}

// NewSymbolRegistry creates an empty registry.
func NewSymbolRegistry() *SymbolRegistry {
	return &SymbolRegistry{entries: registry.New[string, Node]()}
}

// Define binds name to n. Redefining a name replaces its node but keeps
// its original position in Names.
//
// A dotted name is the composite key itself: Define("quote.rate", n) and
// DefineIn("quote", "rate", n) bind the same symbol, and the later call
// replaces the earlier one.
func (s *SymbolRegistry) Define(name string, n Node) {
	s.entries.Register(name, n)
}

// DefineIn binds namespace.name to n. See Define for dotted names.
func (s *SymbolRegistry) DefineIn(namespace, name string, n Node) {
	s.entries.Register(symbolKey(namespace, name), n)
}

// Lookup returns the node bound to (namespace, name).
func (s *SymbolRegistry) Lookup(namespace, name string) (Node, bool) {
	return s.entries.Get(symbolKey(namespace, name))
}

// Has reports whether (namespace, name) is defined.
func (s *SymbolRegistry) Has(namespace, name string) bool {
	return s.entries.Has(symbolKey(namespace, name))
}

// Names returns the composite keys in definition order.
func (s *SymbolRegistry) Names() []string {
	return s.entries.Keys()
}

// Len returns the number of defined symbols.
func (s *SymbolRegistry) Len() int {
	return s.entries.Len()
}

// Clone returns an independent copy, so overrides can be applied without
// touching the original.
func (s *SymbolRegistry) Clone() *SymbolRegistry {
	return &SymbolRegistry{entries: s.entries.Clone()}
}

func symbolKey(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
