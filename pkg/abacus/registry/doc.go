// Package registry provides a generic thread-safe registry that keeps
// insertion order.
//
// abacus uses it for the type table, the symbol table and the row source
// scheme table. Keys iterate in the order they were first registered, so
// listings such as "abacus types" are stable:
//
//	r := registry.New[string, int]()
//	r.Register("b", 2)
//	r.Register("a", 1)
//	r.Keys() // [b a]
//
// Use GetOrCreate for lazy initialization. The factory runs at most once per
// key even under concurrent access.
//
// Range iterates over a snapshot, so callbacks may mutate the registry.
package registry
