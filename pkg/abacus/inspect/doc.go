// Package inspect provides the annotation side channel for resolutions.
//
// Evaluators call Annotate with a key and a value: the label of the node
// being evaluated, the type coercion that happened, whether a symbol came
// from the memo cache, or the resolved value. Annotations never change what
// a node resolves to.
//
// Snapshot keeps the last write per key, which is what a caller inspecting
// one resolution wants:
//
//	snap := inspect.NewSnapshot()
//	res := resolver.Resolve(ctx, node, abacus.WithInspector(snap))
//	label, _ := snap.Get(inspect.KeyLabel)
//
// Tee, Logger and Span route the same annotations to several sinks, slog
// or an OpenTelemetry span.
package inspect
