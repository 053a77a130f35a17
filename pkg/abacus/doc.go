/*
Package abacus resolves small expression trees into values.

A tree is built from six node types:

	abacus.Constant{Value: v}                      // v itself; null is Absent
	abacus.Symbol{Name: "rate", Namespace: "q"}    // a node from the SymbolRegistry
	abacus.Infix{Left: a, Operator: "+", Right: b} // binary operator chain
	abacus.Unary{Operator: "!", Operand: a}        // "!" or "-"
	abacus.Typed{Type: types.Number{}, Source: a}  // lenient coercion
	abacus.Lookup{Path: "bands.csv", ...}          // streamed table query

A Resolver evaluates a tree into a value.Result, which is Present, Absent
or an error. Absent is not an error: a lookup with no matching rows, or the
coercion of "" or "null", resolves to Absent and composes onward.

# Quick Start

	symbols := abacus.NewSymbolRegistry()
	symbols.Define("turnover", abacus.Const(150000))
	symbols.Define("premium", abacus.Lookup{
	    Path:      "bands.csv",
	    HasHeader: true,
	    Filters: []abacus.Filter{
	        abacus.RangeFilter{MinColumn: "min", MaxColumn: "max", Value: abacus.Sym("turnover")},
	    },
	    Columns: []string{"premium"},
	})

	r := abacus.New(abacus.WithSymbols(symbols))
	res := r.ResolveSymbol(ctx, "", "premium")
	if v, ok := res.Value(); ok {
	    fmt.Println(v)
	}

# Absence

Each node decides what an absent child means. Infix passes absent operands
to the operator chain as null, where arithmetic over two nulls is Absent and
anything else with a null operand is handled by whichever overloader accepts
it. Unary and Typed nodes resolve to Absent when their operand is absent. A
Lookup resolves to Absent when any filter value is absent.

# Symbols and Memoization

Symbols are looked up by exact key, "namespace.name" or "name"; an unknown
symbol is Absent. By default the Resolver memoizes every symbol result,
errors included, so a symbol referenced many times resolves once. Use
WithMemoization(false) to turn this off, or ResetMemo between evaluations.

# Inspection

An inspect.Inspector receives annotations while a tree resolves: the label
of each evaluated node, symbol results, memo hits and misses, and type
coercions. Each key keeps its last write, so after a resolution the label
belongs to the root node.

	snap := inspect.NewSnapshot()
	r.Resolve(ctx, tree, abacus.UsingInspector(snap))

# Observability

Resolutions and lookups log through slog, and optionally record
OpenTelemetry spans (WithTracing) and metrics (WithMetrics).
*/
package abacus
