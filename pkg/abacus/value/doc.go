/*
Package value defines the values that flow through an abacus resolution.

# Values

Value is a closed union of six kinds: null, bool, number, string, list and
dict. Numbers are decimals (github.com/shopspring/decimal), so "45%" becomes
exactly 0.45 and money sums do not drift. Dicts keep insertion order, which
lookup projections depend on.

	v := value.Int(42)
	s := value.String("45%")
	row := value.FromDict(value.DictOf(
	    []string{"name", "age"},
	    []value.Value{value.String("Alice"), value.String("30")},
	))

Native Go values convert with FromAny, and back with Value.Any.

# Results

Result is the three-way outcome of resolving anything:

	value.Ok(v)        // present
	value.Absent()     // a valid "no value", not an error
	value.Err(err)     // resolution could not proceed

Absent is not an error. A lookup that matches no rows, or a coercion of
an empty string, resolves to Absent and callers can keep composing.

# Comparison

Equal is strict (same kind, same content). LooseEqual is numeric-aware:

	value.LooseEqual(value.Int(1), value.String("1"))  // true
	value.Equal(value.Int(1), value.String("1"))       // false

Compare orders values numerically when both sides are numeric and
lexicographically otherwise.
*/
package value
