package types

import (
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// Type converts raw values into a declared shape.
//
// Coerce is lenient: it accepts loosely typed input such as "45%" for a
// number or "yes" for a boolean. Assert is strict: it accepts only the exact
// native kind, with null mapping to Absent. Neither returns a Present null.
type Type interface {
	// Name returns the type name as written in definitions, e.g. "list(number)".
	Name() string
	Coerce(v value.Value) value.Result
	Assert(v value.Value) value.Result
	// Compare reports whether two already-typed values are the same.
	Compare(a, b value.Value) bool
}

// Formatter renders a typed value for people.
type Formatter interface {
	Format(v value.Value) string
}

// Format renders v with t's Formatter when it has one, and v.String()
// otherwise.
func Format(t Type, v value.Value) string {
	if f, ok := t.(Formatter); ok {
		return f.Format(v)
	}
	return v.String()
}

// isNullToken reports the string forms that coerce to Absent for scalar types.
func isNullToken(s string) bool {
	return s == "" || s == "null"
}
