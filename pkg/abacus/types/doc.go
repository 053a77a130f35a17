/*
Package types converts raw values into declared types.

Every Type offers two conversions with different strictness:

	types.Number{}.Coerce(value.String("45%"))  // Present(0.45)
	types.Number{}.Assert(value.String("45%"))  // Error: expected [number]

Coerce is what TypedValue nodes use. It accepts numeric strings, percent
strings, boolean tokens such as "yes" and "off", and JSON strings for lists
and dicts. The strings "" and "null" coerce to Absent for every scalar type.

Assert never converts. It accepts only the exact kind, and null maps to
Absent.

List and Dict coerce each item with an inner type. Collections cannot hold
holes, so an item that coerces to Absent fails the whole conversion with
errors.ErrCollectionItemAbsent.

Types are found by name through a Registry:

	reg := types.NewRegistry()
	t, err := reg.Lookup("list(number)")
*/
package types
