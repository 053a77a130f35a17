// Package operators implements operator dispatch for infix and unary nodes.
//
// A Chain holds an ordered list of overloaders. For each operation the first
// overloader whose Supports returns true is used; if none does, the result is
// an error naming the unsupported (left, operator, right) triple.
//
// The default binary order is:
//
//	Null        absent + absent, for + - * /          -> Absent
//	Binary      numeric + - * /                       -> number
//	Comparison  = == === != !== < <= > >=             -> bool
//	Has         collection has item|collection        -> bool
//	In          item|collection in collection         -> bool
//	Logical     bool && || xor bool                   -> bool
//	Intersects  a intersects b                        -> bool
//
// Custom overloaders are consulted before the defaults:
//
//	chain := operators.New(operators.WithOverloader(myMoneyOverloader{}))
//	chain.Evaluate(value.Int(1), value.String("2"), "+") // Present(3)
package operators
