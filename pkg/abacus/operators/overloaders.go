package operators

import (
	"github.com/shopspring/decimal"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// Null makes arithmetic over two absent operands absent.
type Null struct{}

// Supports implements Overloader.
func (Null) Supports(left, right value.Value, op string) bool {
	return left.IsNull() && right.IsNull() && isArithmetic(op)
}

// Evaluate implements Overloader.
func (Null) Evaluate(value.Value, value.Value, string) value.Result {
	return value.Absent()
}

// Binary is decimal arithmetic over numbers and numeric strings.
// Division is exact to decimal.DivisionPrecision places.
type Binary struct{}

// Supports implements Overloader.
func (Binary) Supports(left, right value.Value, op string) bool {
	return isArithmetic(op) && value.IsNumeric(left) && value.IsNumeric(right)
}

// Evaluate implements Overloader.
func (Binary) Evaluate(left, right value.Value, op string) value.Result {
	l, _ := value.ToNumber(left)
	r, _ := value.ToNumber(right)

	var out decimal.Decimal
	switch op {
	case "+":
		out = l.Add(r)
	case "-":
		out = l.Sub(r)
	case "*":
		out = l.Mul(r)
	case "/":
		if r.IsZero() {
			return value.Err(&abserrors.OperatorError{
				Left:     left.Repr(),
				Operator: op,
				Right:    right.Repr(),
				Err:      abserrors.ErrDivisionByZero,
			})
		}
		out = l.Div(r)
	}
	return value.Ok(value.Number(out))
}

// Comparison handles equality and ordering.
//
// = and == are loose (1 == "1"), === and !== are strict. Ordering is numeric
// when both sides are numeric and lexicographic otherwise.
type Comparison struct{}

// Supports implements Overloader.
func (Comparison) Supports(_, _ value.Value, op string) bool {
	switch op {
	case "=", "==", "===", "!=", "!==", "<", "<=", ">", ">=":
		return true
	}
	return false
}

// Evaluate implements Overloader.
func (Comparison) Evaluate(left, right value.Value, op string) value.Result {
	var out bool
	switch op {
	case "=", "==":
		out = value.LooseEqual(left, right)
	case "!=":
		out = !value.LooseEqual(left, right)
	case "===":
		out = value.Equal(left, right)
	case "!==":
		out = !value.Equal(left, right)
	case "<":
		out = value.Compare(left, right) < 0
	case "<=":
		out = value.Compare(left, right) <= 0
	case ">":
		out = value.Compare(left, right) > 0
	case ">=":
		out = value.Compare(left, right) >= 0
	}
	return value.Ok(value.Bool(out))
}

// Has tests collection membership from the collection's side: the left
// collection contains the right scalar, or is a superset of the right
// collection.
type Has struct{}

// Supports implements Overloader.
func (Has) Supports(left, _ value.Value, op string) bool {
	return op == "has" && left.IsCollection()
}

// Evaluate implements Overloader.
func (Has) Evaluate(left, right value.Value, _ string) value.Result {
	return value.Ok(value.Bool(containsAll(left, right)))
}

// In tests membership from the member's side: the left scalar is in the
// right collection, or the left collection is a subset of it.
type In struct{}

// Supports implements Overloader.
func (In) Supports(_, right value.Value, op string) bool {
	return op == "in" && right.IsCollection()
}

// Evaluate implements Overloader.
func (In) Evaluate(left, right value.Value, _ string) value.Result {
	return value.Ok(value.Bool(containsAll(right, left)))
}

func containsAll(collection, v value.Value) bool {
	if !v.IsCollection() {
		return value.Contains(collection, v)
	}
	for _, item := range v.Items() {
		if !value.Contains(collection, item) {
			return false
		}
	}
	return true
}

// Logical handles &&, || and xor over two booleans.
type Logical struct{}

// Supports implements Overloader.
func (Logical) Supports(left, right value.Value, op string) bool {
	if op != "&&" && op != "||" && op != "xor" {
		return false
	}
	_, lok := left.AsBool()
	_, rok := right.AsBool()
	return lok && rok
}

// Evaluate implements Overloader.
func (Logical) Evaluate(left, right value.Value, op string) value.Result {
	l, _ := left.AsBool()
	r, _ := right.AsBool()
	switch op {
	case "&&":
		return value.Ok(value.Bool(l && r))
	case "||":
		return value.Ok(value.Bool(l || r))
	default:
		return value.Ok(value.Bool(l != r))
	}
}

// Intersects reports whether two collections share an element. A scalar
// operand is treated as a one-element collection.
type Intersects struct{}

// Supports implements Overloader.
func (Intersects) Supports(_, _ value.Value, op string) bool {
	return op == "intersects"
}

// Evaluate implements Overloader.
func (Intersects) Evaluate(left, right value.Value, _ string) value.Result {
	others := value.List(asItems(right)...)
	for _, item := range asItems(left) {
		if value.Contains(others, item) {
			return value.Ok(value.Bool(true))
		}
	}
	return value.Ok(value.Bool(false))
}

func asItems(v value.Value) []value.Value {
	if v.IsCollection() {
		return v.Items()
	}
	return []value.Value{v}
}

// Not is logical negation by truthiness.
type Not struct{}

// Supports implements UnaryOverloader.
func (Not) Supports(_ value.Value, op string) bool {
	return op == "!"
}

// Evaluate implements UnaryOverloader.
func (Not) Evaluate(operand value.Value, _ string) value.Result {
	return value.Ok(value.Bool(!value.IsTruthy(operand)))
}

// Negate is numeric negation. A non-numeric operand is an error.
type Negate struct{}

// Supports implements UnaryOverloader.
func (Negate) Supports(_ value.Value, op string) bool {
	return op == "-"
}

// Evaluate implements UnaryOverloader.
func (Negate) Evaluate(operand value.Value, op string) value.Result {
	n, ok := value.ToNumber(operand)
	if !ok {
		return value.Err(&abserrors.OperatorError{
			Operator: op,
			Right:    operand.Repr(),
			Err:      abserrors.ErrNotNumeric,
		})
	}
	return value.Ok(value.Number(n.Neg()))
}
