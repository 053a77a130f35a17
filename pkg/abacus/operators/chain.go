package operators

import (
	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// Overloader evaluates one family of binary operators.
//
// An absent operand is passed as value.Null. Overloaders that return Absent
// make the whole infix expression Absent.
type Overloader interface {
	Supports(left, right value.Value, op string) bool
	Evaluate(left, right value.Value, op string) value.Result
}

// UnaryOverloader evaluates one family of unary operators.
type UnaryOverloader interface {
	Supports(operand value.Value, op string) bool
	Evaluate(operand value.Value, op string) value.Result
}

// Chain dispatches operators to the first overloader that supports them.
// A Chain is immutable after New and safe for concurrent use.
type Chain struct {
	binary []Overloader
	unary  []UnaryOverloader
}

// Option configures a Chain.
type Option func(*chainConfig)

type chainConfig struct {
	binary     []Overloader
	unary      []UnaryOverloader
	noDefaults bool
}

// WithOverloader adds a binary overloader ahead of the defaults, so it wins
// over any default that supports the same operands. Overloaders added
// earlier are consulted first.
func WithOverloader(o Overloader) Option {
	return func(c *chainConfig) {
		c.binary = append(c.binary, o)
	}
}

// WithUnaryOverloader adds a unary overloader ahead of the defaults.
func WithUnaryOverloader(o UnaryOverloader) Option {
	return func(c *chainConfig) {
		c.unary = append(c.unary, o)
	}
}

// WithoutDefaults leaves out the built-in overloaders.
func WithoutDefaults() Option {
	return func(c *chainConfig) {
		c.noDefaults = true
	}
}

// New creates a chain. Without options it holds, in order: Null, Binary,
// Comparison, Has, In, Logical and Intersects for binary operators, and
// Not and Negate for unary ones.
func New(opts ...Option) *Chain {
	cfg := &chainConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Chain{binary: cfg.binary, unary: cfg.unary}
	if !cfg.noDefaults {
		c.binary = append(c.binary, Defaults()...)
		c.unary = append(c.unary, UnaryDefaults()...)
	}
	return c
}

// Defaults returns the built-in binary overloaders in dispatch order.
func Defaults() []Overloader {
	return []Overloader{
		Null{},
		Binary{},
		Comparison{},
		Has{},
		In{},
		Logical{},
		Intersects{},
	}
}

// UnaryDefaults returns the built-in unary overloaders in dispatch order.
func UnaryDefaults() []UnaryOverloader {
	return []UnaryOverloader{Not{}, Negate{}}
}

// Supports reports whether any overloader accepts the operands.
func (c *Chain) Supports(left, right value.Value, op string) bool {
	for _, o := range c.binary {
		if o.Supports(left, right, op) {
			return true
		}
	}
	return false
}

// Evaluate applies op with the first overloader that supports the operands.
// When none does, the result is an *errors.OperatorError wrapping
// errors.ErrUnsupportedOperator.
func (c *Chain) Evaluate(left, right value.Value, op string) value.Result {
	for _, o := range c.binary {
		if o.Supports(left, right, op) {
			return o.Evaluate(left, right, op)
		}
	}
	return value.Err(&abserrors.OperatorError{
		Left:     left.Repr(),
		Operator: op,
		Right:    right.Repr(),
		Err:      abserrors.ErrUnsupportedOperator,
	})
}

// EvaluateUnary applies a unary op with the first overloader that supports
// the operand.
func (c *Chain) EvaluateUnary(operand value.Value, op string) value.Result {
	for _, o := range c.unary {
		if o.Supports(operand, op) {
			return o.Evaluate(operand, op)
		}
	}
	return value.Err(&abserrors.OperatorError{
		Operator: op,
		Right:    operand.Repr(),
		Err:      abserrors.ErrUnsupportedOperator,
	})
}
