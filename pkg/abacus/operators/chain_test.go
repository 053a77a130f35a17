package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

func list(xs ...any) value.Value {
	items := make([]value.Value, len(xs))
	for i, x := range xs {
		items[i] = value.MustFrom(x)
	}
	return value.List(items...)
}

func TestChain_Arithmetic(t *testing.T) {
	chain := New()

	tests := []struct {
		name        string
		left, right value.Value
		op          string
		want        string
	}{
		{"add", value.Int(2), value.Int(3), "+", "5"},
		{"subtract", value.Int(2), value.Int(3), "-", "-1"},
		{"multiply", value.Float(1.5), value.Int(4), "*", "6"},
		{"true division", value.Int(7), value.Int(2), "/", "3.5"},
		{"numeric strings", value.String("10"), value.String("0.5"), "*", "5"},
		{"decimal exactness", value.Float(0.1), value.Float(0.2), "+", "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chain.Evaluate(tt.left, tt.right, tt.op)
			v, ok := r.Value()
			require.True(t, ok, "result: %s", r)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestChain_DivisionByZero(t *testing.T) {
	r := New().Evaluate(value.Int(1), value.Int(0), "/")
	require.True(t, r.IsErr())
	assert.ErrorIs(t, r.Err(), abserrors.ErrDivisionByZero)
}

func TestChain_NullArithmetic(t *testing.T) {
	chain := New()

	for _, op := range []string{"+", "-", "*", "/"} {
		t.Run("both absent "+op, func(t *testing.T) {
			assert.True(t, chain.Evaluate(value.Null, value.Null, op).IsAbsent())
		})
	}

	t.Run("one absent is unsupported", func(t *testing.T) {
		r := chain.Evaluate(value.Null, value.Int(1), "+")
		assert.ErrorIs(t, r.Err(), abserrors.ErrUnsupportedOperator)
	})
}

func TestChain_Comparison(t *testing.T) {
	chain := New()

	tests := []struct {
		name        string
		left, right value.Value
		op          string
		want        bool
	}{
		{"loose equal across kinds", value.Int(1), value.String("1"), "==", true},
		{"single equals", value.Int(1), value.String("1"), "=", true},
		{"strict equal across kinds", value.Int(1), value.String("1"), "===", false},
		{"strict not equal", value.Int(1), value.String("1"), "!==", true},
		{"loose not equal", value.String("a"), value.String("b"), "!=", true},
		{"numeric less", value.String("9"), value.String("10"), "<", true},
		{"lexicographic less", value.String("b"), value.String("a"), "<", false},
		{"less or equal", value.Int(2), value.Int(2), "<=", true},
		{"greater", value.Int(3), value.String("2.5"), ">", true},
		{"greater or equal", value.Int(2), value.Int(3), ">=", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := chain.Evaluate(tt.left, tt.right, tt.op).Value()
			require.True(t, ok)
			assert.Equal(t, value.Bool(tt.want), v)
		})
	}
}

func TestChain_Collections(t *testing.T) {
	chain := New()

	tests := []struct {
		name        string
		left, right value.Value
		op          string
		want        bool
	}{
		{"has scalar", list("a", "b"), value.String("a"), "has", true},
		{"has missing scalar", list("a", "b"), value.String("c"), "has", false},
		{"has subset", list(1, 2, 3), list(3, 1), "has", true},
		{"has non-subset", list(1, 2), list(2, 4), "has", false},
		{"in scalar", value.Int(2), list("1", "2"), "in", true},
		{"in missing", value.String("x"), list("a"), "in", false},
		{"in subset", list("a"), list("a", "b"), "in", true},
		{"in non-subset", list("a", "z"), list("a", "b"), "in", false},
		{"intersects lists", list(1, 2), list(2, 3), "intersects", true},
		{"intersects disjoint", list(1, 2), list(3), "intersects", false},
		{"intersects scalars", value.String("a"), value.String("a"), "intersects", true},
		{"intersects scalar and list", value.Int(3), list(1, 2, 3), "intersects", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := chain.Evaluate(tt.left, tt.right, tt.op).Value()
			require.True(t, ok)
			assert.Equal(t, value.Bool(tt.want), v)
		})
	}

	t.Run("has on scalar is unsupported", func(t *testing.T) {
		r := chain.Evaluate(value.String("abc"), value.String("a"), "has")
		assert.ErrorIs(t, r.Err(), abserrors.ErrUnsupportedOperator)
	})
}

func TestChain_Logical(t *testing.T) {
	chain := New()
	tru, fls := value.Bool(true), value.Bool(false)

	tests := []struct {
		left, right value.Value
		op          string
		want        bool
	}{
		{tru, fls, "&&", false},
		{tru, tru, "&&", true},
		{tru, fls, "||", true},
		{fls, fls, "||", false},
		{tru, fls, "xor", true},
		{tru, tru, "xor", false},
	}

	for _, tt := range tests {
		t.Run(tt.left.String()+" "+tt.op+" "+tt.right.String(), func(t *testing.T) {
			v, _ := chain.Evaluate(tt.left, tt.right, tt.op).Value()
			assert.Equal(t, value.Bool(tt.want), v)
		})
	}

	t.Run("non-boolean operands", func(t *testing.T) {
		r := chain.Evaluate(value.Int(1), tru, "&&")
		var opErr *abserrors.OperatorError
		require.ErrorAs(t, r.Err(), &opErr)
		assert.Equal(t, "1", opErr.Left)
		assert.Equal(t, "&&", opErr.Operator)
		assert.Equal(t, "true", opErr.Right)
	})
}

func TestChain_Unary(t *testing.T) {
	chain := New()

	t.Run("not", func(t *testing.T) {
		v, _ := chain.EvaluateUnary(value.Bool(true), "!").Value()
		assert.Equal(t, value.Bool(false), v)
		v, _ = chain.EvaluateUnary(value.String(""), "!").Value()
		assert.Equal(t, value.Bool(true), v)
	})

	t.Run("negate", func(t *testing.T) {
		v, _ := chain.EvaluateUnary(value.String("2.5"), "-").Value()
		assert.Equal(t, "-2.5", v.String())
	})

	t.Run("negate non-numeric", func(t *testing.T) {
		r := chain.EvaluateUnary(value.String("abc"), "-")
		assert.ErrorIs(t, r.Err(), abserrors.ErrNotNumeric)
	})

	t.Run("unknown unary", func(t *testing.T) {
		r := chain.EvaluateUnary(value.Int(1), "~")
		assert.ErrorIs(t, r.Err(), abserrors.ErrUnsupportedOperator)
	})
}

type concat struct{}

func (concat) Supports(left, right value.Value, op string) bool {
	_, lok := left.AsString()
	_, rok := right.AsString()
	return op == "+" && lok && rok
}

func (concat) Evaluate(left, right value.Value, _ string) value.Result {
	return value.Ok(value.String(left.String() + right.String()))
}

func TestChain_Options(t *testing.T) {
	t.Run("custom overloader wins", func(t *testing.T) {
		chain := New(WithOverloader(concat{}))
		v, _ := chain.Evaluate(value.String("1"), value.String("2"), "+").Value()
		assert.Equal(t, value.String("12"), v)

		v, _ = chain.Evaluate(value.Int(1), value.Int(2), "+").Value()
		assert.Equal(t, "3", v.String())
	})

	t.Run("without defaults", func(t *testing.T) {
		chain := New(WithoutDefaults(), WithOverloader(concat{}))
		assert.True(t, chain.Supports(value.String("a"), value.String("b"), "+"))
		assert.False(t, chain.Supports(value.Int(1), value.Int(2), "+"))
		assert.True(t, chain.EvaluateUnary(value.Bool(true), "!").IsErr())
	})
}
