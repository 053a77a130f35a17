package value

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNull, "null"},
		{KindBool, "bool"},
		{KindNumber, "number"},
		{KindString, "string"},
		{KindList, "list"},
		{KindDict, "dict"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"empty string", String(""), false},
		{"non-empty string", String("x"), true},
		{"zero", Int(0), false},
		{"non-zero", Float(0.1), true},
		{"empty list", List(), false},
		{"list", List(Int(1)), true},
		{"empty dict", FromDict(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTruthy(tt.v))
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		want   string
		wantOK bool
	}{
		{"number", Int(42), "42", true},
		{"integer string", String("42"), "42", true},
		{"padded string", String(" -1.5 "), "-1.5", true},
		{"plus sign", String("+7"), "7", true},
		{"exponent", String("1e3"), "1000", true},
		{"leading dot", String(".5"), "0.5", true},
		{"empty", String(""), "", false},
		{"word", String("abc"), "", false},
		{"bare minus", String("-"), "", false},
		{"bare dot", String("."), "", false},
		{"percent", String("45%"), "", false},
		{"bool", Bool(true), "", false},
		{"null", Null, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.v)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestFloat_NonFiniteIsNull(t *testing.T) {
	zero := 0.0
	assert.True(t, Float(1/zero).IsNull())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same number different scale", Int(1), Number(decimal.RequireFromString("1.00")), true},
		{"number vs numeric string", Int(1), String("1"), false},
		{"strings", String("a"), String("a"), true},
		{"nulls", Null, Null, true},
		{"lists", List(Int(1), String("a")), List(Int(1), String("a")), true},
		{"lists different length", List(Int(1)), List(Int(1), Int(2)), false},
		{"dicts same order", FromDict(DictOf([]string{"a"}, []Value{Int(1)})), FromDict(DictOf([]string{"a"}, []Value{Int(1)})), true},
		{
			"dicts different order",
			FromDict(DictOf([]string{"a", "b"}, []Value{Int(1), Int(2)})),
			FromDict(DictOf([]string{"b", "a"}, []Value{Int(2), Int(1)})),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestLooseEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"number vs numeric string", Int(1), String("1"), true},
		{"numeric strings", String("1.0"), String("1"), true},
		{"different strings", String("a"), String("b"), false},
		{"bool vs truthy string", Bool(true), String("yes"), true},
		{"bool vs zero", Bool(false), Int(0), true},
		{"null vs empty string", Null, String(""), true},
		{"null vs value", Null, String("a"), false},
		{"list vs scalar", List(Int(1)), Int(1), false},
		{"lists loosely", List(Int(1)), List(String("1")), true},
		{
			"dicts ignore order",
			FromDict(DictOf([]string{"a", "b"}, []Value{Int(1), Int(2)})),
			FromDict(DictOf([]string{"b", "a"}, []Value{String("2"), Int(1)})),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseEqual(tt.a, tt.b))
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"numeric strings compare numerically", String("9"), String("10"), -1},
		{"number vs numeric string", Int(100000), String("100000"), 0},
		{"lexicographic fallback", String("apple"), String("banana"), -1},
		{"mixed falls back to text", String("10"), String("a"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestFromAny(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		assert.True(t, MustFrom(nil).IsNull())
		assert.Equal(t, "true", MustFrom(true).String())
		assert.Equal(t, "3", MustFrom(3).String())
		assert.Equal(t, "2.5", MustFrom(2.5).String())
		assert.Equal(t, "18446744073709551615", MustFrom(uint64(18446744073709551615)).String())
		assert.Equal(t, "12.3", MustFrom(json.Number("12.30")).String())
	})

	t.Run("map keys are sorted", func(t *testing.T) {
		v := MustFrom(map[string]any{"b": 1, "a": []any{"x", 2}})
		d, ok := v.AsDict()
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, d.Keys())
		assert.Equal(t, `{"a":["x",2],"b":1}`, v.String())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		require.Error(t, err)
	})

	t.Run("non-finite float", func(t *testing.T) {
		zero := 0.0
		_, err := FromAny(-1 / zero)
		require.Error(t, err)
	})
}

func TestParseJSON(t *testing.T) {
	t.Run("keeps object order", func(t *testing.T) {
		v, ok := ParseJSON(`{"z": 1, "a": [true, null, "s"], "m": 1.50}`)
		require.True(t, ok)
		d, _ := v.AsDict()
		assert.Equal(t, []string{"z", "a", "m"}, d.Keys())
		assert.Equal(t, `{"z":1,"a":[true,null,"s"],"m":1.5}`, v.String())
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		_, ok := ParseJSON(`[1] [2]`)
		assert.False(t, ok)
	})

	t.Run("rejects invalid", func(t *testing.T) {
		_, ok := ParseJSON(`{"a":`)
		assert.False(t, ok)
	})

	assert.True(t, LooksLikeJSON(" [1,2] "))
	assert.True(t, LooksLikeJSON(`{"a":1}`))
	assert.False(t, LooksLikeJSON("abc"))
}

func TestMarshalJSON(t *testing.T) {
	v := FromDict(DictOf(
		[]string{"name", "tags"},
		[]Value{String("a\"b"), List(Int(1), Bool(false))},
	))
	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a\"b","tags":[1,false]}`, string(b))
}

func TestResult(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		r := Ok(Int(1))
		v, ok := r.Value()
		assert.True(t, ok)
		assert.True(t, r.IsPresent())
		assert.Equal(t, "1", v.String())
		assert.Equal(t, "present", r.Outcome())
	})

	t.Run("absent", func(t *testing.T) {
		var zero Result
		assert.True(t, zero.IsAbsent())
		assert.True(t, Maybe(Null).IsAbsent())
		assert.True(t, Err(nil).IsAbsent())
		assert.Equal(t, "Absent", Absent().String())
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		r := Err(boom)
		assert.True(t, r.IsErr())
		assert.ErrorIs(t, r.Err(), boom)
		_, _, err := r.Unwrap()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("then skips non-present", func(t *testing.T) {
		called := false
		fn := func(v Value) Result {
			called = true
			return Ok(v)
		}
		Absent().Then(fn)
		Err(errors.New("x")).Then(fn)
		assert.False(t, called)

		r := Ok(Int(2)).Then(func(v Value) Result { return Ok(String(v.String() + "!")) })
		assert.Equal(t, "Present(2!)", r.String())
	})
}
