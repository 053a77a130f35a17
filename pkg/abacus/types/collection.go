package types

import (
	"fmt"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// List is a homogeneous list whose items are converted by Item.
type List struct {
	Item Type
}

// ListOf returns a list type over item.
func ListOf(item Type) List {
	return List{Item: item}
}

// Name implements Type.
func (l List) Name() string { return "list(" + l.Item.Name() + ")" }

// Coerce accepts a list, or a string holding a JSON array, and coerces every
// item. An item that coerces to Absent is an error.
func (l List) Coerce(v value.Value) value.Result {
	v = decodeJSONString(v)
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindList:
		return l.convert(v, l.Item.Coerce)
	}
	return value.Err(&abserrors.TransformError{Type: "list", Value: v.Repr()})
}

// Assert accepts only lists, asserting every item.
func (l List) Assert(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindList:
		return l.convert(v, l.Item.Assert)
	}
	return value.Err(&abserrors.AssertError{Type: "list", Value: v.Repr()})
}

func (l List) convert(v value.Value, fn func(value.Value) value.Result) value.Result {
	items, _ := v.AsList()
	out := make([]value.Value, len(items))
	for i, item := range items {
		got, err := collectItem(fn(item))
		if err != nil {
			return value.Err(fmt.Errorf("list item %d: %w", i, err))
		}
		out[i] = got
	}
	return value.Ok(value.List(out...))
}

// Compare reports whether both lists have equal length and pairwise equal
// items under Item.Compare.
func (l List) Compare(a, b value.Value) bool {
	as, aok := a.AsList()
	bs, bok := b.AsList()
	if !aok || !bok || len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !l.Item.Compare(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// Dict is a string-keyed map whose values are converted by Item.
type Dict struct {
	Item Type
}

// DictOf returns a dict type over item.
func DictOf(item Type) Dict {
	return Dict{Item: item}
}

// Name implements Type.
func (d Dict) Name() string { return "dict(" + d.Item.Name() + ")" }

// Coerce accepts a dict, or a string holding a JSON object, and coerces every
// value. Key order is kept.
func (d Dict) Coerce(v value.Value) value.Result {
	v = decodeJSONString(v)
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindDict:
		return d.convert(v, d.Item.Coerce)
	}
	return value.Err(&abserrors.TransformError{Type: "dict", Value: v.Repr()})
}

// Assert accepts only dicts, asserting every value.
func (d Dict) Assert(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindDict:
		return d.convert(v, d.Item.Assert)
	}
	return value.Err(&abserrors.AssertError{Type: "dict", Value: v.Repr()})
}

func (d Dict) convert(v value.Value, fn func(value.Value) value.Result) value.Result {
	in, _ := v.AsDict()
	out := value.NewDict()
	var err error
	in.Range(func(key string, item value.Value) bool {
		var got value.Value
		got, err = collectItem(fn(item))
		if err != nil {
			err = fmt.Errorf("dict item %q: %w", key, err)
			return false
		}
		out.Set(key, got)
		return true
	})
	if err != nil {
		return value.Err(err)
	}
	return value.Ok(value.FromDict(out))
}

// Compare reports whether both dicts hold the same keys with values equal
// under Item.Compare. Key order is ignored.
func (d Dict) Compare(a, b value.Value) bool {
	ad, aok := a.AsDict()
	bd, bok := b.AsDict()
	if !aok || !bok || ad.Len() != bd.Len() {
		return false
	}
	same := true
	ad.Range(func(key string, av value.Value) bool {
		bv, ok := bd.Get(key)
		same = ok && d.Item.Compare(av, bv)
		return same
	})
	return same
}

func collectItem(r value.Result) (value.Value, error) {
	v, ok, err := r.Unwrap()
	if err != nil {
		return value.Null, err
	}
	if !ok {
		return value.Null, abserrors.ErrCollectionItemAbsent
	}
	return v, nil
}

func decodeJSONString(v value.Value) value.Value {
	s, ok := v.AsString()
	if !ok || !value.LooksLikeJSON(s) {
		return v
	}
	if parsed, ok := value.ParseJSON(s); ok {
		return parsed
	}
	return v
}
