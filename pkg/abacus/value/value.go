package value

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies which member of the Value union is populated.
type Kind uint8

const (
	// KindNull is the zero Kind. It stands in for an absent operand when a
	// value has to be passed somewhere that cannot carry a Result.
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindDict
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed value produced by resolution.
// The zero Value is Null. Values are immutable; lists and dicts must not be
// modified after they are wrapped.
type Value struct {
	kind Kind
	b    bool
	n    decimal.Decimal
	s    string
	list []Value
	dict *Dict
}

// Null is the null value.
var Null = Value{}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps a decimal.
func Number(d decimal.Decimal) Value {
	return Value{kind: KindNumber, n: d}
}

// Int wraps an integer.
func Int(i int64) Value {
	return Number(decimal.NewFromInt(i))
}

// Float wraps a float64. NaN and infinities cannot be represented and
// become Null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}
	return Number(decimal.NewFromFloat(f))
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// List wraps a list of values.
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// FromDict wraps an ordered dict. A nil dict becomes an empty one.
func FromDict(d *Dict) Value {
	if d == nil {
		d = NewDict()
	}
	return Value{kind: KindDict, dict: d}
}

// Kind returns the populated member.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsCollection reports whether v is a list or a dict.
func (v Value) IsCollection() bool { return v.kind == KindList || v.kind == KindDict }

// AsBool returns the boolean if v is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the decimal if v is a number. Numeric strings are not
// converted; use ToNumber for that.
func (v Value) AsNumber() (decimal.Decimal, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string if v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns the list items if v is a list.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsDict returns the dict if v is a dict.
func (v Value) AsDict() (*Dict, bool) { return v.dict, v.kind == KindDict }

// Items returns the members of a collection: list items in order, or dict
// values in key order. Scalars return nil.
func (v Value) Items() []Value {
	switch v.kind {
	case KindList:
		return v.list
	case KindDict:
		out := make([]Value, 0, v.dict.Len())
		for _, k := range v.dict.keys {
			out = append(out, v.dict.items[k])
		}
		return out
	default:
		return nil
	}
}

// String returns the text form of v. Numbers use their shortest decimal
// representation, collections are rendered as JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.n.String()
	case KindString:
		return v.s
	default:
		var sb strings.Builder
		writeJSON(&sb, v)
		return sb.String()
	}
}

// Repr returns v for use in error messages: strings are quoted so that
// "1" and 1 read differently.
func (v Value) Repr() string {
	if v.kind == KindString {
		var sb strings.Builder
		writeJSONString(&sb, v.s)
		return sb.String()
	}
	return v.String()
}

// IsTruthy returns whether a value is truthy.
// Null is false, bools return their value, empty strings are false,
// zero numbers are false, empty collections are false, everything else is true.
func IsTruthy(v Value) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return !v.n.IsZero()
	case KindString:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	case KindDict:
		return v.dict.Len() > 0
	default:
		return true
	}
}

// ToNumber converts a value to a decimal for arithmetic and numeric
// comparison. Numbers pass through and numeric strings ("42", " -1.5",
// "1e3") are parsed. Everything else reports false.
func ToNumber(v Value) (decimal.Decimal, bool) {
	switch v.kind {
	case KindNumber:
		return v.n, true
	case KindString:
		return ParseNumber(v.s)
	default:
		return decimal.Decimal{}, false
	}
}

// IsNumeric reports whether ToNumber would succeed.
func IsNumeric(v Value) bool {
	_, ok := ToNumber(v)
	return ok
}

// ParseNumber parses a numeric string. Surrounding whitespace and a leading
// plus sign are accepted.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" || !startsNumeric(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// startsNumeric rejects forms decimal accepts but a numeric string should
// not, such as a bare "." or "-".
func startsNumeric(s string) bool {
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if s[0] == '.' {
		return len(s) > 1 && s[1] >= '0' && s[1] <= '9'
	}
	return s[0] >= '0' && s[0] <= '9'
}
