package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FromAny converts a native Go value into a Value.
//
// Accepts nil, bool, every integer and float kind, string, decimal.Decimal,
// json.Number, Value, []any, []string, []Value, map[string]any and *Dict.
// Maps are converted with their keys sorted, since Go maps carry no order.
func FromAny(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case *Dict:
		return FromDict(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Number(decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return Number(decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)), nil
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case decimal.Decimal:
		return Number(v), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return Null, fmt.Errorf("value: invalid number %q: %w", v, err)
		}
		return Number(d), nil
	case string:
		return String(v), nil
	case []Value:
		return List(v...), nil
	case []string:
		items := make([]Value, len(v))
		for i, s := range v {
			items[i] = String(s)
		}
		return List(items...), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			converted, err := FromAny(item)
			if err != nil {
				return Null, fmt.Errorf("value: list item %d: %w", i, err)
			}
			items[i] = converted
		}
		return List(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := NewDict()
		for _, k := range keys {
			converted, err := FromAny(v[k])
			if err != nil {
				return Null, fmt.Errorf("value: dict key %q: %w", k, err)
			}
			d.Set(k, converted)
		}
		return FromDict(d), nil
	default:
		return Null, fmt.Errorf("value: unsupported type %T", x)
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null, fmt.Errorf("value: non-finite number %v", f)
	}
	return Number(decimal.NewFromFloat(f)), nil
}

// MustFrom is FromAny for literals known to be valid. It panics on error.
func MustFrom(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Any converts v back into plain Go values: nil, bool, decimal.Decimal,
// string, []any and map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Any()
		}
		return out
	case KindDict:
		out := make(map[string]any, v.dict.Len())
		v.dict.Range(func(k string, item Value) bool {
			out[k] = item.Any()
			return true
		})
		return out
	default:
		return nil
	}
}

// MarshalJSON renders v as JSON, keeping dict key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	writeJSON(&sb, v)
	return []byte(sb.String()), nil
}

func writeJSON(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(v.n.String())
	case KindString:
		writeJSONString(sb, v.s)
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSON(sb, item)
		}
		sb.WriteByte(']')
	case KindDict:
		sb.WriteByte('{')
		i := 0
		v.dict.Range(func(k string, item Value) bool {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, k)
			sb.WriteByte(':')
			writeJSON(sb, item)
			i++
			return true
		})
		sb.WriteByte('}')
	}
}

// ParseJSON decodes a JSON document into a Value, keeping object key order
// and reading numbers as decimals. ok is false if s is not a single valid
// JSON document.
func ParseJSON(s string) (v Value, ok bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return Null, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null, false
	}
	return v, true
}

// LooksLikeJSON reports whether s is a JSON array or object.
func LooksLikeJSON(s string) bool {
	t := bytes.TrimSpace([]byte(s))
	if len(t) < 2 {
		return false
	}
	return (t[0] == '[' && t[len(t)-1] == ']') || (t[0] == '{' && t[len(t)-1] == '}')
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeJSON(dec)
				if err != nil {
					return Null, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return List(items...), nil
		case '{':
			d := NewDict()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null, fmt.Errorf("value: object key %v is not a string", keyTok)
				}
				item, err := decodeJSON(dec)
				if err != nil {
					return Null, err
				}
				d.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return FromDict(d), nil
		default:
			return Null, fmt.Errorf("value: unexpected delimiter %v", t)
		}
	default:
		return FromAny(t)
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	b, _ := json.Marshal(s)
	sb.Write(b)
}
