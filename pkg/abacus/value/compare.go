package value

import "strings"

// Equal reports strict equality: same kind and same content. Numbers compare
// by value, so 1 and 1.0 are equal, but 1 and "1" are not.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n.Equal(b.n)
	case KindString:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if a.dict.Len() != b.dict.Len() {
			return false
		}
		for i, k := range a.dict.keys {
			if b.dict.keys[i] != k || !Equal(a.dict.items[k], b.dict.items[k]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// LooseEqual reports equality after conversion:
//   - numbers and numeric strings compare numerically (1 == "1.0")
//   - a bool compares against the truthiness of the other side
//   - null equals any falsy value
//   - collections compare element-wise with LooseEqual
//   - anything else compares by its text form
func LooseEqual(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return !IsTruthy(a) && !IsTruthy(b)
	}
	if a.kind == KindBool || b.kind == KindBool {
		return IsTruthy(a) == IsTruthy(b)
	}
	if a.IsCollection() || b.IsCollection() {
		if a.kind != b.kind {
			return false
		}
		if a.kind == KindDict {
			if a.dict.Len() != b.dict.Len() {
				return false
			}
			for _, k := range a.dict.keys {
				bv, ok := b.dict.items[k]
				if !ok || !LooseEqual(a.dict.items[k], bv) {
					return false
				}
			}
			return true
		}
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !LooseEqual(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	}
	an, aok := ToNumber(a)
	bn, bok := ToNumber(b)
	if aok && bok {
		return an.Equal(bn)
	}
	return a.String() == b.String()
}

// Compare orders two values. When both are numeric (numbers or numeric
// strings) the comparison is numeric, otherwise it is lexicographic on the
// text forms. Returns -1, 0 or +1.
func Compare(a, b Value) int {
	an, aok := ToNumber(a)
	bn, bok := ToNumber(b)
	if aok && bok {
		return an.Cmp(bn)
	}
	return strings.Compare(a.String(), b.String())
}

// Contains reports whether any item of the collection c is loosely equal to v.
func Contains(c Value, v Value) bool {
	for _, item := range c.Items() {
		if LooseEqual(item, v) {
			return true
		}
	}
	return false
}
