package value

// Dict is a string-keyed map that remembers insertion order.
// Lookup projections and JSON objects both rely on the order being stable.
type Dict struct {
	keys  []string
	items map[string]Value
}

// NewDict creates an empty dict.
func NewDict() *Dict {
	return &Dict{items: make(map[string]Value)}
}

// DictOf builds a dict from alternating key/value pairs in order.
func DictOf(keys []string, values []Value) *Dict {
	d := NewDict()
	for i, k := range keys {
		if i < len(values) {
			d.Set(k, values[i])
		}
	}
	return d
}

// Set stores v under key. Existing keys keep their position.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.items[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.items[key] = v
}

// Get returns the value for key and whether it exists.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return Null, false
	}
	v, ok := d.items[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (d *Dict) Range(fn func(key string, v Value) bool) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		if !fn(k, d.items[k]) {
			return
		}
	}
}
