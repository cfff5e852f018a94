// Package value provides the concrete JSON value representation used by
// this module's own decoder and tests. Callers of the public jsonpath API
// are never required to use it: any map[string]any/[]any/string/float64/
// bool/nil tree accepted by encoding/json works too, just without the
// insertion-order guarantee Object provides for its own members.
package value

// Object is an insertion-order-preserving JSON object. Unlike
// map[string]any, iterating an Object always yields members in the order
// they were first set, matching the JSON source document.
type Object struct {
	keys []string
	idx  map[string]int
	vals []any
}

// NewObject returns a new, empty Object.
func NewObject() *Object {
	return &Object{idx: make(map[string]int)}
}

// Set assigns val to key, appending key to the end of the iteration order if
// it's not already present.
func (o *Object) Set(key string, val any) {
	if i, ok := o.idx[key]; ok {
		o.vals[i] = val
		return
	}
	o.idx[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
}

// Get returns the value stored for key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.idx[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// Len returns the number of members in o.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the member names of o in insertion order. The returned slice
// must not be mutated.
func (o *Object) Keys() []string {
	return o.keys
}

// Each calls fn for every member of o in insertion order, stopping early if
// fn returns false.
func (o *Object) Each(fn func(key string, val any) bool) {
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// Equal reports whether o and other have the same member set (key order is
// irrelevant) with deeply-equal values, per RFC 9535's object comparison
// rules.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i, k := range o.keys {
		ov, ok := other.Get(k)
		if !ok || !Equal(o.vals[i], ov) {
			return false
		}
	}
	return true
}

// Clone returns a deep-enough copy of o (members themselves are not
// deep-copied, matching the engine's read-only, borrowed-node contract).
func (o *Object) Clone() *Object {
	c := &Object{
		keys: append([]string(nil), o.keys...),
		vals: append([]any(nil), o.vals...),
		idx:  make(map[string]int, len(o.idx)),
	}
	for k, i := range o.idx {
		c.idx[k] = i
	}
	return c
}

// Equal reports whether a and b are equal per RFC 9535 comparison rules:
// numbers compare numerically, strings by code point, arrays by length and
// pairwise equality, objects by key set and pairwise equality ignoring
// order. Equal is used by the evaluator's "==" and "!=" operators.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64, float32, int, int64:
		af, _ := toFloat(av)
		bv, ok := toFloat(b)
		return ok && af == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := AsObject(b)
		return ok && av.Equal(bv)
	case map[string]any:
		bo := FromMap(av)
		switch bv := b.(type) {
		case *Object:
			return bo.Equal(bv)
		case map[string]any:
			return bo.Equal(FromMap(bv))
		default:
			return false
		}
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// FromMap builds an Object from a plain map[string]any, sorted by key for a
// deterministic (if not source-faithful) iteration order. See package
// exec's documentation for why this fallback exists.
func FromMap(m map[string]any) *Object {
	keys := mapKeysSorted(m)
	o := NewObject()
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}
