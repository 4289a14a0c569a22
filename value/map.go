package value

import "strings"

// Map is an ordered mapping from string keys to values. Keys are unique;
// setting an existing key replaces the value in place, preserving the
// key's original position. Map is the explicit accessor type used instead
// of dynamic attribute interception: nested keys are addressed with
// dotted paths via At.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty mapping.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set binds key to v, appending the key when it is new.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value bound to key and whether the key exists.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// At resolves a dotted path ("a.b.c") through nested mappings and returns
// the value at the end of the path. Keys containing literal dots are not
// addressable through At; use Get segment by segment instead.
func (m *Map) At(path string) (Value, bool) {
	if m == nil || path == "" {
		return Value{}, false
	}
	segments := strings.Split(path, ".")
	cur := m
	for i, seg := range segments {
		v, ok := cur.Get(seg)
		if !ok {
			return Value{}, false
		}
		if i == len(segments)-1 {
			return v, true
		}
		if v.Kind() != KindMap {
			return Value{}, false
		}
		cur = v.AsMap()
	}
	return Value{}, false
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Equal reports whether two mappings bind the same key set to equal
// values, regardless of insertion order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, key := range m.Keys() {
		a, _ := m.Get(key)
		b, ok := other.Get(key)
		if !ok || !Equal(a, b) {
			return false
		}
	}
	return true
}
