// Package value defines the in-memory tree produced by parsing a
// configuration file: scalars, ordered sequences, and ordered mappings.
//
// Trees are built by format adapters (or by hand through the constructors)
// and are not mutated afterwards, so concurrent reads are safe.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the null/absent scalar.
	KindNull Kind = iota
	// KindString is a string scalar.
	KindString
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating-point scalar.
	KindFloat
	// KindBool is a boolean scalar.
	KindBool
	// KindList is an ordered sequence of values.
	KindList
	// KindMap is an ordered mapping from string keys to values.
	KindMap
)

// String returns the human-readable name of the kind. These names appear
// in validation mismatches and schema files, so they are stable.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindMap:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the kinds above. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	list []Value
	m    *Map
}

// NullVal returns the null value.
func NullVal() Value { return Value{kind: KindNull} }

// StringVal returns a string value.
func StringVal(s string) Value { return Value{kind: KindString, str: s} }

// IntVal returns an integer value.
func IntVal(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatVal returns a float value.
func FloatVal(f float64) Value { return Value{kind: KindFloat, f: f} }

// BoolVal returns a boolean value.
func BoolVal(b bool) Value { return Value{kind: KindBool, b: b} }

// ListVal returns a sequence value holding the given items.
func ListVal(items []Value) Value { return Value{kind: KindList, list: items} }

// MapVal returns a mapping value wrapping m. A nil m is treated as an
// empty mapping.
func MapVal(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v, or "" when v is not a string.
func (v Value) AsString() string { return v.str }

// AsInt returns the integer held by v, or 0 when v is not an integer.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the numeric value of v as a float64. Integer values are
// widened; non-numeric values yield 0.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// AsBool returns the boolean held by v, or false when v is not a boolean.
func (v Value) AsBool() bool { return v.b }

// AsList returns the items held by v, or nil when v is not a list.
func (v Value) AsList() []Value { return v.list }

// AsMap returns the mapping held by v, or nil when v is not a mapping.
func (v Value) AsMap() *Map { return v.m }

// String renders a display form of the value. Strings are returned
// unquoted; composites render in a compact JSON-like form.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.String())
		}
		sb.WriteByte(']')
		return sb.String()
	case KindMap:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, key := range v.m.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			item, _ := v.m.Get(key)
			fmt.Fprintf(&sb, "%s: %s", key, item.String())
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return "unknown"
	}
}

// Equal reports whether two values are structurally equal. Mapping keys
// are compared as a set; insertion order is preserved for serialization
// but is not part of tree identity. Integer and float values of the same
// magnitude are distinct kinds and compare unequal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindBool:
		return a.b == b.b
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
	case KindMap:
		return a.m.Equal(b.m)
	default:
		return false
	}
}
