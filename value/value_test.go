package value

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindNull, "null"},
		{KindString, "string"},
		{KindInt, "integer"},
		{KindFloat, "float"},
		{KindBool, "boolean"},
		{KindList, "list"},
		{KindMap, "mapping"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	if got := StringVal("hi").AsString(); got != "hi" {
		t.Errorf("AsString() = %q, want %q", got, "hi")
	}
	if got := IntVal(42).AsInt(); got != 42 {
		t.Errorf("AsInt() = %d, want 42", got)
	}
	if got := FloatVal(2.5).AsFloat(); got != 2.5 {
		t.Errorf("AsFloat() = %v, want 2.5", got)
	}
	// Integers widen through AsFloat.
	if got := IntVal(7).AsFloat(); got != 7.0 {
		t.Errorf("IntVal(7).AsFloat() = %v, want 7", got)
	}
	if !BoolVal(true).AsBool() {
		t.Error("BoolVal(true).AsBool() = false")
	}
	if !NullVal().IsNull() {
		t.Error("NullVal().IsNull() = false")
	}
	var zero Value
	if !zero.IsNull() {
		t.Error("zero Value should be null")
	}
}

func TestValue_String(t *testing.T) {
	m := NewMap()
	m.Set("name", StringVal("Ann"))
	m.Set("age", IntVal(30))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", NullVal(), "null"},
		{"string", StringVal("x"), "x"},
		{"int", IntVal(-3), "-3"},
		{"float", FloatVal(1.5), "1.5"},
		{"bool", BoolVal(false), "false"},
		{"list", ListVal([]Value{IntVal(1), StringVal("a")}), "[1, a]"},
		{"map", MapVal(m), "{name: Ann, age: 30}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMap_SetPreservesOrder(t *testing.T) {
	m := NewMap()
	m.Set("b", IntVal(1))
	m.Set("a", IntVal(2))
	m.Set("c", IntVal(3))
	// Replacing an existing key keeps its position.
	m.Set("a", IntVal(20))

	want := []string{"b", "a", "c"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	v, ok := m.Get("a")
	if !ok || v.AsInt() != 20 {
		t.Errorf("Get(a) = %v, %v, want 20", v, ok)
	}
}

func TestMap_At(t *testing.T) {
	inner := NewMap()
	inner.Set("port", IntVal(5432))
	mid := NewMap()
	mid.Set("primary", MapVal(inner))
	root := NewMap()
	root.Set("database", MapVal(mid))
	root.Set("debug", BoolVal(true))

	tests := []struct {
		path   string
		wantOK bool
		want   Value
	}{
		{"database.primary.port", true, IntVal(5432)},
		{"debug", true, BoolVal(true)},
		{"database.primary", true, MapVal(inner)},
		{"database.replica.port", false, Value{}},
		{"debug.nested", false, Value{}},
		{"missing", false, Value{}},
		{"", false, Value{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := root.At(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("At(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && !Equal(got, tt.want) {
				t.Errorf("At(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMap_At_NilMap(t *testing.T) {
	var m *Map
	if _, ok := m.At("a"); ok {
		t.Error("At on nil map should report not found")
	}
	if m.Len() != 0 {
		t.Error("Len on nil map should be 0")
	}
}

func TestEqual(t *testing.T) {
	makeMap := func(pairs ...[2]any) *Map {
		m := NewMap()
		for _, p := range pairs {
			m.Set(p[0].(string), p[1].(Value))
		}
		return m
	}

	a := makeMap([2]any{"x", IntVal(1)}, [2]any{"y", StringVal("s")})
	b := makeMap([2]any{"y", StringVal("s")}, [2]any{"x", IntVal(1)})
	c := makeMap([2]any{"x", IntVal(1)})

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same scalars", IntVal(3), IntVal(3), true},
		{"int vs float distinct", IntVal(3), FloatVal(3), false},
		{"nulls", NullVal(), NullVal(), true},
		{"maps order-insensitive", MapVal(a), MapVal(b), true},
		{"maps key-set mismatch", MapVal(a), MapVal(c), false},
		{"lists ordered", ListVal([]Value{IntVal(1), IntVal(2)}), ListVal([]Value{IntVal(2), IntVal(1)}), false},
		{"lists equal", ListVal([]Value{IntVal(1)}), ListVal([]Value{IntVal(1)}), true},
		{"list length mismatch", ListVal([]Value{IntVal(1)}), ListVal(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
