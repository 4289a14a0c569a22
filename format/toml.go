package format

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/loadcfg/value"
)

func init() {
	register(tomlAdapter{})
}

// tomlAdapter parses TOML with go-toml and writes documents itself.
// go-toml sorts table keys alphabetically when marshaling, which would
// destroy the declaration order generated configs rely on, so
// serialization walks the tree and emits key/value lines and [table]
// headers in tree order. String escaping is shared with the JSON adapter;
// a JSON string literal is a valid TOML basic string.
type tomlAdapter struct{}

func (tomlAdapter) Format() Format { return TOML }

func (tomlAdapter) Parse(data []byte) (*value.Map, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Format: TOML, Err: err}
	}
	tree, err := mapFromRaw(raw)
	if err != nil {
		return nil, &ParseError{Format: TOML, Err: err}
	}
	return tree, nil
}

// mapFromRaw converts a decoded map[string]any into a tree. Go map
// iteration order is random, so keys are sorted for deterministic trees;
// TOML document order is not recoverable from the decoded map.
func mapFromRaw(raw map[string]any) (*value.Map, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := value.NewMap()
	for _, k := range keys {
		v, err := valueFromRaw(raw[k])
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", k)
		}
		m.Set(k, v)
	}
	return m, nil
}

func valueFromRaw(raw any) (value.Value, error) {
	switch t := raw.(type) {
	case nil:
		return value.NullVal(), nil
	case string:
		return value.StringVal(t), nil
	case bool:
		return value.BoolVal(t), nil
	case int64:
		return value.IntVal(t), nil
	case int:
		return value.IntVal(int64(t)), nil
	case float64:
		return value.FloatVal(t), nil
	case []any:
		items := make([]value.Value, 0, len(t))
		for _, item := range t {
			v, err := valueFromRaw(item)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.ListVal(items), nil
	case []map[string]any:
		items := make([]value.Value, 0, len(t))
		for _, item := range t {
			m, err := mapFromRaw(item)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, value.MapVal(m))
		}
		return value.ListVal(items), nil
	case map[string]any:
		m, err := mapFromRaw(t)
		if err != nil {
			return value.Value{}, err
		}
		return value.MapVal(m), nil
	case fmt.Stringer:
		// Dates and times load as their text form.
		return value.StringVal(t.String()), nil
	default:
		return value.Value{}, errors.Newf("unsupported value type %T", raw)
	}
}

func (tomlAdapter) Serialize(tree *value.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTOMLTable(&buf, tree, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeTOMLTable emits the scalar and array entries of a table first, then
// its sub-tables, each introduced by a [dotted.path] header.
func writeTOMLTable(buf *bytes.Buffer, m *value.Map, path []string) error {
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v.Kind() == value.KindMap {
			continue
		}
		buf.WriteString(tomlKey(key))
		buf.WriteString(" = ")
		if err := writeTOMLValue(buf, v); err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
		buf.WriteByte('\n')
	}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v.Kind() != value.KindMap {
			continue
		}
		sub := append(append([]string{}, path...), key)
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteByte('[')
		for i, seg := range sub {
			if i > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(tomlKey(seg))
		}
		buf.WriteString("]\n")
		if err := writeTOMLTable(buf, v.AsMap(), sub); err != nil {
			return err
		}
	}
	return nil
}

// writeTOMLValue emits a scalar or inline value. Mappings inside arrays
// use inline-table syntax.
func writeTOMLValue(buf *bytes.Buffer, v value.Value) error {
	switch v.Kind() {
	case value.KindString:
		buf.Write(jsonQuote(v.AsString()))
	case value.KindInt:
		buf.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case value.KindFloat:
		buf.WriteString(formatFloat(v.AsFloat()))
	case value.KindBool:
		buf.WriteString(strconv.FormatBool(v.AsBool()))
	case value.KindList:
		buf.WriteByte('[')
		for i, item := range v.AsList() {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeTOMLValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case value.KindMap:
		buf.WriteByte('{')
		m := v.AsMap()
		for i, key := range m.Keys() {
			if i > 0 {
				buf.WriteString(", ")
			}
			item, _ := m.Get(key)
			buf.WriteString(tomlKey(key))
			buf.WriteString(" = ")
			if err := writeTOMLValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		// TOML has no null.
		return errors.Wrapf(ErrUnsupportedValue, "kind %s", v.Kind())
	}
	return nil
}

var tomlBareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func tomlKey(key string) string {
	if tomlBareKey.MatchString(key) {
		return key
	}
	return string(jsonQuote(key))
}
