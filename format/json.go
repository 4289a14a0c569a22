package format

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/loadcfg/value"
)

func init() {
	register(jsonAdapter{})
}

// jsonAdapter reads and writes JSON. Parsing walks the token stream
// directly instead of unmarshaling into map[string]any, so key order
// survives the trip through the tree.
type jsonAdapter struct{}

func (jsonAdapter) Format() Format { return JSON }

func (jsonAdapter) Parse(data []byte) (*value.Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Format: JSON, Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ParseError{Format: JSON, Err: ErrNotMapping}
	}

	tree, err := parseJSONObject(dec)
	if err != nil {
		return nil, &ParseError{Format: JSON, Err: err}
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Format: JSON, Err: errors.New("trailing data after document")}
	}
	return tree, nil
}

// parseJSONObject consumes tokens after an opening brace up to and
// including the matching closing brace.
func parseJSONObject(dec *json.Decoder) (*value.Map, error) {
	m := value.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Newf("object key is not a string: %v", keyTok)
		}
		v, err := parseJSONValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseJSONValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m, err := parseJSONObject(dec)
			if err != nil {
				return value.Value{}, err
			}
			return value.MapVal(m), nil
		case '[':
			var items []value.Value
			for dec.More() {
				item, err := parseJSONValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return value.Value{}, err
			}
			return value.ListVal(items), nil
		default:
			return value.Value{}, errors.Newf("unexpected delimiter %q", t)
		}
	case string:
		return value.StringVal(t), nil
	case json.Number:
		return parseJSONNumber(t)
	case bool:
		return value.BoolVal(t), nil
	case nil:
		return value.NullVal(), nil
	default:
		return value.Value{}, errors.Newf("unexpected token %v", tok)
	}
}

// parseJSONNumber maps a JSON number to an integer when its literal has no
// fractional or exponent part, and a float otherwise.
func parseJSONNumber(n json.Number) (value.Value, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		i, err := n.Int64()
		if err == nil {
			return value.IntVal(i), nil
		}
		// Out of int64 range; fall back to float.
	}
	f, err := n.Float64()
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "number %q", n.String())
	}
	return value.FloatVal(f), nil
}

func (jsonAdapter) Serialize(tree *value.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONMap(&buf, tree, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

const jsonIndent = "  "

func writeJSONMap(buf *bytes.Buffer, m *value.Map, depth int) error {
	if m.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	inner := strings.Repeat(jsonIndent, depth+1)
	for i, key := range m.Keys() {
		v, _ := m.Get(key)
		buf.WriteString(inner)
		buf.Write(jsonQuote(key))
		buf.WriteString(": ")
		if err := writeJSONValue(buf, v, depth+1); err != nil {
			return err
		}
		if i < m.Len()-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(jsonIndent, depth))
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v value.Value, depth int) error {
	switch v.Kind() {
	case value.KindNull:
		buf.WriteString("null")
	case value.KindString:
		buf.Write(jsonQuote(v.AsString()))
	case value.KindInt:
		buf.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case value.KindFloat:
		buf.WriteString(formatFloat(v.AsFloat()))
	case value.KindBool:
		buf.WriteString(strconv.FormatBool(v.AsBool()))
	case value.KindList:
		items := v.AsList()
		if len(items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		inner := strings.Repeat(jsonIndent, depth+1)
		for i, item := range items {
			buf.WriteString(inner)
			if err := writeJSONValue(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte(']')
	case value.KindMap:
		return writeJSONMap(buf, v.AsMap(), depth)
	default:
		return errors.Newf("cannot serialize kind %s", v.Kind())
	}
	return nil
}

// jsonQuote delegates string escaping to encoding/json.
func jsonQuote(s string) []byte {
	out, err := json.Marshal(s)
	if err != nil {
		// Marshaling a string cannot fail; keep the output well formed anyway.
		return []byte(`""`)
	}
	return out
}

// formatFloat renders a float so it reparses as a float: integral values
// keep a trailing ".0" instead of collapsing to an integer literal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eENI") {
		s += ".0"
	}
	return s
}
