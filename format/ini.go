package format

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"

	"github.com/thoreinstein/loadcfg/value"
)

func init() {
	register(iniAdapter{})
}

// iniAdapter reads and writes INI files via gopkg.in/ini.v1.
//
// INI carries strings only: every value loads as a string, and non-string
// scalars are coerced to their string form on serialization. This is a
// documented property of the format, not a defect. Nesting maps to
// sections; deeper nesting uses dotted section names ("a.b"). Sequences
// are not representable and fail serialization with ErrUnsupportedValue.
type iniAdapter struct{}

func (iniAdapter) Format() Format { return INI }

func (iniAdapter) Parse(data []byte) (*value.Map, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, &ParseError{Format: INI, Err: err}
	}

	tree := value.NewMap()
	for _, sec := range f.Sections() {
		target := tree
		if sec.Name() != ini.DefaultSection {
			target = ensureSection(tree, strings.Split(sec.Name(), "."))
		}
		for _, key := range sec.Keys() {
			target.Set(key.Name(), value.StringVal(key.Value()))
		}
	}
	return tree, nil
}

// ensureSection walks (and creates) nested maps for a dotted section path.
func ensureSection(tree *value.Map, path []string) *value.Map {
	cur := tree
	for _, seg := range path {
		v, ok := cur.Get(seg)
		if ok && v.Kind() == value.KindMap {
			cur = v.AsMap()
			continue
		}
		next := value.NewMap()
		cur.Set(seg, value.MapVal(next))
		cur = next
	}
	return cur
}

func (iniAdapter) Serialize(tree *value.Map) ([]byte, error) {
	f := ini.Empty()
	if err := fillINISection(f, "", tree); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "writing ini")
	}
	return buf.Bytes(), nil
}

func fillINISection(f *ini.File, name string, m *value.Map) error {
	var sec *ini.Section
	// Scalars first so they land in this section, then sub-maps as
	// (dotted) child sections.
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v.Kind() == value.KindMap {
			continue
		}
		s, err := iniString(v)
		if err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
		if sec == nil {
			sec = f.Section(name)
		}
		if _, err := sec.NewKey(key, s); err != nil {
			return errors.Wrapf(err, "key %q", key)
		}
	}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v.Kind() != value.KindMap {
			continue
		}
		child := key
		if name != "" {
			child = name + "." + key
		}
		// Materialize the section even when empty so it round-trips.
		f.Section(child)
		if err := fillINISection(f, child, v.AsMap()); err != nil {
			return err
		}
	}
	return nil
}

// iniString coerces a scalar to its INI string form.
func iniString(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindString:
		return v.AsString(), nil
	case value.KindInt:
		return strconv.FormatInt(v.AsInt(), 10), nil
	case value.KindFloat:
		return formatFloat(v.AsFloat()), nil
	case value.KindBool:
		return strconv.FormatBool(v.AsBool()), nil
	case value.KindNull:
		return "", nil
	default:
		return "", errors.Wrapf(ErrUnsupportedValue, "kind %s", v.Kind())
	}
}
