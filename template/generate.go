package template

import (
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/loadcfg/format"
	"github.com/thoreinstein/loadcfg/pkg/fileutil"
	"github.com/thoreinstein/loadcfg/value"
)

// GeneratedConfig is an example configuration produced from a template,
// tagged with its target format.
type GeneratedConfig struct {
	tree *value.Map
	fmt  format.Format
}

// Generate produces an example configuration for the template in the given
// format. Each field receives its zero value ("" / 0 / 0.0 / false);
// nested templates become nested mappings. Declaration order is preserved
// so the output is stable across runs and readable next to the schema.
func (t *Template) Generate(f format.Format) (*GeneratedConfig, error) {
	// Resolve the adapter up front so an unknown format fails before any
	// tree is built.
	if _, err := format.For(f); err != nil {
		return nil, err
	}
	return &GeneratedConfig{tree: defaultTree(t), fmt: f}, nil
}

func defaultTree(t *Template) *value.Map {
	m := value.NewMap()
	for _, f := range t.fields {
		if f.Type.IsNested() {
			m.Set(f.Name, value.MapVal(defaultTree(f.Type.Nested())))
			continue
		}
		m.Set(f.Name, defaultValue(f.Type.Kind()))
	}
	return m
}

func defaultValue(k value.Kind) value.Value {
	switch k {
	case value.KindString:
		return value.StringVal("")
	case value.KindInt:
		return value.IntVal(0)
	case value.KindFloat:
		return value.FloatVal(0)
	case value.KindBool:
		return value.BoolVal(false)
	default:
		return value.NullVal()
	}
}

// Tree returns the generated value tree.
func (g *GeneratedConfig) Tree() *value.Map { return g.tree }

// Format returns the target format.
func (g *GeneratedConfig) Format() format.Format { return g.fmt }

// Render serializes the generated tree in the target format.
func (g *GeneratedConfig) Render() ([]byte, error) {
	a, err := format.For(g.fmt)
	if err != nil {
		return nil, err
	}
	return a.Serialize(g.tree)
}

// Save writes the rendered configuration to path atomically. When path is
// empty it writes "config.<ext>" in the current working directory.
// Filesystem errors surface wrapped with the destination path.
func (g *GeneratedConfig) Save(path string) error {
	if path == "" {
		path = "config." + g.fmt.Ext()
	}
	data, err := g.Render()
	if err != nil {
		return err
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(path, data, 0o644), "saving %s", path)
}
