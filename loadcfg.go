// Package loadcfg loads structured configuration files (JSON, YAML, TOML,
// INI) into a value tree, exposes their contents through dotted-path
// access, and validates them against declared templates.
//
// # Loading
//
//	cfg, err := loadcfg.Load("config.yaml")
//	if err != nil {
//	    return err
//	}
//	host, err := cfg.String("database.host")
//
// Load picks the format from the file extension; LoadJSON, LoadYAML,
// LoadTOML and LoadINI force a specific adapter.
//
// # Validation
//
//	tmpl := template.Must(template.New("app",
//	    template.String("name"),
//	    template.Int("age"),
//	))
//	if err := cfg.Validate(tmpl); err != nil {
//	    // err lists every mismatch found in one pass
//	}
//
// # Generation
//
//	gen, err := tmpl.Generate(format.JSON)
//	if err == nil {
//	    err = gen.Save("") // writes config.json
//	}
package loadcfg

import (
	"fmt"

	"github.com/thoreinstein/loadcfg/format"
	"github.com/thoreinstein/loadcfg/pkg/fileutil"
	"github.com/thoreinstein/loadcfg/template"
	"github.com/thoreinstein/loadcfg/value"
)

// Config is a loaded configuration: an immutable value tree tagged with
// the format it was parsed from.
type Config struct {
	tree *value.Map
	fmt  format.Format
}

// Load reads a configuration file, picking the adapter from the file
// extension (.json, .yaml/.yml, .toml, .ini/.cfg).
func Load(path string) (*Config, error) {
	f, err := format.FromExtension(path)
	if err != nil {
		return nil, err
	}
	return load(path, f)
}

// LoadJSON reads a JSON configuration file.
func LoadJSON(path string) (*Config, error) { return load(path, format.JSON) }

// LoadYAML reads a YAML configuration file.
func LoadYAML(path string) (*Config, error) { return load(path, format.YAML) }

// LoadTOML reads a TOML configuration file.
func LoadTOML(path string) (*Config, error) { return load(path, format.TOML) }

// LoadINI reads an INI configuration file. Every INI value is a string;
// see the format package for the coercion rules.
func LoadINI(path string) (*Config, error) { return load(path, format.INI) }

func load(path string, f format.Format) (*Config, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, f)
}

// Parse builds a Config from raw bytes in the given format. Malformed
// input surfaces as a *format.ParseError.
func Parse(data []byte, f format.Format) (*Config, error) {
	a, err := format.For(f)
	if err != nil {
		return nil, err
	}
	tree, err := a.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Config{tree: tree, fmt: f}, nil
}

// Tree returns the underlying value tree.
func (c *Config) Tree() *value.Map { return c.tree }

// Format returns the format the configuration was parsed from.
func (c *Config) Format() format.Format { return c.fmt }

// Get resolves a dotted path and reports whether it exists.
func (c *Config) Get(path string) (value.Value, bool) {
	return c.tree.At(path)
}

// Validate checks the configuration against a template. It returns nil on
// success or a *template.ConfigValidationError listing every mismatch.
func (c *Config) Validate(t *template.Template) error {
	return t.Validate(c.tree)
}

// KeyError reports a failed typed lookup: the path was missing or held a
// value of a different kind.
type KeyError struct {
	// Path is the dotted path that was looked up.
	Path string
	// Want is the requested kind.
	Want value.Kind
	// Got is the kind found, meaningful only when Missing is false.
	Got value.Kind
	// Missing is true when no value exists at the path.
	Missing bool
}

func (e *KeyError) Error() string {
	if e.Missing {
		return fmt.Sprintf("key %q: not found", e.Path)
	}
	return fmt.Sprintf("key %q: want %s, got %s", e.Path, e.Want, e.Got)
}

// String returns the string at path.
func (c *Config) String(path string) (string, error) {
	v, err := c.lookup(path, value.KindString)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

// Int returns the integer at path.
func (c *Config) Int(path string) (int64, error) {
	v, err := c.lookup(path, value.KindInt)
	if err != nil {
		return 0, err
	}
	return v.AsInt(), nil
}

// Float returns the float at path. Integer values widen to float64.
func (c *Config) Float(path string) (float64, error) {
	v, ok := c.tree.At(path)
	if !ok {
		return 0, &KeyError{Path: path, Want: value.KindFloat, Missing: true}
	}
	if v.Kind() != value.KindFloat && v.Kind() != value.KindInt {
		return 0, &KeyError{Path: path, Want: value.KindFloat, Got: v.Kind()}
	}
	return v.AsFloat(), nil
}

// Bool returns the boolean at path.
func (c *Config) Bool(path string) (bool, error) {
	v, err := c.lookup(path, value.KindBool)
	if err != nil {
		return false, err
	}
	return v.AsBool(), nil
}

// Map returns the nested mapping at path.
func (c *Config) Map(path string) (*value.Map, error) {
	v, err := c.lookup(path, value.KindMap)
	if err != nil {
		return nil, err
	}
	return v.AsMap(), nil
}

// List returns the sequence at path.
func (c *Config) List(path string) ([]value.Value, error) {
	v, err := c.lookup(path, value.KindList)
	if err != nil {
		return nil, err
	}
	return v.AsList(), nil
}

func (c *Config) lookup(path string, want value.Kind) (value.Value, error) {
	v, ok := c.tree.At(path)
	if !ok {
		return value.Value{}, &KeyError{Path: path, Want: want, Missing: true}
	}
	if v.Kind() != want {
		return value.Value{}, &KeyError{Path: path, Want: want, Got: v.Kind()}
	}
	return v, nil
}
