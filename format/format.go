// Package format converts between configuration file syntaxes and the
// value tree. Each supported syntax has one Adapter; adding a syntax means
// adding an adapter file that registers itself, without touching the
// validation or generation logic.
package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/loadcfg/value"
)

// Format identifies a configuration file syntax.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	INI  Format = "ini"
)

// Ext returns the canonical file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Sentinel errors for adapter operations.
var (
	// ErrUnknownFormat indicates a format no adapter handles.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrNotMapping indicates a document whose top level is not a mapping.
	ErrNotMapping = errors.New("top-level value must be a mapping")

	// ErrUnsupportedValue indicates a value the target syntax cannot
	// represent (e.g. a sequence in INI).
	ErrUnsupportedValue = errors.New("value not representable in target format")
)

// ParseError wraps a syntax error from an underlying parsing library with
// the format that produced it.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Adapter converts between raw file bytes and the value tree. Adapters are
// stateless and safe for concurrent use.
type Adapter interface {
	// Format returns the syntax this adapter handles.
	Format() Format

	// Parse converts raw bytes into a value tree. It returns a *ParseError
	// on malformed input or a non-mapping top level.
	Parse(data []byte) (*value.Map, error)

	// Serialize converts a value tree into syntax-specific text. Within
	// the subset of value kinds the syntax supports, Parse(Serialize(t))
	// is structurally equal to t.
	Serialize(tree *value.Map) ([]byte, error)
}

var adapters = map[Format]Adapter{}

// register installs an adapter. Called from adapter file init functions.
func register(a Adapter) {
	adapters[a.Format()] = a
}

// For returns the adapter for a format.
func For(f Format) (Adapter, error) {
	a, ok := adapters[f]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (supported: %s)", f, supported())
	}
	return a, nil
}

// Formats returns all registered formats in stable order.
func Formats() []Format {
	fs := make([]Format, 0, len(adapters))
	for f := range adapters {
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	return fs
}

// FromExtension derives the format from a file path's extension.
// Recognized: .json, .yaml, .yml, .toml, .ini, .cfg.
func FromExtension(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	case "ini", "cfg":
		return INI, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "extension %q of %s", ext, path)
	}
}

func supported() string {
	fs := Formats()
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
