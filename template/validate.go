package template

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/loadcfg/value"
)

// FoundMissing is the Found value reported for absent required fields.
const FoundMissing = "missing"

// Mismatch is a single field-level validation failure.
type Mismatch struct {
	// Path is the dot-joined path of the field ("database.port").
	Path string `json:"path"`
	// Expected is the declared type name.
	Expected string `json:"expected"`
	// Found is the actual type name, or FoundMissing when the field is
	// absent.
	Found string `json:"found"`
}

func (m Mismatch) String() string {
	if m.Found == FoundMissing {
		return fmt.Sprintf("field %q: expected %s, missing", m.Path, m.Expected)
	}
	return fmt.Sprintf("field %q: expected %s, found %s", m.Path, m.Expected, m.Found)
}

// ConfigValidationError aggregates every mismatch found in one validation
// pass, so the caller sees the complete list of problems at once.
type ConfigValidationError struct {
	// Template is the name of the template validated against.
	Template string `json:"template"`
	// Mismatches holds the failures in declaration order.
	Mismatches []Mismatch `json:"mismatches"`
}

func (e *ConfigValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration does not match template %q: %d mismatch(es)",
		e.Template, len(e.Mismatches))
	for _, m := range e.Mismatches {
		sb.WriteString("\n  - ")
		sb.WriteString(m.String())
	}
	return sb.String()
}

// Validate walks tree against the template and returns nil when every
// declared field is present with a matching type. Otherwise it returns a
// *ConfigValidationError listing all mismatches found in a single pass.
//
// Rules, in declaration order per field:
//   - absent fields are reported with Found = FoundMissing;
//   - primitive fields must hold the declared kind, except that a float
//     field accepts an integer value (widening); an integer field does
//     not accept a float, even an integral one;
//   - nested template fields must hold a mapping; a non-mapping or absent
//     node is one mismatch for that path and its contents are not
//     descended into;
//   - fields present in the tree but not declared are ignored.
//
// Validation never mutates the tree.
func (t *Template) Validate(tree *value.Map) error {
	var mismatches []Mismatch
	collect(t, tree, "", &mismatches)
	if len(mismatches) == 0 {
		return nil
	}
	return &ConfigValidationError{Template: t.name, Mismatches: mismatches}
}

func collect(t *Template, tree *value.Map, prefix string, out *[]Mismatch) {
	for _, f := range t.fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		v, ok := tree.Get(f.Name)
		if !ok {
			*out = append(*out, Mismatch{Path: path, Expected: f.Type.String(), Found: FoundMissing})
			continue
		}
		if f.Type.IsNested() {
			if v.Kind() != value.KindMap {
				*out = append(*out, Mismatch{Path: path, Expected: f.Type.String(), Found: v.Kind().String()})
				continue
			}
			collect(f.Type.Nested(), v.AsMap(), path, out)
			continue
		}
		if !kindMatches(f.Type.Kind(), v.Kind()) {
			*out = append(*out, Mismatch{Path: path, Expected: f.Type.String(), Found: v.Kind().String()})
		}
	}
}

// kindMatches applies the numeric widening rule: integers satisfy float
// fields, but not the reverse.
func kindMatches(declared, actual value.Kind) bool {
	if declared == actual {
		return true
	}
	return declared == value.KindFloat && actual == value.KindInt
}
