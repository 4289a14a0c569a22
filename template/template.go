// Package template declares configuration schemas and uses them to
// validate value trees and to generate example configuration files.
//
// A Template is an ordered set of (name, type) field declarations built
// once with [New] and immutable afterwards. Declaration order drives both
// validation reporting and the key order of generated files.
package template

import (
	"fmt"

	"github.com/thoreinstein/loadcfg/value"
)

// FieldType is the declared type of a template field: one of the
// primitive tags or a reference to a nested template.
type FieldType struct {
	kind   value.Kind
	nested *Template
}

// IsNested reports whether the field type references a nested template.
func (ft FieldType) IsNested() bool { return ft.nested != nil }

// Nested returns the referenced template, or nil for primitive types.
func (ft FieldType) Nested() *Template { return ft.nested }

// Kind returns the primitive kind; for nested types it is value.KindMap.
func (ft FieldType) Kind() value.Kind { return ft.kind }

// String returns the type name as used in mismatch reports and schema
// files: "string", "integer", "float", "boolean", or the nested template
// name for nested types.
func (ft FieldType) String() string {
	if ft.nested != nil {
		return ft.nested.Name()
	}
	return ft.kind.String()
}

// Field is a single (name, type) declaration.
type Field struct {
	Name string
	Type FieldType
}

// String declares a string field.
func String(name string) Field {
	return Field{Name: name, Type: FieldType{kind: value.KindString}}
}

// Int declares an integer field.
func Int(name string) Field {
	return Field{Name: name, Type: FieldType{kind: value.KindInt}}
}

// Float declares a float field. Integer values satisfy a float field;
// see Validate.
func Float(name string) Field {
	return Field{Name: name, Type: FieldType{kind: value.KindFloat}}
}

// Bool declares a boolean field.
func Bool(name string) Field {
	return Field{Name: name, Type: FieldType{kind: value.KindBool}}
}

// Nested declares a field whose value must be a mapping conforming to sub.
func Nested(name string, sub *Template) Field {
	return Field{Name: name, Type: FieldType{kind: value.KindMap, nested: sub}}
}

// DefinitionError reports a malformed template at definition time.
type DefinitionError struct {
	// Template is the name of the template being defined.
	Template string
	// Field is the offending field name, when one is involved.
	Field string
	// Reason describes what is wrong.
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("defining template %q: field %q: %s", e.Template, e.Field, e.Reason)
	}
	return fmt.Sprintf("defining template %q: %s", e.Template, e.Reason)
}

// Template is a named, ordered set of field declarations.
type Template struct {
	name   string
	fields []Field
}

// New builds a template from field declarations. It fails with a
// *DefinitionError when the name is empty, a field name is empty or
// duplicated, or a nested field references a nil or empty template.
//
// Because nested fields require already-constructed sub-templates and
// templates are immutable after New, reference cycles cannot be formed.
func New(name string, fields ...Field) (*Template, error) {
	if name == "" {
		return nil, &DefinitionError{Template: name, Reason: "template name is empty"}
	}
	if len(fields) == 0 {
		return nil, &DefinitionError{Template: name, Reason: "template declares no fields"}
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, &DefinitionError{Template: name, Reason: "field name is empty"}
		}
		if seen[f.Name] {
			return nil, &DefinitionError{Template: name, Field: f.Name, Reason: "duplicate field"}
		}
		seen[f.Name] = true
		if f.Type.IsNested() {
			sub := f.Type.Nested()
			if sub == nil || len(sub.fields) == 0 {
				return nil, &DefinitionError{Template: name, Field: f.Name, Reason: "nested template is nil or empty"}
			}
		} else {
			switch f.Type.kind {
			case value.KindString, value.KindInt, value.KindFloat, value.KindBool:
			default:
				return nil, &DefinitionError{Template: name, Field: f.Name, Reason: "field type must be a primitive or nested template"}
			}
		}
	}
	return &Template{name: name, fields: fields}, nil
}

// Must is a helper that wraps New and panics on error. It is intended for
// schemas declared as package variables.
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Fields returns the declarations in declaration order. The returned
// slice is shared; callers must not modify it.
func (t *Template) Fields() []Field { return t.fields }
