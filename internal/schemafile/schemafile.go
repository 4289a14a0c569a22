// Package schemafile parses YAML schema files into templates for the CLI.
//
// A schema file is a mapping from field name to type name, where a nested
// mapping declares a nested template:
//
//	host: string
//	port: integer
//	tls:
//	  cert: string
//	  key: string
//
// Recognized type names: string, integer (int), float, boolean (bool).
// Field order in the file becomes declaration order in the template, so
// generated examples mirror the schema layout.
package schemafile

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	cfgerrors "github.com/thoreinstein/loadcfg/internal/errors"
	"github.com/thoreinstein/loadcfg/pkg/fileutil"
	"github.com/thoreinstein/loadcfg/template"
)

// Parse builds a template named name from schema file bytes.
func Parse(data []byte, name string) (*template.Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, cfgerrors.Wrapf(cfgerrors.ErrInvalidSchema, "%q: %v", name, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, cfgerrors.Wrapf(cfgerrors.ErrInvalidSchema, "%q: schema file is empty", name)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, cfgerrors.Wrapf(cfgerrors.ErrInvalidSchema, "%q: top level must be a mapping of field names to types", name)
	}
	return templateFromMapping(root, name)
}

// ParseFile reads a schema file; the template is named after the file's
// base name without extension.
func ParseFile(path string) (*template.Template, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, name)
}

func templateFromMapping(n *yaml.Node, name string) (*template.Template, error) {
	var fields []template.Field
	for i := 0; i < len(n.Content)-1; i += 2 {
		keyNode := n.Content[i]
		valNode := n.Content[i+1]
		fieldName := keyNode.Value

		switch valNode.Kind {
		case yaml.MappingNode:
			sub, err := templateFromMapping(valNode, fieldName)
			if err != nil {
				return nil, err
			}
			fields = append(fields, template.Nested(fieldName, sub))
		case yaml.ScalarNode:
			field, err := fieldForType(fieldName, valNode.Value)
			if err != nil {
				return nil, cfgerrors.Wrapf(err, "template %q, line %d", name, valNode.Line)
			}
			fields = append(fields, field)
		default:
			return nil, cfgerrors.Wrapf(cfgerrors.ErrInvalidSchema,
				"template %q: field %q must declare a type name or a nested mapping (line %d)",
				name, fieldName, valNode.Line)
		}
	}

	tmpl, err := template.New(name, fields...)
	if err != nil {
		return nil, cfgerrors.Wrapf(cfgerrors.ErrInvalidSchema, "%v", err)
	}
	return tmpl, nil
}

func fieldForType(fieldName, typeName string) (template.Field, error) {
	switch strings.ToLower(typeName) {
	case "string", "str":
		return template.String(fieldName), nil
	case "integer", "int":
		return template.Int(fieldName), nil
	case "float":
		return template.Float(fieldName), nil
	case "boolean", "bool":
		return template.Bool(fieldName), nil
	default:
		return template.Field{}, cfgerrors.Wrapf(cfgerrors.ErrInvalidSchema,
			"field %q: unknown type %q (valid: string, integer, float, boolean)",
			fieldName, typeName)
	}
}
