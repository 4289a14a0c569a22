package format

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/loadcfg/value"
)

func init() {
	register(yamlAdapter{})
}

// yamlAdapter reads and writes YAML through the yaml.v3 node API, which
// keeps mapping keys in document order.
type yamlAdapter struct{}

func (yamlAdapter) Format() Format { return YAML }

func (yamlAdapter) Parse(data []byte) (*value.Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Format: YAML, Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document loads as an empty mapping.
		return value.NewMap(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Format: YAML, Err: ErrNotMapping}
	}
	v, err := yamlNodeToValue(root)
	if err != nil {
		return nil, &ParseError{Format: YAML, Err: err}
	}
	return v.AsMap(), nil
}

func yamlNodeToValue(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlNodeToValue(n.Alias)
	case yaml.MappingNode:
		m := value.NewMap()
		for i := 0; i < len(n.Content)-1; i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			v, err := yamlNodeToValue(valNode)
			if err != nil {
				return value.Value{}, err
			}
			m.Set(keyNode.Value, v)
		}
		return value.MapVal(m), nil
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlNodeToValue(c)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.ListVal(items), nil
	case yaml.ScalarNode:
		return yamlScalarToValue(n)
	default:
		return value.Value{}, errors.Newf("unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

func yamlScalarToValue(n *yaml.Node) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.NullVal(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			// YAML 1.1 spellings like "yes"/"no" resolve as !!bool too.
			switch n.Value {
			case "yes", "Yes", "YES", "on", "On", "ON":
				return value.BoolVal(true), nil
			case "no", "No", "NO", "off", "Off", "OFF":
				return value.BoolVal(false), nil
			}
			return value.Value{}, errors.Wrapf(err, "boolean %q at line %d", n.Value, n.Line)
		}
		return value.BoolVal(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return value.Value{}, errors.Wrapf(err, "integer %q at line %d", n.Value, n.Line)
		}
		return value.IntVal(i), nil
	case "!!float":
		switch n.Value {
		case ".inf", ".Inf", "+.inf":
			return value.FloatVal(math.Inf(1)), nil
		case "-.inf", "-.Inf":
			return value.FloatVal(math.Inf(-1)), nil
		case ".nan", ".NaN":
			return value.FloatVal(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return value.Value{}, errors.Wrapf(err, "float %q at line %d", n.Value, n.Line)
		}
		return value.FloatVal(f), nil
	default:
		// !!str and anything unrecognized load as strings.
		return value.StringVal(n.Value), nil
	}
}

func (yamlAdapter) Serialize(tree *value.Map) ([]byte, error) {
	node, err := valueToYAMLNode(value.MapVal(tree))
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}

func valueToYAMLNode(v value.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case value.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case value.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.AsString()}, nil
	case value.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.AsInt(), 10)}, nil
	case value.KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.AsFloat())}, nil
	case value.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.AsBool())}, nil
	case value.KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.AsList() {
			c, err := valueToYAMLNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case value.KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		m := v.AsMap()
		for _, key := range m.Keys() {
			item, _ := m.Get(key)
			c, err := valueToYAMLNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, c)
		}
		return n, nil
	default:
		return nil, errors.Newf("cannot serialize kind %s", v.Kind())
	}
}
