package model

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes v as a YAML node, keeping document key order.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

// UnmarshalYAML decodes a YAML node into v.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := fromYAMLNode(node)
	if err != nil {
		return err
	}

	*v = decoded

	return nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case NumberKind:
		if !finite(v.n) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}

		if v.n == math.Trunc(v.n) && math.Abs(v.n) < 1<<53 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v.n), 10)}
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.n, 'g', -1, 64)}
	case StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case ListKind:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			node.Content = append(node.Content, item.yamlNode())
		}

		return node
	case DocumentKind:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.fields {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
				f.Value.yamlNode(),
			)
		}

		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func fromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}

		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, errors.Errorf("line %d: dangling alias", node.Line)
		}

		return fromYAMLNode(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromYAMLNode(child)
			if err != nil {
				return Value{}, err
			}

			items = append(items, item)
		}

		return List(items...), nil
	case yaml.MappingNode:
		doc := Value{kind: DocumentKind, fields: make([]Field, 0, len(node.Content)/2)}
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string

			err := node.Content[i].Decode(&key)
			if err != nil {
				return Value{}, errors.Wrapf(err, "line %d: mapping key", node.Content[i].Line)
			}

			item, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}

			doc.fields = setField(doc.fields, key, item)
		}

		return doc, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	default:
		return Value{}, errors.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool

		err := node.Decode(&b)
		if err != nil {
			return Value{}, errors.Wrapf(err, "line %d", node.Line)
		}

		return Bool(b), nil
	case "!!int", "!!float":
		var f float64

		err := node.Decode(&f)
		if err != nil {
			return Value{}, errors.Wrapf(err, "line %d", node.Line)
		}

		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}
