package value

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Parse decodes data, a JSON document, into this package's ordered value
// tree: nil, bool, float64, string, []any, and *Object (in place of
// map[string]any). JSON is a subset of YAML, so it's decoded with a YAML
// parser that retains node order, then converted node-by-node, the same
// source-order-tracking idea as a YAML-aware OpenAPI document loader uses
// when it must hand back JSON with the original field order intact --
// just run in the read direction instead of the write direction.
func Parse(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	return fromNode(doc.Content[0])
}

// fromNode converts a single YAML node, recursively, into this package's
// value representation.
func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])

	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		arr := make([]any, len(n.Content))
		for i, c := range n.Content {
			val, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr[i] = val
		}
		return arr, nil

	case yaml.ScalarNode:
		return fromScalar(n)

	case yaml.AliasNode:
		return fromNode(n.Alias)

	default:
		return nil, fmt.Errorf("value: unsupported node kind %v", n.Kind)
	}
}

// fromScalar decodes a scalar node into nil, bool, float64, or string,
// matching JSON's scalar type set (a JSON document never needs any other
// YAML scalar tag).
func fromScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		return b, nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
