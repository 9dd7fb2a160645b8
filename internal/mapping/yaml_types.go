package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// functionEntryFields has FunctionEntry's layout without its YAML methods.
type functionEntryFields FunctionEntry

// UnmarshalYAML implements custom YAML unmarshaling for FunctionEntry.
// Accepts:
//   - The scalar "polyfill"
//   - A map with namespace, class (optional) and method
func (e *FunctionEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var tag string

		err := node.Decode(&tag)
		if err != nil {
			return err
		}

		if tag != PolyfillTag {
			return fmt.Errorf("line %d: unknown function tag %q (expected %q or a target map)",
				node.Line, tag, PolyfillTag)
		}

		*e = FunctionEntry{Polyfill: true}

		return nil

	case yaml.MappingNode:
		var fields functionEntryFields

		err := node.Decode(&fields)
		if err != nil {
			return err
		}

		*e = FunctionEntry(fields)
		e.Polyfill = false

		return nil

	default:
		return fmt.Errorf("line %d: expected %q or a target map, got %v", node.Line, PolyfillTag, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for FunctionEntry.
// Outputs the bare polyfill tag for polyfills, otherwise the target map.
func (e FunctionEntry) MarshalYAML() (any, error) {
	if e.Polyfill {
		return PolyfillTag, nil
	}

	return functionEntryFields(e), nil
}

// decodeOrderedFunctions reads the "functions" mapping node while keeping
// the document order of its keys.
func decodeOrderedFunctions(node *yaml.Node, t *Table) error {
	switch node.Kind {
	case 0:
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}

		return fmt.Errorf("line %d: functions must be a map", node.Line)
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: functions must be a map", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var entry FunctionEntry

		err := valNode.Decode(&entry)
		if err != nil {
			return fmt.Errorf("function %q: %w", keyNode.Value, err)
		}

		t.SetFunction(keyNode.Value, entry)
	}

	return nil
}

// mappingNode builds a YAML map node from ordered keys and values.
func mappingNode[V any](keys []string, value func(string) V) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range keys {
		var v yaml.Node

		err := v.Encode(value(k))
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}

		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &v)
	}

	return n, nil
}
