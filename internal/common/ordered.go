package common

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed mapping that remembers insertion order.
// Setting an existing key replaces its value in place.
// The zero value is an empty map ready to use.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set stores value under key and reports whether key was already present.
func (m *OrderedMap[V]) Set(key string, value V) bool {
	if m.values == nil {
		m.values = make(map[string]V)
	}

	_, existed := m.values[key]
	if !existed {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value

	return existed
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// IsZero reports whether the map is empty; yaml.v3 uses it for omitempty.
func (m OrderedMap[V]) IsZero() bool {
	return len(m.keys) == 0
}

// MarshalYAML emits a mapping node whose keys follow insertion order.
// A *yaml.Node value is emitted as is.
func (m OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, k := range m.keys {
		var keyNode yaml.Node

		err := keyNode.Encode(k)
		if err != nil {
			return nil, err
		}

		// nodes are emitted unchanged
		if n, ok := any(m.values[k]).(*yaml.Node); ok && n != nil {
			node.Content = append(node.Content, &keyNode, n)
			continue
		}

		var valueNode yaml.Node

		err = valueNode.Encode(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}

		node.Content = append(node.Content, &keyNode, &valueNode)
	}

	return node, nil
}

// UnmarshalYAML reads a mapping node, keeping key order. When V is
// *yaml.Node the value nodes are stored without decoding.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, KindName(node.Kind))
	}

	*m = OrderedMap[V]{}

	for i := 0; i+1 < len(node.Content); i += 2 {
		var (
			key   string
			value V
		)

		err := node.Content[i].Decode(&key)
		if err != nil {
			return err
		}

		if dst, ok := any(&value).(**yaml.Node); ok {
			*dst = node.Content[i+1]
			m.Set(key, value)

			continue
		}

		err = node.Content[i+1].Decode(&value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		m.Set(key, value)
	}

	return nil
}

// KindName returns a readable name for a yaml node kind.
func KindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return UnknownStr
	}
}
