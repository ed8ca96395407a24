// Package yml adds traversal helpers to yaml.v3 nodes.
package yml

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is a yaml.Node with helpers
type Node yaml.Node

// Root returns the first content node of a document, or n itself
func (n *Node) Root() *Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return (*Node)(n.Content[0])
	}
	return n
}

// Lookup returns the value of a mapping key matched case-insensitively, or nil
func (n *Node) Lookup(name string) *Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if strings.EqualFold(n.Content[i].Value, name) {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// Items iterates sequence items
func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i, item := range n.Content {
		if err := callback(i, (*Node)(item)); err != nil {
			return err
		}
	}
	return nil
}

// Pairs iterates mapping key/value pairs in document order
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Interface converts the node to plain Go values. Integers become int,
// floats float64; untagged or unknown scalars stay strings.
func (n *Node) Interface() interface{} {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			return strings.EqualFold(n.Value, "true")
		case "!!null":
			return nil
		case "!!int":
			if v, err := strconv.Atoi(n.Value); err == nil {
				return v
			}
		case "!!float":
			if v, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return v
			}
		}
		return n.Value
	case yaml.MappingNode:
		aMap := make(map[string]interface{}, len(n.Content)/2)
		_ = n.Pairs(func(key string, value *Node) error {
			aMap[key] = value.Interface()
			return nil
		})
		return aMap
	case yaml.SequenceNode:
		aSlice := make([]interface{}, 0, len(n.Content))
		_ = n.Items(func(_ int, value *Node) error {
			aSlice = append(aSlice, value.Interface())
			return nil
		})
		return aSlice
	case yaml.AliasNode:
		if n.Alias != nil {
			return (*Node)(n.Alias).Interface()
		}
	}
	return nil
}
