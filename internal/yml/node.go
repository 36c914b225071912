// Package yml provides helpers for editing yaml.v3 node trees in place, so a
// document can be rewritten without losing key order, comments or styles.
package yml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Node yaml.Node

// Resolve follows alias nodes to the node they point at.
func (n *Node) Resolve() *Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = (*Node)(n.Alias)
	}
	return n
}

// Root returns the first content node of a document, or n itself for any
// other kind.
func (n *Node) Root() *Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return (*Node)(n.Content[0]).Resolve()
	}
	return n.Resolve()
}

// Lookup returns the value node stored under key in a mapping, or nil.
func (n *Node) Lookup(key string) *Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return (*Node)(n.Content[i+1]).Resolve()
		}
	}
	return nil
}

// Pairs walks a mapping's key/value pairs in document order.
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1]).Resolve()); err != nil {
			return err
		}
	}
	return nil
}

// Items walks a sequence's items in document order.
func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i, item := range n.Content {
		if err := callback(i, (*Node)(item).Resolve()); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys of a mapping in document order.
func (n *Node) Keys() []string {
	var keys []string
	_ = n.Pairs(func(key string, _ *Node) error {
		keys = append(keys, key)
		return nil
	})
	return keys
}

// IsNull reports whether n is missing or an explicit null scalar.
func (n *Node) IsNull() bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// Scalar returns the text of a non-null scalar node.
func (n *Node) Scalar() (string, bool) {
	if n.IsNull() || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

// SetString stores value as a string scalar under key, replacing the existing
// value node in place so its position and comments survive, or appending a
// new pair when the key is absent.
func (n *Node) SetString(key, value string) {
	if n.Kind != yaml.MappingNode {
		panic(fmt.Sprintf("yml: SetString on %v node", n.Kind))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != key {
			continue
		}
		current := n.Content[i+1]
		if current.Kind != yaml.ScalarNode {
			n.Content[i+1] = NewString(value)
			return
		}
		current.Tag = "!!str"
		current.Value = value
		return
	}
	n.Content = append(n.Content, NewString(key), NewString(value))
}

// NewString returns a plain string scalar node.
func NewString(value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
	}
}
