/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ReportNode is a node of an error report: the messages for exactly its path and the nodes
// of its sub-fields in insertion order. Children is nil once the report is pruned and the node
// has no sub-fields.
type ReportNode struct {
	Messages []string
	Children *orderedmap.OrderedMap[Segment, *ReportNode]
}

// NewReportNode returns an empty node.
func NewReportNode() *ReportNode {
	return &ReportNode{Children: orderedmap.New[Segment, *ReportNode]()}
}

// Child returns the node of a sub-field, or nil. It is safe to call on a nil node.
func (n *ReportNode) Child(seg Segment) *ReportNode {
	if n == nil || n.Children == nil {
		return nil
	}
	child, _ := n.Children.Get(seg)
	return child
}

// Node walks the path and returns the node at its end, or nil.
func (n *ReportNode) Node(path Path) *ReportNode {
	node := n
	for _, seg := range path {
		node = node.Child(seg)
		if node == nil {
			return nil
		}
	}
	return node
}

// MessagesAt returns the messages recorded exactly at path.
func (n *ReportNode) MessagesAt(path Path) []string {
	if node := n.Node(path); node != nil {
		return node.Messages
	}
	return nil
}

// Keys returns the segments of the sub-fields in insertion order.
func (n *ReportNode) Keys() []Segment {
	if n == nil || n.Children == nil {
		return nil
	}
	keys := make([]Segment, 0, n.Children.Len())
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// IsEmpty returns true if the node has neither messages nor sub-fields.
func (n *ReportNode) IsEmpty() bool {
	return n == nil || (len(n.Messages) == 0 && (n.Children == nil || n.Children.Len() == 0))
}

func (n *ReportNode) childOrCreate(seg Segment) *ReportNode {
	if n.Children == nil {
		n.Children = orderedmap.New[Segment, *ReportNode]()
	}
	child, ok := n.Children.Get(seg)
	if !ok {
		child = NewReportNode()
		n.Children.Set(seg, child)
	}
	return child
}

// insertMessage appends msg to the node at path, creating the intermediate nodes on demand.
// An empty path addresses n itself.
func insertMessage(n *ReportNode, path Path, msg string) {
	if len(path) == 0 {
		n.Messages = append(n.Messages, msg)
		return
	}
	insertMessage(n.childOrCreate(path[0]), path[1:], msg)
}

// Clone deep-copies the node.
func (n *ReportNode) Clone() *ReportNode {
	if n == nil {
		return nil
	}
	out := &ReportNode{Messages: append([]string(nil), n.Messages...)}
	if n.Children != nil {
		out.Children = orderedmap.New[Segment, *ReportNode](n.Children.Len())
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			out.Children.Set(pair.Key, pair.Value.Clone())
		}
	}
	return out
}

// pruned returns a copy without empty sub-field mappings and without nodes that have
// neither messages nor sub-fields.
func (n *ReportNode) pruned() *ReportNode {
	out := &ReportNode{Messages: append([]string(nil), n.Messages...)}
	if n.Children == nil {
		return out
	}
	children := orderedmap.New[Segment, *ReportNode]()
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value.pruned()
		if child.IsEmpty() {
			continue
		}
		children.Set(pair.Key, child)
	}
	if children.Len() > 0 {
		out.Children = children
	}
	return out
}

// plain converts the node into the legacy shape: a list of messages, followed by a mapping of
// the sub-fields if there are any. The root is a bare mapping unless it has messages.
func (n *ReportNode) plain(root bool) any {
	var children *orderedmap.OrderedMap[Segment, any]
	if n.Children != nil && n.Children.Len() > 0 {
		children = orderedmap.New[Segment, any](n.Children.Len())
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			children.Set(pair.Key, pair.Value.plain(false))
		}
	}
	if root && len(n.Messages) == 0 {
		if children == nil {
			return orderedmap.New[Segment, any]()
		}
		return children
	}
	out := make([]any, 0, len(n.Messages)+1)
	for _, m := range n.Messages {
		out = append(out, m)
	}
	if children != nil {
		out = append(out, children)
	}
	return out
}

// MarshalJSON renders the node in the legacy shape, keeping the order of the sub-fields.
func (n *ReportNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.plain(true))
}

// MarshalYAML renders the node in the legacy shape, keeping the order of the sub-fields.
func (n *ReportNode) MarshalYAML() (any, error) {
	return n.yamlNode(true), nil
}

func (n *ReportNode) yamlNode(root bool) *yaml.Node {
	var mapping *yaml.Node
	if n.Children != nil && n.Children.Len() > 0 {
		mapping = &yaml.Node{Kind: yaml.MappingNode}
		for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
			mapping.Content = append(mapping.Content, segmentYAMLNode(pair.Key), pair.Value.yamlNode(false))
		}
	}
	if root && len(n.Messages) == 0 {
		if mapping == nil {
			return &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		}
		return mapping
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, m := range n.Messages {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m})
	}
	if mapping != nil {
		seq.Content = append(seq.Content, mapping)
	}
	return seq
}

func segmentYAMLNode(s Segment) *yaml.Node {
	if s.IsIndex() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s.String()}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.String()}
}

// Pretty renders the node as indented YAML.
func (n *ReportNode) Pretty() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n.yamlNode(true)); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return buf.String(), nil
}

func (n *ReportNode) String() string {
	s, err := n.Pretty()
	if err != nil {
		return err.Error()
	}
	return s
}

// Query evaluates a gjson path against the JSON rendering of the node.
func (n *ReportNode) Query(path string) gjson.Result {
	data, err := n.MarshalJSON()
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(data, path)
}
