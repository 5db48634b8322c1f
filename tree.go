/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"slices"

	"github.com/samber/lo"
)

// TreeType selects the path an ErrorTree indexes errors by.
type TreeType uint8

const (
	// DocumentTree indexes errors by their document path.
	DocumentTree TreeType = iota
	// SchemaTree indexes errors by their schema path.
	SchemaTree
)

func (t TreeType) String() string {
	if t == SchemaTree {
		return "schema"
	}
	return "document"
}

func (t TreeType) pathOf(e *ValidationError) Path {
	if t == SchemaTree {
		return e.SchemaPath
	}
	return e.DocumentPath
}

// ErrorTreeNode holds the errors that terminate exactly at its path and the nodes of longer paths.
// Methods are safe to call on a nil node, so lookups can be chained:
//
//	tree.Child(verrors.Name("items")).Child(verrors.Index(1)).HasDefinition(verrors.Type)
type ErrorTreeNode struct {
	path        Path
	errors      ErrorList
	descendants map[Segment]*ErrorTreeNode
}

func newErrorTreeNode(path Path) *ErrorTreeNode {
	return &ErrorTreeNode{
		path:        path,
		descendants: make(map[Segment]*ErrorTreeNode),
	}
}

// Path returns the path of the node. Its length equals the depth of the node.
func (n *ErrorTreeNode) Path() Path {
	if n == nil {
		return nil
	}
	return n.path.Clone()
}

// Depth returns the distance to the root.
func (n *ErrorTreeNode) Depth() int {
	if n == nil {
		return 0
	}
	return len(n.path)
}

// Errors returns a copy of the errors at the node, sorted.
func (n *ErrorTreeNode) Errors() ErrorList {
	if n == nil {
		return ErrorList{}
	}
	return slices.Clone(n.errors)
}

// Len returns the number of errors at the node.
func (n *ErrorTreeNode) Len() int {
	if n == nil {
		return 0
	}
	return len(n.errors)
}

// Child returns the node for the next path segment, or nil.
func (n *ErrorTreeNode) Child(seg Segment) *ErrorTreeNode {
	if n == nil {
		return nil
	}
	return n.descendants[seg]
}

// HasChild returns true if a node for the next path segment exists.
func (n *ErrorTreeNode) HasChild(seg Segment) bool {
	return n.Child(seg) != nil
}

// HasDefinition returns true if an error of the definition occurred exactly at this node.
func (n *ErrorTreeNode) HasDefinition(def ErrorDefinition) bool {
	return n.Errors().Has(def)
}

// Error returns the first error of the definition at this node.
func (n *ErrorTreeNode) Error(def ErrorDefinition) (*ValidationError, bool) {
	return n.Errors().Get(def)
}

// Descendants returns the segments of the child nodes in path order.
func (n *ErrorTreeNode) Descendants() []Segment {
	if n == nil {
		return nil
	}
	keys := lo.Keys(n.descendants)
	slices.SortFunc(keys, Segment.Compare)
	return keys
}

// Delete removes the child node of the segment together with its subtree.
func (n *ErrorTreeNode) Delete(seg Segment) {
	if n == nil {
		return
	}
	delete(n.descendants, seg)
}

// Contains accepts an ErrorDefinition, which is looked up among the node's errors,
// or a path segment (Segment, string or int), which is looked up among the child nodes.
// Any other key is rejected with a *KeyTypeError.
func (n *ErrorTreeNode) Contains(key any) (bool, error) {
	if def, ok := key.(ErrorDefinition); ok {
		return n.HasDefinition(def), nil
	}
	seg, err := SegmentOf(key)
	if err != nil {
		return false, err
	}
	return n.HasChild(seg), nil
}

// Lookup is the dict-like accessor: an ErrorDefinition yields the matching *ValidationError
// at this node, a path segment yields the child *ErrorTreeNode. Missing entries yield nil.
func (n *ErrorTreeNode) Lookup(key any) (any, error) {
	if def, ok := key.(ErrorDefinition); ok {
		if e, found := n.Error(def); found {
			return e, nil
		}
		return nil, nil
	}
	seg, err := SegmentOf(key)
	if err != nil {
		return nil, err
	}
	if child := n.Child(seg); child != nil {
		return child, nil
	}
	return nil, nil
}

func (n *ErrorTreeNode) childOrCreate(path Path) *ErrorTreeNode {
	seg := path[len(path)-1]
	child, ok := n.descendants[seg]
	if !ok {
		child = newErrorTreeNode(path.Clone())
		n.descendants[seg] = child
	}
	return child
}

// ErrorTree is a dict-like index of errors following the structure of either the validated
// document or the used schema.
type ErrorTree struct {
	ErrorTreeNode
	treeType TreeType
}

// NewErrorTree builds a tree of the given type from errs.
func NewErrorTree(treeType TreeType, errs ErrorList) *ErrorTree {
	t := &ErrorTree{
		ErrorTreeNode: ErrorTreeNode{
			path:        Path{},
			descendants: make(map[Segment]*ErrorTreeNode),
		},
		treeType: treeType,
	}
	for _, e := range errs {
		t.Add(e)
	}
	return t
}

// NewDocumentErrorTree indexes errs by document path.
func NewDocumentErrorTree(errs ErrorList) *ErrorTree {
	return NewErrorTree(DocumentTree, errs)
}

// NewSchemaErrorTree indexes errs by schema path.
func NewSchemaErrorTree(errs ErrorList) *ErrorTree {
	return NewErrorTree(SchemaTree, errs)
}

// Type returns the tree type.
func (t *ErrorTree) Type() TreeType {
	return t.treeType
}

// Add inserts the error at the node addressed by its path, creating intermediate nodes.
// The child errors of a group error are added to the tree root as well, so they can be
// looked up at their own paths.
func (t *ErrorTree) Add(e *ValidationError) {
	p := t.treeType.pathOf(e)
	node := &t.ErrorTreeNode
	for depth := 1; depth <= len(p); depth++ {
		node = node.childOrCreate(p[:depth])
	}
	node.errors = append(node.errors, e)
	node.errors.Sort()

	for _, child := range e.ChildErrors() {
		t.Add(child)
	}
}

// FetchNodeFrom walks the path and returns the node, or false if any segment is absent.
func (t *ErrorTree) FetchNodeFrom(path Path) (*ErrorTreeNode, bool) {
	node := &t.ErrorTreeNode
	for _, seg := range path {
		node = node.Child(seg)
		if node == nil {
			return nil, false
		}
	}
	return node, true
}

// FetchErrorsFrom returns the errors for a path, or an empty list if there are none.
func (t *ErrorTree) FetchErrorsFrom(path Path) ErrorList {
	node, ok := t.FetchNodeFrom(path)
	if !ok {
		return ErrorList{}
	}
	return node.Errors()
}
