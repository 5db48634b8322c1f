/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"encoding/binary"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/zeebo/xxh3"
)

// Info holds additional information about an error.
// It is a closed set: Details for plain errors and *Group for bulk and logic errors.
type Info interface {
	// Args returns the positional values that message templates refer to as {0}, {1}, ...
	Args() []any

	clone() Info
}

// Details are positional context values of an existence, shape, content or normalization error.
type Details []any

func (d Details) Args() []any { return d }

func (d Details) clone() Info {
	if d == nil {
		return nil
	}
	return append(Details(nil), d...)
}

// Group carries the errors of a nested validation.
// For logic errors the children are produced by the alternative definitions of the rule.
type Group struct {
	Children ErrorList
	Extra    []any
}

// Args returns the child errors followed by the extra values.
func (g *Group) Args() []any {
	return append([]any{g.Children}, g.Extra...)
}

func (g *Group) clone() Info {
	return &Group{
		Children: g.Children.Clone(),
		Extra:    append([]any(nil), g.Extra...),
	}
}

// ValidationError stores basic information about a single failed rule check.
//
// Constraint and Value are opaque to this package and are never modified by it.
type ValidationError struct {
	// DocumentPath is the path to the field within the document that caused the error.
	DocumentPath Path
	// SchemaPath is the path to the rule within the schema that caused the error.
	SchemaPath Path
	Code       Code
	// Rule is the name of the failed rule. It is empty for structural and custom errors.
	Rule       string
	Constraint any
	Value      any
	Info       Info
}

// New creates an error for a plain (non-group) definition.
func New(def ErrorDefinition, documentPath, schemaPath Path, constraint, value any, args ...any) *ValidationError {
	var info Info
	if len(args) > 0 {
		info = Details(args)
	}
	return &ValidationError{
		DocumentPath: documentPath,
		SchemaPath:   schemaPath,
		Code:         def.Code,
		Rule:         def.Rule,
		Constraint:   constraint,
		Value:        value,
		Info:         info,
	}
}

// NewGroup creates a bulk or logic error that carries the errors of the nested validation.
func NewGroup(def ErrorDefinition, documentPath, schemaPath Path, constraint, value any, children ErrorList) *ValidationError {
	return &ValidationError{
		DocumentPath: documentPath,
		SchemaPath:   schemaPath,
		Code:         def.Code,
		Rule:         def.Rule,
		Constraint:   constraint,
		Value:        value,
		Info:         &Group{Children: children},
	}
}

// Definition returns the definition the error was created for.
func (e *ValidationError) Definition() ErrorDefinition {
	return ErrorDefinition{Code: e.Code, Rule: e.Rule}
}

// Field returns the last segment of the document path. It reports false for root-level errors.
func (e *ValidationError) Field() (Segment, bool) {
	return e.DocumentPath.Last()
}

// IsGroupError returns true for errors of bulk validations.
func (e *ValidationError) IsGroupError() bool {
	return e.Code.IsGroup()
}

// IsLogicError returns true for validation errors against different schemas with *of-rules.
func (e *ValidationError) IsLogicError() bool {
	return e.Code.IsLogic()
}

// IsNormalizationError returns true for normalization errors.
func (e *ValidationError) IsNormalizationError() bool {
	return e.Code.IsNormalization()
}

// Family returns the family of the error's code.
func (e *ValidationError) Family() Family {
	return e.Code.Family()
}

// Args returns the positional values of the error info.
func (e *ValidationError) Args() []any {
	if e.Info == nil {
		return nil
	}
	return e.Info.Args()
}

// ChildErrors returns the individual errors of a bulk validation, or nil for other errors.
func (e *ValidationError) ChildErrors() ErrorList {
	if !e.IsGroupError() {
		return nil
	}
	g, ok := e.Info.(*Group)
	if !ok {
		return ErrorList{}
	}
	return g.Children
}

// DefinitionsErrors returns the child errors of a logic error bucketed by the index of the
// alternative definition they occurred in. The buckets keep the order of first occurrence.
// It returns nil for errors that are not logic errors.
func (e *ValidationError) DefinitionsErrors() *orderedmap.OrderedMap[Segment, ErrorList] {
	if !e.IsLogicError() {
		return nil
	}
	result := orderedmap.New[Segment, ErrorList]()
	pos := len(e.SchemaPath)
	for _, child := range e.ChildErrors() {
		if len(child.SchemaPath) <= pos {
			continue
		}
		i := child.SchemaPath[pos]
		bucket, _ := result.Get(i)
		result.Set(i, append(bucket, child))
	}
	return result
}

// Equal assumes both errors relate to the same document and schema:
// only the paths and the code are compared.
func (e *ValidationError) Equal(other *ValidationError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Code == other.Code && e.DocumentPath.Equal(other.DocumentPath) && e.SchemaPath.Equal(other.SchemaPath)
}

// Hash is consistent with Equal.
func (e *ValidationError) Hash() uint64 {
	h := xxh3.New()
	writePath(h, e.DocumentPath)
	_, _ = h.Write([]byte{0xff})
	writePath(h, e.SchemaPath)
	_, _ = h.Write([]byte{0xff})
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(e.Code))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func writePath(h *xxh3.Hasher, p Path) {
	var buf [9]byte
	for _, s := range p {
		if s.IsIndex() {
			buf[0] = byte(indexSegment)
			binary.BigEndian.PutUint64(buf[1:], uint64(s.index))
			_, _ = h.Write(buf[:])
			continue
		}
		_, _ = h.Write([]byte{byte(nameSegment)})
		binary.BigEndian.PutUint64(buf[1:], uint64(len(s.name)))
		_, _ = h.Write(buf[1:])
		_, _ = h.WriteString(s.name)
	}
}

// Compare orders errors by document path and then by schema path.
func (e *ValidationError) Compare(other *ValidationError) int {
	if c := e.DocumentPath.Compare(other.DocumentPath); c != 0 {
		return c
	}
	return e.SchemaPath.Compare(other.SchemaPath)
}

// Less reports whether e sorts before other.
func (e *ValidationError) Less(other *ValidationError) bool {
	return e.Compare(other) < 0
}

// Clone returns a deep copy of the paths and the info, including nested child errors.
// Constraint and Value are shared.
func (e *ValidationError) Clone() *ValidationError {
	if e == nil {
		return nil
	}
	out := *e
	out.DocumentPath = e.DocumentPath.Clone()
	out.SchemaPath = e.SchemaPath.Clone()
	if e.Info != nil {
		out.Info = e.Info.clone()
	}
	return &out
}

func (e *ValidationError) Error() string {
	location := e.DocumentPath.String()
	if location == "" {
		location = "(root)"
	}
	return fmt.Sprintf("%s: %s", location, e.Definition())
}

func (e *ValidationError) String() string {
	var b strings.Builder
	b.WriteString("ValidationError(")
	fmt.Fprintf(&b, "document_path=%s,", formatPathRepr(e.DocumentPath))
	fmt.Fprintf(&b, "schema_path=%s,", formatPathRepr(e.SchemaPath))
	fmt.Fprintf(&b, "code=%s,", e.Code)
	fmt.Fprintf(&b, "constraint=%s,", Repr(e.Constraint))
	fmt.Fprintf(&b, "value=%s,", Repr(e.Value))
	if g, ok := e.Info.(*Group); ok {
		fmt.Fprintf(&b, "info=(%d child errors))", len(g.Children))
	} else {
		fmt.Fprintf(&b, "info=%s)", Repr(e.Args()))
	}
	return b.String()
}

func formatPathRepr(p Path) string {
	return Repr(p.Keys())
}
