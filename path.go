/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"fmt"
	"strconv"
	"strings"
)

type segmentKind uint8

// Index segments sort before name segments.
const (
	indexSegment segmentKind = iota
	nameSegment
)

// Segment is a single step of a document or schema path: either a field name or a sequence index.
type Segment struct {
	kind  segmentKind
	name  string
	index int
}

// Name constructs a field name segment.
func Name(name string) Segment {
	return Segment{kind: nameSegment, name: name}
}

// Index constructs a sequence index segment.
func Index(i int) Segment {
	return Segment{kind: indexSegment, index: i}
}

// SegmentOf converts a string, an int or a Segment into a Segment.
func SegmentOf(v any) (Segment, error) {
	switch s := v.(type) {
	case Segment:
		return s, nil
	case string:
		return Name(s), nil
	case int:
		return Index(s), nil
	case int64:
		return Index(int(s)), nil
	case uint:
		return Index(int(s)), nil
	default:
		return Segment{}, &KeyTypeError{Key: v}
	}
}

// IsIndex returns true if the segment is a sequence index.
func (s Segment) IsIndex() bool {
	return s.kind == indexSegment
}

// Key returns the underlying string or int.
func (s Segment) Key() any {
	if s.IsIndex() {
		return s.index
	}
	return s.name
}

// Compare returns -1, 0 or +1. Indexes are ordered before names.
func (s Segment) Compare(other Segment) int {
	if s.kind != other.kind {
		if s.kind < other.kind {
			return -1
		}
		return 1
	}
	if s.IsIndex() {
		switch {
		case s.index < other.index:
			return -1
		case s.index > other.index:
			return 1
		}
		return 0
	}
	return strings.Compare(s.name, other.name)
}

func (s Segment) String() string {
	if s.IsIndex() {
		return strconv.Itoa(s.index)
	}
	return s.name
}

// MarshalText allows segments to be used as keys of JSON objects.
func (s Segment) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Path is an ordered sequence of segments locating a value in a document or a rule in a schema.
type Path []Segment

// NewPath builds a path out of strings, ints and segments.
func NewPath(parts ...any) (Path, error) {
	p := make(Path, 0, len(parts))
	for i, part := range parts {
		s, err := SegmentOf(part)
		if err != nil {
			return nil, fmt.Errorf("path segment %d: %w", i, err)
		}
		p = append(p, s)
	}
	return p, nil
}

// MustPath is like NewPath but panics on unsupported segment types.
func MustPath(parts ...any) Path {
	p, err := NewPath(parts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Compare orders paths segment by segment; a strict prefix is ordered before its extensions.
func (p Path) Compare(other Path) int {
	n := min(len(p), len(other))
	for i := 0; i < n; i++ {
		if c := p[i].Compare(other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	}
	return 0
}

// Equal returns true if both paths consist of the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if the path starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	return len(p) >= len(prefix) && p[:len(prefix)].Equal(prefix)
}

// Clone returns a copy that does not share the underlying array.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Append returns a new path extended by segs. The receiver is never modified.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Last returns the last segment of the path.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// Keys returns the underlying strings and ints.
func (p Path) Keys() []any {
	out := make([]any, len(p))
	for i, s := range p {
		out[i] = s.Key()
	}
	return out
}

// String joins the segments with dots, e.g. "items.1.name".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// ParsePath splits a dotted path; all-digit parts become index segments.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	parts := strings.Split(s, ".")
	p := make(Path, len(parts))
	for i, part := range parts {
		if n, err := strconv.Atoi(part); err == nil && n >= 0 {
			p[i] = Index(n)
		} else {
			p[i] = Name(part)
		}
	}
	return p
}

// KeyTypeError is returned when a lookup key is neither an ErrorDefinition nor a path segment.
type KeyTypeError struct {
	Key any
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("unsupported key type %T: must be an ErrorDefinition, a Segment, a string or an int", e.Key)
}
