/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"slices"
	"strings"

	"github.com/acronis/go-stacktrace"
	"github.com/samber/lo"
)

// ErrorList is an ordered collection of validation errors that can be queried by error definition.
type ErrorList []*ValidationError

// Has returns true if the list contains an error with the definition's code.
func (l ErrorList) Has(def ErrorDefinition) bool {
	_, ok := l.Get(def)
	return ok
}

// Get returns the first error with the definition's code.
func (l ErrorList) Get(def ErrorDefinition) (*ValidationError, bool) {
	return lo.Find(l, func(e *ValidationError) bool { return e.Code == def.Code })
}

// Codes returns the distinct codes in order of first occurrence.
func (l ErrorList) Codes() []Code {
	return lo.Uniq(lo.Map(l, func(e *ValidationError, _ int) Code { return e.Code }))
}

// Sort orders the list in place by document path and then by schema path.
func (l ErrorList) Sort() {
	slices.SortStableFunc(l, (*ValidationError).Compare)
}

// Clone deep-copies every error of the list.
func (l ErrorList) Clone() ErrorList {
	if l == nil {
		return nil
	}
	return lo.Map(l, func(e *ValidationError, _ int) *ValidationError { return e.Clone() })
}

// Unique drops errors that are equal to a preceding one.
func (l ErrorList) Unique() ErrorList {
	seen := make(map[uint64][]*ValidationError, len(l))
	out := make(ErrorList, 0, len(l))
	for _, e := range l {
		h := e.Hash()
		if lo.ContainsBy(seen[h], e.Equal) {
			continue
		}
		seen[h] = append(seen[h], e)
		out = append(out, e)
	}
	return out
}

func (l ErrorList) String() string {
	parts := lo.Map(l, func(e *ValidationError, _ int) string { return e.String() })
	return "[" + strings.Join(parts, ", ") + "]"
}

// Err aggregates the list into a single error, or returns nil for an empty list.
// Child errors of group errors are attached as nested traces.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	st := stacktrace.StackTrace{}
	for _, e := range l {
		_ = st.Append(errorTrace(e))
	}
	return &st
}

func errorTrace(e *ValidationError) *stacktrace.StackTrace {
	st := stacktrace.New(e.Error(),
		stacktrace.WithInfo("document_path", e.DocumentPath.String()),
		stacktrace.WithInfo("schema_path", e.SchemaPath.String()),
		stacktrace.WithInfo("code", e.Code.String()),
		stacktrace.WithType("validation"),
	)
	for _, child := range e.ChildErrors() {
		_ = st.Append(errorTrace(child))
	}
	return st
}
