/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import "fmt"

// DefinitionSegment names the report node that holds the errors of one alternative definition
// of a logic rule, e.g. "anyof definition 0".
func DefinitionSegment(rule string, definition Segment) Segment {
	return Name(fmt.Sprintf("%s definition %s", rule, definition))
}

// RewritePaths returns a deep copy of e in which the document path of every descendant is
// re-rooted under its ancestor's document path. Children of logic errors are additionally
// placed under a DefinitionSegment for the alternative they belong to. The offset is the
// number of such synthetic segments already contained in e's document path.
//
// e and its children are not modified.
func RewritePaths(e *ValidationError, offset int) *ValidationError {
	out := e.Clone()
	rewritePaths(out, offset)
	return out
}

func rewritePaths(e *ValidationError, offset int) {
	switch {
	case e.IsLogicError():
		rewriteLogicErrorPaths(e, offset)
	case e.IsGroupError():
		rewriteGroupErrorPaths(e, offset)
	}
}

func rewriteGroupErrorPaths(e *ValidationError, offset int) {
	childStart := max(len(e.DocumentPath)-offset, 0)
	for _, child := range e.ChildErrors() {
		child.DocumentPath = e.DocumentPath.Append(relativePath(child.DocumentPath, childStart)...)
		rewritePaths(child, offset)
	}
}

func rewriteLogicErrorPaths(e *ValidationError, offset int) {
	childStart := max(len(e.DocumentPath)-offset, 0)
	buckets := e.DefinitionsErrors()
	for pair := buckets.Oldest(); pair != nil; pair = pair.Next() {
		if len(pair.Value) == 0 {
			continue
		}
		prefix := e.DocumentPath.Append(DefinitionSegment(e.Rule, pair.Key))
		for _, child := range pair.Value {
			child.DocumentPath = prefix.Append(relativePath(child.DocumentPath, childStart)...)
			rewritePaths(child, offset+1)
		}
	}
}

func relativePath(p Path, start int) Path {
	if start >= len(p) {
		return nil
	}
	return p[start:]
}
