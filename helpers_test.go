/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/
package verrors

import (
	"fmt"
	"testing"
)

func assertPanicsWithMessage(t *testing.T, expectedMsg string, f func()) {
	t.Helper()
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Errorf("Expected panic with message: %q, but no panic occurred", expectedMsg)
			return
		}
		if fmt.Sprint(recovered) != expectedMsg {
			t.Errorf("Expected panic with message: %q, got: %v", expectedMsg, recovered)
		}
	}()
	f()
}

// typeError is a type mismatch at path; the schema path is the path followed by the rule.
func typeError(constraint string, path ...any) *ValidationError {
	p := MustPath(path...)
	return New(Type, p, p.Append(Name(Type.Rule)), constraint, nil)
}

func minValueError(constraint int, value int, path ...any) *ValidationError {
	p := MustPath(path...)
	return New(MinValue, p, p.Append(Name(MinValue.Rule)), constraint, value)
}

// anyOfPriceError builds an anyof failure on "price" with two failed rules per alternative.
func anyOfPriceError() *ValidationError {
	doc := MustPath("price")
	schema := MustPath("price", "anyof")
	children := ErrorList{
		New(MinValue, doc, schema.Append(Index(0), Name("min")), 10, 5),
		New(Type, doc, schema.Append(Index(0), Name("type")), "integer", 5.5),
		New(MaxValue, doc, schema.Append(Index(1), Name("max")), 2, 5),
		New(Type, doc, schema.Append(Index(1), Name("type")), "string", 5.5),
	}
	return NewGroup(AnyOf, doc, schema, nil, 5.5, children)
}

// addressSchemaError builds a subschema failure on "address" with two failing sub-fields.
func addressSchemaError() *ValidationError {
	doc := MustPath("address")
	schema := MustPath("address", "schema")
	children := ErrorList{
		New(Type, doc.Append(Name("zip")), schema.Append(Name("zip"), Name("type")), "integer", "x"),
		New(RequiredField, doc.Append(Name("city")), schema.Append(Name("city"), Name("required")), true, nil),
	}
	return NewGroup(Schema, doc, schema, nil, nil, children)
}

func (r *registry) remove(code Code) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byCode, code)
}
