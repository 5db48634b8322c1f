// Package jsonschemax runs JSON Schema validation with gojsonschema and reports the results as
// validation errors, so they can be passed to error handlers.
package jsonschemax

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/acronis/go-verrors"
)

const rootContext = "(root)"

func CompileSchema(schema []byte) (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}

func MustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := CompileSchema([]byte(schema))
	if err != nil {
		panic(err)
	}
	return s
}

// Validate compiles the schema and validates the document. Both are JSON.
// A nil list means the document is valid.
func Validate(schema, document []byte) (verrors.ErrorList, error) {
	s, err := CompileSchema(schema)
	if err != nil {
		return nil, err
	}
	return ValidateWith(s, gojsonschema.NewBytesLoader(document))
}

func ValidateWith(s *gojsonschema.Schema, document gojsonschema.JSONLoader) (verrors.ErrorList, error) {
	res, err := s.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("schema validate: %w", err)
	}
	if res.Valid() {
		return nil, nil
	}
	return Convert(res.Errors()), nil
}

// Convert maps gojsonschema results to validation errors, in order.
func Convert(results []gojsonschema.ResultError) verrors.ErrorList {
	errs := make(verrors.ErrorList, 0, len(results))
	for _, r := range results {
		errs = append(errs, ConvertError(r))
	}
	return errs
}

// ConvertError maps a single result. Results without a counterpart become custom errors that
// carry the description.
//
// gojsonschema reports no nested results for the logical keywords, so logic errors have no children.
func ConvertError(r gojsonschema.ResultError) *verrors.ValidationError {
	details := r.Details()
	doc := documentPath(r.Context())

	switch r.Type() {
	case "required":
		doc = withProperty(doc, details["property"])
		return newError(verrors.RequiredField, doc, true, nil)
	case "additional_property_not_allowed":
		doc = withProperty(doc, details["property"])
		return newError(verrors.UnknownField, doc, nil, r.Value())
	case "missing_dependency":
		dep := details["dependency"]
		return newError(verrors.DependenciesField, doc, dep, r.Value(), dep)
	case "invalid_type":
		return newError(verrors.Type, doc, details["expected"], r.Value())
	case "enum", "const":
		return newError(verrors.UnallowedValue, doc, details["allowed"], r.Value())
	case "string_gte", "array_min_items":
		return newError(verrors.MinLength, doc, details["min"], r.Value())
	case "string_lte", "array_max_items":
		return newError(verrors.MaxLength, doc, details["max"], r.Value())
	case "number_gte", "number_gt":
		return newError(verrors.MinValue, doc, details["min"], r.Value())
	case "number_lte", "number_lt":
		return newError(verrors.MaxValue, doc, details["max"], r.Value())
	case "pattern", "does_not_match_pattern":
		return newError(verrors.RegexMismatch, doc, details["pattern"], r.Value())
	case "number_any_of":
		return newLogicError(verrors.AnyOf, doc, r.Value())
	case "number_one_of":
		return newLogicError(verrors.OneOf, doc, r.Value())
	case "number_all_of":
		return newLogicError(verrors.AllOf, doc, r.Value())
	case "number_not":
		return newLogicError(verrors.NoneOf, doc, r.Value())
	}
	return verrors.New(verrors.Custom, doc, doc.Append(verrors.Name(r.Type())), nil, r.Value(), r.Description())
}

func newError(def verrors.ErrorDefinition, doc verrors.Path, constraint, value any, args ...any) *verrors.ValidationError {
	return verrors.New(def, doc, doc.Append(verrors.Name(def.Rule)), constraint, value, args...)
}

func newLogicError(def verrors.ErrorDefinition, doc verrors.Path, value any) *verrors.ValidationError {
	return verrors.NewGroup(def, doc, doc.Append(verrors.Name(def.Rule)), nil, value, nil)
}

func documentPath(ctx *gojsonschema.JsonContext) verrors.Path {
	if ctx == nil {
		return verrors.Path{}
	}
	s := strings.TrimPrefix(ctx.String("."), rootContext)
	return verrors.ParsePath(strings.TrimPrefix(s, "."))
}

// withProperty appends the property a result refers to. The context of such results is the object
// that holds the property.
func withProperty(doc verrors.Path, property any) verrors.Path {
	name, ok := property.(string)
	if !ok || name == "" {
		return doc
	}
	return doc.Append(verrors.Name(name))
}
