/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
)

var basicMessages = map[Code]string{
	0x00: "{0}",
	0x01: "document is missing",
	0x02: "required field",
	0x03: "unknown field",
	0x04: "field '{0}' is required",
	0x05: "depends on these values: {constraint}",
	0x06: "{0} must not be present with '{field}'",

	0x21: "'{0}' is not a document, must be a dict",
	0x22: "empty values not allowed",
	0x23: "null value not allowed",
	0x24: "must be of {constraint} type",
	0x26: "length of list should be {constraint}, it is {0}",
	0x27: "min length is {constraint}",
	0x28: "max length is {constraint}",

	0x41: "value does not match regex '{constraint}'",
	0x42: "min value is {constraint}",
	0x43: "max value is {constraint}",
	0x44: "unallowed value {value}",
	0x45: "unallowed values {0}",
	0x46: "unallowed value {value}",
	0x47: "unallowed values {0}",
	0x48: "missing members {0}",

	0x61: "field '{field}' cannot be coerced: {0}",
	0x62: "field '{field}' cannot be renamed: {0}",
	0x63: "field is read-only",
	0x64: "default value for '{field}' cannot be set: {0}",

	// The child errors of groups are reported as nested entries, so the summaries
	// don't render the child list ({0}).
	0x81: "mapping doesn't validate subschema",
	0x82: "one or more sequence-items don't validate",
	0x83: "one or more keys of a mapping don't validate",
	0x84: "one or more values in a mapping don't validate",
	0x8F: "one or more sequence-items don't validate",

	0x91: "one or more definitions validate",
	0x92: "none or more than one rule validate",
	0x93: "no definitions validate",
	0x94: "one or more definitions don't validate",
}

// Catalog maps error codes to message templates. A Catalog is immutable; With returns a modified copy.
type Catalog struct {
	templates map[Code]Template
}

// NewCatalog compiles the templates.
func NewCatalog(messages map[Code]string) (*Catalog, error) {
	c := &Catalog{templates: make(map[Code]Template, len(messages))}
	for code, src := range messages {
		t, err := ParseTemplate(src)
		if err != nil {
			return nil, fmt.Errorf("message for %s: %w", code, err)
		}
		c.templates[code] = t
	}
	return c, nil
}

func mustCatalog(messages map[Code]string) *Catalog {
	c, err := NewCatalog(messages)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	defaultCatalog = mustCatalog(basicMessages)
	schemaCatalog  = defaultCatalog.mustWith(UnknownField.Code, "unknown rule")
)

// DefaultCatalog returns the messages of the basic error handler.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// SchemaCatalog returns the messages used to report errors in schemas, where unknown
// fields are unknown rules.
func SchemaCatalog() *Catalog {
	return schemaCatalog
}

// With returns a copy of the catalog with the template for code replaced.
func (c *Catalog) With(code Code, src string) (*Catalog, error) {
	t, err := ParseTemplate(src)
	if err != nil {
		return nil, fmt.Errorf("message for %s: %w", code, err)
	}
	out := &Catalog{templates: maps.Clone(c.templates)}
	out.templates[code] = t
	return out, nil
}

func (c *Catalog) mustWith(code Code, src string) *Catalog {
	out, err := c.With(code, src)
	if err != nil {
		panic(err)
	}
	return out
}

// Without returns a copy of the catalog without a template for code.
func (c *Catalog) Without(code Code) *Catalog {
	out := &Catalog{templates: maps.Clone(c.templates)}
	delete(out.templates, code)
	return out
}

// Lookup returns the template for code.
func (c *Catalog) Lookup(code Code) (Template, bool) {
	t, ok := c.templates[code]
	return t, ok
}

// Codes returns the codes that have a template, in ascending order.
func (c *Catalog) Codes() []Code {
	codes := lo.Keys(c.templates)
	slices.Sort(codes)
	return codes
}

// Format renders the message of an error. It reports false if the catalog has no template for
// the error's code.
func (c *Catalog) Format(e *ValidationError, field any) (string, bool) {
	t, ok := c.Lookup(e.Code)
	if !ok {
		return "", false
	}
	return t.Execute(ArgsOf(e, field)), true
}

// Message renders the message of an error with its own field name.
func (c *Catalog) Message(e *ValidationError) (string, bool) {
	return c.Format(e, fieldOf(e))
}
