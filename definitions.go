/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Code is a unique identifier of an error definition.
//
// The leading bits of a code encode its family:
//
//	0x00-0x1F  existence
//	0x20-0x3F  shape
//	0x40-0x5F  content
//	0x60-0x7F  normalization
//	0x80-      group (bulk validation); with 0x10 set also logic (*of-rules)
//
// The group and logic ranges are reserved: report building dispatches on their bit pattern.
type Code uint16

const (
	groupBit Code = 0x80
	logicBit Code = 0x10
	normBit  Code = 0x60
)

// IsGroup returns true for codes of bulk validations.
func (c Code) IsGroup() bool {
	return c&groupBit != 0
}

// IsLogic returns true for codes of validations against alternative schemas (*of-rules).
// logicBit is Logical.Code - ErrorGroup.Code.
func (c Code) IsLogic() bool {
	return c.IsGroup() && c&logicBit != 0
}

// IsNormalization returns true for codes in the normalization range.
func (c Code) IsNormalization() bool {
	return !c.IsGroup() && c&normBit == normBit
}

// Family returns the family of the code.
func (c Code) Family() Family {
	switch {
	case c.IsLogic():
		return FamilyLogic
	case c.IsGroup():
		return FamilyGroup
	case c >= 0x60:
		return FamilyNormalization
	case c >= 0x40:
		return FamilyContent
	case c >= 0x20:
		return FamilyShape
	default:
		return FamilyExistence
	}
}

// String returns the hexadecimal representation of the code, e.g. "0x24".
func (c Code) String() string {
	return fmt.Sprintf("0x%02x", uint16(c))
}

// ParseCode accepts decimal and 0x-prefixed hexadecimal codes.
func ParseCode(s string) (Code, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("parse error code %q: %w", s, err)
	}
	return Code(n), nil
}

// Family is a class of error codes.
type Family uint8

const (
	FamilyExistence Family = iota
	FamilyShape
	FamilyContent
	FamilyNormalization
	FamilyGroup
	FamilyLogic
)

var familyNames = [...]string{
	FamilyExistence:     "existence",
	FamilyShape:         "shape",
	FamilyContent:       "content",
	FamilyNormalization: "normalization",
	FamilyGroup:         "group",
	FamilyLogic:         "logic",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("family(%d)", uint8(f))
}

// ErrorDefinition defines a distinguishable error by its unique code and the rule that can cause it.
// An empty Rule means the error is not caused by a particular rule.
type ErrorDefinition struct {
	Code Code
	Rule string
}

// Family returns the family of the definition's code.
func (d ErrorDefinition) Family() Family {
	return d.Code.Family()
}

func (d ErrorDefinition) String() string {
	if d.Rule == "" {
		return d.Code.String()
	}
	return fmt.Sprintf("%s (%s)", d.Rule, d.Code)
}

// Custom
var Custom = ErrorDefinition{0x00, ""}

// Existence
var (
	DocumentMissing        = ErrorDefinition{0x01, ""}
	RequiredField          = ErrorDefinition{0x02, "required"}
	UnknownField           = ErrorDefinition{0x03, ""}
	DependenciesField      = ErrorDefinition{0x04, "dependencies"}
	DependenciesFieldValue = ErrorDefinition{0x05, "dependencies"}
	ExcludesField          = ErrorDefinition{0x06, "excludes"}
)

// Shape
var (
	DocumentFormat = ErrorDefinition{0x21, ""}
	Empty          = ErrorDefinition{0x22, "empty"}
	Nullable       = ErrorDefinition{0x23, "nullable"}
	Type           = ErrorDefinition{0x24, "type"}
	ItemsLength    = ErrorDefinition{0x26, "items"}
	MinLength      = ErrorDefinition{0x27, "minlength"}
	MaxLength      = ErrorDefinition{0x28, "maxlength"}
)

// Content
var (
	RegexMismatch   = ErrorDefinition{0x41, "regex"}
	MinValue        = ErrorDefinition{0x42, "min"}
	MaxValue        = ErrorDefinition{0x43, "max"}
	UnallowedValue  = ErrorDefinition{0x44, "allowed"}
	UnallowedValues = ErrorDefinition{0x45, "allowed"}
	ForbiddenValue  = ErrorDefinition{0x46, "forbidden"}
	ForbiddenValues = ErrorDefinition{0x47, "forbidden"}
	MissingMembers  = ErrorDefinition{0x48, "contains"}
)

// Normalization
var (
	Normalization        = ErrorDefinition{0x60, ""}
	CoercionFailed       = ErrorDefinition{0x61, "coerce"}
	RenamingFailed       = ErrorDefinition{0x62, "rename_handler"}
	ReadonlyField        = ErrorDefinition{0x63, "readonly"}
	SettingDefaultFailed = ErrorDefinition{0x64, "default_setter"}
)

// Groups
var (
	ErrorGroup  = ErrorDefinition{0x80, ""}
	Schema      = ErrorDefinition{0x81, "schema"}
	ItemsRules  = ErrorDefinition{0x82, "itemsrules"}
	KeysRules   = ErrorDefinition{0x83, "keysrules"}
	ValuesRules = ErrorDefinition{0x84, "valuesrules"}
	Items       = ErrorDefinition{0x8F, "items"}

	Logical = ErrorDefinition{0x90, ""}
	NoneOf  = ErrorDefinition{0x91, "noneof"}
	OneOf   = ErrorDefinition{0x92, "oneof"}
	AnyOf   = ErrorDefinition{0x93, "anyof"}
	AllOf   = ErrorDefinition{0x94, "allof"}
)

var (
	ErrReservedCode  = errors.New("code is reserved or out of range")
	ErrDuplicateCode = errors.New("code is already defined")
)

type registry struct {
	mu     sync.RWMutex
	byCode map[Code]ErrorDefinition
}

var definitions = newRegistry(
	Custom,
	DocumentMissing, RequiredField, UnknownField, DependenciesField, DependenciesFieldValue, ExcludesField,
	DocumentFormat, Empty, Nullable, Type, ItemsLength, MinLength, MaxLength,
	RegexMismatch, MinValue, MaxValue, UnallowedValue, UnallowedValues, ForbiddenValue, ForbiddenValues,
	MissingMembers,
	Normalization, CoercionFailed, RenamingFailed, ReadonlyField, SettingDefaultFailed,
	ErrorGroup, Schema, ItemsRules, KeysRules, ValuesRules, Items,
	Logical, NoneOf, OneOf, AnyOf, AllOf,
)

func newRegistry(defs ...ErrorDefinition) *registry {
	r := &registry{byCode: make(map[Code]ErrorDefinition, len(defs))}
	for _, d := range defs {
		r.byCode[d.Code] = d
	}
	return r
}

// Definitions returns all known error definitions ordered by code.
func Definitions() []ErrorDefinition {
	definitions.mu.RLock()
	defer definitions.mu.RUnlock()

	out := make([]ErrorDefinition, 0, len(definitions.byCode))
	for _, d := range definitions.byCode {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// LookupCode returns the definition registered for the code.
func LookupCode(code Code) (ErrorDefinition, bool) {
	definitions.mu.RLock()
	defer definitions.mu.RUnlock()

	d, ok := definitions.byCode[code]
	return d, ok
}

// LookupRule returns all definitions that may be caused by the rule, ordered by code.
// Some rules (e.g. "allowed") produce different codes for single and multiple values.
func LookupRule(rule string) []ErrorDefinition {
	var out []ErrorDefinition
	for _, d := range Definitions() {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

// Register adds a custom error definition for a rule extension.
// Only the existence, shape, content and normalization ranges are available.
func Register(def ErrorDefinition) error {
	if def.Code.IsGroup() || def.Code > 0x7f {
		return fmt.Errorf("register %s: %w", def, ErrReservedCode)
	}

	definitions.mu.Lock()
	defer definitions.mu.Unlock()

	if existing, ok := definitions.byCode[def.Code]; ok {
		return fmt.Errorf("register %s: %w as %s", def, ErrDuplicateCode, existing)
	}
	definitions.byCode[def.Code] = def
	return nil
}
