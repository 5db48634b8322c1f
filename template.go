/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package verrors

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

type placeholder uint8

const (
	literalPart placeholder = iota
	positionalPart
	constraintPart
	fieldPart
	valuePart
)

type templatePart struct {
	kind  placeholder
	text  string
	index int
}

// Template is a compiled message template.
//
// Positional placeholders {0}, {1}, ... refer to the error info arguments; the named placeholders
// {constraint}, {field} and {value} refer to the error attributes. Braces are escaped by doubling.
type Template struct {
	source string
	parts  []templatePart
}

var errTemplateSyntax = errors.New("invalid template")

// ParseTemplate compiles a message template.
func ParseTemplate(src string) (Template, error) {
	var (
		parts []templatePart
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, templatePart{kind: literalPart, text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return Template{}, fmt.Errorf("%w %q: unclosed placeholder at %d", errTemplateSyntax, src, i)
			}
			name := src[i+1 : i+1+end]
			part, err := parsePlaceholder(name)
			if err != nil {
				return Template{}, fmt.Errorf("%w %q: %w", errTemplateSyntax, src, err)
			}
			flush()
			parts = append(parts, part)
			i += end + 1
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				i++
			}
			lit.WriteByte('}')
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return Template{source: src, parts: parts}, nil
}

func parsePlaceholder(name string) (templatePart, error) {
	switch name {
	case "constraint":
		return templatePart{kind: constraintPart}, nil
	case "field":
		return templatePart{kind: fieldPart}, nil
	case "value":
		return templatePart{kind: valuePart}, nil
	}
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 {
		return templatePart{}, fmt.Errorf("unknown placeholder {%s}", name)
	}
	return templatePart{kind: positionalPart, index: i}, nil
}

// MustTemplate is like ParseTemplate but panics on syntax errors.
func MustTemplate(src string) Template {
	t, err := ParseTemplate(src)
	if err != nil {
		panic(err)
	}
	return t
}

// Source returns the uncompiled template.
func (t Template) Source() string {
	return t.source
}

// TemplateArgs are the values a template is rendered with.
type TemplateArgs struct {
	Positional []any
	Constraint any
	Field      any
	Value      any
}

// ArgsOf collects the template arguments of an error.
// The field is passed separately: report building may substitute the original field name.
func ArgsOf(e *ValidationError, field any) TemplateArgs {
	return TemplateArgs{
		Positional: e.Args(),
		Constraint: e.Constraint,
		Field:      field,
		Value:      e.Value,
	}
}

// Execute renders the template. Positional placeholders without a matching argument
// are kept verbatim.
func (t Template) Execute(args TemplateArgs) string {
	var b strings.Builder
	for _, p := range t.parts {
		switch p.kind {
		case literalPart:
			b.WriteString(p.text)
		case positionalPart:
			if p.index < len(args.Positional) {
				b.WriteString(Repr(args.Positional[p.index]))
			} else {
				fmt.Fprintf(&b, "{%d}", p.index)
			}
		case constraintPart:
			b.WriteString(Repr(args.Constraint))
		case fieldPart:
			b.WriteString(Repr(args.Field))
		case valuePart:
			b.WriteString(Repr(args.Value))
		}
	}
	return b.String()
}

// Repr renders a value for human-readable messages: strings are bare at the top level and
// single-quoted inside collections, sequences are bracketed and mappings are braced with sorted keys.
func Repr(v any) string {
	var b strings.Builder
	writeRepr(&b, v, false)
	return b.String()
}

func writeRepr(b *strings.Builder, v any, nested bool) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		b.WriteString("null")
		return
	}
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
		return
	case string:
		if nested {
			b.WriteString(quote(x))
		} else {
			b.WriteString(x)
		}
		return
	case Segment:
		if nested && !x.IsIndex() {
			b.WriteString(quote(x.name))
		} else {
			b.WriteString(x.String())
		}
		return
	case fmt.Stringer:
		b.WriteString(x.String())
		return
	case error:
		b.WriteString(x.Error())
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		writeRepr(b, rv.Elem().Interface(), nested)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			b.WriteString(quote(string(rv.Bytes())))
			return
		}
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, rv.Index(i).Interface(), true)
		}
		b.WriteByte(']')
	case reflect.Map:
		keys := rv.MapKeys()
		rendered := make([]string, len(keys))
		for i, k := range keys {
			var kb strings.Builder
			writeRepr(&kb, k.Interface(), true)
			kb.WriteString(": ")
			writeRepr(&kb, rv.MapIndex(k).Interface(), true)
			rendered[i] = kb.String()
		}
		sort.Strings(rendered)
		b.WriteByte('{')
		b.WriteString(strings.Join(rendered, ", "))
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
