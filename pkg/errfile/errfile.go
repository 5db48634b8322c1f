/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package errfile reads and writes validation errors as JSON:
//
//	[{"document_path": ["items", 1], "schema_path": ["items", "type"], "code": "0x24",
//	  "rule": "type", "constraint": "string", "value": 5, "info": [], "children": []}]
//
// Integer path elements are sequence indexes. Codes are numbers or 0x-prefixed strings. The
// rule defaults to the rule of the registered definition. Children are only read for group codes.
package errfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/acronis/go-verrors"
)

var ErrInvalidJSON = errors.New("error file is not valid json")

// Decode parses an error file.
func Decode(data []byte) (verrors.ErrorList, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	if err := validate(data); err != nil {
		return nil, err
	}

	var (
		errs   verrors.ErrorList
		decErr error
	)
	gjson.ParseBytes(data).ForEach(func(_, item gjson.Result) bool {
		var e *verrors.ValidationError
		if e, decErr = decodeError(item); decErr != nil {
			return false
		}
		errs = append(errs, e)
		return true
	})
	if decErr != nil {
		return nil, decErr
	}
	return errs, nil
}

// ReadFile reads and decodes the error file at path.
func ReadFile(path string) (verrors.ErrorList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read error file: %w", err)
	}
	errs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return errs, nil
}

func decodeError(item gjson.Result) (*verrors.ValidationError, error) {
	code, err := decodeCode(item.Get("code"))
	if err != nil {
		return nil, err
	}
	def, ok := verrors.LookupCode(code)
	if !ok {
		def = verrors.ErrorDefinition{Code: code}
	}
	if rule := item.Get("rule"); rule.Exists() {
		def.Rule = rule.String()
	}

	docPath := decodePath(item.Get("document_path"))
	schemaPath := decodePath(item.Get("schema_path"))
	constraint := item.Get("constraint").Value()
	value := item.Get("value").Value()

	var info []any
	for _, arg := range item.Get("info").Array() {
		info = append(info, arg.Value())
	}

	if !code.IsGroup() {
		return verrors.New(def, docPath, schemaPath, constraint, value, info...), nil
	}

	var children verrors.ErrorList
	for _, c := range item.Get("children").Array() {
		child, err := decodeError(c)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	e := verrors.NewGroup(def, docPath, schemaPath, constraint, value, children)
	e.Info.(*verrors.Group).Extra = info
	return e, nil
}

func decodeCode(r gjson.Result) (verrors.Code, error) {
	if r.Type == gjson.Number {
		return verrors.Code(r.Uint()), nil
	}
	return verrors.ParseCode(r.String())
}

func decodePath(r gjson.Result) verrors.Path {
	items := r.Array()
	p := make(verrors.Path, 0, len(items))
	for _, seg := range items {
		if seg.Type == gjson.Number {
			p = append(p, verrors.Index(int(seg.Int())))
		} else {
			p = append(p, verrors.Name(seg.String()))
		}
	}
	return p
}

type wireError struct {
	DocumentPath []any        `json:"document_path"`
	SchemaPath   []any        `json:"schema_path"`
	Code         string       `json:"code"`
	Rule         string       `json:"rule,omitempty"`
	Constraint   any          `json:"constraint,omitempty"`
	Value        any          `json:"value,omitempty"`
	Info         []any        `json:"info,omitempty"`
	Children     []*wireError `json:"children,omitempty"`
}

func toWire(e *verrors.ValidationError) *wireError {
	w := &wireError{
		DocumentPath: e.DocumentPath.Keys(),
		SchemaPath:   e.SchemaPath.Keys(),
		Code:         e.Code.String(),
		Rule:         e.Rule,
		Constraint:   wireValue(e.Constraint),
		Value:        wireValue(e.Value),
	}
	var args []any
	switch info := e.Info.(type) {
	case verrors.Details:
		args = info
	case *verrors.Group:
		args = info.Extra
		for _, child := range info.Children {
			w.Children = append(w.Children, toWire(child))
		}
	}
	for _, arg := range args {
		w.Info = append(w.Info, wireValue(arg))
	}
	return w
}

// wireValue renders values that have no JSON form as text.
func wireValue(v any) any {
	switch x := v.(type) {
	case error:
		return x.Error()
	case verrors.Path:
		return x.Keys()
	case verrors.Segment:
		return x.Key()
	case verrors.ErrorList:
		return verrors.Repr(x)
	}
	return v
}

// Encode renders the errors in the format read by Decode.
func Encode(errs verrors.ErrorList) ([]byte, error) {
	out := make([]*wireError, 0, len(errs))
	for _, e := range errs {
		out = append(out, toWire(e))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode error file: %w", err)
	}
	return data, nil
}
