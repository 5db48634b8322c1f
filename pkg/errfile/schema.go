/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package errfile

import (
	"fmt"

	"github.com/acronis/go-stacktrace"
	"github.com/xeipuuv/gojsonschema"
)

const fileSchema = `{
  "type": "array",
  "items": {"$ref": "#/definitions/error"},
  "definitions": {
    "path": {
      "type": "array",
      "items": {
        "oneOf": [
          {"type": "string"},
          {"type": "integer", "minimum": 0}
        ]
      }
    },
    "error": {
      "type": "object",
      "required": ["document_path", "code"],
      "properties": {
        "document_path": {"$ref": "#/definitions/path"},
        "schema_path": {"$ref": "#/definitions/path"},
        "code": {
          "oneOf": [
            {"type": "integer", "minimum": 0, "maximum": 255},
            {"type": "string", "pattern": "^0[xX][0-9a-fA-F]{1,2}$"}
          ]
        },
        "rule": {"type": "string"},
        "info": {"type": "array"},
        "children": {"type": "array", "items": {"$ref": "#/definitions/error"}}
      }
    }
  }
}`

var compiledFileSchema = mustCompileSchema(fileSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Errorf("compile schema: %w", err))
	}
	return s
}

// validate checks the shape of an error file before it is decoded.
func validate(data []byte) error {
	res, err := compiledFileSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if res.Valid() {
		return nil
	}
	st := stacktrace.New("invalid error file")
	for _, resErr := range res.Errors() {
		_ = st.Append(stacktrace.New(resErr.Description(), stacktrace.WithInfo("context", resErr.Context().String("."))))
	}
	return st
}
