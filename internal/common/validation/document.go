package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// DocumentSchema is a compiled JSON Schema for request bodies.
type DocumentSchema struct {
	schema *gojsonschema.Schema
}

// CompileDocumentSchema parses a JSON Schema document.
func CompileDocumentSchema(schemaJSON string) (*DocumentSchema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &DocumentSchema{schema: s}, nil
}

// MustCompileDocumentSchema panics on an invalid schema; for package-level vars.
func MustCompileDocumentSchema(schemaJSON string) *DocumentSchema {
	s, err := CompileDocumentSchema(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a raw JSON document. A malformed document is an error;
// a well-formed document that violates the schema yields an invalid result.
func (d *DocumentSchema) Validate(document []byte) (*ValidationResult, error) {
	result, err := d.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    CodeInvalidValue,
		})
	}
	return out, nil
}
