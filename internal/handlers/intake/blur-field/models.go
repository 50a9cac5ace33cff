package blurfield

import "bizplan-intake/internal/common/validation"

type Input struct {
	Values map[string]string `json:"values"`
	Field  string            `json:"field"`
}

// Output carries the normalized display value and the field's error, if any.
type Output struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

var inputSchema = validation.MustCompileDocumentSchema(`{
	"type": "object",
	"required": ["values", "field"],
	"properties": {
		"values": {"type": "object", "additionalProperties": {"type": "string"}},
		"field": {"type": "string", "minLength": 1}
	}
}`)
