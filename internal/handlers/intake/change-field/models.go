package changefield

import "bizplan-intake/internal/common/validation"

type Input struct {
	Values map[string]string `json:"values"`
	Field  string            `json:"field"`
	Value  string            `json:"value"`
}

type Output struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

var inputSchema = validation.MustCompileDocumentSchema(`{
	"type": "object",
	"required": ["field", "value"],
	"properties": {
		"values": {"type": "object", "additionalProperties": {"type": "string"}},
		"field": {"type": "string", "minLength": 1},
		"value": {"type": "string"}
	}
}`)
