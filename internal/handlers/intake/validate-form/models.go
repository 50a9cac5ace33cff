package validateform

import "bizplan-intake/internal/common/validation"

type Input struct {
	Values map[string]string `json:"values"`
}

type Output struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

var inputSchema = validation.MustCompileDocumentSchema(`{
	"type": "object",
	"required": ["values"],
	"properties": {
		"values": {"type": "object", "additionalProperties": {"type": "string"}}
	}
}`)
