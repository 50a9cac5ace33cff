package submitfinancials

import "bizplan-intake/internal/common/validation"

type Input struct {
	Values map[string]string `json:"values"`
}

type Output struct {
	Status         string                 `json:"status"`
	RequestID      string                 `json:"requestId"`
	UpstreamStatus int                    `json:"upstreamStatus"`
	Response       map[string]interface{} `json:"response,omitempty"`
	NotificationID string                 `json:"notificationId,omitempty"`
}

const (
	StatusSubmitted = "submitted"
)

var inputSchema = validation.MustCompileDocumentSchema(`{
	"type": "object",
	"required": ["values"],
	"properties": {
		"values": {"type": "object", "additionalProperties": {"type": "string"}}
	}
}`)
