// Package errors provides standardized error handling for the intake HTTP surface.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeIntakeValidationFailed     ErrorCode = "INTAKE_VALIDATION_FAILED"
	ErrCodeSubmissionRejected         ErrorCode = "SUBMISSION_REJECTED"
	ErrCodeUpstreamUnexpectedResponse ErrorCode = "UPSTREAM_UNEXPECTED_RESPONSE"
	ErrCodeUpstreamUnavailable        ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeLookupQueryFailed          ErrorCode = "LOOKUP_QUERY_FAILED"
	ErrCodePlaceLookupFailed          ErrorCode = "PLACE_LOOKUP_FAILED"
	ErrCodeInvalidRequest             ErrorCode = "INVALID_REQUEST"
	ErrCodeNotificationSendFailed     ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal                   ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewIntakeValidationFailedError carries the per-field messages that blocked a submit.
func NewIntakeValidationFailedError(fieldErrors map[string]string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntakeValidationFailed,
		Message:   "Intake form has invalid fields",
		Details:   fmt.Sprintf("%d field(s) failed validation", len(fieldErrors)),
		Retryable: false,
		Metadata:  map[string]interface{}{"fieldErrors": fieldErrors},
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionRejectedError is used when the backend answered with an errors map.
func NewSubmissionRejectedError(status int, fieldErrors map[string]string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionRejected,
		Message:   "Financials submission was rejected",
		Details:   fmt.Sprintf("status: %d", status),
		Retryable: false,
		Metadata:  map[string]interface{}{"status": status, "fieldErrors": fieldErrors},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnexpectedResponseError reports a non-JSON or malformed backend reply.
func NewUpstreamUnexpectedResponseError(status int, snippet string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnexpectedResponse,
		Message:   "Unexpected response from backend",
		Details:   snippet,
		Retryable: false,
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamUnavailableError wraps a transport failure.
func NewUpstreamUnavailableError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("%s is unavailable", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewLookupQueryFailedError(list string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLookupQueryFailed,
		Message:   "Lookup list query failed",
		Details:   fmt.Sprintf("list: %s, error: %s", list, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewPlaceLookupFailedError(placeID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePlaceLookupFailed,
		Message:   "Place details lookup failed",
		Details:   fmt.Sprintf("placeId: %s, error: %s", placeID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request shape error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus returns the response status for an error code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeIntakeValidationFailed, ErrCodeSubmissionRejected:
		return http.StatusUnprocessableEntity
	case ErrCodeUpstreamUnexpectedResponse, ErrCodeUpstreamUnavailable, ErrCodePlaceLookupFailed:
		return http.StatusBadGateway
	case ErrCodeLookupQueryFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// AsStandardError unwraps err looking for a *StandardError.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "UPSTREAM") || strings.Contains(codeStr, "SUBMISSION"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "PLACE"):
		return "PLACES"
	case strings.Contains(codeStr, "LOOKUP"):
		return "LOOKUP"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
