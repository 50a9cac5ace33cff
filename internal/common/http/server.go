package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	commonerrors "bizplan-intake/internal/common/errors"
	"bizplan-intake/internal/common/validation"
)

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads the request body, checks it against schema (when not
// nil) and unmarshals it into v. Failures are INVALID_REQUEST errors.
func DecodeJSON(r *http.Request, schema *validation.DocumentSchema, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return commonerrors.NewInvalidRequestError(fmt.Sprintf("read body: %v", err))
	}

	if schema != nil {
		result, err := schema.Validate(body)
		if err != nil {
			return commonerrors.NewInvalidRequestError("body is not valid JSON")
		}
		if !result.Valid {
			return commonerrors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; ")).
				WithMetadata("errors", result.Errors)
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return commonerrors.NewInvalidRequestError(fmt.Sprintf("decode body: %v", err))
	}
	return nil
}
