package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"
)

// JSONSchema defines the structure for input schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Pattern     *string  `json:"pattern,omitempty"`
	// NotPattern rejects values that contain a match.
	NotPattern *string `json:"notPattern,omitempty"`
	MinLength  *int    `json:"minLength,omitempty"`
	MaxLength  *int    `json:"maxLength,omitempty"`
	// Format is one of "email" or "phone".
	Format string `json:"format,omitempty"`
	// Optional skips every check when the value is the empty string.
	Optional bool `json:"optional,omitempty"`
	// Message replaces the generated text for any violation of this property.
	Message string `json:"message,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validation codes.
const (
	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	CodeExtraField           = "EXTRA_FIELD"
	CodeInvalidType          = "INVALID_TYPE"
	CodeMinLength            = "MIN_LENGTH_VIOLATION"
	CodeMaxLength            = "MAX_LENGTH_VIOLATION"
	CodePatternMismatch      = "PATTERN_MISMATCH"
	CodeForbiddenPattern     = "FORBIDDEN_PATTERN"
	CodeInvalidFormat        = "INVALID_FORMAT"
	CodeInvalidEnumValue     = "INVALID_ENUM_VALUE"
	CodeMinimum              = "MINIMUM_VIOLATION"
	CodeMaximum              = "MAXIMUM_VIOLATION"
	CodeInvalidValue         = "INVALID_VALUE"
)

// ValidateInput validates input against the schema. Fields are visited in
// name order so the error list is stable.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	for _, requiredField := range schema.Required {
		if _, exists := input[requiredField]; !exists {
			errors = append(errors, ValidationError{
				Field:   requiredField,
				Message: messageOr(schema.Properties[requiredField], "required field missing"),
				Code:    CodeRequiredFieldMissing,
			})
		}
	}

	for _, fieldName := range sortedKeys(input) {
		value := input[fieldName]
		prop, exists := schema.Properties[fieldName]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: "field not allowed in schema",
					Code:    CodeExtraField,
				})
			}
			continue
		}

		if fieldErrors := validateField(fieldName, value, prop); len(fieldErrors) > 0 {
			errors = append(errors, fieldErrors...)
		}
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// ValidateStrings checks a flat map of string values. Every declared
// property is checked; a missing value is treated as "".
func ValidateStrings(values map[string]string, schema JSONSchema) *ValidationResult {
	input := make(map[string]interface{}, len(schema.Properties)+len(values))
	for name := range schema.Properties {
		input[name] = ""
	}
	for name, v := range values {
		input[name] = v
	}
	return ValidateInput(input, schema)
}

func validateField(fieldName string, value interface{}, prop Property) []ValidationError {
	errors := []ValidationError{}

	if typeErr := validateType(value, prop.Type); typeErr != nil {
		return append(errors, ValidationError{
			Field:   fieldName,
			Message: typeErr.Error(),
			Code:    CodeInvalidType,
		})
	}

	if strVal, ok := value.(string); ok {
		if prop.Optional && strVal == "" {
			return errors
		}

		// Lengths count UTF-16 code units, like the browser does.
		length := len(utf16.Encode([]rune(strVal)))
		if prop.MinLength != nil && length < *prop.MinLength {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: messageOr(prop, fmt.Sprintf("value must be at least %d characters", *prop.MinLength)),
				Code:    CodeMinLength,
			})
		}
		if prop.MaxLength != nil && length > *prop.MaxLength {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: messageOr(prop, fmt.Sprintf("value must be at most %d characters", *prop.MaxLength)),
				Code:    CodeMaxLength,
			})
		}

		if prop.Pattern != nil {
			matched, err := regexp.MatchString(*prop.Pattern, strVal)
			if err != nil || !matched {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: messageOr(prop, fmt.Sprintf("value must match pattern %s", *prop.Pattern)),
					Code:    CodePatternMismatch,
				})
			}
		}

		if prop.NotPattern != nil {
			matched, err := regexp.MatchString(*prop.NotPattern, strVal)
			if err != nil || matched {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: messageOr(prop, fmt.Sprintf("value must not match pattern %s", *prop.NotPattern)),
					Code:    CodeForbiddenPattern,
				})
			}
		}

		if prop.Format != "" && !validateFormat(prop.Format, strVal) {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: messageOr(prop, fmt.Sprintf("value must be a valid %s", prop.Format)),
				Code:    CodeInvalidFormat,
			})
		}

		if len(prop.Enum) > 0 && !contains(prop.Enum, strVal) {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: messageOr(prop, fmt.Sprintf("value must be one of %v", prop.Enum)),
				Code:    CodeInvalidEnumValue,
			})
		}
	}

	if numVal, ok := value.(float64); ok {
		if prop.Minimum != nil && numVal < *prop.Minimum {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: messageOr(prop, fmt.Sprintf("value must be >= %g", *prop.Minimum)),
				Code:    CodeMinimum,
			})
		}
		if prop.Maximum != nil && numVal > *prop.Maximum {
			errors = append(errors, ValidationError{
				Field:   fieldName,
				Message: messageOr(prop, fmt.Sprintf("value must be <= %g", *prop.Maximum)),
				Code:    CodeMaximum,
			})
		}
	}

	return errors
}

func validateType(value interface{}, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number":
		switch value.(type) {
		case float64, int, int32, int64:
		default:
			return fmt.Errorf("expected number, got %T", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	}
	return nil
}

func validateFormat(format, value string) bool {
	switch format {
	case "email":
		return ValidateEmail(value)
	case "phone":
		return ValidatePhone(value)
	case "url":
		return ValidateURL(value)
	}
	return true
}

func messageOr(prop Property, fallback string) string {
	if prop.Message != "" {
		return prop.Message
	}
	return fallback
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add appends an error and marks the result invalid.
func (vr *ValidationResult) Add(field, message, code string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message, Code: code})
	vr.Valid = false
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// FirstErrors returns the first message recorded for each field.
func (vr *ValidationResult) FirstErrors() map[string]string {
	out := make(map[string]string)
	for _, err := range vr.Errors {
		if _, seen := out[err.Field]; !seen {
			out[err.Field] = err.Message
		}
	}
	return out
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)\.]{10,}$`)
	urlPattern   = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateURL validates URL format
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}
