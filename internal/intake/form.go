package intake

import (
	"strconv"
	"sync"

	"bizplan-intake/internal/models"
)

// Form holds the field values and current errors of one intake session.
// It is safe for concurrent use.
type Form struct {
	mu     sync.RWMutex
	values map[string]string
	errors map[string]models.FieldError
}

// NewForm returns a form with every editable field set to "".
func NewForm() *Form {
	f := &Form{
		values: make(map[string]string),
		errors: make(map[string]models.FieldError),
	}
	for _, name := range models.AllFormFields() {
		f.values[name] = ""
	}
	return f
}

// NewFormFromValues seeds a form with values, for example the state a page posted.
func NewFormFromValues(values map[string]string) *Form {
	f := NewForm()
	for k, v := range values {
		f.values[k] = v
	}
	return f
}

func (f *Form) Value(field string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[field]
}

// Values returns a copy of every field value.
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Change records a keystroke-level edit and returns the stored value.
// Numeric fields lose any minus sign.
func (f *Form) Change(field, raw string) string {
	value := raw
	if models.IsNumericField(field) {
		value = SanitizeOnChange(raw)
	}

	f.mu.Lock()
	f.values[field] = value
	f.mu.Unlock()
	return value
}

// Blur normalizes a numeric field, validates the whole form and updates
// the error of this field only. It returns the stored value and the
// field's message, "" when valid.
func (f *Form) Blur(field string) (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if models.IsNumericField(field) {
		f.values[field] = NormalizeOnBlur(f.values[field])
	}

	msg := Validate(f.values)[field]
	if msg == "" {
		delete(f.errors, field)
	} else {
		f.errors[field] = models.FieldError{Message: msg, Origin: models.OriginClient}
	}
	return f.values[field], msg
}

// Validate checks every field and replaces all errors with the result.
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	found := Validate(f.values)
	f.errors = make(map[string]models.FieldError, len(found))
	for field, msg := range found {
		f.errors[field] = models.FieldError{Message: msg, Origin: models.OriginClient}
	}
	return found
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]models.FieldError {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]models.FieldError, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// ErrorMessages flattens Errors to field -> message.
func (f *Form) ErrorMessages() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v.Message
	}
	return out
}

// Valid reports whether no field carries an error.
func (f *Form) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.errors) == 0
}

func (f *Form) ClearErrors(fields ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range fields {
		delete(f.errors, field)
	}
}

// SetServerError attaches a backend message to a field.
func (f *Form) SetServerError(field, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[field] = models.FieldError{Message: message, Origin: models.OriginServer}
}

// ApplyPlace writes a selected address into the visible field, revalidating
// it, and into the derived address fields. Coordinates are only written when
// the place carried them.
func (f *Form) ApplyPlace(field string, addr models.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if field != "" {
		f.values[field] = addr.Formatted
		if msg := Validate(f.values)[field]; msg != "" {
			f.errors[field] = models.FieldError{Message: msg, Origin: models.OriginClient}
		} else {
			delete(f.errors, field)
		}
	}

	f.values[models.FieldBusinessAddress] = addr.Formatted
	f.values[models.FieldAddressStreet] = addr.Street
	f.values[models.FieldAddressCity] = addr.City
	f.values[models.FieldAddressState] = addr.State
	f.values[models.FieldAddressCounty] = addr.County
	f.values[models.FieldAddressZip] = addr.Zip
	f.values[models.FieldAddressCountry] = addr.Country
	if addr.Lat != nil {
		f.values[models.FieldAddressLat] = strconv.FormatFloat(*addr.Lat, 'f', -1, 64)
	}
	if addr.Lng != nil {
		f.values[models.FieldAddressLng] = strconv.FormatFloat(*addr.Lng, 'f', -1, 64)
	}
}
