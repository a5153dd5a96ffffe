package validation

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// FieldError represents a single form-field validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Form accumulates validation errors for a submitted form. Handlers run
// the checks, then re-render the form with Errors when Valid is false.
type Form struct {
	Errors []FieldError
}

// NewForm creates a new form validator
func NewForm() *Form {
	return &Form{}
}

// Require records an error when the trimmed value is empty
func (f *Form) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.Errors = append(f.Errors, FieldError{Field: field, Message: field + " is required"})
	}
}

// Email records an error when the value is not a plausible email address
func (f *Form) Email(field, value string) {
	if !IsEmail(value) {
		f.Errors = append(f.Errors, FieldError{Field: field, Message: field + " must be a valid email address"})
	}
}

// MinLength records an error when the value is shorter than n characters
func (f *Form) MinLength(field, value string, n int) {
	if len(value) < n {
		f.Errors = append(f.Errors, FieldError{Field: field, Message: field + " is too short"})
	}
}

// Valid reports whether the form passed all checks
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// IsEmail reports whether the value looks like an email address
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}
