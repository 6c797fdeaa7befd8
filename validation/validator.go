package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/nlpwire/errors"
)

// Validator collects validation errors.
type Validator struct {
	name   string
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator for the named declaration.
func New(name string) *Validator {
	return &Validator{
		name:   name,
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.InvalidDeclaration(v.name, v.name+": "+strings.Join(messages, "; "))
	appErr.WithDetail("fields", v.errors)
	return appErr
}

// Unique checks that no value occurs twice.
func (v *Validator) Unique(field string, values []string) *Validator {
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		if seen[value] {
			v.AddError(field, fmt.Sprintf("duplicate entry %q", value))
			continue
		}
		seen[value] = true
	}
	return v
}

// Custom adds an error if the condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
