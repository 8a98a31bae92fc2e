package models

import "fmt"

// Form bounds enforced client-side before a create or update request is sent.
const (
	TitleMinLen       = 5
	TitleMaxLen       = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 300
)

// ValidationError describes a field that failed the pre-submit form gate.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validateLength(field, value string, min, max int) error {
	if len(value) < min || len(value) > max {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("length must be between %d and %d characters, got %d", min, max, len(value)),
		}
	}
	return nil
}
