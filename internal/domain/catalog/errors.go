package catalog

import "fmt"

// ValidationError reports a referential-integrity or range violation in the
// catalogue or in solve input. Unknown references fail fast with this error
// before any model is constructed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
