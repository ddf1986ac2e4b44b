package resume

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks structurally invalid input rejected before any scoring runs.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a single structural problem with caller input.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid is a shorthand for building an InputError.
func Invalid(field, format string, args ...any) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}
