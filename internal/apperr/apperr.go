package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the sentinel for a lookup key that matches no recipe.
	ErrNotFound = errors.New("recipe not found")
)

// ValidationError marks a missing or malformed required field. It is the
// caller's fault and is surfaced verbatim, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
