package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound marks operations referencing a record that does not exist
// or does not belong to the requesting user (treated identically, so
// callers cannot probe other users' data).
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input to a core operation. It is
// surfaced to the caller and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
