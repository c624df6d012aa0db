// Package validate marks errors caused by bad client input so HTTP
// handlers can map them to 400 responses and treat everything else as
// an internal failure.
package validate

import (
	"errors"
	"fmt"
)

// Error carries a client-facing message about invalid input. Storage
// and other unexpected errors are never wrapped in it.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Errorf builds a client-facing input error.
func Errorf(format string, args ...interface{}) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// IsError reports whether err is (or wraps) an input error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
