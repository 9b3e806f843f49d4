package logicerr

import (
	"errors"
	"fmt"
)

// Error marks errors caused by the caller's request rather than by the
// underlying storage. Check with errors.Is(err, logicerr.Error).
var Error = errors.New("logical error")

// New returns a logical error with the provided message.
func New(msg string) error {
	return Wrap(errors.New(msg))
}

// Wrap marks arbitrary error as a logical one.
func Wrap(err error) error {
	return fmt.Errorf("%w: %w", Error, err)
}

// Is reports whether err is a logical error.
func Is(err error) bool {
	return errors.Is(err, Error)
}
