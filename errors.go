package historied

import (
	"errors"
	"fmt"
)

// ErrNilDriver is returned by Flush when no driver is given.
var ErrNilDriver = errors.New("driver is nil")

// FlushError is returned when committed changes could not be written to a
// driver. Nothing is written in that case.
type FlushError struct {
	changes int
	parent  error
}

func errFlush(changes int, parent error) error {
	if parent == nil {
		return nil
	}

	return FlushError{changes: changes, parent: parent}
}

// Changes returns the number of changes the failed flush carried.
func (e FlushError) Changes() int {
	return e.changes
}

// Unwrap returns the underlying error.
func (e FlushError) Unwrap() error {
	return e.parent
}

// Error returns a string representation of the flush error.
func (e FlushError) Error() string {
	return fmt.Sprintf("failed to flush %d changes: %s", e.changes, e.parent)
}
