// Package contract holds the precondition checks guarding the layer stack and
// value histories. Checks are on by default and are compiled out when the
// module is built with the historied_unchecked tag.
package contract

import "fmt"

// ViolationError is the panic value raised when a caller breaks a documented
// precondition. It marks a programming error, not an ordinary outcome.
type ViolationError struct {
	text string
}

// Error returns a string representation of the violation.
func (e ViolationError) Error() string {
	return "contract violation: " + e.text
}

// Require panics with a ViolationError when checks are enabled and cond is false.
func Require(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(ViolationError{text: fmt.Sprintf(format, args...)})
	}
}
