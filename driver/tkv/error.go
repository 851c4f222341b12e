package tkv

import (
	"fmt"
)

// EncodingError represents an error that occurs during encoding operations.
type EncodingError struct {
	ObjectType string
	Text       string
	Err        error
}

// Error returns the error message.
func (e EncodingError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("failed to encode %s: %s", e.ObjectType, e.Err)
	}

	return fmt.Sprintf("failed to encode %s, %s: %s", e.ObjectType, e.Text, e.Err)
}

func (e EncodingError) Unwrap() error {
	return e.Err
}

// NewOperationEncodingError returns a new operation encoding error.
func NewOperationEncodingError(text string, err error) error {
	if err == nil {
		return nil
	}

	return EncodingError{
		ObjectType: "operation",
		Text:       text,
		Err:        err,
	}
}
