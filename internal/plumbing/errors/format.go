package oderrors

import (
	"errors"
	"fmt"
)

// A FormatError signals input that does not have the expected shape, such as
// a catalog line with the wrong number of fields.
type FormatError struct {
	Input  string
	Reason string
}

// Format creates a FormatError for the given input
func Format(input, reason string) error {
	return FormatError{
		Input:  input,
		Reason: reason,
	}
}

func (e FormatError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

// IsFormat reports whether any error in e's chain is a FormatError
func IsFormat(e error) bool {
	var ferr FormatError
	return errors.As(e, &ferr)
}
