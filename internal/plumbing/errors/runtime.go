package oderrors

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// A RuntimeError wraps any failure that should abort the current operation:
// a tool exiting non-zero, a manifest that cannot be fetched, an unexpected
// OS error.
type RuntimeError interface {
	error
	Runtime() bool
}

type runtimeError struct {
	message string
	cause   error
}

// Runtime wraps e as a RuntimeError, prefixing the message. A nil error stays nil.
func Runtime(e error, message string) error {
	if e == nil {
		return nil
	}

	// Already classified; only add context
	if IsRuntime(e) {
		return pkgerrors.WithMessage(e, message)
	}

	return runtimeError{
		message: message,
		cause:   pkgerrors.WithStack(e),
	}
}

// Runtimef creates a new RuntimeError from a format string
func Runtimef(format string, args ...interface{}) error {
	return runtimeError{
		cause: pkgerrors.Errorf(format, args...),
	}
}

func (e runtimeError) Error() string {
	if e.message == "" {
		return e.cause.Error()
	}
	return e.message + ": " + e.cause.Error()
}

// Format prints the message followed by the cause's stack trace for %+v
func (e runtimeError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.message != "" {
				io.WriteString(s, e.message+": ")
			}
			fmt.Fprintf(s, "%+v", e.cause)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e runtimeError) Unwrap() error {
	return e.cause
}

func (e runtimeError) Runtime() bool {
	return true
}

// IsRuntime reports whether any error in e's chain is a RuntimeError
func IsRuntime(e error) bool {
	var rerr RuntimeError
	return errors.As(e, &rerr)
}
