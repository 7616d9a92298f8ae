package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an application-level error
type Kind int

const (
	ErrInternal Kind = iota
	ErrNotFound
	ErrInvalidArgument
	ErrUpstream
)

// Error is an application-level error with a kind for classification
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Constructor functions for common error types

func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(msg string) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: msg}
}

func InvalidArgumentf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps an I/O failure from the ranking store or the name
// directory. The wrapped error is preserved for logging.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: ErrUpstream, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: ErrInternal, Message: msg, Err: err}
}

// kindOf extracts the Kind from an error chain, defaulting to ErrInternal
func kindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrInternal
}

// IsNotFound reports whether err is classified as a not-found error
func IsNotFound(err error) bool {
	return err != nil && kindOf(err) == ErrNotFound
}

// IsInvalidArgument reports whether err is classified as an invalid-argument error
func IsInvalidArgument(err error) bool {
	return err != nil && kindOf(err) == ErrInvalidArgument
}

// IsUpstream reports whether err is classified as an upstream I/O failure
func IsUpstream(err error) bool {
	return err != nil && kindOf(err) == ErrUpstream
}
