package errors

import (
	"errors"
	"fmt"
)

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a code and message. Returns nil if err is nil.
//
// Example:
//
//	if err := rows.Err(); err != nil {
//	    return errors.Wrap(err, errors.CodeInternalDatabase, "query: reading rows")
//	}
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf wraps err with a code and a formatted message. Returns nil if
// err is nil.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// InvalidArgument creates a [CodeInvalidArgument] error naming the
// offending argument.
func InvalidArgument(name, message string) *Error {
	return New(CodeInvalidArgument, message).WithDetail("argument", name)
}

// NilArgument creates a [CodeNilArgument] error naming the nil argument.
func NilArgument(name string) *Error {
	return Newf(CodeNilArgument, "%s must not be nil", name).WithDetail("argument", name)
}

// NotFound creates a [CodeNotFound] error.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// FromError returns err as an *Error, wrapping foreign errors as
// [CodeInternal]. Returns nil for nil.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, CodeInternal, "an unexpected error occurred")
}
