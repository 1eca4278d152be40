package errors

import (
	"fmt"
	"maps"
	"net/http"
)

// Error is a structured error with a code, a message and an optional
// cause. Errors are immutable after creation; the With* methods return
// copies.
type Error struct {
	// Code is the machine-readable error code (e.g. "NF_002").
	Code Code

	// Message is the human-readable description of the failure.
	Message string

	// Cause is the underlying error, if any. Use Unwrap or errors.Is /
	// errors.As to inspect it.
	Cause error

	// Details holds structured context such as the offending metadata
	// key or the requested conversion type.
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error category to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Code.Category() {
	case CategoryArgument, CategoryCast, CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WithDetail returns a copy of e with key set to value in Details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	maps.Copy(details, e.Details)
	details[key] = value
	return &Error{Code: e.Code, Message: e.Message, Cause: e.Cause, Details: details}
}

// Format implements fmt.Formatter. %+v prints the code, message, details
// and the cause chain.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "Error{Code: %q, Message: %q", e.Code, e.Message)
			if len(e.Details) > 0 {
				fmt.Fprintf(s, ", Details: %v", e.Details)
			}
			if e.Cause != nil {
				fmt.Fprintf(s, ", Cause: %+v", e.Cause)
			}
			fmt.Fprint(s, "}")
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
