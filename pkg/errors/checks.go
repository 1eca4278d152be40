package errors

import "errors"

// AsError finds the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return GetCode(err) == code
}

func hasCategory(err error, category string) bool {
	e, ok := AsError(err)
	return ok && e.Code.Category() == category
}

// IsInvalidArgument reports whether err is an argument error (ARG_xxx),
// including nil-argument errors.
func IsInvalidArgument(err error) bool {
	return hasCategory(err, CategoryArgument)
}

// IsNotFound reports whether err is a not-found error (NF_xxx).
func IsNotFound(err error) bool {
	return hasCategory(err, CategoryNotFound)
}

// IsCast reports whether err is a conversion error (CAST_xxx).
func IsCast(err error) bool {
	return hasCategory(err, CategoryCast)
}

// IsValidation reports whether err is a validation error (VAL_xxx).
func IsValidation(err error) bool {
	return hasCategory(err, CategoryValidation)
}

// IsInternal reports whether err is an internal error (INT_xxx).
func IsInternal(err error) bool {
	return hasCategory(err, CategoryInternal)
}

// IsTimeout reports whether err is a timeout error (TIMEOUT_xxx).
func IsTimeout(err error) bool {
	return hasCategory(err, CategoryTimeout)
}
