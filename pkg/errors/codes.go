package errors

import "strings"

// Code is a machine-readable error code of the form CATEGORY_XXX.
type Code string

// Categories recognized by [Code.Category].
const (
	CategoryArgument   = "ARG"
	CategoryNotFound   = "NF"
	CategoryCast       = "CAST"
	CategoryValidation = "VAL"
	CategoryInternal   = "INT"
	CategoryTimeout    = "TIMEOUT"
)

const (
	// CodeInvalidArgument: an argument has an unusable value, such as a
	// blank metadata key.
	CodeInvalidArgument Code = "ARG_001"

	// CodeNilArgument: a required argument or receiver is nil.
	CodeNilArgument Code = "ARG_002"

	// CodeNotFound: a requested item does not exist.
	CodeNotFound Code = "NF_001"

	// CodeMetadataNotFound: a metadata key was never written.
	CodeMetadataNotFound Code = "NF_002"

	// CodeCast: a stored value cannot be converted to the requested type.
	CodeCast Code = "CAST_001"

	// CodeValidation: a value failed validation.
	CodeValidation Code = "VAL_001"

	// CodeValidationRequired: a required field is missing.
	CodeValidationRequired Code = "VAL_002"

	// CodeInternal: an unexpected internal failure.
	CodeInternal Code = "INT_001"

	// CodeInternalDatabase: a database operation failed.
	CodeInternalDatabase Code = "INT_002"

	// CodeInternalConfiguration: configuration could not be loaded.
	CodeInternalConfiguration Code = "INT_003"

	// CodeTimeout: an operation exceeded its time limit.
	CodeTimeout Code = "TIMEOUT_001"

	// CodeTimeoutDatabase: a database operation timed out or was canceled.
	CodeTimeoutDatabase Code = "TIMEOUT_002"
)

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}

// Category returns the prefix before the first underscore.
func (c Code) Category() string {
	s := string(c)
	if i := strings.IndexByte(s, '_'); i >= 0 {
		return s[:i]
	}
	return s
}
