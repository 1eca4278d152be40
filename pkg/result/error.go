package result

import "encoding/json"

// ResultError is one discrete failure recorded on an envelope. It is
// immutable after construction.
type ResultError struct {
	msg  string
	code string
}

// NewError returns a ResultError without a code.
func NewError(message string) ResultError {
	return ResultError{msg: message}
}

// NewErrorCode returns a ResultError with a machine-readable code.
func NewErrorCode(message, code string) ResultError {
	return ResultError{msg: message, code: code}
}

// Message returns the failure text.
func (e ResultError) Message() string {
	return e.msg
}

// Code returns the machine-readable code, or "".
func (e ResultError) Code() string {
	return e.code
}

// String renders "Error[code]: message", or just the message when there
// is no code.
func (e ResultError) String() string {
	if e.code != "" {
		return "Error[" + e.code + "]: " + e.msg
	}
	return e.msg
}

type resultErrorJSON struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MarshalJSON writes {"error": ..., "code": ...}.
func (e ResultError) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultErrorJSON{Error: e.msg, Code: e.code})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (e *ResultError) UnmarshalJSON(data []byte) error {
	var w resultErrorJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.msg, e.code = w.Error, w.Code
	return nil
}
