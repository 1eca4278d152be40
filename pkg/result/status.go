package result

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// StatusCode is the HTTP-style status attached to an envelope. It
// serializes to JSON as its symbolic name ("OK", "BadRequest", ...).
type StatusCode int

// Status codes set by the envelope mutators and factories.
const (
	StatusOK                  StatusCode = http.StatusOK
	StatusNoContent           StatusCode = http.StatusNoContent
	StatusBadRequest          StatusCode = http.StatusBadRequest
	StatusUnauthorized        StatusCode = http.StatusUnauthorized
	StatusForbidden           StatusCode = http.StatusForbidden
	StatusNotFound            StatusCode = http.StatusNotFound
	StatusConflict            StatusCode = http.StatusConflict
	StatusInternalServerError StatusCode = http.StatusInternalServerError
	StatusServiceUnavailable  StatusCode = http.StatusServiceUnavailable
	StatusGatewayTimeout      StatusCode = http.StatusGatewayTimeout
)

var statusNames = map[StatusCode]string{
	http.StatusContinue:            "Continue",
	StatusOK:                       "OK",
	http.StatusCreated:             "Created",
	http.StatusAccepted:            "Accepted",
	StatusNoContent:                "NoContent",
	http.StatusPartialContent:      "PartialContent",
	http.StatusMovedPermanently:    "MovedPermanently",
	http.StatusFound:               "Found",
	http.StatusNotModified:         "NotModified",
	StatusBadRequest:               "BadRequest",
	StatusUnauthorized:             "Unauthorized",
	StatusForbidden:                "Forbidden",
	StatusNotFound:                 "NotFound",
	http.StatusMethodNotAllowed:    "MethodNotAllowed",
	http.StatusRequestTimeout:      "RequestTimeout",
	StatusConflict:                 "Conflict",
	http.StatusGone:                "Gone",
	http.StatusPreconditionFailed:  "PreconditionFailed",
	http.StatusUnprocessableEntity: "UnprocessableEntity",
	http.StatusTooManyRequests:     "TooManyRequests",
	StatusInternalServerError:      "InternalServerError",
	http.StatusNotImplemented:      "NotImplemented",
	http.StatusBadGateway:          "BadGateway",
	StatusServiceUnavailable:       "ServiceUnavailable",
	StatusGatewayTimeout:           "GatewayTimeout",
}

var statusByName = func() map[string]StatusCode {
	m := make(map[string]StatusCode, len(statusNames))
	for code, name := range statusNames {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// String returns the symbolic name, or the decimal code for statuses
// without one.
func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// Int returns the numeric HTTP status.
func (s StatusCode) Int() int {
	return int(s)
}

// IsSuccess reports whether s is in the 2xx range.
func (s StatusCode) IsSuccess() bool {
	return s >= 200 && s < 300
}

// MarshalJSON writes the symbolic name as a JSON string.
func (s StatusCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a symbolic name (case-insensitive), a decimal
// string or a JSON number.
func (s *StatusCode) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = StatusCode(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return sserr.Wrap(err, sserr.CodeCast, "result: status code must be a string or number")
	}
	parsed, err := ParseStatusCode(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatusCode parses a symbolic name or decimal status code.
func ParseStatusCode(name string) (StatusCode, error) {
	if code, ok := statusByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		return StatusCode(n), nil
	}
	return 0, sserr.Newf(sserr.CodeCast, "result: unknown status code %q", name)
}
