package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// Result is the base operation envelope.
//
// Succeeded and StatusCode are set together by every status mutator.
// Found records whether a lookup located a record and is independent of
// Succeeded. CanContinue tells a caller whether a multi-step flow may
// proceed after this outcome; it is true for envelopes created by [New].
//
// Errors and Metadata are only reachable through methods: errors are
// append-only and metadata keys are validated on write.
//
// A service method typically starts from [New] and returns the envelope
// after exactly one status mutator:
//
//	func (s *Service) Cancel(ctx context.Context, id string) *result.Result {
//		r := result.New()
//		if err := s.repo.Cancel(ctx, id); err != nil {
//			return r.HandleServiceError("cancel failed", err)
//		}
//		return r.SuccessfulMessage("order cancelled")
//	}
//
// The caller then branches on the envelope instead of an error:
//
//	if r := svc.Cancel(ctx, id); !r.Succeeded {
//		logger.Warn("cancel failed", "reason", r.GetMessageOrError())
//	}
type Result struct {
	Succeeded   bool
	StatusCode  StatusCode
	Message     string
	Exception   error
	Found       bool
	CanContinue bool

	errors   []ResultError
	metadata Metadata
}

// New returns an unresolved envelope with CanContinue set. Resolve it
// with a status mutator (Successful, Failed, ...) before returning it.
func New() *Result {
	return &Result{CanContinue: true}
}

func nilEnvelope() *sserr.Error {
	return sserr.NilArgument("result")
}

func (r *Result) mustNotBeNil() {
	if r == nil {
		panic(nilEnvelope())
	}
}

// Base returns r.
func (r *Result) Base() *Result {
	return r
}

// IsFailed reports !Succeeded.
func (r *Result) IsFailed() bool {
	return !r.Succeeded
}

// Errors returns a copy of the recorded errors in insertion order. The
// returned slice is never nil.
func (r *Result) Errors() []ResultError {
	out := make([]ResultError, len(r.errors))
	copy(out, r.errors)
	return out
}

// HasErrors reports whether at least one error was recorded.
func (r *Result) HasErrors() bool {
	return len(r.errors) > 0
}

// AddError appends an error. Blank messages are stored as given.
func (r *Result) AddError(message string) {
	r.mustNotBeNil()
	r.errors = append(r.errors, NewError(message))
}

// AddErrorCode appends an error with a code.
func (r *Result) AddErrorCode(message, code string) {
	r.mustNotBeNil()
	r.errors = append(r.errors, NewErrorCode(message, code))
}

// AddErrors appends errs in order.
func (r *Result) AddErrors(errs ...ResultError) {
	r.mustNotBeNil()
	r.errors = append(r.errors, errs...)
}

// AddMetadata stores value under key, allocating the map on first use.
// A blank key fails with errors.CodeInvalidArgument.
func (r *Result) AddMetadata(key string, value any) error {
	if r == nil {
		return nilEnvelope()
	}
	if err := checkKey(key); err != nil {
		return err
	}
	r.setMetadata(key, value)
	return nil
}

func (r *Result) setMetadata(key string, value any) {
	if r.metadata == nil {
		r.metadata = make(Metadata)
	}
	r.metadata[key] = ValueOf(value)
}

func (r *Result) deleteMetadata(key string) {
	delete(r.metadata, key)
}

// MetadataValue implements [MetadataSource].
func (r *Result) MetadataValue(key string) (MetaValue, bool) {
	if r == nil {
		return MetaValue{}, false
	}
	return r.metadata.Get(key)
}

// Metadata returns a copy of the metadata, or nil if nothing was
// written.
func (r *Result) Metadata() Metadata {
	if r.metadata == nil {
		return nil
	}
	return maps.Clone(r.metadata)
}

// WithStatus sets Succeeded and StatusCode together.
func (r *Result) WithStatus(succeeded bool, code StatusCode) *Result {
	r.mustNotBeNil()
	r.Succeeded = succeeded
	r.StatusCode = code
	return r
}

// Successful marks the envelope succeeded with StatusOK and Found.
func (r *Result) Successful() *Result {
	return r.WithStatus(true, StatusOK).RegisterFound()
}

// SuccessfulMessage is Successful followed by WithMessage.
func (r *Result) SuccessfulMessage(message string) *Result {
	return r.Successful().WithMessage(message)
}

// Failed marks the envelope failed with StatusBadRequest.
func (r *Result) Failed() *Result {
	return r.WithStatus(false, StatusBadRequest)
}

// FailedMessage is Failed followed by WithMessage.
func (r *Result) FailedMessage(message string) *Result {
	return r.Failed().WithMessage(message)
}

// FailedWithException is FailedMessage plus the caught error.
func (r *Result) FailedWithException(message string, err error) *Result {
	return r.FailedMessage(message).WithException(err)
}

// NotFound marks the envelope failed with StatusNotFound. An empty
// message leaves Message unset. Found is not changed.
func (r *Result) NotFound(message string) *Result {
	return r.WithStatus(false, StatusNotFound).WithMessage(message)
}

// InternalServerError marks the envelope failed with
// StatusInternalServerError.
func (r *Result) InternalServerError() *Result {
	return r.WithStatus(false, StatusInternalServerError)
}

// Unauthorized marks the envelope failed with StatusUnauthorized.
func (r *Result) Unauthorized() *Result {
	return r.WithStatus(false, StatusUnauthorized)
}

// HandleServiceError records a failure caught from a dependency.
func (r *Result) HandleServiceError(message string, err error) *Result {
	return r.FailedMessage(message).WithException(err)
}

// WithMessage sets Message.
func (r *Result) WithMessage(message string) *Result {
	r.mustNotBeNil()
	r.Message = message
	return r
}

// WithError appends message as an error unless it is blank.
func (r *Result) WithError(message string) *Result {
	r.mustNotBeNil()
	if strings.TrimSpace(message) != "" {
		r.AddError(message)
	}
	return r
}

// WithErrorCode appends an error with a code.
func (r *Result) WithErrorCode(message, code string) *Result {
	r.AddErrorCode(message, code)
	return r
}

// WithErrors appends errs in order.
func (r *Result) WithErrors(errs ...ResultError) *Result {
	r.AddErrors(errs...)
	return r
}

// WithException stores an error that was caught upstream.
func (r *Result) WithException(err error) *Result {
	r.mustNotBeNil()
	r.Exception = err
	return r
}

// WithCanContinue sets CanContinue.
func (r *Result) WithCanContinue(canContinue bool) *Result {
	r.mustNotBeNil()
	r.CanContinue = canContinue
	return r
}

// RegisterFound sets Found.
func (r *Result) RegisterFound() *Result {
	r.mustNotBeNil()
	r.Found = true
	return r
}

// RegisterNotFound clears Found.
func (r *Result) RegisterNotFound() *Result {
	r.mustNotBeNil()
	r.Found = false
	return r
}

// MessageWithErrors returns "" for a succeeded envelope, otherwise
// Message, a newline and the comma-joined errors. Diagnostics only.
func (r *Result) MessageWithErrors() string {
	if r.Succeeded {
		return ""
	}
	parts := make([]string, len(r.errors))
	for i, e := range r.errors {
		parts[i] = e.String()
	}
	return r.Message + "\n" + strings.Join(parts, ",")
}

// GetMessageOrError returns "" for a succeeded envelope. Otherwise it
// returns one line per part: the message (if not blank), the
// " | "-joined error messages (if any) and the exception text.
func (r *Result) GetMessageOrError() string {
	r.mustNotBeNil()
	return r.messageOrError(true)
}

func (r *Result) messageOrError(withException bool) string {
	if r.Succeeded {
		return ""
	}
	var b strings.Builder
	if strings.TrimSpace(r.Message) != "" {
		b.WriteString(r.Message)
		b.WriteByte('\n')
	}
	if len(r.errors) > 0 {
		msgs := make([]string, len(r.errors))
		for i, e := range r.errors {
			msgs[i] = e.msg
		}
		b.WriteString(strings.Join(msgs, " | "))
		b.WriteByte('\n')
	}
	if withException && r.Exception != nil {
		b.WriteString(r.Exception.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

// Public projects r to its externally safe form.
func (r *Result) Public() *Public {
	return ToPublic(r)
}

// exceptionJSON is the serialized form of Result.Exception.
type exceptionJSON struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
}

type resultJSON struct {
	Succeeded   bool           `json:"succeeded"`
	StatusCode  StatusCode     `json:"statusCode"`
	Message     string         `json:"message,omitempty"`
	Errors      []ResultError  `json:"errors,omitempty"`
	Exception   *exceptionJSON `json:"exception,omitempty"`
	Metadata    Metadata       `json:"metadata,omitempty"`
	Found       bool           `json:"found"`
	CanContinue bool           `json:"canContinue"`
}

func (r *Result) wire() resultJSON {
	w := resultJSON{
		Succeeded:   r.Succeeded,
		StatusCode:  r.StatusCode,
		Message:     r.Message,
		Errors:      r.errors,
		Metadata:    r.metadata,
		Found:       r.Found,
		CanContinue: r.CanContinue,
	}
	if r.Exception != nil {
		w.Exception = &exceptionJSON{
			Message: r.Exception.Error(),
			Type:    fmt.Sprintf("%T", r.Exception),
			Code:    sserr.GetCode(r.Exception).String(),
		}
	}
	return w
}

func (r *Result) fromWire(w resultJSON) {
	r.Succeeded = w.Succeeded
	r.StatusCode = w.StatusCode
	r.Message = w.Message
	r.errors = w.Errors
	r.metadata = w.Metadata
	r.Found = w.Found
	r.CanContinue = w.CanContinue
	r.Exception = nil
	if w.Exception != nil {
		if w.Exception.Code != "" {
			r.Exception = sserr.New(sserr.Code(w.Exception.Code), w.Exception.Message)
		} else {
			r.Exception = errors.New(w.Exception.Message)
		}
	}
}

// MarshalJSON omits message, errors, exception and metadata when empty
// and writes StatusCode by name.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// UnmarshalJSON restores an envelope written by MarshalJSON. A
// serialized exception comes back as an error carrying only its text
// (and code, when it had one).
func (r *Result) UnmarshalJSON(data []byte) error {
	var w resultJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.fromWire(w)
	return nil
}
