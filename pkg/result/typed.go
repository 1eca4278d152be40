package result

import (
	"encoding/json"
	"reflect"
)

// Of is a [Result] carrying a payload of type T in Data.
//
// All Result mutators are redeclared on Of so that chains keep the typed
// envelope and a nil *Of fails at entry with errors.CodeNilArgument
// instead of dereferencing the embedded Result.
//
//	func findOrder(id int64) *result.Of[Order] {
//	    o, err := repo.Get(id)
//	    if err != nil {
//	        return result.NewOf[Order]().HandleServiceError("order lookup failed", err)
//	    }
//	    return result.NewOf[Order]().SuccessfulData(o)
//	}
type Of[T any] struct {
	Result
	Data T
}

// NewOf returns an unresolved typed envelope with CanContinue set and a
// zero Data.
func NewOf[T any]() *Of[T] {
	return &Of[T]{Result: Result{CanContinue: true}}
}

func (r *Of[T]) mustNotBeNil() {
	if r == nil {
		panic(nilEnvelope())
	}
}

// Base returns the embedded Result, or nil for a nil r.
func (r *Of[T]) Base() *Result {
	if r == nil {
		return nil
	}
	return &r.Result
}

// AddError appends an error. Blank messages are stored as given.
func (r *Of[T]) AddError(message string) {
	r.mustNotBeNil()
	r.Result.AddError(message)
}

// AddErrorCode appends an error with a code.
func (r *Of[T]) AddErrorCode(message, code string) {
	r.mustNotBeNil()
	r.Result.AddErrorCode(message, code)
}

// AddErrors appends errs in order.
func (r *Of[T]) AddErrors(errs ...ResultError) {
	r.mustNotBeNil()
	r.Result.AddErrors(errs...)
}

// AddMetadata stores value under key. A nil r fails with
// errors.CodeNilArgument and a blank key with errors.CodeInvalidArgument.
func (r *Of[T]) AddMetadata(key string, value any) error {
	if r == nil {
		return nilEnvelope()
	}
	return r.Result.AddMetadata(key, value)
}

// MetadataValue implements [MetadataSource]; a nil r has no metadata.
func (r *Of[T]) MetadataValue(key string) (MetaValue, bool) {
	if r == nil {
		return MetaValue{}, false
	}
	return r.Result.MetadataValue(key)
}

// DataType returns the static type of T. Informational only.
func (r *Of[T]) DataType() reflect.Type {
	return reflect.TypeFor[T]()
}

// WithData sets Data.
func (r *Of[T]) WithData(data T) *Of[T] {
	r.mustNotBeNil()
	r.Data = data
	return r
}

// WithStatus sets Succeeded and StatusCode together.
func (r *Of[T]) WithStatus(succeeded bool, code StatusCode) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithStatus(succeeded, code)
	return r
}

// Successful marks the envelope succeeded with StatusOK and Found.
func (r *Of[T]) Successful() *Of[T] {
	r.mustNotBeNil()
	r.Result.Successful()
	return r
}

// SuccessfulMessage is Successful followed by WithMessage.
func (r *Of[T]) SuccessfulMessage(message string) *Of[T] {
	return r.Successful().WithMessage(message)
}

// SuccessfulData is Successful followed by WithData.
func (r *Of[T]) SuccessfulData(data T) *Of[T] {
	return r.Successful().WithData(data)
}

// Warning marks a non-blocking issue: Succeeded with StatusNoContent.
func (r *Of[T]) Warning(message string) *Of[T] {
	return r.WithStatus(true, StatusNoContent).WithMessage(message)
}

// WarningData is Warning followed by WithData.
func (r *Of[T]) WarningData(data T, message string) *Of[T] {
	return r.Warning(message).WithData(data)
}

// Failed marks the envelope failed with StatusBadRequest.
func (r *Of[T]) Failed() *Of[T] {
	return r.WithStatus(false, StatusBadRequest)
}

// FailedMessage is Failed followed by WithMessage.
func (r *Of[T]) FailedMessage(message string) *Of[T] {
	return r.Failed().WithMessage(message)
}

// FailedContinue is FailedMessage followed by WithCanContinue.
func (r *Of[T]) FailedContinue(message string, canContinue bool) *Of[T] {
	return r.FailedMessage(message).WithCanContinue(canContinue)
}

// FailedWithData is FailedMessage followed by WithData.
func (r *Of[T]) FailedWithData(message string, data T) *Of[T] {
	return r.FailedMessage(message).WithData(data)
}

// FailedWithException is FailedMessage plus the caught error.
func (r *Of[T]) FailedWithException(message string, err error) *Of[T] {
	return r.FailedMessage(message).WithException(err)
}

// NotFound marks the envelope failed with StatusNotFound.
func (r *Of[T]) NotFound(message string) *Of[T] {
	return r.WithStatus(false, StatusNotFound).WithMessage(message)
}

// InternalServerError marks the envelope failed with
// StatusInternalServerError.
func (r *Of[T]) InternalServerError() *Of[T] {
	return r.WithStatus(false, StatusInternalServerError)
}

// Unauthorized marks the envelope failed with StatusUnauthorized.
func (r *Of[T]) Unauthorized() *Of[T] {
	return r.WithStatus(false, StatusUnauthorized)
}

// HandleServiceError records a failure caught from a dependency and
// resets Data to the zero value.
func (r *Of[T]) HandleServiceError(message string, err error) *Of[T] {
	var zero T
	return r.FailedWithException(message, err).WithData(zero)
}

// WithMessage sets Message.
func (r *Of[T]) WithMessage(message string) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithMessage(message)
	return r
}

// WithError appends message as an error unless it is blank.
func (r *Of[T]) WithError(message string) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithError(message)
	return r
}

// WithErrorCode appends an error with a code.
func (r *Of[T]) WithErrorCode(message, code string) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithErrorCode(message, code)
	return r
}

// WithErrors appends errs in order.
func (r *Of[T]) WithErrors(errs ...ResultError) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithErrors(errs...)
	return r
}

// WithException stores an error that was caught upstream.
func (r *Of[T]) WithException(err error) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithException(err)
	return r
}

// WithCanContinue sets CanContinue.
func (r *Of[T]) WithCanContinue(canContinue bool) *Of[T] {
	r.mustNotBeNil()
	r.Result.WithCanContinue(canContinue)
	return r
}

// RegisterFound sets Found.
func (r *Of[T]) RegisterFound() *Of[T] {
	r.mustNotBeNil()
	r.Result.RegisterFound()
	return r
}

// RegisterNotFound clears Found.
func (r *Of[T]) RegisterNotFound() *Of[T] {
	r.mustNotBeNil()
	r.Result.RegisterNotFound()
	return r
}

// GetMessageOrError is the Result form without the exception text; a
// typed envelope reports the exception through logging only.
func (r *Of[T]) GetMessageOrError() string {
	r.mustNotBeNil()
	return r.Result.messageOrError(false)
}

// Public projects r to its externally safe form.
func (r *Of[T]) Public() *PublicOf[T] {
	return ToPublicOf(r)
}

type ofJSON[T any] struct {
	resultJSON
	Data T `json:"data"`
}

// MarshalJSON writes the Result fields plus "data".
func (r Of[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(ofJSON[T]{resultJSON: r.Result.wire(), Data: r.Data})
}

// UnmarshalJSON restores an envelope written by MarshalJSON.
func (r *Of[T]) UnmarshalJSON(data []byte) error {
	var w ofJSON[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Result.fromWire(w.resultJSON)
	r.Data = w.Data
	return nil
}
