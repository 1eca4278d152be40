// Package factory builds envelopes in their canonical shapes so every
// call site produces the same success, warning, failure and not-found
// outcomes.
//
// Failures built here always carry CanContinue=false. Callers that want
// a recoverable failure use [FailureOfContinue] or set the flag on the
// returned envelope.
package factory

import (
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
)

// Success returns a succeeded envelope with StatusOK and Found.
func Success() *result.Result {
	return result.New().Successful()
}

// SuccessMessage is [Success] with a message.
func SuccessMessage(message string) *result.Result {
	return result.New().SuccessfulMessage(message)
}

// SuccessOf returns a succeeded typed envelope carrying data.
func SuccessOf[T any](data T) *result.Of[T] {
	return result.NewOf[T]().SuccessfulData(data)
}

// Warning returns a succeeded typed envelope with StatusNoContent.
func Warning[T any](message string) *result.Of[T] {
	return result.NewOf[T]().Warning(message)
}

// WarningWithData is [Warning] carrying data.
func WarningWithData[T any](data T, message string) *result.Of[T] {
	return result.NewOf[T]().WarningData(data, message)
}

// Failure returns a failed envelope with StatusBadRequest.
func Failure(message string) *result.Result {
	return result.New().FailedMessage(message).WithCanContinue(false)
}

// FailureWithException is [Failure] recording the caught error.
func FailureWithException(message string, err error) *result.Result {
	return Failure(message).WithException(err)
}

// FailureOf returns a failed typed envelope with StatusBadRequest.
func FailureOf[T any](message string) *result.Of[T] {
	return FailureOfContinue[T](message, false)
}

// FailureOfContinue is [FailureOf] with an explicit CanContinue.
func FailureOfContinue[T any](message string, canContinue bool) *result.Of[T] {
	return result.NewOf[T]().FailedContinue(message, canContinue)
}

// FailureOfWithData is [FailureOf] carrying data, such as the rejected
// input.
func FailureOfWithData[T any](message string, data T) *result.Of[T] {
	return FailureOf[T](message).WithData(data)
}

// FailureOfWithException is [FailureOf] recording the caught error.
func FailureOfWithException[T any](message string, err error) *result.Of[T] {
	return FailureOf[T](message).WithException(err)
}

// PublicSuccess projects [SuccessMessage]. An empty message is omitted
// from the projection.
func PublicSuccess(message string) *result.Public {
	return SuccessMessage(message).Public()
}

// PublicSuccessOf projects [SuccessOf].
func PublicSuccessOf[T any](data T) *result.PublicOf[T] {
	return SuccessOf(data).Public()
}

// PublicFailure projects [Failure].
func PublicFailure(message string) *result.Public {
	return Failure(message).Public()
}

// PublicFailureWithException projects [FailureWithException]. The
// error itself never reaches the projection.
func PublicFailureWithException(message string, err error) *result.Public {
	return FailureWithException(message, err).Public()
}

// PublicFailureOf projects [FailureOf].
func PublicFailureOf[T any](message string) *result.PublicOf[T] {
	return FailureOf[T](message).Public()
}

// PublicFailureOfWithData projects [FailureOfWithData].
func PublicFailureOfWithData[T any](message string, data T) *result.PublicOf[T] {
	return FailureOfWithData(message, data).Public()
}

// PublicFailureOfWithException projects [FailureOfWithException].
func PublicFailureOfWithException[T any](message string, err error) *result.PublicOf[T] {
	return FailureOfWithException[T](message, err).Public()
}
