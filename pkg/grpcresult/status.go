// Package grpcresult carries result envelopes across gRPC boundaries.
// [Status] projects an envelope to a *status.Status using only the
// public-safe fields; exceptions and metadata never leave the process.
// The interceptors propagate correlation IDs through gRPC metadata.
package grpcresult

import (
	"net/http"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/StricklySoft/stricklysoft-results/pkg/result"
)

// ErrorDomain is the ErrorInfo domain attached to failed statuses.
const ErrorDomain = "results.stricklysoft.io"

var grpcCodes = map[result.StatusCode]codes.Code{
	result.StatusBadRequest:          codes.InvalidArgument,
	result.StatusUnauthorized:        codes.Unauthenticated,
	result.StatusForbidden:           codes.PermissionDenied,
	result.StatusNotFound:            codes.NotFound,
	result.StatusConflict:            codes.Aborted,
	http.StatusRequestTimeout:        codes.Canceled,
	http.StatusPreconditionFailed:    codes.FailedPrecondition,
	http.StatusUnprocessableEntity:   codes.InvalidArgument,
	http.StatusTooManyRequests:       codes.ResourceExhausted,
	result.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:        codes.Unimplemented,
	http.StatusBadGateway:            codes.Unavailable,
	result.StatusServiceUnavailable:  codes.Unavailable,
	result.StatusGatewayTimeout:      codes.DeadlineExceeded,
}

// Code maps an HTTP-style status to a gRPC code. 2xx maps to OK; other
// unmapped 4xx codes map to FailedPrecondition and 5xx to Internal.
func Code(s result.StatusCode) codes.Code {
	if s.IsSuccess() {
		return codes.OK
	}
	if c, ok := grpcCodes[s]; ok {
		return c
	}
	switch {
	case s >= 400 && s < 500:
		return codes.FailedPrecondition
	case s >= 500:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// Status projects env. A succeeded envelope yields an OK status. A
// failed one carries the public message (or the status name when the
// message is blank) and an ErrorInfo detail whose metadata lists the
// public error strings. A nil env yields Internal.
func Status(env result.Envelope) *status.Status {
	var base *result.Result
	if env != nil {
		base = env.Base()
	}
	if base == nil {
		return status.New(codes.Internal, "grpcresult: nil result")
	}
	if base.Succeeded {
		return status.New(codes.OK, "")
	}

	pub := result.ToPublic(base)
	msg := pub.Message
	if msg == "" {
		msg = base.StatusCode.String()
	}
	st := status.New(Code(base.StatusCode), msg)

	info := &errdetails.ErrorInfo{
		Reason:   base.StatusCode.String(),
		Domain:   ErrorDomain,
		Metadata: make(map[string]string, len(pub.Errors)),
	}
	for i, e := range pub.Errors {
		info.Metadata[errorKey(i)] = e
	}
	if withDetails, err := st.WithDetails(info); err == nil {
		st = withDetails
	}
	return st
}

// Err is Status(env).Err(); it is nil for succeeded envelopes.
func Err(env result.Envelope) error {
	return Status(env).Err()
}

// Errors returns the public error strings carried by an error built by
// [Err], in order.
func Errors(err error) []string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		out := make([]string, 0, len(info.GetMetadata()))
		for i := 0; ; i++ {
			v, ok := info.GetMetadata()[errorKey(i)]
			if !ok {
				break
			}
			out = append(out, v)
		}
		return out
	}
	return nil
}

func errorKey(i int) string {
	return "error_" + strconv.Itoa(i)
}
