package resultlog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/StricklySoft/stricklysoft-results/pkg/result"
)

// Span attribute keys written by [RecordSpan].
const (
	AttrSucceeded   = attribute.Key("result.succeeded")
	AttrStatusCode  = attribute.Key("result.status_code")
	AttrFound       = attribute.Key("result.found")
	AttrErrorCount  = attribute.Key("result.error_count")
	AttrCanContinue = attribute.Key("result.can_continue")
	AttrCorrelation = attribute.Key("correlation.id")
)

// RecordSpan annotates the span active in ctx with the outcome of env.
// Failed envelopes set the span status to Error with the public message.
// The exception is never attached to the span.
func RecordSpan(ctx context.Context, env result.Envelope) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	base := baseOf(env)
	if base == nil {
		return
	}

	span.SetAttributes(
		AttrSucceeded.Bool(base.Succeeded),
		AttrStatusCode.Int(base.StatusCode.Int()),
		AttrFound.Bool(base.Found),
		AttrErrorCount.Int(len(base.Errors())),
		AttrCanContinue.Bool(base.CanContinue),
	)
	if id, ok := CorrelationID(ctx); ok {
		span.SetAttributes(AttrCorrelation.String(id))
	}

	if base.Succeeded {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.SetStatus(codes.Error, result.ToPublic(base).Message)
}
