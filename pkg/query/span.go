package query

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// tracerName is the OpenTelemetry instrumentation scope name for this package.
const tracerName = "github.com/StricklySoft/stricklysoft-results/pkg/query"

// maxSQLTruncateLen bounds db.statement span attributes.
const maxSQLTruncateLen = 1024

// startSpan opens a client span following the OpenTelemetry database
// conventions.
func startSpan(ctx context.Context, tracer trace.Tracer, operation, system, dbName, sql string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "query."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String("db.system", system),
		attribute.String("db.statement", truncateSQL(sql)),
	)
	if dbName != "" {
		span.SetAttributes(attribute.String("db.name", dbName))
	}
	return ctx, span
}

// recordError marks span failed with err.
func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// wrapError converts a driver error into an *sserr.Error, separating
// timeouts and cancellation from other database failures.
func wrapError(err error, message string) *sserr.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return sserr.Wrap(err, sserr.CodeTimeoutDatabase, message)
	}
	return sserr.Wrap(err, sserr.CodeInternalDatabase, message)
}

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLTruncateLen {
		return sql
	}
	return sql[:maxSQLTruncateLen] + "..."
}
