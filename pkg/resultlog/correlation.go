package resultlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderCorrelationID carries the correlation ID on HTTP requests and
// responses.
const HeaderCorrelationID = "X-Correlation-Id"

type contextKey int

const correlationIDKey contextKey = iota

// NewCorrelationID returns a random ID as 32 hex digits.
func NewCorrelationID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithCorrelationID returns a context carrying id. Records written by a
// [Logger] with that context include it as "correlation_id".
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the ID stored by [WithCorrelationID].
func CorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey).(string)
	return id, ok && id != ""
}

// EnsureCorrelationID returns ctx unchanged when it already carries an
// ID, or a child context with a new one.
func EnsureCorrelationID(ctx context.Context) (context.Context, string) {
	if id, ok := CorrelationID(ctx); ok {
		return ctx, id
	}
	id := NewCorrelationID()
	return WithCorrelationID(ctx, id), id
}

// CorrelationMiddleware reads [HeaderCorrelationID] from the request,
// generating one when it is absent or blank, stores it in the request
// context and echoes it on the response.
//
//	mux := http.NewServeMux()
//	srv := &http.Server{Handler: resultlog.CorrelationMiddleware(mux)}
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderCorrelationID))
		if id == "" {
			id = NewCorrelationID()
		}
		w.Header().Set(HeaderCorrelationID, id)
		next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
	})
}
