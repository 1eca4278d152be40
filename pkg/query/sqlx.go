package query

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/StricklySoft/stricklysoft-results/pkg/paging"
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
	"github.com/StricklySoft/stricklysoft-results/pkg/resultlog"
)

// SQLDB is the subset of sqlx used by [SQLRunner]. Both *sqlx.DB and
// *sqlx.Tx satisfy it.
type SQLDB interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	Rebind(query string) string
	DriverName() string
}

var (
	_ SQLDB = (*sqlx.DB)(nil)
	_ SQLDB = (*sqlx.Tx)(nil)
)

// SQLRunner executes queries through sqlx. Statements use "?"
// placeholders and are rebound for the driver, so the same Statement
// works for SQLite, MySQL and PostgreSQL.
type SQLRunner struct {
	db     SQLDB
	tracer trace.Tracer
}

// NewSQLRunner wraps db.
//
//	db, _ := sqlx.Connect("sqlite", ":memory:")
//	r := query.NewSQLRunner(db)
func NewSQLRunner(db SQLDB) *SQLRunner {
	return &SQLRunner{db: db, tracer: otel.Tracer(tracerName)}
}

// SQLGrid runs st for page p, scanning rows into T with sqlx's db tag
// mapping. It follows the same outcome rules as [Grid].
func SQLGrid[T any](ctx context.Context, r *SQLRunner, st Statement, p paging.Params) *result.Grid[T] {
	ctx, span := startSpan(ctx, r.tracer, "SQLGrid", r.db.DriverName(), "", st.Select)
	defer span.End()

	if err := st.validate(p); err != nil {
		recordError(span, err)
		return failedGrid[T]("query: invalid request", err)
	}

	var total *int
	if st.Count != "" {
		var n int
		if err := r.db.GetContext(ctx, &n, r.db.Rebind(st.Count), st.Args...); err != nil {
			wrapped := wrapError(err, "sqlx: count query failed")
			recordError(span, wrapped)
			return failedGrid[T]("query: count failed", wrapped)
		}
		total = &n
	}

	items := []T{}
	args := append(append([]any(nil), st.Args...), p.Take(), p.Skip())
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(st.Select+" LIMIT ? OFFSET ?"), args...); err != nil {
		wrapped := wrapError(err, "sqlx: select query failed")
		recordError(span, wrapped)
		return failedGrid[T]("query: select failed", wrapped)
	}

	g := succeededGrid(items, p, total)
	resultlog.RecordSpan(ctx, g)
	return g
}

// SQLOne runs query expecting at most one row. No rows yields a
// succeeded envelope with Found=false.
func SQLOne[T any](ctx context.Context, r *SQLRunner, query string, args ...any) *result.Of[T] {
	ctx, span := startSpan(ctx, r.tracer, "SQLOne", r.db.DriverName(), "", query)
	defer span.End()

	var item T
	err := r.db.GetContext(ctx, &item, r.db.Rebind(query), args...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		out := result.NewOf[T]().Successful().RegisterNotFound()
		resultlog.RecordSpan(ctx, out)
		return out
	case err != nil:
		wrapped := wrapError(err, "sqlx: query failed")
		recordError(span, wrapped)
		return failedOf[T]("query: select failed", wrapped)
	}

	out := result.NewOf[T]().SuccessfulData(item)
	resultlog.RecordSpan(ctx, out)
	return out
}
