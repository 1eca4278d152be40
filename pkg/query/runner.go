// Package query runs paginated SQL queries and returns their outcome as
// result grids. Two producers are provided: [Runner] over a pgx pool for
// PostgreSQL and [SQLRunner] over sqlx for any database/sql driver.
//
// Producers never return Go errors for database failures. A failed
// query yields a failed grid whose Exception holds an *sserr.Error with
// [sserr.CodeInternalDatabase] or [sserr.CodeTimeoutDatabase]. Every call
// is traced; the span carries the standard db.* attributes and the
// result outcome.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
	"github.com/StricklySoft/stricklysoft-results/pkg/paging"
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
	"github.com/StricklySoft/stricklysoft-results/pkg/resultlog"
)

// Pool is the subset of the pgx pool API the runner uses. It is
// satisfied by [*pgxpool.Pool] and by pgxmock pools.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

var _ Pool = (*pgxpool.Pool)(nil)

// Runner executes queries against a PostgreSQL pool. It is safe for
// concurrent use when the pool is.
type Runner struct {
	pool         Pool
	tracer       trace.Tracer
	databaseName string
}

// NewRunner wraps pool. databaseName is used for span attributes only.
//
//	mock, _ := pgxmock.NewPool()
//	r := query.NewRunner(mock, "orders")
func NewRunner(pool Pool, databaseName string) *Runner {
	return &Runner{
		pool:         pool,
		tracer:       otel.Tracer(tracerName),
		databaseName: databaseName,
	}
}

// Pool returns the wrapped pool.
func (r *Runner) Pool() Pool {
	return r.pool
}

// Close closes the wrapped pool.
func (r *Runner) Close() {
	r.pool.Close()
}

// Grid runs st for page p and scans each row with scan. A missing count
// statement leaves Total nil. A page with no rows is a succeeded grid
// with Found=false.
//
//	g := query.Grid(ctx, runner, st, paging.NewParams(2, 20), pgx.RowToStructByName[Order])
func Grid[T any](ctx context.Context, r *Runner, st Statement, p paging.Params, scan pgx.RowToFunc[T]) *result.Grid[T] {
	ctx, span := startSpan(ctx, r.tracer, "Grid", "postgresql", r.databaseName, st.Select)
	defer span.End()

	if err := st.validate(p); err != nil {
		recordError(span, err)
		return failedGrid[T]("query: invalid request", err)
	}

	var total *int
	if st.Count != "" {
		var n int
		if err := r.pool.QueryRow(ctx, st.Count, st.Args...).Scan(&n); err != nil {
			wrapped := wrapError(err, "postgres: count query failed")
			recordError(span, wrapped)
			return failedGrid[T]("query: count failed", wrapped)
		}
		total = &n
	}

	args := append(append([]any(nil), st.Args...), p.Take(), p.Skip())
	sql := st.Select + limitOffset(len(st.Args)+1)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		wrapped := wrapError(err, "postgres: select query failed")
		recordError(span, wrapped)
		return failedGrid[T]("query: select failed", wrapped)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		wrapped := wrapError(err, "postgres: scanning rows failed")
		recordError(span, wrapped)
		return failedGrid[T]("query: scan failed", wrapped)
	}

	g := succeededGrid(items, p, total)
	resultlog.RecordSpan(ctx, g)
	return g
}

// One runs sql expecting at most one row. No rows yields a succeeded
// envelope with Found=false; more than one row is a failure.
func One[T any](ctx context.Context, r *Runner, sql string, args []any, scan pgx.RowToFunc[T]) *result.Of[T] {
	ctx, span := startSpan(ctx, r.tracer, "One", "postgresql", r.databaseName, sql)
	defer span.End()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		wrapped := wrapError(err, "postgres: query failed")
		recordError(span, wrapped)
		return failedOf[T]("query: select failed", wrapped)
	}
	item, err := pgx.CollectExactlyOneRow(rows, scan)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		out := result.NewOf[T]().Successful().RegisterNotFound()
		resultlog.RecordSpan(ctx, out)
		return out
	case err != nil:
		wrapped := wrapError(err, "postgres: scanning row failed")
		recordError(span, wrapped)
		return failedOf[T]("query: scan failed", wrapped)
	}

	out := result.NewOf[T]().SuccessfulData(item)
	resultlog.RecordSpan(ctx, out)
	return out
}

// limitOffset renders the paging clause with positional parameters
// starting at $n.
func limitOffset(n int) string {
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1)
}

func failedOf[T any](message string, err *sserr.Error) *result.Of[T] {
	return result.NewOf[T]().
		FailedContinue(message, sserr.IsTimeout(err)).
		WithException(err).
		WithStatus(false, result.StatusCode(err.HTTPStatus()))
}
