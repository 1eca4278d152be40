package query

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/StricklySoft/stricklysoft-results/internal/testutil"
	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
	"github.com/StricklySoft/stricklysoft-results/pkg/paging"
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
)

type order struct {
	ID    int    `db:"id"`
	Total string `db:"total"`
}

func scanOrder(row pgx.CollectableRow) (order, error) {
	var o order
	err := row.Scan(&o.ID, &o.Total)
	return o, err
}

var ordersStatement = Statement{
	Count:  "SELECT count(*) FROM orders WHERE customer_id = $1",
	Select: "SELECT id, total FROM orders WHERE customer_id = $1 ORDER BY id",
	Args:   []any{7},
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock pool")
	t.Cleanup(mock.Close)
	return mock
}

func useTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func TestGrid_Success(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(ordersStatement.Count)).
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(regexp.QuoteMeta(ordersStatement.Select+" LIMIT $2 OFFSET $3")).
		WithArgs(7, 10, 10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "total"}).
			AddRow(11, "1.00").
			AddRow(12, "2.50"))

	g := Grid(context.Background(), NewRunner(mock, "shop"), ordersStatement, paging.NewParams(2, 10), scanOrder)

	require.True(t, g.Succeeded, g.GetMessageOrError())
	assert.Equal(t, result.StatusOK, g.StatusCode)
	assert.True(t, g.Found)
	assert.Equal(t, []order{{11, "1.00"}, {12, "2.50"}}, g.Items())
	assert.Equal(t, 2, g.RowCount)
	assert.Equal(t, 25, *g.Total)
	assert.Equal(t, 2, *g.Page)
	assert.Equal(t, 10, *g.PageSize)
	assert.True(t, *g.HasMore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGrid_WithoutCount(t *testing.T) {
	mock := newMock(t)
	st := Statement{Select: "SELECT id, total FROM orders ORDER BY id"}
	mock.ExpectQuery(regexp.QuoteMeta(st.Select+" LIMIT $1 OFFSET $2")).
		WithArgs(5, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "total"}))

	g := Grid(context.Background(), NewRunner(mock, ""), st, paging.NewParams(1, 5), scanOrder)

	assert.True(t, g.Succeeded)
	assert.False(t, g.Found)
	assert.NotNil(t, g.Items())
	assert.Empty(t, g.Items())
	assert.Nil(t, g.Total)
	assert.Nil(t, g.HasMore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGrid_Failures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(mock pgxmock.PgxPoolIface)
		code        sserr.Code
		status      result.StatusCode
		canContinue bool
	}{
		{
			name: "count error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(ordersStatement.Count)).
					WillReturnError(errors.New("relation does not exist"))
			},
			code:   sserr.CodeInternalDatabase,
			status: result.StatusInternalServerError,
		},
		{
			name: "select timeout",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(ordersStatement.Count)).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
				mock.ExpectQuery(regexp.QuoteMeta(ordersStatement.Select)).
					WillReturnError(context.DeadlineExceeded)
			},
			code:        sserr.CodeTimeoutDatabase,
			status:      result.StatusGatewayTimeout,
			canContinue: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			g := Grid(context.Background(), NewRunner(mock, "shop"), ordersStatement, paging.NewParams(1, 10), scanOrder)

			assert.False(t, g.Succeeded)
			assert.Equal(t, tt.status, g.StatusCode)
			assert.Equal(t, tt.canContinue, g.CanContinue)
			assert.Empty(t, g.Items())
			testutil.AssertErrorCode(t, g.Exception, tt.code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGrid_InvalidRequest(t *testing.T) {
	mock := newMock(t)
	r := NewRunner(mock, "shop")

	g := Grid(context.Background(), r, ordersStatement, paging.NewParams(1, 0), scanOrder)
	assert.False(t, g.Succeeded)
	assert.Equal(t, result.StatusBadRequest, g.StatusCode)
	testutil.AssertErrorCode(t, g.Exception, sserr.CodeInvalidArgument)

	g = Grid(context.Background(), r, Statement{}, paging.DefaultParams(), scanOrder)
	testutil.AssertErrorCode(t, g.Exception, sserr.CodeInvalidArgument)

	require.NoError(t, mock.ExpectationsWereMet(), "no query is sent for invalid requests")
}

func TestGrid_Span(t *testing.T) {
	exporter := useTracer(t)
	mock := newMock(t)
	st := Statement{Select: "SELECT id, total FROM orders"}
	mock.ExpectQuery(regexp.QuoteMeta(st.Select)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "total"}).AddRow(1, "3.00"))

	Grid(context.Background(), NewRunner(mock, "shop"), st, paging.DefaultParams(), scanOrder)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "query.Grid", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)
	assert.Contains(t, s.Attributes, attribute.String("db.system", "postgresql"))
	assert.Contains(t, s.Attributes, attribute.String("db.name", "shop"))
	assert.Contains(t, s.Attributes, attribute.Bool("result.found", true))
}

func TestGrid_SpanOnFailure(t *testing.T) {
	exporter := useTracer(t)
	mock := newMock(t)
	st := Statement{Select: "SELECT id, total FROM orders"}
	mock.ExpectQuery(regexp.QuoteMeta(st.Select)).WillReturnError(errors.New("boom"))

	Grid(context.Background(), NewRunner(mock, "shop"), st, paging.DefaultParams(), scanOrder)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestOne(t *testing.T) {
	const q = "SELECT id, total FROM orders WHERE id = $1"

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(q)).WithArgs(3).
			WillReturnRows(pgxmock.NewRows([]string{"id", "total"}).AddRow(3, "4.20"))

		r := One(context.Background(), NewRunner(mock, ""), q, []any{3}, scanOrder)

		assert.True(t, r.Succeeded)
		assert.True(t, r.Found)
		assert.Equal(t, order{3, "4.20"}, r.Data)
	})

	t.Run("no rows", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(q)).WithArgs(9).
			WillReturnRows(pgxmock.NewRows([]string{"id", "total"}))

		r := One(context.Background(), NewRunner(mock, ""), q, []any{9}, scanOrder)

		assert.True(t, r.Succeeded)
		assert.False(t, r.Found)
		assert.Equal(t, result.StatusOK, r.StatusCode)
		assert.Zero(t, r.Data)
	})

	t.Run("error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(q)).WillReturnError(context.Canceled)

		r := One(context.Background(), NewRunner(mock, ""), q, []any{1}, scanOrder)

		assert.False(t, r.Succeeded)
		assert.Equal(t, result.StatusGatewayTimeout, r.StatusCode)
		assert.True(t, r.CanContinue)
		testutil.AssertErrorCode(t, r.Exception, sserr.CodeTimeoutDatabase)
	})
}

func TestTruncateSQL(t *testing.T) {
	short := "SELECT 1"
	assert.Equal(t, short, truncateSQL(short))

	got := truncateSQL(strings.Repeat("x", maxSQLTruncateLen+10))
	assert.Len(t, got, maxSQLTruncateLen+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
