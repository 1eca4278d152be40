package query

import (
	"strings"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
	"github.com/StricklySoft/stricklysoft-results/pkg/paging"
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
	"github.com/StricklySoft/stricklysoft-results/pkg/result/factory"
)

// Statement describes one paginated query. Select must not carry its
// own LIMIT or OFFSET; the runner appends them from the page request.
// Count is optional: when empty the grid's Total stays unknown.
//
//	st := query.Statement{
//	    Count:  "SELECT count(*) FROM orders WHERE customer_id = $1",
//	    Select: "SELECT id, total FROM orders WHERE customer_id = $1 ORDER BY id",
//	    Args:   []any{customerID},
//	}
type Statement struct {
	Count  string
	Select string
	Args   []any
}

func (s Statement) validate(p paging.Params) *sserr.Error {
	if strings.TrimSpace(s.Select) == "" {
		return sserr.InvalidArgument("select", "query: select statement must not be empty")
	}
	if !p.IsValid() {
		return sserr.InvalidArgument("params", "query: invalid page request").
			WithDetail("page_number", p.PageNumber).
			WithDetail("page_size", p.PageSize())
	}
	return nil
}

// failedGrid builds the grid returned when a query cannot run. The
// status follows the error category: bad input is 400, timeouts are 504
// and other database failures 500. Timeouts may be retried, so
// CanContinue is set for them.
func failedGrid[T any](message string, err *sserr.Error) *result.Grid[T] {
	g := factory.GridFailure[T](message, sserr.IsTimeout(err), err)
	g.WithStatus(false, result.StatusCode(err.HTTPStatus()))
	return g
}

// succeededGrid builds the grid for a page of rows.
func succeededGrid[T any](items []T, p paging.Params, total *int) *result.Grid[T] {
	opts := []factory.GridOption{factory.WithParams(p)}
	if total != nil {
		opts = append(opts, factory.WithTotal(*total))
	}
	return factory.GridSuccess(items, opts...)
}
