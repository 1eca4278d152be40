package factory

import (
	"iter"
	"slices"
	"strings"

	"github.com/StricklySoft/stricklysoft-results/pkg/paging"
	"github.com/StricklySoft/stricklysoft-results/pkg/result"
)

// GridOption sets one of the optional inputs of [GridSuccess].
type GridOption func(*gridOptions)

type gridOptions struct {
	total    *int
	page     *int
	pageSize *int
	message  string
}

// WithTotal sets the total number of rows matching the query.
func WithTotal(total int) GridOption {
	return func(o *gridOptions) {
		o.total = result.Ptr(total)
	}
}

// WithPaging sets the page number and page size that produced the rows.
func WithPaging(page, pageSize int) GridOption {
	return func(o *gridOptions) {
		o.page = result.Ptr(page)
		o.pageSize = result.Ptr(pageSize)
	}
}

// WithParams is [WithPaging] taking a page request.
func WithParams(p paging.Params) GridOption {
	return WithPaging(p.PageNumber, p.PageSize())
}

// WithMessage sets the envelope message. Blank messages are ignored.
func WithMessage(message string) GridOption {
	return func(o *gridOptions) {
		o.message = message
	}
}

// GridSuccess builds a succeeded grid from items: rows and RowCount
// first, then Total, then Page/PageSize, so HasMore is derived once all
// three are known. Found is RowCount > 0 and the status is StatusOK.
//
//	g := factory.GridSuccess(rows, factory.WithTotal(10), factory.WithPaging(1, 3))
func GridSuccess[T any](items []T, opts ...GridOption) *result.Grid[T] {
	var o gridOptions
	for _, opt := range opts {
		opt(&o)
	}

	g := result.NewGrid[T]().WithItems(items)
	g.WithCounts(g.RowCount, o.total).WithPaging(o.page, o.pageSize)

	g.Succeeded = true
	g.Found = g.RowCount > 0
	g.StatusCode = result.StatusOK
	if strings.TrimSpace(o.message) != "" {
		g.Message = o.message
	}
	return g.SyncMetadata()
}

// GridSuccessSeq is [GridSuccess] for a one-shot iterator. The sequence
// is drained exactly once.
func GridSuccessSeq[T any](seq iter.Seq[T], opts ...GridOption) *result.Grid[T] {
	var items []T
	if seq != nil {
		items = slices.Collect(seq)
	}
	return GridSuccess(items, opts...)
}

// ToGrid is [GridSuccess]; it reads better at call sites that convert
// an existing slice.
func ToGrid[T any](items []T, opts ...GridOption) *result.Grid[T] {
	return GridSuccess(items, opts...)
}

// GridFromPage converts a paging.Page into a succeeded grid carrying
// the page's total, number and size.
func GridFromPage[T any](p *paging.Page[T], opts ...GridOption) *result.Grid[T] {
	if p == nil {
		return GridNotFound[T]("")
	}
	base := []GridOption{WithTotal(p.TotalCount), WithPaging(p.PageNumber, p.PageSize)}
	return GridSuccess(p.Items, append(base, opts...)...)
}

// GridFailure builds a failed grid with no rows, zeroed counters
// (Total 0, Page 1, PageSize 0, HasMore false) and StatusBadRequest.
// err may be nil.
func GridFailure[T any](message string, canContinue bool, err error) *result.Grid[T] {
	g := emptyGrid[T]()
	g.Succeeded = false
	g.StatusCode = result.StatusBadRequest
	g.CanContinue = canContinue
	g.Message = message
	g.Exception = err
	return g.SyncMetadata()
}

// GridNotFound builds a grid for a query that ran and matched nothing:
// Succeeded, not Found, StatusOK, zeroed counters.
func GridNotFound[T any](message string) *result.Grid[T] {
	g := emptyGrid[T]()
	g.Succeeded = true
	g.Found = false
	g.StatusCode = result.StatusOK
	g.Message = message
	return g.SyncMetadata()
}

func emptyGrid[T any]() *result.Grid[T] {
	g := result.NewGrid[T]()
	g.Data = []T{}
	g.RowCount = 0
	g.Total = result.Ptr(0)
	g.Page = result.Ptr(1)
	g.PageSize = result.Ptr(0)
	g.HasMore = result.Ptr(false)
	return g
}

// PublicGridSuccess projects [GridSuccess].
func PublicGridSuccess[T any](items []T, opts ...GridOption) *result.PublicOf[[]T] {
	return GridSuccess(items, opts...).Public()
}

// PublicGridFailure projects [GridFailure].
func PublicGridFailure[T any](message string, canContinue bool, err error) *result.PublicOf[[]T] {
	return GridFailure[T](message, canContinue, err).Public()
}

// PublicGridNotFound projects [GridNotFound].
func PublicGridNotFound[T any](message string) *result.PublicOf[[]T] {
	return GridNotFound[T](message).Public()
}
