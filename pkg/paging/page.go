package paging

import "encoding/json"

// Page is one page of an already paginated query together with the
// totals needed to navigate. It is independent of the result envelopes;
// use the factory package to convert it into a grid.
type Page[T any] struct {
	Items      []T
	PageNumber int
	PageSize   int
	TotalCount int
}

// NewPage builds a page. A nil items slice is stored as empty.
func NewPage[T any](items []T, totalCount, pageNumber, pageSize int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

// Create is an alias of [NewPage] kept for callers that build pages from
// a count query.
func Create[T any](items []T, totalCount, pageNumber, pageSize int) *Page[T] {
	return NewPage(items, totalCount, pageNumber, pageSize)
}

// Empty returns a page with no items at the given position. Neither
// argument is normalized.
//
//	paging.Empty[Order](1, paging.DefaultPageSize)
func Empty[T any](pageNumber, pageSize int) *Page[T] {
	return NewPage[T](nil, 0, pageNumber, pageSize)
}

// EmptyFor returns an empty page positioned where p points.
func EmptyFor[T any](p Params) *Page[T] {
	return NewPage[T](nil, 0, p.PageNumber, p.PageSize())
}

// TotalPages is ceil(TotalCount / PageSize), or 0 when PageSize <= 0.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// HasPreviousPage reports whether PageNumber > 1.
func (p Page[T]) HasPreviousPage() bool {
	return p.PageNumber > 1
}

// HasNextPage reports whether PageNumber < TotalPages.
func (p Page[T]) HasNextPage() bool {
	return p.PageNumber < p.TotalPages()
}

// FirstItemOnPage is the 1-based index of the first item, or 0 when the
// query matched nothing.
func (p Page[T]) FirstItemOnPage() int {
	if p.TotalCount <= 0 {
		return 0
	}
	return (p.PageNumber-1)*p.PageSize + 1
}

// LastItemOnPage is the 1-based index of the last item on this page.
func (p Page[T]) LastItemOnPage() int {
	return min(p.PageNumber*p.PageSize, p.TotalCount)
}

// Params returns the request that addresses this page.
func (p Page[T]) Params() Params {
	return NewParams(p.PageNumber, p.PageSize)
}

type pageJSON[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
	FirstItemOnPage int  `json:"firstItemOnPage"`
	LastItemOnPage  int  `json:"lastItemOnPage"`
}

// MarshalJSON writes the stored fields and the derived navigation
// values.
func (p Page[T]) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(pageJSON[T]{
		Items:           items,
		PageNumber:      p.PageNumber,
		PageSize:        p.PageSize,
		TotalCount:      p.TotalCount,
		TotalPages:      p.TotalPages(),
		HasPreviousPage: p.HasPreviousPage(),
		HasNextPage:     p.HasNextPage(),
		FirstItemOnPage: p.FirstItemOnPage(),
		LastItemOnPage:  p.LastItemOnPage(),
	})
}

// UnmarshalJSON reads the stored fields. Derived members are ignored.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var w pageJSON[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Items == nil {
		w.Items = []T{}
	}
	p.Items, p.PageNumber, p.PageSize, p.TotalCount = w.Items, w.PageNumber, w.PageSize, w.TotalCount
	return nil
}
