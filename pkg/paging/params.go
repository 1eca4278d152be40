// Package paging holds the input and output sides of paginated queries:
// [Params] carries an untrusted page request with derived skip/take,
// [Page] carries one page of items plus navigation getters, and
// [Policy] makes the default and maximum page sizes configurable.
//
// Params never rejects input. Non-positive page numbers become 1 and
// oversized pages are clamped to the maximum. Callers that need strict
// validation call [Params.IsValid] before trusting a request.
package paging

import (
	"encoding/json"
)

const (
	// DefaultPageSize is the page size used when a request does not
	// name one.
	DefaultPageSize = 10

	// MaxPageSize is the upper bound applied by [Params.SetPageSize]
	// unless a [Policy] sets another one.
	MaxPageSize = 100
)

// Params is a page request. PageNumber is 1-based. The page size is
// clamped on every write so it never exceeds the maximum.
//
// Build one with [NewParams], [DefaultParams] or [Policy.Params]. The zero
// value reports [DefaultPageSize] (capped by the maximum) until a size is
// set, but its PageNumber is 0, so it fails [Params.IsValid] until the
// caller picks a page.
//
//	p := paging.NewParams(3, 25)
//	rows, err := repo.List(ctx, p.Skip(), p.Take()) // skip 50, take 25
//	if err != nil {
//		return nil, err
//	}
//	return paging.NewPage(rows, total, p.PageNumber, p.PageSize()), nil
type Params struct {
	PageNumber int

	pageSize int
	maxSize  int
	sized    bool
}

// DefaultParams returns page 1 with [DefaultPageSize] rows.
func DefaultParams() Params {
	return NewParams(1, DefaultPageSize)
}

// NewParams builds a request, normalizing pageNumber <= 0 to 1 and
// clamping pageSize to [MaxPageSize].
//
//	p := paging.NewParams(0, 500) // PageNumber 1, PageSize 100
func NewParams(pageNumber, pageSize int) Params {
	p := Params{PageNumber: pageNumber}
	if p.PageNumber <= 0 {
		p.PageNumber = 1
	}
	p.SetPageSize(pageSize)
	return p
}

// PageSize returns the clamped page size, or [DefaultPageSize] when no
// size was ever set.
func (p Params) PageSize() int {
	return p.size()
}

func (p Params) size() int {
	if !p.sized {
		return min(DefaultPageSize, p.MaxPageSize())
	}
	return p.pageSize
}

// SetPageSize stores size, clamped to [Params.MaxPageSize]. Values at or
// below zero are stored as given and fail [Params.IsValid].
func (p *Params) SetPageSize(size int) {
	if limit := p.MaxPageSize(); size > limit {
		size = limit
	}
	p.pageSize = size
	p.sized = true
}

// MaxPageSize returns the clamp applied by SetPageSize.
func (p Params) MaxPageSize() int {
	if p.maxSize > 0 {
		return p.maxSize
	}
	return MaxPageSize
}

// Skip returns the number of rows before this page.
func (p Params) Skip() int {
	return (p.PageNumber - 1) * p.size()
}

// Take returns the number of rows on this page.
func (p Params) Take() int {
	return p.size()
}

// IsValid reports whether the page number is positive and the page size
// is in (0, MaxPageSize].
func (p Params) IsValid() bool {
	size := p.size()
	return p.PageNumber > 0 && size > 0 && size <= p.MaxPageSize()
}

type paramsJSON struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// MarshalJSON writes {"pageNumber", "pageSize"}.
func (p Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(paramsJSON{PageNumber: p.PageNumber, PageSize: p.size()})
}

// UnmarshalJSON reads a request through the same normalization as
// [NewParams]. The clamp in effect on p is kept.
func (p *Params) UnmarshalJSON(data []byte) error {
	var w paramsJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.PageNumber = w.PageNumber
	if p.PageNumber <= 0 {
		p.PageNumber = 1
	}
	p.SetPageSize(w.PageSize)
	return nil
}
