package paging

import (
	"net/url"
	"strconv"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// Query string keys read by [Policy.FromQuery]. "page" is accepted as a
// shorter form of "pageNumber".
const (
	QueryPageNumber = "pageNumber"
	QueryPage       = "page"
	QueryPageSize   = "pageSize"
)

// Policy configures how untrusted page requests are normalized. It is
// loaded through the config package; the tags follow its conventions.
type Policy struct {
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"10" yaml:"default_page_size" json:"default_page_size"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" envDefault:"100" yaml:"max_page_size" json:"max_page_size"`
}

// DefaultPolicy returns the policy matching [NewParams].
func DefaultPolicy() Policy {
	return Policy{DefaultPageSize: DefaultPageSize, MaxPageSize: MaxPageSize}
}

// Validate checks that both sizes are positive and the default does not
// exceed the maximum.
func (p Policy) Validate() error {
	if p.MaxPageSize <= 0 {
		return sserr.New(sserr.CodeValidation, "paging: max_page_size must be positive").
			WithDetail("max_page_size", p.MaxPageSize)
	}
	if p.DefaultPageSize <= 0 {
		return sserr.New(sserr.CodeValidation, "paging: default_page_size must be positive").
			WithDetail("default_page_size", p.DefaultPageSize)
	}
	if p.DefaultPageSize > p.MaxPageSize {
		return sserr.Newf(sserr.CodeValidation,
			"paging: default_page_size %d exceeds max_page_size %d", p.DefaultPageSize, p.MaxPageSize)
	}
	return nil
}

// Params builds a request under this policy. A pageSize <= 0 selects
// DefaultPageSize; larger sizes are clamped to MaxPageSize.
func (p Policy) Params(pageNumber, pageSize int) Params {
	if pageSize <= 0 {
		pageSize = p.DefaultPageSize
	}
	out := Params{PageNumber: pageNumber, maxSize: p.MaxPageSize}
	if out.PageNumber <= 0 {
		out.PageNumber = 1
	}
	out.SetPageSize(pageSize)
	return out
}

// FromQuery reads pageNumber (or page) and pageSize from a query string.
// Missing or malformed values fall back to page 1 and the default size.
//
//	p := paging.DefaultPolicy().FromQuery(r.URL.Query())
func (p Policy) FromQuery(values url.Values) Params {
	page := queryInt(values, QueryPageNumber, 0)
	if page == 0 {
		page = queryInt(values, QueryPage, 1)
	}
	return p.Params(page, queryInt(values, QueryPageSize, 0))
}

// FromQuery applies [DefaultPolicy] to a query string.
func FromQuery(values url.Values) Params {
	return DefaultPolicy().FromQuery(values)
}

func queryInt(values url.Values, key string, defaultVal int) int {
	val := values.Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
