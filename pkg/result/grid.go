package result

import (
	"encoding/json"
	"iter"
	"slices"
)

// Metadata keys written by [Grid.SyncMetadata].
const (
	MetaRowCount = "rowCount"
	MetaTotal    = "total"
	MetaPage     = "page"
	MetaPageSize = "pageSize"
	MetaHasMore  = "hasMore"
)

// Grid is an [Of] over a slice of rows, carrying the paging counters a
// UI grid needs. The typed counters are the source of truth; every Grid
// mutator ends with SyncMetadata so Metadata mirrors them.
//
// Total, Page, PageSize and HasMore are nil when unknown. HasMore is
// derived from Total, Page, PageSize and RowCount (pages are 1-based):
//
//	shown   = max(0, (Page-1)*PageSize) + min(PageSize, RowCount)
//	HasMore = shown < Total
//
// The status and chaining mutators of Of are redeclared on Grid: they
// return *Grid[T], keep the counters in sync when they touch Data, and
// fail at entry with errors.CodeNilArgument on a nil grid.
//
//	g := result.NewGrid[Order]().
//	    WithItems(rows).
//	    WithCounts(len(rows), result.Ptr(total)).
//	    WithPaging(result.Ptr(page), result.Ptr(size)).
//	    SuccessfulMessage("orders loaded")
//	more, _ := result.GetMetadata[bool](g, result.MetaHasMore)
type Grid[T any] struct {
	Of[[]T]

	RowCount int
	Total    *int
	Page     *int
	PageSize *int
	HasMore  *bool
}

// NewGrid returns an empty, unresolved grid with CanContinue set.
func NewGrid[T any]() *Grid[T] {
	return &Grid[T]{Of: Of[[]T]{Result: Result{CanContinue: true}}}
}

// Ptr returns a pointer to v, for the optional counters.
func Ptr[T any](v T) *T {
	return &v
}

func (g *Grid[T]) mustNotBeNil() {
	if g == nil {
		panic(nilEnvelope())
	}
}

// Base returns the embedded Result, or nil for a nil g.
func (g *Grid[T]) Base() *Result {
	if g == nil {
		return nil
	}
	return &g.Result
}

// Items returns the rows.
func (g *Grid[T]) Items() []T {
	return g.Data
}

// SafeCount returns len(Data), or 0 for a nil g.
func (g *Grid[T]) SafeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Data)
}

// WithItems sets the rows and RowCount = len(items).
func (g *Grid[T]) WithItems(items []T) *Grid[T] {
	g.mustNotBeNil()
	g.Data = items
	g.RowCount = len(items)
	g.recomputeHasMore()
	return g.SyncMetadata()
}

// WithSeq drains seq once into the rows and counts them. Use it for
// one-shot iterators such as database cursors.
func (g *Grid[T]) WithSeq(seq iter.Seq[T]) *Grid[T] {
	g.mustNotBeNil()
	var items []T
	if seq != nil {
		items = slices.Collect(seq)
	}
	return g.WithItems(items)
}

// WithCounts sets RowCount and Total.
func (g *Grid[T]) WithCounts(rowCount int, total *int) *Grid[T] {
	g.mustNotBeNil()
	g.RowCount = rowCount
	g.Total = total
	g.recomputeHasMore()
	return g.SyncMetadata()
}

// WithRowCount sets RowCount only.
func (g *Grid[T]) WithRowCount(rowCount int) *Grid[T] {
	g.mustNotBeNil()
	g.RowCount = rowCount
	g.recomputeHasMore()
	return g.SyncMetadata()
}

// WithRowCountFromData sets RowCount to len(Data).
func (g *Grid[T]) WithRowCountFromData() *Grid[T] {
	g.mustNotBeNil()
	return g.WithRowCount(len(g.Data))
}

// WithTotal sets Total only.
func (g *Grid[T]) WithTotal(total *int) *Grid[T] {
	g.mustNotBeNil()
	g.Total = total
	g.recomputeHasMore()
	return g.SyncMetadata()
}

// WithPaging sets Page and PageSize.
func (g *Grid[T]) WithPaging(page, pageSize *int) *Grid[T] {
	g.mustNotBeNil()
	g.Page = page
	g.PageSize = pageSize
	g.recomputeHasMore()
	return g.SyncMetadata()
}

// WithGridPaging is WithPaging.
func (g *Grid[T]) WithGridPaging(page, pageSize *int) *Grid[T] {
	return g.WithPaging(page, pageSize)
}

// recomputeHasMore sets HasMore when Total, Page and PageSize are all
// known and clears it otherwise.
func (g *Grid[T]) recomputeHasMore() {
	if g.Total == nil || g.Page == nil || g.PageSize == nil {
		g.HasMore = nil
		return
	}
	g.HasMore = Ptr(ComputeHasMore(*g.Total, *g.Page, *g.PageSize, g.RowCount))
}

// ComputeHasMore reports whether rows remain after the given 1-based
// page.
func ComputeHasMore(total, page, pageSize, rowCount int) bool {
	shown := max(0, (page-1)*pageSize) + min(pageSize, rowCount)
	return shown < total
}

// SyncMetadata writes rowCount and every non-nil counter into Metadata
// and removes the keys of nil counters. It is idempotent.
func (g *Grid[T]) SyncMetadata() *Grid[T] {
	g.mustNotBeNil()
	r := &g.Result
	r.setMetadata(MetaRowCount, g.RowCount)
	syncOptional(r, MetaTotal, g.Total)
	syncOptional(r, MetaPage, g.Page)
	syncOptional(r, MetaPageSize, g.PageSize)
	syncOptional(r, MetaHasMore, g.HasMore)
	return g
}

func syncOptional[V any](r *Result, key string, v *V) {
	if v == nil {
		r.deleteMetadata(key)
		return
	}
	r.setMetadata(key, *v)
}

// Public projects g to its externally safe form.
func (g *Grid[T]) Public() *PublicOf[[]T] {
	if g == nil {
		return ToPublicOf[[]T](nil)
	}
	return ToPublicOf(&g.Of)
}

type gridJSON[T any] struct {
	ofJSON[[]T]
	RowCount int   `json:"rowCount"`
	Total    *int  `json:"total,omitempty"`
	Page     *int  `json:"page,omitempty"`
	PageSize *int  `json:"pageSize,omitempty"`
	HasMore  *bool `json:"hasMore,omitempty"`
}

// MarshalJSON writes the Of fields plus the paging counters.
func (g Grid[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON[T]{
		ofJSON:   ofJSON[[]T]{resultJSON: g.Result.wire(), Data: g.Data},
		RowCount: g.RowCount,
		Total:    g.Total,
		Page:     g.Page,
		PageSize: g.PageSize,
		HasMore:  g.HasMore,
	})
}

// UnmarshalJSON restores a grid written by MarshalJSON.
func (g *Grid[T]) UnmarshalJSON(data []byte) error {
	var w gridJSON[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.Result.fromWire(w.resultJSON)
	g.Data = w.Data
	g.RowCount, g.Total, g.Page, g.PageSize, g.HasMore = w.RowCount, w.Total, w.Page, w.PageSize, w.HasMore
	return nil
}
