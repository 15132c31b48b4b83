// Package paging implements the listing contract shared by every list
// endpoint: parameter normalization plus a count-then-fetch execution
// over any store that can count and page items.
package paging

import "context"

const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"

	defaultSortBy   = "createdAt"
	defaultPage     = 1
	defaultPageSize = 10
)

// Query holds raw listing parameters as they arrive from the boundary.
// Zero or invalid fields fall back to defaults in Normalize.
type Query struct {
	SortBy        string
	SortDirection string
	PageNumber    int
	PageSize      int
}

// Result is the uniform page envelope.
type Result[T any] struct {
	PagesCount int `json:"pagesCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

// Normalize fills in defaults for absent or invalid parameters:
// sortBy=createdAt, sortDirection=desc, pageNumber=1, pageSize=10.
func Normalize(q Query) Query {
	if q.SortBy == "" {
		q.SortBy = defaultSortBy
	}
	if q.SortDirection != DirectionAsc && q.SortDirection != DirectionDesc {
		q.SortDirection = DirectionDesc
	}
	if q.PageNumber < 1 {
		q.PageNumber = defaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	return q
}

// CountFunc counts items matching the filter.
type CountFunc func(ctx context.Context) (int, error)

// FetchFunc returns items for one page window, already sorted.
type FetchFunc[T any] func(ctx context.Context, skip, limit int, sortBy, sortDirection string) ([]T, error)

// Execute runs count + fetch for the (already normalized) query and
// assembles the page envelope. Storage errors are returned as-is and
// never collapsed into an empty page.
func Execute[T any](ctx context.Context, q Query, count CountFunc, fetch FetchFunc[T]) (*Result[T], error) {
	q = Normalize(q)

	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	skip := (q.PageNumber - 1) * q.PageSize
	items, err := fetch(ctx, skip, q.PageSize, q.SortBy, q.SortDirection)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return &Result[T]{
		PagesCount: (total + q.PageSize - 1) / q.PageSize,
		Page:       q.PageNumber,
		PageSize:   q.PageSize,
		TotalCount: total,
		Items:      items,
	}, nil
}
