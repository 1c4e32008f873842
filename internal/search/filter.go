package search

import "fmt"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Term wraps the free-text search value.
type Term struct {
	Value string `json:"value"`
}

// PageRequest is the pagination member of a search body.
type PageRequest struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Order is the sort state of a screen. The zero value means unsorted.
type Order struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// IsZero reports whether no sort column is set.
func (o Order) IsZero() bool {
	return o.Column == ""
}

// Toggle returns the order after the user selects column: a new column sorts
// ascending, the same column flips direction.
func (o Order) Toggle(column string) Order {
	if o.Column != column {
		return Order{Column: column, Direction: Asc}
	}
	if o.Direction == Asc {
		return Order{Column: column, Direction: Desc}
	}
	return Order{Column: column, Direction: Asc}
}

// Filter is the request envelope sent to <resource>/search.
type Filter[D any] struct {
	Search     *Term        `json:"search,omitempty"`
	Pagination *PageRequest `json:"paginationFilter,omitempty"`
	Order      *Order       `json:"order,omitempty"`
	Filter     *D           `json:"filter,omitempty"`
}

// Query returns the search value, or "" when no term is set.
func (f Filter[D]) Query() string {
	if f.Search == nil {
		return ""
	}
	return f.Search.Value
}

// Result is one page of rows returned by a search.
type Result[T any] struct {
	Data         []T  `json:"data"`
	TotalRecords int  `json:"totalRecords"`
	TotalPages   int  `json:"totalPages,omitempty"`
	NextPage     *int `json:"nextPage,omitempty"`
	PreviousPage *int `json:"previousPage,omitempty"`
}

// Check verifies the page invariants against the requested page size.
func (r Result[T]) Check(pageSize int) error {
	if pageSize > 0 && len(r.Data) > pageSize {
		return fmt.Errorf("page holds %d rows, want at most %d", len(r.Data), pageSize)
	}
	if r.TotalRecords < len(r.Data) {
		return fmt.Errorf("totalRecords %d below page length %d", r.TotalRecords, len(r.Data))
	}
	return nil
}
