package search

import "fmt"

// DefaultPageSize is used when a screen does not configure one.
const DefaultPageSize = 10

// Pagination tracks the current page of a list screen. PageNumber is 1-based.
type Pagination struct {
	PageNumber int
	PageSize   int
}

// NewPagination returns page 1 with the given size, falling back to
// DefaultPageSize for non-positive sizes.
func NewPagination(size int) Pagination {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pagination{PageNumber: 1, PageSize: size}
}

// FromOffset converts a 0-based row offset and page length into a page.
func FromOffset(first, rows int) Pagination {
	if rows <= 0 {
		rows = DefaultPageSize
	}
	if first < 0 {
		first = 0
	}
	return Pagination{PageNumber: first/rows + 1, PageSize: rows}
}

// First returns the 0-based offset of the first row on the page.
func (p Pagination) First() int {
	if p.PageNumber < 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.PageSize
}

// Validate checks the pagination invariants.
func (p Pagination) Validate() error {
	if p.PageNumber < 1 {
		return fmt.Errorf("page number %d below 1", p.PageNumber)
	}
	if p.PageSize <= 0 {
		return fmt.Errorf("page size %d not positive", p.PageSize)
	}
	return nil
}

// WithPage moves to page n, never below 1.
func (p Pagination) WithPage(n int) Pagination {
	if n < 1 {
		n = 1
	}
	p.PageNumber = n
	return p
}

// WithSize changes the page length and keeps the current first row on screen.
func (p Pagination) WithSize(size int) Pagination {
	if size <= 0 {
		return p
	}
	return FromOffset(p.First(), size)
}

// Reset returns to page 1.
func (p Pagination) Reset() Pagination {
	return p.WithPage(1)
}

// TotalPages returns the number of pages needed for total rows. An empty
// result still has one (empty) page.
func (p Pagination) TotalPages(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Clamp keeps the page within the pages available for total rows.
func (p Pagination) Clamp(total int) Pagination {
	if last := p.TotalPages(total); p.PageNumber > last {
		return p.WithPage(last)
	}
	return p.WithPage(p.PageNumber)
}

// Request returns the wire form of the page.
func (p Pagination) Request() PageRequest {
	return PageRequest{PageNumber: p.PageNumber, PageSize: p.PageSize}
}
