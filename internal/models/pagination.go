package models

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationState represents the table's display cursor.
// CurrentPage is 1-based and PageSize is always positive.
type PaginationState struct {
	CurrentPage int
	PageSize    int
}

// DefaultPagination returns the first page at the default size
func DefaultPagination() PaginationState {
	return PaginationState{CurrentPage: 1, PageSize: DefaultPageSize}
}

// Normalize forces the invariants CurrentPage >= 1 and 0 < PageSize <= MaxPageSize
func (p PaginationState) Normalize() PaginationState {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the index of the first record on the current page
func (p PaginationState) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}

// Serial returns the 1-based serial number for the row at index on the current page
func (p PaginationState) Serial(index int) int {
	return p.Offset() + index + 1
}

// TotalPages returns how many pages n records occupy, at least 1
func (p PaginationState) TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + p.PageSize - 1) / p.PageSize
}

// Clamp keeps CurrentPage within the pages that n records occupy
func (p PaginationState) Clamp(n int) PaginationState {
	p = p.Normalize()
	if last := p.TotalPages(n); p.CurrentPage > last {
		p.CurrentPage = last
	}
	return p
}
