package domain

import (
	"math"
	"slices"
)

// MaxPage bounds page numbers so that the row offset stays well inside int
// for any accepted limit.
const MaxPage = math.MaxInt32

// ListParams describes one page of a sorted listing.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string
	Desc   bool
}

// Offset returns the row offset of the requested page.
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (min(p.Page, MaxPage) - 1) * p.Limit
}

// ValidateSort checks SortBy against the allowed columns. An empty SortBy is
// always accepted.
func (p ListParams) ValidateSort(allowed []string) error {
	if p.SortBy == "" || slices.Contains(allowed, p.SortBy) {
		return nil
	}
	return ErrInvalidSort
}

// Page is a paginated result set.
type Page[T any] struct {
	CurrentPage int   `json:"current_page"`
	Data        []T   `json:"data"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

func NewPage[T any](items []T, total int64, p ListParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	page := Page[T]{
		CurrentPage: min(max(p.Page, 1), MaxPage),
		Data:        items,
		PerPage:     p.Limit,
		Total:       total,
		LastPage:    1,
	}
	if p.Limit > 0 && total > 0 {
		page.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	if len(items) > 0 {
		from := p.Offset() + 1
		to := from + len(items) - 1
		page.From, page.To = &from, &to
	}
	return page
}
