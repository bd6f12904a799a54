package domain

import "strings"

// PageSize is the fixed number of rows requested per listing page.
const PageSize = 10

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListQuery is the state of a listing screen: filters, sort and page.
// Every listing issues exactly one request per ListQuery.
type ListQuery struct {
	Search    string
	Status    string
	Service   string
	SortField string
	SortOrder SortOrder
	Page      int
}

// Normalize clamps the page to 1.. and the order to asc/desc.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.SortOrder != SortDesc {
		q.SortOrder = SortAsc
	}
	return q
}

// ToggleSort is a click on a column header: the same column flips the
// order, a new column starts ascending. Either way the page resets to 1.
func (q ListQuery) ToggleSort(field string) ListQuery {
	if field == q.SortField {
		if q.SortOrder == SortAsc {
			q.SortOrder = SortDesc
		} else {
			q.SortOrder = SortAsc
		}
	} else {
		q.SortField = field
		q.SortOrder = SortAsc
	}
	q.Page = 1
	return q
}

// WithStatus and WithService change a filter and go back to page 1.
func (q ListQuery) WithStatus(s string) ListQuery {
	q.Status = s
	q.Page = 1
	return q
}

func (q ListQuery) WithService(code string) ListQuery {
	q.Service = code
	q.Page = 1
	return q
}

// GoTo moves to page, clamped to 1..totalPages.
func (q ListQuery) GoTo(page, totalPages int) ListQuery {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}
	q.Page = page
	return q
}

// SortIndicator is the arrow shown next to a column header.
func (q ListQuery) SortIndicator(field string) string {
	if field == "" || q.SortField != field {
		return ""
	}
	if q.SortOrder == SortDesc {
		return "▼"
	}
	return "▲"
}

// Page is one page of a server-side paginated collection.
type Page[T any] struct {
	Items      []T
	TotalPages int
}

// EmptyPage is what a failed listing fetch degrades to.
func EmptyPage[T any]() Page[T] {
	return Page[T]{Items: []T{}, TotalPages: 1}
}
