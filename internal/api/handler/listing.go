package handler

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

// listQuery reads a listing's state from the query string.
func listQuery(c echo.Context) domain.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return domain.ListQuery{
		Search:    c.QueryParam("search"),
		Status:    c.QueryParam("status"),
		Service:   c.QueryParam("service"),
		SortField: c.QueryParam("sort"),
		SortOrder: domain.SortOrder(c.QueryParam("order")),
		Page:      page,
	}.Normalize()
}

// Listing renders the controls of one listing: sortable headers, status
// filter and pager. Every link it produces is a complete ListQuery, so each
// click issues exactly one fetch.
type Listing struct {
	Path       string
	Query      domain.ListQuery
	TotalPages int
	// Fixed holds parameters kept on every link, such as the subject id of
	// an assignment listing.
	Fixed url.Values
}

func newListing(path string, q domain.ListQuery, totalPages int, fixed url.Values) Listing {
	if totalPages < 1 {
		totalPages = 1
	}
	return Listing{Path: path, Query: q, TotalPages: totalPages, Fixed: fixed}
}

// URL is the address of this listing in state q.
func (l Listing) URL(q domain.ListQuery) string {
	v := url.Values{}
	for k, vals := range l.Fixed {
		v[k] = append([]string(nil), vals...)
	}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("search", q.Search)
	set("status", q.Status)
	set("service", q.Service)
	set("sort", q.SortField)
	if q.SortField != "" {
		set("order", string(q.SortOrder))
	}
	if q.Page > 1 {
		set("page", strconv.Itoa(q.Page))
	}
	if len(v) == 0 {
		return l.Path
	}
	return l.Path + "?" + v.Encode()
}

// Column is one sortable table header.
type Column struct {
	Label string
	URL   string
	Arrow string
}

func (l Listing) Column(field, label string) Column {
	return Column{
		Label: label,
		URL:   l.URL(l.Query.ToggleSort(field)),
		Arrow: l.Query.SortIndicator(field),
	}
}

func (l Listing) StatusURL(status string) string {
	return l.URL(l.Query.WithStatus(status))
}

func (l Listing) ServiceURL(code string) string {
	return l.URL(l.Query.WithService(code))
}

func (l Listing) PageURL(page int) string {
	return l.URL(l.Query.GoTo(page, l.TotalPages))
}

func (l Listing) HasPrev() bool { return l.Query.Page > 1 }
func (l Listing) HasNext() bool { return l.Query.Page < l.TotalPages }

func (l Listing) PrevURL() string { return l.PageURL(l.Query.Page - 1) }
func (l Listing) NextURL() string { return l.PageURL(l.Query.Page + 1) }

// pagerWindow is the most page links the pager shows at once.
const pagerWindow = 10

// Pages lists the page numbers shown in the pager: a window of at most
// pagerWindow pages around the current one.
func (l Listing) Pages() []int {
	current := l.Query.GoTo(l.Query.Page, l.TotalPages).Page
	first := current - pagerWindow/2
	if first > l.TotalPages-pagerWindow+1 {
		first = l.TotalPages - pagerWindow + 1
	}
	if first < 1 {
		first = 1
	}
	last := first + pagerWindow - 1
	if last > l.TotalPages {
		last = l.TotalPages
	}
	pages := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		pages = append(pages, i)
	}
	return pages
}
