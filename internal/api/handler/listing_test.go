package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

func TestListQuery_FromRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/x?search=+acme+&status=1&service=VAT&sort=email&order=bogus&page=-3", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	q := listQuery(c)
	if q.Search != "acme" || q.Status != "1" || q.Service != "VAT" || q.SortField != "email" {
		t.Fatalf("unexpected query %+v", q)
	}
	if q.SortOrder != domain.SortAsc || q.Page != 1 {
		t.Fatalf("invalid order and page should be normalised, got %+v", q)
	}
}

func TestListing_URLKeepsFixedParams(t *testing.T) {
	l := newListing("/dashboard/accountants/assign-clients", domain.ListQuery{Page: 1}, 3, url.Values{"id": {"NQ=="}})

	got, err := url.Parse(l.PageURL(2))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Query().Get("id") != "NQ==" || got.Query().Get("page") != "2" {
		t.Fatalf("unexpected url %s", got)
	}
	if l.Fixed.Get("page") != "" {
		t.Fatalf("fixed params must not be modified")
	}
}

func TestListing_ColumnTogglesSort(t *testing.T) {
	l := newListing("/dashboard/clients", domain.ListQuery{SortField: "email", SortOrder: domain.SortAsc, Page: 3}, 5, nil)

	col := l.Column("email", "Email")
	if col.Arrow != "▲" {
		t.Fatalf("expected up arrow on active column, got %q", col.Arrow)
	}
	if col.URL != "/dashboard/clients?order=desc&sort=email" {
		t.Fatalf("unexpected column url %q", col.URL)
	}
	if other := l.Column("username", "Username"); other.Arrow != "" || other.URL != "/dashboard/clients?order=asc&sort=username" {
		t.Fatalf("unexpected other column %+v", other)
	}
}

func TestListing_Pager(t *testing.T) {
	l := newListing("/dashboard/clients", domain.ListQuery{Page: 1}, 0, nil)
	if l.TotalPages != 1 || l.HasPrev() || l.HasNext() {
		t.Fatalf("single page listing should have no pager links: %+v", l)
	}
	if l.URL(l.Query) != "/dashboard/clients" {
		t.Fatalf("empty query should produce the bare path, got %q", l.URL(l.Query))
	}

	l = newListing("/dashboard/clients", domain.ListQuery{Page: 2, Status: "0"}, 3, nil)
	if !l.HasPrev() || !l.HasNext() {
		t.Fatalf("middle page should link both ways")
	}
	if l.PrevURL() != "/dashboard/clients?status=0" || l.NextURL() != "/dashboard/clients?page=3&status=0" {
		t.Fatalf("unexpected pager urls %q %q", l.PrevURL(), l.NextURL())
	}
	if l.StatusURL("1") != "/dashboard/clients?status=1" {
		t.Fatalf("status change should reset the page, got %q", l.StatusURL("1"))
	}
	if pages := l.Pages(); len(pages) != 3 || pages[2] != 3 {
		t.Fatalf("unexpected pages %v", pages)
	}
}

func TestListing_ServiceURLResetsPage(t *testing.T) {
	l := newListing("/dashboard/clients/assign-accountants", domain.ListQuery{Page: 4, Search: "acme"}, 6, url.Values{"id": {"NQ=="}})

	got, err := url.Parse(l.ServiceURL("VAT"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := got.Query()
	if q.Get("service") != "VAT" || q.Get("page") != "" || q.Get("search") != "acme" || q.Get("id") != "NQ==" {
		t.Fatalf("unexpected service url %s", got)
	}
	if all, _ := url.Parse(newListing(l.Path, domain.ListQuery{Service: "VAT"}, 1, nil).ServiceURL("")); all.Query().Has("service") {
		t.Fatalf("clearing the service filter should drop the param, got %s", all)
	}
}

func TestListing_PagesIsBoundedWindow(t *testing.T) {
	for _, tc := range []struct {
		name  string
		page  int
		total int
		first int
		last  int
	}{
		{"first page of huge listing", 1, 1_000_000_000, 1, 10},
		{"middle of huge listing", 500_000, 1_000_000_000, 499_995, 500_004},
		{"last page of huge listing", 1_000_000_000, 1_000_000_000, 999_999_991, 1_000_000_000},
		{"page past the end", 50, 12, 3, 12},
		{"short listing", 2, 3, 1, 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := newListing("/dashboard/clients", domain.ListQuery{Page: tc.page}, tc.total, nil)
			pages := l.Pages()
			if len(pages) > pagerWindow {
				t.Fatalf("pager should show at most %d pages, got %d", pagerWindow, len(pages))
			}
			if pages[0] != tc.first || pages[len(pages)-1] != tc.last {
				t.Fatalf("expected pages %d..%d, got %v", tc.first, tc.last, pages)
			}
		})
	}
}
