package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/api/middleware"
	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

// Page is the data handed to every template.
type Page struct {
	Title    string
	Nav      string
	Username string
	Flash    *domain.Flash
	Data     any
}

// views renders pages and carries one-shot banners across redirects.
type views struct {
	auth   ports.AuthService
	logger zerolog.Logger
}

// render fills the session parts of p and renders tmpl. A banner passed in
// p.Flash wins over a pending one, which is then kept for the next page.
func (v views) render(c echo.Context, status int, tmpl string, p Page) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		p.Username = sess.Username
		if p.Flash == nil {
			f, err := v.auth.TakeFlash(c.Request().Context(), sess)
			if err != nil {
				v.logger.Warn().Err(err).Msg("flash lookup failed")
			}
			p.Flash = f
		}
	}
	return c.Render(status, tmpl, p)
}

// redirect sends the browser to target with a banner for the next page.
func (v views) redirect(c echo.Context, target string, variant domain.FlashVariant, msg string) error {
	if sess := middleware.CurrentSession(c); sess != nil && msg != "" {
		if err := v.auth.SetFlash(c.Request().Context(), sess, domain.Flash{Variant: variant, Message: msg}); err != nil {
			v.logger.Warn().Err(err).Msg("flash store failed")
		}
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func danger(msg string) *domain.Flash {
	return &domain.Flash{Variant: domain.FlashDanger, Message: msg}
}

// returnTo is the local listing URL posted by row actions, or fallback.
func returnTo(c echo.Context, fallback string) string {
	target := c.FormValue("return")
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	if u, err := url.Parse(target); err != nil || u.Host != "" {
		return fallback
	}
	return target
}

type errorView struct {
	Status  int
	Message string
}

// ErrorView is the data of the error page.
func ErrorView(status int, msg string) any {
	return errorView{Status: status, Message: msg}
}

type loginView struct {
	Form   loginForm
	Errors FieldErrors
}

type dashboardView struct {
	Stats domain.DashboardStats
}

type userListView struct {
	Listing Listing
	Users   []domain.User
}

type accountantFormView struct {
	Action   string
	Editing  bool
	Form     accountantForm
	Errors   FieldErrors
	Services []domain.Service
}

type clientFormView struct {
	Action  string
	Editing bool
	Form    clientForm
	Errors  FieldErrors
}

type clientDetailView struct {
	User *domain.User
}
