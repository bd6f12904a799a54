package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vacei/admin-dashboard/internal/api/middleware"
	"github.com/vacei/admin-dashboard/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware and
// fails fast when it is missing, which means the route was registered
// outside the protected group.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.CurrentSession(c)
	if sess == nil || sess.Token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// idParam decodes a base64 id from the query string, or from the form body
// for POST requests.
func idParam(c echo.Context, name string) (domain.ID, error) {
	raw := c.QueryParam(name)
	if raw == "" && c.Request().Method == http.MethodPost {
		raw = c.FormValue(name)
	}
	return domain.DecodeID(raw)
}
