package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

// SessionKey is the echo.Context key holding the *domain.Session.
const SessionKey = "session"

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// SessionCookie describes the cookie carrying the signed session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) Read(c echo.Context) string {
	cookie, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (sc SessionCookie) Set(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session loads the session named by the cookie and injects it into
// context. Browsers without a valid session are redirected to the login
// page; JSON clients get a 401.
func Session(auth ports.AuthService, cookie SessionCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := auth.Authenticate(c.Request().Context(), cookie.Read(c))
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					return err
				}
				cookie.Clear(c)
				if WantsJSON(c) {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by Session, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionKey).(*domain.Session)
	return sess
}

// WantsJSON reports whether the caller is an API client rather than a
// browser page.
func WantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.HasPrefix(accept, echo.MIMEApplicationJSON)
}
