package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/api/handler"
	"github.com/vacei/admin-dashboard/internal/api/middleware"
	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

const sessionExpiredMessage = "Session expired, please log in again."

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Ends the session and sends the browser to the login page when the
//     backend rejects the session's token.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error page for browsers and {"error": "<message>"} for
//     JSON clients.
func NewHTTPErrorHandler(log zerolog.Logger, auth ports.AuthService, cookie middleware.SessionCookie) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthorized) {
			endSession(c, log, auth, cookie)
			if middleware.WantsJSON(c) {
				_ = c.JSON(http.StatusUnauthorized, errorResponse{Error: "session expired"})
				return
			}
			target := middleware.LoginPath + "?" + url.Values{"message": {sessionExpiredMessage}}.Encode()
			_ = c.Redirect(http.StatusSeeOther, target)
			return
		}

		code, msg := resolveError(err, log, c)
		switch {
		case c.Request().Method == http.MethodHead:
			_ = c.NoContent(code)
		case middleware.WantsJSON(c):
			_ = c.JSON(code, errorResponse{Error: msg})
		default:
			renderErrorPage(c, log, code, msg)
		}
	}
}

// endSession drops the server-side session whose API token was rejected.
func endSession(c echo.Context, log zerolog.Logger, auth ports.AuthService, cookie middleware.SessionCookie) {
	metrics.SessionsExpiredTotal.Inc()
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := auth.Logout(c.Request().Context(), sess.ID); err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to drop expired session")
		}
	}
	cookie.Clear(c)
}

func renderErrorPage(c echo.Context, log zerolog.Logger, code int, msg string) {
	p := handler.Page{
		Title: http.StatusText(code),
		Data:  handler.ErrorView(code, msg),
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		p.Username = sess.Username
	}
	if err := c.Render(code, "error", p); err != nil {
		log.Error().Err(err).Msg("render error page")
		_ = c.String(code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "Invalid or missing user ID."
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "Please log in."
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		log.Warn().
			Err(err).
			Int("backend_status", apiErr.Status).
			Str("path", c.Path()).
			Msg("backend error")
		return http.StatusBadGateway, domain.Message(err, "The backend could not complete the request.")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
