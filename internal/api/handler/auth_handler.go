package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/api/middleware"
	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

const dashboardPath = "/dashboard"

type AuthHandler struct {
	views
	authService ports.AuthService
	cookie      middleware.SessionCookie
}

func NewAuthHandler(authService ports.AuthService, cookie middleware.SessionCookie, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		views:       views{auth: authService, logger: logger},
		authService: authService,
		cookie:      cookie,
	}
}

// LoginPage shows the sign-in form. A ?message= parameter ends any current
// session and is shown as a danger banner; otherwise a signed-in browser
// goes straight to the dashboard.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	ctx := c.Request().Context()
	msg := c.QueryParam("message")

	sess, err := h.authService.Authenticate(ctx, h.cookie.Read(c))
	if err == nil {
		if msg == "" {
			return c.Redirect(http.StatusSeeOther, dashboardPath)
		}
		if err := h.authService.Logout(ctx, sess.ID); err != nil {
			h.logger.Warn().Err(err).Msg("logout failed")
		}
	}
	if msg != "" {
		h.cookie.Clear(c)
	}

	p := Page{Title: "Login", Data: loginView{}}
	if msg != "" {
		p.Flash = danger(msg)
	}
	return c.Render(http.StatusOK, "login", p)
}

// Login validates the form, exchanges the credentials with the API and
// starts a session. Rejections are shown under the email field.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	form.Email = strings.TrimSpace(form.Email)

	if err := c.Validate(&form); err != nil {
		var fe FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return h.loginFailed(c, http.StatusUnprocessableEntity, form, fe)
	}

	sess, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		h.logger.Info().Err(err).Str("email", form.Email).Msg("login rejected")
		return h.loginFailed(c, http.StatusUnauthorized, form, FieldErrors{
			"email": domain.Message(err, "Failed to login"),
		})
	}

	token, err := h.authService.Token(sess)
	if err != nil {
		return err
	}
	h.cookie.Set(c, token, sess.ExpiresAt)
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *AuthHandler) loginFailed(c echo.Context, status int, form loginForm, fe FieldErrors) error {
	form.Password = ""
	return c.Render(status, "login", Page{
		Title: "Login",
		Data:  loginView{Form: form, Errors: fe},
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
			h.logger.Warn().Err(err).Msg("logout failed")
		}
	}
	h.cookie.Clear(c)
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
