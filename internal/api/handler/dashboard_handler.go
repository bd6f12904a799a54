package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/ports"
)

type DashboardHandler struct {
	views
	dashboard ports.DashboardService
}

func NewDashboardHandler(auth ports.AuthService, dashboard ports.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{views: views{auth: auth, logger: logger}, dashboard: dashboard}
}

// Home renders the welcome page with the client and accountant counts.
func (h *DashboardHandler) Home(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	stats := h.dashboard.Stats(c.Request().Context(), sess.Token)
	return h.render(c, http.StatusOK, "dashboard", Page{
		Title: "Dashboard",
		Nav:   "dashboard",
		Data:  dashboardView{Stats: stats},
	})
}

// Stats returns the dashboard counters.
//
// @Summary      Dashboard counters
// @Description  Number of clients and accountants. Falls back to zeros when the backend cannot answer.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  map[string]string
// @Security     SessionCookie
// @Router       /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.dashboard.Stats(c.Request().Context(), sess.Token))
}
