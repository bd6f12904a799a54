package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

type stubDashboardService struct {
	stats domain.DashboardStats
}

func (s stubDashboardService) Stats(context.Context, string) domain.DashboardStats { return s.stats }

func TestDashboardHandler_Home(t *testing.T) {
	e, r := newTestEcho()
	handler := NewDashboardHandler(&stubAuthService{}, stubDashboardService{stats: domain.DashboardStats{TotalClients: 4, TotalAccountants: 2}}, testLogger)

	c, rec := newFormRequest(e, http.MethodGet, "/dashboard", "/dashboard", nil, testSession())
	if err := handler.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || r.name != "dashboard" {
		t.Fatalf("unexpected response %d %s", rec.Code, r.name)
	}
	if view := r.page().Data.(dashboardView); view.Stats.TotalClients != 4 || view.Stats.TotalAccountants != 2 {
		t.Fatalf("unexpected stats %+v", view.Stats)
	}
}

func TestDashboardHandler_Stats_JSON(t *testing.T) {
	e, _ := newTestEcho()
	handler := NewDashboardHandler(&stubAuthService{}, stubDashboardService{stats: domain.DashboardStats{TotalClients: 4}}, testLogger)

	c, rec := newFormRequest(e, http.MethodGet, "/api/v1/dashboard/stats", "/api/v1/dashboard/stats", nil, testSession())
	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalClients"] != 4 || resp["totalAccountants"] != 0 {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestDashboardHandler_MissingSessionIsUnauthorized(t *testing.T) {
	e, _ := newTestEcho()
	handler := NewDashboardHandler(&stubAuthService{}, stubDashboardService{}, testLogger)

	c, _ := newFormRequest(e, http.MethodGet, "/dashboard", "/dashboard", nil, nil)
	err := handler.Home(c)
	if err == nil {
		t.Fatalf("expected an error without a session")
	}
}
