package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login never sends a bearer token. A rejection keeps the API's message in
// the returned *domain.APIError.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var res domain.LoginResult
	if err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "auth/login",
		endpoint: "auth.login",
		body:     loginRequest{Email: email, Password: password},
	}, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &domain.APIError{Status: http.StatusBadGateway, Message: "Login response did not include a token"}
	}
	return &res, nil
}

func (c *Client) DashboardStats(ctx context.Context, token string) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "dashboard/stats",
		endpoint: "dashboard.stats",
		token:    token,
	}, &stats)
	return stats, err
}

// ConnectURL is opened by the browser, not by this client.
func (c *Client) ConnectURL(clientID domain.ID) string {
	return c.url("quickbooks", url.Values{"clientId": {clientID.String()}})
}

func (c *Client) Revoke(ctx context.Context, token string, clientID domain.ID) error {
	return c.do(ctx, request{
		method:   http.MethodGet,
		path:     "quickbooks/revoke",
		endpoint: "quickbooks.revoke",
		query:    url.Values{"clientId": {clientID.String()}},
		token:    token,
	}, nil)
}
