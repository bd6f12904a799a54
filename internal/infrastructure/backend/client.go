// Package backend talks to the remote practice-management API. Client
// implements every gateway in ports.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a Client for baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// request describes one call. endpoint is the metric label.
type request struct {
	method   string
	path     string
	endpoint string
	query    url.Values
	token    string
	body     any
}

// messageResponse is the envelope of write endpoints and of most errors.
type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (m messageResponse) text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends r and decodes a 2xx JSON body into out (when non-nil).
// 401 wraps domain.ErrUnauthorized, 404 wraps domain.ErrNotFound; both and
// every other non-2xx also carry a *domain.APIError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	start := time.Now()
	outcome := "transport_error"
	defer func() {
		metrics.BackendRequestsTotal.WithLabelValues(r.endpoint, outcome).Inc()
		metrics.BackendRequestDuration.WithLabelValues(r.endpoint).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", r.endpoint, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.path, r.query), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", r.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", r.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", r.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = outcomeFor(resp.StatusCode)
		c.log.Debug().
			Str("endpoint", r.endpoint).
			Int("status", resp.StatusCode).
			Msg("backend returned an error")
		return statusError(resp.StatusCode, raw)
	}
	outcome = "ok"

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", r.endpoint, err)
	}
	return nil
}

func statusError(status int, raw []byte) error {
	var msg messageResponse
	_ = json.Unmarshal(raw, &msg)
	apiErr := &domain.APIError{Status: status, Message: msg.text()}

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	}
	return apiErr
}

func outcomeFor(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= 500:
		return "server_error"
	default:
		return "client_error"
	}
}

// write sends a write request and returns the API's message, or fallback
// when the body carries none.
func (c *Client) write(ctx context.Context, r request, fallback string) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, r, &resp); err != nil {
		return "", err
	}
	if m := resp.Message; m != "" {
		return m, nil
	}
	return fallback, nil
}

// pageEnvelope accepts {items, totalPages} and the older per-collection
// keys the API still uses on some listings.
type pageEnvelope[T any] struct {
	Items       []T `json:"items"`
	Accountants []T `json:"accountants"`
	Clients     []T `json:"clients"`
	Users       []T `json:"users"`
	Assignments []T `json:"assignments"`
	TotalPages  int `json:"totalPages"`
}

func (e pageEnvelope[T]) page() domain.Page[T] {
	items := e.Items
	for _, alt := range [][]T{e.Accountants, e.Clients, e.Users, e.Assignments} {
		if items != nil {
			break
		}
		items = alt
	}
	if items == nil {
		items = []T{}
	}
	total := e.TotalPages
	if total < 1 {
		total = 1
	}
	return domain.Page[T]{Items: items, TotalPages: total}
}

func listParams(q domain.ListQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("search", q.Search)
	v.Set("page", fmt.Sprint(q.Page))
	v.Set("pageSize", fmt.Sprint(domain.PageSize))
	v.Set("sortOrder", string(q.SortOrder))
	return v
}

// Ping reports whether the API answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("ping: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	resp.Body.Close()
	return nil
}
