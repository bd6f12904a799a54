package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

func (c *Client) GetUser(ctx context.Context, token string, id domain.ID) (*domain.User, error) {
	var u domain.User
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "user/" + url.PathEscape(id.String()),
		endpoint: "user.get",
		token:    token,
	}, &u)
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, fmt.Errorf("user.get %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

// ListAccountants sorts with the sortBy parameter; the clients listing uses
// sortField. Both are what the API expects.
func (c *Client) ListAccountants(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.User], error) {
	params := listParams(q)
	params.Set("role", fmt.Sprint(int(domain.RoleAccountant)))
	params.Set("status", q.Status)
	params.Set("sortBy", q.SortField)

	var env pageEnvelope[domain.User]
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "user/getAccountants",
		endpoint: "user.list_accountants",
		query:    params,
		token:    token,
	}, &env); err != nil {
		return domain.Page[domain.User]{}, err
	}
	return env.page(), nil
}

func (c *Client) ListClients(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.User], error) {
	params := listParams(q)
	params.Set("role", fmt.Sprint(int(domain.RoleClient)))
	params.Set("status", q.Status)
	params.Set("sortField", q.SortField)

	var env pageEnvelope[domain.User]
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "user/getClients",
		endpoint: "user.list_clients",
		query:    params,
		token:    token,
	}, &env); err != nil {
		return domain.Page[domain.User]{}, err
	}
	return env.page(), nil
}

func (c *Client) ListByRole(ctx context.Context, token string, role domain.Role) ([]domain.User, error) {
	var env pageEnvelope[domain.User]
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "user/getUsers",
		endpoint: "user.list_by_role",
		query:    url.Values{"role": {fmt.Sprint(int(role))}},
		token:    token,
	}, &env); err != nil {
		return nil, err
	}
	return env.page().Items, nil
}

func (c *Client) CreateClient(ctx context.Context, token string, p domain.ClientPayload) (string, error) {
	return c.write(ctx, request{
		method:   http.MethodPost,
		path:     "user/create",
		endpoint: "user.create_client",
		token:    token,
		body:     p,
	}, "User created successfully!")
}

func (c *Client) UpdateClient(ctx context.Context, token string, id domain.ID, p domain.ClientPayload) (string, error) {
	return c.write(ctx, request{
		method:   http.MethodPut,
		path:     "user/update/" + url.PathEscape(id.String()),
		endpoint: "user.update_client",
		token:    token,
		body:     p,
	}, "User updated successfully!")
}

func (c *Client) CreateAccountant(ctx context.Context, token string, p domain.AccountantPayload) (string, error) {
	return c.write(ctx, request{
		method:   http.MethodPost,
		path:     "user/accountant/create",
		endpoint: "user.create_accountant",
		token:    token,
		body:     p,
	}, "User saved successfully.")
}

func (c *Client) UpdateAccountant(ctx context.Context, token string, id domain.ID, p domain.AccountantPayload) (string, error) {
	return c.write(ctx, request{
		method:   http.MethodPut,
		path:     "user/accountant/update/" + url.PathEscape(id.String()),
		endpoint: "user.update_accountant",
		token:    token,
		body:     p,
	}, "User saved successfully.")
}

func (c *Client) DeleteUser(ctx context.Context, token string, id domain.ID) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     "user/delete",
		endpoint: "user.delete",
		token:    token,
		body:     map[string]domain.ID{"id": id},
	}, nil)
}

func (c *Client) UpdateStatus(ctx context.Context, token string, id domain.ID, status domain.Status) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		path:     "user/updateStatus",
		endpoint: "user.update_status",
		token:    token,
		body:     domain.StatusUpdate{ID: id, Status: status},
	}, nil)
}

// ListServices lists the services of owner, or every service when owner is
// empty.
func (c *Client) ListServices(ctx context.Context, token string, owner domain.ID) ([]domain.Service, error) {
	var query url.Values
	if owner != "" {
		query = url.Values{"userId": {owner.String()}}
	}
	var services []domain.Service
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "services",
		endpoint: "services.list",
		query:    query,
		token:    token,
	}, &services); err != nil {
		return nil, err
	}
	if services == nil {
		services = []domain.Service{}
	}
	return services, nil
}
