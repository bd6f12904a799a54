package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

func (c *Client) ListAssignments(ctx context.Context, token string, f domain.AssignmentFilter) (domain.Page[domain.Assignment], error) {
	params := listParams(f.Query)
	params.Set("service", f.Query.Service)
	params.Set("sortField", f.Query.SortField)
	if f.AccountantID != "" {
		params.Set("accountantId", f.AccountantID.String())
	}
	if f.ClientID != "" {
		params.Set("clientId", f.ClientID.String())
	}

	var env pageEnvelope[domain.Assignment]
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "accountant-assignment",
		endpoint: "assignment.list",
		query:    params,
		token:    token,
	}, &env); err != nil {
		return domain.Page[domain.Assignment]{}, err
	}
	return env.page(), nil
}

func (c *Client) GetAssignment(ctx context.Context, token string, id domain.ID) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "accountant-assignment",
		endpoint: "assignment.get",
		query:    url.Values{"assignmentId": {id.String()}},
		token:    token,
	}, &a); err != nil {
		return nil, err
	}
	if a.ClientID == "" && a.AccountantID == "" {
		return nil, fmt.Errorf("assignment.get %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (c *Client) Assign(ctx context.Context, token string, req domain.AssignmentRequest) (string, error) {
	return c.write(ctx, request{
		method:   http.MethodPost,
		path:     "accountant-assignment/assign",
		endpoint: "assignment.assign",
		token:    token,
		body:     req,
	}, "Assignment saved successfully!")
}
