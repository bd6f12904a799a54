package ports

import (
	"context"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

// Every gateway call below is a single request to the remote API. token is
// the signed-in user's bearer credential.

// AuthGateway exchanges credentials for a bearer token.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

// UserGateway covers the user endpoints of the API.
type UserGateway interface {
	GetUser(ctx context.Context, token string, id domain.ID) (*domain.User, error)
	ListAccountants(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.User], error)
	ListClients(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.User], error)
	// ListByRole returns the unpaginated users of one role, used to fill
	// counterpart dropdowns.
	ListByRole(ctx context.Context, token string, role domain.Role) ([]domain.User, error)
	CreateClient(ctx context.Context, token string, p domain.ClientPayload) (string, error)
	UpdateClient(ctx context.Context, token string, id domain.ID, p domain.ClientPayload) (string, error)
	CreateAccountant(ctx context.Context, token string, p domain.AccountantPayload) (string, error)
	UpdateAccountant(ctx context.Context, token string, id domain.ID, p domain.AccountantPayload) (string, error)
	DeleteUser(ctx context.Context, token string, id domain.ID) error
	UpdateStatus(ctx context.Context, token string, id domain.ID, status domain.Status) error
}

// ServiceCatalog lists billable services. An empty owner lists all of them.
type ServiceCatalog interface {
	ListServices(ctx context.Context, token string, owner domain.ID) ([]domain.Service, error)
}

type AssignmentGateway interface {
	ListAssignments(ctx context.Context, token string, f domain.AssignmentFilter) (domain.Page[domain.Assignment], error)
	GetAssignment(ctx context.Context, token string, id domain.ID) (*domain.Assignment, error)
	Assign(ctx context.Context, token string, req domain.AssignmentRequest) (string, error)
}

type QuickBooksGateway interface {
	// ConnectURL is where the browser is sent to authorise QuickBooks.
	ConnectURL(clientID domain.ID) string
	Revoke(ctx context.Context, token string, clientID domain.ID) error
}

type StatsGateway interface {
	DashboardStats(ctx context.Context, token string) (domain.DashboardStats, error)
}
