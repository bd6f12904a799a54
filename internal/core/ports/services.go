package ports

import (
	"context"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

// AuthService manages staff sessions. The browser only ever holds a signed
// token naming a session id; the API bearer token stays server-side.
type AuthService interface {
	// Login exchanges credentials with the API and stores a new session.
	// Nothing is stored when the API rejects the credentials.
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// Token signs the cookie value for s.
	Token(s *domain.Session) (string, error)
	// Authenticate verifies a cookie value and loads its session. Any
	// failure is reported as domain.ErrSessionNotFound.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	SetFlash(ctx context.Context, s *domain.Session, f domain.Flash) error
	// TakeFlash returns and clears the pending banner, if any.
	TakeFlash(ctx context.Context, s *domain.Session) (*domain.Flash, error)
}

// UserService covers the accountant and client screens.
type UserService interface {
	// ListAccountants and ListClients never fail: errors degrade to
	// domain.EmptyPage and are logged.
	ListAccountants(ctx context.Context, token string, q domain.ListQuery) domain.Page[domain.User]
	ListClients(ctx context.Context, token string, q domain.ListQuery) domain.Page[domain.User]
	GetUser(ctx context.Context, token string, id domain.ID) (*domain.User, error)

	// LoadAccountant and LoadClient prefill the edit forms.
	LoadAccountant(ctx context.Context, token string, id domain.ID) (domain.AccountantPayload, error)
	LoadClient(ctx context.Context, token string, id domain.ID) (domain.ClientPayload, error)
	// SaveAccountant and SaveClient create when id is empty and update
	// otherwise. The returned string is the API's message.
	SaveAccountant(ctx context.Context, token string, id domain.ID, p domain.AccountantPayload) (string, error)
	SaveClient(ctx context.Context, token string, id domain.ID, p domain.ClientPayload) (string, error)

	Delete(ctx context.Context, token string, id domain.ID) error
	// ToggleStatus flips current and returns the status that was sent.
	ToggleStatus(ctx context.Context, token string, id domain.ID, current domain.Status) (domain.Status, error)

	Services(ctx context.Context, token string, owner domain.ID) ([]domain.Service, error)

	QuickBooksConnectURL(clientID domain.ID) string
	RevokeQuickBooks(ctx context.Context, token string, clientID domain.ID) error
}

// AssignmentSide names the subject of an assignment screen.
type AssignmentSide int

const (
	// SideAccountant assigns clients to an accountant.
	SideAccountant AssignmentSide = iota
	// SideClient assigns accountants to a client.
	SideClient
)

// Counterpart is the role picked from the dropdown.
func (s AssignmentSide) Counterpart() domain.Role {
	if s == SideAccountant {
		return domain.RoleClient
	}
	return domain.RoleAccountant
}

// AssignmentFormInput identifies an assignment screen.
type AssignmentFormInput struct {
	Side         AssignmentSide
	SubjectID    domain.ID
	AssignmentID domain.ID // set in edit mode
	// Counterpart is the currently selected counterpart, if any. On the
	// client side it decides whose services are offered.
	Counterpart domain.ID
}

// AssignmentForm is everything an assignment screen renders.
type AssignmentForm struct {
	Subject          *domain.User
	Counterparts     []domain.User
	Services         []domain.Service
	Counterpart      domain.ID
	SelectedServices []string
	Editing          bool
	// ServicesError is shown under the services field; the form stays usable.
	ServicesError string
}

type AssignmentService interface {
	// Prepare loads the screen. A subject or assignment that cannot be
	// loaded is an error; the page then refuses to proceed.
	Prepare(ctx context.Context, token string, in AssignmentFormInput) (*AssignmentForm, error)
	Assign(ctx context.Context, token string, req domain.AssignmentRequest) (string, error)
	// List never fails: errors degrade to domain.EmptyPage and are logged.
	List(ctx context.Context, token string, f domain.AssignmentFilter) domain.Page[domain.Assignment]
	// ServiceFilter lists every service for the listing's service filter.
	ServiceFilter(ctx context.Context, token string) []domain.Service
}

type DashboardService interface {
	// Stats never fails: errors degrade to zero counts and are logged.
	Stats(ctx context.Context, token string) domain.DashboardStats
}
