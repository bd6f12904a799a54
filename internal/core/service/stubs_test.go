package service

import (
	"context"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

// stubBackend implements every gateway with optional function fields. An
// unset field answers with a zero value.
type stubBackend struct {
	getUserFn         func(id domain.ID) (*domain.User, error)
	listAccountantsFn func(q domain.ListQuery) (domain.Page[domain.User], error)
	listClientsFn     func(q domain.ListQuery) (domain.Page[domain.User], error)
	listByRoleFn      func(role domain.Role) ([]domain.User, error)
	listServicesFn    func(owner domain.ID) ([]domain.Service, error)
	listAssignmentsFn func(f domain.AssignmentFilter) (domain.Page[domain.Assignment], error)
	getAssignmentFn   func(id domain.ID) (*domain.Assignment, error)
	assignFn          func(req domain.AssignmentRequest) (string, error)
	statsFn           func() (domain.DashboardStats, error)
	updateStatusFn    func(id domain.ID, status domain.Status) error
	revokeFn          func(clientID domain.ID) error

	created        []any
	updated        map[domain.ID]any
	deleted        []domain.ID
	servicesOwners []domain.ID
}

func (b *stubBackend) GetUser(_ context.Context, _ string, id domain.ID) (*domain.User, error) {
	if b.getUserFn == nil {
		return &domain.User{ID: id}, nil
	}
	return b.getUserFn(id)
}

func (b *stubBackend) ListAccountants(_ context.Context, _ string, q domain.ListQuery) (domain.Page[domain.User], error) {
	if b.listAccountantsFn == nil {
		return domain.EmptyPage[domain.User](), nil
	}
	return b.listAccountantsFn(q)
}

func (b *stubBackend) ListClients(_ context.Context, _ string, q domain.ListQuery) (domain.Page[domain.User], error) {
	if b.listClientsFn == nil {
		return domain.EmptyPage[domain.User](), nil
	}
	return b.listClientsFn(q)
}

func (b *stubBackend) ListByRole(_ context.Context, _ string, role domain.Role) ([]domain.User, error) {
	if b.listByRoleFn == nil {
		return nil, nil
	}
	return b.listByRoleFn(role)
}

func (b *stubBackend) CreateClient(_ context.Context, _ string, p domain.ClientPayload) (string, error) {
	b.created = append(b.created, p)
	return "User created successfully!", nil
}

func (b *stubBackend) UpdateClient(_ context.Context, _ string, id domain.ID, p domain.ClientPayload) (string, error) {
	b.record(id, p)
	return "User updated successfully!", nil
}

func (b *stubBackend) CreateAccountant(_ context.Context, _ string, p domain.AccountantPayload) (string, error) {
	b.created = append(b.created, p)
	return "User saved successfully.", nil
}

func (b *stubBackend) UpdateAccountant(_ context.Context, _ string, id domain.ID, p domain.AccountantPayload) (string, error) {
	b.record(id, p)
	return "User saved successfully.", nil
}

func (b *stubBackend) record(id domain.ID, p any) {
	if b.updated == nil {
		b.updated = map[domain.ID]any{}
	}
	b.updated[id] = p
}

func (b *stubBackend) DeleteUser(_ context.Context, _ string, id domain.ID) error {
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *stubBackend) UpdateStatus(_ context.Context, _ string, id domain.ID, status domain.Status) error {
	if b.updateStatusFn == nil {
		return nil
	}
	return b.updateStatusFn(id, status)
}

func (b *stubBackend) ListServices(_ context.Context, _ string, owner domain.ID) ([]domain.Service, error) {
	b.servicesOwners = append(b.servicesOwners, owner)
	if b.listServicesFn == nil {
		return []domain.Service{}, nil
	}
	return b.listServicesFn(owner)
}

func (b *stubBackend) ListAssignments(_ context.Context, _ string, f domain.AssignmentFilter) (domain.Page[domain.Assignment], error) {
	if b.listAssignmentsFn == nil {
		return domain.EmptyPage[domain.Assignment](), nil
	}
	return b.listAssignmentsFn(f)
}

func (b *stubBackend) GetAssignment(_ context.Context, _ string, id domain.ID) (*domain.Assignment, error) {
	if b.getAssignmentFn == nil {
		return nil, domain.ErrNotFound
	}
	return b.getAssignmentFn(id)
}

func (b *stubBackend) Assign(_ context.Context, _ string, req domain.AssignmentRequest) (string, error) {
	if b.assignFn == nil {
		return "Assignment saved successfully!", nil
	}
	return b.assignFn(req)
}

func (b *stubBackend) DashboardStats(context.Context, string) (domain.DashboardStats, error) {
	if b.statsFn == nil {
		return domain.DashboardStats{}, nil
	}
	return b.statsFn()
}

func (b *stubBackend) ConnectURL(clientID domain.ID) string {
	return "https://api.example.com/quickbooks?clientId=" + clientID.String()
}

func (b *stubBackend) Revoke(_ context.Context, _ string, clientID domain.ID) error {
	if b.revokeFn == nil {
		return nil
	}
	return b.revokeFn(clientID)
}
