package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

// UserService backs the accountant and client screens.
type UserService struct {
	users      ports.UserGateway
	catalog    ports.ServiceCatalog
	quickbooks ports.QuickBooksGateway
	logger     zerolog.Logger
}

func NewUserService(users ports.UserGateway, catalog ports.ServiceCatalog, quickbooks ports.QuickBooksGateway, logger zerolog.Logger) *UserService {
	return &UserService{users: users, catalog: catalog, quickbooks: quickbooks, logger: logger}
}

func (s *UserService) ListAccountants(ctx context.Context, token string, q domain.ListQuery) domain.Page[domain.User] {
	page, err := s.users.ListAccountants(ctx, token, q.Normalize())
	if err != nil {
		s.fallback("accountants", err)
		return domain.EmptyPage[domain.User]()
	}
	return page
}

func (s *UserService) ListClients(ctx context.Context, token string, q domain.ListQuery) domain.Page[domain.User] {
	if q.SortField == "" {
		q.SortField = "createdAt"
		q.SortOrder = domain.SortDesc
	}
	page, err := s.users.ListClients(ctx, token, q.Normalize())
	if err != nil {
		s.fallback("clients", err)
		return domain.EmptyPage[domain.User]()
	}
	return page
}

func (s *UserService) fallback(listing string, err error) {
	metrics.ListingFallbacksTotal.WithLabelValues(listing).Inc()
	s.logger.Error().Err(err).Str("listing", listing).Msg("listing fetch failed, showing empty page")
}

func (s *UserService) GetUser(ctx context.Context, token string, id domain.ID) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.users.GetUser(ctx, token, id)
}

func (s *UserService) LoadAccountant(ctx context.Context, token string, id domain.ID) (domain.AccountantPayload, error) {
	u, err := s.GetUser(ctx, token, id)
	if err != nil {
		return domain.AccountantPayload{}, err
	}
	services := u.Services
	if services == nil {
		services = []string{}
	}
	return domain.AccountantPayload{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      domain.RoleAccountant,
		Services:  services,
		Status:    u.Status,
	}, nil
}

func (s *UserService) LoadClient(ctx context.Context, token string, id domain.ID) (domain.ClientPayload, error) {
	u, err := s.GetUser(ctx, token, id)
	if err != nil {
		return domain.ClientPayload{}, err
	}
	meta := u.Company()
	return domain.ClientPayload{
		CompanyName:   meta.CompanyName,
		VATNumber:     meta.VATNumber,
		ContactPerson: meta.ContactPerson,
		Email:         u.Email,
		Username:      u.Username,
		Phone:         u.Phone,
		Role:          u.RoleOrDefault(),
		Status:        u.Status,
		AccountantID:  u.ResolvedAccountantID(),
	}, nil
}

func (s *UserService) SaveAccountant(ctx context.Context, token string, id domain.ID, p domain.AccountantPayload) (string, error) {
	p.Role = domain.RoleAccountant
	if id == "" {
		return s.users.CreateAccountant(ctx, token, p)
	}
	return s.users.UpdateAccountant(ctx, token, id, p)
}

func (s *UserService) SaveClient(ctx context.Context, token string, id domain.ID, p domain.ClientPayload) (string, error) {
	if p.Role == 0 {
		p.Role = domain.RoleClient
	}
	if id == "" {
		p.Status = domain.StatusActive
		return s.users.CreateClient(ctx, token, p)
	}
	return s.users.UpdateClient(ctx, token, id, p)
}

func (s *UserService) Delete(ctx context.Context, token string, id domain.ID) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.users.DeleteUser(ctx, token, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func (s *UserService) ToggleStatus(ctx context.Context, token string, id domain.ID, current domain.Status) (domain.Status, error) {
	if id == "" {
		return current, domain.ErrInvalidID
	}
	next := current.Toggle()
	if err := s.users.UpdateStatus(ctx, token, id, next); err != nil {
		return current, err
	}
	s.logger.Info().Str("user_id", id.String()).Str("status", next.Label()).Msg("user status changed")
	return next, nil
}

func (s *UserService) Services(ctx context.Context, token string, owner domain.ID) ([]domain.Service, error) {
	services, err := s.catalog.ListServices(ctx, token, owner)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

func (s *UserService) QuickBooksConnectURL(clientID domain.ID) string {
	return s.quickbooks.ConnectURL(clientID)
}

func (s *UserService) RevokeQuickBooks(ctx context.Context, token string, clientID domain.ID) error {
	if clientID == "" {
		return domain.ErrInvalidID
	}
	return s.quickbooks.Revoke(ctx, token, clientID)
}
