package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

const (
	msgServicesFailed            = "Failed to load services."
	msgCounterpartServicesFailed = "Failed to load services for the selected accountant."
)

// AssignmentService links clients and accountants.
type AssignmentService struct {
	users       ports.UserGateway
	catalog     ports.ServiceCatalog
	assignments ports.AssignmentGateway
	logger      zerolog.Logger
}

func NewAssignmentService(users ports.UserGateway, catalog ports.ServiceCatalog, assignments ports.AssignmentGateway, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{users: users, catalog: catalog, assignments: assignments, logger: logger}
}

// Prepare loads the subject, the counterpart dropdown and the offered
// services. In edit mode the stored assignment preselects the counterpart
// and services unless in.Counterpart overrides the counterpart.
//
// Offered services belong to the accountant of the pair: the subject on the
// accountant side, the selected counterpart on the client side.
func (s *AssignmentService) Prepare(ctx context.Context, token string, in ports.AssignmentFormInput) (*ports.AssignmentForm, error) {
	if in.SubjectID == "" {
		return nil, domain.ErrInvalidID
	}

	subject, err := s.users.GetUser(ctx, token, in.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("load subject %s: %w: %w", in.SubjectID, domain.ErrSubjectUnavailable, err)
	}

	form := &ports.AssignmentForm{
		Subject:          subject,
		Counterpart:      in.Counterpart,
		SelectedServices: []string{},
	}

	if in.AssignmentID != "" {
		a, err := s.assignments.GetAssignment(ctx, token, in.AssignmentID)
		if err != nil {
			return nil, fmt.Errorf("load assignment %s: %w: %w", in.AssignmentID, domain.ErrAssignmentUnavailable, err)
		}
		form.Editing = true
		if form.Counterpart == "" {
			form.Counterpart = a.ClientID
			if in.Side == ports.SideClient {
				form.Counterpart = a.AccountantID
			}
		}
		if a.Services != nil {
			form.SelectedServices = a.Services
		}
	}

	counterparts, err := s.users.ListByRole(ctx, token, in.Side.Counterpart())
	if err != nil {
		s.logger.Warn().Err(err).Str("role", in.Side.Counterpart().String()).Msg("counterpart lookup failed")
		counterparts = []domain.User{}
	}
	form.Counterparts = counterparts

	owner, failMsg := in.SubjectID, msgServicesFailed
	if in.Side == ports.SideClient {
		owner, failMsg = form.Counterpart, msgCounterpartServicesFailed
	}

	form.Services = []domain.Service{}
	if owner != "" {
		services, err := s.catalog.ListServices(ctx, token, owner)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner", owner.String()).Msg("service lookup failed")
			form.ServicesError = failMsg
		} else {
			form.Services = services
		}
	}

	return form, nil
}

func (s *AssignmentService) Assign(ctx context.Context, token string, req domain.AssignmentRequest) (string, error) {
	if req.AccountantID == "" || req.ClientID == "" {
		return "", domain.ErrInvalidID
	}
	msg, err := s.assignments.Assign(ctx, token, req)
	if err != nil {
		return "", err
	}
	s.logger.Info().
		Str("accountant_id", req.AccountantID.String()).
		Str("client_id", req.ClientID.String()).
		Strs("services", req.Services).
		Bool("update", req.AssignmentID != "").
		Msg("assignment saved")
	return msg, nil
}

func (s *AssignmentService) List(ctx context.Context, token string, f domain.AssignmentFilter) domain.Page[domain.Assignment] {
	f.Query = f.Query.Normalize()
	page, err := s.assignments.ListAssignments(ctx, token, f)
	if err != nil {
		metrics.ListingFallbacksTotal.WithLabelValues("assignments").Inc()
		s.logger.Error().Err(err).Str("listing", "assignments").Msg("listing fetch failed, showing empty page")
		return domain.EmptyPage[domain.Assignment]()
	}
	return page
}

func (s *AssignmentService) ServiceFilter(ctx context.Context, token string) []domain.Service {
	services, err := s.catalog.ListServices(ctx, token, "")
	if err != nil {
		s.logger.Warn().Err(err).Msg("service filter lookup failed")
		return []domain.Service{}
	}
	return services
}
