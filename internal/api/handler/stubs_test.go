package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/api/middleware"
	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

var testLogger = zerolog.Nop()

var testCookie = middleware.SessionCookie{Name: "dashboard_session"}

// recordingRenderer remembers the last template and data instead of
// executing templates.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := io.WriteString(w, name)
	return err
}

func (r *recordingRenderer) page() Page {
	p, _ := r.data.(Page)
	return p
}

func newTestEcho() (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	r := &recordingRenderer{}
	e.Renderer = r
	e.Validator = NewValidator()
	return e, r
}

// newFormRequest builds a context for a form POST (or a GET when form is
// nil) with sess attached as the Session middleware would.
func newFormRequest(e *echo.Echo, method, target, path string, form url.Values, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if sess != nil {
		c.Set(middleware.SessionKey, sess)
	}
	return c, rec
}

func testSession() *domain.Session {
	return &domain.Session{ID: "s1", Token: "api-token", Username: "admin"}
}

type stubAuthService struct {
	loginFn        func(ctx context.Context, email, password string) (*domain.Session, error)
	tokenFn        func(s *domain.Session) (string, error)
	authenticateFn func(ctx context.Context, token string) (*domain.Session, error)

	loggedOut []string
	flashes   []domain.Flash
	pending   *domain.Flash
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Token(sess *domain.Session) (string, error) {
	if s.tokenFn == nil {
		return "signed", nil
	}
	return s.tokenFn(sess)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if s.authenticateFn == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) Logout(_ context.Context, id string) error {
	s.loggedOut = append(s.loggedOut, id)
	return nil
}

func (s *stubAuthService) SetFlash(_ context.Context, _ *domain.Session, f domain.Flash) error {
	s.flashes = append(s.flashes, f)
	return nil
}

func (s *stubAuthService) TakeFlash(context.Context, *domain.Session) (*domain.Flash, error) {
	f := s.pending
	s.pending = nil
	return f, nil
}

// stubUserService answers with zero values unless a function is set.
type stubUserService struct {
	ports.UserService

	listAccountantsFn func(q domain.ListQuery) domain.Page[domain.User]
	loadAccountantFn  func(id domain.ID) (domain.AccountantPayload, error)
	saveAccountantFn  func(id domain.ID, p domain.AccountantPayload) (string, error)
	saveClientFn      func(id domain.ID, p domain.ClientPayload) (string, error)
	deleteFn          func(id domain.ID) error
	toggleFn          func(id domain.ID, current domain.Status) (domain.Status, error)
	servicesFn        func(owner domain.ID) ([]domain.Service, error)
	getUserFn         func(id domain.ID) (*domain.User, error)
	revokeFn          func(clientID domain.ID) error
}

func (s *stubUserService) GetUser(_ context.Context, _ string, id domain.ID) (*domain.User, error) {
	return s.getUserFn(id)
}

func (s *stubUserService) QuickBooksConnectURL(clientID domain.ID) string {
	return "https://api.example.com/quickbooks?clientId=" + clientID.String()
}

func (s *stubUserService) RevokeQuickBooks(_ context.Context, _ string, clientID domain.ID) error {
	return s.revokeFn(clientID)
}

func (s *stubUserService) ListAccountants(_ context.Context, _ string, q domain.ListQuery) domain.Page[domain.User] {
	if s.listAccountantsFn == nil {
		return domain.EmptyPage[domain.User]()
	}
	return s.listAccountantsFn(q)
}

func (s *stubUserService) LoadAccountant(_ context.Context, _ string, id domain.ID) (domain.AccountantPayload, error) {
	if s.loadAccountantFn == nil {
		return domain.AccountantPayload{}, nil
	}
	return s.loadAccountantFn(id)
}

func (s *stubUserService) SaveAccountant(_ context.Context, _ string, id domain.ID, p domain.AccountantPayload) (string, error) {
	return s.saveAccountantFn(id, p)
}

func (s *stubUserService) SaveClient(_ context.Context, _ string, id domain.ID, p domain.ClientPayload) (string, error) {
	return s.saveClientFn(id, p)
}

func (s *stubUserService) Delete(_ context.Context, _ string, id domain.ID) error {
	return s.deleteFn(id)
}

func (s *stubUserService) ToggleStatus(_ context.Context, _ string, id domain.ID, current domain.Status) (domain.Status, error) {
	return s.toggleFn(id, current)
}

func (s *stubUserService) Services(_ context.Context, _ string, owner domain.ID) ([]domain.Service, error) {
	if s.servicesFn == nil {
		return []domain.Service{}, nil
	}
	return s.servicesFn(owner)
}

type stubAssignmentService struct {
	prepareFn func(in ports.AssignmentFormInput) (*ports.AssignmentForm, error)
	assignFn  func(req domain.AssignmentRequest) (string, error)

	listed []domain.AssignmentFilter
}

func (s *stubAssignmentService) Prepare(_ context.Context, _ string, in ports.AssignmentFormInput) (*ports.AssignmentForm, error) {
	if s.prepareFn == nil {
		return &ports.AssignmentForm{Subject: &domain.User{ID: in.SubjectID}}, nil
	}
	return s.prepareFn(in)
}

func (s *stubAssignmentService) Assign(_ context.Context, _ string, req domain.AssignmentRequest) (string, error) {
	return s.assignFn(req)
}

func (s *stubAssignmentService) List(_ context.Context, _ string, f domain.AssignmentFilter) domain.Page[domain.Assignment] {
	s.listed = append(s.listed, f)
	return domain.EmptyPage[domain.Assignment]()
}

func (s *stubAssignmentService) ServiceFilter(context.Context, string) []domain.Service {
	return []domain.Service{}
}
