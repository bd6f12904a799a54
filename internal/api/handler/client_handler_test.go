package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

func clientValues() url.Values {
	return url.Values{
		"company_name":   {"Acme Ltd"},
		"vat_number":     {"GB123"},
		"contact_person": {"Wile E."},
		"email":          {"ops@acme.test"},
		"username":       {"acme"},
		"phone":          {"+441234567890"},
		"accountant_id":  {"9"},
		"status":         {"0"},
	}
}

func TestClientHandler_Save_ValidationBlocksBackend(t *testing.T) {
	e, r := newTestEcho()
	users := &stubUserService{
		saveClientFn: func(domain.ID, domain.ClientPayload) (string, error) {
			t.Fatalf("save must not be called")
			return "", nil
		},
	}
	handler := NewClientHandler(&stubAuthService{}, users, testLogger)

	form := clientValues()
	form.Set("phone", "12-ab")
	form.Set("email", "ops at acme")
	form.Set("password", "secret12")
	c, rec := newFormRequest(e, http.MethodPost, clientsPath+"/create", clientsPath+"/create", form, testSession())
	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	view := r.page().Data.(clientFormView)
	if view.Errors["phone"] != "Invalid phone number format." || view.Errors["email"] != "Invalid email format." {
		t.Fatalf("unexpected errors %v", view.Errors)
	}
	if len(view.Errors) != 2 {
		t.Fatalf("only the invalid fields should be reported, got %v", view.Errors)
	}
}

func TestClientHandler_Save_CreateSendsClientRole(t *testing.T) {
	e, _ := newTestEcho()
	var got domain.ClientPayload
	users := &stubUserService{
		saveClientFn: func(id domain.ID, p domain.ClientPayload) (string, error) {
			if id != "" {
				t.Fatalf("create must not carry an id, got %q", id)
			}
			got = p
			return "User created successfully!", nil
		},
	}
	auth := &stubAuthService{}
	handler := NewClientHandler(auth, users, testLogger)

	form := clientValues()
	form.Set("password", "secret12")
	c, rec := newFormRequest(e, http.MethodPost, clientsPath+"/create", clientsPath+"/create", form, testSession())
	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != clientsPath {
		t.Fatalf("expected redirect to listing, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if got.Role != domain.RoleClient || got.Password != "secret12" || got.AccountantID != "9" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if len(auth.flashes) != 1 || auth.flashes[0].Message != "User created successfully!" {
		t.Fatalf("expected API message as banner, got %+v", auth.flashes)
	}
}

func TestClientHandler_Save_EditWithoutPassword(t *testing.T) {
	e, _ := newTestEcho()
	var got domain.ClientPayload
	users := &stubUserService{
		saveClientFn: func(id domain.ID, p domain.ClientPayload) (string, error) {
			if id != "3" {
				t.Fatalf("expected update of 3, got %q", id)
			}
			got = p
			return "User updated successfully!", nil
		},
	}
	handler := NewClientHandler(&stubAuthService{}, users, testLogger)

	target := clientsPath + "/update?id=" + url.QueryEscape(domain.EncodeID("3"))
	c, rec := newFormRequest(e, http.MethodPost, target, clientsPath+"/update", clientValues(), testSession())
	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got.Password != "" {
		t.Fatalf("empty password must be omitted, got %q", got.Password)
	}
	if got.Status != domain.StatusInactive {
		t.Fatalf("selected status should be sent, got %v", got.Status)
	}
}

func TestClientHandler_Save_RejectsUnknownStatus(t *testing.T) {
	e, r := newTestEcho()
	users := &stubUserService{
		saveClientFn: func(domain.ID, domain.ClientPayload) (string, error) {
			t.Fatalf("save must not be called")
			return "", nil
		},
	}
	handler := NewClientHandler(&stubAuthService{}, users, testLogger)

	form := clientValues()
	form.Set("password", "secret12")
	form.Set("status", "2")
	c, rec := newFormRequest(e, http.MethodPost, clientsPath+"/create", clientsPath+"/create", form, testSession())
	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	view := r.page().Data.(clientFormView)
	if view.Errors["status"] != "Invalid status." || len(view.Errors) != 1 {
		t.Fatalf("unexpected errors %v", view.Errors)
	}
}

func TestClientHandler_Save_BackendFailureFallback(t *testing.T) {
	e, r := newTestEcho()
	users := &stubUserService{
		saveClientFn: func(domain.ID, domain.ClientPayload) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	handler := NewClientHandler(&stubAuthService{}, users, testLogger)

	target := clientsPath + "/update?id=" + url.QueryEscape(domain.EncodeID("3"))
	c, rec := newFormRequest(e, http.MethodPost, target, clientsPath+"/update", clientValues(), testSession())
	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if f := r.page().Flash; f == nil || f.Message != "Failed to update user" {
		t.Fatalf("unexpected banner %+v", f)
	}
}

func TestClientHandler_View_NotFound(t *testing.T) {
	e, _ := newTestEcho()
	users := &stubUserService{getUserFn: func(domain.ID) (*domain.User, error) {
		return nil, domain.ErrNotFound
	}}
	handler := NewClientHandler(&stubAuthService{}, users, testLogger)

	target := clientsPath + "/view?id=" + url.QueryEscape(domain.EncodeID("3"))
	c, _ := newFormRequest(e, http.MethodGet, target, clientsPath+"/view", nil, testSession())
	if err := handler.View(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientHandler_QuickBooks_Redirects(t *testing.T) {
	e, _ := newTestEcho()
	handler := NewClientHandler(&stubAuthService{}, &stubUserService{}, testLogger)

	target := clientsPath + "/quickbooks?id=" + url.QueryEscape(domain.EncodeID("3"))
	c, rec := newFormRequest(e, http.MethodGet, target, clientsPath+"/quickbooks", nil, testSession())
	if err := handler.QuickBooks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "https://api.example.com/quickbooks?clientId=3" {
		t.Fatalf("unexpected redirect %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestClientHandler_RevokeQuickBooks(t *testing.T) {
	e, _ := newTestEcho()
	users := &stubUserService{revokeFn: func(domain.ID) error { return errors.New("boom") }}
	auth := &stubAuthService{}
	handler := NewClientHandler(auth, users, testLogger)

	form := url.Values{"id": {domain.EncodeID("3")}}
	c, rec := newFormRequest(e, http.MethodPost, clientsPath+"/quickbooks/revoke", clientsPath+"/quickbooks/revoke", form, testSession())
	if err := handler.RevokeQuickBooks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("Location") != clientsPath {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
	if len(auth.flashes) != 1 || auth.flashes[0].Message != "Failed to revoke QuickBooks token." {
		t.Fatalf("unexpected banner %+v", auth.flashes)
	}
}
