package handler

import (
	"strings"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
)

const msgFixErrors = "Please fix the errors below."

type loginForm struct {
	Email    string `form:"email" validate:"required,loginemail"`
	Password string `form:"password" validate:"required,min=6"`
}

func (loginForm) fieldMessage(field, tag string) string {
	switch field + "." + tag {
	case "email.required":
		return "Email is required."
	case "email.loginemail":
		return "Enter a valid email."
	case "password.required":
		return "Password is required."
	case "password.min":
		return "Password must be at least 6 characters."
	}
	return ""
}

// accountantForm is the create/edit accountant form. ID is set from the
// query string, never from the body.
type accountantForm struct {
	ID        string   `form:"-"`
	FirstName string   `form:"first_name" validate:"required"`
	LastName  string   `form:"last_name" validate:"required"`
	Username  string   `form:"username" validate:"required"`
	Email     string   `form:"email" validate:"required,emailaddr"`
	Password  string   `form:"password" validate:"omitempty,min=7"`
	Services  []string `form:"services" validate:"min=1"`
	Status    string   `form:"status" validate:"oneof=active inactive"`
}

func (accountantForm) fieldMessage(field, tag string) string {
	switch field + "." + tag {
	case "first_name.required":
		return "First name is required."
	case "last_name.required":
		return "Last name is required."
	case "username.required":
		return "Username is required."
	case "email.required":
		return "Email is required."
	case "email.emailaddr":
		return "Invalid email."
	case "password.required":
		return "Password is required."
	case "password.min":
		return "Minimum 7 characters required."
	case "services.min":
		return "Select at least one service."
	case "status.oneof":
		return "Select a status."
	}
	return ""
}

func (f *accountantForm) trim() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	if f.Status == "" {
		f.Status = "active"
	}
}

func (f accountantForm) payload() domain.AccountantPayload {
	status, _ := domain.ParseStatus(f.Status)
	return domain.AccountantPayload{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Username:  f.Username,
		Email:     f.Email,
		Password:  f.Password,
		Role:      domain.RoleAccountant,
		Services:  f.Services,
		Status:    status,
	}
}

func accountantFormFrom(id domain.ID, p domain.AccountantPayload) accountantForm {
	status := "active"
	if p.Status == domain.StatusInactive {
		status = "inactive"
	}
	return accountantForm{
		ID:        id.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Username:  p.Username,
		Email:     p.Email,
		Services:  p.Services,
		Status:    status,
	}
}

// clientForm is the create/edit client form. AccountantID rides along in a
// hidden input so an edit does not drop the assignment.
type clientForm struct {
	ID            string `form:"-"`
	CompanyName   string `form:"company_name" validate:"required"`
	VATNumber     string `form:"vat_number" validate:"required"`
	ContactPerson string `form:"contact_person" validate:"required"`
	Email         string `form:"email" validate:"required,emailaddr"`
	Username      string `form:"username" validate:"required"`
	Password      string `form:"password" validate:"omitempty,min=7"`
	Phone         string `form:"phone" validate:"required,phone"`
	AccountantID  string `form:"accountant_id"`
	Status        string `form:"status" validate:"omitempty,oneof=0 1"`
}

func (clientForm) fieldMessage(field, tag string) string {
	switch field + "." + tag {
	case "company_name.required":
		return "Company name is required."
	case "vat_number.required":
		return "VAT number is required."
	case "contact_person.required":
		return "Contact person is required."
	case "email.required":
		return "Email is required."
	case "email.emailaddr":
		return "Invalid email format."
	case "username.required":
		return "Username is required."
	case "password.required":
		return "Password is required."
	case "password.min":
		return "Password must be at least 7 characters."
	case "phone.required":
		return "Phone number is required."
	case "phone.phone":
		return "Invalid phone number format."
	case "status.oneof":
		return "Invalid status."
	}
	return ""
}

func (f *clientForm) trim() {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.VATNumber = strings.TrimSpace(f.VATNumber)
	f.ContactPerson = strings.TrimSpace(f.ContactPerson)
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)
	f.Phone = strings.TrimSpace(f.Phone)
}

func (f clientForm) payload() domain.ClientPayload {
	status, ok := domain.ParseStatus(f.Status)
	if !ok {
		status = domain.StatusActive
	}
	return domain.ClientPayload{
		CompanyName:   f.CompanyName,
		VATNumber:     f.VATNumber,
		ContactPerson: f.ContactPerson,
		Email:         f.Email,
		Username:      f.Username,
		Password:      f.Password,
		Phone:         f.Phone,
		Role:          domain.RoleClient,
		Status:        status,
		AccountantID:  domain.ID(f.AccountantID),
	}
}

func clientFormFrom(id domain.ID, p domain.ClientPayload) clientForm {
	return clientForm{
		ID:            id.String(),
		CompanyName:   p.CompanyName,
		VATNumber:     p.VATNumber,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Username:      p.Username,
		Phone:         p.Phone,
		AccountantID:  p.AccountantID.String(),
		Status:        fmtStatus(p.Status),
	}
}

func fmtStatus(s domain.Status) string {
	if s == domain.StatusInactive {
		return "0"
	}
	return "1"
}

// assignForm is posted by both assignment screens. Counterpart is the
// client id on the accountant side and the accountant id on the client side.
type assignForm struct {
	Counterpart  string   `form:"counterpart" validate:"required"`
	Services     []string `form:"services" validate:"min=1"`
	AssignmentID string   `form:"assignment_id"`
	Action       string   `form:"action"`

	side ports.AssignmentSide
}

func (f assignForm) fieldMessage(field, tag string) string {
	switch field + "." + tag {
	case "counterpart.required":
		if f.side == ports.SideAccountant {
			return "Please select a client."
		}
		return "Please select an accountant."
	case "services.min":
		return "Please select at least one service."
	}
	return ""
}

// reloading reports a counterpart change that only refreshes the offered
// services.
func (f assignForm) reloading() bool {
	return f.Action == "reload"
}

func (f assignForm) request(side ports.AssignmentSide, subject domain.ID) domain.AssignmentRequest {
	req := domain.AssignmentRequest{
		Services:     f.Services,
		AssignmentID: domain.ID(f.AssignmentID),
	}
	if side == ports.SideAccountant {
		req.AccountantID, req.ClientID = subject, domain.ID(f.Counterpart)
	} else {
		req.AccountantID, req.ClientID = domain.ID(f.Counterpart), subject
	}
	return req
}
