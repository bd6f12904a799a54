package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID is an identifier issued by the remote API. It arrives either as a JSON
// number or a JSON string and is always handled as text here.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Role is the numeric account classification used by the API.
type Role int

const (
	RoleAdmin      Role = 1
	RoleAccountant Role = 2
	RoleClient     Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleAccountant:
		return "Accountant"
	case RoleClient:
		return "Client"
	default:
		return "Unknown"
	}
}

// Status is the active/inactive flag of a user record.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

func (s Status) Label() string {
	if s == StatusActive {
		return "Active"
	}
	return "Inactive"
}

// ParseStatus accepts "1"/"0" as well as "active"/"inactive".
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "active":
		return StatusActive, true
	case "0", "inactive":
		return StatusInactive, true
	}
	return StatusInactive, false
}

// UserMeta holds the company fields of a client account.
type UserMeta struct {
	CompanyName   string `json:"company_name,omitempty"`
	VATNumber     string `json:"vat_number,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
}

// Party is the short form of a user embedded in other records.
type Party struct {
	ID        ID     `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// FullName joins first and last name, or returns "" when both are empty.
func (p Party) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// User is a user record as returned by the API.
type User struct {
	ID                 ID        `json:"id"`
	ClientCode         string    `json:"clientId,omitempty"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Role               Role      `json:"role"`
	Status             Status    `json:"status"`
	AccountantID       ID        `json:"accountant_id,omitempty"`
	AssignedAccountant *Party    `json:"assignedAccountant,omitempty"`
	Meta               *UserMeta `json:"meta,omitempty"`
	Services           []string  `json:"services,omitempty"`
	ClientCount        int       `json:"clientCount"`
	HasQuickBooks      bool      `json:"hasQuickBooksToken"`
	CreatedAt          string    `json:"createdAt,omitempty"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Company returns the meta block or an empty one.
func (u User) Company() UserMeta {
	if u.Meta == nil {
		return UserMeta{}
	}
	return *u.Meta
}

// RoleOrDefault treats a missing role as a client account.
func (u User) RoleOrDefault() Role {
	if u.Role == 0 {
		return RoleClient
	}
	return u.Role
}

// ResolvedAccountantID prefers the explicit accountant_id and falls back to
// the embedded assigned accountant.
func (u User) ResolvedAccountantID() ID {
	if u.AccountantID != "" {
		return u.AccountantID
	}
	if u.AssignedAccountant != nil {
		return u.AssignedAccountant.ID
	}
	return ""
}

// AccountantName is the display name of the assigned accountant.
func (u User) AccountantName() string {
	if u.AssignedAccountant == nil {
		return "Unassigned"
	}
	if name := u.AssignedAccountant.FullName(); name != "" {
		return name
	}
	return "Unassigned"
}

// ClientPayload is the body of the client create/update calls.
// Password is dropped from the JSON when empty so an update keeps the
// stored password.
type ClientPayload struct {
	CompanyName   string `json:"company_name"`
	VATNumber     string `json:"vat_number"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password,omitempty"`
	Phone         string `json:"phone"`
	Role          Role   `json:"role"`
	Status        Status `json:"status"`
	AccountantID  ID     `json:"accountant_id"`
}

// AccountantPayload is the body of the accountant create/update calls.
type AccountantPayload struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password,omitempty"`
	Role      Role     `json:"role"`
	Services  []string `json:"services"`
	Status    Status   `json:"status"`
}

// StatusUpdate is the body of the status toggle call.
type StatusUpdate struct {
	ID     ID     `json:"id"`
	Status Status `json:"status"`
}

// MarshalJSON sends canonical integer ids back as numbers, as the API
// issued them. Anything else, such as "007" or "+5", stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
