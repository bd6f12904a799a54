package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Service is a billable service offered by an accountant.
type Service struct {
	ID   ID     `json:"id,omitempty"`
	Code string `json:"serviceCode"`
	Name string `json:"name"`
}

// Label is the display name, falling back to the code.
func (s Service) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Code
}

// ServiceCodes decodes from a JSON array of codes or from a single comma
// separated string.
type ServiceCodes []string

func (sc *ServiceCodes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*sc = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*sc = SplitServiceCodes(s)
		return nil
	}
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	*sc = codes
	return nil
}

// SplitServiceCodes splits "A, B,C" into trimmed, non-empty codes.
func SplitServiceCodes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Assignment links one client to one accountant with a subset of services.
type Assignment struct {
	ID           ID           `json:"id"`
	AccountantID ID           `json:"accountantId"`
	ClientID     ID           `json:"clientId"`
	Client       Party        `json:"client"`
	Accountant   Party        `json:"accountant"`
	Services     ServiceCodes `json:"services"`
	AssignedAt   string       `json:"assignedAt"`
}

// AssignedOn renders the assignment date as "Jan 2, 2006". Unparseable
// timestamps are shown as received.
func (a Assignment) AssignedOn() string {
	if a.AssignedAt == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, a.AssignedAt)
	if err != nil {
		return a.AssignedAt
	}
	return t.Format("Jan 2, 2006")
}

// AssignmentRequest is posted to the assign endpoint. AssignmentID is set
// when an existing assignment is edited.
type AssignmentRequest struct {
	AccountantID ID       `json:"accountantId"`
	ClientID     ID       `json:"clientId"`
	Services     []string `json:"services"`
	AssignmentID ID       `json:"assignmentId,omitempty"`
}

// AssignmentFilter scopes an assignment listing to one accountant or one
// client.
type AssignmentFilter struct {
	AccountantID ID
	ClientID     ID
	Query        ListQuery
}

// DashboardStats are the landing page counters.
type DashboardStats struct {
	TotalClients     int `json:"totalClients"`
	TotalAccountants int `json:"totalAccountants"`
}
