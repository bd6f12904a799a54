package domain

import "time"

type FlashVariant string

const (
	FlashSuccess FlashVariant = "success"
	FlashDanger  FlashVariant = "danger"
)

// Flash is a one-shot banner carried across a redirect.
type Flash struct {
	Variant FlashVariant `json:"variant"`
	Message string       `json:"message"`
}

// Session is the server-side record of a signed-in staff member. Token is
// the bearer credential issued by the remote API.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Flash     *Flash    `json:"flash,omitempty"`
}

// TTL is the remaining lifetime, never negative.
func (s *Session) TTL(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// LoginResult is the answer of the remote login endpoint.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   ID     `json:"user_id"`
}
