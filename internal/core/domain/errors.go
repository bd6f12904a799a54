package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID          = errors.New("invalid or missing id")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")

	// ErrSubjectUnavailable and ErrAssignmentUnavailable mark the records
	// an assignment screen cannot do without.
	ErrSubjectUnavailable    = errors.New("subject unavailable")
	ErrAssignmentUnavailable = errors.New("assignment unavailable")
)

// APIError is a non-2xx answer from the remote API. Message is the
// human-readable text taken from the response body when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return e.Message
}

// Message reduces any error to the string shown in a banner. API errors
// carry their own message; everything else uses fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
