package ports

import (
	"context"
	"time"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

// SessionStore keeps sessions for at most ttl. Find returns
// domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
