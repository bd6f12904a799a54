package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vacei/admin-dashboard/internal/core/domain"
	"github.com/vacei/admin-dashboard/internal/core/ports"
	"github.com/vacei/admin-dashboard/internal/pkg/metrics"
)

// AuthService implements login, logout and session lookup.
type AuthService struct {
	gateway    ports.AuthGateway
	store      ports.SessionStore
	secret     string
	sessionTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAuthService(gateway ports.AuthGateway, store ports.SessionStore, secret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &AuthService{
		gateway:    gateway,
		store:      store,
		secret:     secret,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	res, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		Username:  res.Username,
		UserID:    res.UserID.String(),
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if sess.Username == "" {
		sess.Username = email
	}

	if err := s.store.Save(ctx, sess, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("session_id", sess.ID).Str("user_id", sess.UserID).Msg("signed in")
	return sess, nil
}

func (s *AuthService) Token(sess *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   sess.UserID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid || claims.ID == "" {
		return nil, domain.ErrSessionNotFound
	}

	sess, err := s.store.Find(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if sess.TTL(s.now()) == 0 {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Msg("signed out")
	return nil
}

func (s *AuthService) SetFlash(ctx context.Context, sess *domain.Session, f domain.Flash) error {
	sess.Flash = &f
	return s.persist(ctx, sess)
}

func (s *AuthService) TakeFlash(ctx context.Context, sess *domain.Session) (*domain.Flash, error) {
	f := sess.Flash
	if f == nil {
		return nil, nil
	}
	sess.Flash = nil
	if err := s.persist(ctx, sess); err != nil {
		return f, err
	}
	return f, nil
}

// persist rewrites sess without extending its lifetime.
func (s *AuthService) persist(ctx context.Context, sess *domain.Session) error {
	ttl := sess.TTL(s.now())
	if ttl == 0 {
		return domain.ErrSessionNotFound
	}
	if err := s.store.Save(ctx, sess, ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
