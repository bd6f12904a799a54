package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacei/admin-dashboard/internal/core/domain"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}

func TestSessionEncoding_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	in := &domain.Session{
		ID:        "abc",
		Token:     "tok",
		Username:  "ada",
		UserID:    "5",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		Flash:     &domain.Flash{Variant: domain.FlashSuccess, Message: "Saved"},
	}

	raw, err := encodeSession(in)
	require.NoError(t, err)
	out, err := decodeSession(raw)
	require.NoError(t, err)

	assert.Equal(t, in.Token, out.Token)
	assert.True(t, in.ExpiresAt.Equal(out.ExpiresAt))
	require.NotNil(t, out.Flash)
	assert.Equal(t, "Saved", out.Flash.Message)
}

func TestDecodeSession_Invalid(t *testing.T) {
	_, err := decodeSession([]byte("not json"))
	assert.Error(t, err)

	_, err = decodeSession([]byte(`{"token":"x"}`))
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func unreachableStore() *SessionStore {
	return NewSessionStore(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestFind_EmptyIDIsNotFound(t *testing.T) {
	_, err := unreachableStore().Find(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestFind_ConnectionErrorIsNotNotFound(t *testing.T) {
	_, err := unreachableStore().Find(context.Background(), "abc")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestSave_RejectsNonPositiveTTL(t *testing.T) {
	err := unreachableStore().Save(context.Background(), &domain.Session{ID: "abc"}, 0)
	assert.Error(t, err)
}
