package services

import (
	"context"
	"testing"
	"time"

	"huddle/internal/core/domain"
	"huddle/internal/core/ports"
	"huddle/internal/infrastructure/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newSessionFixture(t *testing.T, ttl time.Duration) (ports.SessionService, *domain.User) {
	t.Helper()
	repo := memory.NewMemoryUserRepository()

	users := NewUserService(repo, nil)
	user, err := users.Register(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)

	return NewSessionService(repo, testSecret, ttl, nil), user
}

func TestSessionService_SignIn(t *testing.T) {
	sessions, user := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	token, signedIn, err := sessions.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, signedIn.ID)
	assert.Len(t, signedIn.Sessions, 1)
}

func TestSessionService_SignIn_WrongPassword(t *testing.T) {
	sessions, _ := newSessionFixture(t, time.Hour)

	_, _, err := sessions.SignIn(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestSessionService_SignIn_UnknownEmail(t *testing.T) {
	sessions, _ := newSessionFixture(t, time.Hour)

	_, _, err := sessions.SignIn(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSessionService_TokenLifecycle(t *testing.T) {
	sessions, user := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	token, _, err := sessions.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	validated, err := sessions.Validate(ctx, "alice@example.com", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)

	require.NoError(t, sessions.SignOut(ctx, "alice@example.com", token))

	// Revocation is immediate: the token is signed and unexpired but its
	// session entry is gone.
	_, err = sessions.Validate(ctx, "alice@example.com", token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	err = sessions.SignOut(ctx, "alice@example.com", token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSessionService_Validate_GarbageToken(t *testing.T) {
	sessions, _ := newSessionFixture(t, time.Hour)

	_, err := sessions.Validate(context.Background(), "alice@example.com", "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSessionService_Validate_ForeignSignature(t *testing.T) {
	sessions, _ := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	repo := memory.NewMemoryUserRepository()
	_, err := NewUserService(repo, nil).Register(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	foreign := NewSessionService(repo, "other-secret", time.Hour, nil)

	token, _, err := foreign.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = sessions.Validate(ctx, "alice@example.com", token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSessionService_Validate_WrongUser(t *testing.T) {
	repo := memory.NewMemoryUserRepository()
	users := NewUserService(repo, nil)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	_, err = users.Register(ctx, "bob@example.com", "hunter22")
	require.NoError(t, err)

	sessions := NewSessionService(repo, testSecret, time.Hour, nil)
	token, _, err := sessions.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	// Alice's token presented with Bob's email must not authenticate.
	_, err = sessions.Validate(ctx, "bob@example.com", token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSessionService_ExpiredToken(t *testing.T) {
	sessions, _ := newSessionFixture(t, -time.Minute)
	ctx := context.Background()

	token, _, err := sessions.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = sessions.Validate(ctx, "alice@example.com", token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)

	// Sign-out still works so clients can always drop a stale session.
	assert.NoError(t, sessions.SignOut(ctx, "alice@example.com", token))
}

func TestSessionService_SignIn_PrunesExpiredSessions(t *testing.T) {
	repo := memory.NewMemoryUserRepository()
	users := NewUserService(repo, nil)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	expired := NewSessionService(repo, testSecret, -time.Minute, nil)
	_, _, err = expired.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	live := NewSessionService(repo, testSecret, time.Hour, nil)
	_, signedIn, err := live.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)

	assert.Len(t, signedIn.Sessions, 1, "the expired session should have been reaped")
}
