package service

import (
	"context"
	"testing"
	"time"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/logger"
	"ai-summarizer-be/internal/pkg/serverutils"
	"ai-summarizer-be/internal/repository/memory"
	"ai-summarizer-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthService(t *testing.T, sink IPublisherService) (IAuthService, *memory.TokenDenylist) {
	t.Helper()
	denylist := memory.NewTokenDenylist()
	svc := NewAuthService(
		newTestFactory(t),
		sink,
		denylist,
		config.AuthConfig{JwtSecret: testSecret, AccessTokenTTL: time.Hour},
		logger.NewNopLogger(),
	)
	return svc, denylist
}

func registerRequest(username, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:           email,
		Username:        username,
		Password:        "secret123",
		PasswordConfirm: "secret123",
		FullName:        "Test User",
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	sink := &captureSink{}
	svc, _ := newTestAuthService(t, sink)

	user, err := svc.Register(ctx, registerRequest("alice", "Alice@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)

	// Username or email both log in.
	for _, login := range []string{"alice", "ALICE@example.com"} {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Username: login, Password: "secret123"})
		require.NoError(t, err, login)
		assert.Equal(t, "bearer", resp.TokenType)

		claims, err := serverutils.ParseAccessToken(testSecret, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.Id.String(), claims.UserId)
		assert.Equal(t, "alice", claims.Username)
		assert.NotEmpty(t, claims.ID)
	}

	types := map[string]int{}
	for _, e := range sink.received() {
		types[e.EventType()]++
	}
	assert.Equal(t, 1, types[events.TypeUserRegistered])
	assert.Equal(t, 2, types[events.TypeUserLogin])
}

func TestAuthService_RegisterRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, nil)

	_, err := svc.Register(ctx, registerRequest("bob", "bob@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("bob2", "BOB@example.com"))
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.Register(ctx, registerRequest("bob", "other@example.com"))
	assert.ErrorIs(t, err, apperror.ErrConflict)

	req := registerRequest("carol", "carol@example.com")
	req.PasswordConfirm = "different"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, nil)

	_, err := svc.Register(ctx, registerRequest("dave", "dave@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "dave", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_MeVerifyAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, denylist := newTestAuthService(t, nil)

	user, err := svc.Register(ctx, registerRequest("erin", "erin@example.com"))
	require.NoError(t, err)

	me, err := svc.Me(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, "erin", me.Username)

	verified, err := svc.Verify(ctx, user.Id)
	require.NoError(t, err)
	assert.True(t, verified.Valid)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, "token-id", time.Minute))
	revoked, err := denylist.IsRevoked(ctx, "token-id")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Already expired tokens need no entry.
	require.NoError(t, svc.Logout(ctx, "old-token", 0))
	revoked, err = denylist.IsRevoked(ctx, "old-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}
