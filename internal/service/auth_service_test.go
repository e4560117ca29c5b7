package service

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"orgnotes-be/internal/config"
	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/serverutils"
	"orgnotes-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthFixture(t *testing.T) (*fakeUnitOfWork, *fakeEmailService, IAuthService) {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	uow := newFakeUnitOfWork()
	email := &fakeEmailService{}
	tokens := memory.NewSignInTokenRepository(15 * time.Minute)

	svc := NewAuthService(&fakeFactory{uow: uow}, email, tokens, nil, config.AuthConfig{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		SignInTokenTTLMin:   15,
		SessionTTLHours:     720,
		AccessTokenTTLHours: 24,
	}, "http://localhost:5173")

	return uow, email, svc
}

func signInLinkToken(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestRequestSignIn(t *testing.T) {
	ctx := context.Background()
	uow, email, svc := newAuthFixture(t)

	err := svc.RequestSignIn(ctx, &dto.SignInRequest{Email: "new@example.com"})
	require.NoError(t, err)

	// First sign-in request provisions the user.
	require.Len(t, uow.users.users, 1)
	assert.Equal(t, "new@example.com", uow.users.users[0].Email)

	require.Len(t, email.sentTo, 1)
	assert.True(t, strings.HasPrefix(email.sentLink, "http://localhost:5173/auth/callback?token="))

	// A second request for the same address reuses the user row.
	err = svc.RequestSignIn(ctx, &dto.SignInRequest{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Len(t, uow.users.users, 1)
}

func TestRequestSignInMailFailureRetainsNoToken(t *testing.T) {
	ctx := context.Background()
	_, email, svc := newAuthFixture(t)
	email.err = errors.New("smtp: connection refused")

	err := svc.RequestSignIn(ctx, &dto.SignInRequest{Email: "a@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))

	// The link was minted but never delivered; redeeming it must fail.
	token := signInLinkToken(t, email.sentLink)
	require.NotEmpty(t, token)

	_, err = svc.VerifySignIn(ctx, &dto.VerifySignInRequest{Token: token}, "127.0.0.1", "go-test")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestVerifySignIn(t *testing.T) {
	ctx := context.Background()
	uow, email, svc := newAuthFixture(t)

	require.NoError(t, svc.RequestSignIn(ctx, &dto.SignInRequest{Email: "a@example.com"}))
	token := signInLinkToken(t, email.sentLink)

	res, err := svc.VerifySignIn(ctx, &dto.VerifySignInRequest{Token: token}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", res.User.Email)

	// The issued access token verifies and references the stored session.
	claims, err := serverutils.ParseAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.Id.String(), claims.UserID)

	require.Len(t, uow.users.sessions, 1)
	assert.Equal(t, uow.users.sessions[0].Id.String(), claims.SessionID)
	require.NotNil(t, uow.users.users[0].LastSignInAt)

	t.Run("link is single use", func(t *testing.T) {
		_, err := svc.VerifySignIn(ctx, &dto.VerifySignInRequest{Token: token}, "127.0.0.1", "go-test")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		_, err := svc.VerifySignIn(ctx, &dto.VerifySignInRequest{Token: "bogus"}, "127.0.0.1", "go-test")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	})
}

func TestCurrentSessionAndSignOut(t *testing.T) {
	ctx := context.Background()
	uow, email, svc := newAuthFixture(t)

	require.NoError(t, svc.RequestSignIn(ctx, &dto.SignInRequest{Email: "a@example.com"}))
	token := signInLinkToken(t, email.sentLink)
	res, err := svc.VerifySignIn(ctx, &dto.VerifySignInRequest{Token: token}, "127.0.0.1", "go-test")
	require.NoError(t, err)

	userID := res.User.Id
	sessionID := uow.users.sessions[0].Id

	session, err := svc.CurrentSession(ctx, userID, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", session.User.Email)

	// The session row is found by the hash of the presented token.
	assert.Equal(t, uow.users.sessions[0].TokenHash, hashToken(res.AccessToken))

	require.NoError(t, svc.SignOut(ctx, userID, sessionID))
	assert.True(t, uow.users.sessions[0].Revoked)

	// A valid JWT over a revoked session no longer authenticates.
	_, err = svc.CurrentSession(ctx, userID, res.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}

func TestCurrentSessionExpired(t *testing.T) {
	ctx := context.Background()
	uow, email, svc := newAuthFixture(t)

	require.NoError(t, svc.RequestSignIn(ctx, &dto.SignInRequest{Email: "a@example.com"}))
	token := signInLinkToken(t, email.sentLink)
	res, err := svc.VerifySignIn(ctx, &dto.VerifySignInRequest{Token: token}, "127.0.0.1", "go-test")
	require.NoError(t, err)

	uow.users.sessions[0].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.CurrentSession(ctx, res.User.Id, res.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
}
