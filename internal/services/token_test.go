package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/token"
)

func newTokenService() *TokenService {
	cfg := &config.Config{
		BaseURL:                "http://localhost:8080",
		JWTSecret:              "test-secret",
		AccessTokenExpiration:  30 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
	}
	return NewTokenService(token.NewIssuer(cfg), metrics.NewNoopMetrics())
}

func TestTokenService_IssuePair(t *testing.T) {
	svc := newTokenService()

	pair, err := svc.IssuePair("user-1")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access.TokenString)
	assert.NotEmpty(t, pair.Refresh.TokenString)
	assert.NotEqual(t, pair.Access.TokenString, pair.Refresh.TokenString)
	assert.True(t, pair.Refresh.ExpiresAt.After(pair.Access.ExpiresAt))
}

func TestTokenService_Refresh_RotatesPair(t *testing.T) {
	svc := newTokenService()

	pair, err := svc.IssuePair("user-1")
	require.NoError(t, err)

	rotated, err := svc.Refresh(pair.Refresh.TokenString)
	require.NoError(t, err)

	subject, err := svc.VerifyAccessToken(rotated.Access.TokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.NotEmpty(t, rotated.Refresh.TokenString)
}

func TestTokenService_Refresh_MissingToken(t *testing.T) {
	svc := newTokenService()

	_, err := svc.Refresh("")

	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenService_Refresh_RejectsAccessToken(t *testing.T) {
	svc := newTokenService()

	pair, err := svc.IssuePair("user-1")
	require.NoError(t, err)

	_, err = svc.Refresh(pair.Access.TokenString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenService_Refresh_Garbage(t *testing.T) {
	svc := newTokenService()

	_, err := svc.Refresh("not.a.token")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenService_VerifyAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTokenService()

	pair, err := svc.IssuePair("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.Refresh.TokenString)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
