package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awais7012/lms-2/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret-key-for-jwt-signing",
		AccessTokenExpiration:  30 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		BaseURL:                "http://localhost:8080",
	}
}

func TestIssuer_IssueAccessToken(t *testing.T) {
	issuer := NewIssuer(testConfig())

	result, err := issuer.IssueAccessToken("user123")

	require.NoError(t, err)
	assert.NotEmpty(t, result.TokenString)
	assert.Equal(t, TypeAccess, result.TokenType)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), result.ExpiresAt, 5*time.Second)
}

func TestIssuer_IssueRefreshToken(t *testing.T) {
	issuer := NewIssuer(testConfig())

	result, err := issuer.IssueRefreshToken("user123")

	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, result.TokenType)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), result.ExpiresAt, 5*time.Second)
}

func TestIssuer_Verify_Success(t *testing.T) {
	issuer := NewIssuer(testConfig())

	result, err := issuer.IssueAccessToken("user123")
	require.NoError(t, err)

	claims, err := issuer.Verify(result.TokenString)

	require.NoError(t, err)
	assert.Equal(t, "user123", claims.Subject)
	assert.Equal(t, TypeAccess, claims.Type)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, 5*time.Second)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestIssuer_Verify_RefreshTypeClaim(t *testing.T) {
	issuer := NewIssuer(testConfig())

	result, err := issuer.IssueRefreshToken("user123")
	require.NoError(t, err)

	claims, err := issuer.Verify(result.TokenString)

	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.Type)
}

func TestIssuer_Verify_Malformed(t *testing.T) {
	issuer := NewIssuer(testConfig())

	_, err := issuer.Verify("not-a-token")

	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestIssuer_Verify_WrongSecret(t *testing.T) {
	issuer1 := NewIssuer(testConfig())
	result, err := issuer1.IssueAccessToken("user123")
	require.NoError(t, err)

	cfg2 := testConfig()
	cfg2.JWTSecret = "a-different-secret"
	issuer2 := NewIssuer(cfg2)

	_, err = issuer2.Verify(result.TokenString)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestIssuer_Verify_TamperedToken(t *testing.T) {
	issuer := NewIssuer(testConfig())

	result, err := issuer.IssueAccessToken("user123")
	require.NoError(t, err)

	// Flip one byte in the payload segment; the signature no longer matches
	parts := strings.Split(result.TokenString, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = issuer.Verify(tampered)
	assert.Error(t, err)
}

func TestIssuer_Verify_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenExpiration = -time.Minute
	issuer := NewIssuer(cfg)

	result, err := issuer.IssueAccessToken("user123")
	require.NoError(t, err)

	_, err = issuer.Verify(result.TokenString)

	assert.ErrorIs(t, err, ErrExpiredToken)
}
