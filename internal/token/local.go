package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/awais7012/lms-2/internal/config"
)

// Issuer creates and verifies signed access and refresh tokens. Tokens are
// self-contained: validity is computed from signature and expiry, never
// looked up in storage.
type Issuer struct {
	config *config.Config
}

// NewIssuer creates a new token issuer
func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{config: cfg}
}

// sign creates a signed JWT with the given subject, type and expiration
func (p *Issuer) sign(subject, tokenType string, expiresAt time.Time) (*Result, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": tokenType,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
		"iss":  p.config.BaseURL,
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &Result{
		TokenString: tokenString,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

// IssueAccessToken creates a short-lived access token for the subject
func (p *Issuer) IssueAccessToken(subject string) (*Result, error) {
	return p.sign(subject, TypeAccess, time.Now().Add(p.config.AccessTokenExpiration))
}

// IssueRefreshToken creates a refresh token with the configured longer TTL
func (p *Issuer) IssueRefreshToken(subject string) (*Result, error) {
	return p.sign(subject, TypeRefresh, time.Now().Add(p.config.RefreshTokenExpiration))
}

// Verify checks signature and expiry and returns the embedded claims.
// It does not check the type claim; callers must compare Claims.Type
// against the kind of token they expect.
func (p *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.config.JWTSecret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	}

	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, ErrMalformedToken
	}
	tokenType, _ := claims["type"].(string)

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrMalformedToken
	}

	result := &Claims{
		Subject:   subject,
		Type:      tokenType,
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if iat, ok := claims["iat"].(float64); ok {
		result.IssuedAt = time.Unix(int64(iat), 0)
	}

	return result, nil
}
