package services

import (
	"errors"
	"log"

	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/token"
)

var (
	// ErrMissingToken indicates the refresh cookie was absent
	ErrMissingToken = errors.New("refresh token required")

	// ErrUnauthorized collapses every refresh-token verification failure
	// (signature, expiry, wrong type) into one externally-visible error so
	// validation internals never leak to clients.
	ErrUnauthorized = errors.New("could not validate credentials")
)

// TokenPair is an access/refresh token pair minted for one subject
type TokenPair struct {
	Access  *token.Result
	Refresh *token.Result
}

// TokenService orchestrates issuance and rotation of session token pairs
type TokenService struct {
	issuer  *token.Issuer
	metrics metrics.Recorder
}

func NewTokenService(issuer *token.Issuer, m metrics.Recorder) *TokenService {
	return &TokenService{issuer: issuer, metrics: m}
}

// IssuePair mints a fresh access+refresh pair for the subject
func (s *TokenService) IssuePair(subject string) (*TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(subject)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.IssueRefreshToken(subject)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTokenIssued(token.TypeAccess)
	s.metrics.RecordTokenIssued(token.TypeRefresh)
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and mints a new pair (rotation).
// The presented token is not revoked, only superseded in the cookie.
func (s *TokenService) Refresh(refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		s.metrics.RecordTokenRefresh("missing")
		return nil, ErrMissingToken
	}

	claims, err := s.issuer.Verify(refreshToken)
	if err != nil {
		log.Printf("[Token] Refresh token validation failed: %v", err)
		s.metrics.RecordTokenRefresh("invalid")
		return nil, ErrUnauthorized
	}

	if claims.Type != token.TypeRefresh {
		log.Printf("[Token] Refresh rejected: %v (got type %q)", token.ErrWrongTokenType, claims.Type)
		s.metrics.RecordTokenRefresh("invalid")
		return nil, ErrUnauthorized
	}

	pair, err := s.IssuePair(claims.Subject)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTokenRefresh("success")
	return pair, nil
}

// VerifyAccessToken validates an access token and returns its subject
func (s *TokenService) VerifyAccessToken(accessToken string) (string, error) {
	claims, err := s.issuer.Verify(accessToken)
	if err != nil {
		return "", ErrUnauthorized
	}
	if claims.Type != token.TypeAccess {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
