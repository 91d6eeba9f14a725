package token

import "errors"

var (
	// ErrTokenGeneration indicates token signing failed
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrInvalidSignature indicates the signature does not match
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpiredToken indicates the token is past its expiry
	ErrExpiredToken = errors.New("token expired")

	// ErrMalformedToken indicates the token could not be decoded
	ErrMalformedToken = errors.New("malformed token")

	// ErrWrongTokenType indicates the type claim does not match what the
	// caller expected (e.g. an access token presented as a refresh token)
	ErrWrongTokenType = errors.New("wrong token type")
)
