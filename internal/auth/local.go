package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/awais7012/lms-2/internal/models"
	"github.com/awais7012/lms-2/internal/store"
)

// LocalAuthProvider verifies email/password credentials against the store
type LocalAuthProvider struct {
	store store.Store
}

// NewLocalAuthProvider creates a new local authentication provider
func NewLocalAuthProvider(s store.Store) *LocalAuthProvider {
	return &LocalAuthProvider{store: s}
}

// Authenticate verifies credentials against the credential store. A missing
// account and a wrong password return the same error so callers cannot tell
// which one failed.
func (p *LocalAuthProvider) Authenticate(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	user, err := p.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Federated accounts have an empty hash and can never pass here
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword returns the bcrypt digest of a plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
