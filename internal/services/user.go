package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/models"
	"github.com/awais7012/lms-2/internal/store"
)

// Auth source constants
const (
	AuthSourceLocal  = "local"
	AuthSourceGoogle = "google"
)

var (
	ErrEmailTaken                = errors.New("user with this email already exists")
	ErrInvalidCredentials        = errors.New("incorrect email or password")
	ErrInactiveAccount           = errors.New("inactive user")
	ErrOAuthAutoRegisterDisabled = errors.New("account registration via OAuth is disabled")
)

// SignupInput carries a validated signup request
type SignupInput struct {
	Email    string
	Username string
	Password string
	Role     string
}

// UserService owns account provisioning and credential verification
type UserService struct {
	store             store.Store
	localProvider     *auth.LocalAuthProvider
	oauthDefaultRole  string
	oauthAutoRegister bool
	metrics           metrics.Recorder
}

func NewUserService(
	s store.Store,
	localProvider *auth.LocalAuthProvider,
	oauthDefaultRole string,
	oauthAutoRegister bool,
	m metrics.Recorder,
) *UserService {
	return &UserService{
		store:             s,
		localProvider:     localProvider,
		oauthDefaultRole:  oauthDefaultRole,
		oauthAutoRegister: oauthAutoRegister,
		metrics:           m,
	}
}

// Signup provisions a new local account with its role profile.
// Fails with ErrEmailTaken if the email is already registered.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		IsSuperuser:  false,
		AuthSource:   AuthSourceLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			s.metrics.RecordSignup(in.Role, false)
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Profile insert is best-effort sequential; a crash in between leaves
	// a user without a profile, which a reconciliation job has to pick up.
	profile := &models.Profile{UserID: user.ID, FullName: in.Username}
	if err := s.store.CreateProfile(ctx, in.Role, profile); err != nil {
		log.Printf("[Auth] Profile creation failed for user=%s: %v", user.ID, err)
		return nil, fmt.Errorf("failed to create %s profile: %w", in.Role, err)
	}

	s.metrics.RecordSignup(in.Role, true)
	log.Printf("[Auth] New user registered: %s (role: %s)", in.Email, in.Role)
	return user, nil
}

// Authenticate verifies email/password and enforces the active flag.
// Missing account and wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	user, err := s.localProvider.Authenticate(ctx, email, password)
	if err != nil {
		s.metrics.RecordLogin(AuthSourceLocal, false)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.metrics.RecordLogin(AuthSourceLocal, false)
		return nil, ErrInactiveAccount
	}

	s.metrics.RecordLogin(AuthSourceLocal, true)
	return user, nil
}

// AuthenticateWithOAuth maps an externally-verified identity to a local
// account, provisioning one when the email is unknown.
func (s *UserService) AuthenticateWithOAuth(
	ctx context.Context,
	info *auth.OAuthUserInfo,
) (*models.User, error) {
	existing, err := s.store.GetUserByEmail(ctx, info.Email)
	if err == nil {
		s.metrics.RecordLogin(AuthSourceGoogle, true)
		return existing, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	if !s.oauthAutoRegister {
		return nil, ErrOAuthAutoRegisterDisabled
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:          uuid.New().String(),
		Email:       info.Email,
		Username:    info.FullName,
		Role:        s.oauthDefaultRole,
		IsActive:    true,
		IsSuperuser: false,
		AuthSource:  AuthSourceGoogle,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision federated user: %w", err)
	}

	profile := &models.Profile{UserID: user.ID, FullName: info.FullName}
	if err := s.store.CreateProfile(ctx, user.Role, profile); err != nil {
		log.Printf("[OAuth] Profile creation failed for user=%s: %v", user.ID, err)
		return nil, fmt.Errorf("failed to create %s profile: %w", user.Role, err)
	}

	s.metrics.RecordLogin(AuthSourceGoogle, true)
	log.Printf("[OAuth] New federated user created: %s (role: %s)", info.Email, user.Role)
	return user, nil
}

// GetUserByID looks up an account by its identifier
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}
