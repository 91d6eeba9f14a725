package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/models"
	"github.com/awais7012/lms-2/internal/store"
)

func newUserService(s *store.MemoryStore) *UserService {
	return NewUserService(
		s,
		auth.NewLocalAuthProvider(s),
		models.RoleStudent,
		true,
		metrics.NewNoopMetrics(),
	)
}

func TestSignup_CreatesUserAndProfile(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		Email:    "a@x.com",
		Username: "alice",
		Password: "p1",
		Role:     models.RoleTeacher,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "p1", user.PasswordHash)
	assert.Equal(t, 1, s.ProfileCount(models.RoleTeacher))
	assert.Equal(t, 0, s.ProfileCount(models.RoleStudent))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	in := SignupInput{Email: "a@x.com", Username: "alice", Password: "p1", Role: models.RoleStudent}
	_, err := svc.Signup(ctx, in)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate_Success(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	created, err := svc.Signup(ctx, SignupInput{
		Email:    "a@x.com",
		Username: "alice",
		Password: "p1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthenticate_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupInput{
		Email:    "a@x.com",
		Username: "alice",
		Password: "p1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	_, errWrongPassword := svc.Authenticate(ctx, "a@x.com", "wrong")
	_, errUnknownEmail := svc.Authenticate(ctx, "nobody@x.com", "p1")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		Email:    "a@x.com",
		Username: "alice",
		Password: "p1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)
	s.SetUserActive(user.ID, false)

	_, err = svc.Authenticate(ctx, "a@x.com", "p1")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthenticateWithOAuth_ProvisionsNewUser(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	user, err := svc.AuthenticateWithOAuth(ctx, &auth.OAuthUserInfo{
		ProviderUserID: "google-123",
		Email:          "fed@x.com",
		FullName:       "Fed User",
	})

	require.NoError(t, err)
	assert.Equal(t, "fed@x.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.Equal(t, AuthSourceGoogle, user.AuthSource)
	assert.Equal(t, 1, s.ProfileCount(models.RoleStudent))

	// A federated account cannot log in with a password
	_, err = svc.Authenticate(ctx, "fed@x.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateWithOAuth_ReusesExistingAccount(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newUserService(s)
	ctx := context.Background()

	created, err := svc.Signup(ctx, SignupInput{
		Email:    "a@x.com",
		Username: "alice",
		Password: "p1",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	user, err := svc.AuthenticateWithOAuth(ctx, &auth.OAuthUserInfo{
		Email:    "a@x.com",
		FullName: "Alice G",
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	// No second profile created
	assert.Equal(t, 1, s.ProfileCount(models.RoleTeacher))
}

func TestAuthenticateWithOAuth_AutoRegisterDisabled(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewUserService(
		s,
		auth.NewLocalAuthProvider(s),
		models.RoleStudent,
		false,
		metrics.NewNoopMetrics(),
	)

	_, err := svc.AuthenticateWithOAuth(context.Background(), &auth.OAuthUserInfo{
		Email:    "fed@x.com",
		FullName: "Fed User",
	})

	assert.ErrorIs(t, err, ErrOAuthAutoRegisterDisabled)
}
