package store

import (
	"context"
	"errors"
	"time"

	"github.com/awais7012/lms-2/internal/models"
)

var (
	// ErrEmailTaken is returned when a user with the email already exists
	ErrEmailTaken = errors.New("email already exists")

	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")

	// ErrResetNotFound is returned when no reset record matches the
	// (email, otp) or (email, verified) predicate with a future expiry
	ErrResetNotFound = errors.New("password reset record not found")
)

// Store persists user accounts, role profiles and password reset records.
// Implementations must make VerifyReset a single atomic read-modify-write
// so concurrent verifications of the same record stay consistent.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, email, passwordHash string) error

	// Role profiles
	CreateProfile(ctx context.Context, role string, profile *models.Profile) error

	// Password reset records
	CreateReset(ctx context.Context, record *models.PasswordReset) error
	// DeleteResetsByEmail removes all reset records for the email,
	// enforcing a single active record per address at write time.
	DeleteResetsByEmail(ctx context.Context, email string) (int64, error)
	// VerifyReset marks the record matching (email, otp) with a future
	// expiry as verified. Re-verification of an already verified record
	// succeeds (idempotent).
	VerifyReset(ctx context.Context, email, otp string, now time.Time) error
	// GetVerifiedReset returns a verified, unexpired record for the email.
	GetVerifiedReset(ctx context.Context, email string, now time.Time) (*models.PasswordReset, error)
	DeleteReset(ctx context.Context, id string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
