package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/mailer"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/models"
	"github.com/awais7012/lms-2/internal/store"
)

const otpDigits = 6

var (
	ErrInvalidOTP     = errors.New("invalid or expired OTP")
	ErrOTPNotVerified = errors.New("OTP not verified or expired")
)

// PasswordResetService drives the three-step recovery flow:
// request (OTP issued) → verify (OTP consumed into verified state) →
// complete (password replaced, record deleted).
type PasswordResetService struct {
	store   store.Store
	sender  mailer.Sender
	otpTTL  time.Duration
	metrics metrics.Recorder
}

func NewPasswordResetService(
	s store.Store,
	sender mailer.Sender,
	otpTTL time.Duration,
	m metrics.Recorder,
) *PasswordResetService {
	return &PasswordResetService{
		store:   s,
		sender:  sender,
		otpTTL:  otpTTL,
		metrics: m,
	}
}

// Request starts a password reset. Whether or not the email is registered,
// the caller gets the same nil result to prevent account enumeration. Email
// delivery failures are logged and swallowed; the acknowledgment contract
// wins over delivery guarantees.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	_, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't reveal that the user doesn't exist
			s.metrics.RecordPasswordReset("request", "unknown_email")
			return nil
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	// A new request invalidates prior codes so at most one record can
	// satisfy the verify/complete predicates.
	if _, err := s.store.DeleteResetsByEmail(ctx, email); err != nil {
		return err
	}

	now := time.Now().UTC()
	record := &models.PasswordReset{
		ID:        uuid.New().String(),
		Email:     email,
		OTP:       otp,
		Verified:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpTTL),
	}
	if err := s.store.CreateReset(ctx, record); err != nil {
		return err
	}

	if err := s.sender.SendPasswordResetOTP(ctx, email, otp); err != nil {
		log.Printf("[Reset] Failed to send OTP email to=%s: %v", email, err)
	}

	s.metrics.RecordPasswordReset("request", "success")
	return nil
}

// VerifyOTP flips the matching record to verified. Fails with ErrInvalidOTP
// when no record matches (email, otp) with a future expiry. Re-verification
// of an already verified code succeeds.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, otp string) error {
	err := s.store.VerifyReset(ctx, email, otp, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrResetNotFound) {
			s.metrics.RecordPasswordReset("verify", "failure")
			return ErrInvalidOTP
		}
		return err
	}

	s.metrics.RecordPasswordReset("verify", "success")
	return nil
}

// Complete replaces the user's password, gated on a verified unexpired
// record, and deletes the record so the code cannot be used twice.
func (s *PasswordResetService) Complete(ctx context.Context, email, newPassword string) error {
	record, err := s.store.GetVerifiedReset(ctx, email, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrResetNotFound) {
			s.metrics.RecordPasswordReset("complete", "failure")
			return ErrOTPNotVerified
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdateUserPassword(ctx, email, hash); err != nil {
		return err
	}

	if err := s.store.DeleteReset(ctx, record.ID); err != nil {
		// Password already changed; the leftover record expires on its own
		log.Printf("[Reset] Failed to delete consumed reset record id=%s: %v", record.ID, err)
	}

	s.metrics.RecordPasswordReset("complete", "success")
	log.Printf("[Reset] Password reset completed for email=%s", email)
	return nil
}

// generateOTP draws a uniform 6-digit numeric code from crypto/rand
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
