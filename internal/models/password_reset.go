package models

import "time"

// PasswordReset is a one-time password recovery record. A record becomes
// usable for resetting the password only after OTP verification flips
// Verified, and it is deleted once the reset completes.
type PasswordReset struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	OTP       string    `bson:"otp"` // 6-digit numeric code
	Verified  bool      `bson:"verified"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}
