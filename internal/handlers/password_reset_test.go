package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// captureSender records the last OTP handed to it instead of sending mail.
type captureSender struct {
	email string
	otp   string
	calls int
}

func (c *captureSender) SendPasswordResetOTP(ctx context.Context, email, otp string) error {
	c.calls++
	c.email = email
	c.otp = otp
	return nil
}

func TestForgotPasswordEndpoint_SameMessageEitherWay(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com", "alice", "p1", "student")

	registered := env.postJSON("/api/auth/forgot-password", gin.H{"email": "a@x.com"})
	unregistered := env.postJSON("/api/auth/forgot-password", gin.H{"email": "nobody@x.com"})

	require.Equal(t, http.StatusOK, registered.Code)
	require.Equal(t, http.StatusOK, unregistered.Code)
	assert.Equal(t, registered.Body.String(), unregistered.Body.String())
	assert.Equal(t, forgotPasswordAck, decodeBody(t, registered)["message"])

	// Only the registered address got a code
	assert.Equal(t, 1, env.sender.calls)
	assert.Equal(t, "a@x.com", env.sender.email)
}

func TestForgotPasswordEndpoint_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/api/auth/forgot-password", gin.H{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTPEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com", "alice", "p1", "student")
	require.Equal(t, http.StatusOK,
		env.postJSON("/api/auth/forgot-password", gin.H{"email": "a@x.com"}).Code)

	w := env.postJSON("/api/auth/verify-otp", gin.H{
		"email": "a@x.com",
		"otp":   env.sender.otp,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "OTP verified successfully", decodeBody(t, w)["message"])
}

func TestVerifyOTPEndpoint_WrongCode(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com", "alice", "p1", "student")
	require.Equal(t, http.StatusOK,
		env.postJSON("/api/auth/forgot-password", gin.H{"email": "a@x.com"}).Code)

	wrong := "000000"
	if env.sender.otp == wrong {
		wrong = "000001"
	}
	w := env.postJSON("/api/auth/verify-otp", gin.H{"email": "a@x.com", "otp": wrong})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired OTP", decodeBody(t, w)["error"])
}

func TestResetPasswordEndpoint_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com", "alice", "old-pass", "student")
	require.Equal(t, http.StatusOK,
		env.postJSON("/api/auth/forgot-password", gin.H{"email": "a@x.com"}).Code)
	require.Equal(t, http.StatusOK,
		env.postJSON("/api/auth/verify-otp", gin.H{
			"email": "a@x.com",
			"otp":   env.sender.otp,
		}).Code)

	w := env.postJSON("/api/auth/reset-password", gin.H{
		"email":    "a@x.com",
		"password": "new-pass",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Password reset successfully", decodeBody(t, w)["message"])

	user, err := env.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte("new-pass")))

	// Old password no longer works, new one does
	assert.Equal(t, http.StatusUnauthorized, env.login(t, "a@x.com", "old-pass").Code)
	assert.Equal(t, http.StatusOK, env.login(t, "a@x.com", "new-pass").Code)

	// The record is consumed, the flow cannot run twice
	again := env.postJSON("/api/auth/reset-password", gin.H{
		"email":    "a@x.com",
		"password": "third-pass",
	})
	assert.Equal(t, http.StatusBadRequest, again.Code)
}

func TestResetPasswordEndpoint_WithoutVerification(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com", "alice", "p1", "student")
	require.Equal(t, http.StatusOK,
		env.postJSON("/api/auth/forgot-password", gin.H{"email": "a@x.com"}).Code)

	w := env.postJSON("/api/auth/reset-password", gin.H{
		"email":    "a@x.com",
		"password": "new-pass",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OTP not verified or expired", decodeBody(t, w)["error"])
}
