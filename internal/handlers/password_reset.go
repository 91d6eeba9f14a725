package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/awais7012/lms-2/internal/services"

	"github.com/gin-gonic/gin"
)

// forgotPasswordAck is returned whether the email is registered or not.
const forgotPasswordAck = "If your email is registered, you will receive a password reset link"

// PasswordResetHandler serves the three-step OTP reset flow.
type PasswordResetHandler struct {
	resetService *services.PasswordResetService
}

func NewPasswordResetHandler(rs *services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: rs}
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword starts a reset. The response never reveals whether the
// email belongs to an account.
func (h *PasswordResetHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A valid email is required",
		})
		return
	}

	if err := h.resetService.Request(c.Request.Context(), req.Email); err != nil {
		log.Printf("[PasswordReset] Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process password reset request",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordAck})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP marks the matching reset record as verified.
func (h *PasswordResetHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email and otp are required",
		})
		return
	}

	if err := h.resetService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
			return
		}
		log.Printf("[PasswordReset] OTP verification failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to verify OTP",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword sets the new password once the OTP has been verified.
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email and password are required",
		})
		return
	}

	if err := h.resetService.Complete(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrOTPNotVerified) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP not verified or expired"})
			return
		}
		log.Printf("[PasswordReset] Reset failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
