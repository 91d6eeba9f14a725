package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/middleware"
	"github.com/awais7012/lms-2/internal/models"
	"github.com/awais7012/lms-2/internal/services"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

// AuthHandler serves signup, login, token refresh and logout.
type AuthHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
	config       *config.Config
}

func NewAuthHandler(
	us *services.UserService,
	ts *services.TokenService,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		config:       cfg,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
}

// Signup registers a new local account with a role profile.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid signup payload: " + err.Error(),
		})
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), services.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "User with this email already exists",
			})
			return
		}
		log.Printf("[Auth] Signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	log.Printf("[Auth] User registered: email=%s role=%s", user.Email, user.Role)
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
}

// Login authenticates with an email/password form and issues a token pair.
// The refresh token travels in an HTTP-only cookie, the access token in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	// OAuth2 password-grant style form: username carries the email
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "username and password are required",
		})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInactiveAccount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Inactive user"})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		default:
			log.Printf("[Auth] Login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	pair, err := h.tokenService.IssuePair(user.ID)
	if err != nil {
		log.Printf("[Auth] Token issuance failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	setRefreshCookie(c, h.config, pair.Refresh.TokenString)
	c.JSON(http.StatusOK, loginResponse(pair.Access.TokenString, user))
}

// RefreshToken rotates the pair carried by the refresh cookie.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil {
		cookie = ""
	}

	pair, err := h.tokenService.Refresh(cookie)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		if errors.Is(err, services.ErrMissingToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	setRefreshCookie(c, h.config, pair.Refresh.TokenString)
	c.JSON(http.StatusOK, gin.H{
		"access_token": pair.Access.TokenString,
		"token_type":   "bearer",
	})
}

// Me returns the profile of the authenticated user. Requires the
// RequireAuth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user.View(),
		"role":         user.Role,
		"is_active":    user.IsActive,
		"is_superuser": user.IsSuperuser,
	})
}

// Logout clears the refresh cookie. Always succeeds, cookie or not.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearRefreshCookie(c, h.config)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// setRefreshCookie places the refresh token in an HTTP-only SameSite=Lax
// cookie with max-age equal to the refresh TTL. Local login, refresh and
// the OAuth callback all go through here.
func setRefreshCookie(c *gin.Context, cfg *config.Config, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		refreshCookieName,
		value,
		int(cfg.RefreshTokenExpiration.Seconds()),
		"/",
		"",
		cfg.CookieSecure,
		true,
	)
}

func clearRefreshCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", cfg.CookieSecure, true)
}

// loginResponse is shared by local login and the OAuth callback so both
// paths return the same token bundle.
func loginResponse(accessToken string, user *models.User) gin.H {
	return gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"user":         user.View(),
		"role":         user.Role,
		"is_active":    user.IsActive,
		"is_superuser": user.IsSuperuser,
	}
}
