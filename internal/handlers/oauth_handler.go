package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	sessionOAuthState    = "oauth_state"
	sessionOAuthProvider = "oauth_provider"
)

// OAuthHandler drives the provider redirect and callback. A successful
// callback ends exactly like local login: access token in the body,
// refresh token in the cookie.
type OAuthHandler struct {
	providers    map[string]*auth.OAuthProvider
	userService  *services.UserService
	tokenService *services.TokenService
	config       *config.Config
	httpClient   *http.Client
	metrics      metrics.Recorder
}

func NewOAuthHandler(
	providers map[string]*auth.OAuthProvider,
	us *services.UserService,
	ts *services.TokenService,
	cfg *config.Config,
	httpClient *http.Client,
	m metrics.Recorder,
) *OAuthHandler {
	return &OAuthHandler{
		providers:    providers,
		userService:  us,
		tokenService: ts,
		config:       cfg,
		httpClient:   httpClient,
		metrics:      m,
	}
}

// Login redirects the browser to the named provider's consent page.
func (h *OAuthHandler) Login(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		oauthProvider, exists := h.providers[provider]
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "OAuth provider is not configured",
			})
			return
		}

		state, err := generateRandomState(32)
		if err != nil {
			log.Printf("[OAuth] Failed to generate state: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to initiate OAuth login",
			})
			return
		}

		session := sessions.Default(c)
		session.Set(sessionOAuthState, state)
		session.Set(sessionOAuthProvider, provider)
		if err := session.Save(); err != nil {
			log.Printf("[OAuth] Failed to save session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to initiate OAuth login",
			})
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, oauthProvider.GetAuthURL(state))
	}
}

// Callback exchanges the provider code, federates the identity to a local
// account and issues the token pair.
func (h *OAuthHandler) Callback(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		oauthProvider, exists := h.providers[provider]
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "OAuth provider is not configured",
			})
			return
		}

		code := c.Query("code")
		state := c.Query("state")

		session := sessions.Default(c)
		savedState := session.Get(sessionOAuthState)
		savedProvider := session.Get(sessionOAuthProvider)
		session.Delete(sessionOAuthState)
		session.Delete(sessionOAuthProvider)
		if err := session.Save(); err != nil {
			log.Printf("[OAuth] Failed to save session: %v", err)
		}

		if savedState == nil || savedProvider == nil ||
			state != savedState.(string) || provider != savedProvider.(string) {
			h.metrics.RecordOAuthCallback(provider, false)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "OAuth state validation failed",
			})
			return
		}

		ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, h.httpClient)

		oauthToken, err := oauthProvider.ExchangeCode(ctx, code)
		if err != nil {
			h.metrics.RecordOAuthCallback(provider, false)
			log.Printf("[OAuth] Failed to exchange code: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to exchange authorization code",
			})
			return
		}

		userInfo, err := oauthProvider.GetUserInfo(ctx, oauthToken)
		if err != nil {
			h.metrics.RecordOAuthCallback(provider, false)
			log.Printf("[OAuth] Failed to get user info: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to retrieve user information from provider",
			})
			return
		}

		user, err := h.userService.AuthenticateWithOAuth(c.Request.Context(), userInfo)
		if err != nil {
			h.metrics.RecordOAuthCallback(provider, false)
			log.Printf("[OAuth] Authentication failed: %v", err)
			if errors.Is(err, services.ErrOAuthAutoRegisterDisabled) {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "New account registration via OAuth is disabled",
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Google authentication failed",
			})
			return
		}

		pair, err := h.tokenService.IssuePair(user.ID)
		if err != nil {
			h.metrics.RecordOAuthCallback(provider, false)
			log.Printf("[OAuth] Token issuance failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to issue tokens",
			})
			return
		}

		h.metrics.RecordOAuthCallback(provider, true)
		log.Printf("[OAuth] User authenticated: email=%s provider=%s", user.Email, provider)

		setRefreshCookie(c, h.config, pair.Refresh.TokenString)
		c.JSON(http.StatusOK, loginResponse(pair.Access.TokenString, user))
	}
}

// generateRandomState generates a random state string for OAuth CSRF protection
func generateRandomState(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
