package bootstrap

import (
	"net/http"

	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/handlers"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/services"
	"github.com/awais7012/lms-2/internal/store"
)

// handlerSet holds all HTTP handlers and required services
type handlerSet struct {
	auth         *handlers.AuthHandler
	reset        *handlers.PasswordResetHandler
	oauth        *handlers.OAuthHandler
	health       *handlers.HealthHandler
	tokenService *services.TokenService
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	s store.Store,
	userService *services.UserService,
	tokenService *services.TokenService,
	resetService *services.PasswordResetService,
	oauthProviders map[string]*auth.OAuthProvider,
	oauthHTTPClient *http.Client,
	prometheusMetrics metrics.Recorder,
) handlerSet {
	return handlerSet{
		auth:  handlers.NewAuthHandler(userService, tokenService, cfg),
		reset: handlers.NewPasswordResetHandler(resetService),
		oauth: handlers.NewOAuthHandler(
			oauthProviders,
			userService,
			tokenService,
			cfg,
			oauthHTTPClient,
			prometheusMetrics,
		),
		health:       handlers.NewHealthHandler(s),
		tokenService: tokenService,
	}
}
