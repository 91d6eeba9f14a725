package bootstrap

import (
	"log"
	"net/http"

	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	h handlerSet,
	oauthProviders map[string]*auth.OAuthProvider,
	prometheusMetrics metrics.Recorder,
	rateLimitRedisClient *redis.Client,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())

	// Session middleware carries the OAuth state cookie
	setupSessionMiddleware(r, cfg)

	r.GET("/health", h.health.Health)
	setupMetricsEndpoint(r, cfg)

	rateLimiters := setupRateLimiting(cfg, rateLimitRedisClient)
	setupAuthRoutes(r, h, oauthProviders, rateLimiters)

	logServerStartup(cfg)

	return r
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   600, // OAuth handshakes finish well within ten minutes
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("oauth_session", sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	if !cfg.MetricsEnabled {
		log.Printf("Prometheus metrics disabled")
		return
	}
	log.Printf("Prometheus metrics enabled at /metrics")
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAuthRoutes configures the authentication API routes
func setupAuthRoutes(
	r *gin.Engine,
	h handlerSet,
	oauthProviders map[string]*auth.OAuthProvider,
	rateLimiters rateLimitMiddlewares,
) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", h.auth.Signup)
		api.POST("/login", rateLimiters.login, h.auth.Login)
		api.POST("/refresh-token", h.auth.RefreshToken)
		api.POST("/logout", h.auth.Logout)

		api.POST("/forgot-password", rateLimiters.resetRequest, h.reset.ForgotPassword)
		api.POST("/verify-otp", rateLimiters.resetVerify, h.reset.VerifyOTP)
		api.POST("/reset-password", h.reset.ResetPassword)

		api.GET("/me", middleware.RequireAuth(h.tokenService), h.auth.Me)

		for name := range oauthProviders {
			api.GET("/"+name+"/login", h.oauth.Login(name))
			api.GET("/"+name+"/callback", h.oauth.Callback(name))
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction()]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction()])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("Auth server starting on %s", cfg.ServerAddr)
	log.Printf("Base URL: %s", cfg.BaseURL)
	log.Printf("Store driver: %s", cfg.StoreDriver)
}
