package bootstrap

import (
	"net/http"

	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/services"
	"github.com/awais7012/lms-2/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	Store                store.Store
	MetricsRecorder      metrics.Recorder
	RateLimitRedisClient *redis.Client

	// Services
	UserService          *services.UserService
	TokenService         *services.TokenService
	PasswordResetService *services.PasswordResetService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	validateAllConfiguration(cfg)

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up the store, metrics, and Redis
func (app *Application) initializeInfrastructure() error {
	var err error

	app.Store, err = initializeStore(app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = metrics.Init(app.Config.MetricsEnabled)

	app.RateLimitRedisClient, err = initializeRateLimitRedisClient(app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.UserService,
		app.TokenService,
		app.PasswordResetService = initializeServices(
		app.Config,
		app.Store,
		app.MetricsRecorder,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	oauthProviders := initializeOAuthProviders(app.Config)
	logOAuthProvidersStatus(oauthProviders)
	oauthHTTPClient := createOAuthHTTPClient(app.Config)

	app.HandlerSet = initializeHandlers(
		app.Config,
		app.Store,
		app.UserService,
		app.TokenService,
		app.PasswordResetService,
		oauthProviders,
		oauthHTTPClient,
		app.MetricsRecorder,
	)

	app.Router = setupRouter(
		app.Config,
		app.HandlerSet,
		oauthProviders,
		app.MetricsRecorder,
		app.RateLimitRedisClient,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Server)
	addRedisClientShutdownJob(m, app.RateLimitRedisClient)
	addStoreShutdownJob(m, app.Store)

	<-m.Done()
}
