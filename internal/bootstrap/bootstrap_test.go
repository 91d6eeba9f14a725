package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/awais7012/lms-2/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStoreConfig(t *testing.T) {
	assert.NoError(t, validateStoreConfig(&config.Config{
		StoreDriver: config.StoreDriverMemory,
	}))
	assert.NoError(t, validateStoreConfig(&config.Config{
		StoreDriver: config.StoreDriverMongo,
		MongoURI:    "mongodb://localhost:27017",
	}))

	err := validateStoreConfig(&config.Config{StoreDriver: config.StoreDriverMongo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI is required")

	err = validateStoreConfig(&config.Config{StoreDriver: "unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid STORE_DRIVER")
}

func TestValidateOAuthConfig(t *testing.T) {
	assert.NoError(t, validateOAuthConfig(&config.Config{GoogleOAuthEnabled: false}))
	assert.NoError(t, validateOAuthConfig(&config.Config{
		GoogleOAuthEnabled: true,
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/api/auth/google/callback",
	}))

	err := validateOAuthConfig(&config.Config{GoogleOAuthEnabled: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")

	err = validateOAuthConfig(&config.Config{
		GoogleOAuthEnabled: true,
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_REDIRECT_URI")
}

func TestInitializeStoreMemory(t *testing.T) {
	s, err := initializeStore(&config.Config{StoreDriver: config.StoreDriverMemory})
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestInitializeOAuthProvidersNone(t *testing.T) {
	providers := initializeOAuthProviders(&config.Config{})
	assert.Empty(t, providers)
}

func TestInitializeOAuthProvidersGoogle(t *testing.T) {
	// Missing credentials
	providers := initializeOAuthProviders(&config.Config{
		GoogleOAuthEnabled: true,
	})
	assert.Empty(t, providers)

	// Valid credentials
	providers = initializeOAuthProviders(&config.Config{
		GoogleOAuthEnabled: true,
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/api/auth/google/callback",
		GoogleOAuthScopes:  []string{"openid", "email", "profile"},
	})
	assert.Contains(t, providers, "google")
}

func TestGetProviderNames(t *testing.T) {
	names := getProviderNames(initializeOAuthProviders(&config.Config{}))
	assert.Empty(t, names)

	cfg := &config.Config{
		GoogleOAuthEnabled: true,
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/api/auth/google/callback",
	}
	names = getProviderNames(initializeOAuthProviders(cfg))
	assert.Len(t, names, 1)
	assert.Contains(t, names, "google")
}

func TestSetupRateLimitingDisabled(t *testing.T) {
	limiters := setupRateLimiting(&config.Config{EnableRateLimit: false}, nil)
	require.NotNil(t, limiters.login)
	require.NotNil(t, limiters.resetRequest)
	require.NotNil(t, limiters.resetVerify)

	// Verify noop middlewares don't panic
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	assert.NotPanics(t, func() { limiters.login(c) })
}

func TestSetupRateLimitingMemory(t *testing.T) {
	cfg := &config.Config{
		EnableRateLimit:       true,
		RateLimitStore:        config.RateLimitStoreMemory,
		LoginRateLimit:        5,
		ResetRequestRateLimit: 5,
		ResetVerifyRateLimit:  10,
	}
	limiters := setupRateLimiting(cfg, nil)
	require.NotNil(t, limiters.login)
	require.NotNil(t, limiters.resetRequest)
	require.NotNil(t, limiters.resetVerify)
}

func TestCreateHTTPServer(t *testing.T) {
	srv := createHTTPServer(
		&config.Config{ServerAddr: ":8080"},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)
	require.NotNil(t, srv)
	assert.Equal(t, ":8080", srv.Addr)
}

func TestGinModeMap(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, ginModeMap[true])
	assert.Equal(t, gin.DebugMode, ginModeMap[false])
}
