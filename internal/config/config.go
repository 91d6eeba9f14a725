package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store driver constants
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr  string
	BaseURL     string
	Environment string

	// JWT settings
	JWTSecret              string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration

	// Session settings (OAuth state cookie)
	SessionSecret string

	// Password reset settings
	OTPExpiration time.Duration

	// Store
	StoreDriver   string // "mongo" or "memory"
	MongoURI      string
	MongoDatabase string
	DBInitTimeout time.Duration

	// Refresh cookie settings
	CookieSecure bool

	// Google OAuth
	GoogleOAuthEnabled bool
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleOAuthScopes  []string

	// OAuth account provisioning
	OAuthDefaultRole  string // role assigned to accounts created via federation
	OAuthAutoRegister bool   // allow OAuth to auto-create accounts (default: true)

	// OAuth HTTP client settings
	OAuthTimeout            time.Duration
	OAuthInsecureSkipVerify bool

	// SMTP settings (OTP delivery)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	LoginRateLimit           int // requests per minute
	ResetRequestRateLimit    int
	ResetVerifyRateLimit     int
	RateLimitCleanupInterval time.Duration

	// Metrics
	MetricsEnabled bool
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	environment := getEnv("ENVIRONMENT", "development")

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: environment,

		JWTSecret:              getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		AccessTokenExpiration:  getEnvDuration("ACCESS_TOKEN_EXPIRATION", 30*time.Minute),
		RefreshTokenExpiration: getEnvDuration("REFRESH_TOKEN_EXPIRATION", 168*time.Hour), // 7 days

		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-in-production"),

		OTPExpiration: getEnvDuration("OTP_EXPIRATION", 15*time.Minute),

		StoreDriver:   getEnv("STORE_DRIVER", StoreDriverMongo),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "lms"),
		DBInitTimeout: getEnvDuration("DB_INIT_TIMEOUT", 10*time.Second),

		CookieSecure: getEnvBool("COOKIE_SECURE", environment == "production"),

		// Google OAuth
		GoogleOAuthEnabled: getEnvBool("GOOGLE_OAUTH_ENABLED", false),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URI", ""),
		GoogleOAuthScopes: getEnvSlice(
			"GOOGLE_SCOPES",
			[]string{"openid", "email", "profile"},
		),

		OAuthDefaultRole:  getEnv("OAUTH_DEFAULT_ROLE", "student"),
		OAuthAutoRegister: getEnvBool("OAUTH_AUTO_REGISTER", true),

		OAuthTimeout:            getEnvDuration("OAUTH_TIMEOUT", 15*time.Second),
		OAuthInsecureSkipVerify: getEnvBool("OAUTH_INSECURE_SKIP_VERIFY", false),

		// SMTP
		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@localhost"),

		// Rate limiting
		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RedisAddr:                getEnv("REDIS_ADDR", ""),
		RedisPassword:            getEnv("REDIS_PASSWORD", ""),
		RedisDB:                  getEnvInt("REDIS_DB", 0),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 10),
		ResetRequestRateLimit:    getEnvInt("RESET_REQUEST_RATE_LIMIT", 5),
		ResetVerifyRateLimit:     getEnvInt("RESET_VERIFY_RATE_LIMIT", 10),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
	}
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
