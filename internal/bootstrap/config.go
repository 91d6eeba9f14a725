package bootstrap

import (
	"errors"
	"fmt"
	"log"

	"github.com/awais7012/lms-2/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) {
	if err := validateStoreConfig(cfg); err != nil {
		log.Fatalf("Invalid store configuration: %v", err)
	}
	if err := validateOAuthConfig(cfg); err != nil {
		log.Fatalf("Invalid OAuth configuration: %v", err)
	}
	if cfg.IsProduction() && cfg.JWTSecret == "your-256-bit-secret-change-in-production" {
		log.Fatalf("JWT_SECRET must be set in production")
	}
}

// validateStoreConfig checks that required config is present for the selected store driver
func validateStoreConfig(cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		if cfg.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case config.StoreDriverMemory:
		// No additional validation needed
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %s (must be: mongo, memory)", cfg.StoreDriver)
	}
	return nil
}

// validateOAuthConfig checks that enabled providers carry their credentials
func validateOAuthConfig(cfg *config.Config) error {
	if !cfg.GoogleOAuthEnabled {
		return nil
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return errors.New(
			"GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required when GOOGLE_OAUTH_ENABLED=true",
		)
	}
	if cfg.GoogleRedirectURL == "" {
		return errors.New("GOOGLE_REDIRECT_URI is required when GOOGLE_OAUTH_ENABLED=true")
	}
	return nil
}
