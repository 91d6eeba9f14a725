package bootstrap

import (
	"github.com/awais7012/lms-2/internal/auth"
	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/mailer"
	"github.com/awais7012/lms-2/internal/metrics"
	"github.com/awais7012/lms-2/internal/services"
	"github.com/awais7012/lms-2/internal/store"
	"github.com/awais7012/lms-2/internal/token"
)

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	s store.Store,
	prometheusMetrics metrics.Recorder,
) (*services.UserService, *services.TokenService, *services.PasswordResetService) {
	localProvider := auth.NewLocalAuthProvider(s)
	issuer := token.NewIssuer(cfg)

	userService := services.NewUserService(
		s,
		localProvider,
		cfg.OAuthDefaultRole,
		cfg.OAuthAutoRegister,
		prometheusMetrics,
	)
	tokenService := services.NewTokenService(issuer, prometheusMetrics)
	resetService := services.NewPasswordResetService(
		s,
		initializeMailSender(cfg),
		cfg.OTPExpiration,
		prometheusMetrics,
	)

	return userService, tokenService, resetService
}

// initializeMailSender picks the SMTP sender when configured, otherwise a
// log-only fallback so the reset flow stays usable in development.
func initializeMailSender(cfg *config.Config) mailer.Sender {
	if cfg.SMTPHost == "" {
		return mailer.NewLogSender()
	}
	return mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.OTPExpiration)
}
