package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"gopkg.in/gomail.v2"
)

// Sender delivers outbound mail. The password recovery flow treats delivery
// as fire-and-forget; failures are logged by the caller, never surfaced to
// the requester.
type Sender interface {
	SendPasswordResetOTP(ctx context.Context, email, otp string) error
}

// SMTPSender delivers mail through an SMTP relay
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	otpTTL time.Duration
}

// NewSMTPSender creates a sender backed by the given SMTP relay. otpTTL is
// quoted in the message body and must match the validity window the reset
// flow enforces.
func NewSMTPSender(host string, port int, username, password, from string, otpTTL time.Duration) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		otpTTL: otpTTL,
	}
}

func resetMessageBody(otp string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Your password reset code is: %s\n\nThe code expires in %d minutes. "+
			"If you did not request a password reset, you can ignore this email.\n",
		otp, int(ttl.Minutes()),
	)
}

func (s *SMTPSender) SendPasswordResetOTP(ctx context.Context, email, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your password reset code")
	m.SetBody("text/plain", resetMessageBody(otp, s.otpTTL))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// LogSender logs instead of sending. Used when SMTP is not configured
// (development and tests). The code itself is never logged.
type LogSender struct{}

// NewLogSender creates a log-only sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendPasswordResetOTP(ctx context.Context, email, otp string) error {
	log.Printf("[Mail] SMTP not configured, skipping reset email to=%s", email)
	return nil
}
