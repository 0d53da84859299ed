// Package mailer dispatches transactional mail. The rest of the app only
// sees the Mailer interface; delivery details stay here.
package mailer

import (
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Mailer sends account-recovery mail.
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

// SMTPConfig holds the delivery settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// New returns an SMTP-backed mailer, or a log-only stand-in when no SMTP
// host is configured (local development).
func New(cfg SMTPConfig, log *slog.Logger) Mailer {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST not set, password reset mails will only be logged")
		return &logMailer{log: log}
	}
	return &smtpMailer{cfg: cfg, log: log}
}

type smtpMailer struct {
	cfg SMTPConfig
	log *slog.Logger
}

func (m *smtpMailer) SendPasswordReset(to, resetLink string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject("Reset your password")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Open the link below within one hour to choose a new one:\n\n%s\n\n"+
			"If you did not request this, you can ignore this mail.\n",
		resetLink,
	))

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.User),
		gomail.WithPassword(m.cfg.Pass),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	m.log.Info("password reset mail sent", "to", to)
	return nil
}

type logMailer struct {
	log *slog.Logger
}

func (m *logMailer) SendPasswordReset(to, resetLink string) error {
	m.log.Info("password reset requested", "to", to, "link", resetLink)
	return nil
}
