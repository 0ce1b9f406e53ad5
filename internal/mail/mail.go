// Package mail delivers generated reports over SMTP. An unconfigured
// transport (empty host) is a valid state meaning delivery is disabled; the
// pipeline checks Enabled before attempting a send.
package mail

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/nebulus/blackbox/internal/config"
	"github.com/nebulus/blackbox/internal/logger"
)

// Sender is the delivery collaborator used by the report pipeline.
type Sender interface {
	// Enabled reports whether a transport is configured.
	Enabled() bool

	// Send delivers a plain-text message to the recipients.
	Send(subject, body string, recipients []string) error
}

// SMTPSender implements Sender over a configured SMTP host.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *logger.Logger
}

// NewSMTPSender creates a sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig, log *logger.Logger) *SMTPSender {
	if cfg.From == "" {
		cfg.From = config.DefaultSender
	}
	return &SMTPSender{cfg: cfg, logger: log}
}

// Enabled reports whether an SMTP host is configured.
func (s *SMTPSender) Enabled() bool {
	return s.cfg.Host != ""
}

// Send composes and delivers a plain-text message. STARTTLS is used
// opportunistically and credentials only when configured, matching common
// local-relay setups.
func (s *SMTPSender) Send(subject, body string, recipients []string) error {
	if !s.Enabled() {
		return fmt.Errorf("smtp transport is not configured")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address %s: %w", s.cfg.From, err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("email sent",
			logger.Field{Key: "subject", Value: subject},
			logger.Field{Key: "recipients", Value: len(recipients)})
	}
	return nil
}
