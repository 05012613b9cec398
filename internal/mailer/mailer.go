// Package mailer sends transactional mail through a plain SMTP relay
// with a default sender address. Fire and forget: no retries, no
// delivery tracking.
package mailer

import (
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/gatherly/gatherly-api/internal/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	conf   *config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(conf *config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if conf.Enabled {
		if err := validateAddress(conf.From); err != nil {
			return nil, fmt.Errorf("invalid sender address -> %w", err)
		}
	}

	return &SMTPMailer{
		conf:   conf,
		logger: logger,
	}, nil
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if err := validateAddress(to); err != nil {
		return fmt.Errorf("invalid recipient address -> %w", err)
	}

	if !m.conf.Enabled {
		m.logger.Info("mailer disabled, skipping send",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.conf.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%v:%v", m.conf.Host, m.conf.Port)
	var auth smtp.Auth
	if m.conf.Username != "" {
		auth = smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
	}

	if err := smtp.SendMail(addr, auth, m.conf.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	return nil
}

// validateAddress rejects malformed addresses and header injection
// attempts before anything reaches the SMTP transport.
func validateAddress(address string) error {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return err
	}
	if strings.ContainsAny(parsed.Address, "\r\n") {
		return fmt.Errorf("address contains newline characters")
	}

	return nil
}
