// Package mailer sends transactional email over SMTP. All order-engine
// call sites treat send failures as non-fatal: the order has already
// committed by the time mail goes out.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Message is a single outbound email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds the SMTP endpoint and sender identity.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// smtpMailer implements Mailer over plain SMTP with optional auth.
type smtpMailer struct {
	cfg    SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(cfg SMTPConfig, logger zerolog.Logger) Mailer {
	return &smtpMailer{
		cfg:    cfg,
		logger: logger.With().Str("mailer", "smtp").Logger(),
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	body := buildMIME(m.cfg.From, msg)

	if err := smtp.SendMail(addr, auth, m.cfg.From, msg.To, body); err != nil {
		m.logger.Error().Err(err).
			Str("subject", msg.Subject).
			Int("recipients", len(msg.To)).
			Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug().Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func buildMIME(from string, msg Message) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	sb.WriteString("Subject: " + msg.Subject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML != "" {
		sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		sb.WriteString(msg.HTML)
	} else {
		sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		sb.WriteString(msg.Text)
	}
	sb.WriteString("\r\n")
	return []byte(sb.String())
}

// NopMailer discards mail. Used when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) Send(ctx context.Context, msg Message) error { return nil }
