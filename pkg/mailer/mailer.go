package mailer

import (
	"fmt"
	"net/smtp"

	"yamdb-api/pkg/utils"

	"go.uber.org/zap"
)

// Mailer delivers outbound mail. Fire-and-forget from the caller's
// perspective; delivery errors are logged, not propagated.
type Mailer interface {
	Send(to, subject, body string) error
}

// New returns an SMTP mailer, or a logging mailer when no SMTP host is
// configured (development mode: codes go to the log instead of a mailbox).
func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		return &logMailer{log: log.With(zap.String("mailer", "log"))}
	}
	return &smtpMailer{config: config}
}

type smtpMailer struct {
	config utils.EmailConfig
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.config.From, to, subject, body))

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}

type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Send(to, subject, body string) error {
	m.log.Info("Outbound mail",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
