// Package mail delivers account mails (verification and password-reset
// links). Three backends exist: log (default, prints the link), direct SMTP,
// and AMQP-queued delivery handled by the worker binary.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Message is one outbound mail.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer is the delivery port.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// VerificationMessage builds the registration-confirmation mail.
func VerificationMessage(to, name, token, baseURL string) Message {
	link := fmt.Sprintf("%s/verify/%s", baseURL, token)
	return Message{
		To:      to,
		Subject: "Confirm your registration",
		Body:    fmt.Sprintf("Hello %s,\n\nConfirm your Mizan account:\n%s\n", name, link),
	}
}

// ResetMessage builds the password-reset mail.
func ResetMessage(to, name, token, baseURL string) Message {
	link := fmt.Sprintf("%s/reset-password/%s", baseURL, token)
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Hello %s,\n\nReset your Mizan password:\n%s\n", name, link),
	}
}

// LogMailer writes the mail to the log instead of sending it, matching the
// original's simulated delivery. Useful for local development.
type LogMailer struct{}

var _ Mailer = LogMailer{}

func (LogMailer) Send(ctx context.Context, m Message) error {
	slog.InfoContext(ctx, "Mail delivery simulated",
		"to", m.To,
		"subject", m.Subject,
		"body", m.Body)
	return nil
}

// SMTPMailer delivers via a plain-auth SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

var _ Mailer = (*SMTPMailer)(nil)

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.From, m.To, m.Subject, m.Body))

	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{m.To}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", m.To, err)
	}
	slog.InfoContext(ctx, "Mail sent", "to", m.To, "subject", m.Subject)
	return nil
}
