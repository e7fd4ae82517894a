package email

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"taxpro-backend/config"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

type sendMailFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// SMTPNotifier renders the contact templates locally and sends them over SMTP
type SMTPNotifier struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	sendMail  sendMailFunc
}

// NewSMTPNotifier creates an SMTP notifier from configuration
func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	send := smtp.SendMail
	if cfg.SMTPTLS {
		send = smtp.SendMailTLS
	}
	return &SMTPNotifier{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
		sendMail:  send,
	}
}

// Send renders templateID with params and mails it. The owner template goes
// to the contact inbox with Reply-To set to the inquirer, the user template
// goes to the inquirer.
func (s *SMTPNotifier) Send(ctx context.Context, templateID string, params map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := render(templateID, params)
	if err != nil {
		return err
	}

	var to, replyTo string
	switch templateID {
	case TemplateOwner:
		to, replyTo = s.toEmail, params["user_email"]
	case TemplateUser:
		to = params["email"]
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	if replyTo != "" {
		if _, err := mail.ParseAddress(replyTo); err == nil {
			fmt.Fprintf(&msg, "Reply-To: %s\r\n", replyTo)
		}
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := sasl.NewPlainClient("", s.username, s.password)
	addr := s.host + ":" + s.port
	if err := s.sendMail(addr, auth, s.fromEmail, []string{to}, strings.NewReader(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the notifier has valid SMTP configuration
func (s *SMTPNotifier) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
