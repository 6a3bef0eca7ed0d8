// Package mail builds and sends transactional email over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"github.com/jhillyerd/enmime"
	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
)

// ResetSubject is the subject line of password reset emails.
const ResetSubject = "Reset Password Link"

var resetTemplate = template.Must(template.New("reset").Parse(
	`<p>Dear User,</p>` +
		`<p>Click the link below to reset your password:</p>` +
		`<a href="{{.Link}}">Reset Password</a>`,
))

// SMTPMailer sends email through an enmime.Sender.
type SMTPMailer struct {
	sender   enmime.Sender
	fromName string
	fromAddr string
	logger   *slog.Logger
}

// NewSMTPMailer creates a mailer that authenticates with PLAIN auth when a
// username is configured.
func NewSMTPMailer(cfg config.MailConfig, logger *slog.Logger) *SMTPMailer {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return NewMailer(enmime.NewSMTP(addr, auth), cfg.FromName, cfg.FromAddress, logger)
}

// NewMailer creates a mailer on top of any enmime.Sender.
func NewMailer(sender enmime.Sender, fromName, fromAddr string, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		sender:   sender,
		fromName: fromName,
		fromAddr: fromAddr,
		logger:   logger.With(slog.String("component", "mailer")),
	}
}

// SendPasswordReset emails the reset link to to.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	err := enmime.Builder().
		From(m.fromName, m.fromAddr).
		To("", to).
		Subject(ResetSubject).
		HTML(body.Bytes()).
		Text([]byte("Open the following link to reset your password: " + link)).
		Send(m.sender)
	if err != nil {
		log.Error("failed to send reset email", slog.String("error", err.Error()))
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	log.Debug("sent reset email")
	return nil
}
