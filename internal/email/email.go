// Package email sends transactional mail through SendGrid or Mailgun.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"boardapi/internal/config"
)

var (
	ErrNotConfigured = errors.New("email provider not configured")
	ErrNoRecipients  = errors.New("email has no recipients")
)

// Message is a rendered email ready to send.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks a provider from cfg.Provider. "none" or an empty provider logs
// messages instead of sending them.
func New(cfg config.EmailConfig, log *logrus.Logger) (Sender, error) {
	switch cfg.Provider {
	case "", "none":
		return NewLogSender(log), nil
	case "sendgrid":
		return NewSendGrid(cfg)
	case "mailgun":
		return NewMailgun(cfg, &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
	default:
		return nil, fmt.Errorf("unsupported email provider: %q", cfg.Provider)
	}
}

// logSender writes messages to the log. Used when no provider is configured.
type logSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) Sender {
	return &logSender{log: log}
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	s.log.WithFields(logrus.Fields{
		"component": "email",
		"event":     "email_skipped",
		"to":        msg.To,
		"subject":   msg.Subject,
	}).Info("email provider disabled, message not sent")
	return nil
}
