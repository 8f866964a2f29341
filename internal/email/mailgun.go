package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mailgun/mailgun-go/v4"

	"boardapi/internal/config"
)

type mailgunSender struct {
	mg   *mailgun.MailgunImpl
	from string
}

// NewMailgun builds a Mailgun sender. httpClient may carry a tracing transport.
func NewMailgun(cfg config.EmailConfig, httpClient *http.Client) (Sender, error) {
	if cfg.APIKey == "" || cfg.Domain == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("mailgun: %w", ErrNotConfigured)
	}
	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.APIBase != "" {
		mg.SetAPIBase(cfg.APIBase)
	}
	if httpClient != nil {
		mg.SetClient(httpClient)
	}
	return &mailgunSender{mg: mg, from: formatFrom(cfg.FromName, cfg.FromEmail)}, nil
}

func (s *mailgunSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m := s.mg.NewMessage(s.from, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		m.SetHTML(msg.HTML)
	}
	if _, _, err := s.mg.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

func formatFrom(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}
