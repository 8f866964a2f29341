package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/config"
)

func TestNew(t *testing.T) {
	log := logrus.New()

	tests := []struct {
		name    string
		cfg     config.EmailConfig
		wantErr bool
	}{
		{name: "none", cfg: config.EmailConfig{Provider: "none"}},
		{name: "empty", cfg: config.EmailConfig{}},
		{name: "sendgrid", cfg: config.EmailConfig{Provider: "sendgrid", APIKey: "k", FromEmail: "a@b.c"}},
		{name: "sendgrid missing key", cfg: config.EmailConfig{Provider: "sendgrid", FromEmail: "a@b.c"}, wantErr: true},
		{name: "mailgun", cfg: config.EmailConfig{Provider: "mailgun", APIKey: "k", Domain: "mg.example.com", FromEmail: "a@b.c"}},
		{name: "mailgun missing domain", cfg: config.EmailConfig{Provider: "mailgun", APIKey: "k", FromEmail: "a@b.c"}, wantErr: true},
		{name: "unknown", cfg: config.EmailConfig{Provider: "pigeon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg, log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestBuildSendGridMail(t *testing.T) {
	msg := Message{To: []string{"x@example.com", "y@example.com"}, Subject: "Hello", Text: "plain", HTML: "<p>html</p>"}
	m := buildSendGridMail(mail.NewEmail("Board", "noreply@example.com"), msg)

	assert.Equal(t, "Hello", m.Subject)
	assert.Equal(t, "noreply@example.com", m.From.Address)
	require.Len(t, m.Personalizations, 1)
	require.Len(t, m.Personalizations[0].To, 2)
	assert.Equal(t, "y@example.com", m.Personalizations[0].To[1].Address)
	require.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "<p>html</p>", m.Content[1].Value)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	s := NewLogSender(log)
	require.NoError(t, s.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "Hi"}))
	assert.Contains(t, buf.String(), `"event":"email_skipped"`)

	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipients)
}

func TestTemplates(t *testing.T) {
	msg, err := TeamMemberAdded("a@b.c", "Ana", "Platform", "lead")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.c"}, msg.To)
	assert.Equal(t, "You were added to Platform", msg.Subject)
	assert.Contains(t, msg.Text, `lead of the team "Platform"`)

	msg, err = TicketReplied("a@b.c", "Login broken", "<script>x</script>")
	require.NoError(t, err)
	assert.Equal(t, "[Support] Re: Login broken", msg.Subject)
	assert.Contains(t, msg.Text, "<script>x</script>")
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestFormatFrom(t *testing.T) {
	assert.Equal(t, "Board <a@b.c>", formatFrom("Board", "a@b.c"))
	assert.Equal(t, "a@b.c", formatFrom("", "a@b.c"))
}
