package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/config"
)

func TestAttachmentKey(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"keeps extension", "report.PDF", "attachments/c1/t1/id.pdf"},
		{"no extension", "Makefile", "attachments/c1/t1/id"},
		{"strips directories", "../../etc/passwd.txt", "attachments/c1/t1/id.txt"},
		{"windows path", `C:\docs\plan.docx`, "attachments/c1/t1/id.docx"},
		{"absurd extension", "a.thisisaverylongextension", "attachments/c1/t1/id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachmentKey("c1", "t1", "id", tt.filename))
		})
	}
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		msg  string
	}{
		{"nothing set", config.MinIOConfig{}, "endpoint, credentials, bucket required"},
		{"missing secret", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", Bucket: "b"}, "credentials required"},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, "bucket required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMisconfigured)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Nil(t, s)
		})
	}
}

func TestDownloadParams(t *testing.T) {
	assert.Empty(t, downloadParams(""))
	assert.Equal(t, `attachment; filename="Q3 plan.pdf"`, downloadParams("Q3 plan.pdf").Get("response-content-disposition"))
	assert.Equal(t, "attachment; filename*=utf-8''r%C3%A9sum%C3%A9.txt", downloadParams("résumé.txt").Get("response-content-disposition"))
}
