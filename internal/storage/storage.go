// Package storage keeps task attachment blobs in an S3-compatible bucket.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

// PutObjectOptions are optional upload parameters. Size -1 means unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the store reports back after an upload.
type ObjectInfo struct {
	Key  string
	Size int64
	ETag string
}

// Storage is the slice of an object store the attachment flow needs.
// Uploads stream straight through; nothing touches local disk.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete succeeds for keys that do not exist.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL. A non-empty filename is
	// sent back as the Content-Disposition of the download.
	PresignGet(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
	Ping(ctx context.Context) error
}

// AttachmentKey builds attachments/<client>/<task>/<name><ext>. Only the
// extension of the original filename survives, lowercased.
func AttachmentKey(clientID, taskID, name, originalFilename string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(originalFilename, "\\", "/")))
	if len(ext) > 16 || strings.ContainsAny(ext, " /") {
		ext = ""
	}
	return path.Join("attachments", clientID, taskID, name+ext)
}
