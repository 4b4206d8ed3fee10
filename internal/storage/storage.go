// Package storage holds the uploaded document files. Records in the
// repository reference files by key; the bytes live behind Storage.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrObjectNotFound is returned by Get when no file is stored under the key.
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrInvalidKey is returned for keys that are empty or try to leave the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored file.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is implemented by the local disk and the S3-compatible backends.
type Storage interface {
	// Put stores the content of r under key, replacing any previous content.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens the content stored under key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the content under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh collision-free key that keeps the extension of fileName,
// so stored files stay recognizable when browsing the upload directory or bucket.
func NewKey(fileName string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(fileName, "\\", "/")))
	if len(ext) > 16 || strings.ContainsAny(ext, " \t\r\n") {
		ext = ""
	}
	return uuid.NewString() + ext
}

func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		return ErrInvalidKey
	}
	return nil
}
