// Package storage abstracts the object store that vendor documents are
// uploaded to. The application only needs "bytes in, public URL out".
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(path string, data []byte) (string, error)
}

// LocalUploader writes files under a local directory served at baseURL/uploads.
type LocalUploader struct {
	Dir     string
	BaseURL string
}

// NewLocalUploader creates a LocalUploader rooted at dir.
func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{Dir: dir, BaseURL: baseURL}
}

// Upload writes the file and returns the URL it is served from.
func (u *LocalUploader) Upload(path string, data []byte) (string, error) {
	full := filepath.Join(u.Dir, filepath.Clean("/"+path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return u.BaseURL + "/uploads/" + path, nil
}
