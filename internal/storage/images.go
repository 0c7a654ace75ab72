package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedFormat is returned for uploads with a non-image extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Store keeps uploaded product images in a single directory. Filenames are
// generated, so a stored name never collides with an existing file.
type Store struct {
	baseDir string
}

// NewStore creates the base directory if needed.
func NewStore(baseDir string) (*Store, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{baseDir: abs}, nil
}

// BaseDir returns the absolute upload directory, for static serving.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Save writes the upload under a generated unique name and returns that
// name. The extension of originalName must be a known image format.
func (s *Store) Save(originalName string, contents io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", ErrUnsupportedFormat
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(dst, contents); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. Callers treat failures as non-fatal: the
// row change that orphaned the file has already been committed.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	return os.Remove(s.Path(name))
}

// Path returns the filesystem path for a stored name. The name is reduced
// to its base so a crafted value cannot escape the upload dir.
func (s *Store) Path(name string) string {
	return filepath.Join(s.baseDir, filepath.Base(name))
}
