package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadStore holds uploaded files on disk for the lifetime of one request.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) *UploadStore {
	return &UploadStore{dir: dir}
}

// Save copies src to a uniquely named file that keeps the original extension
// and returns its path. The caller must Remove it.
func (s *UploadStore) Save(original string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(original))
	storedPath := filepath.Join(s.dir, name)
	out, err := os.Create(storedPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(storedPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(storedPath)
		return "", fmt.Errorf("close file: %w", err)
	}
	return storedPath, nil
}

// Remove deletes a stored upload. Missing files are not an error.
func (s *UploadStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
