package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestUploadStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewUploadStore(dir)

	path, err := store.Save("Lecture.PDF", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Ext(path) != ".pdf" {
		t.Errorf("unexpected stored path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF" {
		t.Fatalf("stored content mismatch: %q, %v", data, err)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err %v", err)
	}
	if err := store.Remove(path); err != nil {
		t.Errorf("second remove should be a no-op, got %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestUploadStore_SaveFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store := NewUploadStore(dir)

	if _, err := store.Save("notes.txt", failingReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no leftover files, found %d", len(entries))
	}
}
