package localstorage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage implements ports.Workspace for the local filesystem.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

// Init creates the capture directory.
func (s *LocalStorage) Init() error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create capture directory %s: %w", s.BaseDir, err)
	}
	return nil
}

// Path returns the path for a capture file.
func (s *LocalStorage) Path(name string) string {
	return filepath.Join(s.BaseDir, filepath.Base(name))
}

// Open opens a captured file for reading.
func (s *LocalStorage) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open capture %s: %w", name, err)
	}
	return f, nil
}

// Remove deletes a captured file. A file that was never written is ignored.
func (s *LocalStorage) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to remove capture %s: %w", name, err)
}
