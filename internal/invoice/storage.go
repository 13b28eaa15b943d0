package invoice

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage defines the interface for archiving source documents.
type Storage interface {
	// Save archives a document and returns the stored filename
	Save(filename string, data []byte) (string, error)

	// Get retrieves an archived document
	Get(path string) ([]byte, error)

	// Delete removes an archived document
	Delete(path string) error
}

// LocalStorage implements the Storage interface on the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance, creating the archive
// directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save archives a document under the base path.
func (l *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(l.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get retrieves an archived document.
func (l *LocalStorage) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes an archived document.
func (l *LocalStorage) Delete(path string) error {
	if err := os.Remove(filepath.Join(l.basePath, path)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
