// Package storage provides the local key/value persistence used for the
// login session and the diagnostic network log. It is the Go analog of the
// mini-program's storage API: small JSON blobs addressed by string keys.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a small persistent key/value store. Values are JSON-serialized.
type Store interface {
	// Get unmarshals the value for key into v. The bool reports whether the
	// key was present.
	Get(key string, v any) (bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(key string, v any) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// FileStore persists each key as one JSON file under a directory,
// defaulting to ~/.cache/fanban.
type FileStore struct {
	dir string
}

// NewFileStore creates the default store directory if needed.
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewFileStoreAt(filepath.Join(homeDir, ".cache", "fanban"))
}

// NewFileStoreAt creates a store rooted at dir, creating it if needed.
func NewFileStoreAt(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

func (s *FileStore) Set(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	// Write-to-temp then rename so a crash mid-write cannot leave a
	// truncated value behind.
	target := s.path(key)
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
