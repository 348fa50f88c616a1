package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV implements KV with one file per key inside a data directory.
type FileKV struct {
	mu      sync.RWMutex
	dataDir string
}

// NewFileKV creates a file-based provider rooted at dataDir, creating
// the directory if needed.
func NewFileKV(dataDir string) (*FileKV, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}
	return &FileKV{dataDir: dataDir}, nil
}

func (f *FileKV) filePath(key string) string {
	return filepath.Join(f.dataDir, key+".json")
}

// Get reads the file for key; a missing file means the key is absent.
func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set overwrites the file for key.
func (f *FileKV) Set(_ context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.filePath(key), []byte(value), 0o660); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file provider.
func (f *FileKV) Close() error { return nil }
