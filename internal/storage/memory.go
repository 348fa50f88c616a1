package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV used by tests. It counts writes per key
// so tests can assert that no-op store operations issue no persistence.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string]string
	writes map[string]int
}

// NewMemoryKV creates an empty in-memory provider.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:   make(map[string]string),
		writes: make(map[string]int),
	}
}

// Get returns the stored value for key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set replaces the value for key.
func (m *MemoryKV) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes[key]++
	return nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error { return nil }

// WriteCount returns how many times key has been written.
func (m *MemoryKV) WriteCount(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}

// Seed sets a raw value without counting it as a store write.
func (m *MemoryKV) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
