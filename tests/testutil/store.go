package testutil

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"questline/internal/storage"
	"questline/internal/store"
)

// NewTestStore creates a loaded store backed by an in-memory key-value
// provider. The provider is returned alongside the store so tests can
// inspect persisted writes.
func NewTestStore(t *testing.T) (*store.Store, *storage.MemoryKV) {
	t.Helper()

	kv := storage.NewMemoryKV()
	s := store.New(kv, zerolog.Nop())
	s.Load(context.Background())

	return s, kv
}

// NewSQLiteTestStore creates a loaded store backed by an in-memory
// SQLite database, closed when the test completes.
func NewSQLiteTestStore(t *testing.T) *store.Store {
	t.Helper()

	kv, err := storage.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}

	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("closing test storage: %v", err)
		}
	})

	s := store.New(kv, zerolog.Nop())
	s.Load(context.Background())

	return s
}
