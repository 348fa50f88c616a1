// Package storage provides the key-value persistence providers backing
// the quest store. Each collection is stored as one serialized value
// under one fixed key; providers never interpret the payload.
package storage

import "context"

// KV is the storage contract consumed by the quest store: get a
// serialized value by key (absent is not an error) and overwrite a
// value wholesale.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value for key.
	Set(ctx context.Context, key string, value string) error

	// Close releases any underlying resources.
	Close() error
}
