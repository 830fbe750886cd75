// Package kv defines the persistent key-value store interface.
//
// The console keeps a small set of durable entries (auth token, serialized
// user profile, language preference) that must survive restarts. The store is
// treated as opaque: values are byte slices, keys are flat strings.
package kv

import "context"

// Well-known keys persisted by the console.
const (
	KeyToken    = "console:token"
	KeyUser     = "console:user"
	KeyLanguage = "console:language"
)

// Store defines the interface for persistent key-value operations.
type Store interface {
	// Get retrieves a value by key. Returns nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under the given key. Entries do not expire.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key from the store.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping checks if the store connection is alive.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
