package ports

import "context"

// SessionStore persists serialized session snapshots in named slots.
type SessionStore interface {
	// Save writes data to the slot, replacing any previous snapshot.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the slot contents, or nil if the slot is empty.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying storage.
	Close() error
}
