package ports

import "context"

// StateStore persists the build cache state between runs.
// Keys are small fixed names (see domain.SpecsStateKey); values are opaque bytes.
type StateStore interface {
	// Save overwrites the value stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Load retrieves the value stored under key.
	// Returns domain.ErrStateNotFound if the key was never saved.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Reset drops every key of this store. It backs "cache disabled" runs.
	Reset(ctx context.Context) error
}
