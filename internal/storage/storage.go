// Package storage defines the key-value backend contract the session store
// is layered on, plus an in-memory implementation. Persistent
// implementations live in the sqlitekv and boltkv subpackages.
package storage

import "context"

// Backend is a flat key-value space with string keys and opaque byte values.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent.
//   - Set overwrites an existing value.
//   - Delete of an absent key is a no-op, not an error.
//   - Keys returns all stored keys in unspecified order.
//
// The session store is the sole mutator of a Backend; callers never touch
// raw keys directly.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
