// Package metadata is the local key/value store backing the persisted session.
package metadata

import "context"

// Repository reads and writes opaque values by key.
//
// Get returns (nil, nil) for a missing key so callers can treat "absent"
// and "empty" the same way.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
