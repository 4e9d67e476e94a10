// Package session implements the persistent session store: a durable
// key-value table holding the serialized current-user record across
// process restarts.
package session

import "context"

// Well-known keys in the store. KeyUser holds the JSON-serialized current
// user; KeySavedAt holds the RFC3339 time of the last user write.
const (
	KeyUser    = "user"
	KeySavedAt = "saved_at"
)

// Repository is a single-table key-value store. Get returns (nil, nil)
// when the key is absent. Last write wins; there is no versioning.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
