package port

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by Get when no snapshot exists for a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is durable local key-value storage for serialized cache
// snapshots. Values are overwritten wholesale on every persisted change and
// read once at startup to seed a cache before its first live fetch resolves.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
