package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/sebas-aldana/brm-client/internal/port"
)

const snapshotKeyPrefix = "snapshot:"

// RedisSnapshotStore keeps serialized cache snapshots in Redis, one value per
// cache name, overwritten wholesale on every persisted change.
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func (r *RedisSnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *RedisSnapshotStore) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, snapshotKeyPrefix+key, value, 0).Err()
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, snapshotKeyPrefix+key).Err()
}
