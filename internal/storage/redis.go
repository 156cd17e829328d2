package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tastehaven/internal/domain"
)

// snapshotKey is the single record holding the whole catalog.
const snapshotKey = "restaurant_data"

type RedisSnapshotStore struct {
	Client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{Client: client}
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	raw, err := s.Client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, snapshotKey, payload, 0).Err()
}
