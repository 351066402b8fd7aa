package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// KVStore implements ports.KVStore on Redis strings. Keys never expire.
type KVStore struct {
	client *goredis.Client
	prefix string
}

// NewKVStore creates a Redis-backed key-value store.
func NewKVStore(client *goredis.Client) *KVStore {
	return &KVStore{client: client, prefix: "shadowpay:kv:"}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis kv get: %w", err)
	}
	return v, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis kv set: %w", err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis kv del: %w", err)
	}
	return nil
}
