package keyvalue

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore anahtarları "<namespace>:<key>" altında, süresiz tutar.
type RedisStore struct {
	store     cmdable
	namespace string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{store: client, namespace: namespace}
}

func (s *RedisStore) Key(key string) string {
	if s.namespace == "" {
		return key
	}
	return strings.Join([]string{s.namespace, key}, ":")
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.store.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.Key(key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.store.Del(ctx, s.Key(key)).Err()
}
