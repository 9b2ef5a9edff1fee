package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	scanBatch = 200

	// generationKeyPrefix sits outside every data prefix so a SCAN+DEL
	// invalidation never removes the counter it just bumped.
	generationKeyPrefix = "cachegen:"
)

// RedisStore shares the list cache between API replicas.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisStore) Generation(ctx context.Context, prefix string) (int64, error) {
	n, err := s.rdb.Get(ctx, generationKeyPrefix+prefix).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Invalidate bumps the prefix generation, then removes every key under
// prefix, walking the keyspace with SCAN.
func (s *RedisStore) Invalidate(ctx context.Context, prefix string) error {
	if err := s.rdb.Incr(ctx, generationKeyPrefix+prefix).Err(); err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
