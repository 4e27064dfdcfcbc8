package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Durable is the networked primary tier. Values are JSON-serialized text
// with native per-key expiry. Get reports the key's remaining lifetime so the
// fallback tier can mirror the same deadline; ttl <= 0 means the key carries
// no expiry.
type Durable interface {
	Get(ctx context.Context, key string) (value string, ttl time.Duration, ok bool, err error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	FlushAll(ctx context.Context) error
}

// RedisDurable adapts a shared redis client to Durable.
type RedisDurable struct {
	rdb *redis.Client
}

func NewRedisDurable(rdb *redis.Client) *RedisDurable {
	return &RedisDurable{rdb: rdb}
}

func (d *RedisDurable) Get(ctx context.Context, key string) (string, time.Duration, bool, error) {
	pipe := d.rdb.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return "", 0, false, err
	}

	v, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}

	// TTL is -1 for a key without expiry, -2 for a vanished one; both fold
	// into "no known lifetime" here since the value itself was present.
	ttl, err := ttlCmd.Result()
	if err != nil {
		return "", 0, false, err
	}
	return v, ttl, true, nil
}

func (d *RedisDurable) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return d.rdb.SetEx(ctx, key, value, ttl).Err()
}

func (d *RedisDurable) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return d.rdb.Del(ctx, keys...).Err()
}

func (d *RedisDurable) Keys(ctx context.Context, pattern string) ([]string, error) {
	return d.rdb.Keys(ctx, pattern).Result()
}

func (d *RedisDurable) FlushAll(ctx context.Context) error {
	return d.rdb.FlushAll(ctx).Err()
}
