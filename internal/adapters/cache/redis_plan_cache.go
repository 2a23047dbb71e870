package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"truck-route-optimizer/internal/adapters/codec"
	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/platform/obs"
)

// RedisPlanCache keeps finished runs in Redis as JSON with a TTL.
type RedisPlanCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPlanCache connects using a redis:// URL.
func NewRedisPlanCache(url string, ttl time.Duration) (*RedisPlanCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan cache: parse url: %w", err)
	}
	return NewRedisPlanCacheFromClient(redis.NewClient(opt), ttl), nil
}

func NewRedisPlanCacheFromClient(rdb *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb, ttl: ttl}
}

func (c *RedisPlanCache) GetPlan(ctx context.Context, key string) (_ *domain.PlanRun, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.redis.GetPlan")(&err)

	raw, err := c.rdb.Get(ctx, c.keyName(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis plan cache: get %s: %w", key, err)
	}

	run, err := codec.DecodeRun(raw)
	if err != nil {
		return nil, false, fmt.Errorf("redis plan cache: %w", err)
	}
	return run, true, nil
}

func (c *RedisPlanCache) PutPlan(ctx context.Context, key string, run *domain.PlanRun) error {
	raw, err := codec.EncodeRun(run)
	if err != nil {
		return fmt.Errorf("redis plan cache: %w", err)
	}
	if err := c.rdb.Set(ctx, c.keyName(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis plan cache: set %s: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) Close() error { return c.rdb.Close() }

func (c *RedisPlanCache) keyName(key string) string { return "plan:" + key }
