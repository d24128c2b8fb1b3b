// Package cache provides Redis read-through caching for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ripple/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Invalidator is the eviction capability exposed to repositories and
// services. Invalidate removes a single key; InvalidateBucket removes every
// key in a bucket. Callers never assume anything finer than bucket-level
// eviction, so the implementation is free to be as coarse as the source
// system was.
type Invalidator interface {
	Invalidate(ctx context.Context, key string)
	InvalidateBucket(ctx context.Context, bucket string)
}

// Cache wraps a Redis client with JSON cache-aside helpers. A nil client
// disables caching entirely: reads fall through to the fetch function and
// invalidations are no-ops.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// New connects to Redis at addr (host:port or redis:// URL) and returns a
// Cache. Connection failures are not fatal: the returned Cache has a nil
// client and the application runs without caching.
func New(addr string, logger *slog.Logger) *Cache {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			logger.Warn("invalid REDIS_URL, continuing without cache", slog.String("addr", addr), slog.String("error", err.Error()))
			return &Cache{logger: logger}
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", slog.String("error", err.Error()))
		return &Cache{logger: logger}
	}

	logger.Info("Redis connected successfully")
	return &Cache{client: client, logger: logger}
}

// NewWithClient wraps an existing Redis client; used by tests (miniredis)
// and by callers that manage the client lifecycle themselves.
func NewWithClient(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// Client returns the underlying Redis client, or nil when caching is disabled.
func (c *Cache) Client() *redis.Client {
	return c.client
}

// Enabled reports whether a Redis backend is available.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first; on miss it calls fetch (which must populate dest),
// then stores the result with ttl. Cache write failures are best-effort.
// Redis read failures also fall through to fetch so a degraded cache never
// takes reads down with it.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := c.GetJSON(ctx, key, dest)
	if err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = c.SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a single key.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}
	c.client.Del(ctx, key)
}

// InvalidateBucket removes every key under "<bucket>:". Eviction is
// deliberately whole-bucket: any write evicts all cached reads of the same
// kind rather than tracking precise dependencies.
func (c *Cache) InvalidateBucket(ctx context.Context, bucket string) {
	if !c.Enabled() {
		return
	}

	pattern := bucket + ":*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			if c.logger != nil {
				c.logger.WarnContext(ctx, "bucket invalidation failed", slog.String("bucket", bucket), slog.String("error", err.Error()))
			}
			return
		}
		if len(keys) > 0 {
			c.client.Del(ctx, keys...)
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
