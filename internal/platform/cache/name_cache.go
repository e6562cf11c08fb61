package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NameCache is a Redis-backed cache of current display names keyed by external
// id, used when enriching transaction history. A nil *NameCache is valid and
// behaves as a cache that always misses, so callers need no branching when
// Redis is not configured.
type NameCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNameCache connects to Redis using a redis:// URL. An empty URL returns a
// nil cache, which disables caching.
func NewNameCache(redisURL string, ttl time.Duration) (*NameCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &NameCache{client: client, ttl: ttl}, nil
}

// Close releases the Redis connection.
func (c *NameCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func nameKey(externalID int64) string {
	return fmt.Sprintf("name:%d", externalID)
}

// GetNames fetches cached names for the given external ids. It returns the
// hits and the ids that were not cached. Redis errors degrade to a full miss.
func (c *NameCache) GetNames(ctx context.Context, externalIDs []int64) (map[int64]string, []int64) {
	if c == nil || len(externalIDs) == 0 {
		return map[int64]string{}, externalIDs
	}

	keys := make([]string, len(externalIDs))
	for i, id := range externalIDs {
		keys[i] = nameKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		slog.Warn("Name cache read failed", slog.String("error", err.Error()))
		return map[int64]string{}, externalIDs
	}

	hits := make(map[int64]string, len(externalIDs))
	var misses []int64
	for i, v := range values {
		name, ok := v.(string)
		if !ok || name == "" {
			misses = append(misses, externalIDs[i])
			continue
		}
		hits[externalIDs[i]] = name
	}
	return hits, misses
}

// SetNames stores names for the given external ids. A cache write failure is
// logged, never surfaced.
func (c *NameCache) SetNames(ctx context.Context, names map[int64]string) {
	if c == nil || len(names) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for id, name := range names {
		pipe.Set(ctx, nameKey(id), name, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("Name cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached name for one external id, called after a
// username change.
func (c *NameCache) Invalidate(ctx context.Context, externalID int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, nameKey(externalID)).Err(); err != nil {
		slog.Warn("Name cache invalidation failed", slog.Int64("external_id", externalID), slog.String("error", err.Error()))
	}
}
