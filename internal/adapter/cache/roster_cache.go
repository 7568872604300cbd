package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/directory"
)

// rosterKey stores the serialized full roster. The directory is read
// only from this service's point of view, so the cache is refreshed by
// TTL expiry rather than by write invalidation.
const rosterKey = "directory:roster"

// RosterCache defines the interface for caching the full user roster
// served to locally-filtering clients.
type RosterCache interface {
	// Get retrieves the cached roster. Returns nil on a cache miss.
	Get(ctx context.Context) ([]domain.UserRecord, error)

	// Set stores the roster with the configured TTL.
	Set(ctx context.Context, users []domain.UserRecord) error

	// Invalidate drops the cached roster.
	Invalidate(ctx context.Context) error
}

// RedisRosterCache implements RosterCache using Redis as the backing store.
type RedisRosterCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisRosterCache creates a new Redis-backed roster cache.
func NewRedisRosterCache(client *redis.Client, ttl time.Duration, log *zap.Logger) RosterCache {
	return &RedisRosterCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Get retrieves the roster from Redis.
func (c *RedisRosterCache) Get(ctx context.Context) ([]domain.UserRecord, error) {
	data, err := c.client.Get(ctx, rosterKey).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("roster cache miss")
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get roster from cache", zap.Error(err))
		return nil, err
	}

	var users []domain.UserRecord
	if err := json.Unmarshal(data, &users); err != nil {
		c.log.Error("failed to unmarshal cached roster", zap.Error(err))
		return nil, err
	}

	c.log.Debug("roster cache hit", zap.Int("count", len(users)))
	return users, nil
}

// Set stores the roster in Redis with TTL. An empty roster is cached
// too, so an empty directory does not hammer the database.
func (c *RedisRosterCache) Set(ctx context.Context, users []domain.UserRecord) error {
	data, err := json.Marshal(users)
	if err != nil {
		c.log.Error("failed to marshal roster for cache", zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, rosterKey, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set roster cache", zap.Error(err))
		return err
	}

	c.log.Debug("cached roster", zap.Int("count", len(users)), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate drops the cached roster.
func (c *RedisRosterCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, rosterKey).Err(); err != nil {
		c.log.Error("failed to invalidate roster cache", zap.Error(err))
		return err
	}

	c.log.Debug("roster cache invalidated")
	return nil
}
