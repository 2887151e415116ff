package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/craftshop/backend/internal/application/resolver"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisSearchCache implements resolver.SearchCache using Redis
// This is suitable for distributed deployments where multiple instances
// serve the same catalog
type RedisSearchCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

const defaultSearchTTL = 60 * time.Second

// NewRedisSearchCache creates a new Redis-based search cache
func NewRedisSearchCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisSearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSearchCacheWithClient(client, "", ttl, logger), nil
}

// NewRedisSearchCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSearchCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *RedisSearchCache {
	if keyPrefix == "" {
		keyPrefix = "resolver:search:"
	}
	if ttl == 0 {
		ttl = defaultSearchTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSearchCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the cached candidate list for a normalized query. Redis errors
// are logged and reported as a miss so searches fall through to the catalogs.
func (c *RedisSearchCache) Get(ctx context.Context, query string) ([]resolver.Candidate, bool) {
	data, err := c.client.Get(ctx, c.keyPrefix+query).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("search cache get failed", zap.String("query", query), zap.Error(err))
		}
		return nil, false
	}

	var candidates []resolver.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		c.logger.Warn("search cache entry corrupt, dropping", zap.String("query", query), zap.Error(err))
		c.client.Del(ctx, c.keyPrefix+query)
		return nil, false
	}
	return candidates, true
}

// Set stores the candidate list for a normalized query with the cache TTL
func (c *RedisSearchCache) Set(ctx context.Context, query string, candidates []resolver.Candidate) {
	data, err := json.Marshal(candidates)
	if err != nil {
		c.logger.Warn("search cache marshal failed", zap.String("query", query), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.keyPrefix+query, data, c.ttl).Err(); err != nil {
		c.logger.Warn("search cache set failed", zap.String("query", query), zap.Error(err))
	}
}

// Invalidate drops every cached search result. Called after catalog writes
// such as minting a manual component.
func (c *RedisSearchCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("search cache scan failed during invalidation", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("search cache invalidation failed", zap.Error(err))
	}
}

// Close closes the underlying Redis client
func (c *RedisSearchCache) Close() error {
	return c.client.Close()
}

// Ensure RedisSearchCache implements the cache interface
var _ resolver.SearchCache = (*RedisSearchCache)(nil)
