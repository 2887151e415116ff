package cache

import (
	"fmt"
	"time"

	"github.com/craftshop/backend/internal/application/resolver"
	"github.com/craftshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SearchCacheFactory creates search caches based on configuration
type SearchCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SearchCacheFactoryOption is a functional option for configuring the factory
type SearchCacheFactoryOption func(*SearchCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SearchCacheFactoryOption {
	return func(f *SearchCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the cache entry lifetime
func WithTTL(ttl time.Duration) SearchCacheFactoryOption {
	return func(f *SearchCacheFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) SearchCacheFactoryOption {
	return func(f *SearchCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSearchCacheFactory creates a new factory
func NewSearchCacheFactory(cfg config.RedisConfig, opts ...SearchCacheFactoryOption) *SearchCacheFactory {
	f := &SearchCacheFactory{
		redisConfig:           cfg,
		ttl:                   defaultSearchTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based search cache
func (f *SearchCacheFactory) CreateRedisCache() (resolver.SearchCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	c, err := NewRedisSearchCache(redisCfg, f.ttl, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis search cache: %w", err)
	}

	return c, nil
}

// CreateInMemoryCache creates an in-memory search cache
// Suitable for single-instance deployments and testing
func (f *SearchCacheFactory) CreateInMemoryCache() resolver.SearchCache {
	return NewInMemorySearchCache(f.ttl)
}

// CreateCache creates a search cache based on whether Redis is available.
// It tries Redis first and falls back to in-memory when allowed; search
// results are a pure performance cache, so a per-instance cache is safe.
func (f *SearchCacheFactory) CreateCache() (resolver.SearchCache, error) {
	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis search cache")
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for search cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory search cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
