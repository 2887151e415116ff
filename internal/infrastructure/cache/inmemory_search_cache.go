package cache

import (
	"context"
	"sync"
	"time"

	"github.com/craftshop/backend/internal/application/resolver"
)

// searchEntry represents a cached candidate list with expiration
type searchEntry struct {
	candidates []resolver.Candidate
	expiresAt  time.Time
}

// InMemorySearchCache implements resolver.SearchCache using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySearchCache struct {
	mu        sync.RWMutex
	entries   map[string]searchEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySearchCache creates a new in-memory search cache
// It starts a background goroutine to clean up expired entries
func NewInMemorySearchCache(ttl time.Duration) *InMemorySearchCache {
	if ttl == 0 {
		ttl = defaultSearchTTL
	}
	c := &InMemorySearchCache{
		entries:  make(map[string]searchEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached candidate list for a normalized query
func (c *InMemorySearchCache) Get(ctx context.Context, query string) ([]resolver.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[query]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.candidates, true
}

// Set stores the candidate list for a normalized query
func (c *InMemorySearchCache) Set(ctx context.Context, query string, candidates []resolver.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[query] = searchEntry{
		candidates: candidates,
		expiresAt:  time.Now().Add(c.ttl),
	}
}

// Invalidate drops every cached search result
func (c *InMemorySearchCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]searchEntry)
}

// cleanupLoop periodically removes expired entries to bound memory use
func (c *InMemorySearchCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *InMemorySearchCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for query, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, query)
		}
	}
}

// Close stops the cleanup goroutine
func (c *InMemorySearchCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Ensure InMemorySearchCache implements the cache interface
var _ resolver.SearchCache = (*InMemorySearchCache)(nil)
