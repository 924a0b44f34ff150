package service

import (
	"sync"
	"time"
)

// ResultCache keeps recent delta-sync results keyed by (instance, requested
// start time). The incremental export endpoint is rate limited to 10
// requests a minute, so a dashboard refreshing in quick succession gets the
// cached result instead of a fresh fetch.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	instanceID string
	startTime  int64
}

type cacheEntry struct {
	result    SyncResult
	expiresAt time.Time
}

func NewResultCache(ttl time.Duration, now func() time.Time) *ResultCache {
	if now == nil {
		now = time.Now
	}
	return &ResultCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *ResultCache) Get(instanceID string, startTime int64) (SyncResult, bool) {
	if c == nil || c.ttl <= 0 {
		return SyncResult{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[cacheKey{instanceID: instanceID, startTime: startTime}]
	if !ok || c.now().After(entry.expiresAt) {
		return SyncResult{}, false
	}
	return entry.result, true
}

func (c *ResultCache) Set(instanceID string, startTime int64, result SyncResult) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.entries[cacheKey{instanceID: instanceID, startTime: startTime}] = cacheEntry{
		result:    result,
		expiresAt: now.Add(c.ttl),
	}
}

// Invalidate drops every cached result for one instance, used after a
// staff sync changes the user rows a cached result was built against.
func (c *ResultCache) Invalidate(instanceID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.instanceID == instanceID {
			delete(c.entries, key)
		}
	}
}
