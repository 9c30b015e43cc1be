package moviedb

import (
	"sync"
	"time"
)

// Cache is the read/write interface in front of idempotent catalogue GETs.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, v []byte)
}

type cacheItem struct {
	raw       []byte
	expiresAt time.Time
}

// TTLCache is an in-memory Cache with per-entry expiry.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	ttl   time.Duration
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TTLCache{
		items: make(map[string]cacheItem),
		ttl:   ttl,
	}
}

func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.mu.Lock()
		if cur, ok2 := c.items[key]; ok2 && time.Now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.raw, true
}

func (c *TTLCache) Set(key string, v []byte) {
	c.mu.Lock()
	c.items[key] = cacheItem{raw: v, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
