package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiration int64
}

// Cache is a small in-process TTL cache used to keep the catalog
// listing off the database between writes.
type Cache struct {
	items map[string]entry
	mu    sync.RWMutex
	ttl   time.Duration
}

var (
	instance *Cache
	once     sync.Once
)

// Init sets up the shared cache with a default TTL.
func Init(defaultTTL time.Duration) *Cache {
	once.Do(func() {
		instance = &Cache{
			items: make(map[string]entry),
			ttl:   defaultTTL,
		}
		go instance.cleanupExpired()
	})
	return instance
}

// Get returns the shared cache, initializing it on first use.
func Get() *Cache {
	if instance == nil {
		return Init(5 * time.Minute)
	}
	return instance
}

// Set stores a value, optionally overriding the default TTL.
func (c *Cache) Set(key string, value interface{}, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	c.items[key] = entry{
		value:      value,
		expiration: time.Now().Add(duration).UnixNano(),
	}
}

// GetValue returns a cached value when present and unexpired.
func (c *Cache) GetValue(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found {
		return nil, false
	}
	if time.Now().UnixNano() > item.expiration {
		return nil, false
	}

	return item.value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteByPrefix removes every key under a prefix. Write handlers use
// this to invalidate listing entries.
func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}

// Size reports the number of entries, including any not yet swept.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now().UnixNano()
		for key, item := range c.items {
			if now > item.expiration {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
