// ABOUTME: In-memory result cache with TTL-based expiration
// ABOUTME: Thread-safe cache using sync.Map, content-hash keys and singleflight computation

package cache

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache memoizes computed results for a fixed TTL.
type Cache struct {
	store   sync.Map
	ttl     time.Duration
	sfGroup singleflight.Group
	stop    chan struct{}
	once    sync.Once

	// OnLookup, when set, is called with "hit" or "miss" for every GetOrCompute.
	OnLookup func(result string)
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Key derives a cache key from a prefix and the content of v. Equal inputs
// produce equal keys regardless of pointer identity.
func Key(prefix string, v interface{}) (string, error) {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash cache key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", prefix, h), nil
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache) Set(key string, value interface{}) {
	e := entry{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.store.Store(key, e)
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

// GetOrCompute returns the cached value for key, or runs compute once for all
// concurrent callers and caches its result. Errors are not cached. The bool
// reports whether the value came from the cache.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, bool, error) {
	if val, ok := c.Get(key); ok {
		c.record("hit")
		return val, true, nil
	}
	c.record("miss")

	val, err, _ := c.sfGroup.Do(key, func() (interface{}, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val, false, nil
}

func (c *Cache) record(result string) {
	if c.OnLookup != nil {
		c.OnLookup(result)
	}
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val interface{}) bool {
				e := val.(entry)
				if now.After(e.expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
