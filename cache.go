package strloin

import (
	"strloin/store"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache is a threadsafe document cache over a store.Store.
type Cache struct {
	mu          sync.RWMutex
	store       store.Store
	opts        CacheOptions
	hits        int64
	misses      int64
	initialized int32
	closed      int32
}

// CacheOptions configures a Cache.
type CacheOptions struct {
	MaxBytes    int64
	CleanupTime time.Duration
	OnEvicted   func(key string, doc Document)
}

// DefaultCacheOptions returns an 8MB cache swept once a minute.
func DefaultCacheOptions() CacheOptions {
	return CacheOptions{
		MaxBytes:    8 * 1024 * 1024,
		CleanupTime: time.Minute,
	}
}

func NewCache(opts CacheOptions) *Cache {
	return &Cache{
		opts: opts,
	}
}

// ensureInitialized lazily creates the underlying store on first use.
func (c *Cache) ensureInitialized() {
	if atomic.LoadInt32(&c.initialized) == 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized == 0 {
		var onEvicted func(string, store.Value)
		if fn := c.opts.OnEvicted; fn != nil {
			onEvicted = func(key string, v store.Value) {
				if doc, ok := v.(Document); ok {
					fn(key, doc)
				}
			}
		}
		c.store = store.NewStore(store.Options{
			MaxBytes:        c.opts.MaxBytes,
			CleanupInterval: c.opts.CleanupTime,
			OnEvicted:       onEvicted,
		})
		atomic.StoreInt32(&c.initialized, 1)
		logrus.Infof("document cache initialized, max bytes %d", c.opts.MaxBytes)
	}
}

// Add stores doc under key with no expiry.
func (c *Cache) Add(key string, doc Document) {
	c.AddWithExpiration(key, doc, 0)
}

// AddWithExpiration stores doc under key for at most ttl; 0 means no TTL.
func (c *Cache) AddWithExpiration(key string, doc Document, ttl time.Duration) {
	if atomic.LoadInt32(&c.closed) == 1 {
		logrus.Warnf("attempted to add to a closed cache: %s", key)
		return
	}
	if ttl < 0 {
		logrus.Warnf("attempted to add key %s with negative ttl %s", key, ttl)
		return
	}
	c.ensureInitialized()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.store == nil {
		return
	}
	if err := c.store.SetWithExpiration(key, doc, ttl); err != nil {
		logrus.Warnf("failed to add key %s to cache: %v", key, err)
	}
}

// Get returns the cached document, tracking hit/miss metrics.
func (c *Cache) Get(key string) (Document, bool) {
	if atomic.LoadInt32(&c.closed) == 1 || atomic.LoadInt32(&c.initialized) == 0 {
		atomic.AddInt64(&c.misses, 1)
		return Document{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.store == nil {
		atomic.AddInt64(&c.misses, 1)
		return Document{}, false
	}

	v, ok := c.store.Get(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return Document{}, false
	}
	doc, ok := v.(Document)
	if !ok {
		logrus.Warnf("cached value for key %s is %T, not Document", key, v)
		atomic.AddInt64(&c.misses, 1)
		return Document{}, false
	}
	atomic.AddInt64(&c.hits, 1)
	return doc, true
}

func (c *Cache) Delete(key string) bool {
	if atomic.LoadInt32(&c.closed) == 1 || atomic.LoadInt32(&c.initialized) == 0 {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.store == nil {
		return false
	}
	return c.store.Delete(key)
}

// Clear drops every document and resets hit/miss counters.
func (c *Cache) Clear() {
	if atomic.LoadInt32(&c.closed) == 1 || atomic.LoadInt32(&c.initialized) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store != nil {
		c.store.Clear()
	}
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

func (c *Cache) Len() int {
	if atomic.LoadInt32(&c.closed) == 1 || atomic.LoadInt32(&c.initialized) == 0 {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.store == nil {
		return 0
	}
	return c.store.Len()
}

// Close releases the underlying store and freezes the cache.
func (c *Cache) Close() {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store != nil {
		c.store.Close()
		c.store = nil
	}
	atomic.StoreInt32(&c.initialized, 0)
	logrus.Infof("document cache closed, hits:%d, misses:%d", atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses))
}

// Stats exposes cache-level metrics and size.
func (c *Cache) Stats() map[string]interface{} {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	stats := map[string]interface{}{
		"initialized": atomic.LoadInt32(&c.initialized) == 1,
		"closed":      atomic.LoadInt32(&c.closed) == 1,
		"hits":        hits,
		"misses":      misses,
		"hit_rate":    0.0,
	}
	if total := hits + misses; total > 0 {
		stats["hit_rate"] = float64(hits) / float64(total)
	}
	if atomic.LoadInt32(&c.initialized) == 1 {
		c.mu.RLock()
		if c.store != nil {
			stats["size"] = c.store.Len()
			stats["used_bytes"] = c.store.UsedBytes()
		}
		c.mu.RUnlock()
	}
	return stats
}
