// Package store holds the byte-bounded document store behind a corpus cache.
package store

import "time"

// Value reports its memory footprint for eviction accounting.
type Value interface {
	Len() int
}

// Store is the cache backend interface used by Cache.
type Store interface {
	Get(key string) (Value, bool)
	Set(key string, value Value) error
	// SetWithExpiration stores value for at most expiration; 0 means no TTL.
	SetWithExpiration(key string, value Value, expiration time.Duration) error
	Delete(key string) bool
	Clear()
	Len() int
	// UsedBytes is the summed size of keys and values currently held.
	UsedBytes() int64
	Close()
}

// Options configures a Store.
type Options struct {
	MaxBytes        int64 // 0 disables size-based eviction
	CleanupInterval time.Duration
	OnEvicted       func(key string, value Value)
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		MaxBytes:        8 << 20,
		CleanupInterval: time.Minute,
	}
}

// NewStore builds an LRU store.
func NewStore(options Options) Store {
	return newLRUStore(options)
}
