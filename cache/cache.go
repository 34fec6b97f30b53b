// Package cache is a concurrent TTL cache with a capacity bound.
//
// When an insert pushes the cache over capacity, an arbitrary batch of
// entries is evicted. This is not LRU: sync.Map iteration order decides
// which entries go. Expired entries are dropped on read and by Sweep.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Observer receives cache events. metrics.Metrics implements it.
type Observer interface {
	CacheHit()
	CacheMiss()
	CacheEvicted(n int)
	CacheExpired(n int)
}

type nopObserver struct{}

func (nopObserver) CacheHit()        {}
func (nopObserver) CacheMiss()       {}
func (nopObserver) CacheEvicted(int) {}
func (nopObserver) CacheExpired(int) {}

// Options configures a Cache
type Options struct {
	TTL        time.Duration
	Capacity   int
	EvictBatch int
	Observer   Observer
	// Now replaces time.Now in tests
	Now func() time.Time
}

// Entry is a cached value with its key and insertion time
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
}

// Cache maps keys to values of type V. It is safe for concurrent use
// without external locking.
type Cache[V any] struct {
	entries sync.Map // string -> *Entry[V]
	size    atomic.Int64

	ttl        time.Duration
	capacity   int
	evictBatch int
	obs        Observer
	now        func() time.Time
}

// New creates a cache. A zero TTL never expires entries; a zero capacity
// is unbounded.
func New[V any](opts Options) *Cache[V] {
	c := &Cache[V]{
		ttl:        opts.TTL,
		capacity:   opts.Capacity,
		evictBatch: opts.EvictBatch,
		obs:        opts.Observer,
		now:        opts.Now,
	}
	if c.obs == nil {
		c.obs = nopObserver{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.evictBatch <= 0 {
		c.evictBatch = 1
	}
	return c
}

// Get returns the value for key if present and not expired
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := c.entries.Load(key)
	if !ok {
		c.obs.CacheMiss()
		return zero, false
	}
	e := v.(*Entry[V])
	if c.expired(e) {
		if c.entries.CompareAndDelete(key, e) {
			c.size.Add(-1)
			c.obs.CacheExpired(1)
		}
		c.obs.CacheMiss()
		return zero, false
	}
	c.obs.CacheHit()
	return e.Value, true
}

// Put stores value under key, replacing any previous value, and evicts a
// batch of entries if the cache is now over capacity
func (c *Cache[V]) Put(key string, value V) {
	e := &Entry[V]{Key: key, Value: value, CreatedAt: c.now()}
	if _, loaded := c.entries.Swap(key, e); !loaded {
		c.size.Add(1)
	}
	if c.capacity > 0 && c.size.Load() > int64(c.capacity) {
		c.evict()
	}
}

// Delete removes key
func (c *Cache[V]) Delete(key string) {
	if _, loaded := c.entries.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

// Len is the number of stored entries, including expired ones not yet
// swept
func (c *Cache[V]) Len() int {
	return int(c.size.Load())
}

// Clear removes every entry
func (c *Cache[V]) Clear() {
	c.entries.Range(func(k, _ any) bool {
		c.Delete(k.(string))
		return true
	})
}

// Sweep removes expired entries and returns how many it removed
func (c *Cache[V]) Sweep() int {
	if c.ttl <= 0 {
		return 0
	}
	n := 0
	c.entries.Range(func(k, v any) bool {
		if e := v.(*Entry[V]); c.expired(e) && c.entries.CompareAndDelete(k, e) {
			c.size.Add(-1)
			n++
		}
		return true
	})
	if n > 0 {
		c.obs.CacheExpired(n)
	}
	return n
}

// StartJanitor sweeps expired entries every interval until ctx is done.
// The returned channel is closed when the janitor goroutine has exited.
func (c *Cache[V]) StartJanitor(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
	return done
}

func (c *Cache[V]) expired(e *Entry[V]) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) >= c.ttl
}

func (c *Cache[V]) evict() {
	n := 0
	c.entries.Range(func(k, v any) bool {
		if c.entries.CompareAndDelete(k, v) {
			c.size.Add(-1)
			n++
		}
		return n < c.evictBatch
	})
	if n > 0 {
		c.obs.CacheEvicted(n)
	}
}
