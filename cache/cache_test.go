package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type countingObserver struct {
	hits, misses, evicted, expired atomic.Int64
}

func (o *countingObserver) CacheHit()          { o.hits.Add(1) }
func (o *countingObserver) CacheMiss()         { o.misses.Add(1) }
func (o *countingObserver) CacheEvicted(n int) { o.evicted.Add(int64(n)) }
func (o *countingObserver) CacheExpired(n int) { o.expired.Add(int64(n)) }

func TestGetPut(t *testing.T) {
	obs := &countingObserver{}
	c := New[string](Options{TTL: time.Minute, Observer: obs})

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", "1")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	c.Put("a", "2")
	v, _ = c.Get("a")
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, int64(2), obs.hits.Load())
	assert.Equal(t, int64(1), obs.misses.Load())
}

func TestExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	obs := &countingObserver{}
	c := New[int](Options{TTL: 5 * time.Minute, Observer: obs, Now: clock.Now})

	c.Put("a", 1)
	clock.Advance(4 * time.Minute)
	_, ok := c.Get("a")
	assert.True(t, ok)

	clock.Advance(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(1), obs.expired.Load())
}

func TestSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int](Options{TTL: time.Minute, Now: clock.Now})

	c.Put("old1", 1)
	c.Put("old2", 2)
	clock.Advance(2 * time.Minute)
	c.Put("new", 3)

	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestCapacityEvictsABatch(t *testing.T) {
	obs := &countingObserver{}
	c := New[int](Options{Capacity: 10, EvictBatch: 4, Observer: obs})

	for i := 0; i < 10; i++ {
		c.Put(strconv.Itoa(i), i)
	}
	assert.Equal(t, 10, c.Len())

	c.Put("overflow", 99)
	assert.Equal(t, 7, c.Len())
	assert.Equal(t, int64(4), obs.evicted.Load())
}

func TestClearAndDelete(t *testing.T) {
	c := New[int](Options{})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Delete("a")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](Options{TTL: time.Minute, Capacity: 50, EvictBatch: 10})
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((g*200 + i) % 120)
				c.Put(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	n := 0
	c.entries.Range(func(_, _ any) bool { n++; return true })
	assert.Equal(t, n, c.Len())
}

func TestJanitorStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int](Options{TTL: time.Second, Now: clock.Now})
	c.Put("a", 1)
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := c.StartJanitor(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	assert.Equal(t, 0, c.Len())
}
