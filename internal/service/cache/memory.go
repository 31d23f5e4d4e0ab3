package cache

import (
	"container/list"
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brandonleon/carbsmart/internal/domain/model"
	"github.com/brandonleon/carbsmart/internal/metrics"
)

const memoryBackend = "memory"

// ShardedCache is an in-process LRU cache with TTL expiry. Keys are spread
// across shards to reduce lock contention.
type ShardedCache struct {
	shards    []*ttlCache
	shardMask uint32
}

// NewShardedCache creates a cache holding about capacity entries. numShards
// is rounded up to a power of two; values <= 0 select 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache, n)
	for i := range shards {
		shards[i] = newTTLCache(perShard, ttl)
	}
	metrics.UpdateCacheMetrics(0, perShard*n)

	return &ShardedCache{shards: shards, shardMask: uint32(n - 1)}
}

func (sc *ShardedCache) shard(key string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get returns the cached plan for key.
func (sc *ShardedCache) Get(_ context.Context, key string) (model.Plan, bool) {
	return sc.shard(key).get(key)
}

// Set stores a plan under key.
func (sc *ShardedCache) Set(_ context.Context, key string, value model.Plan) {
	sc.shard(key).set(key, value)
}

// Invalidate removes key.
func (sc *ShardedCache) Invalidate(_ context.Context, key string) {
	sc.shard(key).invalidate(key)
}

// Clear removes all entries and resets the counters.
func (sc *ShardedCache) Clear(_ context.Context) {
	for _, s := range sc.shards {
		s.clear()
	}
	metrics.RecordCacheOperation(memoryBackend, "clear", "success")
}

// Stop terminates the cleanup goroutines.
func (sc *ShardedCache) Stop() {
	for _, s := range sc.shards {
		s.stop()
	}
}

// Metrics aggregates the counters of all shards.
func (sc *ShardedCache) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	metrics.UpdateCacheMetrics(total.Size, total.Capacity)
	return total
}

type entry struct {
	key       string
	value     model.Plan
	expiresAt time.Time
}

// ttlCache is one LRU shard. The front of order is the most recently used.
type ttlCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List
	stopOnce sync.Once
	stopCh   chan struct{}

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		stopCh:   make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

func (c *ttlCache) get(key string) (model.Plan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation(memoryBackend, "get", "miss")
		return model.Plan{}, false
	}

	e := el.Value.(*entry)
	if time.Now().After(e.expiresAt) {
		c.removeElement(el)
		c.misses.Add(1)
		metrics.RecordCacheOperation(memoryBackend, "get", "expired")
		return model.Plan{}, false
	}

	c.order.MoveToFront(el)
	c.hits.Add(1)
	metrics.RecordCacheOperation(memoryBackend, "get", "hit")
	return e.value, true
}

func (c *ttlCache) set(key string, value model.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	if c.order.Len() > c.capacity {
		c.removeElement(c.order.Back())
		c.evictions.Add(1)
		metrics.RecordCacheOperation(memoryBackend, "evict", "capacity")
	}
	metrics.RecordCacheOperation(memoryBackend, "set", "success")
}

func (c *ttlCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
		metrics.RecordCacheOperation(memoryBackend, "invalidate", "success")
	}
}

func (c *ttlCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

func (c *ttlCache) metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *ttlCache) stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ttlCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry).expiresAt) {
			c.removeElement(el)
		}
		el = prev
	}
}

func (c *ttlCache) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
