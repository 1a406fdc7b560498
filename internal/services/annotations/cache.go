package annotations

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// CacheStats provides statistics about cache usage
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// Cache is an LRU cache of per-video annotation indexes. It is owned by the
// caller of the transform engine and passed in explicitly; capacity 1
// reproduces single-slot "last loaded video" behavior.
type Cache struct {
	mu       sync.Mutex
	store    *Store
	capacity int
	entries  map[string]*list.Element
	order    *list.List

	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry struct {
	videoID string
	index   *Index
}

// NewCache creates an annotation cache over the given store. Capacities
// below 1 are raised to 1.
func NewCache(store *Store, capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		store:    store,
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the annotation index for a video, loading it on a miss and
// evicting the least recently used video when over capacity.
func (c *Cache) Get(videoID string) (*Index, error) {
	c.mu.Lock()
	if elem, ok := c.entries[videoID]; ok {
		c.order.MoveToFront(elem)
		index := elem.Value.(*cacheEntry).index
		c.mu.Unlock()
		atomic.AddInt64(&c.hits, 1)
		return index, nil
	}
	c.mu.Unlock()

	atomic.AddInt64(&c.misses, 1)

	// Load outside the lock; concurrent misses for the same video both load,
	// and the second insert replaces the first.
	index, err := c.store.Load(videoID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[videoID]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).index = index
		return index, nil
	}

	c.entries[videoID] = c.order.PushFront(&cacheEntry{videoID: videoID, index: index})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).videoID)
		atomic.AddInt64(&c.evictions, 1)
	}

	return index, nil
}

// Has reports whether a video's index is resident without touching recency
func (c *Cache) Has(videoID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[videoID]
	return ok
}

// Stats returns cache statistics
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	size := c.order.Len()
	c.mu.Unlock()

	return CacheStats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      size,
		Capacity:  c.capacity,
	}
}
