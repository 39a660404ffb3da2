package gini

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

// ProductCache manages parsed products with LRU eviction policy.
//
// The cache stores parsed products in memory and evicts least-recently-used
// products when memory limits are exceeded. This enables lazy loading of
// products on demand while keeping frequently accessed ones readily
// available. Memory estimation is approximate: header, axes and the bytes of
// in-memory sources.
//
// The cache owns the products it holds. A product is closed when it is
// evicted, removed, replaced or cleared, which releases file sources opened
// with OpenFile; callers must not keep using it afterwards.
//
// Example:
//
//	cache := gini.NewProductCache(512 * 1024 * 1024) // 512MB limit
//
//	product, err := cache.Get("TIGE01", func() (*gini.Product, error) {
//	    return parser.Parse("/data/gini/TIGE01_KNES_011200.gini")
//	})
type ProductCache struct {
	maxMemory  int64 // Maximum memory in bytes
	usedMemory int64 // Current memory usage estimate
	hits       int
	misses     int
	lru        *lru.Cache
	mu         sync.Mutex
}

// cacheEntry tracks a cached product and its metadata
type cacheEntry struct {
	product      *Product
	memorySize   int64
	lastAccessed time.Time
	accessCount  int
}

// NewProductCache creates a new cache with the specified memory limit in
// bytes. Set to 0 for unlimited cache size.
func NewProductCache(maxMemoryBytes int64) *ProductCache {
	c := &ProductCache{
		maxMemory: maxMemoryBytes,
		lru:       lru.New(0),
	}
	c.lru.OnEvicted = func(_ lru.Key, value interface{}) {
		entry := value.(*cacheEntry)
		c.usedMemory -= entry.memorySize
		entry.product.Close()
	}
	return c
}

// Get retrieves a product from cache or loads it using the provided loader
// function. The loader is only called on a cache miss.
//
// A product too large to cache is still returned.
func (c *ProductCache) Get(name string, loader func() (*Product, error)) (*Product, error) {
	c.mu.Lock()
	if v, ok := c.lru.Get(name); ok {
		entry := v.(*cacheEntry)
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.hits++
		c.mu.Unlock()
		return entry.product, nil
	}
	c.misses++
	c.mu.Unlock()

	// Cache miss - load product
	product, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	// A failed Add only means the product is not cached.
	_ = c.Add(name, product)

	return product, nil
}

// Add adds a product to the cache.
//
// If the cache is at capacity, least-recently-used products are evicted to
// make room. Returns error if the product is larger than max memory.
func (c *ProductCache) Add(name string, product *Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memSize := product.memorySize()

	if v, ok := c.lru.Get(name); ok {
		entry := v.(*cacheEntry)
		c.usedMemory += memSize - entry.memorySize
		if entry.product != product {
			entry.product.Close()
		}
		entry.product = product
		entry.memorySize = memSize
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.evict()
		return nil
	}

	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("product too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	c.lru.Add(name, &cacheEntry{
		product:      product,
		memorySize:   memSize,
		lastAccessed: time.Now(),
		accessCount:  1,
	})
	c.usedMemory += memSize
	c.evict()

	return nil
}

// evict removes least recently used products until the cache fits.
// Must be called with c.mu locked.
func (c *ProductCache) evict() {
	if c.maxMemory <= 0 {
		return
	}
	for c.usedMemory > c.maxMemory && c.lru.Len() > 1 {
		c.lru.RemoveOldest()
	}
}

// Remove explicitly removes and closes a product.
func (c *ProductCache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(name)
}

// Clear removes and closes all products.
func (c *ProductCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *ProductCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		ProductCount: c.lru.Len(),
		UsedMemory:   c.usedMemory,
		MaxMemory:    c.maxMemory,
		Hits:         c.hits,
		Misses:       c.misses,
	}
}

// CacheStats holds cache metrics.
type CacheStats struct {
	ProductCount int   // Number of products currently cached
	UsedMemory   int64 // Estimated memory usage in bytes
	MaxMemory    int64 // Maximum memory limit in bytes
	Hits         int   // Get calls served from the cache
	Misses       int   // Get calls that ran the loader
}
