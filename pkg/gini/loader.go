package gini

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ProductLoader provides lazy loading of indexed products with caching.
//
// The loader combines a spatial index (for fast product discovery) with an
// LRU cache (for memory management). Products are parsed on demand when a
// query first needs them and reused by later queries until evicted. An
// evicted product is closed, so hold on to a product only while working
// with it.
//
// Example:
//
//	idx, _ := gini.BuildIndexFromDir("/data/gini", gini.NewParser(), gini.DefaultLoadOptions())
//	loader := gini.NewProductLoader(idx, gini.DefaultLoaderOptions())
//
//	products, err := loader.ProductsInBounds(gini.Bounds{
//	    MinLon: -98, MaxLon: -80,
//	    MinLat: 18, MaxLat: 31,
//	}, gini.QueryOptions{PhysicalElements: []int{4}})
type ProductLoader struct {
	index  *ProductIndex
	cache  *ProductCache
	parser Parser
	opts   ParseOptions
	log    logrus.FieldLogger

	mu     sync.Mutex
	failed int // products that failed to load
}

// LoaderOptions configures product loader behavior.
type LoaderOptions struct {
	// CacheSize sets maximum cache memory in bytes. 0 means unlimited.
	// Default: 512MB
	CacheSize int64

	// ParseOptions are used for every product the loader parses.
	ParseOptions ParseOptions

	// Logger receives one warning per product that fails to load. Optional.
	Logger logrus.FieldLogger
}

// DefaultLoaderOptions returns loader options with defaults.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		CacheSize:    512 * 1024 * 1024,
		ParseOptions: DefaultParseOptions(),
	}
}

// NewProductLoader creates a lazy-loading product loader over an index.
func NewProductLoader(idx *ProductIndex, opts LoaderOptions) *ProductLoader {
	return &ProductLoader{
		index:  idx,
		cache:  NewProductCache(opts.CacheSize),
		parser: NewParser(),
		opts:   opts.ParseOptions,
		log:    opts.Logger,
	}
}

// ProductsInBounds returns the products intersecting bounds that match q,
// in query order.
//
// Products are:
//  1. Queried from the spatial index
//  2. Loaded from cache if available, or parsed from disk
//  3. Cached for future queries
//
// Products that fail to load are skipped and logged.
func (l *ProductLoader) ProductsInBounds(bounds Bounds, q QueryOptions) ([]*Product, error) {
	entries := l.index.Query(bounds, q)

	products := make([]*Product, 0, len(entries))
	for _, entry := range entries {
		p, err := l.Product(entry.Path)
		if err != nil {
			l.mu.Lock()
			l.failed++
			l.mu.Unlock()
			logLoadError(l.log, entry.Path, err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// Product loads a product by path, using the cache if available.
func (l *ProductLoader) Product(path string) (*Product, error) {
	if path == "" {
		return nil, fmt.Errorf("product has no path")
	}
	return l.cache.Get(path, func() (*Product, error) {
		return l.parser.ParseWithOptions(path, l.opts)
	})
}

// Index returns the underlying spatial index.
func (l *ProductLoader) Index() *ProductIndex {
	return l.index
}

// Stats returns the cache statistics of the loader.
func (l *ProductLoader) Stats() LoaderStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoaderStats{CacheStats: l.cache.Stats(), Failed: l.failed}
}

// LoaderStats holds loader metrics.
type LoaderStats struct {
	CacheStats
	Failed int // products skipped because they failed to load
}

// Clear empties the product cache.
func (l *ProductLoader) Clear() {
	l.cache.Clear()
}
