package gini

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dhconnelly/rtreego"
)

// ProductIndex provides fast spatial queries over a collection of products.
//
// The index stores lightweight metadata for each product (bounds, element,
// sector, time) in an R-tree, so a directory of imagery can be searched for
// an area of interest without keeping every payload in memory.
//
// Example:
//
//	idx, err := gini.BuildIndexFromDir("/data/gini", parser, gini.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conus := gini.Bounds{MinLon: -125, MaxLon: -66, MinLat: 24, MaxLat: 50}
//	entries := idx.Query(conus, gini.QueryOptions{PhysicalElements: []int{2}})
type ProductIndex struct {
	products []ProductEntry
	rtree    *rtreego.Rtree // Spatial index for fast queries
}

// ProductEntry contains indexed metadata for a single product.
type ProductEntry struct {
	Path            string         // File the product was parsed from
	GeoBounds       Bounds         // Geographic coverage
	PhysicalElement int            // Physical element code
	ElementName     string         // Physical element short name
	Sector          int            // Sector code
	Entity          int            // Creating entity code
	Projection      ProjectionKind // Projection index
	Resolution      int            // Nominal resolution in km
	Time            time.Time      // Acquisition time
	Nx, Ny          int
}

// Bounds method for rtreego.Spatial interface.
func (e ProductEntry) Bounds() rtreego.Rect {
	return e.GeoBounds.rect()
}

// QueryOptions controls spatial query behavior. Empty filters match
// everything.
type QueryOptions struct {
	// PhysicalElements keeps products whose element code is listed.
	PhysicalElements []int

	// Sectors keeps products whose sector code is listed.
	Sectors []int

	// Entities keeps products whose creating entity code is listed.
	Entities []int

	// Since and Until bound the acquisition time, inclusive. Zero values
	// leave that side open.
	Since time.Time
	Until time.Time
}

func (o QueryOptions) match(e ProductEntry) bool {
	if len(o.PhysicalElements) > 0 && !containsInt(o.PhysicalElements, e.PhysicalElement) {
		return false
	}
	if len(o.Sectors) > 0 && !containsInt(o.Sectors, e.Sector) {
		return false
	}
	if len(o.Entities) > 0 && !containsInt(o.Entities, e.Entity) {
		return false
	}
	if !o.Since.IsZero() && e.Time.Before(o.Since) {
		return false
	}
	if !o.Until.IsZero() && e.Time.After(o.Until) {
		return false
	}
	return true
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// DiscoverProducts finds GINI files in a directory tree: files with a
// .gini extension and any other file that starts with a KNES or CHIZ
// framing.
//
// This is a lower-level function for product discovery. Most users should
// use LoadRegion() instead, which handles discovery automatically.
func DiscoverProducts(root string) ([]string, error) {
	var paths []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".gini") {
			paths = append(paths, path)
			return nil
		}
		if ok, err := IsGINI(path); err == nil && ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return paths, nil
}

// BuildIndexFromDir builds a product index by scanning a directory tree.
//
// Discovered files are parsed with LoadProductsParallel; progress can be
// monitored via LoadOptions.Progress. Only header metadata is kept.
func BuildIndexFromDir(root string, parser Parser, opts LoadOptions) (*ProductIndex, error) {
	paths, err := DiscoverProducts(root)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no products found in %s", root)
	}

	set, errs := LoadProductsParallel(paths, parser, opts)
	if set == nil {
		return nil, errs[0]
	}
	defer set.Close()
	if len(set.Products) == 0 {
		return nil, fmt.Errorf("no products could be loaded (%d errors)", len(errs))
	}

	return BuildIndex(set), nil
}

// BuildIndex creates an index from a loaded ProductSet.
//
// Products without a known projection are listed by All and Count but
// never returned by Query.
func BuildIndex(set *ProductSet) *ProductIndex {
	entries := make([]ProductEntry, len(set.Products))

	// Create R-tree (2D, min=25 children, max=50 children)
	rtree := rtreego.NewTree(2, 25, 50)

	for i, product := range set.Products {
		entries[i] = ProductEntry{
			Path:            product.Path(),
			GeoBounds:       product.Bounds(),
			PhysicalElement: product.PhysicalElement().Code,
			ElementName:     product.PhysicalElement().Name,
			Sector:          product.SectorID(),
			Entity:          product.EntityID(),
			Projection:      product.ProjectionKind(),
			Resolution:      product.Resolution(),
			Time:            product.Time(),
			Nx:              product.Nx(),
			Ny:              product.Ny(),
		}

		if product.Projection() != nil {
			rtree.Insert(entries[i])
		}
	}

	return &ProductIndex{
		products: entries,
		rtree:    rtree,
	}
}

// Query returns products intersecting the given bounds, sorted by priority:
//  1. Time: most recent first
//  2. Resolution: finer (smaller km) first
//  3. Path, for a stable order
func (idx *ProductIndex) Query(bounds Bounds, opts QueryOptions) []ProductEntry {
	var result []ProductEntry

	if idx.rtree != nil {
		spatials := idx.rtree.SearchIntersect(bounds.rect())
		for _, spatial := range spatials {
			entry := spatial.(ProductEntry)
			if opts.match(entry) {
				result = append(result, entry)
			}
		}
	} else {
		for _, entry := range idx.products {
			if entry.Projection == ProjectionUnknown || !bounds.Intersects(entry.GeoBounds) {
				continue
			}
			if opts.match(entry) {
				result = append(result, entry)
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Time.Equal(result[j].Time) {
			return result[i].Time.After(result[j].Time)
		}
		if result[i].Resolution != result[j].Resolution {
			return result[i].Resolution < result[j].Resolution
		}
		return result[i].Path < result[j].Path
	})

	return result
}

// Count returns the total number of products in the index.
func (idx *ProductIndex) Count() int {
	return len(idx.products)
}

// Bounds returns the union of all product bounds in the index.
func (idx *ProductIndex) Bounds() Bounds {
	var bounds Bounds
	first := true
	for _, entry := range idx.products {
		if entry.GeoBounds.IsEmpty() {
			continue
		}
		if first {
			bounds = entry.GeoBounds
			first = false
			continue
		}
		bounds = bounds.Union(entry.GeoBounds)
	}
	return bounds
}

// All returns all product entries in the index.
func (idx *ProductIndex) All() []ProductEntry {
	return idx.products
}
