package gini

import (
	"fmt"
	"sort"
)

// ProductSet manages multiple loaded GINI products, for example the
// sectors and channels of one satellite pass.
//
// When several products cover the same point, ProductPriority orders them
// so the finest and most recent image is drawn on top.
type ProductSet struct {
	Products []*Product
}

// LoadProduct parses one GINI file.
func LoadProduct(path string, parser Parser) (*Product, error) {
	product, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse product: %w", err)
	}
	return product, nil
}

// LoadProducts parses every file in paths and stops at the first failure.
//
// Example:
//
//	parser := gini.NewParser()
//	paths := []string{"TIGE01_KNES_011200.gini", "TIGE02_KNES_011200.gini"}
//	set, err := gini.LoadProducts(paths, parser)
func LoadProducts(paths []string, parser Parser) (*ProductSet, error) {
	ps := &ProductSet{
		Products: make([]*Product, 0, len(paths)),
	}

	for _, path := range paths {
		product, err := LoadProduct(path, parser)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", path, err)
		}
		ps.Products = append(ps.Products, product)
	}

	return ps, nil
}

// LoadProductsWithErrors parses every file in paths, skipping the ones that
// fail. The returned errors name the failing files.
func LoadProductsWithErrors(paths []string, parser Parser) (*ProductSet, []error) {
	ps := &ProductSet{
		Products: make([]*Product, 0, len(paths)),
	}

	var errors []error

	for _, path := range paths {
		product, err := LoadProduct(path, parser)
		if err != nil {
			errors = append(errors, fmt.Errorf("load product %s: %w", path, err))
			continue
		}
		ps.Products = append(ps.Products, product)
	}

	return ps, errors
}

// ProductsCoveringPoint returns the products whose grid contains the point.
//
// The geographic bounds are checked first, then the point is projected and
// tested against the grid itself.
func (ps *ProductSet) ProductsCoveringPoint(lat, lon float64) []*Product {
	var result []*Product

	for _, product := range ps.Products {
		if !product.Bounds().Contains(lon, lat) {
			continue
		}
		if _, _, ok := product.Locate(lat, lon); ok {
			result = append(result, product)
		}
	}

	return result
}

// ProductPriority returns the products covering a point, highest priority
// first:
//  1. Resolution - finer resolution (smaller km value) wins
//  2. Time - more recent acquisition wins
//  3. Calibration - calibrated products win over raw imagery
//
// Example:
//
//	products := set.ProductPriority(38.9, -77.0)
//	if len(products) > 0 {
//	    fmt.Printf("Top product: %s\n", products[0].Path())
//	}
func (ps *ProductSet) ProductPriority(lat, lon float64) []*Product {
	covering := ps.ProductsCoveringPoint(lat, lon)

	sort.SliceStable(covering, func(i, j int) bool {
		pi, pj := covering[i], covering[j]

		if pi.Resolution() != pj.Resolution() {
			return pi.Resolution() < pj.Resolution()
		}

		if !pi.Time().Equal(pj.Time()) {
			return pi.Time().After(pj.Time())
		}

		return pi.Calibration() != nil && pj.Calibration() == nil
	})

	return covering
}

// CompositeBounds returns the union of all product bounds. Products
// without a projection are skipped.
func (ps *ProductSet) CompositeBounds() Bounds {
	var bounds Bounds
	first := true

	for _, product := range ps.Products {
		b := product.Bounds()
		if b.IsEmpty() {
			continue
		}
		if first {
			bounds = b
			first = false
			continue
		}
		bounds = bounds.Union(b)
	}

	return bounds
}

// Close closes every product in the set and returns the first error.
func (ps *ProductSet) Close() error {
	var first error
	for _, product := range ps.Products {
		if err := product.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
