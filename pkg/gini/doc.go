// Package gini decodes NOAAPORT GINI satellite and radar image products.
//
// A GINI file carries an optional WMO/PIB framing, a 533-byte product
// header (possibly zlib compressed) and an image payload that is raw, a
// sequence of zlib streams, or an embedded PNG. This package decodes the
// header into a Product with its map projection and 1-D coordinate axes in
// projected kilometres, and reads the payload on demand.
//
// # Basic Usage
//
//	parser := gini.NewParser()
//	product, err := parser.Parse("TIGE01_KNES_011200.gini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s %s at %s covers %+v\n",
//	    product.PhysicalElement().Name, product.SectorName(),
//	    product.Time().Format(time.RFC3339), product.Bounds())
//
// # Reading Data
//
// ReadData returns a section of the image as an Array of shape [1, ny, nx].
// Calibrated products are returned as float32 physical values, all others
// as raw bytes:
//
//	// Every other pixel of the first 100 rows
//	data, err := product.ReadData(gini.Section{
//	    Origin: []int{0, 0, 0},
//	    Shape:  []int{1, 50, product.Nx() / 2},
//	    Stride: []int{1, 2, 2},
//	})
//
// # Coordinates
//
// XAxis and YAxis are in projected kilometres; the first row is the
// northernmost. Projection().Inverse maps them back to latitude and
// longitude:
//
//	lat, lon := product.Projection().Inverse(product.XAxis()[0], product.YAxis()[0])
//
// # Collections
//
// ProductIndex provides R-tree spatial queries over many products,
// LoadProductsParallel loads files with a worker pool, and LoadRegion
// combines both to load every product covering an area of interest.
// ProductLoader keeps an index and parses products on first use, holding
// them in a memory-bounded ProductCache.
package gini
