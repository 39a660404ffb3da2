package main

import (
	"fmt"
	"log"
	"time"

	"github.com/beetlebugorg/gini/pkg/gini"
)

func main() {
	parser := gini.NewParser()

	// Index every product under the archive directory
	idx, err := gini.BuildIndexFromDir("/data/gini", parser, gini.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Define region (Gulf of Mexico)
	region := gini.Bounds{
		MinLon: -98, MaxLon: -80,
		MinLat: 18, MaxLat: 31,
	}

	// Query R-tree index for infrared products from the last six hours
	entries := idx.Query(region, gini.QueryOptions{
		PhysicalElements: []int{4},
		Since:            time.Now().Add(-6 * time.Hour),
	})

	fmt.Printf("Matching products: %d of %d\n", len(entries), idx.Count())

	for _, e := range entries {
		fmt.Printf("  %s %s %s %d km\n",
			e.Time.Format(time.RFC3339),
			e.ElementName,
			gini.SectorName(e.Sector),
			e.Resolution)
	}

	// The best product covering New Orleans
	set, err := gini.LoadRegionWithIndex(idx, parser, gini.Region{Bounds: region})
	if err != nil {
		log.Fatal(err)
	}
	defer set.Close()

	if ps := set.ProductPriority(29.95, -90.07); len(ps) > 0 {
		fmt.Printf("Best coverage: %s\n", ps[0].Path())
	}
}
