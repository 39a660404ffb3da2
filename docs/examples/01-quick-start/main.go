package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/gini/pkg/gini"
)

func main() {
	// Create parser
	parser := gini.NewParser()

	// Parse product file
	product, err := parser.Parse("EAST-CONUS_4km_IR_20040301_1200.gini")
	if err != nil {
		log.Fatal(err)
	}
	defer product.Close()

	// Print product info
	pe := product.PhysicalElement()
	fmt.Printf("Satellite: %s\n", product.EntityName())
	fmt.Printf("Sector: %s\n", product.SectorName())
	fmt.Printf("Element: %s (%s)\n", pe.Name, pe.LongName)
	fmt.Printf("Time: %s\n", product.Time())
	fmt.Printf("Grid: %d x %d, %s\n", product.Nx(), product.Ny(), product.ProjectionKind())

	// Get product bounds
	bounds := product.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinLon, bounds.MinLat,
		bounds.MaxLon, bounds.MaxLat)
}
