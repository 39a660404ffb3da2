package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/gini/pkg/gini"
)

func safeParseProduct(path string) (*gini.Product, error) {
	parser := gini.NewParser()

	opts := gini.DefaultParseOptions()
	opts.RequirePIB = true

	product, err := parser.ParseWithOptions(path, opts)
	if err != nil {
		// Check if file exists
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("product file not found: %s", path)
		}

		// A compressed header that would not inflate
		var inflateErr *gini.HeaderInflateError
		if errors.As(err, &inflateErr) {
			log.Printf("Corrupt header in %s: %v", path, err)
		}
		return nil, err
	}

	if product.Projection() == nil {
		log.Printf("Warning: %s has no known projection", path)
	}

	return product, nil
}

func main() {
	product, err := safeParseProduct("EAST-CONUS_4km_IR_20040301_1200.gini")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	defer product.Close()

	data, err := product.ReadAll()
	var shortErr *gini.ShortReadError
	var payloadErr *gini.PayloadInflateError
	switch {
	case errors.As(err, &shortErr):
		log.Printf("Truncated payload: %v", err)
	case errors.As(err, &payloadErr):
		log.Printf("Corrupt payload: %v", err)
	case errors.Is(err, gini.ErrUnsupportedPixelLayout):
		log.Printf("PNG payload is not 8-bit grayscale")
	case err != nil:
		log.Printf("Error: %v", err)
	default:
		fmt.Printf("Read %d values\n", data.Len())
	}

	// Bad sections report the offending dimension
	_, err = product.ReadData(gini.Section{Origin: []int{0, 0}, Shape: []int{1, 1}})
	var secErr *gini.SectionError
	if errors.As(err, &secErr) {
		log.Printf("Expected error: %v", err)
	}
}
