package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/gini/pkg/gini"
)

func main() {
	product, err := gini.NewParser().Parse("EAST-CONUS_4km_IR_20040301_1200.gini")
	if err != nil {
		log.Fatal(err)
	}
	defer product.Close()

	// Every 10th pixel of the top 100 rows
	section := gini.Section{
		Origin: []int{0, 0, 0},
		Shape:  []int{1, 10, product.Nx() / 10},
		Stride: []int{1, 10, 10},
	}
	data, err := product.ReadData(section)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Read %v (%s)\n", data.Shape(), data.DataType())

	// Calibrated products hold physical values, others raw brightness
	if cal := product.Calibration(); cal != nil {
		fmt.Printf("Calibrated in %s, first value %.2f\n", cal.Unit, data.FloatAt(0, 0, 0))
	} else {
		fmt.Printf("Brightness, first value %d\n", data.ByteAt(0, 0, 0))
	}

	// Value at a point
	row, col, ok := product.Locate(35.0, -95.0)
	if !ok {
		log.Fatal("point outside the grid")
	}
	pixel, err := product.ReadData(gini.Section{
		Origin: []int{0, row, col},
		Shape:  []int{1, 1, 1},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Value at 35N 95W: %v\n", pixel.Float64s()[0])

	// Coordinates of the grid in projected km
	x, y := product.XAxis(), product.YAxis()
	fmt.Printf("x: %.1f to %.1f km, y: %.1f to %.1f km\n", x[0], x[len(x)-1], y[0], y[len(y)-1])
}
