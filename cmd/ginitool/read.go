package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/beetlebugorg/gini/pkg/gini"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// section builds the section to read from the origin, shape and stride
// options. Missing options select the rest of the grid.
func (cfg *Cfg) section(shape []int) (gini.Section, error) {
	origin, err := cfg.intSlice("origin")
	if err != nil {
		return gini.Section{}, err
	}
	count, err := cfg.intSlice("shape")
	if err != nil {
		return gini.Section{}, err
	}
	stride, err := cfg.intSlice("stride")
	if err != nil {
		return gini.Section{}, err
	}

	s := gini.FullSection(shape)
	if len(origin) > 0 {
		s.Origin = origin
	}
	if len(stride) > 0 {
		s.Stride = stride
	}
	if len(count) > 0 {
		s.Shape = count
	} else if len(s.Origin) == len(shape) && len(s.Stride) == len(shape) {
		for d := range shape {
			if s.Stride[d] > 0 && s.Origin[d] < shape[d] {
				s.Shape[d] = (shape[d] - s.Origin[d] + s.Stride[d] - 1) / s.Stride[d]
			}
		}
	}
	return s, nil
}

func (cfg *Cfg) runRead(w io.Writer, path string) error {
	p, err := gini.NewParser().ParseWithOptions(path, cfg.parseOptions())
	if err != nil {
		return fmt.Errorf("ginitool: %w", err)
	}
	defer p.Close()

	s, err := cfg.section(p.Shape())
	if err != nil {
		return err
	}
	arr, err := p.ReadData(s)
	if err != nil {
		return fmt.Errorf("ginitool: %w", err)
	}

	all := arr.Float64s()
	valid := make([]float64, 0, len(all))
	for _, v := range all {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	fmt.Fprintf(w, "shape: %v\n", arr.Shape())
	fmt.Fprintf(w, "type:  %s\n", arr.DataType())
	fmt.Fprintf(w, "valid: %d of %d\n", len(valid), len(all))
	if len(valid) > 0 {
		mean, std := stat.MeanStdDev(valid, nil)
		fmt.Fprintf(w, "min:   %g\n", floats.Min(valid))
		fmt.Fprintf(w, "max:   %g\n", floats.Max(valid))
		fmt.Fprintf(w, "mean:  %g\n", mean)
		if len(valid) > 1 {
			fmt.Fprintf(w, "std:   %g\n", std)
		}
	}

	if cfg.GetBool("values") {
		shape := arr.Shape()
		nx := shape[len(shape)-1]
		row := make([]string, nx)
		for i := 0; i < len(all); i += nx {
			for j, v := range all[i : i+nx] {
				row[j] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			fmt.Fprintln(w, strings.Join(row, " "))
		}
	}

	cfg.log.WithField("path", path).WithField("shape", arr.Shape()).Debug("ginitool: read section")
	return nil
}
