package main

import (
	"fmt"
	"io"
	"time"

	"github.com/beetlebugorg/gini/pkg/gini"
	"github.com/kr/pretty"
)

// header is the decoded header of a product as printed by info --dump.
type header struct {
	Path            string
	Source          string
	Entity          string
	Sector          string
	PhysicalElement gini.PhysicalElement
	Time            time.Time
	Projection      string
	Nx, Ny          int
	Lat1, Lon1      float64
	Lat2, Lon2      float64
	Lonv, Latin     float64
	Dx, Dy          float64
	Pole            int
	ImageScale      float64
	Resolution      int
	Compression     string
	DataType        string
	DataOffset      int64
	Calibration     *gini.CalibrationTable
	Bounds          gini.Bounds
	Extent          gini.Extent
}

func newHeader(p *gini.Product) header {
	return header{
		Path:            p.Path(),
		Source:          p.SourceName(),
		Entity:          p.EntityName(),
		Sector:          p.SectorName(),
		PhysicalElement: p.PhysicalElement(),
		Time:            p.Time(),
		Projection:      p.ProjectionKind().String(),
		Nx:              p.Nx(),
		Ny:              p.Ny(),
		Lat1:            p.Lat1(),
		Lon1:            p.Lon1(),
		Lat2:            p.Lat2(),
		Lon2:            p.Lon2(),
		Lonv:            p.Lonv(),
		Latin:           p.Latin(),
		Dx:              p.Dx(),
		Dy:              p.Dy(),
		Pole:            p.Pole(),
		ImageScale:      p.ImageScale(),
		Resolution:      p.Resolution(),
		Compression:     p.Compression().String(),
		DataType:        p.DataType().String(),
		DataOffset:      p.DataOffset(),
		Calibration:     p.Calibration(),
		Bounds:          p.Bounds(),
		Extent:          p.ProjectedExtent(),
	}
}

func (cfg *Cfg) parseOptions() gini.ParseOptions {
	opts := gini.DefaultParseOptions()
	opts.Logger = cfg.log
	opts.PayloadCacheLimit = cfg.GetInt("cache-limit")
	return opts
}

func (cfg *Cfg) runInfo(w io.Writer, paths []string) error {
	parser := gini.NewParser()
	opts := cfg.parseOptions()
	dump := cfg.GetBool("dump")

	for i, path := range paths {
		p, err := parser.ParseWithOptions(path, opts)
		if err != nil {
			return fmt.Errorf("ginitool: %w", err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeInfo(w, p)
		if dump {
			fmt.Fprintf(w, "%# v\n", pretty.Formatter(newHeader(p)))
		}
		p.Close()
		cfg.log.WithField("path", path).Debug("ginitool: decoded header")
	}
	return nil
}

func writeInfo(w io.Writer, p *gini.Product) {
	pe := p.PhysicalElement()
	fmt.Fprintf(w, "file:        %s\n", p.Path())
	fmt.Fprintf(w, "source:      %s (%d)\n", p.SourceName(), p.SourceID())
	fmt.Fprintf(w, "entity:      %s (%d)\n", p.EntityName(), p.EntityID())
	fmt.Fprintf(w, "sector:      %s (%d)\n", p.SectorName(), p.SectorID())
	fmt.Fprintf(w, "element:     %s (%d) %s\n", pe.Name, pe.Code, pe.Units)
	fmt.Fprintf(w, "time:        %s\n", p.Time().Format(time.RFC3339))
	fmt.Fprintf(w, "grid:        %d x %d, %d km\n", p.Nx(), p.Ny(), p.Resolution())
	fmt.Fprintf(w, "compression: %s\n", p.Compression())
	fmt.Fprintf(w, "projection:  %s\n", p.ProjectionKind())

	if proj := p.Projection(); proj != nil {
		fmt.Fprintf(w, "proj4:       %s\n", proj.Proj4())
		e := p.ProjectedExtent()
		fmt.Fprintf(w, "x:           %.3f to %.3f km\n", e.MinX, e.MaxX)
		fmt.Fprintf(w, "y:           %.3f to %.3f km\n", e.MinY, e.MaxY)
		b := p.Bounds()
		fmt.Fprintf(w, "bounds:      lon %.4f to %.4f, lat %.4f to %.4f\n", b.MinLon, b.MaxLon, b.MinLat, b.MaxLat)
	}

	if c := p.Calibration(); c != nil {
		fmt.Fprintf(w, "calibration: %d levels, %s\n", len(c.Levels), c.Unit)
	}

	fmt.Fprintln(w, "attributes:")
	for _, a := range p.Attributes() {
		fmt.Fprintf(w, "  %s = %v\n", a.Name, a.Value)
	}
}
