package parser

import (
	"github.com/beetlebugorg/gini/internal/projection"
)

// buildAxes computes the projected x/y axes in km and the single-element
// time axis. Rows run from north to south.
func buildAxes(p *Product) Axes {
	axes := Axes{
		X:    make([]float64, p.Nx),
		Y:    make([]float64, p.Ny),
		Time: []int64{p.Time.UnixMilli()},
	}

	switch p.Projection.(type) {
	case *projection.Mercator:
		dlon, dlat := 0.0, 0.0
		if p.Nx > 1 {
			lon2 := p.Lon2
			if lon2 < p.Lon1 {
				lon2 += 360
			}
			dlon = (lon2 - p.Lon1) / float64(p.Nx-1)
		}
		if p.Ny > 1 {
			dlat = (p.Lat2 - p.Lat1) / float64(p.Ny-1)
		}
		for i := range axes.X {
			axes.X[i], _ = p.Projection.Forward(p.Lat1, p.Lon1+float64(i)*dlon)
		}
		for j := range axes.Y {
			_, axes.Y[j] = p.Projection.Forward(p.Lat2-float64(j)*dlat, p.Lon1)
		}

	case *projection.LambertConformal, *projection.PolarStereographic:
		x0, y0 := p.Projection.Forward(p.Lat1, p.Lon1)
		for i := range axes.X {
			axes.X[i] = x0 + float64(i)*p.Dx
		}
		top := y0 + float64(p.Ny-1)*p.Dy
		for j := range axes.Y {
			axes.Y[j] = top - float64(j)*p.Dy
		}

	default:
		for i := range axes.X {
			axes.X[i] = float64(i)
		}
		for j := range axes.Y {
			axes.Y[j] = float64(j)
		}
	}
	return axes
}
