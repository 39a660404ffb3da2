// Package projection implements the three spherical map projections used by
// GINI products: Mercator, Lambert Conformal (tangent cone) and Polar
// Stereographic. Projected coordinates are in kilometres; geographic
// coordinates are in degrees.
package projection

import (
	"fmt"
	"math"
)

// EarthRadius is the radius of the spherical earth used by GINI products, in km.
const EarthRadius = 6371.229

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
	epsilon = 1e-10
)

// Kind is the GINI projection index stored in header byte 15.
type Kind int

const (
	KindUnknown  Kind = 0
	KindMercator Kind = 1
	KindLambert  Kind = 3
	KindPolar    Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindMercator:
		return "Mercator"
	case KindLambert:
		return "Lambert Conformal"
	case KindPolar:
		return "Polar Stereographic"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Projection maps geographic coordinates to a plane and back.
type Projection interface {
	// Kind returns the GINI projection index.
	Kind() Kind

	// Forward projects (lat, lon) in degrees to (x, y) in km.
	Forward(lat, lon float64) (x, y float64)

	// Inverse maps (x, y) in km back to (lat, lon) in degrees.
	// Longitudes are normalised into [-180, 180).
	Inverse(x, y float64) (lat, lon float64)

	// Proj4 describes the projection as a proj4 definition string.
	Proj4() string

	String() string
}

// NormalizeLon maps a longitude in degrees into [-180, 180).
func NormalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// NormalizeLon360 maps a longitude in degrees into [0, 360).
func NormalizeLon360(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// New builds the projection for a GINI projection index. The pole argument is
// only used by polar stereographic (1 north, -1 south) and scale is its
// scale factor at the pole.
func New(kind Kind, lonv, latin float64, pole int, scale float64) (Projection, error) {
	switch kind {
	case KindMercator:
		return NewMercator(lonv, latin), nil
	case KindLambert:
		return NewLambertConformal(lonv, latin), nil
	case KindPolar:
		return NewPolarStereographic(lonv, pole, scale), nil
	default:
		return nil, fmt.Errorf("unsupported projection index %d", int(kind))
	}
}

func sphereParams() string {
	r := EarthRadius * 1000
	return fmt.Sprintf("+a=%.0f +b=%.0f +units=km +no_defs", r, r)
}
