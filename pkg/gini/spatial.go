package gini

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// Bounds is a latitude/longitude box in degrees. Longitudes lie in
// [-180, 180]; a box never wraps across the dateline.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// IsEmpty reports whether the bounds is the zero value.
func (b Bounds) IsEmpty() bool {
	return b == Bounds{}
}

// Contains reports whether (lon, lat) lies inside b, edges included.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects reports whether b and other share at least one point.
func (b Bounds) Intersects(other Bounds) bool {
	return other.MinLon <= b.MaxLon && other.MaxLon >= b.MinLon &&
		other.MinLat <= b.MaxLat && other.MaxLat >= b.MinLat
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLon: math.Min(b.MinLon, other.MinLon),
		MaxLon: math.Max(b.MaxLon, other.MaxLon),
		MinLat: math.Min(b.MinLat, other.MinLat),
		MaxLat: math.Max(b.MaxLat, other.MaxLat),
	}
}

// Expand grows b by margin degrees on every side.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// rect converts the bounds to an R-tree rectangle. Degenerate boxes are
// widened to a small epsilon because the R-tree rejects zero lengths.
func (b Bounds) rect() rtreego.Rect {
	point := rtreego.Point{b.MinLon, b.MinLat}

	// ~11 meters at the equator
	const epsilon = 0.0001
	lonLength := b.MaxLon - b.MinLon
	latLength := b.MaxLat - b.MinLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}
