package projection

import (
	"fmt"
	"math"
)

// Mercator is a spherical Mercator projection true at latitude Latin.
type Mercator struct {
	CentralMeridian float64 // lonv, degrees
	Latin           float64 // latitude of true scale, degrees

	k float64 // R * cos(latin)
}

// NewMercator creates a Mercator projection centred on lonv and true at latin.
func NewMercator(lonv, latin float64) *Mercator {
	return &Mercator{
		CentralMeridian: lonv,
		Latin:           latin,
		k:               EarthRadius * math.Cos(latin*deg2rad),
	}
}

func (m *Mercator) Kind() Kind { return KindMercator }

func (m *Mercator) Forward(lat, lon float64) (x, y float64) {
	dlon := NormalizeLon(lon - m.CentralMeridian)
	x = m.k * dlon * deg2rad
	y = m.k * math.Log(math.Tan(math.Pi/4+lat*deg2rad/2))
	return x, y
}

func (m *Mercator) Inverse(x, y float64) (lat, lon float64) {
	lon = NormalizeLon(m.CentralMeridian + x/m.k*rad2deg)
	lat = (2*math.Atan(math.Exp(y/m.k)) - math.Pi/2) * rad2deg
	return lat, lon
}

func (m *Mercator) Proj4() string {
	return fmt.Sprintf("+proj=merc +lon_0=%g +lat_ts=%g +x_0=0 +y_0=0 %s",
		m.CentralMeridian, m.Latin, sphereParams())
}

func (m *Mercator) String() string {
	return fmt.Sprintf("Mercator(lonv=%.4f, latin=%.4f)", m.CentralMeridian, m.Latin)
}
