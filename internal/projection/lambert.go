package projection

import (
	"fmt"
	"math"
)

// LambertConformal is a tangent-cone Lambert Conformal Conic projection with a
// single standard parallel Latin, which is also the latitude of origin.
type LambertConformal struct {
	CentralMeridian float64 // lov, degrees
	Latin           float64 // tangent latitude, degrees

	n    float64 // cone constant
	rf   float64 // R * F
	rho0 float64

	// Cone constant of zero means the cone has become a cylinder.
	merc *Mercator
}

// NewLambertConformal creates a Lambert Conformal projection centred on lov
// and tangent at latin.
func NewLambertConformal(lov, latin float64) *LambertConformal {
	l := &LambertConformal{CentralMeridian: lov, Latin: latin}
	phi1 := latin * deg2rad
	l.n = math.Sin(phi1)
	if math.Abs(l.n) < epsilon {
		l.merc = NewMercator(lov, 0)
		return l
	}
	f := math.Cos(phi1) * math.Pow(math.Tan(math.Pi/4+phi1/2), l.n) / l.n
	l.rf = EarthRadius * f
	l.rho0 = l.rho(phi1)
	return l
}

func (l *LambertConformal) rho(phi float64) float64 {
	t := math.Tan(math.Pi/4 + phi/2)
	if t <= 0 {
		// pole opposite the cone apex
		return math.Inf(1)
	}
	return l.rf / math.Pow(t, l.n)
}

func (l *LambertConformal) Kind() Kind { return KindLambert }

func (l *LambertConformal) Forward(lat, lon float64) (x, y float64) {
	if l.merc != nil {
		return l.merc.Forward(lat, lon)
	}
	rho := l.rho(lat * deg2rad)
	theta := l.n * NormalizeLon(lon-l.CentralMeridian) * deg2rad
	x = rho * math.Sin(theta)
	y = l.rho0 - rho*math.Cos(theta)
	return x, y
}

func (l *LambertConformal) Inverse(x, y float64) (lat, lon float64) {
	if l.merc != nil {
		return l.merc.Inverse(x, y)
	}
	sign := 1.0
	if l.n < 0 {
		sign = -1
	}
	dy := l.rho0 - y
	rho := sign * math.Hypot(x, dy)
	theta := math.Atan2(sign*x, sign*dy)
	if rho == 0 {
		lat = sign * 90
	} else {
		lat = (2*math.Atan(math.Pow(l.rf/rho, 1/l.n)) - math.Pi/2) * rad2deg
	}
	lon = NormalizeLon(l.CentralMeridian + theta/l.n*rad2deg)
	return lat, lon
}

func (l *LambertConformal) Proj4() string {
	return fmt.Sprintf("+proj=lcc +lat_1=%g +lat_2=%g +lat_0=%g +lon_0=%g +x_0=0 +y_0=0 %s",
		l.Latin, l.Latin, l.Latin, l.CentralMeridian, sphereParams())
}

func (l *LambertConformal) String() string {
	return fmt.Sprintf("LambertConformal(lov=%.4f, latin=%.4f)", l.CentralMeridian, l.Latin)
}
