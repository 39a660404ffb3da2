package projection

import (
	"fmt"
	"math"
)

// PolarStereographic is a polar stereographic projection on a sphere.
type PolarStereographic struct {
	CentralMeridian float64 // lov, degrees
	Pole            int     // 1 north, -1 south
	Scale           float64 // scale factor at the pole

	twoRK float64
}

// NewPolarStereographic creates a polar stereographic projection. A pole of -1
// selects the south pole; any other value selects the north pole.
func NewPolarStereographic(lov float64, pole int, scale float64) *PolarStereographic {
	if pole != -1 {
		pole = 1
	}
	if scale <= 0 {
		scale = 1
	}
	return &PolarStereographic{
		CentralMeridian: lov,
		Pole:            pole,
		Scale:           scale,
		twoRK:           2 * EarthRadius * scale,
	}
}

// TrueScaleScale returns the pole scale factor that makes the projection
// true at latitude latin, (1 + sin|latin|) / 2.
func TrueScaleScale(latin float64) float64 {
	return (1 + math.Sin(math.Abs(latin)*deg2rad)) / 2
}

func (p *PolarStereographic) Kind() Kind { return KindPolar }

func (p *PolarStereographic) Forward(lat, lon float64) (x, y float64) {
	phi := lat * deg2rad
	dlon := NormalizeLon(lon-p.CentralMeridian) * deg2rad
	if p.Pole == -1 {
		rho := p.twoRK * math.Tan(math.Pi/4+phi/2)
		return rho * math.Sin(dlon), rho * math.Cos(dlon)
	}
	rho := p.twoRK * math.Tan(math.Pi/4-phi/2)
	return rho * math.Sin(dlon), -rho * math.Cos(dlon)
}

func (p *PolarStereographic) Inverse(x, y float64) (lat, lon float64) {
	rho := math.Hypot(x, y)
	c := math.Pi/2 - 2*math.Atan(rho/p.twoRK)
	if p.Pole == -1 {
		lat = -c * rad2deg
		lon = p.CentralMeridian + math.Atan2(x, y)*rad2deg
	} else {
		lat = c * rad2deg
		lon = p.CentralMeridian + math.Atan2(x, -y)*rad2deg
	}
	if rho == 0 {
		lon = p.CentralMeridian
	}
	return lat, NormalizeLon(lon)
}

func (p *PolarStereographic) Proj4() string {
	return fmt.Sprintf("+proj=stere +lat_0=%d +lon_0=%g +k_0=%g +x_0=0 +y_0=0 %s",
		90*p.Pole, p.CentralMeridian, p.Scale, sphereParams())
}

func (p *PolarStereographic) String() string {
	pole := "north"
	if p.Pole == -1 {
		pole = "south"
	}
	return fmt.Sprintf("PolarStereographic(lov=%.4f, pole=%s, scale=%.6f)", p.CentralMeridian, pole, p.Scale)
}
