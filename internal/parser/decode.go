package parser

import (
	"math"
	"time"

	"github.com/beetlebugorg/gini/internal/projection"
	"github.com/sirupsen/logrus"
)

// Header byte offsets. Bytes 4-7 and 14 are not used.
const (
	offSource          = 0
	offEntity          = 1
	offSector          = 2
	offPhysicalElement = 3
	offYear            = 8
	offProjection      = 15
	offNx              = 16
	offNy              = 18
	offProjectionBlock = 20
	offResolution      = 41
	offCompression     = 42
	offCalibration     = 46
)

// Decode interprets a raw header. It is a pure function of raw: decoding
// the same header twice yields identical products.
//
// Field layout (big-endian, sign-magnitude for the 3-byte geographic values
// in units of 1/10000 degree or km):
//
//	 0      source
//	 1      creating entity
//	 2      sector
//	 3      physical element
//	 8-13   year, month, day, hour, minute, second (UTC)
//	15      projection index: 1 Mercator, 3 Lambert Conformal, 5 Polar Stereographic
//	16-19   nx, ny
//	20-40   projection block
//	41      image resolution
//	42      128 when the payload is an embedded PNG
//	46      128 when a calibration table follows at 47
func Decode(raw *RawHeader, log logrus.FieldLogger) (*Product, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := raw.Bytes[:]

	p := &Product{
		SourceID:  int(h[offSource]),
		EntityID:  int(h[offEntity]),
		SectorID:  int(h[offSector]),
		ProjIndex: projection.Kind(h[offProjection]),
		Nx:        uint16BE(h[offNx:]),
		Ny:        uint16BE(h[offNy:]),
	}
	if p.Nx <= 0 || p.Ny <= 0 {
		return nil, &ErrInvalidDimensions{Nx: p.Nx, Ny: p.Ny}
	}
	p.PhysicalElement = LookupPhysicalElement(int(h[offPhysicalElement]), p.EntityID)
	p.Time = decodeTime(h[offYear:])

	switch p.ProjIndex {
	case projection.KindMercator:
		decodeMercator(p, h[offProjectionBlock:])
	case projection.KindLambert, projection.KindPolar:
		decodeConic(p, h[offProjectionBlock:])
	}
	proj, err := projection.New(p.ProjIndex, p.Lonv, p.Latin, p.Pole, p.ImageScale)
	if err != nil {
		log.WithError(err).WithField("projIndex", int(p.ProjIndex)).Warn("unknown projection, using index axes")
	} else {
		p.Projection = proj
	}

	p.Resolution = int(int8(h[offResolution]))

	switch {
	case h[offCompression] == embeddedImageFlag:
		p.Compression = CompressionPNG
	case isZlibPrefix(raw.PayloadPrefix):
		p.Compression = CompressionZlib
	default:
		p.Compression = CompressionNone
	}

	if h[offCalibration] == calibrationIndicator {
		p.Calibration = parseCalibration(h, p.PhysicalElement)
	}

	p.Axes = buildAxes(p)
	p.Layout = Layout{
		Offset: raw.DataStart,
		Size:   raw.SourceSize - raw.DataStart,
		Type:   DataTypeByte,
		Nx:     p.Nx,
		Ny:     p.Ny,
	}
	if p.Layout.Size < 0 {
		p.Layout.Size = 0
	}
	if p.Calibration != nil {
		p.Layout.Type = DataTypeFloat
	}
	p.Attributes = buildAttributes(p)
	return p, nil
}

func decodeTime(b []byte) time.Time {
	year := int(b[0])
	if year < 50 {
		year += 2000
	} else {
		year += 1900
	}
	return time.Date(year, time.Month(b[1]), int(b[2]), int(b[3]), int(b[4]), int(b[5]), 0, time.UTC)
}

// decodeMercator reads lat1, lon1, (1 byte), lat2, lon2, (5 bytes), latin.
// The central meridian bisects lon1 and lon2.
func decodeMercator(p *Product, b []byte) {
	p.Lat1 = scaled24(b[0:])
	p.Lon1 = scaled24(b[3:])
	p.Lat2 = scaled24(b[7:])
	p.Lon2 = scaled24(b[10:])
	p.Latin = scaled24(b[18:])

	l1 := projection.NormalizeLon360(p.Lon1)
	l2 := projection.NormalizeLon360(p.Lon2)
	if l2 < l1 {
		l2 += 360
	}
	p.Lonv = projection.NormalizeLon((l1 + l2) / 2)
}

// decodeConic reads lat1, lon1, (1 byte), lov, dx, dy, pole, (scan mode),
// latin for Lambert Conformal and Polar Stereographic grids. The far corner
// is estimated from the grid spacing.
func decodeConic(p *Product, b []byte) {
	p.Lat1 = scaled24(b[0:])
	p.Lon1 = scaled24(b[3:])
	p.Lonv = scaled24(b[7:])
	p.Dx = scaled24(b[10:])
	p.Dy = scaled24(b[13:])
	p.Pole = 1
	if b[16] > 127 {
		p.Pole = -1
	}
	p.Latin = scaled24(b[18:])

	p.Lat2 = p.Lat1 + p.Dy*float64(p.Ny-1)/KmPerDegree
	p.Lon2 = p.Lon1 + p.Dx*float64(p.Nx-1)/(KmPerDegree*math.Cos(p.Lat1*math.Pi/180))

	if p.ProjIndex == projection.KindPolar {
		p.Latin = 60
		p.ImageScale = projection.TrueScaleScale(p.Latin)
	}
}

func buildAttributes(p *Product) []Attribute {
	pe := p.PhysicalElement
	attrs := []Attribute{
		{"source_id", p.SourceID},
		{"entity_id", p.EntityID},
		{"sector_id", p.SectorID},
		{"physical_element", pe.Code},
		{"source", p.SourceName()},
		{"creating_entity", p.EntityName()},
		{"sector", p.SectorName()},
		{"product_name", pe.Name},
		{"units", pe.Units},
		{"long_name", pe.LongName},
		{"summary", pe.Summary},
		{"time", p.Time.Format(time.RFC3339)},
		{"nx", p.Nx},
		{"ny", p.Ny},
	}

	if p.Projection != nil {
		attrs = append(attrs,
			Attribute{"projIndex", int(p.ProjIndex)},
			Attribute{"projection", p.ProjIndex.String()},
			Attribute{"lat1", p.Lat1},
			Attribute{"lon1", p.Lon1},
			Attribute{"lat2", p.Lat2},
			Attribute{"lon2", p.Lon2},
			Attribute{"lonv", p.Lonv},
			Attribute{"latin", p.Latin},
		)
		if p.ProjIndex != projection.KindMercator {
			attrs = append(attrs,
				Attribute{"dx", p.Dx},
				Attribute{"dy", p.Dy},
				Attribute{"pole", p.Pole},
			)
		}
		if p.ProjIndex == projection.KindPolar {
			attrs = append(attrs, Attribute{"imageScale", p.ImageScale})
		}
	}

	attrs = append(attrs,
		Attribute{"image_resolution", p.Resolution},
		Attribute{"compression", p.Compression.String()},
	)
	if p.Calibration != nil {
		attrs = append(attrs,
			Attribute{"calibration_unit", p.Calibration.Unit},
			Attribute{"calibration_levels", len(p.Calibration.Levels)},
		)
	}
	return attrs
}
