package parser

import (
	"time"

	"github.com/beetlebugorg/gini/internal/projection"
)

// Compression is the payload encoding of a product.
type Compression int

const (
	CompressionNone Compression = 0 // raw bytes
	CompressionZlib Compression = 1 // one or more concatenated zlib streams
	CompressionPNG  Compression = 2 // embedded PNG image
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionPNG:
		return "png"
	default:
		return "unknown"
	}
}

// DataType is the element type of the decoded image.
type DataType int

const (
	DataTypeByte DataType = iota
	DataTypeFloat
)

func (d DataType) String() string {
	if d == DataTypeFloat {
		return "float"
	}
	return "byte"
}

// TimeUnits describes the values of the time axis.
const TimeUnits = "msecs since 1970-01-01T00:00:00Z"

// Axes holds the 1-D coordinate axes of a product.
type Axes struct {
	X    []float64 // km, length nx
	Y    []float64 // km, length ny, first row first
	Time []int64   // length 1
}

// Layout describes where and how the image payload is stored.
type Layout struct {
	Offset int64 // payload start in the source
	Size   int64 // payload bytes in the source
	Type   DataType
	Nx, Ny int
}

// Attribute is a named header value.
type Attribute struct {
	Name  string
	Value any
}

// Product is the decoded description of one GINI file. It is built once by
// Decode and never modified afterwards.
type Product struct {
	SourceID        int
	EntityID        int
	SectorID        int
	PhysicalElement PhysicalElement
	Time            time.Time

	ProjIndex  projection.Kind
	Projection projection.Projection // nil for unknown projection indices
	Nx, Ny     int

	Lat1, Lon1 float64
	Lat2, Lon2 float64
	Lonv       float64 // central meridian (lov for Lambert/Polar)
	Latin      float64
	Dx, Dy     float64 // km; Lambert/Polar only
	Pole       int     // 1 north, -1 south; Lambert/Polar only
	ImageScale float64 // Polar only

	Resolution  int
	Compression Compression
	Calibration *CalibrationTable

	Axes       Axes
	Layout     Layout
	Attributes []Attribute
}

// Attribute returns the named header attribute.
func (p *Product) Attribute(name string) (any, bool) {
	for _, a := range p.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// SourceName returns the display name of the product's source.
func (p *Product) SourceName() string { return SourceName(p.SourceID) }

// EntityName returns the display name of the creating entity.
func (p *Product) EntityName() string { return EntityName(p.EntityID) }

// SectorName returns the display name of the sector.
func (p *Product) SectorName() string { return SectorName(p.SectorID) }
