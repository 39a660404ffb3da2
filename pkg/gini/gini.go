package gini

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/beetlebugorg/gini/internal/parser"
	"github.com/beetlebugorg/gini/internal/projection"
)

// Source is a random-access view of a GINI file. *bytes.Reader and
// *io.SectionReader satisfy it; OpenFile returns one backed by a file.
type Source = parser.Source

// OpenFile opens filename as a Source. The caller must Close it.
func OpenFile(filename string) (*parser.FileSource, error) {
	return parser.OpenFile(filename)
}

type (
	// Projection maps latitude/longitude in degrees to projected km and back.
	Projection = projection.Projection

	// ProjectionKind is the GINI projection index from header byte 15.
	ProjectionKind = projection.Kind

	// PhysicalElement describes what the image measures.
	PhysicalElement = parser.PhysicalElement

	// CalibrationTable maps brightness bytes to physical values.
	CalibrationTable = parser.CalibrationTable

	// CalibrationLevel is one brightness range of a CalibrationTable.
	CalibrationLevel = parser.CalibrationLevel

	// Attribute is a named header value.
	Attribute = parser.Attribute

	// Compression is the payload encoding.
	Compression = parser.Compression

	// DataType is the element type of decoded arrays.
	DataType = parser.DataType
)

const (
	ProjectionUnknown  = projection.KindUnknown
	ProjectionMercator = projection.KindMercator
	ProjectionLambert  = projection.KindLambert
	ProjectionPolar    = projection.KindPolar

	CompressionNone = parser.CompressionNone
	CompressionZlib = parser.CompressionZlib
	CompressionPNG  = parser.CompressionPNG

	DataTypeByte  = parser.DataTypeByte
	DataTypeFloat = parser.DataTypeFloat
)

// TimeUnits describes the values returned by TimeAxis.
const TimeUnits = parser.TimeUnits

// Product is a decoded GINI product.
//
// The header is decoded once when the product is parsed and never changes.
// The image payload is read from the source on each ReadData call, so a
// Product may serve concurrent readers.
type Product struct {
	p    *parser.Product
	src  Source
	path string
	log  logrus.FieldLogger

	cacheLimit int

	mu       sync.Mutex
	payloads *lru.Cache // payloadKey -> []byte
	closed   bool
}

// payloadKey identifies a decoded payload.
type payloadKey struct {
	offset int64
	mode   Compression
}

func newProduct(p *parser.Product, src Source, opts ParseOptions) *Product {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Product{
		p:          p,
		src:        src,
		log:        log,
		cacheLimit: opts.PayloadCacheLimit,
		payloads:   lru.New(2),
	}
}

// Path returns the file the product was parsed from, or "" for products
// parsed from a Source.
func (p *Product) Path() string { return p.path }

// SourceID returns the product source code (header byte 0).
func (p *Product) SourceID() int { return p.p.SourceID }

// SourceName returns the display name of the source, e.g. "NESDIS".
func (p *Product) SourceName() string { return p.p.SourceName() }

// EntityID returns the creating entity code (header byte 1).
func (p *Product) EntityID() int { return p.p.EntityID }

// EntityName returns the display name of the creating entity.
func (p *Product) EntityName() string { return p.p.EntityName() }

// IsRadar reports whether the product is a NEXRAD radar composite.
func (p *Product) IsRadar() bool { return p.p.EntityID == parser.RadarEntity }

// SectorID returns the sector code (header byte 2).
func (p *Product) SectorID() int { return p.p.SectorID }

// SectorName returns the display name of the sector, e.g. "East CONUS".
func (p *Product) SectorName() string { return p.p.SectorName() }

// PhysicalElement returns the description of the measured quantity.
func (p *Product) PhysicalElement() PhysicalElement { return p.p.PhysicalElement }

// Time returns the acquisition time in UTC.
func (p *Product) Time() time.Time { return p.p.Time }

// ProjectionKind returns the projection index from the header.
func (p *Product) ProjectionKind() ProjectionKind { return p.p.ProjIndex }

// Projection returns the map projection, or nil when the header names an
// unknown projection index.
func (p *Product) Projection() Projection { return p.p.Projection }

// Nx returns the number of columns.
func (p *Product) Nx() int { return p.p.Nx }

// Ny returns the number of rows.
func (p *Product) Ny() int { return p.p.Ny }

// Shape returns the shape of the full data array, [1, ny, nx].
func (p *Product) Shape() []int { return []int{1, p.p.Ny, p.p.Nx} }

// Lat1 and Lon1 return the first grid point in degrees.
func (p *Product) Lat1() float64 { return p.p.Lat1 }
func (p *Product) Lon1() float64 { return p.p.Lon1 }

// Lat2 and Lon2 return the opposite grid corner in degrees. For Lambert and
// polar stereographic products they are approximations derived from the
// grid spacing.
func (p *Product) Lat2() float64 { return p.p.Lat2 }
func (p *Product) Lon2() float64 { return p.p.Lon2 }

// Lonv returns the central meridian in degrees.
func (p *Product) Lonv() float64 { return p.p.Lonv }

// Latin returns the tangent latitude in degrees.
func (p *Product) Latin() float64 { return p.p.Latin }

// Dx and Dy return the grid spacing in km (Lambert and polar only).
func (p *Product) Dx() float64 { return p.p.Dx }
func (p *Product) Dy() float64 { return p.p.Dy }

// Pole returns 1 for a north polar projection center and -1 for south.
func (p *Product) Pole() int { return p.p.Pole }

// ImageScale returns the polar stereographic scale factor.
func (p *Product) ImageScale() float64 { return p.p.ImageScale }

// Resolution returns the nominal image resolution in km (header byte 41).
func (p *Product) Resolution() int { return p.p.Resolution }

// Compression returns the payload encoding.
func (p *Product) Compression() Compression { return p.p.Compression }

// Calibration returns the calibration table, or nil when the header has
// none.
func (p *Product) Calibration() *CalibrationTable { return p.p.Calibration }

// DataType returns the element type ReadData produces.
func (p *Product) DataType() DataType { return p.p.Layout.Type }

// DataOffset returns the payload start in the source.
func (p *Product) DataOffset() int64 { return p.p.Layout.Offset }

// Attributes returns a copy of the header attributes in decode order.
func (p *Product) Attributes() []Attribute {
	out := make([]Attribute, len(p.p.Attributes))
	copy(out, p.p.Attributes)
	return out
}

// Attribute returns the named header attribute.
//
// Example:
//
//	if units, ok := product.Attribute("units"); ok {
//	    fmt.Println(units)
//	}
func (p *Product) Attribute(name string) (any, bool) { return p.p.Attribute(name) }

// XAxis returns a copy of the x coordinates in km, one per column.
func (p *Product) XAxis() []float64 { return append([]float64(nil), p.p.Axes.X...) }

// YAxis returns a copy of the y coordinates in km, one per row, first
// (northernmost) row first.
func (p *Product) YAxis() []float64 { return append([]float64(nil), p.p.Axes.Y...) }

// TimeAxis returns the single time coordinate in TimeUnits.
func (p *Product) TimeAxis() []int64 { return append([]int64(nil), p.p.Axes.Time...) }

// Extent is a rectangle in projected km.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Contains reports whether (x, y) lies inside the extent.
func (e Extent) Contains(x, y float64) bool {
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// ProjectedExtent returns the range of the coordinate axes.
func (p *Product) ProjectedExtent() Extent {
	x, y := p.p.Axes.X, p.p.Axes.Y
	if len(x) == 0 || len(y) == 0 {
		return Extent{}
	}
	return Extent{
		MinX: floats.Min(x), MaxX: floats.Max(x),
		MinY: floats.Min(y), MaxY: floats.Max(y),
	}
}

// Bounds returns the geographic bounding box of the grid.
//
// The box is built from the inverse projection of the grid corners and edge
// midpoints. A polar stereographic grid containing its pole extends to ±90
// latitude across all longitudes. Products without a known projection
// return an empty Bounds.
func (p *Product) Bounds() Bounds {
	proj := p.p.Projection
	x, y := p.p.Axes.X, p.p.Axes.Y
	if proj == nil || len(x) == 0 || len(y) == 0 {
		return Bounds{}
	}

	xs := []float64{x[0], x[len(x)/2], x[len(x)-1]}
	ys := []float64{y[0], y[len(y)/2], y[len(y)-1]}

	b := Bounds{MinLon: math.Inf(1), MaxLon: math.Inf(-1), MinLat: math.Inf(1), MaxLat: math.Inf(-1)}
	for _, px := range xs {
		for _, py := range ys {
			lat, lon := proj.Inverse(px, py)
			b.MinLon = math.Min(b.MinLon, lon)
			b.MaxLon = math.Max(b.MaxLon, lon)
			b.MinLat = math.Min(b.MinLat, lat)
			b.MaxLat = math.Max(b.MaxLat, lat)
		}
	}

	if proj.Kind() == projection.KindPolar {
		pole := float64(p.p.Pole) * 90
		if p.ProjectedExtent().Contains(proj.Forward(pole, p.p.Lonv)) {
			b.MinLon, b.MaxLon = -180, 180
			if pole > 0 {
				b.MaxLat = 90
			} else {
				b.MinLat = -90
			}
		}
	}
	return b
}

// Locate returns the row and column of the grid cell nearest to (lat, lon).
// ok is false when the point falls outside the grid or the product has no
// projection.
func (p *Product) Locate(lat, lon float64) (row, col int, ok bool) {
	proj := p.p.Projection
	if proj == nil || len(p.p.Axes.X) == 0 || len(p.p.Axes.Y) == 0 {
		return 0, 0, false
	}
	x, y := proj.Forward(lat, lon)
	if math.IsNaN(x) || math.IsNaN(y) || !p.ProjectedExtent().Contains(x, y) {
		return 0, 0, false
	}
	return nearest(p.p.Axes.Y, y), nearest(p.p.Axes.X, x), true
}

// nearest returns the index of the axis value closest to v.
func nearest(axis []float64, v float64) int {
	best, dist := 0, math.Inf(1)
	for i, a := range axis {
		if d := math.Abs(a - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// Close releases the source and any cached payload. A source that is an
// io.Closer is closed.
func (p *Product) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.payloads.Clear()
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// memorySize estimates the bytes held by the product.
func (p *Product) memorySize() int64 {
	size := int64(1024)
	size += int64(len(p.p.Axes.X)+len(p.p.Axes.Y)) * 8
	size += int64(len(p.p.Attributes)) * 64
	if p.src != nil {
		if _, isFile := p.src.(*parser.FileSource); !isFile {
			size += p.src.Size()
		}
	}
	return size
}

// SourceName returns the name of a source code, or "Unknown".
func SourceName(code int) string { return parser.SourceName(code) }

// EntityName returns the name of a satellite or radar entity code, or
// "Unknown".
func EntityName(code int) string { return parser.EntityName(code) }

// SectorName returns the name of a sector code, or "Unknown".
func SectorName(code int) string { return parser.SectorName(code) }

// LookupPhysicalElement describes a physical element code. Some codes mean
// different things for radar mosaics and satellite images, so the entity
// is needed too.
func LookupPhysicalElement(code, entity int) PhysicalElement {
	return parser.LookupPhysicalElement(code, entity)
}
