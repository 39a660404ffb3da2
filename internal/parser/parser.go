package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Parser parses GINI satellite and radar products.
//
// A GINI file is an optional WMO/PIB framing (ending in "KNES\r\r\n" or
// "CHIZ\r\r\n"), a 533-byte product header whose first 512 bytes are the
// product definition block, and an image payload that is raw, zlib
// compressed, or an embedded PNG. The header itself may be zlib compressed.
type Parser interface {
	// ParseSource decodes the header of src. Callers reading files open
	// them with OpenFile or read them into a bytes.Reader first.
	ParseSource(src Source, opts ParseOptions) (*Product, error)
}

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// Logger receives decode diagnostics (unknown projection, header size
	// mismatch). Default: logrus standard logger
	Logger logrus.FieldLogger

	// ValidateCoordinates: if true, reject headers whose first grid point is
	// outside ±90/±180
	// Default: true
	ValidateCoordinates bool

	// RequirePIB: if true, reject files without a KNES/CHIZ framing
	// Default: false (header assumed at offset 0)
	RequirePIB bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Logger:              logrus.StandardLogger(),
		ValidateCoordinates: true,
		RequirePIB:          false,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new GINI parser
func NewParser() Parser {
	return &defaultParser{}
}

// ParseSource decodes the header of src
func (p *defaultParser) ParseSource(src Source, opts ParseOptions) (*Product, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	if opts.RequirePIB {
		ok, err := LocatePIB(src)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no KNES/CHIZ product framing in first %d bytes", PIBLength+HeaderLength)
		}
	}

	// 1. Locate and extract (inflating if needed) the header
	raw, err := ReadRawHeader(src, log)
	if err != nil {
		return nil, err
	}

	// 2. Decode fields, projection, calibration and axes
	product, err := Decode(raw, log)
	if err != nil {
		return nil, err
	}

	// 3. Validate what came straight from the file
	if opts.ValidateCoordinates {
		if err := ValidateProduct(product); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"element":     product.PhysicalElement.Name,
		"sector":      product.SectorName(),
		"projection":  product.ProjIndex.String(),
		"nx":          product.Nx,
		"ny":          product.Ny,
		"compression": product.Compression.String(),
	}).Debug("decoded GINI header")
	return product, nil
}
