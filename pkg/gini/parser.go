package gini

import (
	"bytes"
	"fmt"
	"os"

	"github.com/beetlebugorg/gini/internal/parser"
)

// Parser parses GINI satellite and radar products.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read
// files, or ParseSource for data already in memory.
type Parser interface {
	// Parse reads a GINI file and returns the decoded product.
	//
	// The whole file is read into memory, so the returned Product holds no
	// open file handle.
	Parse(filename string) (*Product, error)

	// ParseWithOptions parses a GINI file with custom options.
	ParseWithOptions(filename string, opts ParseOptions) (*Product, error)

	// ParseSource decodes the header of src. The Product keeps src for
	// later ReadData calls and closes it on Close when src is an io.Closer.
	ParseSource(src Source, opts ParseOptions) (*Product, error)
}

// NewParser creates a new GINI parser with default settings.
//
// Example:
//
//	parser := gini.NewParser()
//	product, err := parser.Parse("TIGE01_KNES_011200.gini")
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and attaches the payload source
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(filename string) (*Product, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Product, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	product, err := p.ParseSource(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	product.path = filename
	return product, nil
}

func (p *parserWrapper) ParseSource(src Source, opts ParseOptions) (*Product, error) {
	internalOpts := parser.ParseOptions{
		Logger:              opts.Logger,
		ValidateCoordinates: opts.ValidateCoordinates,
		RequirePIB:          opts.RequirePIB,
	}
	internalProduct, err := p.internal.ParseSource(src, internalOpts)
	if err != nil {
		return nil, err
	}
	return newProduct(internalProduct, src, opts), nil
}

// IsGINI reports whether the file starts with a KNES or CHIZ product
// framing. Unframed GINI files exist, so false does not rule a file out.
func IsGINI(filename string) (bool, error) {
	src, err := parser.OpenFile(filename)
	if err != nil {
		return false, err
	}
	defer src.Close()
	return parser.LocatePIB(src)
}
