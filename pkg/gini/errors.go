package gini

import (
	"errors"
	"fmt"

	"github.com/beetlebugorg/gini/internal/parser"
)

// Errors returned while decoding headers and payloads. Use errors.As with
// the pointer types and errors.Is with the sentinels.
type (
	HeaderInflateError   = parser.HeaderInflateError
	PayloadInflateError  = parser.PayloadInflateError
	ShortReadError       = parser.ShortReadError
	ErrInvalidCoordinate = parser.ErrInvalidCoordinate
	ErrInvalidDimensions = parser.ErrInvalidDimensions
)

// ErrUnsupportedPixelLayout is returned when an embedded PNG payload does
// not decode to single-byte pixels. No array is returned with it.
var ErrUnsupportedPixelLayout = parser.ErrUnsupportedPixelLayout

// ErrClosed is returned by ReadData after Close.
var ErrClosed = errors.New("gini: product is closed")

// SectionError indicates an origin/shape/stride request that does not fit
// the array it is applied to.
type SectionError struct {
	Dim    int // offending dimension, -1 for a rank mismatch
	Reason string
}

func (e *SectionError) Error() string {
	if e.Dim < 0 {
		return fmt.Sprintf("invalid section: %s", e.Reason)
	}
	return fmt.Sprintf("invalid section: dimension %d: %s", e.Dim, e.Reason)
}
