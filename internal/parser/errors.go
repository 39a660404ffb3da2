package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPixelLayout indicates an embedded PNG whose decoded image is
// not single-byte gray or paletted.
var ErrUnsupportedPixelLayout = errors.New("unsupported embedded image pixel layout")

// ErrInvalidCoordinate indicates coordinate out of valid bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// HeaderInflateError indicates the compressed header could not be inflated.
type HeaderInflateError struct {
	Offset int64
	Err    error
}

func (e *HeaderInflateError) Error() string {
	return fmt.Sprintf("failed to inflate header at offset %d: %v", e.Offset, e.Err)
}

func (e *HeaderInflateError) Unwrap() error { return e.Err }

// PayloadInflateError indicates the image payload could not be decoded.
type PayloadInflateError struct {
	Offset int64
	Codec  string // "zlib" or "png"
	Err    error
}

func (e *PayloadInflateError) Error() string {
	return fmt.Sprintf("failed to decode %s payload at offset %d: %v", e.Codec, e.Offset, e.Err)
}

func (e *PayloadInflateError) Unwrap() error { return e.Err }

// ShortReadError indicates the source ended before the bytes a read needed.
type ShortReadError struct {
	Offset int64
	Want   int
	Got    int
	Err    error
}

func (e *ShortReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("short read at offset %d: wanted %d bytes, got %d: %v", e.Offset, e.Want, e.Got, e.Err)
	}
	return fmt.Sprintf("short read at offset %d: wanted %d bytes, got %d", e.Offset, e.Want, e.Got)
}

func (e *ShortReadError) Unwrap() error { return e.Err }

// ErrInvalidDimensions indicates a header with a zero-sized grid.
type ErrInvalidDimensions struct {
	Nx, Ny int
}

func (e *ErrInvalidDimensions) Error() string {
	return fmt.Sprintf("invalid grid dimensions: nx=%d ny=%d", e.Nx, e.Ny)
}
