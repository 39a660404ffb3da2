package parser

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/klauspost/compress/zlib"
)

// inflateChunk is the amount of output requested from the inflater per read.
const inflateChunk = 4000

// ReadPayload decodes the full image payload described by layout and returns
// exactly Nx*Ny bytes in row-major order, first row first.
func ReadPayload(src Source, layout Layout, mode Compression) ([]byte, error) {
	want := layout.Nx * layout.Ny
	switch mode {
	case CompressionZlib:
		in, err := readAt(src, layout.Offset, int(layout.Size))
		if err != nil {
			return nil, err
		}
		out, err := inflatePayload(in, layout.Nx, layout.Ny)
		if err != nil {
			return nil, &PayloadInflateError{Offset: layout.Offset, Codec: "zlib", Err: err}
		}
		return fitLength(out, want), nil

	case CompressionPNG:
		in, err := readAt(src, layout.Offset, int(layout.Size))
		if err != nil {
			return nil, err
		}
		out, err := decodeEmbeddedPNG(in)
		if err != nil {
			if errors.Is(err, ErrUnsupportedPixelLayout) {
				return nil, err
			}
			return nil, &PayloadInflateError{Offset: layout.Offset, Codec: "png", Err: err}
		}
		return fitLength(out, want), nil

	default:
		in, err := readAt(src, layout.Offset, int(layout.Size))
		if err != nil {
			return nil, err
		}
		if len(in) < want {
			return nil, &ShortReadError{Offset: layout.Offset, Want: want, Got: len(in), Err: io.ErrUnexpectedEOF}
		}
		return in[:want], nil
	}
}

// inflatePayload inflates one or more concatenated zlib streams. When a
// stream ends and the remaining input does not start with a zlib signature,
// the remainder is appended uncompressed and decoding stops.
func inflatePayload(in []byte, nx, ny int) ([]byte, error) {
	br := bytes.NewReader(in)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	// Room for one spare row before the first grow.
	out := make([]byte, nx*(ny+1)+inflateChunk)
	n := 0
	for {
		if n+inflateChunk > len(out) {
			grown := make([]byte, 2*len(out))
			copy(grown, out[:n])
			out = grown
		}
		m, err := zr.Read(out[n : n+inflateChunk])
		n += m
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}

		rest := in[len(in)-br.Len():]
		if len(rest) == 0 {
			break
		}
		if isZlibPrefix(rest) {
			if err := zr.(zlib.Resetter).Reset(br, nil); err != nil {
				return nil, err
			}
			continue
		}
		out = append(out[:n], rest...)
		n = len(out)
		break
	}
	return out[:n], nil
}

// decodeEmbeddedPNG decodes a PNG payload whose pixels are single bytes.
func decodeEmbeddedPNG(in []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}

	var pix []byte
	var stride int
	switch im := img.(type) {
	case *image.Gray:
		pix, stride = im.Pix, im.Stride
	case *image.Paletted:
		pix, stride = im.Pix, im.Stride
	default:
		return nil, ErrUnsupportedPixelLayout
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], pix[y*stride:y*stride+w])
	}
	return out, nil
}

// fitLength truncates or zero-pads b to n bytes.
func fitLength(b []byte, n int) []byte {
	if len(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
