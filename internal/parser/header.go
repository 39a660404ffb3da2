package parser

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/sirupsen/logrus"
)

// RawHeader is the 533-byte GINI header as found in (or inflated from) a source.
type RawHeader struct {
	// Bytes holds the header. When the inflated header is shorter than
	// HeaderLength the tail is zero.
	Bytes [HeaderLength]byte

	// Offset is where the header (or its compressed form) starts in the
	// source: 0, or just past a KNES/CHIZ "\r\r\n" framing.
	Offset int64

	// DataStart is where the image payload starts in the source.
	DataStart int64

	// Compressed reports whether the header was zlib-compressed.
	Compressed bool

	// PayloadPrefix holds the first two payload bytes, used to detect a
	// zlib-compressed payload. It is shorter when the source ends early.
	PayloadPrefix []byte

	// SourceSize is the total size of the source.
	SourceSize int64
}

// ReadRawHeader locates and extracts the header from src.
//
// A leading WMO/PIB framing is skipped when present. If the two bytes at the
// header offset are a zlib signature, the HeaderLength bytes there are
// inflated, the nested KNES/CHIZ framing inside them is skipped, and the
// payload is taken to start right after the compressed bytes the inflater
// consumed.
func ReadRawHeader(src Source, log logrus.FieldLogger) (*RawHeader, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	scan, err := readAt(src, 0, PIBLength+HeaderLength)
	if err != nil {
		return nil, err
	}
	pos, ok := findPIB(scan)
	if !ok {
		log.Debug("no KNES/CHIZ framing found, reading header at offset 0")
		pos = 0
	}
	offset := int64(pos)

	window, err := readAt(src, offset, HeaderLength)
	if err != nil {
		return nil, err
	}
	if len(window) < 2 {
		return nil, &ShortReadError{Offset: offset, Want: HeaderLength, Got: len(window), Err: io.ErrUnexpectedEOF}
	}

	raw := &RawHeader{Offset: offset, SourceSize: src.Size()}
	if isZlibPrefix(window) {
		inflated, consumed, err := inflateHeader(window, offset, log)
		if err != nil {
			return nil, err
		}
		pos1, _ := findPIB(inflated)
		copy(raw.Bytes[:], inflated[pos1:])
		raw.Compressed = true
		raw.DataStart = offset + int64(consumed)
		log.WithFields(logrus.Fields{
			"offset":     offset,
			"inflated":   len(inflated),
			"consumed":   consumed,
			"data_start": raw.DataStart,
		}).Debug("inflated compressed header")
	} else {
		if len(window) < HeaderLength {
			return nil, &ShortReadError{Offset: offset, Want: HeaderLength, Got: len(window), Err: io.ErrUnexpectedEOF}
		}
		copy(raw.Bytes[:], window)
		raw.DataStart = offset + HeaderLength
	}

	raw.PayloadPrefix, err = readAt(src, raw.DataStart, 2)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// inflateHeader inflates at most HeaderLength bytes from window and reports
// how many input bytes the inflater consumed.
func inflateHeader(window []byte, offset int64, log logrus.FieldLogger) ([]byte, int, error) {
	br := bytes.NewReader(window)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, 0, &HeaderInflateError{Offset: offset, Err: err}
	}
	defer zr.Close()

	buf := make([]byte, HeaderLength)
	n, err := io.ReadFull(zr, buf)
	switch {
	case err == nil:
		// Reading past HeaderLength also verifies the checksum of a
		// stream that ends exactly there.
		var extra [1]byte
		m, rerr := zr.Read(extra[:])
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return nil, 0, &HeaderInflateError{Offset: offset, Err: rerr}
		}
		if m > 0 {
			log.WithField("offset", offset).Warn("compressed header inflates to more than 533 bytes")
		}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		log.WithFields(logrus.Fields{
			"offset":   offset,
			"inflated": n,
		}).Warn("compressed header inflated size differs from 533 bytes")
	default:
		return nil, 0, &HeaderInflateError{Offset: offset, Err: err}
	}
	return buf[:n], len(window) - br.Len(), nil
}
