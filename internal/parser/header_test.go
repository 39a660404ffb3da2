package parser

import (
	"bytes"
	"errors"
	"testing"
)

func TestLocatePIB(t *testing.T) {
	hdr := polarHeader().bytes()
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"KNES framing", append([]byte(testPIB), hdr...), true},
		{"CHIZ framing", append([]byte("SDUS01 CHIZ 011200\r\r\n"), hdr...), true},
		{"no framing", hdr, false},
		{"marker without terminator", append([]byte("TIGE01 KNES 011200 \n\n"), hdr...), false},
		{"short file", []byte("KNES\r\r\n"), true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocatePIB(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("LocatePIB failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLocatePIBOutsideWindow(t *testing.T) {
	data := make([]byte, PIBLength+HeaderLength)
	data = append(data, []byte("KNES\r\r\n")...)
	got, err := LocatePIB(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LocatePIB failed: %v", err)
	}
	if got {
		t.Error("Expected marker beyond the scan window to be ignored")
	}
}

func TestReadRawHeaderFramed(t *testing.T) {
	hdr := polarHeader().bytes()
	payload := pattern(4)
	data := append(append([]byte(testPIB), hdr...), payload...)

	raw, err := ReadRawHeader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("ReadRawHeader failed: %v", err)
	}
	if raw.Offset != PIBLength {
		t.Errorf("Expected offset %d, got %d", PIBLength, raw.Offset)
	}
	if raw.DataStart != PIBLength+HeaderLength {
		t.Errorf("Expected data start %d, got %d", PIBLength+HeaderLength, raw.DataStart)
	}
	if raw.Compressed {
		t.Error("Expected uncompressed header")
	}
	if !bytes.Equal(raw.Bytes[:], hdr) {
		t.Error("Header bytes differ from input")
	}
	if !bytes.Equal(raw.PayloadPrefix, payload[:2]) {
		t.Errorf("Expected payload prefix %x, got %x", payload[:2], raw.PayloadPrefix)
	}
	if raw.SourceSize != int64(len(data)) {
		t.Errorf("Expected source size %d, got %d", len(data), raw.SourceSize)
	}
}

func TestReadRawHeaderUnframed(t *testing.T) {
	hdr := polarHeader().bytes()
	raw, err := ReadRawHeader(bytes.NewReader(hdr), nil)
	if err != nil {
		t.Fatalf("ReadRawHeader failed: %v", err)
	}
	if raw.Offset != 0 {
		t.Errorf("Expected offset 0, got %d", raw.Offset)
	}
	if raw.DataStart != HeaderLength {
		t.Errorf("Expected data start %d, got %d", HeaderLength, raw.DataStart)
	}
	if len(raw.PayloadPrefix) != 0 {
		t.Errorf("Expected empty payload prefix, got %x", raw.PayloadPrefix)
	}
}

func TestReadRawHeaderShort(t *testing.T) {
	data := append([]byte(testPIB), polarHeader().bytes()[:100]...)
	_, err := ReadRawHeader(bytes.NewReader(data), nil)
	var shortErr *ShortReadError
	if !errors.As(err, &shortErr) {
		t.Fatalf("Expected ShortReadError, got %v", err)
	}
}

func TestReadRawHeaderCompressed(t *testing.T) {
	hdr := polarHeader().bytes()

	// The compressed block carries its own framing and the product
	// definition block, 533 bytes in all.
	inner := append([]byte(testPIB), hdr[:ProductDescriptionLength]...)
	comp := compress(t, inner)
	payload := pattern(600)
	data := append(append([]byte(testPIB), comp...), payload...)

	raw, err := ReadRawHeader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("ReadRawHeader failed: %v", err)
	}
	if !raw.Compressed {
		t.Error("Expected compressed header")
	}
	if !bytes.Equal(raw.Bytes[:ProductDescriptionLength], hdr[:ProductDescriptionLength]) {
		t.Error("Inflated product definition block differs from input")
	}
	for i, b := range raw.Bytes[ProductDescriptionLength:] {
		if b != 0 {
			t.Fatalf("Expected zero padding at %d, got %d", ProductDescriptionLength+i, b)
		}
	}
	wantStart := int64(PIBLength + len(comp))
	if raw.DataStart != wantStart {
		t.Errorf("Expected data start %d, got %d", wantStart, raw.DataStart)
	}
	if !bytes.Equal(raw.PayloadPrefix, payload[:2]) {
		t.Errorf("Expected payload prefix %x, got %x", payload[:2], raw.PayloadPrefix)
	}
}

func TestReadRawHeaderCompressedSizeMismatch(t *testing.T) {
	hdr := polarHeader().bytes()
	comp := compress(t, hdr[:300])
	data := append([]byte(testPIB), comp...)
	data = append(data, make([]byte, 600)...)

	raw, err := ReadRawHeader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("Expected size mismatch to be tolerated, got %v", err)
	}
	if !bytes.Equal(raw.Bytes[:300], hdr[:300]) {
		t.Error("Inflated bytes differ from input")
	}
}

func TestReadRawHeaderCompressedBadChecksum(t *testing.T) {
	hdr := polarHeader().bytes()

	tests := []struct {
		name  string
		inner []byte
	}{
		{"full length", append([]byte(testPIB), hdr[:ProductDescriptionLength]...)},
		{"short", hdr[:300]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := compress(t, tt.inner)
			comp[len(comp)-1] ^= 0xFF
			data := append([]byte(testPIB), comp...)
			data = append(data, make([]byte, 600)...)

			raw, err := ReadRawHeader(bytes.NewReader(data), nil)
			var inflateErr *HeaderInflateError
			if !errors.As(err, &inflateErr) {
				t.Fatalf("Expected HeaderInflateError, got %v", err)
			}
			if raw != nil {
				t.Error("Expected no header on checksum failure")
			}
		})
	}
}

func TestReadRawHeaderMalformedDeflate(t *testing.T) {
	window := bytes.Repeat([]byte{0xFF}, HeaderLength)
	window[0], window[1] = 0x78, 0x9C
	data := append([]byte(testPIB), window...)

	_, err := ReadRawHeader(bytes.NewReader(data), nil)
	var inflateErr *HeaderInflateError
	if !errors.As(err, &inflateErr) {
		t.Fatalf("Expected HeaderInflateError, got %v", err)
	}
	if inflateErr.Offset != PIBLength {
		t.Errorf("Expected offset %d, got %d", PIBLength, inflateErr.Offset)
	}
}
