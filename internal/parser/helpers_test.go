package parser

import (
	"bytes"
	"math"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// testPIB is a 21-byte WMO heading ending in the KNES framing.
const testPIB = "TIGE01 KNES 011200\r\r\n"

type testLevel struct {
	minB, maxB, minD, maxD int32
}

// testHeader describes a synthetic product definition block.
type testHeader struct {
	source, entity, sector, element byte
	year, month, day, hour, minute  byte
	second                          byte
	proj                            byte
	nx, ny                          int
	block                           []byte // bytes 20-40
	resolution                      int8
	pngFlag                         bool
	calUnit                         string
	levels                          []testLevel
}

func (th testHeader) bytes() []byte {
	h := make([]byte, HeaderLength)
	h[0], h[1], h[2], h[3] = th.source, th.entity, th.sector, th.element
	h[8], h[9], h[10], h[11], h[12], h[13] = th.year, th.month, th.day, th.hour, th.minute, th.second
	h[15] = th.proj
	h[16], h[17] = byte(th.nx>>8), byte(th.nx)
	h[18], h[19] = byte(th.ny>>8), byte(th.ny)
	copy(h[20:41], th.block)
	h[41] = byte(th.resolution)
	if th.pngFlag {
		h[42] = 128
	}
	if th.calUnit != "" || len(th.levels) > 0 {
		h[46] = 128
		copy(h[47:55], []byte(th.calUnit+"        "))
		h[55] = byte(len(th.levels))
		for i, l := range th.levels {
			off := 56 + i*20
			putInt32(h[off:], l.minB)
			putInt32(h[off+4:], l.maxB)
			putInt32(h[off+8:], l.minD)
			putInt32(h[off+12:], l.maxD)
		}
	}
	return h
}

func putInt32(b []byte, v int32) {
	u := uint32(v)
	b[0], b[1], b[2], b[3] = byte(u>>24), byte(u>>16), byte(u>>8), byte(u)
}

// putSM24 stores v*10000 as a 3-byte sign-magnitude integer.
func putSM24(b []byte, v float64) {
	m := int(math.Round(math.Abs(v) * 10000))
	b[0], b[1], b[2] = byte(m>>16)&0x7F, byte(m>>8), byte(m)
	if v < 0 {
		b[0] |= 0x80
	}
}

func mercatorBlock(lat1, lon1, lat2, lon2, latin float64) []byte {
	b := make([]byte, 21)
	putSM24(b[0:], lat1)
	putSM24(b[3:], lon1)
	putSM24(b[7:], lat2)
	putSM24(b[10:], lon2)
	putSM24(b[18:], latin)
	return b
}

func conicBlock(lat1, lon1, lov, dx, dy float64, south bool, latin float64) []byte {
	b := make([]byte, 21)
	putSM24(b[0:], lat1)
	putSM24(b[3:], lon1)
	putSM24(b[7:], lov)
	putSM24(b[10:], dx)
	putSM24(b[13:], dy)
	if south {
		b[16] = 128
	}
	putSM24(b[18:], latin)
	return b
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buf.Bytes()
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte((i*7 + i/13) % 251)
	}
	return b
}

func polarHeader() testHeader {
	return testHeader{
		source: 1, entity: 15, sector: 0, element: 4,
		year: 3, month: 6, day: 14, hour: 18, minute: 15, second: 0,
		proj:  5,
		nx:    2,
		ny:    2,
		block: conicBlock(40.0, -100.0, -105.0, 100.0, 100.0, false, 60.0),
	}
}
