package gini

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zlib"
)

const testPIB = "TIGE01 KNES 011200\r\r\n"

// testFile describes a synthetic GINI file.
type testFile struct {
	entity, sector, element byte
	when                    time.Time
	proj                    byte
	nx, ny                  int
	block                   []byte // header bytes 20-40
	resolution              int8
	levels                  [][4]int32 // minB, maxB, minD, maxD
	framed                  bool
	payload                 []byte
}

func (tf testFile) header() []byte {
	h := make([]byte, 533)
	h[0], h[1], h[2], h[3] = 1, tf.entity, tf.sector, tf.element
	when := tf.when
	if when.IsZero() {
		when = time.Date(2004, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	h[8] = byte(when.Year() % 100)
	h[9], h[10], h[11] = byte(when.Month()), byte(when.Day()), byte(when.Hour())
	h[12], h[13] = byte(when.Minute()), byte(when.Second())
	h[15] = tf.proj
	h[16], h[17] = byte(tf.nx>>8), byte(tf.nx)
	h[18], h[19] = byte(tf.ny>>8), byte(tf.ny)
	copy(h[20:41], tf.block)
	h[41] = byte(tf.resolution)
	if len(tf.levels) > 0 {
		h[46] = 128
		copy(h[47:55], "K       ")
		h[55] = byte(len(tf.levels))
		for i, l := range tf.levels {
			for k, v := range l {
				putInt32(h[56+i*20+k*4:], v)
			}
		}
	}
	return h
}

func (tf testFile) bytes() []byte {
	var data []byte
	if tf.framed {
		data = append(data, testPIB...)
	}
	data = append(data, tf.header()...)
	payload := tf.payload
	if payload == nil {
		payload = pattern(tf.nx * tf.ny)
	}
	return append(data, payload...)
}

func (tf testFile) write(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, tf.bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
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

// mercatorFile is a framed Mercator product covering the given box with
// one column per degree of longitude and one row per degree of latitude.
func mercatorFile(minLat, minLon, maxLat, maxLon float64) testFile {
	block := make([]byte, 21)
	putSM24(block[0:], minLat)
	putSM24(block[3:], minLon)
	putSM24(block[7:], maxLat)
	putSM24(block[10:], maxLon)
	putSM24(block[18:], 20)
	return testFile{
		entity: 15, sector: 1, element: 2,
		proj:       1,
		nx:         int(maxLon-minLon) + 1,
		ny:         int(maxLat-minLat) + 1,
		block:      block,
		resolution: 4,
		framed:     true,
	}
}

// polarFile is a north polar stereographic product whose lower-left corner
// is at (lat1, lon1) with 1000 km spacing.
func polarFile(lat1, lon1 float64, nx, ny int) testFile {
	block := make([]byte, 21)
	putSM24(block[0:], lat1)
	putSM24(block[3:], lon1)
	putSM24(block[7:], -105)
	putSM24(block[10:], 1000)
	putSM24(block[13:], 1000)
	putSM24(block[18:], 60)
	return testFile{
		entity: 15, sector: 0, element: 4,
		proj:       5,
		nx:         nx,
		ny:         ny,
		block:      block,
		resolution: 8,
		framed:     true,
	}
}

func compress(t testing.TB, data []byte) []byte {
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

func parseBytes(t testing.TB, data []byte) *Product {
	t.Helper()
	p, err := NewParser().ParseSource(bytes.NewReader(data), DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}
	return p
}
