package parser

import (
	"bytes"
)

var (
	pibMarkers = [][]byte{[]byte("KNES"), []byte("CHIZ")}
	pibEnd     = []byte("\r\r\n")
)

// findPIB returns the offset just past the "\r\r\n" that follows the first
// KNES or CHIZ marker in buf.
func findPIB(buf []byte) (int, bool) {
	start := -1
	for _, m := range pibMarkers {
		if i := bytes.Index(buf, m); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}
	if start < 0 {
		return 0, false
	}
	end := bytes.Index(buf[start+4:], pibEnd)
	if end < 0 {
		return 0, false
	}
	return start + 4 + end + len(pibEnd), true
}

// LocatePIB reports whether the first PIBLength+HeaderLength bytes of src
// contain a KNES or CHIZ marker followed by "\r\r\n". Sources shorter than
// that are scanned as far as they go.
func LocatePIB(src Source) (bool, error) {
	buf, err := readAt(src, 0, PIBLength+HeaderLength)
	if err != nil {
		return false, err
	}
	_, ok := findPIB(buf)
	return ok, nil
}
