package parser

// GINI product layout constants.
const (
	// PIBLength is the length of the WMO/PIB framing that may precede the header.
	PIBLength = 21

	// HeaderLength is the number of header bytes read at the header offset.
	HeaderLength = 533

	// ProductDescriptionLength is the size of the product definition block
	// at the start of the header.
	ProductDescriptionLength = 512

	// KmPerDegree approximates the length of one degree of latitude.
	KmPerDegree = 111.26

	calibrationIndicator = 128
	embeddedImageFlag    = 128

	zlibMethodDeflate = 8
	zlibMaxWindowBits = 15
)

// IsZlibHeader reports whether b0, b1 look like the first two bytes of a
// zlib stream (RFC 1950): compression method 8, window size at most 2^15,
// and a header checksum that makes the pair a multiple of 31.
func IsZlibHeader(b0, b1 byte) bool {
	if b0&0x0F != zlibMethodDeflate {
		return false
	}
	if int(b0>>4)+8 > zlibMaxWindowBits {
		return false
	}
	return (int(b0)<<8+int(b1))%31 == 0
}

func isZlibPrefix(b []byte) bool {
	return len(b) >= 2 && IsZlibHeader(b[0], b[1])
}

// uint16BE decodes an unsigned big-endian 16-bit integer.
func uint16BE(b []byte) int {
	return int(b[0])<<8 | int(b[1])
}

// int32BE decodes a two's complement big-endian 32-bit integer.
func int32BE(b []byte) int {
	return int(int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])))
}

// signMagnitude24 decodes a 3-byte big-endian integer whose top bit is the
// sign and whose remaining 23 bits are the magnitude.
func signMagnitude24(b []byte) int {
	v := int(b[0]&0x7F)<<16 | int(b[1])<<8 | int(b[2])
	if b[0]&0x80 != 0 {
		return -v
	}
	return v
}

// scaled24 reads a 3-byte sign-magnitude value in units of 1/10000.
func scaled24(b []byte) float64 {
	return float64(signMagnitude24(b)) / 10000.0
}
