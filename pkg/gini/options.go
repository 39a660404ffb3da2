package gini

import (
	"github.com/sirupsen/logrus"
)

// DefaultPayloadCacheLimit is the largest decoded image, in bytes, kept by
// a Product's payload cache.
const DefaultPayloadCacheLimit = 4 << 20

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Logger receives decode diagnostics such as an unknown projection or a
	// compressed header that inflates to the wrong length.
	// Default: logrus standard logger.
	Logger logrus.FieldLogger

	// ValidateCoordinates rejects headers whose first grid point lies
	// outside ±90/±180. Default: true.
	ValidateCoordinates bool

	// RequirePIB rejects files that carry no KNES/CHIZ framing.
	// Default: false, the header is then assumed to start at offset 0.
	RequirePIB bool

	// PayloadCacheLimit keeps decoded zlib and PNG payloads of at most this
	// many bytes in memory so repeated ReadData calls skip decompression.
	// Zero disables the cache.
	PayloadCacheLimit int
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Logger:              logrus.StandardLogger(),
		ValidateCoordinates: true,
		RequirePIB:          false,
		PayloadCacheLimit:   DefaultPayloadCacheLimit,
	}
}
