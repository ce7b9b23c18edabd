package pgm

import "errors"

var (
	// ErrBadMagic is returned when a file does not start with the P5 magic.
	ErrBadMagic = errors.New("pgm: not a P5 (binary grayscale) file")
	// ErrBadHeader is returned when the width/height/maxval header fields
	// cannot be parsed.
	ErrBadHeader = errors.New("pgm: malformed header")
	// ErrUnsupportedMaxval is returned when maxval is non-positive or
	// exceeds 65535 (the largest sample PGM's 8/16-bit sample sizes can hold).
	ErrUnsupportedMaxval = errors.New("pgm: maxval must be in [1,65535]")
	// ErrTruncatedData is returned when the pixel data is shorter than
	// width*height samples.
	ErrTruncatedData = errors.New("pgm: truncated pixel data")
	// ErrUnsupportedBitDepth is returned when Save is given an image whose
	// bits_allocated is not 8 or 16.
	ErrUnsupportedBitDepth = errors.New("pgm: unsupported bit depth for PGM output")
)
