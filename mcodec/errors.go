package mcodec

import "errors"

// The package groups errors into the four families this package names:
// invalid argument, malformed container, decode inconsistency, and encode
// overflow. Every sentinel below belongs to exactly one family.

var (
	// ErrInvalidQuality is returned when quality is outside [1,100].
	ErrInvalidQuality = errors.New("mcodec: quality must be in [1,100]")
	// ErrInvalidImage is returned when the input image fails its own
	// structural validation (non-grayscale, bad dimensions, buffer length
	// mismatch, bad bit depth).
	ErrInvalidImage = errors.New("mcodec: invalid image")

	// ErrNoUsedSymbols is returned when a block stream produces zero RLE
	// symbols to Huffman-encode; this cannot happen for any valid image
	// since the DC coefficient is always emitted, but is checked as a
	// pipeline invariant.
	ErrNoUsedSymbols = errors.New("mcodec: no used symbols to encode")

	// ErrMalformedContainer is returned when a .mcodec buffer fails
	// header or payload structural validation on decode: bad magic,
	// unsupported version, truncated payload, or a table longer than the
	// declared payload.
	ErrMalformedContainer = errors.New("mcodec: malformed container")

	// ErrDecodeInconsistency is returned when a structurally valid
	// container decodes to data inconsistent with its own header, such as
	// RLE pairs that expand to more or fewer coefficients than the header's
	// block grid holds.
	ErrDecodeInconsistency = errors.New("mcodec: decode inconsistency")
)
