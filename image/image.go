// Package image defines the value the mcodec core exchanges with external
// loaders and savers: a single-channel, row-major pixel buffer with
// DICOM-style bit-depth metadata.
package image

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")
	// ErrInvalidChannels is returned when channels != 1.
	ErrInvalidChannels = errors.New("image: only single-channel (grayscale) images are supported")
	// ErrInvalidBitDepth is returned when bits_allocated/bits_stored are out of range.
	ErrInvalidBitDepth = errors.New("image: invalid bit depth")
	// ErrBufferLength is returned when len(Pixels) != Width*Height.
	ErrBufferLength = errors.New("image: pixel buffer length mismatch")
	// ErrPixelOutOfRange is returned when a pixel does not fit in BitsStored under the sign interpretation.
	ErrPixelOutOfRange = errors.New("image: pixel value out of range for bits_stored")
)

// Image is the in-memory representation of a single-channel medical image.
// Pixels is always a flat, row-major buffer of 32-bit signed samples
// regardless of the on-wire bit depth.
type Image struct {
	Width          int
	Height         int
	Channels       int // always 1
	BitsAllocated  int // 8 or 16
	BitsStored     int // 1..BitsAllocated
	IsSigned       bool
	Pixels         []int32
}

// New constructs an Image and validates it.
func New(width, height, bitsAllocated, bitsStored int, isSigned bool, pixels []int32) (*Image, error) {
	im := &Image{
		Width:         width,
		Height:        height,
		Channels:      1,
		BitsAllocated: bitsAllocated,
		BitsStored:    bitsStored,
		IsSigned:      isSigned,
		Pixels:        pixels,
	}
	if err := im.Validate(); err != nil {
		return nil, err
	}
	return im, nil
}

// Validate checks the structural invariants of an Image: positive
// dimensions, single channel, a bit depth in [1,16] allocated in {8,16},
// a pixel buffer of exactly Width*Height samples, and every sample fitting
// in BitsStored under the current sign interpretation.
func (im *Image) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return ErrInvalidDimensions
	}
	if im.Channels != 1 {
		return ErrInvalidChannels
	}
	if im.BitsAllocated != 8 && im.BitsAllocated != 16 {
		return ErrInvalidBitDepth
	}
	if im.BitsStored < 1 || im.BitsStored > im.BitsAllocated {
		return ErrInvalidBitDepth
	}
	if len(im.Pixels) != im.Width*im.Height {
		return ErrBufferLength
	}

	if im.IsSigned {
		lo := int32(-1) << (im.BitsStored - 1)
		hi := -lo - 1
		for _, p := range im.Pixels {
			if p < lo || p > hi {
				return ErrPixelOutOfRange
			}
		}
	} else {
		hi := (int32(1) << im.BitsStored) - 1
		for _, p := range im.Pixels {
			if p < 0 || p > hi {
				return ErrPixelOutOfRange
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the image, used by the encoder so it never
// mutates the caller's buffer.
func (im *Image) Clone() *Image {
	out := *im
	out.Pixels = make([]int32, len(im.Pixels))
	copy(out.Pixels, im.Pixels)
	return &out
}
