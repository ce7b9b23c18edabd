// Package levelshift centers unsigned samples at zero so the DCT's zero
// bin absorbs the mean, and inverts that shift on decode. Adapted from the
// BitsStored-driven signed/unsigned conversion in
// jpeg/extended/pixel_shift.go, generalized from raw bytes to the flat
// int32 pixel buffer carried by image.Image.
package levelshift

import "errors"

// ErrInvalidBitDepth is returned when bitsStored is out of [1,16].
var ErrInvalidBitDepth = errors.New("levelshift: invalid bit depth")

// Apply subtracts 2^(bitsStored-1) from every pixel in place, moving
// unsigned samples into a zero-centered signed domain.
func Apply(pixels []int32, bitsStored int) error {
	if bitsStored < 1 || bitsStored > 16 {
		return ErrInvalidBitDepth
	}
	offset := int32(1) << (bitsStored - 1)
	for i, p := range pixels {
		pixels[i] = p - offset
	}
	return nil
}

// Invert adds 2^(bitsStored-1) back to every pixel in place and clamps the
// result to [0, 2^bitsStored - 1].
func Invert(pixels []int32, bitsStored int) error {
	if bitsStored < 1 || bitsStored > 16 {
		return ErrInvalidBitDepth
	}
	offset := int32(1) << (bitsStored - 1)
	max := (int32(1) << bitsStored) - 1
	for i, p := range pixels {
		v := p + offset
		if v < 0 {
			v = 0
		} else if v > max {
			v = max
		}
		pixels[i] = v
	}
	return nil
}
