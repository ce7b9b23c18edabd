// Package quant implements the uniform scalar quantizer parameterized by
// a quality scalar. Unlike the frequency-dependent
// quantization matrices in jpeg/common/tables.go (ScaleQuantTable), this
// baseline codec uses one step across the whole block.
package quant

import (
	"errors"
	"math"
)

// ErrInvalidQuality is returned when quality is outside [1,100].
var ErrInvalidQuality = errors.New("quant: quality must be in [1,100]")

// Step maps a quality in [1,100] to a uniform quantization step in
// [1,100]: step = clamp(101-quality, 1, 100).
func Step(quality int) (int, error) {
	if quality < 1 || quality > 100 {
		return 0, ErrInvalidQuality
	}
	step := 101 - quality
	if step < 1 {
		step = 1
	}
	if step > 100 {
		step = 100
	}
	return step, nil
}

// Quantize divides each float32 coefficient by step, rounds to nearest,
// and clamps to the range of an int16.
func Quantize(coef []float32, step int) []int16 {
	out := make([]int16, len(coef))
	s := float64(step)
	for i, c := range coef {
		v := math.Round(float64(c) / s)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		out[i] = int16(v)
	}
	return out
}

// Dequantize multiplies each quantized coefficient by step, returning
// float32 coefficients.
func Dequantize(q []int16, step int) []float32 {
	out := make([]float32, len(q))
	s := float32(step)
	for i, v := range q {
		out[i] = float32(v) * s
	}
	return out
}
