// Package mcodec implements the .mcodec pipeline orchestrator: level
// shift, tiling, DCT, quantization, zigzag, zero-run-length coding and
// canonical Huffman coding chained end to end over the fixed 32-byte
// container header. Grounded on original_source/src/codec/encoder.cpp
// and decoder.cpp for stage ordering, and on codec/codec.go's
// Codec Encode/Decode naming for the exported function shapes, though
// this package has exactly one fixed pipeline rather than a registry of
// interchangeable codecs.
package mcodec

import (
	"fmt"

	"github.com/cocosip/mcodec/image"
	"github.com/cocosip/mcodec/internal/byteio"
	"github.com/cocosip/mcodec/internal/dct"
	"github.com/cocosip/mcodec/internal/header"
	"github.com/cocosip/mcodec/internal/huffman"
	"github.com/cocosip/mcodec/internal/levelshift"
	"github.com/cocosip/mcodec/internal/quant"
	"github.com/cocosip/mcodec/internal/rle"
	"github.com/cocosip/mcodec/internal/tiling"
	"github.com/cocosip/mcodec/internal/zigzag"
)

const blockSize = 8

// Encode compresses im at the given quality (1..100) into a self-describing
// .mcodec byte container.
func Encode(im *image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		return nil, ErrInvalidQuality
	}
	if err := im.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	work := im.Clone()

	levelShiftApplied := !work.IsSigned
	if levelShiftApplied {
		if err := levelshift.Apply(work.Pixels, work.BitsStored); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}

	grid, err := tiling.NewGrid(work.Width, work.Height, blockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	padded := grid.ToBlocks(work.Pixels, work.Width, work.Height)

	numBlocks := grid.BlocksX * grid.BlocksY
	n2 := blockSize * blockSize
	coeffs := make([]float32, numBlocks*n2)
	for b := 0; b < numBlocks; b++ {
		blk := padded[b*n2 : (b+1)*n2]
		f, err := dct.Forward(blk, blockSize)
		if err != nil {
			return nil, err
		}
		copy(coeffs[b*n2:(b+1)*n2], f)
	}

	step, err := quant.Step(quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuality, err)
	}
	quantized := quant.Quantize(coeffs, step)

	zigzagged := make([]int16, len(quantized))
	for b := 0; b < numBlocks; b++ {
		scanned, err := zigzag.Scan(quantized[b*n2:(b+1)*n2], blockSize)
		if err != nil {
			return nil, err
		}
		copy(zigzagged[b*n2:(b+1)*n2], scanned)
	}

	pairs, err := rle.EncodeBlocks(zigzagged, blockSize)
	if err != nil {
		return nil, err
	}
	symbols := rle.PackSymbols(pairs)

	freqs := huffman.BuildFrequencies(symbols)
	table, lengths, err := huffman.BuildTable(freqs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoUsedSymbols, err)
	}
	bits := table.Encode(symbols)

	w := byteio.NewWriter()
	flags := uint8(0)
	if levelShiftApplied {
		flags |= header.FlagLevelShiftApplied
	}
	header.Write(w, &header.Header{
		Width:         uint32(work.Width),
		Height:        uint32(work.Height),
		BitsAllocated: uint16(work.BitsAllocated),
		BitsStored:    uint16(work.BitsStored),
		IsSigned:      im.IsSigned,
		Flags:         flags,
		BlockSize:     uint16(blockSize),
		Quality:       uint16(quality),
		PayloadBytes:  0,
	})

	w.WriteU32LE(uint32(len(symbols)))
	huffman.WriteLengthTable(w, lengths)
	w.WriteBytes(bits)

	payloadBytes := w.Len() - header.Size
	w.PatchU32LE(header.PayloadBytesOffset, uint32(payloadBytes))

	return w.Bytes(), nil
}

// Decode parses a .mcodec byte container and reconstructs the image it
// describes.
func Decode(data []byte) (*image.Image, error) {
	r := byteio.NewReader(data)
	h, err := header.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	payload, err := r.ReadN(int(h.PayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	pr := byteio.NewReader(payload)

	symbolCount, err := pr.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	lengths, err := huffman.ReadLengthTable(pr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	bits, err := pr.ReadN(pr.Remaining())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	table, err := huffman.CodesFromLengths(lengths)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	symbols, err := table.Decode(bits, int(symbolCount))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	pairs := rle.UnpackSymbols(symbols)

	n := int(h.BlockSize)
	grid, err := tiling.NewGrid(int(h.Width), int(h.Height), n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	numBlocks := grid.BlocksX * grid.BlocksY
	n2 := n * n
	totalCoeffs := numBlocks * n2

	zigzagged, err := rle.DecodeBlocks(pairs, totalCoeffs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeInconsistency, err)
	}

	quantized := make([]int16, len(zigzagged))
	for b := 0; b < numBlocks; b++ {
		unscanned, err := zigzag.Unscan(zigzagged[b*n2:(b+1)*n2], n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeInconsistency, err)
		}
		copy(quantized[b*n2:(b+1)*n2], unscanned)
	}

	step, err := quant.Step(int(h.Quality))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}
	dequantized := quant.Dequantize(quantized, step)

	padded := make([]int32, len(dequantized))
	for b := 0; b < numBlocks; b++ {
		blk, err := dct.Inverse(dequantized[b*n2:(b+1)*n2], n)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecodeInconsistency, err)
		}
		copy(padded[b*n2:(b+1)*n2], blk)
	}

	pixels := grid.FromBlocks(padded, int(h.Width), int(h.Height))

	if h.Flags&header.FlagLevelShiftApplied != 0 {
		if err := levelshift.Invert(pixels, int(h.BitsStored)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
		}
	}

	im, err := image.New(int(h.Width), int(h.Height), int(h.BitsAllocated), int(h.BitsStored), h.IsSigned, pixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeInconsistency, err)
	}
	return im, nil
}
