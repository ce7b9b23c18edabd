// Package pgm loads and saves the binary (P5) Portable Gray Map format
// used as this codec's plain-file image collaborator.
// Grounded on original_source/src/io/medical_loader.cpp's load_pgm:
// whitespace/comment-tolerant ASCII header, samples raw for an 8-bit
// maxval and big-endian for a 16-bit maxval — the PGM standard's own
// byte order, independent of the little-endian .mcodec container.
package pgm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cocosip/mcodec/image"
)

// Load reads a P5 PGM file into an Image. The image is always unsigned;
// bits_allocated is 8 when maxval fits in a byte, 16 otherwise, and
// bits_stored is the smallest bit width that holds maxval.
func Load(path string) (*image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)

	magic, err := readToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P5" {
		return nil, ErrBadMagic
	}

	width, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	height, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	maxval, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	if maxval < 1 || maxval > 65535 {
		return nil, ErrUnsupportedMaxval
	}
	// readToken's loop already consumed the single whitespace byte that
	// PGM requires between maxval and the start of the raster.

	bitsAllocated := 8
	bytesPerSample := 1
	if maxval > 255 {
		bitsAllocated = 16
		bytesPerSample = 2
	}
	bitsStored := bitsForMaxval(maxval)

	raw := make([]byte, width*height*bytesPerSample)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, ErrTruncatedData
	}

	pixels := make([]int32, width*height)
	if bytesPerSample == 1 {
		for i, b := range raw {
			pixels[i] = int32(b)
		}
	} else {
		for i := range pixels {
			hi := raw[2*i]
			lo := raw[2*i+1]
			pixels[i] = int32(uint16(hi)<<8 | uint16(lo))
		}
	}

	return image.New(width, height, bitsAllocated, bitsStored, false, pixels)
}

// Save writes im as a P5 PGM file: raw 8-bit samples if bits_allocated is
// 8, big-endian 16-bit samples if 16. Signed images are rejected — PGM
// has no sign convention.
func Save(path string, im *image.Image) error {
	if im.BitsAllocated != 8 && im.BitsAllocated != 16 {
		return ErrUnsupportedBitDepth
	}
	if im.IsSigned {
		return ErrUnsupportedBitDepth
	}

	maxval := (1 << im.BitsStored) - 1

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n%d\n", im.Width, im.Height, maxval); err != nil {
		return err
	}

	if im.BitsAllocated == 8 {
		raw := make([]byte, len(im.Pixels))
		for i, p := range im.Pixels {
			raw[i] = byte(p)
		}
		if _, err := bw.Write(raw); err != nil {
			return err
		}
	} else {
		raw := make([]byte, len(im.Pixels)*2)
		for i, p := range im.Pixels {
			raw[2*i] = byte(p >> 8)
			raw[2*i+1] = byte(p)
		}
		if _, err := bw.Write(raw); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func bitsForMaxval(maxval int) int {
	bits := 1
	for (1<<bits)-1 < maxval {
		bits++
	}
	return bits
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// skipWhitespaceAndComments consumes runs of whitespace and '#'-to-end-of-
// line comments, leaving the reader positioned at the next token byte.
func skipWhitespaceAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			if _, err := br.ReadString('\n'); err != nil {
				return err
			}
		case isSpace(b):
			continue
		default:
			return br.UnreadByte()
		}
	}
}

func readToken(br *bufio.Reader) (string, error) {
	if err := skipWhitespaceAndComments(br); err != nil {
		return "", ErrBadHeader
	}
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if len(tok) > 0 {
				break
			}
			return "", ErrBadHeader
		}
		if isSpace(b) {
			break
		}
		tok = append(tok, b)
	}
	return string(tok), nil
}

func readIntToken(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
		return 0, ErrBadHeader
	}
	return v, nil
}
