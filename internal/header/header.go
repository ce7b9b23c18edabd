// Package header serializes and parses the fixed 32-byte .mcodec container
// header.
package header

import (
	"errors"

	"github.com/cocosip/mcodec/internal/byteio"
)

const (
	// Size is the fixed on-disk header length in bytes.
	Size = 32

	magic   = "MCDC"
	version = uint16(1)

	// FlagLevelShiftApplied is bit 0 of the flags byte: the encoder
	// applied a level shift and the decoder must invert it.
	FlagLevelShiftApplied = 1 << 0
)

var (
	// ErrBadMagic is returned when the magic bytes do not read "MCDC".
	ErrBadMagic = errors.New("header: bad magic")
	// ErrUnsupportedVersion is returned when the version field is not 1.
	ErrUnsupportedVersion = errors.New("header: unsupported version")
	// ErrHeaderTooSmall is returned when header_bytes < 32.
	ErrHeaderTooSmall = errors.New("header: header_bytes too small")
	// ErrTruncated is returned when the buffer is shorter than header_bytes+payload_bytes.
	ErrTruncated = errors.New("header: buffer shorter than declared size")
)

// Header is the field-by-field representation of the 32-byte container
// header. All multi-byte fields are little-endian on the wire.
type Header struct {
	Version        uint16
	HeaderBytes    uint16
	Width          uint32
	Height         uint32
	Channels       uint16
	BitsAllocated  uint16
	BitsStored     uint16
	IsSigned       bool
	Flags          uint8
	BlockSize      uint16
	Quality        uint16
	PayloadBytes   uint32
}

// Write appends the 32-byte header to w, field-by-field in little-endian.
// PayloadBytes is written as given; callers that don't know it yet should
// write 0 and patch offset 28 later with w.PatchU32LE.
func Write(w *byteio.Writer, h *Header) {
	w.WriteBytes([]byte(magic))
	w.WriteU16LE(version)
	w.WriteU16LE(Size)
	w.WriteU32LE(h.Width)
	w.WriteU32LE(h.Height)
	w.WriteU16LE(1) // channels
	w.WriteU16LE(h.BitsAllocated)
	w.WriteU16LE(h.BitsStored)
	if h.IsSigned {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
	w.WriteU8(h.Flags)
	w.WriteU16LE(h.BlockSize)
	w.WriteU16LE(h.Quality)
	w.WriteU32LE(h.PayloadBytes)
}

// PayloadBytesOffset is the byte offset of the payload_bytes field, used
// by the orchestrator to back-patch it once the payload length is known.
const PayloadBytesOffset = 28

// Parse reads and validates a 32-byte header from r. It validates magic,
// version, and header_bytes >= 32, then fails if the underlying buffer is
// shorter than header_bytes + payload_bytes.
func Parse(r *byteio.Reader) (*Header, error) {
	magicBytes, err := r.ReadN(4)
	if err != nil {
		return nil, err
	}
	if string(magicBytes) != magic {
		return nil, ErrBadMagic
	}

	ver, err := r.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if ver != version {
		return nil, ErrUnsupportedVersion
	}

	headerBytes, err := r.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if headerBytes < Size {
		return nil, ErrHeaderTooSmall
	}

	h := &Header{Version: ver, HeaderBytes: headerBytes}

	if h.Width, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.Height, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.Channels, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	if h.BitsAllocated, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	if h.BitsStored, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	isSigned, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	h.IsSigned = isSigned != 0
	if h.Flags, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if h.BlockSize, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	if h.Quality, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	if h.PayloadBytes, err = r.ReadU32LE(); err != nil {
		return nil, err
	}

	// If header_bytes > 32, skip the extra reserved bytes (forward compatibility).
	if extra := int(headerBytes) - Size; extra > 0 {
		if _, err := r.ReadN(extra); err != nil {
			return nil, err
		}
	}

	if r.Remaining() < int(h.PayloadBytes) {
		return nil, ErrTruncated
	}

	return h, nil
}
