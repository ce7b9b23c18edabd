package huffman

import "errors"

var (
	// ErrNoSymbols is returned when a table is built from an empty or
	// all-zero frequency table.
	ErrNoSymbols = errors.New("huffman: no symbols to encode")
	// ErrCodeLengthOverflow is returned when a canonical code length would
	// exceed 32 bits.
	ErrCodeLengthOverflow = errors.New("huffman: code length exceeds 32 bits")
	// ErrInvalidCodeLength is returned when a parsed length-table entry has
	// a code length of 0 or greater than 32.
	ErrInvalidCodeLength = errors.New("huffman: invalid code length in table")
	// ErrEmptyLengthTable is returned when a length table has zero entries.
	ErrEmptyLengthTable = errors.New("huffman: empty length table")
	// ErrTruncatedBits is returned when the bit stream runs out before the
	// requested number of symbols has been decoded.
	ErrTruncatedBits = errors.New("huffman: bit stream truncated before expected symbol count")
)
