// Package huffman implements canonical Huffman coding over 32-bit packed
// RLE symbols: frequency-driven tree construction with a deterministic
// min-heap tie-break, canonical code reassignment from lengths alone,
// MSB-first bit packing, and length-only table serialization. The
// canonical-assignment loop is grounded on
// jpeg/standard/huffman_encoder.go's BuildHuffmanCodes (iterate by length,
// shift on length increase); the priority-queue tree construction and its
// tie-break rule are grounded on original_source/src/entropy/huffman.cpp,
// since the reference JPEG tables here are fixed rather than data-driven.
package huffman

import (
	"container/heap"
	"math"
	"sort"

	"github.com/cocosip/mcodec/internal/byteio"
)

// SymbolLen is one entry of a canonical length table: a symbol and its
// assigned code length.
type SymbolLen struct {
	Symbol uint32
	Length uint8
}

type codeEntry struct {
	code   uint32
	length uint8
}

// Table holds a canonical Huffman code, usable for both encoding (via the
// code map) and decoding (via the trie).
type Table struct {
	codes map[uint32]codeEntry
	root  *trieNode
}

type trieNode struct {
	symbol    uint32
	isLeaf    bool
	left, right *trieNode
}

// BuildFrequencies counts occurrences of each symbol, saturating at
// math.MaxUint32 rather than wrapping on overflow.
func BuildFrequencies(symbols []uint32) map[uint32]uint32 {
	freqs := make(map[uint32]uint32, len(symbols))
	for _, s := range symbols {
		if freqs[s] < math.MaxUint32 {
			freqs[s]++
		}
	}
	return freqs
}

// heapNode is a node of the Huffman tree under construction: a leaf holds
// a real symbol, an internal node holds a representative symbol (the
// minimum of its two children's representatives) used purely to break
// frequency ties deterministically.
type heapNode struct {
	freq   uint64
	rep    uint32
	symbol uint32
	isLeaf bool
	left, right *heapNode
}

type nodeHeap []*heapNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].rep < h[j].rep
}
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)        { *h = append(*h, x.(*heapNode)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BuildLengths builds the Huffman tree over freqs and returns the
// resulting canonical length table, sorted by (length ascending, symbol
// ascending) ready for CodesFromLengths and for serialization.
func BuildLengths(freqs map[uint32]uint32) ([]SymbolLen, error) {
	symbols := make([]uint32, 0, len(freqs))
	for s, f := range freqs {
		if f > 0 {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	if len(symbols) == 1 {
		return []SymbolLen{{Symbol: symbols[0], Length: 1}}, nil
	}

	h := make(nodeHeap, 0, len(symbols))
	for _, s := range symbols {
		h = append(h, &heapNode{freq: uint64(freqs[s]), rep: s, symbol: s, isLeaf: true})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*heapNode)
		b := heap.Pop(&h).(*heapNode)
		rep := a.rep
		if b.rep < rep {
			rep = b.rep
		}
		heap.Push(&h, &heapNode{freq: a.freq + b.freq, rep: rep, left: a, right: b})
	}
	root := heap.Pop(&h).(*heapNode)

	lengths := make(map[uint32]int, len(symbols))
	var walk func(n *heapNode, depth int) error
	walk = func(n *heapNode, depth int) error {
		if n.isLeaf {
			if depth > 32 {
				return ErrCodeLengthOverflow
			}
			lengths[n.symbol] = depth
			return nil
		}
		if err := walk(n.left, depth+1); err != nil {
			return err
		}
		return walk(n.right, depth+1)
	}
	if err := walk(root, 0); err != nil {
		return nil, err
	}

	out := make([]SymbolLen, 0, len(lengths))
	for s, l := range lengths {
		out = append(out, SymbolLen{Symbol: s, Length: uint8(l)})
	}
	sortLengths(out)
	return out, nil
}

func sortLengths(lengths []SymbolLen) {
	sort.Slice(lengths, func(i, j int) bool {
		if lengths[i].Length != lengths[j].Length {
			return lengths[i].Length < lengths[j].Length
		}
		return lengths[i].Symbol < lengths[j].Symbol
	})
}

// CodesFromLengths reassigns canonical codes from a length table alone:
// the table must already be sorted by (length ascending, symbol
// ascending), which both BuildLengths and ReadLengthTable guarantee.
func CodesFromLengths(lengths []SymbolLen) (*Table, error) {
	if len(lengths) == 0 {
		return nil, ErrEmptyLengthTable
	}
	for _, sl := range lengths {
		if sl.Length == 0 || sl.Length > 32 {
			return nil, ErrInvalidCodeLength
		}
	}

	codes := make(map[uint32]codeEntry, len(lengths))
	root := &trieNode{}

	code := uint32(0)
	prevLen := lengths[0].Length
	for i, sl := range lengths {
		if i > 0 {
			delta := sl.Length - prevLen
			code <<= delta
			prevLen = sl.Length
		}
		codes[sl.Symbol] = codeEntry{code: code, length: sl.Length}
		insertTrie(root, sl.Symbol, code, sl.Length)
		code++
	}

	return &Table{codes: codes, root: root}, nil
}

func insertTrie(root *trieNode, symbol uint32, code uint32, length uint8) {
	n := root
	for i := int(length) - 1; i >= 0; i-- {
		bit := (code >> uint(i)) & 1
		if bit == 0 {
			if n.left == nil {
				n.left = &trieNode{}
			}
			n = n.left
		} else {
			if n.right == nil {
				n.right = &trieNode{}
			}
			n = n.right
		}
	}
	n.isLeaf = true
	n.symbol = symbol
}

// BuildTable builds a canonical Huffman table directly from symbol
// frequencies, returning both the table and its length table (the latter
// for container serialization).
func BuildTable(freqs map[uint32]uint32) (*Table, []SymbolLen, error) {
	lengths, err := BuildLengths(freqs)
	if err != nil {
		return nil, nil, err
	}
	table, err := CodesFromLengths(lengths)
	if err != nil {
		return nil, nil, err
	}
	return table, lengths, nil
}

// Encode writes symbols as their canonical codes, MSB-first, returning the
// zero-padded byte stream.
func (t *Table) Encode(symbols []uint32) []byte {
	var w BitWriter
	for _, s := range symbols {
		entry := t.codes[s]
		w.WriteBits(entry.code, entry.length)
	}
	return w.Flush()
}

// Decode reads exactly count symbols from bits by walking the decode trie
// one bit at a time.
func (t *Table) Decode(bits []byte, count int) ([]uint32, error) {
	r := NewBitReader(bits)
	out := make([]uint32, 0, count)
	for len(out) < count {
		n := t.root
		for !n.isLeaf {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit == 0 {
				n = n.left
			} else {
				n = n.right
			}
			if n == nil {
				return nil, ErrTruncatedBits
			}
		}
		out = append(out, n.symbol)
	}
	return out, nil
}

// WriteLengthTable serializes a length table in container form:
// used_symbol_count (u32) followed by that many (symbol:u32,
// code_len:u8) records. lengths must already be sorted by (length
// ascending, symbol ascending).
func WriteLengthTable(w *byteio.Writer, lengths []SymbolLen) {
	w.WriteU32LE(uint32(len(lengths)))
	for _, sl := range lengths {
		w.WriteU32LE(sl.Symbol)
		w.WriteU8(sl.Length)
	}
}

// ReadLengthTable parses a length table written by WriteLengthTable,
// rejecting a zero-length table and any entry with an invalid code
// length.
func ReadLengthTable(r *byteio.Reader) ([]SymbolLen, error) {
	count, err := r.ReadU32LE()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyLengthTable
	}
	lengths := make([]SymbolLen, count)
	for i := range lengths {
		symbol, err := r.ReadU32LE()
		if err != nil {
			return nil, err
		}
		length, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if length == 0 || length > 32 {
			return nil, ErrInvalidCodeLength
		}
		lengths[i] = SymbolLen{Symbol: symbol, Length: length}
	}
	return lengths, nil
}
