package huffman

import (
	"testing"

	"github.com/cocosip/mcodec/internal/byteio"
)

func TestBuildFrequencies(t *testing.T) {
	freqs := BuildFrequencies([]uint32{1, 1, 2, 3, 3, 3})
	if freqs[1] != 2 || freqs[2] != 1 || freqs[3] != 3 {
		t.Fatalf("unexpected frequencies: %v", freqs)
	}
}

func TestBuildLengthsNoSymbols(t *testing.T) {
	if _, err := BuildLengths(map[uint32]uint32{}); err != ErrNoSymbols {
		t.Fatalf("got %v, want ErrNoSymbols", err)
	}
}

func TestBuildLengthsSingleSymbolEdgeCase(t *testing.T) {
	lengths, err := BuildLengths(map[uint32]uint32{42: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lengths) != 1 || lengths[0].Symbol != 42 || lengths[0].Length != 1 {
		t.Fatalf("got %+v, want single entry {42,1}", lengths)
	}
	table, err := CodesFromLengths(lengths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.codes[42].code != 0 || table.codes[42].length != 1 {
		t.Fatalf("unexpected code assignment: %+v", table.codes[42])
	}
}

func TestCanonicalCodesAreSortedByLengthThenSymbol(t *testing.T) {
	// symbol 1 has the highest frequency (shortest code), symbols 2,3,4,5
	// share a lower frequency (tie-broken by symbol).
	freqs := map[uint32]uint32{1: 100, 2: 1, 3: 1, 4: 1, 5: 1}
	table, lengths, err := BuildTable(freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(lengths); i++ {
		prev, cur := lengths[i-1], lengths[i]
		if cur.Length < prev.Length || (cur.Length == prev.Length && cur.Symbol < prev.Symbol) {
			t.Fatalf("lengths not sorted (length,symbol): %+v before %+v", prev, cur)
		}
	}

	// The dominant symbol must get the shortest code.
	shortest := lengths[0]
	if shortest.Symbol != 1 {
		t.Fatalf("expected symbol 1 to have the shortest code, got %+v", shortest)
	}
	_ = table
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	symbols := []uint32{1, 1, 1, 2, 2, 3, 4, 1, 2, 5}
	freqs := BuildFrequencies(symbols)
	table, lengths, err := BuildTable(freqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bits := table.Encode(symbols)

	decodeTable, err := CodesFromLengths(lengths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := decodeTable.Decode(bits, len(symbols))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range symbols {
		if decoded[i] != symbols[i] {
			t.Fatalf("decoded[%d] = %d, want %d", i, decoded[i], symbols[i])
		}
	}
}

func TestLengthTableSerializationRoundTrip(t *testing.T) {
	lengths := []SymbolLen{{Symbol: 5, Length: 1}, {Symbol: 9, Length: 3}, {Symbol: 2, Length: 3}}
	w := byteio.NewWriter()
	WriteLengthTable(w, lengths)

	r := byteio.NewReader(w.Bytes())
	got, err := ReadLengthTable(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(lengths) {
		t.Fatalf("got %d entries, want %d", len(got), len(lengths))
	}
	for i := range lengths {
		if got[i] != lengths[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], lengths[i])
		}
	}
}

func TestReadLengthTableRejectsZeroCount(t *testing.T) {
	w := byteio.NewWriter()
	w.WriteU32LE(0)
	r := byteio.NewReader(w.Bytes())
	if _, err := ReadLengthTable(r); err != ErrEmptyLengthTable {
		t.Fatalf("got %v, want ErrEmptyLengthTable", err)
	}
}

func TestReadLengthTableRejectsInvalidLength(t *testing.T) {
	w := byteio.NewWriter()
	w.WriteU32LE(1)
	w.WriteU32LE(7)
	w.WriteU8(0) // invalid code length
	r := byteio.NewReader(w.Bytes())
	if _, err := ReadLengthTable(r); err != ErrInvalidCodeLength {
		t.Fatalf("got %v, want ErrInvalidCodeLength", err)
	}
}

func TestCodesFromLengthsRejectsEmpty(t *testing.T) {
	if _, err := CodesFromLengths(nil); err != ErrEmptyLengthTable {
		t.Fatalf("got %v, want ErrEmptyLengthTable", err)
	}
}
