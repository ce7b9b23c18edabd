package byteio

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(0xAB)
	w.WriteU16LE(0x1234)
	w.WriteU32LE(0xDEADBEEF)
	w.WriteBytes([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if v, err := r.ReadU8(); err != nil || v != 0xAB {
		t.Fatalf("ReadU8 = %v, %v", v, err)
	}
	if v, err := r.ReadU16LE(); err != nil || v != 0x1234 {
		t.Fatalf("ReadU16LE = %v, %v", v, err)
	}
	if v, err := r.ReadU32LE(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("ReadU32LE = %v, %v", v, err)
	}
	n, err := r.ReadN(3)
	if err != nil {
		t.Fatalf("ReadN error: %v", err)
	}
	if n[0] != 1 || n[1] != 2 || n[2] != 3 {
		t.Fatalf("ReadN = %v", n)
	}
	if !r.EOF() {
		t.Fatalf("expected EOF after consuming all bytes")
	}
}

func TestReaderPrematureEOF(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.ReadU32LE(); err != ErrPrematureEOF {
		t.Fatalf("got %v, want ErrPrematureEOF", err)
	}
}

func TestPatchU32LE(t *testing.T) {
	w := NewWriter()
	w.WriteU32LE(0)
	w.WriteU32LE(0xFFFFFFFF)
	w.PatchU32LE(0, 42)

	r := NewReader(w.Bytes())
	if v, _ := r.ReadU32LE(); v != 42 {
		t.Fatalf("patched value = %d, want 42", v)
	}
	if v, _ := r.ReadU32LE(); v != 0xFFFFFFFF {
		t.Fatalf("unpatched value = %d, want 0xFFFFFFFF", v)
	}
}
