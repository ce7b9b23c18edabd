package dct

import "testing"

func roundTrip(t *testing.T, n int, block []int32) {
	coef, err := Forward(block, n)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	back, err := Inverse(coef, n)
	if err != nil {
		t.Fatalf("Inverse error: %v", err)
	}
	for i := range block {
		if back[i] != block[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d (n=%d)", i, back[i], block[i], n)
		}
	}
}

func TestForwardInverseConstantBlocks8(t *testing.T) {
	for v := int32(0); v < 64; v++ {
		block := make([]int32, 64)
		for i := range block {
			block[i] = v
		}
		roundTrip(t, 8, block)
	}
}

func TestForwardInverseDeterministicSamples(t *testing.T) {
	sizes := []int{8, 16}
	for _, n := range sizes {
		block := make([]int32, n*n)
		for i := range block {
			// Deterministic pseudo-random-looking values within [-32768, 32767].
			v := (i*2654435761 + i*i*40503) % 65536
			block[i] = int32(v) - 32768
		}
		roundTrip(t, n, block)
	}
}

func TestForwardInverseZeroBlock(t *testing.T) {
	roundTrip(t, 8, make([]int32, 64))
	roundTrip(t, 16, make([]int32, 256))
}

func TestInvalidBlockSize(t *testing.T) {
	if _, err := Forward(make([]int32, 64), 4); err != ErrInvalidBlockSize {
		t.Fatalf("got %v, want ErrInvalidBlockSize", err)
	}
	if _, err := Inverse(make([]float32, 64), 4); err != ErrInvalidBlockSize {
		t.Fatalf("got %v, want ErrInvalidBlockSize", err)
	}
}

func TestForwardWrongLength(t *testing.T) {
	if _, err := Forward(make([]int32, 10), 8); err != ErrInvalidBlockSize {
		t.Fatalf("got %v, want ErrInvalidBlockSize", err)
	}
}
