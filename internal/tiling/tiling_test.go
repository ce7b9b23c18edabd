package tiling

import "testing"

func TestNewGridRejectsInvalidBlockSize(t *testing.T) {
	if _, err := NewGrid(16, 16, 4); err != ErrInvalidBlockSize {
		t.Fatalf("got %v, want ErrInvalidBlockSize", err)
	}
}

func TestNewGridRejectsInvalidDimensions(t *testing.T) {
	if _, err := NewGrid(0, 16, 8); err != ErrInvalidDimensions {
		t.Fatalf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestGridExactMultiple(t *testing.T) {
	g, err := NewGrid(16, 16, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.BlocksX != 2 || g.BlocksY != 2 || g.PaddedW != 16 || g.PaddedH != 16 {
		t.Fatalf("unexpected grid: %+v", g)
	}
}

func TestGridPadding(t *testing.T) {
	g, err := NewGrid(10, 5, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.BlocksX != 2 || g.BlocksY != 1 || g.PaddedW != 16 || g.PaddedH != 8 {
		t.Fatalf("unexpected grid: %+v", g)
	}
}

func TestToFromBlocksRoundTrip(t *testing.T) {
	width, height := 10, 6
	pixels := make([]int32, width*height)
	for i := range pixels {
		pixels[i] = int32(i)
	}

	g, err := NewGrid(width, height, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := g.ToBlocks(pixels, width, height)
	if len(blocks) != g.BlocksX*g.BlocksY*8*8 {
		t.Fatalf("unexpected block buffer length %d", len(blocks))
	}

	back := g.FromBlocks(blocks, width, height)
	if len(back) != len(pixels) {
		t.Fatalf("unexpected output length %d", len(back))
	}
	for i := range pixels {
		if back[i] != pixels[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, back[i], pixels[i])
		}
	}
}

func TestPaddingIsZero(t *testing.T) {
	width, height := 10, 5
	pixels := make([]int32, width*height)
	for i := range pixels {
		pixels[i] = 7
	}
	g, err := NewGrid(width, height, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := g.ToBlocks(pixels, width, height)

	n := 8
	// The block at (bx=1, by=0) covers columns 8..15; columns 10..15 are padding.
	base := (0*g.BlocksX + 1) * n * n
	for y := 0; y < n; y++ {
		for x := 2; x < n; x++ { // local x>=2 maps to global column >=10
			v := blocks[base+y*n+x]
			if v != 0 {
				t.Fatalf("expected zero padding at block(1,0) local (%d,%d), got %d", x, y, v)
			}
		}
	}
}
