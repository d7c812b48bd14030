package texture

import (
	"testing"

	"github.com/tanager-gfx/rasterkit/color"
)

func TestOrderedIndexIsRowMajor(t *testing.T) {
	tx, err := New(8, 4, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Destroy()
	if got := tx.OrderedIndex(0, 0, 0); got != 0 {
		t.Errorf("origin index = %d, want 0", got)
	}
	if got, want := tx.OrderedIndex(1, 0, 0), 1; got != want {
		t.Errorf("index(1,0,0) = %d, want %d", got, want)
	}
	if got, want := tx.OrderedIndex(0, 1, 0), tx.pw; got != want {
		t.Errorf("index(0,1,0) = %d, want %d", got, want)
	}
}

// TestSwizzledIndexIsBijective exercises the property spec.md §8 calls
// for: over the padded domain, (x,y,z) -> swizzled index is a bijection.
func TestSwizzledIndexIsBijective(t *testing.T) {
	cases := []struct{ w, h, d int }{
		{5, 3, 1},
		{8, 8, 1},
		{16, 9, 1},
		{4, 4, 4},
		{9, 5, 3},
	}
	for _, c := range cases {
		tx, err := New(c.w, c.h, c.d, color.RGBA_8U, true)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[int]bool, tx.pw*tx.ph*tx.pd)
		for z := 0; z < tx.pd; z++ {
			for y := 0; y < tx.ph; y++ {
				for x := 0; x < tx.pw; x++ {
					idx := tx.SwizzledIndex(x, y, z)
					if idx < 0 || idx >= tx.pw*tx.ph*tx.pd {
						t.Fatalf("%v: index %d out of range for padded volume %d", c, idx, tx.pw*tx.ph*tx.pd)
					}
					if seen[idx] {
						t.Fatalf("%v: index %d produced by more than one coordinate", c, idx)
					}
					seen[idx] = true
				}
			}
		}
		tx.Destroy()
	}
}

func TestSwizzledQuadMatchesIndividualIndices(t *testing.T) {
	tx, err := New(8, 8, 1, color.RGBA_8U, true)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Destroy()
	for y := 0; y < tx.ph; y++ {
		for x := 0; x < tx.pw; x += chunkSize {
			a, b, c, d := tx.SwizzledQuad(x, y, 0)
			want := [4]int{
				tx.SwizzledIndex(x, y, 0),
				tx.SwizzledIndex(x+1, y, 0),
				tx.SwizzledIndex(x+2, y, 0),
				tx.SwizzledIndex(x+3, y, 0),
			}
			got := [4]int{a, b, c, d}
			if got != want {
				t.Fatalf("SwizzledQuad(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestGetSetColor4RoundTrip(t *testing.T) {
	tx, err := New(4, 4, 1, color.RGB_8U, false)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Destroy()
	c := color.Color4[uint8]{R: 10, G: 20, B: 30, A: 255}
	SetColor4(tx, 1, 1, 0, c)
	got := GetColor4[uint8](tx, 1, 1, 0)
	if got != c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
	// A neighboring texel must be untouched (zeroed on fresh allocation).
	other := GetColor4[uint8](tx, 0, 0, 0)
	if other.R != 0 || other.G != 0 {
		t.Errorf("unwritten texel not zero: %+v", other)
	}
	// RGB_8U has no alpha channel, so widening must report fully opaque.
	if other.A != 255 {
		t.Errorf("widened alpha of channel-less texel = %d, want 255", other.A)
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	if _, err := New(0, 4, 1, color.RGBA_8U, false); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := New(4, -1, 1, color.RGBA_8U, false); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestNewViewBounds(t *testing.T) {
	tx, err := New(16, 16, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Destroy()
	v, err := NewView(tx, 4, 4, 0, 8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if vx, vy, vz := v.At(2, 2, 0); vx != 6 || vy != 6 || vz != 0 {
		t.Errorf("View.At(2,2,0) = (%d,%d,%d), want (6,6,0)", vx, vy, vz)
	}
	if _, err := NewView(tx, 10, 10, 0, 10, 10, 1); err == nil {
		t.Error("expected out-of-bounds view to fail")
	}
}
