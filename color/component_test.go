package color

import "testing"

// TestCastRoundTripIntegers exercises spec.md §8 property 1: casting an
// integer-typed color to another integer type and back must land within
// one unit of the lower-precision type.
func TestCastRoundTripIntegers(t *testing.T) {
	widths := []struct {
		name string
		max  float64
	}{
		{"u8", 255},
		{"u16", 65535},
	}
	for _, src := range widths {
		for _, dst := range widths {
			if src.name == dst.name {
				continue
			}
			for _, v := range []float64{0, 1, 64, 128, 200, 255} {
				if v > src.max {
					continue
				}
				// out and want are both in u8 units, the lower-precision
				// type of the pair.
				var out, want float64
				switch {
				case src.name == "u8" && dst.name == "u16":
					up := Cast[uint16](uint8(v))
					out = toUnit(Cast[uint8](up)) * 255
					want = v
				case src.name == "u16" && dst.name == "u8":
					down := Cast[uint8](uint16(v))
					out = toUnit(Cast[uint16](down)) * 255
					want = toUnit(uint16(v)) * 255
				}
				if d := out - want; d > 1.1 || d < -1.1 {
					t.Errorf("round-trip %s<->%s for %v drifted to %v, want %v", src.name, dst.name, v, out, want)
				}
			}
		}
	}
}

func TestCastFloatRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.25, 0.5, 0.75, 1} {
		got := Cast[float32](Cast[float64](v))
		if d := got - v; d > 1e-6 || d < -1e-6 {
			t.Errorf("float32<->float64 round trip for %v got %v", v, got)
		}
	}
}

func TestCastIntegerToFloatAndBack(t *testing.T) {
	for _, v := range []uint8{0, 1, 127, 255} {
		f := Cast[float32](v)
		if f < 0 || f > 1 {
			t.Fatalf("u8->f32 produced out of range value %v for %v", f, v)
		}
		back := Cast[uint8](f)
		if d := int(back) - int(v); d > 1 || d < -1 {
			t.Errorf("u8->f32->u8 round trip for %v got %v", v, back)
		}
	}
}

func TestHalfRoundTrip(t *testing.T) {
	for _, f := range []float32{0, 1, -1, 0.5, 2.5, 65504} {
		h := HalfFromFloat32(f)
		got := h.Float32()
		if diff := got - f; diff > 2 || diff < -2 {
			t.Errorf("half round trip for %v got %v", f, got)
		}
	}
	if HalfZero.Float32() != 0 {
		t.Errorf("HalfZero should decode to 0.0, got %v", HalfZero.Float32())
	}
	if HalfOne.Float32() != 1 {
		t.Errorf("HalfOne should decode to 1.0, got %v", HalfOne.Float32())
	}
}

func TestColor4CastRGBA(t *testing.T) {
	c := Color4[uint8]{R: 255, G: 128, B: 0, A: 255}
	f := Cast4[float32](c)
	if f.R != 1 {
		t.Errorf("expected R=1, got %v", f.R)
	}
	back := Cast4[uint8](f)
	if back.R != 255 || back.B != 0 {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
