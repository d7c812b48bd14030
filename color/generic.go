package color

// Generic is the single tagged color record spec.md §3 calls for: it
// remembers its own Type and stores the matching RGBA8 + RGBA64f
// variants side by side so a clear call can narrow to whatever concrete
// texel layout an attachment uses without the caller needing to know
// it up front.
//
// Two variants are kept rather than one because narrowing a packed or
// low-precision clear color from a wide float representation and
// widening an 8-bit clear color up to float64 both need to stay exact
// round-trips for the common cases (pure black, pure white, primary
// colors) that show up in tests.
type Generic struct {
	Typ Type
	u8  Color4[uint8]
	f64 Color4[float64]
}

// NewGeneric builds a Generic clear value from normalized [0,1] RGBA
// components, tagged with the attachment type it will ultimately be
// narrowed into.
func NewGeneric(t Type, r, g, b, a float64) Generic {
	f := Color4[float64]{R: r, G: g, B: b, A: a}
	return Generic{
		Typ: t,
		u8:  Cast4[uint8](f),
		f64: f,
	}
}

// Float64 returns the clear value as normalized RGBA64f components.
func (c Generic) Float64() (r, g, b, a float64) {
	return c.f64.R, c.f64.G, c.f64.B, c.f64.A
}

// RGBA8 returns the clear value narrowed to 8-bit-per-channel RGBA.
func (c Generic) RGBA8() (r, g, b, a uint8) {
	return c.u8.R, c.u8.G, c.u8.B, c.u8.A
}

// As narrows the clear value to the concrete N-channel record of base
// type T that a texel-typed fill loop wants, by re-deriving it from the
// stored float64 form so Generic never needs a branch for every
// possible destination type.
func As1[T Component](c Generic) Color1[T] { return Cast1[T](Color1[float64]{R: c.f64.R}) }
func As2[T Component](c Generic) Color2[T] {
	return Cast2[T](Color2[float64]{R: c.f64.R, G: c.f64.G})
}
func As3[T Component](c Generic) Color3[T] {
	return Cast3[T](Color3[float64]{R: c.f64.R, G: c.f64.G, B: c.f64.B})
}
func As4[T Component](c Generic) Color4[T] { return Cast4[T](c.f64) }
