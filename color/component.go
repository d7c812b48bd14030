package color

import "math"

// Component is the set of base scalar types a color channel can hold:
// spec.md's T ∈ {u8,u16,u32,u64,f16,f32,f64}. The terms are exact (no
// `~`) so Half — itself backed by uint16 — does not collide with the
// uint16 term.
type Component interface {
	uint8 | uint16 | uint32 | uint64 | Half | float32 | float64
}

// intensityRange returns the [lo, hi] range spec.md §3 defines per base
// type: integers span [0, type max], floats (including Half) span
// [0.0, 1.0].
func intensityRange[T Component]() (lo, hi float64) {
	switch any(*new(T)).(type) {
	case uint8:
		return 0, math.MaxUint8
	case uint16:
		return 0, math.MaxUint16
	case uint32:
		return 0, math.MaxUint32
	case uint64:
		return 0, math.MaxUint64
	default: // Half, float32, float64
		return 0, 1
	}
}

func isFloatKind[T Component]() bool {
	switch any(*new(T)).(type) {
	case float32, float64, Half:
		return true
	default:
		return false
	}
}

// toUnit maps a component value into [0,1] using its intensity range.
func toUnit[T Component](v T) float64 {
	_, hi := intensityRange[T]()
	switch x := any(v).(type) {
	case uint8:
		return float64(x) / hi
	case uint16:
		return float64(x) / hi
	case uint32:
		return float64(x) / hi
	case uint64:
		return float64(x) / hi
	case float32:
		return float64(x)
	case float64:
		return x
	case Half:
		return float64(x.Float32())
	}
	return 0
}

// fromUnit maps a [0,1] value back into T's native range, rounding to
// the nearest representable integer for integer component types.
func fromUnit[T Component](u float64) T {
	_, hi := intensityRange[T]()
	var out any
	switch any(*new(T)).(type) {
	case uint8:
		out = uint8(clampRound(u*hi, 0, hi))
	case uint16:
		out = uint16(clampRound(u*hi, 0, hi))
	case uint32:
		out = uint32(clampRound(u*hi, 0, hi))
	case uint64:
		out = uint64(clampRound(u*hi, 0, hi))
	case float32:
		out = float32(u)
	case float64:
		out = u
	case Half:
		out = HalfFromFloat32(float32(u))
	}
	return out.(T)
}

func clampRound(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return math.Round(v)
}

// Cast converts a component value from one base type to another,
// rescaling by the ratio of intensity ranges per spec.md §3: integer to
// integer rescales directly (skipping the two range divisions toUnit/
// fromUnit would otherwise do, to stay exact for the common
// same-kind-different-width case), float to integer multiplies by the
// destination max, integer to float divides by the source max, and
// float to float widens or narrows directly.
func Cast[To, From Component](v From) To {
	srcFloat := isFloatKind[From]()
	dstFloat := isFloatKind[To]()
	if srcFloat && dstFloat {
		return fromUnit[To](toUnit(v))
	}
	if !srcFloat && !dstFloat {
		_, srcHi := intensityRange[From]()
		_, dstHi := intensityRange[To]()
		scaled := toRawFloat(v) * (dstHi / srcHi)
		return fromRawFloat[To](scaled)
	}
	// One side is float, the other integer: go through the shared
	// [0,1] unit range (float→integer multiplies by max, integer→float
	// divides by max, exactly as spec.md §3 describes).
	return fromUnit[To](toUnit(v))
}

func toRawFloat[T Component](v T) float64 {
	switch x := any(v).(type) {
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	}
	return 0
}

func fromRawFloat[T Component](v float64) T {
	_, hi := intensityRange[T]()
	var out any
	switch any(*new(T)).(type) {
	case uint8:
		out = uint8(clampRound(v, 0, hi))
	case uint16:
		out = uint16(clampRound(v, 0, hi))
	case uint32:
		out = uint32(clampRound(v, 0, hi))
	case uint64:
		out = uint64(clampRound(v, 0, hi))
	}
	return out.(T)
}
