package color

// Color1, Color2, Color3 and Color4 are the 1-, 2-, 3- and 4-channel
// color records for a base component type T. Go generics can't
// parameterize an array's length on a second type parameter, so the
// four channel counts spec.md §3 requires are four small concrete
// struct shapes generic only over T, rather than one Color[T, N] type.
type (
	Color1[T Component] struct{ R T }
	Color2[T Component] struct{ R, G T }
	Color3[T Component] struct{ R, G, B T }
	Color4[T Component] struct{ R, G, B, A T }
)

// Cast1 converts a 1-channel color from base type From to base type To.
func Cast1[To, From Component](c Color1[From]) Color1[To] {
	return Color1[To]{R: Cast[To](c.R)}
}

// Cast2 converts a 2-channel color from base type From to base type To.
func Cast2[To, From Component](c Color2[From]) Color2[To] {
	return Color2[To]{R: Cast[To](c.R), G: Cast[To](c.G)}
}

// Cast3 converts a 3-channel color from base type From to base type To.
func Cast3[To, From Component](c Color3[From]) Color3[To] {
	return Color3[To]{R: Cast[To](c.R), G: Cast[To](c.G), B: Cast[To](c.B)}
}

// Cast4 converts a 4-channel color from base type From to base type To.
func Cast4[To, From Component](c Color4[From]) Color4[To] {
	return Color4[To]{
		R: Cast[To](c.R), G: Cast[To](c.G), B: Cast[To](c.B), A: Cast[To](c.A),
	}
}

// Widen1to4..Widen3to4 zero/one-extend a lower channel-count color into
// a 4-channel color, following the usual "missing green/blue channels are
// black, missing alpha is opaque" convention so a draw that binds an R8
// texture to an RGBA-expecting sampler gets well-defined extra
// channels.
func Widen1to4[T Component](c Color1[T]) Color4[T] {
	return Color4[T]{R: c.R, G: zero[T](), B: zero[T](), A: one[T]()}
}

func Widen2to4[T Component](c Color2[T]) Color4[T] {
	return Color4[T]{R: c.R, G: c.G, B: zero[T](), A: one[T]()}
}

func Widen3to4[T Component](c Color3[T]) Color4[T] {
	return Color4[T]{R: c.R, G: c.G, B: c.B, A: one[T]()}
}

func zero[T Component]() T { return fromUnit[T](0) }
func one[T Component]() T  { return fromUnit[T](1) }
