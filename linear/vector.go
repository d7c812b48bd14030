// Package linear implements the small set of vector/matrix math the
// rendering core needs: clip-space homogeneous vectors, the 4x4
// matrices used by the scissor/viewport transform, and the screen-space
// points produced after perspective divide.
package linear

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Vec4 is a homogeneous 4-component vector: clip-space positions and
// varyings are always carried as Vec4 so a vertex shader's output and
// every interpolated varying share one wide, cache-friendly shape.
type Vec4 [4]float32

// Point is a screen-space (x, y) pair after the perspective divide and
// viewport map. It reuses x/image's float32 point type rather than a
// bespoke one so callers' screen-space math composes with the rest of
// the float32 graphics ecosystem. The rasterizers themselves work on
// Vec4 positions and do not use it.
type Point = f32.Point

// Add sets v to l + r.
func (v *Vec4) Add(l, r Vec4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to l - r.
func (v *Vec4) Sub(l, r Vec4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Lerp sets v to l + t*(r-l).
func (v *Vec4) Lerp(l, r Vec4, t float32) {
	for i := range v {
		v[i] = l[i] + t*(r[i]-l[i])
	}
}

// Scale sets v to s*w.
func (v *Vec4) Scale(s float32, w Vec4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns the dot product of v and w.
func (v Vec4) Dot(w Vec4) float32 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] + v[3]*w[3]
}

// PerspectiveDivide divides x, y and z by w and stores 1/w in the w
// slot, exactly as spec'd for the vertex stage's full path: the
// reciprocal is kept around so perspective-correct varying
// interpolation never needs to divide again.
func (v *Vec4) PerspectiveDivide() {
	invW := float32(1)
	if v[3] != 0 {
		invW = 1 / v[3]
	}
	v[0] *= invW
	v[1] *= invW
	v[2] *= invW
	v[3] = invW
}

// Mat4 is a column-major 4x4 matrix stored as four column vectors, so a
// matrix-vector product is a linear combination of the columns.
type Mat4 [4]Vec4

// Identity sets m to the identity matrix.
func (m *Mat4) Identity() {
	*m = Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// MulVec sets out to m*v.
func (m *Mat4) MulVec(out *Vec4, v Vec4) {
	var r Vec4
	for c := 0; c < 4; c++ {
		col := m[c]
		r[0] += col[0] * v[c]
		r[1] += col[1] * v[c]
		r[2] += col[2] * v[c]
		r[3] += col[3] * v[c]
	}
	*out = r
}

// Mul sets m to l*r.
func (m *Mat4) Mul(l, r *Mat4) {
	var out Mat4
	for c := 0; c < 4; c++ {
		l.MulVec(&out[c], r[c])
	}
	*m = out
}

// Abs32 returns the absolute value of a float32 without round-tripping
// through float64.
func Abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp32 clamps x to [lo, hi].
func Clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Floor32 and Ceil32 avoid float64 round trips in the rasterizer's hot
// loops.
func Floor32(x float32) float32 { return float32(math.Floor(float64(x))) }
func Ceil32(x float32) float32  { return float32(math.Ceil(float64(x))) }
