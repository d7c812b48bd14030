// Package texture implements the owning 3D pixel buffer spec.md §3
// describes: fixed dimensions, a tagged color type, and constant-time
// texel addressing in either ordered (row-major) or swizzled (Z-order)
// layout.
package texture

import (
	"fmt"

	"github.com/tanager-gfx/rasterkit/color"
)

// chunkSize is spec.md's C=4: the side of the cube textures are tiled
// into for swizzled addressing, and the padding granularity every
// dimension is rounded up to.
const chunkSize = 4

// Texture is an owning, explicitly typed, explicitly dimensioned pixel
// buffer. Destroy must be called exactly once; after Destroy a Texture
// must not be addressed again (the context enforces this at the handle
// layer, see context.go).
type Texture struct {
	w, h, d  int // logical (unpadded) dimensions
	pw, ph, pd int // padded dimensions, each a multiple of chunkSize
	typ      color.Type
	bpt      int
	channels int
	swizzled bool

	buf *alignedBuffer
}

// New allocates a texture of the given logical dimensions and color
// type. A 2D texture is created by passing d=1. Allocation failure
// (size overflow or a non-positive dimension) is reported by returning
// a nil texture and a non-nil error; the caller's context wraps this
// into spec.md §7's OutOfMemory error kind.
func New(w, h, d int, typ color.Type, swizzled bool) (*Texture, error) {
	if w <= 0 || h <= 0 || d <= 0 {
		return nil, fmt.Errorf("texture: invalid dimensions %dx%dx%d", w, h, d)
	}
	bpt := typ.BytesPerTexel()
	pw := roundUp(w, chunkSize)
	ph := roundUp(h, chunkSize)
	pd := d
	if d > 1 {
		pd = roundUp(d, chunkSize)
	}
	texelCount := pw * ph * pd
	size := texelCount*bpt + 4*bpt // tail reserved for 4-wide batched loads
	if size <= 0 {
		return nil, fmt.Errorf("texture: size overflow for %dx%dx%d", w, h, d)
	}
	return &Texture{
		w: w, h: h, d: d,
		pw: pw, ph: ph, pd: pd,
		typ:      typ,
		bpt:      bpt,
		channels: typ.Channels(),
		swizzled: swizzled,
		buf:      newAlignedBuffer(size),
	}, nil
}

// Destroy releases the texture's storage. It is the mirror of New; a
// Texture detached from a framebuffer by the context is not implicitly
// destroyed (spec.md §3's lifecycle note) — only an explicit Destroy
// frees it.
func (t *Texture) Destroy() {
	t.buf = nil
}

func (t *Texture) Width() int         { return t.w }
func (t *Texture) Height() int        { return t.h }
func (t *Texture) Depth() int         { return t.d }
func (t *Texture) Type() color.Type   { return t.typ }
func (t *Texture) BytesPerTexel() int { return t.bpt }
func (t *Texture) Channels() int      { return t.channels }
func (t *Texture) Swizzled() bool     { return t.swizzled }

// Bytes returns the raw texel storage, including the padding tail.
// Callers that need an individual texel should prefer OrderedIndex /
// SwizzledIndex plus Texel rather than computing offsets by hand.
func (t *Texture) Bytes() []byte { return t.buf.Bytes }

// OrderedIndex returns the row-major texel index: spec.md's
// index = x + w*(y + h*z), over the padded dimensions.
func (t *Texture) OrderedIndex(x, y, z int) int {
	return x + t.pw*(y+t.ph*z)
}

// SwizzledIndex returns the Z-order (Morton, tiled-in-CxCxC-cubes) texel
// index described in spec.md §3.
func (t *Texture) SwizzledIndex(x, y, z int) int {
	const c = chunkSize
	tx, ty, tz := x/c, y/c, z/c
	tilesW := t.pw / c
	tilesH := t.ph / c
	tile := tx + tilesW*(ty+tilesH*tz)
	ix, iy, iz := x%c, y%c, z%c
	inner := ix + c*(iy+c*iz)
	dim := 2
	if t.d > 1 {
		dim = 3
	}
	cubed := 1
	for i := 0; i < dim; i++ {
		cubed *= c
	}
	return inner + tile*cubed
}

// Index dispatches to OrderedIndex or SwizzledIndex depending on how
// the texture was allocated.
func (t *Texture) Index(x, y, z int) int {
	if t.swizzled {
		return t.SwizzledIndex(x, y, z)
	}
	return t.OrderedIndex(x, y, z)
}

// TexelOffset returns the byte offset of texel (x,y,z).
func (t *Texture) TexelOffset(x, y, z int) int {
	return t.Index(x, y, z) * t.bpt
}

// SwizzledQuad returns the four swizzled texel indices for
// (x,y,z), (x+1,y,z), (x+2,y,z), (x+3,y,z) in one call: spec.md calls
// for a batch addressing primitive that produces four consecutive x
// addresses at once for SIMD-style filtering. x must be chunkSize-
// aligned, so all four fall in the same C×C×C tile and differ only in
// the low two bits of `inner` — one tile computation, not four
// independent SwizzledIndex calls.
func (t *Texture) SwizzledQuad(x, y, z int) (a, b, c2, d int) {
	const c = chunkSize
	tx, ty, tz := x/c, y/c, z/c
	tilesW := t.pw / c
	tilesH := t.ph / c
	tile := tx + tilesW*(ty+tilesH*tz)
	iy, iz := y%c, z%c
	dim := 2
	if t.d > 1 {
		dim = 3
	}
	cubed := 1
	for i := 0; i < dim; i++ {
		cubed *= c
	}
	base := tile*cubed + c*(iy+c*iz)
	return base + 0, base + 1, base + 2, base + 3
}
