package texture

import (
	"unsafe"

	"github.com/tanager-gfx/rasterkit/color"
)

// Texel returns a slice view over the raw bytes of texel (x,y,z),
// sized to the texture's bytes-per-texel. Callers that know the
// concrete component type should use GetColor4/SetColor4 instead;
// ReadColor/WriteColor, and through them the blit/clear processors,
// address texels through this.
func (t *Texture) Texel(x, y, z int) []byte {
	off := t.TexelOffset(x, y, z)
	return t.buf.Bytes[off : off+t.bpt]
}

// GetColor4 reads texel (x,y,z) as a 4-channel color of base component
// type T, widening from the texture's actual channel count per the
// usual missing-green/blue-is-black, missing-alpha-is-opaque
// convention. T's size must match the texture's per-channel component
// width; callers get this right by construction, since they already
// know the texture's color.Type when they call in.
func GetColor4[T color.Component](t *Texture, x, y, z int) color.Color4[T] {
	off := t.TexelOffset(x, y, z)
	return colorFromBytes[T](t.buf.Bytes[off:off+t.bpt], t.channels)
}

// SetColor4 writes a 4-channel color of base component type T into
// texel (x,y,z), narrowing to the texture's actual channel count by
// dropping the channels the texture doesn't store.
func SetColor4[T color.Component](t *Texture, x, y, z int, c color.Color4[T]) {
	off := t.TexelOffset(x, y, z)
	colorToBytes[T](t.buf.Bytes[off:off+t.bpt], t.channels, c)
}

// colorFromBytes and colorToBytes are the byte-slice-addressed cores of
// GetColor4/SetColor4: factored out so a caller-owned buffer that isn't
// backed by a Texture (PixelView's present-path pixels, in particular)
// can share the same widening/narrowing logic instead of duplicating
// the channel-count switch.
func colorFromBytes[T color.Component](b []byte, channels int) color.Color4[T] {
	switch channels {
	case 1:
		c := (*color.Color1[T])(unsafe.Pointer(&b[0]))
		return color.Widen1to4(*c)
	case 2:
		c := (*color.Color2[T])(unsafe.Pointer(&b[0]))
		return color.Widen2to4(*c)
	case 3:
		c := (*color.Color3[T])(unsafe.Pointer(&b[0]))
		return color.Widen3to4(*c)
	default:
		return *(*color.Color4[T])(unsafe.Pointer(&b[0]))
	}
}

func colorToBytes[T color.Component](b []byte, channels int, c color.Color4[T]) {
	switch channels {
	case 1:
		dst := (*color.Color1[T])(unsafe.Pointer(&b[0]))
		dst.R = c.R
	case 2:
		dst := (*color.Color2[T])(unsafe.Pointer(&b[0]))
		dst.R, dst.G = c.R, c.G
	case 3:
		dst := (*color.Color3[T])(unsafe.Pointer(&b[0]))
		dst.R, dst.G, dst.B = c.R, c.G, c.B
	default:
		*(*color.Color4[T])(unsafe.Pointer(&b[0])) = c
	}
}
