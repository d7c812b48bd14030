package texture

import (
	"encoding/binary"

	"github.com/tanager-gfx/rasterkit/color"
)

// ReadColor reads texel (x,y,z) and returns it as normalized float64
// RGBA, regardless of the texture's concrete storage type. This is the
// dispatch point the framebuffer's put-pixel and depth-test paths use
// so they never need to know a texture's scalar type up front.
func ReadColor(t *Texture, x, y, z int) color.Color4[float64] {
	return DecodeColor(t.Texel(x, y, z), t.typ)
}

// WriteColor narrows a normalized float64 RGBA color to the texture's
// concrete storage type and writes it to texel (x,y,z).
func WriteColor(t *Texture, x, y, z int, c color.Color4[float64]) {
	EncodeColor(t.Texel(x, y, z), t.typ, c)
}

// DecodeColor interprets raw as one texel of color type typ and widens
// it to normalized float64 RGBA. raw must be at least typ.BytesPerTexel()
// bytes; ReadColor is the Texture-addressed convenience built on this.
// BlitToView writes its caller-owned destination buffer through the
// counterpart EncodeColor, so a pixel view and a Texture never disagree
// on what a given color.Type's bytes mean.
func DecodeColor(raw []byte, typ color.Type) color.Color4[float64] {
	if typ.Packed() {
		return decodePacked(raw, typ)
	}
	switch typ {
	case color.R_8U, color.RG_8U, color.RGB_8U, color.RGBA_8U:
		return color.Cast4[float64](colorFromBytes[uint8](raw, typ.Channels()))
	case color.R_16U, color.RG_16U, color.RGB_16U, color.RGBA_16U:
		return color.Cast4[float64](colorFromBytes[uint16](raw, typ.Channels()))
	case color.R_32U, color.RG_32U, color.RGB_32U, color.RGBA_32U:
		return color.Cast4[float64](colorFromBytes[uint32](raw, typ.Channels()))
	case color.R_64U, color.RG_64U, color.RGB_64U, color.RGBA_64U:
		return color.Cast4[float64](colorFromBytes[uint64](raw, typ.Channels()))
	case color.R_f16, color.RG_f16, color.RGB_f16, color.RGBA_f16:
		return color.Cast4[float64](colorFromBytes[color.Half](raw, typ.Channels()))
	case color.R_f32, color.RG_f32, color.RGB_f32, color.RGBA_f32:
		return color.Cast4[float64](colorFromBytes[float32](raw, typ.Channels()))
	default:
		return colorFromBytes[float64](raw, typ.Channels())
	}
}

// EncodeColor narrows a normalized float64 RGBA color to color type typ
// and writes it into raw, which must be at least typ.BytesPerTexel()
// bytes. See DecodeColor.
func EncodeColor(raw []byte, typ color.Type, c color.Color4[float64]) {
	if typ.Packed() {
		encodePacked(raw, typ, c)
		return
	}
	switch typ {
	case color.R_8U, color.RG_8U, color.RGB_8U, color.RGBA_8U:
		colorToBytes(raw, typ.Channels(), color.Cast4[uint8](c))
	case color.R_16U, color.RG_16U, color.RGB_16U, color.RGBA_16U:
		colorToBytes(raw, typ.Channels(), color.Cast4[uint16](c))
	case color.R_32U, color.RG_32U, color.RGB_32U, color.RGBA_32U:
		colorToBytes(raw, typ.Channels(), color.Cast4[uint32](c))
	case color.R_64U, color.RG_64U, color.RGB_64U, color.RGBA_64U:
		colorToBytes(raw, typ.Channels(), color.Cast4[uint64](c))
	case color.R_f16, color.RG_f16, color.RGB_f16, color.RGBA_f16:
		colorToBytes(raw, typ.Channels(), color.Cast4[color.Half](c))
	case color.R_f32, color.RG_f32, color.RGB_f32, color.RGBA_f32:
		colorToBytes(raw, typ.Channels(), color.Cast4[float32](c))
	default:
		colorToBytes(raw, typ.Channels(), c)
	}
}

// ReadDepth reads texel (x,y,z)'s red channel as a float64 depth
// value; depth attachments are always one of the float scalar types.
func ReadDepth(t *Texture, x, y, z int) float64 {
	return ReadColor(t, x, y, z).R
}

// WriteDepth writes a float64 depth value into texel (x,y,z)'s red
// channel, leaving other channels untouched (depth textures are
// single-channel in practice, but this keeps the call symmetric with
// ReadDepth for any channel count).
func WriteDepth(t *Texture, x, y, z int, depth float64) {
	c := ReadColor(t, x, y, z)
	c.R = depth
	WriteColor(t, x, y, z, c)
}

func decodePacked(raw []byte, typ color.Type) color.Color4[float64] {
	switch typ {
	case color.RGB_332:
		r, g, b, a := color.UnpackRGBA332(color.Packed332(raw[0]))
		return color.Cast4[float64](color.Color4[uint8]{R: r, G: g, B: b, A: a})
	case color.RGB_565:
		r, g, b, a := color.UnpackRGB565(color.Packed565(binary.LittleEndian.Uint16(raw)))
		return color.Cast4[float64](color.Color4[uint8]{R: r, G: g, B: b, A: a})
	case color.RGBA_5551:
		r, g, b, a := color.UnpackRGBA5551(color.Packed5551(binary.LittleEndian.Uint16(raw)))
		return color.Cast4[float64](color.Color4[uint8]{R: r, G: g, B: b, A: a})
	case color.RGBA_4444:
		r, g, b, a := color.UnpackRGBA4444(color.Packed4444(binary.LittleEndian.Uint16(raw)))
		return color.Cast4[float64](color.Color4[uint8]{R: r, G: g, B: b, A: a})
	case color.RGBA_1010102:
		r, g, b, a := color.UnpackRGBA1010102(color.Packed1010102(binary.LittleEndian.Uint32(raw)))
		return color.Cast4[float64](color.Color4[uint8]{R: r, G: g, B: b, A: a})
	default:
		return color.Color4[float64]{}
	}
}

func encodePacked(raw []byte, typ color.Type, c color.Color4[float64]) {
	switch typ {
	case color.RGB_332:
		c8 := color.Cast4[uint8](c)
		raw[0] = byte(color.PackRGB332(c8.R, c8.G, c8.B))
	case color.RGB_565:
		c8 := color.Cast4[uint8](c)
		binary.LittleEndian.PutUint16(raw, uint16(color.PackRGB565(c8.R, c8.G, c8.B)))
	case color.RGBA_5551:
		c8 := color.Cast4[uint8](c)
		binary.LittleEndian.PutUint16(raw, uint16(color.PackRGBA5551(c8.R, c8.G, c8.B, c8.A)))
	case color.RGBA_4444:
		c8 := color.Cast4[uint8](c)
		binary.LittleEndian.PutUint16(raw, uint16(color.PackRGBA4444(c8.R, c8.G, c8.B, c8.A)))
	case color.RGBA_1010102:
		c8 := color.Cast4[uint8](c)
		binary.LittleEndian.PutUint32(raw, uint32(color.PackRGBA1010102(c8.R, c8.G, c8.B, c8.A)))
	}
}
