package rasterkit

import (
	"testing"

	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/texture"
)

func TestBlitIdentityCopyPreservesColor(t *testing.T) {
	ctx := NewContext()
	src, err := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatalf("CreateTexture src: %v", err)
	}
	dst, err := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatalf("CreateTexture dst: %v", err)
	}
	srcTex, _ := ctx.resolveTexture(src)
	texture.WriteColor(srcTex, 1, 2, 0, color.Color4[float64]{R: 1, G: 0.5, B: 0.25, A: 1})

	if err := ctx.Blit(dst, src, [4]int{0, 0, 4, 4}, [4]int{0, 0, 4, 4}); err != nil {
		t.Fatalf("Blit: %v", err)
	}

	dstTex, _ := ctx.resolveTexture(dst)
	// The blit samples the source bottom-up, so row y in the source
	// lands at row (h-1-y) in the destination for a same-size copy.
	got := texture.ReadColor(dstTex, 1, 1, 0)
	if got.R < 0.9 || got.G < 0.4 || got.G > 0.6 {
		t.Fatalf("blitted pixel = %+v, want close to the source's (1,2) color", got)
	}
}

func TestBlitRejectsOutOfBoundsRect(t *testing.T) {
	ctx := NewContext()
	src, _ := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	dst, _ := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	if err := ctx.Blit(dst, src, [4]int{0, 0, 8, 8}, [4]int{0, 0, 4, 4}); err == nil {
		t.Fatalf("Blit should reject a source rect larger than the texture")
	}
}

func TestBlitToViewIdentityCopyPreservesColor(t *testing.T) {
	ctx := NewContext()
	src, err := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatalf("CreateTexture src: %v", err)
	}
	srcTex, _ := ctx.resolveTexture(src)
	texture.WriteColor(srcTex, 1, 2, 0, color.Color4[float64]{R: 1, G: 0.5, B: 0.25, A: 1})

	pixels := make([]byte, 4*4*4)
	view := PixelView{Width: 4, Height: 4, Depth: 1, BytesPerTexel: 4, NumChannels: 4, ColorType: color.RGBA_8U, Pixels: pixels}
	if err := ctx.BlitToView(view, src, [4]int{0, 0, 4, 4}); err != nil {
		t.Fatalf("BlitToView: %v", err)
	}

	// Same bottom-up source sampling as Blit: source row y lands at
	// destination row (h-1-y) for a same-size copy.
	off := (1*4 + 1) * 4
	r, g := pixels[off], pixels[off+1]
	if r < 230 || g < 100 || g > 150 {
		t.Fatalf("pixel view (1,1) = (%d,%d,...), want close to the source's (1,2) color", r, g)
	}
}

func TestBlitToViewRejectsMismatchedColorType(t *testing.T) {
	ctx := NewContext()
	src, _ := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	view := PixelView{Width: 4, Height: 4, Depth: 1, BytesPerTexel: 3, NumChannels: 4, ColorType: color.RGBA_8U, Pixels: make([]byte, 4*4*4)}
	if err := ctx.BlitToView(view, src, [4]int{0, 0, 4, 4}); err == nil {
		t.Fatalf("BlitToView should reject a view whose bytes_per_texel disagrees with its color_type")
	}
}

func TestBlitToViewRejectsUndersizedBuffer(t *testing.T) {
	ctx := NewContext()
	src, _ := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	view := PixelView{Width: 4, Height: 4, Depth: 1, BytesPerTexel: 4, NumChannels: 4, ColorType: color.RGBA_8U, Pixels: make([]byte, 4)}
	if err := ctx.BlitToView(view, src, [4]int{0, 0, 4, 4}); err == nil {
		t.Fatalf("BlitToView should reject a pixels buffer too small for width*height*bytes_per_texel")
	}
}
