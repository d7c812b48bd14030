package rasterkit

import (
	"testing"

	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/texture"
)

func TestClearColorBufferFillsEveryTexel(t *testing.T) {
	ctx := NewContext()
	ctx.NumThreads(4)
	texHandle, err := ctx.CreateTexture(5, 5, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	fbHandle, err := ctx.CreateFramebuffer(1)
	if err != nil {
		t.Fatalf("CreateFramebuffer: %v", err)
	}
	if err := ctx.AttachColorBuffer(fbHandle, 0, texHandle); err != nil {
		t.Fatalf("AttachColorBuffer: %v", err)
	}

	want := color.Color4[float64]{R: 0.2, G: 0.4, B: 0.6, A: 1}
	if err := ctx.ClearColorBuffer(fbHandle, 0, want); err != nil {
		t.Fatalf("ClearColorBuffer: %v", err)
	}

	tx, _ := ctx.resolveTexture(texHandle)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			got := texture.ReadColor(tx, x, y, 0)
			if diff(got.R, want.R) > 0.01 || diff(got.A, want.A) > 0.01 {
				t.Fatalf("texel (%d,%d) = %+v, want close to %+v", x, y, got, want)
			}
		}
	}
}

func TestClearDepthBufferRequiresDepthAttachment(t *testing.T) {
	ctx := NewContext()
	texHandle, _ := ctx.CreateTexture(2, 2, 1, color.RGBA_8U, false)
	fbHandle, _ := ctx.CreateFramebuffer(1)
	ctx.AttachColorBuffer(fbHandle, 0, texHandle)
	if err := ctx.ClearDepthBuffer(fbHandle, 1.0); err == nil {
		t.Fatalf("ClearDepthBuffer should fail without a bound depth attachment")
	}
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
