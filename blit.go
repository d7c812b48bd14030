package rasterkit

import (
	"golang.org/x/sync/errgroup"

	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/texture"
)

// fixedShift is the fractional bit count of the 16.16 fixed-point
// coordinates Blit steps source texels with, so a destination rect
// larger or smaller than its source resamples via nearest-neighbor
// without ever dividing inside the per-pixel loop.
const fixedShift = 16

// Blit nearest-neighbor resamples the rectangle srcRect of texture
// srcHandle into rectangle dstRect of texture dstHandle, converting
// between color types and channel counts as needed. Rects are
// [x, y, w, h]. Row (0,0) of a texture is its top-left texel; Blit
// samples the source bottom-up (sy1-1-y) so a framebuffer's
// bottom-left screen origin lands right-side-up in a top-left-origin
// destination image.
func (c *Context) Blit(dstHandle, srcHandle Handle, srcRect, dstRect [4]int) error {
	dst, err := c.resolveTexture(dstHandle)
	if err != nil {
		return err
	}
	src, err := c.resolveTexture(srcHandle)
	if err != nil {
		return err
	}
	sx0, sy0, sw, sh := srcRect[0], srcRect[1], srcRect[2], srcRect[3]
	dx0, dy0, dw, dh := dstRect[0], dstRect[1], dstRect[2], dstRect[3]
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return invalidArg("blit: rectangles must have positive extent")
	}
	if sx0 < 0 || sy0 < 0 || sx0+sw > src.Width() || sy0+sh > src.Height() {
		return invalidArg("blit: source rectangle out of bounds")
	}
	if dx0 < 0 || dy0 < 0 || dx0+dw > dst.Width() || dy0+dh > dst.Height() {
		return invalidArg("blit: destination rectangle out of bounds")
	}

	xStep := (sw << fixedShift) / dw
	yStep := (sh << fixedShift) / dh
	n := c.pool.NumThreads()
	rows := partitionRange(dh, n, 1)

	var g errgroup.Group
	for _, r := range rows {
		begin, end := r[0], r[1]
		g.Go(func() error {
			blitRows(dst, src, dx0, dy0, dw, sx0, sy0, sh, begin, end, xStep, yStep)
			return nil
		})
	}
	return g.Wait()
}

// blitRows fills destination rows [rowBegin, rowEnd) of a dw-wide
// strip, each row independent of every other so concurrent callers
// covering disjoint row ranges never touch the same destination texel.
func blitRows(dst, src *texture.Texture, dx0, dy0, dw, sx0, sy0, sh, rowBegin, rowEnd, xStep, yStep int) {
	for dy := rowBegin; dy < rowEnd; dy++ {
		sy := sy0 + sh - 1 - (dy*yStep)>>fixedShift
		if sy < sy0 {
			sy = sy0
		}
		sxFixed := 0
		for dx := 0; dx < dw; dx++ {
			sx := sx0 + sxFixed>>fixedShift
			px := texture.ReadColor(src, sx, sy, 0)
			texture.WriteColor(dst, dx0+dx, dy0+dy, 0, px)
			sxFixed += xStep
		}
	}
}

// PixelView is the externally provided pixel-buffer description the
// present path (a window, a screenshot, a readback for a test) blits
// into: dimensions, the per-texel byte count and channel count Pixels
// is laid out with, and the color type that layout decodes as. The
// context neither allocates nor frees Pixels; the caller owns it for
// as long as BlitToView is running and for whatever it does with the
// result afterward.
type PixelView struct {
	Width, Height, Depth int
	BytesPerTexel        int
	NumChannels          int
	ColorType            color.Type
	Pixels               []byte
}

// BlitToView nearest-neighbor resamples srcRect of texture srcHandle
// into the whole of dst, row-major and top-to-bottom, converting into
// dst.ColorType exactly as Blit converts between two textures. This is
// the caller-owned-buffer overload of Blit: the destination isn't a
// resource the context tracks by handle, so unlike Blit it can't be
// validated by resolving a handle, only by checking dst's own fields
// against each other and against its backing slice.
func (c *Context) BlitToView(dst PixelView, srcHandle Handle, srcRect [4]int) error {
	if dst.Width <= 0 || dst.Height <= 0 {
		return invalidArg("blit: pixel view must have positive width and height")
	}
	if dst.Depth != 1 {
		return invalidArg("blit: pixel view must be a single 2D slice (depth 1)")
	}
	if dst.ColorType.BytesPerTexel() != dst.BytesPerTexel || dst.ColorType.Channels() != dst.NumChannels {
		return invalidArg("blit: pixel view's bytes_per_texel/num_channels do not match color_type")
	}
	if len(dst.Pixels) < dst.Width*dst.Height*dst.BytesPerTexel {
		return invalidArg("blit: pixel view's buffer is smaller than width*height*bytes_per_texel")
	}

	src, err := c.resolveTexture(srcHandle)
	if err != nil {
		return err
	}
	sx0, sy0, sw, sh := srcRect[0], srcRect[1], srcRect[2], srcRect[3]
	if sw <= 0 || sh <= 0 {
		return invalidArg("blit: source rectangle must have positive extent")
	}
	if sx0 < 0 || sy0 < 0 || sx0+sw > src.Width() || sy0+sh > src.Height() {
		return invalidArg("blit: source rectangle out of bounds")
	}

	dw, dh := dst.Width, dst.Height
	xStep := (sw << fixedShift) / dw
	yStep := (sh << fixedShift) / dh
	n := c.pool.NumThreads()
	rows := partitionRange(dh, n, 1)

	var g errgroup.Group
	for _, r := range rows {
		begin, end := r[0], r[1]
		g.Go(func() error {
			blitRowsToView(dst, src, sx0, sy0, sh, dw, begin, end, xStep, yStep)
			return nil
		})
	}
	return g.Wait()
}

// blitRowsToView is blitRows' PixelView-destination counterpart: same
// bottom-up source sampling, but writing tightly packed row-major bytes
// rather than addressing a Texture's (possibly padded, possibly
// swizzled) texel layout.
func blitRowsToView(dst PixelView, src *texture.Texture, sx0, sy0, sh, dw, rowBegin, rowEnd, xStep, yStep int) {
	for dy := rowBegin; dy < rowEnd; dy++ {
		sy := sy0 + sh - 1 - (dy*yStep)>>fixedShift
		if sy < sy0 {
			sy = sy0
		}
		rowOff := dy * dw * dst.BytesPerTexel
		sxFixed := 0
		for dx := 0; dx < dw; dx++ {
			sx := sx0 + sxFixed>>fixedShift
			px := texture.ReadColor(src, sx, sy, 0)
			off := rowOff + dx*dst.BytesPerTexel
			texture.EncodeColor(dst.Pixels[off:off+dst.BytesPerTexel], dst.ColorType, px)
			sxFixed += xStep
		}
	}
}
