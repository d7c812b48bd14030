package rasterkit

import "github.com/tanager-gfx/rasterkit/texture"

const maxColorAttachments = 4

// Framebuffer groups up to four color attachments and one optional
// depth attachment, each a borrowed texture view (the framebuffer
// never owns or frees the textures it references).
type Framebuffer struct {
	color      [maxColorAttachments]texture.View
	colorBound [maxColorAttachments]bool
	numColor   int
	depth      texture.View
	depthBound bool
}

// NewFramebuffer creates an empty framebuffer with room for n color
// attachments (1..4).
func NewFramebuffer(n int) (*Framebuffer, error) {
	if n < 1 || n > maxColorAttachments {
		return nil, invalidArg("framebuffer color attachment count must be in 1..4")
	}
	return &Framebuffer{numColor: n}, nil
}

// AttachColor binds a texture view to color attachment slot i.
func (f *Framebuffer) AttachColor(i int, v texture.View) error {
	if i < 0 || i >= f.numColor {
		return invalidArg("color attachment index out of range")
	}
	f.color[i] = v
	f.colorBound[i] = true
	return nil
}

// AttachDepth binds a texture view as the depth attachment. The view's
// texture must use a floating-point color type.
func (f *Framebuffer) AttachDepth(v texture.View) error {
	if !v.Tex.Type().IsFloat() {
		return invalidArg("depth attachment must use a floating-point color type")
	}
	f.depth = v
	f.depthBound = true
	return nil
}

// HasDepth reports whether a depth attachment is bound.
func (f *Framebuffer) HasDepth() bool { return f.depthBound }

// NumColorAttachments returns the number of color attachment slots.
func (f *Framebuffer) NumColorAttachments() int { return f.numColor }

// ColorAttachment returns color attachment slot i's view, or ok=false
// if nothing is bound there.
func (f *Framebuffer) ColorAttachment(i int) (texture.View, bool) {
	if i < 0 || i >= f.numColor || !f.colorBound[i] {
		return texture.View{}, false
	}
	return f.color[i], true
}

// DepthAttachment returns the depth attachment's view, or ok=false if
// none is bound.
func (f *Framebuffer) DepthAttachment() (texture.View, bool) {
	return f.depth, f.depthBound
}

// Valid checks the framebuffer's cross-attachment invariants: every
// bound attachment must share the same width/height.
func (f *Framebuffer) Valid() bool {
	w, h := -1, -1
	for i := 0; i < f.numColor; i++ {
		if !f.colorBound[i] {
			continue
		}
		if w == -1 {
			w, h = f.color[i].W, f.color[i].H
		} else if f.color[i].W != w || f.color[i].H != h {
			return false
		}
	}
	if f.depthBound {
		if w == -1 {
			w, h = f.depth.W, f.depth.H
		} else if f.depth.W != w || f.depth.H != h {
			return false
		}
	}
	return true
}

// Extents returns the framebuffer's pixel width and height, derived
// from whichever attachment is bound first. ok is false if no
// attachment is bound yet.
func (f *Framebuffer) Extents() (w, h int, ok bool) {
	for i := 0; i < f.numColor; i++ {
		if f.colorBound[i] {
			return f.color[i].W, f.color[i].H, true
		}
	}
	if f.depthBound {
		return f.depth.W, f.depth.H, true
	}
	return 0, 0, false
}
