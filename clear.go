package rasterkit

import (
	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/texture"
)

// ClearColorBuffer fills one color attachment of fboHandle with value,
// fanning the row range out across the context's worker pool.
func (c *Context) ClearColorBuffer(fboHandle Handle, attachment int, value color.Color4[float64]) error {
	fb, err := c.resolveFramebuffer(fboHandle)
	if err != nil {
		return err
	}
	view, ok := fb.ColorAttachment(attachment)
	if !ok {
		return invalidArg("clear_color_buffer: attachment not bound")
	}
	c.clearView(view, value)
	return nil
}

// ClearDepthBuffer fills fboHandle's depth attachment with a constant
// depth value.
func (c *Context) ClearDepthBuffer(fboHandle Handle, depth float64) error {
	fb, err := c.resolveFramebuffer(fboHandle)
	if err != nil {
		return err
	}
	view, ok := fb.DepthAttachment()
	if !ok {
		return invalidArg("clear_depth_buffer: no depth attachment bound")
	}
	c.clearView(view, color.Color4[float64]{R: depth})
	return nil
}

// ClearFramebuffer clears every bound color attachment to colorValue
// and, if present, the depth attachment to depthValue.
func (c *Context) ClearFramebuffer(fboHandle Handle, colorValue color.Color4[float64], depthValue float64) error {
	fb, err := c.resolveFramebuffer(fboHandle)
	if err != nil {
		return err
	}
	for i := 0; i < fb.NumColorAttachments(); i++ {
		if view, ok := fb.ColorAttachment(i); ok {
			c.clearView(view, colorValue)
		}
	}
	if view, ok := fb.DepthAttachment(); ok {
		c.clearView(view, color.Color4[float64]{R: depthValue})
	}
	return nil
}

// clearView fills every texel of view with value, splitting its rows
// across the pool's workers. Each worker owns a disjoint row range, so
// no synchronization is needed beyond the join at Run's return.
func (c *Context) clearView(view texture.View, value color.Color4[float64]) {
	n := c.pool.NumThreads()
	rows := partitionRange(view.H, n, 1)
	c.pool.Run(func(workerID int) {
		r := rows[workerID]
		for y := r[0]; y < r[1]; y++ {
			for x := 0; x < view.W; x++ {
				for z := 0; z < view.D; z++ {
					tx, ty, tz := view.At(x, y, z)
					texture.WriteColor(view.Tex, tx, ty, tz, value)
				}
			}
		}
	})
}
