package rasterkit

import (
	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/linear"
	"github.com/tanager-gfx/rasterkit/pool"
	"github.com/tanager-gfx/rasterkit/texture"
)

// flushWorker drains worker workerID's own bin array immediately, used
// only when that worker's vertex stage overflows its bin capacity
// mid-draw. Because it only touches bins that worker itself produced,
// it never races with any other worker's concurrent production; the
// tradeoff is that an overflow this early
// rasterizes out of strict cross-worker primIndex order relative to
// bins other workers haven't produced yet. With B=8192 per thread this
// path is not expected to trigger for any draw in this package's test
// suite.
func (ds *drawState) flushWorker(workerID int) {
	arr := ds.ctx.pool.Bins(workerID)
	n := arr.Ready()
	for slot := 0; slot < n; slot++ {
		ds.rasterizeBin(workerID, arr.Bin(slot))
	}
	ds.flushQueue(workerID)
	arr.Reset()
}

// finalize rasterizes every worker's published bins, in ascending
// (workerID, slot) order, which reconstructs the draw's original
// primIndex order regardless of how many workers ran the vertex stage
// (see partitionRange: each worker's range is a contiguous, strictly
// increasing slice of the original index order).
func (ds *drawState) finalize() {
	n := ds.ctx.pool.NumThreads()
	for w := 0; w < n; w++ {
		arr := ds.ctx.pool.Bins(w)
		count := arr.Ready()
		for slot := 0; slot < count; slot++ {
			ds.rasterizeBin(w, arr.Bin(slot))
		}
		ds.flushQueue(w)
		arr.Reset()
	}
}

func (ds *drawState) rasterizeBin(workerID int, b *pool.Bin) {
	switch b.Kind {
	case pool.PrimTriangle:
		ds.rasterizeTriangle(workerID, b)
	case pool.PrimLine:
		ds.rasterizeLine(workerID, b)
	case pool.PrimPoint:
		ds.rasterizePoint(workerID, b)
	}
}

func (ds *drawState) rasterizeTriangle(workerID int, b *pool.Bin) {
	minXf, minYf, maxXf, maxYf := b.AABB()
	minX := int(linear.Floor32(max32(minXf, 0)))
	minY := int(linear.Floor32(max32(minYf, 0)))
	maxX := int(linear.Ceil32(minf32(maxXf, float32(ds.fbW-1))))
	maxY := int(linear.Ceil32(minf32(maxYf, float32(ds.fbH-1))))
	if b.InvArea == 0 {
		return
	}

	x0, y0 := b.Verts[0].Pos[0], b.Verts[0].Pos[1]
	p0, p1, p2 := b.Verts[0].Pos, b.Verts[1].Pos, b.Verts[2].Pos
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		dy := py - y0
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			dx := px - x0
			b0 := 1 + b.DBdx[0]*dx + b.DBdy[0]*dy
			b1 := b.DBdx[1]*dx + b.DBdy[1]*dy
			b2 := b.DBdx[2]*dx + b.DBdy[2]*dy
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			depth := b0*p0[2] + b1*p1[2] + b2*p2[2]
			if !ds.depthTestAndWrite(x, y, depth) {
				continue
			}
			ds.enqueueFragment(workerID, uint16(x), uint16(y), depth, b0, b1, b2, b)
		}
	}
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func (ds *drawState) rasterizeLine(workerID int, b *pool.Bin) {
	p0, p1 := b.Verts[0].Pos, b.Verts[1].Pos
	x0, y0 := int(p0[0]), int(p0[1])
	x1, y1 := int(p1[0]), int(p1[1])

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	totalSteps := dx
	if -dy > totalSteps {
		totalSteps = -dy
	}
	if totalSteps == 0 {
		totalSteps = 1
	}
	step := 0
	x, y := x0, y0
	for {
		if x >= 0 && y >= 0 && x < ds.fbW && y < ds.fbH {
			t := float32(step) / float32(totalSteps)
			depth := p0[2] + (p1[2]-p0[2])*t
			if ds.depthTestAndWrite(x, y, depth) {
				ds.enqueueLineFragment(workerID, uint16(x), uint16(y), depth, t, b)
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		step++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (ds *drawState) rasterizePoint(workerID int, b *pool.Bin) {
	p0 := b.Verts[0].Pos
	x, y := int(p0[0]), int(p0[1])
	if x < 0 || y < 0 || x >= ds.fbW || y >= ds.fbH {
		return
	}
	if !ds.depthTestAndWrite(x, y, p0[2]) {
		return
	}
	ds.enqueuePointFragment(workerID, uint16(x), uint16(y), p0[2], b)
}

// depthTestAndWrite runs the configured depth comparison against the
// bound depth attachment (always passing if depth test is off or no
// depth attachment is bound), writing the new depth when the test
// passes and the depth mask is on.
func (ds *drawState) depthTestAndWrite(x, y int, depth float32) bool {
	fn := ds.prog.State.DepthTest
	depthView, hasDepth := ds.fb.DepthAttachment()
	if fn == DepthOff || !hasDepth {
		return true
	}
	tx, ty, tz := depthView.At(x, y, 0)
	existing := texture.ReadDepth(depthView.Tex, tx, ty, tz)
	if !fn.test(depth, float32(existing)) {
		return false
	}
	if ds.prog.State.DepthMask {
		texture.WriteDepth(depthView.Tex, tx, ty, tz, float64(depth))
	}
	return true
}

func (ds *drawState) enqueueFragment(workerID int, x, y uint16, depth, b0, b1, b2 float32, bin *pool.Bin) {
	q := ds.ctx.pool.Queue(workerID)
	full := q.Push(pool.Fragment{X: x, Y: y, Depth: depth, B0: b0, B1: b1, B2: b2, Bin: bin})
	if full {
		ds.flushQueueEntries(q)
	}
}

func (ds *drawState) enqueueLineFragment(workerID int, x, y uint16, depth, t float32, bin *pool.Bin) {
	// Lines interpolate endpoint-only; b0/b1 here are repurposed as
	// (1-t, t) so flushQueueEntries's varying interpolation code path
	// is shared between triangles and lines.
	ds.enqueueFragment(workerID, x, y, depth, 1-t, t, 0, bin)
}

func (ds *drawState) enqueuePointFragment(workerID int, x, y uint16, depth float32, bin *pool.Bin) {
	ds.enqueueFragment(workerID, x, y, depth, 1, 0, 0, bin)
}

func (ds *drawState) flushQueue(workerID int) {
	q := ds.ctx.pool.Queue(workerID)
	ds.flushQueueEntries(q)
}

// flushQueueEntries runs the fragment shader over every queued
// fragment and commits its output, then empties the queue. For a
// triangle bin, varyings are interpolated with the queued barycentric
// weights; for a line or point bin only the first one or two weights
// (set up by enqueueLineFragment/enqueuePointFragment) are meaningful.
func (ds *drawState) flushQueueEntries(q *pool.Queue) {
	uniforms := ds.resolveUniforms()
	for _, f := range q.Entries() {
		bin := f.Bin
		var varyings [4]linear.Vec4
		n := ds.prog.State.FSVaryings
		switch bin.Kind {
		case pool.PrimTriangle:
			for i := 0; i < n; i++ {
				var t0, t1, t2 linear.Vec4
				t0.Scale(f.B0, bin.Verts[0].Varyings[i])
				t1.Scale(f.B1, bin.Verts[1].Varyings[i])
				t2.Scale(f.B2, bin.Verts[2].Varyings[i])
				varyings[i].Add(t0, t1)
				varyings[i].Add(varyings[i], t2)
			}
		default:
			for i := 0; i < n; i++ {
				var t0, t1 linear.Vec4
				t0.Scale(f.B0, bin.Verts[0].Varyings[i])
				t1.Scale(f.B1, bin.Verts[1].Varyings[i])
				varyings[i].Add(t0, t1)
			}
		}

		param := FragmentParam{
			Coord:    linear.Vec4{float32(f.X), float32(f.Y), f.Depth, 0},
			Uniforms: uniforms,
			Varyings: varyings,
		}
		if !ds.prog.FS(&param) {
			continue
		}
		ds.commitOutputs(int(f.X), int(f.Y), &param)
	}
	q.Clear()
}

func (ds *drawState) commitOutputs(x, y int, param *FragmentParam) {
	n := ds.prog.State.NumOutputs
	for i := 0; i < n; i++ {
		view, ok := ds.fb.ColorAttachment(i)
		if !ok {
			continue
		}
		tx, ty, tz := view.At(x, y, 0)
		src := param.Outputs[i]
		srcColor := color.Color4[float64]{R: float64(src[0]), G: float64(src[1]), B: float64(src[2]), A: float64(src[3])}
		if ds.prog.State.Blend == BlendOff {
			texture.WriteColor(view.Tex, tx, ty, tz, srcColor)
			continue
		}
		dst := texture.ReadColor(view.Tex, tx, ty, tz)
		texture.WriteColor(view.Tex, tx, ty, tz, blend(ds.prog.State.Blend, srcColor, dst))
	}
}

func blend(mode BlendMode, src, dst color.Color4[float64]) color.Color4[float64] {
	switch mode {
	case BlendAlpha:
		a := src.A
		return color.Color4[float64]{
			R: a*src.R + (1-a)*dst.R,
			G: a*src.G + (1-a)*dst.G,
			B: a*src.B + (1-a)*dst.B,
			A: a*src.A + (1-a)*dst.A,
		}
	case BlendPremultipliedAlpha:
		a := src.A
		return color.Color4[float64]{
			R: src.R + (1-a)*dst.R,
			G: src.G + (1-a)*dst.G,
			B: src.B + (1-a)*dst.B,
			A: src.A + (1-a)*dst.A,
		}
	case BlendAdditive:
		return color.Color4[float64]{R: src.R + dst.R, G: src.G + dst.G, B: src.B + dst.B, A: src.A + dst.A}
	case BlendScreen:
		return color.Color4[float64]{
			R: src.R + dst.R - src.R*dst.R,
			G: src.G + dst.G - src.G*dst.G,
			B: src.B + dst.B - src.B*dst.B,
			A: src.A + dst.A - src.A*dst.A,
		}
	default:
		return src
	}
}
