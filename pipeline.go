package rasterkit

import (
	"github.com/tanager-gfx/rasterkit/linear"
	"github.com/tanager-gfx/rasterkit/pool"
)

// visibility classifies a primitive's homogeneous clip-space extent.
type visibility int

const (
	notVisible visibility = iota
	fullyVisible
	partiallyVisible
)

// classify runs the per-axis -w <= c <= w tests across x, y, and
// optionally z, bucketing a primitive's vertices into one of the three
// visibility states.
func classify(verts []linear.Vec4, zClip bool) visibility {
	allIn := true
	anyIn := false
	// outsideLeft etc. track whether every vertex lies outside the same
	// single plane, the cheap separating-axis test that lets an
	// entirely-off-screen primitive skip clipping outright instead of
	// running the full Sutherland-Hodgman pass only to produce nothing.
	outsideLeft, outsideRight := true, true
	outsideBottom, outsideTop := true, true
	outsideNear, outsideFar := true, true
	for _, v := range verts {
		w := v[3]
		inX := -w <= v[0] && v[0] <= w
		inY := -w <= v[1] && v[1] <= w
		inZ := true
		if zClip {
			inZ = -w <= v[2] && v[2] <= w
		}
		in := inX && inY && inZ
		if in {
			anyIn = true
		} else {
			allIn = false
		}
		if v[0] >= -w {
			outsideLeft = false
		}
		if v[0] <= w {
			outsideRight = false
		}
		if v[1] >= -w {
			outsideBottom = false
		}
		if v[1] <= w {
			outsideTop = false
		}
		if zClip {
			if v[2] >= -w {
				outsideNear = false
			}
			if v[2] <= w {
				outsideFar = false
			}
		}
	}
	switch {
	case allIn:
		return fullyVisible
	case outsideLeft || outsideRight || outsideBottom || outsideTop ||
		(zClip && (outsideNear || outsideFar)):
		return notVisible
	case anyIn:
		return partiallyVisible
	default:
		// No single plane separates every vertex, but not every vertex
		// is individually inside either (e.g. a large triangle whose
		// corners are outside different faces but which still covers
		// the frustum): let the full clip pass decide what survives.
		return partiallyVisible
	}
}

func viewportMap(v *linear.Vec4, vx, vy, vw, vh int) {
	v.PerspectiveDivide()
	v[0] = linear.Floor32(max32(0, (v[0]+1)*(float32(vw)/2)+float32(vx)))
	v[1] = linear.Floor32(max32(0, (v[1]+1)*(float32(vh)/2)+float32(vy)))
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// drawState carries everything a vertex-stage worker needs for one
// draw call: the resolved mesh inputs, the shader, the framebuffer
// extents/view state, and the pool it pushes bins into.
type drawState struct {
	ctx           *Context
	vao           *vaoState
	prog          *ShaderProgram
	mesh          Mesh
	fb            *Framebuffer
	fbW           int
	fbH           int
	instanceCount int
}

// vertexStageWorker runs the vertex stage for one worker's share of a
// draw call's index range, pushing surviving primitives into the
// worker's own bin array and flushing (via rasterize) whenever that
// array fills.
func vertexStageWorker(ds *drawState, workerID int, begin, end int, instance uint32) {
	var cache ptvCache
	vertsPerPrim := ds.mesh.Mode.vertsPerPrim()

	compute := func(id uint32) transformedVertex {
		var varyings [4]linear.Vec4
		param := VertexParam{
			Uniforms:   ds.resolveUniforms(),
			VertID:     id,
			InstanceID: instance,
			VAO:        ds.vao,
			Varyings:   &varyings,
		}
		pos := ds.prog.VS(param)
		ds.ctx.scissor.MulVec(&pos, pos)
		return transformedVertex{Pos: pos, Varyings: varyings, NumVaryings: ds.prog.State.VSVaryings}
	}

	switch vertsPerPrim {
	case 3:
		for i := begin; i+3 <= end; i += 3 {
			i0 := ds.vao.Index(i)
			i1 := ds.vao.Index(i + 1)
			i2 := ds.vao.Index(i + 2)
			primIndex := uint32(i / 3)
			if ds.mesh.Mode == IndexedTriWire {
				processTriangleWireframe(ds, workerID, &cache, compute, primIndex, i0, i1, i2)
			} else {
				processTriangle(ds, workerID, &cache, compute, primIndex, i0, i1, i2)
			}
		}
	case 2:
		for i := begin; i+2 <= end; i += 2 {
			i0 := ds.vao.Index(i)
			i1 := ds.vao.Index(i + 1)
			primIndex := uint32(i / 2)
			processLine(ds, workerID, &cache, compute, primIndex, i0, i1)
		}
	default:
		for i := begin; i < end; i++ {
			i0 := ds.vao.Index(i)
			primIndex := uint32(i)
			processPoint(ds, workerID, &cache, compute, primIndex, i0)
		}
	}
}

func (ds *drawState) resolveUniforms() []byte {
	if ds.prog.UBO == invalidHandle {
		return nil
	}
	ub, ok := ds.ctx.ubos.get(ds.prog.UBO)
	if !ok {
		return nil
	}
	return ub.Bytes()
}

func processTriangle(ds *drawState, workerID int, cache *ptvCache, compute func(uint32) transformedVertex, primIndex uint32, i0, i1, i2 uint32) {
	v0 := cache.queryOrUpdate(i0, compute)
	v1 := cache.queryOrUpdate(i1, compute)
	v2 := cache.queryOrUpdate(i2, compute)

	cull := ds.prog.State.Cull
	if cull != CullOff {
		// Homogeneous face determinant: the 3x3 determinant of the
		// three vertices' (x,y,w) columns, which is sign-equivalent to
		// the eventual screen-space winding once w is divided out, so
		// culling can happen before perspective divide.
		det := (v1.Pos[0]*v0.Pos[3]-v0.Pos[0]*v1.Pos[3])*(v2.Pos[1]*v0.Pos[3]-v0.Pos[1]*v2.Pos[3]) -
			(v2.Pos[0]*v0.Pos[3]-v0.Pos[0]*v2.Pos[3])*(v1.Pos[1]*v0.Pos[3]-v0.Pos[1]*v1.Pos[3])
		if (cull == CullBack && det < 0) || (cull == CullFront && det > 0) {
			return
		}
	}

	clipVerts := []linear.Vec4{v0.Pos, v1.Pos, v2.Pos}
	switch classify(clipVerts, ds.ctx.zClip) {
	case notVisible:
		return
	case fullyVisible:
		p0, p1, p2 := v0.Pos, v1.Pos, v2.Pos
		viewportMap(&p0, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
		viewportMap(&p1, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
		viewportMap(&p2, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
		pushTriangleBin(ds, workerID, primIndex,
			pool.Vertex{Pos: p0, Varyings: v0.Varyings, NumVaryings: v0.NumVaryings},
			pool.Vertex{Pos: p1, Varyings: v1.Varyings, NumVaryings: v1.NumVaryings},
			pool.Vertex{Pos: p2, Varyings: v2.Varyings, NumVaryings: v2.NumVaryings})
	case partiallyVisible:
		cv0 := clipVertex{Pos: v0.Pos, Varyings: v0.Varyings}
		cv1 := clipVertex{Pos: v1.Pos, Varyings: v1.Varyings}
		cv2 := clipVertex{Pos: v2.Pos, Varyings: v2.Varyings}
		poly := clipTriangle(cv0, cv1, cv2, v0.NumVaryings, ds.ctx.zClip)
		for _, tri := range fanTriangulate(poly) {
			p0, p1, p2 := tri[0].Pos, tri[1].Pos, tri[2].Pos
			viewportMap(&p0, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
			viewportMap(&p1, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
			viewportMap(&p2, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
			pushTriangleBin(ds, workerID, primIndex,
				pool.Vertex{Pos: p0, Varyings: tri[0].Varyings, NumVaryings: v0.NumVaryings},
				pool.Vertex{Pos: p1, Varyings: tri[1].Varyings, NumVaryings: v0.NumVaryings},
				pool.Vertex{Pos: p2, Varyings: tri[2].Varyings, NumVaryings: v0.NumVaryings})
		}
	}
}

// processTriangleWireframe mirrors processTriangle's culling and
// clipping, but emits the three edges of each resulting triangle as
// line bins instead of a single filled triangle bin.
func processTriangleWireframe(ds *drawState, workerID int, cache *ptvCache, compute func(uint32) transformedVertex, primIndex uint32, i0, i1, i2 uint32) {
	v0 := cache.queryOrUpdate(i0, compute)
	v1 := cache.queryOrUpdate(i1, compute)
	v2 := cache.queryOrUpdate(i2, compute)

	cull := ds.prog.State.Cull
	if cull != CullOff {
		// Same homogeneous face determinant as processTriangle.
		det := (v1.Pos[0]*v0.Pos[3]-v0.Pos[0]*v1.Pos[3])*(v2.Pos[1]*v0.Pos[3]-v0.Pos[1]*v2.Pos[3]) -
			(v2.Pos[0]*v0.Pos[3]-v0.Pos[0]*v2.Pos[3])*(v1.Pos[1]*v0.Pos[3]-v0.Pos[1]*v1.Pos[3])
		if (cull == CullBack && det < 0) || (cull == CullFront && det > 0) {
			return
		}
	}

	clipVerts := []linear.Vec4{v0.Pos, v1.Pos, v2.Pos}
	switch classify(clipVerts, ds.ctx.zClip) {
	case notVisible:
		return
	case fullyVisible:
		p0, p1, p2 := v0.Pos, v1.Pos, v2.Pos
		viewportMap(&p0, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
		viewportMap(&p1, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
		viewportMap(&p2, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
		pushTriangleWireEdges(ds, workerID, primIndex,
			pool.Vertex{Pos: p0, Varyings: v0.Varyings, NumVaryings: v0.NumVaryings},
			pool.Vertex{Pos: p1, Varyings: v1.Varyings, NumVaryings: v1.NumVaryings},
			pool.Vertex{Pos: p2, Varyings: v2.Varyings, NumVaryings: v2.NumVaryings})
	case partiallyVisible:
		cv0 := clipVertex{Pos: v0.Pos, Varyings: v0.Varyings}
		cv1 := clipVertex{Pos: v1.Pos, Varyings: v1.Varyings}
		cv2 := clipVertex{Pos: v2.Pos, Varyings: v2.Varyings}
		poly := clipTriangle(cv0, cv1, cv2, v0.NumVaryings, ds.ctx.zClip)
		for _, tri := range fanTriangulate(poly) {
			p0, p1, p2 := tri[0].Pos, tri[1].Pos, tri[2].Pos
			viewportMap(&p0, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
			viewportMap(&p1, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
			viewportMap(&p2, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
			pushTriangleWireEdges(ds, workerID, primIndex,
				pool.Vertex{Pos: p0, Varyings: tri[0].Varyings, NumVaryings: v0.NumVaryings},
				pool.Vertex{Pos: p1, Varyings: tri[1].Varyings, NumVaryings: v0.NumVaryings},
				pool.Vertex{Pos: p2, Varyings: tri[2].Varyings, NumVaryings: v0.NumVaryings})
		}
	}
}

func pushTriangleWireEdges(ds *drawState, workerID int, primIndex uint32, v0, v1, v2 pool.Vertex) {
	pushLineBin(ds, workerID, primIndex, v0, v1)
	pushLineBin(ds, workerID, primIndex, v1, v2)
	pushLineBin(ds, workerID, primIndex, v2, v0)
}

func pushLineBin(ds *drawState, workerID int, primIndex uint32, v0, v1 pool.Vertex) {
	arr := ds.ctx.pool.Bins(workerID)
	slot, ok := arr.Acquire()
	if !ok {
		ds.flushWorker(workerID)
		slot, ok = arr.Acquire()
		if !ok {
			return
		}
	}
	b := arr.Bin(slot)
	b.FillLineBin(primIndex, v0, v1)
	arr.Publish(slot)
}

func pushTriangleBin(ds *drawState, workerID int, primIndex uint32, v0, v1, v2 pool.Vertex) {
	arr := ds.ctx.pool.Bins(workerID)
	slot, ok := arr.Acquire()
	if !ok {
		ds.flushWorker(workerID)
		slot, ok = arr.Acquire()
		if !ok {
			return
		}
	}
	b := arr.Bin(slot)
	b.FillTriangleBin(primIndex, v0, v1, v2)
	arr.Publish(slot)
}

func processLine(ds *drawState, workerID int, cache *ptvCache, compute func(uint32) transformedVertex, primIndex uint32, i0, i1 uint32) {
	v0 := cache.queryOrUpdate(i0, compute)
	v1 := cache.queryOrUpdate(i1, compute)
	if v0.Pos[3] <= 0 || v1.Pos[3] <= 0 {
		return
	}
	p0, p1 := v0.Pos, v1.Pos
	viewportMap(&p0, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)
	viewportMap(&p1, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)

	minX, maxX := minmax32(p0[0], p1[0])
	minY, maxY := minmax32(p0[1], p1[1])
	if maxX < 0 || maxY < 0 || minX > float32(ds.fbW) || minY > float32(ds.fbH) {
		return
	}
	if minX == maxX && minY == maxY && p0 == p1 {
		return
	}

	pushLineBin(ds, workerID, primIndex,
		pool.Vertex{Pos: p0, Varyings: v0.Varyings, NumVaryings: v0.NumVaryings},
		pool.Vertex{Pos: p1, Varyings: v1.Varyings, NumVaryings: v1.NumVaryings})
}

func processPoint(ds *drawState, workerID int, cache *ptvCache, compute func(uint32) transformedVertex, primIndex uint32, i0 uint32) {
	v0 := cache.queryOrUpdate(i0, compute)
	if v0.Pos[3] <= 0 {
		return
	}
	p0 := v0.Pos
	viewportMap(&p0, ds.ctx.viewportX, ds.ctx.viewportY, ds.ctx.viewportW, ds.ctx.viewportH)

	arr := ds.ctx.pool.Bins(workerID)
	slot, ok := arr.Acquire()
	if !ok {
		ds.flushWorker(workerID)
		slot, ok = arr.Acquire()
		if !ok {
			return
		}
	}
	b := arr.Bin(slot)
	b.FillPointBin(primIndex, pool.Vertex{Pos: p0, Varyings: v0.Varyings, NumVaryings: v0.NumVaryings})
	arr.Publish(slot)
}

func minmax32(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}
