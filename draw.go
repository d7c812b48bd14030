package rasterkit

// Draw processes mesh's element range through shaderHandle into
// framebuffer fboHandle: vertex shading (parallel across the context's
// worker pool) followed by binning, rasterization, fragment shading,
// and compositing (single-threaded, in primitive order).
func (c *Context) Draw(mesh Mesh, shaderHandle, fboHandle Handle) error {
	return c.DrawInstanced(mesh, 1, shaderHandle, fboHandle)
}

// DrawInstanced repeats Draw count times, varying only InstanceID in
// the vertex shader's parameters.
func (c *Context) DrawInstanced(mesh Mesh, count int, shaderHandle, fboHandle Handle) error {
	ds, err := c.prepareDraw(mesh, fboHandle, shaderHandle)
	if err != nil {
		return err
	}
	if count < 1 {
		return invalidArg("instance count must be >= 1")
	}
	for instance := 0; instance < count; instance++ {
		c.runDraw(ds, uint32(instance))
	}
	return nil
}

// DrawMultiple runs Draw for each mesh in order against the same
// shader and framebuffer, so each mesh gets its own vertex-array
// resolution and framebuffer validity check. The first mesh that fails
// stops the loop; meshes before it have already been drawn. There is
// no separate count parameter; the slice's length is the count.
func (c *Context) DrawMultiple(meshes []Mesh, shaderHandle, fboHandle Handle) error {
	for _, m := range meshes {
		if err := c.Draw(m, shaderHandle, fboHandle); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) prepareDraw(mesh Mesh, fboHandle, shaderHandle Handle) (*drawState, error) {
	if mesh.ElementBegin < 0 || mesh.ElementEnd < mesh.ElementBegin {
		return nil, invalidArg("mesh element range is inverted")
	}
	vao, ok := c.vaos.get(mesh.VAO)
	if !ok {
		return nil, invalidArg("draw: unknown vertex array handle")
	}
	if mesh.Mode.indexed() != vao.arr.HasIndex() {
		return nil, invalidArg("draw: mesh indexing mode does not match the bound vertex array")
	}
	if mesh.ElementEnd > vao.ElementCapacity() {
		return nil, invalidArg("draw: mesh element range overflows the bound vertex/index buffer")
	}
	prog, ok := c.shaders.get(shaderHandle)
	if !ok {
		return nil, invalidArg("draw: unknown shader handle")
	}
	fb, ok := c.framebuffers.get(fboHandle)
	if !ok {
		return nil, invalidArg("draw: unknown framebuffer handle")
	}
	if !fb.Valid() {
		return nil, invalidArg("draw: framebuffer attachments have mismatched extents")
	}
	if prog.State.DepthTest != DepthOff && !fb.HasDepth() {
		return nil, invalidArg("draw: depth test enabled but framebuffer has no depth attachment")
	}
	w, h, ok := fb.Extents()
	if !ok {
		return nil, invalidArg("draw: framebuffer has no attachments bound")
	}
	return &drawState{ctx: c, vao: vao, prog: prog, mesh: mesh, fb: fb, fbW: w, fbH: h}, nil
}

// runDraw executes one instance: the vertex stage fans out across the
// pool (worker 0 inline, the rest on spawned goroutines, joined before
// Run returns), then finalize rasterizes every worker's bins in
// ascending (workerID, slot) order on the calling goroutine.
func (c *Context) runDraw(ds *drawState, instance uint32) {
	total := ds.mesh.Count()
	n := c.pool.NumThreads()
	ranges := partitionRange(total, n, ds.mesh.Mode.vertsPerPrim())

	c.pool.BeginShading()
	c.pool.Run(func(workerID int) {
		r := ranges[workerID]
		vertexStageWorker(ds, workerID, ds.mesh.ElementBegin+r[0], ds.mesh.ElementBegin+r[1], instance)
	})
	c.pool.EndShading()

	c.pool.BeginRasterizing()
	ds.finalize()
	c.pool.EndRasterizing()
}
