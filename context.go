package rasterkit

import (
	"github.com/tanager-gfx/rasterkit/buffer"
	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/linear"
	"github.com/tanager-gfx/rasterkit/pool"
	"github.com/tanager-gfx/rasterkit/texture"
)

// Context owns every GPU-analog resource (textures, buffers,
// framebuffers, shaders, the worker pool) and is the sole entry point
// for draw/blit/clear. All entry points are stateless aside from the
// resource registry and view state: every input to a draw is carried
// by its parameters.
type Context struct {
	textures     *slotArena[*texture.Texture]
	framebuffers *slotArena[*Framebuffer]
	vbos         *slotArena[*buffer.Vertex]
	ibos         *slotArena[*buffer.Index]
	ubos         *slotArena[*buffer.Uniform]
	vaos         *slotArena[*vaoState]
	shaders      *slotArena[*ShaderProgram]

	pool *pool.Pool

	viewportX, viewportY, viewportW, viewportH int
	scissorX, scissorY, scissorW, scissorH     int
	zClip                                      bool
	scissor                                    linear.Mat4
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithThreads sets the initial worker count (clamped to >= 1).
func WithThreads(n int) ContextOption {
	return func(c *Context) { c.pool.Resize(n) }
}

// WithZClip enables near/far homogeneous clipping in addition to the
// default x/y-only clipping.
func WithZClip(enabled bool) ContextOption {
	return func(c *Context) { c.zClip = enabled }
}

// NewContext creates a context with a single worker thread and no
// viewport/scissor configured; callers typically follow with
// SetViewport before the first draw.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		textures:     newSlotArena[*texture.Texture](),
		framebuffers: newSlotArena[*Framebuffer](),
		vbos:         newSlotArena[*buffer.Vertex](),
		ibos:         newSlotArena[*buffer.Index](),
		ubos:         newSlotArena[*buffer.Uniform](),
		vaos:         newSlotArena[*vaoState](),
		shaders:      newSlotArena[*ShaderProgram](),
		pool:         pool.New(1, pool.FragmentQueueCapacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scissor.Identity()
	return c
}

// NumThreads resizes the worker pool, clamped to >= 1, and clears all
// per-thread bins.
func (c *Context) NumThreads(n int) int {
	got := c.pool.Resize(n)
	c.pool.ResetAll()
	return got
}

// SetMemoryConservative switches every worker's fragment queue between
// the normal (Q=600) and memory-conservative (Q=16) capacity.
func (c *Context) SetMemoryConservative(on bool) {
	if on {
		c.pool.SetQueueCapacity(pool.MemoryConservativeQueueCapacity)
	} else {
		c.pool.SetQueueCapacity(pool.FragmentQueueCapacity)
	}
}

// SetViewport sets the viewport rectangle used by perspective-divide
// viewport mapping, and recomputes the combined scissor matrix.
func (c *Context) SetViewport(x, y, w, h int) {
	c.viewportX, c.viewportY, c.viewportW, c.viewportH = x, y, w, h
	if c.scissorW == 0 && c.scissorH == 0 {
		c.scissorX, c.scissorY, c.scissorW, c.scissorH = x, y, w, h
	}
	c.recomputeScissor()
}

// SetScissor sets the scissor rectangle enforced at the clip stage.
func (c *Context) SetScissor(x, y, w, h int) {
	c.scissorX, c.scissorY, c.scissorW, c.scissorH = x, y, w, h
	c.recomputeScissor()
}

func (c *Context) recomputeScissor() {
	linear.ScissorMatrix(&c.scissor, c.viewportX, c.viewportY, c.viewportW, c.viewportH,
		c.scissorX, c.scissorY, c.scissorW, c.scissorH)
}

// --- Resource creation / destruction ---

// CreateTexture allocates a texture and registers it, returning a
// stable handle.
func (c *Context) CreateTexture(w, h, d int, typ color.Type, swizzled bool) (Handle, error) {
	tx, err := texture.New(w, h, d, typ, swizzled)
	if err != nil {
		return invalidHandle, outOfMemory(err.Error())
	}
	return c.textures.insert(tx), nil
}

// DestroyTexture releases a texture and invalidates its handle.
func (c *Context) DestroyTexture(h Handle) error {
	tx, ok := c.textures.remove(h)
	if !ok {
		return invalidArg("destroy_texture: unknown handle")
	}
	tx.Destroy()
	return nil
}

func (c *Context) resolveTexture(h Handle) (*texture.Texture, error) {
	tx, ok := c.textures.get(h)
	if !ok {
		return nil, invalidArg("unknown texture handle")
	}
	return tx, nil
}

// CreateFramebuffer allocates an empty framebuffer with n color
// attachment slots.
func (c *Context) CreateFramebuffer(n int) (Handle, error) {
	fb, err := NewFramebuffer(n)
	if err != nil {
		return invalidHandle, err
	}
	return c.framebuffers.insert(fb), nil
}

// DestroyFramebuffer invalidates a framebuffer handle. The textures it
// referenced are not freed.
func (c *Context) DestroyFramebuffer(h Handle) error {
	if _, ok := c.framebuffers.remove(h); !ok {
		return invalidArg("destroy_framebuffer: unknown handle")
	}
	return nil
}

func (c *Context) resolveFramebuffer(h Handle) (*Framebuffer, error) {
	fb, ok := c.framebuffers.get(h)
	if !ok {
		return nil, invalidArg("unknown framebuffer handle")
	}
	return fb, nil
}

// AttachColorBuffer binds texture handle th's full view to framebuffer
// fh's color attachment slot i.
func (c *Context) AttachColorBuffer(fh Handle, i int, th Handle) error {
	fb, err := c.resolveFramebuffer(fh)
	if err != nil {
		return err
	}
	tx, err := c.resolveTexture(th)
	if err != nil {
		return err
	}
	return fb.AttachColor(i, texture.Full(tx))
}

// AttachDepthBuffer binds texture handle th's full view as framebuffer
// fh's depth attachment.
func (c *Context) AttachDepthBuffer(fh Handle, th Handle) error {
	fb, err := c.resolveFramebuffer(fh)
	if err != nil {
		return err
	}
	tx, err := c.resolveTexture(th)
	if err != nil {
		return err
	}
	return fb.AttachDepth(texture.Full(tx))
}

// CreateVertexBuffer allocates a vertex buffer of the given byte size.
func (c *Context) CreateVertexBuffer(size int) (Handle, error) {
	vb, err := buffer.NewVertex(size)
	if err != nil {
		return invalidHandle, outOfMemory(err.Error())
	}
	return c.vbos.insert(vb), nil
}

// DestroyVertexBuffer invalidates a vertex buffer handle.
func (c *Context) DestroyVertexBuffer(h Handle) error {
	vb, ok := c.vbos.remove(h)
	if !ok {
		return invalidArg("destroy_vertex_buffer: unknown handle")
	}
	vb.Destroy()
	return nil
}

// UpdateVertexBuffer overwrites part of a vertex buffer's storage.
func (c *Context) UpdateVertexBuffer(h Handle, byteOffset int, data []byte) error {
	vb, ok := c.vbos.get(h)
	if !ok {
		return invalidArg("update_vertex_buffer: unknown handle")
	}
	return vb.Update(byteOffset, data)
}

// CreateIndexBuffer allocates an index buffer of the given type and
// element count.
func (c *Context) CreateIndexBuffer(typ buffer.IndexType, count int) (Handle, error) {
	ib, err := buffer.NewIndex(typ, count)
	if err != nil {
		return invalidHandle, outOfMemory(err.Error())
	}
	return c.ibos.insert(ib), nil
}

// DestroyIndexBuffer invalidates an index buffer handle.
func (c *Context) DestroyIndexBuffer(h Handle) error {
	ib, ok := c.ibos.remove(h)
	if !ok {
		return invalidArg("destroy_index_buffer: unknown handle")
	}
	ib.Destroy()
	return nil
}

// UpdateIndexBuffer overwrites part of an index buffer's elements.
func (c *Context) UpdateIndexBuffer(h Handle, elementOffset int, data []byte) error {
	ib, ok := c.ibos.get(h)
	if !ok {
		return invalidArg("update_index_buffer: unknown handle")
	}
	return ib.Update(elementOffset, data)
}

// CreateUniformBuffer allocates a uniform buffer of the given byte
// size.
func (c *Context) CreateUniformBuffer(size int) (Handle, error) {
	ub, err := buffer.NewUniform(size)
	if err != nil {
		return invalidHandle, outOfMemory(err.Error())
	}
	return c.ubos.insert(ub), nil
}

// DestroyUniformBuffer invalidates a uniform buffer handle.
func (c *Context) DestroyUniformBuffer(h Handle) error {
	ub, ok := c.ubos.remove(h)
	if !ok {
		return invalidArg("destroy_uniform_buffer: unknown handle")
	}
	ub.Destroy()
	return nil
}

// UpdateUniformBuffer overwrites part of a uniform buffer's storage.
func (c *Context) UpdateUniformBuffer(h Handle, byteOffset int, data []byte) error {
	ub, ok := c.ubos.get(h)
	if !ok {
		return invalidArg("update_uniform_buffer: unknown handle")
	}
	return ub.Update(byteOffset, data)
}

// CreateVertexArray binds vbo and an optional ibo (pass the zero Handle
// for a non-indexed array) together with an attribute layout.
func (c *Context) CreateVertexArray(vboHandle, iboHandle Handle, attrs []buffer.Attribute) (Handle, error) {
	vb, ok := c.vbos.get(vboHandle)
	if !ok {
		return invalidHandle, invalidArg("create_vertex_array: unknown vertex buffer handle")
	}
	var ib *buffer.Index
	bufferIBOHandle := buffer.NoHandle
	if iboHandle != invalidHandle {
		got, ok := c.ibos.get(iboHandle)
		if !ok {
			return invalidHandle, invalidArg("create_vertex_array: unknown index buffer handle")
		}
		ib = got
		bufferIBOHandle = buffer.Handle(iboHandle)
	}
	arr, err := buffer.NewArray(buffer.Handle(vboHandle), bufferIBOHandle, attrs)
	if err != nil {
		return invalidHandle, invalidArg(err.Error())
	}
	return c.vaos.insert(&vaoState{arr: arr, vbo: vb, ibo: ib}), nil
}

// DestroyVertexArray invalidates a vertex array handle.
func (c *Context) DestroyVertexArray(h Handle) error {
	if _, ok := c.vaos.remove(h); !ok {
		return invalidArg("destroy_vertex_array: unknown handle")
	}
	return nil
}

// CreateShader validates and registers a shader program. It fails
// with InvalidShader if the varying counts mismatch or exceed 4, or if
// the fragment output count exceeds 4.
func (c *Context) CreateShader(vs VertexFunc, fs FragmentFunc, state PipelineState, ubo Handle) (Handle, error) {
	if state.VSVaryings < 0 || state.VSVaryings > 4 || state.FSVaryings < 0 || state.FSVaryings > 4 {
		return invalidHandle, invalidShader("varying counts must be in 0..4")
	}
	if state.VSVaryings < state.FSVaryings {
		return invalidHandle, invalidShader("vertex shader must write at least as many varyings as the fragment shader reads")
	}
	if state.NumOutputs < 0 || state.NumOutputs > 4 {
		return invalidHandle, invalidShader("render target count must be in 0..4")
	}
	if vs == nil || fs == nil {
		return invalidHandle, invalidShader("vertex and fragment callbacks are required")
	}
	prog := &ShaderProgram{VS: vs, FS: fs, State: state, UBO: ubo}
	return c.shaders.insert(prog), nil
}

// DestroyShader invalidates a shader handle.
func (c *Context) DestroyShader(h Handle) error {
	if _, ok := c.shaders.remove(h); !ok {
		return invalidArg("destroy_shader: unknown handle")
	}
	return nil
}
