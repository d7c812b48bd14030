package rasterkit

import "github.com/tanager-gfx/rasterkit/linear"

// CullMode selects which winding order of triangle is discarded before
// rasterization.
type CullMode int

const (
	CullOff CullMode = iota
	CullBack
	CullFront
)

// DepthFunc selects the comparison a fragment's interpolated depth is
// tested against the depth attachment with. DepthOff disables the
// test entirely (every fragment passes).
type DepthFunc int

const (
	DepthOff DepthFunc = iota
	DepthLess
	DepthLessEqual
	DepthGreater
	DepthGreaterEqual
	DepthEqual
	DepthNotEqual
)

func (f DepthFunc) test(frag, existing float32) bool {
	switch f {
	case DepthLess:
		return frag < existing
	case DepthLessEqual:
		return frag <= existing
	case DepthGreater:
		return frag > existing
	case DepthGreaterEqual:
		return frag >= existing
	case DepthEqual:
		return frag == existing
	case DepthNotEqual:
		return frag != existing
	default:
		return true
	}
}

// BlendMode selects how a fragment shader's output is composited onto
// an existing attachment value.
type BlendMode int

const (
	BlendOff BlendMode = iota
	BlendAlpha
	BlendPremultipliedAlpha
	BlendAdditive
	BlendScreen
)

// PipelineState packs the fixed-function state a shader program
// carries alongside its callbacks: cull mode, depth test/mask, blend
// mode, and the varying/render-target counts the vertex stage and
// rasterizer both need to know up front.
type PipelineState struct {
	Cull      CullMode
	DepthTest DepthFunc
	DepthMask bool
	Blend     BlendMode

	// VSVaryings is the number of varyings the vertex shader writes;
	// FSVaryings is the number the fragment shader reads and is what
	// the rasterizer actually interpolates. The construction-time
	// invariant VSVaryings >= FSVaryings is enforced by CreateShader.
	VSVaryings int
	FSVaryings int
	NumOutputs int
}

// VertexParam is the borrow set a vertex shader callback receives: the
// bound uniform buffer, the vertex/instance identity being processed,
// and a place to write its varyings. Varyings writes beyond
// NumVaryings are ignored by the caller.
type VertexParam struct {
	Uniforms   []byte
	VertID     uint32
	InstanceID uint32
	VAO        *vaoState
	Varyings   *[4]linear.Vec4
}

// VertexFunc is the vertex shader callback: it reads VertexParam and
// returns the vertex's clip-space position.
type VertexFunc func(p VertexParam) linear.Vec4

// FragmentParam is the borrow set a fragment shader callback receives.
// Coord.Z is the interpolated depth value that will be written to the
// depth attachment if the draw's depth mask is on. Outputs beyond
// NumOutputs are left untouched by the caller per this package's
// design (the source leaves the fragment-shader-output-past-count
// behavior undefined; here those slots are simply never read).
type FragmentParam struct {
	Coord    linear.Vec4 // x, y, depth; w unused
	Uniforms []byte
	Varyings [4]linear.Vec4
	Outputs  [4]linear.Vec4
}

// FragmentFunc is the fragment shader callback. Returning false
// discards the fragment: no color write, though depth may already have
// been committed per the depth mask.
type FragmentFunc func(p *FragmentParam) bool

// ShaderProgram is an immutable pairing of a vertex callback, a
// fragment callback, and the pipeline state they were created with.
type ShaderProgram struct {
	VS    VertexFunc
	FS    FragmentFunc
	State PipelineState
	UBO   Handle
}
