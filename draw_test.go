package rasterkit

import (
	"math"
	"testing"

	"github.com/tanager-gfx/rasterkit/buffer"
	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/linear"
	"github.com/tanager-gfx/rasterkit/texture"
)

func redFragmentShader(p *FragmentParam) bool {
	p.Outputs[0] = linear.Vec4{1, 0, 0, 1}
	return true
}

func positionPassthroughVS(p VertexParam) linear.Vec4 {
	a := p.VAO.FetchAttribute(p.VAO.Attribute(0), p.VertID)
	return linear.Vec4{a[0], a[1], a[2], 1}
}

func packFloat32LE(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

// newTriangleDraw builds a context with an 8x8 RGBA_8U framebuffer, a
// single non-indexed triangle covering most of the viewport, and a
// shader that writes solid opaque red.
func newTriangleDraw(t *testing.T) (ctx *Context, fbHandle, texHandle, shaderHandle, vaoHandle Handle) {
	t.Helper()
	ctx = NewContext()
	ctx.SetViewport(0, 0, 8, 8)

	texHandle, err := ctx.CreateTexture(8, 8, 1, color.RGBA_8U, false)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	fbHandle, err = ctx.CreateFramebuffer(1)
	if err != nil {
		t.Fatalf("CreateFramebuffer: %v", err)
	}
	if err := ctx.AttachColorBuffer(fbHandle, 0, texHandle); err != nil {
		t.Fatalf("AttachColorBuffer: %v", err)
	}

	verts := []float32{
		-0.8, -0.8, 0,
		0.8, -0.8, 0,
		0, 0.8, 0,
	}
	raw := make([]byte, len(verts)*4)
	for i, f := range verts {
		packFloat32LE(raw[i*4:], f)
	}
	vboHandle, err := ctx.CreateVertexBuffer(len(raw))
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	if err := ctx.UpdateVertexBuffer(vboHandle, 0, raw); err != nil {
		t.Fatalf("UpdateVertexBuffer: %v", err)
	}
	vaoHandle, err = ctx.CreateVertexArray(vboHandle, invalidHandle, []buffer.Attribute{
		{Offset: 0, Stride: 12, Components: 3, Type: buffer.AttribF32},
	})
	if err != nil {
		t.Fatalf("CreateVertexArray: %v", err)
	}
	shaderHandle, err = ctx.CreateShader(positionPassthroughVS, redFragmentShader, PipelineState{
		NumOutputs: 1,
	}, invalidHandle)
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	return ctx, fbHandle, texHandle, shaderHandle, vaoHandle
}

func TestDrawFillsTriangleInterior(t *testing.T) {
	ctx, fbHandle, texHandle, shaderHandle, vaoHandle := newTriangleDraw(t)
	mesh := Mesh{VAO: vaoHandle, Mode: Triangles, ElementBegin: 0, ElementEnd: 3}
	if err := ctx.Draw(mesh, shaderHandle, fbHandle); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	tx, err := ctx.resolveTexture(texHandle)
	if err != nil {
		t.Fatalf("resolveTexture: %v", err)
	}
	center := texture.ReadColor(tx, 4, 3, 0)
	if center.R < 0.9 || center.A < 0.9 {
		t.Fatalf("center pixel = %+v, want opaque red", center)
	}
	corner := texture.ReadColor(tx, 7, 7, 0)
	if corner.A > 0.1 {
		t.Fatalf("corner pixel = %+v, want untouched (alpha 0)", corner)
	}
}

func TestDrawIsDeterministicAcrossThreadCounts(t *testing.T) {
	var reference color.Color4[float64]
	for _, threads := range []int{1, 2, 4} {
		ctx, fbHandle, texHandle, shaderHandle, vaoHandle := newTriangleDraw(t)
		ctx.NumThreads(threads)
		mesh := Mesh{VAO: vaoHandle, Mode: Triangles, ElementBegin: 0, ElementEnd: 3}
		if err := ctx.Draw(mesh, shaderHandle, fbHandle); err != nil {
			t.Fatalf("threads=%d: Draw: %v", threads, err)
		}
		tx, _ := ctx.resolveTexture(texHandle)
		got := texture.ReadColor(tx, 4, 3, 0)
		if threads == 1 {
			reference = got
		} else if got != reference {
			t.Fatalf("threads=%d: center pixel %+v differs from single-threaded reference %+v", threads, got, reference)
		}
	}
}

func TestDrawRejectsUnknownVertexArray(t *testing.T) {
	ctx := NewContext()
	ctx.SetViewport(0, 0, 4, 4)
	texHandle, _ := ctx.CreateTexture(4, 4, 1, color.RGBA_8U, false)
	fbHandle, _ := ctx.CreateFramebuffer(1)
	ctx.AttachColorBuffer(fbHandle, 0, texHandle)
	shaderHandle, _ := ctx.CreateShader(positionPassthroughVS, redFragmentShader, PipelineState{NumOutputs: 1}, invalidHandle)

	mesh := Mesh{VAO: Handle(9999), Mode: Triangles, ElementBegin: 0, ElementEnd: 3}
	if err := ctx.Draw(mesh, shaderHandle, fbHandle); err == nil {
		t.Fatalf("Draw with an unknown VAO handle should fail")
	}
}

func TestDrawRejectsElementRangeOverflowingVertexBuffer(t *testing.T) {
	ctx, fbHandle, _, shaderHandle, vaoHandle := newTriangleDraw(t)
	// The VBO backing vaoHandle holds exactly 3 vertices; asking for a
	// 4th overflows it.
	mesh := Mesh{VAO: vaoHandle, Mode: Triangles, ElementBegin: 0, ElementEnd: 6}
	if err := ctx.Draw(mesh, shaderHandle, fbHandle); err == nil {
		t.Fatalf("Draw should reject a non-indexed element range past the vertex buffer's capacity")
	}
}

func TestDrawRejectsElementRangeOverflowingIndexBuffer(t *testing.T) {
	ctx, fbHandle, _, _, _ := newTriangleDraw(t)
	verts := []float32{
		-0.8, -0.8, 0,
		0.8, -0.8, 0,
		0, 0.8, 0,
	}
	raw := make([]byte, len(verts)*4)
	for i, f := range verts {
		packFloat32LE(raw[i*4:], f)
	}
	vboHandle, err := ctx.CreateVertexBuffer(len(raw))
	if err != nil {
		t.Fatalf("CreateVertexBuffer: %v", err)
	}
	if err := ctx.UpdateVertexBuffer(vboHandle, 0, raw); err != nil {
		t.Fatalf("UpdateVertexBuffer: %v", err)
	}
	iboHandle, err := ctx.CreateIndexBuffer(buffer.IndexU16, 3)
	if err != nil {
		t.Fatalf("CreateIndexBuffer: %v", err)
	}
	idxRaw := []byte{0, 0, 1, 0, 2, 0}
	if err := ctx.UpdateIndexBuffer(iboHandle, 0, idxRaw); err != nil {
		t.Fatalf("UpdateIndexBuffer: %v", err)
	}
	vaoHandle, err := ctx.CreateVertexArray(vboHandle, iboHandle, []buffer.Attribute{
		{Offset: 0, Stride: 12, Components: 3, Type: buffer.AttribF32},
	})
	if err != nil {
		t.Fatalf("CreateVertexArray: %v", err)
	}
	shaderHandle, err := ctx.CreateShader(positionPassthroughVS, redFragmentShader, PipelineState{NumOutputs: 1}, invalidHandle)
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}

	// The IBO holds exactly 3 indices; asking for 6 elements overflows it.
	mesh := Mesh{VAO: vaoHandle, Mode: IndexedTriangles, ElementBegin: 0, ElementEnd: 6}
	if err := ctx.Draw(mesh, shaderHandle, fbHandle); err == nil {
		t.Fatalf("Draw should reject an indexed element range past the index buffer's capacity")
	}
}

func TestDrawRejectsDepthTestWithoutDepthAttachment(t *testing.T) {
	ctx, fbHandle, _, _, vaoHandle := newTriangleDraw(t)
	shaderHandle, err := ctx.CreateShader(positionPassthroughVS, redFragmentShader, PipelineState{
		NumOutputs: 1,
		DepthTest:  DepthLess,
	}, invalidHandle)
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	mesh := Mesh{VAO: vaoHandle, Mode: Triangles, ElementBegin: 0, ElementEnd: 3}
	if err := ctx.Draw(mesh, shaderHandle, fbHandle); err == nil {
		t.Fatalf("Draw should reject a depth-testing shader against a framebuffer with no depth attachment")
	}
}
