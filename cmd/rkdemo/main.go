// Command rkdemo presents a rasterkit context's color attachment in an
// ebiten window, spinning one triangle to exercise the vertex stage,
// clipping, and rasterizer every frame.
package main

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tanager-gfx/rasterkit"
	"github.com/tanager-gfx/rasterkit/buffer"
	"github.com/tanager-gfx/rasterkit/color"
	"github.com/tanager-gfx/rasterkit/linear"
)

const (
	frameWidth  = 256
	frameHeight = 256
)

type game struct {
	ctx     *rasterkit.Context
	texture rasterkit.Handle
	fbo     rasterkit.Handle
	ubo     rasterkit.Handle
	vao     rasterkit.Handle
	shader  rasterkit.Handle

	window *ebiten.Image
	pixels []byte
	angle  float32
	paused bool
}

func rotatingVS(p rasterkit.VertexParam) linear.Vec4 {
	angle := math.Float32frombits(binary.LittleEndian.Uint32(p.Uniforms))
	s, c := math.Sincos(float64(angle))
	attr := p.VAO.FetchAttribute(p.VAO.Attribute(0), p.VertID)
	x := attr[0]*float32(c) - attr[1]*float32(s)
	y := attr[0]*float32(s) + attr[1]*float32(c)
	return linear.Vec4{x, y, attr[2], 1}
}

func vertexColorFS(p *rasterkit.FragmentParam) bool {
	p.Outputs[0] = p.Varyings[0]
	return true
}

func newGame() (*game, error) {
	ctx := rasterkit.NewContext(rasterkit.WithThreads(4))
	ctx.SetViewport(0, 0, frameWidth, frameHeight)

	texHandle, err := ctx.CreateTexture(frameWidth, frameHeight, 1, color.RGBA_8U, false)
	if err != nil {
		return nil, err
	}
	fbHandle, err := ctx.CreateFramebuffer(1)
	if err != nil {
		return nil, err
	}
	if err := ctx.AttachColorBuffer(fbHandle, 0, texHandle); err != nil {
		return nil, err
	}

	uboHandle, err := ctx.CreateUniformBuffer(4)
	if err != nil {
		return nil, err
	}

	// Interleaved position (xyz) + color (rgb) per vertex.
	verts := []float32{
		0, 0.8, 0, 1, 0, 0,
		-0.8, -0.6, 0, 0, 1, 0,
		0.8, -0.6, 0, 0, 0, 1,
	}
	raw := make([]byte, len(verts)*4)
	for i, f := range verts {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	vboHandle, err := ctx.CreateVertexBuffer(len(raw))
	if err != nil {
		return nil, err
	}
	if err := ctx.UpdateVertexBuffer(vboHandle, 0, raw); err != nil {
		return nil, err
	}
	vaoHandle, err := ctx.CreateVertexArray(vboHandle, rasterkit.Handle(0), []buffer.Attribute{
		{Offset: 0, Stride: 24, Components: 3, Type: buffer.AttribF32},
		{Offset: 12, Stride: 24, Components: 3, Type: buffer.AttribF32},
	})
	if err != nil {
		return nil, err
	}

	shaderVS := func(p rasterkit.VertexParam) linear.Vec4 {
		pos := rotatingVS(p)
		colorAttr := p.VAO.FetchAttribute(p.VAO.Attribute(1), p.VertID)
		p.Varyings[0] = linear.Vec4{colorAttr[0], colorAttr[1], colorAttr[2], 1}
		return pos
	}
	shaderHandle, err := ctx.CreateShader(shaderVS, vertexColorFS, rasterkit.PipelineState{
		VSVaryings: 1,
		FSVaryings: 1,
		NumOutputs: 1,
	}, uboHandle)
	if err != nil {
		return nil, err
	}

	return &game{
		ctx:     ctx,
		texture: texHandle,
		fbo:     fbHandle,
		ubo:     uboHandle,
		vao:     vaoHandle,
		shader:  shaderHandle,
		window:  ebiten.NewImage(frameWidth, frameHeight),
		pixels:  make([]byte, frameWidth*frameHeight*4),
	}, nil
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.angle += 0.02
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	var angleBytes [4]byte
	binary.LittleEndian.PutUint32(angleBytes[:], math.Float32bits(g.angle))
	if err := g.ctx.UpdateUniformBuffer(g.ubo, 0, angleBytes[:]); err != nil {
		log.Fatal(err)
	}
	if err := g.ctx.ClearColorBuffer(g.fbo, 0, color.Color4[float64]{A: 1}); err != nil {
		log.Fatal(err)
	}
	mesh := rasterkit.Mesh{VAO: g.vao, Mode: rasterkit.Triangles, ElementBegin: 0, ElementEnd: 3}
	if err := g.ctx.Draw(mesh, g.shader, g.fbo); err != nil {
		log.Fatal(err)
	}

	view := rasterkit.PixelView{
		Width: frameWidth, Height: frameHeight, Depth: 1,
		BytesPerTexel: 4, NumChannels: 4,
		ColorType: color.RGBA_8U,
		Pixels:    g.pixels,
	}
	if err := g.ctx.BlitToView(view, g.texture, [4]int{0, 0, frameWidth, frameHeight}); err != nil {
		log.Fatal(err)
	}
	g.window.WritePixels(g.pixels)
	screen.DrawImage(g.window, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return frameWidth, frameHeight
}

func main() {
	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(frameWidth*2, frameHeight*2)
	ebiten.SetWindowTitle("rasterkit demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
