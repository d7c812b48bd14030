// Package pool implements the fixed worker pool the rendering context
// drives a draw call through: per-thread bin arrays that absorb
// transformed primitives during the vertex stage, and per-thread
// fragment queues that batch pixel candidates for the fragment shader.
//
// Workers are joined with sync.WaitGroup and share counters as
// atomic.Int32 rather than mutex-guarded ints: a flush is a WaitGroup
// join, not a busy spin, the idiomatic Go shape of a "producers become
// consumers, then rejoin" handshake.
package pool

import "github.com/tanager-gfx/rasterkit/linear"

// MaxVaryings is the largest varying count a shader program may
// declare, and the fixed width every bin and queue entry is sized for.
const MaxVaryings = 4

// PrimKind tags what a Bin holds.
type PrimKind int

const (
	PrimPoint PrimKind = iota
	PrimLine
	PrimTriangle
)

// Vertex is one transformed vertex's screen-space position (with 1/w
// in .W after PerspectiveDivide) plus its shaded varyings, the
// "5 vectors stored contiguously" record a PTV cache entry and a bin
// slot both hold.
type Vertex struct {
	Pos         linear.Vec4
	Varyings    [MaxVaryings]linear.Vec4
	NumVaryings int
}

// Bin is a fixed-size record produced by the vertex stage and consumed
// by a rasterizer: the screen positions and varyings for one surviving
// primitive (or clip-triangulated sub-primitive), plus the
// precomputed barycentric partials a triangle rasterizer needs.
type Bin struct {
	PrimIndex uint32
	Kind      PrimKind
	NumVerts  int
	Verts     [3]Vertex

	// dBdx / dBdy are the per-barycentric-coordinate screen-space
	// partial derivatives, and invArea is the reciprocal of the 2D
	// cross product of the triangle's screen-space edge vectors.
	// Populated only for PrimTriangle bins.
	DBdx, DBdy [3]float32
	InvArea    float32
}

// Area2D computes the doubled signed area of the (x,y) screen-space
// triangle formed by the bin's three vertices, used for the barycentric
// partials filled in at bin-push time. (Backface culling happens
// earlier, on the homogeneous face determinant in the vertex stage.)
func Area2D(a, b, c linear.Vec4) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// FillTriangleBin populates a triangle bin's barycentric partials from
// its three already-viewport-mapped vertex positions.
func (b *Bin) FillTriangleBin(primIndex uint32, v0, v1, v2 Vertex) {
	b.PrimIndex = primIndex
	b.Kind = PrimTriangle
	b.NumVerts = 3
	b.Verts[0], b.Verts[1], b.Verts[2] = v0, v1, v2

	area := Area2D(v0.Pos, v1.Pos, v2.Pos)
	if area == 0 {
		b.InvArea = 0
		return
	}
	b.InvArea = 1 / area

	// Barycentric coordinate i's gradient w.r.t. screen x/y is the
	// edge vector opposite vertex i, rotated 90 degrees and scaled by
	// invArea; this is the same 3x3-determinant-of-(x,y,w)-columns
	// decomposition the bin-push step derives its partials from.
	y1, y2, y0 := v1.Pos[1], v2.Pos[1], v0.Pos[1]
	x1, x2, x0 := v1.Pos[0], v2.Pos[0], v0.Pos[0]
	b.DBdx[0] = (y1 - y2) * b.InvArea
	b.DBdx[1] = (y2 - y0) * b.InvArea
	b.DBdx[2] = (y0 - y1) * b.InvArea
	b.DBdy[0] = (x2 - x1) * b.InvArea
	b.DBdy[1] = (x0 - x2) * b.InvArea
	b.DBdy[2] = (x1 - x0) * b.InvArea
}

// FillLineBin populates a two-vertex bin; lines carry no barycentric
// partials since line interpolation is endpoint-only.
func (b *Bin) FillLineBin(primIndex uint32, v0, v1 Vertex) {
	b.PrimIndex = primIndex
	b.Kind = PrimLine
	b.NumVerts = 2
	b.Verts[0], b.Verts[1] = v0, v1
}

// FillPointBin populates a single-vertex bin.
func (b *Bin) FillPointBin(primIndex uint32, v0 Vertex) {
	b.PrimIndex = primIndex
	b.Kind = PrimPoint
	b.NumVerts = 1
	b.Verts[0] = v0
}

// AABB returns the screen-space axis-aligned bounding box of the bin's
// vertices, used by rasterizers to reject bins that don't intersect
// their owned strip.
func (b *Bin) AABB() (minX, minY, maxX, maxY float32) {
	minX, minY = b.Verts[0].Pos[0], b.Verts[0].Pos[1]
	maxX, maxY = minX, minY
	for i := 1; i < b.NumVerts; i++ {
		p := b.Verts[i].Pos
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	return
}
