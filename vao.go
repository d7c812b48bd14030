package rasterkit

import (
	"encoding/binary"
	"math"

	"github.com/tanager-gfx/rasterkit/buffer"
	"github.com/tanager-gfx/rasterkit/color"
)

// vaoState is the context's resolved view of a vertex array: the
// actual vertex/index buffer storage the handles in buffer.Array name,
// kept together so the vertex processor can fetch attributes and
// indices without going back through the handle tables on every
// vertex.
type vaoState struct {
	arr *buffer.Array
	vbo *buffer.Vertex
	ibo *buffer.Index // nil for non-indexed meshes
}

// NumAttributes returns how many attributes the vertex array declares.
func (v *vaoState) NumAttributes() int { return len(v.arr.Attrs) }

// Attribute returns the i-th attribute's layout, for a vertex shader
// callback that knows attribute slots by convention (0 = position,
// 1 = color, and so on).
func (v *vaoState) Attribute(i int) buffer.Attribute { return v.arr.Attrs[i] }

// FetchAttribute reads the vertex array's attribute a for vertex
// index vertID, widened to up to 4 float32 components. Missing
// trailing components are zero except a conventional 1.0 the caller
// may want to supply for a position's w; this helper just returns
// exactly a.Components values.
func (v *vaoState) FetchAttribute(a buffer.Attribute, vertID uint32) [4]float32 {
	var out [4]float32
	base := a.Offset + int(vertID)*a.Stride
	data := v.vbo.Bytes()
	sz := a.Type.Size()
	for c := 0; c < a.Components; c++ {
		off := base + c*sz
		if off < 0 || off+sz > len(data) {
			continue
		}
		out[c] = decodeComponent(a.Type, data[off:off+sz])
	}
	return out
}

func decodeComponent(t buffer.AttribType, b []byte) float32 {
	switch t {
	case buffer.AttribU8:
		return color.Cast[float32](b[0])
	case buffer.AttribU16:
		return color.Cast[float32](binary.LittleEndian.Uint16(b))
	case buffer.AttribU32:
		return color.Cast[float32](binary.LittleEndian.Uint32(b))
	case buffer.AttribF16:
		return color.Half(binary.LittleEndian.Uint16(b)).Float32()
	case buffer.AttribF32:
		bits := binary.LittleEndian.Uint32(b)
		return math.Float32frombits(bits)
	case buffer.AttribF64:
		bits := binary.LittleEndian.Uint64(b)
		return float32(math.Float64frombits(bits))
	default:
		return 0
	}
}

// Index returns the i-th index in the mesh's element range: fetched
// from the IBO if indexed, or i itself (sequential ids) otherwise.
func (v *vaoState) Index(i int) uint32 {
	if v.ibo == nil {
		return uint32(i)
	}
	return v.ibo.At(i)
}

// ElementCapacity returns the largest element count a draw call may
// address through this vertex array: the bound IBO's element count for
// an indexed array, or the vertex count its smallest-capacity attribute
// supports for a non-indexed one. prepareDraw rejects a mesh whose
// ElementEnd overflows this before dispatching any work, so a
// too-large range never reaches buffer.Index.At (which does not bounds
// check) or silently reads zeroed-out trailing attributes.
func (v *vaoState) ElementCapacity() int {
	if v.ibo != nil {
		return v.ibo.Count()
	}
	capacity := -1
	n := len(v.vbo.Bytes())
	for _, a := range v.arr.Attrs {
		sz := a.Type.Size()
		avail := n - a.Offset - sz
		if avail < 0 {
			return 0
		}
		c := avail/a.Stride + 1
		if capacity < 0 || c < capacity {
			capacity = c
		}
	}
	if capacity < 0 {
		return 0
	}
	return capacity
}
