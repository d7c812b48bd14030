// Package buffer implements the opaque-bytes storage objects the
// vertex pipeline binds together: vertex buffers, typed index buffers,
// uniform buffers, and the vertex array that ties a VBO/IBO pair to an
// attribute layout.
package buffer

import "fmt"

// Vertex is an owned, page-aligned, opaque byte region holding
// interleaved per-vertex attribute data. The pipeline never interprets
// its contents directly; a VertexArray's attribute descriptors do that.
type Vertex struct {
	bytes []byte
}

// NewVertex allocates a vertex buffer of the given size in bytes.
func NewVertex(size int) (*Vertex, error) {
	if size <= 0 {
		return nil, fmt.Errorf("buffer: invalid vertex buffer size %d", size)
	}
	return &Vertex{bytes: alignedBytes(size)}, nil
}

// Bytes returns the buffer's storage.
func (v *Vertex) Bytes() []byte { return v.bytes }

// Len returns the buffer's size in bytes.
func (v *Vertex) Len() int { return len(v.bytes) }

// Update overwrites the buffer starting at byteOffset, mirroring the
// teacher's screen-buffer UpdateFrame-style "just copy a buffer inline"
// update path rather than introducing partial-write bookkeeping the
// rendering core never needs.
func (v *Vertex) Update(byteOffset int, data []byte) error {
	if byteOffset < 0 || byteOffset+len(data) > len(v.bytes) {
		return fmt.Errorf("buffer: update [%d:%d) out of range for %d-byte vertex buffer", byteOffset, byteOffset+len(data), len(v.bytes))
	}
	copy(v.bytes[byteOffset:], data)
	return nil
}

// Destroy releases the buffer's storage.
func (v *Vertex) Destroy() { v.bytes = nil }
