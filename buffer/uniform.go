package buffer

import "fmt"

// Uniform is an aligned byte region owned by the context and borrowed
// by shader callbacks for the duration of a single draw call. Unlike
// Vertex, it is never indexed per-vertex; a shader callback receives
// the whole region and interprets it however its author intends
// (typically by reinterpreting a byte offset as a struct pointer).
type Uniform struct {
	bytes []byte
}

// NewUniform allocates a uniform buffer of the given size in bytes.
func NewUniform(size int) (*Uniform, error) {
	if size <= 0 {
		return nil, fmt.Errorf("buffer: invalid uniform buffer size %d", size)
	}
	return &Uniform{bytes: alignedBytes(size)}, nil
}

func (u *Uniform) Bytes() []byte { return u.bytes }
func (u *Uniform) Len() int      { return len(u.bytes) }
func (u *Uniform) Destroy()      { u.bytes = nil }

func (u *Uniform) Update(byteOffset int, data []byte) error {
	if byteOffset < 0 || byteOffset+len(data) > len(u.bytes) {
		return fmt.Errorf("buffer: uniform update [%d:%d) out of range for %d-byte buffer", byteOffset, byteOffset+len(data), len(u.bytes))
	}
	copy(u.bytes[byteOffset:], data)
	return nil
}
