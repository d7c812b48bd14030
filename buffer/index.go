package buffer

import (
	"encoding/binary"
	"fmt"
)

// IndexType enumerates the element width an IndexBuffer stores.
type IndexType int

const (
	IndexU8 IndexType = iota
	IndexU16
	IndexU32
)

// Size returns the element's width in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexU8:
		return 1
	case IndexU16:
		return 2
	case IndexU32:
		return 4
	default:
		return 0
	}
}

func (t IndexType) String() string {
	switch t {
	case IndexU8:
		return "u8"
	case IndexU16:
		return "u16"
	case IndexU32:
		return "u32"
	default:
		return "invalid"
	}
}

// Index is a typed, owned buffer of primitive indices. Its storage is
// padded by one extra 16-byte tail so the vertex processor's 4-wide
// batched index loads never read past the end of the backing array,
// mirroring the same "four lanes at a time" convention the texture
// package's swizzled addressing uses.
type Index struct {
	typ   IndexType
	count int
	bytes []byte
}

// NewIndex allocates an index buffer holding count elements of the
// given type.
func NewIndex(typ IndexType, count int) (*Index, error) {
	if count <= 0 {
		return nil, fmt.Errorf("buffer: invalid index count %d", count)
	}
	sz := typ.Size()
	if sz == 0 {
		return nil, fmt.Errorf("buffer: invalid index type %v", typ)
	}
	return &Index{
		typ:   typ,
		count: count,
		bytes: alignedBytes(count*sz + 16),
	}, nil
}

func (b *Index) Type() IndexType { return b.typ }
func (b *Index) Count() int      { return b.count }
func (b *Index) Bytes() []byte   { return b.bytes }
func (b *Index) Destroy()        { b.bytes = nil }

// Update overwrites the index buffer's element data starting at
// elementOffset. data must be a packed little-endian byte slice matching
// the buffer's element type.
func (b *Index) Update(elementOffset int, data []byte) error {
	sz := b.typ.Size()
	byteOffset := elementOffset * sz
	if elementOffset < 0 || len(data)%sz != 0 || byteOffset+len(data) > b.count*sz {
		return fmt.Errorf("buffer: index update out of range (offset %d, %d bytes, element size %d, count %d)",
			elementOffset, len(data), sz, b.count)
	}
	copy(b.bytes[byteOffset:], data)
	return nil
}

// At returns the i-th index value, widened to uint32 regardless of the
// buffer's underlying element width.
func (b *Index) At(i int) uint32 {
	off := i * b.typ.Size()
	switch b.typ {
	case IndexU8:
		return uint32(b.bytes[off])
	case IndexU16:
		return uint32(binary.LittleEndian.Uint16(b.bytes[off:]))
	default:
		return binary.LittleEndian.Uint32(b.bytes[off:])
	}
}
