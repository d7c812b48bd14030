package buffer

import "unsafe"

const pageSize = 4096

// alignedBytes allocates at least size bytes with a page-aligned start
// address, the same raw-pointer-arithmetic idiom texture.alignedBuffer
// uses. It's duplicated here rather than shared because the two
// packages must not import each other (texture and buffer sit at the
// same layer, both below the root package) and the helper is four
// lines of unsafe arithmetic, not worth a third micro-package.
func alignedBytes(size int) []byte {
	if size <= 0 {
		size = 1
	}
	raw := make([]byte, size+pageSize-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	pad := (pageSize - int(addr%pageSize)) % pageSize
	return raw[pad : pad+size]
}
