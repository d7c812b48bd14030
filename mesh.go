package rasterkit

// PrimitiveMode enumerates the ways a Mesh's element range can be
// interpreted.
type PrimitiveMode int

const (
	Points PrimitiveMode = iota
	IndexedPoints
	Lines
	IndexedLines
	Triangles
	IndexedTriangles
	IndexedTriWire
)

func (m PrimitiveMode) indexed() bool {
	switch m {
	case IndexedPoints, IndexedLines, IndexedTriangles, IndexedTriWire:
		return true
	default:
		return false
	}
}

func (m PrimitiveMode) vertsPerPrim() int {
	switch m {
	case Points, IndexedPoints:
		return 1
	case Lines, IndexedLines:
		return 2
	default:
		return 3
	}
}

// Mesh names a drawable slice of a vertex array: which VAO to pull
// attributes from, how to group its element range into primitives, and
// which contiguous element range to draw.
type Mesh struct {
	VAO          Handle
	Mode         PrimitiveMode
	ElementBegin int
	ElementEnd   int
	MaterialID   int
}

// Count returns the number of elements the mesh's range spans.
func (m Mesh) Count() int { return m.ElementEnd - m.ElementBegin }
