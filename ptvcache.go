package rasterkit

import "github.com/tanager-gfx/rasterkit/linear"

// ptvCacheSize is S, the PTV cache's fixed power-of-two slot count.
const ptvCacheSize = 8

// transformedVertex is a PTV cache entry: a clip-space position plus
// up to four varying 4-vectors, stored contiguously so a cache hit is
// one wide copy.
type transformedVertex struct {
	Pos         linear.Vec4
	Varyings    [4]linear.Vec4
	NumVaryings int
}

// ptvCache is the per-worker, per-draw direct-mapped post-transform-
// vertex cache. It is never shared across threads and carries no
// synchronization; each vertex processor owns exactly one.
type ptvCache struct {
	keys    [ptvCacheSize]uint32
	valid   [ptvCacheSize]bool
	entries [ptvCacheSize]transformedVertex
}

// reset marks every slot as a miss, preparing the cache for a new
// draw call.
func (c *ptvCache) reset() {
	for i := range c.valid {
		c.valid[i] = false
	}
}

// queryOrUpdate returns the cached transform for vertex id, invoking
// compute to produce it on a miss or a collision (a different id
// occupying id's slot evicts without chaining, matching the "direct-
// mapped, no rehash" contract).
func (c *ptvCache) queryOrUpdate(id uint32, compute func(id uint32) transformedVertex) transformedVertex {
	i := id % ptvCacheSize
	if c.valid[i] && c.keys[i] == id {
		return c.entries[i]
	}
	v := compute(id)
	c.keys[i] = id
	c.valid[i] = true
	c.entries[i] = v
	return v
}
