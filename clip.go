package rasterkit

import "github.com/tanager-gfx/rasterkit/linear"

// clipVertex is one vertex of the polygon being clipped: its
// homogeneous clip-space position plus its varyings, linearly
// interpolated alongside position at every new intersection point.
type clipVertex struct {
	Pos      linear.Vec4
	Varyings [4]linear.Vec4
}

func lerpClipVertex(a, b clipVertex, t float32, numVaryings int) clipVertex {
	var out clipVertex
	out.Pos.Lerp(a.Pos, b.Pos, t)
	for i := 0; i < numVaryings; i++ {
		out.Varyings[i].Lerp(a.Varyings[i], b.Varyings[i], t)
	}
	return out
}

// clipPlane is one of the six homogeneous half-spaces a triangle is
// clipped against, n.v >= 0 in clip space.
type clipPlane int

const (
	clipPosX clipPlane = iota
	clipNegX
	clipPosY
	clipNegY
	clipPosZ
	clipNegZ
)

// distance returns n.v for the given plane, positive when v is inside
// the half-space.
func (p clipPlane) distance(v linear.Vec4) float32 {
	switch p {
	case clipPosX:
		return v[3] - v[0]
	case clipNegX:
		return v[3] + v[0]
	case clipPosY:
		return v[3] - v[1]
	case clipNegY:
		return v[3] + v[1]
	case clipPosZ:
		return v[3] - v[2]
	case clipNegZ:
		return v[3] + v[2]
	default:
		return 0
	}
}

// clipPolygon runs one Sutherland-Hodgman pass against a single plane,
// walking the polygon and emitting intersection points where the sign
// of n.v flips, plus inside vertices.
func clipPolygon(poly []clipVertex, plane clipPlane, numVaryings int) []clipVertex {
	if len(poly) == 0 {
		return poly
	}
	out := make([]clipVertex, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevDist := plane.distance(prev.Pos)
	for _, cur := range poly {
		curDist := plane.distance(cur.Pos)
		prevInside := prevDist >= 0
		curInside := curDist >= 0
		if prevInside != curInside {
			t := prevDist / (prevDist - curDist)
			out = append(out, lerpClipVertex(prev, cur, t, numVaryings))
		}
		if curInside {
			out = append(out, cur)
		}
		prev, prevDist = cur, curDist
	}
	return out
}

// clipTriangle clips a triangle against the x/y (and optionally z)
// homogeneous half-spaces, returning the resulting convex polygon (at
// most 9 vertices after six planes). An empty result means the
// triangle is fully outside.
func clipTriangle(v0, v1, v2 clipVertex, numVaryings int, zClip bool) []clipVertex {
	poly := []clipVertex{v0, v1, v2}
	planes := []clipPlane{clipPosX, clipNegX, clipPosY, clipNegY}
	if zClip {
		planes = append(planes, clipPosZ, clipNegZ)
	}
	for _, pl := range planes {
		poly = clipPolygon(poly, pl, numVaryings)
		if len(poly) == 0 {
			return poly
		}
	}
	return poly
}

// fanTriangulate splits a convex polygon into a fan of triangles
// (p0,p1,p2), (p0,p2,p3), ... anchored at vertex 0.
func fanTriangulate(poly []clipVertex) [][3]clipVertex {
	if len(poly) < 3 {
		return nil
	}
	tris := make([][3]clipVertex, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, [3]clipVertex{poly[0], poly[i], poly[i+1]})
	}
	return tris
}
