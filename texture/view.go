package texture

import "fmt"

// View is a rectangular sub-image descriptor into a Texture: it
// records an offset and extent into an existing texture without
// copying or owning any storage. Framebuffer attachments and the clear
// processor address textures through views; Blit takes texture handles
// and rectangles rather than views.
type View struct {
	Tex     *Texture
	X, Y, Z int
	W, H, D int
}

// NewView validates and constructs a sub-rectangle view of t. A 2D
// texture's view must have D=1 and Z=0.
func NewView(t *Texture, x, y, z, w, h, d int) (View, error) {
	if w <= 0 || h <= 0 || d <= 0 {
		return View{}, fmt.Errorf("texture: view has non-positive extent %dx%dx%d", w, h, d)
	}
	if x < 0 || y < 0 || z < 0 || x+w > t.w || y+h > t.h || z+d > t.d {
		return View{}, fmt.Errorf("texture: view (%d,%d,%d)+(%d,%d,%d) out of bounds for %dx%dx%d texture",
			x, y, z, w, h, d, t.w, t.h, t.d)
	}
	return View{Tex: t, X: x, Y: y, Z: z, W: w, H: h, D: d}, nil
}

// Full returns a view spanning the entire texture.
func Full(t *Texture) View {
	return View{Tex: t, W: t.w, H: t.h, D: t.d}
}

// At translates a coordinate local to the view into the coordinate
// space of the backing texture, for use with Texture.Texel / GetColor4
// / SetColor4.
func (v View) At(x, y, z int) (int, int, int) {
	return v.X + x, v.Y + y, v.Z + z
}
