package linear

// ScissorMatrix builds the matrix described in spec §4.8: a single 4x4
// that folds the viewport/scissor rectangle mapping into the clip-space
// output of every vertex, so the clip stage and viewport stage both
// operate against the same post-scissor cube instead of two separate
// rectangle tests.
//
// viewport and scissor are both (x, y, w, h) in framebuffer pixels.
// The scissor rectangle is intersected with the viewport rectangle
// before the NDC-to-post-scissor scale/offset is derived, so a scissor
// rect wider than the viewport has no effect.
func ScissorMatrix(m *Mat4, viewportX, viewportY, viewportW, viewportH int,
	scissorX, scissorY, scissorW, scissorH int) {

	left, top := viewportX, viewportY
	right, bottom := viewportX+viewportW, viewportY+viewportH

	if scissorW > 0 && scissorH > 0 {
		sLeft, sTop := scissorX, scissorY
		sRight, sBottom := scissorX+scissorW, scissorY+scissorH
		if sLeft > left {
			left = sLeft
		}
		if sTop > top {
			top = sTop
		}
		if sRight < right {
			right = sRight
		}
		if sBottom < bottom {
			bottom = sBottom
		}
	}
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}

	// Map viewport-rect NDC [-1,1] onto the post-scissor sub-rectangle
	// of the full viewport's NDC cube: a pure scale+offset in x/y, z
	// passes through untouched (the depth range stays [-1,1] pre-divide).
	fullCX := float32(viewportX) + float32(viewportW)/2
	fullCY := float32(viewportY) + float32(viewportH)/2
	subCX := float32(left+right) / 2
	subCY := float32(top+bottom) / 2

	sx := float32(1)
	sy := float32(1)
	if viewportW > 0 {
		sx = float32(viewportW) / float32(right-left)
	}
	if viewportH > 0 {
		sy = float32(viewportH) / float32(bottom-top)
	}
	ox := (fullCX - subCX) / (float32(viewportW) / 2) * sx
	oy := (fullCY - subCY) / (float32(viewportH) / 2) * sy
	if viewportW == 0 {
		ox = 0
	}
	if viewportH == 0 {
		oy = 0
	}

	*m = Mat4{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, 1, 0},
		{ox, oy, 0, 1},
	}
}
