// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

// Unit square texture coordinates. They fall into the white region at the
// top of atlas page 0.
var (
	texTopLeft     = V2(0, 0)
	texBottomLeft  = V2(0, 1)
	texTopRight    = V2(1, 0)
	texBottomRight = V2(1, 1)
)

// addQuad appends the two triangles TL-BL-TR and TR-BL-BR.
func addQuad(p *Primitive, tl, bl, tr, br Vertex) {
	p.AddVertex(tl)
	p.AddVertex(bl)
	p.AddVertex(tr)
	p.AddVertex(tr)
	p.AddVertex(bl)
	p.AddVertex(br)
}

// CreateQuad registers a solid quad. Corners are snapped to whole pixels.
func (r *Renderer) CreateQuad(topLeft, bottomLeft, bottomRight, topRight Vec2, c RGBA) *Primitive {
	p := NewPrimitive(4)
	addQuad(p,
		Vertex{Position: topLeft.Snap(), Color: c, TexCoord: texTopLeft},
		Vertex{Position: bottomLeft.Snap(), Color: c, TexCoord: texBottomLeft},
		Vertex{Position: topRight.Snap(), Color: c, TexCoord: texTopRight},
		Vertex{Position: bottomRight.Snap(), Color: c, TexCoord: texBottomRight},
	)
	r.AddPrimitive(p)
	return p
}

// CreateRect registers an axis-aligned solid rectangle.
func (r *Renderer) CreateRect(topLeft, bottomRight Vec2, c RGBA) *Primitive {
	return r.CreateQuad(
		topLeft,
		V2(topLeft.X, bottomRight.Y),
		bottomRight,
		V2(bottomRight.X, topLeft.Y),
		c,
	)
}

// CreateRectangle registers rect as a solid rectangle.
func (r *Renderer) CreateRectangle(rect Rect, c RGBA) *Primitive {
	return r.CreateRect(rect.Position(), rect.Max(), c)
}

// CreateTriangle registers a solid triangle. Points are used as given.
func (r *Renderer) CreateTriangle(p0, p1, p2 Vec2, c RGBA) *Primitive {
	p := NewPrimitive(3)
	p.AddVertex(Vertex{Position: p0, Color: c, TexCoord: texTopLeft})
	p.AddVertex(Vertex{Position: p1, Color: c, TexCoord: texBottomLeft})
	p.AddVertex(Vertex{Position: p2, Color: c, TexCoord: texTopRight})
	r.AddPrimitive(p)
	return p
}

// CreateLine registers a stroke from begin to end. The caps are square and
// extend half the thickness past both endpoints. A zero-length line is a
// thickness-sized square centered on begin.
func (r *Renderer) CreateLine(begin, end Vec2, c RGBA, thickness float32) *Primitive {
	dir := end.Sub(begin).Normalize()
	if dir == (Vec2{}) {
		dir = V2(1, 0)
	}
	normal := dir.Perp()
	half := thickness * 0.5
	n, u := normal.Mul(half), dir.Mul(half)

	corner0 := begin.Add(n).Sub(u)
	corner1 := begin.Sub(n).Sub(u)
	corner2 := end.Sub(n).Add(u)
	corner3 := end.Add(n).Add(u)

	return r.CreateQuad(corner3, corner2, corner1, corner0, c)
}

// CreatePane registers a filled rectangle with a bevelled border.
//
// The top and left border edges use the light shade of border and the
// right and bottom edges the dark shade, as derived by the renderer's
// ColorShifter from shift. The fill is inset by the border width. A pane
// without a border is a plain rectangle.
//
// The result is a single primitive; the parts it is built from are not
// left registered.
func (r *Renderer) CreatePane(position, size Vec2, borderWidth float32, fill, border RGBA, shift int) *Primitive {
	if borderWidth <= 0 {
		return r.CreateRect(position, position.Add(size), fill)
	}

	light, dark := r.opts.shifter(border, shift)

	left, top := position.X, position.Y
	right, bottom := left+size.X, top+size.Y
	half := borderWidth / 2

	parts := []*Primitive{
		r.CreateQuad(
			V2(left+borderWidth, top+borderWidth),
			V2(left+borderWidth, bottom-borderWidth),
			V2(right-borderWidth, bottom-borderWidth),
			V2(right-borderWidth, top+borderWidth),
			fill,
		),
		r.CreateLine(V2(left+half, top+half), V2(right-half, top+half), light, borderWidth),
		r.CreateLine(V2(right-half, top+half), V2(right-half, bottom-half), dark, borderWidth),
		r.CreateLine(V2(right-half, bottom-half), V2(left+half, bottom-half), dark, borderWidth),
		r.CreateLine(V2(left+half, bottom-half), V2(left+half, top+half), light, borderWidth),
	}

	p := NewPrimitive(20)
	for _, part := range parts {
		p.Add(part)
	}
	for i := len(parts) - 1; i >= 0; i-- {
		r.reg.remove(parts[i])
	}

	r.AddPrimitive(p)
	return p
}

// CreateSprite registers a textured rectangle showing tex, or the part of
// it selected by subRect. A zero subRect selects the whole texture.
// rotationTurns rotates the image in quarter turns without changing the
// rectangle. The placeholder texture yields a primitive without geometry.
func (r *Renderer) CreateSprite(rect Rect, tex Texture, subRect Rect, rotationTurns int) *Primitive {
	p := NewPrimitive(4)
	if tex.IsEmpty() {
		r.AddPrimitive(p)
		return p
	}

	left, top := snap(rect.Left), snap(rect.Top)
	width, height := snap(rect.Width), snap(rect.Height)

	offset := V2(float32(tex.Offset.X), float32(tex.Offset.Y))
	var origin, extent Vec2
	if subRect.IsZero() {
		extent = V2(float32(tex.Size.X), float32(tex.Size.Y))
	} else {
		origin = V2(snap(subRect.Left), snap(subRect.Top))
		extent = V2(snap(subRect.Width), snap(subRect.Height))
	}
	origin = origin.Add(offset)

	// Clockwise from the top-left corner.
	coords := [4]Vec2{
		origin,
		origin.Add(V2(extent.X, 0)),
		origin.Add(extent),
		origin.Add(V2(0, extent.Y)),
	}

	turns := ((rotationTurns % 4) + 4) % 4
	var rotated [4]Vec2
	for i := range coords {
		rotated[i] = coords[(i+turns)%4]
	}

	white := White
	addQuad(p,
		Vertex{Position: V2(left, top), Color: white, TexCoord: rotated[0]},
		Vertex{Position: V2(left, top+height), Color: white, TexCoord: rotated[3]},
		Vertex{Position: V2(left+width, top), Color: white, TexCoord: rotated[1]},
		Vertex{Position: V2(left+width, top+height), Color: white, TexCoord: rotated[2]},
	)
	p.AddTexture(tex)

	r.AddPrimitive(p)
	return p
}

// CreateCanvas registers a primitive without geometry whose fn is called
// at its place in draw order, so custom drawing interleaves correctly with
// other primitives.
func (r *Renderer) CreateCanvas(fn CanvasFunc) *Primitive {
	p := NewPrimitive(0)
	p.canvas = fn
	r.AddPrimitive(p)
	return p
}
