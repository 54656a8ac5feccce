// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

// Vertex is one corner of a primitive's geometry.
type Vertex struct {
	Position Vec2
	Color    RGBA

	// TexCoord is in atlas pixels. See the package documentation.
	TexCoord Vec2
}

// CanvasFunc draws custom content into target. It is called at the
// position of its canvas primitive in draw order, between the batches
// drawn before and after it.
type CanvasFunc func(target Target) error

// Primitive is a batch of indexed triangles drawn as one logical unit.
//
// Geometry must not be changed while the primitive is registered with a
// Renderer except through Renderer.UpdatePrimitive, which keeps the
// renderer's vertex and index totals exact.
type Primitive struct {
	vertices []Vertex
	indices  []uint32
	textures []Texture
	canvas   CanvasFunc
	viewport *Viewport
	position Vec2
	layer    int
	level    int
	visible  bool
	synced   bool
}

// NewPrimitive creates an empty, visible primitive with room for capacity
// vertices.
func NewPrimitive(capacity int) *Primitive {
	return &Primitive{
		vertices: make([]Vertex, 0, capacity),
		indices:  make([]uint32, 0, capacity+capacity/2),
		visible:  true,
	}
}

// AddVertex appends v to the triangle list. A vertex identical to one
// already present is referenced by index instead of being stored again.
func (p *Primitive) AddVertex(v Vertex) {
	for i := range p.vertices {
		if p.vertices[i] == v {
			p.indices = append(p.indices, uint32(i))
			p.synced = false
			return
		}
	}
	p.indices = append(p.indices, uint32(len(p.vertices)))
	p.vertices = append(p.vertices, v)
	p.synced = false
}

// AddTexture attaches t to the primitive.
func (p *Primitive) AddTexture(t Texture) {
	p.textures = append(p.textures, t)
	p.synced = false
}

// Add appends the geometry and textures of other. Indices of other are
// rebased onto the vertices already present.
func (p *Primitive) Add(other *Primitive) {
	base := uint32(len(p.vertices))
	p.vertices = append(p.vertices, other.vertices...)
	for _, i := range other.indices {
		p.indices = append(p.indices, base+i)
	}
	p.textures = append(p.textures, other.textures...)
	p.synced = false
}

// Clear removes all geometry and textures.
func (p *Primitive) Clear() {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	p.textures = p.textures[:0]
	p.synced = false
}

// Vertices returns the vertex list. The slice must not be modified.
func (p *Primitive) Vertices() []Vertex { return p.vertices }

// Indices returns the triangle index list. The slice must not be modified.
func (p *Primitive) Indices() []uint32 { return p.indices }

// Textures returns the attached textures.
func (p *Primitive) Textures() []Texture { return p.textures }

// Canvas returns the custom draw callback, or nil.
func (p *Primitive) Canvas() CanvasFunc { return p.canvas }

// Layer returns the primary sort key.
func (p *Primitive) Layer() int { return p.layer }

// SetLayer sets the primary sort key. Primitives on higher layers draw later.
func (p *Primitive) SetLayer(layer int) { p.layer = layer }

// Level returns the secondary sort key within a layer.
func (p *Primitive) Level() int { return p.level }

// SetLevel sets the secondary sort key within a layer.
func (p *Primitive) SetLevel(level int) { p.level = level }

// Position returns the translation applied to every vertex when drawing.
func (p *Primitive) Position() Vec2 { return p.position }

// SetPosition sets the translation applied to every vertex when drawing.
func (p *Primitive) SetPosition(pos Vec2) {
	if p.position != pos {
		p.position = pos
		p.synced = false
	}
}

// Visible reports whether the primitive is drawn.
func (p *Primitive) Visible() bool { return p.visible }

// SetVisible shows or hides the primitive.
func (p *Primitive) SetVisible(visible bool) {
	if p.visible != visible {
		p.visible = visible
		p.synced = false
	}
}

// Viewport returns the viewport the primitive is drawn through, or nil for
// the renderer's default viewport.
func (p *Primitive) Viewport() *Viewport { return p.viewport }

// SetViewport sets the viewport the primitive is drawn through.
func (p *Primitive) SetViewport(v *Viewport) {
	if p.viewport != v {
		p.viewport = v
		p.synced = false
	}
}

// sortKey orders primitives by layer, then level.
func (p *Primitive) sortKey() int64 {
	return int64(p.layer)*layerFactor + int64(p.level)
}
