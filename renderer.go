// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"
	"image"
	"log/slog"
	"slices"

	"github.com/gogpu/ggui/atlas"
	"github.com/gogpu/ggui/glyph"
)

// Renderer turns primitives into draws on a render target.
//
// A Renderer owns its atlas pages, glyph sheets, primitives and backend
// resources. Create one with New and release it with Close.
type Renderer struct {
	opts    options
	logger  *slog.Logger
	atlas   *atlas.Atlas
	fonts   *glyph.Cache
	reg     registry
	invalid Dataset
	backend backend
	gc      GraphicsContext

	defaultViewport *Viewport
	viewports       []*Viewport

	windowSize     image.Point
	lastWindowSize image.Point
	forceRedraw    bool

	pseudo Texture
	closed bool
}

// New creates a renderer.
//
// The backend is chosen once here: WithBackend forces one, otherwise a
// device provider exposing a HAL device selects the buffer backend and
// everything else the array backend.
func New(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.applyDeviceLimits()
	if err := o.validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		opts:    o,
		logger:  Logger(),
		invalid: DatasetAll,
	}

	a, err := atlas.New(atlas.Config{
		MaxTextureSize: o.maxTextureSize,
		Padding:        1,
		Logger:         r.logger,
		OnInvalidate:   func() { r.Invalidate(DatasetTexture) },
	})
	if err != nil {
		return nil, fmt.Errorf("ggui: %w", err)
	}
	r.atlas = a
	r.fonts = glyph.NewCache(a, r.logger)

	b, err := selectBackend(o.backend, o.provider, r.logger)
	if err != nil {
		return nil, err
	}
	r.backend = b

	r.defaultViewport = r.CreateViewport()

	// Untextured geometry samples the unit square at the top of page 0.
	white := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range white.Pix {
		white.Pix[i] = 0xff
	}
	r.pseudo = r.LoadTexture(white)

	r.logger.Info("ggui: renderer created",
		"backend", b.kind().String(), "max_texture_size", o.maxTextureSize)
	return r, nil
}

// Close releases backend resources and forgets all primitives. The
// renderer must not be used afterwards. Close is idempotent.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.backend.close()
	r.reg = registry{}
	r.viewports = nil
	r.closed = true
	r.logger.Info("ggui: renderer closed")
	return nil
}

// Backend returns the backend chosen at construction.
func (r *Renderer) Backend() BackendKind {
	return r.backend.kind()
}

// Atlas returns the texture atlas. It must be treated as read-only.
func (r *Renderer) Atlas() *atlas.Atlas {
	return r.atlas
}

// Context returns the graphics context state tracked by the renderer.
func (r *Renderer) Context() *GraphicsContext {
	return &r.gc
}

// PseudoTexture returns the white texture that untextured geometry samples.
func (r *Renderer) PseudoTexture() Texture {
	return r.pseudo
}

// LoadTexture stores img in the atlas. Images larger than the maximum
// texture size yield the empty placeholder texture.
func (r *Renderer) LoadTexture(img *image.RGBA) Texture {
	return textureFromHandle(r.atlas.Load(img))
}

// LoadTextureFrom converts img to RGBA and stores it. See LoadTexture.
func (r *Renderer) LoadTextureFrom(img image.Image) Texture {
	return textureFromHandle(r.atlas.LoadImage(img))
}

// UnloadImage releases the atlas region at offset. Unknown offsets are
// ignored.
func (r *Renderer) UnloadImage(offset image.Point) {
	r.atlas.Unload(offset)
}

// UpdateImage overwrites the pixels of the region at offset. It is a
// no-op if the region is unknown or img has a different size.
func (r *Renderer) UpdateImage(offset image.Point, img *image.RGBA) bool {
	return r.atlas.Update(offset, img)
}

// LoadFont makes sure the glyph sheet of face at size is in the atlas and
// returns its offset.
func (r *Renderer) LoadFont(face glyph.Face, size int) Vec2 {
	p := r.fonts.Load(face, size)
	return V2(float32(p.X), float32(p.Y))
}

// AddPrimitive registers p for drawing. Adding a registered primitive
// again is ignored.
func (r *Renderer) AddPrimitive(p *Primitive) {
	if !r.reg.add(p) {
		r.logger.Debug("ggui: primitive already registered")
		return
	}
	r.Invalidate(DatasetAll)
}

// RemovePrimitive unregisters p. It reports false if p was not registered.
func (r *Renderer) RemovePrimitive(p *Primitive) bool {
	ok := r.reg.remove(p)
	r.Invalidate(DatasetAll)
	return ok
}

// UpdatePrimitive runs fn on a registered primitive, keeping the vertex
// and index totals exact. Unregistered primitives are passed to fn as is.
func (r *Renderer) UpdatePrimitive(p *Primitive, fn func(*Primitive)) {
	if r.reg.indexOf(p) < 0 {
		fn(p)
		return
	}
	r.reg.uncount(p)
	fn(p)
	r.reg.vertexCount += len(p.vertices)
	r.reg.indexCount += len(p.indices)
	p.synced = false
	r.Invalidate(DatasetVertex | DatasetIndex)
}

// SortPrimitives orders primitives by layer, then level, keeping the
// insertion order of equal keys. It reports whether the order changed.
func (r *Renderer) SortPrimitives() bool {
	return r.reg.sort()
}

// Primitives returns the registered primitives in draw order. The slice
// must not be modified.
func (r *Renderer) Primitives() []*Primitive {
	return r.reg.prims
}

// VertexCount returns the number of vertices over all registered
// primitives.
func (r *Renderer) VertexCount() int { return r.reg.vertexCount }

// IndexCount returns the number of indices over all registered primitives.
func (r *Renderer) IndexCount() int { return r.reg.indexCount }

// Invalidate marks datasets for rebuilding before the next frame.
func (r *Renderer) Invalidate(d Dataset) {
	if r.invalid&d != d {
		r.logger.Debug("ggui: invalidate", "datasets", d.String())
	}
	r.invalid |= d
}

// Invalid returns the datasets waiting to be rebuilt.
func (r *Renderer) Invalid() Dataset {
	return r.invalid
}

// Redraw forces the next Display to rebuild everything.
func (r *Renderer) Redraw() {
	r.forceRedraw = true
}

// WindowSize returns the target size seen by the last Display.
func (r *Renderer) WindowSize() image.Point {
	return r.lastWindowSize
}

// DefaultViewport returns the viewport used by primitives without one. It
// covers the whole target.
func (r *Renderer) DefaultViewport() *Viewport {
	return r.defaultViewport
}

// CreateViewport creates a viewport tracked by the renderer. Changes to
// it are picked up by the next Display.
func (r *Renderer) CreateViewport() *Viewport {
	v := &Viewport{}
	r.viewports = append(r.viewports, v)
	return v
}

// DestroyViewport stops tracking v. Registered primitives drawn through v
// fall back to the default viewport. It reports false if v was not created
// by CreateViewport or was already destroyed.
func (r *Renderer) DestroyViewport(v *Viewport) bool {
	i := slices.Index(r.viewports, v)
	if i < 0 {
		return false
	}
	r.viewports = slices.Delete(r.viewports, i, i+1)
	for _, p := range r.reg.prims {
		if p.viewport == v {
			p.SetViewport(nil)
		}
	}
	r.Invalidate(DatasetVertex | DatasetIndex)
	return true
}

func (r *Renderer) invalidateWindow() {
	if r.opts.onWindowInvalidated != nil {
		r.opts.onWindowInvalidated()
	}
}

func (r *Renderer) lineHeight(face glyph.Face, size int) float32 {
	if r.opts.lineHeight != nil {
		return r.opts.lineHeight(face, size)
	}
	return face.LineHeight(size)
}
