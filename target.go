// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// Target is where Display draws.
type Target interface {
	// Size returns the current dimensions in pixels.
	Size() (width, height int)

	// StateCache returns the target's cached draw state, or nil if the
	// target has none. Display resets it after drawing.
	StateCache() *StateCache
}

// Activator is implemented by targets that must be made current before
// drawing.
type Activator interface {
	SetActive(active bool) error
}

// PixelTarget is a target backed by CPU memory. The array backend
// rasterizes into it directly.
type PixelTarget interface {
	Target
	Pixels() *image.RGBA
}

// TriangleDrawer is a host target that draws CPU batches itself, for
// example through a game engine's triangle API.
type TriangleDrawer interface {
	Target

	// UploadPage replaces the host texture for atlas page index.
	UploadPage(index int, page *image.RGBA) error

	// DrawTriangles draws one batch sampling atlas page b.Page.
	DrawTriangles(b *Batch) error
}

// BatchVertex is a vertex in target space, ready to draw.
type BatchVertex struct {
	// X, Y is the position in target pixels.
	X, Y float32
	// U, V is the texel position in the batch's atlas page.
	U, V float32
	// R, G, B, A is the premultiplied color in [0, 1].
	R, G, B, A float32
}

// Batch is a run of consecutive primitives sharing an atlas page and a
// clip rectangle.
type Batch struct {
	Page       int
	Clip       image.Rectangle
	Vertices   []BatchVertex
	Indices    []uint32
	Projection [16]float32
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := ggui.NewPixmapTarget(800, 600)
//	_ = renderer.Display(target)
//	img := target.Image()
type PixmapTarget struct {
	img   *image.RGBA
	cache StateCache
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Size returns the target dimensions in pixels.
func (t *PixmapTarget) Size() (width, height int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// StateCache returns the target's draw state cache.
func (t *PixmapTarget) StateCache() *StateCache {
	return &t.cache
}

// Pixels returns the underlying image.
func (t *PixmapTarget) Pixels() *image.RGBA {
	return t.img
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize replaces the image with one of the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ PixelTarget = (*PixmapTarget)(nil)
