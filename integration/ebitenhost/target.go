// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebitenhost

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/ggui"
)

// ErrNoImage is returned when drawing before a destination image is set.
var ErrNoImage = errors.New("ebitenhost: no destination image")

// ErrMissingPage is returned when a batch samples a page never uploaded.
var ErrMissingPage = errors.New("ebitenhost: atlas page not uploaded")

// maxChunkVertices bounds the vertices referenced by one DrawTriangles call.
const maxChunkVertices = 1 << 16

// Target adapts an *ebiten.Image to ggui.TriangleDrawer.
type Target struct {
	dst   *ebiten.Image
	pages []*ebiten.Image
	cache ggui.StateCache

	verts []ebiten.Vertex
	opts  ebiten.DrawTrianglesOptions
}

// New returns a target drawing into dst. dst may be nil and set later.
func New(dst *ebiten.Image) *Target {
	t := &Target{dst: dst}
	t.opts.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	return t
}

// SetImage replaces the destination image, typically the screen passed to
// ebiten.Game.Draw.
func (t *Target) SetImage(dst *ebiten.Image) {
	t.dst = dst
}

// SetFilter selects the sampling filter for atlas pages.
func (t *Target) SetFilter(f ebiten.Filter) {
	t.opts.Filter = f
}

// Size returns the destination size, or zero without an image.
func (t *Target) Size() (width, height int) {
	if t.dst == nil {
		return 0, 0
	}
	b := t.dst.Bounds()
	return b.Dx(), b.Dy()
}

// StateCache returns the target's draw state cache.
func (t *Target) StateCache() *ggui.StateCache {
	return &t.cache
}

// UploadPage replaces the host image for atlas page index. Pages of
// unchanged size are rewritten in place.
func (t *Target) UploadPage(index int, page *image.RGBA) error {
	for len(t.pages) <= index {
		t.pages = append(t.pages, nil)
	}
	old := t.pages[index]
	if old != nil && old.Bounds().Size() == page.Bounds().Size() {
		old.WritePixels(page.Pix)
		return nil
	}
	if old != nil {
		old.Deallocate()
	}
	t.pages[index] = ebiten.NewImageFromImage(page)
	return nil
}

// DrawTriangles draws b clipped to b.Clip.
func (t *Target) DrawTriangles(b *ggui.Batch) error {
	if t.dst == nil {
		return ErrNoImage
	}
	if b.Page < 0 || b.Page >= len(t.pages) || t.pages[b.Page] == nil {
		return ErrMissingPage
	}
	dst := t.dst
	if !b.Clip.Empty() {
		clip := b.Clip.Intersect(dst.Bounds())
		if clip.Empty() {
			return nil
		}
		dst = dst.SubImage(clip).(*ebiten.Image)
	}

	t.verts = convertVertices(t.verts[:0], b.Vertices)
	src := t.pages[b.Page]
	for _, c := range splitIndices(b.Indices, maxChunkVertices) {
		vs := make([]ebiten.Vertex, len(c.vertices))
		for i, v := range c.vertices {
			vs[i] = t.verts[v]
		}
		dst.DrawTriangles(vs, c.indices, src, &t.opts)
	}
	return nil
}

// Dispose releases the uploaded pages.
func (t *Target) Dispose() {
	for _, p := range t.pages {
		if p != nil {
			p.Deallocate()
		}
	}
	t.pages = nil
}

func convertVertices(dst []ebiten.Vertex, src []ggui.BatchVertex) []ebiten.Vertex {
	for _, v := range src {
		dst = append(dst, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   v.U,
			SrcY:   v.V,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		})
	}
	return dst
}

// chunk is a self-contained slice of a batch addressable with uint16
// indices. vertices maps local index to batch vertex index.
type chunk struct {
	vertices []uint32
	indices  []uint16
}

// splitIndices cuts a triangle list into chunks that reference at most
// limit distinct vertices. Triangles are never split across chunks.
func splitIndices(indices []uint32, limit int) []chunk {
	var (
		out   []chunk
		cur   chunk
		local = make(map[uint32]uint16)
	)
	flush := func() {
		if len(cur.indices) > 0 {
			out = append(out, cur)
		}
		cur = chunk{}
		clear(local)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		tri := indices[i : i+3]
		fresh := 0
		for _, v := range tri {
			if _, ok := local[v]; !ok {
				fresh++
			}
		}
		if len(cur.vertices)+fresh > limit || len(cur.indices)+3 > ebiten.MaxIndicesCount {
			flush()
		}
		for _, v := range tri {
			li, ok := local[v]
			if !ok {
				li = uint16(len(cur.vertices))
				local[v] = li
				cur.vertices = append(cur.vertices, v)
			}
			cur.indices = append(cur.indices, li)
		}
	}
	flush()
	return out
}

var _ ggui.TriangleDrawer = (*Target)(nil)
