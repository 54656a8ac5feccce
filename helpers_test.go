// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"testing"
)

// newTestRenderer creates an array-backend renderer with a small atlas.
func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	base := []Option{WithBackend(BackendArray), WithMaxTextureSize(256)}
	r, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func solidImage(w, h int, c RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p := c.Premultiply()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = to8(p.R)
		img.Pix[i+1] = to8(p.G)
		img.Pix[i+2] = to8(p.B)
		img.Pix[i+3] = to8(p.A)
	}
	return img
}

// fakeDrawer is a TriangleDrawer that records what it is asked to do.
type fakeDrawer struct {
	w, h    int
	cache   StateCache
	active  bool
	uploads int
	pages   map[int]*image.RGBA
	batches []Batch
	events  []string
}

func newFakeDrawer(w, h int) *fakeDrawer {
	return &fakeDrawer{w: w, h: h, pages: make(map[int]*image.RGBA)}
}

func (d *fakeDrawer) Size() (int, int)        { return d.w, d.h }
func (d *fakeDrawer) StateCache() *StateCache { return &d.cache }

func (d *fakeDrawer) SetActive(active bool) error {
	d.active = active
	return nil
}

func (d *fakeDrawer) UploadPage(index int, page *image.RGBA) error {
	d.uploads++
	d.pages[index] = page
	return nil
}

func (d *fakeDrawer) DrawTriangles(b *Batch) error {
	d.batches = append(d.batches, *b)
	d.events = append(d.events, "batch")
	return nil
}

// sizeOnly is a target no backend can draw to.
type sizeOnly struct{}

func (sizeOnly) Size() (int, int)        { return 10, 10 }
func (sizeOnly) StateCache() *StateCache { return nil }

var _ TriangleDrawer = (*fakeDrawer)(nil)
