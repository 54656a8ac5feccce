// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"

	"github.com/gogpu/ggui/internal/raster"
)

// arrayBackend keeps CPU vertex arrays and rebuilds them whenever vertex
// or index data is invalidated.
type arrayBackend struct {
	steps  []drawStep
	raster [][]raster.Vertex
	built  bool

	// pages is the number of atlas pages last uploaded to a
	// TriangleDrawer, or -1 if nothing was uploaded yet.
	pages int
}

func newArrayBackend() *arrayBackend {
	return &arrayBackend{pages: -1}
}

func (b *arrayBackend) kind() BackendKind { return BackendArray }

func (b *arrayBackend) draw(f *frame) error {
	if !b.built || f.invalid&(DatasetVertex|DatasetIndex) != 0 {
		b.rebuild(f)
	}
	for _, s := range b.steps {
		if s.batch != nil {
			s.batch.Projection = f.projection
		}
	}

	switch t := f.target.(type) {
	case TriangleDrawer:
		return b.drawHost(f, t)
	case PixelTarget:
		return b.drawPixels(f, t)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, f.target)
	}
}

func (b *arrayBackend) rebuild(f *frame) {
	b.steps = buildSteps(f)
	b.raster = make([][]raster.Vertex, len(b.steps))
	for i, s := range b.steps {
		if s.batch == nil {
			continue
		}
		verts := make([]raster.Vertex, len(s.batch.Vertices))
		for j, v := range s.batch.Vertices {
			verts[j] = raster.Vertex(v)
		}
		b.raster[i] = verts
	}
	b.built = true
}

func (b *arrayBackend) drawPixels(f *frame, t PixelTarget) error {
	dst := t.Pixels()
	if dst == nil {
		return fmt.Errorf("%w: nil pixel buffer", ErrUnsupportedTarget)
	}
	for i, s := range b.steps {
		if s.canvas != nil {
			if err := s.canvas(f.target); err != nil {
				return fmt.Errorf("ggui: canvas: %w", err)
			}
			continue
		}
		f.gc.BindTexture(uint64(s.batch.Page) + 1)
		raster.Fill(dst, s.batch.Clip, f.atlas.Page(s.batch.Page), b.raster[i], s.batch.Indices)
	}
	return nil
}

func (b *arrayBackend) drawHost(f *frame, t TriangleDrawer) error {
	if b.pages != f.atlas.PageCount() || f.invalid.Has(DatasetTexture) {
		for i := 0; i < f.atlas.PageCount(); i++ {
			if err := t.UploadPage(i, f.atlas.Page(i)); err != nil {
				return fmt.Errorf("ggui: upload atlas page %d: %w", i, err)
			}
		}
		b.pages = f.atlas.PageCount()
	}
	for _, s := range b.steps {
		if s.canvas != nil {
			if err := s.canvas(f.target); err != nil {
				return fmt.Errorf("ggui: canvas: %w", err)
			}
			continue
		}
		f.gc.BindTexture(uint64(s.batch.Page) + 1)
		if err := t.DrawTriangles(s.batch); err != nil {
			return fmt.Errorf("ggui: draw batch: %w", err)
		}
	}
	return nil
}

func (b *arrayBackend) close() {
	b.steps = nil
	b.raster = nil
	b.built = false
}
