// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"fmt"
	"image"
)

// Display draws every visible primitive into target.
//
// Primitives are sorted first. The graphics context state is pushed, an
// orthographic projection over the target's pixels is set up, the backend
// draws, and the state is popped again. If the target size changed since
// the previous call, vertex and texture data are rebuilt and the
// window-invalidated callback runs. A target with a state cache has it
// reset afterwards because drawing bypassed the target's own draw path.
//
// Invalidation flags are cleared only when drawing succeeds.
func (r *Renderer) Display(target Target) error {
	if r.closed {
		return ErrClosed
	}
	if target == nil {
		return ErrNilTarget
	}

	if a, ok := target.(Activator); ok {
		if err := a.SetActive(true); err != nil {
			return fmt.Errorf("ggui: activate target: %w", err)
		}
	}

	w, h := target.Size()
	r.windowSize = image.Pt(w, h)

	r.gc.Push()
	r.setupContext()
	err := r.displayImpl(target)
	r.restoreContext()

	if cache := target.StateCache(); cache != nil {
		cache.Reset()
		r.gc.BindTexture(0)
	}
	return err
}

func (r *Renderer) setupContext() {
	// A closing window may report a zero size. It still moves the
	// viewport but must not trigger a relayout.
	if r.lastWindowSize != r.windowSize {
		r.gc.SetViewport(image.Rectangle{Max: r.windowSize})
		r.lastWindowSize = r.windowSize

		if r.windowSize.X > 0 && r.windowSize.Y > 0 {
			r.defaultViewport.SetSize(V2(float32(r.windowSize.X), float32(r.windowSize.Y)))
			r.Invalidate(DatasetVertex | DatasetTexture)
			r.invalidateWindow()
		}
	}

	r.gc.SetProjection(screenProjection(r.windowSize.X, r.windowSize.Y))
	r.gc.SetBlend(BlendAlpha)
	r.gc.SetCullFace(true)
}

func (r *Renderer) restoreContext() {
	r.gc.SetCullFace(false)
	r.gc.Pop()
}

func (r *Renderer) displayImpl(target Target) error {
	if r.reg.sort() {
		r.Invalidate(DatasetVertex | DatasetIndex)
	}
	if r.forceRedraw {
		r.Invalidate(DatasetAll)
		r.forceRedraw = false
	}
	for _, p := range r.reg.prims {
		if !p.synced {
			r.Invalidate(DatasetVertex | DatasetIndex)
			p.synced = true
		}
	}
	for _, v := range r.viewports {
		if !v.synced {
			r.Invalidate(DatasetVertex | DatasetIndex)
			v.synced = true
		}
	}

	f := &frame{
		target:     target,
		prims:      r.reg.prims,
		invalid:    r.invalid,
		atlas:      r.atlas,
		viewport:   r.defaultViewport,
		bounds:     image.Rectangle{Max: r.windowSize},
		projection: r.gc.State().Projection,
		gc:         &r.gc,
	}
	if err := r.backend.draw(f); err != nil {
		return err
	}
	r.invalid = 0
	return nil
}
