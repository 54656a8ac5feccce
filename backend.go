// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import (
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ggui/atlas"
)

// BackendKind identifies one of the draw strategies a Renderer can use.
type BackendKind int

const (
	// BackendAuto selects the buffer backend when a HAL device is
	// available and the array backend otherwise.
	BackendAuto BackendKind = iota

	// BackendArray rebuilds CPU vertex arrays and draws them through a
	// PixelTarget or TriangleDrawer.
	BackendArray

	// BackendBuffer keeps geometry in GPU buffers of an injected device
	// and draws through a BufferDrawer.
	BackendBuffer
)

// String returns the backend name.
func (k BackendKind) String() string {
	switch k {
	case BackendAuto:
		return "auto"
	case BackendArray:
		return "array"
	case BackendBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// frame is everything a backend needs to draw one Display call.
type frame struct {
	target     Target
	prims      []*Primitive
	invalid    Dataset
	atlas      *atlas.Atlas
	viewport   *Viewport
	bounds     image.Rectangle
	projection [16]float32
	gc         *GraphicsContext
}

// backend is implemented by the closed set of draw strategies.
type backend interface {
	kind() BackendKind
	draw(f *frame) error
	close()
}

// halDevice extracts the HAL device and queue from a provider that
// exposes them.
func halDevice(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, bool) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, nil, false
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, false
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, false
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, false
	}
	return device, queue, true
}

// deviceLimits returns the limits reported by the provider's device, or
// by the provider itself, when either exposes them.
func deviceLimits(provider gpucontext.DeviceProvider) (gputypes.Limits, bool) {
	type limiter interface {
		Limits() gputypes.Limits
	}
	if provider == nil {
		return gputypes.Limits{}, false
	}
	if l, ok := provider.Device().(limiter); ok {
		return l.Limits(), true
	}
	if l, ok := provider.(limiter); ok {
		return l.Limits(), true
	}
	return gputypes.Limits{}, false
}

// selectBackend picks the backend once, at construction. An explicit kind
// wins; otherwise a provider with a usable HAL device selects the buffer
// backend and everything else the array backend.
func selectBackend(kind BackendKind, provider gpucontext.DeviceProvider, logger *slog.Logger) (backend, error) {
	switch kind {
	case BackendArray:
		return newArrayBackend(), nil
	case BackendBuffer:
		device, queue, ok := halDevice(provider)
		if !ok {
			return nil, ErrNoDevice
		}
		return newBufferBackend(device, queue, logger)
	}

	device, queue, ok := halDevice(provider)
	if !ok {
		return newArrayBackend(), nil
	}
	b, err := newBufferBackend(device, queue, logger)
	if err != nil {
		logger.Warn("ggui: buffer backend unavailable, using array backend", "err", err)
		return newArrayBackend(), nil
	}
	return b, nil
}

// drawStep is either a batch or a canvas callback.
type drawStep struct {
	batch  *Batch
	canvas CanvasFunc
}

// buildSteps turns the sorted primitives into draw steps. Consecutive
// primitives are merged into one batch while they sample the same atlas
// page and share a clip rectangle; canvas primitives end the current batch.
func buildSteps(f *frame) []drawStep {
	var (
		steps []drawStep
		cur   *Batch
	)
	limit := f.atlas.MaxTextureSize()

	flush := func() {
		if cur != nil && len(cur.Indices) > 0 {
			steps = append(steps, drawStep{batch: cur})
		}
		cur = nil
	}

	for _, p := range f.prims {
		if !p.visible {
			continue
		}
		if p.canvas != nil {
			flush()
			steps = append(steps, drawStep{canvas: p.canvas})
			continue
		}
		if len(p.indices) == 0 {
			continue
		}

		vp := p.viewport
		if vp == nil {
			vp = f.viewport
		}
		page := pageOf(p, limit)
		clip := vp.clip(f.bounds)
		if clip.Empty() {
			continue
		}
		if cur == nil || cur.Page != page || cur.Clip != clip {
			flush()
			cur = &Batch{Page: page, Clip: clip, Projection: f.projection}
		}
		appendPrimitive(cur, p, vp.offset(), float32(page*limit))
	}
	flush()
	return steps
}

// pageOf returns the atlas page a primitive samples, taken from its first
// vertex.
func pageOf(p *Primitive, limit int) int {
	if len(p.vertices) == 0 {
		return 0
	}
	return int(p.vertices[0].TexCoord.Y) / limit
}

func appendPrimitive(b *Batch, p *Primitive, viewportOffset Vec2, pageTop float32) {
	base := uint32(len(b.Vertices))
	off := p.position.Add(viewportOffset)
	for _, v := range p.vertices {
		c := v.Color.Premultiply()
		b.Vertices = append(b.Vertices, BatchVertex{
			X: v.Position.X + off.X,
			Y: v.Position.Y + off.Y,
			U: v.TexCoord.X,
			V: v.TexCoord.Y - pageTop,
			R: c.R, G: c.G, B: c.B, A: c.A,
		})
	}
	for _, i := range p.indices {
		b.Indices = append(b.Indices, base+i)
	}
}
