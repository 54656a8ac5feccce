// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggui

import "image"

// BlendMode selects how fragments combine with the target.
type BlendMode uint8

const (
	// BlendNone writes fragments unblended.
	BlendNone BlendMode = iota
	// BlendAlpha composites premultiplied fragments with source-over.
	BlendAlpha
)

// StateCache is the draw state a host target remembers between its own
// draw calls.
//
// Display bypasses the target's draw path, so afterwards the cache no
// longer describes the real state. Display calls Reset, which makes the
// host re-apply everything on its next draw.
type StateCache struct {
	StatesSet      bool
	ViewChanged    bool
	LastBlendMode  BlendMode
	LastTextureID  uint64
	UseVertexCache bool
	VertexCache    [4]Vertex
}

// Reset forgets all cached state except whether states were ever set, and
// marks the view as changed.
func (c *StateCache) Reset() {
	*c = StateCache{
		StatesSet:   c.StatesSet,
		ViewChanged: true,
	}
}

// ContextState is the part of the graphics context that Display changes
// and restores.
type ContextState struct {
	Projection   [16]float32
	Blend        BlendMode
	CullFace     bool
	BoundTexture uint64
}

// GraphicsContext tracks the state of the context the renderer draws
// through. The viewport persists across frames; everything else is saved
// and restored around each Display.
type GraphicsContext struct {
	viewport image.Rectangle
	state    ContextState
	stack    []ContextState
}

// Push saves the current state.
func (g *GraphicsContext) Push() {
	g.stack = append(g.stack, g.state)
}

// Pop restores the most recently pushed state. It reports false if the
// stack is empty.
func (g *GraphicsContext) Pop() bool {
	n := len(g.stack)
	if n == 0 {
		return false
	}
	g.state = g.stack[n-1]
	g.stack = g.stack[:n-1]
	return true
}

// Depth returns the number of pushed states.
func (g *GraphicsContext) Depth() int { return len(g.stack) }

// State returns the current state.
func (g *GraphicsContext) State() ContextState { return g.state }

// Viewport returns the target rectangle set by the last size change.
func (g *GraphicsContext) Viewport() image.Rectangle { return g.viewport }

// SetViewport sets the target rectangle.
func (g *GraphicsContext) SetViewport(r image.Rectangle) { g.viewport = r }

// SetProjection replaces the projection matrix.
func (g *GraphicsContext) SetProjection(m [16]float32) { g.state.Projection = m }

// SetBlend sets the blend mode.
func (g *GraphicsContext) SetBlend(mode BlendMode) { g.state.Blend = mode }

// SetCullFace enables or disables back-face culling.
func (g *GraphicsContext) SetCullFace(enabled bool) { g.state.CullFace = enabled }

// BindTexture records id as the bound texture. Zero unbinds.
func (g *GraphicsContext) BindTexture(id uint64) { g.state.BoundTexture = id }

// Ortho returns a column-major orthographic projection matrix mapping the
// box [left,right] x [bottom,top] x [near,far] onto clip space.
func Ortho(left, right, bottom, top, near, far float32) [16]float32 {
	rl, tb, fn := right-left, top-bottom, far-near
	return [16]float32{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// screenProjection maps target pixels to clip space with Y pointing down.
// Zero dimensions are treated as 1 so the matrix stays finite.
func screenProjection(width, height int) [16]float32 {
	w, h := max(width, 1), max(height, 1)
	return Ortho(0, float32(w), float32(h), 0, -1, 64)
}
