// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggcanvas

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggui"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("ggcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ggcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("ggcanvas: nil DeviceProvider")

	// ErrNilRenderer is returned when a nil renderer is passed.
	ErrNilRenderer = errors.New("ggcanvas: nil renderer")
)

// textureDestroyer matches the host texture Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Canvas displays a ggui renderer into CPU memory and hands the result to a
// host window as a texture.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	renderer    *ggui.Renderer
	target      *ggui.PixmapTarget
	provider    gpucontext.DeviceProvider
	background  color.Color
	texture     any
	oldTexture  any // replaced on resize, destroyed after the next upload
	dirty       bool
	sizeChanged bool
	closed      bool
}

// New creates a Canvas of the given size showing r.
// The provider should come from the host window.
func New(provider gpucontext.DeviceProvider, r *ggui.Renderer, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if r == nil {
		return nil, ErrNilRenderer
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	return &Canvas{
		renderer:   r,
		target:     ggui.NewPixmapTarget(width, height),
		provider:   provider,
		background: color.Transparent,
		dirty:      true,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(provider gpucontext.DeviceProvider, r *ggui.Renderer, width, height int) *Canvas {
	c, err := New(provider, r, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Renderer returns the renderer shown by the canvas.
func (c *Canvas) Renderer() *ggui.Renderer {
	return c.renderer
}

// Target returns the pixel target the renderer draws into.
func (c *Canvas) Target() *ggui.PixmapTarget {
	return c.target
}

// SetBackground sets the color the target is cleared to before each
// Display. Default: transparent.
func (c *Canvas) SetBackground(bg color.Color) {
	c.background = bg
	c.dirty = true
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.target.Size()
}

// IsDirty reports whether the pixels changed since the last upload.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Display clears the target and draws every visible primitive into it.
func (c *Canvas) Display() error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.target.Clear(c.background)
	if err := c.renderer.Display(c.target); err != nil {
		return fmt.Errorf("ggcanvas: display: %w", err)
	}
	c.dirty = true
	return nil
}

// Resize changes the canvas dimensions and forces a redraw on the next
// Display.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if w, h := c.target.Size(); w == width && h == height {
		return nil
	}

	c.target.Resize(width, height)
	c.renderer.Redraw()
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Flush makes the texture reflect the target if it is dirty. The first
// Flush after creation or resize returns a pending texture that RenderTo
// turns into a host texture.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	if c.sizeChanged {
		if c.texture != nil {
			c.destroyOld()
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	w, h := c.target.Size()
	data := c.target.Pixels().Pix

	if c.texture == nil {
		c.texture = &pendingTexture{width: w, height: h, data: data}
		c.dirty = false
		return c.texture, nil
	}

	switch tex := c.texture.(type) {
	case *pendingTexture:
		tex.data = data
	case gpucontext.TextureUpdater:
		if err := tex.UpdateData(data); err != nil {
			return nil, fmt.Errorf("ggcanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	return c.texture, nil
}

// Texture returns the current texture without flushing, or nil.
func (c *Canvas) Texture() any {
	return c.texture
}

// Provider returns the DeviceProvider, or nil once closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Close releases the host textures. The renderer is not closed.
// Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.destroyOld()
	if d, ok := c.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	c.texture = nil
	c.provider = nil
	return nil
}

func (c *Canvas) destroyOld() {
	if d, ok := c.oldTexture.(textureDestroyer); ok {
		d.Destroy()
	}
	c.oldTexture = nil
}

// pendingTexture holds pixels until a TextureCreator is available.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
